package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// CSVLog appends rows of T to a CSV file. The header comes from T's csv tags
// and is written with the first row.
type CSVLog[T any] struct {
	file   *os.File
	header bool
}

// CreateCSVLog creates (or truncates) the file at path.
func CreateCSVLog[T any](path string) (*CSVLog[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVLog[T]{file: f}, nil
}

// Append writes rows.
func (l *CSVLog[T]) Append(rows ...T) error {
	if len(rows) == 0 {
		return nil
	}
	if l.header {
		return gocsv.MarshalWithoutHeaders(rows, l.file)
	}
	l.header = true
	return gocsv.Marshal(rows, l.file)
}

// Close closes the file. Later calls do nothing.
func (l *CSVLog[T]) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
