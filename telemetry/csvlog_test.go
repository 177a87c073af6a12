package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

type row struct {
	Name  string `csv:"name"`
	Value int    `csv:"value"`
}

func TestCSVLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	l, err := CreateCSVLog[row](path)
	if err != nil {
		t.Fatal(err)
	}

	if err := l.Append(); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(row{"a", 1}, row{"b", 2}); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(row{"c", 3}); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "name,value\na,1\nb,2\nc,3\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestCreateCSVLogMissingDir(t *testing.T) {
	if _, err := CreateCSVLog[row](filepath.Join(t.TempDir(), "nope", "rows.csv")); err == nil {
		t.Error("expected error for missing directory")
	}
}
