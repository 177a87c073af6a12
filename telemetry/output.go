package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/racetrack/config"
)

// OutputManager writes a run's files into one directory: generations.csv,
// perf.csv, config.yaml, best_brain.json and hall_of_fame.json. A nil
// *OutputManager means output is off, and every method does nothing.
type OutputManager struct {
	dir         string
	generations *CSVLog[GenerationStats]
	perf        *CSVLog[PerfStatsCSV]
}

// OutputFiles names the files written inside the output directory.
type OutputFiles struct {
	Generations string
	Perf        string
}

// DefaultOutputFiles returns the standard file names.
func DefaultOutputFiles() OutputFiles {
	return OutputFiles{Generations: "generations.csv", Perf: "perf.csv"}
}

// NewOutputManager creates dir and the CSV files in it. It returns nil, nil
// for an empty dir.
func NewOutputManager(dir string, files OutputFiles) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	generations, err := CreateCSVLog[GenerationStats](filepath.Join(dir, files.Generations))
	if err != nil {
		return nil, err
	}
	perf, err := CreateCSVLog[PerfStatsCSV](filepath.Join(dir, files.Perf))
	if err != nil {
		generations.Close()
		return nil, err
	}
	return &OutputManager{dir: dir, generations: generations, perf: perf}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends a row to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	if err := om.generations.Append(stats); err != nil {
		return fmt.Errorf("writing generation %d: %w", stats.Generation, err)
	}
	return nil
}

// WritePerf appends the perf window that ended with generation to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, generation int) error {
	if om == nil {
		return nil
	}
	if err := om.perf.Append(stats.ToCSV(generation)); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBestBrain saves the brain document as best_brain.json.
func (om *OutputManager) WriteBestBrain(doc *BrainDocument) error {
	if om == nil || doc == nil {
		return nil
	}
	return SaveBrainDocument(doc, filepath.Join(om.dir, "best_brain.json"))
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}

	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "hall_of_fame.json"), data, 0644); err != nil {
		return fmt.Errorf("writing hall_of_fame.json: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes both CSV files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	genErr := om.generations.Close()
	perfErr := om.perf.Close()
	if genErr != nil {
		return genErr
	}
	return perfErr
}
