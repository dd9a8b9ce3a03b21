package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/playablehq/stagfall/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir            string
	shotsFile      *os.File
	windowsFile    *os.File
	highlightsFile *os.File
	perfFile       *os.File

	// Track if headers have been written
	shotsHeaderWritten      bool
	windowsHeaderWritten    bool
	highlightsHeaderWritten bool
	perfHeaderWritten       bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	shotsPath := filepath.Join(dir, "shots.csv")
	f, err := os.Create(shotsPath)
	if err != nil {
		return nil, fmt.Errorf("creating shots.csv: %w", err)
	}
	om.shotsFile = f

	windowsPath := filepath.Join(dir, "windows.csv")
	f, err = os.Create(windowsPath)
	if err != nil {
		om.shotsFile.Close()
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	om.windowsFile = f

	highlightsPath := filepath.Join(dir, "highlights.csv")
	f, err = os.Create(highlightsPath)
	if err != nil {
		om.shotsFile.Close()
		om.windowsFile.Close()
		return nil, fmt.Errorf("creating highlights.csv: %w", err)
	}
	om.highlightsFile = f

	perfPath := filepath.Join(dir, "perf.csv")
	f, err = os.Create(perfPath)
	if err != nil {
		om.shotsFile.Close()
		om.windowsFile.Close()
		om.highlightsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteShot writes a shot record to shots.csv.
func (om *OutputManager) WriteShot(rec ShotRecord) error {
	if om == nil {
		return nil
	}

	records := []ShotRecord{rec}

	if !om.shotsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.shotsFile); err != nil {
			return fmt.Errorf("writing shot: %w", err)
		}
		om.shotsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.shotsFile); err != nil {
			return fmt.Errorf("writing shot: %w", err)
		}
	}

	return nil
}

// WriteWindow writes a window stats record to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.windowsHeaderWritten {
		if err := gocsv.Marshal(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing window stats: %w", err)
		}
		om.windowsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing window stats: %w", err)
		}
	}

	return nil
}

// WriteHighlight writes a highlight record to highlights.csv.
func (om *OutputManager) WriteHighlight(h Highlight) error {
	if om == nil {
		return nil
	}

	records := []Highlight{h}

	if !om.highlightsHeaderWritten {
		if err := gocsv.Marshal(records, om.highlightsFile); err != nil {
			return fmt.Errorf("writing highlight: %w", err)
		}
		om.highlightsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.highlightsFile); err != nil {
			return fmt.Errorf("writing highlight: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}

	csvRecord := stats.ToCSV(windowEnd)
	records := []PerfStatsCSV{csvRecord}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteSummary saves the session summary as JSON.
func (om *OutputManager) WriteSummary(summary SessionSummary) error {
	if om == nil {
		return nil
	}

	summaryPath := filepath.Join(om.dir, "summary.json")
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	if err := os.WriteFile(summaryPath, data, 0644); err != nil {
		return fmt.Errorf("writing summary.json: %w", err)
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

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	for _, f := range []*os.File{om.shotsFile, om.windowsFile, om.highlightsFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
