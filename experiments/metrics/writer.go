package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists evaluation records as CSV files under a timestamped run
// directory.
type Writer struct {
	baseDir string
}

// NewWriter creates the run directory under root and returns a writer
// bound to it.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// BaseDir returns the run directory records are written into.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

// WriteEpisodeRecords writes one row per finished episode.
func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	path := filepath.Join(w.baseDir, "episode_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episode records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "episode", "seed", "steps", "return", "truncated", "start_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write episode records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID.String(),
			strconv.Itoa(record.Episode),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Steps),
			strconv.FormatFloat(record.Return, 'f', 6, 64),
			strconv.FormatBool(record.Truncated),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write episode record row: %w", err)
		}
	}

	return nil
}
