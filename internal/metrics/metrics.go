// Package metrics keeps the cumulative download statistics file.
//
// The file is read, updated and rewritten once per finished request.
// There is no locking: two processes sharing a file may lose updates.
package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/ytget/ytwav/internal/model"
)

// Metrics is the persisted JSON document
type Metrics struct {
	TotalAttempts       int            `json:"total_attempts"`
	SuccessfulDownloads int            `json:"successful_downloads"`
	FailedDownloads     int            `json:"failed_downloads"`
	ErrorTypes          map[string]int `json:"error_types"`
	SuccessRate         float64        `json:"success_rate"`
	LastUpdated         string         `json:"last_updated,omitempty"`
}

// Add folds one request outcome into m
func (m *Metrics) Add(success bool, errorType string, now time.Time) {
	if m.ErrorTypes == nil {
		m.ErrorTypes = make(map[string]int)
	}

	m.TotalAttempts++
	if success {
		m.SuccessfulDownloads++
	} else {
		m.FailedDownloads++
		if errorType != "" {
			m.ErrorTypes[errorType]++
		}
	}

	if m.TotalAttempts > 0 {
		m.SuccessRate = float64(m.SuccessfulDownloads) / float64(m.TotalAttempts) * 100
	}
	m.LastUpdated = now.Format(time.RFC3339)
}

// Load reads the metrics file at path. A missing file yields empty metrics.
func Load(path string) (*Metrics, error) {
	m := &Metrics{ErrorTypes: make(map[string]int)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("reading metrics file: %w", err)
	}

	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing metrics file %s: %w", path, err)
	}
	if m.ErrorTypes == nil {
		m.ErrorTypes = make(map[string]int)
	}
	return m, nil
}

// Recorder persists request outcomes to a metrics file
type Recorder struct {
	path string
	now  func() time.Time
}

// NewRecorder returns a recorder writing to path
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path, now: time.Now}
}

// Record loads the file, folds in one outcome and writes it back
func (r *Recorder) Record(success bool, class model.Classification) error {
	m, err := Load(r.path)
	if err != nil {
		return err
	}

	m.Add(success, class.String(), r.now())

	if err := WriteJSONFile(r.path, m); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}

// Print logs a human-readable summary of m
func Print(log *slog.Logger, m *Metrics) {
	if m.TotalAttempts == 0 {
		log.Info("no download metrics recorded yet")
		return
	}

	log.Info("download statistics",
		"total", m.TotalAttempts,
		"successful", m.SuccessfulDownloads,
		"failed", m.FailedDownloads,
		"success_rate", fmt.Sprintf("%.1f%%", m.SuccessRate),
	)

	types := make([]string, 0, len(m.ErrorTypes))
	for t := range m.ErrorTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		log.Info("error type", "type", t, "count", m.ErrorTypes[t])
	}

	if m.LastUpdated != "" {
		log.Info("last update", "at", m.LastUpdated)
	}
}
