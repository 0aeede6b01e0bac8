// Package storage persists propagation runs on disk, one directory per
// run holding metadata.json and states.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/orbprop/internal/orbit"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	GM        float64   `json:"gm"`
	Timestamp time.Time `json:"timestamp"`
	Unit      string    `json:"unit"`
	Steps     int       `json:"steps"`
	Fallbacks int       `json:"fallbacks"`
	Position  [3]float64 `json:"position"`
	Velocity  [3]float64 `json:"velocity"`
}

var csvHeader = []string{
	"time", "x", "y", "z", "vx", "vy", "vz",
	"status", "outer_iters", "cf_iters", "time_error",
}

// Save writes one run directory and returns its ID.
func (s *Store) Save(body string, gm float64, unit orbit.TimeUnit, initial orbit.StateVector, result *orbit.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", body, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Body:      body,
		GM:        gm,
		Timestamp: time.Now(),
		Unit:      string(unit),
		Steps:     len(result.Steps),
		Fallbacks: result.FallbackCount,
		Position:  [3]float64(initial.R),
		Velocity:  [3]float64(initial.V),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for _, step := range result.Steps {
		row := []string{strconv.FormatFloat(step.Time, 'f', 6, 64)}
		for _, v := range step.State.R {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range step.State.V {
			row = append(row, strconv.FormatFloat(v, 'f', 9, 64))
		}
		row = append(row,
			step.Status.String(),
			strconv.Itoa(step.Diag.OuterIters),
			strconv.Itoa(step.Diag.InnerIters),
			strconv.FormatFloat(step.Diag.TimeError, 'e', 6, 64),
		)
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// StatesCSV returns the raw states file of a saved run, for export.
func (s *Store) StatesCSV(runID string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, runID, "states.csv"))
}

// LoadStates reads back the per-step times and states of a saved run.
// Diagnostics columns are skipped; use the metadata for summary counts.
func (s *Store) LoadStates(runID string) ([]float64, []orbit.StateVector, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []orbit.StateVector{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]orbit.StateVector, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 7 {
			continue
		}
		vals := make([]float64, 7)
		ok := true
		for i := 0; i < 7; i++ {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		times = append(times, vals[0])
		states = append(states, orbit.StateVector{
			R: orbit.Vec3{vals[1], vals[2], vals[3]},
			V: orbit.Vec3{vals[4], vals[5], vals[6]},
		})
	}

	return times, states, nil
}
