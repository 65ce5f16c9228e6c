// Package storage persists solve runs under a data directory, one
// directory per run: metadata.json, potential.csv, residuals.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
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

// RunMetadata summarizes one solve for listings and exports.
type RunMetadata struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	GridSize      int       `json:"grid_size"`
	Method        string    `json:"method"`
	Tolerance     float64   `json:"tolerance"`
	MaxIterations int       `json:"max_iterations"`
	Left          float64   `json:"left"`
	Right         float64   `json:"right"`
	Top           float64   `json:"top"`
	Bottom        float64   `json:"bottom"`
	Iterations    int       `json:"iterations"`
	Converged     bool      `json:"converged"`
	MinPotential  float64   `json:"min_potential"`
	MaxPotential  float64   `json:"max_potential"`
	MaxField      float64   `json:"max_field"`
}

// Save writes one run directory and returns its generated ID. The meta's
// ID and Timestamp fields are filled in here.
func (s *Store) Save(meta RunMetadata, potential [][]float64, residuals []float64) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Method, now.Unix())
	meta.Timestamp = now

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	if err := writeMatrixCSV(filepath.Join(runDir, "potential.csv"), potential); err != nil {
		return "", err
	}
	if err := writeResidualsCSV(filepath.Join(runDir, "residuals.csv"), residuals); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns metadata for every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // skip foreign directories
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

// LoadPotential reads a stored potential matrix.
func (s *Store) LoadPotential(runID string) ([][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "potential.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(records))
	for i, rec := range records {
		out[i] = make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("potential.csv row %d col %d: %w", i, j, err)
			}
			out[i][j] = v
		}
	}
	return out, nil
}

// LoadResiduals reads the per-sweep residual history of a stored run.
func (s *Store) LoadResiduals(runID string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "residuals.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(records))
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("residuals.csv row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func writeMatrixCSV(path string, m [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	row := make([]string, 0, 64)
	for i := range m {
		row = row[:0]
		for _, val := range m[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeResidualsCSV(path string, residuals []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"sweep", "residual"}); err != nil {
		return err
	}
	for i, r := range residuals {
		rec := []string{strconv.Itoa(i + 1), strconv.FormatFloat(r, 'e', 6, 64)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
