package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/hairsim/internal/engine"
)

// Store persists simulation runs under a base directory, one
// subdirectory per run holding metadata.json and series.csv.
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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Points    int                `json:"points"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Backend   string             `json:"backend"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run directory named name_unixtime and returns the run
// ID. The series CSV carries the probe tip trajectory alongside the
// sampled strain and energy.
func (s *Store) Save(name string, meta RunMetadata, result *engine.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics

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

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "tip_x", "tip_y", "tip_z", "strain", "energy"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Tip[i].X, 'f', 6, 64),
			strconv.FormatFloat(result.Tip[i].Y, 'f', 6, 64),
			strconv.FormatFloat(result.Tip[i].Z, 'f', 6, 64),
			strconv.FormatFloat(result.MeanStrain[i], 'f', 6, 64),
			strconv.FormatFloat(result.Energy[i], 'f', 6, 64),
		}
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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

// Series holds the sampled run trajectory loaded back from disk.
type Series struct {
	Times  []float64
	TipX   []float64
	TipY   []float64
	TipZ   []float64
	Strain []float64
	Energy []float64
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 6 {
			continue
		}

		vals := make([]float64, 6)
		ok := true
		for j := 0; j < 6; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		series.Times = append(series.Times, vals[0])
		series.TipX = append(series.TipX, vals[1])
		series.TipY = append(series.TipY, vals[2])
		series.TipZ = append(series.TipZ, vals[3])
		series.Strain = append(series.Strain, vals[4])
		series.Energy = append(series.Energy, vals[5])
	}

	return series, nil
}
