package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jamesmaino/DEBtutorial/internal/config"
	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// Store persists runs under baseDir, one directory per run holding
// metadata.json and trajectory.csv.
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
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Timestamp  time.Time          `json:"timestamp"`
	Params     deb.Params         `json:"params"`
	V0         float64            `json:"v0"`
	TEnd       float64            `json:"t_end"`
	Points     int                `json:"points"`
	Integrator string             `json:"integrator"`
	Forcing    string             `json:"forcing"`
	StepsTaken int                `json:"steps_taken"`
	Rejected   int                `json:"rejected"`
	Truncated  bool               `json:"truncated"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run to disk and returns its generated id. Nanosecond
// timestamps keep ids distinct even for back-to-back saves.
func (s *Store) Save(label string, cfg *config.Config, result *engine.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	forcing := cfg.Forcing.Kind
	if forcing == "" {
		forcing = "constant"
	}

	meta := RunMetadata{
		ID:         runID,
		Label:      label,
		Timestamp:  time.Now(),
		Params:     cfg.Params,
		V0:         cfg.Init.V0,
		TEnd:       cfg.Grid.TEnd,
		Points:     cfg.Grid.Points,
		Integrator: cfg.Solver.Integrator,
		Forcing:    forcing,
		StepsTaken: result.StepsTaken,
		Rejected:   result.Rejected,
		Truncated:  result.Truncated,
		Metrics:    result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	return runID, WriteTrajectoryCSV(csvFile, result)
}

// WriteTrajectoryCSV streams the sampled trajectory with a derived
// reserve density column. Values keep full float precision so a load
// reproduces the run bit for bit.
func WriteTrajectoryCSV(w io.Writer, result *engine.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "reserve", "structure", "reserve_density"}); err != nil {
		return err
	}

	for i := range result.States {
		reserve := result.States[i][deb.StateReserve]
		structure := result.States[i][deb.StateStructure]
		density := 0.0
		if structure > 0 {
			density = reserve / structure
		}
		row := []string{
			strconv.FormatFloat(result.Times[i], 'g', -1, 64),
			strconv.FormatFloat(reserve, 'g', -1, 64),
			strconv.FormatFloat(structure, 'g', -1, 64),
			strconv.FormatFloat(density, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// List reads the metadata of every stored run. Directories without a
// readable metadata.json are skipped rather than failing the listing.
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

// LoadTrajectory reads back the sampled times and states. The derived
// density column is dropped; states carry reserve and structure only.
func (s *Store) LoadTrajectory(runID string) ([]float64, []engine.State, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
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
		return []float64{}, []engine.State{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]engine.State, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		reserve, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		structure, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}

		times = append(times, t)
		states = append(states, engine.State{reserve, structure})
	}

	return times, states, nil
}
