package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jamesmaino/DEBtutorial/internal/config"
	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// ExportData is the flat, plotting-friendly JSON form of a run: the
// trajectory split into per-component arrays instead of row tuples.
type ExportData struct {
	Label      string             `json:"label"`
	Integrator string             `json:"integrator"`
	Params     deb.Params         `json:"params"`
	V0         float64            `json:"v0"`
	TEnd       float64            `json:"t_end"`
	Samples    int                `json:"samples"`
	Truncated  bool               `json:"truncated,omitempty"`
	Times      []float64          `json:"times"`
	Reserve    []float64          `json:"reserve"`
	Structure  []float64          `json:"structure"`
	Metrics    map[string]float64 `json:"metrics"`
}

func NewExportData(label string, cfg *config.Config, result *engine.Result) ExportData {
	return ExportData{
		Label:      label,
		Integrator: cfg.Solver.Integrator,
		Params:     cfg.Params,
		V0:         cfg.Init.V0,
		TEnd:       cfg.Grid.TEnd,
		Samples:    result.Len(),
		Truncated:  result.Truncated,
		Times:      result.Times,
		Reserve:    result.Component(deb.StateReserve),
		Structure:  result.Component(deb.StateStructure),
		Metrics:    result.Metrics,
	}
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeJSON(file, data)
}

func ExportJSONStdout(data ExportData) error {
	return writeJSON(os.Stdout, data)
}

func writeJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
