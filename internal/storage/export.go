package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Meta     RunMetadata `json:"meta"`
	Distance ExportAxis  `json:"distance_sweep"`
	Energy   ExportAxis  `json:"energy_sweep"`
}

type ExportAxis struct {
	Label       string    `json:"label"`
	Values      []float64 `json:"values"`
	Probability []float64 `json:"probability"`
}

// ExportJSON writes a run as a single indented JSON document.
func ExportJSON(w io.Writer, run *Run) error {
	data := ExportData{
		Meta: run.Meta,
		Distance: ExportAxis{
			Label:       run.Distance.XLabel,
			Values:      run.Distance.X,
			Probability: run.Distance.Y,
		},
		Energy: ExportAxis{
			Label:       run.Energy.XLabel,
			Values:      run.Energy.X,
			Probability: run.Energy.Y,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
