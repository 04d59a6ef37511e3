package experiment

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-lowpass/algorithms/filters"
)

// Design records how a set of FIR coefficients was produced. It is only
// used to label plots; the coefficients themselves are applied as given.
type Design struct {
	Cutoff     float64 `json:"cutoff,omitempty"`      // Hz
	Bandwidth  float64 `json:"bandwidth,omitempty"`   // transition bandwidth, Hz
	SampleRate float64 `json:"sample_rate,omitempty"` // Hz the design assumed
	Window     string  `json:"window,omitempty"`      // "Rectangular", "Hamming", ...
}

// Run is one filter applied to one signal file
type Run struct {
	Signal string       `json:"signal"`
	Filter filters.Spec `json:"filter"`
	Design *Design      `json:"design,omitempty"`
}

// Validate checks the run without loading the signal
func (r Run) Validate() error {
	if strings.TrimSpace(r.Signal) == "" {
		return fmt.Errorf("run has no signal file")
	}
	if err := r.Filter.Validate(); err != nil {
		return fmt.Errorf("run %s: %w", r.Signal, err)
	}
	return nil
}

// Label describes the filter, with the FIR design appended when known:
//
//	FIR (len(h)=3) [Cutoff=1000, BW=4000, Window=Rectangular]
func (r Run) Label() string {
	label := r.Filter.Label()
	if r.Filter.Kind != filters.KindFIR || r.Design == nil {
		return label
	}

	var meta []string
	if r.Design.Cutoff != 0 {
		meta = append(meta, "Cutoff="+formatNumber(r.Design.Cutoff))
	}
	if r.Design.Bandwidth != 0 {
		meta = append(meta, "BW="+formatNumber(r.Design.Bandwidth))
	}
	if r.Design.Window != "" {
		meta = append(meta, "Window="+r.Design.Window)
	}
	if len(meta) > 0 {
		label += " [" + strings.Join(meta, ", ") + "]"
	}
	return label
}

// Title is the figure title, "<signal> - <label>"
func (r Run) Title() string {
	return r.Signal + " - " + r.Label()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// LoadRuns reads a JSON array of runs, e.g.
//
//	[{"signal": "sigA.csv", "filter": {"kind": "moving", "x": 25}}]
func LoadRuns(path string) ([]Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read runs file: %w", err)
	}

	var runs []Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("parse runs file %s: %w", path, err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("runs file %s contains no runs", path)
	}

	for i, run := range runs {
		if err := run.Validate(); err != nil {
			return nil, fmt.Errorf("runs file %s, entry %d: %w", path, i, err)
		}
	}
	return runs, nil
}
