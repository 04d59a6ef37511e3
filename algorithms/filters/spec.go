package filters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-lowpass/algorithms/common"
)

// Kind names one of the supported filters
type Kind string

const (
	KindFIR    Kind = "fir"    // causal convolution with coefficients h
	KindMoving Kind = "moving" // moving average with window X
	KindIIR    Kind = "iir"    // first-order recursive filter with gains A, B
)

// Spec selects a filter and carries its parameters. Only the fields that
// belong to Kind are read.
type Spec struct {
	Kind         Kind      `json:"kind"`
	Coefficients []float64 `json:"h,omitempty"`
	Window       int       `json:"x,omitempty"`
	A            float64   `json:"a,omitempty"`
	B            float64   `json:"b,omitempty"`

	// UseFFT switches FIR filtering to ApplyFIRFFT
	UseFFT bool `json:"use_fft,omitempty"`
}

// FIR returns a Spec for an FIR filter. The coefficients are copied.
func FIR(h []float64) Spec {
	return Spec{Kind: KindFIR, Coefficients: common.Clone(h)}
}

// MovingAverage returns a Spec for a moving average of width x
func MovingAverage(x int) Spec {
	return Spec{Kind: KindMoving, Window: x}
}

// IIR returns a Spec for the first-order recursive filter
func IIR(a, b float64) Spec {
	return Spec{Kind: KindIIR, A: a, B: b}
}

// Validate checks the parameters for Kind without touching any data
func (s Spec) Validate() error {
	switch s.Kind {
	case KindFIR:
		if len(s.Coefficients) == 0 {
			return common.InvalidArgument("fir filter selected but no coefficients provided")
		}
	case KindMoving:
		if s.Window <= 0 {
			return common.InvalidArgument("moving average window must be positive, got %d", s.Window)
		}
	case KindIIR:
		if !common.IsFinite(s.A) || !common.IsFinite(s.B) {
			return common.InvalidArgument("iir gains must be finite, got A=%v B=%v", s.A, s.B)
		}
	default:
		return common.InvalidArgument("unknown filter type %q", s.Kind)
	}
	return nil
}

// Apply runs the selected filter over data
func (s Spec) Apply(data []float64) ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Kind {
	case KindFIR:
		if s.UseFFT {
			return ApplyFIRFFT(data, s.Coefficients)
		}
		return ApplyFIR(data, s.Coefficients)
	case KindMoving:
		return ApplyMovingAverage(data, s.Window)
	default:
		return ApplyIIR(data, s.A, s.B)
	}
}

// Label returns a short human readable description, e.g. "IIR (A=0.9, B=0.1)"
func (s Spec) Label() string {
	switch s.Kind {
	case KindFIR:
		return fmt.Sprintf("FIR (len(h)=%d)", len(s.Coefficients))
	case KindMoving:
		return fmt.Sprintf("Moving Avg (X=%d)", s.Window)
	case KindIIR:
		return fmt.Sprintf("IIR (A=%s, B=%s)", formatGain(s.A), formatGain(s.B))
	default:
		return strings.ToUpper(string(s.Kind))
	}
}

func formatGain(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
