// Package source loads sampled signals for the filter experiments.
//
// Two formats are supported: the two-column CSV files produced by the data
// logger (timestamp,amplitude per line, no header) and PCM WAV files, whose
// timestamps are derived from the sample rate.
package source

import (
	"fmt"

	"github.com/RyanBlaney/sonido-lowpass/algorithms/common"
)

// Signal is a sequence of samples with one timestamp (seconds) per sample
type Signal struct {
	Name       string    `json:"name"`
	Timestamps []float64 `json:"timestamps"`
	Samples    []float64 `json:"samples"`
}

// Len returns the number of samples
func (s *Signal) Len() int {
	return len(s.Samples)
}

// Duration returns the time spanned by the signal, t[last] - t[first]
func (s *Signal) Duration() float64 {
	if len(s.Timestamps) == 0 {
		return 0
	}
	return s.Timestamps[len(s.Timestamps)-1] - s.Timestamps[0]
}

// SampleRate returns N / Duration, or 0 when the duration is not positive
func (s *Signal) SampleRate() float64 {
	d := s.Duration()
	if d <= 0 {
		return 0
	}
	return float64(s.Len()) / d
}

// Validate checks that the signal is non-empty, that both columns have the
// same length and that timestamps are finite and strictly increasing.
func (s *Signal) Validate() error {
	if len(s.Samples) == 0 {
		return common.InvalidArgument("signal %q has no samples", s.Name)
	}
	if len(s.Timestamps) != len(s.Samples) {
		return common.InvalidArgument("signal %q has %d timestamps for %d samples",
			s.Name, len(s.Timestamps), len(s.Samples))
	}
	if !common.AllFinite(s.Samples) {
		return common.InvalidArgument("signal %q contains non-finite samples", s.Name)
	}

	for i, ts := range s.Timestamps {
		if !common.IsFinite(ts) {
			return common.InvalidArgument("signal %q: timestamp %d is not finite", s.Name, i)
		}
		if i > 0 && ts <= s.Timestamps[i-1] {
			return common.InvalidArgument("signal %q: timestamps not strictly increasing at index %d (%v after %v)",
				s.Name, i, ts, s.Timestamps[i-1])
		}
	}

	return nil
}

// Uniform builds a signal whose timestamps are i/sampleRate
func Uniform(name string, samples []float64, sampleRate float64) (*Signal, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("build signal %q: %w", name,
			common.InvalidArgument("sample rate must be positive, got %v", sampleRate))
	}

	ts := make([]float64, len(samples))
	for i := range ts {
		ts[i] = float64(i) / sampleRate
	}

	sig := &Signal{Name: name, Timestamps: ts, Samples: common.Clone(samples)}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return sig, nil
}
