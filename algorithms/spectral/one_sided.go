package spectral

import (
	"math/cmplx"

	"github.com/RyanBlaney/sonido-lowpass/algorithms/common"
)

// Spectrum is the one-sided magnitude spectrum of a real signal.
// Frequencies and Magnitudes are parallel slices of length floor(N/2).
type Spectrum struct {
	Frequencies []float64 `json:"frequencies"`
	Magnitudes  []float64 `json:"magnitudes"`

	SampleRate float64 `json:"sample_rate"` // Fs = N / duration
	Resolution float64 `json:"resolution"`  // bin spacing, 1 / duration
}

// Len returns the number of bins
func (s *Spectrum) Len() int {
	return len(s.Magnitudes)
}

// Peak returns the bin with the largest magnitude. With skipDC the 0 Hz bin
// is ignored, which is usually what you want for signals with an offset.
// ok is false when there is no bin to report.
func (s *Spectrum) Peak(skipDC bool) (frequency, magnitude float64, ok bool) {
	start := 0
	if skipDC {
		start = 1
	}
	if s.Len() <= start {
		return 0, 0, false
	}

	idx := common.ArgMax(s.Magnitudes[start:]) + start
	return s.Frequencies[idx], s.Magnitudes[idx], true
}

// ComputeOneSidedSpectrum computes |Y[k]| = |DFT(x)[k]| / N for
// k = 0..floor(N/2)-1 together with the bin frequencies f[k] = k/duration.
//
// duration is the time spanned by the samples (t[last] - t[first]); the
// sampling frequency is taken as N/duration. The transform is computed on
// the samples as given: no window, no padding, no mean removal.
func ComputeOneSidedSpectrum(samples []float64, duration float64) (*Spectrum, error) {
	if len(samples) == 0 {
		return nil, common.InvalidArgument("spectrum input must not be empty")
	}
	if !(duration > 0) || !common.IsFinite(duration) {
		return nil, common.InvalidArgument("spectrum duration must be positive, got %v", duration)
	}

	n := len(samples)
	half := n / 2

	spectrum := &Spectrum{
		Frequencies: make([]float64, half),
		Magnitudes:  make([]float64, half),
		SampleRate:  float64(n) / duration,
		Resolution:  1 / duration,
	}
	if half == 0 {
		return spectrum, nil
	}

	coeffs := NewFFT().Compute(samples)
	scale := 1 / float64(n)

	for k := range half {
		spectrum.Frequencies[k] = float64(k) / duration
		spectrum.Magnitudes[k] = cmplx.Abs(coeffs[k]) * scale
	}

	return spectrum, nil
}
