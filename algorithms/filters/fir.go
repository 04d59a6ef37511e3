package filters

import (
	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"

	"github.com/RyanBlaney/sonido-lowpass/algorithms/common"
)

// ApplyFIR filters data with the impulse response h using direct causal
// convolution:
//
//	y[i] = sum_{j=0}^{M-1} h[j] * x[i-j],   terms with i-j < 0 omitted
//
// There is no padding and no wraparound, so the first M-1 outputs are built
// from fewer terms. h may be longer than data.
//
// Complexity is O(N*M). For long impulse responses see ApplyFIRFFT.
func ApplyFIR(data, h []float64) ([]float64, error) {
	if err := validateFIR(data, h); err != nil {
		return nil, err
	}

	output := make([]float64, len(data))
	for i := range data {
		var acc float64
		for j := 0; j < len(h) && j <= i; j++ {
			acc += h[j] * data[i-j]
		}
		output[i] = acc
	}

	return output, nil
}

// ApplyFIRFFT computes the same causal convolution as ApplyFIR by
// multiplying zero-padded spectra and truncating the linear convolution to
// len(data) samples. Results agree with ApplyFIR to floating-point tolerance.
//
// References:
//   - A.V. Oppenheim, R.W. Schafer, "Discrete-Time Signal Processing",
//     3rd Edition, Section 8.7 (linear convolution using the DFT)
func ApplyFIRFFT(data, h []float64) ([]float64, error) {
	if err := validateFIR(data, h); err != nil {
		return nil, err
	}

	// Linear convolution needs N+M-1 points; radix-2 sizes keep go-dsp off
	// the Bluestein path.
	size := common.NextPowerOfTwo(len(data) + len(h) - 1)

	x := fft.FFTReal(dsputils.ZeroPadF(data, size))
	k := fft.FFTReal(dsputils.ZeroPadF(h, size))

	for i := range x {
		x[i] *= k[i]
	}

	y := fft.IFFT(x)

	output := make([]float64, len(data))
	for i := range output {
		output[i] = real(y[i])
	}

	return output, nil
}

func validateFIR(data, h []float64) error {
	if len(h) == 0 {
		return common.InvalidArgument("fir coefficients must not be empty")
	}
	if len(data) == 0 {
		return common.InvalidArgument("fir input must not be empty")
	}
	return nil
}
