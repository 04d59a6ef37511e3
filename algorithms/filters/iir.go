package filters

import (
	"github.com/RyanBlaney/sonido-lowpass/algorithms/common"
)

// ApplyIIR runs the first-order recursive low-pass filter
//
//	y[0] = x[0]
//	y[i] = A*y[i-1] + B*x[i]
//
// The filter is only stable for |A| < 1. Other values are accepted and
// produce the diverging (or non-decaying) output the recurrence implies.
// Unity DC gain needs A + B = 1, e.g. A=0.9, B=0.1.
func ApplyIIR(data []float64, a, b float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, common.InvalidArgument("iir input must not be empty")
	}

	output := make([]float64, len(data))
	output[0] = data[0]
	for i := 1; i < len(data); i++ {
		output[i] = a*output[i-1] + b*data[i]
	}

	return output, nil
}
