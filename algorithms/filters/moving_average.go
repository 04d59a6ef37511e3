package filters

import (
	"github.com/RyanBlaney/sonido-lowpass/algorithms/common"
)

// ApplyMovingAverage smooths data with a window of x samples.
//
//	y[i] = mean(x[0..i])       for i <  X   (growing prefix, includes i)
//	y[i] = mean(x[i-X..i-1])   for i >= X   (previous X samples, excludes i)
//
// The trailing branch deliberately leaves out the current sample. This is
// the behaviour the experiment plots were produced with; do not change it
// without checking the reference results.
func ApplyMovingAverage(data []float64, x int) ([]float64, error) {
	if x <= 0 {
		return nil, common.InvalidArgument("moving average window must be positive, got %d", x)
	}
	if len(data) == 0 {
		return nil, common.InvalidArgument("moving average input must not be empty")
	}

	output := make([]float64, len(data))
	for i := range data {
		if i < x {
			output[i] = common.Mean(data[:i+1])
		} else {
			output[i] = common.Mean(data[i-x : i])
		}
	}

	return output, nil
}
