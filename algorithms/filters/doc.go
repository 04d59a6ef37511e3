// Package filters implements the low-pass filters applied by the experiment
// driver: causal FIR convolution, moving-average smoothing and a first-order
// recursive (IIR) filter.
//
// Every filter is a pure function over a fully buffered signal. The input is
// never modified and the returned slice always has the same length as the
// input. Coefficients are applied as given; designing them (windowed sinc,
// Kaiser, ...) is left to external tools.
package filters
