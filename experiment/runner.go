package experiment

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/RyanBlaney/sonido-lowpass/algorithms/filters"
	"github.com/RyanBlaney/sonido-lowpass/algorithms/spectral"
	"github.com/RyanBlaney/sonido-lowpass/logging"
	"github.com/RyanBlaney/sonido-lowpass/report"
	"github.com/RyanBlaney/sonido-lowpass/source"
)

// Renderer persists a comparison figure and returns where it was written
type Renderer interface {
	Render(c *report.Comparison) (string, error)
}

// Loader reads a signal file
type Loader func(path string) (*source.Signal, error)

// Result is the outcome of one run
type Result struct {
	ID                 string             `json:"id"`
	Run                Run                `json:"run"`
	Title              string             `json:"title"`
	Signal             *source.Signal     `json:"-"`
	Filtered           []float64          `json:"-"`
	UnfilteredSpectrum *spectral.Spectrum `json:"-"`
	FilteredSpectrum   *spectral.Spectrum `json:"-"`
	SampleRate         float64            `json:"sample_rate"`
	PlotPath           string             `json:"plot_path,omitempty"`
}

// Summary collects the results of a batch
type Summary struct {
	Results []*Result
	Failed  int
}

// Runner loads signals, filters them, computes both spectra and hands the
// comparison to the renderer.
type Runner struct {
	config   *Config
	renderer Renderer
	load     Loader
	logger   logging.Logger
}

// NewRunner creates a runner. renderer may be nil to skip figures; a nil
// logger discards log output.
func NewRunner(config *Config, renderer Renderer, logger logging.Logger) *Runner {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Runner{
		config:   config,
		renderer: renderer,
		load:     source.Load,
		logger:   logger,
	}
}

// SetLoader replaces the signal reader, mainly for tests
func (r *Runner) SetLoader(load Loader) {
	r.load = load
}

// ExecuteAll runs every entry in order. A failing run is logged and
// counted and the batch continues; the joined errors are returned with the
// summary. Cancellation of ctx stops the batch between runs.
func (r *Runner) ExecuteAll(ctx context.Context, runs []Run) (*Summary, error) {
	summary := &Summary{}
	signals := make(map[string]*source.Signal)
	var errs []error

	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return summary, errors.Join(append(errs, err)...)
		}

		result, err := r.execute(ctx, run, signals)
		if err != nil {
			summary.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", run.Title(), err))
			r.logger.Error(err, "run failed", logging.Fields{"signal": run.Signal, "filter": run.Label()})
			continue
		}
		summary.Results = append(summary.Results, result)
	}

	r.logger.Info("experiment finished", logging.Fields{
		"runs":      len(runs),
		"succeeded": len(summary.Results),
		"failed":    summary.Failed,
	})

	return summary, errors.Join(errs...)
}

// Execute performs a single run
func (r *Runner) Execute(ctx context.Context, run Run) (*Result, error) {
	return r.execute(ctx, run, nil)
}

func (r *Runner) execute(ctx context.Context, run Run, cache map[string]*source.Signal) (*Result, error) {
	if err := run.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := r.logger.WithContext(ctx).WithFields(logging.Fields{
		"run_id": id,
		"signal": run.Signal,
		"filter": run.Label(),
	})

	sig, err := r.signal(run.Signal, cache)
	if err != nil {
		return nil, err
	}

	duration := sig.Duration()
	if duration <= 0 {
		return nil, fmt.Errorf("signal %s spans no time (%d samples)", sig.Name, sig.Len())
	}
	logger.Info("sampling frequency", logging.Fields{"sample_rate": sig.SampleRate(), "samples": sig.Len()})

	spec := run.Filter
	if spec.Kind == filters.KindFIR && r.config.FFTConvolution {
		spec.UseFFT = true
	}

	filtered, err := spec.Apply(sig.Samples)
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", run.Label(), err)
	}

	unfilteredSpectrum, err := spectral.ComputeOneSidedSpectrum(sig.Samples, duration)
	if err != nil {
		return nil, fmt.Errorf("unfiltered spectrum: %w", err)
	}
	filteredSpectrum, err := spectral.ComputeOneSidedSpectrum(filtered, duration)
	if err != nil {
		return nil, fmt.Errorf("filtered spectrum: %w", err)
	}

	result := &Result{
		ID:                 id,
		Run:                run,
		Title:              run.Title(),
		Signal:             sig,
		Filtered:           filtered,
		UnfilteredSpectrum: unfilteredSpectrum,
		FilteredSpectrum:   filteredSpectrum,
		SampleRate:         unfilteredSpectrum.SampleRate,
	}

	if peak, _, ok := unfilteredSpectrum.Peak(true); ok {
		logger.Debug("dominant frequency", logging.Fields{"hz": peak})
	}

	if r.renderer != nil && !r.config.SkipPlots {
		path, err := r.renderer.Render(&report.Comparison{
			Title:              result.Title,
			Timestamps:         sig.Timestamps,
			Unfiltered:         sig.Samples,
			Filtered:           filtered,
			UnfilteredSpectrum: unfilteredSpectrum,
			FilteredSpectrum:   filteredSpectrum,
		})
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.PlotPath = path
		logger.Info("saved plot", logging.Fields{"path": path})
	}

	return result, nil
}

func (r *Runner) signal(name string, cache map[string]*source.Signal) (*source.Signal, error) {
	if sig, ok := cache[name]; ok {
		return sig, nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.config.DataDir, name)
	}

	sig, err := r.load(path)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache[name] = sig
	}
	return sig, nil
}
