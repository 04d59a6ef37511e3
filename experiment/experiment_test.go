package experiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-lowpass/algorithms/common"
	"github.com/RyanBlaney/sonido-lowpass/algorithms/filters"
	"github.com/RyanBlaney/sonido-lowpass/report"
	"github.com/RyanBlaney/sonido-lowpass/source"
)

func TestDefaultRuns(t *testing.T) {
	runs := DefaultRuns()
	require.Len(t, runs, 20)

	counts := map[filters.Kind]int{}
	for _, run := range runs {
		require.NoError(t, run.Validate())
		counts[run.Filter.Kind]++
	}
	assert.Equal(t, 4, counts[filters.KindMoving])
	assert.Equal(t, 4, counts[filters.KindIIR])
	assert.Equal(t, 12, counts[filters.KindFIR])

	assert.Equal(t, "sigA.csv - Moving Avg (X=25)", runs[0].Title())
	assert.Equal(t, "sigC.csv - IIR (A=0.9, B=0.1)", runs[6].Title())
	assert.Equal(t, "sigA.csv - FIR (len(h)=3) [Cutoff=1000, BW=4000, Window=Rectangular]", runs[8].Title())
}

func TestDefaultRuns_FIRTablesHaveUnityDCGain(t *testing.T) {
	wantLens := []int{3, 11, 11, 13, 31, 31, 47, 47, 19, 11, 11, 25}

	var fir []Run
	for _, run := range DefaultRuns() {
		if run.Filter.Kind == filters.KindFIR {
			fir = append(fir, run)
		}
	}
	require.Len(t, fir, len(wantLens))

	for i, run := range fir {
		assert.Len(t, run.Filter.Coefficients, wantLens[i], run.Title())
		assert.InDelta(t, 1.0, floats.Sum(run.Filter.Coefficients), 1e-9, run.Title())
		require.NotNil(t, run.Design)
	}

	// each run owns its design and coefficients
	fir[0].Design.Window = "changed"
	fir[0].Filter.Coefficients[0] = 42
	again := DefaultRuns()[8]
	assert.Equal(t, "Rectangular", again.Design.Window)
	assert.NotEqual(t, 42.0, again.Filter.Coefficients[0])
}

func TestRun_Label(t *testing.T) {
	run := Run{Signal: "sigD.csv", Filter: filters.FIR([]float64{1}), Design: &Design{Cutoff: 40, Window: "Kaiser"}}
	assert.Equal(t, "FIR (len(h)=1) [Cutoff=40, Window=Kaiser]", run.Label())

	run.Design = &Design{}
	assert.Equal(t, "FIR (len(h)=1)", run.Label())

	run = Run{Signal: "sigD.csv", Filter: filters.IIR(0.5, 0.5), Design: &Design{Cutoff: 40}}
	assert.Equal(t, "IIR (A=0.5, B=0.5)", run.Label())
}

func TestRun_Validate(t *testing.T) {
	assert.Error(t, Run{Filter: filters.MovingAverage(3)}.Validate())

	err := Run{Signal: "a.csv", Filter: filters.MovingAverage(0)}.Validate()
	assert.True(t, errors.Is(err, common.ErrInvalidArgument))
}

func TestLoadRuns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.json")
	body := `[
		{"signal": "sigA.csv", "filter": {"kind": "moving", "x": 25}},
		{"signal": "sigB.csv", "filter": {"kind": "iir", "a": 0.95, "b": 0.05}},
		{"signal": "sigC.csv", "filter": {"kind": "fir", "h": [0.25, 0.5, 0.25]},
		 "design": {"cutoff": 250, "bandwidth": 625, "window": "Blackman"}}
	]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	runs, err := LoadRuns(path)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, filters.MovingAverage(25), runs[0].Filter)
	assert.Equal(t, 0.05, runs[1].Filter.B)
	assert.Equal(t, "sigC.csv - FIR (len(h)=3) [Cutoff=250, BW=625, Window=Blackman]", runs[2].Title())
}

func TestLoadRuns_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"empty.json":   `[]`,
		"broken.json":  `[{"signal":`,
		"unknown.json": `[{"signal": "a.csv", "filter": {"kind": "median"}}]`,
		"nofir.json":   `[{"signal": "a.csv", "filter": {"kind": "fir"}}]`,
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := LoadRuns(path)
		assert.Error(t, err, name)
	}

	_, err := LoadRuns(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{EnvDataDir, EnvPlotDir, EnvPlotWidth, EnvPlotHeight, EnvPlotDPI,
		EnvLogLevel, EnvFFTConvolution, EnvRunsFile, EnvSkipPlots}
	for _, k := range keys {
		prev, had := os.LookupEnv(k)
		require.NoError(t, os.Unsetenv(k))
		t.Cleanup(func() {
			if had {
				os.Setenv(k, prev)
			} else {
				os.Unsetenv(k)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPlotDir, "/tmp/out")
	t.Setenv(EnvPlotDPI, "96")
	t.Setenv(EnvFFTConvolution, "true")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.PlotDir)
	assert.Equal(t, 96, cfg.PlotDPI)
	assert.True(t, cfg.FFTConvolution)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOWPASS_DATA_DIR=signals\nLOWPASS_SKIP_PLOTS=1\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "signals", cfg.DataDir)
	assert.True(t, cfg.SkipPlots)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		EnvPlotDPI:        "lots",
		EnvPlotWidth:      "-1",
		EnvFFTConvolution: "maybe",
		EnvLogLevel:       "verbose",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestConfig_ReportConfig(t *testing.T) {
	rc := DefaultConfig().ReportConfig()
	assert.Equal(t, "plots", rc.OutputDir)
	assert.Equal(t, 300, rc.DPI)
	assert.InDelta(t, float64(report.DefaultConfig().Width), float64(rc.Width), 1e-9)
}

type recordingRenderer struct {
	comparisons []*report.Comparison
	fail        bool
}

func (r *recordingRenderer) Render(c *report.Comparison) (string, error) {
	if r.fail {
		return "", errors.New("disk full")
	}
	r.comparisons = append(r.comparisons, c)
	return "/plots/" + report.FileName(c.Title), nil
}

func sineSignal(name string, n int, sampleRate float64) *source.Signal {
	samples := make([]float64, n)
	for i := range samples {
		ts := float64(i) / sampleRate
		samples[i] = math.Sin(2*math.Pi*5*ts) + 0.5*math.Sin(2*math.Pi*0.4*sampleRate*ts)
	}
	sig, _ := source.Uniform(name, samples, sampleRate)
	return sig
}

func fakeLoader(loads map[string]int) Loader {
	return func(path string) (*source.Signal, error) {
		loads[path]++
		if strings.Contains(path, "missing") {
			return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
		}
		return sineSignal(filepath.Base(path), 400, 100), nil
	}
}

func TestRunner_Execute(t *testing.T) {
	renderer := &recordingRenderer{}
	cfg := DefaultConfig()
	cfg.DataDir = "data"
	loads := map[string]int{}

	r := NewRunner(cfg, renderer, nil)
	r.SetLoader(fakeLoader(loads))

	result, err := r.Execute(context.Background(), Run{Signal: "sigA.csv", Filter: filters.MovingAverage(5)})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Len(t, result.Filtered, 400)
	assert.Equal(t, 200, result.UnfilteredSpectrum.Len())
	assert.Equal(t, 200, result.FilteredSpectrum.Len())
	assert.InDelta(t, 400/3.99, result.SampleRate, 1e-9)
	assert.Equal(t, "/plots/sigA.csv_-_Moving_Avg_X5.png", result.PlotPath)
	assert.Equal(t, 1, loads[filepath.Join("data", "sigA.csv")])

	require.Len(t, renderer.comparisons, 1)
	c := renderer.comparisons[0]
	assert.Equal(t, "sigA.csv - Moving Avg (X=5)", c.Title)
	assert.Equal(t, result.Signal.Samples, c.Unfiltered)
}

func TestRunner_FilterAttenuatesHighFrequency(t *testing.T) {
	r := NewRunner(DefaultConfig(), nil, nil)
	r.SetLoader(fakeLoader(map[string]int{}))

	result, err := r.Execute(context.Background(), Run{Signal: "sigB.csv", Filter: filters.IIR(0.9, 0.1)})
	require.NoError(t, err)
	assert.Empty(t, result.PlotPath)

	// the 40 Hz component sits at bin 40*duration
	bin := int(math.Round(40 * 3.99))
	assert.Less(t, result.FilteredSpectrum.Magnitudes[bin], 0.5*result.UnfilteredSpectrum.Magnitudes[bin])
}

func TestRunner_FFTConvolutionMatchesDirect(t *testing.T) {
	run := DefaultRuns()[10] // 11-tap table
	require.Equal(t, filters.KindFIR, run.Filter.Kind)

	direct := NewRunner(DefaultConfig(), nil, nil)
	direct.SetLoader(fakeLoader(map[string]int{}))
	want, err := direct.Execute(context.Background(), run)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.FFTConvolution = true
	viaFFT := NewRunner(cfg, nil, nil)
	viaFFT.SetLoader(fakeLoader(map[string]int{}))
	got, err := viaFFT.Execute(context.Background(), run)
	require.NoError(t, err)

	assert.InDeltaSlice(t, want.Filtered, got.Filtered, 1e-9)
	assert.False(t, run.Filter.UseFFT)
}

func TestRunner_ExecuteAll(t *testing.T) {
	loads := map[string]int{}
	r := NewRunner(DefaultConfig(), &recordingRenderer{}, nil)
	r.SetLoader(fakeLoader(loads))

	runs := []Run{
		{Signal: "sigA.csv", Filter: filters.MovingAverage(3)},
		{Signal: "missing.csv", Filter: filters.MovingAverage(3)},
		{Signal: "sigA.csv", Filter: filters.IIR(0.9, 0.1)},
		{Signal: "sigA.csv", Filter: filters.Spec{Kind: "median"}},
	}

	summary, err := r.ExecuteAll(context.Background(), runs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, errors.Is(err, common.ErrInvalidArgument))

	assert.Equal(t, 2, summary.Failed)
	require.Len(t, summary.Results, 2)
	// sigA.csv is read once and shared between runs
	assert.Equal(t, 1, loads[filepath.Join(".", "sigA.csv")])
	assert.Same(t, summary.Results[0].Signal, summary.Results[1].Signal)
}

func TestRunner_RenderFailure(t *testing.T) {
	r := NewRunner(DefaultConfig(), &recordingRenderer{fail: true}, nil)
	r.SetLoader(fakeLoader(map[string]int{}))

	_, err := r.Execute(context.Background(), Run{Signal: "sigA.csv", Filter: filters.MovingAverage(3)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRunner_SkipPlots(t *testing.T) {
	renderer := &recordingRenderer{}
	cfg := DefaultConfig()
	cfg.SkipPlots = true
	r := NewRunner(cfg, renderer, nil)
	r.SetLoader(fakeLoader(map[string]int{}))

	_, err := r.Execute(context.Background(), Run{Signal: "sigA.csv", Filter: filters.MovingAverage(3)})
	require.NoError(t, err)
	assert.Empty(t, renderer.comparisons)
}

func TestRunner_SingleSampleSignal(t *testing.T) {
	r := NewRunner(DefaultConfig(), nil, nil)
	r.SetLoader(func(string) (*source.Signal, error) {
		return &source.Signal{Name: "one", Timestamps: []float64{0}, Samples: []float64{1}}, nil
	})

	_, err := r.Execute(context.Background(), Run{Signal: "one.csv", Filter: filters.IIR(0.9, 0.1)})
	assert.Error(t, err)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(DefaultConfig(), nil, nil)
	r.SetLoader(fakeLoader(map[string]int{}))

	summary, err := r.ExecuteAll(ctx, DefaultRuns())
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, summary.Results)
}

func TestRunner_EndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	plotDir := filepath.Join(t.TempDir(), "plots")

	var b strings.Builder
	sig := sineSignal("sigD.csv", 200, 400)
	for i := range sig.Samples {
		fmt.Fprintf(&b, "%g,%g\n", sig.Timestamps[i], sig.Samples[i])
	}
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "sigD.csv"), []byte(b.String()), 0o644))

	cfg := DefaultConfig()
	cfg.DataDir = dataDir
	cfg.PlotDir = plotDir
	cfg.PlotWidthInches, cfg.PlotHeightInches, cfg.PlotDPI = 4, 3, 72

	r := NewRunner(cfg, report.NewRenderer(cfg.ReportConfig()), nil)
	var runs []Run
	for _, run := range DefaultRuns() {
		if run.Signal == "sigD.csv" {
			runs = append(runs, run)
		}
	}
	require.Len(t, runs, 5)

	summary, err := r.ExecuteAll(context.Background(), runs)
	require.NoError(t, err)
	require.Len(t, summary.Results, 5)

	for _, res := range summary.Results {
		info, err := os.Stat(res.PlotPath)
		require.NoError(t, err, res.Title)
		assert.Greater(t, info.Size(), int64(0))
		assert.Len(t, res.Filtered, 200)
	}
}
