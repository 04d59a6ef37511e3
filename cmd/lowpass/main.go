// Command lowpass runs the low-pass filter experiments: every run loads a
// signal file, applies one filter and writes a figure comparing the
// filtered and unfiltered signal in time and frequency.
//
// Usage:
//
//	lowpass [flags]
//
// Without -runs the built-in experiment set is used (moving average, IIR
// and FIR tables for sigA.csv .. sigD.csv).
//
// Examples:
//
//	lowpass -data ./signals -plots ./plots
//	lowpass -runs runs.json -fft
//	lowpass -no-plots -log-level debug
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/RyanBlaney/sonido-lowpass/experiment"
	"github.com/RyanBlaney/sonido-lowpass/logging"
	"github.com/RyanBlaney/sonido-lowpass/report"
)

func main() {
	envFile := flag.String("env", ".env", "optional .env file with LOWPASS_* settings")
	dataDir := flag.String("data", "", "directory holding the signal files (overrides LOWPASS_DATA_DIR)")
	plotDir := flag.String("plots", "", "output directory for figures (overrides LOWPASS_PLOT_DIR)")
	runsFile := flag.String("runs", "", "JSON file with runs to execute (overrides LOWPASS_RUNS_FILE)")
	useFFT := flag.Bool("fft", false, "use FFT convolution for FIR runs")
	noPlots := flag.Bool("no-plots", false, "compute filters and spectra without writing figures")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides LOWPASS_LOG_LEVEL)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lowpass [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Applies FIR, moving-average and IIR low-pass filters to signal files\n")
		fmt.Fprintf(os.Stderr, "and plots filtered vs. unfiltered signals and spectra.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := experiment.LoadConfig(*envFile)
	if err != nil {
		logging.Fatal(err, "invalid configuration")
	}

	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *plotDir != "" {
		cfg.PlotDir = *plotDir
	}
	if *runsFile != "" {
		cfg.RunsFile = *runsFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	cfg.FFTConvolution = cfg.FFTConvolution || *useFFT
	cfg.SkipPlots = cfg.SkipPlots || *noPlots

	if err := cfg.Validate(); err != nil {
		logging.Fatal(err, "invalid configuration")
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.SetLevel(level)

	runs := experiment.DefaultRuns()
	if cfg.RunsFile != "" {
		if runs, err = experiment.LoadRuns(cfg.RunsFile); err != nil {
			logging.Fatal(err, "cannot load runs")
		}
	}

	var renderer experiment.Renderer
	if !cfg.SkipPlots {
		renderer = report.NewRenderer(cfg.ReportConfig())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("starting experiment", logging.Fields{
		"runs":     len(runs),
		"data_dir": cfg.DataDir,
		"plot_dir": cfg.PlotDir,
		"fft":      cfg.FFTConvolution,
	})

	runner := experiment.NewRunner(cfg, renderer, logging.GetGlobalLogger())
	summary, err := runner.ExecuteAll(ctx, runs)

	printSummary(os.Stdout, summary)

	if err != nil {
		logging.Error(err, "experiment finished with errors", logging.Fields{"failed": summary.Failed})
		stop()
		os.Exit(1)
	}
}

func printSummary(w io.Writer, summary *experiment.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tFs (Hz)\tPEAK IN (Hz)\tPEAK OUT (Hz)\tPLOT")
	for _, res := range summary.Results {
		peakIn, _, _ := res.UnfilteredSpectrum.Peak(true)
		peakOut, _, _ := res.FilteredSpectrum.Peak(true)
		plot := res.PlotPath
		if plot == "" {
			plot = "-"
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.2f\t%.2f\t%s\n", res.Title, res.SampleRate, peakIn, peakOut, plot)
	}
	tw.Flush()
}
