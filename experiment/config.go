package experiment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gonum.org/v1/plot/vg"

	"github.com/RyanBlaney/sonido-lowpass/logging"
	"github.com/RyanBlaney/sonido-lowpass/report"
)

// Environment variables read by LoadConfig
const (
	EnvDataDir        = "LOWPASS_DATA_DIR"
	EnvPlotDir        = "LOWPASS_PLOT_DIR"
	EnvPlotWidth      = "LOWPASS_PLOT_WIDTH"  // inches
	EnvPlotHeight     = "LOWPASS_PLOT_HEIGHT" // inches
	EnvPlotDPI        = "LOWPASS_PLOT_DPI"
	EnvLogLevel       = "LOWPASS_LOG_LEVEL"
	EnvFFTConvolution = "LOWPASS_FFT_CONVOLUTION"
	EnvRunsFile       = "LOWPASS_RUNS_FILE"
	EnvSkipPlots      = "LOWPASS_SKIP_PLOTS"
)

// Config holds driver configuration
type Config struct {
	DataDir          string  `json:"data_dir"`           // directory holding the signal files
	PlotDir          string  `json:"plot_dir"`           // where figures are written
	PlotWidthInches  float64 `json:"plot_width_inches"`  // figure width
	PlotHeightInches float64 `json:"plot_height_inches"` // figure height
	PlotDPI          int     `json:"plot_dpi"`
	LogLevel         string  `json:"log_level"`       // debug, info, warn, error
	FFTConvolution   bool    `json:"fft_convolution"` // FIR runs use ApplyFIRFFT
	RunsFile         string  `json:"runs_file"`       // optional JSON run list, empty = built-in runs
	SkipPlots        bool    `json:"skip_plots"`      // compute only, write no figures
}

// DefaultConfig returns the settings the reference plots were made with
func DefaultConfig() *Config {
	return &Config{
		DataDir:          ".",
		PlotDir:          "plots",
		PlotWidthInches:  10,
		PlotHeightInches: 6,
		PlotDPI:          300,
		LogLevel:         "info",
		FFTConvolution:   false,
		RunsFile:         "",
		SkipPlots:        false,
	}
}

// LoadConfig loads envPath (a .env file) into the process environment when
// it exists and builds a Config from the environment, falling back to
// DefaultConfig values. A missing .env file is not an error.
func LoadConfig(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load %s: %w", envPath, err)
			}
			logging.Debug("env file not found, using environment", logging.Fields{"path": envPath})
		}
	}

	def := DefaultConfig()
	cfg := &Config{}
	var err error

	cfg.DataDir = getEnv(EnvDataDir, def.DataDir)
	cfg.PlotDir = getEnv(EnvPlotDir, def.PlotDir)
	cfg.LogLevel = getEnv(EnvLogLevel, def.LogLevel)
	cfg.RunsFile = getEnv(EnvRunsFile, def.RunsFile)

	if cfg.PlotWidthInches, err = getEnvFloat(EnvPlotWidth, def.PlotWidthInches); err != nil {
		return nil, err
	}
	if cfg.PlotHeightInches, err = getEnvFloat(EnvPlotHeight, def.PlotHeightInches); err != nil {
		return nil, err
	}
	if cfg.PlotDPI, err = getEnvInt(EnvPlotDPI, def.PlotDPI); err != nil {
		return nil, err
	}
	if cfg.FFTConvolution, err = getEnvBool(EnvFFTConvolution, def.FFTConvolution); err != nil {
		return nil, err
	}
	if cfg.SkipPlots, err = getEnvBool(EnvSkipPlots, def.SkipPlots); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.PlotWidthInches <= 0 || c.PlotHeightInches <= 0 {
		return fmt.Errorf("plot size must be positive, got %vx%v in", c.PlotWidthInches, c.PlotHeightInches)
	}
	if c.PlotDPI <= 0 {
		return fmt.Errorf("plot dpi must be positive, got %d", c.PlotDPI)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ReportConfig converts the plot settings for the renderer
func (c *Config) ReportConfig() *report.Config {
	return &report.Config{
		OutputDir: c.PlotDir,
		Width:     vg.Length(c.PlotWidthInches) * vg.Inch,
		Height:    vg.Length(c.PlotHeightInches) * vg.Inch,
		DPI:       c.PlotDPI,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
