// Package report renders filtered-vs-unfiltered comparison figures: the
// time-domain traces on top and the one-sided magnitude spectra on log-log
// axes below, written as a PNG.
package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/RyanBlaney/sonido-lowpass/algorithms/spectral"
)

var (
	unfilteredColor = color.RGBA{A: 255}         // black
	filteredColor   = color.RGBA{R: 220, A: 255} // red
	titleReplacer   = strings.NewReplacer(" ", "_", "(", "", ")", "", "=", "", "/", "_", "\\", "_")
)

// Comparison is everything needed to draw one figure
type Comparison struct {
	Title              string
	Timestamps         []float64
	Unfiltered         []float64
	Filtered           []float64
	UnfilteredSpectrum *spectral.Spectrum
	FilteredSpectrum   *spectral.Spectrum
}

// Validate checks that the traces line up with the timestamps
func (c *Comparison) Validate() error {
	if len(c.Timestamps) == 0 {
		return fmt.Errorf("comparison %q has no samples", c.Title)
	}
	if len(c.Unfiltered) != len(c.Timestamps) || len(c.Filtered) != len(c.Timestamps) {
		return fmt.Errorf("comparison %q: %d timestamps, %d unfiltered, %d filtered samples",
			c.Title, len(c.Timestamps), len(c.Unfiltered), len(c.Filtered))
	}
	if c.UnfilteredSpectrum == nil || c.FilteredSpectrum == nil {
		return fmt.Errorf("comparison %q is missing a spectrum", c.Title)
	}
	return nil
}

// Config controls the output image
type Config struct {
	OutputDir string
	Width     vg.Length
	Height    vg.Length
	DPI       int
}

// DefaultConfig returns a 10x6 inch, 300 dpi figure written to ./plots
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "plots",
		Width:     10 * vg.Inch,
		Height:    6 * vg.Inch,
		DPI:       300,
	}
}

// Renderer draws comparisons to PNG files
type Renderer struct {
	config *Config
}

// NewRenderer creates a renderer. A nil config uses DefaultConfig.
func NewRenderer(config *Config) *Renderer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Renderer{config: config}
}

// FileName turns a figure title into a file name: spaces become
// underscores and parentheses and '=' are dropped.
func FileName(title string) string {
	return titleReplacer.Replace(title) + ".png"
}

// Render draws c and writes it to OutputDir, creating the directory when
// needed. It returns the path of the written file.
func (r *Renderer) Render(c *Comparison) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	timePlot, err := r.timeDomainPlot(c)
	if err != nil {
		return "", fmt.Errorf("time domain plot: %w", err)
	}
	freqPlot, err := r.spectrumPlot(c)
	if err != nil {
		return "", fmt.Errorf("spectrum plot: %w", err)
	}

	img := vgimg.NewWith(
		vgimg.UseWH(r.config.Width, r.config.Height),
		vgimg.UseDPI(r.config.DPI),
	)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: 2,
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 4 * vg.Millimeter,
	}
	canvases := plot.Align([][]*plot.Plot{{timePlot}, {freqPlot}}, tiles, dc)
	timePlot.Draw(canvases[0][0])
	freqPlot.Draw(canvases[1][0])

	if err := os.MkdirAll(r.config.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create plot directory: %w", err)
	}

	path := filepath.Join(r.config.OutputDir, FileName(c.Title))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create plot file: %w", err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

func (r *Renderer) timeDomainPlot(c *Comparison) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Signal and Filtered Signal (%s)", c.Title)
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude"

	if err := addLine(p, "Unfiltered", c.Timestamps, c.Unfiltered, unfilteredColor, false); err != nil {
		return nil, err
	}
	if err := addLine(p, "Filtered", c.Timestamps, c.Filtered, filteredColor, false); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Renderer) spectrumPlot(c *Comparison) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("FFT Comparison (%s)", c.Title)
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "|Y(freq)|"

	u, f := c.UnfilteredSpectrum, c.FilteredSpectrum

	// a log axis needs a positive, non-degenerate range; very short signals
	// (only the DC bin, or a single positive bin) fall back to linear axes
	logAxes := hasLogRange(u.Frequencies, u.Magnitudes, f.Frequencies, f.Magnitudes)
	if logAxes {
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{}
		p.Y.Tick.Marker = plot.LogTicks{}
	}

	if err := addLine(p, "Unfiltered FFT", u.Frequencies, u.Magnitudes, unfilteredColor, logAxes); err != nil {
		return nil, err
	}
	if err := addLine(p, "Filtered FFT", f.Frequencies, f.Magnitudes, filteredColor, logAxes); err != nil {
		return nil, err
	}
	return p, nil
}

// hasLogRange reports whether the positive points of the two series span a
// non-empty range on both axes.
func hasLogRange(x1, y1, x2, y2 []float64) bool {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)

	scan := func(x, y []float64) {
		for i := range x {
			if x[i] <= 0 || y[i] <= 0 {
				continue
			}
			minX, maxX = math.Min(minX, x[i]), math.Max(maxX, x[i])
			minY, maxY = math.Min(minY, y[i]), math.Max(maxY, y[i])
		}
	}
	scan(x1, y1)
	scan(x2, y2)

	return minX < maxX && minY < maxY
}

// addLine plots (x, y) as a line. For log axes, points with a non-positive
// coordinate are dropped since they have no position on the axis.
func addLine(p *plot.Plot, name string, x, y []float64, c color.Color, logAxes bool) error {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if logAxes && (x[i] <= 0 || y[i] <= 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(pts) == 0 {
		return nil
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	line.Color = c
	line.Width = vg.Points(1)

	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}
