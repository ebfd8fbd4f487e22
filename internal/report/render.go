// Package report turns a results table into per-alpha comparison charts.
package report

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"casebench/internal/benchmark"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// Y axis bounds of the normalized time.
	yMin = 0.0005
	yMax = 1.2

	defaultDPI = 200
)

var (
	serialColor = color.RGBA{R: 135, G: 206, B: 235, A: 255} // skyblue
	alignColors = []color.Color{
		color.RGBA{R: 255, G: 165, A: 255},       // orange
		color.RGBA{R: 165, G: 42, B: 42, A: 255}, // brown
	}
	alignShapes = []draw.GlyphDrawer{
		draw.CircleGlyph{},
		draw.BoxGlyph{},
	}
)

// Renderer writes one PNG per alpha into Dir.
type Renderer struct {
	Dir    string
	Alphas []int
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// NewRenderer returns a Renderer with the stock 9x5 inch, 200 dpi layout.
func NewRenderer(dir string, alphas []int) *Renderer {
	return &Renderer{
		Dir:    dir,
		Alphas: alphas,
		Width:  9 * vg.Inch,
		Height: 5 * vg.Inch,
		DPI:    defaultDPI,
	}
}

// FigurePath is where the chart for alpha is written.
func FigurePath(dir string, alpha int) string {
	return filepath.Join(dir, fmt.Sprintf("figure_alpha_%d.png", alpha))
}

// Render draws every alpha of r.Alphas that has rows in t and returns the
// written paths in alpha order.
func (r *Renderer) Render(t benchmark.Table) ([]string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", r.Dir, err)
	}

	var written []string
	for _, alpha := range r.Alphas {
		subset := t.WithAlpha(alpha)
		if len(subset) == 0 {
			continue
		}

		p, err := Figure(subset, alpha)
		if err != nil {
			return written, fmt.Errorf("chart for alpha %d: %w", alpha, err)
		}

		path := FigurePath(r.Dir, alpha)
		if err := r.save(p, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// Figure builds the chart for the rows of a single alpha.
func Figure(subset benchmark.Table, alpha int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Performance Comparison (α=%d%%)", alpha)
	p.X.Label.Text = "Input Vector Size (bytes)"
	p.Y.Label.Text = "Normalized Execution Time (SIMD / Serial)"

	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.Padding = 1 * vg.Millimeter

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Vertical.Color = color.Gray{Y: 200}
	grid.Horizontal.Color = color.Gray{Y: 200}
	p.Add(grid)

	baseline := make(plotter.XYs, 0, len(subset))
	for _, size := range subset.Sizes() {
		if size > 0 {
			baseline = append(baseline, plotter.XY{X: float64(size), Y: 1})
		}
	}
	if len(baseline) == 0 {
		return nil, fmt.Errorf("no plottable sizes")
	}
	serial, err := plotter.NewLine(baseline)
	if err != nil {
		return nil, err
	}
	serial.LineStyle.Width = vg.Points(2)
	serial.LineStyle.Color = serialColor
	p.Add(serial)
	p.Legend.Add("Serial Implementation", serial)

	for i, align := range subset.Aligns() {
		pts := normalized(subset.WithAlign(align))
		if len(pts) == 0 {
			continue
		}

		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		c := alignColor(i)
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = c
		scatter.GlyphStyle.Color = c
		scatter.GlyphStyle.Shape = alignShape(i)
		scatter.GlyphStyle.Radius = vg.Points(3)

		p.Add(line, scatter)
		p.Legend.Add(fmt.Sprintf("SIMD Implementation (%d-byte aligned)", align), line, scatter)
	}

	// Adding plotters widens the axes to the data; pin Y afterwards.
	p.Y.Min = yMin
	p.Y.Max = yMax
	if p.X.Min == p.X.Max {
		// A single size would collapse the log axis.
		p.X.Min /= 2
		p.X.Max *= 2
	}
	return p, nil
}

// normalized returns SIMD/serial against size, ordered by size. Points that
// cannot sit on a log axis are dropped.
func normalized(t benchmark.Table) plotter.XYs {
	sorted := t.SortedBySize()
	pts := make(plotter.XYs, 0, len(sorted))
	for _, r := range sorted {
		ratio := r.Ratio()
		if r.Size <= 0 || ratio <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(r.Size), Y: ratio})
	}
	return pts
}

func alignColor(i int) color.Color {
	if i < len(alignColors) {
		return alignColors[i]
	}
	return plotutil.Color(i)
}

func alignShape(i int) draw.GlyphDrawer {
	if i < len(alignShapes) {
		return alignShapes[i]
	}
	return plotutil.Shape(i)
}

func (r *Renderer) save(p *plot.Plot, path string) error {
	dpi := r.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}
	w, h := r.Width, r.Height
	if w <= 0 || h <= 0 {
		w, h = 9*vg.Inch, 5*vg.Inch
	}
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
