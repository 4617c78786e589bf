package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

const tickDateLayout = "2006-01-02"

// legendGap separates the key column from the canvas edge and the panels.
const legendGap = vg.Millimeter * 2

// Options configures the rendered figure.
type Options struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
	// FoldChange adds the fold-change panel next to the cost bars.
	FoldChange bool
}

// RendererImpl implementa o ChartRenderer com gonum/plot.
type RendererImpl struct {
	opts Options
}

// NewRenderer cria um novo renderizador de PNG.
func NewRenderer(opts Options) repository.ChartRenderer {
	return newRenderer(opts)
}

func newRenderer(opts Options) *RendererImpl {
	if opts.WidthInches <= 0 {
		opts.WidthInches = types.DefaultChartWidthInches
	}
	if opts.HeightInches <= 0 {
		opts.HeightInches = types.DefaultChartHeightInches
	}
	if opts.DPI <= 0 {
		opts.DPI = types.DefaultChartDPI
	}
	return &RendererImpl{opts: opts}
}

// figure is the set of panels drawn side by side, plus the legend labels
// in the order they were added. The key is drawn in its own column left of
// the panels so it never covers a bar.
type figure struct {
	panels []*plot.Plot
	legend []string
	key    plot.Legend
}

// legendWidth is the width of the key column, zero when there is nothing
// to list.
func (f *figure) legendWidth() vg.Length {
	if len(f.legend) == 0 {
		return 0
	}
	var text vg.Length
	for _, name := range f.legend {
		text = max(text, f.key.TextStyle.Width(name))
	}
	return text + f.key.ThumbnailWidth + 3*f.key.Padding + 2*legendGap
}

// layout splits c into the key column and the area shared by the panels.
func (f *figure) layout(c draw.Canvas) (key, panels draw.Canvas) {
	w := f.legendWidth()
	if w == 0 {
		return draw.Crop(c, 0, c.Min.X-c.Max.X, 0, 0), c
	}
	key = draw.Crop(c, 0, w-(c.Max.X-c.Min.X), 0, 0)
	panels = draw.Crop(c, w, 0, 0, 0)
	return key, panels
}

// Render draws the view and encodes it as PNG. An empty view still yields
// a valid image with axes and no series.
func (r *RendererImpl) Render(view entity.ReportView) ([]byte, error) {
	fig, err := r.compose(view)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRenderFailed, err)
	}

	width := vg.Length(r.opts.WidthInches) * vg.Inch
	height := vg.Length(r.opts.HeightInches) * vg.Inch
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(r.opts.DPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(fig.panels),
		PadX:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	keyArea, panelArea := fig.layout(dc)
	canvases := plot.Align([][]*plot.Plot{fig.panels}, tiles, panelArea)
	for j, p := range fig.panels {
		p.Draw(canvases[0][j])
	}
	if len(fig.legend) > 0 {
		fig.key.Draw(draw.Crop(keyArea, legendGap, -legendGap, tiles.PadBottom, -tiles.PadTop))
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: encoding PNG: %v", types.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func (r *RendererImpl) compose(view entity.ReportView) (*figure, error) {
	palette := Palette(len(view.Projects))
	labels := make([]string, len(view.Dates))
	for i, d := range view.Dates {
		labels[i] = d.Format(tickDateLayout)
	}

	cols := 1
	if r.opts.FoldChange {
		cols = 2
	}
	panelWidth := vg.Length(r.opts.WidthInches) * vg.Inch / vg.Length(cols)

	fig := &figure{key: plot.NewLegend()}
	fig.key.Top = true
	fig.key.Left = true
	costs, err := costPanel(view, labels, palette, panelWidth, &fig.key)
	if err != nil {
		return nil, err
	}
	fig.panels = append(fig.panels, costs)
	for _, p := range view.Projects {
		fig.legend = append(fig.legend, p.Name)
	}

	if r.opts.FoldChange {
		folds, err := foldChangePanel(view, labels, palette)
		if err != nil {
			return nil, err
		}
		fig.panels = append(fig.panels, folds)
	}
	return fig, nil
}

// costPanel stacks one bar series per project, bottom to top in rank order,
// and registers each series in key.
func costPanel(view entity.ReportView, labels []string, palette []color.Color, panelWidth vg.Length, key *plot.Legend) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = costTitle(view.Window)
	p.Y.Label.Text = "Cost (USD)"
	p.Y.Min = 0
	rotateDateTicks(p)
	if len(labels) == 0 {
		return p, nil
	}
	p.NominalX(labels...)
	p.X.Min = -0.5
	p.X.Max = float64(len(labels)) - 0.5

	barWidth := panelWidth * 0.6 / vg.Length(len(labels))
	var below *plotter.BarChart
	for j, project := range view.Projects {
		values := make(plotter.Values, len(view.Dates))
		for i := range view.Dates {
			values[i] = view.Costs[i][j]
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("bars for %s: %w", project.Name, err)
		}
		bars.Color = palette[j]
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		key.Add(project.Name, bars)
		below = bars
	}
	return p, nil
}

// costTitle names the first and last day drawn; the window end itself is
// exclusive and never has a bar.
func costTitle(w entity.TimeWindow) string {
	if w.Len() == 0 {
		return "Daily cost"
	}
	return fmt.Sprintf("Daily cost, %s to %s", w.Start.Format(tickDateLayout), w.LastDay().Format(tickDateLayout))
}

func foldChangePanel(view entity.ReportView, labels []string, palette []color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Fold change"
	p.Y.Label.Text = fmt.Sprintf("Fold change over %d-day rolling median", view.RollingWindow)

	ticks := make(plot.ConstantTicks, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}
	p.X.Tick.Marker = ticks
	p.X.Min = -0.5
	p.X.Max = float64(len(labels)) - 0.5
	rotateDateTicks(p)

	for j := range view.Projects {
		column := make([]float64, len(view.Dates))
		for i := range view.Dates {
			column[i] = view.FoldChange[i][j]
		}
		for _, seg := range segments(column) {
			line, points, err := plotter.NewLinePoints(seg)
			if err != nil {
				return nil, fmt.Errorf("fold change for %s: %w", view.Projects[j].Name, err)
			}
			line.Color = palette[j]
			line.Width = vg.Points(1.5)
			points.Color = palette[j]
			points.Radius = vg.Points(2)
			points.Shape = draw.CircleGlyph{}
			p.Add(line, points)
		}
	}
	return p, nil
}

// segments splits a series at undefined values so each returned run only
// holds finite points; gaps are left undrawn.
func segments(values []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(i), Y: v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func rotateDateTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}
