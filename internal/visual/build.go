package visual

import (
	"fmt"
	"math"

	"github.com/civicviz/reasons311/internal/config"
	"github.com/civicviz/reasons311/internal/model"
	"github.com/civicviz/reasons311/internal/scale"
)

const (
	tickSize    = 6
	tickPadding = 3
	axisColor   = "#000"

	// Baseline shifts for tick labels, in em.
	bottomLabelDY = 0.71
	leftLabelDY   = 0.32

	titleY    = -40
	subtitleY = -20
)

// Builder lays out charts for one fixed ChartConfig.
type Builder struct {
	cfg config.ChartConfig
}

// NewBuilder returns a Builder for cfg. cfg is copied.
func NewBuilder(cfg config.ChartConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build lays out top as a horizontal bar chart. It is pure: the same input
// always yields an identical Tree.
func Build(top model.Dataset, cfg config.ChartConfig) (*Tree, error) {
	return NewBuilder(cfg).Build(top)
}

// Build lays out top as a horizontal bar chart.
func (b *Builder) Build(top model.Dataset) (*Tree, error) {
	cfg := b.cfg
	w, h := cfg.PlotWidth(), cfg.PlotHeight()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("plot area %gx%g is empty", w, h)
	}

	maxCount, _ := top.MaxCount()
	x := scale.NewLinear(0, maxCount, 0, w)
	y := scale.NewBand(top.Reasons(), 0, h, cfg.BandPadding)

	t := &Tree{
		Width:      cfg.Width,
		Height:     cfg.Height,
		PlotWidth:  w,
		PlotHeight: h,
		Origin:     Point{X: cfg.Margin.Left, Y: cfg.Margin.Top},
		FontFamily: cfg.FontFamily,
		XDomain:    x.Domain,
		YDomain:    y.Domain(),
	}

	t.XAxis = b.bottomAxis(x, h)
	t.YAxis = b.leftAxis(y)
	t.Grids = []GridlineSet{b.xGrid(x, h), b.yGrid(y, w)}
	t.Bars, t.Labels = b.bars(top, x, y)
	t.Annotations = b.annotations(h)
	return t, nil
}

func (b *Builder) bottomAxis(x scale.Linear, h float64) Axis {
	r0, r1 := x.Range[0], x.Range[1]
	ax := Axis{
		Class: "x-axis",
		Color: axisColor,
		Domain: []Point{
			{r0, h + tickSize}, {r0, h}, {r1, h}, {r1, h + tickSize},
		},
	}

	format := x.TickFormat(b.cfg.TickCount)
	for _, v := range x.Ticks(b.cfg.TickCount) {
		pos := x.Map(v)
		ax.Ticks = append(ax.Ticks, AxisTick{
			Value: format(v),
			Pos:   pos,
			Mark:  Line{X1: pos, Y1: h, X2: pos, Y2: h + tickSize, Color: axisColor},
			Label: Text{
				Class:    "tick",
				X:        pos,
				Y:        h + tickSize + tickPadding + bottomLabelDY*b.cfg.AxisFontSize,
				Body:     format(v),
				Anchor:   AnchorMiddle,
				FontSize: b.cfg.AxisFontSize,
				Color:    b.cfg.TextColor,
			},
		})
	}
	return ax
}

func (b *Builder) leftAxis(y *scale.Band) Axis {
	ax := Axis{
		Class: "y-axis",
		Color: axisColor,
		Domain: []Point{
			{-tickSize, 0}, {0, 0}, {0, b.cfg.PlotHeight()}, {-tickSize, b.cfg.PlotHeight()},
		},
	}

	for _, label := range y.Domain() {
		pos, _ := y.Center(label)
		ax.Ticks = append(ax.Ticks, AxisTick{
			Value: label,
			Pos:   pos,
			Mark:  Line{X1: -tickSize, Y1: pos, X2: 0, Y2: pos, Color: axisColor},
			Label: Text{
				Class:    "tick",
				X:        -(tickSize + tickPadding),
				Y:        pos + leftLabelDY*b.cfg.AxisFontSize,
				Body:     label,
				Anchor:   AnchorEnd,
				FontSize: b.cfg.AxisFontSize,
				Color:    b.cfg.TextColor,
			},
		})
	}
	return ax
}

// xGrid draws a line at every x tick across the full plot height.
func (b *Builder) xGrid(x scale.Linear, h float64) GridlineSet {
	g := GridlineSet{Class: "grid"}
	for _, v := range x.Ticks(b.cfg.TickCount) {
		pos := x.Map(v)
		g.Lines = append(g.Lines, Line{X1: pos, Y1: h, X2: pos, Y2: 0, Color: b.cfg.GridColor})
	}
	return g
}

// yGrid draws a line at every band centre across the full plot width.
func (b *Builder) yGrid(y *scale.Band, w float64) GridlineSet {
	g := GridlineSet{Class: "grid"}
	for _, label := range y.Domain() {
		pos, _ := y.Center(label)
		g.Lines = append(g.Lines, Line{X1: 0, Y1: pos, X2: w, Y2: pos, Color: b.cfg.GridColor})
	}
	return g
}

func (b *Builder) bars(top model.Dataset, x scale.Linear, y *scale.Band) ([]Bar, []Text) {
	bars := make([]Bar, 0, len(top))
	labels := make([]Text, 0, len(top))
	for _, rec := range top {
		pos, _ := y.Position(rec.Reason)
		width, ok := BarWidth(x, rec.Count)

		bars = append(bars, Bar{
			Reason:  rec.Reason,
			Count:   rec.Count,
			Y:       pos,
			Width:   width,
			Height:  y.Bandwidth(),
			Fill:    b.cfg.BarColor,
			Invalid: !ok,
		})
		labels = append(labels, Text{
			Class:    "label",
			X:        width + b.cfg.LabelDX,
			Y:        pos + y.Bandwidth()/2 + b.cfg.LabelDY*b.cfg.LabelFontSize,
			Body:     rec.CountText(),
			Anchor:   AnchorStart,
			FontSize: b.cfg.LabelFontSize,
			Color:    b.cfg.TextColor,
		})
	}
	return bars, labels
}

// BarWidth maps count through x and checks the result. A width that is
// NaN, infinite, or negative is reported as (0, false).
func BarWidth(x scale.Linear, count float64) (float64, bool) {
	w := x.Map(count)
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, false
	}
	return w, true
}

func (b *Builder) annotations(h float64) []Text {
	text := func(class string, y float64, s config.TextStyle) Text {
		return Text{
			Class:    class,
			X:        0,
			Y:        y,
			Body:     s.Text,
			Anchor:   AnchorStart,
			FontSize: s.FontSize,
			Color:    s.Color,
			Bold:     s.Bold,
		}
	}
	return []Text{
		text("title", titleY, b.cfg.Title),
		text("subtitle", subtitleY, b.cfg.Subtitle),
		text("source", h+b.cfg.Margin.Top-10, b.cfg.Attribution),
	}
}
