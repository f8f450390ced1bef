// Package visual turns the top reasons into a declarative chart description.
// Nothing here draws; render mounts a Tree onto a concrete target.
package visual

// Anchor is the horizontal alignment of a text primitive.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Point is a position in plot coordinates.
type Point struct {
	X, Y float64
}

// Line is a stroked segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          string
}

// Text is a single line of text. Y is the baseline with any em offset
// already applied.
type Text struct {
	Class    string
	X, Y     float64
	Body     string
	Anchor   Anchor
	FontSize float64
	Color    string
	Bold     bool
}

// AxisTick is one tick mark and its label.
type AxisTick struct {
	Value string // the domain value the tick stands for
	Pos   float64
	Mark  Line
	Label Text
}

// Axis is a domain path plus ticks.
type Axis struct {
	Class  string
	Domain []Point
	Color  string
	Ticks  []AxisTick
}

// GridlineSet is a group of unlabeled reference lines.
type GridlineSet struct {
	Class string
	Lines []Line
}

// Bar is one filled rectangle. Invalid marks a bar whose width could not
// be computed from its count and was drawn at zero width.
type Bar struct {
	Reason  string
	Count   float64
	X, Y    float64
	Width   float64
	Height  float64
	Fill    string
	Invalid bool
}

// Tree is the complete chart. Primitive coordinates are relative to
// Origin, the top-left corner of the plot area.
type Tree struct {
	Width, Height         float64
	PlotWidth, PlotHeight float64
	Origin                Point
	FontFamily            string

	XDomain [2]float64
	YDomain []string

	XAxis       Axis
	YAxis       Axis
	Grids       []GridlineSet
	Bars        []Bar
	Labels      []Text
	Annotations []Text
}

// Texts returns every text primitive in draw order.
func (t *Tree) Texts() []Text {
	var out []Text
	for _, tk := range t.XAxis.Ticks {
		out = append(out, tk.Label)
	}
	for _, tk := range t.YAxis.Ticks {
		out = append(out, tk.Label)
	}
	out = append(out, t.Labels...)
	out = append(out, t.Annotations...)
	return out
}
