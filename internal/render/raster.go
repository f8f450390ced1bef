package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/civicviz/reasons311/internal/visual"
)

// rasterDPI makes one font point equal one pixel, so config font sizes
// mean the same thing in PNG and SVG output.
const rasterDPI = 72

// WritePNG rasterizes t with go-chart on a white background.
func WritePNG(w io.Writer, t *visual.Tree) error {
	r, err := chart.PNG(int(math.Ceil(t.Width)), int(math.Ceil(t.Height)))
	if err != nil {
		return fmt.Errorf("creating PNG renderer: %w", err)
	}
	if err := Draw(r, t, drawing.ColorWhite); err != nil {
		return err
	}
	if err := r.Save(w); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// Draw paints t onto any go-chart renderer. A transparent background
// leaves the canvas untouched.
func Draw(r chart.Renderer, t *visual.Tree, background drawing.Color) error {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	r.SetDPI(rasterDPI)

	p := &painter{r: r, font: font, ox: t.Origin.X, oy: t.Origin.Y}
	if background.A > 0 {
		p.fillRect(-t.Origin.X, -t.Origin.Y, t.Width, t.Height, background)
	}

	for _, ax := range []visual.Axis{t.XAxis, t.YAxis} {
		if err := p.axis(ax); err != nil {
			return err
		}
	}
	for _, g := range t.Grids {
		for _, l := range g.Lines {
			if err := p.line(l); err != nil {
				return err
			}
		}
	}
	for _, b := range t.Bars {
		c, err := ParseColor(b.Fill)
		if err != nil {
			return fmt.Errorf("bar %q: %w", b.Reason, err)
		}
		p.fillRect(b.X, b.Y, b.Width, b.Height, c)
	}
	for _, txt := range t.Texts() {
		if err := p.text(txt); err != nil {
			return err
		}
	}
	return nil
}

type painter struct {
	r      chart.Renderer
	font   *truetype.Font
	ox, oy float64
}

func (p *painter) px(x, y float64) (int, int) {
	return int(math.Round(p.ox + x)), int(math.Round(p.oy + y))
}

func (p *painter) fillRect(x, y, w, h float64, c drawing.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := p.px(x, y)
	x1, y1 := p.px(x+w, y+h)
	if x1 == x0 || y1 == y0 {
		return
	}
	p.r.ResetStyle()
	p.r.SetFillColor(c)
	p.r.MoveTo(x0, y0)
	p.r.LineTo(x1, y0)
	p.r.LineTo(x1, y1)
	p.r.LineTo(x0, y1)
	p.r.Close()
	p.r.Fill()
}

func (p *painter) stroke(color string, pts ...visual.Point) error {
	c, err := ParseColor(color)
	if err != nil {
		return err
	}
	p.r.ResetStyle()
	p.r.SetStrokeColor(c)
	p.r.SetStrokeWidth(1)
	for i, pt := range pts {
		x, y := p.px(pt.X, pt.Y)
		if i == 0 {
			p.r.MoveTo(x, y)
		} else {
			p.r.LineTo(x, y)
		}
	}
	p.r.Stroke()
	return nil
}

func (p *painter) line(l visual.Line) error {
	return p.stroke(l.Color, visual.Point{X: l.X1, Y: l.Y1}, visual.Point{X: l.X2, Y: l.Y2})
}

func (p *painter) axis(a visual.Axis) error {
	if len(a.Domain) > 0 {
		if err := p.stroke(a.Color, a.Domain...); err != nil {
			return fmt.Errorf("%s domain: %w", a.Class, err)
		}
	}
	for _, tk := range a.Ticks {
		if err := p.line(tk.Mark); err != nil {
			return fmt.Errorf("%s tick %q: %w", a.Class, tk.Value, err)
		}
	}
	return nil
}

// text draws one label. go-chart ships a single font weight, so Bold has
// no effect on raster output.
func (p *painter) text(t visual.Text) error {
	if t.Body == "" {
		return nil
	}
	c, err := ParseColor(t.Color)
	if err != nil {
		return fmt.Errorf("text %q: %w", t.Body, err)
	}
	p.r.ResetStyle()
	p.r.SetFont(p.font)
	p.r.SetFontSize(t.FontSize)
	p.r.SetFontColor(c)

	x := t.X
	switch t.Anchor {
	case visual.AnchorMiddle:
		x -= float64(p.r.MeasureText(t.Body).Width()) / 2
	case visual.AnchorEnd:
		x -= float64(p.r.MeasureText(t.Body).Width())
	}
	px, py := p.px(x, t.Y)
	p.r.Text(t.Body, px, py)
	return nil
}

// ParseColor accepts "#rgb", "#rrggbb", or "none". Empty means black.
func ParseColor(s string) (drawing.Color, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return drawing.ColorBlack, nil
	case "none", "transparent":
		return drawing.ColorTransparent, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid color %q", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return drawing.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return drawing.ColorFromHex(hex), nil
}
