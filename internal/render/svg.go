package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/civicviz/reasons311/internal/visual"
)

// WriteSVG writes t as a standalone SVG document. Groups and classes follow
// the layout of the tree: x-axis, y-axis, grid, bar, label, and annotations.
func WriteSVG(w io.Writer, t *visual.Tree) error {
	sw := &svgWriter{w: bufio.NewWriter(w)}

	sw.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s">`+"\n",
		num(t.Width), num(t.Height), num(t.Width), num(t.Height), esc(t.FontFamily))
	sw.printf(`<g transform="translate(%s,%s)">`+"\n", num(t.Origin.X), num(t.Origin.Y))

	sw.axis(t.XAxis, "middle")
	sw.axis(t.YAxis, "end")
	for _, g := range t.Grids {
		sw.grid(g)
	}
	for _, b := range t.Bars {
		sw.bar(b)
	}
	for _, l := range t.Labels {
		sw.text(l)
	}
	for _, a := range t.Annotations {
		sw.text(a)
	}

	sw.printf("</g>\n</svg>\n")
	if sw.err != nil {
		return fmt.Errorf("writing SVG: %w", sw.err)
	}
	if err := sw.w.Flush(); err != nil {
		return fmt.Errorf("writing SVG: %w", err)
	}
	return nil
}

type svgWriter struct {
	w   *bufio.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *svgWriter) axis(a visual.Axis, anchor string) {
	s.printf(`<g class="%s" fill="none" text-anchor="%s">`+"\n", esc(a.Class), anchor)
	if len(a.Domain) > 0 {
		s.printf(`<path class="domain" stroke="%s" d="%s"/>`+"\n", esc(a.Color), pathData(a.Domain))
	}
	for _, tk := range a.Ticks {
		s.printf(`<g class="tick">`)
		s.line(tk.Mark)
		s.text(tk.Label)
		s.printf("</g>\n")
	}
	s.printf("</g>\n")
}

func (s *svgWriter) grid(g visual.GridlineSet) {
	s.printf(`<g class="%s">`+"\n", esc(g.Class))
	for _, l := range g.Lines {
		s.line(l)
		s.printf("\n")
	}
	s.printf("</g>\n")
}

func (s *svgWriter) line(l visual.Line) {
	s.printf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`,
		num(l.X1), num(l.Y1), num(l.X2), num(l.Y2), esc(l.Color))
}

func (s *svgWriter) bar(b visual.Bar) {
	class := "bar"
	if b.Invalid {
		class = "bar invalid"
	}
	s.printf(`<rect class="%s" x="%s" y="%s" width="%s" height="%s" fill="%s"><title>%s</title></rect>`+"\n",
		class, num(b.X), num(b.Y), num(b.Width), num(b.Height), esc(b.Fill), esc(b.Reason))
}

func (s *svgWriter) text(t visual.Text) {
	var attrs strings.Builder
	fmt.Fprintf(&attrs, `class="%s" x="%s" y="%s"`, esc(t.Class), num(t.X), num(t.Y))
	if t.Anchor != "" && t.Anchor != visual.AnchorStart {
		fmt.Fprintf(&attrs, ` text-anchor="%s"`, t.Anchor)
	}
	if t.FontSize > 0 {
		fmt.Fprintf(&attrs, ` font-size="%s"`, num(t.FontSize))
	}
	if t.Color != "" {
		fmt.Fprintf(&attrs, ` fill="%s"`, esc(t.Color))
	}
	if t.Bold {
		attrs.WriteString(` font-weight="bold"`)
	}
	s.printf(`<text %s>%s</text>`+"\n", attrs.String(), esc(t.Body))
}

func pathData(pts []visual.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString("L")
		}
		b.WriteString(num(p.X))
		b.WriteString(",")
		b.WriteString(num(p.Y))
	}
	return b.String()
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
