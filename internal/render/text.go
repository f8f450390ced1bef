package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/civicviz/reasons311/internal/model"
	"github.com/civicviz/reasons311/internal/visual"
)

const maxLabelWidth = 40

// WriteText draws t as a terminal bar chart. The longest possible bar is
// columns cells wide. Colors are emitted only when w is a color terminal.
func WriteText(w io.Writer, t *visual.Tree, columns int) error {
	re := lipgloss.NewRenderer(w)

	labelWidth := 0
	for _, b := range t.Bars {
		labelWidth = max(labelWidth, runewidth.StringWidth(b.Reason))
	}
	labelWidth = min(labelWidth, maxLabelWidth)

	var out strings.Builder
	for _, a := range t.Annotations {
		if a.Class == "source" {
			continue
		}
		out.WriteString(annotationStyle(re, a).Render(a.Body))
		out.WriteString("\n")
	}
	out.WriteString("\n")

	for _, b := range t.Bars {
		label := runewidth.Truncate(b.Reason, labelWidth, "…")
		label = runewidth.FillLeft(label, labelWidth)

		cells := 0
		if t.PlotWidth > 0 && !b.Invalid {
			cells = int(math.Round(b.Width / t.PlotWidth * float64(columns)))
		}
		bar := re.NewStyle().Foreground(lipgloss.Color(b.Fill)).Render(strings.Repeat("█", cells))

		fmt.Fprintf(&out, "%s │%s %s\n", label, bar, model.FormatCount(b.Count))
	}

	for _, a := range t.Annotations {
		if a.Class != "source" {
			continue
		}
		out.WriteString("\n")
		out.WriteString(annotationStyle(re, a).Render(a.Body))
		out.WriteString("\n")
	}

	if _, err := io.WriteString(w, out.String()); err != nil {
		return fmt.Errorf("writing text chart: %w", err)
	}
	return nil
}

func annotationStyle(re *lipgloss.Renderer, a visual.Text) lipgloss.Style {
	st := re.NewStyle().Bold(a.Bold)
	if a.Color != "" {
		st = st.Foreground(lipgloss.Color(a.Color))
	}
	return st
}
