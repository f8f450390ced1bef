package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/civicviz/reasons311/internal/visual"
)

// Format is an output encoding for a chart.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// Options tune how a Tree is encoded.
type Options struct {
	ContainerID string // HTML element id wrapping the chart
	TextColumns int    // width of the longest bar in text output
}

func (o Options) withDefaults() Options {
	if o.ContainerID == "" {
		o.ContainerID = "chart"
	}
	if o.TextColumns <= 0 {
		o.TextColumns = 40
	}
	return o
}

// ParseFormat validates a format name. Empty means SVG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPNG, FormatHTML, FormatText:
		return f, nil
	case "txt":
		return FormatText, nil
	case "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown format %q (want svg, png, html, or text)", s)
}

// FormatForPath guesses a format from a file extension, defaulting to SVG.
func FormatForPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatSVG
	}
	return f
}

// Encode writes t to w in format f.
func Encode(w io.Writer, t *visual.Tree, f Format, opts Options) error {
	opts = opts.withDefaults()
	switch f {
	case FormatSVG, "":
		return WriteSVG(w, t)
	case FormatPNG:
		return WritePNG(w, t)
	case FormatHTML:
		return WriteHTML(w, t, opts.ContainerID)
	case FormatText:
		return WriteText(w, t, opts.TextColumns)
	}
	return fmt.Errorf("unknown format %q", f)
}
