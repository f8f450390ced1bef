package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/civicviz/reasons311/internal/visual"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: {{.FontFamily}}, sans-serif; margin: 2em; }
svg { display: block; }
</style>
</head>
<body>
<div id="{{.ContainerID}}">
{{.SVG}}</div>
</body>
</html>
`))

type page struct {
	Title       string
	FontFamily  string
	ContainerID string
	SVG         template.HTML
}

// WriteHTML writes a page with the SVG chart appended inside a container
// element with the given id.
func WriteHTML(w io.Writer, t *visual.Tree, containerID string) error {
	var svg bytes.Buffer
	if err := WriteSVG(&svg, t); err != nil {
		return err
	}

	title := "Chart"
	for _, a := range t.Annotations {
		if a.Class == "title" && a.Body != "" {
			title = a.Body
			break
		}
	}

	err := pageTmpl.Execute(w, page{
		Title:       title,
		FontFamily:  t.FontFamily,
		ContainerID: containerID,
		SVG:         template.HTML(svg.String()), //nolint:gosec // generated by WriteSVG with escaped text
	})
	if err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	return nil
}
