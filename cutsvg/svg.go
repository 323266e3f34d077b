package cutsvg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/cutsvg/cutfile"
)

// cut paths are stroked, never filled
const (
	strokeColor = "magenta"
	strokeWidth = "0.1mm"
)

// dim formats a canvas dimension, without forcing decimals.
func dim(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// TransformAttr returns the transform as an SVG attribute string,
// with all numbers at 4 decimal places. SVG applies the list right
// to left, so the drawing center moves to the origin first.
func (d *Drawing) TransformAttr() string {
	return fmt.Sprintf("translate(%.4f, %.4f) rotate(90) translate(%.4f, %.4f)",
		d.Width/2, d.Height/2, -d.CenterX, -d.CenterY)
}

// PathData returns the SVG path data string for p, or "" if the
// path has no elements. The first point emits a move-to, every
// later point a line-to; splines always emit a cubic curve-to.
// Non-empty data is terminated with a close command, so a path of
// a single point still yields a minimal closed path "M x y Z".
func PathData(p cutfile.CutPath) string {
	if len(p.Elements) == 0 {
		return ""
	}
	chunks := make([]string, 0, len(p.Elements)+1)
	first := true
	for _, el := range p.Elements {
		switch el := el.(type) {
		case cutfile.Point:
			command := "L"
			if first {
				command = "M"
				first = false
			}
			chunks = append(chunks, fmt.Sprintf("%s %.4f %.4f", command, el.X, el.Y))
		case cutfile.Spline:
			chunks = append(chunks, fmt.Sprintf("C %.4f %.4f, %.4f %.4f, %.4f %.4f",
				el.C1.X, el.C1.Y, el.C2.X, el.C2.Y, el.End.X, el.End.Y))
		}
	}
	chunks = append(chunks, "Z")
	return strings.Join(chunks, " ")
}

// WriteSVG serializes the drawing as an SVG 1.1 document: a single
// group carrying the centering transform, one rect per registration
// mark (before any path) and one path per non-empty cut path.
func (d *Drawing) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg width="%smm" height="%smm" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">`+"\n\n",
		dim(d.Width), dim(d.Height), dim(d.Width), dim(d.Height))
	fmt.Fprintf(bw, `<g transform="%s">`+"\n", d.TransformAttr())
	for _, m := range d.Marks {
		fmt.Fprintf(bw, `<rect x="%.4f" y="%.4f" width="%s" height="%s" fill="black"/>`+"\n",
			m.X-RegMarkSize/2, m.Y-RegMarkSize/2, dim(RegMarkSize), dim(RegMarkSize))
	}
	for _, p := range d.Paths {
		data := PathData(p)
		if data == "" {
			// already reported while parsing, if anything was dropped
			continue
		}
		fmt.Fprintf(bw, `<path d="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			data, strokeColor, strokeWidth)
	}
	fmt.Fprint(bw, "</g>\n</svg>")
	return bw.Flush()
}
