// Converts parsed cut files into SVG documents, rotating the
// drawing 90 degrees clockwise and centering it on the canvas.
// The geometry is laid out once (scaling, Y-flip, bounding box,
// centering transform); output drivers then consume the laid-out
// Drawing. See WriteSVG for the SVG backend and cutraster for a
// raster preview backend.
package cutsvg

import (
	"math"
	"os"
	"path/filepath"

	"github.com/benoitkugler/cutsvg/cutfile"
)

// RegMarkSize is the rendered edge of a registration mark, in
// canvas units, independent of the document scale.
const RegMarkSize = 3.0

// Drawing is a laid-out document: geometry scaled to millimeters
// and Y-flipped into SVG's Y-down space, plus the centering
// transform carried by the output group.
type Drawing struct {
	Width, Height float64 // canvas size, in mm

	Marks []cutfile.RegMark // mark centers, canvas space
	Paths []cutfile.CutPath // element coordinates, canvas space

	// CenterX, CenterY is the drawing's bounding box center
	// (canvas center when the drawing is empty).
	CenterX, CenterY float64

	Warnings []cutfile.Warning
}

// extent accumulates the min/max of visited coordinates.
type extent struct {
	minX, minY, maxX, maxY float64
	ok                     bool
}

func (e *extent) add(x, y float64) {
	if !e.ok {
		e.minX, e.maxX, e.minY, e.maxY = x, x, y, y
		e.ok = true
		return
	}
	e.minX = math.Min(e.minX, x)
	e.maxX = math.Max(e.maxX, x)
	e.minY = math.Min(e.minY, y)
	e.maxY = math.Max(e.maxY, y)
}

func (e *extent) center() (x, y float64) {
	return (e.minX + e.maxX) / 2, (e.minY + e.maxY) / 2
}

// Layout scales the document to millimeters, flips Y coordinates
// into SVG's Y-down convention and computes the drawing's bounding
// box center. Registration marks contribute their full rendered
// footprint; splines contribute all three coordinate pairs, control
// points included, as an approximation of the curve's extents.
func Layout(doc *cutfile.Document) *Drawing {
	scale := doc.Units.ScaleFactor()
	d := &Drawing{
		Width:  doc.Width * scale,
		Height: doc.Height * scale,
	}
	d.Warnings = append(d.Warnings, doc.Warnings...)
	flip := func(y float64) float64 { return d.Height - y*scale }

	var ext extent
	for _, m := range doc.Marks {
		cm := cutfile.RegMark{X: m.X * scale, Y: flip(m.Y)}
		d.Marks = append(d.Marks, cm)
		ext.add(cm.X-RegMarkSize/2, cm.Y-RegMarkSize/2)
		ext.add(cm.X+RegMarkSize/2, cm.Y+RegMarkSize/2)
	}
	for _, p := range doc.Paths {
		cp := cutfile.CutPath{}
		for _, el := range p.Elements {
			switch el := el.(type) {
			case cutfile.Point:
				pt := cutfile.Point{X: el.X * scale, Y: flip(el.Y)}
				cp.Elements = append(cp.Elements, pt)
				ext.add(pt.X, pt.Y)
			case cutfile.Spline:
				sp := cutfile.Spline{
					C1:  cutfile.Point{X: el.C1.X * scale, Y: flip(el.C1.Y)},
					C2:  cutfile.Point{X: el.C2.X * scale, Y: flip(el.C2.Y)},
					End: cutfile.Point{X: el.End.X * scale, Y: flip(el.End.Y)},
				}
				cp.Elements = append(cp.Elements, sp)
				ext.add(sp.C1.X, sp.C1.Y)
				ext.add(sp.C2.X, sp.C2.Y)
				ext.add(sp.End.X, sp.End.Y)
			}
		}
		d.Paths = append(d.Paths, cp)
	}

	if ext.ok {
		d.CenterX, d.CenterY = ext.center()
	} else {
		d.CenterX, d.CenterY = d.Width/2, d.Height/2
		d.Warnings = append(d.Warnings, cutfile.Warning{
			Kind: cutfile.EmptyDrawing, Message: "no valid drawing elements found",
		})
	}
	return d
}

// Transform returns the composite mapping applied to the laid-out
// geometry: translate the drawing center to the origin, rotate 90
// degrees clockwise, translate the origin to the canvas center.
func (d *Drawing) Transform() Matrix2D {
	return Identity.
		Translate(d.Width/2, d.Height/2).
		Rotate(math.Pi / 2).
		Translate(-d.CenterX, -d.CenterY)
}

// WriteFile serializes the drawing as SVG to the given path.
// The document is written to a temporary file and renamed into
// place, so a failure never leaves a partial file behind.
func (d *Drawing) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cutsvg-*")
	if err != nil {
		return err
	}
	err = d.WriteSVG(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Convert reads the cut file at inputPath and writes the converted
// SVG document to outputPath. The returned warnings are never
// fatal; any returned error is terminal for this file and it is up
// to the caller to decide whether to continue a batch.
func Convert(inputPath, outputPath string, mode cutfile.ErrorMode) ([]cutfile.Warning, error) {
	doc, err := cutfile.ReadFile(inputPath, mode)
	if err != nil {
		return nil, err
	}
	drawing := Layout(doc)
	if err := drawing.WriteFile(outputPath); err != nil {
		return drawing.Warnings, err
	}
	return drawing.Warnings, nil
}
