// Implements a raster preview backend for laid-out cut drawings,
// by wrapping rasterx.
package cutraster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/cutsvg/cutfile"
	"github.com/benoitkugler/cutsvg/cutsvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var (
	markColor   = color.NRGBA{A: 0xff}                   // black
	strokeColor = color.NRGBA{R: 0xff, B: 0xff, A: 0xff} // magenta
)

func toFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// fillQuad fills the transformed image of the axis-aligned
// rectangle (x0, y0)-(x1, y1).
func fillQuad(filler *rasterx.Filler, m cutsvg.Matrix2D, x0, y0, x1, y1 float64) {
	corners := [4][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	for i, c := range corners {
		px, py := m.Apply(c[0], c[1])
		if i == 0 {
			filler.Start(toFixed(px, py))
		} else {
			filler.Line(toFixed(px, py))
		}
	}
	filler.Stop(true)
}

func strokePath(dasher *rasterx.Dasher, m cutsvg.Matrix2D, p cutfile.CutPath) {
	started := false
	for _, el := range p.Elements {
		switch el := el.(type) {
		case cutfile.Point:
			px, py := m.Apply(el.X, el.Y)
			if !started {
				dasher.Start(toFixed(px, py))
				started = true
			} else {
				dasher.Line(toFixed(px, py))
			}
		case cutfile.Spline:
			c1x, c1y := m.Apply(el.C1.X, el.C1.Y)
			c2x, c2y := m.Apply(el.C2.X, el.C2.Y)
			ex, ey := m.Apply(el.End.X, el.End.Y)
			if !started {
				// a leading spline has no current point: anchor the
				// curve at its first control point
				dasher.Start(toFixed(c1x, c1y))
				started = true
			}
			dasher.CubeBezier(toFixed(c1x, c1y), toFixed(c2x, c2y), toFixed(ex, ey))
		}
	}
	if started {
		dasher.Stop(true)
	}
}

// Render rasterizes the drawing at the given resolution, in pixels
// per millimeter, applying the same centering transform carried by
// the SVG output. Registration marks are filled black and cut paths
// stroked magenta on a white background.
func Render(d *cutsvg.Drawing, pixelsPerMM float64) *image.RGBA {
	w := int(math.Ceil(d.Width * pixelsPerMM))
	h := int(math.Ceil(d.Height * pixelsPerMM))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	m := cutsvg.Identity.Scale(pixelsPerMM, pixelsPerMM).Mult(d.Transform())
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())

	filler := rasterx.NewFiller(w, h, scanner)
	filler.Scanner.SetColor(markColor)
	half := cutsvg.RegMarkSize / 2
	for _, mark := range d.Marks {
		fillQuad(filler, m, mark.X-half, mark.Y-half, mark.X+half, mark.Y+half)
	}
	filler.Draw()

	dasher := rasterx.NewDasher(w, h, scanner)
	dasher.Scanner.SetColor(strokeColor)
	width := 0.1 * pixelsPerMM // same 0.1mm stroke as the SVG output
	if width < 1 {
		width = 1 // hairlines stay visible at low resolutions
	}
	dasher.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Bevel, nil, 0)
	for _, p := range d.Paths {
		strokePath(dasher, m, p)
	}
	dasher.Draw()

	return img
}

// WritePNG renders the drawing and encodes it as a PNG image.
func WritePNG(w io.Writer, d *cutsvg.Drawing, pixelsPerMM float64) error {
	return png.Encode(w, Render(d, pixelsPerMM))
}
