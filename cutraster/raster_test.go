package cutraster

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benoitkugler/cutsvg/cutfile"
	"github.com/benoitkugler/cutsvg/cutsvg"
)

func layoutString(t *testing.T, src string) *cutsvg.Drawing {
	t.Helper()
	doc, err := cutfile.ReadStream(strings.NewReader(src), cutfile.IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	return cutsvg.Layout(doc)
}

func TestRenderSize(t *testing.T) {
	d := layoutString(t, `<cut-file units="hundredths_mm" width="1000" height="2000"/>`)
	img := Render(d, 10)
	b := img.Bounds()
	if b.Dx() != 100 || b.Dy() != 200 {
		t.Errorf("image size: got %dx%d, want 100x200", b.Dx(), b.Dy())
	}
	// empty drawing renders a blank canvas
	c := img.RGBAAt(50, 100)
	if c.R != 0xff || c.G != 0xff || c.B != 0xff {
		t.Errorf("expected white background, got %v", c)
	}
}

func TestRenderMark(t *testing.T) {
	// the single mark is the whole drawing, so its center is the
	// drawing center and stays on the canvas center after rotation
	d := layoutString(t, `<cut-file units="hundredths_mm" width="1000" height="1000">
		<reg-mark x="500" y="500"/>
	</cut-file>`)
	img := Render(d, 10)
	c := img.RGBAAt(50, 50)
	if c.R > 0x20 || c.G > 0x20 || c.B > 0x20 {
		t.Errorf("expected a black mark at the canvas center, got %v", c)
	}
	// the 3mm mark must not cover the canvas corners
	c = img.RGBAAt(5, 5)
	if c.R != 0xff || c.G != 0xff || c.B != 0xff {
		t.Errorf("expected white at the corner, got %v", c)
	}
}

func TestRenderPathInk(t *testing.T) {
	d := layoutString(t, `<cut-file units="hundredths_mm" width="1000" height="1000">
		<cut-path>
			<point x="200" y="200"/>
			<point x="800" y="200"/>
			<spline x1="800" y1="800" x2="500" y2="800" x3="200" y3="800"/>
		</cut-path>
	</cut-file>`)
	img := Render(d, 10)
	ink := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 0xff || c.G != 0xff || c.B != 0xff {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("expected some stroked pixels")
	}
}

func TestWritePNG(t *testing.T) {
	d := layoutString(t, `<cut-file units="hundredths_mm" width="1000" height="1000">
		<reg-mark x="500" y="500"/>
	</cut-file>`)
	var buf bytes.Buffer
	if err := WritePNG(&buf, d, 4); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG stream")
	}
}
