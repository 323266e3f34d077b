package cutfile

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	"golang.org/x/net/html/charset"
)

// fileCursor is used while parsing cut files
type fileCursor struct {
	doc       *Document
	errorMode ErrorMode
	curPath   *CutPath
	inPath    bool
	pathIndex int // 1-based, for diagnostics
}

func (c *fileCursor) warn(kind WarningKind, format string, args ...interface{}) {
	w := Warning{Kind: kind, Message: fmt.Sprintf(format, args...)}
	c.doc.Warnings = append(c.doc.Warnings, w)
	if c.errorMode == WarnErrorMode {
		log.Println("cutfile: " + w.String())
	}
}

// skip drops one invalid element, or aborts in strict mode.
func (c *fileCursor) skip(format string, args ...interface{}) error {
	if c.errorMode == StrictErrorMode {
		return fmt.Errorf(format, args...)
	}
	c.warn(SkippedElement, format, args...)
	return nil
}

// getFloat returns the named attribute parsed as a finite float.
func getFloat(attrs []xml.Attr, name string) (float64, bool) {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			v, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}

func (c *fileCursor) readRoot(attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "units" {
			c.doc.RawUnits = attr.Value
		}
	}
	switch c.doc.RawUnits {
	case "hundredths_mm":
		c.doc.Units = HundredthsMM
	case "inches":
		c.doc.Units = Inches
	default:
		c.doc.Units = UnknownUnits
		c.warn(UnrecognizedUnits, "unrecognized units %q, assuming 1:1 scale", c.doc.RawUnits)
	}
	width, ok := getFloat(attrs, "width")
	if !ok || width < 0 {
		return MissingAttributeError{Name: "width"}
	}
	height, ok := getFloat(attrs, "height")
	if !ok || height < 0 {
		return MissingAttributeError{Name: "height"}
	}
	c.doc.Width, c.doc.Height = width, height
	return nil
}

func (c *fileCursor) readStartElement(se xml.StartElement) error {
	switch se.Name.Local {
	case "reg-mark":
		x, okx := getFloat(se.Attr, "x")
		y, oky := getFloat(se.Attr, "y")
		if !okx || !oky {
			return c.skip("registration mark with invalid coordinates")
		}
		c.doc.Marks = append(c.doc.Marks, RegMark{X: x, Y: y})
	case "cut-path":
		c.inPath = true
		c.curPath = &CutPath{}
		c.pathIndex++
	case "point":
		if !c.inPath {
			return nil
		}
		x, okx := getFloat(se.Attr, "x")
		y, oky := getFloat(se.Attr, "y")
		if !okx || !oky {
			return c.skip("invalid point in path %d", c.pathIndex)
		}
		c.curPath.Elements = append(c.curPath.Elements, Point{X: x, Y: y})
	case "spline":
		if !c.inPath {
			return nil
		}
		var coords [6]float64
		for i, name := range [6]string{"x1", "y1", "x2", "y2", "x3", "y3"} {
			v, ok := getFloat(se.Attr, name)
			if !ok {
				// the whole spline is dropped, never a partial curve
				return c.skip("invalid spline in path %d", c.pathIndex)
			}
			coords[i] = v
		}
		c.curPath.Elements = append(c.curPath.Elements, Spline{
			C1:  Point{X: coords[0], Y: coords[1]},
			C2:  Point{X: coords[2], Y: coords[3]},
			End: Point{X: coords[4], Y: coords[5]},
		})
	}
	return nil
}

// ReadStream parses a cut file from the given io.Reader.
// errMode determines whether invalid path and mark elements are
// skipped silently, skipped with a log line, or abort parsing.
// Skipped elements are recorded in the returned Document's Warnings.
func ReadStream(stream io.Reader, errMode ErrorMode) (*Document, error) {
	doc := &Document{}
	cursor := &fileCursor{doc: doc, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenRoot := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenRoot {
					return nil, ParseError{Cause: errors.New("no root element")}
				}
				break
			}
			return nil, ParseError{Cause: err}
		}
		switch se := t.(type) {
		case xml.StartElement:
			if !seenRoot {
				seenRoot = true
				if err := cursor.readRoot(se.Attr); err != nil {
					return nil, err
				}
				continue
			}
			if err := cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if se.Name.Local == "cut-path" && cursor.inPath {
				doc.Paths = append(doc.Paths, *cursor.curPath)
				cursor.curPath = nil
				cursor.inPath = false
			}
		}
	}
	return doc, nil
}

// ReadFile parses the cut file at the given path.
// The error from os.Open is returned as is, so a missing input
// can be detected with errors.Is(err, fs.ErrNotExist).
func ReadFile(path string, errMode ErrorMode) (*Document, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadStream(fin, errMode)
}
