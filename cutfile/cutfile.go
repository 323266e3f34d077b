// Provides parsing of the proprietary XML "cut file" format
// into an abstract representation, which can then be consumed
// by output drivers. See for example cutsvg or cutraster.
package cutfile

import (
	"fmt"
)

// Units is the coordinate unit declared by the root element.
type Units uint8

const (
	// UnknownUnits is any unrecognized (or absent) units attribute.
	// Coordinates are then taken as millimeters (1:1 scale).
	UnknownUnits Units = iota
	HundredthsMM
	Inches
)

// ScaleFactor returns the multiplier converting raw document
// coordinates to millimeters.
func (u Units) ScaleFactor() float64 {
	switch u {
	case HundredthsMM:
		return 0.01
	case Inches:
		return 25.4
	default:
		return 1.0
	}
}

func (u Units) String() string {
	switch u {
	case HundredthsMM:
		return "hundredths_mm"
	case Inches:
		return "inches"
	default:
		return "unknown"
	}
}

// ErrorMode determines how the parser reacts to invalid
// path or mark elements: silently skip them, skip with a log
// line, or abort the whole file.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

// WarningKind classifies the non-fatal diagnostics produced
// while reading and laying out a document.
type WarningKind uint8

const (
	// UnrecognizedUnits: the units attribute is missing or not one of
	// the known values; scale factor falls back to 1.0.
	UnrecognizedUnits WarningKind = iota
	// SkippedElement: a reg-mark, point or spline had a missing or
	// non-numeric attribute and was dropped.
	SkippedElement
	// EmptyDrawing: no element contributed any coordinate; the drawing
	// center falls back to the canvas center.
	EmptyDrawing
)

func (k WarningKind) String() string {
	switch k {
	case UnrecognizedUnits:
		return "unrecognized-units"
	case SkippedElement:
		return "skipped-element"
	case EmptyDrawing:
		return "empty-drawing"
	default:
		return "unknown"
	}
}

// Warning is one non-fatal diagnostic. Warnings never abort a
// conversion; callers decide how to surface them.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string { return w.Kind.String() + ": " + w.Message }

// MissingAttributeError reports a root attribute which is absent,
// non-numeric, or out of range, making the file unusable.
type MissingAttributeError struct {
	Name string
}

func (e MissingAttributeError) Error() string {
	return fmt.Sprintf("cut file: missing or invalid attribute %q", e.Name)
}

// ParseError wraps a well-formedness error from the XML decoder.
type ParseError struct {
	Cause error
}

func (e ParseError) Error() string { return "cut file: invalid XML: " + e.Cause.Error() }

func (e ParseError) Unwrap() error { return e.Cause }

type (
	// RegMark is a registration mark, identified by its center in raw
	// document units. Marks are rendered at a fixed size regardless of
	// the document scale.
	RegMark struct {
		X, Y float64
	}

	// Point is a path vertex: a move or line target.
	Point struct {
		X, Y float64
	}

	// Spline is a single cubic segment: two control points and an
	// endpoint, continuing from the previous element.
	Spline struct {
		C1, C2, End Point
	}

	// CutPath is an ordered sequence of elements forming one
	// continuous stroke. Order is significant.
	CutPath struct {
		Elements []Element
	}

	// Document holds the parsed cut file. It is read-only after
	// parsing: every field is a derivation of the input.
	Document struct {
		Units    Units
		RawUnits string // units attribute as written, for diagnostics
		Width    float64
		Height   float64
		Marks    []RegMark
		Paths    []CutPath
		Warnings []Warning
	}
)

// Element is either a Point or a Spline.
type Element interface {
	isElement()
}

func (Point) isElement()  {}
func (Spline) isElement() {}
