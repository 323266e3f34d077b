package cutsvg

import "math"

// Matrix2D is a 2D affine transform in the SVG convention:
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a times b, so that applying the result is
// equivalent to applying b first, then a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate appends a translation, as in an SVG transform list.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Rotate appends a rotation about the origin. theta is in radians,
// positive values rotating clockwise in SVG's Y-down space.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	cos, sin := math.Cos(theta), math.Sin(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// Scale appends a scaling.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Apply transforms the point (x, y).
func (a Matrix2D) Apply(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}
