package vecmap

import "math"

// Transform represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// This represents the transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
// The identity matrix performs no transformation.
func Identity() Transform {
	return Transform{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Transform {
	return Transform{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Transform {
	return Transform{
		A: sx, B: 0, C: 0,
		D: 0, E: sy, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Transform {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Transform{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Compose builds the full view transform in one step:
// translate to (dx, dy), scale by (sx, sy), rotate by angle, then
// translate by (ox, oy) in pre-scale units. This is the standard
// center/resolution/rotation to pixel mapping used during replay.
func Compose(dx, dy, sx, sy, angle, ox, oy float64) Transform {
	sin := math.Sin(angle)
	cos := math.Cos(angle)
	return Transform{
		A: sx * cos,
		B: -sx * sin,
		C: dx + sx*cos*ox - sx*sin*oy,
		D: sy * sin,
		E: sy * cos,
		F: dy + sy*sin*ox + sy*cos*oy,
	}
}

// Multiply multiplies two matrices (t * other).
// This applies the transformation of other before t.
func (t Transform) Multiply(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply applies the transformation to a point.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.C, t.D*x + t.E*y + t.F
}

// ApplyVector applies the transformation to a vector (no translation).
func (t Transform) ApplyVector(x, y float64) (float64, float64) {
	return t.A*x + t.B*y, t.D*x + t.E*y
}

// ApplyFlat transforms a flat coordinate slice in place into dst.
// dst is grown as needed and returned. Only the first two values of each
// stride-sized group are transformed; extra dimensions are dropped.
func (t Transform) ApplyFlat(dst, src []float64, stride int) []float64 {
	n := len(src) / stride * 2
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	j := 0
	for i := 0; i+1 < len(src); i += stride {
		x, y := src[i], src[i+1]
		dst[j] = t.A*x + t.B*y + t.C
		dst[j+1] = t.D*x + t.E*y + t.F
		j += 2
	}
	return dst
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (t Transform) Invert() Transform {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	return Transform{
		A: t.E * invDet,
		B: -t.B * invDet,
		C: (t.B*t.F - t.C*t.E) * invDet,
		D: -t.D * invDet,
		E: t.A * invDet,
		F: (t.C*t.D - t.A*t.F) * invDet,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (t Transform) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(t.A-1) < eps && math.Abs(t.B) < eps && math.Abs(t.C) < eps &&
		math.Abs(t.D) < eps && math.Abs(t.E-1) < eps && math.Abs(t.F) < eps
}
