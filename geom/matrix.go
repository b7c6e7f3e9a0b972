package geom

import "math"

// Matrix is a 2D affine transformation matrix in the form
// [a b c d tx ty], mapping (x, y) to (a*x + c*y + tx, b*x + d*y + ty).
type Matrix [6]float64

// Identity returns an identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply multiplies two matrices.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// TransformRect returns the axis-aligned bounding box of the rectangle
// after transformation. Under rotation the result covers the rotated
// rectangle; it is not the rotated rectangle itself.
func (m Matrix) TransformRect(r Rect) Rect {
	corners := [4]Point{
		{X: r.Left(), Y: r.Top()},
		{X: r.Right(), Y: r.Top()},
		{X: r.Left(), Y: r.Bottom()},
		{X: r.Right(), Y: r.Bottom()},
	}
	first := m.Transform(corners[0])
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	for _, c := range corners[1:] {
		p := m.Transform(c)
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// IsIdentity returns true if the matrix is an identity matrix.
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}

// Invert returns the inverse transformation. The second return value is
// false when the matrix is singular and no inverse exists.
func (m Matrix) Invert() (Matrix, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Matrix{}, false
	}
	inv := Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
	}
	inv[4] = -(m[4]*inv[0] + m[5]*inv[2])
	inv[5] = -(m[4]*inv[1] + m[5]*inv[3])
	return inv, true
}
