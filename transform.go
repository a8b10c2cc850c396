package immerse

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// translateScale returns the affine matrix Translate(x, y) * Scale(sx, sy).
func translateScale(x, y, sx, sy float64) [6]float64 {
	return [6]float64{sx, 0, 0, sy, x, y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformRect returns the axis-aligned bounding box of r after applying m.
func transformRect(m [6]float64, r Rect) Rect {
	x0, y0 := transformPoint(m, r.X, r.Y)
	x1, y1 := transformPoint(m, r.Right(), r.Y)
	x2, y2 := transformPoint(m, r.Right(), r.Bottom())
	x3, y3 := transformPoint(m, r.X, r.Bottom())

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// planeToScreen returns the matrix that fits the display-plane rect bounds
// into the screen rect dst, preserving aspect ratio and centering.
func planeToScreen(bounds, dst Rect) [6]float64 {
	if bounds.IsEmpty() || dst.IsEmpty() {
		return identityTransform
	}
	s := math.Min(dst.Width/bounds.Width, dst.Height/bounds.Height)
	ox := dst.X + (dst.Width-bounds.Width*s)/2
	oy := dst.Y + (dst.Height-bounds.Height*s)/2
	return multiplyAffine(
		translateScale(ox, oy, s, s),
		translateScale(-bounds.X, -bounds.Y, 1, 1),
	)
}
