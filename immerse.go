package immerse

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default widget tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for sizes and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector in meters.
type Vec3 struct {
	X, Y, Z float64
}

// Pose3D is a widget position in viewer-centered space, in meters. X grows to
// the viewer's right, Y grows upward from the floor and Z is the distance in
// front of the viewer. A pose is always derived, never stored.
type Pose3D = Vec3

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersect returns the overlapping area of r and other. Disjoint rectangles
// yield a zero-size rect positioned at r's origin.
func (r Rect) Intersect(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.Right(), other.Right())
	y1 := math.Min(r.Bottom(), other.Bottom())
	if x1 < x0 || y1 < y0 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// finite reports whether every field of the rect is a finite number.
func (r Rect) finite() bool {
	return isFinite(r.X) && isFinite(r.Y) && isFinite(r.Width) && isFinite(r.Height)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RenderMode is the active presentation mode. Transitions between modes are
// owned by ModeMachine.
type RenderMode uint8

const (
	ModeDesktop   RenderMode = iota // flat authoring canvas, spatial layer suppressed
	ModePreview3D                   // in-page 3D preview, no immersive session
	ModeVR                          // immersive virtual reality session
	ModeAR                          // immersive augmented reality session
)

// String returns the lowercase mode name.
func (m RenderMode) String() string {
	switch m {
	case ModeDesktop:
		return "desktop"
	case ModePreview3D:
		return "preview3D"
	case ModeVR:
		return "vr"
	case ModeAR:
		return "ar"
	default:
		return "unknown"
	}
}

// Immersive reports whether the mode requires an XR session.
func (m RenderMode) Immersive() bool {
	return m == ModeVR || m == ModeAR
}

// ParseRenderMode converts a mode name (as produced by String) back into a
// RenderMode. It reports false for unknown names.
func ParseRenderMode(s string) (RenderMode, bool) {
	switch s {
	case "desktop":
		return ModeDesktop, true
	case "preview3D", "preview3d", "preview":
		return ModePreview3D, true
	case "vr":
		return ModeVR, true
	case "ar":
		return ModeAR, true
	}
	return ModeDesktop, false
}

// Visibility is the tri-state visibility flag carried by a widget.
type Visibility uint8

const (
	VisibilityDefault Visibility = iota // no explicit flag; treated as visible
	VisibilityVisible                   // explicitly visible
	VisibilityHidden                    // explicitly hidden; never rendered
)

// WidgetKind discriminates where a widget came from.
type WidgetKind uint8

const (
	KindComponent WidgetKind = iota // built-in component placed by the author
	KindGenerated                   // generated content
)
