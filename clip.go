package immerse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ClipRegion describes the visible part of a widget as fractional insets from
// each edge of the widget's own rectangle. The zero value means fully visible.
type ClipRegion struct {
	Top, Right, Bottom, Left float64
}

// FullyClipped is the degenerate region returned for widgets with no visible
// area. Every edge is inset by the full extent.
var FullyClipped = ClipRegion{Top: 1, Right: 1, Bottom: 1, Left: 1}

// IsZero reports whether nothing is clipped.
func (c ClipRegion) IsZero() bool {
	return c == ClipRegion{}
}

// IsFullyClipped reports whether no area remains visible.
func (c ClipRegion) IsFullyClipped() bool {
	return c.Left+c.Right >= 1 || c.Top+c.Bottom >= 1
}

// VisibleFraction returns the visible share of the widget's area in [0, 1].
func (c ClipRegion) VisibleFraction() float64 {
	w := math.Max(0, 1-c.Left-c.Right)
	h := math.Max(0, 1-c.Top-c.Bottom)
	return w * h
}

// Apply returns the visible sub-rectangle of r.
func (c ClipRegion) Apply(r Rect) Rect {
	return Rect{
		X:      r.X + c.Left*r.Width,
		Y:      r.Y + c.Top*r.Height,
		Width:  math.Max(0, r.Width*(1-c.Left-c.Right)),
		Height: math.Max(0, r.Height*(1-c.Top-c.Bottom)),
	}
}

// CSS formats the region as a CSS clip-path inset, e.g. "inset(0% 25% 0% 0%)".
func (c ClipRegion) CSS() string {
	var b strings.Builder
	b.WriteString("inset(")
	for i, v := range [4]float64{c.Top, c.Right, c.Bottom, c.Left} {
		if i > 0 {
			b.WriteByte(' ')
		}
		pct := math.Round(v*10000) / 100
		b.WriteString(strconv.FormatFloat(pct, 'f', -1, 64))
		b.WriteByte('%')
	}
	b.WriteByte(')')
	return b.String()
}

// Clip computes the part of widget that lies inside container and expresses
// it as insets relative to widget's width and height. Both rects must be in
// the same coordinate space: canvas pixels for the 2D presentation, or the
// display plane of a ViewingVolume for the 3D one.
//
// A widget entirely inside the container yields the zero region. A widget
// with no overlap, or with zero area, yields FullyClipped. Insets are never
// negative. Non-finite values or negative sizes return ErrInvalidGeometry.
func Clip(widget, container Rect) (ClipRegion, error) {
	if !widget.finite() || !container.finite() {
		return ClipRegion{}, fmt.Errorf("clip: %w: non-finite rect", ErrInvalidGeometry)
	}
	if widget.Width < 0 || widget.Height < 0 || container.Width < 0 || container.Height < 0 {
		return ClipRegion{}, fmt.Errorf("clip: %w: negative size", ErrInvalidGeometry)
	}
	if widget.IsEmpty() || container.IsEmpty() {
		return FullyClipped, nil
	}

	vis := widget.Intersect(container)
	if vis.IsEmpty() {
		return FullyClipped, nil
	}

	return ClipRegion{
		Top:    clamp01((vis.Y - widget.Y) / widget.Height),
		Right:  clamp01((widget.Right() - vis.Right()) / widget.Width),
		Bottom: clamp01((widget.Bottom() - vis.Bottom()) / widget.Height),
		Left:   clamp01((vis.X - widget.X) / widget.Width),
	}, nil
}
