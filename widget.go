package immerse

import "fmt"

// WidgetRecord is a read-only snapshot of one widget on the authoring canvas.
// Records are owned by a WidgetStore; the pipeline only ever sees copies.
type WidgetRecord struct {
	// Identity
	ID   string
	Kind WidgetKind

	// Canvas placement in pixels, top-left origin.
	X, Y          float64
	Width, Height float64

	Visibility Visibility

	// Presentation hints for preview renderers.
	Color Color
}

// NewWidget creates a built-in component widget at the given canvas position
// with default visibility and a white tint.
func NewWidget(id string, x, y, w, h float64) WidgetRecord {
	return WidgetRecord{
		ID:     id,
		Kind:   KindComponent,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Color:  ColorWhite,
	}
}

// NewGeneratedWidget creates a widget for generated content.
func NewGeneratedWidget(id string, x, y, w, h float64) WidgetRecord {
	r := NewWidget(id, x, y, w, h)
	r.Kind = KindGenerated
	return r
}

// Rect returns the widget's canvas rectangle in pixels.
func (w WidgetRecord) Rect() Rect {
	return Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// Hidden reports whether the widget is explicitly hidden.
func (w WidgetRecord) Hidden() bool {
	return w.Visibility == VisibilityHidden
}

// Validate checks the fields every consumer relies on: a non-empty ID,
// finite coordinates and a non-negative finite size. Stores call this on
// write so the mapper and gate never see malformed records.
func (w WidgetRecord) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidWidget)
	}
	if !w.Rect().finite() {
		return fmt.Errorf("%w: %q has non-finite geometry", ErrInvalidWidget, w.ID)
	}
	if w.Width < 0 || w.Height < 0 {
		return fmt.Errorf("%w: %q has negative size %vx%v", ErrInvalidWidget, w.ID, w.Width, w.Height)
	}
	if w.Visibility > VisibilityHidden {
		return fmt.Errorf("%w: %q has unknown visibility %d", ErrInvalidWidget, w.ID, w.Visibility)
	}
	return nil
}
