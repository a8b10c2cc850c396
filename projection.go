package immerse

import "fmt"

// DefaultPixelsPerMeter is the canvas scale used when no other is configured:
// one canvas pixel is one millimeter.
const DefaultPixelsPerMeter = 1000

// Mapper projects canvas widgets into viewer space. A Mapper is immutable and
// safe for concurrent use; the zero value is not usable, use NewMapper or
// DefaultMapper.
type Mapper struct {
	// PixelsPerMeter converts widget sizes from pixels to meters. It is the
	// same for every mode.
	PixelsPerMeter float64
}

// DefaultMapper uses DefaultPixelsPerMeter.
var DefaultMapper = Mapper{PixelsPerMeter: DefaultPixelsPerMeter}

// NewMapper returns a Mapper with the given scale.
func NewMapper(pixelsPerMeter float64) Mapper {
	return Mapper{PixelsPerMeter: pixelsPerMeter}
}

// Project projects w with DefaultMapper.
func Project(w WidgetRecord, frame CanvasFrame, vol ViewingVolume) (Pose3D, error) {
	return DefaultMapper.Project(w, frame, vol)
}

// SizeMeters converts the widget's pixel size to meters.
func (m Mapper) SizeMeters(w WidgetRecord) Vec2 {
	return Vec2{X: w.Width / m.PixelsPerMeter, Y: w.Height / m.PixelsPerMeter}
}

// Project converts a widget's canvas placement into a pose in front of the
// viewer.
//
// The widget's top-left corner is normalized against the supplied frame (never
// an assumed canvas size), centered on the volume, and offset by half the
// widget's size in meters:
//
//	x = (nx - 0.5) * vol.Width + wm/2
//	y = vol.EyeHeight - (ny - 0.5) * vol.Height - hm/2
//	z = vol.Depth
//
// Positions outside the frame are not clamped; they produce poses outside the
// volume. Non-finite input, negative sizes and degenerate frames or volumes
// return ErrInvalidGeometry.
func (m Mapper) Project(w WidgetRecord, frame CanvasFrame, vol ViewingVolume) (Pose3D, error) {
	if !isFinite(m.PixelsPerMeter) || m.PixelsPerMeter <= 0 {
		return Pose3D{}, fmt.Errorf("project %q: %w: scale %v", w.ID, ErrInvalidGeometry, m.PixelsPerMeter)
	}
	if !w.Rect().finite() {
		return Pose3D{}, fmt.Errorf("project %q: %w: non-finite rect", w.ID, ErrInvalidGeometry)
	}
	if w.Width < 0 || w.Height < 0 {
		return Pose3D{}, fmt.Errorf("project %q: %w: negative size", w.ID, ErrInvalidGeometry)
	}
	if err := frame.Validate(); err != nil {
		return Pose3D{}, fmt.Errorf("project %q: %w", w.ID, err)
	}
	if err := vol.Validate(); err != nil {
		return Pose3D{}, fmt.Errorf("project %q: %w", w.ID, err)
	}

	nx := w.X / frame.Width
	ny := w.Y / frame.Height
	size := m.SizeMeters(w)

	return Pose3D{
		X: (nx-0.5)*vol.Width + size.X/2,
		Y: vol.EyeHeight - (ny-0.5)*vol.Height - size.Y/2,
		Z: vol.Depth,
	}, nil
}
