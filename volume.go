package immerse

import "fmt"

// ViewingVolume is the comfortable region in front of the viewer where
// canvas content is placed. All values are in meters.
type ViewingVolume struct {
	// Width and Height are the horizontal and vertical extent of the volume.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// EyeHeight is the height of the volume's center above the floor.
	EyeHeight float64 `toml:"eye_height"`
	// Depth is the distance from the viewer at which every widget is placed.
	Depth float64 `toml:"depth"`
}

// Validate reports ErrInvalidGeometry for non-finite fields or a
// non-positive extent.
func (v ViewingVolume) Validate() error {
	if !isFinite(v.Width) || !isFinite(v.Height) || !isFinite(v.EyeHeight) || !isFinite(v.Depth) {
		return fmt.Errorf("%w: non-finite viewing volume %+v", ErrInvalidGeometry, v)
	}
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: viewing volume extent %vx%v", ErrInvalidGeometry, v.Width, v.Height)
	}
	return nil
}

// Bounds returns the volume's extent in the display plane at Depth, using the
// same top-left, Y-down convention as canvas rects so both presentations can
// share one clip resolver. The plane's Y axis is the negated world height.
func (v ViewingVolume) Bounds() Rect {
	return Rect{
		X:      -v.Width / 2,
		Y:      -(v.EyeHeight + v.Height/2),
		Width:  v.Width,
		Height: v.Height,
	}
}

// WorldRect returns the rectangle a widget of the given size (in meters)
// occupies in the display plane when centered on pose. It is expressed in the
// same convention as Bounds.
func WorldRect(pose Pose3D, size Vec2) Rect {
	return Rect{
		X:      pose.X - size.X/2,
		Y:      -(pose.Y + size.Y/2),
		Width:  size.X,
		Height: size.Y,
	}
}

// MatchedVolume returns a volume whose extent equals the canvas frame
// converted to meters at the given scale. With a matched volume the 2D and 3D
// clip regions of any widget coincide.
func MatchedVolume(frame CanvasFrame, pixelsPerMeter, eyeHeight, depth float64) ViewingVolume {
	return ViewingVolume{
		Width:     frame.Width / pixelsPerMeter,
		Height:    frame.Height / pixelsPerMeter,
		EyeHeight: eyeHeight,
		Depth:     depth,
	}
}

// VolumeSet holds one viewing volume per render mode.
type VolumeSet struct {
	Desktop   ViewingVolume `toml:"desktop"`
	Preview3D ViewingVolume `toml:"preview3d"`
	VR        ViewingVolume `toml:"vr"`
	AR        ViewingVolume `toml:"ar"`
}

// For returns the volume used in the given mode.
func (s VolumeSet) For(mode RenderMode) ViewingVolume {
	switch mode {
	case ModePreview3D:
		return s.Preview3D
	case ModeVR:
		return s.VR
	case ModeAR:
		return s.AR
	default:
		return s.Desktop
	}
}

// Validate validates every volume in the set.
func (s VolumeSet) Validate() error {
	for _, m := range []RenderMode{ModeDesktop, ModePreview3D, ModeVR, ModeAR} {
		if err := s.For(m).Validate(); err != nil {
			return fmt.Errorf("volume %s: %w", m, err)
		}
	}
	return nil
}

// DefaultVolumes returns the built-in volumes: a small in-page preview volume
// for desktop and preview3D, and a 4m x 1.5m room-scale volume for VR and AR.
func DefaultVolumes() VolumeSet {
	preview := ViewingVolume{Width: 1.6, Height: 0.9, EyeHeight: 1.6, Depth: 1.2}
	immersive := ViewingVolume{Width: 4, Height: 1.5, EyeHeight: 1.6, Depth: 2}
	return VolumeSet{
		Desktop:   preview,
		Preview3D: preview,
		VR:        immersive,
		AR:        immersive,
	}
}
