package immerse

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// WhitePixel is a 1x1 white image used to draw solid quads.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// PreviewRenderer draws render items for on-screen previews: the 2D canvas
// presentation and a front orthographic view of the 3D presentation. It also
// eases displayed poses when a widget's target pose changes.
type PreviewRenderer struct {
	// CanvasColor fills the canvas area behind widgets.
	CanvasColor Color
	// VolumeColor fills the viewing volume's bounds in the spatial view.
	VolumeColor Color

	transition float32
	easeFn     ease.TweenFunc
	tweens     map[string]*PoseTween
}

// NewPreviewRenderer creates a renderer that eases poses over
// transitionSeconds. Zero disables easing.
func NewPreviewRenderer(transitionSeconds float64) *PreviewRenderer {
	return &PreviewRenderer{
		CanvasColor: Color{R: 0.16, G: 0.16, B: 0.2, A: 1},
		VolumeColor: Color{R: 0.1, G: 0.12, B: 0.18, A: 1},
		transition:  float32(transitionSeconds),
		easeFn:      ease.OutCubic,
		tweens:      make(map[string]*PoseTween),
	}
}

// Update advances displayed poses by dt seconds. Items whose pose changed
// since the last call start a new tween from the currently displayed pose;
// new items appear at their pose directly. Tweens for items that are gone
// are dropped.
func (r *PreviewRenderer) Update(items []RenderItem, dt float32) {
	live := make(map[string]struct{}, len(items))
	for i := range items {
		it := &items[i]
		live[it.WidgetID] = struct{}{}
		tw, ok := r.tweens[it.WidgetID]
		switch {
		case !ok:
			tw = NewPoseTween(it.Pose, it.Pose, 0, r.easeFn)
			r.tweens[it.WidgetID] = tw
		case tw.Target() != it.Pose:
			tw = NewPoseTween(tw.Current(), it.Pose, r.transition, r.easeFn)
			r.tweens[it.WidgetID] = tw
		}
		tw.Update(dt)
	}
	for id := range r.tweens {
		if _, ok := live[id]; !ok {
			delete(r.tweens, id)
		}
	}
}

// DisplayPose returns the eased pose for a widget, or false if the renderer
// has not seen it.
func (r *PreviewRenderer) DisplayPose(id string) (Pose3D, bool) {
	tw, ok := r.tweens[id]
	if !ok {
		return Pose3D{}, false
	}
	return tw.Current(), true
}

// DrawCanvas draws the 2D presentation: the canvas, then each item's visible
// rect through cam. A nil cam draws canvas pixels 1:1.
func (r *PreviewRenderer) DrawCanvas(dst *ebiten.Image, items []RenderItem, frame CanvasFrame, cam *Camera) {
	fillRect(dst, canvasScreenRect(frame.Rect(), cam), r.CanvasColor)
	for i := range items {
		it := &items[i]
		if it.CanvasClip.IsFullyClipped() {
			continue
		}
		fillRect(dst, canvasQuad(it, cam), it.Color)
	}
}

// DrawSpatial draws the 3D presentation seen from the front: the volume's
// bounds fitted into area, then each item's visible rect at its displayed
// pose.
func (r *PreviewRenderer) DrawSpatial(dst *ebiten.Image, items []RenderItem, vol ViewingVolume, area Rect) {
	m := planeToScreen(vol.Bounds(), area)
	fillRect(dst, transformRect(m, vol.Bounds()), r.VolumeColor)
	for i := range items {
		it := &items[i]
		if it.Clip.IsFullyClipped() {
			continue
		}
		pose := it.Pose
		if p, ok := r.DisplayPose(it.WidgetID); ok {
			pose = p
		}
		fillRect(dst, spatialQuad(it, pose, m), it.Color)
	}
}

// canvasQuad returns the screen rect of an item's visible canvas area.
func canvasQuad(it *RenderItem, cam *Camera) Rect {
	return canvasScreenRect(it.CanvasClip.Apply(it.Rect), cam)
}

func canvasScreenRect(r Rect, cam *Camera) Rect {
	if cam == nil {
		return r
	}
	return cam.ScreenRect(r)
}

// spatialQuad returns the screen rect of an item's visible area in the
// display plane, placed at pose and mapped through planeToScreen matrix m.
func spatialQuad(it *RenderItem, pose Pose3D, m [6]float64) Rect {
	visible := it.Clip.Apply(WorldRect(pose, it.SizeMeters))
	return transformRect(m, visible)
}

// fillRect draws a solid rect by scaling WhitePixel.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if r.IsEmpty() || c.A <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	dst.DrawImage(WhitePixel, &op)
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
