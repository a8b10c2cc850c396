package immerse

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if cam.Viewport.Width != 800 || cam.Viewport.Height != 600 {
		t.Errorf("Viewport = %v, want 800x600", cam.Viewport)
	}
	if cam.BoundsEnabled {
		t.Error("BoundsEnabled = true, want false")
	}
}

func TestCameraIdentityViewMatrix(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	vm := cam.computeViewMatrix()
	// At (0,0), zoom 1: the canvas origin maps to the viewport center.
	sx, sy := transformPoint(vm, 0, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("CanvasToScreen(0,0) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 100
	cam.Y = 50
	cam.MarkDirty()
	sx, sy := cam.CanvasToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("CanvasToScreen(100,50) with cam at (100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Zoom = 2.0
	cam.MarkDirty()

	sx1, _ := cam.CanvasToScreen(1, 0)
	sx0, _ := cam.CanvasToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 canvas unit = %f screen pixels, want 2.0", sx1-sx0)
	}
}

func TestScreenToCanvasRoundtrip(t *testing.T) {
	cam := NewCamera(Rect{X: 50, Y: 25, Width: 800, Height: 600})
	cam.X, cam.Y, cam.Zoom = 300, 200, 0.75
	cam.MarkDirty()

	for _, p := range [][2]float64{{0, 0}, {123, 456}, {-50, 1000}} {
		sx, sy := cam.CanvasToScreen(p[0], p[1])
		wx, wy := cam.ScreenToCanvas(sx, sy)
		if !approxEqual(wx, p[0], 1e-6) || !approxEqual(wy, p[1], 1e-6) {
			t.Errorf("roundtrip (%v,%v) = (%v,%v)", p[0], p[1], wx, wy)
		}
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y, cam.Zoom = 400, 300, 2
	cam.MarkDirty()
	assertRect(t, "visible", cam.VisibleBounds(), Rect{X: 200, Y: 150, Width: 400, Height: 300})
}

func TestCameraScreenRect(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y, cam.Zoom = 400, 300, 0.5
	cam.MarkDirty()
	got := cam.ScreenRect(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	assertRect(t, "screen", got, Rect{X: 200, Y: 150, Width: 400, Height: 300})
}

func TestCameraFitCanvas(t *testing.T) {
	cam := NewCamera(Rect{Width: 640, Height: 720})
	cam.FitCanvas(CanvasFrame{Width: 1920, Height: 1080})
	if !approxEqual(cam.Zoom, 1.0/3, epsilon) {
		t.Errorf("Zoom = %v, want 1/3", cam.Zoom)
	}
	if cam.X != 960 || cam.Y != 540 {
		t.Errorf("center = (%v,%v), want (960,540)", cam.X, cam.Y)
	}
	// Width-limited: the whole canvas width is visible, with space above and below.
	vis := cam.VisibleBounds()
	assertRect(t, "visible", vis, Rect{X: 0, Y: -540, Width: 1920, Height: 2160})
}

func TestCameraFitCanvasEmptyViewportKeepsZoom(t *testing.T) {
	cam := NewCamera(Rect{})
	cam.FitCanvas(CanvasFrame{Width: 1920, Height: 1080})
	if cam.Zoom != 1 {
		t.Errorf("Zoom = %v, want unchanged 1", cam.Zoom)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.ScrollTo(100, 200, 1.0, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling() = false after ScrollTo")
	}
	cam.Update(0.5)
	cam.Update(0.5)
	if cam.Scrolling() {
		t.Error("still scrolling after full duration")
	}
	if math.Abs(cam.X-100) > 0.01 || math.Abs(cam.Y-200) > 0.01 {
		t.Errorf("position = (%v,%v), want (100,200)", cam.X, cam.Y)
	}
}

func TestCameraBoundsClamp(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 1920, Height: 1080})
	cam.X, cam.Y = -1000, 5000
	cam.Update(0)
	if cam.X != 400 || cam.Y != 780 {
		t.Errorf("clamped = (%v,%v), want (400,780)", cam.X, cam.Y)
	}

	cam.BoundsEnabled = false
	cam.X = -1000
	cam.ClampToBounds()
	if cam.X != -1000 {
		t.Error("ClampToBounds moved the camera with bounds disabled")
	}
}

func TestCameraBoundsSmallerThanView(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{X: 100, Y: 100, Width: 200, Height: 200})
	cam.ClampToBounds()
	if cam.X != 200 || cam.Y != 200 {
		t.Errorf("centered = (%v,%v), want (200,200)", cam.X, cam.Y)
	}
}

func TestContainerFor(t *testing.T) {
	frame := CanvasFrame{Width: 1920, Height: 1080}
	if got := containerFor(frame, nil); got != frame.Rect() {
		t.Errorf("nil camera container = %+v, want canvas", got)
	}
	if got := containerFor(frame, NewCamera(Rect{})); got != frame.Rect() {
		t.Errorf("empty viewport container = %+v, want canvas", got)
	}

	cam := NewCamera(Rect{Width: 960, Height: 1080})
	cam.X, cam.Y = 960, 540
	assertRect(t, "camera container", containerFor(frame, cam), Rect{X: 480, Width: 960, Height: 1080})

	cam.Zoom = 0.25
	cam.MarkDirty()
	assertRect(t, "zoomed out", containerFor(frame, cam), frame.Rect())
}
