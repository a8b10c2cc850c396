package immerse

import (
	"errors"
	"testing"
	"time"
)

const testDT = float32(1.0 / 60)

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	store := NewMemoryStore()
	if err := store.Put(NewWidget("a", 100, 100, 200, 100)); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(NewWidget("b", 1800, 1000, 200, 200)); err != nil {
		t.Fatal(err)
	}
	v := NewViewer(store, NewStaticFrame(1920, 1080), NewModeMachine(NewSimulatedXR(ModeVR)), DefaultConfig())
	v.Layout(1280, 720)
	return v
}

// settle runs frames until the in-flight immersive request completes.
func settle(t *testing.T, v *Viewer) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for v.requesting || v.Modes.Pending() {
		if time.Now().After(deadline) {
			t.Fatal("immersive request did not settle")
		}
		if err := v.update(testDT); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestViewerDesktopUsesWholeWindow(t *testing.T) {
	v := newTestViewer(t)
	canvas, spatial := v.areas()
	if canvas != (Rect{Width: 1280, Height: 720}) {
		t.Errorf("canvas area = %+v, want full window", canvas)
	}
	if !spatial.IsEmpty() {
		t.Errorf("spatial area = %+v, want empty in desktop", spatial)
	}

	v.Pipeline.SetForceRender(true)
	_, spatial = v.areas()
	if spatial != (Rect{X: 640, Width: 640, Height: 720}) {
		t.Errorf("forced spatial area = %+v, want right half", spatial)
	}
}

func TestViewerUpdateFitsCamera(t *testing.T) {
	v := newTestViewer(t)
	if err := v.update(testDT); err != nil {
		t.Fatal(err)
	}
	if v.Camera.Viewport != (Rect{Width: 1280, Height: 720}) {
		t.Errorf("camera viewport = %+v", v.Camera.Viewport)
	}
	if !approxEqual(v.Camera.Zoom, 1280.0/1920, epsilon) {
		t.Errorf("camera zoom = %v, want %v", v.Camera.Zoom, 1280.0/1920)
	}
	if len(v.Items()) != 0 {
		t.Errorf("desktop items = %d, want 0", len(v.Items()))
	}
}

func TestViewerPreviewEmitsItems(t *testing.T) {
	v := newTestViewer(t)
	if err := v.Modes.EnterPreview(); err != nil {
		t.Fatal(err)
	}
	if err := v.update(testDT); err != nil {
		t.Fatal(err)
	}
	if len(v.Items()) != 2 {
		t.Fatalf("items = %d, want 2", len(v.Items()))
	}
	// Half-width canvas area after entering preview.
	if v.Camera.Viewport.Width != 640 {
		t.Errorf("viewport width = %v, want 640", v.Camera.Viewport.Width)
	}
}

func TestViewerRequestImmersive(t *testing.T) {
	v := newTestViewer(t)
	if err := v.Modes.EnterPreview(); err != nil {
		t.Fatal(err)
	}
	v.RequestImmersive(ModeVR)
	settle(t, v)
	if v.LastError() != nil {
		t.Fatalf("LastError = %v", v.LastError())
	}
	if v.Modes.Mode() != ModeVR {
		t.Errorf("mode = %s, want vr", v.Modes.Mode())
	}
}

func TestViewerRequestUnsupported(t *testing.T) {
	v := newTestViewer(t)
	if err := v.Modes.EnterPreview(); err != nil {
		t.Fatal(err)
	}
	v.RequestImmersive(ModeAR)
	settle(t, v)
	if !errors.Is(v.LastError(), ErrUnsupportedSession) {
		t.Errorf("LastError = %v, want ErrUnsupportedSession", v.LastError())
	}
	if v.Modes.Mode() != ModePreview3D {
		t.Errorf("mode = %s, want preview3D", v.Modes.Mode())
	}
}

func TestViewerUpdateFunc(t *testing.T) {
	v := newTestViewer(t)
	calls := 0
	v.SetUpdateFunc(func() error {
		calls++
		return nil
	})
	_ = v.update(testDT)
	_ = v.update(testDT)
	if calls != 2 {
		t.Errorf("update func calls = %d, want 2", calls)
	}
}

func TestViewerRequestWhileRequestingIsBusy(t *testing.T) {
	v := newTestViewer(t)
	if err := v.Modes.EnterPreview(); err != nil {
		t.Fatal(err)
	}
	v.RequestImmersive(ModeVR)
	v.RequestImmersive(ModeVR)
	settle(t, v)
	if v.Modes.Mode() != ModeVR {
		t.Errorf("mode = %s, want vr", v.Modes.Mode())
	}
	// The first request succeeded; the busy error from the second survives.
	err := v.LastError()
	if !errors.Is(err, ErrSessionBusy) {
		t.Fatalf("LastError = %v, want ErrSessionBusy", err)
	}
	if err.Error() != "request vr: "+ErrSessionBusy.Error() {
		t.Errorf("LastError = %q", err)
	}
}

func TestViewerZoomAndPanCanvas(t *testing.T) {
	v := newTestViewer(t)
	if err := v.Modes.EnterPreview(); err != nil {
		t.Fatal(err)
	}
	if err := v.update(testDT); err != nil {
		t.Fatal(err)
	}
	// Canvas area is the left half: 640x720, fitted at zoom 1/3.
	assertNear(t, "fit zoom", v.Camera.Zoom, 1.0/3)

	v.ZoomCanvas(3, 320, 360)
	assertNear(t, "zoom", v.Camera.Zoom, 1)
	assertNear(t, "zoom x", v.Camera.X, 960)
	assertNear(t, "zoom y", v.Camera.Y, 540)
	if err := v.update(testDT); err != nil {
		t.Fatal(err)
	}
	assertRect(t, "zoomed bounds", v.Camera.VisibleBounds(), Rect{X: 640, Y: 180, Width: 640, Height: 720})
	a, ok := findItem(v.Items(), "a")
	if !ok {
		t.Fatal("item a missing")
	}
	if !a.CanvasClip.IsFullyClipped() {
		t.Errorf("a canvas clip = %+v, want fully clipped outside the view", a.CanvasClip)
	}

	// Panning far left stops at the canvas edge.
	v.PanCanvas(-2000, 0)
	for i := 0; i < 30; i++ {
		if err := v.update(testDT); err != nil {
			t.Fatal(err)
		}
	}
	if v.Camera.Scrolling() {
		t.Fatal("still scrolling after the pan duration")
	}
	assertNear(t, "panned x", v.Camera.X, 320)
	a, _ = findItem(v.Items(), "a")
	assertClip(t, "a canvas clip", a.CanvasClip, ClipRegion{Top: 0.8})

	v.ResetCanvasView()
	if err := v.update(testDT); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "reset zoom", v.Camera.Zoom, 1.0/3)
	assertNear(t, "reset x", v.Camera.X, 960)
}

func TestViewerZoomClamped(t *testing.T) {
	v := newTestViewer(t)
	if err := v.update(testDT); err != nil {
		t.Fatal(err)
	}
	v.ZoomCanvas(1000, 640, 360)
	assertNear(t, "max zoom", v.Camera.Zoom, maxCanvasZoom)
	v.ZoomCanvas(0, 640, 360)
	assertNear(t, "ignored factor", v.Camera.Zoom, maxCanvasZoom)
}
