package immerse

import "testing"

var allModes = []RenderMode{ModeDesktop, ModePreview3D, ModeVR, ModeAR}

func TestShouldRenderHiddenNeverRenders(t *testing.T) {
	w := NewWidget("h", 0, 0, 10, 10)
	w.Visibility = VisibilityHidden
	for _, mode := range allModes {
		for _, force := range []bool{false, true} {
			if ShouldRender(w, mode, force) {
				t.Errorf("hidden widget rendered in %s (force=%v)", mode, force)
			}
		}
	}
}

func TestShouldRenderDesktop(t *testing.T) {
	w := NewWidget("w", 0, 0, 10, 10)
	if ShouldRender(w, ModeDesktop, false) {
		t.Error("desktop without force should not render")
	}
	if !ShouldRender(w, ModeDesktop, true) {
		t.Error("desktop with force should render")
	}
}

func TestShouldRenderSpatialModes(t *testing.T) {
	for _, vis := range []Visibility{VisibilityDefault, VisibilityVisible} {
		w := NewWidget("w", 0, 0, 10, 10)
		w.Visibility = vis
		for _, mode := range []RenderMode{ModePreview3D, ModeVR, ModeAR} {
			for _, force := range []bool{false, true} {
				if !ShouldRender(w, mode, force) {
					t.Errorf("visibility %d in %s (force=%v) should render", vis, mode, force)
				}
			}
		}
	}
}

func TestShouldRenderIgnoresGeometry(t *testing.T) {
	// Gating looks at visibility and mode only; a zero-size widget still
	// passes and is handled by the clip resolver.
	w := NewWidget("tiny", 5000, 5000, 0, 0)
	if !ShouldRender(w, ModeVR, false) {
		t.Error("zero-size off-canvas widget should pass the gate")
	}
}

func TestSuppressesSpatial(t *testing.T) {
	for _, mode := range allModes {
		want := mode == ModeDesktop
		if got := mode.SuppressesSpatial(); got != want {
			t.Errorf("%s.SuppressesSpatial() = %v, want %v", mode, got, want)
		}
	}
}
