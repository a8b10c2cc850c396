package immerse

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudText formats the overlay: mode, pipeline counters and pending state.
func hudText(mode RenderMode, pending bool, stats FrameStats, fps float64) string {
	s := fmt.Sprintf("mode: %s", mode)
	if pending {
		s += " (requesting)"
	}
	s += fmt.Sprintf("\nitems: %d/%d  gated: %d  skipped: %d\nFPS: %.1f",
		stats.Emitted, stats.Widgets, stats.Gated, stats.Skipped, fps)
	return s
}

// canvasViewText describes the canvas camera.
func canvasViewText(cam *Camera) string {
	s := fmt.Sprintf("canvas zoom: %.2f", cam.Zoom)
	if cam.Scrolling() {
		s += " (panning)"
	}
	return s
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	text := hudText(v.Modes.Mode(), v.Modes.Pending(), v.Pipeline.Stats(), ebiten.ActualFPS())
	ebitenutil.DebugPrint(screen, text+"\n"+canvasViewText(v.Camera))
}
