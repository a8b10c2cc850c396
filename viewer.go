package immerse

import (
	"context"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

const (
	panSeconds    = 0.25
	minCanvasZoom = 0.05
	maxCanvasZoom = 8
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowHUD draws the mode, item counts and FPS in the top-left corner.
	ShowHUD bool
}

// Viewer is an ebiten.Game that previews the pipeline: the 2D canvas on the
// left and, when the spatial layer renders, the 3D front view on the right.
// In desktop mode without force render the canvas fills the window.
type Viewer struct {
	Store    *MemoryStore
	Frame    *StaticFrame
	Modes    *ModeMachine
	Pipeline *Pipeline
	Camera   *Camera
	Renderer *PreviewRenderer

	// ClearColor fills the window before drawing.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ShowHUD draws the debug overlay.
	ShowHUD bool

	width, height int
	fitted        CanvasFrame
	items         []RenderItem

	runner          *TestRunner
	screenshotQueue []string
	updateFunc      func() error

	requestDone chan error
	requesting  bool
	lastErr     error
}

// NewViewer wires a pipeline over the given collaborators.
func NewViewer(store *MemoryStore, frame *StaticFrame, modes *ModeMachine, cfg Config) *Viewer {
	v := &Viewer{
		Store:         store,
		Frame:         frame,
		Modes:         modes,
		Pipeline:      NewPipeline(store, frame, modes, cfg),
		Camera:        NewCamera(Rect{}),
		Renderer:      NewPreviewRenderer(cfg.TransitionSeconds),
		ClearColor:    Color{R: 0.06, G: 0.06, B: 0.08, A: 1},
		ScreenshotDir: cfg.ScreenshotDir,
		requestDone:   make(chan error, 1),
	}
	v.Pipeline.SetCamera(v.Camera)
	return v
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (v *Viewer) SetUpdateFunc(fn func() error) {
	v.updateFunc = fn
}

// Items returns the render items of the last Update. The slice is reused by
// the next Update.
func (v *Viewer) Items() []RenderItem {
	return v.items
}

// LastError returns the most recent error from a scripted action or an
// asynchronous immersive request. A later success does not clear it.
func (v *Viewer) LastError() error {
	return v.lastErr
}

// RequestImmersive starts an immersive request without blocking the game
// loop. The outcome is available from LastError after a later Update.
func (v *Viewer) RequestImmersive(mode RenderMode) {
	if v.requesting {
		v.lastErr = fmt.Errorf("request %s: %w", mode, ErrSessionBusy)
		return
	}
	v.requesting = true
	go func() {
		v.requestDone <- v.Modes.RequestImmersive(context.Background(), mode)
	}()
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	return v.update(dt)
}

func (v *Viewer) update(dt float32) error {
	select {
	case err := <-v.requestDone:
		v.requesting = false
		if err != nil {
			v.lastErr = err
		}
		if v.runner != nil {
			v.runner.requestSettled(v, err)
		}
	default:
	}

	if v.runner != nil {
		v.runner.step(v)
	}

	canvas, _ := v.areas()
	frame := v.Frame.CanvasFrame()
	if v.Camera.Viewport != canvas || v.fitted != frame {
		v.Camera.Viewport = canvas
		v.Camera.FitCanvas(frame)
		v.Camera.SetBounds(frame.Rect())
		v.fitted = frame
	}
	v.Camera.Update(dt)

	v.items = v.Pipeline.Frame()
	v.Renderer.Update(v.items, dt)

	if v.updateFunc != nil {
		return v.updateFunc()
	}
	return nil
}

// PanCanvas scrolls the canvas camera by dx, dy canvas pixels. The camera
// stays within the canvas.
func (v *Viewer) PanCanvas(dx, dy float64) {
	v.Camera.ScrollTo(v.Camera.X+dx, v.Camera.Y+dy, panSeconds, ease.OutCubic)
}

// ZoomCanvas scales the canvas camera zoom by factor, keeping the canvas
// point under the screen point (sx, sy) in place.
func (v *Viewer) ZoomCanvas(factor, sx, sy float64) {
	cam := v.Camera
	if factor <= 0 || cam.Viewport.IsEmpty() {
		return
	}
	px, py := cam.ScreenToCanvas(sx, sy)
	cam.Zoom = math.Max(minCanvasZoom, math.Min(cam.Zoom*factor, maxCanvasZoom))
	cam.MarkDirty()
	nx, ny := cam.CanvasToScreen(px, py)
	cam.X += (nx - sx) / cam.Zoom
	cam.Y += (ny - sy) / cam.Zoom
	cam.ClampToBounds()
	cam.MarkDirty()
}

// ResetCanvasView fits the whole canvas into the canvas area again on the
// next Update.
func (v *Viewer) ResetCanvasView() {
	v.Camera.scrollTween = nil
	v.fitted = CanvasFrame{}
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.ClearColor.toRGBA())

	_, spatial := v.areas()
	v.Renderer.DrawCanvas(screen, v.items, v.Frame.CanvasFrame(), v.Camera)
	if !spatial.IsEmpty() {
		vol := v.Pipeline.Volumes().For(v.Modes.Mode())
		v.Renderer.DrawSpatial(screen, v.items, vol, spatial)
	}
	if v.ShowHUD {
		v.drawHUD(screen)
	}
	v.flushScreenshots(screen)
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// areas splits the window between the canvas and the spatial view.
func (v *Viewer) areas() (canvas, spatial Rect) {
	full := Rect{Width: float64(v.width), Height: float64(v.height)}
	mode := v.Modes.Mode()
	if mode.SuppressesSpatial() && !v.Pipeline.ForceRender() {
		return full, Rect{}
	}
	half := full.Width / 2
	return Rect{Width: half, Height: full.Height},
		Rect{X: half, Width: full.Width - half, Height: full.Height}
}

// Run opens a window and runs the viewer until it is closed.
func Run(v *Viewer, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	v.ShowHUD = v.ShowHUD || cfg.ShowHUD
	return ebiten.RunGame(v)
}
