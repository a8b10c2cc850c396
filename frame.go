package immerse

import (
	"fmt"
	"sync"
)

// CanvasFrame is the pixel size of the authoring canvas. Widget positions are
// normalized against it on every projection.
type CanvasFrame struct {
	Width, Height float64
}

// Rect returns the canvas rectangle anchored at the origin.
func (f CanvasFrame) Rect() Rect {
	return Rect{Width: f.Width, Height: f.Height}
}

// Validate reports ErrInvalidGeometry unless both dimensions are positive and
// finite.
func (f CanvasFrame) Validate() error {
	if !isFinite(f.Width) || !isFinite(f.Height) || f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: canvas frame %vx%v", ErrInvalidGeometry, f.Width, f.Height)
	}
	return nil
}

// FrameProvider exposes the current canvas frame. The pipeline re-reads it on
// every frame so resizes take effect immediately.
type FrameProvider interface {
	CanvasFrame() CanvasFrame
}

// StaticFrame is a FrameProvider holding a single resizable frame. Safe for
// concurrent use.
type StaticFrame struct {
	mu    sync.RWMutex
	frame CanvasFrame
}

// NewStaticFrame creates a StaticFrame of the given size.
func NewStaticFrame(w, h float64) *StaticFrame {
	return &StaticFrame{frame: CanvasFrame{Width: w, Height: h}}
}

// CanvasFrame returns the current frame.
func (s *StaticFrame) CanvasFrame() CanvasFrame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// Resize replaces the frame dimensions.
func (s *StaticFrame) Resize(w, h float64) {
	s.mu.Lock()
	s.frame = CanvasFrame{Width: w, Height: h}
	s.mu.Unlock()
}
