package immerse

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PoseTween eases a displayed pose toward a target pose. Renderers use it to
// move widgets smoothly when a mode change swaps the viewing volume; the
// pipeline's poses themselves are never animated.
//
// There is no global animation manager; callers call Update themselves.
type PoseTween struct {
	tweens  [3]*gween.Tween
	current Pose3D
	target  Pose3D
	Done    bool
}

// NewPoseTween creates a tween from one pose to another over duration
// seconds. A non-positive duration snaps to the target immediately.
func NewPoseTween(from, to Pose3D, duration float32, fn ease.TweenFunc) *PoseTween {
	t := &PoseTween{current: from, target: to}
	if duration <= 0 || from == to {
		t.current = to
		t.Done = true
		return t
	}
	t.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	t.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	t.tweens[2] = gween.New(float32(from.Z), float32(to.Z), duration, fn)
	return t
}

// Update advances the tween by dt seconds and returns the current pose. The
// final pose is exactly the target.
func (t *PoseTween) Update(dt float32) Pose3D {
	if t.Done {
		return t.current
	}
	x, doneX := t.tweens[0].Update(dt)
	y, doneY := t.tweens[1].Update(dt)
	z, doneZ := t.tweens[2].Update(dt)
	if doneX && doneY && doneZ {
		t.current = t.target
		t.Done = true
		return t.current
	}
	t.current = Pose3D{X: float64(x), Y: float64(y), Z: float64(z)}
	return t.current
}

// Current returns the most recently computed pose.
func (t *PoseTween) Current() Pose3D {
	return t.current
}

// Target returns the pose the tween ends at.
func (t *PoseTween) Target() Pose3D {
	return t.target
}
