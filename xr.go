package immerse

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SimulatedXR is an XRProvider for previews and tests. It reports support
// for the modes in Supported and hands out sessions after Latency. Both calls
// honor ctx cancellation.
type SimulatedXR struct {
	Supported map[RenderMode]bool
	Latency   time.Duration

	mu       sync.Mutex
	sessions []*SimulatedSession
}

// NewSimulatedXR returns a provider supporting the given immersive modes.
func NewSimulatedXR(modes ...RenderMode) *SimulatedXR {
	x := &SimulatedXR{Supported: make(map[RenderMode]bool)}
	for _, m := range modes {
		x.Supported[m] = true
	}
	return x
}

// IsSessionSupported implements XRProvider.
func (x *SimulatedXR) IsSessionSupported(ctx context.Context, mode RenderMode) (bool, error) {
	if err := x.wait(ctx); err != nil {
		return false, err
	}
	return x.Supported[mode], nil
}

// RequestSession implements XRProvider.
func (x *SimulatedXR) RequestSession(ctx context.Context, mode RenderMode) (Session, error) {
	if err := x.wait(ctx); err != nil {
		return nil, err
	}
	if !x.Supported[mode] {
		return nil, fmt.Errorf("simulated %s: %w", mode, ErrUnsupportedSession)
	}
	s := &SimulatedSession{mode: mode, done: make(chan struct{})}
	x.mu.Lock()
	x.sessions = append(x.sessions, s)
	x.mu.Unlock()
	return s, nil
}

// Sessions returns every session handed out so far.
func (x *SimulatedXR) Sessions() []*SimulatedSession {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make([]*SimulatedSession, len(x.sessions))
	copy(out, x.sessions)
	return out
}

func (x *SimulatedXR) wait(ctx context.Context) error {
	if x.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(x.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SimulatedSession is the Session returned by SimulatedXR. Terminate mimics
// the runtime ending the session on its own.
type SimulatedSession struct {
	mode  RenderMode
	done  chan struct{}
	once  sync.Once
	ended bool
	mu    sync.Mutex
}

// Mode implements Session.
func (s *SimulatedSession) Mode() RenderMode { return s.mode }

// Done implements Session.
func (s *SimulatedSession) Done() <-chan struct{} { return s.done }

// End implements Session.
func (s *SimulatedSession) End() error {
	s.once.Do(func() {
		s.mu.Lock()
		s.ended = true
		s.mu.Unlock()
		close(s.done)
	})
	return nil
}

// Terminate ends the session as if the device had dropped it.
func (s *SimulatedSession) Terminate() {
	_ = s.End()
}

// Ended reports whether End or Terminate has been called.
func (s *SimulatedSession) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}
