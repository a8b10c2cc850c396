package immerse

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Session is a live immersive session handed out by an XRProvider.
type Session interface {
	// Mode returns ModeVR or ModeAR.
	Mode() RenderMode
	// End terminates the session. It must be safe to call more than once.
	End() error
	// Done is closed when the session ends for any reason, including
	// termination by the device or runtime. A nil channel means the session
	// never ends on its own.
	Done() <-chan struct{}
}

// XRProvider negotiates immersive sessions with a device or runtime. Both
// calls may block; they own their own timeout policy and should honor ctx.
type XRProvider interface {
	IsSessionSupported(ctx context.Context, mode RenderMode) (bool, error)
	RequestSession(ctx context.Context, mode RenderMode) (Session, error)
}

// ModeSource supplies the current render mode to the pipeline.
type ModeSource interface {
	Mode() RenderMode
}

// EndReason records why the machine left a mode for desktop.
type EndReason uint8

const (
	EndUser     EndReason = iota // explicit user or caller action
	EndError                     // the host hit an error and bailed out
	EndExternal                  // the device or runtime terminated the session
)

// String returns the lowercase reason name.
func (r EndReason) String() string {
	switch r {
	case EndUser:
		return "user"
	case EndError:
		return "error"
	case EndExternal:
		return "external"
	default:
		return "unknown"
	}
}

// ModeChange is delivered to listeners after every transition.
type ModeChange struct {
	From, To RenderMode
	// Reason is set when To is ModeDesktop.
	Reason EndReason
}

type pendingRequest struct {
	target RenderMode
	cancel context.CancelFunc
}

// ModeMachine tracks the active presentation mode and the immersive session
// lifecycle. Modes only change through its methods:
//
//	desktop -> preview3D -> {vr, ar} -> desktop
//
// At most one immersive request is in flight; other transitions attempted
// meanwhile fail with ErrSessionBusy. ModeMachine is safe for concurrent use.
type ModeMachine struct {
	mu        sync.Mutex
	provider  XRProvider
	mode      RenderMode
	pending   *pendingRequest
	session   Session
	listeners []func(ModeChange)
}

// NewModeMachine creates a machine in desktop mode. A nil provider means
// immersive modes are never supported.
func NewModeMachine(provider XRProvider) *ModeMachine {
	return &ModeMachine{provider: provider}
}

// Mode returns the current mode.
func (m *ModeMachine) Mode() RenderMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Pending reports whether an immersive request is in flight.
func (m *ModeMachine) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}

// Session returns the active immersive session, or nil.
func (m *ModeMachine) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// OnChange registers fn to be called after every mode change. Listeners run
// on the goroutine that caused the change, outside the machine's lock.
func (m *ModeMachine) OnChange(fn func(ModeChange)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// EnterPreview switches from desktop to preview3D. It is a no-op in
// preview3D and fails with ErrInvalidTransition from an immersive mode.
func (m *ModeMachine) EnterPreview() error {
	m.mu.Lock()
	if m.pending != nil {
		m.mu.Unlock()
		return fmt.Errorf("enter preview: %w", ErrSessionBusy)
	}
	switch m.mode {
	case ModePreview3D:
		m.mu.Unlock()
		return nil
	case ModeDesktop:
		change, ls := m.transitionLocked(ModePreview3D, EndUser)
		m.mu.Unlock()
		emitChange(change, ls)
		return nil
	default:
		from := m.mode
		m.mu.Unlock()
		return fmt.Errorf("enter preview from %s: %w", from, ErrInvalidTransition)
	}
}

// ExitPreview switches from preview3D back to desktop. It is a no-op in
// desktop; immersive modes are left with EndSession.
func (m *ModeMachine) ExitPreview() error {
	m.mu.Lock()
	if m.pending != nil {
		m.mu.Unlock()
		return fmt.Errorf("exit preview: %w", ErrSessionBusy)
	}
	switch m.mode {
	case ModeDesktop:
		m.mu.Unlock()
		return nil
	case ModePreview3D:
		change, ls := m.transitionLocked(ModeDesktop, EndUser)
		m.mu.Unlock()
		emitChange(change, ls)
		return nil
	default:
		from := m.mode
		m.mu.Unlock()
		return fmt.Errorf("exit preview from %s: %w", from, ErrInvalidTransition)
	}
}

// RequestImmersive moves from preview3D into target (ModeVR or ModeAR). It
// checks support with the provider, then requests a session, and blocks
// until both complete.
//
// The mode stays preview3D while the request is pending. If support is
// missing, the check fails, or the session request fails, the result wraps
// ErrUnsupportedSession. If Abort or EndSession is called, or ctx is
// cancelled, the result wraps ErrSessionAborted and any late session is
// ended. In every failure case the mode is unchanged.
func (m *ModeMachine) RequestImmersive(ctx context.Context, target RenderMode) error {
	if !target.Immersive() {
		return fmt.Errorf("request %s: %w", target, ErrInvalidTransition)
	}

	m.mu.Lock()
	if m.pending != nil {
		m.mu.Unlock()
		return fmt.Errorf("request %s: %w", target, ErrSessionBusy)
	}
	if m.mode != ModePreview3D {
		from := m.mode
		m.mu.Unlock()
		return fmt.Errorf("request %s from %s: %w", target, from, ErrInvalidTransition)
	}
	if m.provider == nil {
		m.mu.Unlock()
		return fmt.Errorf("request %s: %w: no xr provider", target, ErrUnsupportedSession)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := &pendingRequest{target: target, cancel: cancel}
	m.pending = p
	provider := m.provider
	m.mu.Unlock()

	ok, err := provider.IsSessionSupported(ctx, target)
	if !m.stillPending(ctx, p) {
		return fmt.Errorf("request %s: %w", target, ErrSessionAborted)
	}
	if err != nil || !ok {
		m.clearPending(p)
		if err != nil {
			return fmt.Errorf("request %s: %w: %v", target, ErrUnsupportedSession, err)
		}
		return fmt.Errorf("request %s: %w", target, ErrUnsupportedSession)
	}

	sess, err := provider.RequestSession(ctx, target)

	m.mu.Lock()
	if m.pending != p || ctx.Err() != nil {
		if m.pending == p {
			m.pending = nil
		}
		m.mu.Unlock()
		if sess != nil {
			endQuietly(sess)
		}
		return fmt.Errorf("request %s: %w", target, ErrSessionAborted)
	}
	m.pending = nil
	if err != nil || sess == nil {
		m.mu.Unlock()
		if errors.Is(err, ErrUnsupportedSession) {
			return fmt.Errorf("request %s: %w", target, err)
		}
		if err != nil {
			return fmt.Errorf("request %s: %w: %v", target, ErrUnsupportedSession, err)
		}
		return fmt.Errorf("request %s: %w: no session", target, ErrUnsupportedSession)
	}
	m.session = sess
	change, ls := m.transitionLocked(target, EndUser)
	m.mu.Unlock()

	emitChange(change, ls)
	if done := sess.Done(); done != nil {
		go m.watch(sess, done)
	}
	return nil
}

// Abort cancels the pending immersive request, if any, and reports whether
// there was one. The mode is left as it was before the request.
func (m *ModeMachine) Abort() bool {
	m.mu.Lock()
	p := m.pending
	m.pending = nil
	m.mu.Unlock()
	if p == nil {
		return false
	}
	p.cancel()
	Logger().Info("immersive request aborted", "target", p.target.String())
	return true
}

// EndSession ends any active session, cancels any pending request and
// returns to desktop. It always succeeds and is a no-op in desktop.
func (m *ModeMachine) EndSession(reason EndReason) {
	m.end(nil, reason)
}

// end performs EndSession. When only is non-nil, it acts only if only is
// still the active session, so a stale watcher cannot end a newer session.
func (m *ModeMachine) end(only Session, reason EndReason) {
	m.mu.Lock()
	if only != nil && m.session != only {
		m.mu.Unlock()
		return
	}
	p := m.pending
	m.pending = nil
	sess := m.session
	m.session = nil
	var (
		change  ModeChange
		ls      []func(ModeChange)
		changed bool
	)
	if m.mode != ModeDesktop {
		change, ls = m.transitionLocked(ModeDesktop, reason)
		changed = true
	}
	m.mu.Unlock()

	if p != nil {
		p.cancel()
	}
	if sess != nil {
		endQuietly(sess)
	}
	if changed {
		emitChange(change, ls)
	}
}

func (m *ModeMachine) watch(sess Session, done <-chan struct{}) {
	<-done
	m.end(sess, EndExternal)
}

// stillPending reports whether p is the current request and ctx is live. If
// ctx is done, p is cleared.
func (m *ModeMachine) stillPending(ctx context.Context, p *pendingRequest) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != p {
		return false
	}
	if ctx.Err() != nil {
		m.pending = nil
		return false
	}
	return true
}

func (m *ModeMachine) clearPending(p *pendingRequest) {
	m.mu.Lock()
	if m.pending == p {
		m.pending = nil
	}
	m.mu.Unlock()
}

// transitionLocked sets the mode and returns the change plus a copy of the
// listeners to notify once the lock is released.
func (m *ModeMachine) transitionLocked(to RenderMode, reason EndReason) (ModeChange, []func(ModeChange)) {
	change := ModeChange{From: m.mode, To: to, Reason: reason}
	m.mode = to
	ls := make([]func(ModeChange), len(m.listeners))
	copy(ls, m.listeners)
	return change, ls
}

func emitChange(change ModeChange, ls []func(ModeChange)) {
	Logger().Info("mode change",
		"from", change.From.String(),
		"to", change.To.String(),
		"reason", change.Reason.String())
	for _, fn := range ls {
		fn(change)
	}
}

func endQuietly(sess Session) {
	if err := sess.End(); err != nil {
		Logger().Warn("end session", "mode", sess.Mode().String(), "err", err)
	}
}
