package immerse

import "errors"

var (
	// ErrInvalidGeometry is returned by the mapper and the clip resolver for
	// non-finite coordinates or negative sizes. The pipeline skips the widget
	// for the current frame.
	ErrInvalidGeometry = errors.New("immerse: invalid geometry")

	// ErrInvalidWidget is returned by stores when a record fails validation.
	ErrInvalidWidget = errors.New("immerse: invalid widget")

	// ErrUnknownWidget is returned when a widget ID is not present in a store.
	ErrUnknownWidget = errors.New("immerse: unknown widget")

	// ErrUnsupportedSession is returned when an immersive mode is requested
	// without device or runtime support. The mode is left unchanged.
	ErrUnsupportedSession = errors.New("immerse: unsupported session")

	// ErrSessionBusy is returned when a transition is requested while another
	// one is still pending.
	ErrSessionBusy = errors.New("immerse: session busy")

	// ErrSessionAborted is returned by RequestImmersive when the pending
	// request was aborted or its context was cancelled.
	ErrSessionAborted = errors.New("immerse: session request aborted")

	// ErrInvalidTransition is returned for transitions the mode graph does not
	// allow, such as requesting VR straight from desktop.
	ErrInvalidTransition = errors.New("immerse: invalid mode transition")
)
