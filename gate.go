package immerse

// SuppressesSpatial reports whether the mode hides the 3D layer unless a
// caller forces it. Only the desktop authoring mode does today.
func (m RenderMode) SuppressesSpatial() bool {
	return m == ModeDesktop
}

// ShouldRender decides whether w is emitted into the 3D scene in the given
// mode. Rules are applied in order:
//
//  1. an explicitly hidden widget is never rendered, whatever forceRender says;
//  2. a mode that suppresses the spatial layer renders nothing unless
//     forceRender is set (e.g. a live preview pane beside the desktop canvas);
//  3. everything else is rendered.
//
// forceRender always comes from the caller; it is never inferred.
func ShouldRender(w WidgetRecord, mode RenderMode, forceRender bool) bool {
	if w.Hidden() {
		return false
	}
	if mode.SuppressesSpatial() && !forceRender {
		return false
	}
	return true
}
