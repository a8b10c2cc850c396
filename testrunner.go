package immerse

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	ID     string  `json:"id,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	Force  bool    `json:"force,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot":   true,
	"wait":         true,
	"preview":      true,
	"exit-preview": true,
	"request":      true,
	"abort":        true,
	"end":          true,
	"resize":       true,
	"move":         true,
	"hide":         true,
	"show":         true,
	"force":        true,
}

// TestRunner sequences mode changes, store edits and screenshots across
// frames for automated visual testing. Attach to a Viewer via SetTestRunner.
//
//	{"steps": [
//		{"action": "preview"},
//		{"action": "request", "mode": "vr"},
//		{"action": "screenshot", "label": "in-vr"},
//		{"action": "end"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	errs      []error

	// requestStep is the index of the step whose immersive request is in
	// flight, or -1.
	requestStep int
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Viewer via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "request" {
			if m, ok := ParseRenderMode(st.Mode); !ok || !m.Immersive() {
				return nil, fmt.Errorf("parse test script: step %d: request needs mode vr or ar, got %q", i, st.Mode)
			}
		}
	}
	return &TestRunner{steps: script.Steps, requestStep: -1}, nil
}

// SetTestRunner attaches a TestRunner to the viewer. The runner's step method
// is called at the start of every Update.
func (v *Viewer) SetTestRunner(runner *TestRunner) {
	v.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Errors returns the errors returned by scripted actions, in order.
func (r *TestRunner) Errors() []error {
	return r.errs
}

// step advances the test runner by one frame. Called from Viewer.Update.
func (r *TestRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Wait for an in-flight immersive request to settle before advancing.
	if v.requesting {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "screenshot":
		v.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "preview":
		err = v.Modes.EnterPreview()
	case "exit-preview":
		err = v.Modes.ExitPreview()
	case "request":
		mode, _ := ParseRenderMode(st.Mode)
		v.RequestImmersive(mode)
		if v.requesting {
			r.requestStep = r.cursor - 1
		}
	case "abort":
		v.Modes.Abort()
	case "end":
		v.Modes.EndSession(EndUser)
	case "resize":
		v.Frame.Resize(st.W, st.H)
	case "move":
		err = v.Store.Move(st.ID, st.X, st.Y)
	case "hide":
		err = v.Store.SetVisibility(st.ID, VisibilityHidden)
	case "show":
		err = v.Store.SetVisibility(st.ID, VisibilityVisible)
	case "force":
		v.Pipeline.SetForceRender(st.Force)
	}
	if err != nil {
		r.fail(v, r.cursor-1, st.Action, err)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !v.requesting {
		r.done = true
	}
}

// requestSettled records the outcome of a scripted immersive request.
func (r *TestRunner) requestSettled(v *Viewer, err error) {
	idx := r.requestStep
	if idx < 0 {
		return
	}
	r.requestStep = -1
	if err != nil {
		r.fail(v, idx, "request", err)
	}
}

func (r *TestRunner) fail(v *Viewer, idx int, action string, err error) {
	r.errs = append(r.errs, fmt.Errorf("step %d (%s): %w", idx, action, err))
	v.lastErr = err
	Logger().Warn("test script step failed", "step", idx, "action", action, "err", err)
}
