package canopy

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoSteps is returned by LoadTestScript for a script without steps.
var ErrNoSteps = errors.New("test script has no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Button string  `json:"button,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input across updates for scripted UI
// checks. Attach to a Manager via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Manager via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, errors.Wrap(err, "parse test script")
	}
	if len(script.Steps) == 0 {
		return nil, errors.Wrap(ErrNoSteps, "parse test script")
	}
	for i, st := range script.Steps {
		if !knownAction(st.Action) {
			return nil, errors.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "screenshot", "click", "press", "release", "move", "tab", "shift-tab",
		"nav", "confirm", "back", "wait", "log":
		return true
	}
	return false
}

func parseButton(name string) MouseButton {
	switch name {
	case "right":
		return MouseButtonRight
	case "middle":
		return MouseButtonMiddle
	default:
		return MouseButtonLeft
	}
}

// SetTestRunner attaches a TestRunner to the manager. The runner's step is
// called from Step before input is polled.
func (m *Manager) SetTestRunner(runner *TestRunner) {
	m.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one update.
func (r *TestRunner) step(m *Manager) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(m.injectQueue) > 0 {
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

	switch st.Action {
	case "screenshot":
		m.Screenshot(st.Label)
	case "click":
		m.InjectClick(st.X, st.Y)
	case "press":
		m.InjectPress(st.X, st.Y, parseButton(st.Button))
	case "release":
		m.InjectRelease(st.X, st.Y, parseButton(st.Button))
	case "move":
		m.InjectMove(st.X, st.Y)
	case "tab":
		m.InjectTab(0)
	case "shift-tab":
		m.InjectTab(ModShift)
	case "nav":
		m.InjectNav(st.DX, st.DY)
	case "confirm":
		m.InjectConfirm()
	case "back":
		m.InjectBack()
	case "log":
		focused := ""
		if f := m.GetFocusedUI(); f != nil {
			focused = f.Name
		}
		logger.WithFields(logrus.Fields{
			"label": st.Label, "focused": focused, "time": m.now,
		}).Info("canopy: test script")
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this update counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(m.injectQueue) == 0 {
		r.done = true
	}
}
