package canopy

import (
	"testing"

	"github.com/pkg/errors"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "nav", "dx": 1},
			{"action": "press", "x": 5, "y": 6, "button": "right"},
			{"action": "screenshot", "label": "after-click"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].DX != 1 || runner.steps[3].DY != 0 {
		t.Error("step 3 mismatch")
	}
	if parseButton(runner.steps[4].Button) != MouseButtonRight {
		t.Error("step 4 button mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if errors.Cause(err) != ErrNoSteps {
		t.Errorf("expected ErrNoSteps, got %v", err)
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "click"}, {"action": "drag"}]}`))
	if err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestParseButton(t *testing.T) {
	tests := map[string]MouseButton{
		"":       MouseButtonLeft,
		"left":   MouseButtonLeft,
		"right":  MouseButtonRight,
		"middle": MouseButtonMiddle,
		"bogus":  MouseButtonLeft,
	}
	for name, want := range tests {
		if got := parseButton(name); got != want {
			t.Errorf("parseButton(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestRunnerStep_Click(t *testing.T) {
	m := newTestManager()
	btn := addNode(m, nil, "btn", Dim{}, Pixels(200, 200), &Panel{})
	btn.SetFocusable(true)
	var log eventLog
	log.watch(btn, EventPressedLeft, EventReleasedLeft)

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	m.SetTestRunner(runner)

	for i := 0; i < 5 && !runner.Done(); i++ {
		m.Step(testDT)
	}
	if !runner.Done() {
		t.Fatal("runner should be done after all steps executed and queue drained")
	}
	if log.count("btn:pressed") != 1 || log.count("btn:released") != 1 {
		t.Errorf("expected one press and one release, got %v", log.entries)
	}
	if m.GetFocusedUI() != btn {
		t.Error("click did not focus the button")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	m := newTestManager()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(m)
	// Frames 2 and 3: count down.
	runner.step(m)
	runner.step(m)
	if runner.Done() || len(m.screenshotQueue) != 0 {
		t.Fatal("screenshot step ran during the wait")
	}

	// Frame 4: execute screenshot step, runner finishes.
	runner.step(m)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(m.screenshotQueue) != 1 || m.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", m.screenshotQueue)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	m := newTestManager()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(m)
	if m.PendingInjections() != 2 {
		t.Fatalf("expected 2 events, got %d", m.PendingInjections())
	}

	// Should not advance while the inject queue is not drained.
	runner.step(m)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	m.injectQueue = m.injectQueue[:0]
	runner.step(m)
	if len(m.screenshotQueue) != 1 || m.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", m.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerKeyActions(t *testing.T) {
	m := newTestManager()
	a := addNode(m, nil, "a", Pixels(100, 100), Pixels(50, 50), &Panel{})
	b := addNode(m, nil, "b", Pixels(300, 100), Pixels(50, 50), &Panel{})
	for _, n := range []*Node{a, b} {
		n.SetFocusable(true)
		n.SetTabbable(true)
	}
	var log eventLog
	log.watch(b, EventPressedLeft)

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "tab"},
		{"action": "nav", "dx": 1},
		{"action": "confirm"},
		{"action": "shift-tab"},
		{"action": "log", "label": "end"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	m.SetTestRunner(runner)
	for i := 0; i < 20 && !runner.Done(); i++ {
		m.Step(testDT)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if log.count("b:pressed") != 1 {
		t.Errorf("confirm presses on b = %d, want 1", log.count("b:pressed"))
	}
	if m.GetFocusedUI() != a {
		t.Errorf("focused = %v, want a", m.GetFocusedUI())
	}
}

func TestRunnerDone(t *testing.T) {
	m := newTestManager()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "only"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.Done() {
		t.Error("runner should not be done before any steps")
	}
	runner.step(m)
	if !runner.Done() {
		t.Error("runner should be done after single screenshot step")
	}
}
