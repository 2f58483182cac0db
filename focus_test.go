package canopy

import "testing"

// tabTree builds roots a, b (with children b1, b2) and c. Every node is
// tab-able unless listed in notTabbable.
func tabTree(m *Manager, notTabbable ...string) map[string]*Node {
	nodes := map[string]*Node{}
	add := func(parent *Node, name string) *Node {
		n := addNode(m, parent, name, Dim{}, Pixels(10, 10), nil)
		n.SetTabbable(true)
		nodes[name] = n
		return n
	}
	add(nil, "a")
	b := add(nil, "b")
	add(b, "b1")
	add(b, "b2")
	add(nil, "c")
	for _, name := range notTabbable {
		nodes[name].SetTabbable(false)
	}
	return nodes
}

func TestNextTabbableOrder(t *testing.T) {
	m := newTestManager()
	tabTree(m)

	var order []string
	cur := (*Node)(nil)
	for i := 0; i < 6; i++ {
		cur = m.NextTabbable(cur)
		order = append(order, cur.Name)
	}
	want := []string{"a", "b", "b1", "b2", "c", "a"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("tab order = %v, want %v", order, want)
		}
	}
}

func TestNextTabbableSingleConverges(t *testing.T) {
	m := newTestManager()
	nodes := tabTree(m, "a", "b", "b1", "c")
	target := nodes["b2"]

	starts := []*Node{nil}
	for _, n := range nodes {
		starts = append(starts, n)
	}
	for _, start := range starts {
		if got := m.NextTabbable(start); got != target {
			name := "<nil>"
			if start != nil {
				name = start.Name
			}
			t.Errorf("NextTabbable(%s) = %v, want b2", name, got)
		}
	}
}

func TestNextTabbableSkipsInvisibleSubtree(t *testing.T) {
	m := newTestManager()
	nodes := tabTree(m)
	nodes["b"].SetVisible(false)

	if got := m.NextTabbable(nodes["a"]); got != nodes["c"] {
		t.Errorf("NextTabbable(a) = %v, want c", got.Name)
	}
	// Starting inside a hidden subtree still leaves it.
	if got := m.NextTabbable(nodes["b1"]); got != nodes["c"] {
		t.Errorf("NextTabbable(b1) = %v, want c", got.Name)
	}
}

func TestNextTabbableNone(t *testing.T) {
	m := newTestManager()
	tabTree(m, "a", "b", "b1", "b2", "c")
	if got := m.NextTabbable(nil); got != nil {
		t.Errorf("NextTabbable = %v, want nil", got.Name)
	}
	if m.FocusNextTabbable() {
		t.Error("FocusNextTabbable = true with no tab-able nodes")
	}
}

func TestFocusNextWraps(t *testing.T) {
	m := newTestManager()
	nodes := tabTree(m)
	m.SetFocused(nodes["c"])
	if !m.FocusNextTabbable() {
		t.Fatal("FocusNextTabbable = false")
	}
	if m.GetFocusedUI() != nodes["a"] {
		t.Errorf("focused = %v, want a", m.GetFocusedUI().Name)
	}
}

func TestFocusPrevDoesNotWrap(t *testing.T) {
	m := newTestManager()
	nodes := tabTree(m)

	m.SetFocused(nodes["a"])
	if m.FocusPrevTabbable() {
		t.Error("FocusPrevTabbable from the first node = true")
	}
	if m.GetFocusedUI() != nodes["a"] {
		t.Errorf("focused = %v, want a", m.GetFocusedUI().Name)
	}

	m.SetFocused(nodes["c"])
	m.FocusPrevTabbable()
	if m.GetFocusedUI() != nodes["b2"] {
		t.Errorf("focused = %v, want b2", m.GetFocusedUI().Name)
	}
}

func TestPrevTabbableFromNil(t *testing.T) {
	m := newTestManager()
	nodes := tabTree(m)
	if got := m.PrevTabbable(nil); got != nodes["c"] {
		t.Errorf("PrevTabbable(nil) = %v, want c", got.Name)
	}
	nodes["c"].SetVisible(false)
	if got := m.PrevTabbable(nil); got != nodes["b2"] {
		t.Errorf("PrevTabbable(nil) with c hidden = %v, want b2", got.Name)
	}
}

func TestSetFocusedEvents(t *testing.T) {
	m := newTestManager()
	nodes := tabTree(m)
	a, b := nodes["a"], nodes["b"]
	var log eventLog
	log.watch(a, EventFocusGained, EventFocusLost)
	log.watch(b, EventFocusGained, EventFocusLost)

	m.SetFocused(a)
	m.SetFocused(b)
	want := []string{"a:gained", "a:lost", "b:gained"}
	if len(log.entries) != len(want) {
		t.Fatalf("events = %v, want %v", log.entries, want)
	}
	for i := range want {
		if log.entries[i] != want[i] {
			t.Fatalf("events = %v, want %v", log.entries, want)
		}
	}
	if m.PreviousFocusedUI() != a {
		t.Errorf("PreviousFocusedUI() = %v, want a", m.PreviousFocusedUI())
	}

	log.reset()
	m.SetFocused(b)
	if log.count("b:lost") != 1 || log.count("b:gained") != 1 {
		t.Errorf("refocus events = %v, want lost and gained on b", log.entries)
	}

	log.reset()
	m.SetFocused(nil)
	if m.GetFocusedUI() != nil || log.count("b:lost") != 1 {
		t.Errorf("clearing focus: focused = %v, events = %v", m.GetFocusedUI(), log.entries)
	}
}

func TestSetFocusedIgnoresForeignNode(t *testing.T) {
	m, other := newTestManager(), newTestManager()
	n := other.NewNode("n", Dim{}, Dim{}, DefaultFlags(), nil)
	m.SetFocused(n)
	if m.GetFocusedUI() != nil {
		t.Error("foreign node was focused")
	}
}

func TestTabInput(t *testing.T) {
	m := newTestManager()
	nodes := tabTree(m, "b", "b1", "b2")

	m.InjectTab(0)
	m.Step(testDT)
	if m.GetFocusedUI() != nodes["a"] {
		t.Fatalf("after tab focused = %v, want a", m.GetFocusedUI())
	}
	stepUntilDrained(m)

	m.InjectTab(0)
	stepUntilDrained(m)
	if m.GetFocusedUI() != nodes["c"] {
		t.Fatalf("after second tab focused = %v, want c", m.GetFocusedUI())
	}

	m.InjectTab(ModShift)
	stepUntilDrained(m)
	if m.GetFocusedUI() != nodes["a"] {
		t.Errorf("after shift-tab focused = %v, want a", m.GetFocusedUI())
	}
}

func TestTabWithOtherModifiersIgnored(t *testing.T) {
	tests := []struct {
		name string
		mods KeyModifiers
	}{
		{"ctrl", ModCtrl},
		{"alt", ModAlt},
		{"ctrl-shift", ModCtrl | ModShift},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			nodes := tabTree(m, "b", "b1", "b2")
			m.SetFocused(nodes["a"])

			m.InjectTab(tt.mods)
			stepUntilDrained(m)
			if m.GetFocusedUI() != nodes["a"] {
				t.Errorf("focused = %v, want a", m.GetFocusedUI().Name)
			}
		})
	}
}
