package canopy

type syntheticKind uint8

const (
	synthPointer syntheticKind = iota
	synthTab
	synthNav
	synthConfirm
	synthBack
)

// syntheticEvent is one injected input change. Screen coordinates are used,
// identical to real mouse input, and the change is applied to pointer 0 or
// the keyboard state on top of whatever the input source polled.
type syntheticEvent struct {
	kind      syntheticKind
	x, y      float64
	button    MouseButton
	setButton bool
	down      bool
	mods      KeyModifiers
}

func (e syntheticEvent) apply(s *InputState) {
	switch e.kind {
	case synthPointer:
		p := &s.Pointers[0]
		p.Active = true
		p.X, p.Y = e.x, e.y
		if e.setButton {
			p.Down[e.button] = e.down
		}
	case synthTab:
		s.Tab = e.down
		s.Modifiers = e.mods
	case synthNav:
		s.Nav = Vec2{e.x, e.y}
	case synthConfirm:
		s.Confirm = e.down
	case synthBack:
		s.Back = e.down
	}
}

// InjectPress queues a button press at the given screen coordinates. The
// event is consumed on the next update.
func (m *Manager) InjectPress(x, y float64, button MouseButton) {
	m.injectQueue = append(m.injectQueue, syntheticEvent{
		kind: synthPointer, x: x, y: y,
		button: button, setButton: true, down: true,
	})
}

// InjectRelease queues a button release at the given screen coordinates.
func (m *Manager) InjectRelease(x, y float64, button MouseButton) {
	m.injectQueue = append(m.injectQueue, syntheticEvent{
		kind: synthPointer, x: x, y: y,
		button: button, setButton: true, down: false,
	})
}

// InjectMove queues a pointer move without changing button state.
func (m *Manager) InjectMove(x, y float64) {
	m.injectQueue = append(m.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y})
}

// InjectClick is a convenience that queues a left press followed by a
// release at the same screen coordinates. Consumes two updates.
func (m *Manager) InjectClick(x, y float64) {
	m.InjectPress(x, y, MouseButtonLeft)
	m.InjectRelease(x, y, MouseButtonLeft)
}

// InjectTab queues a Tab key tap with the given modifiers (ModShift moves
// focus backwards). Consumes two updates.
func (m *Manager) InjectTab(mods KeyModifiers) {
	m.injectQueue = append(m.injectQueue,
		syntheticEvent{kind: synthTab, down: true, mods: mods},
		syntheticEvent{kind: synthTab},
	)
}

// InjectNav queues a directional tap. Consumes two updates.
func (m *Manager) InjectNav(dx, dy float64) {
	m.injectQueue = append(m.injectQueue,
		syntheticEvent{kind: synthNav, x: dx, y: dy},
		syntheticEvent{kind: synthNav},
	)
}

// InjectConfirm queues a confirm tap. Consumes two updates.
func (m *Manager) InjectConfirm() {
	m.injectQueue = append(m.injectQueue,
		syntheticEvent{kind: synthConfirm, down: true},
		syntheticEvent{kind: synthConfirm},
	)
}

// InjectBack queues a back tap. Consumes two updates.
func (m *Manager) InjectBack() {
	m.injectQueue = append(m.injectQueue,
		syntheticEvent{kind: synthBack, down: true},
		syntheticEvent{kind: synthBack},
	)
}

// PendingInjections returns the number of queued synthetic events.
func (m *Manager) PendingInjections() int { return len(m.injectQueue) }

// applyInjectedInput pops one event from the inject queue and applies it to
// the raw input state.
func (m *Manager) applyInjectedInput() {
	if len(m.injectQueue) == 0 {
		return
	}
	evt := m.injectQueue[0]
	copy(m.injectQueue, m.injectQueue[1:])
	m.injectQueue = m.injectQueue[:len(m.injectQueue)-1]
	evt.apply(&m.raw)
}
