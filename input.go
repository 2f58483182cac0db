package canopy

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers       = 10  // pointer 0 = mouse, 1-9 = touch
	navStickDeadZone  = 0.5 // gamepad stick magnitude that counts as a direction
	maxPolledGamepads = 4
)

// --- Input state ---

// Pointer is the state of one pointer (the mouse or a touch) for a frame.
// Pressed and Released are edges: true only on the frame the button went
// down or up.
type Pointer struct {
	Active   bool
	X, Y     float64
	Down     [numMouseButtons]bool
	Pressed  [numMouseButtons]bool
	Released [numMouseButtons]bool
}

// InputState is one frame of input as the update pass sees it. The *Pressed
// fields are edges computed by the manager from consecutive polls; an
// InputSource only fills the held state.
type InputState struct {
	Pointers  [maxPointers]Pointer
	Modifiers KeyModifiers

	Tab        bool
	TabPressed bool

	// Nav is the held direction, each axis in -1..1. NavPressed holds the
	// direction on the frame it changed to a non-zero value.
	Nav        Vec2
	NavPressed Vec2

	Confirm        bool
	ConfirmPressed bool
	Back           bool
	BackPressed    bool
}

// InputSource fills the held input state once per update. s holds the
// previous poll's state on entry.
type InputSource interface {
	Poll(s *InputState)
}

// computeEdges derives the frame state from the current and previous polls.
func computeEdges(frame, cur, prev *InputState) {
	*frame = *cur
	for i := range frame.Pointers {
		p, was := &frame.Pointers[i], &prev.Pointers[i]
		for b := range p.Down {
			p.Pressed[b] = p.Down[b] && !was.Down[b]
			p.Released[b] = !p.Down[b] && was.Down[b]
		}
	}
	frame.TabPressed = cur.Tab && !prev.Tab
	frame.ConfirmPressed = cur.Confirm && !prev.Confirm
	frame.BackPressed = cur.Back && !prev.Back
	frame.NavPressed = Vec2{}
	if cur.Nav != (Vec2{}) && cur.Nav != prev.Nav {
		frame.NavPressed = cur.Nav
	}
}

// pollInput reads the input source, applies at most one injected event and
// computes this frame's edges.
func (m *Manager) pollInput() {
	m.prevRaw = m.raw
	if m.input != nil {
		m.input.Poll(&m.raw)
	}
	m.applyInjectedInput()
	computeEdges(&m.frame, &m.raw, &m.prevRaw)
}

// Input returns the input state of the last update.
func (m *Manager) Input() *InputState { return &m.frame }

// --- Over counting ---

// OverCounter counts, per pointer, the nodes that were under it during an
// update. Nodes flagged IgnoreOverCount are not counted.
type OverCounter struct {
	cur  [maxPointers]int
	last [maxPointers]int
}

func (o *OverCounter) begin() { o.cur = [maxPointers]int{} }

func (o *OverCounter) end() { o.last = o.cur }

// Add counts one node under pointer.
func (o *OverCounter) Add(pointer int) {
	if o == nil || pointer < 0 || pointer >= maxPointers {
		return
	}
	o.cur[pointer]++
}

// Count returns the count published by the last completed update.
func (o *OverCounter) Count(pointer int) int {
	if pointer < 0 || pointer >= maxPointers {
		return 0
	}
	return o.last[pointer]
}

// --- Ebiten input ---

// EbitenInput polls mouse, touch, keyboard and standard-layout gamepads
// through ebiten. Touches map onto pointer slots 1-9.
type EbitenInput struct {
	touchIDs   []ebiten.TouchID
	touchMap   [maxPointers]ebiten.TouchID
	touchUsed  [maxPointers]bool
	gamepadIDs []ebiten.GamepadID
}

// NewEbitenInput returns an input source reading ebiten's global input state.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Poll implements InputSource.
func (in *EbitenInput) Poll(s *InputState) {
	s.Modifiers = readModifiers()

	mx, my := ebiten.CursorPosition()
	p := &s.Pointers[0]
	p.Active = true
	p.X, p.Y = float64(mx), float64(my)
	p.Down[MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.Down[MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	p.Down[MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	in.pollTouches(s)

	s.Tab = ebiten.IsKeyPressed(ebiten.KeyTab)
	s.Confirm = ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeyNumpadEnter)
	s.Back = ebiten.IsKeyPressed(ebiten.KeyEscape)
	s.Nav = keyboardNav()

	in.gamepadIDs = ebiten.AppendGamepadIDs(in.gamepadIDs[:0])
	for i, id := range in.gamepadIDs {
		if i >= maxPolledGamepads {
			break
		}
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		s.Confirm = s.Confirm || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		s.Back = s.Back || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
		if s.Nav == (Vec2{}) {
			s.Nav = gamepadNav(id)
		}
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

func keyboardNav() Vec2 {
	var v Vec2
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.Y++
	}
	return v
}

// gamepadNav reads the d-pad, falling back to the left stick snapped to
// -1, 0 or 1 per axis.
func gamepadNav(id ebiten.GamepadID) Vec2 {
	var v Vec2
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
		v.X--
	}
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
		v.X++
	}
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) {
		v.Y--
	}
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
		v.Y++
	}
	if v != (Vec2{}) {
		return v
	}
	return Vec2{
		X: snapAxis(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)),
		Y: snapAxis(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)),
	}
}

func snapAxis(v float64) float64 {
	if math.Abs(v) < navStickDeadZone {
		return 0
	}
	return math.Copysign(1, v)
}

// pollTouches fills pointer slots 1-9. A lifted touch stays active for one
// more frame with its button up so the release reaches the node under it.
func (in *EbitenInput) pollTouches(s *InputState) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])

	var seen [maxPointers]bool
	for _, tid := range in.touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		seen[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		p := &s.Pointers[slot]
		p.Active = true
		p.X, p.Y = float64(tx), float64(ty)
		p.Down[MouseButtonLeft] = true
	}

	for i := 1; i < maxPointers; i++ {
		if seen[i] {
			continue
		}
		p := &s.Pointers[i]
		if p.Down[MouseButtonLeft] {
			p.Down[MouseButtonLeft] = false
		} else {
			p.Active = false
		}
		in.touchUsed[i] = false
		in.touchMap[i] = 0
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *EbitenInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}
