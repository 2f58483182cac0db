package canopy

import (
	"hash/fnv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// UpdateContext carries per-frame state through the update traversal.
type UpdateContext struct {
	Manager *Manager
	Scale   float64
	Time    float64
	Input   *InputState
	Over    *OverCounter
	// Nav is nil unless directional navigation moved this frame.
	Nav *NavController

	pressed *Node // topmost focusable node pressed this frame
	tooltip *Node // topmost node with a tooltip under pointer 0
	visited int
}

// DrawContext carries per-frame state through the draw traversal.
type DrawContext struct {
	Manager *Manager
	Writer  *BatchWriter
	Scale   float64
	Time    float64
	// Clip is the active clip rectangle, zero when unclipped.
	Clip Rect
}

// Manager owns the node arena and the root list, the named-node index, the
// material table, the scale breakpoint tables, focus, navigation and the
// tooltip, and drives the per-frame Update and Draw passes.
type Manager struct {
	cfg   Config
	debug bool

	// Arena
	nodes     []*Node
	gens      []uint32
	free      []int
	live      int
	firstRoot NodeID
	lastRoot  NodeID

	named     map[uint64]NodeID
	materials map[uint64]*Material

	// Scale
	screenScales []ScaleBreakpoint
	dpiScales    []ScaleBreakpoint
	dpi          float64
	dpiScale     float64
	dpiCached    bool
	screen       Vec2
	scale        float64

	now float64

	// Focus
	focused     *Node
	prevFocused *Node
	nav         NavController
	tooltip     Tooltip
	font        GlyphSource

	// Input
	input       InputSource
	raw         InputState
	prevRaw     InputState
	frame       InputState
	over        OverCounter
	injectQueue []syntheticEvent
	runner      *TestRunner

	screenshotQueue []string

	sink EventSink

	// Render buffers
	vertices *VertexBuffer
	writer   *BatchWriter
}

// NewManager creates a manager configured by cfg. Zero capacities in cfg
// fall back to DefaultConfig values.
func NewManager(cfg Config) *Manager {
	cfg = cfg.withDefaults()
	m := &Manager{
		cfg:       cfg,
		named:     make(map[uint64]NodeID),
		materials: make(map[uint64]*Material),
		dpi:       cfg.DPI,
		screen:    Vec2{float64(cfg.ScreenWidth), float64(cfg.ScreenHeight)},
	}
	for _, bp := range cfg.ScreenScales {
		m.PushScreenScale(bp.Key, bp.Scale)
	}
	for _, bp := range cfg.DPIScales {
		m.PushDPIScale(bp.Key, bp.Scale)
	}
	m.vertices = NewVertexBuffer(cfg.MaxVertices)
	m.writer = NewBatchWriter(m.vertices, cfg.MaxBatches)
	m.tooltip = newTooltip(cfg.TooltipDelay, cfg.TooltipFade)
	m.SetDebugMode(cfg.Debug)
	return m
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() Config { return m.cfg }

// SetScreenSize sets the size of the screen rectangle the roots lay out in.
func (m *Manager) SetScreenSize(w, h float64) {
	m.screen = Vec2{w, h}
}

// ScreenSize returns the current screen size.
func (m *Manager) ScreenSize() Vec2 { return m.screen }

// Scale returns the global scale used by the last update.
func (m *Manager) Scale() float64 { return m.scale }

// Time returns the manager clock in seconds.
func (m *Manager) Time() float64 { return m.now }

// SetInput sets the window/input service polled once per update.
func (m *Manager) SetInput(src InputSource) { m.input = src }

// SetEventSink sets the optional receiver of every dispatched node event.
func (m *Manager) SetEventSink(sink EventSink) { m.sink = sink }

// SetFont sets the glyph source used by the tooltip.
func (m *Manager) SetFont(font GlyphSource) { m.font = font }

// Font returns the glyph source set with SetFont.
func (m *Manager) Font() GlyphSource { return m.font }

// Tooltip returns the manager's tooltip state.
func (m *Manager) Tooltip() *Tooltip { return &m.tooltip }

// Writer returns the manager's own batch writer used by Draw.
func (m *Manager) Writer() *BatchWriter { return m.writer }

// Update advances the manager clock by one tick (1/TPS seconds) and runs
// the update pass.
func (m *Manager) Update() {
	m.Step(1 / float64(ebiten.TPS()))
}

// Step advances the manager clock by dt seconds and runs the update pass:
// poll input, resolve the global scale, update every root, publish the
// over counts, then apply press, tab and navigation focus changes.
func (m *Manager) Step(dt float64) {
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	m.now += dt
	if m.runner != nil {
		m.runner.step(m)
	}
	m.pollInput()
	m.scale = m.FindScaleForSize(m.screen.X, m.screen.Y)

	m.over.begin()
	center := m.screen.Scale(0.5)
	if m.focused != nil && !m.focused.rect.IsZero() {
		center = m.focused.rect.Center()
	}
	m.nav.begin(center, m.frame.NavPressed, m.frame.ConfirmPressed, m.frame.BackPressed)

	ctx := UpdateContext{
		Manager: m,
		Scale:   m.scale,
		Time:    m.now,
		Input:   &m.frame,
		Over:    &m.over,
	}
	if m.nav.Enabled() {
		ctx.Nav = &m.nav
	}
	for r := m.FirstRoot(); r != nil; {
		next := r.NextSibling()
		r.Update(&ctx, Vec2{}, m.screen, true)
		r = siblingAfter(r, next, 0)
	}
	m.over.end()

	m.applyFocusInput(&ctx)
	m.tooltip.update(m, ctx.tooltip, dt)

	if m.debug {
		m.debugLogUpdate(updateStats{
			elapsed: time.Since(t0),
			visited: ctx.visited,
			scale:   m.scale,
		})
	}
}

func (m *Manager) applyFocusInput(ctx *UpdateContext) {
	if p := ctx.pressed; p != nil && p != m.focused && p.isAttached() {
		m.SetFocused(p)
	}
	if m.frame.TabPressed {
		switch m.frame.Modifiers {
		case 0:
			m.FocusNextTabbable()
		case ModShift:
			m.FocusPrevTabbable()
		}
	}
	if ctx.Nav != nil {
		if c := m.nav.Candidate(); c != nil && c != m.focused {
			m.SetFocused(c)
		}
	}
	if m.nav.Confirm() && m.focused != nil && m.focused.isShown() {
		m.focused.DispatchEvent(EventPressedLeft)
	}
	if m.nav.Back() && m.prevFocused != nil {
		m.SetFocused(m.prevFocused)
	}
}

// Draw emits the whole tree into the manager's batch writer and submits the
// batches to screen.
func (m *Manager) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	m.writer.Reset()
	m.Render(m.writer)
	m.writer.Flush(screen)
	m.flushScreenshots(screen)

	if m.debug {
		m.debugLogDraw(drawStats{
			elapsed:  time.Since(t0),
			vertices: m.vertices.Len(),
			batches:  len(m.writer.Batches()),
		})
	}
}

// Render runs the draw pass into w without submitting anything. Roots draw
// in list order, the tooltip last.
func (m *Manager) Render(w *BatchWriter) {
	scale := m.scale
	if scale == 0 {
		scale = m.FindScaleForSize(m.screen.X, m.screen.Y)
	}
	ctx := DrawContext{Manager: m, Writer: w, Scale: scale, Time: m.now}
	for r := m.FirstRoot(); r != nil; r = r.NextSibling() {
		r.Draw(&ctx, Vec2{}, m.screen)
	}
	m.tooltip.draw(&ctx)
}

// Close destroys every node.
func (m *Manager) Close() {
	m.DestroyAll()
}

// --- Named nodes ---

// hashName is the content hash keying the named-node and material indexes.
func hashName(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// InsertNamed indexes n under its declared Name. Returns false for unnamed
// nodes, foreign nodes, and names whose hash another node holds.
// Re-inserting an indexed node succeeds.
func (m *Manager) InsertNamed(n *Node) bool {
	if n == nil || n.mgr != m || n.Name == "" {
		return false
	}
	h := hashName(n.Name)
	if existing := m.Node(m.named[h]); existing != nil {
		if existing == n {
			return true
		}
		logger.WithFields(logrus.Fields{
			"name": n.Name, "existing": existing.Name,
		}).Warn("canopy: named node collision")
		return false
	}
	m.named[h] = n.id
	return true
}

// RemoveNamed drops name from the index.
func (m *Manager) RemoveNamed(name string) bool {
	h := hashName(name)
	if _, ok := m.named[h]; !ok {
		return false
	}
	delete(m.named, h)
	return true
}

// GetNamedUI returns the node indexed under name, or nil.
func (m *Manager) GetNamedUI(name string) *Node {
	n := m.Node(m.named[hashName(name)])
	if n == nil || n.Name != name {
		return nil
	}
	return n
}

// HasNamedUI reports whether a node is indexed under name.
func (m *Manager) HasNamedUI(name string) bool {
	return m.GetNamedUI(name) != nil
}

// RegisterEventByName registers fn on the node indexed under name.
func (m *Manager) RegisterEventByName(name string, code EventCode, fn EventFunc, userData any) bool {
	n := m.GetNamedUI(name)
	if n == nil {
		return false
	}
	return n.RegisterEvent(code, fn, userData)
}

// UnregisterEventByName removes code from the node indexed under name.
func (m *Manager) UnregisterEventByName(name string, code EventCode) bool {
	n := m.GetNamedUI(name)
	if n == nil {
		return false
	}
	return n.UnregisterEvent(code)
}

// DispatchEventByName dispatches code on the node indexed under name.
// Returns false when no such node exists.
func (m *Manager) DispatchEventByName(name string, code EventCode) bool {
	n := m.GetNamedUI(name)
	if n == nil {
		return false
	}
	n.DispatchEvent(code)
	return true
}

// GetOverCount returns how many nodes were under the given pointer during
// the last update.
func (m *Manager) GetOverCount(pointer int) int {
	return m.over.Count(pointer)
}
