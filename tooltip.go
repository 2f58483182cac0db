package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TooltipMaterial is the material name the tooltip background is drawn
// with. When no such material is interned a dark translucent fill is used.
const TooltipMaterial = "tooltip"

const (
	tooltipPadding = 4.0
	tooltipOffsetX = 12.0
	tooltipOffsetY = 16.0
)

var defaultTooltipMaterial = SolidMaterial(Color{0.1, 0.1, 0.12, 0.9})

// Tooltip shows the tooltip text of the node hovered by the mouse once it
// has been hovered for the configured delay, fading in over the fade time.
type Tooltip struct {
	delay float64
	fade  float64

	target  *Node
	visible bool
	alpha   float64
	tween   *gween.Tween
	pos     Vec2
}

func newTooltip(delay, fade float64) Tooltip {
	return Tooltip{delay: delay, fade: fade}
}

// Target returns the node whose tooltip is pending or shown.
func (t *Tooltip) Target() *Node { return t.target }

// Visible reports whether the tooltip is shown.
func (t *Tooltip) Visible() bool { return t.visible }

// Alpha returns the current fade-in opacity.
func (t *Tooltip) Alpha() float64 { return t.alpha }

func (t *Tooltip) hide() {
	t.target = nil
	t.visible = false
	t.alpha = 0
	t.tween = nil
}

// update retargets the tooltip to candidate, the topmost node with tooltip
// text under the mouse this frame, and advances the fade.
func (t *Tooltip) update(m *Manager, candidate *Node, dt float64) {
	if candidate != t.target {
		t.hide()
		t.target = candidate
	}
	if t.target == nil {
		return
	}
	p := m.frame.Pointers[0]
	t.pos = Vec2{p.X, p.Y}

	if !t.visible && t.target.HoverDuration(m.now) >= t.delay {
		t.visible = true
		if t.fade > 0 {
			t.tween = gween.New(0, 1, float32(t.fade), ease.OutQuad)
		} else {
			t.alpha = 1
		}
	}
	if t.tween != nil {
		v, done := t.tween.Update(float32(dt))
		t.alpha = float64(v)
		if done {
			t.alpha = 1
			t.tween = nil
		}
	}
}

// draw emits the tooltip box and text last, above every node.
func (t *Tooltip) draw(ctx *DrawContext) {
	m := ctx.Manager
	if !t.visible || t.target == nil || m.font == nil || t.alpha <= 0 {
		return
	}
	text := t.target.tooltip
	s := ctx.Scale
	size := MeasureText(m.font, text).Scale(s)
	pad := tooltipPadding * s

	box := RectFromPosSize(
		t.pos.Add(Vec2{tooltipOffsetX * s, tooltipOffsetY * s}),
		size.Add(Vec2{2 * pad, 2 * pad}),
	)
	// Keep the box on screen.
	if dx := box.MaxX - m.screen.X; dx > 0 {
		box.MinX, box.MaxX = box.MinX-dx, box.MaxX-dx
	}
	if dy := box.MaxY - m.screen.Y; dy > 0 {
		box.MinY, box.MaxY = box.MinY-dy, box.MaxY-dy
	}

	mat := defaultTooltipMaterial
	if custom := m.GetMaterial(TooltipMaterial); custom != nil {
		mat = *custom
	}
	mat.Color1.A *= t.alpha
	mat.Color2.A *= t.alpha
	if !ctx.Writer.WriteRect(box, &mat) {
		return
	}
	c := ColorWhite
	c.A = t.alpha
	ctx.Writer.WriteText(m.font, text, Vec2{box.MinX + pad, box.MinY + pad}, s, c)
}
