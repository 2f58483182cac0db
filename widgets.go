package canopy

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// passwordRune replaces every rune of a label flagged KindPassword.
const passwordRune = "*"

// resolveMaterial returns the interned material name, falling back to fill.
// A name that is not interned yields nil so nothing is drawn.
func resolveMaterial(m *Manager, name string, fill *Material) *Material {
	if name != "" {
		return m.GetMaterial(name)
	}
	if fill != nil {
		return fill
	}
	white := SolidMaterial(ColorWhite)
	return &white
}

// writeRect writes r through the active clip rectangle.
func writeRect(ctx *DrawContext, r Rect, mat *Material) bool {
	if ctx.Clip.IsZero() {
		return ctx.Writer.WriteRect(r, mat)
	}
	return ctx.Writer.WriteClippedRect(r, ctx.Clip, mat)
}

// --- Panel ---

// Panel fills its rectangle with a material. Rotated panels ignore the
// active clip rectangle.
type Panel struct {
	Material      string    // interned material name
	HoverMaterial string    // interned material used while hovered, optional
	Fill          *Material // used when Material is empty
	Rotation      float64   // radians about the center
	ClipChildren  bool
}

func (p *Panel) UpdateSelf(_ *UpdateContext, _ *Node, r Rect) Rect { return r }

func (p *Panel) DrawSelf(ctx *DrawContext, n *Node, r Rect) {
	name := p.Material
	if p.HoverMaterial != "" && n.IsHovered() {
		name = p.HoverMaterial
	}
	mat := resolveMaterial(ctx.Manager, name, p.Fill)
	if mat == nil {
		return
	}
	if p.Rotation != 0 {
		ctx.Writer.WriteRotatedRect(r, p.Rotation, mat)
		return
	}
	writeRect(ctx, r, mat)
}

// ClipsChildren implements ChildClipper.
func (p *Panel) ClipsChildren() bool { return p.ClipChildren }

// --- Image ---

// Image draws a texture, or the normalized Sub region of it, stretched over
// the node's rectangle.
type Image struct {
	Texture *ebiten.Image
	Sub     Rect
	Tint    Color // zero means untinted
}

func (img *Image) UpdateSelf(_ *UpdateContext, _ *Node, r Rect) Rect { return r }

func (img *Image) DrawSelf(ctx *DrawContext, _ *Node, r Rect) {
	tint := img.Tint
	if tint == (Color{}) {
		tint = ColorWhite
	}
	mat := Material{Fill: FillSolid, Color1: tint, Color2: tint, Texture: img.Texture, Sub: img.Sub}
	writeRect(ctx, r, &mat)
}

// ContentSize implements ContentSizer with the texture region's pixel size.
func (img *Image) ContentSize(*Node) Vec2 {
	if img.Texture == nil {
		return Vec2{}
	}
	_, src := (&Material{Texture: img.Texture, Sub: img.Sub}).sourceRect()
	return src.Size()
}

// --- Label ---

// Label draws a single- or multi-line string with the manager's font unless
// Font is set. Flags.Kind selects alignment (KindAlignCenter,
// KindAlignRight) and masking (KindPassword). Text is vertically centered
// and clipped to the node's rectangle.
type Label struct {
	Text  string
	Font  GlyphSource
	Color Color // zero means white
}

func (l *Label) font(n *Node) GlyphSource {
	if l.Font != nil {
		return l.Font
	}
	return n.mgr.font
}

func (l *Label) display(n *Node) string {
	if n.flags.Has(KindPassword) {
		return strings.Repeat(passwordRune, utf8.RuneCountInString(l.Text))
	}
	return l.Text
}

// SetText changes the text and dispatches EventValueChanged on n when it
// differs.
func (l *Label) SetText(n *Node, text string) {
	if text == l.Text {
		return
	}
	l.Text = text
	n.DispatchEvent(EventValueChanged)
}

// ContentSize implements ContentSizer with the measured text size.
func (l *Label) ContentSize(n *Node) Vec2 {
	return MeasureText(l.font(n), l.display(n))
}

func (l *Label) UpdateSelf(_ *UpdateContext, _ *Node, r Rect) Rect { return r }

func (l *Label) DrawSelf(ctx *DrawContext, n *Node, r Rect) {
	font := l.font(n)
	if font == nil || l.Text == "" {
		return
	}
	text := l.display(n)
	size := MeasureText(font, text).Scale(ctx.Scale)

	pos := Vec2{r.MinX, r.MinY + (r.Height()-size.Y)/2}
	switch {
	case n.flags.Has(KindAlignCenter):
		pos.X += (r.Width() - size.X) / 2
	case n.flags.Has(KindAlignRight):
		pos.X = r.MaxX - size.X
	}

	c := l.Color
	if c == (Color{}) {
		c = ColorWhite
	}
	clip := r
	if !ctx.Clip.IsZero() {
		var visible bool
		if clip, visible = ctx.Clip.Intersect(r); !visible {
			return
		}
	}
	ctx.Writer.WriteClippedText(font, text, pos, ctx.Scale, c, clip)
}

// --- Line ---

// Line draws a separator through the middle of the node's rectangle,
// horizontal unless the node is flagged KindVertical. Width is in unscaled
// pixels.
type Line struct {
	Material string
	Fill     *Material
	Width    float64
}

func (ln *Line) UpdateSelf(_ *UpdateContext, _ *Node, r Rect) Rect { return r }

func (ln *Line) DrawSelf(ctx *DrawContext, n *Node, r Rect) {
	mat := resolveMaterial(ctx.Manager, ln.Material, ln.Fill)
	if mat == nil {
		return
	}
	width := ln.Width
	if width <= 0 {
		width = 1
	}
	width *= ctx.Scale

	c := r.Center()
	a, b := Vec2{r.MinX, c.Y}, Vec2{r.MaxX, c.Y}
	if n.flags.Has(KindVertical) {
		a, b = Vec2{c.X, r.MinY}, Vec2{c.X, r.MaxY}
	}
	if ctx.Clip.IsZero() {
		ctx.Writer.WriteLine(a, b, width, mat)
		return
	}
	ctx.Writer.WriteClippedLine(a, b, width, ctx.Clip, mat)
}
