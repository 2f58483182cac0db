package canopy

import "github.com/hajimehoshi/ebiten/v2"

// Glyph locates one character inside a font texture. Src is in texture
// pixels; Offset is the top-left of the glyph quad relative to the pen
// position at the top of the line; Advance moves the pen to the next glyph.
type Glyph struct {
	Src     Rect
	Offset  Vec2
	Advance float64
}

// GlyphSource is the font service the batch writer draws text from. All
// glyphs of a source live on one texture.
type GlyphSource interface {
	Texture() *ebiten.Image
	Glyph(r rune) (Glyph, bool)
	LineHeight() float64
}

// MeasureText returns the unscaled size of text laid out by font. Lines are
// separated by '\n'; runes without a glyph advance nothing and break
// kerning pairs.
func MeasureText(font GlyphSource, text string) Vec2 {
	if font == nil || text == "" {
		return Vec2{}
	}
	kern, _ := font.(Kerner)
	var width, line float64
	var prev rune
	hasPrev := false
	lines := 1
	for _, r := range text {
		if r == '\n' {
			width = max(width, line)
			line = 0
			lines++
			hasPrev = false
			continue
		}
		g, ok := font.Glyph(r)
		if !ok {
			hasPrev = false
			continue
		}
		if kern != nil && hasPrev {
			line += kern.Kerning(prev, r)
		}
		line += g.Advance
		prev, hasPrev = r, true
	}
	width = max(width, line)
	return Vec2{width, float64(lines) * font.LineHeight()}
}
