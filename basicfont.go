package canopy

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/basicfont"
)

// BasicFont is a GlyphSource over a fixed-width basicfont face. The face's
// glyph mask becomes the font texture; each glyph is one cell of it.
type BasicFont struct {
	face    *basicfont.Face
	texture *ebiten.Image
}

// NewBasicFont uploads face's glyph mask. A nil face uses basicfont.Face7x13.
func NewBasicFont(face *basicfont.Face) *BasicFont {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &BasicFont{face: face, texture: ebiten.NewImageFromImage(face.Mask)}
}

// Texture implements GlyphSource.
func (f *BasicFont) Texture() *ebiten.Image { return f.texture }

// LineHeight implements GlyphSource.
func (f *BasicFont) LineHeight() float64 { return float64(f.face.Height) }

// Glyph implements GlyphSource. Runes outside the face's ranges have no
// glyph; the space character has an advance and an empty source.
func (f *BasicFont) Glyph(r rune) (Glyph, bool) {
	if r == ' ' {
		return Glyph{Advance: float64(f.face.Advance)}, true
	}
	for _, rr := range f.face.Ranges {
		if r < rr.Low || r >= rr.High {
			continue
		}
		y := (int(r-rr.Low) + rr.Offset) * f.face.Height
		b := f.face.Mask.Bounds()
		cell := image.Rect(b.Min.X, b.Min.Y+y, b.Min.X+f.face.Width, b.Min.Y+y+f.face.Height)
		return Glyph{
			Src: Rect{
				MinX: float64(cell.Min.X), MinY: float64(cell.Min.Y),
				MaxX: float64(cell.Max.X), MaxY: float64(cell.Max.Y),
			},
			Offset:  Vec2{float64(f.face.Left), 0},
			Advance: float64(f.face.Advance),
		}, true
	}
	return Glyph{}, false
}
