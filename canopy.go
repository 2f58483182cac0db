package canopy

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when vertices are written.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorFromRGBA converts an 8-bit color into a Color.
func ColorFromRGBA(c color.RGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// lerp interpolates every component of c toward o by t.
func (c Color) lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// premultiplied returns the color as premultiplied float32 components.
func (c Color) premultiplied() (r, g, b, a float32) {
	a = float32(c.A)
	return float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, sizes, and directions.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dim is a position or size expressed as a fraction of the parent size
// (PX, PY) plus a pixel offset (OX, OY) that the global UI scale multiplies.
type Dim struct {
	PX, PY float64
	OX, OY float64
}

// Pixels returns a Dim made only of pixel offsets.
func Pixels(x, y float64) Dim { return Dim{OX: x, OY: y} }

// Percent returns a Dim made only of parent fractions.
func Percent(x, y float64) Dim { return Dim{PX: x, PY: y} }

// Rect is an axis-aligned rectangle in absolute screen space. The coordinate
// system has its origin at the top-left, with Y increasing downward. The zero
// Rect means "not laid out" and contributes nothing to aggregated bounds.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// RectFromPosSize builds a Rect from a top-left corner and a size.
func RectFromPosSize(pos, size Vec2) Rect {
	return Rect{pos.X, pos.Y, pos.X + size.X, pos.Y + size.Y}
}

// IsZero reports whether r is the all-zero sentinel.
func (r Rect) IsZero() bool { return r == Rect{} }

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Pos returns the top-left corner.
func (r Rect) Pos() Vec2 { return Vec2{r.MinX, r.MinY} }

// Size returns the width and height.
func (r Rect) Size() Vec2 { return Vec2{r.Width(), r.Height()} }

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return Vec2{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Intersect returns the overlap of r and o and whether it has positive area.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		MinX: max(r.MinX, o.MinX),
		MinY: max(r.MinY, o.MinY),
		MaxX: min(r.MaxX, o.MaxX),
		MaxY: min(r.MaxY, o.MaxY),
	}
	if out.MaxX <= out.MinX || out.MaxY <= out.MinY {
		return Rect{}, false
	}
	return out, true
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	numMouseButtons = 3
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// WhitePixel is a 1x1 white image used as the texture of solid fills.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}
