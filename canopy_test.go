package canopy

import (
	"image/color"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func approxVec(a, b Vec2) bool { return approx(a.X, b.X) && approx(a.Y, b.Y) }

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 110, 70}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
		ok   bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 20, 20}, Rect{5, 5, 10, 10}, true},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 20, 20}, Rect{10, 10, 20, 20}, true},
		{"edge only", Rect{0, 0, 10, 10}, Rect{10, 0, 20, 10}, Rect{}, false},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{50, 50, 60, 60}, Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Intersect = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRectAccessors(t *testing.T) {
	r := RectFromPosSize(Vec2{10, 20}, Vec2{30, 40})
	if r != (Rect{10, 20, 40, 60}) {
		t.Fatalf("RectFromPosSize = %v", r)
	}
	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("size = %v x %v, want 30 x 40", r.Width(), r.Height())
	}
	if r.Center() != (Vec2{25, 40}) {
		t.Errorf("Center = %v, want {25 40}", r.Center())
	}
	if r.IsZero() || !(Rect{}).IsZero() {
		t.Error("IsZero mismatch")
	}
}

// --- Color ---

func TestColorPremultiplied(t *testing.T) {
	r, g, b, a := Color{1, 0.5, 0, 0.5}.premultiplied()
	if r != 0.5 || g != 0.25 || b != 0 || a != 0.5 {
		t.Errorf("premultiplied = %v %v %v %v, want 0.5 0.25 0 0.5", r, g, b, a)
	}
}

func TestColorFromRGBA(t *testing.T) {
	c := ColorFromRGBA(color.RGBA{255, 0, 51, 255})
	if c.R != 1 || c.G != 0 || !approx(c.B, 0.2) || c.A != 1 {
		t.Errorf("ColorFromRGBA = %+v", c)
	}
}

func TestWhitePixel(t *testing.T) {
	if WhitePixel == nil {
		t.Fatal("WhitePixel is nil")
	}
	if b := WhitePixel.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("WhitePixel bounds = %v, want 1x1", b)
	}
}

// --- Dim ---

func TestDimHelpers(t *testing.T) {
	if d := Pixels(3, 4); d != (Dim{OX: 3, OY: 4}) {
		t.Errorf("Pixels = %+v", d)
	}
	if d := Percent(0.5, 1); d != (Dim{PX: 0.5, PY: 1}) {
		t.Errorf("Percent = %+v", d)
	}
}
