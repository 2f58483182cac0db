package canopy

import "testing"

func TestMakeVisibleBounds(t *testing.T) {
	parentPos := Vec2{10, 20}
	parentSize := Vec2{200, 100}
	tests := []struct {
		name  string
		scale float64
		pos   Dim
		size  Dim
		flags Flags
		want  Rect
	}{
		{"top-left pixels", 1, Pixels(5, 6), Pixels(50, 40), DefaultFlags(), Rect{15, 26, 65, 66}},
		{"center on center", 1, Dim{}, Pixels(50, 40),
			Flags{ParentAnchor: AnchorCenter, LocalAnchor: AnchorCenter}, Rect{85, 50, 135, 90}},
		{"bottom-right on bottom-right", 1, Dim{}, Pixels(50, 40),
			Flags{ParentAnchor: AnchorBottomRight, LocalAnchor: AnchorBottomRight}, Rect{160, 80, 210, 120}},
		{"top-left of node on parent center", 1, Dim{}, Pixels(50, 40),
			Flags{ParentAnchor: AnchorCenter, LocalAnchor: AnchorTopLeft}, Rect{110, 70, 160, 110}},
		{"percent size", 1, Dim{}, Percent(0.5, 0.25), DefaultFlags(), Rect{10, 20, 110, 45}},
		{"percent position", 1, Percent(0.1, 0.2), Pixels(10, 10), DefaultFlags(), Rect{30, 40, 40, 50}},
		{"mixed size", 1, Dim{}, Dim{PX: 0.5, OX: 10, PY: 0, OY: 30}, DefaultFlags(), Rect{10, 20, 120, 50}},
		{"scaled", 2, Pixels(5, 5), Pixels(50, 40), DefaultFlags(), Rect{20, 30, 120, 110}},
		{"size scale exempt", 2, Pixels(5, 5), Pixels(50, 40),
			Flags{SizeScaleExempt: true}, Rect{20, 30, 70, 70}},
		{"position scale exempt", 2, Pixels(5, 5), Pixels(50, 40),
			Flags{PositionScaleExempt: true}, Rect{15, 25, 115, 105}},
		{"percent ignores scale", 2, Dim{}, Percent(1, 1), DefaultFlags(), Rect{10, 20, 210, 120}},
		{"out of range anchors fall back to top-left", 1, Pixels(5, 6), Pixels(50, 40),
			Flags{ParentAnchor: 12, LocalAnchor: 200}, Rect{15, 26, 65, 66}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeVisibleBounds(parentPos, parentSize, tt.scale, tt.pos, tt.size, tt.flags)
			if got != tt.want {
				t.Errorf("MakeVisibleBounds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMakeVisibleBoundsDeterministic(t *testing.T) {
	dims := []struct{ pos, size Dim }{
		{Dim{}, Dim{}},
		{Pixels(3, 7), Pixels(40, 20)},
		{Percent(0.25, 0.75), Percent(0.5, 0.1)},
		{Dim{PX: 0.1, PY: 0.2, OX: -4, OY: 9}, Dim{PX: 0.3, PY: 0.4, OX: 12, OY: -2}},
	}
	parentPos, parentSize := Vec2{-5, 12}, Vec2{640, 480}
	for pa := Anchor(0); pa < numAnchors; pa++ {
		for la := Anchor(0); la < numAnchors; la++ {
			f := Flags{ParentAnchor: pa, LocalAnchor: la}
			for _, d := range dims {
				a := MakeVisibleBounds(parentPos, parentSize, 1.5, d.pos, d.size, f)
				b := MakeVisibleBounds(parentPos, parentSize, 1.5, d.pos, d.size, f)
				if a != b {
					t.Fatalf("anchors %v/%v: %v != %v", pa, la, a, b)
				}
				wantW := parentSize.X*d.size.PX + d.size.OX*1.5
				if !approx(a.Width(), wantW) {
					t.Errorf("anchors %v/%v: width = %v, want %v", pa, la, a.Width(), wantW)
				}
			}
		}
	}
}

func TestMakeNewBoundsZeroIsIdentity(t *testing.T) {
	rects := []Rect{
		{},
		{0, 0, 10, 10},
		{-5, -5, 5, 5},
		{100, 200, 150, 260},
	}
	for _, r := range rects {
		if got := MakeNewBounds(r, Rect{}); got != r {
			t.Errorf("MakeNewBounds(%v, zero) = %v, want %v", r, got, r)
		}
		if got := MakeNewBounds(Rect{}, r); got != r {
			t.Errorf("MakeNewBounds(zero, %v) = %v, want %v", r, got, r)
		}
	}
}

func TestMakeNewBoundsUnion(t *testing.T) {
	got := MakeNewBounds(Rect{0, 0, 100, 50}, Rect{20, -10, 50, 200})
	want := Rect{0, -10, 100, 200}
	if got != want {
		t.Errorf("MakeNewBounds = %v, want %v", got, want)
	}
}

func TestMakeNewBoundsOrderIndependent(t *testing.T) {
	rects := []Rect{
		{10, 10, 20, 20},
		{},
		{-30, 5, -10, 8},
		{15, -40, 16, 100},
	}
	var want Rect
	for _, r := range rects {
		want = MakeNewBounds(want, r)
	}

	var permute func(k int)
	permute = func(k int) {
		if k == len(rects) {
			var got Rect
			for _, r := range rects {
				got = MakeNewBounds(got, r)
			}
			if got != want {
				t.Errorf("fold %v = %v, want %v", rects, got, want)
			}
			return
		}
		for i := k; i < len(rects); i++ {
			rects[k], rects[i] = rects[i], rects[k]
			permute(k + 1)
			rects[k], rects[i] = rects[i], rects[k]
		}
	}
	permute(0)
}
