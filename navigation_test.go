package canopy

import "testing"

func TestNavControllerPicksClosestToAxis(t *testing.T) {
	var c NavController
	c.begin(Vec2{0, 0}, Vec2{2, 0}, false, false)

	if !c.Enabled() || c.Direction() != (Vec2{1, 0}) {
		t.Fatalf("Enabled = %v, Direction = %v", c.Enabled(), c.Direction())
	}

	around := func(x, y float64) Rect { return Rect{x - 5, y - 5, x + 5, y + 5} }
	cands := []struct {
		name string
		r    Rect
	}{
		{"behind", around(-100, 0)},
		{"self", around(0, 0)},
		{"diagonal", around(50, 30)},
		{"far on axis", around(200, 0)},
		{"near on axis", around(100, 0)},
		{"slightly off", around(20, 1)},
	}
	for _, cand := range cands {
		c.Consider(&Node{Name: cand.name}, cand.r)
	}
	if got := c.Candidate(); got == nil || got.Name != "near on axis" {
		t.Errorf("Candidate() = %v, want near on axis", got)
	}
}

func TestNavControllerVertical(t *testing.T) {
	var c NavController
	c.begin(Vec2{100, 100}, Vec2{0, -1}, false, false)
	c.Consider(&Node{Name: "below"}, Rect{90, 190, 110, 210})
	c.Consider(&Node{Name: "above"}, Rect{90, 0, 110, 20})
	if got := c.Candidate(); got == nil || got.Name != "above" {
		t.Errorf("Candidate() = %v, want above", got)
	}
}

func TestNavControllerDisabled(t *testing.T) {
	var c NavController
	c.begin(Vec2{}, Vec2{}, true, true)
	c.Consider(&Node{Name: "n"}, Rect{10, -5, 20, 5})
	if c.Enabled() || c.Candidate() != nil {
		t.Error("controller without a direction picked a candidate")
	}
	if !c.Confirm() || !c.Back() {
		t.Error("confirm/back edges lost")
	}
}

func TestNavControllerResetsPerFrame(t *testing.T) {
	var c NavController
	c.begin(Vec2{}, Vec2{1, 0}, false, false)
	c.Consider(&Node{Name: "n"}, Rect{10, -5, 20, 5})
	c.begin(Vec2{}, Vec2{1, 0}, false, false)
	if c.Candidate() != nil {
		t.Error("candidate survived begin")
	}
}
