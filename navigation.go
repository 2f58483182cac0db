package canopy

import "math"

// navMinAlong is how far (pixels) along the intended direction a node's
// center must lie from the tracked center to be a candidate. It excludes the
// node at the center itself.
const navMinAlong = 1.0

// NavController picks the next focus candidate for directional input. Each
// frame the direction is pressed, every focusable visible node is offered
// through Consider; the controller keeps the node ahead of the tracked
// center with the smallest perpendicular deviation from the direction.
type NavController struct {
	Center Vec2

	dir     Vec2
	enabled bool
	confirm bool
	back    bool

	best      *Node
	bestPerp  float64
	bestAlong float64
}

// begin starts a frame with the given center and input edges.
func (c *NavController) begin(center, dir Vec2, confirm, back bool) {
	c.Center = center
	c.confirm = confirm
	c.back = back
	c.best = nil
	c.dir = Vec2{}
	c.enabled = false
	if l := math.Hypot(dir.X, dir.Y); l > 0 {
		c.dir = dir.Scale(1 / l)
		c.enabled = true
	}
}

// Enabled reports whether a direction was pressed this frame.
func (c *NavController) Enabled() bool { return c.enabled }

// Direction returns the normalized intended direction.
func (c *NavController) Direction() Vec2 { return c.dir }

// Confirm reports whether the confirm input was pressed this frame.
func (c *NavController) Confirm() bool { return c.confirm }

// Back reports whether the back input was pressed this frame.
func (c *NavController) Back() bool { return c.back }

// Consider offers n, laid out at r, as a focus candidate.
func (c *NavController) Consider(n *Node, r Rect) {
	if !c.enabled {
		return
	}
	off := r.Center().Sub(c.Center)
	along := off.X*c.dir.X + off.Y*c.dir.Y
	if along < navMinAlong {
		return
	}
	perp := math.Abs(off.X*c.dir.Y - off.Y*c.dir.X)
	if c.best == nil || perp < c.bestPerp || (perp == c.bestPerp && along < c.bestAlong) {
		c.best = n
		c.bestPerp = perp
		c.bestAlong = along
	}
}

// Candidate returns the best node offered this frame, or nil.
func (c *NavController) Candidate() *Node { return c.best }
