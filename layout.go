package canopy

// parentAnchorPoints locates each anchor inside the parent rectangle in unit
// space, Y down.
var parentAnchorPoints = [numAnchors]Vec2{
	{0, 0}, {0.5, 0}, {1, 0},
	{0, 0.5}, {0.5, 0.5}, {1, 0.5},
	{0, 1}, {0.5, 1}, {1, 1},
}

// localAnchorPoints offsets the node's own rectangle so that the selected
// point of the node lands on the parent anchor.
var localAnchorPoints = [numAnchors]Vec2{
	{0, 0}, {-0.5, 0}, {-1, 0},
	{0, -0.5}, {-0.5, -0.5}, {-1, -0.5},
	{0, -1}, {-0.5, -1}, {-1, -1},
}

// Out-of-range selectors fall back to top-left, which contributes nothing.
func anchorPoint(lut *[numAnchors]Vec2, a Anchor) Vec2 {
	if a >= numAnchors {
		return Vec2{}
	}
	return lut[a]
}

// MakeVisibleBounds computes the absolute rectangle of a node from its
// parent's absolute position and size, the global scale, and the node's
// position, size and flags:
//
//	size = S*size.P + size.O*sizeScale
//	pos  = P + S*parentAnchor + size*localAnchor + S*pos.P + pos.O*posScale
//
// The result depends only on its arguments.
func MakeVisibleBounds(parentPos, parentSize Vec2, scale float64, pos, size Dim, f Flags) Rect {
	sizeScale, posScale := scale, scale
	if f.SizeScaleExempt {
		sizeScale = 1
	}
	if f.PositionScaleExempt {
		posScale = 1
	}

	abs := Vec2{
		X: parentSize.X*size.PX + size.OX*sizeScale,
		Y: parentSize.Y*size.PY + size.OY*sizeScale,
	}
	pa := anchorPoint(&parentAnchorPoints, f.ParentAnchor)
	la := anchorPoint(&localAnchorPoints, f.LocalAnchor)

	p := parentPos.
		Add(parentSize.Mul(pa)).
		Add(abs.Mul(la)).
		Add(parentSize.Mul(Vec2{pos.PX, pos.PY})).
		Add(Vec2{pos.OX * posScale, pos.OY * posScale})
	return RectFromPosSize(p, abs)
}

// MakeNewBounds folds candidate into current: the component-wise min of the
// minima and max of the maxima. A zero candidate leaves current unchanged
// and a zero current is replaced by candidate.
func MakeNewBounds(current, candidate Rect) Rect {
	if candidate.IsZero() {
		return current
	}
	if current.IsZero() {
		return candidate
	}
	return Rect{
		MinX: min(current.MinX, candidate.MinX),
		MinY: min(current.MinY, candidate.MinY),
		MaxX: max(current.MaxX, candidate.MaxX),
		MaxY: max(current.MaxY, candidate.MaxY),
	}
}
