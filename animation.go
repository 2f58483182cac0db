package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a Node's layout
// simultaneously. Create one via TweenOffset or TweenSize and call
// Update(dt) each frame. If the target node is destroyed, the group stops
// immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	id     NodeID
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. The new layout takes effect on the next Manager update.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.mgr.Node(g.id) != g.target {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func newTweenGroup(node *Node, fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: len(fields), target: node, id: node.id}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f), float32(to[i]), duration, fn)
		g.fields[i] = f
	}
	return g
}

// TweenOffset animates the pixel part of the node's position to (toX, toY).
func TweenOffset(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node,
		[]*float64{&node.position.OX, &node.position.OY},
		[]float64{toX, toY}, duration, fn)
}

// TweenSize animates the node's size, both the percent and pixel parts, to
// the given Dim.
func TweenSize(node *Node, to Dim, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node,
		[]*float64{&node.size.PX, &node.size.PY, &node.size.OX, &node.size.OY},
		[]float64{to.PX, to.PY, to.OX, to.OY}, duration, fn)
}

// TweenValue animates an arbitrary float owned by a widget on node, such as
// a fill fraction or an alpha.
func TweenValue(node *Node, field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, []*float64{field}, []float64{to}, duration, fn)
}
