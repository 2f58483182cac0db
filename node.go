package canopy

// Widget is the per-kind behavior of a node. UpdateSelf runs during the
// update pass with the node's absolute rectangle and returns the node's own
// contribution to the aggregated bounds (the zero Rect for none). DrawSelf
// emits the node's primitives into ctx.Writer.
type Widget interface {
	UpdateSelf(ctx *UpdateContext, n *Node, r Rect) Rect
	DrawSelf(ctx *DrawContext, n *Node, r Rect)
}

// Destroyer is implemented by widgets that release resources when their node
// is destroyed.
type Destroyer interface {
	Destroy(n *Node)
}

// ContentSizer is implemented by widgets that can size a node from their
// content. The returned size is in unscaled pixels and is used for the axes
// flagged AutoWidth or AutoHeight.
type ContentSizer interface {
	ContentSize(n *Node) Vec2
}

// ChildClipper is implemented by widgets that clip their children's
// primitives to the node's rectangle.
type ChildClipper interface {
	ClipsChildren() bool
}

// Container is the plain grouping widget. It draws nothing; its own rect
// counts toward bounds only while no child contributes, so a container sizes
// to its visible children.
type Container struct{}

func (Container) UpdateSelf(_ *UpdateContext, n *Node, r Rect) Rect {
	if n.firstChild != 0 {
		return Rect{}
	}
	return r
}

func (Container) DrawSelf(*DrawContext, *Node, Rect) {}

// Node is one element of the UI tree. Nodes are created and owned by a
// Manager; tree links are NodeIDs into the manager's arena.
type Node struct {
	Name     string
	UserData any

	id  NodeID
	mgr *Manager

	parent     NodeID
	firstChild NodeID
	lastChild  NodeID
	next       NodeID
	linked     bool

	position Dim
	size     Dim
	flags    Flags
	widget   Widget

	rect       Rect // own rectangle from the last update
	bounds     Rect // aggregated bounds from the last update
	wasVisible bool

	events   []eventEntry
	eventCap int

	overMask  uint16
	overStart float64
	tooltip   string
}

// ID returns the node's arena handle.
func (n *Node) ID() NodeID { return n.id }

// Manager returns the manager that owns the node.
func (n *Node) Manager() *Manager { return n.mgr }

// Widget returns the node's widget; nil means Container.
func (n *Node) Widget() Widget { return n.widget }

// SetWidget replaces the node's widget.
func (n *Node) SetWidget(w Widget) *Node {
	n.widget = w
	return n
}

func (n *Node) behavior() Widget {
	if n.widget == nil {
		return Container{}
	}
	return n.widget
}

// --- Configuration ---

// Position returns the node's position.
func (n *Node) Position() Dim { return n.position }

// SetPosition sets the node's position.
func (n *Node) SetPosition(d Dim) *Node {
	n.position = d
	return n
}

// Size returns the node's size.
func (n *Node) Size() Dim { return n.size }

// SetSize sets the node's size.
func (n *Node) SetSize(d Dim) *Node {
	n.size = d
	return n
}

// Flags returns the node's flags.
func (n *Node) Flags() Flags { return n.flags }

// SetFlags replaces the node's flags.
func (n *Node) SetFlags(f Flags) *Node {
	n.flags = f
	return n
}

// SetAnchors sets the parent and local anchors.
func (n *Node) SetAnchors(parent, local Anchor) *Node {
	n.flags.ParentAnchor = parent
	n.flags.LocalAnchor = local
	return n
}

// SetChildrenFirst selects whether children are traversed before the node.
func (n *Node) SetChildrenFirst(v bool) *Node {
	n.flags.ChildrenFirst = v
	return n
}

// IsVisible reports the node's own visibility bit.
func (n *Node) IsVisible() bool { return n.flags.Visible }

// SetVisible sets the visibility bit. Transition events fire on the next update.
func (n *Node) SetVisible(v bool) *Node {
	n.flags.Visible = v
	return n
}

// isShown reports whether n and every ancestor are visible.
func (n *Node) isShown() bool {
	for p := n; p != nil; p = p.Parent() {
		if !p.flags.Visible {
			return false
		}
	}
	return true
}

// IsFocusable reports whether pointer presses and navigation can focus the node.
func (n *Node) IsFocusable() bool { return n.flags.Focusable }

// SetFocusable sets the focusable bit.
func (n *Node) SetFocusable(v bool) *Node {
	n.flags.Focusable = v
	return n
}

// IsTabbable reports whether tab navigation stops at the node.
func (n *Node) IsTabbable() bool { return n.flags.Tabbable }

// SetTabbable sets the tab-able bit.
func (n *Node) SetTabbable(v bool) *Node {
	n.flags.Tabbable = v
	return n
}

// SetScaleExempt opts the position and size out of the global UI scale.
func (n *Node) SetScaleExempt(position, size bool) *Node {
	n.flags.PositionScaleExempt = position
	n.flags.SizeScaleExempt = size
	return n
}

// Tooltip returns the node's tooltip text.
func (n *Node) Tooltip() string { return n.tooltip }

// SetTooltip sets the tooltip text; empty disables the tooltip.
func (n *Node) SetTooltip(text string) *Node {
	n.tooltip = text
	return n
}

// Rect returns the node's own absolute rectangle from the last update.
func (n *Node) Rect() Rect { return n.rect }

// VisibleBounds returns the aggregated bounds cached by the last update.
// Zero when the node is invisible or was never laid out.
func (n *Node) VisibleBounds() Rect { return n.bounds }

// IsHovered reports whether any pointer was over the node in the last update.
func (n *Node) IsHovered() bool { return n.overMask != 0 }

// IsHoveredBy reports whether the given pointer was over the node.
func (n *Node) IsHoveredBy(pointer int) bool {
	return pointer >= 0 && pointer < maxPointers && n.overMask&(1<<pointer) != 0
}

// HoverDuration returns how long the node has been continuously hovered at
// time now, or 0 when it is not hovered.
func (n *Node) HoverDuration(now float64) float64 {
	if n.overMask == 0 {
		return 0
	}
	return now - n.overStart
}

// --- Tree accessors ---

// Parent returns the parent node, or nil for roots and detached nodes.
func (n *Node) Parent() *Node { return n.mgr.Node(n.parent) }

// FirstChild returns the first child in paint order.
func (n *Node) FirstChild() *Node { return n.mgr.Node(n.firstChild) }

// LastChild returns the last child in paint order.
func (n *Node) LastChild() *Node { return n.mgr.Node(n.lastChild) }

// NextSibling returns the next sibling in paint order.
func (n *Node) NextSibling() *Node { return n.mgr.Node(n.next) }

// IsLinked reports whether the node is part of a tree (a root or a child).
func (n *Node) IsLinked() bool { return n.linked }

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	count := 0
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		count++
	}
	return count
}

// Children returns the direct children in paint order. The slice is freshly
// allocated.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

// --- Traversal ---

func (n *Node) layoutRect(parentPos, parentSize Vec2, scale float64) Rect {
	size := n.size
	if n.flags.AutoWidth || n.flags.AutoHeight {
		if cs, ok := n.widget.(ContentSizer); ok {
			content := cs.ContentSize(n)
			if n.flags.AutoWidth {
				size.PX, size.OX = 0, content.X
			}
			if n.flags.AutoHeight {
				size.PY, size.OY = 0, content.Y
			}
		}
	}
	return MakeVisibleBounds(parentPos, parentSize, scale, n.position, size, n.flags)
}

// Update lays the node and its subtree out inside the parent rectangle,
// updates hover and press state, offers the node to the navigation
// controller, and returns the aggregated bounds of the subtree.
// parentWasVisible reports whether the parent was already visible in the
// previous update; when false every visible node in the subtree fires
// EventShown.
func (n *Node) Update(ctx *UpdateContext, parentPos, parentSize Vec2, parentWasVisible bool) Rect {
	if !n.flags.Visible {
		n.rect = Rect{}
		n.bounds = Rect{}
		if n.wasVisible {
			n.wasVisible = false
			n.clearSubtreeHover()
			n.DispatchEvent(EventHidden)
		}
		return Rect{}
	}
	ctx.visited++

	r := n.layoutRect(parentPos, parentSize, ctx.Scale)
	n.rect = r

	shown := !n.wasVisible || !parentWasVisible
	var bounds Rect
	if n.flags.ChildrenFirst {
		bounds = n.updateChildren(ctx, r, !shown, bounds)
		bounds = MakeNewBounds(bounds, n.updateSelf(ctx, r))
	} else {
		bounds = n.updateSelf(ctx, r)
		bounds = n.updateChildren(ctx, r, !shown, bounds)
	}
	if bounds.IsZero() {
		// No child contributed; a visible node still occupies its own rect.
		bounds = r
	}

	n.bounds = bounds
	n.wasVisible = true
	if shown {
		n.DispatchEvent(EventShown)
	}
	return bounds
}

func (n *Node) updateSelf(ctx *UpdateContext, r Rect) Rect {
	n.updateHover(ctx, r)
	if ctx.Nav != nil && n.flags.Focusable {
		ctx.Nav.Consider(n, r)
	}
	return n.behavior().UpdateSelf(ctx, n, r)
}

func (n *Node) updateChildren(ctx *UpdateContext, r Rect, wasVisible bool, bounds Rect) Rect {
	pos, size := r.Pos(), r.Size()
	for c := n.FirstChild(); c != nil; {
		next := c.NextSibling()
		bounds = MakeNewBounds(bounds, c.Update(ctx, pos, size, wasVisible))
		c = siblingAfter(c, next, n.id)
	}
	return bounds
}

// siblingAfter returns the sibling to visit after c, whose next sibling was
// next before c was updated. Event handlers run during the update may have
// unlinked or destroyed c; the walk then resumes at next if it is still a
// child of parent.
func siblingAfter(c, next *Node, parent NodeID) *Node {
	if c.linked && c.parent == parent {
		return c.NextSibling()
	}
	if next != nil && next.linked && next.parent == parent {
		return next
	}
	return nil
}

// isAttached reports whether n is linked all the way up to a root.
func (n *Node) isAttached() bool {
	for p := n; p != nil; p = p.Parent() {
		if !p.linked {
			return false
		}
		if p.parent == 0 {
			return true
		}
	}
	return false
}

// updateHover tracks every active pointer against r.
func (n *Node) updateHover(ctx *UpdateContext, r Rect) {
	if ctx.Input == nil {
		return
	}
	for i := range ctx.Input.Pointers {
		p := &ctx.Input.Pointers[i]
		bit := uint16(1) << i
		if !p.Active || !r.Contains(p.X, p.Y) {
			if n.overMask&bit != 0 {
				n.overMask &^= bit
				if n.overMask == 0 {
					n.overStart = 0
					n.DispatchEvent(EventMouseOff)
				}
			}
			continue
		}

		if n.overMask == 0 {
			n.overMask = bit
			n.overStart = ctx.Time
			n.DispatchEvent(EventMouseOver)
		} else {
			n.overMask |= bit
		}
		if !n.flags.IgnoreOverCount {
			ctx.Over.Add(i)
			n.DispatchEvent(EventTempOver)
		}
		for b := MouseButton(0); b < numMouseButtons; b++ {
			if p.Pressed[b] {
				n.DispatchEvent(PressedEvent(b))
				if n.flags.Focusable && n.linked {
					ctx.pressed = n
				}
			}
			if p.Released[b] {
				n.DispatchEvent(ReleasedEvent(b))
			}
		}
		if i == 0 && n.tooltip != "" {
			ctx.tooltip = n
		}
	}
}

// clearSubtreeHover drops hover state for n and every descendant, firing
// EventMouseOff on the ones that were hovered.
func (n *Node) clearSubtreeHover() {
	if n.overMask != 0 {
		n.overMask = 0
		n.overStart = 0
		n.DispatchEvent(EventMouseOff)
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		c.clearSubtreeHover()
	}
}

// Draw recomputes the node's rectangle and emits the subtree's primitives,
// children before or after the node according to ChildrenFirst.
func (n *Node) Draw(ctx *DrawContext, parentPos, parentSize Vec2) {
	if !n.flags.Visible {
		return
	}
	r := n.layoutRect(parentPos, parentSize, ctx.Scale)
	if n.flags.ChildrenFirst {
		n.drawChildren(ctx, r)
		n.behavior().DrawSelf(ctx, n, r)
	} else {
		n.behavior().DrawSelf(ctx, n, r)
		n.drawChildren(ctx, r)
	}
}

func (n *Node) drawChildren(ctx *DrawContext, r Rect) {
	if cl, ok := n.widget.(ChildClipper); ok && cl.ClipsChildren() {
		saved := ctx.Clip
		clip := r
		if !saved.IsZero() {
			var visible bool
			if clip, visible = saved.Intersect(r); !visible {
				return
			}
		}
		ctx.Clip = clip
		defer func() { ctx.Clip = saved }()
	}
	pos, size := r.Pos(), r.Size()
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		c.Draw(ctx, pos, size)
	}
}
