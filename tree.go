package canopy

import "github.com/sirupsen/logrus"

// NodeID is a stable handle to a node in a Manager's arena. The low 32 bits
// are the slot index plus one, the high 32 bits the slot generation, so a
// handle to a destroyed node never resolves to a later occupant of its slot.
// The zero NodeID refers to no node.
type NodeID uint64

func makeNodeID(slot int, gen uint32) NodeID {
	return NodeID(uint64(gen)<<32 | uint64(slot+1))
}

func (id NodeID) slot() int   { return int(uint32(id)) - 1 }
func (id NodeID) gen() uint32 { return uint32(id >> 32) }

// Node resolves a handle. Returns nil for the zero handle and for handles
// of destroyed nodes.
func (m *Manager) Node(id NodeID) *Node {
	if m == nil || id == 0 {
		return nil
	}
	s := id.slot()
	if s < 0 || s >= len(m.nodes) || m.gens[s] != id.gen() {
		return nil
	}
	return m.nodes[s]
}

// NumNodes returns the number of live nodes, linked or detached.
func (m *Manager) NumNodes() int { return m.live }

// NewNode allocates a detached node. Link it into the tree with Append or
// InsertAfter. A nil widget makes a plain Container.
func (m *Manager) NewNode(name string, pos, size Dim, flags Flags, w Widget) *Node {
	n := &Node{
		Name:     name,
		mgr:      m,
		position: pos,
		size:     size,
		flags:    flags,
		widget:   w,
		eventCap: m.cfg.EventCapacity,
	}
	var s int
	if k := len(m.free); k > 0 {
		s = m.free[k-1]
		m.free = m.free[:k-1]
		m.nodes[s] = n
	} else {
		s = len(m.nodes)
		m.nodes = append(m.nodes, n)
		m.gens = append(m.gens, 1)
	}
	n.id = makeNodeID(s, m.gens[s])
	m.live++
	return n
}

// FirstRoot returns the first root node.
func (m *Manager) FirstRoot() *Node { return m.Node(m.firstRoot) }

// Roots returns the root nodes in paint order. The slice is freshly allocated.
func (m *Manager) Roots() []*Node {
	var out []*Node
	for r := m.FirstRoot(); r != nil; r = r.NextSibling() {
		out = append(out, r)
	}
	return out
}

// Append links n as the last child of parent, or as the last root when
// parent is nil.
func (m *Manager) Append(parent, n *Node) bool {
	var after *Node
	if parent != nil {
		after = parent.LastChild()
	} else {
		after = m.Node(m.lastRoot)
	}
	if after == nil {
		return m.InsertAfter(parent, nil, n)
	}
	return m.InsertAfter(parent, after, n)
}

// InsertAfter links n under parent (nil for the root list) immediately after
// the sibling after; a nil after makes n the first child. Returns false when
// n belongs to another manager, is already linked, would create a cycle, or
// after is not a child of parent.
func (m *Manager) InsertAfter(parent, after, n *Node) bool {
	if n == nil || n.mgr != m || n.linked {
		return false
	}
	if parent != nil && (parent.mgr != m || isAncestor(n, parent)) {
		return false
	}
	var parentID NodeID
	if parent != nil {
		parentID = parent.id
	}
	if after != nil && (after.mgr != m || !after.linked || after.parent != parentID) {
		return false
	}

	first, last := &m.firstRoot, &m.lastRoot
	if parent != nil {
		first, last = &parent.firstChild, &parent.lastChild
	}

	n.parent = parentID
	n.linked = true
	if after == nil {
		n.next = *first
		*first = n.id
		if *last == 0 {
			*last = n.id
		}
	} else {
		n.next = after.next
		after.next = n.id
		if *last == after.id {
			*last = n.id
		}
	}

	if m.debug {
		debugCheckTreeDepth(n)
	}
	return true
}

// Remove unlinks n from its parent or the root list. Its children stay
// attached to it. Returns false if n was not linked.
func (m *Manager) Remove(n *Node) bool {
	if n == nil || n.mgr != m || !n.linked {
		return false
	}
	first, last := &m.firstRoot, &m.lastRoot
	if p := n.Parent(); p != nil {
		first, last = &p.firstChild, &p.lastChild
	}

	// No back links: find the previous sibling by scanning from the head.
	var prev *Node
	for c := m.Node(*first); c != nil && c != n; c = c.NextSibling() {
		prev = c
	}
	if prev == nil {
		*first = n.next
	} else {
		prev.next = n.next
	}
	if *last == n.id {
		if prev == nil {
			*last = 0
		} else {
			*last = prev.id
		}
	}

	n.parent = 0
	n.next = 0
	n.linked = false
	m.forgetSubtree(n)
	return true
}

// forgetSubtree drops manager references into a subtree that left the tree.
func (m *Manager) forgetSubtree(n *Node) {
	if m.focused == n {
		m.focused = nil
	}
	if m.prevFocused == n {
		m.prevFocused = nil
	}
	if m.tooltip.target == n {
		m.tooltip.hide()
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		m.forgetSubtree(c)
	}
}

// Destroy unlinks n and destroys it with its whole subtree: widget Destroy
// hooks run children first, named entries are dropped and arena slots are
// released.
func (m *Manager) Destroy(n *Node) bool {
	if n == nil || n.mgr != m {
		return false
	}
	if n.linked {
		m.Remove(n)
	} else {
		m.forgetSubtree(n)
	}
	m.destroy(n)
	return true
}

func (m *Manager) destroy(n *Node) {
	for c := n.FirstChild(); c != nil; {
		next := c.NextSibling()
		m.destroy(c)
		c = next
	}
	if d, ok := n.widget.(Destroyer); ok {
		d.Destroy(n)
	}
	if n.Name != "" {
		if id, ok := m.named[hashName(n.Name)]; ok && id == n.id {
			delete(m.named, hashName(n.Name))
		}
	}

	s := n.id.slot()
	m.nodes[s] = nil
	m.gens[s]++
	m.free = append(m.free, s)
	m.live--

	*n = Node{Name: n.Name}
}

// DestroyAll destroys every node the manager owns, linked or detached.
func (m *Manager) DestroyAll() {
	for r := m.FirstRoot(); r != nil; r = m.FirstRoot() {
		m.Destroy(r)
	}
	for _, n := range m.nodes {
		if n != nil && n.parent == 0 {
			m.Destroy(n)
		}
	}
	logger.WithFields(logrus.Fields{"live": m.live}).Debug("canopy: destroyed all nodes")
}

// GetNext returns the node after cur in a pre-order walk of the whole tree:
// the first child (unless skipChildren), else the next sibling of cur or of
// its nearest ancestor that has one. A nil cur starts at the first root; the
// walk ends with nil.
func (m *Manager) GetNext(cur *Node, skipChildren bool) *Node {
	if cur == nil {
		return m.FirstRoot()
	}
	if !skipChildren {
		if c := cur.FirstChild(); c != nil {
			return c
		}
	}
	for n := cur; n != nil; n = n.Parent() {
		if s := n.NextSibling(); s != nil {
			return s
		}
	}
	return nil
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}
