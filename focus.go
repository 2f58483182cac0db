package canopy

// GetFocusedUI returns the focused node, or nil.
func (m *Manager) GetFocusedUI() *Node { return m.focused }

// PreviousFocusedUI returns the node that held focus before the current one.
func (m *Manager) PreviousFocusedUI() *Node { return m.prevFocused }

// SetFocused moves focus to n (nil clears it). EventFocusLost fires on the
// previous node and EventFocusGained on n, once each, even when n is
// already focused; callers that want a no-op must compare first. Nodes of
// other managers are ignored.
func (m *Manager) SetFocused(n *Node) {
	if n != nil && n.mgr != m {
		return
	}
	prev := m.focused
	m.prevFocused = prev
	m.focused = n
	if prev != nil {
		prev.DispatchEvent(EventFocusLost)
	}
	if n != nil {
		n.DispatchEvent(EventFocusGained)
	}
}

// FocusNextTabbable focuses the next tab-able node after the current focus
// and reports whether one was found.
func (m *Manager) FocusNextTabbable() bool {
	n := m.NextTabbable(m.focused)
	if n == nil {
		return false
	}
	m.SetFocused(n)
	return true
}

// FocusPrevTabbable focuses the tab-able node preceding the current focus
// and reports whether one was found. Focus does not wrap from the first
// tab-able node to the last.
func (m *Manager) FocusPrevTabbable() bool {
	n := m.PrevTabbable(m.focused)
	if n == nil {
		return false
	}
	m.SetFocused(n)
	return true
}

// NextTabbable walks GetNext forward from `from`, skipping invisible
// subtrees and wrapping past the end of the tree, and returns the first
// visible tab-able node. It returns from itself when it is the only one.
func (m *Manager) NextTabbable(from *Node) *Node {
	cur := from
	skip := from != nil && !from.IsVisible()
	// Every node is reached at most once per lap; two laps cover the wrap.
	for i := 0; i < 2*(m.live+1); i++ {
		if cur == nil {
			cur = m.FirstRoot()
		} else {
			cur = m.GetNext(cur, skip)
		}
		if cur == nil {
			skip = false
			continue
		}
		if !cur.IsVisible() {
			skip = true
			continue
		}
		skip = false
		if cur.IsTabbable() && cur.isShown() {
			return cur
		}
	}
	return nil
}

// PrevTabbable scans forward from the first root and returns the last
// visible tab-able node met before reaching `from`. It returns nil when from
// is the first tab-able node; with a nil from the scan covers the whole tree.
func (m *Manager) PrevTabbable(from *Node) *Node {
	var last *Node
	skip := false
	for cur := m.FirstRoot(); cur != nil; cur = m.GetNext(cur, skip) {
		if cur == from {
			break
		}
		if !cur.IsVisible() {
			skip = true
			continue
		}
		skip = false
		if cur.IsTabbable() && cur.isShown() {
			last = cur
		}
	}
	return last
}
