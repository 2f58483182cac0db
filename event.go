package canopy

import "github.com/sirupsen/logrus"

// EventCode identifies a node event. Codes below EventUser are well-known
// and dispatched by the core; codes from EventUser up belong to widgets and
// applications.
type EventCode uint16

const (
	EventMouseOver      EventCode = iota + 1 // a pointer started hovering the node
	EventMouseOff                            // no pointer hovers the node any more
	EventPressedLeft                         // left button (or touch) went down over the node
	EventPressedRight                        // right button went down over the node
	EventPressedMiddle                       // middle button went down over the node
	EventReleasedLeft                        // left button (or touch) went up over the node
	EventReleasedRight                       // right button went up over the node
	EventReleasedMiddle                      // middle button went up over the node
	EventFocusGained                         // the node became the focused node
	EventFocusLost                           // the node stopped being the focused node
	EventValueChanged                        // widget-defined value changed
	EventShown                               // the node became visible
	EventHidden                              // the node became invisible
	EventTempOver                            // a pointer is over the node this frame

	// EventUser is the first widget-specific code.
	EventUser EventCode = 64
)

// PressedEvent returns the pressed code for button b.
func PressedEvent(b MouseButton) EventCode { return EventPressedLeft + EventCode(b) }

// ReleasedEvent returns the released code for button b.
func ReleasedEvent(b MouseButton) EventCode { return EventReleasedLeft + EventCode(b) }

// EventFunc is a node event callback.
type EventFunc func(n *Node, code EventCode, userData any)

type eventEntry struct {
	code     EventCode
	fn       EventFunc
	userData any
}

// UIEvent is the record handed to an EventSink for every dispatched event.
type UIEvent struct {
	Code EventCode
	Node NodeID
	Name string
}

// EventSink receives every event dispatched on a Manager's nodes, after the
// node's own callback. Used to bridge UI events into an ECS world.
type EventSink interface {
	EmitEvent(event UIEvent)
}

// RegisterEvent binds fn to code. Registering a code that is already bound
// replaces the previous callback. Returns false when the node's event table
// is full or fn is nil.
func (n *Node) RegisterEvent(code EventCode, fn EventFunc, userData any) bool {
	if fn == nil {
		return false
	}
	for i := range n.events {
		if n.events[i].code == code {
			n.events[i].fn = fn
			n.events[i].userData = userData
			return true
		}
	}
	if len(n.events) >= n.eventCap {
		logger.WithFields(logrus.Fields{
			"node": n.Name, "code": code, "capacity": n.eventCap,
		}).Debug("canopy: event table full")
		return false
	}
	n.events = append(n.events, eventEntry{code: code, fn: fn, userData: userData})
	return true
}

// UnregisterEvent removes the callback bound to code. Returns false if none
// was registered.
func (n *Node) UnregisterEvent(code EventCode) bool {
	for i := range n.events {
		if n.events[i].code == code {
			copy(n.events[i:], n.events[i+1:])
			n.events[len(n.events)-1] = eventEntry{}
			n.events = n.events[:len(n.events)-1]
			return true
		}
	}
	return false
}

// HasEvent reports whether a callback is bound to code.
func (n *Node) HasEvent(code EventCode) bool {
	for i := range n.events {
		if n.events[i].code == code {
			return true
		}
	}
	return false
}

// DispatchEvent invokes the callback bound to code, if any, then forwards the
// event to the manager's sink.
func (n *Node) DispatchEvent(code EventCode) {
	for i := range n.events {
		if n.events[i].code == code {
			e := n.events[i]
			e.fn(n, code, e.userData)
			break
		}
	}
	if n.mgr != nil && n.mgr.sink != nil {
		n.mgr.sink.EmitEvent(UIEvent{Code: code, Node: n.id, Name: n.Name})
	}
}
