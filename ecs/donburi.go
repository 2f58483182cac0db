package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
)

// UIEventType is the Donburi event type for canopy node events.
// Subscribe to this in your ECS systems to receive hover, press, focus and
// visibility events.
var UIEventType = events.NewEventType[canopy.UIEvent]()

// NodeRef links an entity to a UI node.
type NodeRef struct {
	ID canopy.NodeID
}

// NodeComponent carries the NodeRef of entities bound with BindNode.
var NodeComponent = donburi.NewComponentType[NodeRef]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Node events are published to UIEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) canopy.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event canopy.UIEvent) {
	UIEventType.Publish(s.world, event)
}

// BindNode creates an entity referencing n.
func BindNode(world donburi.World, n *canopy.Node) donburi.Entity {
	entity := world.Create(NodeComponent)
	NodeComponent.SetValue(world.Entry(entity), NodeRef{ID: n.ID()})
	return entity
}

// EntryForNode returns the first entity bound to the node id.
func EntryForNode(world donburi.World, id canopy.NodeID) (*donburi.Entry, bool) {
	var found *donburi.Entry
	query.NewQuery(filter.Contains(NodeComponent)).Each(world, func(e *donburi.Entry) {
		if found == nil && NodeComponent.Get(e).ID == id {
			found = e
		}
	})
	return found, found != nil
}
