// Package ecs provides ECS adapters for canopy's node event system.
//
// The primary adapter is [NewDonburiSink], which bridges canopy node events
// (hover, press, focus, visibility) into a [Donburi] world as typed events.
// Subscribe to [UIEventType] in your ECS systems to receive them, and use
// [BindNode] / [EntryForNode] to map an event's node back to an entity.
//
// Usage:
//
//	m.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
