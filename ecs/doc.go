// Package ecs provides ECS adapters for flowcanvas's change events.
//
// [NewDonburiStore] bridges canvas change events into a [Donburi] world as
// typed events. Subscribe to [ChangeEventType] in your ECS systems to receive
// them. [NewDonburiMirror] additionally keeps one entity per graph node, with
// a [NodeComponent] that tracks the node's kind, position and status.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	canvas.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
