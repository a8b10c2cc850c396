// Package ecs provides ECS adapters for immerse.
//
// [NewDonburiStore] keeps widget records as entities in a [Donburi] world and
// serves them to an immerse Pipeline as a WidgetStore. [BridgeModeChanges]
// publishes mode transitions as typed Donburi events; subscribe to
// [ModeChangeEventType] in your systems to react to them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	_ = store.Put(immerse.NewWidget("title", 100, 80, 400, 120))
//	pipeline := immerse.NewPipeline(store, frame, modes, cfg)
//	ecs.BridgeModeChanges(world, modes)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
