// Package ecs connects kinetic scenes to a [Donburi] world.
//
// [Spawn] attaches an animated object to a new entity through the [Animated]
// component, so ECS systems can query the objects a scene drives. The
// system returned by [NewFrameSystem] publishes a [FrameEvent] every time the
// scene is evaluated; subscribe to [FrameEventType] to react to playback.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.SpawnScene(world, scene)
//	scene.AddSystem(ecs.NewFrameSystem(world, scene))
//
//	ecs.FrameEventType.Subscribe(world, func(w donburi.World, e ecs.FrameEvent) {
//		// ...
//	})
//	// in the game loop:
//	ecs.FrameEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
