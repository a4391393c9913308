package ecs

import (
	"github.com/phanxgames/kinetic"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// AnimatedData links an entity to the kinetic object that animates it.
type AnimatedData struct {
	Object *kinetic.Object
}

// Animated is the component holding AnimatedData.
var Animated = donburi.NewComponentType[AnimatedData]()

// FrameEvent reports that a scene was evaluated at Frame.
type FrameEvent struct {
	Frame   int
	Seconds float64
}

// FrameEventType is the Donburi event type for scene evaluation passes.
var FrameEventType = events.NewEventType[FrameEvent]()

var animatedQuery = donburi.NewQuery(filter.Contains(Animated))

// Spawn creates an entity carrying obj.
func Spawn(world donburi.World, obj *kinetic.Object) donburi.Entity {
	e := world.Create(Animated)
	Animated.SetValue(world.Entry(e), AnimatedData{Object: obj})
	return e
}

// SpawnScene creates one entity per object of scene, in scene order.
func SpawnScene(world donburi.World, scene *kinetic.Scene) []donburi.Entity {
	objs := scene.Objects()
	out := make([]donburi.Entity, len(objs))
	for i, o := range objs {
		out[i] = Spawn(world, o)
	}
	return out
}

// ObjectOf returns the object carried by entity, or nil.
func ObjectOf(world donburi.World, entity donburi.Entity) *kinetic.Object {
	if !world.Valid(entity) {
		return nil
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(Animated) {
		return nil
	}
	return Animated.Get(entry).Object
}

// Each calls fn for every entity carrying an object.
func Each(world donburi.World, fn func(entry *donburi.Entry, obj *kinetic.Object)) {
	animatedQuery.Each(world, func(entry *donburi.Entry) {
		fn(entry, Animated.Get(entry).Object)
	})
}

type frameSystem struct {
	world donburi.World
	clock *kinetic.Clock
}

// NewFrameSystem returns a scene system that publishes a FrameEvent to
// world on every evaluation pass. Events are queued; subscribers run when
// FrameEventType.ProcessEvents is called.
func NewFrameSystem(world donburi.World, scene *kinetic.Scene) kinetic.System {
	return &frameSystem{world: world, clock: scene.Clock()}
}

func (s *frameSystem) OnTick(frame int) {
	FrameEventType.Publish(s.world, FrameEvent{
		Frame:   frame,
		Seconds: float64(frame) / s.clock.FPS(),
	})
}
