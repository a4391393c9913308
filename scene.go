package kinetic

import (
	"fmt"
	"slices"
	"time"
)

// System is per-frame behavior that is not tied to a single object (frame
// actions, ECS bridges, emitters). Systems run in registration order after
// all objects have been evaluated for the frame.
type System interface {
	OnTick(frame int)
}

// Scene is the top-level object that owns the clock, the ordered object
// collection, the keyframe registry and the system list.
type Scene struct {
	objects  []*Object
	registry Registry
	clock    *Clock
	selected *Object
	systems  []System
	diag     DiagnosticFunc
	debug    bool
}

// NewScene creates an empty scene with a stopped clock at frame 0.
func NewScene(fps, seconds float64) *Scene {
	s := &Scene{diag: StderrDiagnostics}
	s.clock = NewClock(fps, seconds, s)
	return s
}

// Clock returns the scene's clock.
func (s *Scene) Clock() *Clock {
	return s.clock
}

// Registry returns the scene's keyframe registry.
func (s *Scene) Registry() *Registry {
	return &s.registry
}

// Add appends o to the scene, moving it out of any other scene first, and
// registers its animated properties. Adding an object twice is a no-op.
func (s *Scene) Add(o *Object) *Object {
	if o == nil {
		report(s.diag, "Add", ErrNilObject)
		return nil
	}
	if o.scene == s {
		return o
	}
	if o.scene != nil {
		o.scene.Remove(o)
	}
	o.scene = s
	s.objects = append(s.objects, o)
	for prop := range o.timelines {
		s.registry.Register(prop)
	}
	return o
}

// Remove detaches o and unregisters properties no remaining object
// animates. Reports whether o was in the scene.
func (s *Scene) Remove(o *Object) bool {
	if o == nil || o.scene != s {
		return false
	}
	i := slices.Index(s.objects, o)
	if i < 0 {
		return false
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	o.scene = nil
	if s.selected == o {
		s.selected = nil
	}
	for prop := range o.timelines {
		if !s.registry.PropertyStillUsed(prop, s.objects) {
			s.registry.Unregister(prop)
		}
	}
	return true
}

// Objects returns the scene's objects in evaluation order. The returned
// slice MUST NOT be mutated.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Find returns the first object with the given name.
func (s *Scene) Find(name string) (*Object, bool) {
	for _, o := range s.objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// ByID returns the object with the given ID.
func (s *Scene) ByID(id uint32) (*Object, bool) {
	for _, o := range s.objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Select sets the default target of composer calls. Objects outside the
// scene are rejected.
func (s *Scene) Select(o *Object) {
	if o != nil && o.scene != s {
		report(s.diag, "Select", fmt.Errorf("%w: %q is not in the scene", ErrNotFound, o.Name))
		return
	}
	s.selected = o
}

// Selected returns the selected object, or nil.
func (s *Scene) Selected() *Object {
	return s.selected
}

// AddSystem appends a system. Systems tick in the order they were added.
func (s *Scene) AddSystem(sys System) {
	if sys == nil {
		return
	}
	s.systems = append(s.systems, sys)
}

// RemoveSystem removes a previously added system.
func (s *Scene) RemoveSystem(sys System) bool {
	for i, other := range s.systems {
		if other == sys {
			s.systems = slices.Delete(s.systems, i, i+1)
			return true
		}
	}
	return false
}

// SetDiagnostics routes the scene's diagnostics to fn. Nil restores the
// stderr default.
func (s *Scene) SetDiagnostics(fn DiagnosticFunc) {
	if fn == nil {
		fn = StderrDiagnostics
	}
	s.diag = fn
}

// Diagnostics returns the scene's diagnostic handler.
func (s *Scene) Diagnostics() DiagnosticFunc {
	return s.diag
}

// SetDebugMode enables or disables per-pass evaluation stats and timeline
// size warnings on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// EvaluateAt evaluates every object at frame, then ticks every system. All
// objects observe the same frame before any system runs.
func (s *Scene) EvaluateAt(frame int) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
		stats.frame = frame
		stats.objectCount = len(s.objects)
	}

	for _, o := range s.objects {
		n := o.evaluate(frame)
		if s.debug {
			stats.sampleCount += n
			for _, prop := range o.timelineOrder() {
				debugCheckTimeline(o, prop, o.timelines[prop])
			}
		}
	}
	for _, o := range s.objects {
		if o.Hook != nil {
			o.Hook.AfterEvaluate(o, frame)
		}
	}

	if s.debug {
		stats.objectsTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, sys := range s.systems {
		sys.OnTick(frame)
	}

	if s.debug {
		stats.systemsTime = time.Since(t0)
		s.debugLog(stats)
	}
}
