package kinetic

import (
	"fmt"
	"math"
	"sort"
)

// FrameHook is an optional per-frame behavior attached to an Object. It runs
// after the object's timelines have been written for the frame, so it sees
// (and may override) the animated values.
type FrameHook interface {
	AfterEvaluate(o *Object, frame int)
}

// FrameHookFunc adapts a function to FrameHook.
type FrameHookFunc func(o *Object, frame int)

// AfterEvaluate calls f(o, frame).
func (f FrameHookFunc) AfterEvaluate(o *Object, frame int) { f(o, frame) }

// objectIDCounter is not atomic; authoring is single-threaded.
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// Object is an animatable entity. A single flat struct is used for all
// object types; the property table of Type decides which fields are
// animatable.
type Object struct {
	// Identity
	ID   uint32
	Name string
	Type ObjectType

	// Transform
	X, Y     float64
	Rotation float64 // radians
	ScaleX   float64
	ScaleY   float64

	// Appearance
	Opacity     float64
	Visible     bool
	Width       float64
	Height      float64
	Radius      float64
	Fill        Color
	Stroke      Color
	StrokeWidth float64

	// Geometry of line and path objects, relative to (X, Y).
	Points []Point

	// Text objects
	Text     string
	FontSize float64

	// Image objects
	Source string

	// Camera objects
	Zoom float64

	// UserData is left untouched by the engine.
	UserData any

	// Hook runs after every evaluation pass, if set.
	Hook FrameHook

	timelines map[string]*Timeline
	order     []string // sorted timeline keys; nil when stale
	scene     *Scene
}

// NewObject creates an object with default field values: unit scale, full
// opacity, visible, white fill, black stroke.
func NewObject(name string, t ObjectType) *Object {
	o := &Object{
		ID:          nextObjectID(),
		Name:        name,
		Type:        t,
		ScaleX:      1,
		ScaleY:      1,
		Opacity:     1,
		Visible:     true,
		Fill:        ColorWhite,
		Stroke:      ColorBlack,
		StrokeWidth: 1,
		FontSize:    16,
		Zoom:        1,
	}
	if t == TypeParticle {
		o.Radius = 2
	}
	return o
}

// Scene returns the scene the object belongs to, or nil.
func (o *Object) Scene() *Scene {
	return o.scene
}

func (o *Object) diagnostics() DiagnosticFunc {
	if o.scene != nil {
		return o.scene.diag
	}
	return DefaultDiagnostics
}

// SetKeyframe inserts or overwrites the keyframe of prop at frame. An empty
// easing means "linear". Unknown properties, values whose kind does not
// match the property, and negative frames are reported to diagnostics and
// leave the object unchanged; the returned error carries the same cause.
func (o *Object) SetKeyframe(prop string, frame int, value Value, easing string) error {
	if err := o.setKeyframe(prop, frame, value, easing); err != nil {
		report(o.diagnostics(), "SetKeyframe", err)
		return err
	}
	return nil
}

func (o *Object) setKeyframe(prop string, frame int, value Value, easing string) error {
	if _, err := o.check(prop, value); err != nil {
		return err
	}
	if frame < 0 {
		return fmt.Errorf("%w: %s.%s at %d", ErrNegativeFrame, o.Name, prop, frame)
	}
	if easing == "" {
		easing = "linear"
	}
	if o.timelines == nil {
		o.timelines = make(map[string]*Timeline)
	}
	tl, ok := o.timelines[prop]
	if !ok {
		tl = &Timeline{}
		o.timelines[prop] = tl
		o.order = nil
		if o.scene != nil {
			o.scene.registry.Register(prop)
		}
	}
	tl.Upsert(frame, value, easing)
	return nil
}

// ClearKeyframe removes the keyframe of prop at frame. When the timeline
// becomes empty it is dropped, and the property is unregistered from the
// scene registry unless another object still animates it. Clearing a frame
// that holds no keyframe is a silent no-op.
func (o *Object) ClearKeyframe(prop string, frame int) error {
	if _, err := o.lookup(prop); err != nil {
		report(o.diagnostics(), "ClearKeyframe", err)
		return err
	}
	tl, ok := o.timelines[prop]
	if !ok || !tl.Remove(frame) {
		return nil
	}
	if tl.Len() == 0 {
		o.dropTimeline(prop)
	}
	return nil
}

// ClearProperty removes every keyframe of prop.
func (o *Object) ClearProperty(prop string) {
	if _, ok := o.timelines[prop]; ok {
		o.dropTimeline(prop)
	}
}

// ClearAll removes every keyframe of every property.
func (o *Object) ClearAll() {
	for _, prop := range o.AnimatedProperties() {
		o.dropTimeline(prop)
	}
}

func (o *Object) dropTimeline(prop string) {
	delete(o.timelines, prop)
	o.order = nil
	if o.scene != nil && !o.scene.registry.PropertyStillUsed(prop, o.scene.objects) {
		o.scene.registry.Unregister(prop)
	}
}

// AnimatedProperties returns the names of properties that have keyframes,
// sorted.
func (o *Object) AnimatedProperties() []string {
	return append([]string(nil), o.timelineOrder()...)
}

func (o *Object) timelineOrder() []string {
	if o.order == nil && len(o.timelines) > 0 {
		o.order = make([]string, 0, len(o.timelines))
		for prop := range o.timelines {
			o.order = append(o.order, prop)
		}
		sort.Strings(o.order)
	}
	return o.order
}

// IsAnimated reports whether prop has at least one keyframe.
func (o *Object) IsAnimated(prop string) bool {
	_, ok := o.timelines[prop]
	return ok
}

// HasKeyframes reports whether any property of o is animated.
func (o *Object) HasKeyframes() bool {
	return len(o.timelines) > 0
}

// Keyframes returns a copy of prop's keyframes in frame order, or nil.
func (o *Object) Keyframes(prop string) []Keyframe {
	if tl, ok := o.timelines[prop]; ok {
		return tl.Keyframes()
	}
	return nil
}

// Timeline returns a detached copy of prop's timeline, or nil when prop is
// not animated.
func (o *Object) Timeline(prop string) *Timeline {
	tl, ok := o.timelines[prop]
	if !ok {
		return nil
	}
	return &Timeline{keys: tl.Keyframes()}
}

// KeyframeCount returns the total number of keyframes across properties.
func (o *Object) KeyframeCount() int {
	n := 0
	for _, tl := range o.timelines {
		n += tl.Len()
	}
	return n
}

// Sample returns the value prop would take at frame without writing it.
func (o *Object) Sample(prop string, frame int) (Value, bool) {
	tl, ok := o.timelines[prop]
	if !ok {
		return Value{}, false
	}
	return tl.Evaluate(frame), true
}

// EvaluateAt writes the value of every animated property at frame into the
// object's fields, then runs the hook. Properties are applied in name
// order, so "x" and "y" are written after the "position" alias.
// Unanimated properties keep their last assigned value.
func (o *Object) EvaluateAt(frame int) {
	o.evaluate(frame)
	if o.Hook != nil {
		o.Hook.AfterEvaluate(o, frame)
	}
}

// evaluate writes timeline values and returns the number of samples taken.
func (o *Object) evaluate(frame int) int {
	sc := schemaOf(o.Type)
	order := o.timelineOrder()
	for _, prop := range order {
		tl := o.timelines[prop]
		if d, ok := sc.props[prop]; ok {
			d.set(o, tl.Evaluate(frame))
		}
	}
	return len(order)
}

// Bounds returns the object's axis-aligned extent in scene coordinates,
// ignoring rotation.
func (o *Object) Bounds() Rect {
	switch o.Type {
	case TypeEllipse, TypeParticle:
		rx, ry := o.Radius*math.Abs(o.ScaleX), o.Radius*math.Abs(o.ScaleY)
		return Rect{o.X - rx, o.Y - ry, 2 * rx, 2 * ry}
	case TypeLine, TypePath:
		if len(o.Points) == 0 {
			return Rect{X: o.X, Y: o.Y}
		}
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range o.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
		return Rect{
			X:      o.X + minX*o.ScaleX,
			Y:      o.Y + minY*o.ScaleY,
			Width:  (maxX - minX) * math.Abs(o.ScaleX),
			Height: (maxY - minY) * math.Abs(o.ScaleY),
		}
	case TypeText:
		// Average glyph advance of about 0.6em.
		w := float64(len([]rune(o.Text))) * o.FontSize * 0.6
		return Rect{o.X, o.Y, w * math.Abs(o.ScaleX), o.FontSize * math.Abs(o.ScaleY)}
	case TypeCamera:
		return Rect{X: o.X, Y: o.Y}
	default:
		return Rect{o.X, o.Y, o.Width * math.Abs(o.ScaleX), o.Height * math.Abs(o.ScaleY)}
	}
}

// Center returns the midpoint of Bounds.
func (o *Object) Center() Point {
	return o.Bounds().Center()
}
