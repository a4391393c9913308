package kinetic

import (
	"fmt"
	"sort"
)

// Composer builds keyframes for common animation patterns on top of
// Object.SetKeyframe. Every call returns its primary input so calls can be
// chained; malformed input is reported to the scene's diagnostics and the
// call becomes a no-op.
type Composer struct {
	scene *Scene
}

// NewComposer returns a composer writing into scene. A nil scene is allowed
// for object-only helpers; Particles needs a scene to add objects to.
func NewComposer(scene *Scene) *Composer {
	return &Composer{scene: scene}
}

// Scene returns the scene the composer writes into.
func (c *Composer) Scene() *Scene {
	return c.scene
}

func (c *Composer) fail(op string, err error) {
	var fn DiagnosticFunc
	if c.scene != nil {
		fn = c.scene.diag
	}
	report(fn, op, err)
}

// target resolves the object a call applies to. A nil obj falls back to the
// scene's selected object.
func (c *Composer) target(op string, obj *Object) *Object {
	if obj == nil && c.scene != nil {
		obj = c.scene.selected
	}
	if obj == nil {
		c.fail(op, ErrNilObject)
	}
	return obj
}

// validate checks that every keyframe would be accepted by obj.prop after
// shifting its frame by shift.
func validate(obj *Object, prop string, keys []Keyframe, shift int) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w for %q", ErrNoKeyframes, prop)
	}
	for _, k := range keys {
		if _, err := obj.check(prop, k.Value); err != nil {
			return err
		}
		if k.Frame+shift < 0 {
			return fmt.Errorf("%w: %s.%s at %d", ErrNegativeFrame, obj.Name, prop, k.Frame+shift)
		}
	}
	return nil
}

// apply writes keys after validate accepted them.
func apply(obj *Object, prop string, keys []Keyframe, shift int) {
	for _, k := range keys {
		_ = obj.setKeyframe(prop, k.Frame+shift, k.Value, k.Easing)
	}
}

// Animate writes keys onto obj.prop. Either every keyframe is applied or,
// if any is malformed, none is.
func (c *Composer) Animate(obj *Object, prop string, keys []Keyframe) *Object {
	obj = c.target("Animate", obj)
	if obj == nil {
		return nil
	}
	if err := validate(obj, prop, keys, 0); err != nil {
		c.fail("Animate", err)
		return obj
	}
	apply(obj, prop, keys, 0)
	return obj
}

// AnimateProperties calls Animate once per property. Properties are
// independent: a malformed one is reported and the rest still apply.
func (c *Composer) AnimateProperties(obj *Object, props map[string][]Keyframe) *Object {
	obj = c.target("AnimateProperties", obj)
	if obj == nil {
		return nil
	}
	for _, prop := range sortedKeys(props) {
		c.Animate(obj, prop, props[prop])
	}
	return obj
}

func sortedKeys(m map[string][]Keyframe) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// span writes a from/to pair of keyframes for the two-keyframe helpers.
func (c *Composer) span(op string, obj *Object, prop string, from, to Value, start, end int, easing string) *Object {
	obj = c.target(op, obj)
	if obj == nil {
		return nil
	}
	if end <= start {
		c.fail(op, fmt.Errorf("%w: start %d, end %d", ErrInvalidRange, start, end))
		return obj
	}
	keys := []Keyframe{
		{Frame: start, Value: from, Easing: easing},
		{Frame: end, Value: to, Easing: easing},
	}
	if err := validate(obj, prop, keys, 0); err != nil {
		c.fail(op, err)
		return obj
	}
	apply(obj, prop, keys, 0)
	return obj
}

// startPosition is where obj sits at frame: its animated position if the
// position is keyed, otherwise its live fields.
func startPosition(obj *Object, frame int) Point {
	if v, ok := obj.Sample("position", frame); ok {
		return v.Point()
	}
	p := Point{obj.X, obj.Y}
	if v, ok := obj.Sample("x", frame); ok {
		p.X = v.Float()
	}
	if v, ok := obj.Sample("y", frame); ok {
		p.Y = v.Float()
	}
	return p
}

// Move animates obj's position from one point to another.
func (c *Composer) Move(obj *Object, from, to Point, start, end int, easing string) *Object {
	return c.span("Move", obj, "position", Vec(from), Vec(to), start, end, easing)
}

// MoveBy animates obj's position by delta, starting from where it sits at
// the start frame.
func (c *Composer) MoveBy(obj *Object, delta Point, start, end int, easing string) *Object {
	obj = c.target("MoveBy", obj)
	if obj == nil {
		return nil
	}
	from := startPosition(obj, start)
	return c.span("MoveBy", obj, "position", Vec(from), Vec(from.Add(delta)), start, end, easing)
}

// Fade animates opacity between two levels.
func (c *Composer) Fade(obj *Object, from, to float64, start, end int, easing string) *Object {
	return c.span("Fade", obj, "opacity", Scalar(from), Scalar(to), start, end, easing)
}

// FadeIn animates opacity from 0 to 1.
func (c *Composer) FadeIn(obj *Object, start, end int, easing string) *Object {
	return c.span("FadeIn", obj, "opacity", Scalar(0), Scalar(1), start, end, easing)
}

// FadeOut animates opacity from 1 to 0.
func (c *Composer) FadeOut(obj *Object, start, end int, easing string) *Object {
	return c.span("FadeOut", obj, "opacity", Scalar(1), Scalar(0), start, end, easing)
}

// Scale animates the uniform scale of obj.
func (c *Composer) Scale(obj *Object, from, to float64, start, end int, easing string) *Object {
	return c.span("Scale", obj, "scale", Scalar(from), Scalar(to), start, end, easing)
}

// Rotate animates rotation, in radians.
func (c *Composer) Rotate(obj *Object, from, to float64, start, end int, easing string) *Object {
	return c.span("Rotate", obj, "rotation", Scalar(from), Scalar(to), start, end, easing)
}

// ColorTo animates a colour property such as "fill" or "stroke".
func (c *Composer) ColorTo(obj *Object, prop string, from, to Color, start, end int, easing string) *Object {
	return c.span("ColorTo", obj, prop, RGBA(from), RGBA(to), start, end, easing)
}

// Pulse scales obj up by amount and back, count times, each pulse lasting
// period frames.
func (c *Composer) Pulse(obj *Object, start, period, count int, amount float64) *Object {
	obj = c.target("Pulse", obj)
	if obj == nil {
		return nil
	}
	if period < 2 || count < 1 {
		c.fail("Pulse", fmt.Errorf("%w: period %d, count %d", ErrInvalidRange, period, count))
		return obj
	}
	keys := make([]Keyframe, 0, 2*count+1)
	for i := 0; i < count; i++ {
		base := start + i*period
		keys = append(keys,
			Keyframe{Frame: base, Value: Scalar(1), Easing: "easeOutQuad"},
			Keyframe{Frame: base + period/2, Value: Scalar(1 + amount), Easing: "easeInQuad"},
		)
	}
	keys = append(keys, Keyframe{Frame: start + count*period, Value: Scalar(1), Easing: "linear"})
	if err := validate(obj, "scale", keys, 0); err != nil {
		c.fail("Pulse", err)
		return obj
	}
	apply(obj, "scale", keys, 0)
	return obj
}

// TypeText reveals text on a text object one rune at a time, starting at
// frame start. The reveal is a FrameHook, so it replaces any hook obj had.
func (c *Composer) TypeText(obj *Object, text string, start, framesPerRune int) *Object {
	obj = c.target("TypeText", obj)
	if obj == nil {
		return nil
	}
	if obj.Type != TypeText {
		c.fail("TypeText", fmt.Errorf("%w %q on %s %q", ErrUnknownProperty, "text", obj.Type, obj.Name))
		return obj
	}
	if start < 0 {
		c.fail("TypeText", fmt.Errorf("%w: %d", ErrNegativeFrame, start))
		return obj
	}
	obj.Hook = &Typewriter{Text: text, Start: start, FramesPerRune: framesPerRune}
	return obj
}
