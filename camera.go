package kinetic

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// View maps scene coordinates to a screen viewport through a camera object.
// The camera's (X, Y) is the scene point shown at the viewport centre; its
// Zoom and Rotation scale and rotate the view. A nil Camera is the identity
// view centred on the scene origin.
type View struct {
	Camera   *Object
	Viewport Rect
}

// Matrix returns the view matrix:
//
//	Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
//
// where cx, cy is the viewport centre.
func (v View) Matrix() Matrix {
	cx := v.Viewport.X + v.Viewport.Width/2
	cy := v.Viewport.Y + v.Viewport.Height/2
	if v.Camera == nil {
		return Matrix{1, 0, 0, 1, cx, cy}
	}
	c := v.Camera

	sin, cos := math.Sincos(-c.Rotation)
	z := c.Zoom
	return Matrix{
		z * cos,
		z * sin,
		-z * sin,
		z * cos,
		cx + z*(-cos*c.X+sin*c.Y),
		cy + z*(-sin*c.X-cos*c.Y),
	}
}

// WorldToScreen converts scene coordinates to screen coordinates.
func (v View) WorldToScreen(p Point) Point {
	return v.Matrix().Apply(p)
}

// ScreenToWorld converts screen coordinates to scene coordinates.
func (v View) ScreenToWorld(p Point) Point {
	return v.Matrix().Invert().Apply(p)
}

// VisibleBounds returns the axis-aligned scene rectangle covered by the
// viewport.
func (v View) VisibleBounds() Rect {
	inv := v.Matrix().Invert()
	vp := v.Viewport
	corners := [4]Point{
		inv.Apply(Point{vp.X, vp.Y}),
		inv.Apply(Point{vp.X + vp.Width, vp.Y}),
		inv.Apply(Point{vp.X + vp.Width, vp.Y + vp.Height}),
		inv.Apply(Point{vp.X, vp.Y + vp.Height}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Visible reports whether o should be drawn: it is visible, not fully
// transparent, and its bounds overlap the view.
func (v View) Visible(o *Object) bool {
	if !o.Visible || o.Opacity <= 0 || o.Type == TypeCamera {
		return false
	}
	return v.VisibleBounds().Intersects(o.Bounds())
}

// ShakeOptions configures Shake.
type ShakeOptions struct {
	// Intensity is the largest offset in pixels. Default 8.
	Intensity float64
	// Interval is the number of frames between jolts. Default 2.
	Interval int
	// Decay scales the offset down linearly to zero over the shake.
	Decay bool
	// Seed makes a shake reproducible. Zero picks a random seed.
	Seed uint64
}

// Shake jolts obj around its position at frame start for duration frames,
// then returns it to that position. Any object can be shaken; cameras are
// the usual target.
func (c *Composer) Shake(obj *Object, start, duration int, opts ShakeOptions) *Object {
	obj = c.target("Shake", obj)
	if obj == nil {
		return nil
	}
	if duration <= 0 {
		c.fail("Shake", fmt.Errorf("%w: duration %d", ErrInvalidRange, duration))
		return obj
	}
	intensity := opts.Intensity
	if intensity == 0 {
		intensity = 8
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 2
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	jolt := Range{-1, 1}

	base := startPosition(obj, start)
	end := start + duration
	keys := []Keyframe{{Frame: start, Value: Vec(base), Easing: "linear"}}
	for f := start + interval; f < end; f += interval {
		amp := intensity
		if opts.Decay {
			amp *= 1 - float64(f-start)/float64(duration)
		}
		off := Point{jolt.sample(rng) * amp, jolt.sample(rng) * amp}
		keys = append(keys, Keyframe{Frame: f, Value: Vec(base.Add(off)), Easing: "linear"})
	}
	keys = append(keys, Keyframe{Frame: end, Value: Vec(base), Easing: "linear"})

	if err := validate(obj, "position", keys, 0); err != nil {
		c.fail("Shake", err)
		return obj
	}
	apply(obj, "position", keys, 0)
	return obj
}

// Zoom animates a camera's zoom factor.
func (c *Composer) Zoom(cam *Object, from, to float64, start, end int, easing string) *Object {
	return c.span("Zoom", cam, "zoom", Scalar(from), Scalar(to), start, end, easing)
}

// FocusOn pans cam from where it sits at frame start to the centre of
// target.
func (c *Composer) FocusOn(cam, target *Object, start, end int, easing string) *Object {
	cam = c.target("FocusOn", cam)
	if cam == nil {
		return nil
	}
	if target == nil {
		c.fail("FocusOn", fmt.Errorf("%w: focus target", ErrNilObject))
		return cam
	}
	from := startPosition(cam, start)
	return c.span("FocusOn", cam, "position", Vec(from), Vec(target.Center()), start, end, easing)
}
