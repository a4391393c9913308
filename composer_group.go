package kinetic

import (
	"fmt"
	"slices"
)

// StaggerOptions offsets each member of a group in time.
type StaggerOptions struct {
	// Offset is the frame delay between consecutive members.
	Offset int
	// Reverse staggers from the last member to the first.
	Reverse bool
}

func (o StaggerOptions) order(objs []*Object) []*Object {
	if !o.Reverse {
		return objs
	}
	r := slices.Clone(objs)
	slices.Reverse(r)
	return r
}

func checkGroup(objs []*Object) error {
	if len(objs) == 0 {
		return ErrEmptyGroup
	}
	for i, o := range objs {
		if o == nil {
			return fmt.Errorf("%w at index %d", ErrNilObject, i)
		}
	}
	return nil
}

// AnimateGroup replays keys on every object, shifting member i of the
// (possibly reversed) group by i*Offset frames. The whole group is
// validated first, so a malformed member leaves every object unchanged.
func (c *Composer) AnimateGroup(objs []*Object, prop string, keys []Keyframe, opts StaggerOptions) []*Object {
	if err := checkGroup(objs); err != nil {
		c.fail("AnimateGroup", err)
		return objs
	}
	ordered := opts.order(objs)
	for i, o := range ordered {
		if err := validate(o, prop, keys, i*opts.Offset); err != nil {
			c.fail("AnimateGroup", err)
			return objs
		}
	}
	for i, o := range ordered {
		apply(o, prop, keys, i*opts.Offset)
	}
	return objs
}

// AnimateGroupProperties calls AnimateGroup once per property.
func (c *Composer) AnimateGroupProperties(objs []*Object, props map[string][]Keyframe, opts StaggerOptions) []*Object {
	if err := checkGroup(objs); err != nil {
		c.fail("AnimateGroupProperties", err)
		return objs
	}
	for _, prop := range sortedKeys(props) {
		c.AnimateGroup(objs, prop, props[prop], opts)
	}
	return objs
}

// StaggerEach calls fn for every member of the group with the member's
// position in the staggered order and its frame offset.
func (c *Composer) StaggerEach(objs []*Object, opts StaggerOptions, fn func(o *Object, index, offset int)) []*Object {
	if fn == nil {
		c.fail("StaggerEach", ErrNilCallback)
		return objs
	}
	if err := checkGroup(objs); err != nil {
		c.fail("StaggerEach", err)
		return objs
	}
	for i, o := range opts.order(objs) {
		fn(o, i, i*opts.Offset)
	}
	return objs
}

// WaveOptions configures Wave.
type WaveOptions struct {
	// Start is the first frame of the first member's oscillation.
	Start int
	// Duration is shared evenly between members: each gets
	// floor(Duration/len(objs)) frames per cycle.
	Duration int
	// Min and Max bound the oscillation.
	Min, Max float64
	// Loop repeats the oscillation. Cycles sets the number of repeats; a
	// Cycles below 1 repeats until the end of the scene's clock.
	Loop   bool
	Cycles int
	// Easing applies to every segment. Empty means "easeInOutSine".
	Easing string
}

// Wave oscillates a scalar property across a group, min to max and back,
// with member i starting i*framesPerObject frames after Start.
func (c *Composer) Wave(objs []*Object, prop string, opts WaveOptions) []*Object {
	if err := checkGroup(objs); err != nil {
		c.fail("Wave", err)
		return objs
	}
	fpo := opts.Duration / len(objs)
	if opts.Duration <= 0 || fpo < 2 {
		c.fail("Wave", fmt.Errorf("%w: duration %d for %d objects", ErrInvalidRange, opts.Duration, len(objs)))
		return objs
	}
	easing := opts.Easing
	if easing == "" {
		easing = "easeInOutSine"
	}
	half := max(fpo/2, 1)

	plan := make([][]Keyframe, len(objs))
	for i, o := range objs {
		delay := opts.Start + i*fpo
		cycles := c.waveCycles(opts, delay, fpo)
		keys := make([]Keyframe, 0, 2*cycles+1)
		for n := 0; n < cycles; n++ {
			base := delay + n*fpo
			keys = append(keys,
				Keyframe{Frame: base, Value: Scalar(opts.Min), Easing: easing},
				Keyframe{Frame: base + half, Value: Scalar(opts.Max), Easing: easing},
			)
		}
		keys = append(keys, Keyframe{Frame: delay + cycles*fpo, Value: Scalar(opts.Min), Easing: easing})
		if err := validate(o, prop, keys, 0); err != nil {
			c.fail("Wave", err)
			return objs
		}
		plan[i] = keys
	}
	for i, o := range objs {
		apply(o, prop, plan[i], 0)
	}
	return objs
}

func (c *Composer) waveCycles(opts WaveOptions, delay, fpo int) int {
	switch {
	case !opts.Loop:
		return 1
	case opts.Cycles > 0:
		return opts.Cycles
	case c.scene == nil:
		return 1
	}
	last := c.scene.clock.TotalFrames() - 1
	return max((last-delay)/fpo, 1)
}
