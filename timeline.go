package kinetic

import (
	"slices"
	"sort"
)

// Keyframe asserts that a property holds Value at Frame. Easing names the
// curve used for the transition from this keyframe to the next one.
type Keyframe struct {
	Frame  int    `json:"frame" yaml:"frame"`
	Value  Value  `json:"value" yaml:"-"`
	Easing string `json:"easing" yaml:"easing,omitempty"`
}

// Timeline is the keyframe sequence of one property of one object. It is
// kept sorted ascending by frame with at most one keyframe per frame.
type Timeline struct {
	keys []Keyframe
}

// search returns the index of the first keyframe with Frame >= frame.
func (tl *Timeline) search(frame int) int {
	return sort.Search(len(tl.keys), func(i int) bool {
		return tl.keys[i].Frame >= frame
	})
}

// Upsert inserts a keyframe, or overwrites value and easing in place when a
// keyframe already exists at frame. Insertion keeps the order, so the
// sequence never needs re-sorting.
func (tl *Timeline) Upsert(frame int, value Value, easing string) {
	i := tl.search(frame)
	if i < len(tl.keys) && tl.keys[i].Frame == frame {
		tl.keys[i].Value = value
		tl.keys[i].Easing = easing
		return
	}
	tl.keys = slices.Insert(tl.keys, i, Keyframe{Frame: frame, Value: value, Easing: easing})
}

// Remove deletes the keyframe at exactly frame and reports whether one was
// there.
func (tl *Timeline) Remove(frame int) bool {
	i := tl.search(frame)
	if i == len(tl.keys) || tl.keys[i].Frame != frame {
		return false
	}
	tl.keys = slices.Delete(tl.keys, i, i+1)
	return true
}

// Len returns the number of keyframes.
func (tl *Timeline) Len() int { return len(tl.keys) }

// Keyframes returns a copy of the keyframes in frame order.
func (tl *Timeline) Keyframes() []Keyframe {
	return slices.Clone(tl.keys)
}

// Frames returns the keyframe frames in ascending order.
func (tl *Timeline) Frames() []int {
	frames := make([]int, len(tl.keys))
	for i, k := range tl.keys {
		frames[i] = k.Frame
	}
	return frames
}

// At returns the keyframe at exactly frame.
func (tl *Timeline) At(frame int) (Keyframe, bool) {
	i := tl.search(frame)
	if i < len(tl.keys) && tl.keys[i].Frame == frame {
		return tl.keys[i], true
	}
	return Keyframe{}, false
}

// Bounds returns the first and last keyframe frames. Both are 0 for an
// empty timeline.
func (tl *Timeline) Bounds() (first, last int) {
	if len(tl.keys) == 0 {
		return 0, 0
	}
	return tl.keys[0].Frame, tl.keys[len(tl.keys)-1].Frame
}

// Evaluate samples the timeline at frame. Before the first keyframe the
// first value holds; at or after the last keyframe the last value holds.
// Between two keyframes the earlier one's easing shapes the blend.
//
// Evaluate panics on an empty timeline. Objects prune empty timelines, so
// reaching that state is a programming error.
func (tl *Timeline) Evaluate(frame int) Value {
	if len(tl.keys) == 0 {
		panic("kinetic: Evaluate on empty timeline")
	}
	// next is the first keyframe strictly after frame.
	next := sort.Search(len(tl.keys), func(i int) bool {
		return tl.keys[i].Frame > frame
	})
	if next == 0 {
		return tl.keys[0].Value
	}
	if next == len(tl.keys) {
		return tl.keys[len(tl.keys)-1].Value
	}
	prev := tl.keys[next-1]
	if prev.Frame == frame {
		return prev.Value
	}
	nk := tl.keys[next]
	t := float64(frame-prev.Frame) / float64(nk.Frame-prev.Frame)
	return Interpolate(prev.Value, nk.Value, Ease(prev.Easing)(t))
}
