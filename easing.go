package kinetic

import (
	"sort"

	"github.com/fogleman/ease"
)

// EaseFunc maps normalized time t in [0, 1] to normalized progress.
// Overshooting curves (back, elastic) may leave [0, 1] between the
// endpoints but always return exactly 0 at t = 0 and 1 at t = 1.
type EaseFunc func(t float64) float64

// Linear is the identity curve and the fallback for unknown names.
func Linear(t float64) float64 { return t }

// easings is the name → curve table. It is filled at init and by
// RegisterEasing; registration must not run concurrently with evaluation.
var easings = map[string]EaseFunc{}

// families lists the "in" curve of each standard family. The "out" and
// "in-out" variants are derived from it. Elastic uses Penner's 0.3 period
// rather than fogleman's 0.5 default, and bounce comes from gween, whose
// segments are Penner's 7.5625/2.75 parabolas.
var families = []struct {
	name string
	in   EaseFunc
}{
	{"Quad", ease.InQuad},
	{"Cubic", ease.InCubic},
	{"Quart", ease.InQuart},
	{"Quint", ease.InQuint},
	{"Sine", ease.InSine},
	{"Expo", ease.InExpo},
	{"Circ", ease.InCirc},
	{"Elastic", EaseFunc(ease.InElasticFunction(0.3))},
	{"Back", ease.InBack},
	{"Bounce", inBounce},
}

func init() {
	easings["linear"] = Linear
	for _, f := range families {
		in := pinned(f.in)
		easings["easeIn"+f.name] = in
		easings["easeOut"+f.name] = pinned(outOf(in))
		easings["easeInOut"+f.name] = pinned(inOutOf(in))
	}
	registerTweenVariants()
}

// Ease returns the curve registered under name. Unknown names (including
// the empty string) return Linear; lookup never fails.
func Ease(name string) EaseFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return Linear
}

// HasEasing reports whether name is registered.
func HasEasing(name string) bool {
	_, ok := easings[name]
	return ok
}

// RegisterEasing adds or replaces a named curve. The curve is wrapped so
// that it returns exactly 0 and 1 at the endpoints. Registering "linear"
// or an empty name is ignored.
func RegisterEasing(name string, fn EaseFunc) {
	if name == "" || name == "linear" || fn == nil {
		return
	}
	easings[name] = pinned(fn)
}

// EasingNames returns all registered curve names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// pinned forces the endpoint law f(0) == 0 and f(1) == 1.
func pinned(fn EaseFunc) EaseFunc {
	return func(t float64) float64 {
		switch t {
		case 0:
			return 0
		case 1:
			return 1
		}
		return fn(t)
	}
}

// outOf time-reverses an "in" curve.
func outOf(in EaseFunc) EaseFunc {
	return func(t float64) float64 {
		return 1 - in(1-t)
	}
}

// inOutOf runs in on the first half of the domain and the reversed curve
// on the second half, each scaled to half the range. Both halves meet at
// (0.5, 0.5).
func inOutOf(in EaseFunc) EaseFunc {
	return func(t float64) float64 {
		if t < 0.5 {
			return in(2*t) / 2
		}
		return 1 - in(2-2*t)/2
	}
}
