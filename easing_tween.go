package kinetic

import (
	"github.com/tanema/gween/ease"
)

// TweenCurve adapts a gween tween function to a normalized EaseFunc by
// evaluating it over a unit duration from 0 to 1. gween works in float32,
// so curves from this adapter carry float32 precision between the
// endpoints; the endpoints themselves are exact.
func TweenCurve(fn ease.TweenFunc) EaseFunc {
	if fn == nil {
		return Linear
	}
	return pinned(func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	})
}

// inBounce is the "in" curve of the bounce family.
var inBounce = TweenCurve(ease.InBounce)

// RegisterTween registers a gween tween function under name.
func RegisterTween(name string, fn ease.TweenFunc) {
	if fn == nil {
		return
	}
	RegisterEasing(name, TweenCurve(fn))
}

// registerTweenVariants adds the out-in family, which only gween provides:
// the "out" curve on the first half and the "in" curve on the second.
func registerTweenVariants() {
	variants := []struct {
		name string
		fn   ease.TweenFunc
	}{
		{"Quad", ease.OutInQuad},
		{"Cubic", ease.OutInCubic},
		{"Quart", ease.OutInQuart},
		{"Quint", ease.OutInQuint},
		{"Sine", ease.OutInSine},
		{"Expo", ease.OutInExpo},
		{"Circ", ease.OutInCirc},
		{"Elastic", ease.OutInElastic},
		{"Back", ease.OutInBack},
		{"Bounce", ease.OutInBounce},
	}
	for _, v := range variants {
		RegisterTween("easeOutIn"+v.name, v.fn)
	}
}
