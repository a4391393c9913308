package kinetic

import "math"

// Interpolate blends a toward b by t. Dispatch is on the variant pair:
//
//   - scalar × scalar: a + (b-a)*t
//   - color × color: per-channel blend, rounded to nearest and clamped to [0, 255]
//   - point × point: component-wise scalar blend
//   - list × list: element-wise recursion; past the shorter list the longer
//     list's items are copied unchanged
//   - anything else: step, a for t < 0.5 and b otherwise
//
// t is not clamped, so overshooting curves extrapolate past a and b.
func Interpolate(a, b Value, t float64) Value {
	if a.kind == b.kind {
		switch a.kind {
		case KindScalar:
			return Scalar(lerp(a.scalar, b.scalar, t))
		case KindColor:
			return RGBA(lerpColor(a.color, b.color, t))
		case KindPoint:
			return Vec(Point{lerp(a.point.X, b.point.X, t), lerp(a.point.Y, b.point.Y, t)})
		case KindList:
			return Value{kind: KindList, list: lerpList(a.list, b.list, t)}
		}
	}
	if t < 0.5 {
		return a
	}
	return b
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: lerpChannel(a.A, b.A, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return clampChannel(math.Round(lerp(float64(a), float64(b), t)))
}

func clampChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func lerpList(a, b []Value, t float64) []Value {
	n := max(len(a), len(b))
	out := make([]Value, n)
	for i := range out {
		switch {
		case i >= len(a):
			out[i] = b[i]
		case i >= len(b):
			out[i] = a[i]
		default:
			out[i] = Interpolate(a[i], b[i], t)
		}
	}
	return out
}
