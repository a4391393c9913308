package kinetic

import (
	"fmt"
	"image/color"
	"math"
	"reflect"

	"github.com/lucasb-eyer/go-colorful"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindOpaque Kind = iota // unrecognized payload; interpolates as a step
	KindScalar             // float64
	KindColor              // 4 channels, 0-255
	KindPoint              // {X, Y}
	KindList               // ordered sequence of Values
)

var kindNames = [...]string{
	KindOpaque: "opaque",
	KindScalar: "scalar",
	KindColor:  "color",
	KindPoint:  "point",
	KindList:   "list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Color is an RGBA color with 8-bit integer channels. Not premultiplied.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Common colors.
var (
	ColorBlack       = Color{0, 0, 0, 255}
	ColorWhite       = Color{255, 255, 255, 255}
	ColorTransparent = Color{}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA returns the color as an image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa. The alpha suffix is not
// understood by go-colorful and is handled here.
func ParseColor(s string) (Color, error) {
	alpha := uint8(255)
	if len(s) == 9 && s[0] == '#' {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = a
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b, alpha}, nil
}

// fromColorful converts a go-colorful color, keeping the given alpha.
func fromColorful(c colorful.Color, alpha uint8) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b, alpha}
}

// toColorful converts to go-colorful, dropping alpha.
func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Value is a keyframe value: one of scalar, color, point, list or opaque.
// The zero Value is an opaque nil.
type Value struct {
	kind   Kind
	scalar float64
	color  Color
	point  Point
	list   []Value
	opaque any
}

// Scalar creates a scalar value.
func Scalar(f float64) Value {
	return Value{kind: KindScalar, scalar: f}
}

// RGBA creates a color value.
func RGBA(c Color) Value {
	return Value{kind: KindColor, color: c}
}

// Vec creates a point value.
func Vec(p Point) Value {
	return Value{kind: KindPoint, point: p}
}

// List creates a list value. The slice is copied.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// Points creates a list of point values.
func Points(pts []Point) Value {
	items := make([]Value, len(pts))
	for i, p := range pts {
		items[i] = Vec(p)
	}
	return Value{kind: KindList, list: items}
}

// Opaque wraps any payload. Opaque values are never interpolated.
func Opaque(v any) Value {
	return Value{kind: KindOpaque, opaque: v}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Float returns the scalar payload, or 0 for other kinds.
func (v Value) Float() float64 { return v.scalar }

// Color returns the color payload, or the zero Color for other kinds.
func (v Value) Color() Color { return v.color }

// Point returns the point payload, or the zero Point for other kinds.
func (v Value) Point() Point { return v.point }

// Len returns the number of list items, or 0 for other kinds.
func (v Value) Len() int { return len(v.list) }

// Index returns list item i.
func (v Value) Index(i int) Value { return v.list[i] }

// Items returns a copy of the list items.
func (v Value) Items() []Value { return append([]Value(nil), v.list...) }

// Any returns the opaque payload, or nil for other kinds.
func (v Value) Any() any { return v.opaque }

// Equal reports whether v and w hold the same variant and payload.
// Opaque payloads are compared with reflect.DeepEqual.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == w.scalar || (math.IsNaN(v.scalar) && math.IsNaN(w.scalar))
	case KindColor:
		return v.color == w.color
	case KindPoint:
		return v.point == w.point
	case KindList:
		if len(v.list) != len(w.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(w.list[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(v.opaque, w.opaque)
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return fmt.Sprintf("%g", v.scalar)
	case KindColor:
		return v.color.Hex()
	case KindPoint:
		return fmt.Sprintf("(%g, %g)", v.point.X, v.point.Y)
	case KindList:
		return fmt.Sprintf("%v", v.list)
	default:
		return fmt.Sprintf("%v", v.opaque)
	}
}
