package kinetic

import "math"

// Point is a 2D position used for object positions, path vertices and
// point-valued keyframes.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Intersects reports whether r and s overlap. Touching edges count.
func (r Rect) Intersects(s Rect) bool {
	return r.X <= s.X+s.Width && s.X <= r.X+r.Width &&
		r.Y <= s.Y+s.Height && s.Y <= r.Y+r.Height
}

// Range is a general-purpose min/max range.
// Used by the particle composer and camera shake for per-item variance.
type Range struct {
	Min, Max float64
}

// ObjectType selects the property table of an Object.
type ObjectType uint8

const (
	TypeRect     ObjectType = iota // axis-aligned box with fill and stroke
	TypeEllipse                    // circle/ellipse described by a radius
	TypeLine                       // open polyline through Points
	TypePath                       // closed or open path through Points, fillable
	TypeText                       // text string with font size
	TypeImage                      // externally loaded bitmap, sized by width/height
	TypeCamera                     // viewport camera with zoom
	TypeParticle                   // small emitted dot, created by the particle composer
)

var objectTypeNames = [...]string{
	TypeRect:     "rect",
	TypeEllipse:  "ellipse",
	TypeLine:     "line",
	TypePath:     "path",
	TypeText:     "text",
	TypeImage:    "image",
	TypeCamera:   "camera",
	TypeParticle: "particle",
}

// String returns the persisted name of the type.
func (t ObjectType) String() string {
	if int(t) < len(objectTypeNames) {
		return objectTypeNames[t]
	}
	return "unknown"
}

// ParseObjectType maps a persisted type name back to its ObjectType.
// "circle" is accepted as an alias for "ellipse".
func ParseObjectType(name string) (ObjectType, bool) {
	if name == "circle" {
		return TypeEllipse, true
	}
	for i, n := range objectTypeNames {
		if n == name {
			return ObjectType(i), true
		}
	}
	return 0, false
}
