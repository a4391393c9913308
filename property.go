package kinetic

import (
	"fmt"
	"sort"
)

// PropertyInfo describes one animatable property of an ObjectType.
type PropertyInfo struct {
	Name string
	Kind Kind
	// Elem is the item kind of list properties.
	Elem Kind
	// Alias marks composite views over other properties (position over x/y,
	// scale over scaleX/scaleY). Aliases are animatable but not persisted as
	// flat values.
	Alias bool
}

// propertyDesc is a typed accessor for one property.
type propertyDesc struct {
	PropertyInfo
	get func(o *Object) Value
	set func(o *Object, v Value)
	// payload, when set, restricts the Go type of opaque values.
	payload func(x any) bool
}

// accepts reports whether v can be assigned through this descriptor.
func (d *propertyDesc) accepts(v Value) bool {
	if v.kind != d.Kind {
		return false
	}
	if d.payload != nil && !d.payload(v.opaque) {
		return false
	}
	if d.Kind == KindList {
		for _, item := range v.list {
			if item.kind != d.Elem {
				return false
			}
		}
	}
	return true
}

// schema is the descriptor table of one ObjectType, built once at init.
type schema struct {
	props map[string]*propertyDesc
	names []string // sorted
}

var schemas [len(objectTypeNames)]*schema

func scalarProp(name string, field func(o *Object) *float64) *propertyDesc {
	return &propertyDesc{
		PropertyInfo: PropertyInfo{Name: name, Kind: KindScalar},
		get:          func(o *Object) Value { return Scalar(*field(o)) },
		set:          func(o *Object, v Value) { *field(o) = v.scalar },
	}
}

func colorProp(name string, field func(o *Object) *Color) *propertyDesc {
	return &propertyDesc{
		PropertyInfo: PropertyInfo{Name: name, Kind: KindColor},
		get:          func(o *Object) Value { return RGBA(*field(o)) },
		set:          func(o *Object, v Value) { *field(o) = v.color },
	}
}

func stringProp(name string, field func(o *Object) *string) *propertyDesc {
	return &propertyDesc{
		PropertyInfo: PropertyInfo{Name: name, Kind: KindOpaque},
		get:          func(o *Object) Value { return Opaque(*field(o)) },
		set:          func(o *Object, v Value) { *field(o) = v.opaque.(string) },
		payload:      isString,
	}
}

func isString(x any) bool { _, ok := x.(string); return ok }

func isBool(x any) bool { _, ok := x.(bool); return ok }

func commonProps() []*propertyDesc {
	return []*propertyDesc{
		scalarProp("x", func(o *Object) *float64 { return &o.X }),
		scalarProp("y", func(o *Object) *float64 { return &o.Y }),
		{
			PropertyInfo: PropertyInfo{Name: "position", Kind: KindPoint, Alias: true},
			get:          func(o *Object) Value { return Vec(Point{o.X, o.Y}) },
			set:          func(o *Object, v Value) { o.X, o.Y = v.point.X, v.point.Y },
		},
		scalarProp("rotation", func(o *Object) *float64 { return &o.Rotation }),
		scalarProp("scaleX", func(o *Object) *float64 { return &o.ScaleX }),
		scalarProp("scaleY", func(o *Object) *float64 { return &o.ScaleY }),
		{
			PropertyInfo: PropertyInfo{Name: "scale", Kind: KindScalar, Alias: true},
			get:          func(o *Object) Value { return Scalar(o.ScaleX) },
			set:          func(o *Object, v Value) { o.ScaleX, o.ScaleY = v.scalar, v.scalar },
		},
		scalarProp("opacity", func(o *Object) *float64 { return &o.Opacity }),
		{
			PropertyInfo: PropertyInfo{Name: "visible", Kind: KindOpaque},
			get:          func(o *Object) Value { return Opaque(o.Visible) },
			set:          func(o *Object, v Value) { o.Visible = v.opaque.(bool) },
			payload:      isBool,
		},
	}
}

func propWidth() *propertyDesc {
	return scalarProp("width", func(o *Object) *float64 { return &o.Width })
}

func propHeight() *propertyDesc {
	return scalarProp("height", func(o *Object) *float64 { return &o.Height })
}

func propRadius() *propertyDesc {
	return scalarProp("radius", func(o *Object) *float64 { return &o.Radius })
}

func propStrokeWidth() *propertyDesc {
	return scalarProp("strokeWidth", func(o *Object) *float64 { return &o.StrokeWidth })
}

func propFill() *propertyDesc {
	return colorProp("fill", func(o *Object) *Color { return &o.Fill })
}

func propStroke() *propertyDesc {
	return colorProp("stroke", func(o *Object) *Color { return &o.Stroke })
}

// propPoints keeps only point items when assigning; other kinds are
// rejected earlier by accepts.
func propPoints() *propertyDesc {
	return &propertyDesc{
		PropertyInfo: PropertyInfo{Name: "points", Kind: KindList, Elem: KindPoint},
		get:          func(o *Object) Value { return Points(o.Points) },
		set: func(o *Object, v Value) {
			pts := make([]Point, 0, len(v.list))
			for _, item := range v.list {
				if item.kind == KindPoint {
					pts = append(pts, item.point)
				}
			}
			o.Points = pts
		},
	}
}

func init() {
	byType := map[ObjectType][]*propertyDesc{
		TypeRect:     {propWidth(), propHeight(), propFill(), propStroke(), propStrokeWidth()},
		TypeEllipse:  {propRadius(), propFill(), propStroke(), propStrokeWidth()},
		TypeLine:     {propPoints(), propStroke(), propStrokeWidth()},
		TypePath:     {propPoints(), propFill(), propStroke(), propStrokeWidth()},
		TypeText:     {stringProp("text", func(o *Object) *string { return &o.Text }), scalarProp("fontSize", func(o *Object) *float64 { return &o.FontSize }), propFill()},
		TypeImage:    {propWidth(), propHeight(), stringProp("source", func(o *Object) *string { return &o.Source })},
		TypeCamera:   {scalarProp("zoom", func(o *Object) *float64 { return &o.Zoom })},
		TypeParticle: {propRadius(), propFill()},
	}
	for t := range objectTypeNames {
		sc := &schema{props: map[string]*propertyDesc{}}
		for _, d := range append(commonProps(), byType[ObjectType(t)]...) {
			sc.props[d.Name] = d
			sc.names = append(sc.names, d.Name)
		}
		sort.Strings(sc.names)
		schemas[t] = sc
	}
}

// schemaOf returns the descriptor table of t. Out-of-range types share the
// rect table so that a corrupted Type never panics.
func schemaOf(t ObjectType) *schema {
	if int(t) < len(schemas) {
		return schemas[t]
	}
	return schemas[TypeRect]
}

// Properties lists the animatable properties of an object type, sorted by
// name.
func Properties(t ObjectType) []PropertyInfo {
	sc := schemaOf(t)
	out := make([]PropertyInfo, len(sc.names))
	for i, name := range sc.names {
		out[i] = sc.props[name].PropertyInfo
	}
	return out
}

// lookup validates a property name and value for o.
func (o *Object) lookup(name string) (*propertyDesc, error) {
	d, ok := schemaOf(o.Type).props[name]
	if !ok {
		return nil, fmt.Errorf("%w %q on %s %q", ErrUnknownProperty, name, o.Type, o.Name)
	}
	return d, nil
}

func (o *Object) check(name string, v Value) (*propertyDesc, error) {
	d, err := o.lookup(name)
	if err != nil {
		return nil, err
	}
	if !d.accepts(v) {
		if v.kind == KindOpaque && d.Kind == KindOpaque {
			return nil, fmt.Errorf("%w: %s.%s rejects %T", ErrValueKind, o.Name, name, v.opaque)
		}
		return nil, fmt.Errorf("%w: %s.%s wants %s, got %s", ErrValueKind, o.Name, name, d.Kind, v.kind)
	}
	return d, nil
}

// HasProperty reports whether name is a property of the object's type.
func (o *Object) HasProperty(name string) bool {
	_, ok := schemaOf(o.Type).props[name]
	return ok
}

// Get reads the live value of a property.
func (o *Object) Get(name string) (Value, bool) {
	d, ok := schemaOf(o.Type).props[name]
	if !ok {
		return Value{}, false
	}
	return d.get(o), true
}

// Set assigns a live property value directly. Animated properties are
// overwritten again on the next evaluation.
func (o *Object) Set(name string, v Value) error {
	d, err := o.check(name, v)
	if err != nil {
		return err
	}
	d.set(o, v)
	return nil
}
