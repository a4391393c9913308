package kinetic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// MarshalJSON encodes a value by kind: scalars as numbers, colours as
// {r,g,b,a}, points as {x,y}, lists as arrays and opaque payloads as
// themselves. Non-finite scalars encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		if math.IsNaN(v.scalar) || math.IsInf(v.scalar, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.scalar)
	case KindColor:
		return json.Marshal(v.color)
	case KindPoint:
		return json.Marshal(v.point)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.opaque)
	}
}

// UnmarshalJSON accepts a #rrggbb[aa] string or an {r,g,b,a} object. A
// missing alpha channel means opaque.
func (c *Color) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := decodeValue(KindColor, KindOpaque, raw)
	if err != nil {
		return err
	}
	*c = v.color
	return nil
}

// decodeValue converts a generic decoded tree, as produced by
// encoding/json or yaml.v3 into an any, to a Value of the given kind.
// elem is the item kind of lists.
func decodeValue(kind, elem Kind, raw any) (Value, error) {
	switch kind {
	case KindScalar:
		if raw == nil {
			return Scalar(math.NaN()), nil
		}
		f, ok := toFloat(raw)
		if !ok {
			return Value{}, fmt.Errorf("%w: want %s, got %T", ErrValueKind, kind, raw)
		}
		return Scalar(f), nil
	case KindColor:
		c, err := decodeColor(raw)
		if err != nil {
			return Value{}, err
		}
		return RGBA(c), nil
	case KindPoint:
		p, err := decodePoint(raw)
		if err != nil {
			return Value{}, err
		}
		return Vec(p), nil
	case KindList:
		items, ok := raw.([]any)
		if !ok {
			return Value{}, fmt.Errorf("%w: want %s, got %T", ErrValueKind, kind, raw)
		}
		out := make([]Value, len(items))
		for i, item := range items {
			v, err := decodeValue(elem, KindOpaque, item)
			if err != nil {
				return Value{}, fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = v
		}
		return Value{kind: KindList, list: out}, nil
	default:
		return Opaque(raw), nil
	}
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func channel(raw any, def uint8) (uint8, error) {
	if raw == nil {
		return def, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, fmt.Errorf("%w: colour channel %T", ErrValueKind, raw)
	}
	return clampChannel(math.Round(f)), nil
}

func decodeColor(raw any) (Color, error) {
	switch c := raw.(type) {
	case string:
		return ParseColor(c)
	case map[string]any:
		var out Color
		var err error
		if out.R, err = channel(c["r"], 0); err != nil {
			return Color{}, err
		}
		if out.G, err = channel(c["g"], 0); err != nil {
			return Color{}, err
		}
		if out.B, err = channel(c["b"], 0); err != nil {
			return Color{}, err
		}
		if out.A, err = channel(c["a"], 255); err != nil {
			return Color{}, err
		}
		return out, nil
	}
	return Color{}, fmt.Errorf("%w: want %s, got %T", ErrValueKind, KindColor, raw)
}

func decodePoint(raw any) (Point, error) {
	switch p := raw.(type) {
	case map[string]any:
		x, okX := toFloat(p["x"])
		y, okY := toFloat(p["y"])
		if okX && okY {
			return Point{x, y}, nil
		}
	case []any:
		if len(p) == 2 {
			x, okX := toFloat(p[0])
			y, okY := toFloat(p[1])
			if okX && okY {
				return Point{x, y}, nil
			}
		}
	}
	return Point{}, fmt.Errorf("%w: want %s, got %v", ErrValueKind, KindPoint, raw)
}

// MarshalJSON writes the flat object layout:
//
//	{"type": ..., "id": ..., "name": ..., <property>: <value>, ...,
//	 "keyframes": {<property>: [{"frame", "value", "easing"}, ...]}}
//
// Alias properties are not written as flat values. UserData and Hook are
// not persisted.
func (o *Object) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"type": o.Type.String(),
		"id":   o.ID,
		"name": o.Name,
	}
	sc := schemaOf(o.Type)
	for _, name := range sc.names {
		d := sc.props[name]
		if d.Alias {
			continue
		}
		out[name] = d.get(o)
	}
	keys := make(map[string][]Keyframe, len(o.timelines))
	for prop, tl := range o.timelines {
		keys[prop] = tl.keys
	}
	out["keyframes"] = keys
	return json.Marshal(out)
}

type keyframeJSON struct {
	Frame  int    `json:"frame"`
	Value  any    `json:"value"`
	Easing string `json:"easing"`
}

// UnmarshalJSON restores an object written by MarshalJSON. The type field
// is required. A stored id is kept, and later objects are numbered after
// it. Unknown flat fields are reported to DefaultDiagnostics and skipped.
func (o *Object) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var typeName string
	if err := json.Unmarshal(fields["type"], &typeName); err != nil {
		return fmt.Errorf("object type: %w", err)
	}
	t, ok := ParseObjectType(typeName)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownType, typeName)
	}
	var name string
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &name); err != nil {
			return fmt.Errorf("object name: %w", err)
		}
	}
	*o = *NewObject(name, t)
	if raw, ok := fields["id"]; ok {
		var id uint32
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("object id: %w", err)
		}
		o.ID = id
		objectIDCounter = max(objectIDCounter, id)
	}

	sc := schemaOf(t)
	for key, raw := range fields {
		switch key {
		case "type", "name", "id", "keyframes":
			continue
		}
		d, ok := sc.props[key]
		if !ok {
			report(nil, "UnmarshalJSON", fmt.Errorf("%w %q on %s %q", ErrUnknownProperty, key, t, name))
			continue
		}
		v, err := decodeRaw(d, raw)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", name, key, err)
		}
		if d.accepts(v) {
			d.set(o, v)
		}
	}

	if raw, ok := fields["keyframes"]; ok {
		var tracks map[string][]keyframeJSON
		if err := json.Unmarshal(raw, &tracks); err != nil {
			return fmt.Errorf("%s keyframes: %w", name, err)
		}
		for prop, keys := range tracks {
			d, err := o.lookup(prop)
			if err != nil {
				return err
			}
			for _, k := range keys {
				v, err := decodeValue(d.Kind, d.Elem, k.Value)
				if err != nil {
					return fmt.Errorf("%s.%s at %d: %w", name, prop, k.Frame, err)
				}
				if err := o.setKeyframe(prop, k.Frame, v, k.Easing); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func decodeRaw(d *propertyDesc, raw json.RawMessage) (Value, error) {
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return Value{}, err
	}
	return decodeValue(d.Kind, d.Elem, tree)
}

// sceneJSON is the persisted project layout.
type sceneJSON struct {
	FPS          float64   `json:"fps"`
	Duration     float64   `json:"duration"`
	CurrentFrame int       `json:"currentFrame"`
	Looping      bool      `json:"looping"`
	Markers      []Marker  `json:"markers,omitempty"`
	Objects      []*Object `json:"objects"`
}

// SaveScene writes the scene's clock state and objects as indented JSON.
func SaveScene(w io.Writer, s *Scene) error {
	doc := sceneJSON{
		FPS:          s.clock.FPS(),
		Duration:     s.clock.Duration(),
		CurrentFrame: s.clock.CurrentFrame(),
		Looping:      s.clock.Looping(),
		Markers:      s.clock.Markers(),
		Objects:      s.objects,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}

// LoadScene reads a scene written by SaveScene and evaluates it at the
// saved current frame, so live property values match those at save time.
func LoadScene(r io.Reader) (*Scene, error) {
	var doc sceneJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	s := NewScene(doc.FPS, doc.Duration)
	s.clock.SetLooping(doc.Looping)
	for _, m := range doc.Markers {
		s.clock.AddMarker(m.Frame, m.Label)
	}
	for _, o := range doc.Objects {
		if o == nil {
			continue
		}
		s.Add(o)
	}
	frame := min(max(doc.CurrentFrame, 0), s.clock.TotalFrames()-1)
	s.clock.SetFrame(frame)
	return s, nil
}

// MarshalScene is SaveScene into a byte slice.
func MarshalScene(s *Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := SaveScene(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
