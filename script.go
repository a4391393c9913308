package kinetic

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Script is a YAML authoring document: clock settings, the objects of a
// scene and the effects composed onto them.
//
//	fps: 30
//	duration: 4
//	objects:
//	  - {name: box, type: rect, props: {width: 40, height: 40, fill: "#e34"}}
//	effects:
//	  - {kind: move, target: box, from: [0, 0], to: [200, 0], start: 0, end: 30}
type Script struct {
	FPS      float64        `yaml:"fps"`
	Duration float64        `yaml:"duration"`
	Loop     bool           `yaml:"loop"`
	Markers  []Marker       `yaml:"markers"`
	Objects  []ScriptObject `yaml:"objects"`
	Effects  []Effect       `yaml:"effects"`

	// Diagnostics receives effects that fail to apply. Nil means stderr.
	Diagnostics DiagnosticFunc `yaml:"-"`
}

// ScriptObject declares one object and its initial property values.
type ScriptObject struct {
	Name  string         `yaml:"name"`
	Type  string         `yaml:"type"`
	Props map[string]any `yaml:"props"`
}

// ScriptKeyframe is a keyframe whose value is decoded against the kind of
// the property it is applied to.
type ScriptKeyframe struct {
	Frame  int    `yaml:"frame"`
	Value  any    `yaml:"value"`
	Easing string `yaml:"easing"`
}

// Effect is one composer call. Kind selects the call; the remaining fields
// are its arguments and are ignored by kinds that do not use them.
type Effect struct {
	Kind      string           `yaml:"kind"`
	Target    string           `yaml:"target"`
	Targets   []string         `yaml:"targets"`
	Property  string           `yaml:"property"`
	Keyframes []ScriptKeyframe `yaml:"keyframes"`
	From      any              `yaml:"from"`
	To        any              `yaml:"to"`
	By        Point            `yaml:"by"`
	Start     int              `yaml:"start"`
	End       int              `yaml:"end"`
	Duration  int              `yaml:"duration"`
	Easing    string           `yaml:"easing"`

	// path
	Points         []Point `yaml:"points"`
	Via            []Point `yaml:"via"`
	Focus          string  `yaml:"focus"`
	Orient         bool    `yaml:"orient"`
	RotationOffset float64 `yaml:"rotationOffset"`

	// group and wave
	Stagger int     `yaml:"stagger"`
	Reverse bool    `yaml:"reverse"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Loop    bool    `yaml:"loop"`
	Cycles  int     `yaml:"cycles"`

	// pulse and text
	Period        int     `yaml:"period"`
	Count         int     `yaml:"count"`
	Amount        float64 `yaml:"amount"`
	Text          string  `yaml:"text"`
	FramesPerRune int     `yaml:"framesPerRune"`

	// shake
	Intensity float64 `yaml:"intensity"`
	Interval  int     `yaml:"interval"`
	Decay     bool    `yaml:"decay"`
	Seed      uint64  `yaml:"seed"`

	// particles
	Particles *ParticleOptions `yaml:"particles"`
}

// UnmarshalYAML accepts [min, max], a single number, or {min, max}.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var v []float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		if len(v) != 2 {
			return fmt.Errorf("line %d: range wants 2 numbers, got %d", node.Line, len(v))
		}
		r.Min, r.Max = v[0], v[1]
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		r.Min, r.Max = v, v
	default:
		var v struct {
			Min float64 `yaml:"min"`
			Max float64 `yaml:"max"`
		}
		if err := node.Decode(&v); err != nil {
			return err
		}
		r.Min, r.Max = v.Min, v.Max
	}
	if r.Min > r.Max {
		return fmt.Errorf("line %d: %w: min %g > max %g", node.Line, ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// UnmarshalYAML accepts [x, y] or {x, y}.
func (p *Point) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v, err := decodePoint(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = v
	return nil
}

// UnmarshalYAML accepts a #rrggbb[aa] string or {r, g, b, a}.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v, err := decodeColor(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = v
	return nil
}

// LoadScript parses a YAML script. Unknown fields are errors so typos in
// effect arguments do not pass silently.
func LoadScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse script: empty document")
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

// Build creates the scene the script describes. Object declarations must
// be valid; an effect that fails is reported to Diagnostics and skipped, and
// the remaining effects still apply. The returned scene is evaluated at
// frame 0.
func (s *Script) Build() (*Scene, error) {
	scene := NewScene(s.FPS, s.Duration)
	if s.Diagnostics != nil {
		scene.SetDiagnostics(s.Diagnostics)
	}
	scene.clock.SetLooping(s.Loop)
	for _, m := range s.Markers {
		scene.clock.AddMarker(m.Frame, m.Label)
	}

	for i, decl := range s.Objects {
		o, err := decl.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		scene.Add(o)
	}

	c := NewComposer(scene)
	for i, e := range s.Effects {
		if err := e.apply(c); err != nil {
			report(scene.diag, fmt.Sprintf("effect %d (%s)", i, e.Kind), err)
		}
	}
	scene.clock.SetFrame(0)
	return scene, nil
}

func (d ScriptObject) build() (*Object, error) {
	t, ok := ParseObjectType(d.Type)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, d.Type)
	}
	o := NewObject(d.Name, t)
	names := make([]string, 0, len(d.Props))
	for name := range d.Props {
		names = append(names, name)
	}
	// Aliases first so explicit x, y, scaleX and scaleY win.
	sort.Slice(names, func(i, j int) bool {
		ai, aj := isAlias(t, names[i]), isAlias(t, names[j])
		if ai != aj {
			return ai
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		pd, err := o.lookup(name)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(pd.Kind, pd.Elem, d.Props[name])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.Name, name, err)
		}
		if err := o.Set(name, v); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func isAlias(t ObjectType, name string) bool {
	d, ok := schemaOf(t).props[name]
	return ok && d.Alias
}

// errEffect wraps a problem found while reading effect arguments.
var errEffect = errors.New("bad effect")

func (e Effect) object(c *Composer, name string) (*Object, error) {
	if name == "" {
		if sel := c.scene.Selected(); sel != nil {
			return sel, nil
		}
		return nil, fmt.Errorf("%w: no target", errEffect)
	}
	o, ok := c.scene.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: object %q", ErrNotFound, name)
	}
	return o, nil
}

func (e Effect) group(c *Composer) ([]*Object, error) {
	if len(e.Targets) == 0 {
		return nil, ErrEmptyGroup
	}
	objs := make([]*Object, len(e.Targets))
	for i, name := range e.Targets {
		o, err := e.object(c, name)
		if err != nil {
			return nil, err
		}
		objs[i] = o
	}
	return objs, nil
}

func (e Effect) keys(o *Object, prop string) ([]Keyframe, error) {
	d, err := o.lookup(prop)
	if err != nil {
		return nil, err
	}
	out := make([]Keyframe, len(e.Keyframes))
	for i, k := range e.Keyframes {
		v, err := decodeValue(d.Kind, d.Elem, k.Value)
		if err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
		out[i] = Keyframe{Frame: k.Frame, Value: v, Easing: k.Easing}
	}
	return out, nil
}

func (e Effect) scalar(raw any) (float64, error) {
	f, ok := toFloat(raw)
	if !ok {
		return 0, fmt.Errorf("%w: want number, got %T", ErrValueKind, raw)
	}
	return f, nil
}

// apply runs the effect. Composer calls report their own failures, so the
// error returned here covers argument decoding only.
func (e Effect) apply(c *Composer) error {
	switch e.Kind {
	case "animate":
		if len(e.Targets) > 0 {
			return e.applyGroup(c)
		}
		o, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		keys, err := e.keys(o, e.Property)
		if err != nil {
			return err
		}
		c.Animate(o, e.Property, keys)
	case "stagger", "group":
		return e.applyGroup(c)
	case "move":
		o, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		from, err := decodePoint(e.From)
		if err != nil {
			return fmt.Errorf("from: %w", err)
		}
		to, err := decodePoint(e.To)
		if err != nil {
			return fmt.Errorf("to: %w", err)
		}
		c.Move(o, from, to, e.Start, e.End, e.Easing)
	case "moveBy":
		o, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		c.MoveBy(o, e.By, e.Start, e.End, e.Easing)
	case "fade", "scale", "rotate", "zoom":
		return e.applyScalarSpan(c)
	case "fadeIn", "fadeOut":
		o, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		if e.Kind == "fadeIn" {
			c.FadeIn(o, e.Start, e.End, e.Easing)
		} else {
			c.FadeOut(o, e.Start, e.End, e.Easing)
		}
	case "color":
		o, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		prop := e.Property
		if prop == "" {
			prop = "fill"
		}
		from, err := decodeColor(e.From)
		if err != nil {
			return fmt.Errorf("from: %w", err)
		}
		to, err := decodeColor(e.To)
		if err != nil {
			return fmt.Errorf("to: %w", err)
		}
		c.ColorTo(o, prop, from, to, e.Start, e.End, e.Easing)
	case "path":
		o, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		points := e.Points
		if e.Focus != "" {
			dest, err := e.object(c, e.Focus)
			if err != nil {
				return err
			}
			points = c.PathBetween(o, dest, e.Via...)
		}
		c.FollowPath(o, points, e.Start, e.End, PathOptions{
			Easing:         e.Easing,
			OrientToPath:   e.Orient,
			RotationOffset: e.RotationOffset,
		})
	case "wave":
		objs, err := e.group(c)
		if err != nil {
			return err
		}
		c.Wave(objs, e.Property, WaveOptions{
			Start:    e.Start,
			Duration: e.Duration,
			Min:      e.Min,
			Max:      e.Max,
			Loop:     e.Loop,
			Cycles:   e.Cycles,
			Easing:   e.Easing,
		})
	case "pulse":
		o, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		c.Pulse(o, e.Start, e.Period, e.Count, e.Amount)
	case "typeText":
		o, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		c.TypeText(o, e.Text, e.Start, e.FramesPerRune)
	case "shake":
		o, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		c.Shake(o, e.Start, e.Duration, ShakeOptions{
			Intensity: e.Intensity,
			Interval:  e.Interval,
			Decay:     e.Decay,
			Seed:      e.Seed,
		})
	case "focus":
		cam, err := e.object(c, e.Target)
		if err != nil {
			return err
		}
		dest, err := e.object(c, e.Focus)
		if err != nil {
			return err
		}
		c.FocusOn(cam, dest, e.Start, e.End, e.Easing)
	case "particles":
		if e.Particles == nil {
			return fmt.Errorf("%w: particles block missing", errEffect)
		}
		c.Particles(*e.Particles)
	default:
		return fmt.Errorf("%w %q", ErrUnknownEffect, e.Kind)
	}
	return nil
}

func (e Effect) applyGroup(c *Composer) error {
	objs, err := e.group(c)
	if err != nil {
		return err
	}
	// Keyframe values decode against the first member; AnimateGroup
	// rejects members whose property kind differs.
	keys, err := e.keys(objs[0], e.Property)
	if err != nil {
		return err
	}
	c.AnimateGroup(objs, e.Property, keys, StaggerOptions{Offset: e.Stagger, Reverse: e.Reverse})
	return nil
}

func (e Effect) applyScalarSpan(c *Composer) error {
	o, err := e.object(c, e.Target)
	if err != nil {
		return err
	}
	from, err := e.scalar(e.From)
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}
	to, err := e.scalar(e.To)
	if err != nil {
		return fmt.Errorf("to: %w", err)
	}
	switch e.Kind {
	case "fade":
		c.Fade(o, from, to, e.Start, e.End, e.Easing)
	case "scale":
		c.Scale(o, from, to, e.Start, e.End, e.Easing)
	case "rotate":
		c.Rotate(o, from, to, e.Start, e.End, e.Easing)
	case "zoom":
		c.Zoom(o, from, to, e.Start, e.End, e.Easing)
	}
	return nil
}

