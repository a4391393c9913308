package kinetic

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// ParticleOptions controls how Particles spawns and animates a burst.
// Zero ranges take the defaults noted on each field.
type ParticleOptions struct {
	// Count is the number of particles to create.
	Count int `yaml:"count"`
	// Name prefixes particle names as "<Name>-<index>". Default "particle".
	Name string `yaml:"name"`
	// Origin is the emission point in scene coordinates.
	Origin Point `yaml:"origin"`
	// Start is the frame the first particle is emitted.
	Start int `yaml:"start"`
	// EmitRate is the number of particles emitted per frame. Zero or less
	// emits all particles at Start.
	EmitRate float64 `yaml:"emitRate"`
	// Lifetime is the range of lifetimes in frames. Default [20, 40].
	Lifetime Range `yaml:"lifetime"`
	// Distance is the range of travel distances in pixels. Default [30, 80].
	Distance Range `yaml:"distance"`
	// Angle is the range of emission angles in radians. Default full circle.
	Angle Range `yaml:"angle"`
	// Size is the range of particle radii. Default [2, 4].
	Size Range `yaml:"size"`
	// EndScale is the range of scale factors at death. Zero means no scale
	// animation.
	EndScale Range `yaml:"endScale"`
	// Spin is the range of rotation over the lifetime, in radians. Zero
	// means no rotation.
	Spin Range `yaml:"spin"`
	// StartColor is the fill at birth. Zero means white.
	StartColor Color `yaml:"startColor"`
	// EndColor is the fill at death, used when ColorFade is set.
	EndColor Color `yaml:"endColor"`
	// ColorFade animates fill from StartColor to EndColor.
	ColorFade bool `yaml:"colorFade"`
	// HueJitter shifts each particle's colours by up to ±HueJitter degrees.
	HueJitter float64 `yaml:"hueJitter"`
	// Easing applies to the position segment. Default "easeOutQuad".
	Easing string `yaml:"easing"`
	// Seed makes a burst reproducible. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

func (r Range) isZero() bool {
	return r.Min == 0 && r.Max == 0
}

func (r Range) or(def Range) Range {
	if r.isZero() {
		return def
	}
	return r
}

// sample returns a value in [Min, Max] drawn from rng.
func (r Range) sample(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// jitterHue rotates c's hue by shift degrees, keeping alpha.
func jitterHue(c Color, shift float64) Color {
	if shift == 0 {
		return c
	}
	h, s, v := c.toColorful().Hsv()
	h = math.Mod(h+shift, 360)
	if h < 0 {
		h += 360
	}
	return fromColorful(colorful.Hsv(h, s, v), c.A)
}

// emitFrame returns the frame particle i of a burst leaves the origin.
func (o ParticleOptions) emitFrame(i int) int {
	if o.EmitRate <= 0 {
		return o.Start
	}
	return o.Start + int(math.Floor(float64(i)/o.EmitRate))
}

// Particles creates opts.Count particle objects in the scene and keys each
// one from its emission frame to emission plus lifetime: position travels
// from Origin outwards and opacity fades from 1 to 0, with optional fill,
// scale and rotation keys. A particle emitted after frame 0 is held
// invisible until its emission frame.
func (c *Composer) Particles(opts ParticleOptions) []*Object {
	if c.scene == nil {
		c.fail("Particles", fmt.Errorf("%w: composer has no scene", ErrNilObject))
		return nil
	}
	if opts.Count <= 0 {
		c.fail("Particles", fmt.Errorf("%w: count %d", ErrEmptyGroup, opts.Count))
		return nil
	}
	if opts.Start < 0 {
		c.fail("Particles", fmt.Errorf("%w: %d", ErrNegativeFrame, opts.Start))
		return nil
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	name := opts.Name
	if name == "" {
		name = "particle"
	}
	easing := opts.Easing
	if easing == "" {
		easing = "easeOutQuad"
	}
	lifetime := opts.Lifetime.or(Range{20, 40})
	distance := opts.Distance.or(Range{30, 80})
	angle := opts.Angle.or(Range{0, 2 * math.Pi})
	size := opts.Size.or(Range{2, 4})
	startColor := opts.StartColor
	if startColor == (Color{}) {
		startColor = ColorWhite
	}

	out := make([]*Object, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		p := NewObject(fmt.Sprintf("%s-%d", name, i), TypeParticle)
		p.X, p.Y = opts.Origin.X, opts.Origin.Y
		p.Radius = size.sample(rng)

		emit := opts.emitFrame(i)
		life := max(int(math.Round(lifetime.sample(rng))), 1)
		death := emit + life

		a := angle.sample(rng)
		d := distance.sample(rng)
		dest := opts.Origin.Add(Point{math.Cos(a) * d, math.Sin(a) * d})

		shift := 0.0
		if opts.HueJitter != 0 {
			shift = (rng.Float64()*2 - 1) * opts.HueJitter
		}
		from := jitterHue(startColor, shift)
		p.Fill = from

		_ = p.setKeyframe("position", emit, Vec(opts.Origin), easing)
		_ = p.setKeyframe("position", death, Vec(dest), easing)
		if emit > 0 {
			_ = p.setKeyframe("opacity", emit-1, Scalar(0), "linear")
		}
		_ = p.setKeyframe("opacity", emit, Scalar(1), "linear")
		_ = p.setKeyframe("opacity", death, Scalar(0), "linear")
		if opts.ColorFade {
			_ = p.setKeyframe("fill", emit, RGBA(from), "linear")
			_ = p.setKeyframe("fill", death, RGBA(jitterHue(opts.EndColor, shift)), "linear")
		}
		if !opts.EndScale.isZero() {
			_ = p.setKeyframe("scale", emit, Scalar(1), "linear")
			_ = p.setKeyframe("scale", death, Scalar(opts.EndScale.sample(rng)), "linear")
		}
		if !opts.Spin.isZero() {
			_ = p.setKeyframe("rotation", emit, Scalar(0), "linear")
			_ = p.setKeyframe("rotation", death, Scalar(opts.Spin.sample(rng)), "linear")
		}
		out = append(out, c.scene.Add(p))
	}
	return out
}
