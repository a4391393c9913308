package kinetic

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"
)

func TestParticlesBasic(t *testing.T) {
	s, _ := newTestScene(30, 4)
	c := NewComposer(s)
	ps := c.Particles(ParticleOptions{
		Count:    5,
		Name:     "spark",
		Origin:   Point{10, 20},
		Start:    3,
		Lifetime: Range{10, 10},
		Distance: Range{50, 50},
		Angle:    Range{0, 0.0001},
		Seed:     1,
	})
	if len(ps) != 5 || len(s.Objects()) != 5 {
		t.Fatalf("created %d particles, scene has %d objects", len(ps), len(s.Objects()))
	}
	for i, p := range ps {
		if p.Name != fmt.Sprintf("spark-%d", i) || p.Type != TypeParticle {
			t.Errorf("particle %d = %q %v", i, p.Name, p.Type)
		}
		pos := p.Keyframes("position")
		if f := frames(pos); !sameFrames(f, []int{3, 13}) {
			t.Errorf("position frames = %v, want [3 13]", f)
		}
		if pos[0].Value.Point() != (Point{10, 20}) {
			t.Errorf("start = %v, want origin", pos[0].Value)
		}
		end := pos[1].Value.Point()
		if math.Abs(end.Dist(Point{10, 20})-50) > 1e-6 {
			t.Errorf("travelled %v, want 50", end.Dist(Point{10, 20}))
		}
		if f := frames(p.Keyframes("opacity")); !sameFrames(f, []int{2, 3, 13}) {
			t.Errorf("opacity frames = %v, want [2 3 13]", f)
		}
		if p.IsAnimated("fill") || p.IsAnimated("scale") || p.IsAnimated("rotation") {
			t.Errorf("unexpected tracks %v", p.AnimatedProperties())
		}
	}

	s.Clock().SetFrame(0)
	if ps[0].Opacity != 0 {
		t.Errorf("opacity before emission = %v, want 0", ps[0].Opacity)
	}
	s.Clock().SetFrame(3)
	if ps[0].Opacity != 1 {
		t.Errorf("opacity at emission = %v, want 1", ps[0].Opacity)
	}
}

func TestParticlesEmitRate(t *testing.T) {
	s, _ := newTestScene(30, 4)
	ps := NewComposer(s).Particles(ParticleOptions{Count: 4, EmitRate: 0.5, Lifetime: Range{5, 5}, Seed: 3})
	for i, p := range ps {
		first, _ := p.Timeline("position").Bounds()
		if first != 2*i {
			t.Errorf("particle %d emitted at %d, want %d", i, first, 2*i)
		}
	}
	if got := frames(ps[0].Keyframes("opacity")); !sameFrames(got, []int{0, 5}) {
		t.Errorf("first particle opacity frames = %v, want [0 5]", got)
	}
}

func TestParticlesDeterministic(t *testing.T) {
	opts := ParticleOptions{
		Count:      20,
		EndScale:   Range{0.1, 0.5},
		Spin:       Range{-1, 1},
		ColorFade:  true,
		StartColor: Color{255, 0, 0, 255},
		EndColor:   Color{0, 0, 255, 255},
		HueJitter:  30,
		Seed:       99,
	}
	run := func() []*Object {
		s, _ := newTestScene(30, 4)
		return NewComposer(s).Particles(opts)
	}
	a, b := run(), run()
	for i := range a {
		if a[i].Radius != b[i].Radius || a[i].Fill != b[i].Fill {
			t.Fatalf("particle %d differs: %v/%v vs %v/%v", i, a[i].Radius, a[i].Fill, b[i].Radius, b[i].Fill)
		}
		for _, prop := range []string{"position", "fill", "scale", "rotation"} {
			ka, kb := a[i].Keyframes(prop), b[i].Keyframes(prop)
			if len(ka) != 2 || len(kb) != 2 {
				t.Fatalf("particle %d %s keys = %d, %d", i, prop, len(ka), len(kb))
			}
			for j := range ka {
				if ka[j].Frame != kb[j].Frame || !ka[j].Value.Equal(kb[j].Value) {
					t.Errorf("particle %d %s key %d differs", i, prop, j)
				}
			}
		}
	}
}

func TestParticlesFailures(t *testing.T) {
	if got := NewComposer(nil).Particles(ParticleOptions{Count: 1}); got != nil {
		t.Error("Particles without a scene returned objects")
	}

	s, log := newTestScene(30, 4)
	c := NewComposer(s)
	c.Particles(ParticleOptions{})
	if !log.has(ErrEmptyGroup) {
		t.Error("zero count not reported")
	}
	c.Particles(ParticleOptions{Count: 1, Start: -1})
	if !log.has(ErrNegativeFrame) {
		t.Error("negative start not reported")
	}
	if len(s.Objects()) != 0 {
		t.Errorf("failed calls added %d objects", len(s.Objects()))
	}
}

func TestRangeSample(t *testing.T) {
	r := Range{Min: 2, Max: 5}
	rng := rand.New(rand.NewPCG(7, 7))
	for range 100 {
		v := r.sample(rng)
		if v < 2 || v > 5 {
			t.Fatalf("sample = %v, out of [2, 5]", v)
		}
	}
	if got := (Range{3, 3}).sample(rng); got != 3 {
		t.Errorf("degenerate sample = %v, want 3", got)
	}

	a := r.sample(rand.New(rand.NewPCG(1, 2)))
	b := r.sample(rand.New(rand.NewPCG(1, 2)))
	if a != b {
		t.Errorf("same seed sampled %v and %v", a, b)
	}
}

func TestJitterHue(t *testing.T) {
	red := Color{255, 0, 0, 200}
	if got := jitterHue(red, 0); got != red {
		t.Errorf("zero shift = %v", got)
	}
	got := jitterHue(red, 120)
	if got.G < 250 || got.R > 5 || got.B > 5 || got.A != 200 {
		t.Errorf("red +120° = %v, want green with alpha 200", got)
	}
	got = jitterHue(red, -120)
	if got.B < 250 || got.R > 5 || got.G > 5 {
		t.Errorf("red -120° = %v, want blue", got)
	}
}
