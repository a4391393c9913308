package kinetic

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func newView(cam *Object) View {
	return View{Camera: cam, Viewport: Rect{X: 0, Y: 0, Width: 800, Height: 600}}
}

func TestViewNilCamera(t *testing.T) {
	v := newView(nil)
	// At (0,0) with no camera the scene origin sits at the viewport centre.
	assertPoint(t, "WorldToScreen(0,0)", v.WorldToScreen(Point{}), Point{400, 300})
}

func TestViewCameraTranslation(t *testing.T) {
	cam := NewObject("cam", TypeCamera)
	cam.X, cam.Y = 100, 50
	v := newView(cam)
	// Camera at (100,50) looking at (100,50) should map to viewport center
	assertPoint(t, "WorldToScreen(100,50)", v.WorldToScreen(Point{100, 50}), Point{400, 300})
	assertPoint(t, "WorldToScreen(110,50)", v.WorldToScreen(Point{110, 50}), Point{410, 300})
}

func TestViewCameraZoom(t *testing.T) {
	cam := NewObject("cam", TypeCamera)
	cam.Zoom = 2
	v := newView(cam)
	assertPoint(t, "WorldToScreen(10,0)", v.WorldToScreen(Point{10, 0}), Point{420, 300})
}

func TestViewCameraRotation(t *testing.T) {
	cam := NewObject("cam", TypeCamera)
	cam.Rotation = math.Pi / 2
	v := newView(cam)
	// Rotating the camera by +90° rotates the world by -90° on screen.
	assertPoint(t, "WorldToScreen(10,0)", v.WorldToScreen(Point{10, 0}), Point{400, 290})
}

func TestViewRoundTrip(t *testing.T) {
	cam := NewObject("cam", TypeCamera)
	cam.X, cam.Y = -30, 75
	cam.Zoom = 1.7
	cam.Rotation = 0.4
	v := newView(cam)

	for _, p := range []Point{{0, 0}, {123, -45}, {-300, 200}} {
		back := v.ScreenToWorld(v.WorldToScreen(p))
		if !approxEqual(back.X, p.X, 1e-6) || !approxEqual(back.Y, p.Y, 1e-6) {
			t.Errorf("round trip %v = %v", p, back)
		}
	}
}

func TestViewVisibleBounds(t *testing.T) {
	cam := NewObject("cam", TypeCamera)
	cam.Zoom = 2
	b := newView(cam).VisibleBounds()
	want := Rect{-200, -150, 400, 300}
	if !approxEqual(b.X, want.X, 1e-6) || !approxEqual(b.Y, want.Y, 1e-6) ||
		!approxEqual(b.Width, want.Width, 1e-6) || !approxEqual(b.Height, want.Height, 1e-6) {
		t.Errorf("VisibleBounds = %v, want %v", b, want)
	}
}

func TestViewVisible(t *testing.T) {
	cam := NewObject("cam", TypeCamera)
	cam.Zoom = 2
	v := newView(cam)

	box := func(x, y float64) *Object {
		o := NewObject("box", TypeRect)
		o.X, o.Y, o.Width, o.Height = x, y, 20, 20
		return o
	}

	tests := []struct {
		name   string
		obj    *Object
		expect bool
	}{
		{"centre", box(0, 0), true},
		{"straddling edge", box(190, 0), true},
		{"outside", box(300, 0), false},
		{"hidden", func() *Object { o := box(0, 0); o.Visible = false; return o }(), false},
		{"transparent", func() *Object { o := box(0, 0); o.Opacity = 0; return o }(), false},
		{"camera", cam, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Visible(tt.obj); got != tt.expect {
				t.Errorf("Visible = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestShake(t *testing.T) {
	s, _ := newTestScene(10, 5)
	cam := s.Add(NewObject("cam", TypeCamera))
	cam.X, cam.Y = 50, 60
	NewComposer(s).Shake(cam, 0, 10, ShakeOptions{Seed: 9})

	keys := cam.Keyframes("position")
	if f := frames(keys); !sameFrames(f, []int{0, 2, 4, 6, 8, 10}) {
		t.Fatalf("frames = %v", f)
	}
	base := Point{50, 60}
	if keys[0].Value.Point() != base || keys[len(keys)-1].Value.Point() != base {
		t.Errorf("shake does not start and end at base: %v", keys)
	}
	for _, k := range keys {
		p := k.Value.Point()
		if math.Abs(p.X-base.X) > 8 || math.Abs(p.Y-base.Y) > 8 {
			t.Errorf("frame %d offset %v beyond intensity", k.Frame, p.Sub(base))
		}
	}
}

func TestShakeDeterministic(t *testing.T) {
	run := func() []Keyframe {
		s, _ := newTestScene(10, 5)
		cam := s.Add(NewObject("cam", TypeCamera))
		NewComposer(s).Shake(cam, 5, 20, ShakeOptions{Intensity: 4, Interval: 3, Decay: true, Seed: 42})
		return cam.Keyframes("position")
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("lengths %d, %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Frame != b[i].Frame || !a[i].Value.Equal(b[i].Value) {
			t.Errorf("key %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestShakeDecay(t *testing.T) {
	s, _ := newTestScene(10, 5)
	cam := s.Add(NewObject("cam", TypeCamera))
	NewComposer(s).Shake(cam, 0, 10, ShakeOptions{Intensity: 10, Decay: true, Seed: 1})
	for _, k := range cam.Keyframes("position") {
		amp := 10 * (1 - float64(k.Frame)/10)
		p := k.Value.Point()
		if math.Abs(p.X) > amp+epsilon || math.Abs(p.Y) > amp+epsilon {
			t.Errorf("frame %d offset %v beyond decayed amplitude %v", k.Frame, p, amp)
		}
	}
}

func TestShakeInvalidDuration(t *testing.T) {
	s, log := newTestScene(10, 5)
	cam := s.Add(NewObject("cam", TypeCamera))
	NewComposer(s).Shake(cam, 0, 0, ShakeOptions{})
	if !log.has(ErrInvalidRange) || cam.HasKeyframes() {
		t.Error("zero duration not rejected")
	}
}

func TestZoom(t *testing.T) {
	s, log := newTestScene(10, 5)
	c := NewComposer(s)
	cam := s.Add(NewObject("cam", TypeCamera))
	c.Zoom(cam, 1, 3, 0, 10, "linear")
	s.Clock().SetFrame(5)
	assertNear(t, "Zoom", cam.Zoom, 2)

	box := s.Add(NewObject("box", TypeRect))
	c.Zoom(box, 1, 2, 0, 10, "")
	if !log.has(ErrUnknownProperty) {
		t.Error("Zoom on a rect not reported")
	}
}

func TestFocusOn(t *testing.T) {
	s, log := newTestScene(10, 5)
	c := NewComposer(s)
	cam := s.Add(NewObject("cam", TypeCamera))
	target := s.Add(NewObject("target", TypeRect))
	target.X, target.Y, target.Width, target.Height = 100, 100, 20, 20

	c.FocusOn(cam, target, 0, 10, "linear")
	s.Clock().SetFrame(10)
	if cam.X != 110 || cam.Y != 110 {
		t.Errorf("camera = %v, %v; want 110, 110", cam.X, cam.Y)
	}

	c.FocusOn(cam, nil, 10, 20, "")
	if !log.has(ErrNilObject) {
		t.Error("nil target not reported")
	}
}
