package kinetic

import (
	"math"
	"strings"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		fn := Ease(name)
		if got := fn(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestEasingRegistered(t *testing.T) {
	for _, f := range families {
		for _, prefix := range []string{"easeIn", "easeOut", "easeInOut", "easeOutIn"} {
			if !HasEasing(prefix + f.name) {
				t.Errorf("%s%s not registered", prefix, f.name)
			}
		}
	}
	if !HasEasing("linear") {
		t.Error("linear not registered")
	}
}

func TestEaseUnknownIsLinear(t *testing.T) {
	for _, name := range []string{"", "wobble", "EASEINQUAD"} {
		fn := Ease(name)
		for _, x := range []float64{0, 0.25, 0.5, 0.9, 1} {
			assertNear(t, "Ease("+name+")", fn(x), x)
		}
	}
}

func TestEasingValues(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"linear", 0.3, 0.3},
		{"easeInQuad", 0.5, 0.25},
		{"easeOutQuad", 0.5, 0.75},
		{"easeInCubic", 0.5, 0.125},
		{"easeOutCubic", 0.5, 0.875},
		{"easeOutQuart", 0.5, 0.9375},
		{"easeInQuint", 0.5, 0.03125},
		{"easeInOutQuad", 0.5, 0.5},
		{"easeInOutQuad", 0.25, 0.125},
		{"easeInOutCubic", 0.5, 0.5},
		{"easeInSine", 0.5, 0.2928932188134524},
		{"easeInOutSine", 0.5, 0.5},
		{"easeInExpo", 0.5, 0.03125},
		{"easeOutExpo", 0.5, 0.96875},
		{"easeInCirc", 0.5, 0.1339745962155614},
		{"easeInElastic", 0.5, -0.015625},
		{"easeInElastic", 0.8, -0.125},
		{"easeOutElastic", 0.25, 0.9116116523516815},
		{"easeInOutElastic", 0.25, -0.0078125},
		{"easeInOutElastic", 0.75, 1.0078125},
		{"easeInBack", 0.5, -0.0876975},
		{"easeOutBack", 0.5, 1.0876975},
		{"easeInOutBack", 0.25, -0.04384875},
		{"easeOutBounce", 0.2, 0.3025},
		{"easeOutBounce", 0.5, 0.765625},
		{"easeOutBounce", 0.95, 0.98453125},
		{"easeInBounce", 0.5, 0.234375},
		{"easeInOutBounce", 0.75, 0.8828125},
	}
	for _, tt := range tests {
		got := Ease(tt.name)(tt.t)
		// Bounce runs through gween in float32.
		tol := 1e-9
		if strings.HasSuffix(tt.name, "Bounce") {
			tol = 1e-6
		}
		if math.Abs(got-tt.want) > tol {
			t.Errorf("%s(%v) = %v, want %v", tt.name, tt.t, got, tt.want)
		}
	}
}

func TestEaseInOutContinuousAtHalf(t *testing.T) {
	for _, name := range EasingNames() {
		if !strings.HasPrefix(name, "easeInOut") {
			continue
		}
		fn := Ease(name)
		below, at, above := fn(0.5-1e-9), fn(0.5), fn(0.5+1e-9)
		if math.Abs(at-0.5) > 1e-6 {
			t.Errorf("%s(0.5) = %v, want 0.5", name, at)
		}
		// Circ is steep at the join, so allow more than rounding here.
		if math.Abs(below-at) > 1e-3 || math.Abs(above-at) > 1e-3 {
			t.Errorf("%s jumps at 0.5: %v, %v, %v", name, below, at, above)
		}
	}
}

func TestEaseOutBackOvershoots(t *testing.T) {
	fn := Ease("easeOutBack")
	peak := 0.0
	for i := 1; i < 100; i++ {
		peak = max(peak, fn(float64(i)/100))
	}
	if peak <= 1 {
		t.Errorf("easeOutBack peak = %v, want > 1", peak)
	}
}

func TestRegisterEasing(t *testing.T) {
	RegisterEasing("testHalf", func(t float64) float64 { return 0.5 })
	defer delete(easings, "testHalf")

	fn := Ease("testHalf")
	if fn(0) != 0 || fn(1) != 1 {
		t.Errorf("registered curve endpoints = %v, %v; want 0, 1", fn(0), fn(1))
	}
	assertNear(t, "testHalf(0.3)", fn(0.3), 0.5)

	RegisterEasing("linear", func(t float64) float64 { return 0 })
	assertNear(t, "linear(0.4)", Ease("linear")(0.4), 0.4)

	RegisterEasing("", func(t float64) float64 { return 0 })
	if HasEasing("") {
		t.Error("empty name registered")
	}
}

func TestTweenCurve(t *testing.T) {
	fn := TweenCurve(ease.InQuad)
	if fn(0) != 0 || fn(1) != 1 {
		t.Errorf("endpoints = %v, %v; want 0, 1", fn(0), fn(1))
	}
	if got := fn(0.5); math.Abs(got-0.25) > 1e-6 {
		t.Errorf("TweenCurve(InQuad)(0.5) = %v, want 0.25", got)
	}
	if got := TweenCurve(nil)(0.4); got != 0.4 {
		t.Errorf("TweenCurve(nil)(0.4) = %v, want 0.4", got)
	}
}

func TestEasingNamesSorted(t *testing.T) {
	names := EasingNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("EasingNames not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}
