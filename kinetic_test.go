package kinetic

import (
	"errors"
	"testing"
)

// diagLog records diagnostics for assertions.
type diagLog struct {
	items []Diagnostic
}

func (l *diagLog) record(d Diagnostic) { l.items = append(l.items, d) }

func (l *diagLog) has(err error) bool {
	for _, d := range l.items {
		if errors.Is(d.Err, err) {
			return true
		}
	}
	return false
}

// newTestScene returns a scene whose diagnostics go to the returned log.
func newTestScene(fps, seconds float64) (*Scene, *diagLog) {
	s := NewScene(fps, seconds)
	log := &diagLog{}
	s.SetDiagnostics(log.record)
	return s, log
}

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"contained", Rect{20, 20, 10, 10}, true},
		{"touching edge", Rect{110, 10, 50, 50}, true},
		{"left of", Rect{0, 10, 5, 5}, false},
		{"below", Rect{10, 200, 10, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.expect {
				t.Errorf("Intersects(%v) = %v, want %v", tt.other, got, tt.expect)
			}
		})
	}
}

func TestPointOps(t *testing.T) {
	p := Point{3, 4}
	if got := p.Add(Point{1, 1}); got != (Point{4, 5}) {
		t.Errorf("Add = %v, want (4, 5)", got)
	}
	if got := p.Sub(Point{1, 1}); got != (Point{2, 3}) {
		t.Errorf("Sub = %v, want (2, 3)", got)
	}
	assertNear(t, "Dist", Point{}.Dist(p), 5)
}

func TestParseObjectType(t *testing.T) {
	tests := []struct {
		name string
		want ObjectType
		ok   bool
	}{
		{"rect", TypeRect, true},
		{"ellipse", TypeEllipse, true},
		{"circle", TypeEllipse, true},
		{"camera", TypeCamera, true},
		{"particle", TypeParticle, true},
		{"sprite", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseObjectType(tt.name)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseObjectType(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
	for i := range objectTypeNames {
		typ := ObjectType(i)
		back, ok := ParseObjectType(typ.String())
		if !ok || back != typ {
			t.Errorf("ParseObjectType(%q) does not round trip", typ.String())
		}
	}
}
