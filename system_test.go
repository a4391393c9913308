package kinetic

import "testing"

func TestFrameActions(t *testing.T) {
	s, _ := newTestScene(10, 2)
	actions := NewFrameActions()
	s.AddSystem(actions)

	var fired []string
	actions.At(5, func(int) { fired = append(fired, "a") })
	actions.At(5, func(int) { fired = append(fired, "b") })
	actions.At(2, func(int) { fired = append(fired, "early") })
	actions.At(9, nil)

	if got := actions.Frames(); len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Errorf("Frames = %v, want [2 5]", got)
	}

	s.Clock().SetFrame(5)
	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Errorf("fired = %v, want [a b]", fired)
	}

	actions.Clear(5)
	s.Clock().SetFrame(5)
	if len(fired) != 2 {
		t.Errorf("cleared actions fired: %v", fired)
	}
}

func TestTypewriter(t *testing.T) {
	o := NewObject("label", TypeText)
	o.Hook = &Typewriter{Text: "héllo", Start: 10, FramesPerRune: 2}

	tests := []struct {
		frame int
		want  string
	}{
		{0, ""},
		{9, ""},
		{10, "h"},
		{11, "h"},
		{12, "hé"},
		{18, "héllo"},
		{100, "héllo"},
	}
	for _, tt := range tests {
		o.EvaluateAt(tt.frame)
		if o.Text != tt.want {
			t.Errorf("frame %d: Text = %q, want %q", tt.frame, o.Text, tt.want)
		}
	}
}
