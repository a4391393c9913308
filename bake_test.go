package kinetic

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func bakeScene() *Scene {
	s := NewScene(10, 3)
	s.SetDiagnostics(DiscardDiagnostics)
	c := NewComposer(s)
	for i := range 6 {
		o := s.Add(NewObject("dot", TypeEllipse))
		c.Move(o, Point{0, float64(i)}, Point{100, float64(i)}, i, 20+i, "easeInOutQuad")
		c.ColorTo(o, "fill", ColorBlack, ColorWhite, 0, 29, "")
	}
	s.Add(NewObject("static", TypeRect))
	return s
}

func TestBakeMatchesSample(t *testing.T) {
	s := bakeScene()
	res, err := Bake(context.Background(), s, BakeOptions{To: LastFrame, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.From != 0 || res.To != 29 || res.FPS != 10 {
		t.Errorf("range = %d..%d at %v fps", res.From, res.To, res.FPS)
	}
	if len(res.Objects) != len(s.Objects()) {
		t.Fatalf("objects = %d, want %d", len(res.Objects), len(s.Objects()))
	}
	for i, o := range s.Objects() {
		baked := res.Objects[i]
		if baked.ID != o.ID || baked.Type != o.Type.String() {
			t.Errorf("object %d identity = %d %s", i, baked.ID, baked.Type)
		}
		if len(baked.Frames) != 30 {
			t.Fatalf("object %d frames = %d, want 30", i, len(baked.Frames))
		}
		for f, vals := range baked.Frames {
			for _, prop := range o.AnimatedProperties() {
				want, _ := o.Sample(prop, f)
				if !vals[prop].Equal(want) {
					t.Errorf("object %d %s at %d = %v, want %v", i, prop, f, vals[prop], want)
				}
			}
		}
	}
	if len(res.Objects[6].Frames[0]) != 0 {
		t.Errorf("static object baked %v", res.Objects[6].Frames[0])
	}
}

func TestBakeRange(t *testing.T) {
	s := bakeScene()
	res, err := Bake(context.Background(), s, BakeOptions{From: 5, To: 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Objects[0].Frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(res.Objects[0].Frames))
	}
	want, _ := s.Objects()[0].Sample("position", 6)
	if got := res.Objects[0].Frames[1]["position"]; !got.Equal(want) {
		t.Errorf("frame 6 position = %v, want %v", got, want)
	}

	first, err := Bake(context.Background(), s, BakeOptions{From: 0, To: 0})
	if err != nil {
		t.Fatal(err)
	}
	if first.To != 0 || len(first.Objects[0].Frames) != 1 {
		t.Errorf("frame 0 only: to %d, %d frames; want 0, 1", first.To, len(first.Objects[0].Frames))
	}

	if _, err := Bake(context.Background(), s, BakeOptions{From: 10, To: 5}); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range err = %v, want ErrInvalidRange", err)
	}
	if _, err := Bake(context.Background(), s, BakeOptions{From: -1}); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("negative from err = %v, want ErrInvalidRange", err)
	}
}

func TestBakeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Bake(ctx, bakeScene(), BakeOptions{To: LastFrame}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBakeDoesNotTouchLiveFields(t *testing.T) {
	s := bakeScene()
	s.Clock().SetFrame(3)
	before := s.Objects()[0].X
	if _, err := Bake(context.Background(), s, BakeOptions{To: LastFrame}); err != nil {
		t.Fatal(err)
	}
	if s.Objects()[0].X != before {
		t.Errorf("X changed from %v to %v", before, s.Objects()[0].X)
	}
}

func TestBakeResultJSON(t *testing.T) {
	res, err := Bake(context.Background(), bakeScene(), BakeOptions{To: 1})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var back struct {
		Objects []struct {
			Frames []map[string]json.RawMessage `json:"frames"`
		} `json:"objects"`
	}
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if got := string(back.Objects[0].Frames[0]["position"]); got != `{"x":0,"y":0}` {
		t.Errorf("position = %s", got)
	}
}
