package kinetic

import "testing"

func TestTimelineUpsertIdempotent(t *testing.T) {
	var tl Timeline
	tl.Upsert(10, Scalar(1), "linear")
	tl.Upsert(10, Scalar(2), "easeInQuad")

	if tl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tl.Len())
	}
	k, ok := tl.At(10)
	if !ok {
		t.Fatal("At(10) missing")
	}
	if k.Value.Float() != 2 || k.Easing != "easeInQuad" {
		t.Errorf("At(10) = %v %q, want 2 easeInQuad", k.Value, k.Easing)
	}
}

func TestTimelineOrdered(t *testing.T) {
	var tl Timeline
	for _, f := range []int{30, 0, 20, 10, 20} {
		tl.Upsert(f, Scalar(float64(f)), "")
	}
	want := []int{0, 10, 20, 30}
	got := tl.Frames()
	if len(got) != len(want) {
		t.Fatalf("Frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Frames = %v, want %v", got, want)
		}
	}
	first, last := tl.Bounds()
	if first != 0 || last != 30 {
		t.Errorf("Bounds = %d, %d; want 0, 30", first, last)
	}
}

func TestTimelineRemove(t *testing.T) {
	var tl Timeline
	tl.Upsert(0, Scalar(0), "")
	tl.Upsert(5, Scalar(5), "")

	if tl.Remove(3) {
		t.Error("Remove(3) = true, want false")
	}
	if !tl.Remove(5) {
		t.Error("Remove(5) = false, want true")
	}
	if tl.Len() != 1 {
		t.Errorf("Len = %d, want 1", tl.Len())
	}
}

func TestTimelineExactKeyframes(t *testing.T) {
	var tl Timeline
	tl.Upsert(0, Scalar(0.1), "easeInOutElastic")
	tl.Upsert(7, Scalar(0.7), "easeOutBounce")
	tl.Upsert(13, Scalar(1.3), "")
	for _, k := range tl.Keyframes() {
		if got := tl.Evaluate(k.Frame); got.Float() != k.Value.Float() {
			t.Errorf("Evaluate(%d) = %v, want %v exactly", k.Frame, got, k.Value)
		}
	}
}

func TestTimelineHold(t *testing.T) {
	var tl Timeline
	tl.Upsert(10, Scalar(1), "linear")
	tl.Upsert(50, Scalar(9), "linear")

	if got := tl.Evaluate(0); !got.Equal(tl.Evaluate(10)) {
		t.Errorf("Evaluate(0) = %v, want %v", got, tl.Evaluate(10))
	}
	if got := tl.Evaluate(100); !got.Equal(tl.Evaluate(50)) {
		t.Errorf("Evaluate(100) = %v, want %v", got, tl.Evaluate(50))
	}
}

func TestTimelineLinearMidpoint(t *testing.T) {
	var tl Timeline
	tl.Upsert(0, Scalar(0), "linear")
	tl.Upsert(10, Scalar(100), "linear")
	assertNear(t, "Evaluate(5)", tl.Evaluate(5).Float(), 50)
}

func TestTimelineEarlierEasingGoverns(t *testing.T) {
	var tl Timeline
	tl.Upsert(0, Scalar(0), "easeInQuad")
	tl.Upsert(10, Scalar(100), "linear")
	assertNear(t, "Evaluate(5)", tl.Evaluate(5).Float(), 25)
}

func TestTimelineEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Evaluate on empty timeline did not panic")
		}
	}()
	var tl Timeline
	tl.Evaluate(0)
}

func TestTimelineKeyframesCopy(t *testing.T) {
	var tl Timeline
	tl.Upsert(0, Scalar(1), "")
	keys := tl.Keyframes()
	keys[0].Frame = 99
	if _, ok := tl.At(0); !ok {
		t.Error("Keyframes aliases the timeline")
	}
}
