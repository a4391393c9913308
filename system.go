package kinetic

import "sort"

// FrameActions is a System that runs callbacks when the clock lands on
// specific frames. Callbacks at the same frame run in the order added.
type FrameActions struct {
	actions map[int][]func(frame int)
}

// NewFrameActions creates an empty action table.
func NewFrameActions() *FrameActions {
	return &FrameActions{actions: make(map[int][]func(int))}
}

// At schedules fn for frame.
func (a *FrameActions) At(frame int, fn func(frame int)) {
	if fn == nil {
		return
	}
	a.actions[frame] = append(a.actions[frame], fn)
}

// Clear drops every action at frame.
func (a *FrameActions) Clear(frame int) {
	delete(a.actions, frame)
}

// Frames returns the frames that have actions, sorted.
func (a *FrameActions) Frames() []int {
	frames := make([]int, 0, len(a.actions))
	for f := range a.actions {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// OnTick implements System.
func (a *FrameActions) OnTick(frame int) {
	for _, fn := range a.actions[frame] {
		fn(frame)
	}
}

// Typewriter is a FrameHook that reveals a text object's string one rune
// every FramesPerRune frames, starting at Start. Before Start the text is
// empty; once every rune is shown the full string stays.
type Typewriter struct {
	Text          string
	Start         int
	FramesPerRune int
}

// AfterEvaluate implements FrameHook.
func (tw *Typewriter) AfterEvaluate(o *Object, frame int) {
	runes := []rune(tw.Text)
	step := max(tw.FramesPerRune, 1)
	n := 0
	if frame >= tw.Start {
		n = min((frame-tw.Start)/step+1, len(runes))
	}
	o.Text = string(runes[:n])
}
