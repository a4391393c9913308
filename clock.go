package kinetic

import (
	"math"
	"slices"
	"sort"
)

// FrameSink receives every frame the clock lands on. Scene implements it.
type FrameSink interface {
	EvaluateAt(frame int)
}

// Marker is a labelled frame on the timeline.
type Marker struct {
	Frame int    `json:"frame" yaml:"frame"`
	Label string `json:"label" yaml:"label"`
}

// Clock is the global frame counter. It owns the frame rate, the duration
// and the marker list, and pushes each new frame to its sink.
//
// Reaching the end of the timeline always wraps to frame 0; a non-looping
// clock also stops there instead of holding the last frame.
type Clock struct {
	frame       int
	fps         float64
	seconds     float64
	totalFrames int
	looping     bool
	playing     bool
	markers     []Marker
	accum       float64 // fractional frames carried by Tick
	sink        FrameSink
}

// NewClock creates a stopped clock at frame 0. Non-positive fps or seconds
// fall back to 30 fps and 1 second.
func NewClock(fps, seconds float64, sink FrameSink) *Clock {
	if fps <= 0 {
		fps = 30
	}
	if seconds <= 0 {
		seconds = 1
	}
	c := &Clock{fps: fps, seconds: seconds, sink: sink}
	c.recompute()
	return c
}

// recompute derives totalFrames from seconds × fps and clamps the frame.
func (c *Clock) recompute() {
	c.totalFrames = max(int(math.Round(c.seconds*c.fps)), 1)
	if c.frame >= c.totalFrames {
		c.frame = c.totalFrames - 1
	}
}

// CurrentFrame returns the frame the clock is on.
func (c *Clock) CurrentFrame() int { return c.frame }

// TotalFrames returns the number of frames; valid frames are [0, TotalFrames).
func (c *Clock) TotalFrames() int { return c.totalFrames }

// FPS returns the frame rate.
func (c *Clock) FPS() float64 { return c.fps }

// Duration returns the timeline length in seconds.
func (c *Clock) Duration() float64 { return c.seconds }

// Seconds returns the wall-clock position of the current frame.
func (c *Clock) Seconds() float64 { return float64(c.frame) / c.fps }

// Play starts playback. The current frame is kept.
func (c *Clock) Play() { c.playing = true }

// Pause stops playback. The current frame is kept.
func (c *Clock) Pause() { c.playing = false }

// Toggle flips between playing and paused.
func (c *Clock) Toggle() { c.playing = !c.playing }

// IsPlaying reports whether the clock advances on Update.
func (c *Clock) IsPlaying() bool { return c.playing }

// SetLooping sets whether playback restarts at frame 0 after the last frame.
func (c *Clock) SetLooping(loop bool) { c.looping = loop }

// Looping reports the looping flag.
func (c *Clock) Looping() bool { return c.looping }

// AdvanceFrame moves one frame forward and evaluates it. Past the last
// frame the clock wraps to 0, and stops unless looping.
func (c *Clock) AdvanceFrame() {
	c.frame++
	if c.frame >= c.totalFrames {
		c.frame = 0
		if !c.looping {
			c.playing = false
			c.accum = 0
		}
	}
	c.push()
}

// Update is one external tick: it advances a frame when playing.
func (c *Clock) Update() {
	if c.playing {
		c.AdvanceFrame()
	}
}

// Tick advances by dt seconds of wall-clock time when playing, stepping
// through as many whole frames as have elapsed. Fractions carry over to
// the next call.
func (c *Clock) Tick(dt float64) {
	if !c.playing || dt <= 0 {
		return
	}
	c.accum += dt * c.fps
	for c.accum >= 1 && c.playing {
		c.accum--
		c.AdvanceFrame()
	}
}

// SetFrame seeks to frame and evaluates it immediately. Frames outside
// [0, TotalFrames) are ignored and false is returned.
func (c *Clock) SetFrame(frame int) bool {
	if frame < 0 || frame >= c.totalFrames {
		return false
	}
	c.frame = frame
	c.accum = 0
	c.push()
	return true
}

// Refresh re-evaluates the current frame, e.g. after editing keyframes.
func (c *Clock) Refresh() {
	c.push()
}

func (c *Clock) push() {
	if c.sink != nil {
		c.sink.EvaluateAt(c.frame)
	}
}

// SetDuration changes the length in seconds, keeping the frame rate. The
// current frame is clamped into the new range.
func (c *Clock) SetDuration(seconds float64) bool {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return false
	}
	c.seconds = seconds
	c.recompute()
	return true
}

// SetFPS changes the frame rate, keeping the wall-clock duration: the frame
// count is rescaled. The current frame is clamped into the new range.
func (c *Clock) SetFPS(fps float64) bool {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return false
	}
	c.fps = fps
	c.recompute()
	return true
}

// AddMarker labels frame. A marker already at frame is relabelled.
func (c *Clock) AddMarker(frame int, label string) {
	i := sort.Search(len(c.markers), func(i int) bool { return c.markers[i].Frame >= frame })
	if i < len(c.markers) && c.markers[i].Frame == frame {
		c.markers[i].Label = label
		return
	}
	c.markers = slices.Insert(c.markers, i, Marker{Frame: frame, Label: label})
}

// RemoveMarker deletes the marker at frame and reports whether one existed.
func (c *Clock) RemoveMarker(frame int) bool {
	i := sort.Search(len(c.markers), func(i int) bool { return c.markers[i].Frame >= frame })
	if i == len(c.markers) || c.markers[i].Frame != frame {
		return false
	}
	c.markers = slices.Delete(c.markers, i, i+1)
	return true
}

// Markers returns the markers in frame order.
func (c *Clock) Markers() []Marker {
	return slices.Clone(c.markers)
}

// NextMarker returns the first marker strictly after frame.
func (c *Clock) NextMarker(frame int) (Marker, bool) {
	i := sort.Search(len(c.markers), func(i int) bool { return c.markers[i].Frame > frame })
	if i == len(c.markers) {
		return Marker{}, false
	}
	return c.markers[i], true
}

// PrevMarker returns the last marker strictly before frame.
func (c *Clock) PrevMarker(frame int) (Marker, bool) {
	i := sort.Search(len(c.markers), func(i int) bool { return c.markers[i].Frame >= frame })
	if i == 0 {
		return Marker{}, false
	}
	return c.markers[i-1], true
}

// SeekMarker seeks to the first marker with the given label.
func (c *Clock) SeekMarker(label string) bool {
	for _, m := range c.markers {
		if m.Label == label {
			return c.SetFrame(m.Frame)
		}
	}
	return false
}
