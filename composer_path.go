package kinetic

import (
	"fmt"
	"math"
)

// PathOptions configures FollowPath.
type PathOptions struct {
	// Easing applies to every position segment. Empty means linear.
	Easing string
	// OrientToPath adds rotation keyframes that face along each segment.
	OrientToPath bool
	// RotationOffset is added to every heading, in radians.
	RotationOffset float64
}

// pathFrames places each point on the frame range [start, end] in
// proportion to the arc length travelled to reach it. A path of zero length
// is spread evenly by index instead.
func pathFrames(points []Point, start, end int) []int {
	n := len(points)
	cum := make([]float64, n)
	for i := 1; i < n; i++ {
		cum[i] = cum[i-1] + points[i].Dist(points[i-1])
	}
	total := cum[n-1]
	span := float64(end - start)

	frames := make([]int, n)
	for i := range points {
		var frac float64
		if total > 0 {
			frac = cum[i] / total
		} else {
			frac = float64(i) / float64(n-1)
		}
		frames[i] = start + int(math.Round(frac*span))
	}
	frames[0] = start
	frames[n-1] = end
	return frames
}

// FollowPath moves obj through points between frames start and end at a
// constant speed along the polyline. The first and last points land
// exactly on start and end. With OrientToPath, obj is also rotated to face
// along each segment from the frame it begins that segment.
func (c *Composer) FollowPath(obj *Object, points []Point, start, end int, opts PathOptions) *Object {
	obj = c.target("FollowPath", obj)
	if obj == nil {
		return nil
	}
	if len(points) < 2 {
		c.fail("FollowPath", fmt.Errorf("%w: %d", ErrTooFewPoints, len(points)))
		return obj
	}
	if end <= start {
		c.fail("FollowPath", fmt.Errorf("%w: start %d, end %d", ErrInvalidRange, start, end))
		return obj
	}

	frames := pathFrames(points, start, end)
	last := len(points) - 1

	pos := make([]Keyframe, 0, len(points))
	var rot []Keyframe
	for i, p := range points {
		// Interior points rounding onto an endpoint frame would overwrite
		// the pinned endpoint value.
		if i > 0 && i < last && (frames[i] == start || frames[i] == end) {
			continue
		}
		pos = append(pos, Keyframe{Frame: frames[i], Value: Vec(p), Easing: opts.Easing})
		if opts.OrientToPath && i < last {
			d := points[i+1].Sub(p)
			heading := math.Atan2(d.Y, d.X) + opts.RotationOffset
			rot = append(rot, Keyframe{Frame: frames[i], Value: Scalar(heading), Easing: "linear"})
		}
	}

	if err := validate(obj, "position", pos, 0); err != nil {
		c.fail("FollowPath", err)
		return obj
	}
	if opts.OrientToPath {
		if err := validate(obj, "rotation", rot, 0); err != nil {
			c.fail("FollowPath", err)
			return obj
		}
	}
	apply(obj, "position", pos, 0)
	if opts.OrientToPath {
		apply(obj, "rotation", rot, 0)
	}
	return obj
}

// PathBetween returns a path from the centre of a to the centre of b
// through the given waypoints.
func (c *Composer) PathBetween(a, b *Object, via ...Point) []Point {
	if a == nil || b == nil {
		c.fail("PathBetween", ErrNilObject)
		return nil
	}
	pts := make([]Point, 0, len(via)+2)
	pts = append(pts, a.Center())
	pts = append(pts, via...)
	return append(pts, b.Center())
}
