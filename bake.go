package kinetic

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// LastFrame as BakeOptions.To bakes through the last frame of the clock.
const LastFrame = -1

// BakeOptions selects the frame range and parallelism of Bake.
type BakeOptions struct {
	// From and To bound the baked frames, inclusive. A negative To means
	// the last frame of the scene's clock (see LastFrame).
	From, To int
	// Workers caps the number of objects sampled at once. Default NumCPU.
	Workers int
}

// BakedObject holds the sampled values of one object's animated
// properties. Frames[i] is frame From+i.
type BakedObject struct {
	ID     uint32             `json:"id"`
	Name   string             `json:"name"`
	Type   string             `json:"type"`
	Frames []map[string]Value `json:"frames"`
}

// BakeResult is a scene sampled frame by frame.
type BakeResult struct {
	FPS     float64       `json:"fps"`
	From    int           `json:"from"`
	To      int           `json:"to"`
	Objects []BakedObject `json:"objects"`
}

// Bake samples every animated property of every object in s over a frame
// range. Objects are sampled in parallel; timelines are only read, so the
// scene must not be edited while Bake runs. Frame hooks do not run and live
// fields are left untouched.
func Bake(ctx context.Context, s *Scene, opts BakeOptions) (*BakeResult, error) {
	to := opts.To
	if to < 0 {
		to = s.clock.TotalFrames() - 1
	}
	if opts.From < 0 || to < opts.From {
		return nil, fmt.Errorf("bake: %w: from %d, to %d", ErrInvalidRange, opts.From, to)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	res := &BakeResult{
		FPS:     s.clock.FPS(),
		From:    opts.From,
		To:      to,
		Objects: make([]BakedObject, len(s.objects)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, o := range s.objects {
		// Fill the order cache here so workers never write to o.
		props := o.timelineOrder()
		g.Go(func() error {
			out := BakedObject{
				ID:     o.ID,
				Name:   o.Name,
				Type:   o.Type.String(),
				Frames: make([]map[string]Value, 0, to-opts.From+1),
			}
			for f := opts.From; f <= to; f++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				vals := make(map[string]Value, len(props))
				for _, prop := range props {
					vals[prop] = o.timelines[prop].Evaluate(f)
				}
				out.Frames = append(out.Frames, vals)
			}
			res.Objects[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bake: %w", err)
	}
	return res, nil
}
