package renderer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Render traces every pixel of the frame in order, y outer and x inner, and
// passes each color to sink. The grid is (width+1) x (height+1) samples.
func (c *Camera) Render(sink PixelSink, objects []core.Object, lights []core.Light, background core.Vec3, level int) error {
	_, err := c.RenderContext(context.Background(), sink, objects, lights, background, level)
	return err
}

// RenderContext is Render with a cancellation check before every scanline.
// Pixels of already finished scanlines have been delivered when it returns
// ctx.Err().
func (c *Camera) RenderContext(ctx context.Context, sink PixelSink, objects []core.Object, lights []core.Light, background core.Vec3, level int) (RenderStats, error) {
	f, err := c.snapshot()
	if err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	stats := newRenderStats(f.viewport, 1)

	for y := 0; y <= f.viewport.Height; y++ {
		if err := ctx.Err(); err != nil {
			stats.finish(start)
			return stats, err
		}
		for x := 0; x <= f.viewport.Width; x++ {
			ray := f.buildRay(x, y)
			sink(x, y, RenderRay(objects, lights, ray, background, level))
		}
		stats.Scanlines++
	}

	stats.finish(start)
	return stats, nil
}

// RenderParallel traces scanlines on up to workers goroutines (NumCPU when
// workers <= 0). Objects, lights and materials are shared read-only between
// goroutines and must not carry hidden mutable state.
//
// Sink calls are serialized, one scanline at a time, so the sink needs no
// locking, but scanlines arrive in completion order rather than y order.
func (c *Camera) RenderParallel(ctx context.Context, sink PixelSink, objects []core.Object, lights []core.Light, background core.Vec3, level, workers int) (RenderStats, error) {
	f, err := c.snapshot()
	if err != nil {
		return RenderStats{}, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	stats := newRenderStats(f.viewport, workers)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y := 0; y <= f.viewport.Height; y++ {
		if gctx.Err() != nil {
			break
		}
		y := y
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			row := make([]core.Vec3, f.viewport.Width+1)
			for x := range row {
				row[x] = RenderRay(objects, lights, f.buildRay(x, y), background, level)
			}

			mu.Lock()
			defer mu.Unlock()
			for x, color := range row {
				sink(x, y, color)
			}
			stats.Scanlines++
			return nil
		})
	}

	err = g.Wait()
	stats.finish(start)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stats, ctxErr
	}
	return stats, err
}
