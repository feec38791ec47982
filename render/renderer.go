package render

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/log"
	"github.com/echoflaresat/whitted/scene"
	"golang.org/x/sync/errgroup"
)

var logger = log.New("render")

// Render traces the scene into an image of opts.Bounds() size. Rows are
// spread over opts.Workers goroutines; the result does not depend on the
// worker count. Cancelling ctx stops the render between rows.
func Render(ctx context.Context, s *scene.Scene, opts Options) (*image.NRGBA, Stats, error) {
	if err := opts.Validate(); err != nil {
		return nil, Stats{}, err
	}

	bounds := opts.Bounds()
	camera := NewCamera(s.Camera, opts.Width, opts.Height)
	img := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	stats := Stats{
		Scene:   s.Name,
		Bounds:  bounds,
		Samples: opts.Samples,
		Workers: opts.Workers,
	}
	var (
		mu    sync.Mutex
		total counters
		done  atomic.Int64
	)
	progress := newProgress(bounds.Dy())

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rc := NewRayContext(s, opts)
			renderRow(rc, camera, img, bounds, y)

			mu.Lock()
			total.add(rc.counters)
			mu.Unlock()
			progress.report(int(done.Add(1)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	stats.Rows = bounds.Dy()
	stats.PrimaryRays = total.primary
	stats.SecondaryRays = total.secondary
	stats.ShadowRays = total.shadow
	stats.Elapsed = time.Since(start)
	logger.Infof("rendered %s %v in %s", s.Name, bounds, stats.Elapsed)
	return img, stats, nil
}

// renderRow writes frame row y into img, offset by the rendered bounds.
func renderRow(rc *RayContext, camera Camera, img *image.NRGBA, bounds image.Rectangle, y int) {
	n := float64(rc.opts.Samples)
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		rc.SeedPixel(x, y)

		accum := colors.Color4{}
		for k := 0; k < rc.opts.Samples; k++ {
			ray := camera.ComputeRay(float64(x)+rc.rng.Float64(), float64(y)+rc.rng.Float64())
			rc.counters.primary++
			accum = accum.Add(rc.Trace(ray, rc.opts.StartDepth))
		}

		// gamma 2
		out := accum.Scale(1.0 / n).WithAlpha(1).Sqrt().Clamp01()
		img.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, out.ToNRGBA())
	}
}

// progress logs every 10% of completed rows.
type progress struct {
	rows      int
	milestone atomic.Int64
}

func newProgress(rows int) *progress {
	return &progress{rows: rows}
}

func (p *progress) report(done int) {
	pct := int64(done * 100 / p.rows)
	for {
		next := p.milestone.Load() + 10
		if pct < next || next > 100 {
			return
		}
		if p.milestone.CompareAndSwap(next-10, next) {
			logger.Infof("%3d%% rows done", next)
		}
	}
}
