package render

import (
	"math/rand/v2"

	"github.com/echoflaresat/whitted/scene"
)

// RayContext carries the per-worker state of the tracer: the random stream
// and ray counters. The scene is shared read-only; a RayContext is not
// safe for concurrent use.
type RayContext struct {
	scene *scene.Scene
	opts  Options

	pcg *rand.PCG
	rng *rand.Rand

	counters counters
}

type counters struct {
	primary   uint64
	secondary uint64
	shadow    uint64
}

func (c *counters) add(o counters) {
	c.primary += o.primary
	c.secondary += o.secondary
	c.shadow += o.shadow
}

func NewRayContext(s *scene.Scene, opts Options) *RayContext {
	pcg := rand.NewPCG(opts.Seed, 0)
	return &RayContext{
		scene: s,
		opts:  opts,
		pcg:   pcg,
		rng:   rand.New(pcg),
	}
}

// SeedPixel restarts the random stream for pixel (x, y). Every pixel gets
// its own stream, so the image does not depend on how rows are scheduled
// or how the frame is tiled.
func (c *RayContext) SeedPixel(x, y int) {
	c.pcg.Seed(c.opts.Seed, uint64(uint32(y))<<32|uint64(uint32(x)))
}
