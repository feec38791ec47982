package render

import (
	"github.com/echoflaresat/whitted/vectors"
)

// OcclusionFraction estimates how much of the area light around
// lightCenter is hidden from point. The light center is always one of the
// samples; the other sampleCount-1 are spread over a horizontal square.
// sampleCount <= 1 is a hard shadow test and returns 0 or 1.
func (c *RayContext) OcclusionFraction(point, lightCenter vectors.Vec3, sampleCount int) float64 {
	if sampleCount < 1 {
		sampleCount = 1
	}

	occluded := 0
	for k := 0; k < sampleCount; k++ {
		target := lightCenter
		if k > 0 {
			target = target.Add(vectors.New(
				(c.rng.Float64()-0.5)*AreaLightSide,
				0,
				(c.rng.Float64()-0.5)*AreaLightSide,
			))
		}
		if c.blocked(point, target) {
			occluded++
		}
	}
	return float64(occluded) / float64(sampleCount)
}

// blocked casts one shadow ray from point toward target.
func (c *RayContext) blocked(point, target vectors.Vec3) bool {
	c.counters.shadow++

	toLight := target.Sub(point)
	dist := toLight.Norm()
	if dist == 0 {
		return false
	}
	ray := vectors.NewRay(point, toLight.Scale(1/dist))

	for i := range c.scene.Primitives {
		p := &c.scene.Primitives[i]
		if p.Material.Kt > TranslucencyThreshold {
			continue
		}
		if t := p.HitDistance(ray); t > Epsilon && t < dist {
			return true
		}
	}
	return false
}
