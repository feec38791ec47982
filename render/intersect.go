package render

import (
	"github.com/echoflaresat/whitted/geom"
	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/vectors"
)

const (
	// Epsilon offsets spawned rays and bounds shadow hits.
	Epsilon = 1e-3

	// AreaLightSide is the side of the square the light is spread over
	// for soft shadows.
	AreaLightSide = 5.0

	// Primitives transmitting more than this never cast shadows.
	TranslucencyThreshold = 0.8
)

// NearestHit returns the closest intersection with t > minT. Ties keep the
// earlier primitive. ID is the primitive's index in the scene, -1 on a miss.
func NearestHit(ray vectors.Ray, s *scene.Scene, minT float64) geom.Intersection {
	best := -1
	bestT := geom.Miss().T
	for i := range s.Primitives {
		t := s.Primitives[i].HitDistance(ray)
		if t > minT && t < bestT {
			best, bestT = i, t
		}
	}
	if best < 0 {
		return geom.Miss()
	}

	hit := s.Primitives[best].Intersect(ray)
	hit.ID = best
	return hit
}
