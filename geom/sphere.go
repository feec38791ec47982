package geom

import (
	"math"

	"github.com/echoflaresat/whitted/vectors"
)

type Sphere struct {
	Center vectors.Vec3
	Radius float64
}

// Intersect solves |O + tD - C|² = r² for t.
//
// When both roots are positive the nearer one is returned. Otherwise the
// larger one is, which is the exit point for an origin inside the sphere
// and a negative value for a sphere behind the origin. Callers reject
// t below their own threshold. A miss returns +Inf.
func (s Sphere) Intersect(ray vectors.Ray) float64 {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	delta := b*b - 4.0*a*c
	if delta < 0 {
		return math.Inf(1)
	}
	if math.Abs(delta) < DivideByZeroTolerance {
		return -b / (2.0 * a)
	}

	sqrtDelta := math.Sqrt(delta)
	t1 := (-b + sqrtDelta) / (2.0 * a)
	t2 := (-b - sqrtDelta) / (2.0 * a)
	if t1 > 0 && t2 > 0 {
		return math.Min(t1, t2)
	}
	return math.Max(t1, t2)
}

func (s Sphere) NormalAt(p vectors.Vec3) vectors.Vec3 {
	return p.Sub(s.Center).Normalize()
}

// UV maps a unit normal to longitude/latitude texture coordinates with +Y
// as the pole.
func (s Sphere) UV(n vectors.Vec3) (float64, float64) {
	lat := math.Asin(math.Max(-1, math.Min(1, n.Y)))
	lon := math.Atan2(n.X, n.Z)
	u := 0.5 + lon/(2*math.Pi)
	v := 0.5 - lat/math.Pi
	return u, v
}
