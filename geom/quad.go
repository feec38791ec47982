package geom

import (
	"math"

	"github.com/echoflaresat/whitted/vectors"
)

// Quad is a finite planar parallelogram stored as an infinite plane
// (Point, Normal) plus two triangles that bound it.
type Quad struct {
	Point  vectors.Vec3
	Normal vectors.Vec3

	// Vertices holds two triangles, {0,1,2} and {3,4,5}.
	Vertices [6]vectors.Vec3

	// half-edge vectors for texture coordinates
	u, v vectors.Vec3
}

func newQuad(center, u, v vectors.Vec3) Quad {
	a := center.Sub(u).Sub(v)
	b := center.Add(u).Sub(v)
	c := center.Add(u).Add(v)
	d := center.Sub(u).Add(v)
	return Quad{
		Point:    center,
		Normal:   u.Cross(v).Normalize(),
		Vertices: [6]vectors.Vec3{a, b, c, a, c, d},
		u:        u,
		v:        v,
	}
}

// PlaneIntersect intersects the ray with the quad's infinite plane.
// Rays parallel to the plane return +Inf.
func (q Quad) PlaneIntersect(ray vectors.Ray) float64 {
	denom := ray.Direction.Dot(q.Normal)
	if math.Abs(denom) < DivideByZeroTolerance {
		return math.Inf(1)
	}
	return (q.Normal.Dot(q.Point) - q.Normal.Dot(ray.Origin)) / denom
}

// Intersect is PlaneIntersect restricted to the quad's extent.
func (q Quad) Intersect(ray vectors.Ray) float64 {
	t := q.PlaneIntersect(ray)
	if math.IsInf(t, 1) {
		return t
	}
	if !q.Contains(ray.At(t)) {
		return math.Inf(1)
	}
	return t
}

// Contains reports whether a point on the plane lies inside either of the
// two triangles.
func (q Quad) Contains(p vectors.Vec3) bool {
	return insideTriangle(p, q.Vertices[0], q.Vertices[1], q.Vertices[2]) ||
		insideTriangle(p, q.Vertices[3], q.Vertices[4], q.Vertices[5])
}

// insideTriangle is a same-side test in 3D: p is inside when every edge
// sees it on the side of the triangle's own normal. Works for any
// orientation and either winding.
func insideTriangle(p, a, b, c vectors.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	tol := -1e-9 * n.Dot(n)
	return b.Sub(a).Cross(p.Sub(a)).Dot(n) >= tol &&
		c.Sub(b).Cross(p.Sub(b)).Dot(n) >= tol &&
		a.Sub(c).Cross(p.Sub(c)).Dot(n) >= tol
}

// UV returns the point's position across the quad, (0,0) at the corner
// center-u+v so that v grows downward like image rows.
func (q Quad) UV(p vectors.Vec3) (float64, float64) {
	d := p.Sub(q.Point)
	s := 0.0
	if uu := q.u.Dot(q.u); uu > 0 {
		s = d.Dot(q.u) / uu
	}
	r := 0.0
	if vv := q.v.Dot(q.v); vv > 0 {
		r = d.Dot(q.v) / vv
	}
	return (s + 1) / 2, (1 - r) / 2
}
