package geom

import (
	"fmt"
	"math"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/vectors"
)

// DivideByZeroTolerance guards the quadratic discriminant and the
// ray/plane denominator.
const DivideByZeroTolerance = 1e-12

// Kind tags the shape stored in a Primitive.
type Kind uint8

const (
	KindSphere Kind = iota
	KindQuad
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindQuad:
		return "quad"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Primitive is a closed variant over the supported shapes. Only the payload
// matching Kind is meaningful.
type Primitive struct {
	Kind     Kind
	Name     string
	Material Material

	Sphere Sphere
	Quad   Quad
}

// Intersection is the result of a ray/primitive test. T is +Inf when
// nothing was hit; otherwise Point and Normal are set and Normal has unit
// length. T is measured along the ray direction as supplied.
type Intersection struct {
	T      float64
	Point  vectors.Vec3
	Normal vectors.Vec3
	ID     int
	Name   string

	// Surface coordinates in [0,1] for texturing.
	U, V float64
}

// Miss returns the no-hit sentinel.
func Miss() Intersection {
	return Intersection{T: math.Inf(1), ID: -1}
}

// Hit reports whether the intersection is finite.
func (i Intersection) Hit() bool {
	return !math.IsInf(i.T, 1)
}

func NewSphere(name string, center vectors.Vec3, radius float64, m Material) Primitive {
	return Primitive{
		Kind:     KindSphere,
		Name:     name,
		Material: m,
		Sphere:   Sphere{Center: center, Radius: radius},
	}
}

// NewQuad builds a parallelogram centered at center and spanned by the
// half-edge vectors u and v. The normal is u × v normalized.
func NewQuad(name string, center, u, v vectors.Vec3, m Material) Primitive {
	return Primitive{
		Kind:     KindQuad,
		Name:     name,
		Material: m,
		Quad:     newQuad(center, u, v),
	}
}

// HitDistance returns only the ray parameter of the hit, +Inf on a miss.
func (p *Primitive) HitDistance(ray vectors.Ray) float64 {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Intersect(ray)
	case KindQuad:
		return p.Quad.Intersect(ray)
	default:
		return math.Inf(1)
	}
}

// Intersect tests the ray against the primitive. ID is left at -1; the
// caller knows the primitive's position in the scene.
func (p *Primitive) Intersect(ray vectors.Ray) Intersection {
	res := Miss()
	res.Name = p.Name
	res.T = p.HitDistance(ray)
	if !res.Hit() {
		return res
	}

	res.Point = ray.At(res.T)
	switch p.Kind {
	case KindSphere:
		res.Normal = p.Sphere.NormalAt(res.Point)
		res.U, res.V = p.Sphere.UV(res.Normal)
	case KindQuad:
		res.Normal = p.Quad.Normal
		res.U, res.V = p.Quad.UV(res.Point)
	}
	return res
}

// SurfaceColor returns the texture sample at the hit when the material is
// textured, the base color otherwise.
func (p *Primitive) SurfaceColor(hit Intersection) colors.Color4 {
	if p.Material.Texture != nil {
		return p.Material.Texture.Sample(hit.U, hit.V)
	}
	return p.Material.Color
}
