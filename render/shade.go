package render

import (
	"math"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/geom"
	"github.com/echoflaresat/whitted/vectors"
)

// Schlick approximates the Fresnel reflectance for an incidence cosine and
// relative refractive index.
func Schlick(cosTheta, nrf float64) float64 {
	r0 := (1.0 - nrf) / (1.0 + nrf)
	r0 *= r0
	return r0 + (1.0-r0)*math.Pow(1.0-cosTheta, 5)
}

// spawn offsets p along n toward the side dir leaves on.
func spawn(p, n, dir vectors.Vec3) vectors.Vec3 {
	if dir.Dot(n) < 0 {
		n = n.Neg()
	}
	return p.Add(n.Scale(Epsilon))
}

// Trace returns the color seen along ray. Rays deeper than MaxDepth and
// rays that hit nothing return transparent black.
func (c *RayContext) Trace(ray vectors.Ray, depth int) colors.Color4 {
	if depth > c.opts.MaxDepth {
		return colors.Transparent()
	}

	hit := NearestHit(ray, c.scene, 2*Epsilon)
	if !hit.Hit() {
		return colors.Transparent()
	}

	prim := &c.scene.Primitives[hit.ID]
	m := prim.Material
	light := c.scene.Light

	dir := ray.Direction.Normalize()
	n := hit.Normal
	l := light.Position.Sub(hit.Point).Normalize()

	// Phong
	diffuse := m.Kd * math.Max(l.Dot(n), 0)
	r := l.Neg().Reflect(n)
	specular := m.Ks * math.Pow(math.Max(r.Dot(dir.Neg()), 0), m.Kn)

	local := light.Color.Mul(prim.SurfaceColor(hit)).Scale(m.Ka + diffuse).
		Add(light.Color.Scale(specular)).
		Equalize()

	occlusion := c.OcclusionFraction(hit.Point.Add(l.Scale(Epsilon)), light.Position, c.opts.ShadowSamples)
	local = local.Scale(1 - occlusion).WithAlpha(1)

	attenuation := 1.0 / float64(depth+1)

	refracted := colors.Transparent()
	if m.Refracts() {
		refracted = c.refract(dir, hit, m, depth)
	}

	reflected := colors.Transparent()
	if m.Ks > 0 {
		reflected = c.mirror(dir, hit, depth).Equalize()
	}

	return refracted.Scale(m.Kt).
		Add(reflected.Scale(m.Ks * attenuation)).
		Add(local.Scale(math.Max(0, 1-m.Ks*attenuation-m.Kt))).
		Equalize()
}

// mirror traces the reflection of dir at the hit.
func (c *RayContext) mirror(dir vectors.Vec3, hit geom.Intersection, depth int) colors.Color4 {
	c.counters.secondary++
	out := dir.Reflect(hit.Normal)
	return c.Trace(vectors.NewRay(spawn(hit.Point, hit.Normal, out), out), depth+1)
}

// refract handles the dielectric branch. Leaving the material swaps the
// indices and flips the normal. Total internal reflection falls back to the
// mirror ray tinted by the light color.
func (c *RayContext) refract(dir vectors.Vec3, hit geom.Intersection, m geom.Material, depth int) colors.Color4 {
	kr1, kr2 := 1.0, m.Kr
	n := hit.Normal
	cosTheta := dir.Dot(n)
	if cosTheta > 0 {
		n = n.Neg()
		kr1, kr2 = kr2, kr1
		cosTheta = -cosTheta
	}

	nrf := kr1 / kr2
	discriminant := 1.0 - nrf*nrf*(1.0-cosTheta*cosTheta)

	if discriminant < 0 {
		return c.mirror(dir, hit, depth).Mul(c.scene.Light.Color).ClampHigh()
	}

	tangent := dir.Sub(n.Scale(cosTheta)).Scale(nrf)
	out := tangent.Sub(n.Scale(math.Sqrt(discriminant))).Normalize()

	c.counters.secondary++
	transmitted := c.Trace(vectors.NewRay(hit.Point.Add(out.Scale(Epsilon)), out), depth+1).Equalize()
	if !c.opts.FresnelBlend {
		return transmitted
	}

	reflectance := Schlick(-cosTheta, nrf)
	return transmitted.Mix(c.mirror(dir, hit, depth).Equalize(), reflectance)
}
