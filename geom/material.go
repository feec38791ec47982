package geom

import "github.com/echoflaresat/whitted/colors"

// Sampler returns a surface color for texture coordinates u, v in [0,1].
// v = 0 is the top row of the image.
type Sampler interface {
	Sample(u, v float64) colors.Color4
}

// Material holds the Phong and transmission coefficients of a primitive.
//
// Kr is only meaningful when Kt > 0. Values are not validated; odd
// combinations render oddly but never fail.
type Material struct {
	Color colors.Color4

	Ka float64 // ambient
	Kd float64 // diffuse
	Ks float64 // specular and mirror reflection
	Kn float64 // shininess exponent
	Kt float64 // transmission in [0,1]
	Kr float64 // refractive index

	// Texture replaces Color when set.
	Texture Sampler
}

// Diffuse returns an ambient+diffuse material with no highlights.
func Diffuse(c colors.Color4, ka, kd float64) Material {
	return Material{Color: c, Ka: ka, Kd: kd, Kn: 16}
}

// Refracts reports whether the material takes the dielectric branch.
func (m Material) Refracts() bool {
	return m.Kt > 0 && m.Kr > 0
}
