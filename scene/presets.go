package scene

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/geom"
	"github.com/echoflaresat/whitted/vectors"
)

const (
	fovDeg = 45.0

	// Primary rays of the box scenes start past the front wall.
	boxNear  = 4.5
	openNear = 0.01
)

var presets = map[string]func(seed uint64) *Scene{
	"sphere":         unitSphere,
	"square":         unitSquare,
	"cornell":        cornellBox,
	"cornell-random": cornellRandom,
}

// Preset builds a named built-in scene. Only cornell-random uses seed.
func Preset(name string, seed uint64) (*Scene, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(seed), nil
}

// PresetNames lists the built-in scenes in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookDownZ(z, near float64) CameraSpec {
	return CameraSpec{
		Position: vectors.New(0, 0, z),
		Target:   vectors.New(0, 0, z-1),
		Up:       vectors.New(0, 1, 0),
		FOVDeg:   fovDeg,
		Near:     near,
	}
}

func unitSphere(uint64) *Scene {
	s := &Scene{
		Name:   "sphere",
		Light:  Light{Position: vectors.New(0, 0, 4), Color: colors.White()},
		Camera: lookDownZ(3, openNear),
	}
	s.Add(
		geom.NewSphere("Diffuse sphere", vectors.New(0.5, 0, -1), 1, geom.Diffuse(colors.Red(), 0, 1)),
		geom.NewSphere("Diffuse sphere2", vectors.New(-1, 0, 1), 1, geom.Diffuse(colors.Green(), 0, 1)),
	)
	return s
}

func unitSquare(uint64) *Scene {
	s := &Scene{
		Name:   "square",
		Light:  Light{Position: vectors.New(0, 0, 4), Color: colors.White()},
		Camera: lookDownZ(3, openNear),
	}
	s.Add(geom.NewQuad("Unit Square", vectors.Zero(), vectors.New(1, 0, 0), vectors.New(0, 1, 0),
		geom.Diffuse(colors.Red(), 0, 1)))
	return s
}

type wall struct {
	name  string
	color colors.Color4
	place func(vectors.Vec3) vectors.Vec3
}

// Each wall is the unit square pushed back by 2 and scaled by 2, then
// rotated into place.
var walls = []wall{
	{"Back Wall", colors.New(0.2, 0.8, 1.0, 1), func(v vectors.Vec3) vectors.Vec3 { return v }},
	{"Left Wall", colors.New(1.0, 0.0, 0.2, 1), func(v vectors.Vec3) vectors.Vec3 { return v.RotateY(90) }},
	{"Right Wall", colors.New(0.5, 0.0, 0.5, 1), func(v vectors.Vec3) vectors.Vec3 { return v.RotateY(-90) }},
	{"Floor", colors.New(0.3, 0.3, 0.3, 1), func(v vectors.Vec3) vectors.Vec3 { return v.RotateX(-90) }},
	{"Ceiling", colors.New(0.5, 0.5, 0.5, 1), func(v vectors.Vec3) vectors.Vec3 { return v.RotateX(90) }},
	{"Front Wall", colors.New(1.0, 1.0, 1.0, 1), func(v vectors.Vec3) vectors.Vec3 { return v.RotateY(180) }},
}

func boxShell(name string) *Scene {
	s := &Scene{
		Name:   name,
		Light:  Light{Position: vectors.New(0, 1.5, 0), Color: colors.White()},
		Camera: lookDownZ(6, boxNear),
	}
	for _, w := range walls {
		s.Add(geom.NewQuad(w.name,
			w.place(vectors.New(0, 0, -2)),
			w.place(vectors.New(2, 0, 0)),
			w.place(vectors.New(0, 2, 0)),
			geom.Diffuse(w.color, 0, 1)))
	}
	return s
}

func cornellBox(uint64) *Scene {
	s := boxShell("cornell")
	s.Add(
		geom.NewSphere("Diffuse Yellow Sphere", vectors.New(1.35, -1.5, -1.8), 0.15, geom.Material{
			Color: colors.New(1, 1, 0, 1), Ka: 0.2, Kd: 0.8, Ks: 0.005, Kn: 16,
		}),
		geom.NewSphere("Glass sphere", vectors.New(1.0, -1.25, 0), 0.75, geom.Material{
			Color: colors.Red(), Kn: 16, Kt: 0.8, Kr: 1.4,
		}),
		geom.NewSphere("Grey Mirrored Sphere", vectors.New(-1.0, -1.25, -0.5), 0.75, geom.Material{
			Color: colors.New(0.5, 0.5, 0.5, 1), Kd: 0.2, Ks: 0.8, Kn: 16,
		}),
		geom.NewSphere("Diffuse Green Sphere", vectors.New(-1.0, -1.75, 0.5), 0.25, geom.Material{
			Color: colors.New(0.1, 1, 0.1, 1), Ka: 0.2, Kd: 0.8, Ks: 0.005, Kn: 32,
		}),
		geom.NewSphere("Specular + Diffuse Sphere", vectors.New(-1.15, -1.75, 0.95), 0.25, geom.Material{
			Color: colors.New(1, 0.8, 0.8, 1), Ka: 0.2, Kd: 0.8, Ks: 0.1, Kn: 16,
		}),
	)
	return s
}

// cornellRandom scatters seeded random spheres inside the box: twelve
// diffuse (half with highlights), three mirrored, three glass.
func cornellRandom(seed uint64) *Scene {
	s := boxShell("cornell-random")
	rng := rand.New(rand.NewPCG(seed, 0x636f726e656c6c))

	randomColor := func() colors.Color4 {
		return colors.New(rng.Float64(), rng.Float64(), rng.Float64(), 1)
	}
	// position draws x, z, and y in that order for a sphere of the given size
	position := func(size float64) vectors.Vec3 {
		x := -2 + size + (4-2*size)*rng.Float64()
		z := -1.5 + 2.5*rng.Float64()
		y := -2 + size + (2-size)*rng.Float64()
		return vectors.New(x, y, z)
	}

	for i := 0; i < 6; i++ {
		col := randomColor()
		size := 0.05 + 0.35*rng.Float64()
		s.Add(geom.NewSphere(fmt.Sprintf("Amb + Diffuse Sphere %d", i), position(size), size, geom.Material{
			Color: col, Ka: 0.2, Kd: 0.8, Kn: 16,
		}))

		col = randomColor()
		size = 0.05 + 0.35*rng.Float64()
		s.Add(geom.NewSphere(fmt.Sprintf("Amb + Diffuse + Specular Sphere %d", i), position(size), size, geom.Material{
			Color: col, Ka: 0.2, Kd: 0.8, Ks: 0.24, Kn: 16,
		}))
	}

	for i := 0; i < 3; i++ {
		col := randomColor()
		size := 0.05 + 0.5*rng.Float64()
		p := position(size)
		// mirrors rest on the floor
		p.Y = -2 + size
		s.Add(geom.NewSphere(fmt.Sprintf("Mirrored Sphere %d", i), p, size, geom.Material{
			Color: col, Kd: 0.2, Ks: 0.8, Kn: 16,
		}))
	}

	for i := 0; i < 3; i++ {
		size := 0.05 + 0.35*rng.Float64()
		s.Add(geom.NewSphere(fmt.Sprintf("Glass Sphere %d", i), position(size), size, geom.Material{
			Color: colors.New(0.9, 0.1, 0.1, 1), Kn: 16, Kt: 1, Kr: 1.4,
		}))
	}
	return s
}
