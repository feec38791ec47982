package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/geom"
	"github.com/echoflaresat/whitted/vectors"
)

var (
	ErrInvalidScene  = errors.New("invalid scene")
	ErrUnknownPreset = errors.New("unknown scene preset")
)

// Light is a point light. Soft shadows spread it over a square area at
// render time.
type Light struct {
	Position vectors.Vec3
	Color    colors.Color4
}

// CameraSpec places a pinhole camera. Primary rays start on the near plane,
// Near units in front of Position along the view axis.
type CameraSpec struct {
	Position vectors.Vec3
	Target   vectors.Vec3
	Up       vectors.Vec3
	FOVDeg   float64 // vertical
	Near     float64
}

// CameraStep is the distance of one interactive camera move.
const CameraStep = 0.15

// Translate moves the camera, keeping its orientation.
func (c CameraSpec) Translate(d vectors.Vec3) CameraSpec {
	c.Position = c.Position.Add(d)
	c.Target = c.Target.Add(d)
	return c
}

// Step applies dolly moves along -Z and pan moves along +Y, CameraStep
// each.
func (c CameraSpec) Step(dolly, pan int) CameraSpec {
	return c.Translate(vectors.New(0, float64(pan)*CameraStep, -float64(dolly)*CameraStep))
}

// Scene is everything the renderer reads. It must not change while a
// render is in flight.
type Scene struct {
	Name       string
	Primitives []geom.Primitive
	Light      Light
	Camera     CameraSpec
}

func (s *Scene) Add(p ...geom.Primitive) {
	s.Primitives = append(s.Primitives, p...)
}

// Validate checks the geometry a scene file can get wrong. The renderer
// itself never validates.
func (s *Scene) Validate() error {
	if len(s.Primitives) == 0 {
		return fmt.Errorf("%w: no primitives", ErrInvalidScene)
	}
	for i, p := range s.Primitives {
		m := p.Material
		if m.Kt < 0 || m.Kt > 1 {
			return fmt.Errorf("%w: primitive %d (%s): kt %g outside [0,1]", ErrInvalidScene, i, p.Name, m.Kt)
		}
		if m.Kt > 0 && m.Kr <= 0 {
			return fmt.Errorf("%w: primitive %d (%s): transmissive without refractive index", ErrInvalidScene, i, p.Name)
		}
		switch p.Kind {
		case geom.KindSphere:
			if !(p.Sphere.Radius > 0) {
				return fmt.Errorf("%w: primitive %d (%s): radius %g", ErrInvalidScene, i, p.Name, p.Sphere.Radius)
			}
		case geom.KindQuad:
			if p.Quad.Normal.Norm() == 0 {
				return fmt.Errorf("%w: primitive %d (%s): degenerate quad", ErrInvalidScene, i, p.Name)
			}
		default:
			return fmt.Errorf("%w: primitive %d (%s): unknown kind %v", ErrInvalidScene, i, p.Name, p.Kind)
		}
	}
	c := s.Camera
	if vectors.Distance(c.Position, c.Target) == 0 {
		return fmt.Errorf("%w: camera target equals position", ErrInvalidScene)
	}
	if !(c.FOVDeg > 0 && c.FOVDeg < 180) {
		return fmt.Errorf("%w: camera fov %g", ErrInvalidScene, c.FOVDeg)
	}
	if c.Near < 0 || math.IsNaN(c.Near) {
		return fmt.Errorf("%w: camera near %g", ErrInvalidScene, c.Near)
	}
	return nil
}
