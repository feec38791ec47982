package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/geom"
	"github.com/echoflaresat/whitted/texture"
	"github.com/echoflaresat/whitted/vectors"
)

type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() vectors.Vec3 {
	return vectors.New(v[0], v[1], v[2])
}

// ColorCfg is RGB or RGBA; alpha defaults to 1.
type ColorCfg []float64

func (c ColorCfg) color() (colors.Color4, error) {
	switch len(c) {
	case 3:
		return colors.New(c[0], c[1], c[2], 1), nil
	case 4:
		return colors.New(c[0], c[1], c[2], c[3]), nil
	default:
		return colors.Color4{}, fmt.Errorf("color needs 3 or 4 components, got %d", len(c))
	}
}

type CameraCfg struct {
	Position Vec3Cfg  `json:"position"`
	Target   Vec3Cfg  `json:"target"`
	Up       *Vec3Cfg `json:"up,omitempty"`     // defaults to +Y
	FOVDeg   float64  `json:"fovDeg,omitempty"` // defaults to 45
	Near     float64  `json:"near,omitempty"`
}

type LightCfg struct {
	Position Vec3Cfg  `json:"position"`
	Color    ColorCfg `json:"color,omitempty"` // defaults to white
}

type MaterialCfg struct {
	Color   ColorCfg `json:"color"`
	Ka      float64  `json:"ka"`
	Kd      float64  `json:"kd"`
	Ks      float64  `json:"ks"`
	Kn      float64  `json:"kn"`
	Kt      float64  `json:"kt"`
	Kr      float64  `json:"kr"`
	Texture string   `json:"texture,omitempty"`
}

// PrimitiveCfg is a sphere (center, radius) or a quad (center and the
// half-edge vectors u, v).
type PrimitiveCfg struct {
	Type     string      `json:"type"`
	Name     string      `json:"name"`
	Center   Vec3Cfg     `json:"center"`
	Radius   float64     `json:"radius,omitempty"`
	U        Vec3Cfg     `json:"u,omitempty"`
	V        Vec3Cfg     `json:"v,omitempty"`
	Material MaterialCfg `json:"material"`
}

type Config struct {
	Name       string         `json:"name"`
	Camera     CameraCfg      `json:"camera"`
	Light      LightCfg       `json:"light"`
	Primitives []PrimitiveCfg `json:"primitives"`
}

// Load reads a JSON scene file. Texture paths are relative to the file.
func Load(path string, textures *texture.Cache) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	return Parse(data, filepath.Dir(path), textures)
}

// Parse builds and validates a scene from JSON. A nil cache loads every
// texture reference separately.
func Parse(data []byte, baseDir string, textures *texture.Cache) (*Scene, error) {
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	s, err := cfg.Build(baseDir, textures)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (cfg Config) Build(baseDir string, textures *texture.Cache) (*Scene, error) {
	s := &Scene{
		Name:   cfg.Name,
		Camera: cfg.Camera.build(),
		Light:  Light{Position: cfg.Light.Position.vec(), Color: colors.White()},
	}
	if cfg.Light.Color != nil {
		c, err := cfg.Light.Color.color()
		if err != nil {
			return nil, fmt.Errorf("%w: light: %v", ErrInvalidScene, err)
		}
		s.Light.Color = c
	}

	for i, pc := range cfg.Primitives {
		m, err := pc.Material.build(baseDir, textures)
		if err != nil {
			return nil, fmt.Errorf("%w: primitive %d (%s): %v", ErrInvalidScene, i, pc.Name, err)
		}
		switch pc.Type {
		case "sphere":
			s.Add(geom.NewSphere(pc.Name, pc.Center.vec(), pc.Radius, m))
		case "quad":
			s.Add(geom.NewQuad(pc.Name, pc.Center.vec(), pc.U.vec(), pc.V.vec(), m))
		default:
			return nil, fmt.Errorf("%w: primitive %d (%s): unknown type %q", ErrInvalidScene, i, pc.Name, pc.Type)
		}
	}
	return s, nil
}

func (c CameraCfg) build() CameraSpec {
	cam := CameraSpec{
		Position: c.Position.vec(),
		Target:   c.Target.vec(),
		Up:       vectors.New(0, 1, 0),
		FOVDeg:   c.FOVDeg,
		Near:     c.Near,
	}
	if c.Up != nil {
		cam.Up = c.Up.vec()
	}
	if cam.FOVDeg == 0 {
		cam.FOVDeg = fovDeg
	}
	return cam
}

func (mc MaterialCfg) build(baseDir string, textures *texture.Cache) (geom.Material, error) {
	m := geom.Material{
		Color: colors.White(),
		Ka:    mc.Ka,
		Kd:    mc.Kd,
		Ks:    mc.Ks,
		Kn:    mc.Kn,
		Kt:    mc.Kt,
		Kr:    mc.Kr,
	}
	if mc.Color != nil {
		c, err := mc.Color.color()
		if err != nil {
			return m, err
		}
		m.Color = c
	}
	if mc.Texture == "" {
		return m, nil
	}

	path := mc.Texture
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	var (
		tex texture.Texture
		err error
	)
	if textures != nil {
		tex, err = textures.Get(path)
	} else {
		tex, err = texture.Load(path)
	}
	if err != nil {
		return m, err
	}
	m.Texture = tex
	return m, nil
}
