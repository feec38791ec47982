package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/echoflaresat/whitted/render"
	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/texture"
	"github.com/urfave/cli"
)

const textureCacheSize = 32

// loadScene builds the scene selected by --scene or --scene-file and
// applies the camera and sun flags.
func loadScene(ctx *cli.Context, textures *texture.Cache) (*scene.Scene, error) {
	var (
		sc  *scene.Scene
		err error
	)
	if path := ctx.String("scene-file"); path != "" {
		sc, err = scene.Load(path, textures)
	} else {
		sc, err = scene.Preset(ctx.String("scene"), ctx.Uint64("seed"))
	}
	if err != nil {
		return nil, err
	}

	sc.Camera = sc.Camera.Step(ctx.Int("dolly"), ctx.Int("pan"))

	if at := ctx.String("sun-time"); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("parse --sun-time: %w", err)
		}
		site, err := parseSite(ctx.String("site"))
		if err != nil {
			return nil, err
		}
		color := sc.Light.Color
		sc.Light = scene.SunLight(t, site, sc.Camera.Target, ctx.Float64("sun-distance"))
		sc.Light.Color = color
		if sc.Light.Position.Y < sc.Camera.Target.Y {
			logger.Warningf("sun is below the horizon at %s", t.Format(time.RFC3339))
		}
		logger.Infof("sun light at %v", sc.Light.Position)
	}
	return sc, nil
}

// parseSite reads "lat,lon" in degrees.
func parseSite(s string) (scene.Site, error) {
	lat, lon, err := parsePair(s, ",")
	if err != nil {
		return scene.Site{}, fmt.Errorf("parse --site %q: %w", s, err)
	}
	return scene.Site{Lat: lat, Lon: lon}, nil
}

func parsePair(s, sep string) (float64, float64, error) {
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two values separated by %q", sep)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseIntPair(s, sep string) (int, int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two integers separated by %q", sep)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// parseGrid reads "COLSxROWS".
func parseGrid(s string) (int, int, error) {
	cols, rows, err := parseIntPair(s, "x")
	if err != nil {
		return 0, 0, fmt.Errorf("invalid tile layout %q (expected NxM): %w", s, err)
	}
	return cols, rows, nil
}

// parseTile reads "COL,ROW".
func parseTile(s string) (int, int, error) {
	col, row, err := parseIntPair(s, ",")
	if err != nil {
		return 0, 0, fmt.Errorf("parse --tile %q: %w", s, err)
	}
	return col, row, nil
}

// renderOptions maps the render flags onto render.Options.
func renderOptions(ctx *cli.Context) (render.Options, error) {
	opts := render.DefaultOptions()
	opts.Width = ctx.Int("width")
	opts.Height = ctx.Int("height")
	opts.Samples = ctx.Int("spp")
	opts.ShadowSamples = ctx.Int("shadow-samples")
	opts.MaxDepth = ctx.Int("depth")
	opts.FresnelBlend = ctx.Bool("fresnel")
	opts.Seed = ctx.Uint64("seed")
	if w := ctx.Int("workers"); w > 0 {
		opts.Workers = w
	}

	if tile := ctx.String("tile"); tile != "" {
		cols, rows, err := parseGrid(ctx.String("grid"))
		if err != nil {
			return opts, err
		}
		col, row, err := parseTile(tile)
		if err != nil {
			return opts, err
		}
		region, err := opts.Tile(col, row, cols, rows)
		if err != nil {
			return opts, err
		}
		opts.Region = region
	}
	return opts, opts.Validate()
}

// SceneFlags are shared by every command that builds a scene.
func SceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "cornell",
			Usage: "built-in scene (see the scenes command)",
		},
		cli.StringFlag{
			Name:  "scene-file",
			Usage: "JSON scene file, overrides --scene",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "seed for sampling and random scenes",
		},
		cli.IntFlag{
			Name:  "dolly",
			Usage: "camera steps forward (negative moves back)",
		},
		cli.IntFlag{
			Name:  "pan",
			Usage: "camera steps up (negative moves down)",
		},
		cli.StringFlag{
			Name:  "sun-time",
			Usage: "place the light at the sun position for this RFC3339 time",
		},
		cli.StringFlag{
			Name:  "site",
			Value: "0,0",
			Usage: "observer latitude,longitude in degrees for --sun-time",
		},
		cli.Float64Flag{
			Name:  "sun-distance",
			Value: 10,
			Usage: "distance of the sun light from the camera target",
		},
	}
}
