package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/echoflaresat/whitted/render"
	"github.com/echoflaresat/whitted/texture"
	"github.com/urfave/cli"
)

// Probe prints every intersection along the ray through one pixel.
func Probe(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("expected pixel coordinates X Y")
	}
	x, err := strconv.Atoi(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.Atoi(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	opts := render.DefaultOptions()
	opts.Width = ctx.Int("width")
	opts.Height = ctx.Int("height")
	if err := opts.Validate(); err != nil {
		return err
	}
	if x < 0 || y < 0 || x >= opts.Width || y >= opts.Height {
		return fmt.Errorf("pixel %d,%d outside %dx%d frame", x, y, opts.Width, opts.Height)
	}

	textures, err := texture.NewCache(textureCacheSize)
	if err != nil {
		return err
	}
	defer textures.Purge()

	sc, err := loadScene(ctx, textures)
	if err != nil {
		return err
	}

	res := render.Probe(sc, opts, x, y)
	logger.Noticef("ray %v -> %v\n%s", res.Ray.Origin, res.Ray.Direction, res.Table())
	return nil
}
