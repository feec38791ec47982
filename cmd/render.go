package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/echoflaresat/whitted/imageio"
	"github.com/echoflaresat/whitted/render"
	"github.com/echoflaresat/whitted/texture"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := renderOptions(ctx)
	if err != nil {
		return err
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

	rctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering %s at %dx%d, region %v, %d spp on %d workers",
		sc.Name, opts.Width, opts.Height, opts.Bounds(), opts.Samples, opts.Workers)
	img, stats, err := render.Render(rctx, sc, opts)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	start := time.Now()
	if err := imageio.Save(out, img); err != nil {
		return err
	}
	logger.Infof("wrote frame to %s in %d ms", out, time.Since(start).Milliseconds())

	logger.Noticef("frame statistics\n%s", stats.Table())
	return nil
}

func RenderFlags() []cli.Flag {
	return append(SceneFlags(),
		cli.IntFlag{
			Name:  "spp",
			Value: 64,
			Usage: "samples per pixel",
		},
		cli.IntFlag{
			Name:  "shadow-samples",
			Value: 256,
			Usage: "area light samples per shadow estimate, 1 for hard shadows",
		},
		cli.IntFlag{
			Name:  "depth",
			Value: 8,
			Usage: "maximum recursion depth",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "parallel row workers (default: GOMAXPROCS)",
		},
		cli.BoolFlag{
			Name:  "fresnel",
			Usage: "blend refraction and reflection with the Schlick term",
		},
		cli.StringFlag{
			Name:  "grid",
			Value: "1x1",
			Usage: "tile layout COLSxROWS used by --tile",
		},
		cli.StringFlag{
			Name:  "tile",
			Usage: "render only tile COL,ROW of --grid",
		},
		cli.StringFlag{
			Name:  "out, o",
			Value: "frame.png",
			Usage: "image filename for the rendered frame (png, jpg, bmp, tif)",
		},
	)
}
