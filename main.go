package main

import (
	"os"

	"github.com/echoflaresat/whitted/cmd"
	"github.com/echoflaresat/whitted/log"
	"github.com/urfave/cli"
)

var logger = log.New("main")

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "whitted"
	app.Usage = "render scenes with recursive Whitted-style ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Trace a built-in scene or a JSON scene file and write the frame to disk.

With --grid and --tile only one tile of the frame is traced; the tiles can
be combined afterwards with the merge command.`,
			Flags:  cmd.RenderFlags(),
			Action: cmd.RenderFrame,
		},
		{
			Name:      "probe",
			Usage:     "list every intersection along the primary ray of a pixel",
			ArgsUsage: "X Y",
			Flags:     cmd.SceneFlags(),
			Action:    cmd.Probe,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "seed for random scenes",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:      "merge",
			Usage:     "assemble rendered tiles into one frame",
			ArgsUsage: "COLSxROWS output tile1 tile2 ...",
			Action:    cmd.MergeTiles,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
