package cmd

import (
	"bytes"
	"fmt"

	"github.com/echoflaresat/whitted/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Primitives", "Camera", "Light"})
	for _, name := range scene.PresetNames() {
		sc, err := scene.Preset(name, ctx.Uint64("seed"))
		if err != nil {
			return err
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d", len(sc.Primitives)),
			fmt.Sprintf("%v", sc.Camera.Position),
			fmt.Sprintf("%v", sc.Light.Position),
		})
	}
	table.Render()
	logger.Noticef("built-in scenes\n%s", buf.String())
	return nil
}
