package cmd

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/echoflaresat/whitted/imageio"
	"github.com/urfave/cli"
)

// MergeTiles assembles tiles rendered with --grid/--tile into one image.
// Arguments: COLSxROWS output tile... with tiles in row-major order.
func MergeTiles(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() < 3 {
		return errors.New("usage: merge <cols>x<rows> <output> <tile1> <tile2> ...")
	}
	cols, rows, err := parseGrid(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	output := ctx.Args().Get(1)
	inputFiles := ctx.Args()[2:]
	if len(inputFiles) != cols*rows {
		return fmt.Errorf("expected %d input files, got %d", cols*rows, len(inputFiles))
	}

	tiles := make([]image.Image, 0, len(inputFiles))
	for _, path := range inputFiles {
		logger.Infof("processing %s", path)
		tile, err := imageio.Load(path)
		if err != nil {
			return fmt.Errorf("could not load tile %q: %w", path, err)
		}
		tiles = append(tiles, tile)
	}

	canvas, err := Merge(cols, rows, tiles)
	if err != nil {
		return err
	}
	logger.Noticef("creating %s (%v)", output, canvas.Bounds())
	return imageio.Save(output, canvas)
}

// Merge places tiles in row-major order. Column widths come from the first
// row and row heights from the first column, so edge tiles may be larger.
func Merge(cols, rows int, tiles []image.Image) (*image.NRGBA, error) {
	if cols < 1 || rows < 1 || len(tiles) != cols*rows {
		return nil, fmt.Errorf("%d tiles do not fill a %dx%d grid", len(tiles), cols, rows)
	}

	xs := make([]int, cols+1)
	for col := 0; col < cols; col++ {
		xs[col+1] = xs[col] + tiles[col].Bounds().Dx()
	}
	ys := make([]int, rows+1)
	for row := 0; row < rows; row++ {
		ys[row+1] = ys[row] + tiles[row*cols].Bounds().Dy()
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, xs[cols], ys[rows]))
	for idx, tile := range tiles {
		col := idx % cols
		row := idx / cols
		b := tile.Bounds()
		if b.Dx() != xs[col+1]-xs[col] || b.Dy() != ys[row+1]-ys[row] {
			return nil, fmt.Errorf("tile %d size mismatch: expected %dx%d, got %dx%d",
				idx, xs[col+1]-xs[col], ys[row+1]-ys[row], b.Dx(), b.Dy())
		}
		dst := image.Rect(xs[col], ys[row], xs[col+1], ys[row+1])
		draw.Draw(canvas, dst, tile, b.Min, draw.Src)
	}
	return canvas, nil
}
