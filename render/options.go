package render

import (
	"errors"
	"fmt"
	"image"
	"runtime"
)

var ErrInvalidOptions = errors.New("invalid render options")

// Options control a single render.
type Options struct {
	Width  int
	Height int

	// Jittered primary rays per pixel.
	Samples int
	// Light positions per shadow estimate; 1 gives hard shadows.
	ShadowSamples int

	// Rays deeper than MaxDepth return transparent black. Primary rays
	// start at StartDepth.
	MaxDepth   int
	StartDepth int

	Workers int
	Seed    uint64

	// FresnelBlend weights refraction against mirror reflection with the
	// Schlick term instead of using the transmitted color alone.
	FresnelBlend bool

	// Region restricts rendering to a sub-rectangle of the frame. The
	// zero value renders everything.
	Region image.Rectangle
}

func DefaultOptions() Options {
	return Options{
		Width:         512,
		Height:        512,
		Samples:       64,
		ShadowSamples: 256,
		MaxDepth:      8,
		StartDepth:    1,
		Workers:       runtime.GOMAXPROCS(0),
		Seed:          1,
	}
}

// Frame returns the full image rectangle.
func (o Options) Frame() image.Rectangle {
	return image.Rect(0, 0, o.Width, o.Height)
}

// Bounds returns the rectangle that will actually be rendered.
func (o Options) Bounds() image.Rectangle {
	if o.Region.Empty() {
		return o.Frame()
	}
	return o.Region
}

func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: frame %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case o.Samples < 1:
		return fmt.Errorf("%w: samples %d", ErrInvalidOptions, o.Samples)
	case o.ShadowSamples < 1:
		return fmt.Errorf("%w: shadow samples %d", ErrInvalidOptions, o.ShadowSamples)
	case o.MaxDepth < 0 || o.StartDepth < 0:
		return fmt.Errorf("%w: depth %d from %d", ErrInvalidOptions, o.MaxDepth, o.StartDepth)
	case o.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalidOptions, o.Workers)
	}
	if !o.Region.Empty() && !o.Region.In(o.Frame()) {
		return fmt.Errorf("%w: region %v outside frame %v", ErrInvalidOptions, o.Region, o.Frame())
	}
	return nil
}

// Tile returns the region of tile (col, row) when the frame is split into
// cols x rows tiles. Edge tiles absorb the remainder.
func (o Options) Tile(col, row, cols, rows int) (image.Rectangle, error) {
	if cols < 1 || rows < 1 || col < 0 || col >= cols || row < 0 || row >= rows {
		return image.Rectangle{}, fmt.Errorf("%w: tile %d,%d of %dx%d", ErrInvalidOptions, col, row, cols, rows)
	}
	tw, th := o.Width/cols, o.Height/rows
	if tw == 0 || th == 0 {
		return image.Rectangle{}, fmt.Errorf("%w: %dx%d tiles for a %dx%d frame", ErrInvalidOptions, cols, rows, o.Width, o.Height)
	}
	r := image.Rect(col*tw, row*th, (col+1)*tw, (row+1)*th)
	if col == cols-1 {
		r.Max.X = o.Width
	}
	if row == rows-1 {
		r.Max.Y = o.Height
	}
	return r, nil
}
