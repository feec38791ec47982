package texture

import (
	"errors"
	"image"
	"io"
	"math"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/imageio"
	"github.com/echoflaresat/whitted/log"
	"github.com/echoflaresat/whitted/texture/tiff"
)

var logger = log.New("texture")

// Texture is an image sampled by normalized surface coordinates.
type Texture struct {
	Width  int
	Height int
	img    image.Image
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) Texture {
	b := img.Bounds()
	return Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		img:    img,
	}
}

// Load reads a texture, preferring the memory-mapped TIFF readers so large
// maps are not decoded up front.
func Load(path string) (Texture, error) {
	img, err := loadImage(path)
	if err != nil {
		return Texture{}, err
	}
	return FromImage(img), nil
}

func loadImage(path string) (image.Image, error) {
	img, err := tiff.LoadStripedTiff(path)
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, tiff.ErrInvalidTiffHeader) {
		logger.Warningf("failed to load striped TIFF %s: %v", path, err)
	}

	img, err = tiff.LoadTiledTiff(path)
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, tiff.ErrInvalidTiffHeader) {
		logger.Warningf("failed to load tiled TIFF %s: %v", path, err)
	}

	// fallback to image codecs
	return imageio.Load(path)
}

// Close releases the memory mapping behind a TIFF-backed texture.
func (t Texture) Close() error {
	if c, ok := t.img.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Sample returns the nearest texel for (u, v), no interpolation.
// Coordinates outside [0,1] clamp to the border.
func (t Texture) Sample(u, v float64) colors.Color4 {
	if t.img == nil || t.Width == 0 || t.Height == 0 {
		return colors.Black()
	}
	x := int(math.Floor(u * float64(t.Width)))
	y := int(math.Floor(v * float64(t.Height)))
	return t.getColorAtXY(x, y)
}

func (t Texture) getColorAtXY(x, y int) colors.Color4 {
	if x < 0 {
		x = 0
	} else if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.Height {
		y = t.Height - 1
	}

	min := t.img.Bounds().Min
	return colors.FromStandardColor(t.img.At(min.X+x, min.Y+y))
}
