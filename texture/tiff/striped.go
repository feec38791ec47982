package tiff

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/echoflaresat/whitted/colors"
	"golang.org/x/exp/mmap"
)

type stripedTiff struct {
	header TiffHeader
	reader *mmap.ReaderAt
}

// LoadStripedTiff memory-maps an uncompressed, strip-organized TIFF.
// The returned image reads pixels lazily and must be closed by the caller
// through io.Closer.
func LoadStripedTiff(path string) (image.Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	img, err := newStripedTiff(reader)
	if err != nil {
		reader.Close()
		return nil, err
	}
	return img, nil
}

func newStripedTiff(reader *mmap.ReaderAt) (*stripedTiff, error) {
	header, err := parseTiffHeader(reader)
	if err != nil {
		return nil, err
	}
	if len(header.StripOffsets) == 0 {
		return nil, fmt.Errorf("%w: no strips", ErrInvalidTiffHeader)
	}
	if header.Compression != CompressionNone {
		return nil, fmt.Errorf("unsupported compression: %d", header.Compression)
	}
	if err := checkPixelFormat(header); err != nil {
		return nil, err
	}
	if len(header.StripOffsets) != len(header.StripByteCounts) {
		return nil, fmt.Errorf("invalid strip offset/length")
	}
	return &stripedTiff{header: header, reader: reader}, nil
}

func (t *stripedTiff) ColorModel() color.Model {
	return color.RGBAModel
}

func (t *stripedTiff) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.header.Width, t.header.Height)
}

func (t *stripedTiff) Close() error {
	return t.reader.Close()
}

var _ io.Closer = (*stripedTiff)(nil)

func (t *stripedTiff) At(x, y int) color.Color {
	h := t.header

	strip := y / h.RowsPerStrip
	localY := y % h.RowsPerStrip
	bytesPerPixel := h.SamplesPerPixel

	idx := h.StripOffsets[strip] + (localY*h.Width+x)*bytesPerPixel

	switch h.Photometric {
	case PhotometricRGB:
		var buf [3]byte
		_, err := t.reader.ReadAt(buf[:], int64(idx))
		if err != nil {
			panic(fmt.Sprintf("could not read RGB pixel at (%d,%d): %v", x, y, err))
		}
		return colors.From8BitRgb(buf[0], buf[1], buf[2], 255)

	case PhotometricBlackIsZero:
		var b [1]byte
		_, err := t.reader.ReadAt(b[:], int64(idx))
		if err != nil {
			panic(fmt.Sprintf("could not read grayscale pixel at (%d,%d): %v", x, y, err))
		}
		return colors.From8BitRgb(b[0], b[0], b[0], 255)
	default:
		panic(fmt.Sprintf("unsupported PhotometricInterpretation: %d", h.Photometric))
	}
}
