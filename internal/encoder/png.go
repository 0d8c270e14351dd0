// Package encoder wraps finished RGB8 rasters into PNG images.
package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

// ErrBufferSize is returned when a pixel buffer is not exactly 3*width*height bytes.
var ErrBufferSize = errors.New("pixel buffer size does not match dimensions")

// ContentType is the MIME type of encoded images.
const ContentType = "image/png"

// rgbImage exposes a packed RGB8 buffer as an image.Image without copying.
type rgbImage struct {
	width  int
	height int
	pix    []byte
}

func (m *rgbImage) ColorModel() color.Model { return color.RGBAModel }

func (m *rgbImage) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

func (m *rgbImage) At(x, y int) color.Color {
	i := 3 * (y*m.width + x)
	return color.RGBA{R: m.pix[i], G: m.pix[i+1], B: m.pix[i+2], A: 0xff}
}

// Opaque lets image/png pick an RGB (colour type 2) encoding.
func (m *rgbImage) Opaque() bool { return true }

// Encoder writes 8-bit RGB PNGs.
type Encoder struct {
	png png.Encoder
}

// NewEncoder returns an encoder at the given compression level.
func NewEncoder(level png.CompressionLevel) *Encoder {
	return &Encoder{png: png.Encoder{CompressionLevel: level}}
}

// EncodeRGB writes pix (row-major R,G,B bytes) as a width×height PNG.
func (e *Encoder) EncodeRGB(w io.Writer, width, height int, pix []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBufferSize, width, height)
	}
	if len(pix) != 3*width*height {
		return fmt.Errorf("%w: got %d bytes for %dx%d, want %d", ErrBufferSize, len(pix), width, height, 3*width*height)
	}
	if err := e.png.Encode(w, &rgbImage{width: width, height: height, pix: pix}); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Encode returns the PNG bytes of raster.
func (e *Encoder) Encode(raster *terrain.Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.EncodeRGB(&buf, raster.Width, raster.Height, raster.Pix); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePNG writes pix with the default compression level.
func EncodePNG(w io.Writer, width, height int, pix []byte) error {
	return NewEncoder(png.DefaultCompression).EncodeRGB(w, width, height, pix)
}

// Encode returns the PNG bytes of raster with the default compression level.
func Encode(raster *terrain.Raster) ([]byte, error) {
	return NewEncoder(png.DefaultCompression).Encode(raster)
}
