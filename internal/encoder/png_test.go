package encoder

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

func TestEncodePNG(t *testing.T) {
	// 2x2: red, green / blue, white
	pix := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, 2, 2, pix))
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), buf.Bytes()[:8])

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	want := map[[2]int]color.RGBA{
		{0, 0}: {255, 0, 0, 255},
		{1, 0}: {0, 255, 0, 255},
		{0, 1}: {0, 0, 255, 255},
		{1, 1}: {255, 255, 255, 255},
	}
	for at, c := range want {
		got := color.RGBAModel.Convert(img.At(at[0], at[1])).(color.RGBA)
		assert.Equal(t, c, got, "pixel %v", at)
	}
}

func TestEncodePNGWritesRGBColourType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, 1, 1, []byte{1, 2, 3}))

	// IHDR: 8 signature + 4 length + 4 type, then width(4) height(4) depth colourType
	b := buf.Bytes()
	assert.Equal(t, "IHDR", string(b[12:16]))
	assert.Equal(t, byte(8), b[24], "bit depth")
	assert.Equal(t, byte(2), b[25], "colour type truecolour")
}

func TestEncodePNGBufferSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		pix           []byte
	}{
		{name: "short buffer", width: 2, height: 2, pix: make([]byte, 11)},
		{name: "long buffer", width: 2, height: 2, pix: make([]byte, 13)},
		{name: "zero width", width: 0, height: 2, pix: nil},
		{name: "negative height", width: 2, height: -1, pix: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := EncodePNG(&buf, tt.width, tt.height, tt.pix)
			assert.ErrorIs(t, err, ErrBufferSize)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestEncodeRaster(t *testing.T) {
	cfg := terrain.DefaultGenerationConfig()
	cfg.Width, cfg.Height, cfg.Octaves = 8, 6, 2

	raster, err := terrain.Generate(&cfg)
	require.NoError(t, err)

	data, err := NewEncoder(png.BestSpeed).Encode(raster)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 8, img.Bounds().Dx())
	require.Equal(t, 6, img.Bounds().Dy())

	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			c := raster.RGBAt(x, y)
			got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			assert.Equal(t, color.RGBA{c[0], c[1], c[2], 255}, got)
		}
	}
}
