package raster_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"SimpleCAD/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecodeFormats(t *testing.T) {
	src := solid(8, 4, color.RGBA{R: 200, A: 255})
	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf))
			img, format, err := raster.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, name, format)
			assert.Equal(t, 8, img.Bounds().Dx())
			assert.Equal(t, 4, img.Bounds().Dy())
		})
	}
}

func TestDecodeRejectsOtherFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, solid(2, 2, color.Black), nil))
	_, _, err := raster.Decode(&buf)
	assert.ErrorIs(t, err, raster.ErrUnsupportedFormat)

	_, _, err = raster.Decode(bytes.NewReader([]byte("not an image")))
	assert.ErrorIs(t, err, raster.ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solid(5, 5, color.White)))
	require.NoError(t, f.Close())

	img, err := raster.Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 5), img.Bounds())

	_, err = raster.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestTransformedSize(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		scale, deg   float64
		wantW, wantH int
	}{
		{"identity", 20, 10, 1, 0, 20, 10},
		{"scale up", 20, 10, 2, 0, 40, 20},
		{"scale truncates", 15, 7, 0.5, 0, 7, 3},
		{"never zero", 3, 3, 0.01, 0, 1, 1},
		{"quarter turn", 20, 10, 1, 90, 10, 20},
		{"half turn", 20, 10, 1, 180, 20, 10},
		{"negative quarter turn", 20, 10, 1, -90, 10, 20},
		{"scale then turn", 20, 10, 2, 90, 20, 40},
		{"diagonal", 10, 10, 1, 45, 15, 15},
		{"empty source", 0, 10, 1, 30, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h := raster.TransformedSize(c.w, c.h, c.scale, c.deg)
			assert.Equal(t, c.wantW, w)
			assert.Equal(t, c.wantH, h)
		})
	}
}

func TestTransformScale(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	out := raster.Transform(solid(10, 6, red), 2, 0)
	assert.Equal(t, image.Rect(0, 0, 20, 12), out.Bounds())
	assert.Equal(t, red, out.RGBAAt(10, 6))
}

func TestTransformRotatesCounterClockwise(t *testing.T) {
	// left half red, right half blue
	src := solid(20, 10, color.RGBA{B: 255, A: 255})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	out := raster.Transform(src, 1, 90)
	require.Equal(t, image.Rect(0, 0, 10, 20), out.Bounds())

	// a quarter turn counter-clockwise brings the right half to the top
	top := out.RGBAAt(5, 3)
	bottom := out.RGBAAt(5, 16)
	assert.Greater(t, top.B, uint8(200))
	assert.Less(t, top.R, uint8(50))
	assert.Greater(t, bottom.R, uint8(200))
	assert.Less(t, bottom.B, uint8(50))
}

func TestTransformLeavesCornersTransparent(t *testing.T) {
	out := raster.Transform(solid(10, 10, color.White), 1, 45)
	assert.Equal(t, uint8(0), out.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), out.RGBAAt(7, 7).A)
}

func TestTransformDoesNotTouchSource(t *testing.T) {
	src := solid(4, 4, color.White)
	before := append([]uint8(nil), src.Pix...)
	raster.Transform(src, 3, 30)
	assert.Equal(t, before, src.Pix)
}

func TestTransformNil(t *testing.T) {
	out := raster.Transform(nil, 1, 0)
	assert.True(t, out.Bounds().Empty())
}

func TestFits(t *testing.T) {
	assert.True(t, raster.Fits(100, 100, 81, 0))
	assert.False(t, raster.Fits(100, 100, 82, 0))
	assert.False(t, raster.Fits(100, 100, 80, 45), "rotation grows the box")
	assert.True(t, raster.Fits(100, 100, 80, 90))
	assert.False(t, raster.Fits(10, 10, 1e300, 0))
	assert.False(t, raster.Fits(10, 10, 1, math.NaN()))
}

func TestTransformBeyondLimitIsEmpty(t *testing.T) {
	w, h := raster.TransformedSize(100, 100, 1e6, 0)
	assert.Zero(t, w)
	assert.Zero(t, h)

	var out *image.RGBA
	require.NotPanics(t, func() { out = raster.Transform(solid(100, 100, color.White), 1e6, 0) })
	assert.True(t, out.Bounds().Empty())
}
