// Package raster decodes bitmaps from disk and renders them scaled and
// rotated about their own center.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Formats accepted by Decode.
var Formats = []string{"png", "jpeg", "bmp"}

// Extensions accepted by the file-open dialog.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// Decode reads a PNG, JPEG or BMP image.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	for _, f := range Formats {
		if f == format {
			return img, format, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Load opens and decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}

// MaxDimension caps either side of a rendered bitmap.
const MaxDimension = 8192

// Fits reports whether a w x h source scaled and rotated as given stays
// within MaxDimension on both sides.
func Fits(w, h int, scale, degrees float64) bool {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return false
	}
	fw, fh := float64(w)*scale, float64(h)*scale
	if degrees != 0 {
		c, s := math.Abs(math.Cos(radians(degrees))), math.Abs(math.Sin(radians(degrees)))
		fw, fh = fw*c+fh*s, fw*s+fh*c
	}
	return fw <= MaxDimension && fh <= MaxDimension
}

// scaledSize truncates like integer pixel scaling but never collapses an
// axis to nothing.
func scaledSize(w, h int, scale float64) (int, int) {
	sw := int(float64(w) * scale)
	sh := int(float64(h) * scale)
	return max(sw, 1), max(sh, 1)
}

// rotatedExtent is the bounding box of a w x h rectangle rotated by rad.
func rotatedExtent(w, h int, rad float64) (int, int) {
	c, s := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	fw := float64(w)*c + float64(h)*s
	fh := float64(w)*s + float64(h)*c
	// absorb float noise so 90 degree turns stay exact
	return int(math.Ceil(fw - 1e-9)), int(math.Ceil(fh - 1e-9))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// TransformedSize is the size of Transform's result for a w x h source.
// Transforms that do not fit yield 0 x 0.
func TransformedSize(w, h int, scale, degrees float64) (int, int) {
	if w <= 0 || h <= 0 || !Fits(w, h, scale, degrees) {
		return 0, 0
	}
	sw, sh := scaledSize(w, h, scale)
	if degrees == 0 {
		return sw, sh
	}
	return rotatedExtent(sw, sh, radians(degrees))
}

// Transform scales src, then rotates it counter-clockwise by degrees about
// its center. Areas outside the rotated bitmap are transparent. A result
// larger than MaxDimension comes back empty.
func Transform(src image.Image, scale, degrees float64) *image.RGBA {
	if src == nil {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	sr := src.Bounds()
	w, h := TransformedSize(sr.Dx(), sr.Dy(), scale, degrees)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}
	if degrees == 0 {
		xdraw.BiLinear.Scale(dst, dst.Bounds(), src, sr, draw.Src, nil)
		return dst
	}

	sw, sh := scaledSize(sr.Dx(), sr.Dy(), scale)
	kx := float64(sw) / float64(sr.Dx())
	ky := float64(sh) / float64(sr.Dy())
	rad := radians(degrees)
	cos, sin := math.Cos(rad), math.Sin(rad)

	// source center -> origin, scale, rotate, origin -> destination center
	cx := float64(sr.Min.X) + float64(sr.Dx())/2
	cy := float64(sr.Min.Y) + float64(sr.Dy())/2
	a, b := kx*cos, ky*sin
	d, e := -kx*sin, ky*cos
	s2d := f64.Aff3{
		a, b, float64(w)/2 - a*cx - b*cy,
		d, e, float64(h)/2 - d*cx - e*cy,
	}
	xdraw.BiLinear.Transform(dst, s2d, src, sr, draw.Over, nil)
	return dst
}
