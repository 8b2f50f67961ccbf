package state

import (
	"image"

	"SimpleCAD/internal/raster"

	"github.com/google/uuid"
)

type Point struct{ X, Y float32 }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

type Kind string

const (
	KindImage Kind = "image"
	KindLine  Kind = "line"
)

// Element is anything placed on the canvas.
type Element interface {
	ID() string
	Kind() Kind
	// Contains reports whether p hits the element, offset included.
	Contains(p Point) bool
	Bounds() Rect
	nudge(dx, dy float32)
}

type base struct {
	id     string
	Offset Point
}

func newBase() base { return base{id: uuid.NewString()} }

func (b *base) ID() string { return b.id }

func (b *base) nudge(dx, dy float32) {
	b.Offset.X += dx
	b.Offset.Y += dy
}

// Image is a bitmap placed on the canvas. Source keeps the decoded file
// pixels; every paint transforms from Source.
type Image struct {
	base
	Path     string
	Source   image.Image
	Position Point
	Scale    float64
	Rotation float64 // degrees
}

func NewImage(path string, src image.Image, pos Point) *Image {
	return &Image{
		base:     newBase(),
		Path:     path,
		Source:   src,
		Position: pos,
		Scale:    1.0,
	}
}

func (im *Image) Kind() Kind { return KindImage }

// Origin is where the top-left corner of the rendered bitmap is drawn.
func (im *Image) Origin() Point { return im.Position.Add(im.Offset) }

// Size returns the dimensions of the rendered bitmap.
func (im *Image) Size() (int, int) {
	if im.Source == nil {
		return 0, 0
	}
	b := im.Source.Bounds()
	return raster.TransformedSize(b.Dx(), b.Dy(), im.Scale, im.Rotation)
}

func (im *Image) Bounds() Rect {
	w, h := im.Size()
	o := im.Origin()
	return Rect{Min: o, Max: Point{X: o.X + float32(w), Y: o.Y + float32(h)}}
}

func (im *Image) Contains(p Point) bool { return im.Bounds().Contains(p) }

// Render returns the scaled and rotated bitmap.
func (im *Image) Render() *image.RGBA {
	return raster.Transform(im.Source, im.Scale, im.Rotation)
}

// Line is a straight segment between two points.
type Line struct {
	base
	Start, End Point
	Width      int
	Color      string
}

func NewLine(start, end Point) *Line {
	return &Line{
		base:  newBase(),
		Start: start,
		End:   end,
		Width: 1,
		Color: "black",
	}
}

func (l *Line) Kind() Kind { return KindLine }

// Endpoints returns start and end with the offset applied.
func (l *Line) Endpoints() (Point, Point) {
	return l.Start.Add(l.Offset), l.End.Add(l.Offset)
}

func (l *Line) Bounds() Rect {
	a, b := l.Endpoints()
	return RectFromPoints(a, b)
}

func (l *Line) Contains(p Point) bool {
	return l.Bounds().Inset(-LineHitRadius).ContainsClosed(p)
}
