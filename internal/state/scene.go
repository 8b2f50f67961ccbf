package state

import (
	"image"
	"log"
	"math"
	"strconv"
	"strings"

	"SimpleCAD/internal/raster"
)

// ImageDropPosition is where newly opened images are placed before snapping.
var ImageDropPosition = Point{X: 50, Y: 50}

// Scene is the ordered list of elements on the canvas plus the selection.
// The last element is painted last and therefore wins hit tests.
type Scene struct {
	Grid     Grid
	elements []Element
	selected int

	// OnChange is called after every mutation.
	OnChange func()
}

func NewScene(grid Grid) *Scene {
	return &Scene{
		Grid:     grid,
		elements: make([]Element, 0),
		selected: -1,
	}
}

func (s *Scene) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

func (s *Scene) Len() int { return len(s.elements) }

// Elements returns a copy of the element list in paint order.
func (s *Scene) Elements() []Element {
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

func (s *Scene) AddImage(path string, src image.Image) *Image {
	im := NewImage(path, src, s.Grid.Snap(ImageDropPosition))
	s.elements = append(s.elements, im)
	log.Printf("[SCENE] Image added: %s (%s)", im.ID(), path)
	s.changed()
	return im
}

func (s *Scene) AddLine(start, end Point) *Line {
	l := NewLine(start, end)
	s.elements = append(s.elements, l)
	log.Printf("[SCENE] Line added: %s (%v -> %v)", l.ID(), start, end)
	s.changed()
	return l
}

// SelectAt clears the selection and selects the topmost element under p.
func (s *Scene) SelectAt(p Point) (Element, bool) {
	s.selected = -1
	for i := len(s.elements) - 1; i >= 0; i-- {
		if s.elements[i].Contains(p) {
			s.selected = i
			break
		}
	}
	s.changed()
	return s.Selected()
}

// Select selects the element at index i. Out of range clears the selection.
func (s *Scene) Select(i int) {
	if i < 0 || i >= len(s.elements) {
		i = -1
	}
	s.selected = i
	s.changed()
}

func (s *Scene) ClearSelection() { s.Select(-1) }

func (s *Scene) SelectedIndex() int { return s.selected }

func (s *Scene) Selected() (Element, bool) {
	if s.selected < 0 {
		return nil, false
	}
	return s.elements[s.selected], true
}

func (s *Scene) selectedImage() (*Image, bool) {
	el, ok := s.Selected()
	if !ok {
		return nil, false
	}
	im, ok := el.(*Image)
	return im, ok
}

func (s *Scene) selectedLine() (*Line, bool) {
	el, ok := s.Selected()
	if !ok {
		return nil, false
	}
	l, ok := el.(*Line)
	return l, ok
}

// DeleteSelected removes the selected element. The selection is always
// cleared afterwards.
func (s *Scene) DeleteSelected() bool {
	el, ok := s.Selected()
	if !ok {
		return false
	}
	s.elements = append(s.elements[:s.selected], s.elements[s.selected+1:]...)
	s.selected = -1
	log.Printf("[SCENE] Element removed: %s", el.ID())
	s.changed()
	return true
}

// Nudge shifts the selected element's offset.
func (s *Scene) Nudge(dx, dy float32) bool {
	el, ok := s.Selected()
	if !ok {
		return false
	}
	el.nudge(dx, dy)
	s.changed()
	return true
}

func parseFinite(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// fits reports whether im rendered at scale and degrees stays drawable.
func fits(im *Image, scale, degrees float64) bool {
	if im.Source == nil {
		return true
	}
	b := im.Source.Bounds()
	return raster.Fits(b.Dx(), b.Dy(), scale, degrees)
}

// SetScale applies a new scale factor to the selected image. Unparsable,
// non-positive or oversized input is ignored.
func (s *Scene) SetScale(text string) bool {
	im, ok := s.selectedImage()
	if !ok {
		return false
	}
	v, ok := parseFinite(text)
	if !ok || v <= 0 || !fits(im, v, im.Rotation) {
		return false
	}
	im.Scale = v
	s.changed()
	return true
}

// SetRotation applies a rotation in degrees to the selected image.
func (s *Scene) SetRotation(text string) bool {
	im, ok := s.selectedImage()
	if !ok {
		return false
	}
	v, ok := parseFinite(text)
	if !ok || !fits(im, im.Scale, v) {
		return false
	}
	im.Rotation = v
	s.changed()
	return true
}

func (s *Scene) SetLineWidth(text string) bool {
	l, ok := s.selectedLine()
	if !ok {
		return false
	}
	w, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || w < 1 {
		return false
	}
	l.Width = w
	s.changed()
	return true
}

// SetLineColor accepts only names from the named-color table.
func (s *Scene) SetLineColor(text string) bool {
	l, ok := s.selectedLine()
	if !ok {
		return false
	}
	name := normalizeColorName(text)
	if !ValidColor(name) {
		return false
	}
	l.Color = name
	s.changed()
	return true
}

// Clear removes every element.
func (s *Scene) Clear() {
	s.elements = make([]Element, 0)
	s.selected = -1
	s.changed()
}
