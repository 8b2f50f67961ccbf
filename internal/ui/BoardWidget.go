package ui

import (
	"image"
	"image/color"

	"SimpleCAD/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var (
	highlightColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	previewColor   = color.NRGBA{R: 0, G: 0, B: 0, A: 128}
	gridDotColor   = color.Black
)

const endSquareSize float32 = 4

type BoardWidget struct {
	widget.BaseWidget
	editor *state.Editor

	// lastPos tracks the pointer during a drag so DragEnd can finish a
	// gesture when no MouseUp arrives.
	lastPos state.Point
	pressed bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(editor *state.Editor) *BoardWidget {
	b := &BoardWidget{editor: editor}
	b.ExtendBaseWidget(b)
	return b
}

func toPoint(p fyne.Position) state.Point { return state.Point{X: p.X, Y: p.Y} }
func toPos(p state.Point) fyne.Position   { return fyne.NewPos(p.X, p.Y) }

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = true
	b.lastPos = toPoint(e.Position)
	b.editor.Press(b.lastPos)
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.pressed {
		return
	}
	b.pressed = false
	b.lastPos = toPoint(e.Position)
	b.editor.Release(b.lastPos)
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.lastPos = toPoint(e.Position)
	b.editor.Move(b.lastPos)
}

// DragEnd acts as capture loss. If the button-up never reached us the
// gesture is finished at the last known pointer position.
func (b *BoardWidget) DragEnd() {
	if b.pressed {
		b.pressed = false
		b.editor.Release(b.lastPos)
		return
	}
	b.editor.CaptureLost()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                   {}
func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.editor.LineArmed() {
		b.editor.Move(toPoint(e.Position))
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.grid = canvas.NewRaster(r.drawGrid)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	grid       *canvas.Raster
}

// drawGrid paints one dot per grid intersection. w and h are in device
// pixels, so the spacing is scaled to match.
func (r *boardWidgetRenderer) drawGrid(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	spacing := r.board.editor.Scene.Grid.Spacing
	size := r.board.Size()
	if spacing <= 0 || size.Width <= 0 {
		return img
	}
	scale := float32(w) / size.Width
	step := spacing * scale
	if step < 2 {
		return img
	}
	for y := float32(0); y < float32(h); y += step {
		for x := float32(0); x < float32(w); x += step {
			img.Set(int(x), int(y), gridDotColor)
		}
	}
	return img
}

func lineColor(name string) color.Color {
	if c, ok := state.LookupColor(name); ok {
		return c
	}
	return color.Black
}

func endSquares(l *state.Line) []fyne.CanvasObject {
	a, b := l.Endpoints()
	objects := make([]fyne.CanvasObject, 0, 2)
	for _, p := range []state.Point{a, b} {
		sq := canvas.NewRectangle(color.Black)
		sq.Resize(fyne.NewSize(endSquareSize, endSquareSize))
		sq.Move(fyne.NewPos(p.X-endSquareSize/2, p.Y-endSquareSize/2))
		objects = append(objects, sq)
	}
	return objects
}

func lineObject(a, b state.Point, c color.Color, width float32) *canvas.Line {
	l := canvas.NewLine(c)
	l.StrokeWidth = width
	l.Position1 = toPos(a)
	l.Position2 = toPos(b)
	return l
}

func imageObject(im *state.Image) fyne.CanvasObject {
	bmp := im.Render()
	img := canvas.NewImageFromImage(bmp)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleFastest
	img.Resize(fyne.NewSize(float32(bmp.Bounds().Dx()), float32(bmp.Bounds().Dy())))
	img.Move(toPos(im.Origin()))
	return img
}

func highlightObjects(el state.Element) []fyne.CanvasObject {
	switch e := el.(type) {
	case *state.Image:
		bounds := e.Bounds()
		rect := canvas.NewRectangle(color.Transparent)
		rect.StrokeColor = highlightColor
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(bounds.Width(), bounds.Height()))
		rect.Move(toPos(bounds.Min))
		return []fyne.CanvasObject{rect}
	case *state.Line:
		a, b := e.Endpoints()
		objects := []fyne.CanvasObject{lineObject(a, b, highlightColor, 1)}
		return append(objects, endSquares(e)...)
	}
	return nil
}

// Objects rebuilds the scene every frame. Bitmaps are transformed again
// from their source pixels each time.
func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	editor := r.board.editor
	objects := []fyne.CanvasObject{r.background, r.grid}

	for _, el := range editor.Scene.Elements() {
		switch e := el.(type) {
		case *state.Image:
			objects = append(objects, imageObject(e))
		case *state.Line:
			a, b := e.Endpoints()
			objects = append(objects, lineObject(a, b, lineColor(e.Color), float32(e.Width)))
			objects = append(objects, endSquares(e)...)
		}
	}

	if sel, ok := editor.Scene.Selected(); ok {
		objects = append(objects, highlightObjects(sel)...)
	}

	if start, end, ok := editor.Preview(); ok {
		objects = append(objects, lineObject(start, end, previewColor, 1))
	}
	return objects
}

func (r *boardWidgetRenderer) Refresh() {
	r.grid.Refresh()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.grid.Resize(size)
}
func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
