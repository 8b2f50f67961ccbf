package state

// Editor turns pointer gestures into scene mutations. All positions are
// snapped to the scene grid before use.
type Editor struct {
	Scene *Scene

	lineArmed  bool
	lineStart  *Point
	pointer    Point
	dragging   bool
	dragImage  *Image
	grabOffset Point
}

func NewEditor(s *Scene) *Editor {
	return &Editor{Scene: s}
}

// ArmLine makes the next press/release pair draw a line.
func (e *Editor) ArmLine() {
	e.lineArmed = true
	e.lineStart = nil
}

func (e *Editor) LineArmed() bool { return e.lineArmed }

// Dragging reports whether the pointer is captured by an image drag.
func (e *Editor) Dragging() bool { return e.dragging }

// Press handles a primary button press.
func (e *Editor) Press(p Point) {
	p = e.Scene.Grid.Snap(p)
	e.pointer = p
	el, hit := e.Scene.SelectAt(p)
	if hit {
		if im, ok := el.(*Image); ok {
			e.dragging = true
			e.dragImage = im
			e.grabOffset = p.Sub(im.Origin())
		}
		return
	}
	if e.lineArmed {
		start := p
		e.lineStart = &start
	}
}

// Move handles pointer motion with the button held.
func (e *Editor) Move(p Point) {
	p = e.Scene.Grid.Snap(p)
	e.pointer = p
	if e.dragging && e.dragImage != nil {
		im := e.dragImage
		next := p.Sub(e.grabOffset).Sub(im.Offset)
		if next != im.Position {
			im.Position = next
			e.Scene.changed()
		}
		return
	}
	if e.lineStart != nil {
		e.Scene.changed()
	}
}

// Release handles the primary button going up. A pending line is
// committed and line mode ends; a drag ends.
func (e *Editor) Release(p Point) {
	p = e.Scene.Grid.Snap(p)
	e.pointer = p
	if e.lineArmed && e.lineStart != nil {
		start := *e.lineStart
		e.lineStart = nil
		e.lineArmed = false
		e.Scene.AddLine(start, p)
	}
	e.endDrag()
}

// CaptureLost ends a drag without moving anything.
func (e *Editor) CaptureLost() {
	e.endDrag()
}

func (e *Editor) endDrag() {
	e.dragging = false
	e.dragImage = nil
	e.grabOffset = Point{}
}

// Preview returns the rubber-band segment of a line being drawn.
func (e *Editor) Preview() (Point, Point, bool) {
	if e.lineStart == nil {
		return Point{}, Point{}, false
	}
	return *e.lineStart, e.pointer, true
}

// Cancel drops any pending line and drag.
func (e *Editor) Cancel() {
	e.lineArmed = false
	e.lineStart = nil
	e.endDrag()
	e.Scene.changed()
}
