package ui

import (
	"fmt"

	"SimpleCAD/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const notApplicable = "N/A"

// PropertiesPanel shows the selected element and lets the user edit it.
type PropertiesPanel struct {
	scene *state.Scene

	filename  *widget.Label
	x, y      *widget.Label
	scale     *widget.Label
	rotation  *widget.Label
	start     *widget.Label
	end       *widget.Label
	lineWidth *widget.Label
	lineColor *widget.Label

	ScaleEntry    *widget.Entry
	RotationEntry *widget.Entry
	WidthEntry    *widget.Entry
	ColorEntry    *widget.SelectEntry

	// OnRejected is told about submitted text the selection refused.
	OnRejected func(field, text string)

	// syncing is set while Update writes entry texts, so the writes are
	// not applied back to the scene.
	syncing bool
	content fyne.CanvasObject
}

func NewPropertiesPanel(scene *state.Scene) *PropertiesPanel {
	p := &PropertiesPanel{
		scene:     scene,
		filename:  widget.NewLabel(""),
		x:         widget.NewLabel(""),
		y:         widget.NewLabel(""),
		scale:     widget.NewLabel(""),
		rotation:  widget.NewLabel(""),
		start:     widget.NewLabel(""),
		end:       widget.NewLabel(""),
		lineWidth: widget.NewLabel(""),
		lineColor: widget.NewLabel(""),
	}
	p.filename.Wrapping = fyne.TextWrapBreak

	p.ScaleEntry = widget.NewEntry()
	p.bindSubmit(p.ScaleEntry, "scale", scene.SetScale)
	p.RotationEntry = widget.NewEntry()
	p.bindSubmit(p.RotationEntry, "rotation", scene.SetRotation)
	p.WidthEntry = widget.NewEntry()
	p.bindSubmit(p.WidthEntry, "line width", scene.SetLineWidth)

	p.ColorEntry = widget.NewSelectEntry(state.ColorNames())
	p.bindSubmit(&p.ColorEntry.Entry, "line color", scene.SetLineColor)
	// picking from the dropdown applies at once; typed text waits for a
	// full color name
	p.ColorEntry.OnChanged = func(text string) {
		if !p.syncing && state.ValidColor(text) {
			scene.SetLineColor(text)
		}
	}

	nav := container.NewGridWithColumns(3,
		layout.NewSpacer(), p.navButton(theme.MoveUpIcon(), 0, -1), layout.NewSpacer(),
		p.navButton(theme.NavigateBackIcon(), -1, 0), layout.NewSpacer(), p.navButton(theme.NavigateNextIcon(), 1, 0),
		layout.NewSpacer(), p.navButton(theme.MoveDownIcon(), 0, 1), layout.NewSpacer(),
	)

	p.content = container.NewVScroll(container.NewVBox(
		p.filename,
		p.x,
		p.y,
		p.scale,
		p.ScaleEntry,
		p.rotation,
		p.RotationEntry,
		p.start,
		p.end,
		p.lineWidth,
		p.WidthEntry,
		p.lineColor,
		p.ColorEntry,
		container.NewCenter(nav),
	))
	p.Update()
	return p
}

// bindSubmit applies the entry text on Enter. Rejected input leaves the
// element untouched and the entry is reset to the current value.
func (p *PropertiesPanel) bindSubmit(e *widget.Entry, field string, apply func(string) bool) {
	e.OnSubmitted = func(text string) {
		if apply(text) {
			return
		}
		if _, ok := p.scene.Selected(); ok && p.OnRejected != nil {
			p.OnRejected(field, text)
		}
		p.Update()
	}
}

// setEntry shows the current value. Entries without a value do not apply
// to the selection and are disabled.
func setEntry(e *widget.Entry, text string) {
	e.SetText(text)
	if text == "" {
		e.Disable()
	} else {
		e.Enable()
	}
}

func (p *PropertiesPanel) navButton(icon fyne.Resource, dx, dy float32) *widget.Button {
	return widget.NewButtonWithIcon("", icon, func() {
		p.scene.Nudge(dx, dy)
	})
}

func (p *PropertiesPanel) Content() fyne.CanvasObject { return p.content }

func formatPoint(pt state.Point) string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Update refreshes labels and entries from the current selection.
func (p *PropertiesPanel) Update() {
	p.syncing = true
	defer func() { p.syncing = false }()

	el, ok := p.scene.Selected()
	if !ok {
		p.setImageLabels(nil)
		p.setLineLabels(nil)
		return
	}
	switch e := el.(type) {
	case *state.Image:
		p.setImageLabels(e)
		p.setLineLabels(nil)
	case *state.Line:
		p.setImageLabels(nil)
		p.setLineLabels(e)
	}
}

func (p *PropertiesPanel) setImageLabels(im *state.Image) {
	if im == nil {
		p.filename.SetText("Filename: " + notApplicable)
		p.x.SetText("X: " + notApplicable)
		p.y.SetText("Y: " + notApplicable)
		p.scale.SetText("Scale: " + notApplicable)
		p.rotation.SetText("Rotation: " + notApplicable)
		setEntry(p.ScaleEntry, "")
		setEntry(p.RotationEntry, "")
		return
	}
	o := im.Origin()
	p.filename.SetText("Filename: " + im.Path)
	p.x.SetText(fmt.Sprintf("X: %g", o.X))
	p.y.SetText(fmt.Sprintf("Y: %g", o.Y))
	p.scale.SetText(fmt.Sprintf("Scale: %g", im.Scale))
	p.rotation.SetText(fmt.Sprintf("Rotation: %g", im.Rotation))
	setEntry(p.ScaleEntry, fmt.Sprintf("%g", im.Scale))
	setEntry(p.RotationEntry, fmt.Sprintf("%g", im.Rotation))
}

func (p *PropertiesPanel) setLineLabels(l *state.Line) {
	if l == nil {
		p.start.SetText("Start: " + notApplicable)
		p.end.SetText("End: " + notApplicable)
		p.lineWidth.SetText("Line Width: " + notApplicable)
		p.lineColor.SetText("Line Color: " + notApplicable)
		setEntry(p.WidthEntry, "")
		setEntry(&p.ColorEntry.Entry, "")
		return
	}
	a, b := l.Endpoints()
	p.start.SetText("Start: " + formatPoint(a))
	p.end.SetText("End: " + formatPoint(b))
	p.lineWidth.SetText(fmt.Sprintf("Line Width: %d", l.Width))
	p.lineColor.SetText("Line Color: " + l.Color)
	setEntry(p.WidthEntry, fmt.Sprintf("%d", l.Width))
	setEntry(&p.ColorEntry.Entry, l.Color)
}

// Labels returns the label texts in display order, for tests and logs.
func (p *PropertiesPanel) Labels() []string {
	labels := []*widget.Label{p.filename, p.x, p.y, p.scale, p.rotation, p.start, p.end, p.lineWidth, p.lineColor}
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.Text
	}
	return out
}
