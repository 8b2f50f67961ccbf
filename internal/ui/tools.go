package ui

import (
	"image/color"
	"strconv"

	"SimpleCAD/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// paletteColors are the quick picks next to the color entry; any CSS name
// can still be typed.
var paletteColors = []string{"black", "red", "green", "blue", "orange", "purple"}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Name     string
	OnTapped func(name string)
}

func newColorSwatch(name string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Name: name, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(lineColor(s.Name))
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

// NewToolbar builds the top bar: file and tool actions, a color palette
// and a width slider for the selected line.
func NewToolbar(a *App) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.ShowOpenImage),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), a.DrawLine),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), a.DeleteSelected),
		widget.NewToolbarAction(theme.ContentClearIcon(), a.ClearCanvas),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.ShowExportPDF),
		widget.NewToolbarAction(theme.CancelIcon(), a.Quit),
	)

	onColorTapped := func(name string) {
		if a.Scene.SetLineColor(name) {
			a.SetStatus("Line color: " + name)
		}
	}
	colorBox := container.NewHBox()
	for _, name := range paletteColors {
		colorBox.Add(newColorSwatch(name, onColorTapped))
	}

	widthSlider := widget.NewSlider(1.0, 20.0)
	widthSlider.Step = 1
	widthSlider.SetValue(1.0)
	widthSlider.OnChanged = func(val float64) {
		a.Scene.SetLineWidth(strconv.Itoa(int(val)))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), widthSlider)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Width:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}

// arrowNudge maps arrow keys to a one unit move of the selection.
var arrowNudge = map[fyne.KeyName]state.Point{
	fyne.KeyUp:    {X: 0, Y: -1},
	fyne.KeyDown:  {X: 0, Y: 1},
	fyne.KeyLeft:  {X: -1, Y: 0},
	fyne.KeyRight: {X: 1, Y: 0},
}
