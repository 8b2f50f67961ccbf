package ui

import (
	"fmt"
	"log"

	"SimpleCAD/internal/export"
	"SimpleCAD/internal/raster"
	"SimpleCAD/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	AppID = "io.simplecad.app"

	prefGridSpacing = "gridSpacing"
	prefExportDir   = "exportDir"
)

// App ties the scene to the window: board, properties panel, toolbar and
// status bar.
type App struct {
	fyneApp fyne.App
	Window  fyne.Window

	Scene      *state.Scene
	Editor     *state.Editor
	Board      *BoardWidget
	Properties *PropertiesPanel
	statusBar  *widget.Label
}

// NewApp builds the main window on an existing fyne application.
func NewApp(fa fyne.App) *App {
	spacing := fa.Preferences().FloatWithFallback(prefGridSpacing, float64(state.DefaultGridSpacing))
	scene := state.NewScene(state.Grid{Spacing: float32(spacing)})
	editor := state.NewEditor(scene)

	a := &App{
		fyneApp:    fa,
		Window:     fa.NewWindow("SimpleCAD"),
		Scene:      scene,
		Editor:     editor,
		Board:      NewBoardWidget(editor),
		Properties: NewPropertiesPanel(scene),
		statusBar:  widget.NewLabel("Ready"),
	}
	scene.OnChange = a.sceneChanged
	a.Properties.OnRejected = func(field, text string) {
		a.SetStatus(fmt.Sprintf("Ignored %s %q", field, text))
	}

	split := container.NewHSplit(a.Properties.Content(), a.Board)
	split.Offset = 0.25
	content := container.NewBorder(NewToolbar(a), a.statusBar, nil, nil, split)

	a.Window.SetContent(content)
	a.Window.Resize(fyne.NewSize(800, 600))
	a.Window.Canvas().SetOnTypedKey(a.TypedKey)
	return a
}

// RunApp starts the desktop application and blocks until it exits.
func RunApp() {
	a := NewApp(app.NewWithID(AppID))
	a.Window.ShowAndRun()
}

func (a *App) sceneChanged() {
	a.Properties.Update()
	a.Board.Refresh()
}

func (a *App) SetStatus(text string) {
	a.statusBar.SetText(text)
}

func (a *App) Status() string { return a.statusBar.Text }

// TypedKey handles keys not consumed by a focused entry.
func (a *App) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		a.DeleteSelected()
	case fyne.KeyEscape:
		a.Editor.Cancel()
		a.SetStatus("Ready")
	default:
		if d, ok := arrowNudge[ev.Name]; ok {
			a.Scene.Nudge(d.X, d.Y)
		}
	}
}

func (a *App) DrawLine() {
	a.Editor.ArmLine()
	a.SetStatus("Draw line: press at the start, release at the end")
}

func (a *App) DeleteSelected() {
	if a.Scene.DeleteSelected() {
		a.SetStatus("Element deleted")
	}
}

func (a *App) ClearCanvas() {
	a.Editor.Cancel()
	a.Scene.Clear()
	a.SetStatus("Canvas cleared")
}

func (a *App) Quit() {
	a.Window.Close()
}

// ShowOpenImage asks for a PNG, JPEG or BMP file and places it on the canvas.
func (a *App) ShowOpenImage() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.Window)
			return
		}
		if reader == nil {
			return
		}
		if err := a.OpenImage(reader); err != nil {
			log.Printf("OpenImage: %v", err)
			dialog.ShowError(err, a.Window)
			a.SetStatus("Error opening image")
		}
	}, a.Window)
	d.SetFilter(storage.NewExtensionFileFilter(raster.Extensions))
	d.Show()
}

// OpenImage decodes the image behind reader and adds it to the scene.
func (a *App) OpenImage(reader fyne.URIReadCloser) error {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("Error closing reader: %v", err)
		}
	}()
	path := reader.URI().Path()
	img, format, err := raster.Decode(reader)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	a.Scene.AddImage(path, img)
	a.SetStatus(fmt.Sprintf("Opened %s (%s)", reader.URI().Name(), format))
	return nil
}

// ShowExportPDF asks for a destination and writes the canvas as PDF.
func (a *App) ShowExportPDF() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.Window)
			return
		}
		if writer == nil {
			return
		}
		if err := a.ExportPDF(writer); err != nil {
			log.Printf("ExportPDF: %v", err)
			dialog.ShowError(err, a.Window)
			a.SetStatus("Error exporting PDF")
		}
	}, a.Window)
	d.SetFileName("drawing.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	if dir := a.fyneApp.Preferences().String(prefExportDir); dir != "" {
		if uri, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			d.SetLocation(uri)
		}
	}
	d.Show()
}

// ExportPDF writes the canvas, sized like the board, to writer.
func (a *App) ExportPDF(writer fyne.URIWriteCloser) error {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("Error closing writer: %v", err)
		}
	}()
	size := a.Board.Size()
	if size.Width <= 0 || size.Height <= 0 {
		size = a.Board.MinSize()
	}
	elements := a.Scene.Elements()
	if err := export.PDF(writer, elements, size.Width, size.Height); err != nil {
		return err
	}
	if parent, err := storage.Parent(writer.URI()); err == nil {
		a.fyneApp.Preferences().SetString(prefExportDir, parent.Path())
	}
	a.SetStatus(fmt.Sprintf("Exported %d elements", len(elements)))
	return nil
}
