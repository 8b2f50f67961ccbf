package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log"

	"SimpleCAD/internal/state"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// endSquare matches the endpoint markers drawn on the board.
const endSquare = 4.0

// PDF writes the elements to w as a single page of width x height points.
func PDF(w io.Writer, elements []state.Element, width, height float32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid page size %.0fx%.0f", width, height)
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	for _, el := range elements {
		switch e := el.(type) {
		case *state.Image:
			if err := drawImage(p, e); err != nil {
				return err
			}
		case *state.Line:
			drawLine(p, e)
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	log.Printf("[EXPORT] Wrote %d elements", len(elements))
	return nil
}

func drawLine(p *gofpdf.Fpdf, l *state.Line) {
	c, ok := state.LookupColor(l.Color)
	if !ok {
		c, _ = state.LookupColor("black")
	}
	a, b := l.Endpoints()
	p.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.SetLineWidth(float64(l.Width))
	p.Line(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))

	p.SetFillColor(0, 0, 0)
	for _, pt := range []state.Point{a, b} {
		p.Rect(float64(pt.X)-endSquare/2, float64(pt.Y)-endSquare/2, endSquare, endSquare, "F")
	}
}

func drawImage(p *gofpdf.Fpdf, im *state.Image) error {
	bmp := im.Render()
	if bmp.Bounds().Empty() {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, bmp); err != nil {
		return fmt.Errorf("encode %s: %w", im.Path, err)
	}
	name := "img-" + uuid.NewString()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(name, opts, &buf)
	if err := p.Error(); err != nil {
		return fmt.Errorf("embed %s: %w", im.Path, err)
	}
	o := im.Origin()
	w, h := bmp.Bounds().Dx(), bmp.Bounds().Dy()
	p.ImageOptions(name, float64(o.X), float64(o.Y), float64(w), float64(h), false, opts, 0, "")
	return nil
}
