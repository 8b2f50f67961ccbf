package export_test

import (
	"bytes"
	"image"
	"testing"

	"SimpleCAD/internal/export"
	"SimpleCAD/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneWithEverything() *state.Scene {
	s := state.NewScene(state.Grid{Spacing: 10})
	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	s.AddImage("tile.png", src)
	s.Select(0)
	s.SetRotation("30")

	s.AddLine(state.Point{X: 10, Y: 10}, state.Point{X: 200, Y: 150})
	s.Select(1)
	s.SetLineColor("tomato")
	s.SetLineWidth("3")
	return s
}

func TestPDFWritesDocument(t *testing.T) {
	var buf bytes.Buffer
	err := export.PDF(&buf, sceneWithEverything().Elements(), 800, 600)
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "/Subtype /Image")
	assert.True(t, bytes.Contains(bytes.TrimSpace(out), []byte("%%EOF")))
}

func TestPDFEmptyCanvas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.PDF(&buf, nil, 300, 300))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFUnknownColorFallsBackToBlack(t *testing.T) {
	l := state.NewLine(state.Point{}, state.Point{X: 10, Y: 10})
	l.Color = "not-a-color"
	var buf bytes.Buffer
	require.NoError(t, export.PDF(&buf, []state.Element{l}, 100, 100))
}

func TestPDFRejectsEmptyPage(t *testing.T) {
	var buf bytes.Buffer
	err := export.PDF(&buf, nil, 0, 100)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestPDFSkipsEmptyBitmap(t *testing.T) {
	im := state.NewImage("empty.png", image.NewRGBA(image.Rect(0, 0, 0, 0)), state.Point{})
	var buf bytes.Buffer
	require.NoError(t, export.PDF(&buf, []state.Element{im}, 100, 100))
	assert.NotContains(t, buf.String(), "/Subtype /Image")
}
