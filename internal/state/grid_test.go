package state_test

import (
	"testing"

	"SimpleCAD/internal/state"

	"github.com/stretchr/testify/assert"
)

func TestGridSnap(t *testing.T) {
	g := state.Grid{Spacing: 10}

	assert.Equal(t, state.Point{X: 50, Y: 50}, g.Snap(state.Point{X: 50, Y: 50}))
	assert.Equal(t, state.Point{X: 50, Y: 40}, g.Snap(state.Point{X: 53, Y: 44}))
	assert.Equal(t, state.Point{X: 60, Y: 0}, g.Snap(state.Point{X: 56, Y: 4.9}))
	assert.Equal(t, state.Point{X: -10, Y: 0}, g.Snap(state.Point{X: -7, Y: -2}))
}

func TestGridSnapIdempotent(t *testing.T) {
	for _, spacing := range []float32{5, 10, 25} {
		g := state.Grid{Spacing: spacing}
		for _, p := range []state.Point{{X: 0, Y: 0}, {X: 13, Y: 27}, {X: 99.5, Y: 3}, {X: -41, Y: 1234}} {
			once := g.Snap(p)
			assert.Equal(t, once, g.Snap(once), "spacing %v point %v", spacing, p)
		}
	}
}

func TestGridZeroSpacingIsIdentity(t *testing.T) {
	g := state.Grid{}
	p := state.Point{X: 13.3, Y: 7.7}
	assert.Equal(t, p, g.Snap(p))
}

func TestGridSnapTiesGoToEven(t *testing.T) {
	g := state.Grid{Spacing: 10}

	assert.Equal(t, state.Point{X: 20, Y: 0}, g.Snap(state.Point{X: 25, Y: 5}))
	assert.Equal(t, state.Point{X: 20, Y: 40}, g.Snap(state.Point{X: 15, Y: 35}))
	assert.Equal(t, state.Point{X: -20, Y: 0}, g.Snap(state.Point{X: -25, Y: -5}))
}
