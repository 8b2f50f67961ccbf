package state

import "math"

// Grid snaps canvas coordinates to multiples of Spacing.
type Grid struct {
	Spacing float32
}

const DefaultGridSpacing float32 = 10

func (g Grid) snap(v float32) float32 {
	if g.Spacing <= 0 {
		return v
	}
	s := float64(g.Spacing)
	return float32(math.RoundToEven(float64(v)/s) * s)
}

// Snap rounds both coordinates to the nearest grid point. Ties go to the
// even multiple, so 25 snaps to 20 on a 10 grid.
func (g Grid) Snap(p Point) Point {
	return Point{X: g.snap(p.X), Y: g.snap(p.Y)}
}
