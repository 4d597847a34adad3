package geometry

import (
	"fmt"
	"strconv"

	"github.com/golang/geo/r2"
)

// Point is an immutable pair of coordinates. The type does not know whether it
// holds canvas pixels or physical units; callers track the space.
// Equality is value equality, so points compare with ==.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// FromR2 converts an r2.Point.
func FromR2(p r2.Point) Point { return Point{X: p.X, Y: p.Y} }

// R2 returns the point as an r2.Point for vector arithmetic.
func (p Point) R2() r2.Point { return r2.Point{X: p.X, Y: p.Y} }

// String renders the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", strconv.FormatFloat(p.X, 'f', -1, 64), strconv.FormatFloat(p.Y, 'f', -1, 64))
}
