package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Translate offsets p by (dx, dy).
func Translate(p Point, dx, dy float64) Point {
	return FromR2(p.R2().Add(r2.Point{X: dx, Y: dy}))
}

// Scale multiplies each coordinate of p by its own factor.
func Scale(p Point, fx, fy float64) Point {
	return Point{X: p.X * fx, Y: p.Y * fy}
}

// SnapToAxis returns the point near p that shares exactly one coordinate with
// start, snapping along the axis of least movement. When the horizontal
// distance is strictly smaller the result is vertically aligned with start;
// otherwise (ties included) it is horizontally aligned.
func SnapToAxis(start, p Point) Point {
	dx := math.Abs(start.X - p.X)
	dy := math.Abs(start.Y - p.Y)
	if dx < dy {
		return Point{X: start.X, Y: p.Y}
	}
	return Point{X: p.X, Y: start.Y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return a.R2().Sub(b.R2()).Norm()
}

// RelativeToOrigin expresses a canvas point relative to origin. Canvas y grows
// downward while the returned y grows upward, so the vertical axis is flipped.
// Applying it twice with the same origin does not give back p.
func RelativeToOrigin(origin, p Point) Point {
	return Point{X: p.X - origin.X, Y: origin.Y - p.Y}
}
