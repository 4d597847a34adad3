package acquisition

import "github.com/soocke/trackpoint-go/domain/geometry"

// Series is the physical trajectory: Points[i] was recorded at Times[i]
// milliseconds from the start of the video. Both slices have the same length
// and follow frame order.
type Series struct {
	Points []geometry.Point
	Times  []float64
}

func (s Series) Len() int    { return len(s.Points) }
func (s Series) Empty() bool { return len(s.Points) == 0 }

// Seconds returns Times converted to seconds.
func (s Series) Seconds() []float64 {
	out := make([]float64, len(s.Times))
	for i, t := range s.Times {
		out[i] = t / 1000
	}
	return out
}

// Transform maps the recorded pixel clicks of track to origin-relative,
// scale-corrected points. Frame index i is stamped i*frameDurationMs.
// An incomplete calibration yields an empty series.
func Transform(cal Calibration, track Track, frameDurationMs float64) Series {
	origin, ok := cal.Origin()
	scale, scaled := cal.Scale()
	if !ok || !scaled {
		return Series{Points: []geometry.Point{}, Times: []float64{}}
	}
	n := track.Recorded()
	out := Series{Points: make([]geometry.Point, 0, n), Times: make([]float64, 0, n)}
	for i, slot := range track {
		if !slot.Recorded {
			continue
		}
		rel := geometry.RelativeToOrigin(origin, slot.Point)
		out.Points = append(out.Points, geometry.Scale(rel, 1/scale, 1/scale))
		out.Times = append(out.Times, float64(i)*frameDurationMs)
	}
	return out
}
