package acquisition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/trackpoint-go/domain/geometry"
)

func calibrated(origin geometry.Point, pixels, dist float64) Calibration {
	var c Calibration
	c.setOrigin(origin)
	c.setScale(pixels, dist)
	return c
}

func TestTransform_TimestampsFollowFrameIndex(t *testing.T) {
	track := NewTrack(4)
	track.Set(0, geometry.Pt(10, 100))
	track.Set(2, geometry.Pt(30, 80))

	s := Transform(calibrated(geometry.Pt(10, 100), 10, 1), track, 40)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{0, 80}, s.Times)
	assert.Equal(t, geometry.Pt(0, 0), s.Points[0])
	assert.InDelta(t, 2.0, s.Points[1].X, 1e-12)
	assert.InDelta(t, 2.0, s.Points[1].Y, 1e-12)
	assert.Equal(t, []float64{0, 0.08}, s.Seconds())
}

func TestTransform_YAxisPointsUp(t *testing.T) {
	track := NewTrack(2)
	track.Set(1, geometry.Pt(5, 0))
	s := Transform(calibrated(geometry.Pt(5, 50), 25, 1), track, 10)
	require.Equal(t, 1, s.Len())
	assert.InDelta(t, 0.0, s.Points[0].X, 1e-12)
	assert.InDelta(t, 2.0, s.Points[0].Y, 1e-12)
}

func TestTransform_IncompleteCalibration(t *testing.T) {
	track := NewTrack(3)
	track.Set(1, geometry.Pt(1, 1))

	var onlyOrigin Calibration
	onlyOrigin.setOrigin(geometry.Pt(0, 0))
	var onlyScale Calibration
	onlyScale.setScale(10, 1)

	for _, c := range []Calibration{{}, onlyOrigin, onlyScale} {
		s := Transform(c, track, 40)
		assert.True(t, s.Empty())
		assert.NotNil(t, s.Points)
		assert.NotNil(t, s.Times)
	}
}

func TestTransform_EmptyTrack(t *testing.T) {
	s := Transform(calibrated(geometry.Pt(0, 0), 10, 1), NewTrack(5), 40)
	assert.True(t, s.Empty())
	assert.Len(t, s.Times, 0)
}

func TestCalibration_RejectsUnusableScale(t *testing.T) {
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		var c Calibration
		assert.False(t, c.setScale(10, d), "distance %v", d)
		_, ok := c.Scale()
		assert.False(t, ok)
	}
	var c Calibration
	assert.False(t, c.setScale(0, 1))
}

func TestTrack_Bounds(t *testing.T) {
	tr := NewTrack(2)
	assert.False(t, tr.Set(-1, geometry.Pt(1, 1)))
	assert.False(t, tr.Set(2, geometry.Pt(1, 1)))
	_, ok := tr.At(5)
	assert.False(t, ok)
	assert.Equal(t, 0, NewTrack(-3).Len())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "defining-origin", ModeDefiningOrigin.String())
	assert.Equal(t, "defining-scale", ModeDefiningScale.String())
	assert.Equal(t, "acquiring", ModeAcquiring.String())
	assert.Equal(t, "viewing", ModeViewing.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
