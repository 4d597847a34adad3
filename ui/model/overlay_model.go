package model

import "github.com/soocke/trackpoint-go/domain/geometry"

// Segment is a line drawn over the frame, in frame pixels.
type Segment struct{ Start, End geometry.Point }

// OverlayModel holds the marks currently drawn above the video frame, in
// frame pixel coordinates. The zero value is empty and usable.
// No synchronization needed: updates occur on the UI thread.
type OverlayModel struct {
	points   []geometry.Point
	segments []Segment
}

func NewOverlayModel() *OverlayModel { return &OverlayModel{} }

// Clear drops every mark.
func (m *OverlayModel) Clear() {
	if m == nil {
		return
	}
	m.points = m.points[:0]
	m.segments = m.segments[:0]
}

func (m *OverlayModel) AddPoint(p geometry.Point) {
	if m == nil {
		return
	}
	m.points = append(m.points, p)
}

func (m *OverlayModel) AddSegment(start, end geometry.Point) {
	if m == nil {
		return
	}
	m.segments = append(m.segments, Segment{Start: start, End: end})
}

// Points returns a copy of the point marks in insertion order.
func (m *OverlayModel) Points() []geometry.Point {
	if m == nil {
		return nil
	}
	return append([]geometry.Point(nil), m.points...)
}

// Segments returns a copy of the line marks in insertion order.
func (m *OverlayModel) Segments() []Segment {
	if m == nil {
		return nil
	}
	return append([]Segment(nil), m.segments...)
}

// Empty reports whether nothing is drawn.
func (m *OverlayModel) Empty() bool {
	return m == nil || (len(m.points) == 0 && len(m.segments) == 0)
}
