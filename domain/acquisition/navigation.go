package acquisition

import (
	"image"

	"github.com/soocke/trackpoint-go/domain/geometry"
)

// NextFrame reads and displays the frame at the cursor. It returns false when
// no video is loaded or the end of the video was reached; the latter also
// pauses playback.
func (m *Machine) NextFrame() bool {
	if m.session == nil {
		return false
	}
	img, err := m.session.ReadNext()
	if err != nil {
		if m.logger != nil && !IsEndOfStream(err) {
			m.logger.Warn("read frame", "error", err)
		}
		m.Pause()
		return false
	}
	m.showFrame(img)
	return true
}

// FirstFrame displays the first frame.
func (m *Machine) FirstFrame() bool {
	if m.session == nil || !m.session.Seek(0) {
		return false
	}
	return m.NextFrame()
}

// PreviousFrame displays the frame before the current one. The cursor sits
// after the displayed frame, so it moves back twice before reading.
func (m *Machine) PreviousFrame() bool {
	if m.session == nil {
		return false
	}
	m.session.Back()
	m.session.Back()
	return m.NextFrame()
}

// LastFrame displays the last frame.
func (m *Machine) LastFrame() bool {
	if m.session == nil || !m.session.Seek(m.session.FrameCount()-1) {
		return false
	}
	return m.NextFrame()
}

// showFrame pushes img to the view and redraws the points recorded on the
// few frames leading up to it.
func (m *Machine) showFrame(img image.Image) {
	cur := m.session.CurrentFrame()
	if m.deps.View != nil {
		m.deps.View.UpdateFrame(img, cur, m.session.FrameCount())
	}
	if m.deps.Overlay == nil {
		return
	}
	m.deps.Overlay.ClearOverlay()
	if !m.mode.showsPoints() {
		return
	}
	for _, p := range m.RecentPoints() {
		m.deps.Overlay.ShowPoint(p)
	}
}

// RecentPoints returns the recorded points of the frames in
// [cur-ShownPoints-1, cur), in frame order, where cur is the current frame
// number. The window follows later config changes.
func (m *Machine) RecentPoints() []geometry.Point {
	if m.session == nil {
		return nil
	}
	cur := m.session.CurrentFrame()
	from := cur - m.cfg.ShownPoints - 1
	if from < 0 {
		from = 0
	}
	var out []geometry.Point
	for i := from; i < cur && i < m.track.Len(); i++ {
		if m.track[i].Recorded {
			out = append(out, m.track[i].Point)
		}
	}
	return out
}
