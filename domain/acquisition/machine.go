package acquisition

import (
	"errors"
	"log/slog"
	"time"

	"github.com/soocke/trackpoint-go/config"
	"github.com/soocke/trackpoint-go/domain/geometry"
	"github.com/soocke/trackpoint-go/domain/video"
)

// Machine owns the editing mode, the calibration, the per-frame track and the
// loaded video session. All methods must be called from the UI event loop;
// the machine relies on that single thread instead of locking.
type Machine struct {
	logger *slog.Logger
	cfg    *config.Config
	deps   Collaborators

	mode       Mode
	cal        Calibration
	scratch    geometry.Point // first scale click
	scratchSet bool
	prompting  bool // distance prompt open
	promptSeq  int
	track      Track
	session    *video.Session

	paused     bool
	cancelTick func()

	listeners []ModeListener
}

// NewMachine returns a machine with no video, in ModeDefiningOrigin.
func NewMachine(logger *slog.Logger, cfg *config.Config, deps Collaborators) *Machine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Machine{logger: logger, cfg: cfg, deps: deps, mode: ModeDefiningOrigin, paused: true}
}

func (m *Machine) AddListener(l ModeListener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

func (m *Machine) Mode() Mode               { return m.mode }
func (m *Machine) Calibration() Calibration { return m.cal }
func (m *Machine) VideoLoaded() bool        { return m.session != nil }

// Session returns the loaded video, or nil.
func (m *Machine) Session() *video.Session { return m.session }

// Track returns a copy of the per-frame points.
func (m *Machine) Track() Track {
	out := make(Track, len(m.track))
	copy(out, m.track)
	return out
}

// Scratch returns the pending first scale point.
func (m *Machine) Scratch() (geometry.Point, bool) { return m.scratch, m.scratchSet }

// Prompting reports whether a distance prompt is waiting for an answer.
func (m *Machine) Prompting() bool { return m.prompting }

// OpenVideo replaces the current session with the video at path. On failure
// the previous session, track and calibration are kept untouched.
func (m *Machine) OpenVideo(path string) error {
	s, err := video.Open(path, m.deps.Opener)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("open video failed", "path", path, "error", err)
		}
		return err
	}
	m.Pause()
	if m.session != nil {
		if cerr := m.session.Close(); cerr != nil && m.logger != nil {
			m.logger.Warn("close previous video", "error", cerr)
		}
	}
	m.session = s
	m.track = NewTrack(s.FrameCount())
	m.cal = Calibration{}
	m.clearScratch()
	if m.logger != nil {
		meta := s.Metadata()
		m.logger.Info("video opened", "path", path, "width", meta.Width, "height", meta.Height,
			"frames", meta.FrameCount, "fps", meta.FPS, "frame_ms", s.FrameDurationMs())
	}
	m.setMode(ModeDefiningOrigin)
	m.NextFrame()
	return nil
}

// Close stops playback and releases the video.
func (m *Machine) Close() {
	m.Pause()
	m.cancelPrompt()
	if m.session != nil {
		_ = m.session.Close()
		m.session = nil
	}
	m.track = nil
}

// Click dispatches a canvas click on the current mode. Only the handler of
// the active mode runs, so the outcome never depends on registration order.
func (m *Machine) Click(p geometry.Point) {
	if m.session == nil || m.prompting {
		return
	}
	switch m.mode {
	case ModeDefiningOrigin:
		m.clickOrigin(p)
	case ModeDefiningScale:
		m.clickScale(p)
	case ModeAcquiring:
		m.clickAcquiring(p)
	case ModeViewing:
	}
}

func (m *Machine) clickOrigin(p geometry.Point) {
	m.cal.setOrigin(p)
	if m.logger != nil {
		m.logger.Info("origin defined", "x", p.X, "y", p.Y)
	}
	if _, ok := m.cal.Scale(); ok {
		m.setMode(ModeViewing)
		return
	}
	m.setMode(ModeDefiningScale)
}

func (m *Machine) clickScale(p geometry.Point) {
	if !m.scratchSet {
		m.scratch, m.scratchSet = p, true
		return
	}
	end := geometry.SnapToAxis(m.scratch, p)
	pixels := geometry.Distance(m.scratch, end)
	if !validDistance(pixels) {
		if m.logger != nil {
			m.logger.Warn("scale segment has no length", "x", p.X, "y", p.Y)
		}
		return
	}
	if m.deps.Prompt == nil {
		return
	}
	m.promptSeq++
	seq := m.promptSeq
	m.prompting = true
	m.deps.Prompt(func(dist float64, ok bool) {
		// answers to a prompt abandoned by a mode change are dropped
		if seq != m.promptSeq || !m.prompting {
			return
		}
		m.prompting = false
		if ok {
			m.applyScale(pixels, dist)
		}
	})
}

func (m *Machine) applyScale(pixels, dist float64) {
	if !m.cal.setScale(pixels, dist) {
		if m.logger != nil {
			m.logger.Warn("rejected real distance", "distance", dist)
		}
		return
	}
	if m.logger != nil {
		scale, _ := m.cal.Scale()
		m.logger.Info("scale defined", "pixels", pixels, "distance", dist, "px_per_unit", scale)
	}
	m.clearScratch()
	m.setMode(ModeViewing)
}

func (m *Machine) clickAcquiring(p geometry.Point) {
	idx := m.session.CurrentFrame() - 1
	if !m.track.Set(idx, p) {
		return
	}
	if !m.NextFrame() {
		m.setMode(ModeViewing)
	}
}

// PointerMoved previews the snapped scale segment while the first scale
// point is pending. It never mutates state.
func (m *Machine) PointerMoved(p geometry.Point) {
	if m.mode != ModeDefiningScale || !m.scratchSet || m.deps.Overlay == nil {
		return
	}
	m.deps.Overlay.ClearOverlay()
	m.deps.Overlay.ShowPoint(m.scratch)
	m.deps.Overlay.ShowLine(m.scratch, geometry.SnapToAxis(m.scratch, p))
}

// ToggleAcquisition switches between viewing and acquiring.
func (m *Machine) ToggleAcquisition() {
	switch m.mode {
	case ModeViewing:
		if m.session != nil {
			m.setMode(ModeAcquiring)
		}
	case ModeAcquiring:
		m.setMode(ModeViewing)
	}
}

// Escape leaves acquisition.
func (m *Machine) Escape() {
	if m.mode == ModeAcquiring {
		m.setMode(ModeViewing)
	}
}

// RedefineOrigin forgets the origin and waits for a new origin click.
func (m *Machine) RedefineOrigin() {
	if !m.canRedefine() {
		return
	}
	m.cal.clearOrigin()
	m.setMode(ModeDefiningOrigin)
}

// RedefineScale forgets the scale and waits for two new scale clicks.
func (m *Machine) RedefineScale() {
	if !m.canRedefine() {
		return
	}
	m.cal.clearScale()
	m.clearScratch()
	m.setMode(ModeDefiningScale)
}

func (m *Machine) canRedefine() bool {
	return m.session != nil && (m.mode == ModeViewing || m.mode == ModeAcquiring)
}

// TransformedValues returns the physical trajectory for the loaded video.
func (m *Machine) TransformedValues() Series {
	if m.session == nil {
		return Transform(Calibration{}, nil, 0)
	}
	return Transform(m.cal, m.track, m.session.FrameDurationMs())
}

func (m *Machine) clearScratch() { m.scratch, m.scratchSet = geometry.Point{}, false }

func (m *Machine) cancelPrompt() {
	if m.prompting {
		m.prompting = false
		m.promptSeq++
	}
}

// setMode switches mode, drops any overlay and tells listeners.
func (m *Machine) setMode(next Mode) {
	prev := m.mode
	if prev == ModeDefiningScale && next != ModeDefiningScale {
		m.clearScratch()
		m.cancelPrompt()
	}
	m.mode = next
	if m.deps.Overlay != nil {
		m.deps.Overlay.ClearOverlay()
	}
	if m.logger != nil {
		m.logger.Debug("acquisition mode transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range m.listeners {
		l(prev, next)
	}
}

// IsEndOfStream reports whether err marks the end of the video.
func IsEndOfStream(err error) bool { return errors.Is(err, video.ErrEndOfStream) }

var _ Contract = (*Machine)(nil)
