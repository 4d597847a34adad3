package acquisition

import "time"

// Paused reports whether playback is stopped.
func (m *Machine) Paused() bool { return m.paused }

// TogglePlayback starts or pauses playback.
func (m *Machine) TogglePlayback() {
	if m.session == nil {
		return
	}
	if m.paused {
		m.Play()
		return
	}
	m.Pause()
}

// Play starts the self-rescheduling playback loop.
func (m *Machine) Play() {
	if m.session == nil || !m.paused {
		return
	}
	m.paused = false
	if m.logger != nil {
		m.logger.Debug("playback started", "frame", m.session.CurrentFrame())
	}
	m.tick()
}

// Pause stops playback. A pending tick is cancelled; one that already fired
// observes the flag and does nothing.
func (m *Machine) Pause() {
	if m.paused {
		return
	}
	m.paused = true
	if m.cancelTick != nil {
		m.cancelTick()
		m.cancelTick = nil
	}
	if m.logger != nil && m.session != nil {
		m.logger.Debug("playback paused", "frame", m.session.CurrentFrame())
	}
}

// tick shows one frame and schedules the next one so that wall-clock pacing
// stays close to the native frame rate.
func (m *Machine) tick() {
	m.cancelTick = nil
	if m.paused || m.session == nil {
		return
	}
	before := m.deps.Clock()
	if !m.NextFrame() {
		return
	}
	elapsed := m.deps.Clock().Sub(before)
	delay := NextTickDelay(m.session.FrameDuration(), elapsed)
	if m.deps.Scheduler == nil {
		m.paused = true
		return
	}
	m.cancelTick = m.deps.Scheduler.After(delay, m.tick)
}

// NextTickDelay returns max(frame-elapsed, 0).
func NextTickDelay(frame, elapsed time.Duration) time.Duration {
	if d := frame - elapsed; d > 0 {
		return d
	}
	return 0
}
