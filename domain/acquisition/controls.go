package acquisition

// ControlState tells the view which commands make sense right now.
type ControlState struct {
	Mode         Mode
	VideoLoaded  bool
	Paused       bool
	CurrentFrame int
	FrameCount   int
	ReachedEnd   bool
	CanGoBack    bool

	CanPlay              bool // play/pause and the forward buttons
	CanSave              bool // export and show menus
	CanToggleAcquisition bool
	CanRedefine          bool
}

// Controls derives the ControlState from the machine.
func (m *Machine) Controls() ControlState {
	cs := ControlState{Mode: m.mode, Paused: m.paused}
	if m.session == nil {
		cs.Paused = true
		return cs
	}
	cs.VideoLoaded = true
	cs.CurrentFrame = m.session.CurrentFrame()
	cs.FrameCount = m.session.FrameCount()
	cs.ReachedEnd = m.session.AtEnd()
	cs.CanGoBack = cs.CurrentFrame != 1
	cs.CanPlay = !cs.ReachedEnd
	cs.CanSave = m.mode == ModeViewing
	cs.CanToggleAcquisition = m.mode == ModeViewing || m.mode == ModeAcquiring
	cs.CanRedefine = m.mode == ModeViewing
	return cs
}
