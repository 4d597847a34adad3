package presenter

// Loop coalesces redraw requests into one Tick on the event loop.
//
// Any number of Request calls before the scheduled Tick runs result in a
// single repaint of the frame and a single controls refresh. The zero value
// is usable (methods are nil-safe); without Schedule, Request ticks at once.
type Loop struct {
	Frame    *FramePresenter
	Controls *ControlsPresenter
	Schedule func(fn func())
	pending  bool
}

func NewLoop(frame *FramePresenter, controls *ControlsPresenter, schedule func(fn func())) *Loop {
	return &Loop{Frame: frame, Controls: controls, Schedule: schedule}
}

// Request asks for a Tick.
func (l *Loop) Request() {
	if l == nil || l.pending {
		return
	}
	if l.Schedule == nil {
		l.Tick()
		return
	}
	l.pending = true
	l.Schedule(l.Tick)
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	l.pending = false
	if l.Frame != nil {
		l.Frame.Flush()
	}
	if l.Controls != nil {
		l.Controls.Tick()
	}
}
