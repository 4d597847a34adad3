package presenter

import (
	"fmt"
	"log/slog"

	"github.com/soocke/trackpoint-go/domain/acquisition"
)

const (
	HelpNoVideo   = "Open a video with the Open button (Ctrl+O)"
	HelpOrigin    = "Click on the image to define the origin of the axes"
	HelpScale     = "Click two points on the video to define the scale"
	HelpAcquiring = "Click on the video to record a point and move to the next frame\nLeave acquisition with Escape or the Acquisition button"
	HelpViewing   = "Start acquisition with the Acquisition button or look at the values and charts"
)

// Controls is the widget state derived from the acquisition machine.
type Controls struct {
	Save              bool // save, values and charts
	ToggleAcquisition bool
	Redefine          bool
	Back              bool // first and previous
	Forward           bool // play, next and last
	Playing           bool
	Status            string
	Help              string
}

// Describe maps a machine snapshot to widget state.
func Describe(cs acquisition.ControlState) Controls {
	if !cs.VideoLoaded {
		return Controls{Status: "No video", Help: HelpNoVideo}
	}
	c := Controls{
		Save:              cs.CanSave,
		ToggleAcquisition: cs.CanToggleAcquisition,
		Redefine:          cs.CanRedefine,
		Back:              cs.CanGoBack,
		Forward:           cs.CanPlay,
		Playing:           !cs.Paused,
		Status:            fmt.Sprintf("Frame %d/%d | %s", cs.CurrentFrame, cs.FrameCount, cs.Mode),
	}
	switch cs.Mode {
	case acquisition.ModeDefiningOrigin:
		c.Help = HelpOrigin
	case acquisition.ModeDefiningScale:
		c.Help = HelpScale
	case acquisition.ModeAcquiring:
		c.Help = HelpAcquiring
	case acquisition.ModeViewing:
		c.Help = HelpViewing
	}
	return c
}

// ControlSource provides the machine snapshot.
type ControlSource interface {
	Controls() acquisition.ControlState
}

// ControlsView applies widget state.
type ControlsView interface{ ApplyControls(Controls) }

// ControlsPresenter keeps buttons, status and help text in line with the
// machine. Mode changes are queued by OnMode and logged on the next Tick,
// which also reflects them in the view.
type ControlsPresenter struct {
	src     ControlSource
	view    ControlsView
	logger  *slog.Logger
	latest  Controls
	applied bool
	pending []transition
}

type transition struct{ prev, next acquisition.Mode }

func NewControlsPresenter(src ControlSource, view ControlsView, logger *slog.Logger) *ControlsPresenter {
	return &ControlsPresenter{src: src, view: view, logger: logger}
}

// OnMode is an acquisition.ModeListener.
func (p *ControlsPresenter) OnMode(prev, next acquisition.Mode) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, transition{prev, next})
}

// Tick logs queued mode changes and pushes the current state to the view
// when it changed.
func (p *ControlsPresenter) Tick() {
	if p == nil {
		return
	}
	for _, t := range p.pending {
		if p.logger != nil {
			p.logger.Debug("mode changed", "from", t.prev.String(), "to", t.next.String())
		}
	}
	p.pending = p.pending[:0]
	if p.src == nil || p.view == nil {
		return
	}
	c := Describe(p.src.Controls())
	if p.applied && c == p.latest {
		return
	}
	p.latest, p.applied = c, true
	p.view.ApplyControls(c)
}
