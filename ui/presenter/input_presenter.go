package presenter

import (
	"github.com/soocke/trackpoint-go/domain/acquisition"
	"github.com/soocke/trackpoint-go/domain/geometry"
)

// InputMachine narrows what the presenter drives on the acquisition machine.
type InputMachine interface {
	acquisition.ClickHandler
	acquisition.ModeCommands
	acquisition.Navigation
	acquisition.Playback
}

// PointMapper converts surface positions to frame pixels.
type PointMapper interface {
	FramePoint(x, y int) geometry.Point
}

// InputPresenter forwards user input from the root view to the machine and
// asks for a refresh afterwards, since most commands change which controls
// are enabled without changing the mode.
type InputPresenter struct {
	machine InputMachine
	mapper  PointMapper
	refresh func()
}

func NewInputPresenter(machine InputMachine, mapper PointMapper, refresh func()) *InputPresenter {
	return &InputPresenter{machine: machine, mapper: mapper, refresh: refresh}
}

func (p *InputPresenter) ready() bool { return p != nil && p.machine != nil }

func (p *InputPresenter) done() {
	if p.refresh != nil {
		p.refresh()
	}
}

func (p *InputPresenter) point(x, y int) geometry.Point {
	if p.mapper == nil {
		return geometry.Pt(float64(x), float64(y))
	}
	return p.mapper.FramePoint(x, y)
}

// Click handles a left click at surface position (x, y).
func (p *InputPresenter) Click(x, y int) {
	if !p.ready() {
		return
	}
	p.machine.Click(p.point(x, y))
	p.done()
}

// Motion handles pointer motion over the surface.
func (p *InputPresenter) Motion(x, y int) {
	if !p.ready() {
		return
	}
	p.machine.PointerMoved(p.point(x, y))
}

func (p *InputPresenter) run(fn func()) {
	if !p.ready() {
		return
	}
	fn()
	p.done()
}

func (p *InputPresenter) ToggleAcquisition() { p.run(func() { p.machine.ToggleAcquisition() }) }
func (p *InputPresenter) Escape()            { p.run(func() { p.machine.Escape() }) }
func (p *InputPresenter) RedefineOrigin()    { p.run(func() { p.machine.RedefineOrigin() }) }
func (p *InputPresenter) RedefineScale()     { p.run(func() { p.machine.RedefineScale() }) }
func (p *InputPresenter) TogglePlayback()    { p.run(func() { p.machine.TogglePlayback() }) }
func (p *InputPresenter) First()             { p.run(func() { p.machine.FirstFrame() }) }
func (p *InputPresenter) Previous()          { p.run(func() { p.machine.PreviousFrame() }) }
func (p *InputPresenter) Next()              { p.run(func() { p.machine.NextFrame() }) }
func (p *InputPresenter) Last()              { p.run(func() { p.machine.LastFrame() }) }
