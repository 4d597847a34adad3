package view

import (
	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// VideoHandlers are the playback and stepping actions.
type VideoHandlers struct {
	First, Previous, TogglePlayback, Next, Last func()
}

// VideoControls is the row of first/previous/play/next/last buttons.
type VideoControls interface {
	SetEnabled(back, forward bool)
	SetPlaying(playing bool)
}

type videoControls struct {
	back    []*TButtonWidget
	forward []*TButtonWidget // play, next and last
	play    *TButtonWidget
	playing bool
}

const (
	playText  = "▶"
	pauseText = "❚❚"
)

// NewVideoControls creates the button row at row of the root window.
func NewVideoControls(row int, h VideoHandlers) VideoControls {
	f := Frame()
	Grid(f, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	v := &videoControls{}
	mk := func(col int, text string, fn func()) *TButtonWidget {
		b := TButton(Txt(text), Width(4), Command(call(fn)))
		Grid(b, In(f), Row(0), Column(col), Padx("0.2m"))
		return b
	}
	v.back = []*TButtonWidget{mk(0, "|◀", h.First), mk(1, "◀", h.Previous)}
	v.play = mk(2, playText, h.TogglePlayback)
	v.forward = []*TButtonWidget{v.play, mk(3, "▶|", h.Next), mk(4, "▶▶|", h.Last)}
	v.SetEnabled(false, false)
	return v
}

func (v *videoControls) SetEnabled(back, forward bool) {
	if v == nil {
		return
	}
	for _, b := range v.back {
		b.Configure(State(stateOf(back)))
	}
	for _, b := range v.forward {
		b.Configure(State(stateOf(forward)))
	}
}

// SetPlaying switches the play button between play and pause.
func (v *videoControls) SetPlaying(playing bool) {
	if v == nil || v.play == nil || playing == v.playing {
		return
	}
	v.playing = playing
	if playing {
		v.play.Configure(Txt(pauseText))
		return
	}
	v.play.Configure(Txt(playText))
}
