package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/trackpoint-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// DistancePrompt asks for the real length of the scale segment in a small
// window. The acquisition machine ignores clicks until it answers.
type DistancePrompt struct {
	cfg    *config.Config
	logger *slog.Logger
	win    *ToplevelWidget
	entry  *TextWidget
	hint   *LabelWidget
	answer func(float64, bool)
}

func NewDistancePrompt(cfg *config.Config, logger *slog.Logger) *DistancePrompt {
	return &DistancePrompt{cfg: cfg, logger: logger}
}

// Ask opens the window. answer is called exactly once.
func (v *DistancePrompt) Ask(answer func(distance float64, ok bool)) {
	if v.win != nil {
		// A previous prompt still open is answered as cancelled.
		v.finish(0, false)
	}
	v.answer = answer
	unit := "m"
	if v.cfg != nil {
		unit = v.cfg.Unit
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Scale")
	v.win = win
	WmAttributes(win.Window, "-topmost", 1)
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.cancel)

	lbl := win.Label(Txt(fmt.Sprintf("Length of the segment in %s:", unit)), Anchor("w"))
	Grid(lbl, Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	v.entry = win.Text(Height(1), Width(16))
	Grid(v.entry, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.hint = win.Label(Txt(""), Anchor("w"))
	Grid(v.hint, Row(2), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))
	ok := win.Button(Txt("OK [Enter]"), Command(v.confirm))
	Grid(ok, Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, Row(3), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

func (v *DistancePrompt) confirm() {
	if v.win == nil || v.entry == nil {
		return
	}
	text := strings.Join(v.entry.Get("1.0", END), "")
	d, ok := parseDistance(text)
	if !ok {
		v.hint.Configure(Txt("Enter a positive number"))
		return
	}
	v.finish(d, true)
}

func (v *DistancePrompt) cancel() { v.finish(0, false) }

func (v *DistancePrompt) finish(d float64, ok bool) {
	answer := v.answer
	v.answer = nil
	if v.win != nil {
		Destroy(v.win)
		v.win, v.entry, v.hint = nil, nil, nil
	}
	if v.logger != nil {
		v.logger.Debug("distance prompt closed", "distance", d, "ok", ok)
	}
	if answer != nil {
		answer(d, ok)
	}
}

// parseDistance accepts a decimal comma as well as a point.
func parseDistance(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}
