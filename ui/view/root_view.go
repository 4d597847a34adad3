package view

import (
	"log/slog"

	"github.com/soocke/trackpoint-go/assets"
	"github.com/soocke/trackpoint-go/domain/acquisition"
	"github.com/soocke/trackpoint-go/domain/chart"
	"github.com/soocke/trackpoint-go/ui/presenter"
	"github.com/soocke/trackpoint-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions the root view forwards.
type Handlers struct {
	Open              func()
	Save              func()
	ToggleAcquisition func()
	RedefineOrigin    func()
	RedefineScale     func()
	Chart             func(kind chart.Kind)
	Values            func()
	Settings          func()
	Exit              func()

	// Click and Motion receive positions on the displayed frame.
	Click  func(x, y int)
	Motion func(x, y int)

	First, Previous, TogglePlayback, Next, Last func()
}

// RootView composes the main window: toolbar, frame, video controls, status
// and help text.
type RootView struct {
	Dialogs
	Controls VideoControls

	frameLabel *LabelWidget
	framePhoto *Img
	statusLbl  *TLabelWidget
	helpLbl    *TLabelWidget

	saveBtns     []*TButtonWidget // save, values and charts
	acquireBtn   *TButtonWidget
	redefineBtns []*TButtonWidget
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{Dialogs: Dialogs{Logger: logger}}
}

// Build constructs the layout and wires h.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: toolbar
	bar := Frame()
	Grid(bar, Row(0), Column(0), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	add := func(b *TButtonWidget) *TButtonWidget {
		Grid(b, In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		col++
		return b
	}
	add(TButton(Txt("Open"), Command(call(h.Open))))
	save := add(TButton(Txt("Save as"), Command(call(h.Save))))
	rv.acquireBtn = add(TButton(Txt("Acquisition"), Style(theme.StylePrimaryButton), Command(call(h.ToggleAcquisition))))
	origin := add(TButton(Txt("Redefine origin"), Command(call(h.RedefineOrigin))))
	scale := add(TButton(Txt("Redefine scale"), Command(call(h.RedefineScale))))
	rv.redefineBtns = []*TButtonWidget{origin, scale}
	rv.saveBtns = []*TButtonWidget{save}
	for _, kind := range []chart.Kind{chart.YOverTime, chart.XOverTime, chart.YOverX} {
		kind := kind
		b := add(TButton(Txt(kind.String()), Command(func() {
			if h.Chart != nil {
				h.Chart(kind)
			}
		})))
		rv.saveBtns = append(rv.saveBtns, b)
	}
	rv.saveBtns = append(rv.saveBtns, add(TButton(Txt("Values"), Command(call(h.Values)))))
	add(TButton(Txt("Settings"), Command(call(h.Settings))))
	add(TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(call(h.Exit))))

	// Row 1: frame. No border or padding so event coordinates are image pixels.
	rv.framePhoto = NewPhoto(Data(assets.PlaceholderPNG))
	rv.frameLabel = Label(Image(rv.framePhoto), Borderwidth(0), Padx(0), Pady(0))
	Grid(rv.frameLabel, Row(1), Column(0), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	Bind(rv.frameLabel, "<Button-1>", Command(func(e *Event) {
		if h.Click != nil {
			h.Click(e.X, e.Y)
		}
	}))
	Bind(rv.frameLabel, "<Motion>", Command(func(e *Event) {
		if h.Motion != nil {
			h.Motion(e.X, e.Y)
		}
	}))

	// Row 2: video controls
	rv.Controls = NewVideoControls(2, VideoHandlers{
		First: h.First, Previous: h.Previous, TogglePlayback: h.TogglePlayback, Next: h.Next, Last: h.Last,
	})

	// Rows 3-4: status and help
	rv.statusLbl = TLabel(Txt("No video"), Style(theme.StyleStatusLabel))
	Grid(rv.statusLbl, Row(3), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.helpLbl = TLabel(Txt(presenter.HelpNoVideo), Style(theme.StyleHelpLabel), Justify("left"))
	Grid(rv.helpLbl, Row(4), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	rv.ApplyControls(presenter.Describe(acquisition.ControlState{Paused: true}))
}

// ApplyControls implements presenter.ControlsView.
func (rv *RootView) ApplyControls(c presenter.Controls) {
	if rv == nil || rv.statusLbl == nil {
		return
	}
	for _, b := range rv.saveBtns {
		b.Configure(State(stateOf(c.Save)))
	}
	for _, b := range rv.redefineBtns {
		b.Configure(State(stateOf(c.Redefine)))
	}
	rv.acquireBtn.Configure(State(stateOf(c.ToggleAcquisition)))
	if rv.Controls != nil {
		rv.Controls.SetEnabled(c.Back, c.Forward)
		rv.Controls.SetPlaying(c.Playing)
	}
	rv.statusLbl.Configure(Txt(c.Status))
	rv.helpLbl.Configure(Txt(c.Help))
}

// ShowFrame implements presenter.FrameSurface.
func (rv *RootView) ShowFrame(png []byte, _, _ int) {
	rv.setPhoto(png)
}

// ClearFrame implements presenter.FrameSurface.
func (rv *RootView) ClearFrame() {
	rv.setPhoto(assets.PlaceholderPNG)
}

func (rv *RootView) setPhoto(png []byte) {
	if rv == nil || rv.frameLabel == nil || len(png) == 0 {
		return
	}
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if rv.framePhoto != nil {
		rv.framePhoto.Delete()
	}
	rv.framePhoto = NewPhoto(Data(png))
	rv.frameLabel.Configure(Image(rv.framePhoto))
}

func call(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}

func stateOf(enabled bool) string {
	if enabled {
		return "normal"
	}
	return "disabled"
}

var (
	_ presenter.ControlsView = (*RootView)(nil)
	_ presenter.FrameSurface = (*RootView)(nil)
	_ presenter.SessionView  = (*RootView)(nil)
)
