package app

import (
	"log/slog"

	"github.com/soocke/trackpoint-go/config"
	"github.com/soocke/trackpoint-go/domain/acquisition"
	"github.com/soocke/trackpoint-go/domain/chart"
	"github.com/soocke/trackpoint-go/domain/video/gocvsource"
	"github.com/soocke/trackpoint-go/ui/model"
	"github.com/soocke/trackpoint-go/ui/presenter"
	"github.com/soocke/trackpoint-go/ui/theme"
	"github.com/soocke/trackpoint-go/ui/view"
)

// AppContainer assembles models, the acquisition machine, presenters and
// views. No Tk widget exists until RootView.Build runs.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Overlay  *model.OverlayModel
	Viewport *model.Viewport
	Machine  *acquisition.Machine

	RootView *view.RootView
	Results  *view.ResultsWindows
	Prompt   *view.DistancePrompt
	Settings view.ConfigPanel

	// Presenters
	FramePresenter    *presenter.FramePresenter
	ControlsPresenter *presenter.ControlsPresenter
	SessionPresenter  *presenter.SessionPresenter
	ExportPresenter   *presenter.ExportPresenter
	InputPresenter    *presenter.InputPresenter
	Loop              *presenter.Loop
}

// BuildContainer constructs all components. schedule queues a func on the
// event loop and onExit leaves it.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string, sched acquisition.Scheduler, schedule func(func()), onExit func()) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Overlay = model.NewOverlayModel()
	c.Viewport = &model.Viewport{}

	// Views
	c.RootView = view.NewRootView(logger)
	c.Results = &view.ResultsWindows{Dialogs: view.Dialogs{Logger: logger}}
	c.Prompt = view.NewDistancePrompt(cfg, logger)

	c.FramePresenter = presenter.NewFramePresenter(c.RootView, c.Overlay, c.Viewport, cfg)
	c.Machine = acquisition.NewMachine(logger, cfg, acquisition.Collaborators{
		Opener:    gocvsource.Open,
		View:      c.FramePresenter,
		Overlay:   c.FramePresenter,
		Prompt:    c.Prompt.Ask,
		Scheduler: sched,
	})

	c.ControlsPresenter = presenter.NewControlsPresenter(c.Machine, c.RootView, logger)
	c.Loop = presenter.NewLoop(c.FramePresenter, c.ControlsPresenter, schedule)
	c.FramePresenter.SetRequest(c.Loop.Request)
	c.Machine.AddListener(c.ControlsPresenter.OnMode)
	c.Machine.AddListener(func(prev, next acquisition.Mode) { c.Loop.Request() })

	c.SessionPresenter = presenter.NewSessionPresenter(c.Machine, c.RootView, cfg, logger, c.Loop.Request, onExit)
	c.ExportPresenter = presenter.NewExportPresenter(c.Machine, cfg, c.Results, logger)
	c.InputPresenter = presenter.NewInputPresenter(c.Machine, c.FramePresenter, c.Loop.Request)
	c.Settings = view.NewConfigPanel(cfg, cfgPath, logger, c.settingsApplied)
	return c
}

// Handlers maps root view actions to presenters.
func (c *AppContainer) Handlers() view.Handlers {
	in := c.InputPresenter
	g := c.guard
	return view.Handlers{
		Open:              g("open", c.SessionPresenter.Open),
		Save:              g("save", func() { _ = c.ExportPresenter.SaveCSV(c.RootView.AskSavePath()) }),
		ToggleAcquisition: g("acquisition", in.ToggleAcquisition),
		RedefineOrigin:    g("redefine origin", in.RedefineOrigin),
		RedefineScale:     g("redefine scale", in.RedefineScale),
		Chart: func(kind chart.Kind) {
			g("chart", func() { c.ExportPresenter.ShowChart(kind) })()
		},
		Values:   g("values", c.ExportPresenter.ShowValues),
		Settings: g("settings", c.Settings.Open),
		Exit:     g("exit", c.SessionPresenter.Exit),
		Click: func(x, y int) {
			g("click", func() { in.Click(x, y) })()
		},
		Motion: func(x, y int) {
			g("motion", func() { in.Motion(x, y) })()
		},
		First:          g("first", in.First),
		Previous:       g("previous", in.Previous),
		TogglePlayback: g("play", in.TogglePlayback),
		Next:           g("next", in.Next),
		Last:           g("last", in.Last),
	}
}

// guard keeps a panicking callback from taking down the event loop.
func (c *AppContainer) guard(name string, fn func()) func() {
	return func() {
		defer c.recovered(name)
		fn()
	}
}

func (c *AppContainer) recovered(name string) {
	if r := recover(); r != nil && c.Logger != nil {
		c.Logger.Error("callback panic", "action", name, "panic", r)
	}
}

func (c *AppContainer) settingsApplied(cfg *config.Config) {
	if cfg.DarkMode != theme.IsDark() {
		theme.SetDark(cfg.DarkMode)
	}
	c.FramePresenter.SetArea(cfg.WindowWidth, cfg.WindowHeight)
	c.FramePresenter.Repaint()
	c.Loop.Request()
}
