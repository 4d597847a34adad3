package app

import (
	"log/slog"
	"sync/atomic"

	. "modernc.org/tk9.0"

	"github.com/soocke/trackpoint-go/config"
	"github.com/soocke/trackpoint-go/ui/theme"
)

type app struct {
	title string
	c     *AppContainer

	// Snapshot for the debug logger, which runs off the event loop.
	frame  atomic.Int64
	points atomic.Int64
}

// NewApp builds the container. Widgets are created by Start.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{title: title}
	a.c = BuildContainer(cfg, logger, cfgPath, tkScheduler{}, a.schedule, a.exitHandler)
	return a
}

// Start builds the window, optionally opens video and runs the event loop
// until the window is closed.
func (a *app) Start(video string) {
	c := a.c
	theme.SetDark(c.Config.DarkMode)
	App.WmTitle(a.title)
	WmProtocol(App, "WM_DELETE_WINDOW", c.guard("exit", c.SessionPresenter.Exit))
	WmGeometry(App, "+100+100")

	h := c.Handlers()
	c.RootView.Build(h)
	Bind(App, "<Escape>", Command(c.guard("escape", c.InputPresenter.Escape)))
	Bind(App, "<Control-o>", Command(h.Open))
	Bind(App, "<Control-q>", Command(h.Exit))
	Bind(App, "<space>", Command(h.TogglePlayback))
	Bind(App, "<Left>", Command(h.Previous))
	Bind(App, "<Right>", Command(h.Next))
	Bind(App, "<Home>", Command(h.First))
	Bind(App, "<End>", Command(h.Last))

	if video != "" {
		c.SessionPresenter.OpenPath(video)
	}
	App.Wait()
}

// Stats reports the last shown frame and recorded point count. Safe from any
// goroutine.
func (a *app) Stats() []slog.Attr {
	return []slog.Attr{
		slog.Int64("frame", a.frame.Load()),
		slog.Int64("points", a.points.Load()),
	}
}

// schedule queues fn on the event loop and refreshes the stats snapshot
// after it ran.
func (a *app) schedule(fn func()) {
	idle(func() {
		fn()
		m := a.c.Machine
		a.frame.Store(int64(m.Controls().CurrentFrame))
		a.points.Store(int64(m.Track().Recorded()))
	})
}

func (a *app) exitHandler() {
	if a.c != nil && a.c.Logger != nil {
		a.c.Logger.Info("window closed")
	}
	Destroy(App)
}
