package presenter

import (
	"log/slog"

	"github.com/soocke/trackpoint-go/config"
)

const (
	confirmOpen = "Loading a new video discards unsaved changes. Load a new video?"
	confirmExit = "Quitting discards unsaved changes. Quit?"
)

// VideoSession is the part of the machine that owns the loaded video.
type VideoSession interface {
	OpenVideo(path string) error
	VideoLoaded() bool
	Close()
}

// SessionView provides the dialogs used around opening and quitting.
type SessionView interface {
	AskVideoPath() string
	Confirm(title, msg string) bool
	ShowError(title, msg string)
}

// SessionPresenter opens videos and quits the application, asking before
// work in progress is thrown away.
type SessionPresenter struct {
	session VideoSession
	view    SessionView
	cfg     *config.Config
	logger  *slog.Logger
	onOpen  func()
	onExit  func()
}

// NewSessionPresenter returns a new SessionPresenter. onOpen runs after a
// video was loaded, onExit after the session was closed.
func NewSessionPresenter(session VideoSession, view SessionView, cfg *config.Config, logger *slog.Logger, onOpen, onExit func()) *SessionPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &SessionPresenter{session: session, view: view, cfg: cfg, logger: logger, onOpen: onOpen, onExit: onExit}
}

func (p *SessionPresenter) confirm(title, msg string) bool {
	if !p.cfg.ConfirmDiscard || !p.session.VideoLoaded() || p.view == nil {
		return true
	}
	return p.view.Confirm(title, msg)
}

// Open asks for a file and loads it.
func (p *SessionPresenter) Open() {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	if !p.confirm("Open video", confirmOpen) {
		return
	}
	if path := p.view.AskVideoPath(); path != "" {
		p.OpenPath(path)
	}
}

// OpenPath loads the video at path and reports failures to the user.
func (p *SessionPresenter) OpenPath(path string) bool {
	if p == nil || p.session == nil {
		return false
	}
	if err := p.session.OpenVideo(path); err != nil {
		if p.view != nil {
			p.view.ShowError("Error", err.Error())
		}
		return false
	}
	if p.onOpen != nil {
		p.onOpen()
	}
	return true
}

// Exit closes the session and leaves the application.
func (p *SessionPresenter) Exit() {
	if p == nil || p.session == nil {
		return
	}
	if !p.confirm("Quit", confirmExit) {
		return
	}
	p.session.Close()
	if p.logger != nil {
		p.logger.Info("exiting")
	}
	if p.onExit != nil {
		p.onExit()
	}
}
