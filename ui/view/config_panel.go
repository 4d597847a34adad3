package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/trackpoint-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the settings window. It writes back into *config.Config on
// ApplyChanges and persists the file.
type ConfigPanel interface {
	Open()
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	onApplied func(*config.Config)
	win       *ToplevelWidget
	widgets   map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. onApplied runs after a
// successful apply.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApplied func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApplied: onApplied, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Open() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	c := v.cfg
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Settings")
	v.win = win
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)
	row := 0
	makeRow := func(id, label, value string) {
		lbl := win.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("shownPoints", "Shown Points", fmt.Sprintf("%d", c.ShownPoints))
	makeRow("pointRadius", "Point Radius Px", fmt.Sprintf("%d", c.PointRadius))
	makeRow("lineWidth", "Line Width Px", fmt.Sprintf("%d", c.LineWidth))
	makeRow("unit", "Length Unit", c.Unit)
	makeRow("csvSeparator", "CSV Separator", c.CSVSeparator)
	makeRow("exportSeconds", "Times In Seconds (true/false)", fmt.Sprintf("%t", c.ExportSeconds))
	makeRow("confirmDiscard", "Confirm Discard (true/false)", fmt.Sprintf("%t", c.ConfirmDiscard))
	makeRow("darkMode", "Dark Mode (true/false)", fmt.Sprintf("%t", c.DarkMode))
	apply := win.Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(apply, Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	closeBtn := win.Button(Txt("Close"), Command(v.close))
	Grid(closeBtn, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	Bind(win, "<Escape>", Command(v.close))
}

func (v *configPanel) close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
		v.widgets = make(map[string]*TextWidget)
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, ok := parseIntField(strings.TrimSpace(v.text(w))); ok {
			*dst = i
		}
	}
	assignBool := func(id string, dst *bool) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if b, ok := parseBoolLoose(strings.TrimSpace(v.text(w))); ok {
			*dst = b
		}
	}
	assignString := func(id string, dst *string) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		// The separator may be a space or tab, so only the newline Tk
		// appends is dropped.
		if val := strings.TrimRight(v.text(w), "\n"); val != "" {
			*dst = val
		}
	}
	assignInt("shownPoints", &cfg.ShownPoints)
	assignInt("pointRadius", &cfg.PointRadius)
	assignInt("lineWidth", &cfg.LineWidth)
	assignString("unit", &cfg.Unit)
	cfg.Unit = strings.TrimSpace(cfg.Unit)
	assignString("csvSeparator", &cfg.CSVSeparator)
	assignBool("exportSeconds", &cfg.ExportSeconds)
	assignBool("confirmDiscard", &cfg.ConfirmDiscard)
	assignBool("darkMode", &cfg.DarkMode)
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
	if v.onApplied != nil {
		v.onApplied(v.cfg)
	}
}

// parsing helpers (unexported)
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
