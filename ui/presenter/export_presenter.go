package presenter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/soocke/trackpoint-go/config"
	"github.com/soocke/trackpoint-go/domain/acquisition"
	"github.com/soocke/trackpoint-go/domain/chart"
	"github.com/soocke/trackpoint-go/domain/export"
)

// ExportView shows results and failures.
type ExportView interface {
	ShowError(title, msg string)
	ShowValues(title, table string)
	ShowChart(title string, png []byte)
}

// ExportPresenter turns the transformed trajectory into files, tables and
// charts.
type ExportPresenter struct {
	src    acquisition.SeriesSource
	cfg    *config.Config
	view   ExportView
	logger *slog.Logger
}

func NewExportPresenter(src acquisition.SeriesSource, cfg *config.Config, view ExportView, logger *slog.Logger) *ExportPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ExportPresenter{src: src, cfg: cfg, view: view, logger: logger}
}

// data returns the trajectory with times in the configured unit.
func (p *ExportPresenter) data() (acquisition.Series, []float64, string) {
	s := p.src.TransformedValues()
	if p.cfg.ExportSeconds {
		return s, s.Seconds(), "s"
	}
	return s, s.Times, "ms"
}

// SaveCSV writes the trajectory to path. An empty path means the user
// cancelled the dialog.
func (p *ExportPresenter) SaveCSV(path string) error {
	if p == nil || p.src == nil || path == "" {
		return nil
	}
	s, times, _ := p.data()
	if err := export.WriteFile(path, times, s.Points, p.cfg.Separator()); err != nil {
		p.fail("Save", err)
		return err
	}
	if p.logger != nil {
		p.logger.Info("trajectory saved", "path", path, "points", s.Len())
	}
	return nil
}

// ShowValues opens the table of transformed values.
func (p *ExportPresenter) ShowValues() {
	if p == nil || p.src == nil {
		return
	}
	s, times, unit := p.data()
	table, err := export.Table(times, s.Points)
	if err != nil {
		p.fail("Values", err)
		return
	}
	if p.view != nil {
		p.view.ShowValues(fmt.Sprintf("Values (t in %s, x and y in %s)", unit, p.cfg.Unit), table)
	}
}

// ShowChart renders and opens the chart of kind.
func (p *ExportPresenter) ShowChart(kind chart.Kind) {
	if p == nil || p.src == nil {
		return
	}
	s, times, unit := p.data()
	png, err := chart.Render(kind, times, s.Points, chart.Options{
		Width:    p.cfg.PlotWidth,
		Height:   p.cfg.PlotHeight,
		TimeUnit: unit,
		Unit:     p.cfg.Unit,
	})
	if err != nil {
		p.fail(kind.String(), err)
		return
	}
	if p.view != nil {
		p.view.ShowChart(kind.String(), png)
	}
}

func (p *ExportPresenter) fail(title string, err error) {
	msg := err.Error()
	if errors.Is(err, export.ErrNoPoints) || errors.Is(err, chart.ErrNoPoints) {
		msg = "No points: define the origin and scale, then record points in acquisition mode."
	}
	if p.logger != nil {
		p.logger.Warn("export failed", "action", title, "error", err)
	}
	if p.view != nil {
		p.view.ShowError(title, msg)
	}
}
