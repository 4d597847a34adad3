package presenter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/trackpoint-go/config"
	"github.com/soocke/trackpoint-go/domain/acquisition"
	"github.com/soocke/trackpoint-go/domain/chart"
	"github.com/soocke/trackpoint-go/domain/geometry"
)

type staticSeries struct{ s acquisition.Series }

func (m staticSeries) TransformedValues() acquisition.Series { return m.s }

type mockExportView struct {
	errors      []string
	valuesTitle string
	table       string
	chartTitle  string
	png         []byte
}

func (v *mockExportView) ShowError(title, msg string)        { v.errors = append(v.errors, title+": "+msg) }
func (v *mockExportView) ShowValues(title, table string)     { v.valuesTitle, v.table = title, table }
func (v *mockExportView) ShowChart(title string, png []byte) { v.chartTitle, v.png = title, png }

func sampleSeries() acquisition.Series {
	return acquisition.Series{
		Points: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(1.5, 2)},
		Times:  []float64{0, 80},
	}
}

func TestExportPresenter_SaveCSVSeconds(t *testing.T) {
	view := &mockExportView{}
	p := NewExportPresenter(staticSeries{sampleSeries()}, config.DefaultConfig(), view, nil)
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, p.SaveCSV(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "temps,x,y\n0,0,0\n0.08,1.5,2\n", string(data))
	assert.Empty(t, view.errors)
}

func TestExportPresenter_SaveCSVMillisecondsAndSeparator(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ExportSeconds = false
	cfg.CSVSeparator = ";"
	p := NewExportPresenter(staticSeries{sampleSeries()}, cfg, &mockExportView{}, nil)
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, p.SaveCSV(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "temps;x;y\n0;0;0\n80;1.5;2\n", string(data))
}

func TestExportPresenter_CancelledDialog(t *testing.T) {
	view := &mockExportView{}
	p := NewExportPresenter(staticSeries{sampleSeries()}, nil, view, nil)
	assert.NoError(t, p.SaveCSV(""))
	assert.Empty(t, view.errors)
}

func TestExportPresenter_EmptySeriesReported(t *testing.T) {
	view := &mockExportView{}
	empty := acquisition.Series{Points: []geometry.Point{}, Times: []float64{}}
	p := NewExportPresenter(staticSeries{empty}, nil, view, nil)
	path := filepath.Join(t.TempDir(), "out.csv")
	assert.Error(t, p.SaveCSV(path))
	p.ShowValues()
	p.ShowChart(chart.YOverTime)
	assert.Len(t, view.errors, 3)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestExportPresenter_ShowValues(t *testing.T) {
	view := &mockExportView{}
	p := NewExportPresenter(staticSeries{sampleSeries()}, nil, view, nil)
	p.ShowValues()
	assert.Equal(t, "Values (t in s, x and y in m)", view.valuesTitle)
	assert.Contains(t, view.table, "0.08")
	assert.Contains(t, view.table, "1.5")
}

func TestExportPresenter_ShowChart(t *testing.T) {
	view := &mockExportView{}
	p := NewExportPresenter(staticSeries{sampleSeries()}, nil, view, nil)
	p.ShowChart(chart.YOverX)
	assert.Equal(t, "y(x)", view.chartTitle)
	assert.True(t, bytes.HasPrefix(view.png, []byte("\x89PNG")))
}
