// Package chart renders trajectory plots as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/soocke/trackpoint-go/domain/geometry"
)

var (
	ErrNoPoints       = errors.New("no points")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrUnknownKind    = errors.New("unknown chart kind")
)

// Kind selects which coordinates go on which axis.
type Kind int

const (
	YOverTime Kind = iota
	XOverTime
	YOverX
)

func (k Kind) String() string {
	switch k {
	case YOverTime:
		return "y(t)"
	case XOverTime:
		return "x(t)"
	case YOverX:
		return "y(x)"
	default:
		return "unknown"
	}
}

// Options controls the rendered image.
type Options struct {
	Width, Height int    // pixels
	TimeUnit      string // "s" or "ms"
	Unit          string // physical length unit
	Color         color.Color
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 480
	}
	if o.Height <= 0 {
		o.Height = 360
	}
	if o.TimeUnit == "" {
		o.TimeUnit = "s"
	}
	if o.Color == nil {
		o.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	}
	return o
}

func axisLabel(name, unit string) string {
	if unit == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, unit)
}

// XYs picks the plotted pairs for kind.
func XYs(kind Kind, times []float64, points []geometry.Point) (plotter.XYs, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if len(times) != len(points) {
		return nil, fmt.Errorf("%w: %d times, %d points", ErrLengthMismatch, len(times), len(points))
	}
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		switch kind {
		case YOverTime:
			xys[i].X, xys[i].Y = times[i], p.Y
		case XOverTime:
			xys[i].X, xys[i].Y = times[i], p.X
		case YOverX:
			xys[i].X, xys[i].Y = p.X, p.Y
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
		}
	}
	return xys, nil
}

// Render draws the chart of kind and returns it PNG encoded.
func Render(kind Kind, times []float64, points []geometry.Point, opts Options) ([]byte, error) {
	xys, err := XYs(kind, times, points)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = kind.String()
	switch kind {
	case YOverTime:
		p.X.Label.Text = axisLabel("t", opts.TimeUnit)
		p.Y.Label.Text = axisLabel("y", opts.Unit)
	case XOverTime:
		p.X.Label.Text = axisLabel("t", opts.TimeUnit)
		p.Y.Label.Text = axisLabel("x", opts.Unit)
	case YOverX:
		p.X.Label.Text = axisLabel("x", opts.Unit)
		p.Y.Label.Text = axisLabel("y", opts.Unit)
	}
	p.Add(plotter.NewGrid())

	line, points2, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	line.Color = opts.Color
	points2.Color = opts.Color
	points2.Shape = draw.CircleGlyph{}
	p.Add(line, points2)

	w := vg.Length(opts.Width) * vg.Inch / vgimg.DefaultDPI
	h := vg.Length(opts.Height) * vg.Inch / vgimg.DefaultDPI
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	return buf.Bytes(), nil
}
