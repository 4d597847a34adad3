// Package videotest provides an in-memory video.Decoder for tests.
package videotest

import (
	"image"

	"github.com/soocke/trackpoint-go/domain/video"
)

// Decoder serves solid-colour frames from memory.
type Decoder struct {
	W, H     int
	Frames   int
	Rate     float64
	Pos      int
	Reads    int
	Closed   int
	FailRead bool // Read reports failure, as a truncated file would
}

// New returns a decoder with n frames at fps.
func New(n int, fps float64) *Decoder {
	return &Decoder{W: 64, H: 48, Frames: n, Rate: fps}
}

func (d *Decoder) Width() int            { return d.W }
func (d *Decoder) Height() int           { return d.H }
func (d *Decoder) FPS() float64          { return d.Rate }
func (d *Decoder) FrameCount() int       { return d.Frames }
func (d *Decoder) Position() int         { return d.Pos }
func (d *Decoder) SetPosition(index int) { d.Pos = index }
func (d *Decoder) Close() error          { d.Closed++; return nil }

func (d *Decoder) Read() (image.Image, bool) {
	if d.FailRead || d.Pos >= d.Frames {
		return nil, false
	}
	img := image.NewRGBA(image.Rect(0, 0, d.W, d.H))
	shade := uint8(d.Pos % 256)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = shade, shade, shade, 0xff
	}
	d.Pos++
	d.Reads++
	return img, true
}

// Opener returns a video.Opener that always yields d.
func Opener(d *Decoder) video.Opener {
	return func(string) (video.Decoder, error) { return d, nil }
}

var _ video.Decoder = (*Decoder)(nil)
