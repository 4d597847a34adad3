// Package gocvsource decodes video files through OpenCV.
package gocvsource

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/soocke/trackpoint-go/domain/video"
)

type decoder struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
}

// Open opens path with gocv.VideoCaptureFile. It satisfies video.Opener.
func Open(path string) (video.Decoder, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, err
	}
	if !capture.IsOpened() {
		_ = capture.Close()
		return nil, fmt.Errorf("capture not opened: %s", path)
	}
	return &decoder{capture: capture, frame: gocv.NewMat()}, nil
}

func (d *decoder) Width() int        { return int(d.capture.Get(gocv.VideoCaptureFrameWidth)) }
func (d *decoder) Height() int       { return int(d.capture.Get(gocv.VideoCaptureFrameHeight)) }
func (d *decoder) FPS() float64      { return d.capture.Get(gocv.VideoCaptureFPS) }
func (d *decoder) FrameCount() int   { return int(d.capture.Get(gocv.VideoCaptureFrameCount)) }
func (d *decoder) Position() int     { return int(d.capture.Get(gocv.VideoCapturePosFrames)) }
func (d *decoder) SetPosition(i int) { d.capture.Set(gocv.VideoCapturePosFrames, float64(i)) }

// Read decodes the next frame. The Mat buffer is reused between reads; the
// returned image is a fresh copy.
func (d *decoder) Read() (image.Image, bool) {
	if ok := d.capture.Read(&d.frame); !ok || d.frame.Empty() {
		return nil, false
	}
	img, err := d.frame.ToImage()
	if err != nil {
		return nil, false
	}
	return img, true
}

func (d *decoder) Close() error {
	_ = d.frame.Close()
	return d.capture.Close()
}

var _ video.Decoder = (*decoder)(nil)
