package video

import (
	"errors"
	"image"
)

var (
	// ErrCannotOpen reports a path that could not be decoded as a video.
	ErrCannotOpen = errors.New("cannot load video")
	// ErrInvalidFrameCount reports a source with one frame or less, e.g. a still image.
	ErrInvalidFrameCount = errors.New("invalid frame count")
	// ErrInvalidFrameRate reports a source without a usable frame rate.
	ErrInvalidFrameRate = errors.New("invalid frame rate")
	// ErrEndOfStream is returned by ReadNext once every frame has been read.
	ErrEndOfStream = errors.New("end of stream")
	// ErrNoVideo is returned by operations that need a loaded video.
	ErrNoVideo = errors.New("no video loaded")
)

// Decoder is the low level frame source wrapped by Session. Position is the
// 0-based index of the next frame Read returns.
type Decoder interface {
	Width() int
	Height() int
	FPS() float64
	FrameCount() int
	Position() int
	SetPosition(index int)
	Read() (image.Image, bool)
	Close() error
}

// Opener turns a file path into a Decoder.
type Opener func(path string) (Decoder, error)

// Metadata describes a loaded video.
type Metadata struct {
	Width      int
	Height     int
	FrameCount int
	FPS        float64
}
