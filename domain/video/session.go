package video

import (
	"fmt"
	"image"
	"math"
	"os"
	"time"
)

// Session is one opened video plus its playback cursor. It is not safe for
// concurrent use; the UI event loop is the only caller.
type Session struct {
	dec      Decoder
	meta     Metadata
	duration float64 // ms per frame
	closed   bool
}

// Open validates path and opens it with opener.
func Open(path string, opener Opener) (*Session, error) {
	if opener == nil {
		return nil, fmt.Errorf("%w: no decoder available", ErrCannotOpen)
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotOpen, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrCannotOpen, path)
	}
	dec, err := opener(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotOpen, err)
	}
	return NewSession(dec)
}

// NewSession wraps dec after checking its metadata. The decoder is closed
// when it is rejected.
func NewSession(dec Decoder) (*Session, error) {
	if dec == nil {
		return nil, ErrCannotOpen
	}
	meta := Metadata{
		Width:      dec.Width(),
		Height:     dec.Height(),
		FrameCount: dec.FrameCount(),
		FPS:        dec.FPS(),
	}
	if err := meta.Validate(); err != nil {
		_ = dec.Close()
		return nil, err
	}
	return &Session{dec: dec, meta: meta, duration: 1000 / meta.FPS}, nil
}

// Validate rejects metadata the acquisition pipeline cannot work with.
func (m Metadata) Validate() error {
	if m.FrameCount <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidFrameCount, m.FrameCount)
	}
	if m.FPS <= 0 || math.IsNaN(m.FPS) || math.IsInf(m.FPS, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrameRate, m.FPS)
	}
	return nil
}

func (s *Session) Metadata() Metadata { return s.meta }
func (s *Session) Width() int         { return s.meta.Width }
func (s *Session) Height() int        { return s.meta.Height }
func (s *Session) FrameCount() int    { return s.meta.FrameCount }

// FrameDurationMs is the reciprocal of the frame rate in milliseconds.
func (s *Session) FrameDurationMs() float64 { return s.duration }

// FrameDuration is FrameDurationMs as a time.Duration.
func (s *Session) FrameDuration() time.Duration {
	return time.Duration(s.duration * float64(time.Millisecond))
}

// CurrentFrame is the 1-based number of the last frame read, 0 before the
// first read or after seeking to the start.
func (s *Session) CurrentFrame() int {
	if s.closed {
		return 0
	}
	return s.dec.Position()
}

// Seek moves the cursor so the next read returns frame index (0-based).
// Indexes outside [0, FrameCount] are rejected and the cursor is unchanged.
func (s *Session) Seek(index int) bool {
	if s.closed || index < 0 || index > s.meta.FrameCount {
		return false
	}
	s.dec.SetPosition(index)
	return true
}

// Back moves the cursor one frame backwards.
func (s *Session) Back() bool {
	return s.Seek(s.CurrentFrame() - 1)
}

// ReadNext decodes the frame at the cursor and advances it.
func (s *Session) ReadNext() (image.Image, error) {
	if s.closed {
		return nil, ErrNoVideo
	}
	if s.dec.Position() >= s.meta.FrameCount {
		return nil, ErrEndOfStream
	}
	img, ok := s.dec.Read()
	if !ok || img == nil {
		return nil, ErrEndOfStream
	}
	return img, nil
}

// AtEnd reports whether the last frame has been read.
func (s *Session) AtEnd() bool { return s.CurrentFrame() == s.meta.FrameCount }

// Close releases the decoder. Calling it again is a no-op.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	return s.dec.Close()
}
