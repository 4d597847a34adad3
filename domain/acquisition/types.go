package acquisition

import (
	"image"
	"math"
	"time"

	"github.com/soocke/trackpoint-go/domain/geometry"
	"github.com/soocke/trackpoint-go/domain/video"
)

// Calibration holds the pixel-space origin and the scale in pixels per
// physical unit. Both start unset; the scale is never zero once set.
type Calibration struct {
	origin    geometry.Point
	originSet bool
	scale     float64
	scaleSet  bool
}

func (c Calibration) Origin() (geometry.Point, bool) { return c.origin, c.originSet }
func (c Calibration) Scale() (float64, bool)         { return c.scale, c.scaleSet }

// Complete reports whether both origin and scale are set.
func (c Calibration) Complete() bool { return c.originSet && c.scaleSet }

func (c *Calibration) setOrigin(p geometry.Point) { c.origin, c.originSet = p, true }
func (c *Calibration) clearOrigin()               { c.origin, c.originSet = geometry.Point{}, false }
func (c *Calibration) clearScale()                { c.scale, c.scaleSet = 0, false }

// setScale stores pixels/dist when both are usable and reports whether it did.
func (c *Calibration) setScale(pixels, dist float64) bool {
	if !validDistance(dist) || !validDistance(pixels) {
		return false
	}
	c.scale, c.scaleSet = pixels/dist, true
	return true
}

func validDistance(d float64) bool {
	return d > 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

// Slot is one frame's entry in a Track.
type Slot struct {
	Point    geometry.Point
	Recorded bool
}

// Track stores at most one pixel-space point per frame, indexed from 0.
// Its length is fixed by the frame count of the video it belongs to.
type Track []Slot

// NewTrack allocates an empty track for n frames.
func NewTrack(n int) Track {
	if n < 0 {
		n = 0
	}
	return make(Track, n)
}

func (t Track) Len() int { return len(t) }

// At returns the point recorded for frame index i.
func (t Track) At(i int) (geometry.Point, bool) {
	if i < 0 || i >= len(t) {
		return geometry.Point{}, false
	}
	return t[i].Point, t[i].Recorded
}

// Set records p for frame index i and reports whether i was in range.
func (t Track) Set(i int, p geometry.Point) bool {
	if i < 0 || i >= len(t) {
		return false
	}
	t[i] = Slot{Point: p, Recorded: true}
	return true
}

// Recorded counts the frames holding a point.
func (t Track) Recorded() int {
	n := 0
	for _, s := range t {
		if s.Recorded {
			n++
		}
	}
	return n
}

// ModeListener is called after each mode change.
type ModeListener func(prev, next Mode)

// FrameView receives every displayed frame with its 1-based number.
type FrameView interface {
	UpdateFrame(img image.Image, current, total int)
}

// Overlay draws transient marks above the current frame.
type Overlay interface {
	ClearOverlay()
	ShowPoint(p geometry.Point)
	ShowLine(start, end geometry.Point)
}

// DistancePrompt asks the user for the real-world length of the scale
// segment and calls answer exactly once, possibly later from the event loop.
// ok is false when the user dismissed the prompt.
type DistancePrompt func(answer func(distance float64, ok bool))

// Scheduler runs fn once after d on the UI event loop. The returned func
// cancels the call if it has not run yet.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Collaborators groups the boundary dependencies of a Machine. Nil members
// turn the matching side effects into no-ops.
type Collaborators struct {
	Opener    video.Opener
	View      FrameView
	Overlay   Overlay
	Prompt    DistancePrompt
	Scheduler Scheduler
	Clock     func() time.Time
}

// Interface slices for consumers.
type ModeSource interface{ Mode() Mode }
type ClickHandler interface {
	Click(p geometry.Point)
	PointerMoved(p geometry.Point)
}
type ModeCommands interface {
	ToggleAcquisition()
	Escape()
	RedefineOrigin()
	RedefineScale()
}
type Navigation interface {
	NextFrame() bool
	PreviousFrame() bool
	FirstFrame() bool
	LastFrame() bool
}
type Playback interface {
	TogglePlayback()
	Paused() bool
}
type SeriesSource interface{ TransformedValues() Series }

// Contract aggregates everything the presentation layer calls.
type Contract interface {
	ModeSource
	ClickHandler
	ModeCommands
	Navigation
	Playback
	SeriesSource
	OpenVideo(path string) error
	Controls() ControlState
	AddListener(ModeListener)
	Close()
}
