package acquisition

import (
	"bytes"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/trackpoint-go/config"
	"github.com/soocke/trackpoint-go/domain/geometry"
	"github.com/soocke/trackpoint-go/domain/video"
	"github.com/soocke/trackpoint-go/domain/video/videotest"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type overlayCall struct {
	kind       string
	start, end geometry.Point
}

type fakeOverlay struct{ calls []overlayCall }

func (o *fakeOverlay) ClearOverlay()              { o.calls = append(o.calls, overlayCall{kind: "clear"}) }
func (o *fakeOverlay) ShowPoint(p geometry.Point) { o.calls = append(o.calls, overlayCall{kind: "point", start: p}) }
func (o *fakeOverlay) ShowLine(a, b geometry.Point) {
	o.calls = append(o.calls, overlayCall{kind: "line", start: a, end: b})
}

func (o *fakeOverlay) reset() { o.calls = nil }

func (o *fakeOverlay) points() []geometry.Point {
	var out []geometry.Point
	for _, c := range o.calls {
		if c.kind == "point" {
			out = append(out, c.start)
		}
	}
	return out
}

type fakeView struct {
	frames  int
	current int
	total   int
}

func (v *fakeView) UpdateFrame(_ image.Image, current, total int) {
	v.frames++
	v.current, v.total = current, total
}

// prompter answers distance prompts from a queue.
type prompter struct {
	answers []promptAnswer
	asked   int
	hold    bool
	held    func(float64, bool)
}

type promptAnswer struct {
	dist float64
	ok   bool
}

// prompt answers right away unless hold is set, in which case the answer
// callback is kept for the test to call.
func (p *prompter) prompt(answer func(float64, bool)) {
	p.asked++
	if p.hold {
		p.held = answer
		return
	}
	if len(p.answers) == 0 {
		answer(0, false)
		return
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	answer(a.dist, a.ok)
}

// manualScheduler records scheduled calls; tests fire them explicitly.
type manualScheduler struct {
	delays    []time.Duration
	pending   func()
	cancelled int
}

func (s *manualScheduler) After(d time.Duration, fn func()) func() {
	s.delays = append(s.delays, d)
	s.pending = fn
	return func() {
		s.cancelled++
		s.pending = nil
	}
}

func (s *manualScheduler) fire() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}

// stepClock advances by step on every read.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

type fixture struct {
	m       *Machine
	dec     *videotest.Decoder
	overlay *fakeOverlay
	view    *fakeView
	prompt  *prompter
	sched   *manualScheduler
	clock   *stepClock
	path    string
}

func videoFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "clip.avi")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}

func newFixture(t *testing.T, frames int, fps float64) *fixture {
	t.Helper()
	f := &fixture{
		dec:     videotest.New(frames, fps),
		overlay: &fakeOverlay{},
		view:    &fakeView{},
		prompt:  &prompter{},
		sched:   &manualScheduler{},
		clock:   &stepClock{now: time.Unix(0, 0)},
		path:    videoFile(t),
	}
	f.m = NewMachine(discardLogger, config.DefaultConfig(), Collaborators{
		Opener:    videotest.Opener(f.dec),
		View:      f.view,
		Overlay:   f.overlay,
		Prompt:    f.prompt.prompt,
		Scheduler: f.sched,
		Clock:     f.clock.Now,
	})
	return f
}

func (f *fixture) open(t *testing.T) {
	t.Helper()
	require.NoError(t, f.m.OpenVideo(f.path))
}

// calibrate sets origin (0,0) and a 100px horizontal segment worth 1 unit.
func (f *fixture) calibrate(t *testing.T) {
	t.Helper()
	f.m.Click(geometry.Pt(0, 0))
	require.Equal(t, ModeDefiningScale, f.m.Mode())
	f.prompt.answers = append(f.prompt.answers, promptAnswer{dist: 1, ok: true})
	f.m.Click(geometry.Pt(10, 10))
	f.m.Click(geometry.Pt(110, 12))
	require.Equal(t, ModeViewing, f.m.Mode())
}

func TestNewMachine_Initial(t *testing.T) {
	f := newFixture(t, 10, 25)
	assert.Equal(t, ModeDefiningOrigin, f.m.Mode())
	assert.False(t, f.m.VideoLoaded())
	assert.True(t, f.m.Paused())
	assert.False(t, f.m.Calibration().Complete())
	assert.True(t, f.m.TransformedValues().Empty())
}

func TestMachine_ClickWithoutVideoIgnored(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.m.Click(geometry.Pt(5, 5))
	_, ok := f.m.Calibration().Origin()
	assert.False(t, ok)
	assert.Equal(t, ModeDefiningOrigin, f.m.Mode())
}

func TestMachine_OpenVideoShowsFirstFrame(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	assert.True(t, f.m.VideoLoaded())
	assert.Equal(t, ModeDefiningOrigin, f.m.Mode())
	assert.Equal(t, 1, f.view.frames)
	assert.Equal(t, 1, f.view.current)
	assert.Equal(t, 10, f.view.total)
	assert.Equal(t, 10, f.m.Track().Len())
	assert.True(t, f.m.Paused())
}

func TestMachine_CalibrationFlow(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	var seq []Mode
	f.m.AddListener(func(_, next Mode) { seq = append(seq, next) })

	f.m.Click(geometry.Pt(3, 4))
	origin, ok := f.m.Calibration().Origin()
	require.True(t, ok)
	assert.Equal(t, geometry.Pt(3, 4), origin)
	assert.Equal(t, ModeDefiningScale, f.m.Mode())

	f.m.Click(geometry.Pt(10, 10))
	p, pending := f.m.Scratch()
	require.True(t, pending)
	assert.Equal(t, geometry.Pt(10, 10), p)
	assert.Equal(t, 0, f.prompt.asked)

	f.prompt.answers = []promptAnswer{{dist: 2, ok: true}}
	// |dx|=90 > |dy|=40 so the end snaps to (100, 10)
	f.m.Click(geometry.Pt(100, 50))
	scale, ok := f.m.Calibration().Scale()
	require.True(t, ok)
	assert.InDelta(t, 45.0, scale, 1e-9)
	assert.Equal(t, ModeViewing, f.m.Mode())
	_, pending = f.m.Scratch()
	assert.False(t, pending)
	assert.Equal(t, []Mode{ModeDefiningScale, ModeViewing}, seq)
}

func TestMachine_PromptCancelKeepsScratch(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.m.Click(geometry.Pt(0, 0))
	f.m.Click(geometry.Pt(10, 10))
	f.prompt.answers = []promptAnswer{{ok: false}}
	f.m.Click(geometry.Pt(60, 10))

	assert.Equal(t, ModeDefiningScale, f.m.Mode())
	_, ok := f.m.Calibration().Scale()
	assert.False(t, ok)
	p, pending := f.m.Scratch()
	require.True(t, pending)
	assert.Equal(t, geometry.Pt(10, 10), p)

	// the next click prompts again against the retained first point
	f.prompt.answers = []promptAnswer{{dist: 5, ok: true}}
	f.m.Click(geometry.Pt(60, 10))
	scale, ok := f.m.Calibration().Scale()
	require.True(t, ok)
	assert.InDelta(t, 10.0, scale, 1e-9)
	assert.Equal(t, 2, f.prompt.asked)
}

func TestMachine_ClicksIgnoredWhilePrompting(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.m.Click(geometry.Pt(0, 0))
	f.m.Click(geometry.Pt(10, 10))
	f.prompt.hold = true
	f.m.Click(geometry.Pt(60, 10))
	require.True(t, f.m.Prompting())

	f.m.Click(geometry.Pt(200, 10))
	assert.Equal(t, 1, f.prompt.asked)

	f.prompt.held(2, true)
	assert.False(t, f.m.Prompting())
	scale, ok := f.m.Calibration().Scale()
	require.True(t, ok)
	assert.InDelta(t, 25.0, scale, 1e-9)
	assert.Equal(t, ModeViewing, f.m.Mode())
}

func TestMachine_StalePromptAnswerDropped(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.m.Click(geometry.Pt(0, 0))
	f.m.Click(geometry.Pt(10, 10))
	f.prompt.hold = true
	f.m.Click(geometry.Pt(60, 10))
	stale := f.prompt.held

	require.NoError(t, f.m.OpenVideo(f.path))
	assert.False(t, f.m.Prompting())
	stale(3, true)
	_, ok := f.m.Calibration().Scale()
	assert.False(t, ok)
	assert.Equal(t, ModeDefiningOrigin, f.m.Mode())
}

func TestMachine_InvalidDistanceIgnored(t *testing.T) {
	for _, dist := range []float64{0, -3} {
		f := newFixture(t, 10, 25)
		f.open(t)
		f.m.Click(geometry.Pt(0, 0))
		f.m.Click(geometry.Pt(10, 10))
		f.prompt.answers = []promptAnswer{{dist: dist, ok: true}}
		f.m.Click(geometry.Pt(60, 10))
		assert.Equal(t, ModeDefiningScale, f.m.Mode(), "distance %v", dist)
		_, ok := f.m.Calibration().Scale()
		assert.False(t, ok, "distance %v", dist)
	}
}

func TestMachine_ZeroLengthSegmentNotPrompted(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.m.Click(geometry.Pt(0, 0))
	f.m.Click(geometry.Pt(10, 10))
	// snaps onto the first point
	f.m.Click(geometry.Pt(10, 10))
	assert.Equal(t, 0, f.prompt.asked)
	assert.Equal(t, ModeDefiningScale, f.m.Mode())
}

func TestMachine_PointerPreview(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.m.PointerMoved(geometry.Pt(40, 40))
	f.m.Click(geometry.Pt(0, 0))
	f.overlay.reset()
	f.m.PointerMoved(geometry.Pt(40, 40))
	assert.Empty(t, f.overlay.calls, "no preview without a first scale point")

	f.m.Click(geometry.Pt(10, 10))
	f.overlay.reset()
	f.m.PointerMoved(geometry.Pt(40, 20))
	require.Len(t, f.overlay.calls, 3)
	assert.Equal(t, "clear", f.overlay.calls[0].kind)
	assert.Equal(t, overlayCall{kind: "point", start: geometry.Pt(10, 10)}, f.overlay.calls[1])
	assert.Equal(t, overlayCall{kind: "line", start: geometry.Pt(10, 10), end: geometry.Pt(40, 10)}, f.overlay.calls[2])
	_, pending := f.m.Scratch()
	assert.True(t, pending)
}

func TestMachine_ToggleAcquisitionTwice(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.m.ToggleAcquisition()
	assert.Equal(t, ModeDefiningOrigin, f.m.Mode(), "toggle needs calibration")

	f.calibrate(t)
	f.m.ToggleAcquisition()
	assert.Equal(t, ModeAcquiring, f.m.Mode())
	f.m.ToggleAcquisition()
	assert.Equal(t, ModeViewing, f.m.Mode())
}

func TestMachine_EscapeLeavesAcquisition(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.m.Escape()
	assert.Equal(t, ModeDefiningOrigin, f.m.Mode())
	f.calibrate(t)
	f.m.ToggleAcquisition()
	f.m.Escape()
	assert.Equal(t, ModeViewing, f.m.Mode())
}

func TestMachine_AcquireRecordsAndAdvances(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.calibrate(t)
	f.m.ToggleAcquisition()

	f.m.Click(geometry.Pt(50, 60))
	assert.Equal(t, 2, f.m.Session().CurrentFrame())
	p, ok := f.m.Track().At(0)
	require.True(t, ok)
	assert.Equal(t, geometry.Pt(50, 60), p)
	assert.Equal(t, ModeAcquiring, f.m.Mode())
	assert.Equal(t, []geometry.Point{geometry.Pt(50, 60)}, f.overlay.points())
}

func TestMachine_AcquireOverwritesSameFrame(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.calibrate(t)
	f.m.ToggleAcquisition()
	f.m.Click(geometry.Pt(1, 1))
	f.m.PreviousFrame()
	f.m.Click(geometry.Pt(2, 2))
	p, _ := f.m.Track().At(0)
	assert.Equal(t, geometry.Pt(2, 2), p)
	assert.Equal(t, 1, f.m.Track().Recorded())
}

func TestMachine_AcquireOnLastFrameReturnsToViewing(t *testing.T) {
	f := newFixture(t, 3, 25)
	f.open(t)
	f.calibrate(t)
	f.m.ToggleAcquisition()
	f.m.LastFrame()
	require.Equal(t, 3, f.m.Session().CurrentFrame())

	f.m.Click(geometry.Pt(7, 7))
	_, ok := f.m.Track().At(2)
	assert.True(t, ok)
	assert.Equal(t, ModeViewing, f.m.Mode())
	assert.True(t, f.m.Controls().ReachedEnd)
}

func TestMachine_ViewingClickIgnored(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.calibrate(t)
	f.m.Click(geometry.Pt(9, 9))
	assert.Equal(t, 0, f.m.Track().Recorded())
	assert.Equal(t, 1, f.m.Session().CurrentFrame())
}

func TestMachine_RedefineOrigin(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.calibrate(t)
	f.m.RedefineOrigin()
	assert.Equal(t, ModeDefiningOrigin, f.m.Mode())
	_, ok := f.m.Calibration().Origin()
	assert.False(t, ok)
	scale, ok := f.m.Calibration().Scale()
	require.True(t, ok)

	// scale survives, so a new origin returns straight to viewing
	f.m.Click(geometry.Pt(20, 30))
	assert.Equal(t, ModeViewing, f.m.Mode())
	s2, _ := f.m.Calibration().Scale()
	assert.Equal(t, scale, s2)
}

func TestMachine_RedefineScale(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.calibrate(t)
	f.m.RedefineScale()
	assert.Equal(t, ModeDefiningScale, f.m.Mode())
	_, ok := f.m.Calibration().Scale()
	assert.False(t, ok)
	_, ok = f.m.Calibration().Origin()
	assert.True(t, ok)
	assert.True(t, f.m.TransformedValues().Empty())
}

func TestMachine_RedefineNotAllowedWhileCalibrating(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.m.Click(geometry.Pt(1, 1))
	f.m.Click(geometry.Pt(5, 5))
	f.m.RedefineOrigin()
	assert.Equal(t, ModeDefiningScale, f.m.Mode())
	_, pending := f.m.Scratch()
	assert.True(t, pending)
}

func TestMachine_LeavingScaleClearsScratch(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.calibrate(t)
	f.m.RedefineScale()
	f.m.Click(geometry.Pt(5, 5))
	require.NoError(t, f.m.OpenVideo(f.path))
	_, pending := f.m.Scratch()
	assert.False(t, pending)
	assert.Equal(t, ModeDefiningOrigin, f.m.Mode())
}

func TestMachine_OpenVideoResets(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.calibrate(t)
	f.m.ToggleAcquisition()
	f.m.Click(geometry.Pt(4, 4))

	second := videotest.New(6, 50)
	f.m.deps.Opener = videotest.Opener(second)
	require.NoError(t, f.m.OpenVideo(f.path))

	assert.Equal(t, 1, f.dec.Closed)
	assert.Equal(t, ModeDefiningOrigin, f.m.Mode())
	assert.False(t, f.m.Calibration().Complete())
	assert.Equal(t, 6, f.m.Track().Len())
	assert.Equal(t, 0, f.m.Track().Recorded())
	assert.InDelta(t, 20.0, f.m.Session().FrameDurationMs(), 1e-9)
}

func TestMachine_FailedOpenKeepsState(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.calibrate(t)
	f.m.ToggleAcquisition()
	f.m.Click(geometry.Pt(4, 4))
	before := f.m.Session()

	err := f.m.OpenVideo(filepath.Join(t.TempDir(), "missing.avi"))
	require.ErrorIs(t, err, video.ErrCannotOpen)

	f.m.deps.Opener = videotest.Opener(videotest.New(1, 25))
	err = f.m.OpenVideo(f.path)
	require.ErrorIs(t, err, video.ErrInvalidFrameCount)

	assert.Same(t, before, f.m.Session())
	assert.Equal(t, ModeAcquiring, f.m.Mode())
	assert.True(t, f.m.Calibration().Complete())
	assert.Equal(t, 1, f.m.Track().Recorded())
	assert.Equal(t, 0, f.dec.Closed)
}

func TestMachine_ModeChangeClearsOverlayAndNotifies(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	type change struct{ prev, next Mode }
	var got []change
	f.m.AddListener(func(prev, next Mode) { got = append(got, change{prev, next}) })
	f.m.AddListener(nil)

	f.overlay.reset()
	f.m.Click(geometry.Pt(0, 0))
	require.NotEmpty(t, f.overlay.calls)
	assert.Equal(t, "clear", f.overlay.calls[0].kind)
	assert.Equal(t, []change{{ModeDefiningOrigin, ModeDefiningScale}}, got)
}

func TestMachine_RecentPointsWindow(t *testing.T) {
	f := newFixture(t, 20, 25)
	f.open(t)
	f.calibrate(t)
	f.m.ToggleAcquisition()
	for i := 0; i < 10; i++ {
		f.m.Click(geometry.Pt(float64(i), float64(i)))
	}
	// cursor on frame 11; default window covers indexes [5, 11)
	require.Equal(t, 11, f.m.Session().CurrentFrame())
	pts := f.m.RecentPoints()
	require.Len(t, pts, 5)
	assert.Equal(t, geometry.Pt(5, 5), pts[0])
	assert.Equal(t, geometry.Pt(9, 9), pts[4])
}

func TestMachine_PointsHiddenWhileCalibrating(t *testing.T) {
	f := newFixture(t, 10, 25)
	f.open(t)
	f.calibrate(t)
	f.m.ToggleAcquisition()
	f.m.Click(geometry.Pt(1, 1))
	f.m.ToggleAcquisition()
	f.m.RedefineOrigin()
	f.overlay.reset()
	f.m.FirstFrame()
	assert.Empty(t, f.overlay.points())
}

func TestMachine_Navigation(t *testing.T) {
	f := newFixture(t, 5, 25)
	assert.False(t, f.m.NextFrame())
	assert.False(t, f.m.FirstFrame())
	f.open(t)

	assert.True(t, f.m.NextFrame())
	assert.True(t, f.m.NextFrame())
	assert.Equal(t, 3, f.m.Session().CurrentFrame())
	assert.True(t, f.m.PreviousFrame())
	assert.Equal(t, 2, f.m.Session().CurrentFrame())
	assert.True(t, f.m.LastFrame())
	assert.Equal(t, 5, f.m.Session().CurrentFrame())
	assert.False(t, f.m.NextFrame())
	assert.Equal(t, 5, f.view.current)
	assert.True(t, f.m.FirstFrame())
	assert.Equal(t, 1, f.m.Session().CurrentFrame())
}

func TestMachine_Controls(t *testing.T) {
	f := newFixture(t, 3, 25)
	cs := f.m.Controls()
	assert.False(t, cs.VideoLoaded)
	assert.False(t, cs.CanPlay)
	assert.False(t, cs.CanSave)

	f.open(t)
	cs = f.m.Controls()
	assert.True(t, cs.VideoLoaded)
	assert.False(t, cs.CanGoBack)
	assert.True(t, cs.CanPlay)
	assert.False(t, cs.CanSave)
	assert.False(t, cs.CanToggleAcquisition)

	f.calibrate(t)
	f.m.NextFrame()
	cs = f.m.Controls()
	assert.True(t, cs.CanGoBack)
	assert.True(t, cs.CanSave)
	assert.True(t, cs.CanRedefine)
	assert.True(t, cs.CanToggleAcquisition)
	assert.Equal(t, 2, cs.CurrentFrame)
	assert.Equal(t, 3, cs.FrameCount)

	assert.False(t, cs.ReachedEnd)

	f.m.ToggleAcquisition()
	cs = f.m.Controls()
	assert.True(t, cs.CanToggleAcquisition)
	assert.False(t, cs.CanSave)

	f.m.ToggleAcquisition()
	require.True(t, f.m.LastFrame())
	cs = f.m.Controls()
	assert.True(t, cs.ReachedEnd)
	assert.False(t, cs.CanPlay)
	assert.Equal(t, f.m.Session().AtEnd(), cs.ReachedEnd)
}

func TestMachine_OpenVideoLogsMetadata(t *testing.T) {
	f := newFixture(t, 12, 30)
	var buf bytes.Buffer
	f.m.logger = slog.New(slog.NewTextHandler(&buf, nil))
	f.open(t)
	out := buf.String()
	assert.Contains(t, out, "video opened")
	assert.Contains(t, out, "width=64 height=48 frames=12 fps=30")
}

func TestMachine_CloseReleasesVideo(t *testing.T) {
	f := newFixture(t, 5, 25)
	f.open(t)
	f.m.Close()
	assert.False(t, f.m.VideoLoaded())
	assert.Equal(t, 1, f.dec.Closed)
	f.m.Close()
	assert.Equal(t, 1, f.dec.Closed)
}
