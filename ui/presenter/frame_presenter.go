package presenter

import (
	"image"

	"github.com/soocke/trackpoint-go/config"
	"github.com/soocke/trackpoint-go/domain/acquisition"
	"github.com/soocke/trackpoint-go/domain/geometry"
	"github.com/soocke/trackpoint-go/ui/images"
	"github.com/soocke/trackpoint-go/ui/model"
)

// FrameSurface shows the composed frame.
type FrameSurface interface {
	ShowFrame(png []byte, width, height int)
	ClearFrame()
}

// FramePresenter receives frames and overlay marks from the acquisition
// machine and redraws the frame surface. Redraws are coalesced: marks only
// invalidate, and Flush paints once.
type FramePresenter struct {
	view     FrameSurface
	overlay  *model.OverlayModel
	viewport *model.Viewport
	cfg      *config.Config

	maxW, maxH int
	frame      image.Image
	dirty      bool
	request    func()
}

func NewFramePresenter(view FrameSurface, overlay *model.OverlayModel, viewport *model.Viewport, cfg *config.Config) *FramePresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if overlay == nil {
		overlay = model.NewOverlayModel()
	}
	if viewport == nil {
		viewport = &model.Viewport{}
	}
	return &FramePresenter{view: view, overlay: overlay, viewport: viewport, cfg: cfg, maxW: cfg.WindowWidth, maxH: cfg.WindowHeight}
}

// SetArea bounds the displayed frame size.
func (p *FramePresenter) SetArea(w, h int) {
	if p == nil {
		return
	}
	p.maxW, p.maxH = w, h
}

// SetRequest installs the redraw request hook. Without one, every change
// is painted immediately.
func (p *FramePresenter) SetRequest(fn func()) {
	if p != nil {
		p.request = fn
	}
}

// UpdateFrame implements acquisition.FrameView. The counter is shown by the
// controls presenter.
func (p *FramePresenter) UpdateFrame(img image.Image, _, _ int) {
	if p == nil || img == nil {
		return
	}
	p.frame = img
	b := img.Bounds()
	p.viewport.Fit(b.Dx(), b.Dy(), p.maxW, p.maxH)
	p.invalidate()
}

func (p *FramePresenter) ClearOverlay() {
	if p == nil {
		return
	}
	if !p.overlay.Empty() {
		p.overlay.Clear()
		p.invalidate()
	}
}

func (p *FramePresenter) ShowPoint(pt geometry.Point) {
	if p == nil {
		return
	}
	p.overlay.AddPoint(pt)
	p.invalidate()
}

func (p *FramePresenter) ShowLine(start, end geometry.Point) {
	if p == nil {
		return
	}
	p.overlay.AddSegment(start, end)
	p.invalidate()
}

// FramePoint converts a click on the surface to frame pixels.
func (p *FramePresenter) FramePoint(x, y int) geometry.Point {
	if p == nil {
		return geometry.Pt(float64(x), float64(y))
	}
	return p.viewport.ToFrame(x, y)
}

// Style returns the overlay paint settings derived from the config.
func (p *FramePresenter) Style() images.Style {
	st := images.DefaultStyle()
	if p != nil && p.cfg != nil {
		st.Radius = float64(p.cfg.PointRadius)
		st.LineWidth = float64(p.cfg.LineWidth)
	}
	return st
}

// Flush paints the pending frame and marks.
func (p *FramePresenter) Flush() {
	if p == nil || !p.dirty || p.view == nil {
		return
	}
	p.dirty = false
	if p.frame == nil {
		p.view.ClearFrame()
		return
	}
	composed := images.Compose(p.frame, p.viewport, p.overlay, p.Style())
	b := composed.Bounds()
	png := images.EncodePNG(composed)
	images.RecycleFrame(composed)
	p.view.ShowFrame(png, b.Dx(), b.Dy())
}

// Repaint redraws the current frame, e.g. after the overlay style changed.
func (p *FramePresenter) Repaint() {
	if p == nil || p.frame == nil {
		return
	}
	p.invalidate()
}

// Reset forgets the current frame.
func (p *FramePresenter) Reset() {
	if p == nil {
		return
	}
	p.frame = nil
	p.overlay.Clear()
	p.invalidate()
}

func (p *FramePresenter) invalidate() {
	p.dirty = true
	if p.request != nil {
		p.request()
		return
	}
	p.Flush()
}

var (
	_ acquisition.FrameView = (*FramePresenter)(nil)
	_ acquisition.Overlay   = (*FramePresenter)(nil)
)
