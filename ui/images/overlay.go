package images

import (
	"image"
	"image/color"
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/soocke/trackpoint-go/ui/model"
)

// Style describes how overlay marks are painted, in display pixels.
type Style struct {
	Color     color.Color
	Radius    float64
	LineWidth float64
}

// DefaultStyle paints red marks.
func DefaultStyle() Style {
	return Style{Color: color.RGBA{R: 0xe0, G: 0x1b, B: 0x24, A: 0xff}, Radius: 5, LineWidth: 3}
}

// Compose scales frame into the viewport and paints the overlay marks on
// top. Mark coordinates are frame pixels; the viewport maps them. The result
// may be handed back with RecycleFrame once encoded.
func Compose(frame image.Image, vp *model.Viewport, overlay *model.OverlayModel, st Style) image.Image {
	if frame == nil {
		return nil
	}
	size := vp.Display()
	if size.X <= 0 || size.Y <= 0 {
		size = frame.Bounds().Size()
	}
	base := Resize(frame, size.X, size.Y)
	if overlay.Empty() {
		return base
	}
	if st.Color == nil {
		st = DefaultStyle()
	}
	ctx := gg.NewContextForImage(base)
	ctx.SetColor(st.Color)
	ctx.SetLineCapButt()
	ctx.SetLineWidth(st.LineWidth)
	for _, s := range overlay.Segments() {
		a, b := vp.ToDisplay(s.Start), vp.ToDisplay(s.End)
		ctx.MoveTo(a.X, a.Y)
		ctx.LineTo(b.X, b.Y)
		ctx.Stroke()
	}
	for _, p := range overlay.Points() {
		d := vp.ToDisplay(p)
		ctx.DrawArc(d.X, d.Y, st.Radius, 0, 2*math.Pi)
		ctx.Fill()
	}
	out := ctx.Image()
	if rgba, ok := out.(*image.RGBA); !ok || rgba != base {
		RecycleFrame(base)
	}
	return out
}
