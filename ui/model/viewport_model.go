package model

import (
	"image"
	"math"

	"github.com/soocke/trackpoint-go/domain/geometry"
)

// Viewport maps between video frame pixels and the pixels of the scaled
// image shown on screen. Frames larger than the available area are shrunk
// preserving aspect ratio; smaller ones are shown 1:1. The zero value is an
// identity mapping.
type Viewport struct {
	ratio   float64 // display / frame
	frame   image.Point
	display image.Point
}

// Fit sizes the viewport for a frame of frameW x frameH inside maxW x maxH.
func (v *Viewport) Fit(frameW, frameH, maxW, maxH int) {
	if v == nil {
		return
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	v.frame = image.Pt(frameW, frameH)
	v.ratio = 1
	if frameW > maxW || frameH > maxH {
		v.ratio = math.Min(float64(maxW)/float64(frameW), float64(maxH)/float64(frameH))
	}
	w := int(float64(frameW)*v.ratio + 0.5)
	h := int(float64(frameH)*v.ratio + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	v.display = image.Pt(w, h)
}

// Ratio is the display size divided by the frame size.
func (v *Viewport) Ratio() float64 {
	if v == nil || v.ratio == 0 {
		return 1
	}
	return v.ratio
}

// Display returns the size of the shown image.
func (v *Viewport) Display() image.Point {
	if v == nil {
		return image.Point{}
	}
	return v.display
}

// Frame returns the size of the video frame.
func (v *Viewport) Frame() image.Point {
	if v == nil {
		return image.Point{}
	}
	return v.frame
}

// ToFrame converts a position on the shown image to frame pixels.
func (v *Viewport) ToFrame(x, y int) geometry.Point {
	r := v.Ratio()
	return geometry.Pt(float64(x)/r, float64(y)/r)
}

// ToDisplay converts frame pixels to a position on the shown image.
func (v *Viewport) ToDisplay(p geometry.Point) geometry.Point {
	return geometry.Scale(p, v.Ratio(), v.Ratio())
}
