package images

import (
	"image"
	"sync"
)

// Display buffers are reused between repaints: every frame, playback tick
// and pointer move produces a new display-size image, and the previous one is
// garbage as soon as its PNG was handed to Tk.

var framePool sync.Pool // stores *image.RGBA

// acquireFrame returns a reusable RGBA image sized to rect. The returned Pix
// length exactly matches rect area * 4, and Stride is width*4. Pixel contents
// are undefined.
func acquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		img = &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	} else {
		img.Stride = w * 4
		img.Rect = rect
		img.Pix = img.Pix[:needed]
	}
	return img
}

// RecycleFrame returns a composed image to the pool. The caller must not
// touch img afterwards. Images not of type *image.RGBA are ignored.
func RecycleFrame(img image.Image) {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba == nil || rgba.Pix == nil {
		return
	}
	framePool.Put(rgba)
}
