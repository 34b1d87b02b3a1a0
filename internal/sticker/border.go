package sticker

import (
	"image"

	"golang.org/x/image/draw"
)

// closingRadius smooths the silhouette before the border is grown.
const closingRadius = 3

// Border draws a solid white die-cut ring around the artwork. The canvas
// alpha is thresholded into a silhouette, closed at a fixed radius to fill
// pinholes, dilated by p.BorderPx, filled white, and the artwork is
// composited back on top. Output dimensions match the canvas.
func Border(canvas *image.NRGBA, p Params) *image.NRGBA {
	b := canvas.Bounds()
	w, h := b.Dx(), b.Dy()

	sil := FromAlpha(canvas, uint8(p.AlphaThreshold))
	sil = Close(sil, closingRadius)
	band := Dilate(sil, p.BorderPx)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if band.Bits[y*w+x] == 0 {
				continue
			}
			i := y*out.Stride + x*4
			out.Pix[i] = 255
			out.Pix[i+1] = 255
			out.Pix[i+2] = 255
			out.Pix[i+3] = 255
		}
	}

	draw.Copy(out, image.Pt(0, 0), canvas, b, draw.Over, nil)
	return out
}
