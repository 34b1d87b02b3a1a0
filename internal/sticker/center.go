package sticker

import (
	"image"

	"golang.org/x/image/draw"
)

// Center crops img to the bounding box of pixels whose alpha exceeds the
// threshold, scales it so the long edge is at most p.MaxDimension (never
// upscaling), and pastes it centered on a transparent square canvas of
// p.CanvasSize. An image with no visible pixels yields a blank canvas.
func Center(img *image.NRGBA, p Params) *image.NRGBA {
	cropped, ok := cropVisible(img, uint8(p.AlphaThreshold))
	if !ok {
		return image.NewNRGBA(image.Rect(0, 0, p.CanvasSize, p.CanvasSize))
	}

	cb := cropped.Bounds()
	srcW, srcH := cb.Dx(), cb.Dy()

	long := srcW
	if srcH > long {
		long = srcH
	}
	target := p.MaxDimension
	if long < target {
		target = long
	}

	newW := srcW * target / long
	newH := srcH * target / long
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	scaled := cropped
	if newW != srcW || newH != srcH {
		scaled = resample(cropped, newW, newH)
	}

	// Center on canvas
	canvas := image.NewNRGBA(image.Rect(0, 0, p.CanvasSize, p.CanvasSize))
	offX := (p.CanvasSize - newW) / 2
	offY := (p.CanvasSize - newH) / 2
	for y := 0; y < newH; y++ {
		if offY+y < 0 || offY+y >= p.CanvasSize {
			continue
		}
		srcOff := y * scaled.Stride
		dstOff := (offY+y)*canvas.Stride + offX*4
		copyLen := newW * 4
		if offX+newW > p.CanvasSize {
			copyLen = (p.CanvasSize - offX) * 4
		}
		if offX >= 0 && copyLen > 0 {
			copy(canvas.Pix[dstOff:dstOff+copyLen], scaled.Pix[srcOff:srcOff+copyLen])
		}
	}

	return canvas
}

// cropVisible crops img to the tight bounding box of pixels whose alpha
// is strictly greater than threshold. ok is false when nothing qualifies.
func cropVisible(img *image.NRGBA, threshold uint8) (*image.NRGBA, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[y*img.Stride+x*4+3] > threshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < minX || maxY < minY {
		return nil, false
	}

	cropW := maxX - minX + 1
	cropH := maxY - minY + 1
	cropped := image.NewNRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		srcOff := (minY+y)*img.Stride + minX*4
		dstOff := y * cropped.Stride
		copy(cropped.Pix[dstOff:dstOff+cropW*4], img.Pix[srcOff:srcOff+cropW*4])
	}
	return cropped, true
}

// resample scales img to w×h with Catmull-Rom filtering over
// premultiplied alpha. Premultiplying keeps dark halos from forming at
// transparent edges.
func resample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()

	// Premultiply alpha
	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply alpha
	out := image.NewNRGBA(dst.Bounds())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := dst.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := float64(dst.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				out.Pix[di] = clamp8(float64(dst.Pix[si]) * inv)
				out.Pix[di+1] = clamp8(float64(dst.Pix[si+1]) * inv)
				out.Pix[di+2] = clamp8(float64(dst.Pix[si+2]) * inv)
			}
			out.Pix[di+3] = dst.Pix[si+3]
		}
	}

	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
