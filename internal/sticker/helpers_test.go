package sticker

import (
	"image"
	"image/color"
)

func solidRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func rectMask(w, h, x0, y0, x1, y1 int) Mask {
	m := NewMask(w, h)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			m.Bits[y*w+x] = 255
		}
	}
	return m
}

// alphaBBox returns the inclusive bounding box of pixels with alpha
// strictly above threshold.
func alphaBBox(img *image.NRGBA, threshold uint8) (minX, minY, maxX, maxY int, ok bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	minX, minY = w, h
	maxX, maxY = -1, -1
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
	return minX, minY, maxX, maxY, maxX >= minX && maxY >= minY
}

func countVisible(img *image.NRGBA) int {
	b := img.Bounds()
	n := 0
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if img.Pix[y*img.Stride+x*4+3] > 0 {
				n++
			}
		}
	}
	return n
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)
