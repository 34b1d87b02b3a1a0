package sticker

import (
	"image"
	"math"
)

// Mask is a binary visibility mask over a w×h pixel grid, one byte per
// pixel in row-major order. Zero means transparent/invisible.
type Mask struct {
	W, H int
	Bits []uint8
}

// NewMask returns an all-zero mask of the given dimensions.
func NewMask(w, h int) Mask {
	return Mask{W: w, H: h, Bits: make([]uint8, w*h)}
}

// FromAlpha builds a mask from the alpha channel of img. A pixel is
// visible only when its alpha is strictly greater than threshold.
func FromAlpha(img *image.NRGBA, threshold uint8) Mask {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := img.Stride

	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[y*stride+x*4+3] > threshold {
				m.Bits[y*w+x] = 255
			}
		}
	}
	return m
}

// Count returns the number of visible pixels.
func (m Mask) Count() int {
	n := 0
	for _, v := range m.Bits {
		if v != 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of m.
func (m Mask) Clone() Mask {
	out := NewMask(m.W, m.H)
	copy(out.Bits, m.Bits)
	return out
}

// Dilate grows the foreground by a disk of the given radius: every pixel
// within Euclidean distance radius of a foreground pixel becomes
// foreground. The disk is clipped at the mask edges, no wraparound.
func Dilate(m Mask, radius int) Mask {
	if radius <= 0 {
		return m.Clone()
	}
	half := diskHalfWidths(radius)

	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Bits[y*m.W+x] == 0 {
				continue
			}
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= m.H {
					continue
				}
				// Scanline span of the disk at this vertical offset
				hw := half[dy+radius]
				x0 := x - hw
				if x0 < 0 {
					x0 = 0
				}
				x1 := x + hw
				if x1 >= m.W {
					x1 = m.W - 1
				}
				row := out.Bits[ny*m.W:]
				for nx := x0; nx <= x1; nx++ {
					row[nx] = 255
				}
			}
		}
	}
	return out
}

// Erode shrinks the foreground: a pixel survives only if every pixel of
// the disk neighborhood around it (clipped to the mask bounds) is
// foreground.
func Erode(m Mask, radius int) Mask {
	if radius <= 0 {
		return m.Clone()
	}
	half := diskHalfWidths(radius)

	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Bits[y*m.W+x] == 0 {
				continue
			}
			if diskAllSet(m, x, y, radius, half) {
				out.Bits[y*m.W+x] = 255
			}
		}
	}
	return out
}

// Close fills small holes: dilate then erode at the same radius.
func Close(m Mask, radius int) Mask {
	return Erode(Dilate(m, radius), radius)
}

func diskAllSet(m Mask, x, y, radius int, half []int) bool {
	for dy := -radius; dy <= radius; dy++ {
		ny := y + dy
		if ny < 0 || ny >= m.H {
			continue
		}
		hw := half[dy+radius]
		x0 := x - hw
		if x0 < 0 {
			x0 = 0
		}
		x1 := x + hw
		if x1 >= m.W {
			x1 = m.W - 1
		}
		row := m.Bits[ny*m.W:]
		for nx := x0; nx <= x1; nx++ {
			if row[nx] == 0 {
				return false
			}
		}
	}
	return true
}

// diskHalfWidths precomputes the horizontal half-width of a disk of the
// given radius for each dy in [-radius, radius]: floor(sqrt(r²−dy²)).
// Membership is dx²+dy² ≤ r².
func diskHalfWidths(radius int) []int {
	half := make([]int, 2*radius+1)
	for dy := -radius; dy <= radius; dy++ {
		half[dy+radius] = int(math.Sqrt(float64(radius*radius - dy*dy)))
	}
	return half
}
