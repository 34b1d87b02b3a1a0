package sticker

import "image"

// RemoveStray zeroes out stray pixel groups left behind by background
// removal. It keeps the largest connected component and everything inside
// that component's bounding box (small interior gaps survive), and makes
// every other pixel fully transparent. Visibility is alpha strictly
// greater than threshold. An image with no visible pixels is returned
// unchanged.
func RemoveStray(img *image.NRGBA, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	m := FromAlpha(img, threshold)
	labels, regions := Components(m)
	best, ok := Largest(regions)
	if !ok {
		return img
	}

	result := image.NewNRGBA(b)
	copy(result.Pix, img.Pix)

	for y := 0; y < h; y++ {
		inBand := y >= best.MinY && y <= best.MaxY
		for x := 0; x < w; x++ {
			if labels[y*w+x] == best.Label {
				continue
			}
			if inBand && x >= best.MinX && x <= best.MaxX {
				continue
			}
			i := y*result.Stride + x*4
			result.Pix[i] = 0
			result.Pix[i+1] = 0
			result.Pix[i+2] = 0
			result.Pix[i+3] = 0
		}
	}

	return result
}
