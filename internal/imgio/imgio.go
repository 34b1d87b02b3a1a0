// Package imgio decodes source artwork into NRGBA buffers and encodes
// finished stickers.
package imgio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	// Source directories mix whatever formats operators drop in them.
	_ "image/gif"
	_ "image/jpeg"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrMalformedImage reports input that cannot be interpreted as RGBA pixels.
var ErrMalformedImage = errors.New("malformed image")

// Decode reads any registered image format and converts it to NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imgio: decode: %w: %v", ErrMalformedImage, err)
	}
	return ToNRGBA(img), nil
}

// DecodeFile reads and decodes one image file.
func DecodeFile(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imgio: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imgio: decode %s: %w: %v", path, ErrMalformedImage, err)
	}
	return ToNRGBA(img), nil
}

// FromBytes wraps a raw RGBA buffer as an image. The buffer must hold
// exactly w*h*4 bytes in row-major order.
func FromBytes(raw []byte, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("imgio: %w: bad dimensions %dx%d", ErrMalformedImage, w, h)
	}
	if len(raw) != w*h*4 {
		return nil, fmt.Errorf("imgio: %w: have %d bytes, want %d for %dx%d",
			ErrMalformedImage, len(raw), w*h*4, w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, raw)
	return img, nil
}

// Bytes returns a tightly packed copy of img's RGBA bytes.
func Bytes(img *image.NRGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	return out
}

// EncodePNG writes img as PNG, the pipeline's output format.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imgio: encode png: %w", err)
	}
	return nil
}

// EncodeWebP writes img as lossless WebP, used for dashboard previews.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("imgio: encode webp: %w", err)
	}
	return nil
}

// ToNRGBA converts any image to NRGBA with the origin at (0,0) and a
// tight stride, the layout the pixel loops downstream assume.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		if n.Bounds().Min == (image.Point{}) && n.Stride == 4*n.Bounds().Dx() {
			return n
		}
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
