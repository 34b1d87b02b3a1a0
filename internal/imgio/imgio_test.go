package imgio

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	raw := make([]byte, 2*2*4)
	raw[3*4] = 200   // R of pixel (1,1)
	raw[3*4+3] = 255 // A of pixel (1,1)

	img, err := FromBytes(raw, 2, 2)
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{R: 200, A: 255}, img.NRGBAAt(1, 1))
}

func TestFromBytesLengthMismatch(t *testing.T) {
	_, err := FromBytes(make([]byte, 15), 2, 2)
	require.ErrorIs(t, err, ErrMalformedImage)

	_, err = FromBytes(nil, 0, 4)
	require.ErrorIs(t, err, ErrMalformedImage)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"))
	require.ErrorIs(t, err, ErrMalformedImage)
}

func TestPNGRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 13, 7))
	img.SetNRGBA(4, 3, color.NRGBA{R: 9, G: 8, B: 7, A: 200})

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, img))

	back, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 13, back.Bounds().Dx())
	require.Equal(t, 7, back.Bounds().Dy())
	require.Equal(t, color.NRGBA{R: 9, G: 8, B: 7, A: 200}, back.NRGBAAt(4, 3))
}

func TestWebPRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(2, 2, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, EncodeWebP(&buf, img))

	back, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 10, back.Bounds().Dx())
	require.Equal(t, 10, back.Bounds().Dy())
}

func TestBytesTightPacking(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	base.SetNRGBA(3, 2, color.NRGBA{R: 50, G: 60, B: 70, A: 80})

	// A subimage has a wide stride; Bytes must repack it row by row.
	sub := base.SubImage(image.Rect(2, 2, 6, 5)).(*image.NRGBA)
	raw := Bytes(sub)

	require.Len(t, raw, 4*3*4)

	back, err := FromBytes(raw, 4, 3)
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{R: 50, G: 60, B: 70, A: 80}, back.NRGBAAt(1, 0))
}

func TestToNRGBAOpaqueFormats(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	gray.SetGray(1, 1, color.Gray{Y: 128})

	out := ToNRGBA(gray)
	require.Equal(t, uint8(255), out.Pix[1*out.Stride+1*4+3])
	require.Equal(t, uint8(128), out.Pix[1*out.Stride+1*4])
}

func TestToNRGBANormalizesSubImages(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	base.SetNRGBA(12, 12, color.NRGBA{G: 77, A: 255})

	sub := base.SubImage(image.Rect(10, 10, 15, 15)).(*image.NRGBA)
	out := ToNRGBA(sub)

	require.Equal(t, image.Point{}, out.Bounds().Min)
	require.Equal(t, 5, out.Bounds().Dx())
	require.Equal(t, 4*5, out.Stride)
	require.Equal(t, color.NRGBA{G: 77, A: 255}, out.NRGBAAt(2, 2))
}
