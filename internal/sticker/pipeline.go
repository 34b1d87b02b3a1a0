package sticker

import (
	"context"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// Production processing defaults. Kept in sync with the dashboard backend;
// stored outputs are only comparable across runs when these hold.
const (
	DefaultAlphaThreshold = 10
	DefaultMaxDimension   = 940
	DefaultCanvasSize     = 1024
	DefaultBorderPx       = 14

	// simpleFitBound caps simple-mode output at 2048×2048.
	simpleFitBound = 2048
)

// Params are the sizing and threshold parameters of one pipeline run.
type Params struct {
	AlphaThreshold int
	MaxDimension   int
	CanvasSize     int
	BorderPx       int
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		AlphaThreshold: DefaultAlphaThreshold,
		MaxDimension:   DefaultMaxDimension,
		CanvasSize:     DefaultCanvasSize,
		BorderPx:       DefaultBorderPx,
	}
}

// Options select which pipeline stages run.
type Options struct {
	SkipBackgroundRemoval bool
	UseAdvancedProcessing bool
}

// DefaultOptions skips background removal and takes the advanced path.
func DefaultOptions() Options {
	return Options{SkipBackgroundRemoval: true, UseAdvancedProcessing: true}
}

// Remover strips the background from an image, typically by calling an
// external service.
type Remover interface {
	Remove(ctx context.Context, img *image.NRGBA) (*image.NRGBA, error)
}

// Processor runs the sticker post-processing pipeline. The zero value is
// not usable; construct with New or fill Params explicitly.
type Processor struct {
	Params  Params
	Remover Remover
}

// New returns a Processor with the given parameters. remover may be nil
// when background removal will never be requested.
func New(params Params, remover Remover) *Processor {
	return &Processor{Params: params, Remover: remover}
}

// Process turns a raw cutout into a bordered sticker centered on a square
// canvas. With opts.UseAdvancedProcessing false it only resizes the image
// to fit 2048×2048 without any alpha-aware work. With
// opts.SkipBackgroundRemoval false the configured Remover runs first; a
// removal failure aborts the run with no partial result and no fallback.
func (p *Processor) Process(ctx context.Context, img *image.NRGBA, opts Options) (*image.NRGBA, error) {
	if !opts.UseAdvancedProcessing {
		return imaging.Fit(img, simpleFitBound, simpleFitBound, imaging.Lanczos), nil
	}

	if !opts.SkipBackgroundRemoval {
		if p.Remover == nil {
			return nil, errors.New("sticker: background removal requested but no remover configured")
		}
		stripped, err := p.Remover.Remove(ctx, img)
		if err != nil {
			return nil, err
		}
		img = stripped
	}

	img = RemoveStray(img, uint8(p.Params.AlphaThreshold))
	img = Center(img, p.Params)
	return Border(img, p.Params), nil
}
