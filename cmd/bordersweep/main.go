package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"artque-pipeline/internal/imgio"
	"artque-pipeline/internal/sticker"
)

func main() {
	in := flag.String("in", "", "Input image path")
	out := flag.String("out", ".", "Output directory")
	widths := flag.String("widths", "0,7,14,28", "Comma-separated border widths to render")
	threshold := flag.Int("threshold", int(sticker.DefaultAlphaThreshold), "Alpha visibility threshold")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: bordersweep -in <image> [-out dir] [-widths 0,7,14,28]")
		os.Exit(1)
	}

	list, err := parseWidths(*widths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	img, err := imgio.DecodeFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	params := sticker.DefaultParams()
	params.AlphaThreshold = *threshold

	// Shared stages run once; each border width renders off the same canvas.
	cleaned := sticker.RemoveStray(img, uint8(params.AlphaThreshold))
	centered := sticker.Center(cleaned, params)

	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stem := strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for _, width := range list {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p := params
			p.BorderPx = width
			path := filepath.Join(*out, fmt.Sprintf("%s_border%d.png", stem, width))
			if err := writePNG(path, sticker.Border(centered, p)); err != nil {
				return err
			}
			fmt.Printf("  %s\n", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseWidths(s string) ([]int, error) {
	var list []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad width %q", part)
		}
		list = append(list, n)
	}
	return list, nil
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return imgio.EncodePNG(f, img)
}
