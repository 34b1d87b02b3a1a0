package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"artque-pipeline/internal/imgio"
	"artque-pipeline/internal/sticker"
)

func main() {
	threshold := flag.Int("threshold", int(sticker.DefaultAlphaThreshold), "Alpha visibility threshold")
	top := flag.Int("top", 10, "Number of components to list")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: maskinfo [-threshold N] [-top N] <image>")
		os.Exit(1)
	}

	img, err := imgio.DecodeFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	fmt.Printf("Image: %dx%d\n", w, h)

	// Alpha stats
	var minA, maxA uint8 = 255, 0
	sumA := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := img.Pix[y*img.Stride+x*4+3]
			sumA += int(a)
			if a < minA {
				minA = a
			}
			if a > maxA {
				maxA = a
			}
		}
	}
	fmt.Printf("Alpha: min=%d, max=%d, avg=%.1f, all_opaque=%v\n",
		minA, maxA, float64(sumA)/float64(w*h), minA == 255)

	mask := sticker.FromAlpha(img, uint8(*threshold))
	fmt.Printf("Visible: %d/%d pixels (threshold %d)\n", mask.Count(), w*h, *threshold)

	_, regions := sticker.Components(mask)
	if len(regions) == 0 {
		fmt.Println("No components.")
		return
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i].Area > regions[j].Area })

	n := *top
	if len(regions) < n {
		n = len(regions)
	}
	fmt.Printf("\nComponents: %d (showing %d)\n", len(regions), n)
	fmt.Println("  label     area  bbox")
	for _, r := range regions[:n] {
		fmt.Printf("  %5d  %7d  (%d,%d)-(%d,%d)\n",
			r.Label, r.Area, r.MinX, r.MinY, r.MaxX, r.MaxY)
	}
}
