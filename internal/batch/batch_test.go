package batch

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"artque-pipeline/internal/imgio"
	"artque-pipeline/internal/joblist"
	"artque-pipeline/internal/sticker"
)

type mapResolver map[string]*image.NRGBA

func (m mapResolver) Resolve(name string) (*image.NRGBA, error) {
	img, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("no image for %q", name)
	}
	return img, nil
}

type fakeUploader struct {
	mu   sync.Mutex
	keys []string
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.keys = append(u.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func testSprite() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{200, 40, 40, 255})
		}
	}
	return img
}

func TestRunMixedResults(t *testing.T) {
	outDir := t.TempDir()
	uploader := &fakeUploader{}

	cfg := Config{
		Source:    mapResolver{"ok": testSprite()},
		OutDir:    outDir,
		Workers:   2,
		Processor: sticker.New(sticker.DefaultParams(), nil),
		Uploader:  uploader,
		Logger:    zerolog.Nop(),
	}
	jobs := []joblist.Job{
		{ID: 1, Name: "good", Source: "ok"},
		{ID: 2, Name: "missing", Source: "nope"},
		{ID: 3, Name: "badprofile", Source: "ok", Profile: "ghost"},
	}

	results := Run(context.Background(), cfg, jobs)
	require.Len(t, results, 3)

	good := results[0]
	require.True(t, good.Success)
	require.Empty(t, good.Error)
	require.Equal(t, "https://cdn.example.com/good.png", good.URL)
	require.Equal(t, 1024, good.Width)
	require.Equal(t, 1024, good.Height)

	out, err := imgio.DecodeFile(good.Output)
	require.NoError(t, err)
	require.Equal(t, 1024, out.Bounds().Dx())
	require.Equal(t, 1024, out.Bounds().Dy())

	data, err := os.ReadFile(good.Output)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%x", sha256.Sum256(data)), good.Sum)

	require.False(t, results[1].Success)
	require.Contains(t, results[1].Error, "no image")
	require.False(t, results[2].Success)
	require.Contains(t, results[2].Error, "unknown profile")

	require.Equal(t, []string{"good.png"}, uploader.keys)
}

func TestRunSimpleJob(t *testing.T) {
	outDir := t.TempDir()
	cfg := Config{
		Source:      mapResolver{"ok": testSprite()},
		OutDir:      outDir,
		Workers:     1,
		Processor:   sticker.New(sticker.DefaultParams(), nil),
		PreviewWebP: true,
		Logger:      zerolog.Nop(),
	}
	jobs := []joblist.Job{{ID: 7, Name: "plain", Source: "ok", Simple: true}}

	results := Run(context.Background(), cfg, jobs)
	require.Len(t, results, 1)
	require.True(t, results[0].Success)

	// Simple mode keeps the source dimensions.
	out, err := imgio.DecodeFile(results[0].Output)
	require.NoError(t, err)
	require.Equal(t, 64, out.Bounds().Dx())
	require.Equal(t, 64, out.Bounds().Dy())

	preview, err := imgio.DecodeFile(filepath.Join(outDir, "plain.webp"))
	require.NoError(t, err)
	require.Equal(t, 64, preview.Bounds().Dx())
}

func TestRunRemoveBgRequiresRemover(t *testing.T) {
	cfg := Config{
		Source:    mapResolver{"ok": testSprite()},
		OutDir:    t.TempDir(),
		Workers:   1,
		Processor: sticker.New(sticker.DefaultParams(), nil),
		RemoveBg:  true,
		Logger:    zerolog.Nop(),
	}
	results := Run(context.Background(), cfg, []joblist.Job{{ID: 1, Name: "x", Source: "ok"}})
	require.False(t, results[0].Success)
	require.Contains(t, results[0].Error, "no remover")
}

func TestWriteManifestSkipsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	results := []Result{
		{ID: 1, Name: "a", Output: "/tmp/out/a.png", Sum: "aa11", Width: 1024, Height: 1024, Success: true},
		{ID: 2, Name: "b", Error: "boom"},
		{ID: 3, Name: "c", Output: "/tmp/out/c.png", Sum: "cc33", Width: 512, Height: 640, URL: "https://cdn.example.com/c.png", Success: true},
	}
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "a.png", entries[0].Image)
	require.Equal(t, "aa11", entries[0].SHA256)
	require.Equal(t, 1024, entries[0].Width)
	require.Empty(t, entries[0].URL)
	require.Equal(t, "https://cdn.example.com/c.png", entries[1].URL)
	require.Equal(t, 640, entries[1].Height)
}
