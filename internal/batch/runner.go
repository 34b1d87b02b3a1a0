package batch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"artque-pipeline/internal/imgio"
	"artque-pipeline/internal/joblist"
	"artque-pipeline/internal/profile"
	"artque-pipeline/internal/source"
	"artque-pipeline/internal/sticker"
	"artque-pipeline/internal/storage"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Source      source.Resolver
	OutDir      string
	Workers     int
	Processor   *sticker.Processor
	Profiles    map[string]profile.Profile
	Uploader    storage.Uploader // nil disables publishing
	PreviewWebP bool
	RemoveBg    bool
	Logger      zerolog.Logger
}

// Result holds the outcome of processing one job.
type Result struct {
	ID      int
	Name    string
	Output  string
	URL     string
	Sum     string // sha256 of the PNG bytes
	Width   int
	Height  int
	Success bool
	Error   string
}

// Run processes all jobs using a worker pool and reports per-job results.
// A failed job never aborts the batch.
func Run(ctx context.Context, cfg Config, jobs []joblist.Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					cfg.Logger.Info().
						Int64("done", p).
						Int("total", total).
						Float64("jobs_per_sec", float64(p)/elapsed).
						Msg("processing")
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(ctx, cfg, jobs[idx])
				if !results[idx].Success {
					cfg.Logger.Error().
						Str("job", jobs[idx].Name).
						Str("reason", results[idx].Error).
						Msg("job failed")
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(ctx context.Context, cfg Config, job joblist.Job) Result {
	res := Result{ID: job.ID, Name: job.Name}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	img, err := cfg.Source.Resolve(job.Source)
	if err != nil {
		return fail(err)
	}

	proc := cfg.Processor
	if job.Profile != "" {
		p, ok := cfg.Profiles[job.Profile]
		if !ok {
			return fail(fmt.Errorf("unknown profile %q", job.Profile))
		}
		proc = &sticker.Processor{
			Params:  profile.Apply(cfg.Processor.Params, p),
			Remover: cfg.Processor.Remover,
		}
	}

	opts := sticker.DefaultOptions()
	opts.SkipBackgroundRemoval = !cfg.RemoveBg
	if job.Simple {
		opts.UseAdvancedProcessing = false
	}

	out, err := proc.Process(ctx, img, opts)
	if err != nil {
		return fail(err)
	}
	res.Width = out.Bounds().Dx()
	res.Height = out.Bounds().Dy()

	var buf bytes.Buffer
	if err := imgio.EncodePNG(&buf, out); err != nil {
		return fail(err)
	}
	data := buf.Bytes()
	res.Sum = fmt.Sprintf("%x", sha256.Sum256(data))

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return fail(err)
	}
	outPath := filepath.Join(cfg.OutDir, job.Name+".png")
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fail(err)
	}
	res.Output = outPath

	if cfg.PreviewWebP {
		if err := writePreview(filepath.Join(cfg.OutDir, job.Name+".webp"), out); err != nil {
			return fail(err)
		}
	}

	if cfg.Uploader != nil {
		url, err := cfg.Uploader.Upload(ctx, job.Name+".png", "image/png", data)
		if err != nil {
			return fail(err)
		}
		res.URL = url
	}

	res.Success = true
	return res
}

func writePreview(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return imgio.EncodeWebP(f, img)
}
