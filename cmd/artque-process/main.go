package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"artque-pipeline/internal/batch"
	"artque-pipeline/internal/bgremoval"
	"artque-pipeline/internal/config"
	"artque-pipeline/internal/joblist"
	"artque-pipeline/internal/profile"
	"artque-pipeline/internal/source"
	"artque-pipeline/internal/sticker"
	"artque-pipeline/internal/storage"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	jobsFile := flag.String("jobs", "", "Path to jobs.json (default: <base>/jobs.json)")
	srcDir := flag.String("src", "", "Source image directory (default: <base>/assets)")
	outDir := flag.String("out", "", "Output directory (default: <base>/out)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	profilesFile := flag.String("profiles", "", "Path to profiles.json (default: <base>/profiles.json)")
	name := flag.String("name", "", "Process only the job with this name")
	profileName := flag.String("profile", "", "Process only jobs using this profile")
	testN := flag.Int("test", 0, "Process only first N jobs for testing")
	endpoint := flag.String("endpoint", "", "Background removal service URL")
	removeBg := flag.Bool("remove-bg", false, "Send sources through the background removal service")
	simple := flag.Bool("simple", false, "Force simple resize-only processing for all jobs")
	bucket := flag.String("bucket", "", "S3 bucket for publishing results")
	region := flag.String("region", "", "S3 region")
	prefix := flag.String("prefix", "", "S3 key prefix")
	preview := flag.Bool("preview", false, "Also write WebP previews")
	verbose := flag.Bool("verbose", false, "Debug logging")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		SourceDir:    *srcDir,
		JobsFile:     *jobsFile,
		ProfilesFile: *profilesFile,
		OutDir:       *outDir,
		Endpoint:     *endpoint,
		Bucket:       *bucket,
		Region:       *region,
		Prefix:       *prefix,
		Workers:      *workers,
		Preview:      *preview,
	})

	if cfg.SourceDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find assets directory. Use -src flag or config.json.")
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	// Load job list
	jobs, err := joblist.Load(cfg.JobsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading jobs: %v\n", err)
		os.Exit(1)
	}

	// Filter by name/profile
	if *name != "" || *profileName != "" {
		var filtered []joblist.Job
		for _, j := range jobs {
			if *name != "" && j.Name != *name {
				continue
			}
			if *profileName != "" && j.Profile != *profileName {
				continue
			}
			filtered = append(filtered, j)
		}
		jobs = filtered
	}

	// Limit for testing
	if *testN > 0 && *testN < len(jobs) {
		jobs = jobs[:*testN]
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs to process.")
		os.Exit(0)
	}

	if *simple {
		for i := range jobs {
			jobs[i].Simple = true
		}
	}

	// Load profiles (optional file)
	profiles := map[string]profile.Profile{}
	if _, err := os.Stat(cfg.ProfilesFile); err == nil {
		profiles, err = profile.Load(cfg.ProfilesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading profiles: %v\n", err)
			os.Exit(1)
		}
	}

	// Build source index
	index, err := source.BuildIndex(cfg.SourceDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning sources: %v\n", err)
		os.Exit(1)
	}
	cache := source.NewCache(index)
	fmt.Printf("Sources: %d indexed\n", index.Len())

	// Background removal
	var remover sticker.Remover
	if *removeBg {
		if cfg.Endpoint == "" {
			fmt.Fprintln(os.Stderr, "Error: -remove-bg requires -endpoint or config endpoint.")
			os.Exit(1)
		}
		remover = bgremoval.New(cfg.Endpoint)
	}

	// Publishing
	var uploader storage.Uploader
	if cfg.Bucket != "" {
		uploader, err = storage.NewS3(cfg.Bucket, cfg.Region, cfg.Prefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating uploader: %v\n", err)
			os.Exit(1)
		}
	}

	// Print summary
	mode := ""
	if *name != "" {
		mode = fmt.Sprintf(" (job %s)", *name)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Art Que sticker pipeline%s\n", mode)
	fmt.Printf("Jobs: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Source:      cache,
		OutDir:      cfg.OutDir,
		Workers:     cfg.Workers,
		Processor:   sticker.New(sticker.DefaultParams(), remover),
		Profiles:    profiles,
		Uploader:    uploader,
		PreviewWebP: cfg.PreviewWebP,
		RemoveBg:    *removeBg,
		Logger:      logger,
	}

	results := batch.Run(context.Background(), batchCfg, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Processed: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutDir, "manifest.json")
	os.MkdirAll(cfg.OutDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

type Result = batch.Result
