package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and batch settings.
type Config struct {
	// Paths
	BaseDir      string `json:"base_dir"`
	SourceDir    string `json:"source_dir"`
	JobsFile     string `json:"jobs_file"`
	ProfilesFile string `json:"profiles_file"`
	OutDir       string `json:"out_dir"`

	// Background removal service
	Endpoint string `json:"endpoint"`

	// Publishing
	Bucket string `json:"bucket"`
	Region string `json:"region"`
	Prefix string `json:"prefix"`

	// Batch settings
	Workers     int  `json:"workers"`
	PreviewWebP bool `json:"preview_webp"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SourceDir != "" {
		c.SourceDir = flags.SourceDir
	}
	if flags.JobsFile != "" {
		c.JobsFile = flags.JobsFile
	}
	if flags.ProfilesFile != "" {
		c.ProfilesFile = flags.ProfilesFile
	}
	if flags.OutDir != "" {
		c.OutDir = flags.OutDir
	}
	if flags.Endpoint != "" {
		c.Endpoint = flags.Endpoint
	}
	if flags.Bucket != "" {
		c.Bucket = flags.Bucket
	}
	if flags.Region != "" {
		c.Region = flags.Region
	}
	if flags.Prefix != "" {
		c.Prefix = flags.Prefix
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Preview {
		c.PreviewWebP = true
	}

	// Auto-detect base dir if still empty
	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.SourceDir == "" {
			c.SourceDir = filepath.Join(c.BaseDir, "assets")
		} else if !filepath.IsAbs(c.SourceDir) {
			c.SourceDir = filepath.Join(c.BaseDir, c.SourceDir)
		}

		if c.JobsFile == "" {
			c.JobsFile = findJobsFile(c.BaseDir)
		} else if !filepath.IsAbs(c.JobsFile) {
			c.JobsFile = filepath.Join(c.BaseDir, c.JobsFile)
		}

		if c.ProfilesFile == "" {
			c.ProfilesFile = filepath.Join(c.BaseDir, "profiles.json")
		} else if !filepath.IsAbs(c.ProfilesFile) {
			c.ProfilesFile = filepath.Join(c.BaseDir, c.ProfilesFile)
		}

		if c.OutDir == "" {
			c.OutDir = filepath.Join(c.BaseDir, "out")
		} else if !filepath.IsAbs(c.OutDir) {
			c.OutDir = filepath.Join(c.BaseDir, c.OutDir)
		}
	}

	// Defaults for batch settings
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SourceDir    string
	JobsFile     string
	ProfilesFile string
	OutDir       string
	Endpoint     string
	Bucket       string
	Region       string
	Prefix       string
	Workers      int
	Preview      bool
}

func detectBaseDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if _, err := os.Stat(filepath.Join(base, "assets")); err == nil {
				return base
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, "assets")); err == nil {
		return cwd
	}

	// Try parent of cwd
	parent := filepath.Dir(cwd)
	if _, err := os.Stat(filepath.Join(parent, "assets")); err == nil {
		return parent
	}

	return ""
}

func findJobsFile(baseDir string) string {
	candidates := []string{
		filepath.Join(baseDir, "jobs.json"),
		filepath.Join(baseDir, "assets", "jobs.json"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[0]
}
