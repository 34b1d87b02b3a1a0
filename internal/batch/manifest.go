package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one finished job in the output manifest.
type ManifestEntry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	SHA256 string `json:"sha256"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url,omitempty"`
}

// WriteManifest writes manifest.json listing the successful jobs.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			ID:     r.ID,
			Name:   r.Name,
			Image:  filepath.Base(r.Output),
			SHA256: r.Sum,
			Width:  r.Width,
			Height: r.Height,
			URL:    r.URL,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
