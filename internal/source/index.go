package source

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// formatRank orders formats for stem collisions. Alpha-capable formats
// win; PNG ranks first because it is what the generation backends emit.
var formatRank = map[string]int{
	".png":  0,
	".webp": 1,
	".tga":  2,
	".bmp":  3,
	".jpg":  4,
	".jpeg": 5,
	".gif":  6,
	".tif":  7,
	".tiff": 8,
}

// Index maps lowercase artwork stems to filesystem paths.
// For the same stem the best-ranked format wins.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex recursively scans root for source artwork files.
func BuildIndex(root string) (*Index, error) {
	idx := &Index{entries: make(map[string]string)}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := formatRank[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank < formatRank[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: scan %s: %w", root, err)
	}

	return idx, nil
}

// ResolvePath returns the filesystem path for an artwork name, or ("", false).
func (idx *Index) ResolvePath(name string) (string, bool) {
	// Job files written on Windows carry backslash paths
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed artwork files.
func (idx *Index) Len() int {
	return len(idx.entries)
}
