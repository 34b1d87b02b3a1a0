package joblist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Job is one batch work item: which artwork to process and how.
type Job struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Source  string `json:"source"`
	Profile string `json:"profile,omitempty"`
	Simple  bool   `json:"simple,omitempty"`
}

// Load parses a JSON array of jobs. Every job needs a source; a missing
// name defaults to the source's stem.
func Load(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("joblist: read %s: %w", path, err)
	}

	var jobs []Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("joblist: parse %s: %w", path, err)
	}

	for i := range jobs {
		if jobs[i].Source == "" {
			return nil, fmt.Errorf("joblist: job %d (%q): empty source", i, jobs[i].Name)
		}
		if jobs[i].Name == "" {
			jobs[i].Name = stem(jobs[i].Source)
		}
	}

	return jobs, nil
}

func stem(source string) string {
	base := filepath.Base(strings.ReplaceAll(source, "\\", "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
