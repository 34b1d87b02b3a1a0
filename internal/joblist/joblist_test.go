package joblist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeJobs(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeJobs(t, `[
		{"id": 1, "name": "blue-duck", "source": "duck_v2", "profile": "thick-border"},
		{"id": 2, "source": "art/geese/goose_final.png", "simple": true}
	]`)

	jobs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	require.Equal(t, "blue-duck", jobs[0].Name)
	require.Equal(t, "thick-border", jobs[0].Profile)
	require.False(t, jobs[0].Simple)

	// Name falls back to the source stem.
	require.Equal(t, "goose_final", jobs[1].Name)
	require.True(t, jobs[1].Simple)
}

func TestLoadEmptySource(t *testing.T) {
	path := writeJobs(t, `[{"id": 1, "name": "broken"}]`)

	_, err := Load(path)
	require.Error(t, err)
	require.ErrorContains(t, err, "empty source")
}

func TestLoadBadJSON(t *testing.T) {
	path := writeJobs(t, `{"not": "an array"`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
