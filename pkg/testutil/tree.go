package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zanyuzhao/spec-coding/pkg/filesystem"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// WriteTree writes files (slash-separated paths relative to root)
func WriteTree(t *testing.T, fs types.FS, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		WriteFile(t, fs, filepath.Join(root, filepath.FromSlash(rel)), content)
	}
}

// WriteFile writes content to path, creating parent directories
func WriteFile(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
}

// ReadFile returns the content of path, failing the test when unreadable
func ReadFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// Snapshot returns every regular file below root keyed by relative path
func Snapshot(t *testing.T, fs types.FS, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filesystem.Walk(fs, root, func(rel string) error {
		data, err := fs.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

// AssertFileContent checks that path exists with exactly content
func AssertFileContent(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	data, err := fs.ReadFile(path)
	if assert.NoError(t, err, "reading %s", path) {
		assert.Equal(t, content, string(data), "content of %s", path)
	}
}

// AssertExists checks that path exists
func AssertExists(t *testing.T, fs types.FS, path string) {
	t.Helper()
	assert.True(t, filesystem.Exists(fs, path), "expected %s to exist", path)
}

// AssertNotExists checks that path does not exist
func AssertNotExists(t *testing.T, fs types.FS, path string) {
	t.Helper()
	assert.False(t, filesystem.Exists(fs, path), "expected %s to be absent", path)
}
