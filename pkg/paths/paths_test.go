// TEST TYPE: Unit Test
// DEPENDENCIES: OS filesystem (t.TempDir)
// PURPOSE: Verify target resolution and path helpers

package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/filesystem"
)

func TestResolveTarget(t *testing.T) {
	fs := filesystem.NewOS()
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		arg     string
		want    string
		errCode errors.ErrorCode
	}{
		{name: "existing directory", arg: dir, want: dir},
		{name: "trailing slash cleaned", arg: dir + "/", want: dir},
		{name: "missing directory", arg: filepath.Join(dir, "missing"), errCode: errors.ErrTargetInvalid},
		{name: "regular file", arg: file, errCode: errors.ErrTargetInvalid},
		{name: "null byte", arg: "bad\x00path", errCode: errors.ErrTargetInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTarget(fs, tt.arg)
			if tt.errCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.errCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty means current directory", func(t *testing.T) {
		cwd, err := os.Getwd()
		require.NoError(t, err)
		got, err := ResolveTarget(fs, "")
		require.NoError(t, err)
		assert.Equal(t, cwd, got)
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandHome(""))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "projects"), ExpandHome("~/projects"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
}

func TestContainsPath(t *testing.T) {
	tests := []struct {
		parent, child string
		want          bool
	}{
		{"/a", "/a", true},
		{"/a", "/a/b/c", true},
		{"/a", "/ab", false},
		{"/a/b", "/a", false},
		{"/a", "/a/..b", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsPath(tt.parent, tt.child), "%s in %s", tt.child, tt.parent)
	}
}

func TestTargetFiles(t *testing.T) {
	assert.Equal(t, filepath.Join("/p", ".spec-coding-version"), VersionFile("/p"))
	assert.Equal(t, filepath.Join("/p", ".spec-coding.lock"), LockFile("/p"))
	assert.Equal(t, filepath.Join("/p", ".spec-coding.toml"), ProjectConfig("/p"))
	assert.True(t, strings.HasSuffix(DefaultStagingRoot(), filepath.Join("spec-coding", "templates")))
	assert.True(t, strings.HasSuffix(UserConfigPath(), filepath.Join("spec-coding", "config.toml")))
}

func TestValidatePath(t *testing.T) {
	assert.Error(t, ValidatePath(""))
	assert.Error(t, ValidatePath(strings.Repeat("a", 5000)))
	assert.NoError(t, ValidatePath("/ok"))
}
