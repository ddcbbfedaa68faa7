// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with source, staging and target roots

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
	"github.com/zanyuzhao/spec-coding/pkg/filesystem"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment holds the three trees a sync touches
type TestEnvironment struct {
	FS          types.FS
	Type        EnvType
	SourceRoot  string
	StagingRoot string
	TargetRoot  string
	HomeDir     string

	t *testing.T
}

// NewTestEnvironment creates the roots. The source tree and target are
// created empty; the staging root is not created.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	var base string
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
		base = "/test"
	case EnvIsolated:
		env.FS = filesystem.NewOS()
		base = t.TempDir()
	}

	env.SourceRoot = filepath.Join(base, "source")
	env.StagingRoot = filepath.Join(base, "data", "spec-coding", "templates")
	env.TargetRoot = filepath.Join(base, "project")
	env.HomeDir = filepath.Join(base, "home")

	for _, dir := range []string{env.SourceRoot, env.TargetRoot, env.HomeDir} {
		require.NoError(t, env.FS.MkdirAll(dir, 0755))
	}

	if envType == EnvIsolated {
		// runs after the variables are restored
		t.Cleanup(xdg.Reload)
		t.Setenv("HOME", env.HomeDir)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
		t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
		t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
		xdg.Reload()
	}
	return env
}

// WithCanonicalSource populates the source tree with CanonicalSource
func (env *TestEnvironment) WithCanonicalSource() *TestEnvironment {
	env.t.Helper()
	WriteTree(env.t, env.FS, env.SourceRoot, CanonicalSource)
	return env
}

// Source returns an absolute path below the source root
func (env *TestEnvironment) Source(rel string) string {
	return filepath.Join(env.SourceRoot, filepath.FromSlash(rel))
}

// Staging returns an absolute path below the staging root
func (env *TestEnvironment) Staging(rel string) string {
	return filepath.Join(env.StagingRoot, filepath.FromSlash(rel))
}

// Target returns an absolute path below the target root
func (env *TestEnvironment) Target(rel string) string {
	return filepath.Join(env.TargetRoot, filepath.FromSlash(rel))
}
