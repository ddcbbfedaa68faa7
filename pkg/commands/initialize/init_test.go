// TEST TYPE: Integration Test
// DEPENDENCIES: OS filesystem (t.TempDir)
// PURPOSE: Verify the init command end to end

package initialize

import (
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zanyuzhao/spec-coding/pkg/commands/internal"
	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/paths"
	"github.com/zanyuzhao/spec-coding/pkg/state"
	"github.com/zanyuzhao/spec-coding/pkg/testutil"
)

// exitedPID returns the pid of a process that has already exited
func exitedPID(t *testing.T) int {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^$")
	require.NoError(t, cmd.Run())
	return cmd.ProcessState.Pid()
}

func options(env *testutil.TestEnvironment, flags map[string]interface{}) InitOptions {
	all := map[string]interface{}{
		"source.root":  env.SourceRoot,
		"staging.root": env.StagingRoot,
	}
	for k, v := range flags {
		all[k] = v
	}
	return InitOptions{
		Target:     env.TargetRoot,
		Version:    "0.2.0",
		FileSystem: env.FS,
		Config:     internal.ConfigOptions{UserConfig: "-", Flags: all},
	}
}

func TestInitFreshInstall(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()

	result, err := InitProject(options(env, nil))
	require.NoError(t, err)

	assert.Equal(t, "fresh", result.Detected)
	assert.Equal(t, "fresh", result.Mode)
	assert.False(t, result.Forced)
	assert.Equal(t, "built", result.Staging)
	assert.Equal(t, "done", result.Cleanup)
	assert.Equal(t, len(testutil.CanonicalSource), result.FilesWritten)

	for _, dir := range []string{"docs/spec", "docs/spec_process", ".cursor/rules", ".cursor/skills"} {
		assert.DirExists(t, env.Target(dir))
	}
	m, err := state.ReadMarker(env.FS, env.TargetRoot)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "0.2.0", m.Version)

	// a run from the default names reproduces the source files
	testutil.AssertFileContent(t, env.FS, env.Target(".cursor/rules/backend.mdc"), testutil.CanonicalSource[".cursor/rules/backend.mdc"])

	assert.NoDirExists(t, env.StagingRoot, "staging is removed after a successful run")
	assert.NoFileExists(t, paths.LockFile(env.TargetRoot), "lock is released")
}

func TestInitUpdatePreservesDocs(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
	_, err := InitProject(options(env, nil))
	require.NoError(t, err)

	testutil.WriteFile(t, env.FS, env.Target("docs/spec/README.md"), "edited by the team")
	testutil.WriteFile(t, env.FS, env.Target(".cursor/rules/backend.mdc"), "edited rule")

	result, err := InitProject(options(env, nil))
	require.NoError(t, err)
	assert.Equal(t, "update", result.Mode)
	assert.Equal(t, "same", result.Comparison)
	assert.True(t, result.Steps[0].Skipped)

	testutil.AssertFileContent(t, env.FS, env.Target("docs/spec/README.md"), "edited by the team")
	testutil.AssertFileContent(t, env.FS, env.Target(".cursor/rules/backend.mdc"), testutil.CanonicalSource[".cursor/rules/backend.mdc"])
}

func TestInitLegacyDocsWithoutMarker(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
	testutil.WriteFile(t, env.FS, env.Target("docs/spec/README.md"), "pre-existing")

	result, err := InitProject(options(env, nil))
	require.NoError(t, err)
	assert.Equal(t, "update", result.Detected)
	testutil.AssertFileContent(t, env.FS, env.Target("docs/spec/README.md"), "pre-existing")
	assert.NoDirExists(t, env.Target("docs/spec_process"))
}

func TestInitForceOverwritesDocs(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
	testutil.WriteFile(t, env.FS, env.Target("docs/spec/README.md"), "pre-existing")

	opts := options(env, nil)
	opts.Force = true
	result, err := InitProject(opts)
	require.NoError(t, err)

	assert.Equal(t, "update", result.Detected)
	assert.Equal(t, "fresh", result.Mode)
	assert.True(t, result.Forced)
	testutil.AssertFileContent(t, env.FS, env.Target("docs/spec/README.md"), testutil.CanonicalSource["docs/spec/README.md"])
}

func TestInitRecordsAndReusesParams(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()

	_, err := InitProject(options(env, map[string]interface{}{
		"params.backend_dir":  "server",
		"params.frontend_dir": "web",
		"params.app_package":  "core",
	}))
	require.NoError(t, err)
	testutil.AssertFileContent(t, env.FS, env.Target("CLAUDE.md"), "# Project\nSource lives in server/core/ and web/.\n")

	// a later run without flags keeps the recorded names
	testutil.WriteFile(t, env.FS, env.Target("CLAUDE.md"), "stale")
	result, err := InitProject(options(env, nil))
	require.NoError(t, err)
	assert.Equal(t, "server", result.Params.BackendDir)
	testutil.AssertFileContent(t, env.FS, env.Target("CLAUDE.md"), "# Project\nSource lives in server/core/ and web/.\n")
}

func TestInitDocsOnly(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
	opts := options(env, nil)
	opts.DocsOnly = true

	_, err := InitProject(opts)
	require.NoError(t, err)

	assert.DirExists(t, env.Target("docs/spec"))
	assert.FileExists(t, env.Target("CLAUDE.md"))
	assert.NoDirExists(t, env.Target(".cursor/rules"))
	assert.NoDirExists(t, env.Target(".cursor/skills"))
	assert.FileExists(t, paths.VersionFile(env.TargetRoot))
}

func TestInitDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
	opts := options(env, nil)
	opts.DryRun = true

	result, err := InitProject(opts)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, len(testutil.CanonicalSource), result.FilesWritten)
	assert.Empty(t, testutil.Snapshot(t, env.FS, env.TargetRoot))
	assert.NoDirExists(t, env.StagingRoot)
}

func TestInitErrors(t *testing.T) {
	t.Run("missing target", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
		opts := options(env, nil)
		opts.Target = env.Target("missing")
		_, err := InitProject(opts)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTargetInvalid))
	})

	t.Run("no source and no staging", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		_, err := InitProject(options(env, nil))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrStagingUnavailable))
		assert.NoFileExists(t, paths.VersionFile(env.TargetRoot))
		assert.NoFileExists(t, paths.LockFile(env.TargetRoot))
	})

	t.Run("locked target", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
		testutil.WriteFile(t, env.FS, paths.LockFile(env.TargetRoot), fmt.Sprintf("pid=%d\n", os.Getpid()))
		_, err := InitProject(options(env, nil))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTargetLocked))
	})

	t.Run("lock left by a dead run", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
		testutil.WriteFile(t, env.FS, paths.LockFile(env.TargetRoot), fmt.Sprintf("pid=%d\n", exitedPID(t)))

		result, err := InitProject(options(env, nil))
		require.NoError(t, err)
		assert.Equal(t, "fresh", result.Mode)
		assert.NoFileExists(t, paths.LockFile(env.TargetRoot))
		assert.FileExists(t, paths.VersionFile(env.TargetRoot))
	})

	t.Run("lock disabled", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
		testutil.WriteFile(t, env.FS, paths.LockFile(env.TargetRoot), "pid=1")
		_, err := InitProject(options(env, map[string]interface{}{"lock": false}))
		require.NoError(t, err)
	})

	t.Run("invalid parameter", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
		_, err := InitProject(options(env, map[string]interface{}{"params.backend_dir": "../up"}))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
