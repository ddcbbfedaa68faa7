// TEST TYPE: Integration Test
// DEPENDENCIES: OS filesystem (t.TempDir)
// PURPOSE: Verify status reporting without side effects

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zanyuzhao/spec-coding/pkg/commands/internal"
	"github.com/zanyuzhao/spec-coding/pkg/paths"
	"github.com/zanyuzhao/spec-coding/pkg/testutil"
)

func options(env *testutil.TestEnvironment) StatusOptions {
	return StatusOptions{
		Target:     env.TargetRoot,
		Version:    "0.2.0",
		FileSystem: env.FS,
		Config: internal.ConfigOptions{UserConfig: "-", Flags: map[string]interface{}{
			"source.root":  env.SourceRoot,
			"staging.root": env.StagingRoot,
		}},
	}
}

func TestStatus(t *testing.T) {
	t.Run("empty target", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		res, err := Status(options(env))
		require.NoError(t, err)

		assert.False(t, res.MarkerPresent)
		assert.Equal(t, "none", res.Comparison)
		assert.Equal(t, "fresh", res.Mode)
		assert.Empty(t, res.DocsPresent)
		assert.False(t, res.SourceAvailable)
		assert.False(t, res.StagingComplete)
		assert.Equal(t, "backend", res.Params.BackendDir)
	})

	t.Run("installed target", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
		testutil.WriteFile(t, env.FS, paths.VersionFile(env.TargetRoot),
			`{"version": "0.1.0", "backend_dir": "server"}`)
		testutil.WriteFile(t, env.FS, env.Target("docs/spec/README.md"), "x")

		res, err := Status(options(env))
		require.NoError(t, err)

		assert.True(t, res.MarkerPresent)
		assert.Equal(t, "0.1.0", res.InstalledVersion)
		assert.Equal(t, "upgrade", res.Comparison)
		assert.Equal(t, "update", res.Mode)
		assert.Equal(t, []string{"docs/spec"}, res.DocsPresent)
		assert.Equal(t, "server", res.Params.BackendDir)
		assert.True(t, res.SourceAvailable)
	})

	t.Run("legacy marker", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		testutil.WriteFile(t, env.FS, paths.VersionFile(env.TargetRoot), "not json")

		res, err := Status(options(env))
		require.NoError(t, err)
		assert.True(t, res.LegacyMarker)
		assert.Equal(t, "0.0.0", res.InstalledVersion)
		assert.Equal(t, "update", res.Mode)
	})

	t.Run("writes nothing", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
		_, err := Status(options(env))
		require.NoError(t, err)
		assert.Empty(t, testutil.Snapshot(t, env.FS, env.TargetRoot))
		assert.NoDirExists(t, env.StagingRoot)
	})
}
