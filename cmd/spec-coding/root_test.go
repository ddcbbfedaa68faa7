package speccoding

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/paths"
	"github.com/zanyuzhao/spec-coding/pkg/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--no-color", "--config=-"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()

	out, err := execute(t, "init", env.TargetRoot,
		"--source", env.SourceRoot, "--staging", env.StagingRoot, "--backend-dir", "server")
	require.NoError(t, err)

	assert.Contains(t, out, "mode:      fresh")
	assert.Contains(t, out, "backend=server")
	assert.Contains(t, out, "files written")
	testutil.AssertFileContent(t, env.FS, env.Target("CLAUDE.md"),
		"# Project\nSource lives in server/app/ and frontend/.\n")
	testutil.AssertExists(t, env.FS, paths.VersionFile(env.TargetRoot))
}

func TestInitCmdDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()

	out, err := execute(t, "init", env.TargetRoot, "--dry-run",
		"--source", env.SourceRoot, "--staging", env.StagingRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "DRY RUN")
	assert.Empty(t, testutil.Snapshot(t, env.FS, env.TargetRoot))
}

func TestInitCmdInvalidTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()

	_, err := execute(t, "init", env.Target("missing"), "--source", env.SourceRoot)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetInvalid))
}

func TestStatusCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	out, err := execute(t, "status", env.TargetRoot, "--staging", env.StagingRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "next run:  fresh")
	assert.Contains(t, out, "not configured")
}

func TestTemplatesCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()

	out, err := execute(t, "templates", "build", "--source", env.SourceRoot, "--staging", env.StagingRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "templates build: done")
	testutil.AssertExists(t, env.FS, env.Staging("CLAUDE.md"))

	out, err = execute(t, "templates", "clean", "--source", env.SourceRoot, "--staging", env.StagingRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "templates clean: done")
	testutil.AssertNotExists(t, env.FS, env.StagingRoot)
}

func TestConfigCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "[params]"))

	out, err = execute(t, "config", env.TargetRoot, "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	testutil.AssertExists(t, env.FS, paths.ProjectConfig(env.TargetRoot))

	out, err = execute(t, "config", env.TargetRoot, "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "spec-coding version")
}

func TestNoCommand(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}
