// TEST TYPE: Integration Test
// DEPENDENCIES: OS filesystem (t.TempDir), fsnotify
// PURPOSE: Verify that source edits reach the target

package watch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zanyuzhao/spec-coding/pkg/commands/internal"
	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/testutil"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func options(env *testutil.TestEnvironment, synced chan error) WatchOptions {
	return WatchOptions{
		Target:     env.TargetRoot,
		FileSystem: env.FS,
		Synced: func(_ *types.InitResult, err error) {
			synced <- err
		},
		Config: internal.ConfigOptions{UserConfig: "-", Flags: map[string]interface{}{
			"source.root":    env.SourceRoot,
			"staging.root":   env.StagingRoot,
			"watch.debounce": "50ms",
		}},
	}
}

func waitSync(t *testing.T, synced chan error) {
	t.Helper()
	select {
	case err := <-synced:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no sync")
	}
}

func TestWatch(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithCanonicalSource()
	synced := make(chan error, 8)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, options(env, synced)) }()

	waitSync(t, synced)
	testutil.AssertFileContent(t, env.FS, env.Target("CLAUDE.md"),
		testutil.CanonicalSource["CLAUDE.md"])

	// the watcher is registered after the first sync returns
	time.Sleep(100 * time.Millisecond)
	testutil.WriteFile(t, env.FS, env.Source("CLAUDE.md"), "# Edited\nSee backend/.\n")
	waitSync(t, synced)
	testutil.AssertFileContent(t, env.FS, env.Target("CLAUDE.md"), "# Edited\nSee backend/.\n")

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchNeedsSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	err := Watch(context.Background(), options(env, make(chan error, 1)))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStagingUnavailable))
}
