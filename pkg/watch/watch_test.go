package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zanyuzhao/spec-coding/pkg/rules"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu     sync.Mutex
	bursts [][]string
	ch     chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.bursts = append(r.bursts, changed)
	r.mu.Unlock()
	r.ch <- struct{}{}
	return nil
}

func (r *recorder) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bursts[len(r.bursts)-1]
}

func start(t *testing.T, w *Watcher) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func TestWatcherDebouncesBurst(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".cursor", "rules"), 0755))

	rec := newRecorder()
	w, err := New(root, nil, 100*time.Millisecond, rec.onChange)
	require.NoError(t, err)
	stop := start(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, ".cursor", "rules", "a.mdc"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".cursor", "rules", "b.mdc"), []byte("b"), 0644))

	changed := rec.wait(t)
	assert.Contains(t, changed, ".cursor/rules/a.mdc")
	assert.Contains(t, changed, ".cursor/rules/b.mdc")
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()

	rec := newRecorder()
	w, err := New(root, nil, 100*time.Millisecond, rec.onChange)
	require.NoError(t, err)
	stop := start(t, w)
	defer stop()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))
	rec.wait(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "feature.md"), []byte("x"), 0644))
	changed := rec.wait(t)
	assert.Contains(t, changed, "docs/feature.md")
}

func TestWatcherIgnoresNoise(t *testing.T) {
	root := t.TempDir()

	rec := newRecorder()
	w, err := New(root, rules.Ignore{"**/.DS_Store"}, 100*time.Millisecond, rec.onChange)
	require.NoError(t, err)
	stop := start(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, ".DS_Store"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "CLAUDE.md"), []byte("x"), 0644))

	changed := rec.wait(t)
	assert.Equal(t, []string{"CLAUDE.md"}, changed)
}

func TestWatcherStopsOnCancel(t *testing.T) {
	w, err := New(t.TempDir(), nil, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.Debounce)

	stop := start(t, w)
	stop()
}

func TestWatcherCloseWithoutRun(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))

	w, err := New(root, nil, 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestNewMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, 0, nil)
	assert.Error(t, err)
}
