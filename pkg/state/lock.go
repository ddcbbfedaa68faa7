package state

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/paths"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// processAlive reports whether pid names a running process
var processAlive = processExists

// Lock is an advisory lock file held at the target root during a run
type Lock struct {
	fs   types.FS
	path string
}

// AcquireLock creates the lock file of target exclusively. A lock whose
// owner is still running yields TARGET_LOCKED. A lock left by a run that
// died is taken over.
func AcquireLock(fs types.FS, target string) (*Lock, error) {
	logger := logging.GetLogger("state.lock")
	path := paths.LockFile(target)

	lock, err := createLock(fs, path)
	if err == nil {
		logger.Debug().Str("path", path).Msg("Lock acquired")
		return lock, nil
	}
	if !os.IsExist(err) {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create lock %s", path)
	}

	pid, stale := staleOwner(fs, path)
	if !stale {
		return nil, errors.Newf(errors.ErrTargetLocked,
			"target is locked by another run (pid %d)", pid).
			WithDetail("path", path).
			WithDetail("pid", pid)
	}

	logger.Warn().Str("path", path).Int("pid", pid).Msg("Taking over lock left by a run that is no longer running")
	if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove stale lock %s", path)
	}
	lock, err = createLock(fs, path)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.Newf(errors.ErrTargetLocked, "target is locked by another run").
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create lock %s", path)
	}
	logger.Debug().Str("path", path).Msg("Lock acquired")
	return lock, nil
}

func createLock(fs types.FS, path string) (*Lock, error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintf(f, "pid=%d\nstarted=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	return &Lock{fs: fs, path: path}, nil
}

// staleOwner reads the pid recorded in a lock file. An empty file belongs
// to a run that is still writing it and is never stale.
func staleOwner(fs types.FS, path string) (int, bool) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return 0, false
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0, false
	}
	for _, line := range strings.Split(content, "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "pid="); ok {
			pid, err := strconv.Atoi(v)
			if err != nil || pid <= 0 {
				return 0, true
			}
			return pid, !processAlive(pid)
		}
	}
	return 0, true
}

// Release removes the lock file. Releasing a nil lock is a no-op.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := l.fs.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove lock %s", l.path)
	}
	logger := logging.GetLogger("state.lock")
	logger.Debug().Str("path", l.path).Msg("Lock released")
	return nil
}
