// Package watch implements the watch command: keep a target project in sync
// with a source tree while the templates are being edited.
package watch

import (
	"context"
	"strings"

	"github.com/zanyuzhao/spec-coding/pkg/commands/initialize"
	"github.com/zanyuzhao/spec-coding/pkg/commands/internal"
	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/types"
	"github.com/zanyuzhao/spec-coding/pkg/watch"
)

// WatchOptions holds options for the watch command
type WatchOptions struct {
	Target string
	Config internal.ConfigOptions

	// Synced, when set, receives the outcome of every sync including the
	// initial one
	Synced func(*types.InitResult, error)

	FileSystem types.FS
}

// Watch syncs the target once, then again after each burst of source
// changes, until ctx is cancelled
func Watch(ctx context.Context, opts WatchOptions) error {
	logger := logging.GetLogger("commands.watch")

	env, err := internal.Prepare(opts.FileSystem, opts.Target, opts.Config)
	if err != nil {
		return err
	}
	cfg := env.Config
	builder := internal.NewBuilder(env.FS, cfg, env.Table)
	if ok, reason := builder.CanBuild(); !ok {
		return errors.Newf(errors.ErrStagingUnavailable, "watch needs a source tree: %s", reason).
			WithDetail("source", cfg.Source.Root)
	}

	sync := func() error {
		res, err := initialize.InitProject(initialize.InitOptions{
			Target:     env.Target,
			Config:     opts.Config,
			FileSystem: env.FS,
		})
		if opts.Synced != nil {
			opts.Synced(res, err)
		}
		return err
	}

	if err := sync(); err != nil {
		return err
	}

	w, err := watch.New(cfg.Source.Root, cfg.IgnoreRules(), cfg.Watch.Debounce,
		func(ctx context.Context, changed []string) error {
			logger.Info().Str("files", strings.Join(changed, ", ")).Msg("Resyncing target")
			return sync()
		})
	if err != nil {
		return err
	}

	logger.Info().Str("source", cfg.Source.Root).Str("target", env.Target).Msg("Watching source tree")
	return w.Run(ctx)
}
