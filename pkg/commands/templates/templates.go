// Package templates implements the explicit staging lifecycle: building the
// staging tree from the source tree ahead of time, as packaging does, and
// removing it again.
package templates

import (
	"github.com/zanyuzhao/spec-coding/pkg/commands/internal"
	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/filesystem"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/staging"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

const (
	ActionBuild = "build"
	ActionClean = "clean"
)

// TemplatesOptions holds options for the templates commands
type TemplatesOptions struct {
	// Force removes the staging tree in Clean even when no source tree
	// could rebuild it
	Force bool

	Config     internal.ConfigOptions
	FileSystem types.FS
}

// Build regenerates the staging tree. Without a source tree the build is
// skipped, leaving any packaged staging tree in place.
func Build(opts TemplatesOptions) (*types.TemplatesResult, error) {
	logger := logging.GetLogger("commands.templates")

	cfg, err := internal.LoadConfig(opts.Config)
	if err != nil {
		return nil, err
	}
	builder := internal.NewBuilder(opts.FileSystem, cfg, nil)
	result := &types.TemplatesResult{
		Action:      ActionBuild,
		SourceRoot:  builder.SourceRoot,
		StagingRoot: builder.StagingRoot,
	}

	res, err := builder.Build()
	if err != nil {
		result.Status = string(staging.StatusFailed)
		result.Error = err.Error()
		return result, err
	}
	result.Status = string(res.Status)
	result.Reason = res.Reason
	result.Files = len(res.Files)
	if res.Status == staging.StatusSkipped {
		logger.Info().Str("reason", res.Reason).Msg("Templates build skipped")
		return result, nil
	}

	logger.Info().Str("staging", result.StagingRoot).Int("files", result.Files).Msg("Templates built")
	return result, nil
}

// Clean removes the staging tree
func Clean(opts TemplatesOptions) (*types.TemplatesResult, error) {
	logger := logging.GetLogger("commands.templates")

	cfg, err := internal.LoadConfig(opts.Config)
	if err != nil {
		return nil, err
	}
	builder := internal.NewBuilder(opts.FileSystem, cfg, nil)
	result := &types.TemplatesResult{
		Action:      ActionClean,
		SourceRoot:  builder.SourceRoot,
		StagingRoot: builder.StagingRoot,
	}

	var cr staging.CleanupResult
	if opts.Force {
		cr = forceRemove(builder)
	} else {
		cr = builder.Cleanup()
	}
	result.Status = string(cr.Status)
	result.Reason = cr.Reason
	if cr.Err != nil {
		result.Error = cr.Err.Error()
	}

	logger.Info().Str("staging", result.StagingRoot).Str("status", result.Status).Msg("Templates cleaned")
	return result, nil
}

func forceRemove(b *staging.Builder) staging.CleanupResult {
	if !filesystem.Exists(b.FS, b.StagingRoot) {
		return staging.CleanupResult{Status: staging.StatusSkipped, Reason: "no staging tree"}
	}
	if err := b.FS.RemoveAll(b.StagingRoot); err != nil {
		return staging.CleanupResult{
			Status: staging.StatusFailed,
			Err:    errors.Wrapf(err, errors.ErrFileWrite, "failed to remove staging tree %s", b.StagingRoot),
		}
	}
	return staging.CleanupResult{Status: staging.StatusDone}
}
