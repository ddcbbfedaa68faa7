// Package initialize implements the init command: materializing the
// spec-coding templates into a target project, or refreshing them.
package initialize

import (
	"time"

	"github.com/zanyuzhao/spec-coding/internal/version"
	"github.com/zanyuzhao/spec-coding/pkg/commands/internal"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/materialize"
	"github.com/zanyuzhao/spec-coding/pkg/staging"
	"github.com/zanyuzhao/spec-coding/pkg/state"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// InitOptions defines the options for the InitProject command.
type InitOptions struct {
	// Target is the project directory, "" for the current directory.
	Target string
	// DocsOnly limits the run to documentation and essential config.
	DocsOnly bool
	// Force applies a fresh install regardless of the detected state,
	// overwriting existing documentation.
	Force bool
	// DryRun reports what would be written without writing.
	DryRun bool
	// Version is recorded in the marker; defaults to the engine version.
	Version string

	Config     internal.ConfigOptions
	FileSystem types.FS
}

// InitProject materializes the templates into the target project
func InitProject(opts InitOptions) (*types.InitResult, error) {
	log := logging.GetLogger("commands.init")
	start := time.Now()

	if opts.Version == "" {
		opts.Version = version.Version
	}

	env, err := internal.Prepare(opts.FileSystem, opts.Target, opts.Config)
	if err != nil {
		return nil, err
	}
	cfg := env.Config
	log.Debug().Str("target", env.Target).Bool("force", opts.Force).Bool("docsOnly", opts.DocsOnly).Msg("Executing command")

	if cfg.Lock && !opts.DryRun {
		lock, err := state.AcquireLock(env.FS, env.Target)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				log.Warn().Err(err).Msg("Failed to release lock")
			}
		}()

		// re-read under the lock
		if env.Inspection, err = state.Inspect(env.FS, env.Target, env.Table); err != nil {
			return nil, err
		}
	}

	in := env.Inspection
	detected := in.Mode()
	mode := detected
	if opts.Force {
		mode = state.ModeFresh
	}

	result := &types.InitResult{
		Target:           env.Target,
		EngineVersion:    opts.Version,
		InstalledVersion: in.InstalledVersion(),
		LegacyMarker:     in.Marker != nil && in.Marker.Legacy,
		Comparison:       string(in.Compare(opts.Version)),
		Detected:         string(detected),
		Mode:             string(mode),
		Forced:           opts.Force && detected != mode,
		DocsOnly:         opts.DocsOnly,
		DryRun:           opts.DryRun,
		Params:           internal.ParamsReport(cfg.Params),
	}
	if result.Comparison == string(state.CompareDowngrade) {
		log.Warn().Str("installed", result.InstalledVersion).Str("engine", opts.Version).
			Msg("Target was set up by a newer version")
	}

	builder := internal.NewBuilder(env.FS, cfg, env.Table)
	built, err := builder.Ensure()
	if err != nil {
		return nil, err
	}
	result.Staging = "reused"
	if built.Status == staging.StatusDone {
		result.Staging = "built"
	}

	syncRes, err := materialize.Sync(materialize.Options{
		FS:          env.FS,
		StagingRoot: cfg.Staging.Root,
		TargetRoot:  env.Target,
		Params:      cfg.Params,
		Mode:        mode,
		DocsOnly:    opts.DocsOnly,
		DryRun:      opts.DryRun,
		Version:     opts.Version,
		Table:       env.Table,
		FilePerm:    cfg.Permissions.File,
		DirPerm:     cfg.Permissions.Directory,
		Stager:      builder,
	})
	if syncRes != nil {
		fillSteps(result, syncRes)
	}
	if err != nil {
		return result, err
	}

	// a dry run leaves no staging tree it built behind
	if opts.DryRun && built.Status == staging.StatusDone {
		if cr := builder.Cleanup(); cr.Status == staging.StatusFailed {
			log.Warn().Err(cr.Err).Msg("Failed to remove staging tree after dry run")
		}
	}

	result.Duration = time.Since(start)
	log.Info().
		Str("target", env.Target).
		Str("mode", result.Mode).
		Int("files", result.FilesWritten).
		Dur("duration", result.Duration).
		Msg("Init complete")
	return result, nil
}

// fillSteps copies the per-step outcome of a sync into the report
func fillSteps(result *types.InitResult, res *materialize.Result) {
	steps := []materialize.Step{
		materialize.StepDocs,
		materialize.StepEssential,
		materialize.StepSkills,
		materialize.StepRules,
		materialize.StepConfig,
	}
	for _, step := range steps {
		report := types.StepReport{Name: string(step)}
		for _, s := range res.Skipped {
			if s.Step == step {
				report.Skipped = true
				report.Reason = s.Reason
			}
		}
		if !report.Skipped {
			report.Files = res.Files(step)
		}
		result.Steps = append(result.Steps, report)
	}
	result.FilesWritten = len(res.Actions)

	if res.Cleanup != nil {
		result.Cleanup = string(res.Cleanup.Status)
		if res.Cleanup.Err != nil {
			result.CleanupError = res.Cleanup.Err.Error()
		}
	}
}
