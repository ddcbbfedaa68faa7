package materialize

import (
	"path"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/filesystem"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/placeholder"
	"github.com/zanyuzhao/spec-coding/pkg/rules"
	"github.com/zanyuzhao/spec-coding/pkg/staging"
	"github.com/zanyuzhao/spec-coding/pkg/state"
)

// plan is one file-writing step and the rules it covers
type plan struct {
	step Step
	pick func(*rules.Table) []rules.Rule
	// skip returns a reason when the step does not run
	skip func(Options) string
}

var plans = []plan{
	{
		step: StepDocs,
		pick: func(t *rules.Table) []rules.Rule {
			return append(t.ByCategory(rules.CategoryDocsSpec), t.ByCategory(rules.CategoryDocsProcess)...)
		},
		skip: func(o Options) string {
			if o.Mode != state.ModeFresh {
				return "documentation is preserved on update"
			}
			return ""
		},
	},
	{
		step: StepEssential,
		pick: func(t *rules.Table) []rules.Rule { return singletons(t, true) },
		skip: func(Options) string { return "" },
	},
	{
		step: StepSkills,
		pick: func(t *rules.Table) []rules.Rule { return t.ByCategory(rules.CategorySkills) },
		skip: docsOnly,
	},
	{
		step: StepRules,
		pick: func(t *rules.Table) []rules.Rule { return t.ByCategory(rules.CategoryRules) },
		skip: docsOnly,
	},
	{
		step: StepConfig,
		pick: func(t *rules.Table) []rules.Rule { return singletons(t, false) },
		skip: docsOnly,
	},
}

func docsOnly(o Options) string {
	if o.DocsOnly {
		return "docs-only run"
	}
	return ""
}

func singletons(t *rules.Table, essential bool) []rules.Rule {
	var out []rules.Rule
	for _, r := range t.ByCategory(rules.CategorySingletonConfig) {
		if r.Essential == essential {
			out = append(out, r)
		}
	}
	return out
}

// Sync materializes the staging tree into the target. The first write
// error aborts the run; files written before it stay in place and no
// marker is written.
func Sync(opts Options) (*Result, error) {
	logger := logging.GetLogger("materialize.sync")
	done := logging.LogOperationStart(logger, "sync")
	defer done()

	if opts.Table == nil {
		opts.Table = rules.DefaultTable()
	}
	if opts.FilePerm == 0 {
		opts.FilePerm = 0644
	}
	if opts.DirPerm == 0 {
		opts.DirPerm = 0755
	}
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}
	if !filesystem.IsDir(opts.FS, opts.StagingRoot) {
		return nil, errors.Newf(errors.ErrStagingUnavailable, "staging tree %s not found", opts.StagingRoot).
			WithDetail("staging", opts.StagingRoot)
	}

	logger.Info().
		Str("target", opts.TargetRoot).
		Str("mode", string(opts.Mode)).
		Bool("docs_only", opts.DocsOnly).
		Bool("dry_run", opts.DryRun).
		Msg("Starting sync")

	res := &Result{Mode: opts.Mode, DryRun: opts.DryRun}

	for _, p := range plans {
		if reason := p.skip(opts); reason != "" {
			logger.Debug().Str("step", string(p.step)).Str("reason", reason).Msg("Step skipped")
			res.Skipped = append(res.Skipped, SkippedStep{Step: p.step, Reason: reason})
			continue
		}
		for _, r := range p.pick(opts.Table) {
			if err := syncRule(opts, p.step, r, res, logger); err != nil {
				logger.Error().Err(err).Str("step", string(p.step)).Msg("Sync aborted")
				return res, err
			}
		}
	}

	if opts.DryRun {
		res.Skipped = append(res.Skipped,
			SkippedStep{Step: StepMarker, Reason: "dry run"},
			SkippedStep{Step: StepCleanup, Reason: "dry run"})
		return res, nil
	}

	marker := state.NewMarker(opts.Version, opts.Params)
	if err := state.WriteMarker(opts.FS, opts.TargetRoot, marker, opts.FilePerm); err != nil {
		return res, err
	}
	res.Marker = &marker

	if opts.Stager == nil {
		res.Skipped = append(res.Skipped, SkippedStep{Step: StepCleanup, Reason: "no stager"})
	} else {
		cr := opts.Stager.Cleanup()
		res.Cleanup = &cr
		if cr.Status == staging.StatusFailed {
			logger.Warn().Err(cr.Err).Msg("Staging cleanup failed")
		}
	}

	logger.Info().Int("files", len(res.Actions)).Str("version", opts.Version).Msg("Sync complete")
	return res, nil
}

// syncRule copies every staged file of r into the target
func syncRule(opts Options, step Step, r rules.Rule, res *Result, logger zerolog.Logger) error {
	base := filepath.Join(opts.StagingRoot, filepath.FromSlash(r.Staging))

	return filesystem.Walk(opts.FS, base, func(rel string) error {
		staged := path.Join(r.Staging, rel)
		owner, err := opts.Table.ClassifyStaging(staged)
		if err != nil {
			return err
		}
		if owner.Name != r.Name {
			return errors.Newf(errors.ErrCategoryAmbiguous, "%s is claimed by %s and %s", staged, r.Name, owner.Name).
				WithDetail("path", staged)
		}

		action := Action{
			Step:        step,
			Rule:        r.Name,
			Category:    r.Category,
			Staged:      staged,
			Target:      r.StagingToTarget(staged),
			Substituted: r.Substitutes(),
		}
		res.Actions = append(res.Actions, action)

		if opts.DryRun {
			logger.Debug().Str("target", action.Target).Msg("Would write")
			return nil
		}
		return writeOne(opts, action, logger)
	})
}

func writeOne(opts Options, a Action, logger zerolog.Logger) error {
	src := filepath.Join(opts.StagingRoot, filepath.FromSlash(a.Staged))
	dst := filepath.Join(opts.TargetRoot, filepath.FromSlash(a.Target))

	data, err := opts.FS.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read staged file %s", a.Staged)
	}
	if a.Substituted {
		data = []byte(placeholder.FromPlaceholders(string(data), opts.Params))
	}

	if err := opts.FS.MkdirAll(filepath.Dir(dst), opts.DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dst)).
			WithDetail("path", a.Target)
	}
	if err := opts.FS.WriteFile(dst, data, opts.FilePerm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", a.Target).
			WithDetail("path", a.Target)
	}
	logger.Trace().Str("target", a.Target).Str("rule", a.Rule).Msg("Wrote")
	return nil
}
