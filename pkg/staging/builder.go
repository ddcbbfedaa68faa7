package staging

import (
	"os"
	"path"
	"path/filepath"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/filesystem"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/paths"
	"github.com/zanyuzhao/spec-coding/pkg/placeholder"
	"github.com/zanyuzhao/spec-coding/pkg/rules"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// workSuffix names the sibling directory a build writes into
const workSuffix = ".building"

// Builder produces the staging tree from a source tree
type Builder struct {
	FS          types.FS
	SourceRoot  string
	StagingRoot string
	Table       *rules.Table
	Ignore      rules.Ignore
	FilePerm    os.FileMode
	DirPerm     os.FileMode
}

// NewBuilder returns a builder with the default table, ignore list and
// permissions
func NewBuilder(fs types.FS, sourceRoot, stagingRoot string) *Builder {
	return &Builder{
		FS:          fs,
		SourceRoot:  sourceRoot,
		StagingRoot: stagingRoot,
		Table:       rules.DefaultTable(),
		Ignore:      rules.Ignore(rules.DefaultIgnore),
		FilePerm:    0644,
		DirPerm:     0755,
	}
}

// CanBuild reports whether the source tree holds every required directory.
// The reason names the first missing one.
func (b *Builder) CanBuild() (bool, string) {
	b.cleanRoots()
	if b.SourceRoot == "" {
		return false, "no source root configured"
	}
	for _, dir := range b.Table.RequiredSourceDirs {
		p := filepath.Join(b.SourceRoot, filepath.FromSlash(dir))
		if !filesystem.IsDir(b.FS, p) {
			return false, "source directory " + p + " not found"
		}
	}
	return true, ""
}

// Build regenerates the staging tree from the source tree. It is skipped,
// without error, when the source tree is not available. On any failure
// the previous staging tree, if any, is left in place.
func (b *Builder) Build() (*BuildResult, error) {
	logger := logging.GetLogger("staging.builder")
	done := logging.LogOperationStart(logger, "build")
	defer done()
	b.cleanRoots()

	if ok, reason := b.CanBuild(); !ok {
		logger.Info().Str("reason", reason).Msg("Skipping staging build")
		return &BuildResult{Status: StatusSkipped, Reason: reason}, nil
	}
	if err := b.checkOverlap(); err != nil {
		return nil, err
	}

	work := b.StagingRoot + workSuffix
	if err := b.FS.RemoveAll(work); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStagingBuild, "failed to clear work directory %s", work)
	}

	files, err := b.populate(work)
	if err == nil {
		err = b.verify(work)
	}
	if err == nil {
		err = b.swap(work)
	}
	if err != nil {
		if rmErr := b.FS.RemoveAll(work); rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", work).Msg("Failed to remove work directory")
		}
		return nil, err
	}

	logger.Info().
		Str("source", b.SourceRoot).
		Str("staging", b.StagingRoot).
		Int("files", len(files)).
		Msg("Staging tree built")
	return &BuildResult{Status: StatusDone, Files: files}, nil
}

// populate copies every classified source file into work
func (b *Builder) populate(work string) ([]string, error) {
	logger := logging.GetLogger("staging.builder")
	var files []string

	for _, root := range b.Table.SourceRoots() {
		base := filepath.Join(b.SourceRoot, filepath.FromSlash(root))
		err := filesystem.Walk(b.FS, base, func(rel string) error {
			src := path.Join(root, rel)
			if b.Ignore.Match(src) {
				logger.Trace().Str("path", src).Msg("Ignored")
				return nil
			}

			rule, err := b.Table.ClassifySource(src)
			if err != nil {
				return err
			}

			data, err := b.FS.ReadFile(filepath.Join(b.SourceRoot, filepath.FromSlash(src)))
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", src)
			}
			if rule.Substitutes() {
				data = []byte(placeholder.ToPlaceholders(string(data)))
			}

			staged := rule.SourceToStaging(src)
			dst := filepath.Join(work, filepath.FromSlash(staged))
			if err := b.FS.MkdirAll(filepath.Dir(dst), b.DirPerm); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dst))
			}
			if err := b.FS.WriteFile(dst, data, b.FilePerm); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst)
			}

			logger.Trace().Str("source", src).Str("staged", staged).Str("rule", rule.Name).Msg("Staged")
			files = append(files, staged)
			return nil
		})
		if err != nil {
			if errors.GetErrorCode(err) != errors.ErrUnknown {
				return nil, err
			}
			return nil, errors.Wrapf(err, errors.ErrStagingBuild, "failed to walk %s", base)
		}
	}
	return files, nil
}

// cleanRoots drops trailing separators and dot segments from both roots.
// The work directory is a sibling of the staging root only when the root
// is clean.
func (b *Builder) cleanRoots() {
	if b.SourceRoot != "" {
		b.SourceRoot = filepath.Clean(b.SourceRoot)
	}
	if b.StagingRoot != "" {
		b.StagingRoot = filepath.Clean(b.StagingRoot)
	}
}

// checkOverlap rejects a staging root that would be scanned as source
// or that would swallow the source tree when replaced
func (b *Builder) checkOverlap() error {
	if paths.ContainsPath(b.StagingRoot, b.SourceRoot) {
		return errors.Newf(errors.ErrStagingBuild,
			"staging root %s contains the source tree %s", b.StagingRoot, b.SourceRoot)
	}
	for _, root := range b.Table.SourceRoots() {
		if paths.ContainsPath(filepath.Join(b.SourceRoot, filepath.FromSlash(root)), b.StagingRoot) {
			return errors.Newf(errors.ErrStagingBuild,
				"staging root %s lies inside source directory %s", b.StagingRoot, root)
		}
	}
	return nil
}

// verify checks that work holds every required category
func (b *Builder) verify(work string) error {
	missing, err := missingCategories(b.FS, work, b.Table)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrStagingBuild, "source tree lacks required categories: %v", missing).
			WithDetail("missing", missing)
	}
	return nil
}

// swap replaces the staging tree with work
func (b *Builder) swap(work string) error {
	if err := b.FS.RemoveAll(b.StagingRoot); err != nil {
		return errors.Wrapf(err, errors.ErrStagingBuild, "failed to remove previous staging tree %s", b.StagingRoot)
	}
	if err := b.FS.MkdirAll(filepath.Dir(b.StagingRoot), b.DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(b.StagingRoot))
	}
	if err := b.FS.Rename(work, b.StagingRoot); err != nil {
		return errors.Wrapf(err, errors.ErrStagingBuild, "failed to move %s into place", work)
	}
	return nil
}

// Complete reports whether the staging tree exists and holds at least one
// file of every required category
func (b *Builder) Complete() bool {
	b.cleanRoots()
	if !filesystem.IsDir(b.FS, b.StagingRoot) {
		return false
	}
	missing, err := missingCategories(b.FS, b.StagingRoot, b.Table)
	return err == nil && len(missing) == 0
}

// Ensure makes the staging tree available, building it when absent or
// incomplete. It fails with STAGING_UNAVAILABLE when neither the staging
// tree nor a buildable source tree exists.
func (b *Builder) Ensure() (*BuildResult, error) {
	if b.Complete() {
		return &BuildResult{Status: StatusSkipped, Reason: "staging tree already complete"}, nil
	}

	res, err := b.Build()
	if err != nil {
		return nil, err
	}
	if !b.Complete() {
		reason := res.Reason
		if reason == "" {
			reason = "build produced an incomplete tree"
		}
		return nil, errors.Newf(errors.ErrStagingUnavailable,
			"staging tree %s is missing or incomplete and cannot be built: %s", b.StagingRoot, reason).
			WithDetail("staging", b.StagingRoot).
			WithDetail("source", b.SourceRoot)
	}
	return res, nil
}

// Cleanup removes the staging tree, but only when the source tree could
// regenerate it. Packaged installs ship a staging tree without a source
// tree; that tree must survive.
func (b *Builder) Cleanup() CleanupResult {
	logger := logging.GetLogger("staging.builder")
	b.cleanRoots()

	if !filesystem.Exists(b.FS, b.StagingRoot) {
		return CleanupResult{Status: StatusSkipped, Reason: "no staging tree"}
	}
	if ok, reason := b.CanBuild(); !ok {
		return CleanupResult{Status: StatusSkipped, Reason: "source tree unavailable: " + reason}
	}

	if err := b.FS.RemoveAll(b.StagingRoot); err != nil {
		logger.Warn().Err(err).Str("path", b.StagingRoot).Msg("Failed to remove staging tree")
		return CleanupResult{
			Status: StatusFailed,
			Err:    errors.Wrapf(err, errors.ErrFileWrite, "failed to remove staging tree %s", b.StagingRoot),
		}
	}
	logger.Info().Str("path", b.StagingRoot).Msg("Staging tree removed")
	return CleanupResult{Status: StatusDone}
}

// missingCategories lists the required categories without a file below root
func missingCategories(fs types.FS, root string, table *rules.Table) ([]rules.Category, error) {
	found := make(map[rules.Category]bool)
	err := filesystem.Walk(fs, root, func(rel string) error {
		if rule, err := table.ClassifyStaging(rel); err == nil {
			found[rule.Category] = true
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to scan %s", root)
	}

	var missing []rules.Category
	for _, c := range table.Required {
		if !found[c] {
			missing = append(missing, c)
		}
	}
	return missing, nil
}
