package genconfig

import (
	"path/filepath"

	"github.com/zanyuzhao/spec-coding/pkg/config"
	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/filesystem"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/paths"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// GenConfigOptions holds options for the config command
type GenConfigOptions struct {
	// Target is the project the config file is written into
	Target string
	// Write writes the file instead of only returning its content
	Write bool
	// User writes the user config file instead of the project one
	User bool

	FileSystem types.FS
}

// GenConfig outputs or writes a commented default configuration
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	var targetPath string
	if opts.User {
		targetPath = paths.UserConfigPath()
		if err := fs.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", targetPath)
		}
	} else {
		target, err := paths.ResolveTarget(fs, opts.Target)
		if err != nil {
			return result, err
		}
		targetPath = paths.ProjectConfig(target)
	}

	if filesystem.Exists(fs, targetPath) {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := fs.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", targetPath).
			WithDetail("path", targetPath)
	}

	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}
