package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// Environment variable names
const (
	// EnvSourceRoot points at the canonical spec-coding source tree
	EnvSourceRoot = "SPEC_CODING_SOURCE_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Names of files and directories. These are part of the on-disk contract
// with target projects and are not configurable.
const (
	// AppName is used for the XDG subdirectories
	AppName = "spec-coding"

	// VersionFileName is the version marker written at the target root
	VersionFileName = ".spec-coding-version"

	// ProjectConfigFile is the optional per-project configuration
	ProjectConfigFile = ".spec-coding.toml"

	// LockFileName is the advisory lock held while a run writes to a target
	LockFileName = ".spec-coding.lock"

	// TemplatesDir is the staging subdirectory under the data home
	TemplatesDir = "templates"

	// UserConfigFile is the file name under the config home
	UserConfigFile = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "spec-coding.log"
)

// DefaultStagingRoot returns where the staging tree lives when not configured
func DefaultStagingRoot() string {
	return filepath.Join(xdg.DataHome, AppName, TemplatesDir)
}

// UserConfigPath returns the user-level configuration file
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, UserConfigFile)
}

// StateDir returns the directory holding the log file
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// VersionFile returns the marker path for a target project
func VersionFile(target string) string {
	return filepath.Join(target, VersionFileName)
}

// LockFile returns the lock path for a target project
func LockFile(target string) string {
	return filepath.Join(target, LockFileName)
}

// ProjectConfig returns the project configuration path for a target project
func ProjectConfig(target string) string {
	return filepath.Join(target, ProjectConfigFile)
}

// ResolveTarget turns a user-supplied target argument into an absolute
// directory path. An empty argument means the current directory.
func ResolveTarget(fs types.FS, arg string) (string, error) {
	if arg == "" {
		arg = "."
	}
	if err := ValidatePath(arg); err != nil {
		return "", errors.Wrap(err, errors.ErrTargetInvalid, "invalid target path")
	}

	abs, err := filepath.Abs(ExpandHome(arg))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTargetInvalid, "cannot resolve target %s", arg)
	}

	info, err := fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrTargetInvalid, "target %s does not exist", abs).
				WithDetail("path", abs)
		}
		return "", errors.Wrapf(err, errors.ErrTargetInvalid, "cannot access target %s", abs).
			WithDetail("path", abs)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrTargetInvalid, "target %s is not a directory", abs).
			WithDetail("path", abs)
	}
	return abs, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}
