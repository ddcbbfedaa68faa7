// Package commands provides the high-level command implementations of
// spec-coding.
//
// Each command is implemented in its own subdirectory:
//   - initialize/ - InitProject command
//   - status/     - Status command
//   - templates/  - staging build and clean
//   - genconfig/  - GenConfig command
//   - watch/      - Watch command
//   - internal/   - shared target and configuration setup
//
// This file re-exports the command functions so callers need one import.
package commands

import (
	"context"

	"github.com/zanyuzhao/spec-coding/pkg/commands/genconfig"
	"github.com/zanyuzhao/spec-coding/pkg/commands/initialize"
	"github.com/zanyuzhao/spec-coding/pkg/commands/internal"
	"github.com/zanyuzhao/spec-coding/pkg/commands/status"
	"github.com/zanyuzhao/spec-coding/pkg/commands/templates"
	"github.com/zanyuzhao/spec-coding/pkg/commands/watch"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// ConfigOptions selects the configuration sources of a command.
type ConfigOptions = internal.ConfigOptions

// InitProject materializes the templates into a target project.
type InitOptions = initialize.InitOptions

func InitProject(opts InitOptions) (*types.InitResult, error) {
	return initialize.InitProject(opts)
}

// Status reports the state of a target project without writing.
type StatusOptions = status.StatusOptions

func Status(opts StatusOptions) (*types.StatusResult, error) {
	return status.Status(opts)
}

// BuildTemplates and CleanTemplates manage the staging tree.
type TemplatesOptions = templates.TemplatesOptions

func BuildTemplates(opts TemplatesOptions) (*types.TemplatesResult, error) {
	return templates.Build(opts)
}

func CleanTemplates(opts TemplatesOptions) (*types.TemplatesResult, error) {
	return templates.Clean(opts)
}

// GenConfig outputs or writes a default configuration file.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}

// Watch keeps a target in sync with the source tree until ctx is done.
type WatchOptions = watch.WatchOptions

func Watch(ctx context.Context, opts WatchOptions) error {
	return watch.Watch(ctx, opts)
}
