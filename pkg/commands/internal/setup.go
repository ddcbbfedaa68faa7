// Package internal holds the setup shared by the spec-coding commands:
// resolving the target, loading the layered configuration and wiring the
// staging builder from it.
package internal

import (
	"github.com/zanyuzhao/spec-coding/pkg/config"
	"github.com/zanyuzhao/spec-coding/pkg/filesystem"
	"github.com/zanyuzhao/spec-coding/pkg/paths"
	"github.com/zanyuzhao/spec-coding/pkg/placeholder"
	"github.com/zanyuzhao/spec-coding/pkg/rules"
	"github.com/zanyuzhao/spec-coding/pkg/staging"
	"github.com/zanyuzhao/spec-coding/pkg/state"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// ConfigOptions selects the configuration sources of a command
type ConfigOptions struct {
	// UserConfig overrides the user config file; "-" disables it
	UserConfig string
	// Flags holds explicitly set command-line values keyed by config path
	Flags map[string]interface{}
}

// Env is a command's view of one target project
type Env struct {
	FS         types.FS
	Target     string
	Table      *rules.Table
	Inspection *state.Inspection
	Config     *config.Config
}

// Prepare resolves targetArg, inspects it and loads the configuration with
// the target's recorded parameters and project file
func Prepare(fs types.FS, targetArg string, opts ConfigOptions) (*Env, error) {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	target, err := paths.ResolveTarget(fs, targetArg)
	if err != nil {
		return nil, err
	}

	table := rules.DefaultTable()
	in, err := state.Inspect(fs, target, table)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.LoadOptions{
		TargetRoot: target,
		Recorded:   in.Marker.Params(),
		UserConfig: opts.UserConfig,
		Flags:      opts.Flags,
	})
	if err != nil {
		return nil, err
	}

	return &Env{FS: fs, Target: target, Table: table, Inspection: in, Config: cfg}, nil
}

// LoadConfig loads the configuration without a target project
func LoadConfig(opts ConfigOptions) (*config.Config, error) {
	return config.Load(config.LoadOptions{UserConfig: opts.UserConfig, Flags: opts.Flags})
}

// NewBuilder wires a staging builder from the configuration
func NewBuilder(fs types.FS, cfg *config.Config, table *rules.Table) *staging.Builder {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if table == nil {
		table = rules.DefaultTable()
	}
	return &staging.Builder{
		FS:          fs,
		SourceRoot:  cfg.Source.Root,
		StagingRoot: cfg.Staging.Root,
		Table:       table,
		Ignore:      cfg.IgnoreRules(),
		FilePerm:    cfg.Permissions.File,
		DirPerm:     cfg.Permissions.Directory,
	}
}

// ParamsReport converts parameters for display
func ParamsReport(p placeholder.Params) types.ParamsReport {
	return types.ParamsReport{BackendDir: p.BackendDir, FrontendDir: p.FrontendDir, AppPackage: p.AppPackage}
}
