// Package status provides the status command: what spec-coding knows
// about a target project and what the next init would do, without writing.
package status

import (
	"github.com/zanyuzhao/spec-coding/internal/version"
	"github.com/zanyuzhao/spec-coding/pkg/commands/internal"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// StatusOptions contains options for the status command
type StatusOptions struct {
	// Target is the project directory, "" for the current directory
	Target string
	// Version is the engine version compared against; defaults to the build's
	Version string

	Config     internal.ConfigOptions
	FileSystem types.FS
}

// Status inspects the target
func Status(opts StatusOptions) (*types.StatusResult, error) {
	logger := logging.GetLogger("commands.status")

	if opts.Version == "" {
		opts.Version = version.Version
	}

	env, err := internal.Prepare(opts.FileSystem, opts.Target, opts.Config)
	if err != nil {
		return nil, err
	}
	in := env.Inspection
	builder := internal.NewBuilder(env.FS, env.Config, env.Table)
	sourceOK, _ := builder.CanBuild()

	result := &types.StatusResult{
		Target:           env.Target,
		EngineVersion:    opts.Version,
		MarkerPresent:    in.Marker != nil,
		InstalledVersion: in.InstalledVersion(),
		LegacyMarker:     in.Marker != nil && in.Marker.Legacy,
		Comparison:       string(in.Compare(opts.Version)),
		DocsPresent:      in.DocsPresent,
		Mode:             string(in.Mode()),
		Params:           internal.ParamsReport(env.Config.Params),
		SourceRoot:       env.Config.Source.Root,
		SourceAvailable:  sourceOK,
		StagingRoot:      env.Config.Staging.Root,
		StagingComplete:  builder.Complete(),
	}

	logger.Debug().
		Str("target", result.Target).
		Str("mode", result.Mode).
		Str("comparison", result.Comparison).
		Msg("Status collected")
	return result, nil
}
