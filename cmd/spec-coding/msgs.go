package speccoding

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort           = "Install a spec-driven workflow into a project"
	MsgInitShort           = "Install or refresh the templates in a project"
	MsgStatusShort         = "Show the spec-coding state of a project"
	MsgTemplatesShort      = "Manage the staging tree"
	MsgTemplatesBuildShort = "Build the staging tree from the source tree"
	MsgTemplatesCleanShort = "Remove the staging tree"
	MsgWatchShort          = "Resync a project whenever the source tree changes"
	MsgConfigShort         = "Print or write a default configuration file"
	MsgVersionShort        = "Print version information"
	MsgCompletionShort     = "Generate shell completion script"

	// Status messages
	MsgConfigExists  = "Config file already exists, nothing written"
	MsgConfigWritten = "Wrote %s"
	MsgWatchStopped  = "Stopped watching"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor     = "Disable colored output"
	MsgFlagConfig      = "User config file (default $XDG_CONFIG_HOME/spec-coding/config.toml, \"-\" for none)"
	MsgFlagBackendDir  = "Backend directory name substituted into templates"
	MsgFlagFrontendDir = "Frontend directory name substituted into templates"
	MsgFlagAppPackage  = "Application package name substituted into templates"
	MsgFlagDocsOnly    = "Only install documentation and essential configuration"
	MsgFlagForce       = "Install as fresh, overwriting existing documentation"
	MsgFlagDryRun      = "Report what would be written without writing"
	MsgFlagSource      = "Source tree holding the canonical templates"
	MsgFlagStaging     = "Staging tree location"
	MsgFlagCleanForce  = "Remove the staging tree even when it cannot be rebuilt"
	MsgFlagWrite       = "Write the config file instead of printing it"
	MsgFlagUser        = "With --write, write the user config file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/templates-long.txt
	msgTemplatesLongRaw string
	MsgTemplatesLong    = strings.TrimSpace(msgTemplatesLongRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
