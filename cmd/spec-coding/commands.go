package speccoding

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zanyuzhao/spec-coding/internal/version"
	"github.com/zanyuzhao/spec-coding/pkg/commands"
	"github.com/zanyuzhao/spec-coding/pkg/config"
	"github.com/zanyuzhao/spec-coding/pkg/output"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// configFlags maps command-line flags to configuration keys. Only flags
// the user set are passed on, so unset flags never mask lower layers.
var configFlags = map[string]string{
	"backend-dir":  "params.backend_dir",
	"frontend-dir": "params.frontend_dir",
	"app-package":  "params.app_package",
	"source":       "source.root",
	"staging":      "staging.root",
}

func configOptions(cmd *cobra.Command, g *globalFlags) commands.ConfigOptions {
	flags := make(map[string]interface{})
	for name, key := range configFlags {
		f := cmd.Flags().Lookup(name)
		if f != nil && f.Changed {
			flags[key] = f.Value.String()
		}
	}
	return commands.ConfigOptions{UserConfig: g.userConfig, Flags: flags}
}

func addConfigFlags(cmd *cobra.Command, params bool) {
	if params {
		cmd.Flags().String("backend-dir", "", MsgFlagBackendDir)
		cmd.Flags().String("frontend-dir", "", MsgFlagFrontendDir)
		cmd.Flags().String("app-package", "", MsgFlagAppPackage)
	}
	cmd.Flags().String("source", "", MsgFlagSource)
	cmd.Flags().String("staging", "", MsgFlagStaging)
}

// newRenderer honors --no-color first, then output.color from the config
func newRenderer(cmd *cobra.Command, g *globalFlags) (*output.Renderer, error) {
	mode := config.ColorAuto
	if g.noColor {
		mode = config.ColorNever
	} else if cfg, err := config.Load(config.LoadOptions{UserConfig: g.userConfig}); err == nil {
		mode = cfg.Output.Color
	}
	return output.NewRenderer(cmd.OutOrStdout(), mode)
}

func targetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func newInitCmd(g *globalFlags) *cobra.Command {
	var docsOnly, force, dryRun bool

	cmd := &cobra.Command{
		Use:     "init [target]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().Str("target", targetArg(args)).Bool("dryRun", dryRun).Msg("Running init")

			result, err := commands.InitProject(commands.InitOptions{
				Target:   targetArg(args),
				DocsOnly: docsOnly,
				Force:    force,
				DryRun:   dryRun,
				Config:   configOptions(cmd, g),
			})
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			return r.Render("init.tmpl", result)
		},
	}

	addConfigFlags(cmd, true)
	cmd.Flags().BoolVar(&docsOnly, "docs-only", false, MsgFlagDocsOnly)
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newStatusCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status [target]",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Status(commands.StatusOptions{
				Target: targetArg(args),
				Config: configOptions(cmd, g),
			})
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			return r.Render("status.tmpl", result)
		},
	}
	addConfigFlags(cmd, true)
	return cmd
}

func newTemplatesCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Short:   MsgTemplatesShort,
		Long:    MsgTemplatesLong,
		GroupID: "maint",
	}

	run := func(action func(commands.TemplatesOptions) (*types.TemplatesResult, error), force *bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			opts := commands.TemplatesOptions{Config: configOptions(cmd, g)}
			if force != nil {
				opts.Force = *force
			}
			result, err := action(opts)
			if result != nil {
				r, rerr := newRenderer(cmd, g)
				if rerr != nil {
					return rerr
				}
				if rerr := r.Render("templates.tmpl", result); rerr != nil {
					return rerr
				}
			}
			return err
		}
	}

	build := &cobra.Command{
		Use:   "build",
		Short: MsgTemplatesBuildShort,
		Args:  cobra.NoArgs,
		RunE:  run(commands.BuildTemplates, nil),
	}
	addConfigFlags(build, false)

	var cleanForce bool
	clean := &cobra.Command{
		Use:   "clean",
		Short: MsgTemplatesCleanShort,
		Args:  cobra.NoArgs,
		RunE:  run(commands.CleanTemplates, &cleanForce),
	}
	addConfigFlags(clean, false)
	clean.Flags().BoolVarP(&cleanForce, "force", "f", false, MsgFlagCleanForce)

	cmd.AddCommand(build, clean)
	return cmd
}

func newWatchCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch [target]",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "maint",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = commands.Watch(ctx, commands.WatchOptions{
				Target: targetArg(args),
				Config: configOptions(cmd, g),
				Synced: func(res *types.InitResult, err error) {
					if err != nil {
						_ = r.RenderError(err)
						return
					}
					_ = r.Render("init.tmpl", res)
				},
			})
			if err != nil {
				return err
			}
			return r.RenderMessage("Muted", MsgWatchStopped)
		},
	}
	addConfigFlags(cmd, true)
	return cmd
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	var write, user bool

	cmd := &cobra.Command{
		Use:     "config [target]",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{
				Target: targetArg(args),
				Write:  write,
				User:   user,
			})
			if err != nil {
				return err
			}

			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), result.ConfigContent)
				return err
			}

			r, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			if len(result.FilesWritten) == 0 {
				return r.RenderMessage("Warning", MsgConfigExists)
			}
			for _, path := range result.FilesWritten {
				if err := r.RenderMessage("Success", fmt.Sprintf(MsgConfigWritten, path)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&user, "user", false, MsgFlagUser)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, err := fmt.Fprintf(out, "spec-coding version %s\n  commit: %s\n  built:  %s\n",
				version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
