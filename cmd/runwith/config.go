// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runwith/runwith/internal/config"
	"github.com/runwith/runwith/internal/issue"
)

func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage runwith configuration",
		Long: `Manage runwith configuration.

Configuration is stored in CUE format at:
  ~/.config/runwith/config.cue (Linux)
  ~/Library/Application Support/runwith/config.cue (macOS)
  %APPDATA%\runwith\config.cue (Windows)

Every value can be overridden with a RUNWITH_* environment variable,
for example RUNWITH_MODE=in_place or RUNWITH_UI_VERBOSE=true.`,
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd.Context())
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.initConfig(force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfigPath(cmd.Context())
		},
	})

	return cfgCmd
}

func (a *App) showConfig(ctx context.Context) error {
	cfg, path, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return a.report(newServiceError(err, issue.ConfigLoadFailedId), nil)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(a.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(a.stdout)
	if path != "" {
		fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(a.stdout)

	types := make([]string, len(cfg.EligibleTypes))
	for i, t := range cfg.EligibleTypes {
		types[i] = t.String()
	}

	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("registry_file"), valueStyle.Render(cfg.RegistryFile))
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("mode"), valueStyle.Render(cfg.Mode.String()))
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("executor"), valueStyle.Render(cfg.Executor.String()))
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("eligible_types"), valueStyle.Render(strings.Join(types, ", ")))
	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(a.stdout, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(a.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(a.stdout, "  level: %s\n", valueStyle.Render(cfg.Log.Level.String()))

	return nil
}

func (a *App) initConfig(force bool) error {
	path, written, err := config.CreateDefaultConfig(force)
	if err != nil {
		return err
	}
	if written {
		fmt.Fprintf(a.stdout, "%s Created %s\n", SuccessStyle.Render("✓"), path)
		return nil
	}
	fmt.Fprintf(a.stdout, "%s %s already exists (use --force to overwrite)\n", WarningStyle.Render("!"), path)
	return nil
}

func (a *App) showConfigPath(ctx context.Context) error {
	_, path, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err == nil && path != "" {
		fmt.Fprintln(a.stdout, path)
		return nil
	}
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
	}

	defaultPath, dirErr := config.ConfigFilePath()
	if dirErr != nil {
		return dirErr
	}
	fmt.Fprintf(a.stdout, "%s %s\n", defaultPath, SubtitleStyle.Render("(not created)"))
	return nil
}
