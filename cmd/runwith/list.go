// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runwith/runwith/internal/inject"
	"github.com/runwith/runwith/internal/issue"
	"github.com/runwith/runwith/internal/registry"
	"github.com/runwith/runwith/pkg/runconfig"
)

var errNoConfigurations = errors.New("no eligible run configurations")

func newListCommand(app *App) *cobra.Command {
	var registryPath string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the run configurations that can take a file",
		Long: `List the permanent run configurations of an eligible type, numbered in
the order 'runwith run' offers them. Temporary configurations created by
earlier runs are not shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.list(cmd, registryPath)
		},
	}
	listCmd.Flags().StringVar(&registryPath, "registry", "", "run configurations file (default from config)")

	return listCmd
}

func (a *App) list(cmd *cobra.Command, registryPath string) error {
	cfg, err := a.loadConfig(cmd.Context())
	if err != nil {
		return a.report(err, nil)
	}
	reg, err := a.openRegistry(cfg, registryPath)
	if err != nil {
		return a.report(err, cfg)
	}

	eligible := registry.Eligible(reg, cfg.EligibleTypes)
	if len(eligible) == 0 {
		return a.report(newServiceError(errNoConfigurations, issue.NoConfigurationsId), cfg)
	}

	fmt.Fprintln(a.stdout, TitleStyle.Render("Run configurations"))
	fmt.Fprintln(a.stdout)
	writeList(a.stdout, eligible)
	return nil
}

// writeList prints configurations as a numbered list with their current
// arguments. Entries that cannot take a file are marked.
func writeList(w io.Writer, configs []runconfig.Configuration) {
	for i, c := range configs {
		line := indexStyle.Render(strconv.Itoa(i+1)+".") + " " + CmdStyle.Render(c.Name()) +
			" " + SubtitleStyle.Render("("+c.Type().String()+")")
		if compound, ok := c.(*runconfig.CompoundConfiguration); ok {
			line += " " + SubtitleStyle.Render("["+strings.Join(compound.MemberNames(), ", ")+"]")
		}
		if !inject.Supports(c) {
			fmt.Fprintln(w, line+" "+WarningStyle.Render("cannot take a file"))
			continue
		}
		if acc, _ := inject.Accessor(c); acc.ProgramArguments() != "" {
			line += " " + acc.ProgramArguments()
		}
		fmt.Fprintln(w, line)
	}
}
