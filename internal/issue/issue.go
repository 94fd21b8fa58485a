// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ConfigLoadFailedId Id = iota + 1
	RegistryNotFoundId
	RegistryParseErrorId
	NoConfigurationsId
	ConfigurationNotFoundId
	UnsupportedConfigurationId
	ExecutorNotAvailableId
	ExecutionFailedId
	DirectoryNotSupportedId
)

type (
	// Id identifies a catalog entry.
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is a catalog entry rendered for the user when a request fails.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue as terminal Markdown using the glamour style at stylePath
// ("auto", "dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

runwith could not read its configuration file.

## Things you can try:
- Show the effective configuration:
~~~
$ runwith config show
~~~
- Recreate the default configuration:
~~~
$ runwith config init --force
~~~`,
	}

	registryNotFoundIssue = &Issue{
		id: RegistryNotFoundId,
		mdMsg: `
# No run configurations file found!

runwith reads run configurations from ` + "`runconfigs.cue`" + ` (or ` + "`runconfigs.toml`" + `)
in the current directory unless ` + "`--registry`" + ` or ` + "`registry_file`" + ` says otherwise.

## Example runconfigs.cue:
~~~cue
configurations: [
	{
		name:              "server"
		type:              "application"
		entry_point:       "./bin/server"
		program_arguments: "--verbose"
	},
]
~~~`,
	}

	registryParseErrorIssue = &Issue{
		id: RegistryParseErrorId,
		mdMsg: `
# Failed to parse run configurations!

## Common issues:
- ` + "`type`" + ` must be one of application, script or compound
- application entries need an ` + "`entry_point`" + `
- script entries need a ` + "`script`" + `
- compound entries need at least one member`,
	}

	noConfigurationsIssue = &Issue{
		id: NoConfigurationsId,
		mdMsg: `
# No run configurations available

There is no permanent run configuration of an eligible type.
Temporary configurations created by earlier runs are never offered.

## Things you can try:
- Add an application or script entry to your runconfigs file
- Widen ` + "`eligible_types`" + ` in your configuration`,
	}

	configurationNotFoundIssue = &Issue{
		id: ConfigurationNotFoundId,
		mdMsg: `
# Run configuration not found

## Things you can try:
- List the configurations that can be used:
~~~
$ runwith list
~~~`,
	}

	unsupportedConfigurationIssue = &Issue{
		id: UnsupportedConfigurationId,
		mdMsg: `
# Configuration not supported

The selected run configuration has no program-arguments setting, so the file
path cannot be passed to it. Nothing was executed.

## Things you can try:
- Pick an application or script configuration instead`,
	}

	executorNotAvailableIssue = &Issue{
		id: ExecutorNotAvailableId,
		mdMsg: `
# Executor not available

## Things you can try:
- Use the default executor: ` + "`--executor run`" + `
- The ` + "`interactive`" + ` executor needs a platform with pseudo-terminal support`,
	}

	executionFailedIssue = &Issue{
		id: ExecutionFailedId,
		mdMsg: `
# Execution failed

The configuration was prepared but the program did not run successfully.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to see the resolved command line
- Check ` + "`entry_point`" + ` and ` + "`working_directory`" + ` in your runconfigs file`,
	}

	directoryNotSupportedIssue = &Issue{
		id: DirectoryNotSupportedId,
		mdMsg: `
# Directories cannot be passed

Only file paths are appended to run configurations. Nothing was executed.

## Things you can try:
- Pass a file inside the directory instead`,
	}

	issues = []*Issue{
		configLoadFailedIssue,
		registryNotFoundIssue,
		registryParseErrorIssue,
		noConfigurationsIssue,
		configurationNotFoundIssue,
		unsupportedConfigurationIssue,
		executorNotAvailableIssue,
		executionFailedIssue,
		directoryNotSupportedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	return slices.Clone(issues)
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	idx := slices.IndexFunc(issues, func(i *Issue) bool { return i.id == id })
	if idx < 0 {
		return nil
	}
	return issues[idx]
}
