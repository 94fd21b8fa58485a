// SPDX-License-Identifier: MPL-2.0

package runconfig

import "golang.org/x/exp/maps"

// ApplicationConfiguration launches an executable entry point.
// Program arguments are reachable through the direct ArgumentCapable accessor.
type ApplicationConfiguration struct {
	ConfigName       string            `json:"name"`
	Temporary        bool              `json:"temporary"`
	EntryPoint       string            `json:"entry_point,omitempty"`
	Arguments        string            `json:"program_arguments,omitempty"`
	WorkingDirectory string            `json:"working_directory,omitempty"`
	Env              map[string]string `json:"env,omitempty"`
	PassParentEnv    bool              `json:"pass_parent_env"`
	Module           string            `json:"module,omitempty"`
}

// NewApplicationConfiguration returns an application configuration with default settings.
func NewApplicationConfiguration(name string) *ApplicationConfiguration {
	return &ApplicationConfiguration{ConfigName: name, PassParentEnv: true}
}

func (c *ApplicationConfiguration) Name() string { return c.ConfigName }
func (c *ApplicationConfiguration) SetName(name string) { c.ConfigName = name }
func (c *ApplicationConfiguration) Type() TypeID { return TypeApplication }
func (c *ApplicationConfiguration) IsTemporary() bool { return c.Temporary }
func (c *ApplicationConfiguration) SetTemporary(temporary bool) { c.Temporary = temporary }

// ProgramArguments returns the raw program-arguments string.
func (c *ApplicationConfiguration) ProgramArguments() string { return c.Arguments }

// SetProgramArguments replaces the program-arguments string.
func (c *ApplicationConfiguration) SetProgramArguments(args string) { c.Arguments = args }

// Environment returns the configured environment overlay.
func (c *ApplicationConfiguration) Environment() map[string]string { return c.Env }

// CopyTo copies every setting except name and temporary flag into dst.
// The environment map is copied so dst never aliases c.
func (c *ApplicationConfiguration) CopyTo(dst *ApplicationConfiguration) {
	dst.EntryPoint = c.EntryPoint
	dst.Arguments = c.Arguments
	dst.WorkingDirectory = c.WorkingDirectory
	dst.Env = maps.Clone(c.Env)
	dst.PassParentEnv = c.PassParentEnv
	dst.Module = c.Module
}
