// SPDX-License-Identifier: MPL-2.0

package runconfig

import "golang.org/x/exp/maps"

type (
	// ScriptOptions holds the launch settings of a ScriptConfiguration.
	ScriptOptions struct {
		Script           string            `json:"script,omitempty"`
		Interpreter      string            `json:"interpreter,omitempty"`
		Arguments        string            `json:"program_arguments,omitempty"`
		WorkingDirectory string            `json:"working_directory,omitempty"`
		Env              map[string]string `json:"env,omitempty"`
	}

	// ScriptConfiguration runs a shell script. Its program arguments are only
	// reachable through the OptionsHolder indirection.
	ScriptConfiguration struct {
		ConfigName string         `json:"name"`
		Temporary  bool           `json:"temporary"`
		Opts       *ScriptOptions `json:"options,omitempty"`
	}
)

// NewScriptConfiguration returns a script configuration with empty options attached.
func NewScriptConfiguration(name string) *ScriptConfiguration {
	return &ScriptConfiguration{ConfigName: name, Opts: &ScriptOptions{}}
}

func (o *ScriptOptions) ProgramArguments() string { return o.Arguments }
func (o *ScriptOptions) SetProgramArguments(args string) { o.Arguments = args }

func (c *ScriptConfiguration) Name() string { return c.ConfigName }
func (c *ScriptConfiguration) SetName(name string) { c.ConfigName = name }
func (c *ScriptConfiguration) Type() TypeID { return TypeScript }
func (c *ScriptConfiguration) IsTemporary() bool { return c.Temporary }
func (c *ScriptConfiguration) SetTemporary(temporary bool) { c.Temporary = temporary }

// Options returns the argument-bearing options, or nil when none are attached.
func (c *ScriptConfiguration) Options() ArgumentCapable {
	if c.Opts == nil {
		return nil
	}
	return c.Opts
}

// Environment returns the script's environment overlay.
func (c *ScriptConfiguration) Environment() map[string]string {
	if c.Opts == nil {
		return nil
	}
	return c.Opts.Env
}

// CopyTo copies the options of c into dst, replacing any options dst holds.
func (c *ScriptConfiguration) CopyTo(dst *ScriptConfiguration) {
	if c.Opts == nil {
		dst.Opts = nil
		return
	}
	opts := *c.Opts
	opts.Env = maps.Clone(c.Opts.Env)
	dst.Opts = &opts
}
