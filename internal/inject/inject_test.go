// SPDX-License-Identifier: MPL-2.0

package inject

import (
	"testing"

	"github.com/runwith/runwith/pkg/runconfig"
)

// foreignConfiguration is a variant this package knows nothing about.
type foreignConfiguration struct {
	name      string
	temporary bool
	host      string
}

func (c *foreignConfiguration) Name() string { return c.name }
func (c *foreignConfiguration) SetName(name string) { c.name = name }
func (c *foreignConfiguration) Type() runconfig.TypeID { return "remote" }
func (c *foreignConfiguration) IsTemporary() bool { return c.temporary }
func (c *foreignConfiguration) SetTemporary(temporary bool) { c.temporary = temporary }

func TestInject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial string
		arg     string
		want    string
	}{
		{name: "no prior arguments", initial: "", arg: "src/a.txt", want: `"src/a.txt"`},
		{name: "existing flag", initial: "--flag", arg: "b c.txt", want: `--flag "b c.txt"`},
	}

	for _, tt := range tests {
		t.Run("application/"+tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := runconfig.NewApplicationConfiguration("app")
			cfg.Arguments = tt.initial
			if !Inject(cfg, tt.arg) {
				t.Fatal("Inject() = false, want true")
			}
			if cfg.ProgramArguments() != tt.want {
				t.Errorf("ProgramArguments() = %q, want %q", cfg.ProgramArguments(), tt.want)
			}
		})
		t.Run("script/"+tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := runconfig.NewScriptConfiguration("script")
			cfg.Opts.Arguments = tt.initial
			if !Inject(cfg, tt.arg) {
				t.Fatal("Inject() = false, want true")
			}
			if cfg.Opts.Arguments != tt.want {
				t.Errorf("Opts.Arguments = %q, want %q", cfg.Opts.Arguments, tt.want)
			}
		})
	}
}

func TestInject_Unsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  runconfig.Configuration
	}{
		{name: "compound", cfg: &runconfig.CompoundConfiguration{ConfigName: "all", Members: []string{"a"}}},
		{name: "script without options", cfg: &runconfig.ScriptConfiguration{ConfigName: "bare"}},
		{name: "foreign variant", cfg: &foreignConfiguration{name: "remote", host: "db:5005"}},
		{name: "nil configuration", cfg: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if Inject(tt.cfg, "file.txt") {
				t.Error("Inject() = true, want false")
			}
			if Supports(tt.cfg) {
				t.Error("Supports() = true, want false")
			}
		})
	}

	compound := &runconfig.CompoundConfiguration{ConfigName: "all", Members: []string{"a"}}
	Inject(compound, "file.txt")
	if len(compound.Members) != 1 || compound.Members[0] != "a" {
		t.Errorf("unsupported configuration was modified: %+v", compound)
	}
	bare := &runconfig.ScriptConfiguration{ConfigName: "bare"}
	Inject(bare, "file.txt")
	if bare.Opts != nil {
		t.Error("Inject() should not attach options to a configuration without them")
	}
}

func TestInject_NotIdempotent(t *testing.T) {
	t.Parallel()

	cfg := runconfig.NewApplicationConfiguration("app")
	Inject(cfg, "x.txt")
	Inject(cfg, "x.txt")

	if want := `"x.txt" "x.txt"`; cfg.Arguments != want {
		t.Errorf("Arguments = %q, want %q", cfg.Arguments, want)
	}
}

func TestAccessor_Paths(t *testing.T) {
	t.Parallel()

	if _, path := Accessor(runconfig.NewApplicationConfiguration("a")); path != PathDirect {
		t.Errorf("application path = %s, want direct", path)
	}
	if _, path := Accessor(runconfig.NewScriptConfiguration("s")); path != PathOptions {
		t.Errorf("script path = %s, want options", path)
	}
	if _, path := Accessor(runconfig.NewCompoundConfiguration("c")); path != PathNone {
		t.Errorf("compound path = %s, want none", path)
	}
}
