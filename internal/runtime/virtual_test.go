// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"strings"
	"testing"

	"github.com/runwith/runwith/pkg/runconfig"
)

func TestVirtualRuntime_Script(t *testing.T) {
	t.Parallel()

	cfg := &runconfig.ScriptConfiguration{
		ConfigName: "greet",
		Opts: &runconfig.ScriptOptions{
			Script:    `echo "hello $1|$2"`,
			Arguments: `first "/tmp/my file.txt"`,
		},
	}

	ctx, stdout, _ := newTestContext(cfg)
	result := NewVirtualRuntime().Execute(ctx)
	if !result.Success() {
		t.Fatalf("Execute() = %+v, want success", result)
	}
	if got := strings.TrimSpace(stdout.String()); got != "hello first|/tmp/my file.txt" {
		t.Errorf("stdout = %q", got)
	}
}

func TestVirtualRuntime_ApplicationRunsBuiltin(t *testing.T) {
	t.Parallel()

	cfg := runconfig.NewApplicationConfiguration("echo")
	cfg.EntryPoint = "echo"
	cfg.Arguments = `-n "a b" c`

	ctx, stdout, _ := newTestContext(cfg)
	result := NewVirtualRuntime().Execute(ctx)
	if !result.Success() {
		t.Fatalf("Execute() = %+v, want success", result)
	}
	if got := stdout.String(); got != "a b c" {
		t.Errorf("stdout = %q, want %q", got, "a b c")
	}
}

func TestVirtualRuntime_ExitCodeAndEnv(t *testing.T) {
	t.Parallel()

	cfg := &runconfig.ScriptConfiguration{
		ConfigName: "exit",
		Opts: &runconfig.ScriptOptions{
			Script: `echo "$` + ExecutionIDEnvVar + ` $GREETING"; exit 3`,
			Env:    map[string]string{"GREETING": "hi"},
		},
	}

	ctx, stdout, _ := newTestContext(cfg)
	ctx.ExecutionID = "exec-42"
	result := NewVirtualRuntime().Execute(ctx)
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
	if result.Error != nil {
		t.Errorf("Error = %v, want nil for a plain exit status", result.Error)
	}
	if got := strings.TrimSpace(stdout.String()); got != "exec-42 hi" {
		t.Errorf("stdout = %q, want %q", got, "exec-42 hi")
	}
}

func TestVirtualRuntime_ValidateSyntaxError(t *testing.T) {
	t.Parallel()

	cfg := &runconfig.ScriptConfiguration{ConfigName: "bad", Opts: &runconfig.ScriptOptions{Script: "if then fi ("}}
	ctx, _, _ := newTestContext(cfg)
	if err := NewVirtualRuntime().Validate(ctx); err == nil {
		t.Error("Validate() returned nil for invalid script")
	}
}

func TestVirtualRuntime_InjectedPathIsNotExpanded(t *testing.T) {
	t.Parallel()

	path := "/w/report$1 $(id).txt"
	cfg := &runconfig.ScriptConfiguration{
		ConfigName: "args",
		Opts: &runconfig.ScriptOptions{
			Script:    `echo "[$1]"`,
			Arguments: runconfig.AppendQuoted("", path),
		},
	}

	ctx, stdout, _ := newTestContext(cfg)
	result := NewVirtualRuntime().Execute(ctx)
	if !result.Success() {
		t.Fatalf("Execute() = %+v, want success", result)
	}
	if got, want := strings.TrimSpace(stdout.String()), "["+path+"]"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}
