// SPDX-License-Identifier: MPL-2.0

package transient

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/runwith/runwith/internal/clone"
	"github.com/runwith/runwith/internal/registry"
	"github.com/runwith/runwith/internal/runtime"
	"github.com/runwith/runwith/pkg/runconfig"
)

type (
	execution struct {
		name      string
		args      string
		temporary bool
		executor  runtime.ExecutorID
	}

	// recordingEngine captures what the coordinator hands to the engine.
	recordingEngine struct {
		calls  []execution
		err    error
		panics bool
		// during runs inside Execute after the call is recorded.
		during func(cfg runconfig.Configuration)
	}

	// brittleConfiguration accepts a limited number of argument writes and
	// panics afterwards.
	brittleConfiguration struct {
		runconfig.ApplicationConfiguration
		writesLeft int
	}

	fakeCloner struct {
		cfg    runconfig.Configuration
		report clone.Report
		err    error
	}
)

func (e *recordingEngine) Execute(_ context.Context, cfg runconfig.Configuration, executor runtime.ExecutorID) error {
	call := execution{name: cfg.Name(), temporary: cfg.IsTemporary(), executor: executor}
	if acc, ok := cfg.(runconfig.ArgumentCapable); ok {
		call.args = acc.ProgramArguments()
	} else if h, ok := cfg.(runconfig.OptionsHolder); ok && h.Options() != nil {
		call.args = h.Options().ProgramArguments()
	}
	e.calls = append(e.calls, call)
	if e.during != nil {
		e.during(cfg)
	}
	if e.panics {
		panic("engine exploded")
	}
	return e.err
}

func (b *brittleConfiguration) SetProgramArguments(args string) {
	if b.writesLeft == 0 {
		panic("read-only")
	}
	b.writesLeft--
	b.ApplicationConfiguration.SetProgramArguments(args)
}

func (f *fakeCloner) Clone(runconfig.Configuration, string) (runconfig.Configuration, clone.Report, error) {
	return f.cfg, f.report, f.err
}

func newApp(name, args string) *runconfig.ApplicationConfiguration {
	cfg := runconfig.NewApplicationConfiguration(name)
	cfg.EntryPoint = "tool"
	cfg.Arguments = args
	return cfg
}

func newCoordinator(t *testing.T, engine runtime.Engine, configs ...runconfig.Configuration) (*Coordinator, *registry.Memory, *bytes.Buffer) {
	t.Helper()
	reg, err := registry.NewMemory(configs...)
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	return New(reg, engine, WithLogger(logger)), reg, &logs
}

func wantHistory(t *testing.T, tx *Transaction, want ...State) {
	t.Helper()
	if !slices.Equal(tx.History, want) {
		t.Errorf("History = %v, want %v", tx.History, want)
	}
}

func TestCoordinator_CloneMode(t *testing.T) {
	t.Parallel()

	src := newApp("Server", "--flag")
	engine := &recordingEngine{}
	c, reg, _ := newCoordinator(t, engine, src)

	tx, err := c.Run(context.Background(), Request{
		Configuration: src,
		File:          File{Path: "/work/b c.txt", Name: "b c.txt"},
		Mode:          ModeClone,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantHistory(t, tx, StateIdle, StateSelecting, StatePreparing, StateExecuting, StateDone)
	if src.Arguments != "--flag" {
		t.Errorf("source arguments = %q, want unchanged %q", src.Arguments, "--flag")
	}
	if src.IsTemporary() {
		t.Error("source marked temporary")
	}

	want := execution{name: "Server (with b c.txt)", args: `--flag "/work/b c.txt"`, temporary: true, executor: runtime.ExecutorRun}
	if len(engine.calls) != 1 || engine.calls[0] != want {
		t.Fatalf("engine calls = %+v, want [%+v]", engine.calls, want)
	}

	registered, err := reg.Get("Server (with b c.txt)")
	if err != nil {
		t.Fatalf("clone not registered: %v", err)
	}
	if !registered.IsTemporary() {
		t.Error("registered clone is not temporary")
	}
	if sel := reg.Selected(); sel == nil || sel.Name() != registered.Name() {
		t.Errorf("Selected() = %v, want the clone", sel)
	}
	if tx.CloneReport.Strategy != clone.StrategyTyped {
		t.Errorf("clone strategy = %v, want typed", tx.CloneReport.Strategy)
	}
}

func TestCoordinator_CloneModeRepeatedReplacesTemporary(t *testing.T) {
	t.Parallel()

	src := newApp("Server", "")
	engine := &recordingEngine{}
	c, reg, _ := newCoordinator(t, engine, src)

	req := Request{Configuration: src, File: File{Path: "src/a.txt"}, Mode: ModeClone}
	for range 2 {
		if _, err := c.Run(context.Background(), req); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}

	if got := len(reg.All()); got != 2 {
		t.Errorf("registry has %d entries, want 2 (source + one temporary)", got)
	}
	for _, call := range engine.calls {
		if call.args != `"src/a.txt"` {
			t.Errorf("executed args = %q, want %q", call.args, `"src/a.txt"`)
		}
		if call.name != "Server (with a.txt)" {
			t.Errorf("executed name = %q", call.name)
		}
	}
}

func TestCoordinator_InPlaceRestores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		engine *recordingEngine
	}{
		{"success", &recordingEngine{}},
		{"execution error", &recordingEngine{err: errors.New("exit status 1")}},
		{"execution panic", &recordingEngine{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newApp("Server", "--flag")
			c, reg, _ := newCoordinator(t, tt.engine, src)

			tx, err := c.Run(context.Background(), Request{
				Configuration: src,
				File:          File{Path: "b c.txt"},
				Mode:          ModeInPlace,
				Executor:      runtime.ExecutorVirtual,
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			wantHistory(t, tx, StateIdle, StateSelecting, StatePreparing, StateExecuting, StateFinalizing, StateDone)
			if len(tt.engine.calls) != 1 || tt.engine.calls[0].args != `--flag "b c.txt"` {
				t.Errorf("engine calls = %+v", tt.engine.calls)
			}
			if tt.engine.calls[0].executor != runtime.ExecutorVirtual {
				t.Errorf("executor = %q, want virtual", tt.engine.calls[0].executor)
			}
			if src.Arguments != "--flag" {
				t.Errorf("arguments after restore = %q, want %q", src.Arguments, "--flag")
			}
			if tx.Snapshot != "--flag" {
				t.Errorf("Snapshot = %q", tx.Snapshot)
			}
			if (tt.engine.err != nil || tt.engine.panics) != (tx.ExecErr != nil) {
				t.Errorf("ExecErr = %v", tx.ExecErr)
			}
			if tx.RestoreErr != nil {
				t.Errorf("RestoreErr = %v", tx.RestoreErr)
			}
			if len(reg.All()) != 1 {
				t.Errorf("in-place mode registered a configuration")
			}
		})
	}
}

func TestCoordinator_InPlaceScriptOptions(t *testing.T) {
	t.Parallel()

	src := &runconfig.ScriptConfiguration{ConfigName: "lint", Opts: &runconfig.ScriptOptions{Script: "lint"}}
	engine := &recordingEngine{}
	c, _, _ := newCoordinator(t, engine, src)

	if _, err := c.Run(context.Background(), Request{Configuration: src, File: File{Path: "src/a.txt"}, Mode: ModeInPlace}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if engine.calls[0].args != `"src/a.txt"` {
		t.Errorf("executed args = %q", engine.calls[0].args)
	}
	if src.Opts.Arguments != "" {
		t.Errorf("arguments after restore = %q, want empty", src.Opts.Arguments)
	}
}

func TestCoordinator_RestoreFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	t.Run("setter panics", func(t *testing.T) {
		t.Parallel()

		src := &brittleConfiguration{ApplicationConfiguration: *newApp("Brittle", "--keep"), writesLeft: 1}
		c, _, logs := newCoordinator(t, &recordingEngine{}, src)

		tx, err := c.Run(context.Background(), Request{Configuration: src, File: File{Path: "x"}, Mode: ModeInPlace})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !errors.Is(tx.RestoreErr, ErrRestoreFailed) {
			t.Errorf("RestoreErr = %v, want ErrRestoreFailed", tx.RestoreErr)
		}
		if tx.State() != StateDone {
			t.Errorf("State() = %v, want done", tx.State())
		}
		if !strings.Contains(logs.String(), "could not restore program arguments") {
			t.Errorf("restore failure not logged: %s", logs.String())
		}
	})

	t.Run("accessor disappears", func(t *testing.T) {
		t.Parallel()

		src := &runconfig.ScriptConfiguration{ConfigName: "s", Opts: &runconfig.ScriptOptions{Script: "true"}}
		engine := &recordingEngine{during: func(cfg runconfig.Configuration) {
			cfg.(*runconfig.ScriptConfiguration).Opts = nil
		}}
		c, _, _ := newCoordinator(t, engine, src)

		tx, err := c.Run(context.Background(), Request{Configuration: src, File: File{Path: "x"}, Mode: ModeInPlace})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !errors.Is(tx.RestoreErr, ErrRestoreFailed) {
			t.Errorf("RestoreErr = %v, want ErrRestoreFailed", tx.RestoreErr)
		}
	})
}

func TestCoordinator_Unsupported(t *testing.T) {
	t.Parallel()

	compound := &runconfig.CompoundConfiguration{ConfigName: "All", Members: []string{"Server"}}
	bare := &runconfig.ScriptConfiguration{ConfigName: "Bare"}

	tests := []struct {
		name string
		cfg  runconfig.Configuration
		mode Mode
	}{
		{"compound clone", compound, ModeClone},
		{"compound in place", compound, ModeInPlace},
		{"script without options clone", bare, ModeClone},
		{"script without options in place", bare, ModeInPlace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := &recordingEngine{}
			c, reg, _ := newCoordinator(t, engine, tt.cfg)
			before := len(reg.All())

			tx, err := c.Run(context.Background(), Request{Configuration: tt.cfg, File: File{Path: "a.txt"}, Mode: tt.mode})
			if !errors.Is(err, ErrUnsupported) {
				t.Fatalf("Run() error = %v, want ErrUnsupported", err)
			}
			var failure *FailureError
			if !errors.As(err, &failure) || failure.Reason != ReasonUnsupported || failure.Configuration != tt.cfg.Name() {
				t.Errorf("failure = %+v", failure)
			}
			if !strings.Contains(err.Error(), tt.cfg.Name()) {
				t.Errorf("message %q does not name the configuration", err.Error())
			}
			wantHistory(t, tx, StateIdle, StateSelecting, StatePreparing, StateFailed)
			if len(engine.calls) != 0 {
				t.Errorf("engine called %d times, want 0", len(engine.calls))
			}
			if len(reg.All()) != before {
				t.Error("failed transaction registered a configuration")
			}
		})
	}
}

func TestCoordinator_RejectsDirectory(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{ModeClone, ModeInPlace} {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()

			src := newApp("Server", "--flag")
			engine := &recordingEngine{}
			c, reg, _ := newCoordinator(t, engine, src)

			tx, err := c.Run(context.Background(), Request{
				Configuration: src,
				File:          File{Path: "/work/src", Name: "src", IsDir: true},
				Mode:          mode,
			})
			if !errors.Is(err, ErrDirectory) || errors.Is(err, ErrUnsupported) {
				t.Fatalf("Run() error = %v, want ErrDirectory only", err)
			}
			var failure *FailureError
			if !errors.As(err, &failure) || failure.Reason != ReasonDirectory {
				t.Errorf("failure = %+v, want ReasonDirectory", failure)
			}
			if !strings.Contains(err.Error(), "Server") {
				t.Errorf("message %q does not name the configuration", err.Error())
			}
			wantHistory(t, tx, StateIdle, StateSelecting, StateFailed)
			if len(engine.calls) != 0 || len(reg.All()) != 1 || src.Arguments != "--flag" {
				t.Errorf("directory request had side effects: calls=%d registry=%d args=%q",
					len(engine.calls), len(reg.All()), src.Arguments)
			}
		})
	}
}

func TestCoordinator_CloneNameAvoidsPermanentConfiguration(t *testing.T) {
	t.Parallel()

	src := newApp("Server", "")
	taken := newApp("Server (with a.txt)", "--keep")
	engine := &recordingEngine{}
	c, reg, _ := newCoordinator(t, engine, src, taken)

	req := Request{Configuration: src, File: File{Path: "/w/a.txt"}, Mode: ModeClone}
	for range 2 {
		if _, err := c.Run(context.Background(), req); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}

	for _, call := range engine.calls {
		if call.name != "Server (with a.txt) (2)" {
			t.Errorf("executed %q, want the numbered clone name", call.name)
		}
	}
	if taken.Arguments != "--keep" || taken.IsTemporary() {
		t.Errorf("permanent configuration changed: %+v", taken)
	}
	if got := len(reg.All()); got != 3 {
		t.Errorf("registry has %d entries, want source, permanent and one temporary", got)
	}
}

func TestCoordinator_InvalidRequest(t *testing.T) {
	t.Parallel()

	engine := &recordingEngine{}
	c, _, _ := newCoordinator(t, engine)

	tests := []struct {
		name string
		req  Request
	}{
		{"no configuration", Request{File: File{Path: "a"}}},
		{"no file", Request{Configuration: newApp("x", "")}},
		{"unknown mode", Request{Configuration: newApp("x", ""), File: File{Path: "a"}, Mode: Mode(9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := c.Run(context.Background(), tt.req)
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("Run() error = %v, want ErrUnsupported", err)
			}
			if tx.State() != StateFailed {
				t.Errorf("State() = %v, want failed", tx.State())
			}
		})
	}
	if len(engine.calls) != 0 {
		t.Errorf("engine called for invalid requests")
	}
}

func TestCoordinator_DegradedCloneIsLogged(t *testing.T) {
	t.Parallel()

	src := newApp("Server", "--flag")
	degraded := runconfig.NewApplicationConfiguration("Server (with a.txt)")
	cloner := &fakeCloner{
		cfg: degraded,
		report: clone.Report{
			Strategy: clone.StrategyDefaults,
			Degraded: true,
			Causes:   []error{errors.New("decode failed")},
		},
	}

	reg, err := registry.NewMemory(src)
	if err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	engine := &recordingEngine{}
	c := New(reg, engine, WithCloner(cloner), WithLogger(log.New(&logs)))

	tx, err := c.Run(context.Background(), Request{Configuration: src, File: File{Path: "a.txt"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !tx.CloneReport.Degraded {
		t.Error("CloneReport.Degraded = false")
	}
	if len(engine.calls) != 1 || engine.calls[0].args != `"a.txt"` {
		t.Errorf("engine calls = %+v", engine.calls)
	}
	if !strings.Contains(logs.String(), "clone created with default settings") {
		t.Errorf("degraded clone not logged at warn: %q", logs.String())
	}
}

func TestCoordinator_CloneError(t *testing.T) {
	t.Parallel()

	src := newApp("Server", "")
	reg, err := registry.NewMemory(src)
	if err != nil {
		t.Fatal(err)
	}
	engine := &recordingEngine{}
	c := New(reg, engine, WithCloner(&fakeCloner{err: clone.ErrUnsupported}))

	tx, err := c.Run(context.Background(), Request{Configuration: src, File: File{Path: "a"}})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Run() error = %v", err)
	}
	var failure *FailureError
	if errors.As(err, &failure) && !errors.Is(failure.Cause, clone.ErrUnsupported) {
		t.Errorf("Cause = %v, want clone.ErrUnsupported", failure.Cause)
	}
	if tx.State() != StateFailed || len(engine.calls) != 0 {
		t.Errorf("State() = %v, calls = %d", tx.State(), len(engine.calls))
	}
}
