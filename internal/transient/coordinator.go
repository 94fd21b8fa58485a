// SPDX-License-Identifier: MPL-2.0

package transient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/runwith/runwith/internal/clone"
	"github.com/runwith/runwith/internal/inject"
	"github.com/runwith/runwith/internal/registry"
	"github.com/runwith/runwith/internal/runtime"
	"github.com/runwith/runwith/pkg/runconfig"
)

type (
	// Cloner produces independent copies of configurations.
	Cloner interface {
		Clone(src runconfig.Configuration, name string) (runconfig.Configuration, clone.Report, error)
	}

	// Coordinator runs transactions against an explicit registry, cloner and
	// execution engine. It is safe for concurrent use; transactions are serialized.
	Coordinator struct {
		mu       sync.Mutex
		registry registry.Registry
		cloner   Cloner
		engine   runtime.Engine
		logger   *log.Logger
	}

	// Option configures a Coordinator.
	Option func(*Coordinator)
)

// WithLogger sets the coordinator's logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithCloner replaces the default clone.Cloner built from the registry's factories.
func WithCloner(cloner Cloner) Option {
	return func(c *Coordinator) { c.cloner = cloner }
}

// New creates a Coordinator.
func New(reg registry.Registry, engine runtime.Engine, opts ...Option) *Coordinator {
	c := &Coordinator{
		registry: reg,
		engine:   engine,
		cloner:   clone.New(reg),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes one transaction. It returns a *FailureError when the
// configuration cannot take a file argument; execution errors are recorded
// in Transaction.ExecErr and do not fail the transaction.
func (c *Coordinator) Run(ctx context.Context, req Request) (*Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := &Transaction{
		Mode:     req.Mode,
		Executor: req.Executor,
		Argument: req.File.Path,
		Source:   req.Configuration,
		History:  []State{StateIdle},
	}
	if tx.Executor == "" {
		tx.Executor = runtime.ExecutorRun
	}

	tx.transition(StateSelecting)
	if req.Configuration == nil {
		return c.fail(tx, ReasonUnsupported, "", errors.New("no configuration selected"))
	}
	if req.File.Path == "" {
		return c.fail(tx, ReasonUnsupported, req.Configuration.Name(), errors.New("no file selected"))
	}
	if req.File.IsDir {
		return c.fail(tx, ReasonDirectory, req.Configuration.Name(), fmt.Errorf("%s is a directory", req.File.Path))
	}

	tx.transition(StatePreparing)
	var err error
	switch req.Mode {
	case ModeClone:
		err = c.prepareClone(tx, req.File)
	case ModeInPlace:
		err = c.prepareInPlace(tx)
	default:
		err = &InvalidModeError{Value: req.Mode.String()}
	}
	if err != nil {
		return c.fail(tx, ReasonUnsupported, req.Configuration.Name(), err)
	}

	tx.transition(StateExecuting)
	tx.ExecErr = c.execute(ctx, tx)
	if tx.ExecErr != nil {
		c.logger.Info("execution reported an error", "configuration", tx.Target().Name(), "error", tx.ExecErr)
	}

	if req.Mode == ModeInPlace {
		tx.transition(StateFinalizing)
		c.restore(tx)
	}

	tx.transition(StateDone)
	return tx, nil
}

func (c *Coordinator) prepareClone(tx *Transaction, file File) error {
	name := uniqueCloneName(c.registry, tx.Source.Name(), file)
	cfg, report, err := c.cloner.Clone(tx.Source, name)
	tx.CloneReport = report
	if err != nil {
		return err
	}
	if report.Degraded {
		c.logger.Warn("clone created with default settings",
			"error", fmt.Errorf("%w: %w", ErrCloneDegraded, report.Err()),
			"source", tx.Source.Name(), "clone", name)
	} else {
		c.logger.Debug("cloned configuration", "source", tx.Source.Name(), "clone", name, "strategy", report.Strategy)
	}

	if !inject.Inject(cfg, tx.Argument) {
		return fmt.Errorf("type %q exposes no program arguments", cfg.Type())
	}
	cfg.SetTemporary(true)

	if err := c.registry.Add(cfg); err != nil {
		return err
	}
	if err := c.registry.Select(cfg); err != nil {
		return err
	}
	tx.Clone = cfg
	return nil
}

func (c *Coordinator) prepareInPlace(tx *Transaction) error {
	acc, path := inject.Accessor(tx.Source)
	if acc == nil {
		return fmt.Errorf("type %q exposes no program arguments", tx.Source.Type())
	}
	tx.Snapshot = acc.ProgramArguments()
	if !inject.Inject(tx.Source, tx.Argument) {
		return fmt.Errorf("type %q rejected argument injection", tx.Source.Type())
	}
	c.logger.Debug("injected in place", "configuration", tx.Source.Name(), "access_path", path)
	return nil
}

// execute hands the prepared configuration to the engine. A panic in the
// engine is converted to an error so restoration still runs.
func (c *Coordinator) execute(ctx context.Context, tx *Transaction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("execution panicked: %v", r)
		}
	}()
	return c.engine.Execute(ctx, tx.Target(), tx.Executor)
}

// restore writes the snapshot back with a single write. Failures are logged
// and recorded on the transaction only.
func (c *Coordinator) restore(tx *Transaction) {
	defer func() {
		if r := recover(); r != nil {
			tx.RestoreErr = fmt.Errorf("%w: %v", ErrRestoreFailed, r)
		}
		if tx.RestoreErr != nil {
			c.logger.Warn("could not restore program arguments",
				"configuration", tx.Source.Name(), "error", tx.RestoreErr)
		}
	}()

	acc, _ := inject.Accessor(tx.Source)
	if acc == nil {
		tx.RestoreErr = fmt.Errorf("%w: program arguments no longer accessible", ErrRestoreFailed)
		return
	}
	acc.SetProgramArguments(tx.Snapshot)
}

func (c *Coordinator) fail(tx *Transaction, reason Reason, name string, cause error) (*Transaction, error) {
	tx.transition(StateFailed)
	c.logger.Debug("transaction failed", "configuration", name, "reason", reason, "error", cause)
	return tx, &FailureError{Reason: reason, Configuration: name, Cause: cause}
}
