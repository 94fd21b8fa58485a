// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"io"
	goruntime "runtime"
	"syscall"
	"time"

	"github.com/creack/pty"
)

// InteractiveRuntime runs configurations attached to a pseudo-terminal so
// programs that check for a TTY behave as they would in a terminal.
type InteractiveRuntime struct {
	native *NativeRuntime
}

// NewInteractiveRuntime creates an interactive runtime.
func NewInteractiveRuntime() *InteractiveRuntime {
	return &InteractiveRuntime{native: NewNativeRuntime()}
}

// Name returns the runtime name.
func (r *InteractiveRuntime) Name() string {
	return string(ExecutorInteractive)
}

// Available reports whether pseudo-terminals are supported on this platform.
func (r *InteractiveRuntime) Available() bool {
	return goruntime.GOOS != "windows"
}

// Validate applies the native runtime's checks.
func (r *InteractiveRuntime) Validate(ctx *ExecutionContext) error {
	return r.native.Validate(ctx)
}

// Execute starts the process on a new pty, copies its output to Stdout and
// forwards Stdin until the process exits.
func (r *InteractiveRuntime) Execute(ctx *ExecutionContext) *Result {
	l, err := resolveLaunch(ctx)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	cmd := l.command(execContext(ctx), ctx.Configuration.Name())
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to start %q on a pty: %w", ctx.Configuration.Name(), err)}
	}
	defer func() { _ = ptmx.Close() }()

	done := make(chan struct{})
	var forwarded <-chan struct{}
	if ctx.Stdin != nil {
		forwarded = forwardInput(ctx.Stdin, ptmx, done)
	}
	defer stopForwarding(ctx.Stdin, done, forwarded)

	// Reading the pty master fails with EIO once the child side closes.
	if ctx.Stdout != nil {
		if _, err := io.Copy(ctx.Stdout, ptmx); err != nil && !errors.Is(err, syscall.EIO) {
			_ = cmd.Wait()
			return &Result{ExitCode: 1, Error: fmt.Errorf("failed to read pty output: %w", err)}
		}
	}

	return resultFromError(cmd.Wait())
}

// forwardInput copies in to the pty until in ends, a write fails or done is
// closed. The returned channel is closed when copying stops.
func forwardInput(in io.Reader, ptmx io.Writer, done <-chan struct{}) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		buf := make([]byte, 4096)
		for {
			n, err := in.Read(buf)
			select {
			case <-done:
				return
			default:
			}
			if n > 0 {
				if _, werr := ptmx.Write(buf[:n]); werr != nil {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return finished
}

// stopForwarding ends input forwarding after the process exits. A Read that
// is already blocked can only be interrupted when in supports read deadlines
// (pipes and terminals opened by os); for other readers the goroutine exits
// as soon as that Read returns, discarding what it read.
func stopForwarding(in io.Reader, done chan struct{}, forwarded <-chan struct{}) {
	close(done)
	if forwarded == nil {
		return
	}
	d, ok := in.(interface{ SetReadDeadline(time.Time) error })
	if !ok || d.SetReadDeadline(time.Now()) != nil {
		return
	}
	<-forwarded
	_ = d.SetReadDeadline(time.Time{})
}
