package python

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"github.com/brandonbloom/venvboot/internal/activation"
)

// ErrReplaceUnsupported is returned by replace mode on platforms without exec(2).
var ErrReplaceUnsupported = errors.New("process replacement is not supported on this platform")

// Launcher starts the environment interpreter with the caller's arguments.
type Launcher struct {
	// Replace swaps the current process image for the interpreter instead of
	// running it as a child.
	Replace bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Dispatch runs the interpreter and returns its exit status. In replace
// mode it only returns on failure.
func (l *Launcher) Dispatch(ctx context.Context, act activation.Context, args []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 1, err
	}
	if l.Replace {
		return 1, replaceProcess(act, args)
	}

	// Interrupts are relayed to the child, which decides how to exit.
	cmd := exec.Command(act.Python, args...)
	cmd.Env = act.Environ()
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if l.Stdin != nil {
		cmd.Stdin = l.Stdin
	}
	if l.Stdout != nil {
		cmd.Stdout = l.Stdout
	}
	if l.Stderr != nil {
		cmd.Stderr = l.Stderr
	}

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("start %s: %w", act.Python, err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, forwardedSignals...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	signal.Stop(signals)
	close(done)

	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr.ProcessState), nil
	}
	return 1, err
}
