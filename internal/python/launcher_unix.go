//go:build unix

package python

import (
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/brandonbloom/venvboot/internal/activation"
)

var forwardedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}

// exitStatus follows the shell convention of 128+N for a child killed by
// signal N.
func exitStatus(ps *os.ProcessState) int {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		slog.Debug("dispatched process killed", "signal", describeSignal(ws.Signal()))
		return 128 + int(ws.Signal())
	}
	return ps.ExitCode()
}

func replaceProcess(act activation.Context, args []string) error {
	argv := append([]string{act.Python}, args...)
	if err := unix.Exec(act.Python, argv, act.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", act.Python, err)
	}
	return nil
}

func describeSignal(sig syscall.Signal) string {
	name := unix.SignalName(sig)
	if name == "" {
		return fmt.Sprintf("signal %d", sig)
	}
	return fmt.Sprintf("%s (%d)", name, sig)
}
