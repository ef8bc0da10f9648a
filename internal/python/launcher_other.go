//go:build !unix

package python

import (
	"os"

	"github.com/brandonbloom/venvboot/internal/activation"
)

// Console interrupts reach the whole process group; catching them keeps
// venvboot alive until the child has exited.
var forwardedSignals = []os.Signal{os.Interrupt}

func exitStatus(ps *os.ProcessState) int {
	return ps.ExitCode()
}

func replaceProcess(activation.Context, []string) error {
	return ErrReplaceUnsupported
}
