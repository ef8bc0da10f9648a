package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/brandonbloom/venvboot/internal/bootstrap"
)

// ExitError asks main to exit with Code without printing anything. It
// carries the dispatched program's status and already-reported failures.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ReportError prints err for prog unless it is silent and returns the
// status to exit with.
func ReportError(w io.Writer, prog string, err error) int {
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	fmt.Fprintf(w, "%s: %v\n", prog, err)
	return bootstrap.ExitCode(err)
}

// reportMismatch prints the version gate diagnostic on stdout.
func reportMismatch(cmd interface{ OutOrStdout() io.Writer }, err error) error {
	var mismatch *bootstrap.VersionMismatchError
	if !errors.As(err, &mismatch) {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, paint(out, colorFail, mismatch.Error()))
	return &ExitError{Code: 1}
}

var (
	colorFail   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	colorGood   = color.New(color.FgGreen, color.Bold).SprintFunc()
	colorDetail = color.New(color.FgHiBlack).SprintFunc()
)

func paint(w io.Writer, fn func(...interface{}) string, s string) string {
	if !writerIsTerminal(w) {
		return s
	}
	return fn(s)
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
