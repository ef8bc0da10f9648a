package bootstrap

import (
	"errors"
	"fmt"

	"github.com/brandonbloom/venvboot/internal/pyversion"
)

// Step names used in StepError and trace regions.
const (
	StepVersion  = "check interpreter version"
	StepCreate   = "create environment"
	StepUpgrade  = "upgrade installer"
	StepInstall  = "install dependencies"
	StepDispatch = "dispatch"
)

// ErrNotDirectory indicates the environment path exists but is a file.
var ErrNotDirectory = errors.New("environment path exists and is not a directory")

// VersionMismatchError reports an interpreter older than the required minimum.
type VersionMismatchError struct {
	Required pyversion.Version
	Found    pyversion.Version
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("Python %s or higher is required, found %s", e.Required, e.Found)
}

// StepError wraps the failure of one provisioning step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type exitCoder interface {
	ExitCode() int
}

// ExitCode maps err to the status venvboot should exit with. Tool failures
// keep the status their ExitCode method reports; anything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var mismatch *VersionMismatchError
	if errors.As(err, &mismatch) {
		return 1
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		if code := ec.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
