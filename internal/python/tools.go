package python

import (
	"errors"
	"fmt"
	"os/exec"
)

// ToolError reports venv or pip exiting unsuccessfully. Code uses the same
// convention as dispatch: the exit status, or 128+N after signal N.
type ToolError struct {
	Tool string
	Code int
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ExitCode is the status venvboot exits with when this tool fails.
func (e *ToolError) ExitCode() int {
	return e.Code
}

func toolError(tool string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ToolError{Tool: tool, Code: exitStatus(exitErr.ProcessState), Err: err}
	}
	return fmt.Errorf("%s: %w", tool, err)
}
