package gitutil

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoGit indicates git is not installed.
var ErrNoGit = errors.New("git not found on PATH")

// Run executes git within dir and returns trimmed stdout.
func Run(dir string, args ...string) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", ErrNoGit
	}
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %v\n%s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// TopLevel reports the root of the worktree containing dir.
func TopLevel(dir string) (string, error) {
	out, err := Run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", fmt.Errorf("git rev-parse --show-toplevel: empty output in %s", dir)
	}
	return out, nil
}

// IsNotRepository reports whether err came from running git outside a repo.
func IsNotRepository(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "not a git repository")
}
