package python

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/brandonbloom/venvboot/internal/activation"
)

// Pip installs packages with the environment interpreter's pip module.
type Pip struct {
	IndexURL      string
	ExtraIndexURL string
	NoCache       bool
	Quiet         bool
	// Output receives pip's stdout and stderr. Nil means os.Stderr.
	Output io.Writer
}

// UpgradeInstaller upgrades pip itself inside the environment.
func (p *Pip) UpgradeInstaller(ctx context.Context, act activation.Context) error {
	return p.install(ctx, act, "--upgrade", "pip")
}

// InstallManifest installs every requirement listed in manifest. A missing
// manifest is reported by pip itself.
func (p *Pip) InstallManifest(ctx context.Context, act activation.Context, manifest string) error {
	return p.install(ctx, act, "-r", manifest)
}

func (p *Pip) install(ctx context.Context, act activation.Context, targets ...string) error {
	args := p.installArgs(targets...)
	cmd := exec.CommandContext(ctx, act.Python, args...)
	cmd.Env = act.Environ()
	out := p.Output
	if out == nil {
		out = os.Stderr
	}
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return toolError(fmt.Sprintf("pip install %v", targets), err)
	}
	return nil
}

func (p *Pip) installArgs(targets ...string) []string {
	args := []string{"-m", "pip", "install", "--no-warn-script-location"}
	if p.Quiet {
		args = append(args, "--quiet")
	}
	if p.NoCache {
		args = append(args, "--no-cache-dir")
	}
	if p.IndexURL != "" {
		args = append(args, "--index-url", p.IndexURL)
	}
	if p.ExtraIndexURL != "" {
		args = append(args, "--extra-index-url", p.ExtraIndexURL)
	}
	return append(args, targets...)
}
