package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandonbloom/venvboot/internal/activation"
	"github.com/brandonbloom/venvboot/internal/pyversion"
)

// fakeTools records every call in order and creates the environment
// directory the way `python -m venv` would.
type fakeTools struct {
	version    pyversion.Version
	versionErr error
	createErr  error
	upgradeErr error
	installErr error
	exitCode   int

	calls      []string
	dispatched []string
	manifests  []string
	envPath    string
}

func (f *fakeTools) InterpreterVersion(context.Context) (pyversion.Version, error) {
	f.calls = append(f.calls, "version")
	return f.version, f.versionErr
}

func (f *fakeTools) CreateEnvironment(_ context.Context, dir string) error {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return f.createErr
	}
	return os.MkdirAll(filepath.Join(dir, "bin"), 0o755)
}

func (f *fakeTools) UpgradeInstaller(context.Context, activation.Context) error {
	f.calls = append(f.calls, "upgrade")
	return f.upgradeErr
}

func (f *fakeTools) InstallManifest(_ context.Context, act activation.Context, manifest string) error {
	f.calls = append(f.calls, "install")
	f.manifests = append(f.manifests, manifest)
	f.envPath, _ = act.Lookup("PATH")
	return f.installErr
}

func (f *fakeTools) Dispatch(_ context.Context, act activation.Context, args []string) (int, error) {
	f.calls = append(f.calls, "dispatch")
	f.dispatched = append([]string(nil), args...)
	return f.exitCode, nil
}

type toolExit int

func (e toolExit) Error() string { return "exit status" }
func (e toolExit) ExitCode() int { return int(e) }

func newTestBootstrapper(t *testing.T, tools *fakeTools) (*Bootstrapper, string) {
	t.Helper()
	root := t.TempDir()
	envDir := filepath.Join(root, ".venv")
	return &Bootstrapper{
		Options: Options{
			Required:         pyversion.MustParse("3.6.0"),
			EnvDir:           envDir,
			Manifest:         filepath.Join(root, "requirements.txt"),
			UpgradeInstaller: true,
			Environ:          []string{"PATH=/usr/bin"},
		},
		Versions:    tools,
		Provisioner: tools,
		Installer:   tools,
		Dispatcher:  tools,
	}, envDir
}

func TestRunVersionTooOldMutatesNothing(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.5.9")}
	b, envDir := newTestBootstrapper(t, tools)

	code, err := b.Run(context.Background(), []string{"a"})

	assert.Equal(t, 1, code)
	var mismatch *VersionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "3.6.0", mismatch.Required.String())
	assert.Equal(t, "3.5.9", mismatch.Found.String())
	assert.Equal(t, "Python 3.6.0 or higher is required, found 3.5.9", err.Error())
	assert.Equal(t, []string{"version"}, tools.calls)
	assert.NoDirExists(t, envDir)
}

func TestRunNumericComparisonPassesGate(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.10.0")}
	b, envDir := newTestBootstrapper(t, tools)

	code, err := b.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"version", "create", "upgrade", "install", "dispatch"}, tools.calls)
	assert.DirExists(t, envDir)
	assert.Equal(t, filepath.Join(envDir, "bin")+":/usr/bin", tools.envPath)
}

func TestRunIsIdempotent(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.12.1")}
	b, envDir := newTestBootstrapper(t, tools)

	_, err := b.Run(context.Background(), nil)
	require.NoError(t, err)

	marker := filepath.Join(envDir, "marker")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o644))

	tools.calls = nil
	code, err := b.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"version", "upgrade", "install", "dispatch"}, tools.calls)
	assert.FileExists(t, marker, "existing environment must not be recreated")
}

func TestRunForwardsArgumentsInOrder(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.8")}
	b, _ := newTestBootstrapper(t, tools)

	_, err := b.Run(context.Background(), []string{"a", "--flag", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "--flag", "b"}, tools.dispatched)
}

func TestRunPrependsEntry(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.8")}
	b, _ := newTestBootstrapper(t, tools)
	b.Entry = []string{"-m", "app"}

	_, err := b.Run(context.Background(), []string{"serve", "--port", "80"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-m", "app", "serve", "--port", "80"}, tools.dispatched)
}

func TestRunRelaysExitCode(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.11"), exitCode: 42}
	b, _ := newTestBootstrapper(t, tools)

	code, err := b.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 42, code)
}

func TestRunSkipsUpgradeWhenDisabled(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.11")}
	b, _ := newTestBootstrapper(t, tools)
	b.UpgradeInstaller = false

	_, err := b.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.NotContains(t, tools.calls, "upgrade")
}

func TestRunInstallsManifestEveryTime(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.11")}
	b, _ := newTestBootstrapper(t, tools)

	for i := 0; i < 3; i++ {
		_, err := b.Run(context.Background(), nil)
		require.NoError(t, err)
	}
	assert.Len(t, tools.manifests, 3)
	assert.Equal(t, b.Manifest, tools.manifests[0])
}

func TestRunPropagatesToolFailures(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*fakeTools)
		step  string
		calls []string
	}{
		{
			name:  "create",
			setup: func(f *fakeTools) { f.createErr = toolExit(3) },
			step:  StepCreate,
			calls: []string{"version", "create"},
		},
		{
			name:  "upgrade",
			setup: func(f *fakeTools) { f.upgradeErr = toolExit(2) },
			step:  StepUpgrade,
			calls: []string{"version", "create", "upgrade"},
		},
		{
			name:  "install",
			setup: func(f *fakeTools) { f.installErr = toolExit(1) },
			step:  StepInstall,
			calls: []string{"version", "create", "upgrade", "install"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tools := &fakeTools{version: pyversion.MustParse("3.11")}
			tc.setup(tools)
			b, _ := newTestBootstrapper(t, tools)

			code, err := b.Run(context.Background(), []string{"x"})

			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, tc.step, stepErr.Step)
			assert.Equal(t, tc.calls, tools.calls)
			assert.Equal(t, ExitCode(err), code)
			assert.Nil(t, tools.dispatched)
		})
	}
}

func TestRunKeepsToolExitStatus(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.11"), installErr: toolExit(7)}
	b, _ := newTestBootstrapper(t, tools)

	code, err := b.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, 7, code)
}

func TestPrepareRejectsFileAtEnvPath(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.11")}
	b, envDir := newTestBootstrapper(t, tools)
	require.NoError(t, os.WriteFile(envDir, nil, 0o644))

	_, err := b.Prepare(context.Background())
	require.ErrorIs(t, err, ErrNotDirectory)
	assert.Equal(t, []string{"version"}, tools.calls)
}

func TestPrepareReportsCreation(t *testing.T) {
	tools := &fakeTools{version: pyversion.MustParse("3.9.18")}
	b, envDir := newTestBootstrapper(t, tools)

	env, err := b.Prepare(context.Background())
	require.NoError(t, err)
	assert.True(t, env.Created)
	assert.Equal(t, "3.9.18", env.Interpreter.String())
	assert.Equal(t, filepath.Join(envDir, "bin", "python"), env.Python)

	env, err = b.Prepare(context.Background())
	require.NoError(t, err)
	assert.False(t, env.Created)
}

func TestCheckVersionProviderFailure(t *testing.T) {
	boom := errors.New("python3: not found")
	tools := &fakeTools{versionErr: boom}
	b, _ := newTestBootstrapper(t, tools)

	_, err := b.Check(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("plain")))
	assert.Equal(t, 1, ExitCode(&VersionMismatchError{}))
	assert.Equal(t, 9, ExitCode(&StepError{Step: StepInstall, Err: toolExit(9)}))
	assert.Equal(t, 1, ExitCode(&StepError{Step: StepInstall, Err: toolExit(-1)}))
}
