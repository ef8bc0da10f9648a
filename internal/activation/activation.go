// Package activation models a virtual environment activation as a value.
//
// A Context carries the environ that child processes should see. Building
// one never touches the current process environment, so activation lasts
// exactly as long as the commands it is handed to.
package activation

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Context describes an activated virtual environment.
type Context struct {
	// EnvDir is the absolute environment directory.
	EnvDir string
	// BinDir holds the environment's executables (bin, or Scripts on Windows).
	BinDir string
	// Python is the environment's interpreter.
	Python string

	environ []string
}

// BinDirName returns the executables directory name for goos.
func BinDirName(goos string) string {
	if goos == "windows" {
		return "Scripts"
	}
	return "bin"
}

// PythonName returns the interpreter file name for goos.
func PythonName(goos string) string {
	if goos == "windows" {
		return "python.exe"
	}
	return "python"
}

// New activates envDir on top of base, which is typically os.Environ().
func New(envDir string, base []string) Context {
	return newForOS(envDir, base, runtime.GOOS)
}

func newForOS(envDir string, base []string, goos string) Context {
	if abs, err := filepath.Abs(envDir); err == nil {
		envDir = abs
	}
	bin := filepath.Join(envDir, BinDirName(goos))
	ctx := Context{
		EnvDir: envDir,
		BinDir: bin,
		Python: filepath.Join(bin, PythonName(goos)),
	}

	pathKey, sep := "PATH", ":"
	if goos == "windows" {
		pathKey, sep = "Path", ";"
	}

	var origPath string
	env := make([]string, 0, len(base)+2)
	for _, kv := range base {
		key, val, _ := strings.Cut(kv, "=")
		switch {
		case strings.EqualFold(key, "PATH"):
			pathKey = key
			origPath = val
			continue
		case key == "VIRTUAL_ENV", key == "PYTHONHOME":
			continue
		}
		env = append(env, kv)
	}

	newPath := bin
	if origPath != "" {
		newPath = bin + sep + origPath
	}
	env = append(env, "VIRTUAL_ENV="+envDir, pathKey+"="+newPath)
	ctx.environ = env
	return ctx
}

// Environ returns a copy of the activated environ.
func (c Context) Environ() []string {
	return append([]string(nil), c.environ...)
}

// Lookup returns the value of key in the activated environ.
func (c Context) Lookup(key string) (string, bool) {
	for i := len(c.environ) - 1; i >= 0; i-- {
		k, v, _ := strings.Cut(c.environ[i], "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

// Exports renders the variables activation changes as POSIX shell lines.
func (c Context) Exports() string {
	var b strings.Builder
	keys := []string{"VIRTUAL_ENV"}
	for _, kv := range c.environ {
		k, _, _ := strings.Cut(kv, "=")
		if strings.EqualFold(k, "PATH") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys[1:])
	for _, k := range keys {
		v, _ := c.Lookup(k)
		b.WriteString("export ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(shellQuote(v))
		b.WriteString("\n")
	}
	b.WriteString("unset PYTHONHOME\n")
	return b.String()
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
