package version

import (
	"runtime/debug"
	"strings"
)

const devel = "(devel)"

// Info describes the running venvboot build.
type Info struct {
	Version   string
	Revision  string
	Modified  bool
	GoVersion string
}

// Read collects build information embedded by the Go toolchain.
func Read() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{Version: devel}
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) Info {
	out := Info{
		Version:   releaseVersion(info.Main.Version),
		GoVersion: info.GoVersion,
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}
	return out
}

// String returns the release version, or "(devel)" for local and
// pseudo-versioned builds.
func String() string {
	return Read().Version
}

// Long renders the version with its revision when known.
func (i Info) Long() string {
	var b strings.Builder
	b.WriteString(i.Version)
	if i.Revision != "" {
		rev := i.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		b.WriteString(" (")
		b.WriteString(rev)
		if i.Modified {
			b.WriteString(", modified")
		}
		b.WriteString(")")
	}
	if i.GoVersion != "" {
		b.WriteString(" ")
		b.WriteString(i.GoVersion)
	}
	return b.String()
}

func releaseVersion(v string) string {
	if v == "" || v == devel || strings.Contains(v, "+dirty") || isPseudoVersion(v) {
		return devel
	}
	return v
}

// isPseudoVersion matches vX.Y.Z-<14 digit timestamp>-<12+ hex hash>.
func isPseudoVersion(v string) bool {
	v, _, _ = strings.Cut(v, "+")
	parts := strings.Split(v, "-")
	if len(parts) < 3 {
		return false
	}
	ts, hash := parts[len(parts)-2], parts[len(parts)-1]
	if i := strings.LastIndexByte(ts, '.'); i >= 0 {
		ts = ts[i+1:]
	}
	return len(ts) == 14 && onlyRunes(ts, "0123456789") &&
		len(hash) >= 12 && onlyRunes(strings.ToLower(hash), "0123456789abcdef")
}

func onlyRunes(s, allowed string) bool {
	return strings.Trim(s, allowed) == ""
}
