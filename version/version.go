// Package version reports build information. The variables are set with
// ldflags at build time:
//
//	go build -ldflags "-X github.com/ncobase/longrun/version.Version=1.2.3"
//
// When they are left at their defaults, the VCS details the Go toolchain
// embeds in the binary are used instead.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version  = "0.0.0"
	Branch   = "unknown"
	Revision = "unknown"
	BuiltAt  = "unknown"
)

// Info holds version information
type Info struct {
	Version   string `json:"version"`
	Branch    string `json:"branch"`
	Revision  string `json:"revision"`
	BuiltAt   string `json:"built_at"`
	GoVersion string `json:"go_version"`
	Modified  bool   `json:"modified,omitempty"`
}

// GetVersionInfo returns the version information of the running binary.
func GetVersionInfo() Info {
	info := Info{
		Version:   Version,
		Branch:    Branch,
		Revision:  Revision,
		BuiltAt:   BuiltAt,
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "0.0.0" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Revision == "unknown" {
				info.Revision = shortRevision(s.Value)
			}
		case "vcs.time":
			if info.BuiltAt == "unknown" {
				info.BuiltAt = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// String returns a one-line summary of the version information.
func (i Info) String() string {
	s := fmt.Sprintf("%s (%s@%s, built %s, %s)", i.Version, i.Branch, i.Revision, i.BuiltAt, i.GoVersion)
	if i.Modified {
		s += " dirty"
	}
	return s
}
