package vcs

import (
	"fmt"
	"runtime/debug"
)

// Version returns the VCS revision the binary was built from, suffixed with
// "-dirty" when the working tree had uncommitted changes.
func Version() string {
	var revision string
	var modified bool

	bi, ok := debug.ReadBuildInfo()
	if ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				if s.Value == "true" {
					modified = true
				}
			}
		}
	}
	if revision == "" {
		return "unknown"
	}
	if modified {
		return fmt.Sprintf("%s-dirty", revision)
	}
	return revision
}
