// Package buildinfo holds version information injected at link time:
//
//	go build -ldflags "-X github.com/matzehuels/cmsecosystem/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/cmsecosystem/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/cmsecosystem/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/cmsecosystem
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// version falls back to the module version recorded by "go install" when
// no -X flag was given.
func version() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", version(), Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", version(), Commit, Date)
}

// UserAgent is sent with upstream HTTP requests.
func UserAgent() string {
	return "cmsecosystem/" + version() + " (+https://github.com/matzehuels/cmsecosystem)"
}
