// Package buildinfo reports which build of shapewordle is running.
//
// Release builds stamp the values through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/shapewordle/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/shapewordle/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/shapewordle/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds without ldflags (go install, go run) fall back to the module version
// and VCS stamps the Go toolchain embeds in the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

const (
	unsetVersion = "dev"
	unsetCommit  = "none"
	unsetDate    = "unknown"
)

// Set via ldflags.
var (
	Version = unsetVersion
	Commit  = unsetCommit
	Date    = unsetDate
)

// Info is the resolved build metadata. The HTTP API reports it on /healthz.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

var (
	once sync.Once
	info Info
)

// Get returns the build metadata, resolved once per process.
func Get() Info {
	once.Do(func() {
		info = resolve(Version, Commit, Date, debug.ReadBuildInfo)
	})
	return info
}

// resolve fills values that ldflags left unset from the embedded build info.
func resolve(version, commit, date string, read func() (*debug.BuildInfo, bool)) Info {
	i := Info{Version: version, Commit: commit, Date: date}
	bi, ok := read()
	if !ok || bi == nil {
		return i
	}
	i.GoVersion = bi.GoVersion
	if i.Version == unsetVersion && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == unsetCommit {
				i.Commit = s.Value
			}
		case "vcs.time":
			if i.Date == unsetDate {
				i.Date = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	return i
}

// String returns the formatted build information.
func String() string {
	i := Get()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.commit(), i.Date)
}

// Template returns the version template string for cobra.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", i.Version, i.commit(), i.Date)
}

func (i Info) commit() string {
	if i.Modified {
		return i.Commit + " (modified)"
	}
	return i.Commit
}
