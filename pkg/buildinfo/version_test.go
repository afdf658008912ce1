package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	embedded := &debug.BuildInfo{
		GoVersion: "go1.25.0",
		Main:      debug.Module{Path: "github.com/matzehuels/shapewordle", Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	devel := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}

	tests := []struct {
		name                  string
		version, commit, date string
		bi                    *debug.BuildInfo
		want                  Info
	}{
		{
			name:    "no build info",
			version: unsetVersion, commit: unsetCommit, date: unsetDate,
			want: Info{Version: "dev", Commit: "none", Date: "unknown"},
		},
		{
			name:    "embedded fills unset values",
			version: unsetVersion, commit: unsetCommit, date: unsetDate,
			bi:   embedded,
			want: Info{Version: "v0.3.1", Commit: "abc123", Date: "2026-01-02T03:04:05Z", GoVersion: "go1.25.0", Modified: true},
		},
		{
			name:    "ldflags win",
			version: "v1.0.0", commit: "deadbeef", date: "2026-10-15",
			bi:   embedded,
			want: Info{Version: "v1.0.0", Commit: "deadbeef", Date: "2026-10-15", GoVersion: "go1.25.0", Modified: true},
		},
		{
			name:    "devel module keeps dev",
			version: unsetVersion, commit: unsetCommit, date: unsetDate,
			bi:   devel,
			want: Info{Version: "dev", Commit: "none", Date: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read := func() (*debug.BuildInfo, bool) { return tt.bi, tt.bi != nil }
			if got := resolve(tt.version, tt.commit, tt.date, read); got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q, want cobra name placeholder", tmpl)
	}
	if !strings.Contains(String(), Get().Version) {
		t.Errorf("String() = %q, want version %q", String(), Get().Version)
	}
}
