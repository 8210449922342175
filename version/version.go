// Package version carries build information stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/grovetools/catalogdocs/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version   = "dev"
	Commit    = "none"
	Branch    = "unknown"
	BuildDate = "unknown"
)

// Info holds all the versioning information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo returns a struct populated with the version information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Branch:    Branch,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders one aligned "label: value" line per field.
func (i Info) String() string {
	rows := [][2]string{
		{"Version", i.Version},
		{"Commit", i.Commit},
		{"Branch", i.Branch},
		{"Built", i.BuildDate},
		{"Go", i.GoVersion},
		{"Platform", i.Platform},
	}

	var b strings.Builder
	for n, row := range rows {
		if n > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %-9s %s", row[0]+":", row[1])
	}
	return b.String()
}
