package main

import (
	"github.com/glyphmark/glyphmark/cmd/glyphmark/cmd"
	"github.com/glyphmark/glyphmark/internal/version"
)

// Build-time overrides, wired through to internal/version via ldflags.
var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

func main() {
	if buildVersion != "dev" {
		version.Version = buildVersion
		version.GitCommit = buildCommit
		version.BuildDate = buildDate
	}

	cmd.Execute()
}
