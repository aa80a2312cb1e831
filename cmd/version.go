package cmd

import (
	"fmt"
	"io"
)

// Set at build time with -ldflags "-X gengo-go/cmd.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

func versionText() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "gengo version %s\n", versionText())
}
