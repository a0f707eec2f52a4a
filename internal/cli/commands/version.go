package commands

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildDetails describes how the binary was built.
type buildDetails struct {
	GoVersion string
	Revision  string
	Modified  bool
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the sake version, the Go toolchain it was built with and its source revision.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			writeVersion(cmd.OutOrStdout(), version, readBuildDetails())
		},
	}
}

func readBuildDetails() buildDetails {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return buildDetails{}
	}
	b := buildDetails{GoVersion: info.GoVersion}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Revision = s.Value
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

func writeVersion(w io.Writer, version string, b buildDetails) {
	_, _ = fmt.Fprintf(w, "sake v%s\n", version)
	if b.GoVersion != "" {
		_, _ = fmt.Fprintf(w, "  go:       %s\n", b.GoVersion)
	}
	if b.Revision != "" {
		rev := b.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if b.Modified {
			rev += " (modified)"
		}
		_, _ = fmt.Fprintf(w, "  revision: %s\n", rev)
	}
}
