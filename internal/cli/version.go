package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time. Unset values fall back to the module and
// VCS stamps in the binary's build info.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

type buildInfo struct {
	version, commit, date string
	dirty                 bool
}

func currentBuild() buildInfo {
	b := buildInfo{version: Version, commit: Commit, date: BuildDate}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if b.version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.commit == "unknown" && len(s.Value) >= 12 {
				b.commit = s.Value[:12]
			}
		case "vcs.time":
			if b.date == "unknown" {
				b.date = s.Value
			}
		case "vcs.modified":
			b.dirty = s.Value == "true"
		}
	}
	return b
}

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		b := currentBuild()
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), b.version)
			return
		}
		commit := b.commit
		if b.dirty {
			commit += "-dirty"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "leitner %s (commit: %s, built: %s)\n", b.version, commit, b.date)
	},
}

// VersionString is the version reported by /api/health.
func VersionString() string {
	b := currentBuild()
	return fmt.Sprintf("%s (%s)", b.version, b.commit)
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version")
}
