package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped at build time with
// -ldflags "-X foundry.dev/pkg/foundry/cmd.version=<version>".
var version string

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version and Go version used to build foundry.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()

			toolVersion := version
			if toolVersion == "" && ok {
				toolVersion = info.Main.Version
			}

			if toolVersion == "" || !ok {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("foundry version\t", toolVersion)
			cmd.Println("go version\t", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
