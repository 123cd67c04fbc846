package cmd

import (
	"github.com/spf13/cobra"

	"foundry.dev/pkg/foundry/internal/domain"
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove compiled programs from the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := getWorkflow(cmd)
			if err != nil {
				return err
			}

			return w.Clean(cmd.Context(), domain.CleanArgs{CacheDir: cacheDir()})
		},
	}
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
