package cmd

import (
	"github.com/spf13/cobra"

	"foundry.dev/pkg/foundry/internal/domain"
	m "foundry.dev/pkg/foundry/internal/model"
)

var entrypointFlag string

// executeCmd represents the execute command.
var executeCmd = newExecuteCmd()

func newExecuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute <file>",
		Short: "Run one entrypoint of a program",
		Long: `Compile file and run a single entrypoint (default: main) with the test
harness installed, then print its captured output and verdict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := getWorkflow(cmd)
			if err != nil {
				return err
			}

			return w.Execute(cmd.Context(), domain.ExecuteArgs{
				File:       m.Path(args[0]),
				Entrypoint: entrypointFlag,
				MaxSteps:   maxSteps(),
				CacheDir:   cacheDir(),
				UseCache:   useCache(),
			})
		},
	}

	cmd.Flags().StringVarP(&entrypointFlag, entrypointFlagName, "e", domain.DefaultEntrypoint, "entrypoint to run")

	return cmd
}

func init() {
	rootCmd.AddCommand(executeCmd)
}
