package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foundry.dev/pkg/foundry/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [root]",
		Short: "List test files",
		Long:  "List the test files the test command would run, relative to root.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := getWorkflow(cmd)
			if err != nil {
				return err
			}

			return w.List(cmd.Context(), domain.ListArgs{
				Root:    rootArg(args),
				Pattern: viper.GetString(patternConfigKey),
				Exclude: viper.GetStringSlice(excludeConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
