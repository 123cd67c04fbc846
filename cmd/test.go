package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foundry.dev/pkg/foundry/internal/domain"
)

var runParallelFlag int

const testLongDescription = `Compile every test file under root (default: current directory) and run
its test_* entrypoints. Files run in parallel; the entrypoints of one file
run one after the other. Results are reported in file path order, then
entrypoint name order.

Exits with a non-zero status when a test fails or a file does not compile.`

// testCmd represents the test command.
var testCmd = newTestCmd()

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [root]",
		Short: "Run test entrypoints",
		Long:  testLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := getWorkflow(cmd)
			if err != nil {
				return err
			}

			return w.Test(cmd.Context(), domain.TestArgs{
				ListArgs: domain.ListArgs{
					Root:    rootArg(args),
					Pattern: viper.GetString(patternConfigKey),
					Exclude: viper.GetStringSlice(excludeConfigKey),
				},
				Threads:  runThreads(),
				MaxSteps: maxSteps(),
				CacheDir: cacheDir(),
				UseCache: useCache(),
			})
		},
	}

	configureTestFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func configureTestFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of test files run in parallel (0 for one per CPU)")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
}
