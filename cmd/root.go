// Package cmd provides the root command and CLI setup for foundry.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"foundry.dev/pkg/foundry/internal/adapter"
	"foundry.dev/pkg/foundry/internal/controller"
	"foundry.dev/pkg/foundry/internal/domain"
	m "foundry.dev/pkg/foundry/internal/model"
	"foundry.dev/pkg/foundry/internal/runctx"
)

// workflow is built on first use; tests replace it with a mock.
var workflow domain.Workflow

var (
	cacheDirFlag    string
	noCacheFlag     bool
	excludePatterns []string
	patternFlag     string
	maxStepsFlag    int64
	formatFlag      string
	verboseFlag     bool
	logFileFlag     string
)

const rootLongDescription = `Foundry runs the test entrypoints of stack-machine programs.

Every function named test_* in a file matching the test pattern is run in a
fresh machine. Annotations in the source drive the harness:

  %{ skip() %}                 skip the test
  %{ expect_revert() %}        pass only if the test fails
  %{ mock_call(fn, value) %}   make calls to fn return value
  %{ mock_call_felt(fn, ptr, n) %}
                               make calls to fn return n cells read from ptr
  %{ print(x) %}               capture a value in the test output

Compiled programs are cached under the cache directory and reused while the
source is unchanged.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "foundry",
		Short:         "Test harness for stack-machine programs",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&cacheDirFlag, cacheDirFlagName, viper.GetString(cacheDirConfigKey), "directory holding compiled programs")
	bindFlagToConfig(flags.Lookup(cacheDirFlagName), cacheDirConfigKey)

	flags.BoolVar(&noCacheFlag, noCacheFlagName, viper.GetBool(noCacheFlagName), "always recompile, ignoring and not writing the cache")
	bindFlagToConfig(flags.Lookup(noCacheFlagName), noCacheFlagName)

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files whose path matches regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.StringVar(&patternFlag, patternFlagName, viper.GetString(patternConfigKey), "regex matched against file names to find test files")
	bindFlagToConfig(flags.Lookup(patternFlagName), patternConfigKey)

	flags.Int64Var(&maxStepsFlag, maxStepsFlagName, viper.GetInt64(maxStepsConfigKey), "step budget of each entrypoint (0 for unlimited)")
	bindFlagToConfig(flags.Lookup(maxStepsFlagName), maxStepsConfigKey)

	flags.StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(formatConfigKey), "output format: text, json or yaml")
	bindFlagToConfig(flags.Lookup(formatFlagName), formatConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// getWorkflow returns the workflow, wiring the local adapters and a UI
// writing to the output of cmd on first use.
func getWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	if workflow != nil {
		return workflow, nil
	}

	ui, err := controller.NewUI(cmd, viper.GetString(formatConfigKey))
	if err != nil {
		return nil, err
	}

	command, err := compilerCommand()
	if err != nil {
		return nil, err
	}

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	compiler := adapter.NewLocalCompilerAdapter(command...).WithTimeout(compilerTimeout())
	cache := domain.NewCompileCache(fsAdapter, compiler, adapter.NewJSONCacheStore())

	workflow = domain.NewWorkflow(fsAdapter, ui, cache, domain.NewRunner(runctx.Default))

	return workflow, nil
}

func cacheDir() m.Path {
	return m.Path(viper.GetString(cacheDirConfigKey))
}

func useCache() bool {
	return !viper.GetBool(noCacheFlagName)
}

func rootArg(args []string) m.Path {
	if len(args) == 0 {
		return "."
	}

	return m.Path(args[0])
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err == nil {
		return
	}

	if !errors.Is(err, domain.ErrTestsFailed) {
		rootCmd.PrintErrln("Error:", err)
	}

	os.Exit(1)
}
