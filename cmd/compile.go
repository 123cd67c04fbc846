package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"foundry.dev/pkg/foundry/internal/asm"
)

const compileCmdName = "compile"

// compileCmd represents the compile command.
var compileCmd = newCompileCmd()

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   compileCmdName + " <file>",
		Short: "Compile a source file to program JSON",
		Long: `Assemble file and write the program JSON to standard output. Diagnostics
go to standard error and the exit status is non-zero when the file does not
assemble. This is the default compiler of the test command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			// #nosec G304 - path is the user supplied source file
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			program, err := asm.Assemble(path, src)
			if err != nil {
				slog.Error("Failed to assemble", "path", path, "error", err)
				return err
			}

			data, err := program.Encode()
			if err != nil {
				return fmt.Errorf("encode %s: %w", path, err)
			}

			_, err = cmd.OutOrStdout().Write(append(data, '\n'))

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
