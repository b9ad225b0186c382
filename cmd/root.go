// Package cmd implements the cruxlines command-line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kantord/cruxlines/internal/pipeline"
	"github.com/kantord/cruxlines/pkg/types"
	"github.com/kantord/cruxlines/pkg/version"
)

var withReferences bool

var rootCmd = &cobra.Command{
	Use:   "cruxlines <path> [<path> ...]",
	Short: "Rank source-code symbol definitions by cross-file reference centrality",
	Long: `cruxlines analyzes a multi-language source repository and emits a ranked
list of symbol definitions, ordered by a composite score combining
reference centrality and file-level importance.

Supported languages: Python, JavaScript, TypeScript, Rust.`,
	Version: version.Version,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return &types.ExitError{Code: 2, Message: "cruxlines: at least one <path> argument is required"}
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.Run(args, withReferences, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&withReferences, "references", "u", false, "include per-definition reference locations in the output")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &types.ExitError{Code: 2, Message: err.Error()}
	})
}

// Execute runs the root command and maps errors to the exit codes in the
// CLI contract: 2 for argument errors, 1 for everything else, 0 on success.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
