package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coverlay/coverlay/internal/coverage"
	"github.com/coverlay/coverlay/internal/reporter/console"
)

// NewStatusCommand creates the status subcommand: rebuild once and
// print the coverage status of a single file.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <file>",
		Short: "Print the coverage status of one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, eng, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			target, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			// An unknown file is not an error; only a broken pipeline is.
			if _, err := eng.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("rebuild coverage: %w", err)
			}

			coverageMap, _ := eng.Snapshot()
			detail, _ := coverage.Match(target, coverageMap)
			fmt.Fprintln(cmd.OutOrStdout(), console.StatusLine(target, detail))

			if details, _ := cmd.Flags().GetBool("details"); details {
				fmt.Fprintln(cmd.OutOrStdout(), console.Tooltip(target, detail))
			}
			return nil
		},
	}
	cmd.Flags().Bool("details", false, "also print the per-file detail view")
	return cmd
}
