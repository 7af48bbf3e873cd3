package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coverlay/coverlay/internal/reporter/htmlreport"
)

// NewReportCommand creates the report subcommand: rebuild once and
// write an HTML coverage summary.
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write an HTML coverage summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, eng, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			if _, err := eng.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("rebuild coverage: %w", err)
			}

			outputDir, _ := cmd.Flags().GetString("output")
			coverageMap, builtAt := eng.Snapshot()
			builder := htmlreport.NewHtmlReportBuilder(outputDir)
			if err := builder.CreateReport(coverageMap, builtAt); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filepath.Join(outputDir, "index.html"))
			return nil
		},
	}
	cmd.Flags().String("output", "coverage-report", "output directory for the report")
	return cmd
}
