package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coverlay/coverlay/internal/reporter/console"
)

// NewListCommand creates the list subcommand: rebuild once and print
// the per-file coverage table, least covered first.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List coverage for every file in the reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, eng, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			if _, err := eng.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("rebuild coverage: %w", err)
			}

			minPercent, _ := cmd.Flags().GetFloat64("min")
			maxPercent, _ := cmd.Flags().GetFloat64("max")

			coverageMap, _ := eng.Snapshot()
			entries := console.Listing(coverageMap)
			filtered := entries[:0]
			for _, entry := range entries {
				if entry.Known && (entry.Percent < minPercent || entry.Percent > maxPercent) {
					continue
				}
				filtered = append(filtered, entry)
			}
			console.RenderListing(cmd.OutOrStdout(), filtered)
			return nil
		},
	}
	cmd.Flags().Float64("min", 0, "only show files at or above this percent")
	cmd.Flags().Float64("max", 100, "only show files at or below this percent")
	return cmd
}
