package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newFinanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Financial year operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rollover",
		Short: "Advance the active financial year when it has ended",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, err := services().Finance.Rollover(cmd.Context())
			if err != nil {
				return fmt.Errorf("rollover financial year: %w", err)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")

			return encoder.Encode(year)
		},
	})

	return cmd
}
