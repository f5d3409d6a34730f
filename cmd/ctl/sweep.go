package main

import (
	"context"
	"fmt"
	"hotelier/shared/constant"

	"github.com/spf13/cobra"
)

func newSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Check out every booking whose stay has ended",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			swept, err := services().Booking.Sweep(context.WithValue(cmd.Context(), constant.ContextKeyUserID, constant.SystemUser))
			if err != nil {
				return fmt.Errorf("sweep bookings: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked out %d booking(s)\n", swept)

			return nil
		},
	}
}
