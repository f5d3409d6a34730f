package main

import (
	"hotelier/config"
	"hotelier/helper"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run Postgres schema migrations",
	}

	for _, action := range []struct {
		action helper.MigrationAction
		short  string
	}{
		{helper.MigrationUp, "Apply every pending migration"},
		{helper.MigrationDown, "Roll back the latest migration"},
		{helper.MigrationStepUp, "Apply the next pending migration"},
		{helper.MigrationDrop, "Roll back every migration"},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(action.action),
			Short: action.short,
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return helper.Runner(config.Get(), action.action)
			},
		})
	}

	return cmd
}
