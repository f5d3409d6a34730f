package main

import (
	"fmt"
	"hotelier/config"
	"hotelier/di"
	"hotelier/shared/logger"
	"os"
	"sync"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hotelier-ctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hotelier-ctl",
		Short:         "Operations commands for the hotelier service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cfg := config.Get()

			logger.InitLogger()
			logger.SetLogLevel(cfg)
		},
	}

	cmd.AddCommand(
		newMigrateCommand(),
		newSweepCommand(),
		newFinanceCommand(),
		newTokenCommand(),
		newEventsCommand(),
	)

	return cmd
}

// services builds the service graph once, only for commands that need it.
var services = sync.OnceValue(di.InitializeCtl)
