package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ad-metrics-service/internal/logging"
)

func main() {
	var logLevel string

	root := &cobra.Command{
		Use:           "devicereport",
		Short:         "Aggregate ad report rows into android, ios, desktop and tablet totals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Init(logging.Config{Level: logLevel, Format: "console"})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	root.AddCommand(newAggregateCommand())
	root.AddCommand(newFetchCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
