// Package main provides the CLI entry point for cbpmap.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cbpmap",
		Short: "Normalize quarterly indicator workbooks into CBP data and metadata files",
		Long: `cbpmap reads a published Monetary Policy Statement workbook, recovers every
quarterly series it contains, and writes coded DATA, META and QA workbooks.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: $CBPMAP_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override: debug, info, warn, error")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPeriodsCmd())
	return rootCmd
}
