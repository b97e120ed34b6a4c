package cmd

import (
	"fmt"
	"os"

	"recon-engine/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "recon-engine",
	Short: "Document Reconciliation Service",
	Long: `Recon Engine matches and cross-checks business documents (purchase orders,
invoices, goods receipts, delivery orders, credit notes, BOMs) against
configurable reconciliation rules.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format with debug level gives readable CLI output with
		// ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
