package cmd

import (
	"errors"
	"fmt"
	"os"

	"sales-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sales-reconciler",
	Short: "Sales Reconciliation Pipeline",
	Long: `Sales Reconciler consolidates sales, customer, and product records from
two relational sources into a single validated analytics dataset, with a
root-cause report accounting for every record lost along the way.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a non-zero exit code through cobra's error return
// without being a failure message of its own.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Findings already logged by the command carry only a code.
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}

		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
