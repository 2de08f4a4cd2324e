package cmd

import (
	"fmt"
	"os"

	"consolidator/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "consolidator",
	Short: "Spreadsheet record consolidator",
	Long: `Consolidator merges the workbooks of a folder into one canonical workbook,
flags duplicate identities and joins auxiliary workbooks into the master table by key.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// dryRun is shared by every command that writes workbooks.
var dryRun bool

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives ISO8601 timestamps for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Plan and report without writing any workbook")
}
