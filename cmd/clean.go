package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"consolidator/feature/cleanup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cleanColumns string
	yesConfirm   bool
)

// errNotConfirmed is returned when the user declines a destructive action.
var errNotConfirmed = errors.New("cleanup not confirmed")

// cleanCmd clears a column range of the canonical workbook.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clear a column range of the canonical workbook",
	Long: `Clears every cell in the configured column range (BL:BP by default) of the
canonical workbook. The workbook is backed up first and left untouched when
the range is already empty.

Examples:
  # Count the cells that would be cleared
  clean --dry-run

  # Clear another range without prompting
  clean --columns BL:BR --yes`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanColumns, "columns", "", "Column range to clear, overrides the configured one")
	cleanCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the cleanup (non-interactive)")
	RootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	cfg := a.cfg.Cleanup
	if cleanColumns != "" {
		cfg.Columns = cleanColumns
	}
	if _, _, err := cleanup.ParseRange(cfg.Columns); err != nil {
		return err
	}
	if !dryRun && !confirmDestructiveAction(fmt.Sprintf("clear columns %s of %s", cfg.Columns, cfg.File)) {
		return errNotConfirmed
	}

	svc := cleanup.NewService(cfg, a.backups, a.history, a.logger)
	report, err := svc.Run(ctx, dryRun)
	if err != nil {
		return err
	}

	a.logger.Info("Cleanup report",
		zap.String("run_id", report.RunID),
		zap.Bool("dry_run", report.DryRun),
		zap.Bool("noop", report.NoOp),
		zap.String("file", report.File),
		zap.String("columns", report.Columns),
		zap.Int("cleared", report.Cleared),
		zap.String("backup", report.Backup),
	)
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(action string) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  Type 'yes' to %s: ", action)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
