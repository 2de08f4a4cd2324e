package cmd

import (
	"context"

	"consolidator/feature/consolidate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// consolidateCmd merges every workbook of the source folder into the canonical workbook.
var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Consolidate the source workbooks into the canonical workbook",
	Long: `Reads every workbook of the configured folder, merges their rows into the
canonical workbook by identity key (last occurrence wins) and rewrites the
duplicates workbook. Both outputs are backed up before they are overwritten.

Examples:
  # Report what would change
  consolidate --dry-run

  # Consolidate
  consolidate`,
	RunE: runConsolidate,
}

func init() {
	RootCmd.AddCommand(consolidateCmd)
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	_, err = consolidateStep(ctx, a)
	return err
}

func consolidateStep(ctx context.Context, a *app) (*consolidate.Report, error) {
	svc := consolidate.NewService(a.cfg.Consolidate, a.backups, a.history, a.logger)
	report, err := svc.Run(ctx, dryRun)
	if err != nil {
		return report, err
	}

	a.logger.Info("Consolidation report",
		zap.String("run_id", report.RunID),
		zap.Bool("dry_run", report.DryRun),
		zap.Bool("noop", report.NoOp),
		zap.Int("sources", len(report.Sources)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("records_read", report.Counters.RecordsRead),
		zap.Int("unique_keys", report.Counters.UniqueKeys),
		zap.Int("added", report.Counters.Added),
		zap.Int("new_duplicates", report.Counters.NewDuplicates),
		zap.Int("carried_duplicates", report.Counters.CarriedDuplicates),
		zap.Strings("written", report.Written),
	)
	return report, nil
}
