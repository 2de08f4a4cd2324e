package cmd

import (
	"context"

	"consolidator/feature/merge"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mergeCmd joins the secondary workbook into the workspace copy of the canonical workbook.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Join the secondary workbook into the master table by key",
	Long: `Looks up every primary row in the secondary workbook by identity key and
writes the matched secondary columns as a block starting at the configured
column (AW by default). A report workbook lists matched and unmatched rows.`,
	RunE: runMerge,
}

func init() {
	RootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	_, err = mergeStep(ctx, a)
	return err
}

func mergeStep(ctx context.Context, a *app) (*merge.Report, error) {
	svc := merge.NewService(a.cfg.Merge, a.backups, a.history, a.logger)
	report, err := svc.Run(ctx, dryRun)
	if err != nil {
		return report, err
	}

	a.logger.Info("Merge report",
		zap.String("run_id", report.RunID),
		zap.Bool("dry_run", report.DryRun),
		zap.Bool("noop", report.NoOp),
		zap.String("column", report.Column),
		zap.Int("total", report.Total),
		zap.Int("indexed", report.Indexed),
		zap.Int("matched", report.Matched),
		zap.Int("unmatched", len(report.Unmatched)),
		zap.String("report", report.ReportPath),
	)

	// Show a sample of unmatched rows (max 5 for logger)
	maxShow := 5
	if len(report.Unmatched) < maxShow {
		maxShow = len(report.Unmatched)
	}
	for _, miss := range report.Unmatched[:maxShow] {
		a.logger.Info("Unmatched row",
			zap.Int("source_row", miss.SourceRow),
			zap.Any("key", miss.Key),
			zap.String("reason", string(miss.Reason)),
		)
	}
	if len(report.Unmatched) > maxShow {
		a.logger.Info("Additional unmatched rows not shown", zap.Int("count", len(report.Unmatched)-maxShow))
	}
	return report, nil
}
