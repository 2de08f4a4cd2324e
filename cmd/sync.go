package cmd

import (
	"context"

	"consolidator/feature/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedMissing bool

// syncCmd appends canonical rows missing from the merge workspace copy.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Append new canonical rows to the merge workspace copy",
	Long: `Compares the canonical workbook with its copy in the merge workspace and
appends, whole and in canonical order, every row whose key the copy lacks.
The copy is backed up first. Nothing is written when no key is new.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&seedMissing, "seed", false, "Create the workspace copy from the canonical workbook when it does not exist")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if seedMissing {
		a.cfg.Sync.SeedMissing = true
	}
	_, err = syncStep(ctx, a)
	return err
}

func syncStep(ctx context.Context, a *app) (*workspace.Report, error) {
	svc := workspace.NewService(a.cfg.Sync, a.backups, a.history, a.logger)
	report, err := svc.Run(ctx, dryRun)
	if err != nil {
		return report, err
	}

	a.logger.Info("Sync report",
		zap.String("run_id", report.RunID),
		zap.Bool("dry_run", report.DryRun),
		zap.Bool("noop", report.NoOp),
		zap.Bool("seeded", report.Seeded),
		zap.Int("source_keys", report.SourceKeys),
		zap.Int("target_keys", report.TargetKeys),
		zap.Int("appended", report.Appended),
		zap.Int("first_row", report.FirstRow),
		zap.Strings("sample_keys", report.SampleKeys),
	)
	return report, nil
}
