package cmd

import (
	"context"
	"errors"

	"consolidator/core/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	historyLimit int
	historyKind  string
)

// historyCmd lists the most recent runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs from the run history",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", history.DefaultLimit, "Maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "Only list runs of this kind (consolidate, sync, merge, clean)")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	runs, err := a.history.List(ctx, historyKind, historyLimit)
	if errors.Is(err, history.ErrDisabled) {
		a.logger.Warn("Run history is disabled, no database available")
		return nil
	}
	if err != nil {
		return err
	}

	for _, run := range runs {
		a.logger.Info("Run",
			zap.String("id", run.ID),
			zap.String("kind", run.Kind),
			zap.String("status", run.Status),
			zap.Bool("dry_run", run.DryRun),
			zap.Time("started_at", run.StartedAt),
			zap.Duration("duration", run.Duration()),
			zap.String("target", run.Target),
			zap.Int("records_read", run.Read),
			zap.Int("records_written", run.Written),
			zap.Int("duplicates", run.Duplicates),
			zap.Int("matched", run.Matched),
			zap.Int("unmatched", run.Unmatched),
			zap.Bool("balanced", run.Balanced),
			zap.String("error", run.Error),
		)
	}
	a.logger.Info("History listed", zap.Int("count", len(runs)))
	return nil
}
