package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd chains the consolidation, the workspace sync and the merge.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: consolidate, sync, merge",
	Long: `Runs consolidate, then sync, then merge. The pipeline stops at the first
step that fails; the steps already completed keep their writes.`,
	RunE: runPipeline,
}

func init() {
	RootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	steps := []struct {
		name string
		run  func(context.Context, *app) error
	}{
		{"consolidate", func(ctx context.Context, a *app) error { _, err := consolidateStep(ctx, a); return err }},
		{"sync", func(ctx context.Context, a *app) error { _, err := syncStep(ctx, a); return err }},
		{"merge", func(ctx context.Context, a *app) error { _, err := mergeStep(ctx, a); return err }},
	}

	for i, step := range steps {
		a.logger.Info("Pipeline step started",
			zap.String("step", step.name),
			zap.Int("index", i+1),
			zap.Int("total", len(steps)),
		)
		if err := step.run(ctx, a); err != nil {
			return fmt.Errorf("pipeline stopped at %s: %w", step.name, err)
		}
	}

	a.logger.Info("Pipeline completed", zap.Bool("dry_run", dryRun))
	return nil
}
