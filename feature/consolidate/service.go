package consolidate

import (
	"context"
	"errors"
	"strings"
	"sync"

	"consolidator/core/backup"
	"consolidator/core/history"
	"consolidator/core/logger"
	"consolidator/core/reconcile"

	"go.uber.org/zap"
)

// ErrRunInProgress is returned when a consolidation is already running.
var ErrRunInProgress = errors.New("a consolidation is already running")

// Report is the outcome of a consolidation run.
type Report struct {
	RunID    string                    `json:"run_id"`
	DryRun   bool                      `json:"dry_run"`
	NoOp     bool                      `json:"noop"`
	Sources  []string                  `json:"sources"`
	Skipped  []string                  `json:"skipped,omitempty"`
	Plan     *reconcile.Plan           `json:"plan"`
	Counters reconcile.Counters        `json:"counters"`
	Datasets []reconcile.DatasetReport `json:"datasets"`
	Executed int                       `json:"executed"`
	Written  []string                  `json:"written,omitempty"`
	Backups  []string                  `json:"backups,omitempty"`
}

// Service runs consolidations.
type Service struct {
	cfg     Config
	backups *backup.Manager
	history *history.Store
	logger  *zap.Logger
	mu      sync.Mutex
}

// NewService creates a new consolidation service.
func NewService(cfg Config, backups *backup.Manager, store *history.Store, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		backups: backups,
		history: store,
		logger:  logger,
	}
}

// Options returns the reconciliation options derived from the configuration.
func (s *Service) Options() reconcile.Options {
	opts := reconcile.DefaultOptions()
	opts.Identity = strings.TrimSpace(s.cfg.Identity)
	opts.Policy.FoldCase = s.cfg.FoldCase
	return opts
}

// Run consolidates the configured folder. With dryRun set nothing is written.
func (s *Service) Run(ctx context.Context, dryRun bool) (*Report, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()

	run := history.NewRun(history.KindConsolidate)
	run.DryRun = dryRun
	run.Target = s.cfg.OutputPath()
	l := logger.WithRun(s.logger, run.Kind, run.ID)

	ws := &workspace{cfg: s.cfg, backups: s.backups, logger: l}

	l.Info("Consolidation started", zap.String("dir", s.cfg.Dir), zap.Bool("dry_run", dryRun))
	plan, executed, err := reconcile.ReconcileAndApply(ctx, ws, ws, s.Options(), reconcile.ApplyOptions{DryRun: dryRun})

	report := &Report{
		RunID:    run.ID,
		DryRun:   dryRun,
		Sources:  ws.sources,
		Skipped:  ws.skipped,
		Plan:     plan,
		Executed: executed,
		Written:  ws.written,
		Backups:  ws.backedUp,
	}
	if plan != nil {
		res := plan.Result
		report.NoOp = res.NoOp
		report.Counters = res.Counters
		report.Datasets = res.Datasets

		run.Read = res.Counters.RecordsRead
		run.Written = res.Canonical.Len()
		run.Duplicates = res.Duplicates.Len()
		run.Balanced = plan.Summary.Balanced
		if res.NoOp {
			run.Status = history.StatusNoOp
		}
		s.logSummary(l, plan)
	}
	if len(ws.backedUp) > 0 {
		run.Backup = ws.backedUp[0]
	}

	if recErr := s.history.Record(ctx, run.Finish(err)); recErr != nil {
		l.Warn("Failed to record run", zap.Error(recErr))
	}
	if err != nil {
		l.Error("Consolidation failed", zap.Error(err))
		return report, err
	}
	return report, nil
}

func (s *Service) logSummary(l *zap.Logger, plan *reconcile.Plan) {
	res := plan.Result
	if res.NoOp {
		l.Info("No source workbooks to process, canonical workbook left unchanged")
		return
	}
	for _, ds := range res.Datasets {
		l.Info("Dataset processed",
			zap.String("name", ds.Name),
			zap.Int("records", ds.Records),
			zap.Int("internal_duplicates", ds.InternalDuplicates),
		)
	}

	sum := plan.Summary
	fields := []zap.Field{
		zap.Int("datasets", res.Counters.DatasetsProcessed),
		zap.Int("records_read", sum.RecordsRead),
		zap.Int("unique_keys", sum.UniqueKeys),
		zap.Int("duplicates_in_read", sum.DuplicatesInRead),
		zap.Int("canonical", sum.CanonicalCount),
		zap.Int("retained", res.Counters.Retained),
		zap.Int("added", res.Counters.Added),
		zap.Int("duplicates", sum.DuplicateCount),
		zap.Int("new_duplicates", sum.NewDuplicates),
		zap.Int("carried_duplicates", sum.CarriedDuplicates),
		zap.Int("empty_keys", res.Counters.EmptyKeys),
	}
	if !sum.Balanced {
		l.Warn("Totals do not reconcile", fields...)
		return
	}
	l.Info("Totals reconciled", fields...)
}
