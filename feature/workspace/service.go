package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"consolidator/core/backup"
	"consolidator/core/history"
	"consolidator/core/keys"
	"consolidator/core/logger"
	"consolidator/core/reconcile"
	"consolidator/core/sheet"
	"consolidator/core/temporal"
	"consolidator/core/utils"

	"go.uber.org/zap"
)

// maxSampleKeys bounds the appended keys listed in a report.
const maxSampleKeys = 10

var (
	// ErrSourceMissing is returned when the canonical workbook does not exist.
	ErrSourceMissing = errors.New("source workbook does not exist")
	// ErrTargetMissing is returned when the workspace copy does not exist.
	ErrTargetMissing = errors.New("workspace workbook does not exist")
	// ErrEmptySource is returned when the canonical workbook has no records.
	ErrEmptySource = errors.New("source workbook has no records")
)

// Report is the outcome of a sync.
type Report struct {
	RunID      string   `json:"run_id"`
	DryRun     bool     `json:"dry_run"`
	NoOp       bool     `json:"noop"`
	Seeded     bool     `json:"seeded"`
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	SourceKeys int      `json:"source_keys"`
	TargetKeys int      `json:"target_keys"`
	Appended   int      `json:"appended"`
	FirstRow   int      `json:"first_row,omitempty"`
	SampleKeys []string `json:"sample_keys,omitempty"`
	Backup     string   `json:"backup,omitempty"`
}

// Service runs workspace syncs.
type Service struct {
	cfg     Config
	backups *backup.Manager
	history *history.Store
	logger  *zap.Logger
}

// NewService creates a new sync service.
func NewService(cfg Config, backups *backup.Manager, store *history.Store, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, backups: backups, history: store, logger: logger}
}

// Run appends the missing canonical rows to the workspace copy.
func (s *Service) Run(ctx context.Context, dryRun bool) (*Report, error) {
	run := history.NewRun(history.KindSync)
	run.DryRun = dryRun
	run.Target = s.cfg.Target
	l := logger.WithRun(s.logger, run.Kind, run.ID)

	report, err := s.sync(ctx, l, run.ID, dryRun)
	if report != nil {
		run.Written = report.Appended
		run.Read = report.SourceKeys
		run.Backup = report.Backup
		if report.NoOp {
			run.Status = history.StatusNoOp
		}
	}
	if recErr := s.history.Record(ctx, run.Finish(err)); recErr != nil {
		l.Warn("Failed to record run", zap.Error(recErr))
	}
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
	}
	return report, err
}

func (s *Service) sync(ctx context.Context, l *zap.Logger, runID string, dryRun bool) (*Report, error) {
	report := &Report{RunID: runID, DryRun: dryRun, Source: s.cfg.Source, Target: s.cfg.Target}

	if ok, err := utils.FileExists(s.cfg.Source); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, s.cfg.Source)
	}

	ok, err := utils.FileExists(s.cfg.Target)
	if err != nil {
		return nil, err
	}
	if !ok {
		if !s.cfg.SeedMissing {
			return nil, fmt.Errorf("%w: %s", ErrTargetMissing, s.cfg.Target)
		}
		if dryRun {
			report.Seeded = true
			return report, nil
		}
		if err := os.MkdirAll(filepath.Dir(s.cfg.Target), 0o755); err != nil {
			return nil, err
		}
		if err := utils.CopyFile(s.cfg.Source, s.cfg.Target); err != nil {
			return nil, err
		}
		l.Info("Workspace seeded from canonical workbook", zap.String("target", s.cfg.Target))
		report.Seeded = true
		return report, nil
	}

	src, err := sheet.ReadFile(s.cfg.Source)
	if err != nil {
		return nil, err
	}
	if len(src.Records()) == 0 {
		return nil, ErrEmptySource
	}

	wb, err := sheet.OpenWorkbook(s.cfg.Target)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	tgt, err := wb.Table()
	if err != nil {
		return nil, err
	}

	res := reconcile.AppendMissing(src, tgt, keys.Join)
	report.SourceKeys = res.SourceKeys
	report.TargetKeys = res.TargetKeys
	report.Appended = len(res.Rows)
	for _, row := range res.Rows {
		if len(report.SampleKeys) == maxSampleKeys {
			break
		}
		if len(row) > 0 {
			report.SampleKeys = append(report.SampleKeys, keys.Join.Normalize(row[0]))
		}
	}

	l.Info("Workspace compared",
		zap.Int("source_keys", res.SourceKeys),
		zap.Int("target_keys", res.TargetKeys),
		zap.Int("new_keys", len(res.Rows)),
		zap.Strings("sample", report.SampleKeys),
	)

	if len(res.Rows) == 0 {
		report.NoOp = true
		l.Info("No new keys, workspace left unchanged")
		return report, nil
	}
	if dryRun {
		return report, nil
	}

	copyPath, err := s.backups.Backup(ctx, s.cfg.Target)
	if err != nil {
		return nil, err
	}
	report.Backup = copyPath

	formats := make([]string, len(src.Headers))
	for i, h := range src.Headers {
		formats[i] = temporal.ColumnFor(h).FormatCode()
	}

	first, err := wb.AppendRows(res.Rows, formats)
	if err != nil {
		return nil, fmt.Errorf("failed to append rows: %w", err)
	}
	if err := wb.Save(); err != nil {
		return nil, err
	}
	report.FirstRow = first

	l.Info("Workspace updated",
		zap.Int("appended", len(res.Rows)),
		zap.Int("first_row", first),
		zap.Int("total_keys", res.TargetKeys+len(res.Rows)),
	)
	return report, nil
}
