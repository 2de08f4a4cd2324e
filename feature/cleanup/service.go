package cleanup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"consolidator/core/backup"
	"consolidator/core/history"
	"consolidator/core/logger"
	"consolidator/core/sheet"
	"consolidator/core/utils"

	"go.uber.org/zap"
)

// ErrFileMissing is returned when the workbook to clean does not exist.
var ErrFileMissing = errors.New("workbook to clean does not exist")

// Report is the outcome of a cleanup.
type Report struct {
	RunID   string `json:"run_id"`
	DryRun  bool   `json:"dry_run"`
	NoOp    bool   `json:"noop"`
	File    string `json:"file"`
	Columns string `json:"columns"`
	Cleared int    `json:"cleared"`
	Backup  string `json:"backup,omitempty"`
}

// Service runs cleanups.
type Service struct {
	cfg     Config
	backups *backup.Manager
	history *history.Store
	logger  *zap.Logger
}

// NewService creates a new cleanup service.
func NewService(cfg Config, backups *backup.Manager, store *history.Store, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, backups: backups, history: store, logger: logger}
}

// ParseRange converts a column range such as "BL:BP" into inclusive 0-based
// indexes. A single column such as "BL" is a range of one.
func ParseRange(spec string) (from, to int, err error) {
	first, last, found := strings.Cut(strings.ToUpper(strings.TrimSpace(spec)), ":")
	if !found {
		last = first
	}
	if from, err = sheet.ColumnIndex(strings.TrimSpace(first)); err != nil {
		return 0, 0, fmt.Errorf("invalid column range %q: %w", spec, err)
	}
	if to, err = sheet.ColumnIndex(strings.TrimSpace(last)); err != nil {
		return 0, 0, fmt.Errorf("invalid column range %q: %w", spec, err)
	}
	if to < from {
		return 0, 0, fmt.Errorf("invalid column range %q: end before start", spec)
	}
	return from, to, nil
}

// Run clears the configured column range.
func (s *Service) Run(ctx context.Context, dryRun bool) (*Report, error) {
	run := history.NewRun(history.KindClean)
	run.DryRun = dryRun
	run.Target = s.cfg.File
	l := logger.WithRun(s.logger, run.Kind, run.ID)

	report, err := s.clean(ctx, l, run.ID, dryRun)
	if report != nil {
		run.Written = report.Cleared
		run.Backup = report.Backup
		if report.NoOp {
			run.Status = history.StatusNoOp
		}
	}
	if recErr := s.history.Record(ctx, run.Finish(err)); recErr != nil {
		l.Warn("Failed to record run", zap.Error(recErr))
	}
	if err != nil {
		l.Error("Cleanup failed", zap.Error(err))
	}
	return report, err
}

func (s *Service) clean(ctx context.Context, l *zap.Logger, runID string, dryRun bool) (*Report, error) {
	from, to, err := ParseRange(s.cfg.Columns)
	if err != nil {
		return nil, err
	}

	ok, err := utils.FileExists(s.cfg.File)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileMissing, s.cfg.File)
	}

	wb, err := sheet.OpenWorkbook(s.cfg.File)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	cleared, err := wb.ClearColumns(from, to)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:   runID,
		DryRun:  dryRun,
		File:    s.cfg.File,
		Columns: sheet.ColumnName(from) + ":" + sheet.ColumnName(to),
		Cleared: cleared,
	}
	l.Info("Columns scanned", zap.String("columns", report.Columns), zap.Int("cells", cleared))

	if cleared == 0 {
		report.NoOp = true
		l.Info("Nothing to clean, workbook left unchanged")
		return report, nil
	}
	if dryRun {
		return report, nil
	}

	copyPath, err := s.backups.Backup(ctx, s.cfg.File)
	if err != nil {
		return nil, err
	}
	report.Backup = copyPath

	if err := wb.Save(); err != nil {
		return nil, err
	}
	l.Info("Workbook cleaned", zap.String("file", s.cfg.File), zap.Int("cleared", cleared))
	return report, nil
}
