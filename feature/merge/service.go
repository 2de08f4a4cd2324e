package merge

import (
	"context"
	"errors"
	"fmt"

	"consolidator/core/backup"
	"consolidator/core/history"
	"consolidator/core/keys"
	"consolidator/core/logger"
	"consolidator/core/match"
	"consolidator/core/sheet"
	"consolidator/core/temporal"
	"consolidator/core/utils"

	"go.uber.org/zap"
)

// maxLoggedMisses bounds the unmatched keys logged individually.
const maxLoggedMisses = 5

// ErrInputMissing is returned when the primary or secondary workbook does not exist.
var ErrInputMissing = errors.New("merge input does not exist")

// Report is the outcome of a merge.
type Report struct {
	RunID       string       `json:"run_id"`
	DryRun      bool         `json:"dry_run"`
	NoOp        bool         `json:"noop"`
	Primary     string       `json:"primary"`
	Secondary   string       `json:"secondary"`
	ReportPath  string       `json:"report,omitempty"`
	ReportError string       `json:"report_error,omitempty"`
	Column      string       `json:"column"`
	Total       int          `json:"total"`
	Indexed     int          `json:"indexed"`
	Matched     int          `json:"matched"`
	Unmatched   []match.Miss `json:"unmatched"`
	Backup      string       `json:"backup,omitempty"`
}

// Service runs merges.
type Service struct {
	cfg     Config
	backups *backup.Manager
	history *history.Store
	logger  *zap.Logger
}

// NewService creates a new merge service.
func NewService(cfg Config, backups *backup.Manager, store *history.Store, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, backups: backups, history: store, logger: logger}
}

// Options returns the match options derived from the configuration.
func (s *Service) Options() (match.Options, error) {
	opts := match.DefaultOptions()
	opts.PrimaryKey = s.cfg.PrimaryKey
	if s.cfg.SecondaryKey != "" {
		opts.SecondaryKey = s.cfg.SecondaryKey
	}
	if s.cfg.StartColumn != "" {
		col, err := sheet.ColumnIndex(s.cfg.StartColumn)
		if err != nil {
			return opts, fmt.Errorf("invalid start column %q: %w", s.cfg.StartColumn, err)
		}
		opts.Offset = col
	}
	opts.Policy = keys.Join
	opts.Policy.FoldCase = s.cfg.FoldCase
	return opts, nil
}

// Run joins the secondary workbook into the primary workbook.
func (s *Service) Run(ctx context.Context, dryRun bool) (*Report, error) {
	run := history.NewRun(history.KindMerge)
	run.DryRun = dryRun
	run.Target = s.cfg.Primary
	l := logger.WithRun(s.logger, run.Kind, run.ID)

	report, err := s.merge(ctx, l, run.ID, dryRun)
	if report != nil {
		run.Read = report.Total
		run.Matched = report.Matched
		run.Unmatched = len(report.Unmatched)
		run.Backup = report.Backup
		if report.NoOp {
			run.Status = history.StatusNoOp
		}
	}
	if recErr := s.history.Record(ctx, run.Finish(err)); recErr != nil {
		l.Warn("Failed to record run", zap.Error(recErr))
	}
	if err != nil {
		l.Error("Merge failed", zap.Error(err))
	}
	return report, err
}

func (s *Service) merge(ctx context.Context, l *zap.Logger, runID string, dryRun bool) (*Report, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}

	for _, path := range []string{s.cfg.Primary, s.cfg.Secondary} {
		ok, err := utils.FileExists(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
		}
	}

	secondary, err := sheet.ReadFile(s.cfg.Secondary)
	if err != nil {
		return nil, err
	}
	stats := temporal.ApplyColumns(secondary)
	l.Info("Secondary workbook read",
		zap.Int("rows", len(secondary.Rows)),
		zap.Int("date_columns", stats.DateColumns),
		zap.Int("time_columns", stats.TimeColumns),
		zap.Int("unparseable", stats.Unparseable),
	)

	wb, err := sheet.OpenWorkbook(s.cfg.Primary)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	primary, err := wb.Table()
	if err != nil {
		return nil, err
	}

	res, err := match.Match(primary, secondary, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     runID,
		DryRun:    dryRun,
		Primary:   s.cfg.Primary,
		Secondary: s.cfg.Secondary,
		Column:    sheet.ColumnName(opts.Offset),
		Total:     res.Total,
		Indexed:   res.Indexed,
		Matched:   len(res.Matched),
		Unmatched: res.Unmatched,
	}
	for i, miss := range res.Unmatched {
		if i == maxLoggedMisses {
			l.Info("More records not matched", zap.Int("remaining", len(res.Unmatched)-i))
			break
		}
		l.Info("Record not matched", zap.Any("key", miss.Key), zap.Int("row", miss.SourceRow), zap.String("reason", string(miss.Reason)))
	}
	l.Info("Match completed",
		zap.Int("total", res.Total),
		zap.Int("indexed", res.Indexed),
		zap.Int("matched", len(res.Matched)),
		zap.Int("unmatched", len(res.Unmatched)),
	)

	if len(res.Matched) == 0 {
		report.NoOp = true
		l.Info("No matches, primary workbook left unchanged")
		return report, nil
	}
	if dryRun {
		return report, nil
	}

	copyPath, err := s.backups.Backup(ctx, s.cfg.Primary)
	if err != nil {
		return nil, err
	}
	report.Backup = copyPath

	if err := wb.ApplyTable(res.Table, opts.Offset); err != nil {
		return nil, fmt.Errorf("failed to apply merged block: %w", err)
	}
	if err := wb.Save(); err != nil {
		return nil, err
	}
	l.Info("Primary workbook updated", zap.String("file", s.cfg.Primary), zap.String("column", report.Column))

	// The primary workbook is already saved; a report failure must not mark the run failed.
	if s.cfg.Report != "" {
		if err := sheet.WriteFile(s.cfg.Report, reportTables(res)...); err != nil {
			report.ReportError = err.Error()
			l.Warn("Failed to write merge report", zap.String("file", s.cfg.Report), zap.Error(err))
			return report, nil
		}
		report.ReportPath = s.cfg.Report
		l.Info("Merge report written", zap.String("file", s.cfg.Report))
	}
	return report, nil
}
