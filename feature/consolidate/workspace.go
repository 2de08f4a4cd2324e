package consolidate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"consolidator/core/backup"
	"consolidator/core/reconcile"
	"consolidator/core/sheet"
	"consolidator/core/temporal"
	"consolidator/core/utils"

	"go.uber.org/zap"
)

// Sheet names of the output workbooks.
const (
	CanonicalSheet  = "Concentrado"
	DuplicatesSheet = "Duplicados"
)

// workspace reads and writes the workbooks of one run.
// It implements reconcile.Loader and reconcile.Persister.
type workspace struct {
	cfg     Config
	backups *backup.Manager
	logger  *zap.Logger

	sources  []string
	skipped  []string
	written  []string
	backedUp []string
}

// ScanSources lists the source workbooks of cfg.Dir in name order.
func ScanSources(cfg Config) ([]string, error) {
	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", cfg.Dir, err)
	}

	output := filepath.Base(cfg.OutputPath())
	duplicates := filepath.Base(cfg.DuplicatesPath())

	var names []string
	for _, e := range entries {
		name := e.Name()
		switch {
		case !e.Type().IsRegular():
		case !strings.EqualFold(filepath.Ext(name), ".xlsx"):
		case utils.IsLockFile(name):
		case name == output, name == duplicates:
		case backup.IsBackup(name):
		default:
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (w *workspace) LoadPrior(ctx context.Context) (reconcile.Prior, error) {
	canonical, err := w.readOptional(w.cfg.OutputPath())
	if err != nil {
		return reconcile.Prior{}, err
	}
	duplicates, err := w.readOptional(w.cfg.DuplicatesPath())
	if err != nil {
		return reconcile.Prior{}, err
	}
	w.logger.Info("Prior state loaded",
		zap.Int("canonical", len(canonical)),
		zap.Int("duplicates", len(duplicates)),
	)
	return reconcile.Prior{Canonical: canonical, Duplicates: duplicates}, nil
}

// readOptional reads the records of an output workbook. A missing file has no records.
func (w *workspace) readOptional(path string) ([]sheet.Record, error) {
	exists, err := utils.FileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	t, err := sheet.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return normalize(t.Records()), nil
}

func (w *workspace) LoadSources(ctx context.Context) ([]sheet.Dataset, error) {
	names, err := ScanSources(w.cfg)
	if err != nil {
		return nil, err
	}
	w.sources = names
	w.logger.Info("Source workbooks found", zap.Int("count", len(names)))

	datasets := make([]sheet.Dataset, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := sheet.ReadFile(filepath.Join(w.cfg.Dir, name))
		if err != nil {
			w.logger.Warn("Source unreadable, processing as empty", zap.String("file", name), zap.Error(err))
			w.skipped = append(w.skipped, name)
			datasets = append(datasets, sheet.Dataset{Name: name})
			continue
		}
		ds := t.Dataset()
		ds.Name = name
		ds.Records = normalize(ds.Records)
		w.logger.Debug("Source read", zap.String("file", name), zap.Int("records", len(ds.Records)))
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

func (w *workspace) WriteCanonical(ctx context.Context, set *reconcile.RecordSet) error {
	return w.write(ctx, w.cfg.OutputPath(), set.Table(CanonicalSheet))
}

func (w *workspace) WriteDuplicates(ctx context.Context, set *reconcile.RecordSet) error {
	return w.write(ctx, w.cfg.DuplicatesPath(), set.Table(DuplicatesSheet))
}

func (w *workspace) write(ctx context.Context, path string, t *sheet.Table) error {
	stats := temporal.ApplyColumns(t)
	if stats.Unparseable > 0 {
		w.logger.Warn("Temporal values left unconverted",
			zap.String("file", filepath.Base(path)),
			zap.Int("count", stats.Unparseable),
			zap.Any("samples", stats.Samples),
		)
	}

	copyPath, err := w.backups.Backup(ctx, path)
	if err != nil {
		return err
	}
	if copyPath != "" {
		w.backedUp = append(w.backedUp, copyPath)
	}

	if err := sheet.WriteFile(path, t); err != nil {
		return err
	}
	w.written = append(w.written, path)
	w.logger.Info("Workbook written", zap.String("file", path), zap.Int("records", len(t.Rows)))
	return nil
}

// normalize tidies each record and converts its temporal fields.
func normalize(records []sheet.Record) []sheet.Record {
	out := make([]sheet.Record, len(records))
	for i, rec := range records {
		out[i] = temporal.NormalizeRecord(rec.Tidy())
	}
	return out
}
