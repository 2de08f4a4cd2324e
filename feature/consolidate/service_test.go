package consolidate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"consolidator/core/backup"
	"consolidator/core/database"
	"consolidator/core/history"
	"consolidator/core/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var headers = []string{"Expediente", "Fecha de alta", "Nombre"}

func writeSource(t *testing.T, dir, name string, rows ...[]any) {
	t.Helper()
	tbl := sheet.NewTable("Hoja1", headers)
	for _, r := range rows {
		tbl.AppendRow(r)
	}
	require.NoError(t, sheet.WriteFile(filepath.Join(dir, name), tbl))
}

func newService(t *testing.T, dir string, store *history.Store) *Service {
	t.Helper()
	cfg := Config{
		Enabled:    true,
		Dir:        dir,
		Output:     "concentrado-general.xlsx",
		Duplicates: "duplicados.xlsx",
	}
	backups := backup.NewManager(backup.Config{}, nil, "", zap.NewNop())
	return NewService(cfg, backups, store, zap.NewNop())
}

func readKeys(t *testing.T, path string) []any {
	t.Helper()
	tbl, err := sheet.ReadFile(path)
	require.NoError(t, err)
	var out []any
	for _, rec := range tbl.Records() {
		out = append(out, rec.First())
	}
	return out
}

func TestScanSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"b.xlsx", "a.XLSX", "~$a.xlsx", "notes.txt",
		"concentrado-general.xlsx", "duplicados.xlsx",
		"concentrado-general-backup-123.xlsx",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.xlsx"), 0o755))

	names, err := ScanSources(Config{Dir: dir, Output: "concentrado-general.xlsx", Duplicates: "duplicados.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.XLSX", "b.xlsx"}, names)

	_, err = ScanSources(Config{Dir: filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestService_Run(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.xlsx",
		[]any{"EXP-1", "05/03/2024", "Uno"},
		[]any{"EXP-2", "06/03/2024", "Dos"},
		[]any{"EXP-2", "07/03/2024", "Dos bis"},
	)
	writeSource(t, dir, "b.xlsx",
		[]any{"EXP-2", "08/03/2024", "Dos final"},
		[]any{"EXP-3", "fecha rota", "Tres"},
	)

	svc := newService(t, dir, history.NewStore(nil))
	report, err := svc.Run(context.Background(), false)
	require.NoError(t, err)

	assert.False(t, report.NoOp)
	assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, report.Sources)
	assert.Equal(t, 2, report.Executed)
	assert.Equal(t, 2, report.Counters.DatasetsProcessed)
	assert.Equal(t, 5, report.Counters.RecordsRead)
	assert.Equal(t, 3, report.Counters.UniqueKeys)
	assert.Equal(t, 1, report.Counters.NewDuplicates)
	assert.True(t, report.Plan.Summary.Balanced)
	assert.Empty(t, report.Backups, "first run has nothing to back up")

	output := filepath.Join(dir, "concentrado-general.xlsx")
	assert.Equal(t, []any{"EXP-1", "EXP-2", "EXP-3"}, readKeys(t, output))
	assert.Equal(t, []any{"EXP-2"}, readKeys(t, filepath.Join(dir, "duplicados.xlsx")))

	tbl, err := sheet.ReadFile(output)
	require.NoError(t, err)
	records := tbl.Records()
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), records[1].Get("Fecha de alta"))
	assert.Equal(t, "Dos final", records[1].Get("Nombre"))
	assert.Equal(t, "fecha rota", records[2].Get("Fecha de alta"), "unparseable dates keep their raw value")
}

func TestService_RunTwice(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.xlsx", []any{"EXP-1", "05/03/2024", "Uno"}, []any{"EXP-1", "05/03/2024", "Uno"})
	svc := newService(t, dir, history.NewStore(nil))

	_, err := svc.Run(context.Background(), false)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "a.xlsx")))
	writeSource(t, dir, "c.xlsx", []any{"EXP-9", "01/01/2024", "Nueve"})

	report, err := svc.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Counters.Retained)
	assert.Equal(t, 1, report.Counters.CarriedDuplicates)
	assert.Len(t, report.Backups, 2)

	assert.Equal(t, []any{"EXP-1", "EXP-9"}, readKeys(t, filepath.Join(dir, "concentrado-general.xlsx")))
	assert.Equal(t, []any{"EXP-1"}, readKeys(t, filepath.Join(dir, "duplicados.xlsx")))

	entries, err := os.ReadDir(filepath.Join(dir, "backups"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestService_NoOp(t *testing.T) {
	dir := t.TempDir()
	canonical := sheet.NewTable(CanonicalSheet, headers)
	canonical.AppendRow([]any{"EXP-1", nil, "Uno"})
	output := filepath.Join(dir, "concentrado-general.xlsx")
	require.NoError(t, sheet.WriteFile(output, canonical))
	before, err := os.ReadFile(output)
	require.NoError(t, err)

	report, err := newService(t, dir, history.NewStore(nil)).Run(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, report.NoOp)
	assert.Zero(t, report.Executed)

	after, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoFileExists(t, filepath.Join(dir, "duplicados.xlsx"))
}

func TestService_DryRun(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.xlsx", []any{"EXP-1", "05/03/2024", "Uno"})

	report, err := newService(t, dir, history.NewStore(nil)).Run(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Zero(t, report.Executed)
	assert.Len(t, report.Plan.Actions, 2)
	assert.NoFileExists(t, filepath.Join(dir, "concentrado-general.xlsx"))
}

func TestService_UnreadableSource(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.xlsx", []any{"EXP-1", "05/03/2024", "Uno"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.xlsx"), []byte("not a workbook"), 0o644))

	report, err := newService(t, dir, history.NewStore(nil)).Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"broken.xlsx"}, report.Skipped)
	assert.Equal(t, 2, report.Counters.DatasetsProcessed)
	assert.Equal(t, 1, report.Counters.UniqueKeys)
}

func TestService_RecordsHistory(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	store := history.NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))

	dir := t.TempDir()
	writeSource(t, dir, "a.xlsx", []any{"EXP-1", "05/03/2024", "Uno"}, []any{"EXP-2", "", "Dos"})

	report, err := newService(t, dir, store).Run(context.Background(), false)
	require.NoError(t, err)

	run, err := store.Get(context.Background(), report.RunID)
	require.NoError(t, err)
	assert.Equal(t, history.KindConsolidate, run.Kind)
	assert.Equal(t, history.StatusOK, run.Status)
	assert.Equal(t, 2, run.Read)
	assert.Equal(t, 2, run.Written)
	assert.True(t, run.Balanced)
}
