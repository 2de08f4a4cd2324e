package merge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"consolidator/core/backup"
	"consolidator/core/history"
	"consolidator/core/match"
	"consolidator/core/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeBook(t *testing.T, path string, headers []string, rows ...[]any) {
	t.Helper()
	tbl := sheet.NewTable("Hoja1", headers)
	for _, r := range rows {
		tbl.AppendRow(r)
	}
	require.NoError(t, sheet.WriteFile(path, tbl))
}

func testConfig(dir string) Config {
	return Config{
		Enabled:      true,
		Primary:      filepath.Join(dir, "concentrado-general.xlsx"),
		Secondary:    filepath.Join(dir, "data.xlsx"),
		Report:       filepath.Join(dir, "reporte-merge.xlsx"),
		SecondaryKey: "Nº de pieza",
		StartColumn:  "D",
	}
}

func newService(cfg Config) *Service {
	backups := backup.NewManager(backup.Config{}, nil, "", zap.NewNop())
	return NewService(cfg, backups, history.NewStore(nil), zap.NewNop())
}

func setupInputs(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeBook(t, cfg.Primary, []string{"Expediente", "Nombre"},
		[]any{"A1", "Uno"},
		[]any{"B 2", "Dos"},
		[]any{"C3", "Tres"},
	)
	writeBook(t, cfg.Secondary, []string{"Nº de pieza", "Monto", "Fecha de pago"},
		[]any{"A1", 150.5, "05/03/2024"},
		[]any{"B2", 20.0, nil},
		[]any{"a1", 1.0, nil},
		[]any{nil, 3.0, nil},
	)
	return cfg
}

func TestService_Options(t *testing.T) {
	opts, err := newService(Config{StartColumn: "AW"}).Options()
	require.NoError(t, err)
	assert.Equal(t, match.DefaultOffset, opts.Offset)
	assert.Equal(t, match.DefaultSecondaryKey, opts.SecondaryKey)
	assert.False(t, opts.Policy.FoldCase)

	_, err = newService(Config{StartColumn: "1A"}).Options()
	assert.Error(t, err)
}

func TestService_Run(t *testing.T) {
	cfg := setupInputs(t)
	report, err := newService(cfg).Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, "D", report.Column)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Indexed)
	assert.Equal(t, 2, report.Matched)
	require.Len(t, report.Unmatched, 2)
	assert.Equal(t, match.ReasonNotFound, report.Unmatched[0].Reason, "matching is case-sensitive")
	assert.Equal(t, match.ReasonEmptyKey, report.Unmatched[1].Reason)
	assert.NotEmpty(t, report.Backup)

	tbl, err := sheet.ReadFile(cfg.Primary)
	require.NoError(t, err)
	assert.Equal(t, "Nº de pieza", tbl.Headers[3])
	assert.Equal(t, "Fecha de pago", tbl.Headers[5])
	assert.Equal(t, "Uno", tbl.Cell(0, 1), "primary columns are untouched")
	assert.Equal(t, 150.5, tbl.Cell(0, 4))
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), tbl.Cell(0, 5))
	assert.Equal(t, "B2", tbl.Cell(1, 3))
	assert.True(t, sheet.IsBlank(tbl.Cell(2, 3)))
	assert.Len(t, tbl.Rows, 3)

	rep, err := sheet.ReadFile(cfg.Report)
	require.NoError(t, err)
	assert.Equal(t, StatisticsSheet, rep.Name)
	assert.Equal(t, float64(2), rep.Cell(2, 1))

	again, err := newService(cfg).Run(context.Background(), false)
	require.NoError(t, err, "a re-run reuses its own block")
	assert.Equal(t, 2, again.Matched)
}

func TestService_NoMatches(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeBook(t, cfg.Primary, []string{"Expediente"}, []any{"A1"})
	writeBook(t, cfg.Secondary, []string{"Nº de pieza", "Monto"}, []any{"Z9", 1.0})
	before, err := os.ReadFile(cfg.Primary)
	require.NoError(t, err)

	report, err := newService(cfg).Run(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, report.NoOp)

	after, err := os.ReadFile(cfg.Primary)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoFileExists(t, cfg.Report)
}

func TestService_ReportFailureKeepsMerge(t *testing.T) {
	cfg := setupInputs(t)
	blocker := filepath.Join(filepath.Dir(cfg.Primary), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.Report = filepath.Join(blocker, "reporte-merge.xlsx")

	report, err := newService(cfg).Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Matched)
	assert.NotEmpty(t, report.ReportError)
	assert.Empty(t, report.ReportPath)

	tbl, err := sheet.ReadFile(cfg.Primary)
	require.NoError(t, err)
	assert.Equal(t, "Nº de pieza", tbl.Headers[3], "primary workbook keeps the merged block")
}

func TestService_Errors(t *testing.T) {
	t.Run("Missing Column", func(t *testing.T) {
		dir := t.TempDir()
		cfg := testConfig(dir)
		writeBook(t, cfg.Primary, []string{"Expediente"}, []any{"A1"})
		writeBook(t, cfg.Secondary, []string{"Numero de expediente", "Monto"}, []any{"A1", 1.0})

		_, err := newService(cfg).Run(context.Background(), false)
		var missing *match.MissingColumnError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"Numero de expediente"}, missing.Candidates)
	})

	t.Run("Block Occupied", func(t *testing.T) {
		dir := t.TempDir()
		cfg := testConfig(dir)
		cfg.StartColumn = "B"
		writeBook(t, cfg.Primary, []string{"Expediente", "Nombre"}, []any{"A1", "Uno"})
		writeBook(t, cfg.Secondary, []string{"Nº de pieza"}, []any{"A1"})

		_, err := newService(cfg).Run(context.Background(), false)
		assert.ErrorIs(t, err, match.ErrBlockOccupied)
	})

	t.Run("Missing Input", func(t *testing.T) {
		_, err := newService(testConfig(t.TempDir())).Run(context.Background(), false)
		assert.ErrorIs(t, err, ErrInputMissing)
	})
}
