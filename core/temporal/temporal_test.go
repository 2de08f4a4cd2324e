package temporal

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consolidator/core/sheet"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(h, m, s int) time.Time {
	return time.Date(1899, 12, 30, h, m, s, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		header string
		want   Role
	}{
		{"Fecha", RoleDate},
		{"FECHA DE INGRESO", RoleDate},
		{"fechaRegistro", RoleDate},
		{"Fecha y hora", RolePlain},
		{"Hora fecha", RolePlain},
		{"tcContacto", RoleTime},
		{"tiempoContacto", RolePlain},
		{"TA", RoleTime},
		{"ttermino", RoleTime},
		{"Teléfono", RolePlain},
		{"tb", RolePlain},
		{"t", RolePlain},
		{"Expediente", RolePlain},
		{"tcFecha", RoleDate},
		{"Fécha", RoleDate},
		{"", RolePlain},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.header))
		})
	}
}

func TestColumnFor(t *testing.T) {
	assert.Equal(t, DateFormat, ColumnFor("Fecha").FormatCode())
	assert.Equal(t, TimeFormat, ColumnFor("tcontacto").FormatCode())
	assert.Equal(t, "", ColumnFor("Nombre").FormatCode())

	v, ok := ColumnFor("Nombre").Normalize("31/02/2023")
	assert.True(t, ok)
	assert.Equal(t, "31/02/2023", v)

	v, ok = ColumnFor("Fecha").Normalize("31/02/2023")
	assert.False(t, ok)
	assert.Equal(t, "31/02/2023", v)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  time.Time
		ok    bool
	}{
		{"day month year", "15/03/2023", date(2023, 3, 15), true},
		{"dashes", "5-1-2024", date(2024, 1, 5), true},
		{"padded spaces", "  02/01/2023 ", date(2023, 1, 2), true},
		{"iso", "2023-03-15", date(2023, 3, 15), true},
		{"iso single digits", "2023-3-5", date(2023, 3, 5), true},
		{"with clock", "15/03/2023 14:30", time.Date(2023, 3, 15, 14, 30, 0, 0, time.UTC), true},
		{"with seconds", "15/03/2023 14:30:15", time.Date(2023, 3, 15, 14, 30, 15, 0, time.UTC), true},
		{"serial", 44927.0, date(2023, 1, 2), true},
		{"serial lower bound", 1000.0, date(1902, 9, 27), true},
		{"serial string", "45000", date(2023, 3, 16), true},
		{"serial int", 36526, date(2000, 1, 2), true},
		{"serial with fraction", 44927.5, time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC), true},
		{"invalid day of february", "31/02/2023", time.Time{}, false},
		{"month out of range", "15/13/2023", time.Time{}, false},
		{"invalid iso", "2023-02-30", time.Time{}, false},
		{"invalid clock", "15/03/2023 25:00", time.Time{}, false},
		{"serial below range", 999.0, time.Time{}, false},
		{"serial above range", 50001.0, time.Time{}, false},
		{"month name", "March 3, 2023", time.Time{}, false},
		{"ambiguous short year", "3/4/23", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"nil", nil, time.Time{}, false},
		{"bool", true, time.Time{}, false},
		{"nan", math.NaN(), time.Time{}, false},
		{"zero time", time.Time{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			}
		})
	}
}

func TestParseDate_Idempotent(t *testing.T) {
	inputs := []time.Time{
		date(2023, 1, 2),
		time.Date(2024, 2, 29, 8, 15, 0, 0, time.UTC),
		time.Date(2020, 6, 1, 0, 0, 0, 0, time.FixedZone("CST", -6*3600)),
	}
	for _, in := range inputs {
		got, ok := ParseDate(in)
		require.True(t, ok)
		assert.Equal(t, in, got)

		again, ok := ParseDate(got)
		require.True(t, ok)
		assert.Equal(t, got, again)
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	for year := 1903; year <= 2036; year++ {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 28; day++ {
				s := fmt.Sprintf("%d/%d/%d", day, month, year)
				got, ok := ParseDate(s)
				if !assert.True(t, ok, s) {
					return
				}
				if got.Year() != year || int(got.Month()) != month || got.Day() != day {
					t.Fatalf("%s parsed as %s", s, got)
				}
			}
		}
	}
}

func TestCrossCheck(t *testing.T) {
	got, ok := crossCheck("nota 05/03/2023", date(2023, 3, 6))
	require.True(t, ok)
	assert.True(t, date(2023, 3, 5).Equal(got))

	_, ok = crossCheck("31/02/2023", date(2023, 3, 3))
	assert.False(t, ok)

	got, ok = crossCheck("44927", date(2023, 1, 2))
	require.True(t, ok)
	assert.True(t, date(2023, 1, 2).Equal(got))
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  time.Time
		ok    bool
	}{
		{"hours minutes", "13:05", clock(13, 5, 0), true},
		{"with seconds", "08:30:15", clock(8, 30, 15), true},
		{"single digit hour", "7:05", clock(7, 5, 0), true},
		{"compact", "130500", clock(13, 5, 0), true},
		{"compact invalid hour", "250000", time.Time{}, false},
		{"pm", "1:05:00 PM", clock(13, 5, 0), true},
		{"pm lower case", "1:05 pm", clock(13, 5, 0), true},
		{"noon", "12:00 PM", clock(12, 0, 0), true},
		{"midnight", "12:15 AM", clock(0, 15, 0), true},
		{"am", "9:45AM", clock(9, 45, 0), true},
		{"fraction", 0.5, clock(12, 0, 0), true},
		{"fraction rounds to second", 0.000011, clock(0, 0, 1), true},
		{"fraction string", "0.75", clock(18, 0, 0), true},
		{"zero", 0.0, clock(0, 0, 0), true},
		{"one is not a fraction", 1.0, time.Time{}, false},
		{"negative", -0.5, time.Time{}, false},
		{"invalid minutes", "10:60", time.Time{}, false},
		{"invalid hour", "24:00", time.Time{}, false},
		{"thirteen pm", "13:00 PM", clock(13, 0, 0), true},
		{"words", "mediodia", time.Time{}, false},
		{"nil", nil, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			}
		})
	}
}

func TestParseTime_Idempotent(t *testing.T) {
	in := clock(13, 5, 0)
	got, ok := ParseTime(in)
	require.True(t, ok)
	assert.Equal(t, in, got)
}

func TestApplyColumns(t *testing.T) {
	tbl := sheet.NewTable("datos", []string{"Expediente", "Fecha", "tcontacto", "Notas"})
	tbl.AppendRow([]any{"A1", "02/01/2023", "13:05", "15/03/2023"})
	tbl.AppendRow([]any{"A2", "31/02/2023", 0.5, nil})
	tbl.AppendRow([]any{"A3", 44927.0})
	tbl.AppendRow([]any{"A4", nil, ""})

	stats := ApplyColumns(tbl)

	assert.Equal(t, 1, stats.DateColumns)
	assert.Equal(t, 1, stats.TimeColumns)
	assert.Equal(t, 4, stats.Converted)
	assert.Equal(t, 1, stats.Unparseable)
	require.Len(t, stats.Samples, 1)
	assert.Equal(t, Cell{Row: 3, Column: "Fecha", Value: "31/02/2023"}, stats.Samples[0])

	assert.Equal(t, []string{"", DateFormat, TimeFormat}, tbl.Formats)
	assert.Equal(t, date(2023, 1, 2), tbl.Cell(0, 1))
	assert.Equal(t, clock(13, 5, 0), tbl.Cell(0, 2))
	assert.Equal(t, "15/03/2023", tbl.Cell(0, 3))
	assert.Equal(t, "31/02/2023", tbl.Cell(1, 1))
	assert.Equal(t, clock(12, 0, 0), tbl.Cell(1, 2))
	assert.Equal(t, date(2023, 1, 2), tbl.Cell(2, 1))
	assert.Equal(t, "", tbl.Cell(3, 2))

	again := ApplyColumns(tbl)
	assert.Equal(t, 4, again.Converted)
	assert.Equal(t, date(2023, 1, 2), tbl.Cell(0, 1))
}

func TestNormalizeRecord(t *testing.T) {
	rec := sheet.NewRecord([]string{"Expediente", "Fecha"}, "A1", "02/01/2023")
	got := NormalizeRecord(rec)
	assert.Equal(t, date(2023, 1, 2), got.Get("Fecha"))
	assert.Equal(t, "02/01/2023", rec.Get("Fecha"))
}
