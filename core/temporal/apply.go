package temporal

import "consolidator/core/sheet"

// maxSamples bounds the unparseable cells kept in Stats for reporting.
const maxSamples = 10

// Cell locates a value that could not be converted.
type Cell struct {
	Row    int
	Column string
	Value  any
}

// Stats summarizes a normalization pass over one table.
type Stats struct {
	DateColumns int
	TimeColumns int
	// Converted counts non-blank temporal cells holding a time after the pass.
	Converted int
	// Unparseable counts non-blank temporal cells left with their raw value.
	Unparseable int
	// Samples holds the first unparseable cells, in row order.
	Samples []Cell
}

// ApplyColumns classifies every column of t once, converts the cells of its
// date and time columns in place and records their format codes.
func ApplyColumns(t *sheet.Table) Stats {
	var stats Stats
	for c, header := range t.Headers {
		col := ColumnFor(header)
		switch col.Role() {
		case RoleDate:
			stats.DateColumns++
		case RoleTime:
			stats.TimeColumns++
		default:
			continue
		}
		t.SetFormat(c, col.FormatCode())

		for r := range t.Rows {
			v := t.Cell(r, c)
			if sheet.IsBlank(v) {
				continue
			}
			nv, ok := col.Normalize(v)
			if !ok {
				stats.Unparseable++
				if len(stats.Samples) < maxSamples {
					stats.Samples = append(stats.Samples, Cell{Row: sheet.RowNumber(r), Column: header, Value: v})
				}
				continue
			}
			t.SetCell(r, c, nv)
			stats.Converted++
		}
	}
	return stats
}

// NormalizeRecord converts the temporal fields of rec and returns the result.
// rec itself is not modified.
func NormalizeRecord(rec sheet.Record) sheet.Record {
	vals := make([]any, len(rec.Values))
	copy(vals, rec.Values)
	for i, f := range rec.Fields {
		if i >= len(vals) || sheet.IsBlank(vals[i]) {
			continue
		}
		if nv, ok := ColumnFor(f).Normalize(vals[i]); ok {
			vals[i] = nv
		}
	}
	return sheet.Record{Fields: rec.Fields, Values: vals}
}
