package match

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"consolidator/core/keys"
	"consolidator/core/sheet"
)

// DefaultOffset is the 0-based index of column AW.
const DefaultOffset = 48

// DefaultSecondaryKey is the identity column of the secondary dataset.
const DefaultSecondaryKey = "Nº de pieza"

// ErrBlockOccupied is returned when a block column already holds unrelated data.
var ErrBlockOccupied = errors.New("destination block overlaps existing columns")

// Reason explains why a secondary row was not matched.
type Reason string

const (
	ReasonEmptyKey Reason = "empty-key"
	ReasonNotFound Reason = "not-found"
)

// Options configures a match.
type Options struct {
	// PrimaryKey is the identity column of the primary table; "" selects the first column.
	PrimaryKey string
	// SecondaryKey is the identity column of the secondary table.
	SecondaryKey string
	// Offset is the 0-based column where the appended block starts.
	Offset int
	// Policy normalizes identity values on both sides.
	Policy keys.Policy
}

// DefaultOptions returns whitespace-stripped, case-sensitive matching into column AW.
func DefaultOptions() Options {
	return Options{
		SecondaryKey: DefaultSecondaryKey,
		Offset:       DefaultOffset,
		Policy:       keys.Join,
	}
}

// Entry is a matched secondary row.
type Entry struct {
	Key       any `json:"key"`
	SourceRow int `json:"source_row"`
	DestRow   int `json:"dest_row"`
}

// Miss is an unmatched secondary row.
type Miss struct {
	Key       any    `json:"key"`
	SourceRow int    `json:"source_row"`
	Reason    Reason `json:"reason"`
}

// Result is the outcome of Match.
type Result struct {
	// Table is the primary table with the block applied. It never aliases the input.
	Table *sheet.Table
	// Matched lists matched rows in secondary order.
	Matched []Entry
	// Unmatched lists unmatched rows in secondary order.
	Unmatched []Miss
	// Total counts non-blank secondary rows.
	Total int
	// Indexed counts distinct primary keys.
	Indexed int
}

// MissingColumnError reports an absent secondary identity column.
type MissingColumnError struct {
	Column     string
	Available  []string
	Candidates []string
}

func (e *MissingColumnError) Error() string {
	msg := fmt.Sprintf("column %q not found; available columns: %s", e.Column, strings.Join(e.Available, ", "))
	if len(e.Candidates) > 0 {
		msg += "; possible identity columns: " + strings.Join(e.Candidates, ", ")
	}
	return msg
}

var identityLike = regexp.MustCompile(`expediente|pieza|numero|n[°º]|id`)

// Candidates returns the headers that look like identity columns.
func Candidates(headers []string) []string {
	var out []string
	for _, h := range headers {
		if identityLike.MatchString(keys.FoldHeader(h)) {
			out = append(out, h)
		}
	}
	return out
}

// Match joins secondary into a copy of primary.
func Match(primary, secondary *sheet.Table, opts Options) (*Result, error) {
	if opts.SecondaryKey == "" {
		opts.SecondaryKey = DefaultSecondaryKey
	}
	if opts.Offset <= 0 {
		opts.Offset = DefaultOffset
	}

	keyCol := secondary.ColumnIndex(opts.SecondaryKey)
	if keyCol < 0 {
		return nil, &MissingColumnError{
			Column:     opts.SecondaryKey,
			Available:  append([]string(nil), secondary.Headers...),
			Candidates: Candidates(secondary.Headers),
		}
	}

	primaryCol := 0
	if opts.PrimaryKey != "" {
		if primaryCol = primary.ColumnIndex(opts.PrimaryKey); primaryCol < 0 {
			return nil, &MissingColumnError{
				Column:     opts.PrimaryKey,
				Available:  append([]string(nil), primary.Headers...),
				Candidates: Candidates(primary.Headers),
			}
		}
	}

	if err := checkBlock(primary, secondary.Headers, opts.Offset); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	for r := range primary.Rows {
		if k := opts.Policy.Normalize(primary.Cell(r, primaryCol)); k != "" {
			index[k] = r
		}
	}

	out := primary.Clone()
	res := &Result{Table: out, Indexed: len(index)}
	for j, h := range secondary.Headers {
		out.SetHeader(opts.Offset+j, h)
		if f := secondary.Format(j); f != "" {
			out.SetFormat(opts.Offset+j, f)
		}
	}

	for r, row := range secondary.Rows {
		if isBlankRow(row) {
			continue
		}
		res.Total++

		raw := secondary.Cell(r, keyCol)
		key := opts.Policy.Normalize(raw)
		if key == "" {
			res.Unmatched = append(res.Unmatched, Miss{Key: raw, SourceRow: sheet.RowNumber(r), Reason: ReasonEmptyKey})
			continue
		}
		dest, ok := index[key]
		if !ok {
			res.Unmatched = append(res.Unmatched, Miss{Key: raw, SourceRow: sheet.RowNumber(r), Reason: ReasonNotFound})
			continue
		}

		for j, v := range row {
			if !sheet.IsBlank(v) {
				out.SetCell(dest, opts.Offset+j, v)
			}
		}
		res.Matched = append(res.Matched, Entry{Key: raw, SourceRow: sheet.RowNumber(r), DestRow: sheet.RowNumber(dest)})
	}
	return res, nil
}

// checkBlock verifies that the block columns are empty or carry the same
// header as a previous run of the same join.
func checkBlock(primary *sheet.Table, headers []string, offset int) error {
	for j, h := range headers {
		col := offset + j
		existing := ""
		if col < len(primary.Headers) {
			existing = primary.Headers[col]
		}
		if existing == sheet.FallbackHeader(col) {
			existing = ""
		}

		if existing == h {
			continue
		}
		if existing != "" {
			return fmt.Errorf("%w: column %s holds %q", ErrBlockOccupied, sheet.ColumnName(col), existing)
		}
		for r := range primary.Rows {
			if !sheet.IsBlank(primary.Cell(r, col)) {
				return fmt.Errorf("%w: column %s has data in row %d", ErrBlockOccupied, sheet.ColumnName(col), sheet.RowNumber(r))
			}
		}
	}
	return nil
}

func isBlankRow(row []any) bool {
	for _, v := range row {
		if !sheet.IsBlank(v) {
			return false
		}
	}
	return true
}
