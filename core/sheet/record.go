package sheet

import (
	"strconv"
	"strings"

	"consolidator/core/keys"
)

// Record is an ordered mapping of field name to cell value.
// Fields is shared with the table it came from and must be treated as read-only.
type Record struct {
	Fields []string
	Values []any
}

// NewRecord builds a record from parallel field and value slices.
func NewRecord(fields []string, values ...any) Record {
	vals := make([]any, len(fields))
	copy(vals, values)
	return Record{Fields: fields, Values: vals}
}

// Lookup returns the value of field and whether the field exists.
func (r Record) Lookup(field string) (any, bool) {
	for i, f := range r.Fields {
		if f == field {
			if i < len(r.Values) {
				return r.Values[i], true
			}
			return nil, true
		}
	}
	return nil, false
}

// Get returns the value of field, or nil when the field is absent.
func (r Record) Get(field string) any {
	v, _ := r.Lookup(field)
	return v
}

// First returns the value of the first column.
func (r Record) First() any {
	if len(r.Values) == 0 {
		return nil
	}
	return r.Values[0]
}

// IsEmpty reports whether every value of the record is blank.
func (r Record) IsEmpty() bool {
	for _, v := range r.Values {
		if !IsBlank(v) {
			return false
		}
	}
	return true
}

// Tidy returns a copy of r with every string value trimmed and its internal
// whitespace runs collapsed.
func (r Record) Tidy() Record {
	vals := make([]any, len(r.Values))
	for i, v := range r.Values {
		if s, ok := v.(string); ok {
			vals[i] = keys.CollapseSpaces(s)
			continue
		}
		vals[i] = v
	}
	return Record{Fields: r.Fields, Values: vals}
}

// IsBlank reports whether v is an empty cell.
func IsBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	default:
		return false
	}
}

// Dataset is a named, ordered sequence of records read from one spreadsheet.
type Dataset struct {
	Name    string
	Headers []string
	Records []Record
}

// DeriveHeaders fills blank header names and disambiguates repeated ones.
// Blank headers become "Column_N" (1-based) and repeats get a "_1", "_2" suffix.
func DeriveHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = FallbackHeader(i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		headers[i] = name
	}
	return headers
}

// FallbackHeader returns the name given to the blank header of column index.
func FallbackHeader(index int) string {
	return "Column_" + strconv.Itoa(index+1)
}
