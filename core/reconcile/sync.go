package reconcile

import (
	"consolidator/core/keys"
	"consolidator/core/sheet"
)

// SyncResult reports the outcome of AppendMissing.
type SyncResult struct {
	// Rows holds the appended rows in source order.
	Rows [][]any

	// SourceKeys counts distinct keys of the source table.
	SourceKeys int

	// TargetKeys counts distinct keys already present in the target.
	TargetKeys int
}

// AppendMissing returns the rows of source whose first-column key, normalized
// with policy, is absent from target. Rows are copied whole in order of first
// appearance; a key repeated in source contributes its last row once.
func AppendMissing(source, target *sheet.Table, policy keys.Policy) SyncResult {
	present := make(map[string]struct{})
	for r := range target.Rows {
		if k := policy.Normalize(target.Cell(r, 0)); k != "" {
			present[k] = struct{}{}
		}
	}

	res := SyncResult{TargetKeys: len(present)}
	var order []string
	last := make(map[string]int)
	for r := range source.Rows {
		k := policy.Normalize(source.Cell(r, 0))
		if k == "" {
			continue
		}
		if _, seen := last[k]; !seen {
			order = append(order, k)
		}
		last[k] = r
	}
	res.SourceKeys = len(order)

	for _, k := range order {
		if _, ok := present[k]; ok {
			continue
		}
		res.Rows = append(res.Rows, append([]any(nil), source.Rows[last[k]]...))
	}
	return res
}
