package merge

import (
	"consolidator/core/match"
	"consolidator/core/sheet"
)

// Sheet names of the report workbook.
const (
	StatisticsSheet = "Statistics"
	MatchedSheet    = "Matched"
	UnmatchedSheet  = "Unmatched"
)

const statusMatched = "matched"

// reportTables renders res as the three sheets of the report workbook.
func reportTables(res *match.Result) []*sheet.Table {
	stats := sheet.NewTable(StatisticsSheet, []string{"Statistic", "Value"})
	stats.AppendRow([]any{"Secondary records", res.Total})
	stats.AppendRow([]any{"Primary keys indexed", res.Indexed})
	stats.AppendRow([]any{"Records matched", len(res.Matched)})
	stats.AppendRow([]any{"Records not matched", len(res.Unmatched)})

	matched := sheet.NewTable(MatchedSheet, []string{"Key", "Source row", "Destination row", "Status"})
	for _, e := range res.Matched {
		matched.AppendRow([]any{e.Key, e.SourceRow, e.DestRow, statusMatched})
	}

	unmatched := sheet.NewTable(UnmatchedSheet, []string{"Key", "Source row", "Reason"})
	for _, m := range res.Unmatched {
		unmatched.AppendRow([]any{m.Key, m.SourceRow, string(m.Reason)})
	}

	return []*sheet.Table{stats, matched, unmatched}
}
