package reconcile

// Summary is the audit view of a reconciliation result.
type Summary struct {
	RecordsRead       int  `json:"records_read"`
	UniqueKeys        int  `json:"unique_keys"`
	DuplicatesInRead  int  `json:"duplicates_in_read"`
	CanonicalCount    int  `json:"canonical_count"`
	DuplicateCount    int  `json:"duplicate_count"`
	NewDuplicates     int  `json:"new_duplicates"`
	CarriedDuplicates int  `json:"carried_duplicates"`
	Balanced          bool `json:"balanced"`
}

// Audit summarizes res. It is advisory: an unbalanced summary is reported to
// the operator but never prevents the result from being persisted.
func Audit(res *Result) Summary {
	if res == nil {
		return Summary{Balanced: true}
	}
	s := Summary{
		RecordsRead:       res.Counters.RecordsRead,
		UniqueKeys:        res.Counters.UniqueKeys,
		NewDuplicates:     res.Counters.NewDuplicates,
		CarriedDuplicates: res.Counters.CarriedDuplicates,
	}
	if res.Canonical != nil {
		s.CanonicalCount = res.Canonical.Len()
	}
	if res.Duplicates != nil {
		s.DuplicateCount = res.Duplicates.Len()
	}
	s.DuplicatesInRead = s.RecordsRead - s.UniqueKeys
	s.Balanced = s.CanonicalCount == s.UniqueKeys && s.DuplicatesInRead >= 0
	return s
}
