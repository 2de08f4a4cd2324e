package reconcile

import "consolidator/core/sheet"

// RecordSet maps keys to records and remembers the order keys were first added.
type RecordSet struct {
	order   []string
	records map[string]sheet.Record
}

// NewRecordSet creates an empty set.
func NewRecordSet() *RecordSet {
	return &RecordSet{records: make(map[string]sheet.Record)}
}

// Put stores rec under key. An existing key keeps its original position.
func (s *RecordSet) Put(key string, rec sheet.Record) {
	if _, ok := s.records[key]; !ok {
		s.order = append(s.order, key)
	}
	s.records[key] = rec
}

// Get returns the record stored under key.
func (s *RecordSet) Get(key string) (sheet.Record, bool) {
	rec, ok := s.records[key]
	return rec, ok
}

// Has reports whether key is present.
func (s *RecordSet) Has(key string) bool {
	_, ok := s.records[key]
	return ok
}

// Len returns the number of keys.
func (s *RecordSet) Len() int {
	return len(s.order)
}

// Keys returns the keys in insertion order.
func (s *RecordSet) Keys() []string {
	return append([]string(nil), s.order...)
}

// Records returns the records in key insertion order.
func (s *RecordSet) Records() []sheet.Record {
	out := make([]sheet.Record, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.records[k])
	}
	return out
}

// Table renders the set as a table named name.
func (s *RecordSet) Table(name string) *sheet.Table {
	return sheet.FromRecords(name, s.Records())
}

// collect builds a set from records keyed with opts, skipping records without
// identity. A repeated key keeps its last record.
func collect(records []sheet.Record, opts Options) *RecordSet {
	set := NewRecordSet()
	for _, rec := range records {
		if key := opts.Key(rec); key != "" {
			set.Put(key, rec)
		}
	}
	return set
}
