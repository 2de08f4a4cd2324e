package reconcile

import (
	"consolidator/core/keys"
	"consolidator/core/sheet"
)

// Options controls how records are keyed during reconciliation.
type Options struct {
	// Identity is the field holding the identity value. When empty, or when a
	// record has no value in it, the first column is used.
	Identity string

	// Policy normalizes identity values into keys.
	Policy keys.Policy
}

// DefaultOptions keys records by their first column with whitespace collapsed.
func DefaultOptions() Options {
	return Options{Policy: keys.Consolidation}
}

// Key returns the identity key of rec, or "" when rec has no identity.
func (o Options) Key(rec sheet.Record) string {
	if o.Identity != "" {
		if v, ok := rec.Lookup(o.Identity); ok {
			if k := o.Policy.Normalize(v); k != "" {
				return k
			}
		}
	}
	return o.Policy.Normalize(rec.First())
}

// Prior is the persisted state of the previous run.
type Prior struct {
	// Canonical holds the records of the previous canonical set.
	Canonical []sheet.Record

	// Duplicates holds the records of the previous duplicate set.
	Duplicates []sheet.Record
}

// Counters are the audit counters of one reconciliation.
type Counters struct {
	// DatasetsProcessed is the number of source datasets traversed.
	DatasetsProcessed int `json:"datasets_processed"`

	// SourceRecords counts keyed records read from the source datasets.
	SourceRecords int `json:"source_records"`

	// EmptyKeys counts source records skipped for having no identity.
	EmptyKeys int `json:"empty_keys"`

	// RecordsRead is Retained plus SourceRecords.
	RecordsRead int `json:"records_read"`

	// UniqueKeys is the number of distinct keys in the canonical set.
	UniqueKeys int `json:"unique_keys"`

	// Retained counts distinct keys seeded from the prior canonical set.
	Retained int `json:"retained"`

	// Written counts distinct keys written or overwritten by the sources.
	Written int `json:"written"`

	// Added counts keys that were not in the prior canonical set.
	Added int `json:"added"`

	// NewDuplicates counts keys flagged as duplicates for the first time.
	NewDuplicates int `json:"new_duplicates"`

	// CarriedDuplicates counts keys carried over from the prior duplicate set.
	CarriedDuplicates int `json:"carried_duplicates"`
}

// DatasetReport describes one processed source dataset.
type DatasetReport struct {
	// Name is the dataset name, usually its file name.
	Name string `json:"name"`

	// Records counts keyed records in the dataset.
	Records int `json:"records"`

	// InternalDuplicates counts keys occurring more than once in the dataset.
	InternalDuplicates int `json:"internal_duplicates"`
}

// Result is the output of Reconcile.
type Result struct {
	// Canonical maps every key to its most recently seen record.
	Canonical *RecordSet

	// Duplicates holds every key flagged as a duplicate.
	Duplicates *RecordSet

	// Counters holds the audit counters.
	Counters Counters

	// Datasets reports each processed dataset in processing order.
	Datasets []DatasetReport

	// NoOp is set when there were no sources and a prior canonical set existed.
	// Nothing must be written in that case.
	NoOp bool
}

// ActionType represents the type of write action.
type ActionType string

const (
	// ActionWriteCanonical rewrites the canonical set.
	ActionWriteCanonical ActionType = "write_canonical"
	// ActionWriteDuplicates rewrites the duplicate set.
	ActionWriteDuplicates ActionType = "write_duplicates"
)

// Action represents a planned write.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Records is the number of records the action writes.
	Records int `json:"records"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Plan contains a reconciliation result and the writes it requires.
type Plan struct {
	// Result is the in-memory reconciliation output.
	Result *Result `json:"-"`

	// Actions contains planned writes, in execution order.
	Actions []Action `json:"actions"`

	// Summary is the audit summary of Result.
	Summary Summary `json:"summary"`
}

// ApplyOptions controls plan execution.
type ApplyOptions struct {
	// DryRun prevents execution of any writes if true.
	DryRun bool
}
