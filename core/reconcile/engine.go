package reconcile

import "consolidator/core/sheet"

// Reconcile merges source datasets into the prior canonical set.
//
// Records are keyed with opts. Every keyed record overwrites the canonical entry
// for its key, so the last occurrence across datasets in order wins. A key
// repeated inside a single dataset is flagged as a duplicate; the same key in
// two different datasets is ordinary accumulation. Prior duplicates are carried
// forward with their stored record unchanged.
//
// With no sources and a non-empty prior canonical set the result is a no-op:
// nothing is processed and nothing must be written.
func Reconcile(sources []sheet.Dataset, prior Prior, opts Options) *Result {
	canonical := collect(prior.Canonical, opts)
	priorDups := collect(prior.Duplicates, opts)
	seeded := canonical.Keys()

	res := &Result{Canonical: canonical, Duplicates: NewRecordSet()}
	res.Counters.Retained = len(seeded)

	if len(sources) == 0 && len(seeded) > 0 {
		res.NoOp = true
		res.Duplicates = priorDups
		res.Counters.RecordsRead = len(seeded)
		res.Counters.UniqueKeys = len(seeded)
		res.Counters.CarriedDuplicates = priorDups.Len()
		return res
	}

	inPrior := make(map[string]struct{}, len(seeded))
	for _, k := range seeded {
		inPrior[k] = struct{}{}
	}

	flagged := make(map[string]struct{})
	written := make(map[string]struct{})
	for _, ds := range sources {
		report := DatasetReport{Name: ds.Name}
		counts := make(map[string]int)

		for _, rec := range ds.Records {
			key := opts.Key(rec)
			if key == "" {
				res.Counters.EmptyKeys++
				continue
			}
			report.Records++
			counts[key]++
			if counts[key] == 2 {
				report.InternalDuplicates++
				flagged[key] = struct{}{}
			}
			written[key] = struct{}{}
			canonical.Put(key, rec)
		}

		res.Counters.SourceRecords += report.Records
		res.Datasets = append(res.Datasets, report)
	}

	for _, key := range canonical.Keys() {
		if rec, ok := priorDups.Get(key); ok {
			res.Duplicates.Put(key, rec)
			res.Counters.CarriedDuplicates++
			continue
		}
		if _, ok := flagged[key]; ok {
			rec, _ := canonical.Get(key)
			res.Duplicates.Put(key, rec)
			res.Counters.NewDuplicates++
		}
	}
	for _, key := range priorDups.Keys() {
		if !canonical.Has(key) {
			rec, _ := priorDups.Get(key)
			res.Duplicates.Put(key, rec)
			res.Counters.CarriedDuplicates++
		}
	}

	for _, key := range canonical.Keys() {
		if _, ok := inPrior[key]; !ok {
			res.Counters.Added++
		}
	}
	res.Counters.DatasetsProcessed = len(sources)
	res.Counters.RecordsRead = res.Counters.Retained + res.Counters.SourceRecords
	res.Counters.UniqueKeys = canonical.Len()
	res.Counters.Written = len(written)

	return res
}
