// Package reconcile merges spreadsheet datasets into an accumulated canonical
// record set and tracks duplicate identities across runs.
//
// # Model
//
// Every record is reduced to an identity key (see Options.Key). The canonical
// set maps each key to the most recently seen record; it is seeded from the
// previous run and updated by every source dataset in processing order. The
// duplicate set only grows: a key enters it when it repeats inside one dataset
// and stays there in every later run with its stored record unchanged.
//
// # Plan and apply
//
// Reconciliation is split in two steps so callers can inspect the outcome first:
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, loader, opts)
//	if err != nil {
//	    return err
//	}
//	if !plan.Summary.Balanced {
//	    log.Warn("totals do not reconcile")
//	}
//	executed, err := reconcile.ApplyPlan(ctx, plan, persister, reconcile.ApplyOptions{})
//
// A no-op result (no sources, existing canonical set) plans no writes.
//
// # Workspace sync
//
// AppendMissing computes the canonical rows whose keys are absent from another
// copy of the canonical table, for appending them in place.
package reconcile
