package reconcile

import (
	"context"
	"fmt"

	"consolidator/core/sheet"
)

// Loader supplies the inputs of a reconciliation.
type Loader interface {
	// LoadPrior returns the persisted state of the previous run.
	LoadPrior(ctx context.Context) (Prior, error)
	// LoadSources returns the source datasets in processing order.
	LoadSources(ctx context.Context) ([]sheet.Dataset, error)
}

// Persister writes the outputs of a reconciliation.
type Persister interface {
	WriteCanonical(ctx context.Context, set *RecordSet) error
	WriteDuplicates(ctx context.Context, set *RecordSet) error
}

// ReconcileWithPlan loads inputs, reconciles them and returns a plan with the
// result and the writes it requires. It does NOT execute the writes; use
// ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, loader Loader, opts Options) (*Plan, error) {
	prior, err := loader.LoadPrior(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior state: %w", err)
	}

	sources, err := loader.LoadSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}

	res := Reconcile(sources, prior, opts)
	return &Plan{
		Result:  res,
		Actions: buildActions(res),
		Summary: Audit(res),
	}, nil
}

// buildActions plans the writes of res. A no-op result plans nothing.
func buildActions(res *Result) []Action {
	if res.NoOp {
		return nil
	}
	return []Action{
		{
			Type:    ActionWriteCanonical,
			Records: res.Canonical.Len(),
			Reason:  fmt.Sprintf("%d datasets processed, %d keys added", res.Counters.DatasetsProcessed, res.Counters.Added),
		},
		{
			Type:    ActionWriteDuplicates,
			Records: res.Duplicates.Len(),
			Reason:  fmt.Sprintf("%d new, %d carried", res.Counters.NewDuplicates, res.Counters.CarriedDuplicates),
		},
	}
}

// ApplyPlan executes the actions of plan in order.
// Returns the number of actions executed and any error encountered. Nothing is
// executed when opts.DryRun is set.
func ApplyPlan(ctx context.Context, plan *Plan, persister Persister, opts ApplyOptions) (executed int, err error) {
	if opts.DryRun || plan == nil {
		return 0, nil
	}

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionWriteCanonical:
			err = persister.WriteCanonical(ctx, plan.Result.Canonical)
		case ActionWriteDuplicates:
			err = persister.WriteDuplicates(ctx, plan.Result.Duplicates)
		default:
			err = fmt.Errorf("unknown action %s", action.Type)
		}
		if err != nil {
			return executed, fmt.Errorf("failed to %s: %w", action.Type, err)
		}
		executed++
	}
	return executed, nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies
// the writes. It returns the plan, number of actions executed, and any error.
func ReconcileAndApply(ctx context.Context, loader Loader, persister Persister, opts Options, apply ApplyOptions) (*Plan, int, error) {
	plan, err := ReconcileWithPlan(ctx, loader, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, plan, persister, apply)
	return plan, executed, err
}
