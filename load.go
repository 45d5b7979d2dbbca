package symdec

import (
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/val"
)

// ResolveLFLoad resolves the value v loaded from a local variable or a field.
// A resolved value yields a single alternative; an unresolved symbolic
// reference is resolved against the heap and always needs refinement.
func ResolveLFLoad(dp oracle.DecisionProcedure, state HeapView, v val.Value, result *Alternatives[*LoadAlternative]) (Outcome, error) {
	const op = "ResolveLFLoad"
	if dp == nil || state == nil || v == nil || result == nil {
		return Outcome{}, invalidInput(op, "nil argument")
	}
	if state.IsResolved(v) {
		result.Add(&LoadAlternative{Resolution{Kind: Resolved, Value: v, branch: 1, concrete: true}})
		return NewResolutionOutcome(false, false, false), nil
	}
	ref, ok := v.(*val.ReferenceSymbolic)
	if !ok {
		return Outcome{}, invalidState(op, "unresolved value %s is not a symbolic reference", v)
	}
	noExpansion, err := resolveReference(op, dp, state, ref, loadFactory, result)
	if err != nil {
		return Outcome{}, err
	}
	return NewResolutionOutcome(true, true, noExpansion), nil
}

// ResolveAload resolves the outcome of an array access. guard is the access
// condition, nil (or concretely true) if the index is concrete; v is the
// value read, nil if the index is out of bounds; fresh is true if v was
// created by the access.
func ResolveAload(dp oracle.DecisionProcedure, state HeapView, guard val.Primitive, v val.Value, fresh bool, result *Alternatives[*ArrayLoadAlternative]) (Outcome, error) {
	const op = "ResolveAload"
	if dp == nil || state == nil || result == nil {
		return Outcome{}, invalidInput(op, "nil argument")
	}
	if guard != nil {
		if guard.Type() != val.Boolean {
			return Outcome{}, invalidInput(op, "access condition %s has type %s", guard, guard.Type())
		}
		if c, ok := guard.(*val.Simplex); ok && c.Bool() {
			guard = nil
		}
	}
	concrete := guard == nil
	outOfBounds := v == nil
	resolved := outOfBounds || state.IsResolved(v)

	add := func() {
		if outOfBounds {
			result.Add(&ArrayLoadAlternative{
				Resolution: Resolution{Kind: OutOfBounds, branch: 2, concrete: concrete},
				Guard:      guard,
			})
			return
		}
		result.Add(&ArrayLoadAlternative{
			Resolution: Resolution{Kind: Resolved, Value: v, branch: 1, concrete: concrete},
			Guard:      guard,
			Fresh:      fresh,
		})
	}

	switch {
	case concrete && resolved:
		add()
		return NewResolutionOutcome(fresh, false, false), nil
	case resolved:
		sat, err := isSat(op, dp, guard)
		if err != nil {
			return Outcome{}, err
		}
		if !sat {
			return NewResolutionOutcome(false, true, false), nil
		}
		add()
		return NewResolutionOutcome(fresh, true, false), nil
	}

	ref, ok := v.(*val.ReferenceSymbolic)
	if !ok {
		return Outcome{}, invalidState(op, "unresolved value %s is not a symbolic reference", v)
	}
	if !concrete {
		sat, err := isSat(op, dp, guard)
		if err != nil {
			return Outcome{}, err
		}
		if !sat {
			return NewResolutionOutcome(false, true, true), nil
		}
	}
	noExpansion, err := resolveReference(op, dp, state, ref, arrayLoadFactory(guard, fresh), result)
	if err != nil {
		return Outcome{}, err
	}
	return NewResolutionOutcome(true, true, noExpansion), nil
}
