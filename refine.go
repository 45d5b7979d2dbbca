package symdec

import (
	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// StateRefiner records chosen alternatives into State and pushes the
// resulting clauses to DP so that both keep the same path condition.
// Array and Index locate the access when refining array loads.
type StateRefiner struct {
	State *mem.State
	DP    oracle.DecisionProcedure
	Array *mem.Array
	Index val.Primitive
}

// sync pushes the clauses added to the path condition since n.
func (r *StateRefiner) sync(n int) error {
	for _, c := range r.State.PathCondition()[n:] {
		if err := r.DP.PushAssumption(c); err != nil {
			return decisionFailure("Refine", err)
		}
	}
	return nil
}

// Assume assumes cond in the state and the oracle. Concrete conditions are skipped.
func (r *StateRefiner) Assume(cond val.Primitive) error {
	if _, ok := cond.(*val.Simplex); ok {
		return nil
	}
	if _, ok := cond.(*val.Any); ok {
		return nil
	}
	n := len(r.State.PathCondition())
	if err := r.State.Assume(cond); err != nil {
		return &Error{Kind: InvalidInput, Op: "Refine", Err: err}
	}
	return r.sync(n)
}

// RefineIf assumes cond or its negation according to a.
func (r *StateRefiner) RefineIf(cond val.Primitive, a *IfAlternative) error {
	if a.Value {
		return r.Assume(cond)
	}
	not, err := val.Not(cond)
	if err != nil {
		return &Error{Kind: InvalidInput, Op: "Refine", Err: err}
	}
	return r.Assume(not)
}

// RefineResolved does nothing: the value needs no bookkeeping.
func (r *StateRefiner) RefineResolved(v val.Value) error {
	return nil
}

// RefineAliases assumes ref points to the object at pos.
func (r *StateRefiner) RefineAliases(ref *val.ReferenceSymbolic, pos int64, o mem.Objekt) error {
	n := len(r.State.PathCondition())
	if err := r.State.AssumeAliases(ref, pos); err != nil {
		return invalidState("Refine", "%v", err)
	}
	return r.sync(n)
}

// RefineExpands assumes ref points to a fresh object of class.
func (r *StateRefiner) RefineExpands(ref *val.ReferenceSymbolic, class string) error {
	n := len(r.State.PathCondition())
	if _, err := r.State.AssumeExpands(ref, class); err != nil {
		return invalidState("Refine", "%v", err)
	}
	return r.sync(n)
}

// RefineNull assumes ref is null.
func (r *StateRefiner) RefineNull(ref *val.ReferenceSymbolic) error {
	n := len(r.State.PathCondition())
	if err := r.State.AssumeNull(ref); err != nil {
		return invalidState("Refine", "%v", err)
	}
	return r.sync(n)
}

// RefineAccess assumes the access guard and records a fresh value into the array.
func (r *StateRefiner) RefineAccess(guard val.Primitive, v val.Value, fresh bool) error {
	if guard != nil {
		if err := r.Assume(guard); err != nil {
			return err
		}
	}
	if !fresh {
		return nil
	}
	if r.Array == nil || r.Index == nil {
		return invalidInput("Refine", "fresh value %s without an array access", v)
	}
	if err := r.Array.Set(r.Index, v); err != nil {
		return invalidState("Refine", "%v", errors.Wrap(err, "failed to record fresh value"))
	}
	return nil
}

// RefineOutOfBounds assumes the access guard.
func (r *StateRefiner) RefineOutOfBounds(guard val.Primitive) error {
	if guard == nil {
		return nil
	}
	return r.Assume(guard)
}
