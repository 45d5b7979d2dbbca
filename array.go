package symdec

import (
	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/val"
)

// CompleteArraySet completes a write at index on the in-bounds entries of an
// array. Every entry that may cover index is constrained to exclude it, and
// the entries whose guard becomes unsatisfiable are dropped. Entries not
// covering index are kept untouched. The remaining entries are returned in
// their original order; entries is left as it is.
func CompleteArraySet(dp oracle.DecisionProcedure, entries []*mem.AccessOutcomeIn, index val.Primitive) ([]*mem.AccessOutcomeIn, error) {
	const op = "CompleteArraySet"
	if dp == nil || index == nil {
		return nil, invalidInput(op, "nil argument")
	}
	if index.Type() != val.Int {
		return nil, invalidInput(op, "index %s has type %s", index, index.Type())
	}

	kept := make([]*mem.AccessOutcomeIn, 0, len(entries))
	for _, e := range entries {
		inRange, err := e.InRange(index)
		if err != nil {
			return nil, invalidState(op, "%v", err)
		}
		affected, err := isSat(op, dp, inRange)
		if err != nil {
			return nil, err
		}
		if affected {
			if err := e.Constrain(index); err != nil {
				return nil, invalidState(op, "%v", err)
			}
			sat, err := isSat(op, dp, e.Guard)
			if err != nil {
				return nil, err
			}
			if !sat {
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept, nil
}

// StoreArray writes v at index of a: it completes the write on the existing
// entries and then records the new one. The caller must have decided the
// store in bounds.
func StoreArray(dp oracle.DecisionProcedure, a *mem.Array, index val.Primitive, v val.Value) error {
	if a == nil {
		return invalidInput("StoreArray", "nil array")
	}
	entries, err := CompleteArraySet(dp, a.Entries(), index)
	if err != nil {
		return err
	}
	a.SetEntries(entries)
	if err := a.Set(index, v); err != nil {
		return invalidState("StoreArray", "%v", err)
	}
	return nil
}
