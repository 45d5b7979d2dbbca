package symdec

import (
	"sort"

	"github.com/ajalab/symdec/hier"
	"github.com/ajalab/symdec/log"
	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// HeapView is the read-only part of an execution state needed to resolve
// symbolic references. *mem.State implements it.
type HeapView interface {
	PathCondition() []mem.Clause
	Hierarchy() hier.ClassHierarchy
	IsResolved(v val.Value) bool
}

// refFactory builds the alternatives of one load family.
type refFactory[A Alternative] struct {
	aliases func(ref *val.ReferenceSymbolic, pos int64, o mem.Objekt, branch int) A
	expands func(ref *val.ReferenceSymbolic, class string, branch int) A
	null    func(ref *val.ReferenceSymbolic, branch int) A
}

type alias struct {
	pos int64
	obj mem.Objekt
}

// possibleAliases returns the symbolic objects ref may alias, by ascending
// heap position: those assumed by expansion in the path condition, whose
// class is a subclass of the static type of ref and whose epoch precedes it.
func possibleAliases(state HeapView, ref *val.ReferenceSymbolic) []alias {
	h := state.Hierarchy()
	var aliases []alias
	for _, c := range state.PathCondition() {
		e, ok := c.(*mem.ClauseAssumeExpands)
		if !ok {
			continue
		}
		o := e.Object
		if o.IsSymbolic() && o.Epoch() < ref.Epoch() && h.IsSubclass(o.Type(), ref.StaticType()) {
			aliases = append(aliases, alias{pos: e.HeapPosition, obj: o})
		}
	}
	sort.Slice(aliases, func(i, j int) bool {
		return aliases[i].pos < aliases[j].pos
	})
	return aliases
}

// possibleExpansions returns the classes of the fresh objects ref may point
// to, sorted by name. An array type is its own only expansion.
func possibleExpansions(state HeapView, ref *val.ReferenceSymbolic) ([]string, error) {
	if val.IsArrayType(ref.StaticType()) {
		return []string{ref.StaticType()}, nil
	}
	classes, err := state.Hierarchy().ConcreteSubclasses(ref.StaticType())
	if err != nil {
		return nil, err
	}
	sorted := append([]string(nil), classes...)
	sort.Strings(sorted)
	return sorted, nil
}

// resolveReference adds to result the alternatives resolving ref by
// aliasing, expansion and null that are consistent with the assumptions of
// dp. Branch numbers are assigned to aliases by heap position, then to
// expansions by class name; null takes the number following them. It returns
// true if no expansion was added.
func resolveReference[A Alternative](op string, dp oracle.DecisionProcedure, state HeapView, ref *val.ReferenceSymbolic, f refFactory[A], result *Alternatives[A]) (bool, error) {
	if !val.IsReferenceType(ref.StaticType()) && !val.IsArrayType(ref.StaticType()) {
		return false, invalidState(op, "symbolic reference %s (%s) has a bad type %q", ref, ref.Origin(), ref.StaticType())
	}
	if state.Hierarchy() == nil {
		return false, invalidInput(op, "state has no class hierarchy")
	}

	aliases := possibleAliases(state, ref)
	expansions, err := possibleExpansions(state, ref)
	if err != nil {
		if errors.Cause(err) == hier.ErrClassNotFound {
			return false, &Error{Kind: ClassNotFound, Op: op, Err: err}
		}
		return false, &Error{Kind: InvalidState, Op: op, Err: err}
	}
	log.Debug.Printf("%s: resolving %s: %d possible aliases, expansions %v", op, ref, len(aliases), expansions)

	branch := 1
	for _, a := range aliases {
		sat, err := dp.IsSatAliases(ref, a.pos, a.obj)
		if err != nil {
			return false, decisionFailure(op, err)
		}
		log.Debug.Printf("%s: %s aliases Object[%d]: %v", op, ref, a.pos, sat)
		if sat {
			result.Add(f.aliases(ref, a.pos, a.obj, branch))
		}
		branch++
	}

	noExpansion := true
	for _, class := range expansions {
		sat, err := dp.IsSatInitialized(class)
		if err != nil {
			return false, decisionFailure(op, err)
		}
		if sat {
			if sat, err = dp.IsSatExpands(ref, class); err != nil {
				return false, decisionFailure(op, err)
			}
		}
		log.Debug.Printf("%s: %s expands to %s: %v", op, ref, class, sat)
		if sat {
			result.Add(f.expands(ref, class, branch))
			noExpansion = false
		}
		branch++
	}

	sat, err := dp.IsSatNull(ref)
	if err != nil {
		return false, decisionFailure(op, err)
	}
	log.Debug.Printf("%s: %s is null: %v", op, ref, sat)
	if sat {
		result.Add(f.null(ref, branch))
	}

	if noExpansion {
		if len(expansions) == 0 {
			log.Debug.Printf("%s: no expansion for %s: no candidate classes", op, ref)
		} else {
			log.Debug.Printf("%s: no expansion for %s: all candidates excluded", op, ref)
		}
	}
	return noExpansion, nil
}

var loadFactory = refFactory[*LoadAlternative]{
	aliases: func(ref *val.ReferenceSymbolic, pos int64, o mem.Objekt, branch int) *LoadAlternative {
		return &LoadAlternative{Resolution{Kind: Aliases, Value: ref, HeapPosition: pos, Object: o, branch: branch}}
	},
	expands: func(ref *val.ReferenceSymbolic, class string, branch int) *LoadAlternative {
		return &LoadAlternative{Resolution{Kind: Expands, Value: ref, Class: class, branch: branch}}
	},
	null: func(ref *val.ReferenceSymbolic, branch int) *LoadAlternative {
		return &LoadAlternative{Resolution{Kind: Null, Value: ref, branch: branch}}
	},
}

func arrayLoadFactory(guard val.Primitive, fresh bool) refFactory[*ArrayLoadAlternative] {
	return refFactory[*ArrayLoadAlternative]{
		aliases: func(ref *val.ReferenceSymbolic, pos int64, o mem.Objekt, branch int) *ArrayLoadAlternative {
			return &ArrayLoadAlternative{
				Resolution: Resolution{Kind: Aliases, Value: ref, HeapPosition: pos, Object: o, branch: branch},
				Guard:      guard,
				Fresh:      fresh,
			}
		},
		expands: func(ref *val.ReferenceSymbolic, class string, branch int) *ArrayLoadAlternative {
			return &ArrayLoadAlternative{
				Resolution: Resolution{Kind: Expands, Value: ref, Class: class, branch: branch},
				Guard:      guard,
				Fresh:      fresh,
			}
		},
		null: func(ref *val.ReferenceSymbolic, branch int) *ArrayLoadAlternative {
			return &ArrayLoadAlternative{
				Resolution: Resolution{Kind: Null, Value: ref, branch: branch},
				Guard:      guard,
				Fresh:      fresh,
			}
		},
	}
}

// ResolveReference resolves ref as a load from a local variable or a field
// would, regardless of whether ref was already resolved in state.
func ResolveReference(dp oracle.DecisionProcedure, state HeapView, ref *val.ReferenceSymbolic, result *Alternatives[*LoadAlternative]) (bool, error) {
	const op = "ResolveReference"
	if dp == nil || state == nil || ref == nil || result == nil {
		return false, invalidInput(op, "nil argument")
	}
	return resolveReference(op, dp, state, ref, loadFactory, result)
}
