// Package oracle defines the satisfiability oracle the decision layer queries,
// and the clause-tracking procedure that implements it over a numeric backend.
package oracle

import (
	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// ErrUnknown is the cause of the errors returned when a backend cannot give
// a definite answer (timeout, resource limit, incompleteness).
var ErrUnknown = errors.New("satisfiability unknown")

// DecisionProcedure answers satisfiability queries under an assumption stack
// mirroring the path condition of one execution state. It is not safe for
// concurrent use.
type DecisionProcedure interface {
	// PushAssumption adds a clause to the assumptions.
	PushAssumption(c mem.Clause) error
	// SetAssumptions replaces the assumptions.
	SetAssumptions(cs []mem.Clause) error
	// Assumptions returns the current assumptions.
	Assumptions() []mem.Clause

	// IsSat reports whether a boolean condition is consistent with the assumptions.
	IsSat(cond val.Primitive) (bool, error)
	// IsSatAliases reports whether ref may point to the object o at pos.
	IsSatAliases(ref *val.ReferenceSymbolic, pos int64, o mem.Objekt) (bool, error)
	// IsSatExpands reports whether ref may point to a fresh object of class.
	IsSatExpands(ref *val.ReferenceSymbolic, class string) (bool, error)
	// IsSatNull reports whether ref may be null.
	IsSatNull(ref *val.ReferenceSymbolic) (bool, error)
	// IsSatInitialized reports whether class may have been initialized before the execution.
	IsSatInitialized(class string) (bool, error)
	// IsSatNotInitialized reports whether class may have not been initialized before the execution.
	IsSatNotInitialized(class string) (bool, error)

	Close() error
}

// Backend decides conjunctions of boolean primitives. It must answer
// definitely or fail; ErrUnknown is never a satisfiable answer.
type Backend interface {
	Check(conds []val.Primitive) (bool, error)
	Close() error
}
