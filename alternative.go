package symdec

import (
	"fmt"

	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/val"
)

// Alternative is a feasible continuation of a decision point.
type Alternative interface {
	// BranchNumber returns the 1-based ordinal of the alternative among all
	// the alternatives the decision point may have.
	BranchNumber() int

	// IsConcrete returns true if the alternative was decided without the oracle.
	IsConcrete() bool

	String() string
}

// IfAlternative is an alternative of a conditional branch.
type IfAlternative struct {
	Value    bool
	concrete bool
}

// NewIfAlternative returns the alternative taking the branch for value.
func NewIfAlternative(value, concrete bool) *IfAlternative {
	return &IfAlternative{Value: value, concrete: concrete}
}

func (a *IfAlternative) BranchNumber() int {
	if a.Value {
		return 1
	}
	return 2
}

func (a *IfAlternative) IsConcrete() bool { return a.concrete }

func (a *IfAlternative) String() string {
	if a.Value {
		return "IF_TRUE"
	}
	return "IF_FALSE"
}

// Comparison is the result of a three-way comparison.
type Comparison int

// Comparison results, in branch number order.
const (
	Greater Comparison = iota + 1
	Equal
	Less
)

func (c Comparison) String() string {
	switch c {
	case Greater:
		return "GT"
	case Equal:
		return "EQ"
	case Less:
		return "LT"
	}
	return "?"
}

// ComparisonAlternative is an alternative of a three-way comparison.
type ComparisonAlternative struct {
	Comparison Comparison
	concrete   bool
}

// NewComparisonAlternative returns the alternative for c.
func NewComparisonAlternative(c Comparison, concrete bool) *ComparisonAlternative {
	return &ComparisonAlternative{Comparison: c, concrete: concrete}
}

func (a *ComparisonAlternative) BranchNumber() int { return int(a.Comparison) }
func (a *ComparisonAlternative) IsConcrete() bool  { return a.concrete }
func (a *ComparisonAlternative) String() string    { return "CMP_" + a.Comparison.String() }

// SwitchAlternative is an alternative of a switch: a case, or the default.
type SwitchAlternative struct {
	Case      int64
	IsDefault bool
	branch    int
	concrete  bool
}

// NewSwitchAlternative returns the alternative for the case label c.
func NewSwitchAlternative(c int64, branch int, concrete bool) *SwitchAlternative {
	return &SwitchAlternative{Case: c, branch: branch, concrete: concrete}
}

// NewSwitchDefault returns the default alternative.
func NewSwitchDefault(branch int, concrete bool) *SwitchAlternative {
	return &SwitchAlternative{IsDefault: true, branch: branch, concrete: concrete}
}

func (a *SwitchAlternative) BranchNumber() int { return a.branch }
func (a *SwitchAlternative) IsConcrete() bool  { return a.concrete }

func (a *SwitchAlternative) String() string {
	if a.IsDefault {
		return "SWITCH_DEFAULT"
	}
	return fmt.Sprintf("SWITCH_%d", a.Case)
}

// NewarrayAlternative is an alternative of an array allocation:
// Ok if all the counts are non negative, Wrong otherwise.
type NewarrayAlternative struct {
	Ok       bool
	concrete bool
}

// NewNewarrayAlternative returns the Ok or Wrong alternative.
func NewNewarrayAlternative(ok, concrete bool) *NewarrayAlternative {
	return &NewarrayAlternative{Ok: ok, concrete: concrete}
}

func (a *NewarrayAlternative) BranchNumber() int {
	if a.Ok {
		return 1
	}
	return 2
}

func (a *NewarrayAlternative) IsConcrete() bool { return a.concrete }

func (a *NewarrayAlternative) String() string {
	if a.Ok {
		return "NEWARRAY_OK"
	}
	return "NEWARRAY_WRONG"
}

// AstoreAlternative is an alternative of an array store:
// In if the index is within the bounds, Out otherwise.
type AstoreAlternative struct {
	In       bool
	concrete bool
}

// NewAstoreAlternative returns the In or Out alternative.
func NewAstoreAlternative(in, concrete bool) *AstoreAlternative {
	return &AstoreAlternative{In: in, concrete: concrete}
}

func (a *AstoreAlternative) BranchNumber() int {
	if a.In {
		return 1
	}
	return 2
}

func (a *AstoreAlternative) IsConcrete() bool { return a.concrete }

func (a *AstoreAlternative) String() string {
	if a.In {
		return "ASTORE_IN"
	}
	return "ASTORE_OUT"
}

// ResolutionKind tells how a load was resolved.
type ResolutionKind int

const (
	// Resolved means the loaded value needs no resolution.
	Resolved ResolutionKind = iota
	// Aliases means the loaded reference points to an object already in the heap.
	Aliases
	// Expands means the loaded reference points to a fresh object.
	Expands
	// Null means the loaded reference is null.
	Null
	// OutOfBounds means the array index is out of bounds.
	OutOfBounds
)

func (k ResolutionKind) String() string {
	switch k {
	case Resolved:
		return "RESOLVED"
	case Aliases:
		return "ALIASES"
	case Expands:
		return "EXPANDS"
	case Null:
		return "NULL"
	case OutOfBounds:
		return "OUT"
	}
	return "?"
}

// Resolution is the resolution of a loaded value.
type Resolution struct {
	Kind ResolutionKind
	// Value is the loaded value: the reference itself for Aliases, Expands and Null.
	Value val.Value
	// HeapPosition and Object are the target of Aliases.
	HeapPosition int64
	Object       mem.Objekt
	// Class is the class of the fresh object of Expands.
	Class string

	branch   int
	concrete bool
}

func (r *Resolution) BranchNumber() int { return r.branch }
func (r *Resolution) IsConcrete() bool  { return r.concrete }

// Ref returns the resolved symbolic reference, or nil for Resolved and OutOfBounds.
func (r *Resolution) Ref() *val.ReferenceSymbolic {
	switch r.Kind {
	case Aliases, Expands, Null:
		ref, _ := r.Value.(*val.ReferenceSymbolic)
		return ref
	}
	return nil
}

func (r *Resolution) String() string {
	switch r.Kind {
	case Resolved:
		return fmt.Sprintf("RESOLVED %s", r.Value)
	case Aliases:
		return fmt.Sprintf("ALIASES Object[%d] (%s)", r.HeapPosition, r.Object.Origin())
	case Expands:
		return fmt.Sprintf("EXPANDS %s", r.Class)
	}
	return r.Kind.String()
}

// LoadAlternative is an alternative of a load from a local variable or a field.
type LoadAlternative struct {
	Resolution
}

// ArrayLoadAlternative is an alternative of a load from an array.
type ArrayLoadAlternative struct {
	Resolution
	// Guard is the access condition, or nil if the index is concrete.
	Guard val.Primitive
	// Fresh is true if the value was created by the access.
	Fresh bool
}

func (a *ArrayLoadAlternative) String() string {
	s := a.Resolution.String()
	if a.Guard != nil {
		s += fmt.Sprintf(" [%s]", a.Guard)
	}
	if a.Fresh {
		s += " (fresh)"
	}
	return s
}

// LoadRefiner records the chosen resolution of a load into an execution state.
type LoadRefiner interface {
	RefineResolved(v val.Value) error
	RefineAliases(ref *val.ReferenceSymbolic, pos int64, o mem.Objekt) error
	RefineExpands(ref *val.ReferenceSymbolic, class string) error
	RefineNull(ref *val.ReferenceSymbolic) error
}

// ArrayLoadRefiner records the chosen resolution of an array load.
type ArrayLoadRefiner interface {
	LoadRefiner
	// RefineAccess assumes the access guard (nil if the index is concrete)
	// and records fresh values into the array.
	RefineAccess(guard val.Primitive, v val.Value, fresh bool) error
	RefineOutOfBounds(guard val.Primitive) error
}

func (r *Resolution) refine(lr LoadRefiner) error {
	switch r.Kind {
	case Resolved:
		return lr.RefineResolved(r.Value)
	case Aliases:
		return lr.RefineAliases(r.Ref(), r.HeapPosition, r.Object)
	case Expands:
		return lr.RefineExpands(r.Ref(), r.Class)
	case Null:
		return lr.RefineNull(r.Ref())
	}
	return invalidState("Refine", "unexpected resolution %s", r.Kind)
}

// Refine dispatches a to the method of r handling its resolution kind.
func (a *LoadAlternative) Refine(r LoadRefiner) error {
	return a.Resolution.refine(r)
}

// Refine dispatches a to the methods of r handling the access and its resolution kind.
func (a *ArrayLoadAlternative) Refine(r ArrayLoadRefiner) error {
	if a.Kind == OutOfBounds {
		return r.RefineOutOfBounds(a.Guard)
	}
	if err := r.RefineAccess(a.Guard, a.Value, a.Fresh); err != nil {
		return err
	}
	return a.Resolution.refine(r)
}
