package mem

import (
	"fmt"

	"github.com/ajalab/symdec/val"
)

// AccessOutcomeIn records that reading the array at any index satisfying
// Guard yields Value. Guard is an expression over the index term of the array.
type AccessOutcomeIn struct {
	index *val.Term
	Guard val.Primitive
	Value val.Value
}

// NewAccessOutcomeIn returns an entry whose guard is expressed over index.
func NewAccessOutcomeIn(index *val.Term, guard val.Primitive, v val.Value) *AccessOutcomeIn {
	return &AccessOutcomeIn{index: index, Guard: guard, Value: v}
}

// Index returns the index term the guard is expressed over.
func (e *AccessOutcomeIn) Index() *val.Term {
	return e.index
}

// InRange returns the condition under which the entry covers index.
func (e *AccessOutcomeIn) InRange(index val.Primitive) (val.Primitive, error) {
	return val.Replace(e.Guard, e.index, index)
}

// Constrain excludes index from the entry, as the array was written there.
func (e *AccessOutcomeIn) Constrain(index val.Primitive) error {
	ne, err := val.Ne(e.index, index)
	if err != nil {
		return err
	}
	guard, err := val.And(e.Guard, ne)
	if err != nil {
		return err
	}
	e.Guard = guard
	return nil
}

func (e *AccessOutcomeIn) String() string {
	return fmt.Sprintf("%s -> %s", e.Guard, e.Value)
}

// ArrayAccess is a possible outcome of reading an array.
type ArrayAccess struct {
	// Guard is the condition under which the read yields this outcome.
	Guard val.Primitive
	// Value is the value read, or nil if the index is out of bounds.
	Value val.Value
	// Fresh is true if Value was created by the read itself.
	Fresh bool
}

// Array is an array object. Its content is the list of in-bounds entries.
type Array struct {
	elem     string
	length   val.Primitive
	index    *val.Term
	entries  []*AccessOutcomeIn
	origin   string
	epoch    int64
	symbolic bool
}

func newArray(elem string, length val.Primitive, origin string, epoch int64, symbolic bool) *Array {
	return &Array{
		elem:     elem,
		length:   length,
		index:    val.NewTerm(val.Int, fmt.Sprintf("%s.INDEX", origin)),
		origin:   origin,
		epoch:    epoch,
		symbolic: symbolic,
	}
}

// NewArray returns a symbolic array of elem assumed from origin.
func NewArray(elem string, length val.Primitive, origin string, epoch int64) *Array {
	return newArray(elem, length, origin, epoch, true)
}

// NewConcreteArray returns an array created by the program, filled with the
// zero value of elem.
func NewConcreteArray(elem string, length val.Primitive, epoch int64) (*Array, error) {
	a := newArray(elem, length, fmt.Sprintf("array@%d", epoch), epoch, false)
	inBounds, err := a.InBounds(a.index)
	if err != nil {
		return nil, err
	}
	a.entries = append(a.entries, NewAccessOutcomeIn(a.index, inBounds, ZeroValue(elem)))
	return a, nil
}

func (a *Array) Type() string     { return val.ArrayPrefix + a.elem }
func (a *Array) Origin() string   { return a.origin }
func (a *Array) Epoch() int64     { return a.epoch }
func (a *Array) IsSymbolic() bool { return a.symbolic }

// ElemType returns the static type of the elements.
func (a *Array) ElemType() string { return a.elem }

// Length returns the length of the array.
func (a *Array) Length() val.Primitive { return a.length }

// Index returns the term the entry guards are expressed over.
func (a *Array) Index() *val.Term { return a.index }

// Entries returns the in-bounds entries.
func (a *Array) Entries() []*AccessOutcomeIn { return a.entries }

// SetEntries replaces the in-bounds entries.
func (a *Array) SetEntries(entries []*AccessOutcomeIn) { a.entries = entries }

// InBounds returns 0 <= index && index < length.
func (a *Array) InBounds(index val.Primitive) (val.Primitive, error) {
	lo, err := val.Le(val.Int32(0), index)
	if err != nil {
		return nil, err
	}
	hi, err := val.Lt(index, a.length)
	if err != nil {
		return nil, err
	}
	return val.And(lo, hi)
}

// Set records that the array holds v at index. A write must first be
// completed on the existing entries so that they no longer cover index.
func (a *Array) Set(index val.Primitive, v val.Value) error {
	guard, err := val.Eq(a.index, index)
	if err != nil {
		return err
	}
	a.entries = append(a.entries, NewAccessOutcomeIn(a.index, guard, v))
	return nil
}

// Get returns the possible outcomes of reading the array at index.
// Outcomes whose guard is concretely false are omitted. Reading a symbolic
// array where no entry applies yields a fresh value created through s.
func (a *Array) Get(s *State, index val.Primitive) ([]*ArrayAccess, error) {
	inBounds, err := a.InBounds(index)
	if err != nil {
		return nil, err
	}
	var accesses []*ArrayAccess
	var covered val.Primitive = val.Bool(false)
	for _, e := range a.entries {
		guard, err := e.InRange(index)
		if err != nil {
			return nil, err
		}
		if covered, err = val.Or(covered, guard); err != nil {
			return nil, err
		}
		accesses = append(accesses, &ArrayAccess{Guard: guard, Value: e.Value})
	}

	if a.symbolic {
		notCovered, err := val.Not(covered)
		if err != nil {
			return nil, err
		}
		guard, err := val.And(inBounds, notCovered)
		if err != nil {
			return nil, err
		}
		origin := fmt.Sprintf("%s[%s]", a.origin, index)
		accesses = append(accesses, &ArrayAccess{Guard: guard, Value: s.freshValue(a.elem, origin), Fresh: true})
	}

	outOfBounds, err := val.Not(inBounds)
	if err != nil {
		return nil, err
	}
	accesses = append(accesses, &ArrayAccess{Guard: outOfBounds})

	result := accesses[:0]
	for _, access := range accesses {
		if c, ok := access.Guard.(*val.Simplex); ok && !c.Bool() {
			continue
		}
		result = append(result, access)
	}
	return result, nil
}

func (a *Array) String() string {
	if a.symbolic {
		return fmt.Sprintf("%s{%s}", a.Type(), a.origin)
	}
	return a.Type()
}

func (a *Array) clone() *Array {
	c := *a
	c.entries = make([]*AccessOutcomeIn, len(a.entries))
	for i, e := range a.entries {
		entry := *e
		c.entries[i] = &entry
	}
	return &c
}

// ZeroValue returns the default value of the static type s.
func ZeroValue(s string) val.Value {
	if t, ok := val.ParseType(s); ok {
		return val.NewSimplex(t, 0)
	}
	return val.Null()
}
