package mem

import (
	"github.com/ajalab/symdec/hier"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// ErrNullDereference is the cause of the errors returned when a null
// reference is dereferenced.
var ErrNullDereference = errors.New("null dereference")

// State is the part of an execution state needed to decide and refine:
// the heap, the path condition and the resolution of symbolic references.
// Heap positions start at 1; val.NullPosition denotes null.
type State struct {
	hierarchy     hier.ClassHierarchy
	pathCondition []Clause
	heap          map[int64]Objekt
	resolved      map[*val.ReferenceSymbolic]int64
	nextPos       int64
	epoch         int64
}

// NewState returns an empty state over the class hierarchy h.
func NewState(h hier.ClassHierarchy) *State {
	return &State{
		hierarchy: h,
		heap:      make(map[int64]Objekt),
		resolved:  make(map[*val.ReferenceSymbolic]int64),
		nextPos:   1,
	}
}

// Hierarchy returns the class hierarchy.
func (s *State) Hierarchy() hier.ClassHierarchy {
	return s.hierarchy
}

// PathCondition returns the clauses assumed so far, in order.
func (s *State) PathCondition() []Clause {
	return s.pathCondition
}

// IsResolved returns false only for a symbolic reference whose target
// has not been assumed yet.
func (s *State) IsResolved(v val.Value) bool {
	ref, ok := v.(*val.ReferenceSymbolic)
	if !ok {
		return true
	}
	_, ok = s.resolved[ref]
	return ok
}

// Resolution returns the heap position ref was resolved to.
func (s *State) Resolution(ref *val.ReferenceSymbolic) (int64, bool) {
	pos, ok := s.resolved[ref]
	return pos, ok
}

// Object returns the object at the heap position pos.
func (s *State) Object(pos int64) (Objekt, bool) {
	o, ok := s.heap[pos]
	return o, ok
}

// NextEpoch advances and returns the creation epoch.
func (s *State) NextEpoch() int64 {
	s.epoch++
	return s.epoch
}

// NewReferenceSymbolic returns a symbolic reference created now.
func (s *State) NewReferenceSymbolic(staticType, origin string) *val.ReferenceSymbolic {
	return val.NewReferenceSymbolic(staticType, origin, s.NextEpoch())
}

func (s *State) freshValue(staticType, origin string) val.Value {
	if t, ok := val.ParseType(staticType); ok {
		return val.NewTerm(t, origin)
	}
	return s.NewReferenceSymbolic(staticType, origin)
}

func (s *State) allocate(o Objekt) int64 {
	pos := s.nextPos
	s.nextPos++
	s.heap[pos] = o
	return pos
}

// NewInstance allocates a concrete instance of class.
func (s *State) NewInstance(class string) (*val.ReferenceConcrete, *Instance) {
	o := NewConcreteInstance(class, s.NextEpoch())
	return val.NewReferenceConcrete(s.allocate(o)), o
}

// NewArray allocates a concrete array of elem.
func (s *State) NewArray(elem string, length val.Primitive) (*val.ReferenceConcrete, *Array, error) {
	a, err := NewConcreteArray(elem, length, s.NextEpoch())
	if err != nil {
		return nil, nil, err
	}
	return val.NewReferenceConcrete(s.allocate(a)), a, nil
}

// Assume adds a boolean condition to the path condition.
func (s *State) Assume(cond val.Primitive) error {
	if cond.Type() != val.Boolean {
		return errors.Wrapf(val.ErrInvalidType, "cannot assume %s %s", cond.Type(), cond)
	}
	s.pathCondition = append(s.pathCondition, &ClauseAssume{Cond: cond})
	return nil
}

func (s *State) checkUnresolved(ref *val.ReferenceSymbolic) error {
	if pos, ok := s.resolved[ref]; ok {
		return errors.Errorf("%s is already resolved to %d", ref, pos)
	}
	return nil
}

// AssumeExpands assumes ref points to a fresh symbolic object of class and
// returns its heap position. The class is assumed initialized.
func (s *State) AssumeExpands(ref *val.ReferenceSymbolic, class string) (int64, error) {
	if err := s.checkUnresolved(ref); err != nil {
		return 0, err
	}
	var o Objekt
	var lengthCond val.Primitive
	if val.IsArrayType(class) {
		length := val.NewTerm(val.Int, ref.Origin()+".length")
		cond, err := val.Ge(length, val.Int32(0))
		if err != nil {
			return 0, err
		}
		lengthCond = cond
		o = NewArray(val.ElemType(class), length, ref.Origin(), ref.Epoch())
	} else {
		if !s.isInitialized(class) {
			s.AssumeClassInitialized(class)
		}
		o = NewInstance(class, ref.Origin(), ref.Epoch())
	}
	pos := s.allocate(o)
	s.resolved[ref] = pos
	s.pathCondition = append(s.pathCondition, &ClauseAssumeExpands{Ref: ref, HeapPosition: pos, Object: o})
	if lengthCond != nil {
		s.pathCondition = append(s.pathCondition, &ClauseAssume{Cond: lengthCond})
	}
	return pos, nil
}

// AssumeAliases assumes ref points to the object at pos.
func (s *State) AssumeAliases(ref *val.ReferenceSymbolic, pos int64) error {
	if err := s.checkUnresolved(ref); err != nil {
		return err
	}
	o, ok := s.heap[pos]
	if !ok {
		return errors.Errorf("no object at heap position %d", pos)
	}
	s.resolved[ref] = pos
	s.pathCondition = append(s.pathCondition, &ClauseAssumeAliases{Ref: ref, HeapPosition: pos, Object: o})
	return nil
}

// AssumeNull assumes ref is null.
func (s *State) AssumeNull(ref *val.ReferenceSymbolic) error {
	if err := s.checkUnresolved(ref); err != nil {
		return err
	}
	s.resolved[ref] = val.NullPosition
	s.pathCondition = append(s.pathCondition, &ClauseAssumeNull{Ref: ref})
	return nil
}

func (s *State) isInitialized(class string) bool {
	for _, c := range s.pathCondition {
		if c, ok := c.(*ClauseAssumeClassInitialized); ok && c.Class == class {
			return true
		}
	}
	return false
}

// AssumeClassInitialized assumes class was initialized before the execution.
func (s *State) AssumeClassInitialized(class string) {
	s.pathCondition = append(s.pathCondition, &ClauseAssumeClassInitialized{Class: class})
}

// AssumeClassNotInitialized assumes class was not initialized before the execution.
func (s *State) AssumeClassNotInitialized(class string) {
	s.pathCondition = append(s.pathCondition, &ClauseAssumeClassNotInitialized{Class: class})
}

// Deref returns the object ref points to. It fails on null and on
// unresolved symbolic references.
func (s *State) Deref(ref val.Ref) (Objekt, error) {
	var pos int64
	switch ref := ref.(type) {
	case *val.ReferenceConcrete:
		pos = ref.HeapPosition()
	case *val.ReferenceSymbolic:
		p, ok := s.resolved[ref]
		if !ok {
			return nil, errors.Errorf("%s is not resolved", ref)
		}
		pos = p
	default:
		return nil, errors.Errorf("unexpected reference %T", ref)
	}
	if pos == val.NullPosition {
		return nil, errors.Wrapf(ErrNullDereference, "%s", ref)
	}
	o, ok := s.heap[pos]
	if !ok {
		return nil, errors.Errorf("no object at heap position %d", pos)
	}
	return o, nil
}

// ReadField reads the field name of the instance ref points to. An unassigned
// field of a symbolic instance gets a fresh symbolic value whose origin
// extends the origin of the instance.
func (s *State) ReadField(ref val.Ref, name, staticType string) (val.Value, error) {
	o, err := s.Deref(ref)
	if err != nil {
		return nil, err
	}
	inst, ok := o.(*Instance)
	if !ok {
		return nil, errors.Errorf("%s is not an instance", o.Type())
	}
	if v, ok := inst.Field(name); ok {
		return v, nil
	}
	var v val.Value
	if inst.IsSymbolic() {
		v = s.freshValue(staticType, inst.Origin()+"."+name)
	} else {
		v = ZeroValue(staticType)
	}
	inst.SetField(name, v)
	return v, nil
}

// Clone returns a deep copy of s. Values and references are shared.
func (s *State) Clone() *State {
	c := &State{
		hierarchy:     s.hierarchy,
		pathCondition: append([]Clause(nil), s.pathCondition...),
		heap:          make(map[int64]Objekt, len(s.heap)),
		resolved:      make(map[*val.ReferenceSymbolic]int64, len(s.resolved)),
		nextPos:       s.nextPos,
		epoch:         s.epoch,
	}
	for pos, o := range s.heap {
		switch o := o.(type) {
		case *Instance:
			c.heap[pos] = o.clone()
		case *Array:
			c.heap[pos] = o.clone()
		default:
			c.heap[pos] = o
		}
	}
	for ref, pos := range s.resolved {
		c.resolved[ref] = pos
	}
	return c
}
