package val

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Value is a concrete or symbolic value handled by the interpreter.
type Value interface {
	// Type returns the type of the value.
	Type() Type
	String() string
}

// Primitive is a value of a primitive type: a Simplex, an Any,
// a Term or an Expression.
type Primitive interface {
	Value
	isPrimitive()
}

// Simplex is a concrete primitive value.
type Simplex struct {
	typ Type
	v   int64
}

// NewSimplex returns a concrete value of type t. v is truncated to the width of t.
func NewSimplex(t Type, v int64) *Simplex {
	return &Simplex{typ: t, v: t.wrap(v)}
}

// Bool returns a concrete boolean.
func Bool(b bool) *Simplex {
	if b {
		return &Simplex{typ: Boolean, v: 1}
	}
	return &Simplex{typ: Boolean, v: 0}
}

// Int32 returns a concrete int.
func Int32(v int32) *Simplex {
	return &Simplex{typ: Int, v: int64(v)}
}

// Int64 returns a concrete long.
func Int64(v int64) *Simplex {
	return &Simplex{typ: Long, v: v}
}

// Type returns the type of the value.
func (s *Simplex) Type() Type {
	return s.typ
}

// Value returns the actual value. Booleans are 0 or 1.
func (s *Simplex) Value() int64 {
	return s.v
}

// Bool returns the actual value of a boolean.
func (s *Simplex) Bool() bool {
	return s.v != 0
}

func (s *Simplex) String() string {
	if s.typ == Boolean {
		return strconv.FormatBool(s.v != 0)
	}
	return strconv.FormatInt(s.v, 10)
}

func (*Simplex) isPrimitive() {}

// Any is the "don't care" value. It matches every alternative of a
// decision and never requires refinement.
type Any struct {
	typ Type
}

// AnyOf returns the "don't care" value of type t.
func AnyOf(t Type) *Any {
	return &Any{typ: t}
}

// Type returns the type of the value.
func (a *Any) Type() Type {
	return a.typ
}

func (a *Any) String() string {
	return "*"
}

func (*Any) isPrimitive() {}

// Term is a symbolic primitive value, i.e. a free variable.
// Two terms with the same name denote the same variable.
type Term struct {
	typ  Type
	name string
}

// NewTerm returns a symbolic primitive value of type t.
func NewTerm(t Type, name string) *Term {
	return &Term{typ: t, name: name}
}

// Type returns the type of the value.
func (t *Term) Type() Type {
	return t.typ
}

// Name returns the name of the variable.
func (t *Term) Name() string {
	return t.name
}

func (t *Term) String() string {
	return t.name
}

func (*Term) isPrimitive() {}

// Ref is a concrete or symbolic reference.
type Ref interface {
	Value
	isReference()
}

// NullPosition is the heap position denoted by the null reference.
const NullPosition int64 = 0

// ReferenceConcrete is a reference to a known heap position.
type ReferenceConcrete struct {
	pos int64
}

// NewReferenceConcrete returns a reference to the heap position pos.
func NewReferenceConcrete(pos int64) *ReferenceConcrete {
	return &ReferenceConcrete{pos: pos}
}

// Null returns the null reference.
func Null() *ReferenceConcrete {
	return &ReferenceConcrete{pos: NullPosition}
}

// Type returns Reference.
func (r *ReferenceConcrete) Type() Type {
	return Reference
}

// HeapPosition returns the referred heap position.
func (r *ReferenceConcrete) HeapPosition() int64 {
	return r.pos
}

// IsNull returns true if r is the null reference.
func (r *ReferenceConcrete) IsNull() bool {
	return r.pos == NullPosition
}

func (r *ReferenceConcrete) String() string {
	if r.IsNull() {
		return "null"
	}
	return fmt.Sprintf("Object[%d]", r.pos)
}

func (*ReferenceConcrete) isReference() {}

var referenceIDs int64

// ReferenceSymbolic is a reference whose target is not known yet.
// It is identified by its origin, the access path it was read from.
type ReferenceSymbolic struct {
	id         int64
	staticType string
	origin     string
	epoch      int64
}

// NewReferenceSymbolic returns a symbolic reference with the given static type
// (a class name, or an array type prefixed by ArrayPrefix), origin and creation epoch.
func NewReferenceSymbolic(staticType, origin string, epoch int64) *ReferenceSymbolic {
	return &ReferenceSymbolic{
		id:         atomic.AddInt64(&referenceIDs, 1),
		staticType: staticType,
		origin:     origin,
		epoch:      epoch,
	}
}

// Type returns Reference.
func (r *ReferenceSymbolic) Type() Type {
	return Reference
}

// ID returns a number unique to r in the process.
func (r *ReferenceSymbolic) ID() int64 {
	return r.id
}

// StaticType returns the static type of the reference.
func (r *ReferenceSymbolic) StaticType() string {
	return r.staticType
}

// Origin returns the access path the reference was read from.
func (r *ReferenceSymbolic) Origin() string {
	return r.origin
}

// Epoch returns the creation epoch of the reference.
func (r *ReferenceSymbolic) Epoch() int64 {
	return r.epoch
}

func (r *ReferenceSymbolic) String() string {
	return "{R" + strconv.FormatInt(r.id, 10) + ":" + r.origin + "}"
}

func (*ReferenceSymbolic) isReference() {}
