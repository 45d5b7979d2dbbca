package frontend

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/ajalab/symdec/hier"
	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"
)

// translator maps the SSA values of a function to the value model.
// Parameters become terms or symbolic references; values the model cannot
// express precisely (calls, phis, divisions...) become fresh terms, which
// over-approximates them.
type translator struct {
	fn     *ssa.Function
	h      *hier.GoTypes
	state  *mem.State
	values map[ssa.Value]val.Value
	// lengths holds the length terms of slices, by origin.
	lengths map[string]*val.Term
	// stored holds the addresses written by the function.
	stored map[string]bool
}

func newTranslator(fn *ssa.Function, h *hier.GoTypes) *translator {
	t := &translator{
		fn:      fn,
		h:       h,
		state:   mem.NewState(h),
		values:  make(map[ssa.Value]val.Value),
		lengths: make(map[string]*val.Term),
		stored:  make(map[string]bool),
	}
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			if store, ok := instr.(*ssa.Store); ok {
				if key, ok := t.addressKey(store.Addr); ok {
					t.stored[key] = true
				}
			}
		}
	}
	return t
}

// addressKey names the memory location addr points to, if it is derived
// from a parameter.
func (t *translator) addressKey(addr ssa.Value) (string, bool) {
	switch addr := addr.(type) {
	case *ssa.Parameter:
		return "*" + addr.Name(), true
	case *ssa.FieldAddr:
		base, ok := t.addressKey(addr.X)
		if !ok {
			return "", false
		}
		return base + "." + fieldName(addr.X.Type(), addr.Field), true
	case *ssa.UnOp:
		if addr.Op == token.MUL {
			return t.addressKey(addr.X)
		}
	}
	return "", false
}

func fieldName(ptr types.Type, i int) string {
	if p, ok := ptr.Underlying().(*types.Pointer); ok {
		if s, ok := p.Elem().Underlying().(*types.Struct); ok {
			return s.Field(i).Name()
		}
	}
	return fmt.Sprintf("#%d", i)
}

// primitive translates v, which must have a primitive type.
func (t *translator) primitive(v ssa.Value) (val.Primitive, error) {
	tv, err := t.translate(v)
	if err != nil {
		return nil, err
	}
	p, ok := tv.(val.Primitive)
	if !ok {
		return nil, errors.Wrapf(val.ErrInvalidType, "%s is not primitive", v.Name())
	}
	return p, nil
}

// reference translates v, which must have a reference type.
func (t *translator) reference(v ssa.Value) (val.Ref, error) {
	tv, err := t.translate(v)
	if err != nil {
		return nil, err
	}
	r, ok := tv.(val.Ref)
	if !ok {
		return nil, errors.Wrapf(val.ErrInvalidType, "%s is not a reference", v.Name())
	}
	return r, nil
}

func (t *translator) translate(v ssa.Value) (val.Value, error) {
	if tv, ok := t.values[v]; ok {
		return tv, nil
	}
	tv, err := t.translateValue(v)
	if err != nil {
		return nil, err
	}
	t.values[v] = tv
	return tv, nil
}

func (t *translator) translateValue(v ssa.Value) (val.Value, error) {
	switch v := v.(type) {
	case *ssa.Const:
		return t.constant(v)
	case *ssa.Parameter:
		return t.symbol(v.Type(), v.Name())
	case *ssa.BinOp:
		return t.binop(v)
	case *ssa.UnOp:
		return t.unop(v)
	case *ssa.Convert:
		x, err := t.primitive(v.X)
		if err != nil {
			return nil, err
		}
		typ, err := primitiveType(v.Type())
		if err != nil {
			return nil, err
		}
		if x.Type() == typ {
			return x, nil
		}
	case *ssa.Call:
		if b, ok := v.Call.Value.(*ssa.Builtin); ok && b.Name() == "len" {
			if _, ok := v.Call.Args[0].Type().Underlying().(*types.Slice); ok {
				return t.length(v.Call.Args[0])
			}
		}
	}
	return t.fresh(v)
}

// fresh returns a fresh value standing for v.
func (t *translator) fresh(v ssa.Value) (val.Value, error) {
	return t.symbol(v.Type(), "%"+v.Name())
}

// symbol returns a symbolic value of type typ named name.
func (t *translator) symbol(typ types.Type, name string) (val.Value, error) {
	if isReference(typ) {
		static, err := staticType(t.h, typ)
		if err != nil {
			return nil, err
		}
		ref := t.state.NewReferenceSymbolic(static, name)
		if val.IsArrayType(static) {
			if _, err := t.lengthOf(ref); err != nil {
				return nil, err
			}
		}
		return ref, nil
	}
	p, err := primitiveType(typ)
	if err != nil {
		return nil, err
	}
	return val.NewTerm(p, name), nil
}

func (t *translator) constant(c *ssa.Const) (val.Value, error) {
	if c.IsNil() {
		return val.Null(), nil
	}
	typ, err := primitiveType(c.Type())
	if err != nil {
		return nil, err
	}
	if typ == val.Boolean {
		return val.Bool(constant.BoolVal(c.Value)), nil
	}
	n, exact := constant.Int64Val(constant.ToInt(c.Value))
	if !exact {
		return nil, errors.Errorf("constant %s overflows %s", c.Value, typ)
	}
	return val.NewSimplex(typ, n), nil
}

// length returns the length term of the slice v.
func (t *translator) length(v ssa.Value) (val.Value, error) {
	ref, err := t.reference(v)
	if err != nil {
		return nil, err
	}
	r, ok := ref.(*val.ReferenceSymbolic)
	if !ok {
		return nil, errors.Errorf("length of the concrete slice %s", v.Name())
	}
	return t.lengthOf(r)
}

// lengthOf returns the length term of a symbolic slice and assumes it is
// not negative the first time.
func (t *translator) lengthOf(ref *val.ReferenceSymbolic) (*val.Term, error) {
	if l, ok := t.lengths[ref.Origin()]; ok {
		return l, nil
	}
	typ, err := basicType(types.Typ[types.Int])
	if err != nil {
		return nil, err
	}
	l := val.NewTerm(typ, ref.Origin()+".length")
	cond, err := val.Ge(l, val.NewSimplex(typ, 0))
	if err != nil {
		return nil, err
	}
	if err := t.state.Assume(cond); err != nil {
		return nil, err
	}
	t.lengths[ref.Origin()] = l
	return l, nil
}

func (t *translator) binop(v *ssa.BinOp) (val.Value, error) {
	if isReference(v.X.Type()) {
		return t.fresh(v)
	}
	var op val.Operator
	switch v.Op {
	case token.ADD:
		op = val.ADD
	case token.SUB:
		op = val.SUB
	case token.MUL:
		op = val.MUL
	case token.EQL:
		op = val.EQ
	case token.NEQ:
		op = val.NE
	case token.LSS:
		op = val.LT
	case token.LEQ:
		op = val.LE
	case token.GTR:
		op = val.GT
	case token.GEQ:
		op = val.GE
	default:
		return t.fresh(v)
	}
	x, err := t.primitive(v.X)
	if err != nil {
		return nil, err
	}
	y, err := t.primitive(v.Y)
	if err != nil {
		return nil, err
	}
	return val.Apply(op, x, y)
}

func (t *translator) unop(v *ssa.UnOp) (val.Value, error) {
	switch v.Op {
	case token.SUB:
		x, err := t.primitive(v.X)
		if err != nil {
			return nil, err
		}
		return val.Neg(x)
	case token.NOT:
		x, err := t.primitive(v.X)
		if err != nil {
			return nil, err
		}
		return val.Not(x)
	case token.MUL:
		key, ok := t.addressKey(v.X)
		if !ok || t.stored[key] {
			return t.fresh(v)
		}
		return t.symbol(v.Type(), key)
	}
	return t.fresh(v)
}
