package val

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidType is the cause of the errors returned when an operator
// is applied to operands of a wrong type.
var ErrInvalidType = errors.New("invalid type")

// Operator is an operator of an Expression.
type Operator int

// Operators.
const (
	ADD Operator = iota
	SUB
	MUL
	NEG
	EQ
	NE
	LT
	LE
	GT
	GE
	AND
	OR
	NOT
)

var operatorNames = [...]string{
	ADD: "+",
	SUB: "-",
	MUL: "*",
	NEG: "-",
	EQ:  "==",
	NE:  "!=",
	LT:  "<",
	LE:  "<=",
	GT:  ">",
	GE:  ">=",
	AND: "&&",
	OR:  "||",
	NOT: "!",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorNames) {
		return "?"
	}
	return operatorNames[op]
}

// IsUnary returns true for NEG and NOT.
func (op Operator) IsUnary() bool {
	return op == NEG || op == NOT
}

// IsComparison returns true for the relational operators.
func (op Operator) IsComparison() bool {
	switch op {
	case EQ, NE, LT, LE, GT, GE:
		return true
	}
	return false
}

// Expression is a symbolic primitive value built by applying an
// operator to other primitives. Y is nil for unary operators.
type Expression struct {
	typ Type
	op  Operator
	x   Primitive
	y   Primitive
}

// Type returns the type of the value.
func (e *Expression) Type() Type {
	return e.typ
}

// Operator returns the operator of the expression.
func (e *Expression) Operator() Operator {
	return e.op
}

// X returns the first operand.
func (e *Expression) X() Primitive {
	return e.x
}

// Y returns the second operand, or nil if the operator is unary.
func (e *Expression) Y() Primitive {
	return e.y
}

func (e *Expression) String() string {
	if e.op.IsUnary() {
		return fmt.Sprintf("%s%s", e.op, e.x)
	}
	return fmt.Sprintf("(%s %s %s)", e.x, e.op, e.y)
}

func (*Expression) isPrimitive() {}

// CheckComparable returns an error unless values of type x and y
// may be compared by the relational operators.
func CheckComparable(x, y Type) error {
	if x != y || !x.IsIntegral() {
		return errors.Wrapf(ErrInvalidType, "cannot compare %s with %s", x, y)
	}
	return nil
}

// Add returns x + y.
func Add(x, y Primitive) (Primitive, error) { return Apply(ADD, x, y) }

// Sub returns x - y.
func Sub(x, y Primitive) (Primitive, error) { return Apply(SUB, x, y) }

// Mul returns x * y.
func Mul(x, y Primitive) (Primitive, error) { return Apply(MUL, x, y) }

// Neg returns -x.
func Neg(x Primitive) (Primitive, error) { return Apply(NEG, x, nil) }

// Eq returns x == y.
func Eq(x, y Primitive) (Primitive, error) { return Apply(EQ, x, y) }

// Ne returns x != y.
func Ne(x, y Primitive) (Primitive, error) { return Apply(NE, x, y) }

// Lt returns x < y.
func Lt(x, y Primitive) (Primitive, error) { return Apply(LT, x, y) }

// Le returns x <= y.
func Le(x, y Primitive) (Primitive, error) { return Apply(LE, x, y) }

// Gt returns x > y.
func Gt(x, y Primitive) (Primitive, error) { return Apply(GT, x, y) }

// Ge returns x >= y.
func Ge(x, y Primitive) (Primitive, error) { return Apply(GE, x, y) }

// And returns x && y.
func And(x, y Primitive) (Primitive, error) { return Apply(AND, x, y) }

// Or returns x || y.
func Or(x, y Primitive) (Primitive, error) { return Apply(OR, x, y) }

// Not returns !x.
func Not(x Primitive) (Primitive, error) { return Apply(NOT, x, nil) }

// resultType type-checks the operands of op and returns the type of the result.
func resultType(op Operator, x, y Primitive) (Type, error) {
	if x == nil || (!op.IsUnary() && y == nil) {
		return Unknown, errors.Wrapf(ErrInvalidType, "missing operand for %s", op)
	}
	tx := x.Type()
	switch op {
	case NEG:
		if !tx.IsIntegral() {
			return Unknown, errors.Wrapf(ErrInvalidType, "operator %s applied to %s", op, tx)
		}
		return tx, nil
	case NOT:
		if tx != Boolean {
			return Unknown, errors.Wrapf(ErrInvalidType, "operator %s applied to %s", op, tx)
		}
		return Boolean, nil
	}
	ty := y.Type()
	if tx != ty {
		return Unknown, errors.Wrapf(ErrInvalidType, "operator %s applied to %s and %s", op, tx, ty)
	}
	switch op {
	case ADD, SUB, MUL:
		if !tx.IsIntegral() {
			return Unknown, errors.Wrapf(ErrInvalidType, "operator %s applied to %s", op, tx)
		}
		return tx, nil
	case EQ, NE:
		if !tx.IsPrimitive() {
			return Unknown, errors.Wrapf(ErrInvalidType, "operator %s applied to %s", op, tx)
		}
		return Boolean, nil
	case LT, LE, GT, GE:
		if !tx.IsIntegral() {
			return Unknown, errors.Wrapf(ErrInvalidType, "operator %s applied to %s", op, tx)
		}
		return Boolean, nil
	case AND, OR:
		if tx != Boolean {
			return Unknown, errors.Wrapf(ErrInvalidType, "operator %s applied to %s", op, tx)
		}
		return Boolean, nil
	}
	return Unknown, errors.Errorf("unknown operator %d", op)
}

// Apply applies op to x and y (y is ignored by unary operators).
// Concrete operands yield a Simplex; an Any operand yields Any.
func Apply(op Operator, x, y Primitive) (Primitive, error) {
	typ, err := resultType(op, x, y)
	if err != nil {
		return nil, err
	}
	if op.IsUnary() {
		y = nil
	}

	if isAny(x) || isAny(y) {
		return AnyOf(typ), nil
	}

	sx, xok := x.(*Simplex)
	sy, yok := y.(*Simplex)
	if xok && (op.IsUnary() || yok) {
		var vy int64
		if yok {
			vy = sy.v
		}
		return NewSimplex(typ, fold(op, x.Type(), sx.v, vy)), nil
	}

	switch op {
	case AND:
		if xok {
			if sx.Bool() {
				return y, nil
			}
			return sx, nil
		}
		if yok {
			if sy.Bool() {
				return x, nil
			}
			return sy, nil
		}
	case OR:
		if xok {
			if sx.Bool() {
				return sx, nil
			}
			return y, nil
		}
		if yok {
			if sy.Bool() {
				return sy, nil
			}
			return x, nil
		}
	case NOT:
		if e, ok := x.(*Expression); ok && e.op == NOT {
			return e.x, nil
		}
	}

	return &Expression{typ: typ, op: op, x: x, y: y}, nil
}

func isAny(p Primitive) bool {
	_, ok := p.(*Any)
	return ok
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// fold computes op on concrete operands of type t.
func fold(op Operator, t Type, x, y int64) int64 {
	switch op {
	case ADD:
		return t.wrap(x + y)
	case SUB:
		return t.wrap(x - y)
	case MUL:
		return t.wrap(x * y)
	case NEG:
		return t.wrap(-x)
	case EQ:
		return boolToInt(x == y)
	case NE:
		return boolToInt(x != y)
	case LT:
		return boolToInt(x < y)
	case LE:
		return boolToInt(x <= y)
	case GT:
		return boolToInt(x > y)
	case GE:
		return boolToInt(x >= y)
	case AND:
		return boolToInt(x != 0 && y != 0)
	case OR:
		return boolToInt(x != 0 || y != 0)
	case NOT:
		return boolToInt(x == 0)
	}
	panic("unreachable")
}
