package val

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestApplyConcrete(t *testing.T) {
	testCases := []struct {
		op       Operator
		x, y     Primitive
		expected string
	}{
		{ADD, Int32(2), Int32(3), "5"},
		{ADD, Int32(2147483647), Int32(1), "-2147483648"},
		{SUB, NewSimplex(Byte, -128), NewSimplex(Byte, 1), "127"},
		{MUL, NewSimplex(Char, 300), NewSimplex(Char, 300), "24464"},
		{NEG, Int64(7), nil, "-7"},
		{LT, Int32(1), Int32(2), "true"},
		{GE, Int32(1), Int32(2), "false"},
		{EQ, Bool(true), Bool(true), "true"},
		{NE, Int64(4), Int64(4), "false"},
		{AND, Bool(true), Bool(false), "false"},
		{OR, Bool(true), Bool(false), "true"},
		{NOT, Bool(false), nil, "true"},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			p, err := Apply(tc.op, tc.x, tc.y)
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := p.(*Simplex); !ok {
				t.Fatalf("expected a concrete value, got %T", p)
			}
			if p.String() != tc.expected {
				t.Errorf("expected %s, actual %s", tc.expected, p)
			}
		})
	}
}

func TestApplyAny(t *testing.T) {
	x := NewTerm(Int, "x")
	p, err := Lt(x, AnyOf(Int))
	if err != nil {
		t.Fatal(err)
	}
	a, ok := p.(*Any)
	if !ok {
		t.Fatalf("expected Any, got %T", p)
	}
	if a.Type() != Boolean {
		t.Errorf("expected boolean, got %s", a.Type())
	}
}

func TestApplyInvalidType(t *testing.T) {
	testCases := []struct {
		op   Operator
		x, y Primitive
	}{
		{ADD, Int32(1), Int64(1)},
		{LT, Bool(true), Bool(false)},
		{AND, Int32(1), Int32(1)},
		{NOT, Int32(1), nil},
		{NEG, Bool(true), nil},
		{EQ, Int32(1), nil},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			_, err := Apply(tc.op, tc.x, tc.y)
			if errors.Cause(err) != ErrInvalidType {
				t.Errorf("expected ErrInvalidType, got %v", err)
			}
		})
	}
}

func TestSimplifyLogical(t *testing.T) {
	x := NewTerm(Boolean, "b")
	p, _ := And(Bool(true), x)
	if p != Primitive(x) {
		t.Errorf("true && b should be b, got %s", p)
	}
	p, _ = Or(x, Bool(true))
	if s, ok := p.(*Simplex); !ok || !s.Bool() {
		t.Errorf("b || true should be true, got %s", p)
	}
	n, _ := Not(x)
	p, _ = Not(n)
	if p != Primitive(x) {
		t.Errorf("!!b should be b, got %s", p)
	}
}

func TestReplaceAndEval(t *testing.T) {
	index := NewTerm(Int, "INDEX")
	i := NewTerm(Int, "i")
	lo, _ := Le(Int32(0), index)
	hi, _ := Lt(index, Int32(3))
	guard, _ := And(lo, hi)

	concrete, err := Replace(guard, index, Int32(5))
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := concrete.(*Simplex); !ok || s.Bool() {
		t.Errorf("expected false, got %s", concrete)
	}

	symbolic, err := Replace(guard, index, i)
	if err != nil {
		t.Fatal(err)
	}
	if terms := Terms(symbolic); len(terms) != 1 || terms[0].Name() != "i" {
		t.Fatalf("unexpected terms %v", terms)
	}
	for v, expected := range map[int64]int64{-1: 0, 0: 1, 2: 1, 3: 0} {
		actual, err := Eval(symbolic, Model{"i": v})
		if err != nil {
			t.Fatal(err)
		}
		if actual != expected {
			t.Errorf("i = %d: expected %d, actual %d", v, expected, actual)
		}
	}

	if _, err := Replace(guard, index, Int64(1)); errors.Cause(err) != ErrInvalidType {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
}

func TestStaticTypes(t *testing.T) {
	testCases := []struct {
		s         string
		reference bool
		array     bool
	}{
		{"list.Node", true, false},
		{"[]int", false, true},
		{"[][]list.Node", false, true},
		{"int", false, false},
		{"[]", false, false},
		{"", false, false},
	}
	for _, tc := range testCases {
		if IsReferenceType(tc.s) != tc.reference || IsArrayType(tc.s) != tc.array {
			t.Errorf("%q: expected reference=%v array=%v", tc.s, tc.reference, tc.array)
		}
	}
}

func TestRefs(t *testing.T) {
	refs := []Ref{Null(), NewReferenceConcrete(3), NewReferenceSymbolic("List", "head", 1)}
	for i, r := range refs {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			if r.Type() != Reference {
				t.Errorf("%s: expected type %s, actual %s", r, Reference, r.Type())
			}
			if _, ok := Value(r).(Primitive); ok {
				t.Errorf("%s is a primitive", r)
			}
		})
	}
}
