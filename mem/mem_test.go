package mem

import (
	"fmt"
	"testing"

	"github.com/ajalab/symdec/hier"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

func newListState() *State {
	h := hier.NewTable().
		Interface("List").
		Class("Node", "", "List")
	return NewState(h)
}

func TestStateExpandAndAlias(t *testing.T) {
	s := newListState()
	head := s.NewReferenceSymbolic("Node", "head")
	if s.IsResolved(head) {
		t.Fatal("fresh reference should not be resolved")
	}
	if !s.IsResolved(val.Int32(1)) || !s.IsResolved(val.Null()) {
		t.Fatal("non symbolic references are always resolved")
	}

	pos, err := s.AssumeExpands(head, "Node")
	if err != nil {
		t.Fatal(err)
	}
	o, err := s.Deref(head)
	if err != nil {
		t.Fatal(err)
	}
	if o.Type() != "Node" || !o.IsSymbolic() || o.Epoch() != head.Epoch() {
		t.Errorf("unexpected object %v (epoch %d)", o, o.Epoch())
	}

	next, err := s.ReadField(head, "next", "Node")
	if err != nil {
		t.Fatal(err)
	}
	nextRef, ok := next.(*val.ReferenceSymbolic)
	if !ok {
		t.Fatalf("expected a symbolic reference, got %T", next)
	}
	if nextRef.Origin() != "head.next" || nextRef.Epoch() <= head.Epoch() {
		t.Errorf("unexpected reference %s (epoch %d)", nextRef, nextRef.Epoch())
	}
	again, _ := s.ReadField(head, "next", "Node")
	if again != next {
		t.Error("reading a field twice should yield the same value")
	}

	if err := s.AssumeAliases(nextRef, pos); err != nil {
		t.Fatal(err)
	}
	if p, _ := s.Resolution(nextRef); p != pos {
		t.Errorf("expected resolution %d, actual %d", pos, p)
	}
	if err := s.AssumeNull(nextRef); err == nil {
		t.Error("resolving twice should fail")
	}

	var kinds []string
	for _, c := range s.PathCondition() {
		kinds = append(kinds, fmt.Sprintf("%T", c))
	}
	expected := []string{"*mem.ClauseAssumeClassInitialized", "*mem.ClauseAssumeExpands", "*mem.ClauseAssumeAliases"}
	if fmt.Sprint(kinds) != fmt.Sprint(expected) {
		t.Errorf("expected %v, actual %v", expected, kinds)
	}
}

func TestStateNull(t *testing.T) {
	s := newListState()
	ref := s.NewReferenceSymbolic("Node", "x")
	if err := s.AssumeNull(ref); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Deref(ref); errors.Cause(err) != ErrNullDereference {
		t.Errorf("expected ErrNullDereference, got %v", err)
	}
}

func TestStateClone(t *testing.T) {
	s := newListState()
	ref, inst := s.NewInstance("Node")
	inst.SetField("value", val.Int32(1))
	c := s.Clone()
	if err := c.Assume(val.NewTerm(val.Boolean, "b")); err != nil {
		t.Fatal(err)
	}
	o, _ := c.Deref(ref)
	o.(*Instance).SetField("value", val.Int32(2))

	if len(s.PathCondition()) != 0 {
		t.Error("clone shares the path condition")
	}
	if v, _ := inst.Field("value"); v.String() != "1" {
		t.Errorf("clone shares the heap: %s", v)
	}
}

func TestArrayGet(t *testing.T) {
	s := newListState()
	_, concrete, err := s.NewArray("int", val.Int32(3))
	if err != nil {
		t.Fatal(err)
	}
	accesses, err := concrete.Get(s, val.Int32(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(accesses) != 1 || accesses[0].Value.String() != "0" || accesses[0].Fresh {
		t.Fatalf("unexpected accesses %+v", accesses)
	}
	accesses, err = concrete.Get(s, val.Int32(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(accesses) != 1 || accesses[0].Value != nil {
		t.Fatalf("expected out of bounds, got %+v", accesses)
	}

	ref := s.NewReferenceSymbolic("[]int", "a")
	pos, err := s.AssumeExpands(ref, "[]int")
	if err != nil {
		t.Fatal(err)
	}
	o, _ := s.Object(pos)
	a := o.(*Array)
	i := val.NewTerm(val.Int, "i")
	accesses, err = a.Get(s, i)
	if err != nil {
		t.Fatal(err)
	}
	if len(accesses) != 2 {
		t.Fatalf("expected fresh and out of bounds outcomes, got %+v", accesses)
	}
	if !accesses[0].Fresh || accesses[0].Value.String() != "a[i]" {
		t.Errorf("unexpected fresh outcome %+v", accesses[0])
	}
	if accesses[1].Value != nil {
		t.Errorf("unexpected out of bounds outcome %+v", accesses[1])
	}

	if err := a.Set(i, accesses[0].Value); err != nil {
		t.Fatal(err)
	}
	j := val.NewTerm(val.Int, "j")
	accesses, err = a.Get(s, j)
	if err != nil {
		t.Fatal(err)
	}
	if len(accesses) != 3 || accesses[0].Value.String() != "a[i]" {
		t.Fatalf("unexpected accesses %+v", accesses)
	}
	for k, m := range []val.Model{{"i": 1, "j": 1, "a.length": 2}, {"i": 0, "j": 1, "a.length": 2}} {
		v, err := val.Eval(accesses[0].Guard, m)
		if err != nil {
			t.Fatal(err)
		}
		if (v == 1) != (k == 0) {
			t.Errorf("%d: unexpected guard value %d for %s", k, v, accesses[0].Guard)
		}
	}
}

func TestAccessOutcomeInConstrain(t *testing.T) {
	index := val.NewTerm(val.Int, "INDEX")
	guard, _ := val.Lt(index, val.Int32(4))
	e := NewAccessOutcomeIn(index, guard, val.Int32(7))

	inRange, err := e.InRange(val.Int32(2))
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := inRange.(*val.Simplex); !ok || !c.Bool() {
		t.Fatalf("expected true, got %s", inRange)
	}

	if err := e.Constrain(val.Int32(2)); err != nil {
		t.Fatal(err)
	}
	inRange, err = e.InRange(val.Int32(2))
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := inRange.(*val.Simplex); !ok || c.Bool() {
		t.Fatalf("expected false, got %s", inRange)
	}
}
