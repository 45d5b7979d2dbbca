package symdec

import (
	"fmt"
	"testing"

	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/val"
	"github.com/google/go-cmp/cmp"
)

func kinds(s *Alternatives[*ArrayLoadAlternative]) []string {
	strs := make([]string, s.Len())
	for i, a := range s.Items() {
		strs[i] = fmt.Sprintf("%d:%s", a.BranchNumber(), a.Kind)
	}
	return strs
}

func TestResolveAload(t *testing.T) {
	m := must(t)
	s := mem.NewState(listHierarchy())
	k := val.NewTerm(val.Int, "k")
	n := val.NewTerm(val.Int, "n")
	inBounds := m(val.And(m(val.Le(val.Int32(0), k)), m(val.Lt(k, n))))
	outOfBounds := m(val.Not(inBounds))
	ref := s.NewReferenceSymbolic("List", "a[k]")
	nonNegative := m(val.Ge(n, val.Int32(0)))
	empty := m(val.Eq(n, val.Int32(0)))

	testCases := []struct {
		assumptions []val.Primitive
		guard       val.Primitive
		value       val.Value
		fresh       bool
		expected    []string
		outcome     string
	}{
		{nil, nil, val.Int32(3), false, []string{"1:RESOLVED"}, "FFF"},
		{nil, nil, val.Int32(3), true, []string{"1:RESOLVED"}, "TFF"},
		{nil, val.Bool(true), val.Int32(3), false, []string{"1:RESOLVED"}, "FFF"},
		{nil, nil, nil, false, []string{"2:OUT"}, "FFF"},
		{[]val.Primitive{nonNegative}, inBounds, val.Int32(3), false, []string{"1:RESOLVED"}, "FTF"},
		{[]val.Primitive{nonNegative}, inBounds, val.Int32(3), true, []string{"1:RESOLVED"}, "TTF"},
		{[]val.Primitive{empty}, inBounds, val.Int32(3), false, []string{}, "FTF"},
		{[]val.Primitive{nonNegative}, outOfBounds, nil, false, []string{"2:OUT"}, "FTF"},
		{nil, nil, ref, true, []string{"1:EXPANDS", "2:EXPANDS", "3:NULL"}, "TTF"},
		{[]val.Primitive{nonNegative}, inBounds, ref, true, []string{"1:EXPANDS", "2:EXPANDS", "3:NULL"}, "TTF"},
		{[]val.Primitive{empty}, inBounds, ref, true, []string{}, "FTT"},
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			dp := newOracle(t, tc.assumptions...)
			result := NewAlternatives[*ArrayLoadAlternative]()
			outcome, err := ResolveAload(dp, s, tc.guard, tc.value, tc.fresh, result)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.expected, kinds(result)); diff != "" {
				t.Errorf("(-expected +actual)\n%s", diff)
			}
			if outcome.String() != tc.outcome {
				t.Errorf("expected outcome %s, actual %s", tc.outcome, outcome)
			}
			for _, a := range result.Items() {
				if a.IsConcrete() && a.Guard != nil {
					t.Errorf("%s: concrete access with guard %v", a, a.Guard)
				}
			}
		})
	}
}

func TestResolveAloadInvalid(t *testing.T) {
	s := mem.NewState(listHierarchy())
	dp := newOracle(t)
	result := NewAlternatives[*ArrayLoadAlternative]()

	_, err := ResolveAload(dp, s, val.Int32(1), val.Int32(3), false, result)
	if KindOf(err) != InvalidInput {
		t.Errorf("expected InvalidInput, got %v", err)
	}
	_, err = ResolveAload(nil, s, nil, val.Int32(3), false, result)
	if KindOf(err) != InvalidInput {
		t.Errorf("expected InvalidInput, got %v", err)
	}
	if result.Len() != 0 {
		t.Errorf("unexpected alternatives %s", result)
	}
}

func TestResolveAloadRefine(t *testing.T) {
	s := mem.NewState(listHierarchy())
	ref := s.NewReferenceSymbolic("[]List", "a")
	if _, err := s.AssumeExpands(ref, "[]List"); err != nil {
		t.Fatal(err)
	}
	o, err := s.Deref(ref)
	if err != nil {
		t.Fatal(err)
	}
	arr := o.(*mem.Array)
	dp := syncOracle(t, s)

	k := val.NewTerm(val.Int, "k")
	accesses, err := arr.Get(s, k)
	if err != nil {
		t.Fatal(err)
	}
	if len(accesses) != 2 {
		t.Fatalf("expected a fresh access and an out of bounds access, actual %d", len(accesses))
	}

	var expected [][]string
	var results []*Alternatives[*ArrayLoadAlternative]
	for _, access := range accesses {
		result := NewAlternatives[*ArrayLoadAlternative]()
		if _, err := ResolveAload(dp, s, access.Guard, access.Value, access.Fresh, result); err != nil {
			t.Fatal(err)
		}
		results = append(results, result)
	}
	expected = [][]string{{"1:EXPANDS", "2:EXPANDS", "3:NULL"}, {"2:OUT"}}
	for i, result := range results {
		if diff := cmp.Diff(expected[i], kinds(result)); diff != "" {
			t.Errorf("access %d (-expected +actual)\n%s", i, diff)
		}
	}

	chosen := results[0].At(1)
	if chosen.Class != "Node" || !chosen.Fresh {
		t.Fatalf("unexpected alternative %s", chosen)
	}
	refiner := &StateRefiner{State: s, DP: dp, Array: arr, Index: k}
	if err := chosen.Refine(refiner); err != nil {
		t.Fatal(err)
	}

	elem := accesses[0].Value.(*val.ReferenceSymbolic)
	if !s.IsResolved(elem) {
		t.Errorf("%s should be resolved", elem)
	}
	if len(arr.Entries()) != 1 || arr.Entries()[0].Value != elem {
		t.Errorf("fresh value was not recorded: %v", arr.Entries())
	}
	pc, assumed := s.PathCondition(), dp.Assumptions()
	if len(pc) != len(assumed) {
		t.Fatalf("oracle is out of sync: %d clauses, %d assumptions", len(pc), len(assumed))
	}
	for i := range pc {
		if pc[i] != assumed[i] {
			t.Errorf("clause %d: %v, assumption %v", i, pc[i], assumed[i])
		}
	}

	// Out of bounds is no longer feasible once the access was assumed in bounds.
	result := NewAlternatives[*ArrayLoadAlternative]()
	outcome, err := ResolveAload(dp, s, accesses[1].Guard, nil, false, result)
	if err != nil {
		t.Fatal(err)
	}
	if result.Len() != 0 || outcome.String() != "FTF" {
		t.Errorf("unexpected %s %s", result, outcome)
	}
}
