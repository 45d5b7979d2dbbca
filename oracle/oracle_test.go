package oracle_test

import (
	"testing"

	"github.com/ajalab/symdec/hier"
	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/oracle/enum"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

func newProcedure() *oracle.Procedure {
	return oracle.NewProcedure(enum.New(nil))
}

func TestProcedureIsSat(t *testing.T) {
	dp := newProcedure()
	x := val.NewTerm(val.Int, "x")
	gt, _ := val.Gt(x, val.Int32(2))
	if err := dp.PushAssumption(&mem.ClauseAssume{Cond: gt}); err != nil {
		t.Fatal(err)
	}

	lt, _ := val.Lt(x, val.Int32(3))
	if sat, err := dp.IsSat(lt); err != nil || sat {
		t.Errorf("expected unsat, got %v %v", sat, err)
	}
	if sat, err := dp.IsSat(val.AnyOf(val.Boolean)); err != nil || !sat {
		t.Errorf("Any should be sat, got %v %v", sat, err)
	}
	if sat, err := dp.IsSat(val.Bool(false)); err != nil || sat {
		t.Errorf("false should be unsat, got %v %v", sat, err)
	}
	if _, err := dp.IsSat(x); errors.Cause(err) != val.ErrInvalidType {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
	if err := dp.PushAssumption(&mem.ClauseAssume{Cond: x}); errors.Cause(err) != val.ErrInvalidType {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}

	if err := dp.SetAssumptions(nil); err != nil {
		t.Fatal(err)
	}
	if sat, err := dp.IsSat(lt); err != nil || !sat {
		t.Errorf("expected sat after reset, got %v %v", sat, err)
	}
}

func TestProcedureReferences(t *testing.T) {
	s := mem.NewState(hier.NewTable().Class("Node", ""))
	a := s.NewReferenceSymbolic("Node", "a")
	b := s.NewReferenceSymbolic("Node", "b")
	pos, err := s.AssumeExpands(a, "Node")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AssumeNull(b); err != nil {
		t.Fatal(err)
	}
	s.AssumeClassNotInitialized("Other")

	dp := newProcedure()
	if err := dp.SetAssumptions(s.PathCondition()); err != nil {
		t.Fatal(err)
	}
	o, _ := s.Object(pos)

	check := func(name string, sat bool, err error, expected bool) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		if sat != expected {
			t.Errorf("%s: expected %v, actual %v", name, expected, sat)
		}
	}
	sat, err := dp.IsSatExpands(a, "Node")
	check("a expands", sat, err, true)
	sat, err = dp.IsSatNull(a)
	check("a null", sat, err, false)
	sat, err = dp.IsSatAliases(a, pos, o)
	check("a aliases", sat, err, true)
	sat, err = dp.IsSatNull(b)
	check("b null", sat, err, true)
	sat, err = dp.IsSatAliases(b, pos, o)
	check("b aliases", sat, err, false)
	sat, err = dp.IsSatInitialized("Node")
	check("Node initialized", sat, err, true)
	sat, err = dp.IsSatNotInitialized("Node")
	check("Node not initialized", sat, err, false)
	sat, err = dp.IsSatInitialized("Other")
	check("Other initialized", sat, err, false)
}

func TestRules(t *testing.T) {
	rules, err := oracle.ParseRules([]byte(`
- origin: '^head(\.next)*$'
  not_null: true
  expand_to: [Node]
- origin: '\.value$'
  no_alias: true
  never_expand: true
`))
	if err != nil {
		t.Fatal(err)
	}
	dp := oracle.NewRules(newProcedure(), rules)

	head := val.NewReferenceSymbolic("List", "head.next", 1)
	value := val.NewReferenceSymbolic("Object", "head.value", 2)
	other := val.NewReferenceSymbolic("List", "tail", 3)
	o := mem.NewInstance("Node", "tail", 0)

	testCases := []struct {
		name     string
		query    func() (bool, error)
		expected bool
	}{
		{"head null", func() (bool, error) { return dp.IsSatNull(head) }, false},
		{"head expands Node", func() (bool, error) { return dp.IsSatExpands(head, "Node") }, true},
		{"head expands Cell", func() (bool, error) { return dp.IsSatExpands(head, "Cell") }, false},
		{"value aliases", func() (bool, error) { return dp.IsSatAliases(value, 1, o) }, false},
		{"value expands", func() (bool, error) { return dp.IsSatExpands(value, "Node") }, false},
		{"value null", func() (bool, error) { return dp.IsSatNull(value) }, true},
		{"tail null", func() (bool, error) { return dp.IsSatNull(other) }, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := tc.query()
			if err != nil {
				t.Fatal(err)
			}
			if actual != tc.expected {
				t.Errorf("expected %v, actual %v", tc.expected, actual)
			}
		})
	}

	if _, err := oracle.ParseRules([]byte(`[{origin: "("}]`)); err == nil {
		t.Error("invalid pattern accepted")
	}
	if _, err := oracle.ParseRules([]byte(`[{not_null: true}]`)); err == nil {
		t.Error("rule without origin accepted")
	}
}

func TestCounting(t *testing.T) {
	dp := oracle.NewCounting(newProcedure())
	ref := val.NewReferenceSymbolic("Node", "r", 1)
	x := val.NewTerm(val.Int, "x")
	cond, _ := val.Gt(x, val.Int32(0))

	for i := 0; i < 3; i++ {
		if _, err := dp.IsSat(cond); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := dp.IsSatNull(ref); err != nil {
		t.Fatal(err)
	}
	if _, err := dp.IsSatInitialized("Node"); err != nil {
		t.Fatal(err)
	}

	if dp.Stats.IsSat != 3 || dp.Stats.IsSatNull != 1 || dp.Stats.IsSatInitialized != 1 || dp.Stats.Total() != 5 {
		t.Errorf("unexpected stats %s", dp.Stats)
	}
	dp.Reset()
	if dp.Stats.Total() != 0 {
		t.Errorf("stats not reset: %s", dp.Stats)
	}
}
