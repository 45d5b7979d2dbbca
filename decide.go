package symdec

import (
	"github.com/ajalab/symdec/log"
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/val"
)

func isSat(op string, dp oracle.DecisionProcedure, cond val.Primitive) (bool, error) {
	sat, err := dp.IsSat(cond)
	if err != nil {
		return false, decisionFailure(op, err)
	}
	log.Debug.Printf("%s: sat(%s) = %v", op, cond, sat)
	return sat, nil
}

// decideBinary decides a point with two complementary alternatives. The
// alternative of first is added if first is satisfiable, and then the other
// one if second is. If first is unsatisfiable, second is valid and the other
// alternative is added without querying. It returns the number of alternatives added.
func decideBinary(op string, dp oracle.DecisionProcedure, first, second val.Primitive, addFirst, addSecond func()) (int, error) {
	sat, err := isSat(op, dp, first)
	if err != nil {
		return 0, err
	}
	if !sat {
		addSecond()
		return 1, nil
	}
	addFirst()
	sat, err = isSat(op, dp, second)
	if err != nil {
		return 1, err
	}
	if sat {
		addSecond()
		return 2, nil
	}
	return 1, nil
}

func checkBoolean(op string, dp oracle.DecisionProcedure, cond val.Primitive, noResult bool) error {
	if dp == nil || cond == nil || noResult {
		return invalidInput(op, "nil argument")
	}
	if cond.Type() != val.Boolean {
		return invalidInput(op, "condition %s has type %s", cond, cond.Type())
	}
	return nil
}

// DecideIf decides a conditional branch on cond.
func DecideIf(dp oracle.DecisionProcedure, cond val.Primitive, result *Alternatives[*IfAlternative]) (Outcome, error) {
	const op = "DecideIf"
	if err := checkBoolean(op, dp, cond, result == nil); err != nil {
		return Outcome{}, err
	}
	switch c := cond.(type) {
	case *val.Simplex:
		result.Add(NewIfAlternative(c.Bool(), true))
		return NewOutcome(false, false), nil
	case *val.Any:
		result.Add(NewIfAlternative(true, false))
		result.Add(NewIfAlternative(false, false))
		return NewOutcome(false, true), nil
	}

	not, err := val.Not(cond)
	if err != nil {
		return Outcome{}, invalidState(op, "%v", err)
	}
	n, err := decideBinary(op, dp, cond, not,
		func() { result.Add(NewIfAlternative(true, false)) },
		func() { result.Add(NewIfAlternative(false, false)) })
	if err != nil {
		return Outcome{}, err
	}
	return NewOutcome(n > 1, true), nil
}

// DecideComparison decides a three-way comparison of x and y.
func DecideComparison(dp oracle.DecisionProcedure, x, y val.Primitive, result *Alternatives[*ComparisonAlternative]) (Outcome, error) {
	const op = "DecideComparison"
	if dp == nil || x == nil || y == nil || result == nil {
		return Outcome{}, invalidInput(op, "nil argument")
	}
	if err := val.CheckComparable(x.Type(), y.Type()); err != nil {
		return Outcome{}, &Error{Kind: InvalidInput, Op: op, Err: err}
	}

	sx, xok := x.(*val.Simplex)
	sy, yok := y.(*val.Simplex)
	if xok && yok {
		switch {
		case sx.Value() > sy.Value():
			result.Add(NewComparisonAlternative(Greater, true))
		case sx.Value() == sy.Value():
			result.Add(NewComparisonAlternative(Equal, true))
		default:
			result.Add(NewComparisonAlternative(Less, true))
		}
		return NewOutcome(false, false), nil
	}

	_, xany := x.(*val.Any)
	_, yany := y.(*val.Any)
	if xany || yany {
		result.Add(NewComparisonAlternative(Greater, false))
		result.Add(NewComparisonAlternative(Equal, false))
		result.Add(NewComparisonAlternative(Less, false))
		return NewOutcome(false, true), nil
	}

	gt, err := val.Gt(x, y)
	if err != nil {
		return Outcome{}, invalidState(op, "%v", err)
	}
	eq, err := val.Eq(x, y)
	if err != nil {
		return Outcome{}, invalidState(op, "%v", err)
	}
	lt, err := val.Lt(x, y)
	if err != nil {
		return Outcome{}, invalidState(op, "%v", err)
	}

	n := 0
	add := func(c Comparison) {
		result.Add(NewComparisonAlternative(c, false))
		n++
	}
	satGT, err := isSat(op, dp, gt)
	if err != nil {
		return Outcome{}, err
	}
	if satGT {
		add(Greater)
		for _, q := range []struct {
			cond val.Primitive
			c    Comparison
		}{{eq, Equal}, {lt, Less}} {
			sat, err := isSat(op, dp, q.cond)
			if err != nil {
				return Outcome{}, err
			}
			if sat {
				add(q.c)
			}
		}
	} else {
		satEQ, err := isSat(op, dp, eq)
		if err != nil {
			return Outcome{}, err
		}
		if satEQ {
			add(Equal)
			satLT, err := isSat(op, dp, lt)
			if err != nil {
				return Outcome{}, err
			}
			if satLT {
				add(Less)
			}
		} else {
			add(Less)
		}
	}
	return NewOutcome(n > 1, true), nil
}

// DecideSwitch decides a switch on selector over tab.
func DecideSwitch(dp oracle.DecisionProcedure, selector val.Primitive, tab SwitchTable, result *Alternatives[*SwitchAlternative]) (Outcome, error) {
	const op = "DecideSwitch"
	if dp == nil || selector == nil || tab == nil || result == nil {
		return Outcome{}, invalidInput(op, "nil argument")
	}
	if !selector.Type().IsIntegral() {
		return Outcome{}, invalidInput(op, "selector %s has type %s", selector, selector.Type())
	}

	cases := tab.Cases()
	typ := selector.Type()
	for _, c := range cases {
		if c < typ.Min() || c > typ.Max() {
			return Outcome{}, invalidInput(op, "case %d does not fit the selector type %s", c, typ)
		}
	}
	switch s := selector.(type) {
	case *val.Simplex:
		for i, c := range cases {
			if c == s.Value() {
				result.Add(NewSwitchAlternative(c, tab.BranchNumber(i), true))
				return NewOutcome(false, false), nil
			}
		}
		result.Add(NewSwitchDefault(tab.DefaultBranchNumber(), true))
		return NewOutcome(false, false), nil
	case *val.Any:
		for i, c := range cases {
			result.Add(NewSwitchAlternative(c, tab.BranchNumber(i), false))
		}
		result.Add(NewSwitchDefault(tab.DefaultBranchNumber(), false))
		return NewOutcome(false, true), nil
	}

	n := 0
	for i, c := range cases {
		eq, err := val.Eq(selector, val.NewSimplex(selector.Type(), c))
		if err != nil {
			return Outcome{}, invalidState(op, "%v", err)
		}
		sat, err := isSat(op, dp, eq)
		if err != nil {
			return Outcome{}, err
		}
		if sat {
			result.Add(NewSwitchAlternative(c, tab.BranchNumber(i), false))
			n++
		}
	}
	def, err := tab.DefaultClause(selector)
	if err != nil {
		return Outcome{}, invalidState(op, "%v", err)
	}
	sat, err := isSat(op, dp, def)
	if err != nil {
		return Outcome{}, err
	}
	if sat {
		result.Add(NewSwitchDefault(tab.DefaultBranchNumber(), false))
		n++
	}
	return NewOutcome(n > 1, true), nil
}

// DecideNewarray decides whether an array allocation succeeds, given the
// condition that all the requested counts are non negative.
func DecideNewarray(dp oracle.DecisionProcedure, countsNonNegative val.Primitive, result *Alternatives[*NewarrayAlternative]) (Outcome, error) {
	const op = "DecideNewarray"
	if err := checkBoolean(op, dp, countsNonNegative, result == nil); err != nil {
		return Outcome{}, err
	}
	switch c := countsNonNegative.(type) {
	case *val.Simplex:
		result.Add(NewNewarrayAlternative(c.Bool(), true))
		return NewOutcome(false, false), nil
	case *val.Any:
		result.Add(NewNewarrayAlternative(false, false))
		result.Add(NewNewarrayAlternative(true, false))
		return NewOutcome(false, true), nil
	}

	negative, err := val.Not(countsNonNegative)
	if err != nil {
		return Outcome{}, invalidState(op, "%v", err)
	}
	n, err := decideBinary(op, dp, negative, countsNonNegative,
		func() { result.Add(NewNewarrayAlternative(false, false)) },
		func() { result.Add(NewNewarrayAlternative(true, false)) })
	if err != nil {
		return Outcome{}, err
	}
	return NewOutcome(n > 1, true), nil
}

// DecideAstore decides whether an array store is within the bounds, given
// the condition that the index is in [0, length).
func DecideAstore(dp oracle.DecisionProcedure, inRange val.Primitive, result *Alternatives[*AstoreAlternative]) (Outcome, error) {
	const op = "DecideAstore"
	if err := checkBoolean(op, dp, inRange, result == nil); err != nil {
		return Outcome{}, err
	}
	switch c := inRange.(type) {
	case *val.Simplex:
		result.Add(NewAstoreAlternative(c.Bool(), true))
		return NewOutcome(false, false), nil
	case *val.Any:
		result.Add(NewAstoreAlternative(false, false))
		result.Add(NewAstoreAlternative(true, false))
		return NewOutcome(false, true), nil
	}

	outOfRange, err := val.Not(inRange)
	if err != nil {
		return Outcome{}, invalidState(op, "%v", err)
	}
	n, err := decideBinary(op, dp, outOfRange, inRange,
		func() { result.Add(NewAstoreAlternative(false, false)) },
		func() { result.Add(NewAstoreAlternative(true, false)) })
	if err != nil {
		return Outcome{}, err
	}
	return NewOutcome(n > 1, true), nil
}
