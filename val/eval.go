package val

import (
	"sort"

	"github.com/pkg/errors"
)

// Model assigns values to terms by name. Booleans are 0 or 1.
type Model map[string]int64

// Eval computes the value of p under m.
func Eval(p Primitive, m Model) (int64, error) {
	switch p := p.(type) {
	case *Simplex:
		return p.v, nil
	case *Term:
		v, ok := m[p.name]
		if !ok {
			return 0, errors.Errorf("eval: term %s is not assigned", p.name)
		}
		return p.typ.wrap(v), nil
	case *Expression:
		x, err := Eval(p.x, m)
		if err != nil {
			return 0, err
		}
		var y int64
		if p.y != nil {
			// short circuit logical operators
			switch {
			case p.op == AND && x == 0:
				return 0, nil
			case p.op == OR && x != 0:
				return 1, nil
			}
			y, err = Eval(p.y, m)
			if err != nil {
				return 0, err
			}
		}
		return fold(p.op, p.x.Type(), x, y), nil
	case *Any:
		return 0, errors.New("eval: cannot evaluate a don't care value")
	}
	return 0, errors.Errorf("eval: unexpected primitive %T", p)
}

// Replace returns p where every occurrence of the term from is replaced by to.
// The result is simplified as the operators do.
func Replace(p Primitive, from *Term, to Primitive) (Primitive, error) {
	if from.typ != to.Type() {
		return nil, errors.Wrapf(ErrInvalidType, "cannot replace %s %s with %s %s", from.typ, from, to.Type(), to)
	}
	return replace(p, from, to)
}

func replace(p Primitive, from *Term, to Primitive) (Primitive, error) {
	switch p := p.(type) {
	case *Term:
		if p.name == from.name && p.typ == from.typ {
			return to, nil
		}
		return p, nil
	case *Expression:
		x, err := replace(p.x, from, to)
		if err != nil {
			return nil, err
		}
		var y Primitive
		if p.y != nil {
			if y, err = replace(p.y, from, to); err != nil {
				return nil, err
			}
		}
		if x == p.x && y == p.y {
			return p, nil
		}
		return Apply(p.op, x, y)
	}
	return p, nil
}

// Terms returns the terms occurring in ps, sorted by name.
func Terms(ps ...Primitive) []*Term {
	seen := make(map[string]*Term)
	for _, p := range ps {
		collectTerms(p, seen)
	}
	terms := make([]*Term, 0, len(seen))
	for _, t := range seen {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].name < terms[j].name
	})
	return terms
}

func collectTerms(p Primitive, seen map[string]*Term) {
	switch p := p.(type) {
	case *Term:
		seen[p.name] = p
	case *Expression:
		collectTerms(p.x, seen)
		if p.y != nil {
			collectTerms(p.y, seen)
		}
	}
}

// ContainsAny returns true if a don't care value occurs in p.
func ContainsAny(p Primitive) bool {
	switch p := p.(type) {
	case *Any:
		return true
	case *Expression:
		return ContainsAny(p.x) || (p.y != nil && ContainsAny(p.y))
	}
	return false
}
