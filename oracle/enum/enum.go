// Package enum implements an oracle backend enumerating the assignments of
// small bounded domains. It is exact within its bounds and serves as ground
// truth for the other backends.
package enum

import (
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// Config configures a Backend. Zero values select the defaults.
type Config struct {
	// Bound restricts every integral term to [-Bound, Bound] (intersected
	// with its type range). Default: 4.
	Bound int64
	// MaxAssignments is the number of assignments above which Check fails
	// with oracle.ErrUnknown. Default: 1<<20.
	MaxAssignments int
}

// Backend is an enumerating oracle.Backend.
type Backend struct {
	bound          int64
	maxAssignments int
}

// New returns a Backend.
func New(config *Config) *Backend {
	b := &Backend{bound: 4, maxAssignments: 1 << 20}
	if config != nil {
		if config.Bound > 0 {
			b.bound = config.Bound
		}
		if config.MaxAssignments > 0 {
			b.maxAssignments = config.MaxAssignments
		}
	}
	return b
}

type domain struct {
	term   *val.Term
	lo, hi int64
}

func (b *Backend) domainOf(t *val.Term) domain {
	typ := t.Type()
	lo, hi := -b.bound, b.bound
	if typ.Min() > lo {
		lo = typ.Min()
	}
	if typ.Max() < hi {
		hi = typ.Max()
	}
	return domain{term: t, lo: lo, hi: hi}
}

// Check reports whether some assignment within the bounds satisfies all conds.
func (b *Backend) Check(conds []val.Primitive) (bool, error) {
	terms := val.Terms(conds...)
	domains := make([]domain, len(terms))
	total := 1
	for i, t := range terms {
		domains[i] = b.domainOf(t)
		total *= int(domains[i].hi - domains[i].lo + 1)
		if total > b.maxAssignments {
			return false, errors.Wrapf(oracle.ErrUnknown, "more than %d assignments", b.maxAssignments)
		}
	}

	m := make(val.Model, len(terms))
	for _, d := range domains {
		m[d.term.Name()] = d.lo
	}
	for {
		ok, err := holds(conds, m)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if !next(domains, m) {
			return false, nil
		}
	}
}

// Model returns a satisfying assignment, or nil if there is none.
func (b *Backend) Model(conds []val.Primitive) (val.Model, error) {
	terms := val.Terms(conds...)
	domains := make([]domain, len(terms))
	m := make(val.Model, len(terms))
	for i, t := range terms {
		domains[i] = b.domainOf(t)
		m[t.Name()] = domains[i].lo
	}
	for n := 0; n < b.maxAssignments; n++ {
		ok, err := holds(conds, m)
		if err != nil {
			return nil, err
		}
		if ok {
			return m, nil
		}
		if !next(domains, m) {
			return nil, nil
		}
	}
	return nil, errors.Wrapf(oracle.ErrUnknown, "more than %d assignments", b.maxAssignments)
}

func holds(conds []val.Primitive, m val.Model) (bool, error) {
	for _, c := range conds {
		v, err := val.Eval(c, m)
		if err != nil {
			return false, err
		}
		if v == 0 {
			return false, nil
		}
	}
	return true, nil
}

// next advances m to the next assignment like an odometer.
func next(domains []domain, m val.Model) bool {
	for _, d := range domains {
		name := d.term.Name()
		if m[name] < d.hi {
			m[name]++
			return true
		}
		m[name] = d.lo
	}
	return false
}

// Close does nothing.
func (b *Backend) Close() error {
	return nil
}
