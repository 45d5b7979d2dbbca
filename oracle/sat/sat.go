// Package sat implements an oracle backend which bit-blasts integer and
// boolean constraints into an and-inverter circuit and decides it with the
// gini SAT solver.
package sat

import (
	"time"

	"github.com/ajalab/symdec/log"
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/val"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// Config configures a Backend.
type Config struct {
	// Timeout bounds each Check. Zero means no timeout.
	Timeout time.Duration
}

// Backend is a bit-blasting oracle.Backend.
type Backend struct {
	timeout time.Duration
	stats   Stats
}

// Stats holds the solver statistics of a Backend.
type Stats struct {
	SolveN    int
	SolveTime time.Duration
	Nodes     int
}

// New returns a Backend.
func New(config *Config) *Backend {
	b := &Backend{}
	if config != nil {
		b.timeout = config.Timeout
	}
	return b
}

// Stats returns the statistics accumulated so far.
func (b *Backend) Stats() Stats {
	return b.stats
}

// Check reports whether all conds hold for some assignment of their terms.
func (b *Backend) Check(conds []val.Primitive) (bool, error) {
	bl := newBlaster()
	roots := make([]z.Lit, 0, len(conds))
	for _, cond := range conds {
		if cond.Type() != val.Boolean {
			return false, errors.Wrapf(val.ErrInvalidType, "cannot check %s %s", cond.Type(), cond)
		}
		bits, err := bl.blast(cond)
		if err != nil {
			return false, err
		}
		roots = append(roots, bits[0])
	}

	g := gini.New()
	bl.c.ToCnf(g)
	g.Assume(roots...)

	start := time.Now()
	var result int
	if b.timeout > 0 {
		result = g.GoSolve().Try(b.timeout)
	} else {
		result = g.Solve()
	}
	b.stats.SolveN++
	b.stats.SolveTime += time.Since(start)
	b.stats.Nodes += bl.c.Len()

	log.Debug.Printf("gini: %d conditions, %d nodes, result %d", len(conds), bl.c.Len(), result)
	switch result {
	case 1:
		return true, nil
	case -1:
		return false, nil
	}
	return false, errors.Wrap(oracle.ErrUnknown, "gini: timeout")
}

// Close does nothing.
func (b *Backend) Close() error {
	return nil
}
