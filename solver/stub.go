//go:build !z3

package solver

import (
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// Available reports whether the package was built with Z3.
const Available = false

// ErrNotAvailable is returned by NewZ3Solver when built without the z3 tag.
var ErrNotAvailable = errors.New("built without z3 support (use -tags z3)")

// Z3Solver is unavailable in this build.
type Z3Solver struct{}

// NewZ3Solver fails with ErrNotAvailable.
func NewZ3Solver(config *Config) (*Z3Solver, error) {
	return nil, ErrNotAvailable
}

func (s *Z3Solver) Check(conds []val.Primitive) (bool, error) {
	return false, ErrNotAvailable
}

func (s *Z3Solver) Close() error { return nil }

func (s *Z3Solver) Stats() Stats { return Stats{} }
