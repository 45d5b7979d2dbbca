package oracle

import (
	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// Procedure is a DecisionProcedure keeping the assumptions as clauses.
// Numeric conditions are decided by a Backend; reference and class
// initialization queries are decided against the clauses themselves.
type Procedure struct {
	backend Backend
	clauses []mem.Clause
	conds   []val.Primitive
}

// NewProcedure returns a procedure with no assumptions.
func NewProcedure(b Backend) *Procedure {
	return &Procedure{backend: b}
}

// PushAssumption adds a clause to the assumptions.
func (p *Procedure) PushAssumption(c mem.Clause) error {
	if a, ok := c.(*mem.ClauseAssume); ok {
		if a.Cond == nil || a.Cond.Type() != val.Boolean {
			return errors.Wrapf(val.ErrInvalidType, "cannot assume %v", a.Cond)
		}
		p.conds = append(p.conds, a.Cond)
	}
	p.clauses = append(p.clauses, c)
	return nil
}

// SetAssumptions replaces the assumptions.
func (p *Procedure) SetAssumptions(cs []mem.Clause) error {
	p.clauses = nil
	p.conds = nil
	for _, c := range cs {
		if err := p.PushAssumption(c); err != nil {
			return err
		}
	}
	return nil
}

// Assumptions returns the current assumptions.
func (p *Procedure) Assumptions() []mem.Clause {
	return p.clauses
}

// IsSat reports whether cond is consistent with the assumptions.
func (p *Procedure) IsSat(cond val.Primitive) (bool, error) {
	if cond == nil || cond.Type() != val.Boolean {
		return false, errors.Wrapf(val.ErrInvalidType, "cannot decide %v", cond)
	}
	switch c := cond.(type) {
	case *val.Any:
		return true, nil
	case *val.Simplex:
		if !c.Bool() {
			return false, nil
		}
	}
	conds := make([]val.Primitive, len(p.conds), len(p.conds)+1)
	copy(conds, p.conds)
	if _, ok := cond.(*val.Simplex); !ok {
		conds = append(conds, cond)
	}
	sat, err := p.backend.Check(conds)
	if err != nil {
		return false, errors.Wrapf(err, "failed to decide %s", cond)
	}
	return sat, nil
}

// refClause returns the clause resolving ref, if any.
func (p *Procedure) refClause(ref *val.ReferenceSymbolic) mem.Clause {
	for _, c := range p.clauses {
		if r, ok := mem.ClauseRef(c); ok && r == ref {
			return c
		}
	}
	return nil
}

// IsSatAliases reports whether ref may point to the object at pos.
func (p *Procedure) IsSatAliases(ref *val.ReferenceSymbolic, pos int64, o mem.Objekt) (bool, error) {
	switch c := p.refClause(ref).(type) {
	case nil:
		return true, nil
	case *mem.ClauseAssumeAliases:
		return c.HeapPosition == pos, nil
	case *mem.ClauseAssumeExpands:
		return c.HeapPosition == pos, nil
	}
	return false, nil
}

// IsSatExpands reports whether ref may point to a fresh object of class.
func (p *Procedure) IsSatExpands(ref *val.ReferenceSymbolic, class string) (bool, error) {
	switch c := p.refClause(ref).(type) {
	case nil:
		return true, nil
	case *mem.ClauseAssumeExpands:
		return c.Object.Type() == class, nil
	}
	return false, nil
}

// IsSatNull reports whether ref may be null.
func (p *Procedure) IsSatNull(ref *val.ReferenceSymbolic) (bool, error) {
	switch p.refClause(ref).(type) {
	case nil, *mem.ClauseAssumeNull:
		return true, nil
	}
	return false, nil
}

func (p *Procedure) hasClassClause(class string, initialized bool) bool {
	for _, c := range p.clauses {
		switch c := c.(type) {
		case *mem.ClauseAssumeClassInitialized:
			if initialized && c.Class == class {
				return true
			}
		case *mem.ClauseAssumeClassNotInitialized:
			if !initialized && c.Class == class {
				return true
			}
		}
	}
	return false
}

// IsSatInitialized reports whether class may have been initialized.
func (p *Procedure) IsSatInitialized(class string) (bool, error) {
	return !p.hasClassClause(class, false), nil
}

// IsSatNotInitialized reports whether class may have not been initialized.
func (p *Procedure) IsSatNotInitialized(class string) (bool, error) {
	return !p.hasClassClause(class, true), nil
}

// Close closes the backend.
func (p *Procedure) Close() error {
	return p.backend.Close()
}
