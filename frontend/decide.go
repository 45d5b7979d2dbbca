package frontend

import (
	"context"
	"go/constant"
	"go/token"
	"runtime"

	"github.com/ajalab/symdec"
	"github.com/ajalab/symdec/log"
	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/oracle/sat"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ssa"
)

// Config specifies the (optional) parameters for deciding functions.
// Options are ignored when a field has the zero value.
type Config struct {
	// NewOracle returns the decision procedure of a worker. Each worker
	// owns its procedure. The default is the bit-blasting backend.
	NewOracle func() (oracle.DecisionProcedure, error)
	// Workers is the number of functions decided concurrently.
	// The default is GOMAXPROCS.
	Workers int
}

func (c *Config) newOracle() (oracle.DecisionProcedure, error) {
	if c != nil && c.NewOracle != nil {
		return c.NewOracle()
	}
	return oracle.NewProcedure(sat.New(nil)), nil
}

func (c *Config) workers() int {
	if c != nil && c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Decision is the result of deciding a decision point.
type Decision struct {
	Func string
	Pos  token.Position
	Kind Kind
	// Alternatives are the feasible alternatives, by branch number.
	Alternatives []string
	Outcome      symdec.Outcome
	// Err tells why the point could not be decided, if it could not.
	Err error
}

// DecideAll decides the decision points of fns. The functions are decided
// concurrently, each by a worker owning its decision procedure. The
// decisions are returned in the order of fns and of their points.
func DecideAll(ctx context.Context, config *Config, prog *Program, fns []*ssa.Function) ([]*Decision, error) {
	results := make([][]*Decision, len(fns))
	work := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(work)
		for i := range fns {
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < config.workers(); w++ {
		g.Go(func() error {
			dp, err := config.newOracle()
			if err != nil {
				return errors.Wrap(err, "failed to create a decision procedure")
			}
			defer dp.Close()
			for i := range work {
				if err := ctx.Err(); err != nil {
					return err
				}
				ds, err := DecideFunc(dp, prog, fns[i])
				if err != nil {
					return errors.Wrapf(err, "failed to decide %s", fns[i])
				}
				results[i] = ds
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var decisions []*Decision
	for _, ds := range results {
		decisions = append(decisions, ds...)
	}
	return decisions, nil
}

// DecideFunc decides the decision points of fn with dp. Each point is
// decided under the conditions of the branches dominating it. Points the
// value model cannot express are reported with Err set; a failure of dp
// aborts.
func DecideFunc(dp oracle.DecisionProcedure, prog *Program, fn *ssa.Function) ([]*Decision, error) {
	t := newTranslator(fn, prog.Hierarchy())
	var decisions []*Decision
	for _, p := range Points(fn) {
		d := &Decision{
			Func: fn.String(),
			Pos:  fn.Prog.Fset.Position(pos(p.Instr())),
			Kind: p.Kind(),
		}
		alts, outcome, err := decide(dp, t, p)
		switch {
		case symdec.KindOf(err) == symdec.DecisionFailure:
			return nil, err
		case err != nil:
			log.Debug.Printf("%s: %s at %s: %v", fn, d.Kind, d.Pos, err)
			d.Err = err
		default:
			d.Alternatives = alts
			d.Outcome = outcome
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

func pos(instr ssa.Instruction) token.Pos {
	if p := instr.Pos(); p.IsValid() {
		return p
	}
	if i, ok := instr.(*ssa.If); ok {
		return i.Cond.Pos()
	}
	for _, instr := range instr.Block().Instrs {
		if p := instr.Pos(); p.IsValid() {
			return p
		}
	}
	return instr.Parent().Pos()
}

// pathCondition returns the clauses holding on entry to b: those of the
// state and the conditions of the dominating branches whose taken edge
// leads to b.
func pathCondition(t *translator, b *ssa.BasicBlock) []mem.Clause {
	clauses := append([]mem.Clause(nil), t.state.PathCondition()...)
	var conds []val.Primitive
	for d := b.Idom(); d != nil; d = d.Idom() {
		i, ok := d.Instrs[len(d.Instrs)-1].(*ssa.If)
		if !ok || d.Succs[0] == d.Succs[1] {
			continue
		}
		var taken bool
		switch {
		case len(d.Succs[0].Preds) == 1 && d.Succs[0].Dominates(b):
			taken = true
		case len(d.Succs[1].Preds) == 1 && d.Succs[1].Dominates(b):
			taken = false
		default:
			continue
		}
		cond, err := t.primitive(i.Cond)
		if err != nil || cond.Type() != val.Boolean {
			continue
		}
		if !taken {
			if cond, err = val.Not(cond); err != nil {
				continue
			}
		}
		conds = append(conds, cond)
	}
	// Outermost first.
	for i := len(conds) - 1; i >= 0; i-- {
		if _, ok := conds[i].(*val.Simplex); ok {
			continue
		}
		clauses = append(clauses, &mem.ClauseAssume{Cond: conds[i]})
	}
	return clauses
}

func names[A symdec.Alternative](s *symdec.Alternatives[A]) []string {
	strs := make([]string, s.Len())
	for i, a := range s.Items() {
		strs[i] = a.String()
	}
	return strs
}

func decide(dp oracle.DecisionProcedure, t *translator, p Point) ([]string, symdec.Outcome, error) {
	// Translate first: it may add clauses to the state.
	switch p := p.(type) {
	case *IfPoint:
		cond, err := t.primitive(p.Cond())
		if err != nil {
			return nil, symdec.Outcome{}, err
		}
		if err := dp.SetAssumptions(pathCondition(t, p.Instr().Block())); err != nil {
			return nil, symdec.Outcome{}, err
		}
		result := symdec.NewAlternatives[*symdec.IfAlternative]()
		outcome, err := symdec.DecideIf(dp, cond, result)
		return names(result), outcome, err

	case *SwitchPoint:
		selector, err := t.primitive(p.sw.X)
		if err != nil {
			return nil, symdec.Outcome{}, err
		}
		cases := make([]int64, len(p.sw.ConstCases))
		for i, c := range p.sw.ConstCases {
			n, exact := constant.Int64Val(constant.ToInt(c.Value.Value))
			if !exact {
				return nil, symdec.Outcome{}, errors.Errorf("case %s overflows", c.Value)
			}
			cases[i] = n
		}
		tab, err := symdec.NewLookupTable(cases...)
		if err != nil {
			return nil, symdec.Outcome{}, err
		}
		if err := dp.SetAssumptions(pathCondition(t, p.sw.Start)); err != nil {
			return nil, symdec.Outcome{}, err
		}
		result := symdec.NewAlternatives[*symdec.SwitchAlternative]()
		outcome, err := symdec.DecideSwitch(dp, selector, tab, result)
		return names(result), outcome, err

	case *RefPoint:
		v, err := t.translate(p.X())
		if err != nil {
			return nil, symdec.Outcome{}, err
		}
		if err := dp.SetAssumptions(pathCondition(t, p.Instr().Block())); err != nil {
			return nil, symdec.Outcome{}, err
		}
		result := symdec.NewAlternatives[*symdec.LoadAlternative]()
		outcome, err := symdec.ResolveLFLoad(dp, t.state, v, result)
		return names(result), outcome, err

	case *IndexPoint:
		index, err := t.primitive(p.instr.Index)
		if err != nil {
			return nil, symdec.Outcome{}, err
		}
		length, err := t.length(p.instr.X)
		if err != nil {
			return nil, symdec.Outcome{}, err
		}
		inRange, err := inBounds(index, length.(val.Primitive))
		if err != nil {
			return nil, symdec.Outcome{}, err
		}
		if err := dp.SetAssumptions(pathCondition(t, p.Instr().Block())); err != nil {
			return nil, symdec.Outcome{}, err
		}
		result := symdec.NewAlternatives[*symdec.AstoreAlternative]()
		outcome, err := symdec.DecideAstore(dp, inRange, result)
		return names(result), outcome, err

	case *MakeSlicePoint:
		n, err := t.primitive(p.instr.Len)
		if err != nil {
			return nil, symdec.Outcome{}, err
		}
		zero := val.NewSimplex(n.Type(), 0)
		nonNegative, err := val.Ge(n, zero)
		if err != nil {
			return nil, symdec.Outcome{}, err
		}
		if err := dp.SetAssumptions(pathCondition(t, p.Instr().Block())); err != nil {
			return nil, symdec.Outcome{}, err
		}
		result := symdec.NewAlternatives[*symdec.NewarrayAlternative]()
		outcome, err := symdec.DecideNewarray(dp, nonNegative, result)
		return names(result), outcome, err
	}
	return nil, symdec.Outcome{}, errors.Errorf("unexpected point %T", p)
}

func inBounds(index, length val.Primitive) (val.Primitive, error) {
	lo, err := val.Le(val.NewSimplex(index.Type(), 0), index)
	if err != nil {
		return nil, err
	}
	hi, err := val.Lt(index, length)
	if err != nil {
		return nil, err
	}
	return val.And(lo, hi)
}
