//go:build z3

package solver

/*
#cgo LDFLAGS: -lz3
#include <stdlib.h>
#include <z3.h>
*/
import "C"

import (
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// Available reports whether the package was built with Z3.
const Available = true

// Z3Solver is an oracle.Backend deciding constraints with Z3 in the theory
// of bit-vectors. Each integral type is a bit-vector of its width.
type Z3Solver struct {
	ctx     C.Z3_context
	consts  map[string]z3Const
	timeout time.Duration
	stats   Stats
}

type z3Const struct {
	ast C.Z3_ast
	typ val.Type
}

func z3MkStringSymbol(ctx C.Z3_context, s string) C.Z3_symbol {
	c := C.CString(s)
	defer C.free(unsafe.Pointer(c))
	return C.Z3_mk_string_symbol(ctx, c)
}

// NewZ3Solver returns a new Z3Solver.
func NewZ3Solver(config *Config) (*Z3Solver, error) {
	cfg := C.Z3_mk_config()
	defer C.Z3_del_config(cfg)

	ctx := C.Z3_mk_context(cfg)
	// Errors are read back with Z3_get_error_code after each call.
	C.Z3_set_error_handler(ctx, nil)

	s := &Z3Solver{
		ctx:    ctx,
		consts: make(map[string]z3Const),
	}
	if config != nil {
		s.timeout = config.Timeout
	}
	return s, nil
}

// Close deletes the Z3 context.
func (s *Z3Solver) Close() error {
	C.Z3_del_context(s.ctx)
	return nil
}

// Stats returns the statistics accumulated so far.
func (s *Z3Solver) Stats() Stats {
	return s.stats
}

func (s *Z3Solver) err(op string) error {
	if code := C.Z3_get_error_code(s.ctx); code != C.Z3_OK {
		return &Error{Code: int(code), Op: op, Message: C.GoString(C.Z3_get_error_msg(s.ctx, code))}
	}
	return nil
}

// Check reports whether all conds hold for some assignment of their terms.
func (s *Z3Solver) Check(conds []val.Primitive) (bool, error) {
	start := time.Now()
	defer func() {
		s.stats.SolveN++
		s.stats.SolveTime += time.Since(start)
	}()

	solver := C.Z3_mk_solver(s.ctx)
	if err := s.err("Z3_mk_solver"); err != nil {
		return false, err
	}
	C.Z3_solver_inc_ref(s.ctx, solver)
	defer C.Z3_solver_dec_ref(s.ctx, solver)

	if s.timeout > 0 {
		params := C.Z3_mk_params(s.ctx)
		C.Z3_params_inc_ref(s.ctx, params)
		C.Z3_params_set_uint(s.ctx, params, z3MkStringSymbol(s.ctx, "timeout"), C.uint(s.timeout.Milliseconds()))
		C.Z3_solver_set_params(s.ctx, solver, params)
		C.Z3_params_dec_ref(s.ctx, params)
		if err := s.err("Z3_solver_set_params"); err != nil {
			return false, err
		}
	}

	for _, cond := range conds {
		if cond.Type() != val.Boolean {
			return false, errors.Wrapf(val.ErrInvalidType, "cannot check %s %s", cond.Type(), cond)
		}
		ast, err := s.toAST(cond)
		if err != nil {
			return false, errors.Wrapf(err, "failed to translate %s", cond)
		}
		C.Z3_solver_assert(s.ctx, solver, ast)
		if err := s.err("Z3_solver_assert"); err != nil {
			return false, err
		}
	}

	result := C.Z3_solver_check(s.ctx, solver)
	if err := s.err("Z3_solver_check"); err != nil {
		return false, err
	}
	switch result {
	case C.Z3_L_FALSE:
		return false, nil
	case C.Z3_L_TRUE:
		return true, nil
	}
	reason := C.GoString(C.Z3_solver_get_reason_unknown(s.ctx, solver))
	switch {
	case strings.Contains(reason, "timeout"), strings.Contains(reason, "canceled"):
		return false, errors.Wrapf(oracle.ErrUnknown, "z3: timeout after %s", s.timeout)
	case strings.Contains(reason, "resource limits"):
		return false, errors.Wrap(oracle.ErrUnknown, "z3: resource limits reached")
	}
	return false, errors.Wrapf(oracle.ErrUnknown, "z3: %s", reason)
}

func (s *Z3Solver) sort(t val.Type) (C.Z3_sort, error) {
	switch {
	case t == val.Boolean:
		return C.Z3_mk_bool_sort(s.ctx), nil
	case t.IsIntegral():
		return C.Z3_mk_bv_sort(s.ctx, C.uint(t.Width())), nil
	}
	return nil, errors.Wrapf(val.ErrInvalidType, "no sort for %s", t)
}

func (s *Z3Solver) toAST(p val.Primitive) (C.Z3_ast, error) {
	switch p := p.(type) {
	case *val.Simplex:
		return s.constAST(p)
	case *val.Term:
		return s.termAST(p)
	case *val.Any:
		sort, err := s.sort(p.Type())
		if err != nil {
			return nil, err
		}
		prefix := C.CString("any")
		defer C.free(unsafe.Pointer(prefix))
		return C.Z3_mk_fresh_const(s.ctx, prefix, sort), s.err("Z3_mk_fresh_const")
	case *val.Expression:
		if p.Operator().IsUnary() {
			return s.unop(p)
		}
		return s.binop(p)
	}
	return nil, errors.Errorf("unexpected primitive %T", p)
}

func (s *Z3Solver) constAST(v *val.Simplex) (C.Z3_ast, error) {
	if v.Type() == val.Boolean {
		if v.Bool() {
			return C.Z3_mk_true(s.ctx), nil
		}
		return C.Z3_mk_false(s.ctx), nil
	}
	sort, err := s.sort(v.Type())
	if err != nil {
		return nil, err
	}
	return C.Z3_mk_int64(s.ctx, C.int64_t(v.Value()), sort), s.err("Z3_mk_int64")
}

func (s *Z3Solver) termAST(t *val.Term) (C.Z3_ast, error) {
	if c, ok := s.consts[t.Name()]; ok {
		if c.typ != t.Type() {
			return nil, errors.Wrapf(val.ErrInvalidType, "term %s is both %s and %s", t.Name(), c.typ, t.Type())
		}
		return c.ast, nil
	}
	sort, err := s.sort(t.Type())
	if err != nil {
		return nil, err
	}
	ast := C.Z3_mk_const(s.ctx, z3MkStringSymbol(s.ctx, t.Name()), sort)
	if err := s.err("Z3_mk_const"); err != nil {
		return nil, err
	}
	s.consts[t.Name()] = z3Const{ast: ast, typ: t.Type()}
	return ast, nil
}

func (s *Z3Solver) unop(e *val.Expression) (C.Z3_ast, error) {
	x, err := s.toAST(e.X())
	if err != nil {
		return nil, err
	}
	switch e.Operator() {
	case val.NEG:
		return C.Z3_mk_bvneg(s.ctx, x), s.err("Z3_mk_bvneg")
	case val.NOT:
		return C.Z3_mk_not(s.ctx, x), s.err("Z3_mk_not")
	}
	return nil, errors.Errorf("unop: not implemented: %s", e)
}

func (s *Z3Solver) binop(e *val.Expression) (C.Z3_ast, error) {
	x, err := s.toAST(e.X())
	if err != nil {
		return nil, err
	}
	y, err := s.toAST(e.Y())
	if err != nil {
		return nil, err
	}
	unsigned := !e.X().Type().IsSigned()
	args := []C.Z3_ast{x, y}
	var ast C.Z3_ast
	switch e.Operator() {
	case val.ADD:
		ast = C.Z3_mk_bvadd(s.ctx, x, y)
	case val.SUB:
		ast = C.Z3_mk_bvsub(s.ctx, x, y)
	case val.MUL:
		ast = C.Z3_mk_bvmul(s.ctx, x, y)
	case val.EQ:
		ast = C.Z3_mk_eq(s.ctx, x, y)
	case val.NE:
		ast = C.Z3_mk_distinct(s.ctx, 2, &args[0])
	case val.LT:
		if unsigned {
			ast = C.Z3_mk_bvult(s.ctx, x, y)
		} else {
			ast = C.Z3_mk_bvslt(s.ctx, x, y)
		}
	case val.LE:
		if unsigned {
			ast = C.Z3_mk_bvule(s.ctx, x, y)
		} else {
			ast = C.Z3_mk_bvsle(s.ctx, x, y)
		}
	case val.GT:
		if unsigned {
			ast = C.Z3_mk_bvugt(s.ctx, x, y)
		} else {
			ast = C.Z3_mk_bvsgt(s.ctx, x, y)
		}
	case val.GE:
		if unsigned {
			ast = C.Z3_mk_bvuge(s.ctx, x, y)
		} else {
			ast = C.Z3_mk_bvsge(s.ctx, x, y)
		}
	case val.AND:
		ast = C.Z3_mk_and(s.ctx, 2, &args[0])
	case val.OR:
		ast = C.Z3_mk_or(s.ctx, 2, &args[0])
	default:
		return nil, errors.Errorf("binop: not implemented: %s", e)
	}
	return ast, s.err(fmt.Sprintf("binop %s", e.Operator()))
}
