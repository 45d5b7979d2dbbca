package sat

import (
	"github.com/ajalab/symdec/val"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// blaster translates primitives into little-endian bit vectors of circuit literals.
type blaster struct {
	c     *logic.C
	terms map[string][]z.Lit
}

func newBlaster() *blaster {
	return &blaster{
		c:     logic.NewC(),
		terms: make(map[string][]z.Lit),
	}
}

func (b *blaster) constant(t val.Type, v int64) []z.Lit {
	w := t.Width()
	bits := make([]z.Lit, w)
	for i := uint(0); i < w; i++ {
		if (uint64(v)>>i)&1 == 1 {
			bits[i] = b.c.T
		} else {
			bits[i] = b.c.F
		}
	}
	return bits
}

func (b *blaster) blast(p val.Primitive) ([]z.Lit, error) {
	switch p := p.(type) {
	case *val.Simplex:
		return b.constant(p.Type(), p.Value()), nil
	case *val.Term:
		if bits, ok := b.terms[p.Name()]; ok {
			return bits, nil
		}
		bits := make([]z.Lit, p.Type().Width())
		for i := range bits {
			bits[i] = b.c.Lit()
		}
		b.terms[p.Name()] = bits
		return bits, nil
	case *val.Expression:
		return b.blastExpression(p)
	case *val.Any:
		return nil, errors.New("gini: cannot blast a don't care value")
	}
	return nil, errors.Errorf("gini: unexpected primitive %T", p)
}

func (b *blaster) blastExpression(e *val.Expression) ([]z.Lit, error) {
	x, err := b.blast(e.X())
	if err != nil {
		return nil, err
	}
	switch e.Operator() {
	case val.NEG:
		return b.sub(b.constant(e.Type(), 0), x), nil
	case val.NOT:
		return []z.Lit{x[0].Not()}, nil
	}

	y, err := b.blast(e.Y())
	if err != nil {
		return nil, err
	}
	signed := e.X().Type().IsSigned()
	switch e.Operator() {
	case val.ADD:
		return b.add(x, y, b.c.F), nil
	case val.SUB:
		return b.sub(x, y), nil
	case val.MUL:
		return b.mul(x, y), nil
	case val.EQ:
		return []z.Lit{b.eq(x, y)}, nil
	case val.NE:
		return []z.Lit{b.eq(x, y).Not()}, nil
	case val.LT:
		return []z.Lit{b.lt(x, y, signed)}, nil
	case val.LE:
		return []z.Lit{b.lt(y, x, signed).Not()}, nil
	case val.GT:
		return []z.Lit{b.lt(y, x, signed)}, nil
	case val.GE:
		return []z.Lit{b.lt(x, y, signed).Not()}, nil
	case val.AND:
		return []z.Lit{b.c.And(x[0], y[0])}, nil
	case val.OR:
		return []z.Lit{b.c.Or(x[0], y[0])}, nil
	}
	return nil, errors.Errorf("gini: unsupported operator %s", e.Operator())
}

// add returns x + y + carry, truncated to the width of x.
func (b *blaster) add(x, y []z.Lit, carry z.Lit) []z.Lit {
	sum := make([]z.Lit, len(x))
	for i := range x {
		t := b.c.Xor(x[i], y[i])
		sum[i] = b.c.Xor(t, carry)
		carry = b.c.Or(b.c.And(x[i], y[i]), b.c.And(carry, t))
	}
	return sum
}

func (b *blaster) not(x []z.Lit) []z.Lit {
	r := make([]z.Lit, len(x))
	for i, l := range x {
		r[i] = l.Not()
	}
	return r
}

// sub returns x + ^y + 1.
func (b *blaster) sub(x, y []z.Lit) []z.Lit {
	return b.add(x, b.not(y), b.c.T)
}

// mul is a shift-and-add multiplier truncated to the operand width.
func (b *blaster) mul(x, y []z.Lit) []z.Lit {
	w := len(x)
	acc := make([]z.Lit, w)
	for i := range acc {
		acc[i] = b.c.F
	}
	for i := 0; i < w; i++ {
		partial := make([]z.Lit, w)
		for j := 0; j < w; j++ {
			if j < i {
				partial[j] = b.c.F
			} else {
				partial[j] = b.c.And(x[j-i], y[i])
			}
		}
		acc = b.add(acc, partial, b.c.F)
	}
	return acc
}

func (b *blaster) eq(x, y []z.Lit) z.Lit {
	bits := make([]z.Lit, len(x))
	for i := range x {
		bits[i] = b.c.Xor(x[i], y[i]).Not()
	}
	return b.c.Ands(bits...)
}

// lt compares from the least significant bit up so that more significant
// bits decide. Signed operands are compared with their sign bits flipped.
func (b *blaster) lt(x, y []z.Lit, signed bool) z.Lit {
	w := len(x)
	r := b.c.F
	for i := 0; i < w; i++ {
		xi, yi := x[i], y[i]
		if signed && i == w-1 {
			xi, yi = xi.Not(), yi.Not()
		}
		less := b.c.And(xi.Not(), yi)
		same := b.c.Xor(xi, yi).Not()
		r = b.c.Or(less, b.c.And(same, r))
	}
	return r
}
