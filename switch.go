package symdec

import (
	"math"
	"sort"

	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// SwitchTable is the jump table of a switch. Case i (0-based, in table
// order) has branch number i+1 and the default has Len()+1.
type SwitchTable interface {
	// Cases returns the case labels in table order.
	Cases() []int64
	// Len returns the number of cases.
	Len() int
	// BranchNumber returns the branch number of the i-th case.
	BranchNumber(i int) int
	// DefaultBranchNumber returns the branch number of the default.
	DefaultBranchNumber() int
	// DefaultClause returns the condition under which selector takes the default.
	DefaultClause(selector val.Primitive) (val.Primitive, error)
}

// LookupTable is a switch table with an explicit list of labels.
type LookupTable struct {
	cases []int64
}

// NewLookupTable returns a table with the given labels, sorted.
func NewLookupTable(cases ...int64) (*LookupTable, error) {
	sorted := append([]int64(nil), cases...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, errors.Errorf("duplicate case %d", sorted[i])
		}
	}
	return &LookupTable{cases: sorted}, nil
}

func (t *LookupTable) Cases() []int64           { return t.cases }
func (t *LookupTable) Len() int                 { return len(t.cases) }
func (t *LookupTable) BranchNumber(i int) int   { return i + 1 }
func (t *LookupTable) DefaultBranchNumber() int { return len(t.cases) + 1 }

// DefaultClause returns the conjunction of selector != c for every label c.
func (t *LookupTable) DefaultClause(selector val.Primitive) (val.Primitive, error) {
	var clause val.Primitive = val.Bool(true)
	for _, c := range t.cases {
		ne, err := val.Ne(selector, val.NewSimplex(selector.Type(), c))
		if err != nil {
			return nil, err
		}
		if clause, err = val.And(clause, ne); err != nil {
			return nil, err
		}
	}
	return clause, nil
}

// RangeTable is a switch table whose labels are low..high.
type RangeTable struct {
	low, high int64
}

// NewRangeTable returns a table with the labels low..high, which must be
// int labels.
func NewRangeTable(low, high int64) (*RangeTable, error) {
	if low > high {
		return nil, errors.Errorf("empty range %d..%d", low, high)
	}
	if low < math.MinInt32 || high > math.MaxInt32 {
		return nil, errors.Errorf("range %d..%d exceeds the int labels", low, high)
	}
	return &RangeTable{low: low, high: high}, nil
}

func (t *RangeTable) Cases() []int64 {
	cases := make([]int64, t.Len())
	for i := range cases {
		cases[i] = t.low + int64(i)
	}
	return cases
}

func (t *RangeTable) Len() int                 { return int(t.high-t.low) + 1 }
func (t *RangeTable) BranchNumber(i int) int   { return i + 1 }
func (t *RangeTable) DefaultBranchNumber() int { return t.Len() + 1 }

// DefaultClause returns selector < low || selector > high.
func (t *RangeTable) DefaultClause(selector val.Primitive) (val.Primitive, error) {
	lt, err := val.Lt(selector, val.NewSimplex(selector.Type(), t.low))
	if err != nil {
		return nil, err
	}
	gt, err := val.Gt(selector, val.NewSimplex(selector.Type(), t.high))
	if err != nil {
		return nil, err
	}
	return val.Or(lt, gt)
}
