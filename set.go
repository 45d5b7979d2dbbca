package symdec

import (
	"sort"
	"strings"
)

// Alternatives is a set of alternatives ordered by branch number.
// The zero value is an empty set.
type Alternatives[A Alternative] struct {
	items []A
}

// NewAlternatives returns an empty set.
func NewAlternatives[A Alternative]() *Alternatives[A] {
	return &Alternatives[A]{}
}

// Add inserts a keeping the set ordered by branch number.
func (s *Alternatives[A]) Add(a A) {
	n := a.BranchNumber()
	i := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].BranchNumber() > n
	})
	var zero A
	s.items = append(s.items, zero)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = a
}

// Len returns the number of alternatives.
func (s *Alternatives[A]) Len() int {
	return len(s.items)
}

// At returns the i-th alternative.
func (s *Alternatives[A]) At(i int) A {
	return s.items[i]
}

// Items returns the alternatives in branch number order.
func (s *Alternatives[A]) Items() []A {
	return s.items
}

// BranchNumbers returns the branch numbers in order.
func (s *Alternatives[A]) BranchNumbers() []int {
	ns := make([]int, len(s.items))
	for i, a := range s.items {
		ns[i] = a.BranchNumber()
	}
	return ns
}

func (s *Alternatives[A]) String() string {
	strs := make([]string, len(s.items))
	for i, a := range s.items {
		strs[i] = a.String()
	}
	return "{" + strings.Join(strs, ", ") + "}"
}
