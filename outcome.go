// Package symdec decides the feasible continuations of the decision points of
// a symbolic interpreter: branches, comparisons, switches, array bound checks
// and the loads that may need resolving a symbolic reference.
package symdec

import "github.com/pkg/errors"

// Outcome summarizes a decision.
type Outcome struct {
	refine      bool
	branching   bool
	resolution  bool
	noExpansion bool
}

// NewOutcome returns the outcome of a decision not involving reference resolution.
func NewOutcome(refine, branching bool) Outcome {
	return Outcome{refine: refine, branching: branching}
}

// NewResolutionOutcome returns the outcome of a decision involving reference resolution.
func NewResolutionOutcome(refine, branching, noExpansion bool) Outcome {
	return Outcome{refine: refine, branching: branching, resolution: true, noExpansion: noExpansion}
}

// NeedsRefinement returns true if the interpreter must refine its state
// after choosing an alternative.
func (o Outcome) NeedsRefinement() bool {
	return o.refine
}

// IsBranching returns true if the decision point may have more than one
// alternative, even if only one is currently feasible.
func (o Outcome) IsBranching() bool {
	return o.branching
}

// IsResolution returns true if o is the outcome of a load.
func (o Outcome) IsResolution() bool {
	return o.resolution
}

// NoReferenceExpansion returns true if resolving a reference produced no
// expansion alternative. It panics with an InvalidState *Error on outcomes
// of decisions not involving reference resolution.
func (o Outcome) NoReferenceExpansion() bool {
	if !o.resolution {
		panic(&Error{
			Kind: InvalidState,
			Op:   "NoReferenceExpansion",
			Err:  errors.New("outcome does not pertain to a reference resolution"),
		})
	}
	return o.noExpansion
}

func letter(b bool) byte {
	if b {
		return 'T'
	}
	return 'F'
}

// String returns the flags as T/F letters: refine, branching and, for
// resolution outcomes, no expansion.
func (o Outcome) String() string {
	s := []byte{letter(o.refine), letter(o.branching)}
	if o.resolution {
		s = append(s, letter(o.noExpansion))
	}
	return string(s)
}
