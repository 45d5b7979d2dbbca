package symdec

import (
	"fmt"

	"github.com/ajalab/symdec/hier"
	"github.com/pkg/errors"
)

// Kind classifies the failures of a decision.
type Kind int

const (
	// Other is the kind of errors not produced by this package.
	Other Kind = iota
	// InvalidInput means a caller passed a missing or ill-typed argument.
	InvalidInput
	// InvalidState means a collaborator broke an invariant the decision relies on.
	InvalidState
	// DecisionFailure means the satisfiability oracle failed.
	DecisionFailure
	// ClassNotFound means a class name could not be resolved.
	ClassNotFound
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case InvalidState:
		return "invalid state"
	case DecisionFailure:
		return "decision failure"
	case ClassNotFound:
		return "class not found"
	}
	return "other"
}

// Error is the error returned by the decision algorithms.
type Error struct {
	Kind Kind
	// Op is the decision that failed.
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error, for errors.Cause.
func (e *Error) Cause() error {
	return e.Err
}

// KindOf returns the kind of err, or Other if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

func invalidInput(op, format string, args ...interface{}) error {
	return &Error{Kind: InvalidInput, Op: op, Err: errors.Errorf(format, args...)}
}

func invalidState(op, format string, args ...interface{}) error {
	return &Error{Kind: InvalidState, Op: op, Err: errors.Errorf(format, args...)}
}

// decisionFailure wraps an oracle error. Class lookups failing inside the
// oracle keep their own kind.
func decisionFailure(op string, err error) error {
	if errors.Cause(err) == hier.ErrClassNotFound {
		return &Error{Kind: ClassNotFound, Op: op, Err: err}
	}
	return &Error{Kind: DecisionFailure, Op: op, Err: err}
}
