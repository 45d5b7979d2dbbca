// Package solver decides constraints of the value model with the Z3 SMT
// solver. Z3 is linked through cgo when building with the z3 tag.
package solver

import (
	"fmt"
	"time"
)

// Config configures a Z3Solver.
type Config struct {
	// Timeout bounds each Check. Zero means no timeout.
	Timeout time.Duration
}

// Stats holds the solver statistics of a Z3Solver.
type Stats struct {
	SolveN    int
	SolveTime time.Duration
}

// Error is an error reported by the Z3 API.
type Error struct {
	Code    int
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Op, e.Message, e.Code)
}

// Z3 error codes.
const (
	ErrorCodeOK = iota
	ErrorCodeSortError
	ErrorCodeIOB
	ErrorCodeInvalidArg
	ErrorCodeParserError
	ErrorCodeNoParser
	ErrorCodeInvalidPattern
	ErrorCodeMemoutFail
	ErrorCodeFileAccessError
	ErrorCodeInternalFatal
	ErrorCodeInvalidUsage
	ErrorCodeDecRefError
	ErrorCodeException
)
