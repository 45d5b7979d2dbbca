package symdec

import (
	"sync"

	"github.com/ajalab/symdec/oracle"
)

// Serial guards a DecisionProcedure shared by several goroutines. Each call
// to Do holds the procedure for a whole decision, so the assumptions set by
// f cannot be changed by another goroutine until f returns.
type Serial struct {
	mu sync.Mutex
	dp oracle.DecisionProcedure
}

// NewSerial wraps dp.
func NewSerial(dp oracle.DecisionProcedure) *Serial {
	return &Serial{dp: dp}
}

// Do runs f with exclusive access to the procedure.
func (s *Serial) Do(f func(dp oracle.DecisionProcedure) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.dp)
}
