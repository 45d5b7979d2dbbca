package oracle

import (
	"fmt"
	"time"

	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/val"
)

// Stats counts the queries answered by a Counting procedure.
type Stats struct {
	IsSat               int
	IsSatAliases        int
	IsSatExpands        int
	IsSatNull           int
	IsSatInitialized    int
	IsSatNotInitialized int

	// Time is the total time spent answering queries.
	Time time.Duration
}

// Total returns the number of queries.
func (s Stats) Total() int {
	return s.IsSat + s.IsSatAliases + s.IsSatExpands + s.IsSatNull + s.IsSatInitialized + s.IsSatNotInitialized
}

func (s Stats) String() string {
	return fmt.Sprintf("queries=%d (sat=%d aliases=%d expands=%d null=%d init=%d notinit=%d) time=%s",
		s.Total(), s.IsSat, s.IsSatAliases, s.IsSatExpands, s.IsSatNull,
		s.IsSatInitialized, s.IsSatNotInitialized, s.Time)
}

// Counting is a DecisionProcedure counting the queries it forwards.
type Counting struct {
	DecisionProcedure
	Stats Stats
}

// NewCounting wraps dp.
func NewCounting(dp DecisionProcedure) *Counting {
	return &Counting{DecisionProcedure: dp}
}

func (c *Counting) track(counter *int, start time.Time) {
	*counter++
	c.Stats.Time += time.Since(start)
}

// IsSat forwards the query.
func (c *Counting) IsSat(cond val.Primitive) (bool, error) {
	defer c.track(&c.Stats.IsSat, time.Now())
	return c.DecisionProcedure.IsSat(cond)
}

// IsSatAliases forwards the query.
func (c *Counting) IsSatAliases(ref *val.ReferenceSymbolic, pos int64, o mem.Objekt) (bool, error) {
	defer c.track(&c.Stats.IsSatAliases, time.Now())
	return c.DecisionProcedure.IsSatAliases(ref, pos, o)
}

// IsSatExpands forwards the query.
func (c *Counting) IsSatExpands(ref *val.ReferenceSymbolic, class string) (bool, error) {
	defer c.track(&c.Stats.IsSatExpands, time.Now())
	return c.DecisionProcedure.IsSatExpands(ref, class)
}

// IsSatNull forwards the query.
func (c *Counting) IsSatNull(ref *val.ReferenceSymbolic) (bool, error) {
	defer c.track(&c.Stats.IsSatNull, time.Now())
	return c.DecisionProcedure.IsSatNull(ref)
}

// IsSatInitialized forwards the query.
func (c *Counting) IsSatInitialized(class string) (bool, error) {
	defer c.track(&c.Stats.IsSatInitialized, time.Now())
	return c.DecisionProcedure.IsSatInitialized(class)
}

// IsSatNotInitialized forwards the query.
func (c *Counting) IsSatNotInitialized(class string) (bool, error) {
	defer c.track(&c.Stats.IsSatNotInitialized, time.Now())
	return c.DecisionProcedure.IsSatNotInitialized(class)
}

// Reset clears the statistics.
func (c *Counting) Reset() {
	c.Stats = Stats{}
}
