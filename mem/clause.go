package mem

import (
	"fmt"

	"github.com/ajalab/symdec/val"
)

// Clause is a conjunct of a path condition.
type Clause interface {
	String() string
	isClause()
}

// ClauseAssume assumes a boolean condition.
type ClauseAssume struct {
	Cond val.Primitive
}

// ClauseAssumeExpands assumes a symbolic reference points to a fresh
// object stored at HeapPosition.
type ClauseAssumeExpands struct {
	Ref          *val.ReferenceSymbolic
	HeapPosition int64
	Object       Objekt
}

// ClauseAssumeAliases assumes a symbolic reference points to an object
// already in the heap.
type ClauseAssumeAliases struct {
	Ref          *val.ReferenceSymbolic
	HeapPosition int64
	Object       Objekt
}

// ClauseAssumeNull assumes a symbolic reference is null.
type ClauseAssumeNull struct {
	Ref *val.ReferenceSymbolic
}

// ClauseAssumeClassInitialized assumes a class was initialized before
// the symbolic execution started.
type ClauseAssumeClassInitialized struct {
	Class string
}

// ClauseAssumeClassNotInitialized assumes a class was not initialized before
// the symbolic execution started.
type ClauseAssumeClassNotInitialized struct {
	Class string
}

func (c *ClauseAssume) String() string { return c.Cond.String() }

func (c *ClauseAssumeExpands) String() string {
	return fmt.Sprintf("%s == Object[%d] (fresh %s)", c.Ref, c.HeapPosition, c.Object.Type())
}

func (c *ClauseAssumeAliases) String() string {
	return fmt.Sprintf("%s == Object[%d] (%s)", c.Ref, c.HeapPosition, c.Object.Origin())
}

func (c *ClauseAssumeNull) String() string { return fmt.Sprintf("%s == null", c.Ref) }

func (c *ClauseAssumeClassInitialized) String() string {
	return fmt.Sprintf("initialized(%s)", c.Class)
}

func (c *ClauseAssumeClassNotInitialized) String() string {
	return fmt.Sprintf("!initialized(%s)", c.Class)
}

func (*ClauseAssume) isClause()                    {}
func (*ClauseAssumeExpands) isClause()             {}
func (*ClauseAssumeAliases) isClause()             {}
func (*ClauseAssumeNull) isClause()                {}
func (*ClauseAssumeClassInitialized) isClause()    {}
func (*ClauseAssumeClassNotInitialized) isClause() {}

// ClauseRef returns the symbolic reference a reference clause is about.
func ClauseRef(c Clause) (*val.ReferenceSymbolic, bool) {
	switch c := c.(type) {
	case *ClauseAssumeExpands:
		return c.Ref, true
	case *ClauseAssumeAliases:
		return c.Ref, true
	case *ClauseAssumeNull:
		return c.Ref, true
	}
	return nil, false
}
