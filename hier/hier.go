// Package hier provides class hierarchies, the collaborator used to
// enumerate the concrete classes a symbolic reference may be expanded to.
package hier

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrClassNotFound is the cause of the errors returned when a class name
// does not denote a known class.
var ErrClassNotFound = errors.New("class not found")

// ClassHierarchy answers subtyping queries over class names.
type ClassHierarchy interface {
	// IsSubclass returns true if sub is sup or a (transitive) subtype of sup.
	IsSubclass(sub, sup string) bool

	// ConcreteSubclasses returns the concrete subtypes of class, itself included
	// when it is concrete.
	ConcreteSubclasses(class string) ([]string, error)
}

type kind int

const (
	concreteClass kind = iota
	abstractClass
	interfaceClass
)

type classInfo struct {
	kind   kind
	supers []string
}

// Table is a ClassHierarchy built by declaring classes one at a time.
type Table struct {
	classes map[string]*classInfo
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{classes: make(map[string]*classInfo)}
}

// Class declares a concrete class with its superclass (may be empty) and interfaces.
func (t *Table) Class(name, super string, interfaces ...string) *Table {
	return t.declare(name, concreteClass, super, interfaces)
}

// Abstract declares an abstract class.
func (t *Table) Abstract(name, super string, interfaces ...string) *Table {
	return t.declare(name, abstractClass, super, interfaces)
}

// Interface declares an interface extending the given interfaces.
func (t *Table) Interface(name string, supers ...string) *Table {
	return t.declare(name, interfaceClass, "", supers)
}

func (t *Table) declare(name string, k kind, super string, interfaces []string) *Table {
	info := &classInfo{kind: k}
	if super != "" {
		info.supers = append(info.supers, super)
	}
	info.supers = append(info.supers, interfaces...)
	t.classes[name] = info
	return t
}

// IsSubclass returns true if sub is sup or a transitive subtype of sup.
func (t *Table) IsSubclass(sub, sup string) bool {
	if sub == sup {
		return true
	}
	visited := map[string]bool{sub: true}
	queue := []string{sub}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		info, ok := t.classes[name]
		if !ok {
			continue
		}
		for _, s := range info.supers {
			if s == sup {
				return true
			}
			if !visited[s] {
				visited[s] = true
				queue = append(queue, s)
			}
		}
	}
	return false
}

// ConcreteSubclasses returns the concrete classes that are subtypes of class,
// sorted by name.
func (t *Table) ConcreteSubclasses(class string) ([]string, error) {
	if _, ok := t.classes[class]; !ok {
		return nil, errors.Wrapf(ErrClassNotFound, "%s", class)
	}
	var result []string
	for name, info := range t.classes {
		if info.kind == concreteClass && t.IsSubclass(name, class) {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result, nil
}
