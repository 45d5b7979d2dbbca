// Package mem models the part of an execution state the decision layer reads:
// heap objects, the path condition and symbolic arrays.
package mem

import (
	"fmt"
	"sort"

	"github.com/ajalab/symdec/val"
)

// Objekt is a heap object.
type Objekt interface {
	// Type returns the class name of the object (its dynamic type).
	Type() string

	// Origin returns the access path of the reference the object was
	// assumed from, or "" for concrete objects.
	Origin() string

	// Epoch returns the creation epoch of the object.
	Epoch() int64

	// IsSymbolic returns true if the object was created by expanding
	// a symbolic reference.
	IsSymbolic() bool
}

// Instance is a class instance.
type Instance struct {
	class    string
	origin   string
	epoch    int64
	symbolic bool
	fields   map[string]val.Value
}

// NewInstance returns a symbolic instance of class assumed from origin.
func NewInstance(class, origin string, epoch int64) *Instance {
	return &Instance{
		class:    class,
		origin:   origin,
		epoch:    epoch,
		symbolic: true,
		fields:   make(map[string]val.Value),
	}
}

// NewConcreteInstance returns an instance created by the program itself.
func NewConcreteInstance(class string, epoch int64) *Instance {
	return &Instance{
		class:  class,
		epoch:  epoch,
		fields: make(map[string]val.Value),
	}
}

func (o *Instance) Type() string     { return o.class }
func (o *Instance) Origin() string   { return o.origin }
func (o *Instance) Epoch() int64     { return o.epoch }
func (o *Instance) IsSymbolic() bool { return o.symbolic }

// Field returns the value stored in the field name.
func (o *Instance) Field(name string) (val.Value, bool) {
	v, ok := o.fields[name]
	return v, ok
}

// SetField stores v into the field name.
func (o *Instance) SetField(name string, v val.Value) {
	o.fields[name] = v
}

// FieldNames returns the names of the assigned fields, sorted.
func (o *Instance) FieldNames() []string {
	names := make([]string, 0, len(o.fields))
	for name := range o.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (o *Instance) String() string {
	if o.symbolic {
		return fmt.Sprintf("%s{%s}", o.class, o.origin)
	}
	return o.class
}

func (o *Instance) clone() *Instance {
	c := *o
	c.fields = make(map[string]val.Value, len(o.fields))
	for k, v := range o.fields {
		c.fields[k] = v
	}
	return &c
}
