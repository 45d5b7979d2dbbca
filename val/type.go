package val

import "strings"

// Type is the type of a value.
type Type int

const (
	// Unknown is the type of no value.
	Unknown Type = iota
	// Boolean is the type of logical values.
	Boolean
	// Byte is the type of signed 8-bit integers.
	Byte
	// Short is the type of signed 16-bit integers.
	Short
	// Char is the type of unsigned 16-bit integers.
	Char
	// Int is the type of signed 32-bit integers.
	Int
	// Long is the type of signed 64-bit integers.
	Long
	// Reference is the type of references to heap objects.
	Reference
)

var typeNames = [...]string{
	Unknown:   "unknown",
	Boolean:   "boolean",
	Byte:      "byte",
	Short:     "short",
	Char:      "char",
	Int:       "int",
	Long:      "long",
	Reference: "reference",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "invalid"
	}
	return typeNames[t]
}

// IsIntegral returns true if t is an integer type.
func (t Type) IsIntegral() bool {
	switch t {
	case Byte, Short, Char, Int, Long:
		return true
	}
	return false
}

// IsPrimitive returns true if t is boolean or integral.
func (t Type) IsPrimitive() bool {
	return t == Boolean || t.IsIntegral()
}

// Width returns the number of bits of a primitive type.
func (t Type) Width() uint {
	switch t {
	case Boolean:
		return 1
	case Byte:
		return 8
	case Short, Char:
		return 16
	case Int:
		return 32
	case Long:
		return 64
	}
	return 0
}

// IsSigned returns true if t is a signed integer type.
func (t Type) IsSigned() bool {
	return t.IsIntegral() && t != Char
}

// Min returns the least value representable by an integral type.
func (t Type) Min() int64 {
	switch t {
	case Boolean, Char:
		return 0
	case Byte, Short, Int, Long:
		return -1 << (t.Width() - 1)
	}
	return 0
}

// Max returns the greatest value representable by an integral type.
func (t Type) Max() int64 {
	switch t {
	case Boolean:
		return 1
	case Char:
		return 1<<16 - 1
	case Byte, Short, Int, Long:
		return 1<<(t.Width()-1) - 1
	}
	return 0
}

// wrap truncates v to the width of t with two's complement semantics.
func (t Type) wrap(v int64) int64 {
	switch t {
	case Boolean:
		if v != 0 {
			return 1
		}
		return 0
	case Byte:
		return int64(int8(v))
	case Short:
		return int64(int16(v))
	case Char:
		return int64(uint16(v))
	case Int:
		return int64(int32(v))
	}
	return v
}

// ArrayPrefix prefixes the static type of array references.
const ArrayPrefix = "[]"

// IsArrayType returns true if the static type s denotes an array class.
func IsArrayType(s string) bool {
	return strings.HasPrefix(s, ArrayPrefix) && len(s) > len(ArrayPrefix)
}

// IsReferenceType returns true if the static type s denotes a class
// (that is, neither a primitive type nor an array type).
func IsReferenceType(s string) bool {
	if s == "" || strings.HasPrefix(s, ArrayPrefix) {
		return false
	}
	_, primitive := ParseType(s)
	return !primitive
}

// ElemType returns the element type of an array static type.
func ElemType(s string) string {
	return strings.TrimPrefix(s, ArrayPrefix)
}

// ParseType returns the primitive type named s.
func ParseType(s string) (Type, bool) {
	for t := Boolean; t < Reference; t++ {
		if s == t.String() {
			return t, true
		}
	}
	return Unknown, false
}
