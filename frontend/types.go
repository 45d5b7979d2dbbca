package frontend

import (
	"go/types"
	"strconv"

	"github.com/ajalab/symdec/hier"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
)

// ErrUnsupportedType is the cause of the errors returned for Go types
// the value model cannot represent (floats, strings, unsigned words...).
var ErrUnsupportedType = errors.New("unsupported type")

// basicType maps a Go basic type to a primitive type of the value model.
func basicType(t *types.Basic) (val.Type, error) {
	switch t.Kind() {
	case types.Bool, types.UntypedBool:
		return val.Boolean, nil
	case types.Int8:
		return val.Byte, nil
	case types.Int16:
		return val.Short, nil
	case types.Uint16:
		return val.Char, nil
	case types.Int32, types.UntypedRune:
		return val.Int, nil
	case types.Int64:
		return val.Long, nil
	case types.Int, types.UntypedInt:
		if strconv.IntSize == 32 {
			return val.Int, nil
		}
		return val.Long, nil
	}
	return val.Unknown, errors.Wrapf(ErrUnsupportedType, "%s", t)
}

// primitiveType returns the primitive type of t, or an error if t is not
// a boolean or one of the supported integer types.
func primitiveType(t types.Type) (val.Type, error) {
	if b, ok := t.Underlying().(*types.Basic); ok {
		return basicType(b)
	}
	return val.Unknown, errors.Wrapf(ErrUnsupportedType, "%s is not primitive", t)
}

// staticType returns the static type of a reference of Go type t: the class
// name of a named type, the box class "*long" of a pointer to a primitive,
// or "[]elem" for a slice. h records the box classes it meets.
func staticType(h *hier.GoTypes, t types.Type) (string, error) {
	switch t := t.(type) {
	case *types.Named:
		switch u := t.Underlying().(type) {
		case *types.Interface:
			return hier.ClassName(t), nil
		case *types.Pointer, *types.Slice:
			return staticType(h, u)
		}
		return "", errors.Wrapf(ErrUnsupportedType, "%s is not a reference", t)
	case *types.Pointer:
		switch elem := t.Elem().(type) {
		case *types.Named:
			if _, ok := elem.Underlying().(*types.Struct); ok {
				return hier.ClassName(elem), nil
			}
		}
		p, err := primitiveType(t.Elem())
		if err != nil {
			return "", errors.Wrapf(err, "pointer %s", t)
		}
		return h.Box(p.String()), nil
	case *types.Slice:
		elem, err := elemType(h, t.Elem())
		if err != nil {
			return "", err
		}
		return val.ArrayPrefix + elem, nil
	}
	return "", errors.Wrapf(ErrUnsupportedType, "%s is not a reference", t)
}

// elemType returns the static type of the elements of a slice.
func elemType(h *hier.GoTypes, t types.Type) (string, error) {
	if p, err := primitiveType(t); err == nil {
		return p.String(), nil
	}
	return staticType(h, t)
}

// isReference returns true if values of t are represented by references.
func isReference(t types.Type) bool {
	switch t := t.(type) {
	case *types.Pointer, *types.Slice:
		return true
	case *types.Named:
		switch t.Underlying().(type) {
		case *types.Interface, *types.Pointer, *types.Slice:
			return true
		}
	}
	return false
}
