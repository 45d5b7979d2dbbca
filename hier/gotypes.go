package hier

import (
	"go/types"
	"sort"

	"github.com/pkg/errors"
)

// GoTypes is a ClassHierarchy over the named types of Go packages.
// Interface types play the role of abstract classes: their concrete
// subclasses are the named non-interface types whose value or pointer
// method set implements them. Classes are named "pkgpath.Name".
type GoTypes struct {
	named map[string]*types.Named
	// boxes holds the box classes of pointers to primitives.
	boxes map[string]bool
}

// NewGoTypes collects the package-level named types of pkgs.
func NewGoTypes(pkgs ...*types.Package) *GoTypes {
	h := &GoTypes{
		named: make(map[string]*types.Named),
		boxes: make(map[string]bool),
	}
	for _, pkg := range pkgs {
		if pkg == nil {
			continue
		}
		scope := pkg.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || obj.IsAlias() {
				continue
			}
			named, ok := obj.Type().(*types.Named)
			if !ok {
				continue
			}
			h.named[ClassName(named)] = named
		}
	}
	return h
}

// ClassName returns the class name of a named type.
func ClassName(named *types.Named) string {
	obj := named.Obj()
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

// Box declares the box class of the primitive type elem and returns its name.
// Redeclaring a box does not modify h.
func (h *GoTypes) Box(elem string) string {
	name := "*" + elem
	if !h.boxes[name] {
		h.boxes[name] = true
	}
	return name
}

// Classes returns all the known class names, sorted.
func (h *GoTypes) Classes() []string {
	names := make([]string, 0, len(h.named)+len(h.boxes))
	for name := range h.named {
		names = append(names, name)
	}
	for name := range h.boxes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSubclass returns true if sub is sup, or sup is an interface implemented by sub.
func (h *GoTypes) IsSubclass(sub, sup string) bool {
	if sub == sup {
		return true
	}
	subType, ok := h.named[sub]
	if !ok {
		return false
	}
	supType, ok := h.named[sup]
	if !ok {
		return false
	}
	return implements(subType, supType)
}

func implements(sub, sup *types.Named) bool {
	iface, ok := sup.Underlying().(*types.Interface)
	if !ok {
		return false
	}
	return types.Implements(sub, iface) || types.Implements(types.NewPointer(sub), iface)
}

func isInterface(t *types.Named) bool {
	_, ok := t.Underlying().(*types.Interface)
	return ok
}

// ConcreteSubclasses returns the non-interface named types implementing class
// (or class itself if it is not an interface), sorted by name.
func (h *GoTypes) ConcreteSubclasses(class string) ([]string, error) {
	if h.boxes[class] {
		return []string{class}, nil
	}
	t, ok := h.named[class]
	if !ok {
		return nil, errors.Wrapf(ErrClassNotFound, "%s", class)
	}
	if !isInterface(t) {
		return []string{class}, nil
	}
	var result []string
	for name, sub := range h.named {
		if isInterface(sub) {
			continue
		}
		if implements(sub, t) {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result, nil
}
