package hier

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestTable(t *testing.T) {
	h := NewTable().
		Interface("List").
		Abstract("AbstractList", "", "List").
		Class("LinkedList", "AbstractList").
		Class("ArrayList", "AbstractList").
		Class("Node", "")

	if !h.IsSubclass("LinkedList", "List") {
		t.Error("LinkedList should be a subclass of List")
	}
	if h.IsSubclass("Node", "List") {
		t.Error("Node should not be a subclass of List")
	}

	testCases := []struct {
		class    string
		expected []string
	}{
		{"List", []string{"ArrayList", "LinkedList"}},
		{"AbstractList", []string{"ArrayList", "LinkedList"}},
		{"Node", []string{"Node"}},
	}
	for _, tc := range testCases {
		actual, err := h.ConcreteSubclasses(tc.class)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tc.expected, actual); diff != "" {
			t.Errorf("%s: (-expected +actual)\n%s", tc.class, diff)
		}
	}

	if _, err := h.ConcreteSubclasses("Missing"); errors.Cause(err) != ErrClassNotFound {
		t.Errorf("expected ErrClassNotFound, got %v", err)
	}
}

const shapesSrc = `package shapes

type Shape interface {
	Area() int
}

type Square struct{ side int }

func (s Square) Area() int { return s.side * s.side }

type Rect struct{ w, h int }

func (r *Rect) Area() int { return r.w * r.h }

type Point struct{ x, y int }
`

func checkPackage(t *testing.T, path, src string) *types.Package {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path+".go", src, 0)
	if err != nil {
		t.Fatal(err)
	}
	conf := types.Config{Importer: importer.Default()}
	pkg, err := conf.Check(path, fset, []*ast.File{f}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return pkg
}

func TestGoTypes(t *testing.T) {
	h := NewGoTypes(checkPackage(t, "shapes", shapesSrc))

	actual, err := h.ConcreteSubclasses("shapes.Shape")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"shapes.Rect", "shapes.Square"}, actual); diff != "" {
		t.Errorf("(-expected +actual)\n%s", diff)
	}

	actual, err = h.ConcreteSubclasses("shapes.Point")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"shapes.Point"}, actual); diff != "" {
		t.Errorf("(-expected +actual)\n%s", diff)
	}

	if !h.IsSubclass("shapes.Rect", "shapes.Shape") {
		t.Error("*Rect implements Shape")
	}
	if h.IsSubclass("shapes.Point", "shapes.Shape") {
		t.Error("Point does not implement Shape")
	}
	if _, err := h.ConcreteSubclasses("shapes.Circle"); errors.Cause(err) != ErrClassNotFound {
		t.Errorf("expected ErrClassNotFound, got %v", err)
	}

	box := h.Box("long")
	if actual, err := h.ConcreteSubclasses(box); err != nil || len(actual) != 1 || actual[0] != "*long" {
		t.Errorf("unexpected subclasses of %s: %v, %v", box, actual, err)
	}
	if h.IsSubclass(box, "shapes.Shape") {
		t.Error("a box is a leaf")
	}
}
