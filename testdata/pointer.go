package testdata

// Shape is implemented by Rect and Square.
type Shape interface {
	Area() int
}

// Rect is a rectangle.
type Rect struct {
	W, H int
}

// Area returns the area of r.
func (r *Rect) Area() int {
	return r.W * r.H
}

// Square is a square.
type Square struct {
	S int
}

// Area returns the area of s.
func (s Square) Area() int {
	return s.S * s.S
}

// PointerIsNil is a test case to check nil handling.
func PointerIsNil(a *int) string {
	if a == nil {
		return "a is nil"
	}
	return "a is not nil"
}

// ShapeIsNil is a test case to check nil handling of interfaces.
func ShapeIsNil(s Shape) bool {
	if s == nil {
		return true
	}
	return false
}

// RectWidth is a test case to check field loads.
func RectWidth(r *Rect) int {
	return r.W
}
