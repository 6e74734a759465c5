// Package noise composes deterministic scalar fields over the plane.
//
// A Field is a pure function of its coordinates: once constructed it holds
// no mutable state, so evaluating it twice at the same point yields the same
// value. Fields are combined into trees with the combinators in this package;
// the leaves are seeded noise primitives or raster images.
package noise

// Field is a scalar function over continuous 2D world coordinates.
type Field interface {
	Get(x, y float64) float64
}

// Field4 is a scalar function over 4D coordinates.
type Field4 interface {
	Get4(x, y, z, w float64) float64
}

// FieldFunc adapts an ordinary function to the Field interface.
type FieldFunc func(x, y float64) float64

func (f FieldFunc) Get(x, y float64) float64 {
	return f(x, y)
}

type constant float64

// Constant returns a field with the same value everywhere.
func Constant(value float64) Field {
	return constant(value)
}

func (c constant) Get(_, _ float64) float64 {
	return float64(c)
}

// Rect is an axis aligned rectangle in world space.
type Rect struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// NewSquare returns the rectangle [minX, minX+size] x [minY, minY+size].
func NewSquare(minX, minY, size float64) Rect {
	return Rect{MinX: minX, MaxX: minX + size, MinY: minY, MaxY: minY + size}
}

func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

func (r Rect) Center() (float64, float64) {
	return r.MinX + r.Width()/2, r.MinY + r.Height()/2
}

// Contains reports whether the point lies inside the half-open rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}
