package noise

import "math"

type scaleBias struct {
	source      Field
	scale, bias float64
}

// ScaleBias returns value*scale + bias.
func ScaleBias(source Field, scale, bias float64) Field {
	return scaleBias{source: source, scale: scale, bias: bias}
}

func (s scaleBias) Get(x, y float64) float64 {
	return s.source.Get(x, y)*s.scale + s.bias
}

type add struct {
	a, b Field
}

func Add(a, b Field) Field {
	return add{a: a, b: b}
}

func (f add) Get(x, y float64) float64 {
	return f.a.Get(x, y) + f.b.Get(x, y)
}

// Sum adds all fields together. With no arguments it is the zero field.
func Sum(fields ...Field) Field {
	if len(fields) == 0 {
		return Constant(0)
	}
	result := fields[0]
	for _, f := range fields[1:] {
		result = Add(result, f)
	}
	return result
}

type multiply struct {
	a, b Field
}

func Multiply(a, b Field) Field {
	return multiply{a: a, b: b}
}

func (f multiply) Get(x, y float64) float64 {
	return f.a.Get(x, y) * f.b.Get(x, y)
}

type power struct {
	base     Field
	exponent float64
}

// Power raises the source value to a constant exponent.
func Power(base Field, exponent float64) Field {
	return power{base: base, exponent: exponent}
}

func (f power) Get(x, y float64) float64 {
	value := f.base.Get(x, y)
	if f.exponent == 2 {
		return value * value
	}
	return math.Pow(value, f.exponent)
}

type minimum struct {
	a, b Field
}

func Min(a, b Field) Field {
	return minimum{a: a, b: b}
}

func (f minimum) Get(x, y float64) float64 {
	return math.Min(f.a.Get(x, y), f.b.Get(x, y))
}

type maximum struct {
	a, b Field
}

func Max(a, b Field) Field {
	return maximum{a: a, b: b}
}

func (f maximum) Get(x, y float64) float64 {
	return math.Max(f.a.Get(x, y), f.b.Get(x, y))
}

type clamp struct {
	source    Field
	low, high float64
}

// Clamp limits the source to [low, high].
func Clamp(source Field, low, high float64) Field {
	if low > high {
		low, high = high, low
	}
	return clamp{source: source, low: low, high: high}
}

func (f clamp) Get(x, y float64) float64 {
	return math.Min(math.Max(f.source.Get(x, y), f.low), f.high)
}
