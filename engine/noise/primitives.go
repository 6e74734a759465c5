package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// SourceFactory builds a seeded noise primitive. Fractal fields call it
// once per octave.
type SourceFactory func(seed uint32) Field

// Perlin is classic gradient noise. A single octave is taken from the
// underlying generator; layering is done by Fbm.
type Perlin struct {
	generator *perlin.Perlin
}

func NewPerlin(seed uint32) *Perlin {
	return &Perlin{generator: perlin.NewPerlin(2, 2, 1, int64(seed))}
}

func PerlinSource(seed uint32) Field {
	return NewPerlin(seed)
}

func (p *Perlin) Get(x, y float64) float64 {
	return p.generator.Noise2D(x, y)
}

// Simplex is OpenSimplex gradient noise in [-1, 1].
type Simplex struct {
	generator opensimplex.Noise
}

func NewSimplex(seed uint32) *Simplex {
	return &Simplex{generator: opensimplex.New(int64(seed))}
}

func SimplexSource(seed uint32) Field {
	return NewSimplex(seed)
}

func (s *Simplex) Get(x, y float64) float64 {
	return s.generator.Eval2(x, y)
}

// Value is lattice value noise: every integer lattice point carries a hashed
// value in [-1, 1] and the plane in between is interpolated with a quintic
// curve.
type Value struct {
	seed uint32
}

func NewValue(seed uint32) *Value {
	return &Value{seed: seed}
}

func ValueSource(seed uint32) Field {
	return NewValue(seed)
}

func (v *Value) Get(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	x0 := int32(fx)
	y0 := int32(fy)
	tx := quintic(x - fx)
	ty := quintic(y - fy)

	v00 := v.lattice(x0, y0)
	v10 := v.lattice(x0+1, y0)
	v01 := v.lattice(x0, y0+1)
	v11 := v.lattice(x0+1, y0+1)

	top := lerp(v00, v10, tx)
	bottom := lerp(v01, v11, tx)
	return lerp(top, bottom, ty)
}

func (v *Value) lattice(x, y int32) float64 {
	return hashToSigned(hash2(x, y, v.seed))
}

func quintic(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func hash2(x, y int32, seed uint32) uint32 {
	h := seed*0x27d4eb2d ^ uint32(x)*0x85ebca6b ^ uint32(y)*0xc2b2ae35
	return avalanche(h)
}

func hash4(x, y, z, w int32, seed uint32) uint32 {
	h := seed * 0x27d4eb2d
	h ^= uint32(x) * 0x85ebca6b
	h = avalanche(h)
	h ^= uint32(y) * 0xc2b2ae35
	h = avalanche(h)
	h ^= uint32(z) * 0x165667b1
	h = avalanche(h)
	h ^= uint32(w) * 0x9e3779b1
	return avalanche(h)
}

// murmur3 finalizer
func avalanche(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

func hashToUnit(h uint32) float64 {
	return float64(h) / float64(math.MaxUint32)
}

func hashToSigned(h uint32) float64 {
	return hashToUnit(h)*2 - 1
}
