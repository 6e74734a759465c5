package foliage

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/engine/noise"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// Fixed returns the degenerate range that always yields v.
func Fixed(v float32) Range {
	return Range{Min: v, Max: v}
}

// rangeSteps is the number of evenly spaced values between Min and Max.
const rangeSteps = 1 << 24

// Sample draws from [Min, Max] with both ends included.
func (r Range) Sample(rng *rand.Rand) float32 {
	t := float32(rng.Int63n(rangeSteps+1)) / rangeSteps
	return r.Min + (r.Max-r.Min)*t
}

func (r Range) Valid() bool {
	return r.Min <= r.Max && !math.IsNaN(float64(r.Min)) && !math.IsNaN(float64(r.Max))
}

func (r Range) String() string {
	return fmt.Sprintf("[%.2f, %.2f]", r.Min, r.Max)
}

// Ranges bundle the random scale parameters of a placement. Scale applies to
// all three axes, ZScale additionally stretches the height.
type Ranges struct {
	Scale  Range
	ZScale Range
}

func DefaultRanges() Ranges {
	return Ranges{Scale: Fixed(1), ZScale: Fixed(1)}
}

// Instance is the per instance data uploaded for instanced drawing.
type Instance struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat3
}

func NewInstance(model mgl32.Mat4) Instance {
	return Instance{
		Model:  model,
		Normal: model.Mat3().Inv().Transpose(),
	}
}

func (i Instance) Position() mgl32.Vec3 {
	return i.Model.Col(3).Vec3()
}

// Transform places a model at (x, y, height), turns it about the z axis and
// scales it by (scale, scale, scale*zScale), in that order.
func Transform(p Point, height, angle, scale, zScale float32) mgl32.Mat4 {
	translation := mgl32.Translate3D(p.X(), p.Y(), height)
	rotation := mgl32.HomogRotate3DZ(angle)
	scaling := mgl32.Scale3D(scale, scale, scale*zScale)
	return translation.Mul4(rotation).Mul4(scaling)
}

// Place turns points into instance transforms standing on the height field.
// For every point the rotation is drawn first, then the z scale, then the
// scale. A nil height field is a programming error and panics.
func Place(points []Point, height noise.Field, ranges Ranges, rng *rand.Rand) []Instance {
	if height == nil {
		panic("foliage: placement needs a height field")
	}
	instances := make([]Instance, len(points))
	for i, p := range points {
		angle := rng.Float32() * 2 * math.Pi
		zScale := ranges.ZScale.Sample(rng)
		scale := ranges.Scale.Sample(rng)
		h := float32(height.Get(float64(p.X()), float64(p.Y())))
		instances[i] = NewInstance(Transform(p, h, angle, scale, zScale))
	}
	return instances
}

// Cap keeps a random subset of limit points. The slice is shuffled in place
// and truncated only when it holds more than limit points; a limit of zero
// means no cap, and in that case rng is left untouched.
func Cap(points []Point, limit int, rng *rand.Rand) []Point {
	if limit <= 0 || len(points) <= limit {
		return points
	}
	rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
	return points[:limit]
}
