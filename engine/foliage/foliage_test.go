package foliage

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/engine/noise"
)

// near compares absolutely. mgl32's relative comparison is too strict next to
// zero components.
func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func flatGround(height float64) noise.Field {
	return noise.Constant(height)
}

func testCategory() Category {
	return Category{
		Name:    "shrubs",
		Density: 4,
		Ranges: Ranges{
			Scale:  Range{Min: 0.5, Max: 1},
			ZScale: Range{Min: 0.4, Max: 1.2},
		},
		Domain:  noise.NewSquare(-4, -4, 8),
		Model:   "shrub.glb",
		Texture: "shrub.png",
	}
}

func TestTransformCompositionOrder(t *testing.T) {
	m := Transform(Point{2, 3}, 1.5, 0, 1, 1)
	if got := m.Col(3).Vec3(); got != (mgl32.Vec3{2, 3, 1.5}) {
		t.Fatalf("translation = %v, want (2, 3, 1.5)", got)
	}
	if got := m.Mat3(); got != mgl32.Ident3() {
		t.Fatalf("linear part = %v, want identity", got)
	}
}

func TestTransformScalesBeforeRotating(t *testing.T) {
	m := Transform(Point{0, 0}, 0, math.Pi/2, 2, 3)
	// The local x axis is scaled by 2 and then turned onto the world y axis.
	x := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !x.ApproxFuncEqual(mgl32.Vec3{0, 2, 0}, near) {
		t.Fatalf("local x maps to %v, want (0, 2, 0)", x)
	}
	z := m.Mul4x1(mgl32.Vec4{0, 0, 1, 1}).Vec3()
	if !z.ApproxFuncEqual(mgl32.Vec3{0, 0, 6}, near) {
		t.Fatalf("local z maps to %v, want (0, 0, 6)", z)
	}
}

func TestInstanceNormalMatrix(t *testing.T) {
	inst := NewInstance(Transform(Point{1, 1}, 0, 0.3, 2, 0.5))
	product := inst.Normal.Transpose().Mul3(inst.Model.Mat3())
	if !product.ApproxFuncEqual(mgl32.Ident3(), near) {
		t.Fatalf("normal matrix is not the inverse transpose: %v", product)
	}
}

func TestPlaceStandsOnHeightField(t *testing.T) {
	height := noise.FieldFunc(func(x, y float64) float64 { return x + 2*y })
	points := []Point{{1, 1}, {-2, 0.5}, {3, -1}}
	instances := Place(points, height, testCategory().Ranges, rand.New(rand.NewSource(1)))
	if len(instances) != len(points) {
		t.Fatalf("got %d instances, want %d", len(instances), len(points))
	}
	for i, inst := range instances {
		p := points[i]
		want := mgl32.Vec3{p.X(), p.Y(), p.X() + 2*p.Y()}
		if !inst.Position().ApproxEqualThreshold(want, 1e-5) {
			t.Errorf("instance %d at %v, want %v", i, inst.Position(), want)
		}
	}
}

func TestPlaceDrawsRotationThenZScaleThenScale(t *testing.T) {
	ranges := Ranges{Scale: Range{Min: 1, Max: 3}, ZScale: Range{Min: 0.5, Max: 0.7}}
	instances := Place([]Point{{0, 0}}, flatGround(0), ranges, rand.New(rand.NewSource(9)))

	rng := rand.New(rand.NewSource(9))
	angle := rng.Float32() * 2 * math.Pi
	zScale := ranges.ZScale.Sample(rng)
	scale := ranges.Scale.Sample(rng)
	want := Transform(Point{0, 0}, 0, angle, scale, zScale)
	if instances[0].Model != want {
		t.Fatalf("got %v, want %v", instances[0].Model, want)
	}
}

func TestPlaceWithoutHeightFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	Place([]Point{{0, 0}}, nil, DefaultRanges(), rand.New(rand.NewSource(1)))
}

func TestRangeSampleStaysInside(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	r := Range{Min: 0.9, Max: 1.0}
	for i := 0; i < 1000; i++ {
		if v := r.Sample(rng); v < r.Min || v > r.Max {
			t.Fatalf("sample %v outside %s", v, r)
		}
	}
	if Fixed(2).Sample(rng) != 2 {
		t.Fatal("fixed range must always return its value")
	}
}

// fixedSource always returns the same value.
type fixedSource int64

func (s fixedSource) Int63() int64 { return int64(s) }
func (s fixedSource) Seed(int64)   {}

func TestRangeSampleIncludesBothEnds(t *testing.T) {
	r := Range{Min: 0.5, Max: 1.5}
	if v := r.Sample(rand.New(fixedSource(0))); v != r.Min {
		t.Fatalf("lowest draw = %v, want %v", v, r.Min)
	}
	if v := r.Sample(rand.New(fixedSource(rangeSteps))); v != r.Max {
		t.Fatalf("highest draw = %v, want %v", v, r.Max)
	}
}

func TestCap(t *testing.T) {
	makePoints := func(n int) []Point {
		points := make([]Point, n)
		for i := range points {
			points[i] = Point{float32(i), 0}
		}
		return points
	}

	t.Run("exact count", func(t *testing.T) {
		kept := Cap(makePoints(50), 7, rand.New(rand.NewSource(4)))
		if len(kept) != 7 {
			t.Fatalf("kept %d points, want 7", len(kept))
		}
	})
	t.Run("same seed keeps same subset", func(t *testing.T) {
		a := Cap(makePoints(50), 7, rand.New(rand.NewSource(4)))
		b := Cap(makePoints(50), 7, rand.New(rand.NewSource(4)))
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("subsets differ at %d: %v vs %v", i, a[i], b[i])
			}
		}
	})
	t.Run("kept points are distinct originals", func(t *testing.T) {
		seen := map[float32]bool{}
		for _, p := range Cap(makePoints(50), 20, rand.New(rand.NewSource(8))) {
			if seen[p.X()] || p.X() < 0 || p.X() >= 50 {
				t.Fatalf("unexpected point %v", p)
			}
			seen[p.X()] = true
		}
	})
	t.Run("under the limit leaves rng untouched", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		kept := Cap(makePoints(5), 7, rng)
		if len(kept) != 5 {
			t.Fatalf("kept %d points, want 5", len(kept))
		}
		if rng.Int63() != rand.New(rand.NewSource(5)).Int63() {
			t.Fatal("cap consumed randomness without capping")
		}
	})
	t.Run("zero is unlimited", func(t *testing.T) {
		if kept := Cap(makePoints(30), 0, rand.New(rand.NewSource(5))); len(kept) != 30 {
			t.Fatalf("kept %d points, want 30", len(kept))
		}
	})
}

func TestGeneratePointsIsDeterministic(t *testing.T) {
	density := Density(3, 17)
	domain := noise.NewSquare(-4, -4, 8)
	a := GeneratePoints(density, domain, 99, DefaultResolution)
	b := GeneratePoints(density, domain, 99, DefaultResolution)
	if len(a) == 0 {
		t.Fatal("expected some points")
	}
	if len(a) != len(b) {
		t.Fatalf("point counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGeneratePointsStayInDomain(t *testing.T) {
	domain := noise.Rect{MinX: 3, MaxX: 5, MinY: -1, MaxY: 0}
	for _, p := range GeneratePoints(noise.Constant(200), domain, 1, 20) {
		x, y := float64(p.X()), float64(p.Y())
		// float32 rounding may land a point exactly on the far edge.
		if x < domain.MinX || x > domain.MaxX || y < domain.MinY || y > domain.MaxY {
			t.Fatalf("point %v outside %v", p, domain)
		}
	}
}

func TestDensityApproximatesTarget(t *testing.T) {
	const target = 2.0
	domain := noise.NewSquare(0, 0, 40)
	const seeds = 20
	total := 0
	for seed := 0; seed < seeds; seed++ {
		density := Density(target, uint32(seed)*7919)
		total += len(GeneratePoints(density, domain, int64(seed), DefaultResolution))
	}
	expected := target * domain.Area() * seeds
	if ratio := float64(total) / expected; ratio < 0.9 || ratio > 1.1 {
		t.Fatalf("generated %d points, expected about %.0f (ratio %.3f)", total, expected, ratio)
	}
}

func TestConstantDensityMeanIsExact(t *testing.T) {
	// With λ = 0.5 in every cell each cell yields 0 or 1 points, so the
	// total over many cells is tightly concentrated around the mean.
	domain := noise.NewSquare(0, 0, 100)
	points := GeneratePoints(noise.Constant(0.5), domain, 5, 100)
	expected := 0.5 * domain.Area()
	if math.Abs(float64(len(points))-expected) > 0.05*expected {
		t.Fatalf("got %d points, expected about %.0f", len(points), expected)
	}
}

func TestZeroDensityRegionIsEmpty(t *testing.T) {
	density := noise.FieldFunc(func(x, y float64) float64 {
		if x < 0 {
			return 0
		}
		return 5
	})
	domain := noise.NewSquare(-10, -10, 20)
	dx := float32(domain.Width() / DefaultResolution)
	for seed := int64(0); seed < 5; seed++ {
		points := GeneratePoints(density, domain, seed, DefaultResolution)
		if len(points) == 0 {
			t.Fatal("expected points in the positive half")
		}
		for _, p := range points {
			if p.X() < -dx {
				t.Fatalf("seed %d: point %v inside the zero density region", seed, p)
			}
		}
	}
}

func TestDegenerateRatesAreSkippedWithoutDrawing(t *testing.T) {
	domain := noise.NewSquare(0, 0, 10)
	withHoles := func(hole float64) noise.Field {
		return noise.FieldFunc(func(x, y float64) float64 {
			if x > 3 && x < 6 {
				return hole
			}
			return 1.5
		})
	}
	reference := GeneratePoints(withHoles(0), domain, 11, 50)
	for _, hole := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := GeneratePoints(withHoles(hole), domain, 11, 50)
		if len(got) != len(reference) {
			t.Fatalf("rate %v: %d points, want %d", hole, len(got), len(reference))
		}
		for i := range got {
			if got[i] != reference[i] {
				t.Fatalf("rate %v: point %d differs", hole, i)
			}
		}
	}
}

func TestHugeRatesAreClamped(t *testing.T) {
	domain := noise.NewSquare(0, 0, 1)
	points := GeneratePoints(noise.Constant(1e15), domain, 5, 4)
	if limit := 16 * (MaxCellCount + 1); len(points) > limit {
		t.Fatalf("got %d points, want at most %d", len(points), limit)
	}
	if len(points) < 16*MaxCellCount {
		t.Fatalf("got %d points, want every cell filled to %d", len(points), MaxCellCount)
	}
	if got := ExpectedCount(noise.Constant(1e15), domain, 4); got != 16*MaxCellCount {
		t.Fatalf("expected count = %v, want %v", got, 16*MaxCellCount)
	}
}

func TestModulateRange(t *testing.T) {
	tests := []struct {
		channel float64
		want    float64
	}{
		{0, 0.1},
		{0.5, 0.6},
		{1, 2.1},
	}
	for _, tt := range tests {
		got := Modulate(noise.Constant(1), noise.Constant(tt.channel)).Get(0, 0)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("channel %v: got %v, want %v", tt.channel, got, tt.want)
		}
	}
}

func TestDensityIsNonNegative(t *testing.T) {
	density := Density(30, 123)
	for i := 0; i < 400; i++ {
		x := float64(i%20)*0.7 - 7
		y := float64(i/20)*0.7 - 7
		if v := density.Get(x, y); v < 0 || v > 60 {
			t.Fatalf("density %v out of [0, 60] at (%v, %v)", v, x, y)
		}
	}
}

func TestGenerateIsDeterministicAndCapped(t *testing.T) {
	c := testCategory()
	c.Limit = 10
	a := Generate(c, flatGround(0.2), nil, 77)
	b := Generate(c, flatGround(0.2), nil, 77)
	if a.RawCount <= c.Limit {
		t.Fatalf("raw count %d does not exceed the limit", a.RawCount)
	}
	if len(a.Instances) != c.Limit {
		t.Fatalf("got %d instances, want %d", len(a.Instances), c.Limit)
	}
	if a.RawCount != b.RawCount || len(a.Instances) != len(b.Instances) {
		t.Fatal("counts differ between runs")
	}
	for i := range a.Instances {
		if a.Instances[i] != b.Instances[i] {
			t.Fatalf("instance %d differs between runs", i)
		}
	}
}

func TestGenerateModulationChangesOutcome(t *testing.T) {
	c := testCategory()
	plain := Generate(c, flatGround(0), nil, 5)
	sparse := Generate(c, flatGround(0), noise.Constant(0), 5)
	if len(sparse.Instances) >= len(plain.Instances) {
		t.Fatalf("black modulation should thin out plants: %d vs %d", len(sparse.Instances), len(plain.Instances))
	}
}

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Category)
		valid  bool
	}{
		{"ok", func(c *Category) {}, true},
		{"no name", func(c *Category) { c.Name = "" }, false},
		{"negative density", func(c *Category) { c.Density = -1 }, false},
		{"nan density", func(c *Category) { c.Density = math.NaN() }, false},
		{"huge density", func(c *Category) { c.Density = 1e15 }, false},
		{"max density", func(c *Category) { c.Density = MaxDensity }, true},
		{"negative limit", func(c *Category) { c.Limit = -3 }, false},
		{"inverted scale", func(c *Category) { c.Ranges.Scale = Range{Min: 2, Max: 1} }, false},
		{"inverted z scale", func(c *Category) { c.Ranges.ZScale = Range{Min: 2, Max: 1} }, false},
		{"empty domain", func(c *Category) { c.Domain = noise.Rect{} }, false},
		{"no model", func(c *Category) { c.Model = "" }, false},
		{"no texture", func(c *Category) { c.Texture = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCategory()
			tt.modify(&c)
			if err := c.Validate(); (err == nil) != tt.valid {
				t.Fatalf("Validate() = %v, want valid=%v", err, tt.valid)
			}
		})
	}
}

func BenchmarkGeneratePoints(b *testing.B) {
	density := Density(50, 1)
	domain := noise.NewSquare(-4, -4, 8)
	for i := 0; i < b.N; i++ {
		GeneratePoints(density, domain, int64(i), DefaultResolution)
	}
}
