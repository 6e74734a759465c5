package terrain

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/engine/noise"
)

func TestHeightMapIsDeterministic(t *testing.T) {
	a := HeightMap(12, nil)
	b := HeightMap(12, nil)
	c := HeightMap(13, nil)
	differs := false
	for i := 0; i < 40; i++ {
		x := float64(i)*0.21 - 4
		y := float64(i)*0.17 - 3
		if a.Get(x, y) != b.Get(x, y) {
			t.Fatalf("same seed differs at (%v, %v)", x, y)
		}
		if a.Get(x, y) != c.Get(x, y) {
			differs = true
		}
	}
	if !differs {
		t.Fatal("different seeds produced the same terrain")
	}
}

func TestHeightMapAddsSquaredBase(t *testing.T) {
	plain := HeightMap(4, nil)
	raised := HeightMap(4, noise.Constant(0.5))
	for i := 0; i < 10; i++ {
		x, y := float64(i)*0.3, float64(i)*-0.4
		if diff := raised.Get(x, y) - plain.Get(x, y); math.Abs(diff-0.5) > 1e-9 {
			t.Fatalf("base 0.5 should raise the terrain by 0.5, got %v", diff)
		}
	}
}

func TestRockMapRange(t *testing.T) {
	rocks := RockMap(3)
	for i := 0; i < 300; i++ {
		x := float64(i%20)*0.37 - 3
		y := float64(i/20)*0.41 - 3
		// rockiness is in [0, 1] and the remapped Manhattan distance in
		// [-1, 7], scaled by 0.2.
		if v := rocks.Get(x, y); v < -0.2-1e-9 || v > 1.4+1e-9 {
			t.Fatalf("rock value %v out of range at (%v, %v)", v, x, y)
		}
	}
}

func TestVariantMapRange(t *testing.T) {
	variant := VariantMap(8, nil)
	guided := VariantMap(8, noise.Constant(0))
	for i := 0; i < 200; i++ {
		x := float64(i%15)*0.5 - 4
		y := float64(i/15)*0.5 - 4
		if v := variant.Get(x, y); v < 0 || v > 1 {
			t.Fatalf("variant %v out of [0, 1]", v)
		}
		if guided.Get(x, y) != 0 {
			t.Fatal("a black guide channel must zero the variant")
		}
	}
}

func TestSurfaceTransforms(t *testing.T) {
	s := &Surface{Domain: noise.NewSquare(-4, -4, 8), Resolution: 4, Height: make([]float32, 16)}

	corner := s.Model().Mul4x1(mgl32.Vec4{1, 1, 0, 1}).Vec3()
	if corner != (mgl32.Vec3{4, 4, 0}) {
		t.Fatalf("grid corner maps to %v", corner)
	}
	origin := s.Model().Mul4x1(mgl32.Vec4{0, 0, 0.7, 1}).Vec3()
	if origin != (mgl32.Vec3{-4, -4, 0.7}) {
		t.Fatalf("grid origin maps to %v", origin)
	}

	tests := []struct {
		world mgl32.Vec3
		uv    mgl32.Vec2
	}{
		{mgl32.Vec3{-4, -4, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0.5, 0.5}},
		{mgl32.Vec3{4, -4, 1}, mgl32.Vec2{1, 0}},
	}
	for _, tt := range tests {
		got := s.WorldToUV().Mul3x1(tt.world)
		if !got.Vec2().ApproxEqual(tt.uv) {
			t.Errorf("world %v maps to uv %v, want %v", tt.world, got, tt.uv)
		}
	}
}

func TestSampleAndHeightAt(t *testing.T) {
	height := noise.FieldFunc(func(x, y float64) float64 { return x + 10*y })
	s := Sample(height, nil, noise.NewSquare(0, 0, 4), 4)
	if len(s.Height) != 16 || s.Variant != nil {
		t.Fatalf("unexpected raster sizes %d, %d", len(s.Height), len(s.Variant))
	}
	if got := s.HeightAt(2.2, 1.9); got != 2.5+10*1.5 {
		t.Fatalf("HeightAt = %v", got)
	}
	if got := s.HeightAt(-5, 50); got != 0.5+10*3.5 {
		t.Fatalf("HeightAt beyond the edge = %v", got)
	}
	if s.MinHeight != 0.5+10*0.5 || s.MaxHeight != 3.5+10*3.5 {
		t.Fatalf("height range [%v, %v]", s.MinHeight, s.MaxHeight)
	}
}

func TestQuadGrid(t *testing.T) {
	positions, indices := QuadGrid(2)
	if len(positions) != 9*3 {
		t.Fatalf("got %d position floats, want 27", len(positions))
	}
	if len(indices) != 2*2*6 {
		t.Fatalf("got %d indices, want 24", len(indices))
	}
	for i := 0; i < len(indices); i += 3 {
		a := mgl32.Vec3{positions[indices[i]*3], positions[indices[i]*3+1], 0}
		b := mgl32.Vec3{positions[indices[i+1]*3], positions[indices[i+1]*3+1], 0}
		c := mgl32.Vec3{positions[indices[i+2]*3], positions[indices[i+2]*3+1], 0}
		if normal := b.Sub(a).Cross(c.Sub(a)); normal.Z() <= 0 {
			t.Fatalf("triangle %d is not counter clockwise from above", i/3)
		}
	}
}

func BenchmarkHeightMapSample(b *testing.B) {
	height := HeightMap(1, nil)
	domain := noise.NewSquare(-4, -4, 8)
	for i := 0; i < b.N; i++ {
		noise.Rasterize(height, domain, 64)
	}
}
