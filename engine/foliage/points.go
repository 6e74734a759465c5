package foliage

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/engine/noise"
)

// DefaultResolution is the number of grid cells along each axis of the
// sampling domain.
const DefaultResolution = 100

// MaxCellCount bounds the expected number of points in a single cell.
const MaxCellCount = 1 << 12

type Point = mgl32.Vec2

// GeneratePoints scatters points over the domain so that the expected count
// in any region is the integral of the density over it.
//
// The domain is cut into a resolution x resolution grid. Each cell reads the
// density at its centre and multiplies it by the cell area to get the
// expected count λ. The actual count is floor(λ + U) for a uniform U in
// [0, 1), which has mean λ, and the points are spread uniformly inside the
// cell. Cells are visited column by column (x outer, y inner). Cells with a
// λ that is not positive or not finite are skipped without touching the
// random source, so the same seed and density always give the same points.
// λ above MaxCellCount is clamped to it.
func GeneratePoints(density noise.Field, domain noise.Rect, seed int64, resolution int) []Point {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	rng := rand.New(rand.NewSource(seed))

	dx := domain.Width() / float64(resolution)
	dy := domain.Height() / float64(resolution)
	area := dx * dy

	var points []Point
	for col := 0; col < resolution; col++ {
		fx := domain.MinX + dx*float64(col)
		for row := 0; row < resolution; row++ {
			fy := domain.MinY + dy*float64(row)

			lambda := density.Get(fx+dx/2, fy+dy/2) * area
			if !(lambda > 0) || math.IsInf(lambda, 1) {
				continue
			}
			lambda = min(lambda, MaxCellCount)

			count := int(math.Floor(lambda + rng.Float64()))
			for i := 0; i < count; i++ {
				x := fx + dx*rng.Float64()
				y := fy + dy*rng.Float64()
				points = append(points, Point{float32(x), float32(y)})
			}
		}
	}
	return points
}

// ExpectedCount integrates the density over the domain with the same cell
// centre rule GeneratePoints uses.
func ExpectedCount(density noise.Field, domain noise.Rect, resolution int) float64 {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	dx := domain.Width() / float64(resolution)
	dy := domain.Height() / float64(resolution)
	total := 0.0
	for col := 0; col < resolution; col++ {
		for row := 0; row < resolution; row++ {
			lambda := density.Get(domain.MinX+dx*(float64(col)+0.5), domain.MinY+dy*(float64(row)+0.5)) * dx * dy
			if lambda > 0 && !math.IsInf(lambda, 1) {
				total += min(lambda, MaxCellCount)
			}
		}
	}
	return total
}
