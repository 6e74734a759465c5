package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/engine/noise"
	"github.com/memmaker/undergrowth/engine/util"
)

// DefaultResolution is the edge length of the sampled height and variant
// maps.
const DefaultResolution = 256

// Surface holds the height and variant fields sampled over the scene extent.
// The renderer uploads both maps as float textures and displaces a unit grid
// mesh placed with Model.
type Surface struct {
	Domain     noise.Rect
	Resolution int
	Height     []float32
	Variant    []float32
	MinHeight  float32
	MaxHeight  float32
}

// Sample rasterizes the fields. variant may be nil, in which case the variant
// map is left empty.
func Sample(height, variant noise.Field, domain noise.Rect, resolution int) *Surface {
	if height == nil {
		panic("terrain: surface needs a height field")
	}
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	s := &Surface{
		Domain:     domain,
		Resolution: resolution,
		Height:     noise.Rasterize(height, domain, resolution),
	}
	s.MinHeight, s.MaxHeight = noise.Range(s.Height)
	if variant != nil {
		s.Variant = noise.Rasterize(variant, domain, resolution)
	}
	util.LogTerrainDebug(fmt.Sprintf("[Terrain] Sampled %dx%d surface, height range [%.3f, %.3f]", resolution, resolution, s.MinHeight, s.MaxHeight))
	return s
}

// Model maps the unit grid [0, 1]^2 onto the domain. Heights are applied in
// the vertex shader, so z is left unscaled.
func (s *Surface) Model() mgl32.Mat4 {
	translation := mgl32.Translate3D(float32(s.Domain.MinX), float32(s.Domain.MinY), 0)
	scale := mgl32.Scale3D(float32(s.Domain.Width()), float32(s.Domain.Height()), 1)
	return translation.Mul4(scale)
}

// WorldToUV maps a homogeneous world (x, y, 1) onto texture coordinates of
// the sampled maps.
func (s *Surface) WorldToUV() mgl32.Mat3 {
	scale := mgl32.Scale2D(1/float32(s.Domain.Width()), 1/float32(s.Domain.Height()))
	translation := mgl32.Translate2D(-float32(s.Domain.MinX), -float32(s.Domain.MinY))
	return scale.Mul3(translation)
}

// HeightAt looks up the sampled height of the cell containing (x, y),
// clamping to the border cells.
func (s *Surface) HeightAt(x, y float64) float32 {
	col := cellIndex((x-s.Domain.MinX)/s.Domain.Width(), s.Resolution)
	row := cellIndex((y-s.Domain.MinY)/s.Domain.Height(), s.Resolution)
	return s.Height[row*s.Resolution+col]
}

func cellIndex(normalized float64, resolution int) int {
	if !(normalized > 0) {
		return 0
	}
	i := int(normalized * float64(resolution))
	if i >= resolution {
		return resolution - 1
	}
	return i
}

// QuadGrid returns an n x n cell grid over [0, 1]^2 as xyz positions and
// triangle indices, wound counter clockwise when seen from above.
func QuadGrid(n int) ([]float32, []uint32) {
	if n < 1 {
		n = 1
	}
	stride := n + 1
	positions := make([]float32, 0, stride*stride*3)
	for row := 0; row <= n; row++ {
		for col := 0; col <= n; col++ {
			positions = append(positions, float32(col)/float32(n), float32(row)/float32(n), 0)
		}
	}
	indices := make([]uint32, 0, n*n*6)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			bottomLeft := uint32(row*stride + col)
			bottomRight := bottomLeft + 1
			topLeft := bottomLeft + uint32(stride)
			topRight := topLeft + 1
			indices = append(indices,
				bottomLeft, bottomRight, topRight,
				bottomLeft, topRight, topLeft,
			)
		}
	}
	return positions, indices
}
