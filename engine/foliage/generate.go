package foliage

import (
	"fmt"
	"math/rand"

	"github.com/memmaker/undergrowth/engine/noise"
	"github.com/memmaker/undergrowth/engine/util"
)

// Placement is the result of running one category through the pipeline.
type Placement struct {
	Category Category
	// RawCount is the number of points generated before the cap.
	RawCount  int
	Instances []Instance
}

// Generate runs density, point generation, capping and placement for a
// category. All randomness comes from one generator seeded with seed, drawn
// in this order: density seed, point seed, cap shuffle, then per instance
// rotation, z scale and scale. modulation may be nil.
func Generate(c Category, height, modulation noise.Field, seed uint32) Placement {
	if height == nil {
		panic(fmt.Sprintf("foliage: category %s needs a height field", c.Name))
	}
	rng := rand.New(rand.NewSource(int64(seed)))

	density := Density(c.Density, rng.Uint32())
	if modulation != nil {
		density = Modulate(density, modulation)
	}
	points := GeneratePoints(density, c.Domain, rng.Int63(), c.Resolution)
	raw := len(points)

	points = Cap(points, c.Limit, rng)
	if raw > len(points) {
		util.LogFoliageDebug(fmt.Sprintf("[Foliage] %s: capped %d points to %d", c.Name, raw, len(points)))
	}

	instances := Place(points, height, c.Ranges, rng)
	util.LogFoliageInfo(fmt.Sprintf("[Foliage] Spawned %d %s entities", len(instances), c.Name))
	return Placement{
		Category:  c,
		RawCount:  raw,
		Instances: instances,
	}
}
