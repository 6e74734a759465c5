// Package terrain composes the height and variant fields of a scene and
// prepares the sampled surface the renderer displaces a ground mesh with.
package terrain

import (
	"math/rand"

	"github.com/memmaker/undergrowth/engine/noise"
)

var (
	RockinessParams = noise.DefaultFbm().WithOctaves(4).WithFrequency(0.5)
	RockParams      = noise.DefaultFbm().WithOctaves(3).WithLacunarity(3).WithPersistence(0.3).WithFrequency(0.8)
	HillParams      = noise.DefaultFbm().WithOctaves(6).WithFrequency(0.2)
	VariantParams   = noise.DefaultFbm().WithOctaves(3).WithFrequency(0.3)
)

const rockinessThreshold = 0.5

// RockMap is a noise primitive of scattered rock ridges. Value noise decides
// where the ground is rocky at all: everything below the threshold is flat
// and the rest ramps up quickly to full rockiness. Manhattan Worley distances
// sliced out of 4D space supply hard, slanted ridges inside those patches.
// It satisfies noise.SourceFactory so it can be layered with Fbm.
func RockMap(seed uint32) noise.Field {
	rng := rand.New(rand.NewSource(int64(seed)))

	rockiness := noise.Field(noise.NewFbm(rng.Uint32(), RockinessParams, noise.ValueSource))
	rockiness = noise.ScaleBias(rockiness, 1, -rockinessThreshold)
	rockiness = noise.Max(rockiness, noise.Constant(0))
	rockiness = noise.ScaleBias(rockiness, 3, 0)
	rockiness = noise.Min(rockiness, noise.Constant(1))

	ridges := noise.NewWorley(rng.Uint32()).
		WithFrequency(1).
		WithDistance(noise.Manhattan).
		WithReturnType(noise.WorleyDistance)

	return noise.ScaleBias(noise.Multiply(rockiness, noise.Slice4D(ridges)), 0.2, 0)
}

// HeightMap builds the terrain elevation: rolling hills of value noise, a
// layer of rocks and, when base is not nil, an artist supplied elevation
// (usually the red channel of the guide raster) squared and doubled.
func HeightMap(seed uint32, base noise.Field) noise.Field {
	rng := rand.New(rand.NewSource(int64(seed)))

	rocks := noise.ScaleBias(noise.NewFbm(rng.Uint32(), RockParams, RockMap), 0.8, 0)
	hills := noise.ScaleBias(noise.NewFbm(rng.Uint32(), HillParams, noise.ValueSource), 0.3, 0.3)

	height := noise.Add(rocks, hills)
	if base != nil {
		height = noise.Add(noise.ScaleBias(noise.Power(base, 2), 2, 0), height)
	}
	return height
}

// VariantMap blends between the ground albedo variants. It lies in [0, 1];
// a guide channel, when given, is multiplied in.
func VariantMap(seed uint32, guide noise.Field) noise.Field {
	variant := noise.ScaleBias(noise.NewFbm(seed, VariantParams, noise.SimplexSource), 0.5, 0.5)
	variant = noise.Clamp(variant, 0, 1)
	if guide != nil {
		return noise.Multiply(variant, guide)
	}
	return variant
}
