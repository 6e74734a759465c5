package foliage

import "github.com/memmaker/undergrowth/engine/noise"

// DensityParams describe the fractal base of a density field. Four octaves
// at frequency 0.2 give features a few meters across; finer detail does not
// change how many plants end up in a patch.
var DensityParams = noise.DefaultFbm().WithOctaves(4).WithFrequency(0.2)

// Density returns a field of expected points per unit area whose large scale
// average is target. The zero mean fbm is shifted by target and scaled by
// target, so a normalised octave sum in [-1, 1] stays within [0, 2*target]
// and never goes negative.
func Density(target float64, seed uint32) noise.Field {
	fbm := noise.NewFbm(seed, DensityParams, noise.PerlinSource)
	return noise.ScaleBias(fbm, target, target)
}

// Modulate scales a density by an artist supplied channel in [0, 1]. The
// channel is squared and mapped to [0.1, 2.1] so that a black region still
// grows a few plants and a white one roughly doubles them.
func Modulate(density, channel noise.Field) noise.Field {
	bushiness := noise.ScaleBias(noise.Power(channel, 2), 2, 0.1)
	return noise.Multiply(density, bushiness)
}
