package noise

// FbmParams configure fractal Brownian motion.
type FbmParams struct {
	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64
}

// DefaultFbm matches the usual fbm settings: six octaves, doubling frequency,
// halving amplitude.
func DefaultFbm() FbmParams {
	return FbmParams{
		Octaves:     6,
		Frequency:   1,
		Lacunarity:  2,
		Persistence: 0.5,
	}
}

func (p FbmParams) WithOctaves(octaves int) FbmParams {
	p.Octaves = octaves
	return p
}

func (p FbmParams) WithFrequency(frequency float64) FbmParams {
	p.Frequency = frequency
	return p
}

func (p FbmParams) WithLacunarity(lacunarity float64) FbmParams {
	p.Lacunarity = lacunarity
	return p
}

func (p FbmParams) WithPersistence(persistence float64) FbmParams {
	p.Persistence = persistence
	return p
}

// Fbm sums octaves of a noise primitive at increasing frequency and
// decreasing amplitude. The sum is normalised by the total amplitude so a
// primitive in [-1, 1] yields a field in [-1, 1].
type Fbm struct {
	params  FbmParams
	seed    uint32
	octaves []Field
	scale   float64
}

// NewFbm builds the octave primitives up front. Octave i is seeded with
// seed+i.
func NewFbm(seed uint32, params FbmParams, source SourceFactory) *Fbm {
	if params.Octaves < 1 {
		params.Octaves = 1
	}
	f := &Fbm{
		params:  params,
		seed:    seed,
		octaves: make([]Field, params.Octaves),
	}
	amplitude := 1.0
	total := 0.0
	for i := range f.octaves {
		f.octaves[i] = source(seed + uint32(i))
		total += amplitude
		amplitude *= params.Persistence
	}
	f.scale = 1 / total
	return f
}

func (f *Fbm) Seed() uint32 {
	return f.seed
}

func (f *Fbm) Params() FbmParams {
	return f.params
}

func (f *Fbm) Get(x, y float64) float64 {
	frequency := f.params.Frequency
	amplitude := 1.0
	sum := 0.0
	for _, octave := range f.octaves {
		sum += octave.Get(x*frequency, y*frequency) * amplitude
		frequency *= f.params.Lacunarity
		amplitude *= f.params.Persistence
	}
	return sum * f.scale
}
