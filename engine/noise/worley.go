package noise

import "math"

// DistanceFunc measures the distance between a sample and a feature point.
type DistanceFunc func(d [4]float64) float64

func Euclidean(d [4]float64) float64 {
	return math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2] + d[3]*d[3])
}

func Manhattan(d [4]float64) float64 {
	return math.Abs(d[0]) + math.Abs(d[1]) + math.Abs(d[2]) + math.Abs(d[3])
}

type WorleyReturn int

const (
	// WorleyValue returns the hashed value of the nearest cell.
	WorleyValue WorleyReturn = iota
	// WorleyDistance returns the distance to the nearest feature point.
	WorleyDistance
)

// Worley is 4D cellular noise. Every unit cell of the lattice holds one
// jittered feature point; a sample looks at its own and the 80 neighbouring
// cells for the nearest one. The result is remapped into roughly [-1, 1].
type Worley struct {
	seed       uint32
	frequency  float64
	distance   DistanceFunc
	returnType WorleyReturn
}

func NewWorley(seed uint32) *Worley {
	return &Worley{
		seed:       seed,
		frequency:  1,
		distance:   Euclidean,
		returnType: WorleyValue,
	}
}

func (w *Worley) WithFrequency(frequency float64) *Worley {
	w.frequency = frequency
	return w
}

func (w *Worley) WithDistance(distance DistanceFunc) *Worley {
	w.distance = distance
	return w
}

func (w *Worley) WithReturnType(returnType WorleyReturn) *Worley {
	w.returnType = returnType
	return w
}

func (w *Worley) Get4(x, y, z, t float64) float64 {
	point := [4]float64{x * w.frequency, y * w.frequency, z * w.frequency, t * w.frequency}
	var cell [4]int32
	for i, c := range point {
		cell[i] = int32(math.Floor(c))
	}

	nearest := math.Inf(1)
	var nearestCell [4]int32
	var offset [4]int32
	for offset[0] = -1; offset[0] <= 1; offset[0]++ {
		for offset[1] = -1; offset[1] <= 1; offset[1]++ {
			for offset[2] = -1; offset[2] <= 1; offset[2]++ {
				for offset[3] = -1; offset[3] <= 1; offset[3]++ {
					var bound [4]float64
					for i, o := range offset {
						switch o {
						case -1:
							bound[i] = point[i] - float64(cell[i])
						case 1:
							bound[i] = float64(cell[i]) + 1 - point[i]
						}
					}
					if w.distance(bound) >= nearest {
						continue
					}
					candidate := [4]int32{
						cell[0] + offset[0],
						cell[1] + offset[1],
						cell[2] + offset[2],
						cell[3] + offset[3],
					}
					feature := w.featurePoint(candidate)
					var delta [4]float64
					for i := range delta {
						delta[i] = feature[i] - point[i]
					}
					d := w.distance(delta)
					if d < nearest {
						nearest = d
						nearestCell = candidate
					}
				}
			}
		}
	}

	var value float64
	switch w.returnType {
	case WorleyDistance:
		value = nearest
	default:
		value = hashToUnit(hash4(nearestCell[0], nearestCell[1], nearestCell[2], nearestCell[3], w.seed))
	}
	return value*2 - 1
}

func (w *Worley) featurePoint(cell [4]int32) [4]float64 {
	h := hash4(cell[0], cell[1], cell[2], cell[3], w.seed)
	var p [4]float64
	for i := range p {
		jitter := hashToUnit(avalanche(h + uint32(i+1)*0x9e3779b9))
		p[i] = float64(cell[i]) + jitter
	}
	return p
}

type slice4D struct {
	source Field4
}

// Slice4D evaluates a 4D field on the plane u = 0.5x+y, v = y, w = x, t = 2y.
// The oblique slice breaks up the axis aligned look of cellular noise and
// produces anisotropic ridges.
func Slice4D(source Field4) Field {
	return slice4D{source: source}
}

func (s slice4D) Get(x, y float64) float64 {
	return s.source.Get4(0.5*x+y, y, x, 2*y)
}
