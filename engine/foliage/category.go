package foliage

import (
	"math"

	"github.com/memmaker/undergrowth/engine/noise"
	"github.com/pkg/errors"
)

// MaxDensity is the largest accepted target density in instances per unit
// area.
const MaxDensity = 1e5

// Category is the immutable parameter bundle of one kind of vegetation.
// Model and Texture name shared assets; they are resolved by the renderer and
// never loaded per scene.
type Category struct {
	Name string
	// Density is the target number of instances per unit area.
	Density float64
	// Limit caps the number of instances. Zero means unlimited.
	Limit  int
	Ranges Ranges
	// Domain is the rectangle plants are scattered over.
	Domain     noise.Rect
	Resolution int
	Model      string
	Texture    string
	// Modulation selects the guide raster channel that scales the density.
	Modulation noise.Channel
}

func (c Category) Validate() error {
	if c.Name == "" {
		return errors.New("category has no name")
	}
	if math.IsNaN(c.Density) || math.IsInf(c.Density, 0) || c.Density < 0 {
		return errors.Errorf("category %s: density must be a finite non-negative number, got %v", c.Name, c.Density)
	}
	if c.Density > MaxDensity {
		return errors.Errorf("category %s: density %v exceeds %v", c.Name, c.Density, MaxDensity)
	}
	if c.Limit < 0 {
		return errors.Errorf("category %s: limit must not be negative, got %d", c.Name, c.Limit)
	}
	if !c.Ranges.Scale.Valid() {
		return errors.Errorf("category %s: invalid scale range %s", c.Name, c.Ranges.Scale)
	}
	if !c.Ranges.ZScale.Valid() {
		return errors.Errorf("category %s: invalid z scale range %s", c.Name, c.Ranges.ZScale)
	}
	if !(c.Domain.Width() > 0) || !(c.Domain.Height() > 0) {
		return errors.Errorf("category %s: empty domain", c.Name)
	}
	if c.Resolution < 0 {
		return errors.Errorf("category %s: resolution must not be negative", c.Name)
	}
	if c.Model == "" {
		return errors.Errorf("category %s: no model", c.Name)
	}
	if c.Texture == "" {
		return errors.Errorf("category %s: no texture", c.Name)
	}
	return nil
}
