package game

import (
	"compress/gzip"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const snapshotTag = "UndergrowthScene"

// Snapshot is the exported form of a scene plan: the seed, the sampled
// terrain and every instance matrix. Two processes that agree on a seed
// produce identical snapshots.
type Snapshot struct {
	Seed        int64              `nbt:"Seed"`
	HeightSeed  int64              `nbt:"HeightSeed"`
	VariantSeed int64              `nbt:"VariantSeed"`
	Domain      []float64          `nbt:"Domain"`
	Resolution  int32              `nbt:"Resolution"`
	Height      []float32          `nbt:"Height"`
	Categories  []CategorySnapshot `nbt:"Categories"`
}

type CategorySnapshot struct {
	Name     string `nbt:"Name"`
	RawCount int32  `nbt:"RawCount"`
	// Models holds 16 column-major floats per instance.
	Models []float32 `nbt:"Models"`
}

func NewSnapshot(plan *ScenePlan) *Snapshot {
	snapshot := &Snapshot{
		Seed:        int64(plan.Seed),
		HeightSeed:  int64(plan.Terrain.HeightSeed),
		VariantSeed: int64(plan.Terrain.VariantSeed),
		Domain:      []float64{plan.Domain.MinX, plan.Domain.MaxX, plan.Domain.MinY, plan.Domain.MaxY},
		Resolution:  int32(plan.Terrain.Surface.Resolution),
		Height:      plan.Terrain.Surface.Height,
	}
	for _, placement := range plan.Placements {
		category := CategorySnapshot{
			Name:     placement.Category.Name,
			RawCount: int32(placement.RawCount),
			Models:   make([]float32, 0, len(placement.Instances)*16),
		}
		for _, instance := range placement.Instances {
			category.Models = append(category.Models, instance.Model[:]...)
		}
		snapshot.Categories = append(snapshot.Categories, category)
	}
	return snapshot
}

// Instances unpacks the model matrices of a category.
func (c CategorySnapshot) Instances() []mgl32.Mat4 {
	matrices := make([]mgl32.Mat4, len(c.Models)/16)
	for i := range matrices {
		copy(matrices[i][:], c.Models[i*16:(i+1)*16])
	}
	return matrices
}

// WriteSnapshot writes the plan as gzip compressed NBT.
func WriteSnapshot(w io.Writer, plan *ScenePlan) error {
	gzipWriter := gzip.NewWriter(w)
	if err := nbt.NewEncoder(gzipWriter).Encode(NewSnapshot(plan), snapshotTag); err != nil {
		gzipWriter.Close()
		return errors.Wrap(err, "could not encode snapshot")
	}
	return errors.Wrap(gzipWriter.Close(), "could not compress snapshot")
}

func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot is not gzip compressed")
	}
	defer gzipReader.Close()
	var snapshot Snapshot
	tag, err := nbt.NewDecoder(gzipReader).Decode(&snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode snapshot")
	}
	if tag != snapshotTag {
		return nil, errors.Errorf("unexpected snapshot root %q", tag)
	}
	for _, category := range snapshot.Categories {
		if len(category.Models)%16 != 0 {
			return nil, errors.Errorf("category %s: truncated instance data", category.Name)
		}
	}
	return &snapshot, nil
}

func SaveSnapshot(path string, plan *ScenePlan) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create snapshot file")
	}
	if err := WriteSnapshot(file, plan); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "could not close snapshot file")
}

func LoadSnapshot(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open snapshot file")
	}
	defer file.Close()
	return ReadSnapshot(file)
}
