package game

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/config"
	"github.com/memmaker/undergrowth/engine/foliage"
	"github.com/memmaker/undergrowth/engine/noise"
	"github.com/memmaker/undergrowth/engine/terrain"
	"github.com/memmaker/undergrowth/engine/util"
)

// Renderable is anything the scene draws once per frame.
type Renderable interface {
	Render(viewProjection mgl32.Mat4)
}

// Releaser is implemented by renderables that own GPU resources.
type Releaser interface {
	Release()
}

// Backend turns plans into renderables. The GL implementation lives in the
// client package; tests use a recording fake.
type Backend interface {
	NewTerrain(plan *TerrainPlan) Renderable
	NewFoliage(placement foliage.Placement) Renderable
}

type TerrainPlan struct {
	HeightSeed  uint32
	VariantSeed uint32
	Surface     *terrain.Surface
	// Height is the continuous field the surface was sampled from. Plants
	// are placed on it directly.
	Height        noise.Field
	GroundTexture string
	RockTexture   string
	GridCells     int
}

// ScenePlan is everything a seed determines, computed without touching the
// GPU.
type ScenePlan struct {
	Seed       uint32
	Domain     noise.Rect
	Terrain    *TerrainPlan
	Placements []foliage.Placement
}

// InstanceCount is the total number of vegetation instances.
func (p *ScenePlan) InstanceCount() int {
	count := 0
	for _, placement := range p.Placements {
		count += len(placement.Instances)
	}
	return count
}

// Placement returns the placement of the named category.
func (p *ScenePlan) Placement(name string) (foliage.Placement, bool) {
	for _, placement := range p.Placements {
		if placement.Category.Name == name {
			return placement, true
		}
	}
	return foliage.Placement{}, false
}

// SceneBuilder plans scenes for one configuration and an optional guide
// raster whose red channel raises the ground and whose other channels
// modulate vegetation.
type SceneBuilder struct {
	cfg        *config.Config
	categories []foliage.Category
	guide      image.Image
	timer      *util.Timer
}

func NewSceneBuilder(cfg *config.Config, guide image.Image) *SceneBuilder {
	return &SceneBuilder{
		cfg:        cfg,
		categories: cfg.VegetationCategories(),
		guide:      guide,
		timer:      util.NewTimer(),
	}
}

func (b *SceneBuilder) Timer() *util.Timer {
	return b.timer
}

func (b *SceneBuilder) guideChannel(channel noise.Channel) noise.Field {
	if b.guide == nil || channel == noise.ChannelNone {
		return nil
	}
	return noise.NewImageChannel(b.guide, channel, b.cfg.Domain())
}

// Plan builds the scene for seed. The scene generator is consumed in a fixed
// order: height seed, variant seed, then one seed per category in
// configuration order.
func (b *SceneBuilder) Plan(seed uint32) *ScenePlan {
	stopAll := b.timer.Start("scene")
	rng := rand.New(rand.NewSource(int64(seed)))
	domain := b.cfg.Domain()

	heightSeed := rng.Uint32()
	variantSeed := rng.Uint32()

	stop := b.timer.Start("terrain")
	height := terrain.HeightMap(heightSeed, b.guideChannel(noise.ChannelRed))
	var variant noise.Field
	if b.cfg.Scene.Variants {
		variant = terrain.VariantMap(variantSeed, b.guideChannel(noise.ChannelGreen))
	}
	plan := &ScenePlan{
		Seed:   seed,
		Domain: domain,
		Terrain: &TerrainPlan{
			HeightSeed:    heightSeed,
			VariantSeed:   variantSeed,
			Surface:       terrain.Sample(height, variant, domain, b.cfg.Scene.TerrainResolution),
			Height:        height,
			GroundTexture: b.cfg.Assets.GroundTexture,
			RockTexture:   b.cfg.Assets.RockTexture,
			GridCells:     b.cfg.Scene.GridResolution,
		},
	}
	util.LogSceneDebug(fmt.Sprintf("Creating terrain took %.2fms", stop()))

	for _, category := range b.categories {
		categorySeed := rng.Uint32()
		stop = b.timer.Start(category.Name)
		placement := foliage.Generate(category, height, b.guideChannel(category.Modulation), categorySeed)
		plan.Placements = append(plan.Placements, placement)
		util.LogSceneDebug(fmt.Sprintf("Creating %s took %.2fms", category.Name, stop()))
	}

	util.LogSceneInfo(fmt.Sprintf("Planned scene %d with %d instances in %.2fms", seed, plan.InstanceCount(), stopAll()))
	return plan
}

// PlanScene is a one-shot SceneBuilder.Plan.
func PlanScene(seed uint32, cfg *config.Config, guide image.Image) *ScenePlan {
	return NewSceneBuilder(cfg, guide).Plan(seed)
}

// Scene is an active set of renderables. Terrain is drawn first, then the
// vegetation in build order.
type Scene struct {
	Seed        uint32
	Plan        *ScenePlan
	Renderables []Renderable
	StartTime   time.Time
}

// Realize uploads a plan through backend.
func Realize(plan *ScenePlan, backend Backend) *Scene {
	if plan == nil || plan.Terrain == nil {
		panic("game: cannot realize an empty scene plan")
	}
	scene := &Scene{
		Seed: plan.Seed,
		Plan: plan,
	}
	scene.Renderables = append(scene.Renderables, backend.NewTerrain(plan.Terrain))
	for _, placement := range plan.Placements {
		scene.Renderables = append(scene.Renderables, backend.NewFoliage(placement))
	}
	scene.StartTime = time.Now()
	return scene
}

func (s *Scene) Render(viewProjection mgl32.Mat4) {
	for _, renderable := range s.Renderables {
		renderable.Render(viewProjection)
	}
}

// Elapsed returns the seconds since the scene became active.
func (s *Scene) Elapsed(now time.Time) float64 {
	return now.Sub(s.StartTime).Seconds()
}

// Release frees the GPU resources of every renderable. The scene must not be
// rendered afterwards.
func (s *Scene) Release() {
	for _, renderable := range s.Renderables {
		if releaser, ok := renderable.(Releaser); ok {
			releaser.Release()
		}
	}
	s.Renderables = nil
}
