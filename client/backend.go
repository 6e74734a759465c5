package client

import (
	"fmt"

	"github.com/memmaker/undergrowth/engine/foliage"
	"github.com/memmaker/undergrowth/engine/util"
	"github.com/memmaker/undergrowth/game"
)

// GLBackend realizes scene plans with the shared Assets. Missing assets are
// configuration errors and panic.
type GLBackend struct {
	assets *Assets
}

func NewGLBackend(assets *Assets) *GLBackend {
	return &GLBackend{assets: assets}
}

func (b *GLBackend) NewTerrain(plan *game.TerrainPlan) game.Renderable {
	if plan.Surface == nil {
		panic("client: terrain plan without a sampled surface")
	}
	entity := NewTerrainEntity(
		plan.Surface,
		b.assets.TerrainShader(),
		b.assets.Grid(plan.GridCells),
		b.assets.MustTexture(plan.GroundTexture),
		b.assets.MustTexture(plan.RockTexture),
	)
	util.LogGlDebug(fmt.Sprintf("[GLBackend] Uploaded %dx%d terrain", plan.Surface.Resolution, plan.Surface.Resolution))
	return entity
}

func (b *GLBackend) NewFoliage(placement foliage.Placement) game.Renderable {
	category := placement.Category
	entities := NewFoliageEntities(
		category.Name,
		placement.Instances,
		b.assets.FoliageShader(),
		b.assets.MustMesh(category.Model),
		b.assets.MustTexture(category.Texture),
	)
	util.LogGlDebug(fmt.Sprintf("[GLBackend] Uploaded %d %s instances", entities.Count(), entities.Name()))
	return entities
}
