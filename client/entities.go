package client

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/engine/foliage"
	"github.com/memmaker/undergrowth/engine/glhf"
	"github.com/memmaker/undergrowth/engine/terrain"
)

// TerrainEntity displaces the shared unit grid by the sampled height map and
// textures it triplanar: ground on the xy plane, rock on the steep sides.
type TerrainEntity struct {
	shader     *glhf.Shader
	grid       *glhf.VertexArray
	height     *glhf.Texture
	variant    *glhf.Texture
	albedoXY   *glhf.Texture
	albedoXZ   *glhf.Texture
	albedoYZ   *glhf.Texture
	model      mgl32.Mat4
	worldToUV  mgl32.Mat3
	texelSize  mgl32.Vec2
	worldSize  mgl32.Vec2
	hasVariant float32
}

func NewTerrainEntity(surface *terrain.Surface, shader *glhf.Shader, grid *glhf.VertexBuffer, ground, rock *glhf.Texture) *TerrainEntity {
	entity := &TerrainEntity{
		shader:    shader,
		grid:      glhf.NewVertexArray(shader, grid, nil),
		height:    glhf.NewFloatTexture(surface.Resolution, surface.Resolution, surface.Height),
		albedoXY:  ground,
		albedoXZ:  rock,
		albedoYZ:  rock,
		model:     surface.Model(),
		worldToUV: surface.WorldToUV(),
		texelSize: mgl32.Vec2{1 / float32(surface.Resolution), 1 / float32(surface.Resolution)},
		worldSize: mgl32.Vec2{float32(surface.Domain.Width()), float32(surface.Domain.Height())},
	}
	if surface.Variant != nil {
		entity.variant = glhf.NewFloatTexture(surface.Resolution, surface.Resolution, surface.Variant)
		entity.hasVariant = 1
	} else {
		// the sampler still needs something bound
		entity.variant = entity.height
	}
	return entity
}

func (t *TerrainEntity) Render(viewProjection mgl32.Mat4) {
	t.shader.Begin()
	t.shader.SetUniformAttr(terrainViewProjection, viewProjection)
	t.shader.SetUniformAttr(terrainModel, t.model)
	t.shader.SetUniformAttr(terrainWorldToUV, t.worldToUV)
	t.shader.SetUniformAttr(terrainTexelSize, t.texelSize)
	t.shader.SetUniformAttr(terrainWorldSize, t.worldSize)
	t.shader.SetUniformAttr(terrainHasVariant, t.hasVariant)

	t.height.BindTo(0)
	t.variant.BindTo(1)
	t.albedoXY.BindTo(2)
	t.albedoXZ.BindTo(3)
	t.albedoYZ.BindTo(4)

	t.grid.Begin()
	t.grid.Draw()
	t.grid.End()
	t.shader.End()
}

// Release deletes the per scene maps. Albedo textures and the grid are
// shared assets and stay alive.
func (t *TerrainEntity) Release() {
	t.grid.Delete()
	t.height.Delete()
	if t.hasVariant > 0 {
		t.variant.Delete()
	}
}

// FoliageEntities draws all instances of one category with a single
// instanced draw call.
type FoliageEntities struct {
	name      string
	shader    *glhf.Shader
	albedo    *glhf.Texture
	instances *glhf.InstanceBuffer
	vao       *glhf.VertexArray
}

func NewFoliageEntities(name string, instances []foliage.Instance, shader *glhf.Shader, mesh *glhf.VertexBuffer, albedo *glhf.Texture) *FoliageEntities {
	buffer := glhf.NewInstanceBuffer(instanceFormat, InstanceData(instances))
	return &FoliageEntities{
		name:      name,
		shader:    shader,
		albedo:    albedo,
		instances: buffer,
		vao:       glhf.NewVertexArray(shader, mesh, buffer),
	}
}

// InstanceData flattens the model and normal matrices in the instance
// format: 16 floats of model matrix, then 9 of normal matrix.
func InstanceData(instances []foliage.Instance) []float32 {
	data := make([]float32, 0, len(instances)*25)
	for _, instance := range instances {
		data = append(data, instance.Model[:]...)
		data = append(data, instance.Normal[:]...)
	}
	return data
}

func (f *FoliageEntities) Name() string {
	return f.name
}

func (f *FoliageEntities) Count() int {
	return f.instances.Len()
}

func (f *FoliageEntities) Render(viewProjection mgl32.Mat4) {
	if f.instances.Len() == 0 {
		return
	}
	f.shader.Begin()
	f.shader.SetUniformAttr(foliageViewProjection, viewProjection)
	f.albedo.BindTo(0)

	gl.Disable(gl.CULL_FACE)
	f.vao.Begin()
	f.vao.Draw()
	f.vao.End()
	gl.Enable(gl.CULL_FACE)

	f.shader.End()
}

func (f *FoliageEntities) Release() {
	f.vao.Delete()
	f.instances.Delete()
}
