package client

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/engine/glhf"
)

var (
	//go:embed shader/terrain.vert
	terrainVertexShaderSource string

	//go:embed shader/terrain.frag
	terrainFragmentShaderSource string

	//go:embed shader/foliage.vert
	foliageVertexShaderSource string

	//go:embed shader/foliage.frag
	foliageFragmentShaderSource string
)

// sunDirection points from the sun towards the ground.
var sunDirection = mgl32.Vec3{0.4, 0.6, -1}.Normalize()

// Uniform indices of the terrain shader.
const (
	terrainViewProjection = iota
	terrainModel
	terrainWorldToUV
	terrainTexelSize
	terrainWorldSize
	terrainHeightMap
	terrainVariantMap
	terrainAlbedoXY
	terrainAlbedoXZ
	terrainAlbedoYZ
	terrainHasVariant
	terrainLightDirection
)

// Uniform indices of the foliage shader.
const (
	foliageViewProjection = iota
	foliageAlbedo
	foliageLightDirection
)

var (
	gridVertexFormat = glhf.AttrFormat{
		{Name: "position", Type: glhf.Vec3},
	}
	meshVertexFormat = glhf.AttrFormat{
		{Name: "position", Type: glhf.Vec3},
		{Name: "texCoord", Type: glhf.Vec2},
		{Name: "normal", Type: glhf.Vec3},
	}
	instanceFormat = glhf.AttrFormat{
		{Name: "instanceModel", Type: glhf.Mat4},
		{Name: "instanceNormal", Type: glhf.Mat3},
	}
)

func loadTerrainShader() *glhf.Shader {
	var (
		uniformFormat = glhf.AttrFormat{
			glhf.Attr{Name: "viewProjection", Type: glhf.Mat4},
			glhf.Attr{Name: "model", Type: glhf.Mat4},
			glhf.Attr{Name: "worldToUV", Type: glhf.Mat3},
			glhf.Attr{Name: "texelSize", Type: glhf.Vec2},
			glhf.Attr{Name: "worldSize", Type: glhf.Vec2},
			glhf.Attr{Name: "heightMap", Type: glhf.Int},
			glhf.Attr{Name: "variantMap", Type: glhf.Int},
			glhf.Attr{Name: "albedoXY", Type: glhf.Int},
			glhf.Attr{Name: "albedoXZ", Type: glhf.Int},
			glhf.Attr{Name: "albedoYZ", Type: glhf.Int},
			glhf.Attr{Name: "hasVariant", Type: glhf.Float},
			glhf.Attr{Name: "lightDirection", Type: glhf.Vec3},
		}
	)
	shader := glhf.MustNewShader(gridVertexFormat, uniformFormat, terrainVertexShaderSource, terrainFragmentShaderSource)

	shader.Begin()
	shader.SetUniformAttr(terrainHeightMap, int32(0))
	shader.SetUniformAttr(terrainVariantMap, int32(1))
	shader.SetUniformAttr(terrainAlbedoXY, int32(2))
	shader.SetUniformAttr(terrainAlbedoXZ, int32(3))
	shader.SetUniformAttr(terrainAlbedoYZ, int32(4))
	shader.SetUniformAttr(terrainLightDirection, sunDirection)
	shader.End()
	return shader
}

func loadFoliageShader() *glhf.Shader {
	var (
		uniformFormat = glhf.AttrFormat{
			glhf.Attr{Name: "viewProjection", Type: glhf.Mat4},
			glhf.Attr{Name: "albedo", Type: glhf.Int},
			glhf.Attr{Name: "lightDirection", Type: glhf.Vec3},
		}
	)
	shader := glhf.MustNewShader(meshVertexFormat, uniformFormat, foliageVertexShaderSource, foliageFragmentShaderSource)

	shader.Begin()
	shader.SetUniformAttr(foliageAlbedo, int32(0))
	shader.SetUniformAttr(foliageLightDirection, sunDirection)
	shader.End()
	return shader
}
