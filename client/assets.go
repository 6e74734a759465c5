package client

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/memmaker/undergrowth/config"
	"github.com/memmaker/undergrowth/engine/glhf"
	"github.com/memmaker/undergrowth/engine/terrain"
	"github.com/memmaker/undergrowth/engine/util"
	"github.com/pkg/errors"
)

// Assets are loaded once and shared read-only by every scene. Scenes never
// delete them.
type Assets struct {
	dir      string
	textures map[string]*glhf.Texture
	meshes   map[string]*glhf.VertexBuffer
	grids    map[int]*glhf.VertexBuffer

	terrainShader *glhf.Shader
	foliageShader *glhf.Shader
}

func NewAssets(dir string) *Assets {
	return &Assets{
		dir:      dir,
		textures: make(map[string]*glhf.Texture),
		meshes:   make(map[string]*glhf.VertexBuffer),
		grids:    make(map[int]*glhf.VertexBuffer),
	}
}

// Preload loads every texture, model and shader cfg refers to, so the
// first scene build does not stall on file IO.
func (a *Assets) Preload(cfg *config.Config) error {
	timer := util.NewTimer()
	stop := timer.Start("assets")

	a.terrainShader = loadTerrainShader()
	a.foliageShader = loadFoliageShader()

	textures := []string{cfg.Assets.GroundTexture, cfg.Assets.RockTexture}
	for _, category := range cfg.Categories {
		textures = append(textures, category.Texture)
		if _, err := a.Mesh(category.Model); err != nil {
			return errors.Wrapf(err, "category %s", category.Name)
		}
	}
	for _, name := range textures {
		if _, err := a.Texture(name); err != nil {
			return err
		}
	}
	a.Grid(cfg.Scene.GridResolution)

	util.LogAssetsInfo(fmt.Sprintf("[Assets] Loaded %d textures and %d models in %.2fms", len(a.textures), len(a.meshes), stop()))
	return nil
}

func (a *Assets) path(name string) string {
	return filepath.Join(a.dir, filepath.FromSlash(name))
}

// Texture returns the named texture. A name of the form #rrggbb yields a
// solid placeholder.
func (a *Assets) Texture(name string) (*glhf.Texture, error) {
	if texture, ok := a.textures[name]; ok {
		return texture, nil
	}
	var texture *glhf.Texture
	if strings.HasPrefix(name, "#") {
		r, g, b, ok := config.ParseHexColor(name)
		if !ok {
			return nil, errors.Errorf("invalid placeholder color %q", name)
		}
		img := util.SolidImage(r, g, b, 255)
		texture = glhf.NewTexture(1, 1, false, img.Pix)
	} else {
		// glTF texture coordinates start at the top left, like the image rows
		img, err := util.LoadImage(a.path(name), false)
		if err != nil {
			return nil, err
		}
		texture = glhf.NewTexture(img.Bounds().Dx(), img.Bounds().Dy(), true, img.Pix)
	}
	util.LogAssetsDebug(fmt.Sprintf("[Assets] Texture %s: %dx%d", name, texture.Width(), texture.Height()))
	a.textures[name] = texture
	return texture, nil
}

func (a *Assets) MustTexture(name string) *glhf.Texture {
	texture, err := a.Texture(name)
	if err != nil {
		panic(err)
	}
	return texture
}

// Mesh returns the named glTF model as a vertex buffer in the foliage
// vertex format.
func (a *Assets) Mesh(name string) (*glhf.VertexBuffer, error) {
	if mesh, ok := a.meshes[name]; ok {
		return mesh, nil
	}
	data, err := util.LoadGLTF(a.path(name))
	if err != nil {
		return nil, err
	}
	mesh := glhf.NewVertexBuffer(meshVertexFormat, data.Interleave(), data.Indices)
	util.LogAssetsDebug(fmt.Sprintf("[Assets] Model %s: %d vertices, %d triangles", name, data.VertexCount(), len(data.Indices)/3))
	a.meshes[name] = mesh
	return mesh, nil
}

func (a *Assets) MustMesh(name string) *glhf.VertexBuffer {
	mesh, err := a.Mesh(name)
	if err != nil {
		panic(err)
	}
	return mesh
}

// Grid returns the unit terrain grid with cells x cells quads.
func (a *Assets) Grid(cells int) *glhf.VertexBuffer {
	if grid, ok := a.grids[cells]; ok {
		return grid
	}
	positions, indices := terrain.QuadGrid(cells)
	grid := glhf.NewVertexBuffer(gridVertexFormat, positions, indices)
	a.grids[cells] = grid
	return grid
}

func (a *Assets) TerrainShader() *glhf.Shader {
	if a.terrainShader == nil {
		a.terrainShader = loadTerrainShader()
	}
	return a.terrainShader
}

func (a *Assets) FoliageShader() *glhf.Shader {
	if a.foliageShader == nil {
		a.foliageShader = loadFoliageShader()
	}
	return a.foliageShader
}

// Release frees every asset. Call it after the last scene was released.
func (a *Assets) Release() {
	for _, texture := range a.textures {
		texture.Delete()
	}
	for _, mesh := range a.meshes {
		mesh.Delete()
	}
	for _, grid := range a.grids {
		grid.Delete()
	}
	if a.terrainShader != nil {
		a.terrainShader.Delete()
	}
	if a.foliageShader != nil {
		a.foliageShader.Delete()
	}
	a.textures = make(map[string]*glhf.Texture)
	a.meshes = make(map[string]*glhf.VertexBuffer)
	a.grids = make(map[int]*glhf.VertexBuffer)
	a.terrainShader, a.foliageShader = nil, nil
}
