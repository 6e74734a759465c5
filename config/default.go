package config

import (
	"os"
	"path/filepath"

	"github.com/memmaker/undergrowth/engine/foliage"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default returns the built-in scene: an 8x8 meter patch with trees,
// saplings, bushes, shrubs and ground cover, looked at from just behind its
// southern edge at eye height.
func Default() Config {
	return Config{
		Seed: 0,
		Window: WindowConfig{
			Title:  "Undergrowth",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Scene: SceneConfig{
			Size:              8,
			TerrainResolution: 256,
			GridResolution:    256,
			Variants:          true,
		},
		Camera: CameraConfig{
			Eye:         [3]float32{0, -4, 1.7},
			LookAt:      [3]float32{0, -1, 0.2},
			Bob:         true,
			FieldOfView: 45,
			Near:        0.1,
			Far:         100,
			Background:  "#badbde",
		},
		Assets: AssetsConfig{
			Dir:           "assets",
			GroundTexture: "textures/moss1.jpeg",
			RockTexture:   "textures/rock1.jpeg",
		},
		Categories: DefaultCategories(),
		Log: LogConfig{
			Level:      "info",
			Categories: []string{"scene", "system", "assets"},
		},
	}
}

// DefaultCategories lists the vegetation in build order. The order fixes how
// the scene seed is split, so reordering changes every scene.
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{
			Name:       "trees",
			Density:    1,
			Limit:      7,
			Scale:      foliage.Range{Min: 0.5, Max: 1},
			ZScale:     foliage.Fixed(1),
			Model:      "models/tree1.glb",
			Texture:    "textures/bark1.jpeg",
			Modulation: "blue",
		},
		{
			Name:    "saplings",
			Density: 0.5,
			Limit:   12,
			Scale:   foliage.Range{Min: 0.15, Max: 0.3},
			ZScale:  foliage.Range{Min: 0.8, Max: 1.3},
			Model:   "models/tree1.glb",
			Texture: "textures/bark1.jpeg",
		},
		{
			Name:       "bushes",
			Density:    30,
			Scale:      foliage.Fixed(1),
			ZScale:     foliage.Range{Min: 0.9, Max: 1},
			Model:      "models/bush1.glb",
			Texture:    "textures/bush_masked1.png",
			Modulation: "green",
		},
		{
			Name:    "shrubs",
			Density: 50,
			Scale:   foliage.Fixed(1),
			ZScale:  foliage.Range{Min: 0.4, Max: 1.2},
			Model:   "models/shrub2.glb",
			Texture: "#473144",
		},
		{
			Name:    "groundcover",
			Density: 80,
			Scale:   foliage.Range{Min: 0.3, Max: 0.6},
			ZScale:  foliage.Range{Min: 0.3, Max: 0.6},
			Model:   "models/shrub2.glb",
			Texture: "#3d5a2a",
		},
	}
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	cfg := Default()

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "marshal default config")
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create config directory")
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write default config")
	}
	return nil
}
