package config

import (
	"math"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/engine/foliage"
	"github.com/memmaker/undergrowth/engine/noise"
	"github.com/memmaker/undergrowth/engine/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Seed       uint32           `yaml:"seed"`
	Window     WindowConfig     `yaml:"window"`
	Scene      SceneConfig      `yaml:"scene"`
	Camera     CameraConfig     `yaml:"camera"`
	Assets     AssetsConfig     `yaml:"assets"`
	Categories []CategoryConfig `yaml:"categories"`
	Log        LogConfig        `yaml:"log"`
	Slideshow  string           `yaml:"slideshow"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

type SceneConfig struct {
	// Size is the edge length of the square scene, centred on the origin.
	Size              float64 `yaml:"size"`
	TerrainResolution int     `yaml:"terrain_resolution"`
	GridResolution    int     `yaml:"grid_resolution"`
	Variants          bool    `yaml:"variants"`
	// Guide is an optional RGBA raster: red raises the ground, green and
	// blue modulate vegetation density.
	Guide string `yaml:"guide"`
}

type CameraConfig struct {
	Eye         [3]float32 `yaml:"eye"`
	LookAt      [3]float32 `yaml:"look_at"`
	Bob         bool       `yaml:"bob"`
	FieldOfView float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Background  string     `yaml:"background"`
}

type AssetsConfig struct {
	Dir           string `yaml:"dir"`
	GroundTexture string `yaml:"ground_texture"`
	RockTexture   string `yaml:"rock_texture"`
}

type CategoryConfig struct {
	Name       string        `yaml:"name"`
	Density    float64       `yaml:"density"`
	Limit      int           `yaml:"limit,omitempty"`
	Scale      foliage.Range `yaml:"scale"`
	ZScale     foliage.Range `yaml:"z_scale"`
	Resolution int           `yaml:"resolution,omitempty"`
	Model      string        `yaml:"model"`
	// Texture is a file below the asset directory or a #rrggbb color for a
	// solid placeholder.
	Texture    string `yaml:"texture"`
	Modulation string `yaml:"modulation,omitempty"`
}

type LogConfig struct {
	Level      string   `yaml:"level"`
	Categories []string `yaml:"categories"`
}

// Load overlays the file at path on the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if !(c.Scene.Size > 0) || math.IsInf(c.Scene.Size, 0) {
		return errors.Errorf("scene.size must be positive, got %v", c.Scene.Size)
	}
	if c.Scene.TerrainResolution <= 0 {
		return errors.New("scene.terrain_resolution must be positive")
	}
	if c.Scene.GridResolution <= 0 {
		return errors.New("scene.grid_resolution must be positive")
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		return errors.Errorf("camera.fov must be between 0 and 180 degrees, got %v", c.Camera.FieldOfView)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return errors.Errorf("camera clip planes invalid: near %v, far %v", c.Camera.Near, c.Camera.Far)
	}
	if !isValidHexColor(c.Camera.Background) {
		return errors.Errorf("camera.background must be a hex RGB value, got %q", c.Camera.Background)
	}
	if _, err := c.SlideshowInterval(); err != nil {
		return err
	}
	if _, ok := util.ParseLogLevel(c.Log.Level); !ok {
		return errors.Errorf("log.level %q unknown", c.Log.Level)
	}
	if _, bad := util.ParseLogCategories(c.Log.Categories); bad != "" {
		return errors.Errorf("log.categories: %q unknown", bad)
	}
	seen := make(map[string]bool)
	for i, category := range c.Categories {
		if seen[category.Name] {
			return errors.Errorf("categories[%d]: duplicate name %q", i, category.Name)
		}
		seen[category.Name] = true
		if _, ok := noise.ParseChannel(category.Modulation); !ok {
			return errors.Errorf("categories[%d].modulation %q unknown", i, category.Modulation)
		}
		if err := c.toCategory(category).Validate(); err != nil {
			return errors.Wrapf(err, "categories[%d]", i)
		}
	}
	return nil
}

// Domain is the square world rectangle the scene covers.
func (c *Config) Domain() noise.Rect {
	half := c.Scene.Size / 2
	return noise.NewSquare(-half, -half, c.Scene.Size)
}

// VegetationCategories resolves the configured categories in order.
func (c *Config) VegetationCategories() []foliage.Category {
	categories := make([]foliage.Category, len(c.Categories))
	for i, category := range c.Categories {
		categories[i] = c.toCategory(category)
	}
	return categories
}

func (c *Config) toCategory(category CategoryConfig) foliage.Category {
	modulation, _ := noise.ParseChannel(category.Modulation)
	return foliage.Category{
		Name:    category.Name,
		Density: category.Density,
		Limit:   category.Limit,
		Ranges: foliage.Ranges{
			Scale:  category.Scale,
			ZScale: category.ZScale,
		},
		Domain:     c.Domain(),
		Resolution: category.Resolution,
		Model:      category.Model,
		Texture:    category.Texture,
		Modulation: modulation,
	}
}

// SlideshowInterval is zero when the slideshow is disabled.
func (c *Config) SlideshowInterval() (time.Duration, error) {
	if c.Slideshow == "" {
		return 0, nil
	}
	interval, err := time.ParseDuration(c.Slideshow)
	if err != nil {
		return 0, errors.Wrap(err, "slideshow interval invalid")
	}
	if interval < 0 {
		return 0, errors.Errorf("slideshow interval must not be negative, got %s", interval)
	}
	return interval, nil
}

// ApplyLogging sets the global log filters. The config must be valid.
func (c *Config) ApplyLogging() {
	if lvl, ok := util.ParseLogLevel(c.Log.Level); ok {
		util.GLOBAL_LOG_LEVEL = lvl
	}
	if len(c.Log.Categories) > 0 {
		mask, _ := util.ParseLogCategories(c.Log.Categories)
		util.GLOBAL_LOG_CATEGORIES = mask
	}
}

// BackgroundColor returns the configured clear color with full alpha.
func (c *Config) BackgroundColor() mgl32.Vec4 {
	r, g, b, _ := ParseHexColor(c.Camera.Background)
	return mgl32.Vec4{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// ParseHexColor decodes #rrggbb.
func ParseHexColor(s string) (uint8, uint8, uint8, bool) {
	if !isValidHexColor(s) {
		return 0, 0, 0, false
	}
	var rgb [3]uint8
	for i := range rgb {
		rgb[i] = hexDigit(s[1+2*i])<<4 | hexDigit(s[2+2*i])
	}
	return rgb[0], rgb[1], rgb[2], true
}

func isValidHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, ch := range s[1:] {
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

func hexDigit(ch byte) uint8 {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}
