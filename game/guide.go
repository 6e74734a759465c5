package game

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/memmaker/undergrowth/config"
	"github.com/memmaker/undergrowth/engine/util"
)

// LoadGuide reads the configured guide raster below assetsDir. It returns
// nil when no guide is configured.
func LoadGuide(cfg *config.Config, assetsDir string) (image.Image, error) {
	if cfg.Scene.Guide == "" {
		return nil, nil
	}
	img, err := util.LoadImage(filepath.Join(assetsDir, filepath.FromSlash(cfg.Scene.Guide)), false)
	if err != nil {
		return nil, err
	}
	util.LogSceneInfo(fmt.Sprintf("Using %dx%d guide %s", img.Bounds().Dx(), img.Bounds().Dy(), cfg.Scene.Guide))
	return img, nil
}
