package client

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/undergrowth/config"
	"github.com/memmaker/undergrowth/engine/glapp"
	"github.com/memmaker/undergrowth/engine/util"
	"github.com/memmaker/undergrowth/game"
)

// Viewer shows one scene at a time. The arrow keys step the seed, space
// toggles the slideshow and F5 exports the current scene.
type Viewer struct {
	*glapp.GlApplication
	assets      *Assets
	navigator   *game.Navigator
	camera      game.Camera
	slideshow   *game.Slideshow
	interval    time.Duration
	snapshotDir string
}

func NewViewer(cfg *config.Config, assetsDir, snapshotDir string) (*Viewer, error) {
	window, terminate, err := glapp.InitOpenGL(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, cfg.Window.VSync)
	if err != nil {
		return nil, err
	}
	interval, err := cfg.SlideshowInterval()
	if err != nil {
		terminate()
		return nil, err
	}

	guide, err := game.LoadGuide(cfg, assetsDir)
	if err != nil {
		terminate()
		return nil, err
	}

	assets := NewAssets(assetsDir)
	if err := assets.Preload(cfg); err != nil {
		terminate()
		return nil, err
	}

	v := &Viewer{
		GlApplication: &glapp.GlApplication{
			Window:     window,
			Title:      cfg.Window.Title,
			ClearColor: cfg.BackgroundColor(),
		},
		assets:      assets,
		navigator:   game.NewNavigator(game.NewSceneBuilder(cfg, guide), NewGLBackend(assets)),
		camera:      game.NewCamera(cfg.Camera),
		interval:    interval,
		snapshotDir: snapshotDir,
	}
	v.UpdateFunc = v.Update
	v.DrawFunc = v.Draw
	v.KeyHandler = v.handleKeyEvents
	v.TerminateFunc = func() {
		v.navigator.Release()
		v.assets.Release()
		terminate()
	}
	return v, nil
}

// Start shows the first scene and starts the slideshow if one is configured.
func (v *Viewer) Start(seed uint32) error {
	v.navigator.Show(seed)
	if v.interval > 0 {
		return v.startSlideshow()
	}
	return nil
}

func (v *Viewer) startSlideshow() error {
	if v.interval <= 0 {
		v.interval = 8 * time.Second
	}
	v.slideshow = game.NewSlideshow(v.interval, func() {
		v.navigator.Next()
	})
	return v.slideshow.Start()
}

func (v *Viewer) Update(elapsed float64) {
	if v.slideshow != nil {
		v.slideshow.Update()
	}
}

func (v *Viewer) Draw(elapsed float64) {
	scene := v.navigator.Current()
	if scene == nil {
		return
	}
	t := scene.Elapsed(time.Now())
	scene.Render(v.camera.ViewProjection(t, v.AspectRatio()))
}

func (v *Viewer) handleKeyEvents(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Release {
		return
	}
	switch key {
	case glfw.KeyRight, glfw.KeyUp:
		v.navigator.Next()
	case glfw.KeyLeft, glfw.KeyDown:
		v.navigator.Previous()
	case glfw.KeySpace:
		v.toggleSlideshow()
	case glfw.KeyF5:
		v.exportSnapshot()
	case glfw.KeyEscape, glfw.KeyF12:
		v.Close()
	}
}

func (v *Viewer) toggleSlideshow() {
	if v.slideshow != nil && v.slideshow.Running() {
		v.slideshow.Stop()
		util.LogSystemInfo("Slideshow paused")
		return
	}
	if err := v.startSlideshow(); err != nil {
		util.LogSystemError(fmt.Sprintf("Could not start slideshow: %v", err))
		return
	}
	util.LogSystemInfo(fmt.Sprintf("Slideshow every %s", v.interval))
}

func (v *Viewer) exportSnapshot() {
	scene := v.navigator.Current()
	if scene == nil {
		return
	}
	if err := os.MkdirAll(v.snapshotDir, 0o755); err != nil {
		util.LogSystemError(fmt.Sprintf("Could not create %s: %v", v.snapshotDir, err))
		return
	}
	path := filepath.Join(v.snapshotDir, fmt.Sprintf("scene-%d.nbt.gz", scene.Seed))
	if err := game.SaveSnapshot(path, scene.Plan); err != nil {
		util.LogSystemError(fmt.Sprintf("Could not export scene %d: %v", scene.Seed, err))
		return
	}
	util.LogSystemInfo(fmt.Sprintf("Exported scene %d to %s", scene.Seed, path))
}
