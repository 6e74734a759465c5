package main

import (
	"fmt"
	"os"

	"github.com/faiface/mainthread"
	"github.com/memmaker/undergrowth/client"
	"github.com/memmaker/undergrowth/config"
	"github.com/memmaker/undergrowth/engine/util"
	"github.com/memmaker/undergrowth/game"
)

// runViewer must be called from inside mainthread.Run. The window, the GL
// context and the render loop all live on the main thread.
func runViewer(cfg *config.Config, snapshotDir string) error {
	var err error
	mainthread.Call(func() {
		var viewer *client.Viewer
		viewer, err = client.NewViewer(cfg, cfg.Assets.Dir, snapshotDir)
		if err != nil {
			return
		}
		if err = viewer.Start(cfg.Seed); err != nil {
			viewer.TerminateFunc()
			return
		}
		viewer.Run()
	})
	return err
}

func newBuilder(cfg *config.Config) (*game.SceneBuilder, error) {
	guide, err := game.LoadGuide(cfg, cfg.Assets.Dir)
	if err != nil {
		return nil, err
	}
	return game.NewSceneBuilder(cfg, guide), nil
}

func runStats(cfg *config.Config, count int) error {
	builder, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	stats := game.CollectStats(builder, cfg.Seed, count)
	if err := game.WriteStats(os.Stdout, stats, game.OutputWidth(os.Stdout)); err != nil {
		return err
	}
	util.LogSystemInfo(builder.Timer().String())
	return nil
}

func runExport(cfg *config.Config, path string) error {
	builder, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	plan := builder.Plan(cfg.Seed)
	if err := game.SaveSnapshot(path, plan); err != nil {
		return err
	}
	util.LogSystemInfo(fmt.Sprintf("Exported scene %d with %d instances to %s", plan.Seed, plan.InstanceCount(), path))
	return nil
}
