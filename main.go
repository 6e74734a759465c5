package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/faiface/mainthread"
	"github.com/memmaker/undergrowth/config"
	"github.com/memmaker/undergrowth/engine/util"
)

func main() {
	var (
		configFile  = flag.String("config", "", "YAML scene configuration; built-in defaults when empty")
		seed        = flag.Uint64("seed", 0, "seed of the first scene")
		width       = flag.Int("width", 0, "window width, overrides the configuration")
		height      = flag.Int("height", 0, "window height, overrides the configuration")
		stats       = flag.Int("stats", 0, "plan this many scenes without a window and print statistics")
		export      = flag.String("export", "", "write the scene for -seed as a gzip NBT snapshot to this path and exit")
		slideshow   = flag.String("slideshow", "", "advance the seed automatically, e.g. 8s")
		assetsDir   = flag.String("assets", "", "asset directory, overrides the configuration")
		snapshotDir = flag.String("snapshots", "snapshots", "directory for scenes exported with F5")
		writeConfig = flag.String("write-config", "", "write the default configuration to this path and exit")
	)
	flag.Parse()

	if *writeConfig != "" {
		if err := config.WriteDefault(*writeConfig); err != nil {
			exitWithError(err)
		}
		util.LogSystemInfo(fmt.Sprintf("Wrote default configuration to %s", *writeConfig))
		return
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		exitWithError(err)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["seed"] {
		if *seed > math.MaxUint32 {
			exitWithError(fmt.Errorf("seed %d does not fit into 32 bits", *seed))
		}
		cfg.Seed = uint32(*seed)
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *slideshow != "" {
		cfg.Slideshow = *slideshow
	}
	if *assetsDir != "" {
		cfg.Assets.Dir = *assetsDir
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(err)
	}
	cfg.ApplyLogging()

	switch {
	case *stats > 0:
		err = runStats(cfg, *stats)
	case *export != "":
		err = runExport(cfg, *export)
	default:
		mainthread.Run(func() {
			err = runViewer(cfg, *snapshotDir)
		})
	}
	if err != nil {
		exitWithError(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}

func exitWithError(err error) {
	util.LogSystemError(err.Error())
	os.Exit(1)
}
