package game

import (
	"fmt"

	"github.com/memmaker/undergrowth/engine/util"
)

// Navigator owns the current seed and scene. Changing the seed rebuilds the
// scene from scratch and releases the previous one once the new one is
// ready.
type Navigator struct {
	builder *SceneBuilder
	backend Backend
	seed    uint32
	scene   *Scene
}

func NewNavigator(builder *SceneBuilder, backend Backend) *Navigator {
	return &Navigator{builder: builder, backend: backend}
}

func (n *Navigator) Seed() uint32 {
	return n.seed
}

// Current returns the active scene, nil before the first Show.
func (n *Navigator) Current() *Scene {
	return n.scene
}

// Show builds and activates the scene for seed.
func (n *Navigator) Show(seed uint32) *Scene {
	plan := n.builder.Plan(seed)
	next := Realize(plan, n.backend)
	if n.scene != nil {
		n.scene.Release()
	}
	n.seed = seed
	n.scene = next
	util.LogSceneInfo(fmt.Sprintf("Showing scene %d", seed))
	return next
}

// Next wraps around at the end of the seed range.
func (n *Navigator) Next() *Scene {
	return n.Show(n.seed + 1)
}

func (n *Navigator) Previous() *Scene {
	return n.Show(n.seed - 1)
}

func (n *Navigator) Release() {
	if n.scene != nil {
		n.scene.Release()
		n.scene = nil
	}
}
