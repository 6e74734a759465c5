package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/config"
)

// Camera is a fixed viewpoint with a slow hand-held bob on the eye. The world
// is Z-up.
type Camera struct {
	Eye         mgl32.Vec3
	Target      mgl32.Vec3
	Bob         bool
	FieldOfView float32
	Near        float32
	Far         float32
}

func NewCamera(cfg config.CameraConfig) Camera {
	return Camera{
		Eye:         mgl32.Vec3(cfg.Eye),
		Target:      mgl32.Vec3(cfg.LookAt),
		Bob:         cfg.Bob,
		FieldOfView: cfg.FieldOfView,
		Near:        cfg.Near,
		Far:         cfg.Far,
	}
}

// EyePosition returns the eye t seconds after the scene became active.
func (c Camera) EyePosition(t float64) mgl32.Vec3 {
	if !c.Bob {
		return c.Eye
	}
	bob := mgl32.Vec3{
		float32(0.1 * math.Sin(0.32*t+1)),
		float32(0.03 * math.Sin(0.33*t+2)),
		float32(0.05 * math.Sin(0.34*t+3)),
	}
	return bob.Add(c.Eye)
}

func (c Camera) LookAt() mgl32.Vec3 {
	return c.Target
}

func (c Camera) ViewMatrix(t float64) mgl32.Mat4 {
	return mgl32.LookAtV(c.EyePosition(t), c.Target, mgl32.Vec3{0, 0, 1})
}

func (c Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FieldOfView), aspect, c.Near, c.Far)
}

func (c Camera) ViewProjection(t float64, aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix(t))
}
