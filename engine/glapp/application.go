package glapp

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/undergrowth/engine/glhf"
	"github.com/memmaker/undergrowth/engine/util"
	"github.com/pkg/errors"
)

type GlApplication struct {
	Window          *glfw.Window
	Title           string
	ClearColor      mgl32.Vec4
	TerminateFunc   func()
	UpdateFunc      func(elapsed float64)
	DrawFunc        func(elapsed float64)
	KeyHandler      func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	WindowWidth     int
	WindowHeight    int
	ticks           uint64
	FramesPerSecond float64
	FPSRunningAvg   float64
	FPSMin          float64
	FPSMax          float64
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.KeyHandler != nil {
		a.KeyHandler(
			key,
			scancode,
			action,
			mods,
		)
	}
}

func (a *GlApplication) FramebufferSizeCallback(w *glfw.Window, width int, height int) {
	a.WindowWidth = width
	a.WindowHeight = height
	glhf.Bounds(0, 0, width, height)
}

// AspectRatio of the framebuffer, 1 while the window is minimized.
func (a *GlApplication) AspectRatio() float32 {
	if a.WindowWidth <= 0 || a.WindowHeight <= 0 {
		return 1
	}
	return float32(a.WindowWidth) / float32(a.WindowHeight)
}

// Close asks the loop to stop after the current frame.
func (a *GlApplication) Close() {
	a.Window.SetShouldClose(true)
}

func (a *GlApplication) Run() {
	defer a.TerminateFunc()
	a.Window.SetKeyCallback(a.KeyCallback)
	a.Window.SetFramebufferSizeCallback(a.FramebufferSizeCallback)
	a.WindowWidth, a.WindowHeight = a.Window.GetFramebufferSize()
	glhf.Bounds(0, 0, a.WindowWidth, a.WindowHeight)

	previousTime := glfw.GetTime()
	for !a.Window.ShouldClose() {
		glhf.Clear(a.ClearColor.X(), a.ClearColor.Y(), a.ClearColor.Z(), a.ClearColor.W())

		time := glfw.GetTime()
		elapsed := time - previousTime
		previousTime = time
		a.UpdateFunc(elapsed)

		a.DrawFunc(elapsed)

		a.updateFrameStats(elapsed)

		a.Window.SwapBuffers()
		glfw.PollEvents()
		a.ticks++
	}
}

func (a *GlApplication) updateFrameStats(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	a.FramesPerSecond = 1.0 / elapsed
	if a.ticks%60 == 0 {
		sixtyTicksAverage := a.FPSRunningAvg
		a.Window.SetTitle(fmt.Sprintf("%s - FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f)", a.Title, a.FramesPerSecond, sixtyTicksAverage, a.FPSMin, a.FPSMax))
		a.FPSRunningAvg = 0 + a.FramesPerSecond*(1.0/60.0)
		a.FPSMin = math.MaxFloat64
		a.FPSMax = 0
	} else {
		a.FPSRunningAvg = a.FPSRunningAvg + a.FramesPerSecond*(1.0/60.0)
		if a.FramesPerSecond < a.FPSMin {
			a.FPSMin = a.FramesPerSecond
		}
		if a.FramesPerSecond > a.FPSMax {
			a.FPSMax = a.FramesPerSecond
		}
	}
}

// InitOpenGL opens a window with a 3.3 core context and sets the depth and
// culling state the scene expects. The returned func terminates glfw.
func InitOpenGL(title string, width, height int, vsync bool) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "glfw")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "could not create window")
	}
	win.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := glhf.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, err
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	util.LogGlInfo(fmt.Sprintf("OpenGL version %s", version))

	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	return win, func() {
		glfw.Terminate()
	}, nil
}
