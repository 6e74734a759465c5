package glhf

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// Init initializes OpenGL by loading function pointers from the active OpenGL context and sets
// the blending mode used for alpha masked foliage.
//
// It must be called under the presence of an active OpenGL context, e.g., always after calling
// window.MakeContextCurrent(). Also, always call this function when switching contexts.
func Init() error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize OpenGL")
	}
	gl.Enable(gl.BLEND)
	gl.Enable(gl.SCISSOR_TEST)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

// CheckError returns the pending OpenGL error, if any.
func CheckError(operation string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("%s: OpenGL error 0x%x", operation, code)
	}
	return nil
}
