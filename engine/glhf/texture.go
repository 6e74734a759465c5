package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Texture is an OpenGL texture.
type Texture struct {
	tex           binder
	width, height int
	smooth        bool
	deleted       bool
}

func newTextureObject(width, height int) *Texture {
	tex := &Texture{
		tex: binder{
			restoreLoc: gl.TEXTURE_BINDING_2D,
			bindFunc: func(obj uint32) {
				gl.BindTexture(gl.TEXTURE_2D, obj)
			},
		},
		width:  width,
		height: height,
	}
	gl.GenTextures(1, &tex.tex.obj)
	runtime.SetFinalizer(tex, (*Texture).finalize)
	return tex
}

func NewSolidColorTexture(color [3]uint8) *Texture {
	pixels := make([]uint8, 4*4*4)
	for i := 0; i < 4*4; i++ {
		pixels[i*4] = color[0]
		pixels[i*4+1] = color[1]
		pixels[i*4+2] = color[2]
		pixels[i*4+3] = 255
	}
	return NewTexture(4, 4, false, pixels)
}

// NewTexture creates a new texture with the specified width and height with some initial
// pixel values. The pixels must be a sequence of RGBA values (one byte per component).
// Smooth textures get mipmaps.
func NewTexture(width, height int, smooth bool, pixels []uint8) *Texture {
	if len(pixels) != width*height*4 {
		panic("new texture: wrong number of pixels")
	}
	tex := newTextureObject(width, height)

	tex.Begin()
	defer tex.End()

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
	if smooth {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	tex.SetSmooth(smooth)
	tex.SetWrapToRepeat()
	return tex
}

// NewFloatTexture uploads a single channel float map, e.g. a sampled height
// field. data is row-major, bottom row first.
func NewFloatTexture(width, height int, data []float32) *Texture {
	if len(data) != width*height {
		panic("new float texture: wrong number of samples")
	}
	tex := newTextureObject(width, height)

	tex.Begin()
	defer tex.End()

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.R32F,
		int32(width),
		int32(height),
		0,
		gl.RED,
		gl.FLOAT,
		gl.Ptr(data),
	)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	tex.SetSmooth(true)
	tex.SetWrapToClamp()
	return tex
}

func (t *Texture) finalize() {
	if t.deleted {
		return
	}
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &t.tex.obj)
	})
}

// Delete frees the texture now. It must be called on the GL thread.
func (t *Texture) Delete() {
	if t.deleted {
		return
	}
	t.deleted = true
	gl.DeleteTextures(1, &t.tex.obj)
}

// ID returns the OpenGL ID of this Texture.
func (t *Texture) ID() uint32 {
	return t.tex.obj
}

// Width returns the width of the Texture in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the Texture in pixels.
func (t *Texture) Height() int {
	return t.height
}

// SetSmooth sets whether the Texture should be drawn "smoothly" or "pixely".
//
// It affects how the Texture is drawn when zoomed. Smooth interpolates between the neighbour
// pixels, while pixely always chooses the nearest pixel. The texture must be bound.
func (t *Texture) SetSmooth(smooth bool) {
	t.smooth = smooth
	if smooth {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
}

func (t *Texture) SetWrapToRepeat() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
}

func (t *Texture) SetWrapToClamp() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Smooth returns whether the Texture is set to be drawn "smooth" or "pixely".
func (t *Texture) Smooth() bool {
	return t.smooth
}

// Begin binds the Texture. This is necessary before using the Texture.
func (t *Texture) Begin() {
	t.tex.bind()
}

// End unbinds the Texture and restores the previous one.
func (t *Texture) End() {
	t.tex.restore()
}

// BindTo binds the texture to a texture unit for drawing. Unlike Begin it
// does not restore the previous binding.
func (t *Texture) BindTo(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.tex.obj)
}
