package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

type GlFloat = float32

// VertexBuffer holds static interleaved vertex data and optional triangle
// indices. A buffer carries no shader state, so one mesh can be shared by
// several VertexArrays.
type VertexBuffer struct {
	vbo, ibo    binder
	format      AttrFormat
	stride      int
	vertexCount int
	indexCount  int
	deleted     bool
}

// NewVertexBuffer uploads data laid out per format. indices may be nil for
// non-indexed drawing.
func NewVertexBuffer(format AttrFormat, data []GlFloat, indices []uint32) *VertexBuffer {
	stride := format.Size()
	if stride == 0 || len(data)*SizeOfFloat32%stride != 0 {
		panic(errors.Errorf("failed to create vertex buffer: %d floats do not fit a stride of %d bytes", len(data), stride))
	}
	vb := &VertexBuffer{
		vbo:         arrayBufferBinder(),
		ibo:         elementBufferBinder(),
		format:      format,
		stride:      stride,
		vertexCount: len(data) * SizeOfFloat32 / stride,
		indexCount:  len(indices),
	}

	gl.GenBuffers(1, &vb.vbo.obj)
	vb.vbo.bind()
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*SizeOfFloat32, gl.Ptr(data), gl.STATIC_DRAW)
	}
	vb.vbo.restore()

	if len(indices) > 0 {
		gl.GenBuffers(1, &vb.ibo.obj)
		vb.ibo.bind()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		vb.ibo.restore()
	}
	if err := CheckError("vertex buffer upload"); err != nil {
		println(err.Error())
	}

	runtime.SetFinalizer(vb, (*VertexBuffer).finalize)
	return vb
}

func (vb *VertexBuffer) VertexCount() int {
	return vb.vertexCount
}

func (vb *VertexBuffer) IndexCount() int {
	return vb.indexCount
}

func (vb *VertexBuffer) finalize() {
	if vb.deleted {
		return
	}
	mainthread.CallNonBlock(func() {
		gl.DeleteBuffers(1, &vb.vbo.obj)
		gl.DeleteBuffers(1, &vb.ibo.obj)
	})
}

// Delete frees the buffers now. It must be called on the GL thread.
func (vb *VertexBuffer) Delete() {
	if vb.deleted {
		return
	}
	vb.deleted = true
	gl.DeleteBuffers(1, &vb.vbo.obj)
	gl.DeleteBuffers(1, &vb.ibo.obj)
}

// InstanceBuffer holds attributes that advance once per instance, such as a
// model matrix.
type InstanceBuffer struct {
	vbo     binder
	format  AttrFormat
	stride  int
	count   int
	deleted bool
}

func NewInstanceBuffer(format AttrFormat, data []GlFloat) *InstanceBuffer {
	stride := format.Size()
	if stride == 0 || len(data)*SizeOfFloat32%stride != 0 {
		panic(errors.Errorf("failed to create instance buffer: %d floats do not fit a stride of %d bytes", len(data), stride))
	}
	ib := &InstanceBuffer{
		vbo:    arrayBufferBinder(),
		format: format,
		stride: stride,
		count:  len(data) * SizeOfFloat32 / stride,
	}
	gl.GenBuffers(1, &ib.vbo.obj)
	ib.vbo.bind()
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*SizeOfFloat32, gl.Ptr(data), gl.STATIC_DRAW)
	}
	ib.vbo.restore()

	runtime.SetFinalizer(ib, (*InstanceBuffer).finalize)
	return ib
}

// Len is the number of instances.
func (ib *InstanceBuffer) Len() int {
	return ib.count
}

func (ib *InstanceBuffer) finalize() {
	if ib.deleted {
		return
	}
	mainthread.CallNonBlock(func() {
		gl.DeleteBuffers(1, &ib.vbo.obj)
	})
}

func (ib *InstanceBuffer) Delete() {
	if ib.deleted {
		return
	}
	ib.deleted = true
	gl.DeleteBuffers(1, &ib.vbo.obj)
}

// VertexArray connects a VertexBuffer, and optionally an InstanceBuffer, to
// the attribute locations of a shader. It does not own the buffers.
//
// Note that a vertex array is specialized for a specific shader and can't be used with another
// shader.
type VertexArray struct {
	vao           binder
	vertices      *VertexBuffer
	instances     *InstanceBuffer
	primitiveType uint32
	deleted       bool
}

func NewVertexArray(shader *Shader, vertices *VertexBuffer, instances *InstanceBuffer) *VertexArray {
	va := &VertexArray{
		vao: binder{
			restoreLoc: gl.VERTEX_ARRAY_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindVertexArray(obj)
			},
		},
		vertices:      vertices,
		instances:     instances,
		primitiveType: gl.TRIANGLES,
	}
	gl.GenVertexArrays(1, &va.vao.obj)
	va.vao.bind()

	vertices.vbo.bind()
	setAttributes(shader, vertices.format, vertices.stride, false)
	vertices.vbo.restore()

	if instances != nil {
		instances.vbo.bind()
		setAttributes(shader, instances.format, instances.stride, true)
		instances.vbo.restore()
	}

	// the element buffer binding is part of the vertex array state
	if vertices.indexCount > 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, vertices.ibo.obj)
	}
	va.vao.restore()

	runtime.SetFinalizer(va, (*VertexArray).finalize)
	return va
}

func setAttributes(shader *Shader, format AttrFormat, stride int, perInstance bool) {
	offset := 0
	for _, attr := range format {
		loc := shader.AttribLocation(attr.Name)
		if loc < 0 {
			// optimized away by the shader compiler
			offset += attr.Type.Size()
			continue
		}
		columns, size := attr.Type.columns()
		for column := 0; column < columns; column++ {
			location := uint32(loc) + uint32(column)
			columnOffset := uintptr(offset + column*int(size)*SizeOfFloat32)
			switch attr.Type {
			case Int:
				gl.VertexAttribIPointerWithOffset(location, size, gl.INT, int32(stride), columnOffset)
			case UInt:
				gl.VertexAttribIPointerWithOffset(location, size, gl.UNSIGNED_INT, int32(stride), columnOffset)
			default:
				gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, int32(stride), columnOffset)
			}
			gl.EnableVertexAttribArray(location)
			if perInstance {
				gl.VertexAttribDivisor(location, 1)
			}
		}
		offset += attr.Type.Size()
	}
}

func (va *VertexArray) SetPrimitiveType(glPrimitiveType uint32) {
	va.primitiveType = glPrimitiveType
}

// Begin binds the vertex array. Calling this method is necessary before drawing.
func (va *VertexArray) Begin() {
	va.vao.bind()
}

// End unbinds the vertex array and restores the previous one.
func (va *VertexArray) End() {
	va.vao.restore()
}

// Draw issues one draw call, instanced when the array has an instance
// buffer. An empty instance buffer draws nothing.
func (va *VertexArray) Draw() {
	indexed := va.vertices.indexCount > 0
	switch {
	case va.instances != nil && va.instances.count == 0:
		return
	case va.instances != nil && indexed:
		gl.DrawElementsInstanced(va.primitiveType, int32(va.vertices.indexCount), gl.UNSIGNED_INT, gl.Ptr(nil), int32(va.instances.count))
	case va.instances != nil:
		gl.DrawArraysInstanced(va.primitiveType, 0, int32(va.vertices.vertexCount), int32(va.instances.count))
	case indexed:
		gl.DrawElements(va.primitiveType, int32(va.vertices.indexCount), gl.UNSIGNED_INT, gl.Ptr(nil))
	default:
		gl.DrawArrays(va.primitiveType, 0, int32(va.vertices.vertexCount))
	}
}

func (va *VertexArray) finalize() {
	if va.deleted {
		return
	}
	mainthread.CallNonBlock(func() {
		gl.DeleteVertexArrays(1, &va.vao.obj)
	})
}

// Delete frees the vertex array object but not the buffers it refers to.
func (va *VertexArray) Delete() {
	if va.deleted {
		return
	}
	va.deleted = true
	gl.DeleteVertexArrays(1, &va.vao.obj)
}

func arrayBufferBinder() binder {
	return binder{
		restoreLoc: gl.ARRAY_BUFFER_BINDING,
		bindFunc: func(obj uint32) {
			gl.BindBuffer(gl.ARRAY_BUFFER, obj)
		},
	}
}

func elementBufferBinder() binder {
	return binder{
		restoreLoc: gl.ELEMENT_ARRAY_BUFFER_BINDING,
		bindFunc: func(obj uint32) {
			gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, obj)
		},
	}
}
