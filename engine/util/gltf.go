package util

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// MeshData is a flattened, indexed triangle mesh ready to be interleaved
// into a vertex buffer.
type MeshData struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Indices   []uint32
}

// gltf is y-up, the scenes here are z-up.
var yUpToZUp = mgl32.HomogRotate3DX(math.Pi / 2)

func LoadGLTF(filename string) (*MeshData, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open model %s", filename)
	}
	mesh, err := MeshFromDocument(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read model %s", filename)
	}
	LogAssetsDebug(fmt.Sprintf("[LoadGLTF] %s: %d vertices, %d triangles", filename, mesh.VertexCount(), len(mesh.Indices)/3))
	return mesh, nil
}

func MustLoadGLTF(filename string) *MeshData {
	mesh, err := LoadGLTF(filename)
	if err != nil {
		panic(err)
	}
	return mesh
}

// MeshFromDocument merges every triangle primitive reachable from the
// default scene into one mesh. Node transforms are baked into the vertices
// and the result is rotated from y-up into z-up.
func MeshFromDocument(doc *gltf.Document) (*MeshData, error) {
	result := &MeshData{}
	if len(doc.Meshes) == 0 {
		return nil, errors.New("document contains no meshes")
	}
	var roots []uint32
	if len(doc.Scenes) > 0 {
		sceneIndex := 0
		if doc.Scene != nil {
			sceneIndex = int(*doc.Scene)
		}
		roots = doc.Scenes[sceneIndex].Nodes
	}
	if len(roots) == 0 {
		// no scene graph, take the meshes as they are
		for meshIndex := range doc.Meshes {
			if err := result.appendMesh(doc, uint32(meshIndex), yUpToZUp); err != nil {
				return nil, err
			}
		}
	}
	for _, root := range roots {
		if err := result.appendNode(doc, root, yUpToZUp); err != nil {
			return nil, err
		}
	}
	if len(result.Indices) == 0 {
		return nil, errors.New("document contains no triangles")
	}
	return result, nil
}

func (m *MeshData) appendNode(doc *gltf.Document, nodeIndex uint32, parent mgl32.Mat4) error {
	node := doc.Nodes[nodeIndex]
	if m.Name == "" {
		m.Name = node.Name
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	local := mgl32.Translate3D(t[0], t[1], t[2]).
		Mul4(mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}.Mat4()).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	world := parent.Mul4(local)
	if node.Mesh != nil {
		if err := m.appendMesh(doc, *node.Mesh, world); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := m.appendNode(doc, child, world); err != nil {
			return err
		}
	}
	return nil
}

func (m *MeshData) appendMesh(doc *gltf.Document, meshIndex uint32, transform mgl32.Mat4) error {
	mesh := doc.Meshes[meshIndex]
	normalMatrix := transform.Mat3().Inv().Transpose()
	for primitiveIndex, primitive := range mesh.Primitives {
		if primitive.Mode != gltf.PrimitiveTriangles {
			LogAssetsError(fmt.Sprintf("[LoadGLTF] %s: skipping primitive %d, only triangles are supported", mesh.Name, primitiveIndex))
			continue
		}
		positionIndex, ok := primitive.Attributes[gltf.POSITION]
		if !ok {
			return errors.Errorf("mesh %s primitive %d has no positions", mesh.Name, primitiveIndex)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[positionIndex], nil)
		if err != nil {
			return errors.Wrapf(err, "mesh %s primitive %d positions", mesh.Name, primitiveIndex)
		}

		var normals [][3]float32
		if normalIndex, ok := primitive.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normalIndex], nil)
			if err != nil {
				return errors.Wrapf(err, "mesh %s primitive %d normals", mesh.Name, primitiveIndex)
			}
		}

		var uvs [][2]float32
		if uvIndex, ok := primitive.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIndex], nil)
			if err != nil {
				return errors.Wrapf(err, "mesh %s primitive %d texture coordinates", mesh.Name, primitiveIndex)
			}
		}

		var indices []uint32
		if primitive.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
			if err != nil {
				return errors.Wrapf(err, "mesh %s primitive %d indices", mesh.Name, primitiveIndex)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		offset := uint32(len(m.Positions))
		for i, p := range positions {
			world := transform.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
			m.Positions = append(m.Positions, [3]float32{world.X(), world.Y(), world.Z()})
			if i < len(normals) {
				n := normalMatrix.Mul3x1(mgl32.Vec3(normals[i])).Normalize()
				m.Normals = append(m.Normals, [3]float32(n))
			} else {
				m.Normals = append(m.Normals, [3]float32{0, 0, 1})
			}
			if i < len(uvs) {
				m.TexCoords = append(m.TexCoords, uvs[i])
			} else {
				m.TexCoords = append(m.TexCoords, [2]float32{0, 0})
			}
		}
		for _, index := range indices {
			if index >= uint32(len(positions)) {
				return errors.Errorf("mesh %s primitive %d: index %d out of range", mesh.Name, primitiveIndex, index)
			}
			m.Indices = append(m.Indices, offset+index)
		}
	}
	return nil
}

func (m *MeshData) VertexCount() int {
	return len(m.Positions)
}

// Interleave packs the vertices as position, texture coordinate and normal,
// eight floats per vertex.
func (m *MeshData) Interleave() []float32 {
	data := make([]float32, 0, len(m.Positions)*8)
	for i, p := range m.Positions {
		uv := m.TexCoords[i]
		n := m.Normals[i]
		data = append(data, p[0], p[1], p[2], uv[0], uv[1], n[0], n[1], n[2])
	}
	return data
}

// Bounds returns the axis aligned bounding box of the mesh.
func (m *MeshData) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	low := mgl32.Vec3(m.Positions[0])
	high := low
	for _, p := range m.Positions[1:] {
		for axis := 0; axis < 3; axis++ {
			low[axis] = float32(math.Min(float64(low[axis]), float64(p[axis])))
			high[axis] = float32(math.Max(float64(high[axis]), float64(p[axis])))
		}
	}
	return low, high
}
