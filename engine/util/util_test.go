package util

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"golang.org/x/image/bmp"
)

// near compares absolutely. mgl32's relative comparison is too strict next to
// zero components.
func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestParseLogSettings(t *testing.T) {
	lvl, ok := ParseLogLevel("Debug")
	if !ok || lvl != LogLevelDebug {
		t.Fatalf("ParseLogLevel = %v, %v", lvl, ok)
	}
	if _, ok := ParseLogLevel("loud"); ok {
		t.Fatal("unknown level accepted")
	}
	mask, bad := ParseLogCategories([]string{"scene", "foliage"})
	if bad != "" || mask != LogScene|LogFoliage {
		t.Fatalf("ParseLogCategories = %v, %q", mask, bad)
	}
	if _, bad := ParseLogCategories([]string{"scene", "network"}); bad != "network" {
		t.Fatalf("expected network to be rejected, got %q", bad)
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	for i := 0; i < 3; i++ {
		stop := timer.Start("height map")
		if d := stop(); d < 0 {
			t.Fatalf("negative duration %v", d)
		}
	}
	timer.Start("terrain")()
	if names := timer.Names(); len(names) != 2 || names[0] != "height map" || names[1] != "terrain" {
		t.Fatalf("names = %v", names)
	}
	if timer.GetState("height map").Count() != 3 {
		t.Fatalf("count = %d", timer.GetState("height map").Count())
	}
	timer.Reset()
	if timer.GetState("terrain").Count() != 0 || timer.GetState("terrain").Average() != 0 {
		t.Fatal("reset did not clear the state")
	}
}

func encodedTestImage(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer, image.Image) error{
		"png": func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) },
		"bmp": func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			data := encodedTestImage(t, encode)
			img, err := DecodeImage(bytes.NewReader(data), false)
			if err != nil {
				t.Fatal(err)
			}
			if got := img.NRGBAAt(0, 0); got.R != 255 || got.G != 0 {
				t.Fatalf("top left = %v", got)
			}
			flipped, err := DecodeImage(bytes.NewReader(data), true)
			if err != nil {
				t.Fatal(err)
			}
			if got := flipped.NRGBAAt(0, 0); got.B != 255 || got.R != 0 {
				t.Fatalf("flipped top left = %v", got)
			}
			if got := flipped.NRGBAAt(1, 1); got.G != 255 || got.R != 0 {
				t.Fatalf("flipped bottom right = %v", got)
			}
		})
	}
	if _, err := DecodeImage(bytes.NewReader([]byte("not an image")), false); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestSolidImage(t *testing.T) {
	img := SolidImage(71, 49, 68, 255)
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 71, G: 49, B: 68, A: 255}) {
		t.Fatalf("got %v", got)
	}
}

func triangleDocument() *gltf.Document {
	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Name: "leaf",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 2})),
			Attributes: map[string]uint32{
				gltf.POSITION:   modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
				gltf.NORMAL:     modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}}),
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "leaf", Mesh: gltf.Index(0), Translation: [3]float32{0, 2, 0}}}
	doc.Scenes[0].Nodes = []uint32{0}
	return doc
}

func TestMeshFromDocumentBakesTransformsIntoZUp(t *testing.T) {
	mesh, err := MeshFromDocument(triangleDocument())
	if err != nil {
		t.Fatal(err)
	}
	if mesh.VertexCount() != 3 || len(mesh.Indices) != 3 {
		t.Fatalf("got %d vertices and %d indices", mesh.VertexCount(), len(mesh.Indices))
	}
	// (0, 1, 0) translated by (0, 2, 0) is 3 up in gltf space, which is z here.
	top := mgl32.Vec3(mesh.Positions[2])
	if !top.ApproxFuncEqual(mgl32.Vec3{0, 0, 3}, near) {
		t.Fatalf("top vertex at %v, want (0, 0, 3)", top)
	}
	normal := mgl32.Vec3(mesh.Normals[0])
	if !normal.ApproxFuncEqual(mgl32.Vec3{0, -1, 0}, near) {
		t.Fatalf("normal = %v, want (0, -1, 0)", normal)
	}
	if data := mesh.Interleave(); len(data) != 3*8 || data[3+8] != 1 {
		t.Fatalf("unexpected interleaved data %v", data)
	}
	low, high := mesh.Bounds()
	if !low.ApproxFuncEqual(mgl32.Vec3{0, 0, 2}, near) || !high.ApproxFuncEqual(mgl32.Vec3{1, 0, 3}, near) {
		t.Fatalf("bounds = %v, %v", low, high)
	}
}

func TestMeshFromDocumentRejectsEmptyDocuments(t *testing.T) {
	if _, err := MeshFromDocument(gltf.NewDocument()); err == nil {
		t.Fatal("expected an error for a document without meshes")
	}
}

func TestYUpToZUp(t *testing.T) {
	up := yUpToZUp.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	if math.Abs(float64(up.Z()-1)) > 1e-6 {
		t.Fatalf("gltf up maps to %v", up)
	}
}
