package glhf

// AttrFormat defines names and types of OpenGL attributes (vertex format, uniform format, etc.).
//
// Example:
//
//	AttrFormat{{"position", Vec3}, {"texCoord", Vec2}, {"normal", Vec3}}
type AttrFormat []Attr

// Size returns the total size of all attributes of the AttrFormat in bytes.
func (af AttrFormat) Size() int {
	total := 0
	for _, attr := range af {
		total += attr.Type.Size()
	}
	return total
}

// Attr represents an arbitrary OpenGL attribute, such as a vertex attribute or a shader
// uniform attribute.
type Attr struct {
	Name string
	Type AttrType
}

// AttrType represents the type of an OpenGL attribute.
type AttrType int

// List of all possible attribute types.
const (
	Int AttrType = iota
	UInt
	Float
	Vec2
	Vec3
	Vec4
	Mat3
	Mat4
)

const SizeOfFloat32 = 4

// Size returns the size of a type in bytes.
func (at AttrType) Size() int {
	switch at {
	case Int, UInt, Float:
		return 4
	case Vec2:
		return 2 * 4
	case Vec3:
		return 3 * 4
	case Vec4:
		return 4 * 4
	case Mat3:
		return 3 * 3 * 4
	case Mat4:
		return 4 * 4 * 4
	default:
		panic("size of vertex attribute type: invalid type")
	}
}

// columns is the number of consecutive attribute locations a type occupies
// and the size of each of them in floats.
func (at AttrType) columns() (int, int32) {
	switch at {
	case Mat3:
		return 3, 3
	case Mat4:
		return 4, 4
	case Vec2:
		return 1, 2
	case Vec3:
		return 1, 3
	case Vec4:
		return 1, 4
	default:
		return 1, 1
	}
}
