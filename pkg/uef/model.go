package uef

// Header holds the container preamble shared by every UEFormat file.
type Header struct {
	Identifier   string // payload kind, e.g. "UEMODEL"
	Version      uint8  // newest serialization milestone present in the file
	ObjectName   string // object name assigned by the exporter
	IsCompressed bool   // whether the payload body is compressed

	// Compression fields are only meaningful when IsCompressed is set.
	CompressionType  string // algorithm name, e.g. "ZSTD"
	UncompressedSize int32  // declared payload size after decompression
	CompressedSize   int32  // declared size of the compressed region
}

// Material names a slot and the triangle range it covers. FirstIndex is
// the first triangle of the range; the range ends where the next
// material's range begins, or at the last triangle for the final entry.
type Material struct {
	Name       string
	FirstIndex int32 // first triangle covered by this material
	NumFaces   int32 // triangle count declared by the exporter
}

// VertexColorChannel is one named per-vertex RGBA color set.
type VertexColorChannel struct {
	Name   string
	Colors [][4]uint8 // RGBA
}

// VertexWeight binds a vertex to a skeleton bone with a blend weight.
type VertexWeight struct {
	BoneIndex   int16
	VertexIndex int32
	Weight      float32
}

// MorphDelta is one vertex displacement of a morph target.
type MorphDelta struct {
	PositionDelta [3]float32
	NormalDelta   [3]float32
	VertexIndex   int32
}

// MorphTarget is a named set of vertex displacements.
type MorphTarget struct {
	Name   string
	Deltas []MorphDelta
}

// Bone is a skeleton joint in parent-relative space.
type Bone struct {
	Name        string
	ParentIndex int32
	Position    [3]float32
	Rotation    [4]float32 // XYZW quaternion
}

// Socket is a named attachment point carried by a skeleton bone.
type Socket struct {
	Name     string
	BoneName string
	Position [3]float32
	Rotation [4]float32 // XYZW quaternion
	Scale    [3]float32
}

// Skeleton is declared by the format family for files that carry one.
// Current decoding skips SKELETON sections, so the record stays empty.
type Skeleton struct {
	Name    string
	Bones   []Bone
	Sockets []Socket
}

// LOD is one level of detail with its decoded geometry arrays.
type LOD struct {
	Name         string
	Positions    [][3]float32 // vertex positions
	Indices      []uint32     // triangle list, three entries per face
	Normals      [][4]float32 // stored W,X,Y,Z; W carries the binormal sign
	VertexColors []VertexColorChannel
	TexCoords    [][][2]float32 // UV sets, outermost index is the channel
	Materials    []Material
	Weights      []VertexWeight
	Morphs       []MorphTarget
}

// Model is a fully decoded UEFormat file.
type Model struct {
	Header Header
	LODs   []LOD

	// Skeleton stays nil for now: SKELETON sections are skipped, not
	// decoded.
	Skeleton *Skeleton
}

// IsMesh reports whether the file carried a mesh payload. Files with
// other identifiers decode to a header-only model with no LODs.
func (m *Model) IsMesh() bool {
	return m.Header.Identifier == ModelIdentifier
}

// TotalVertexCount returns the vertex count summed across all LODs.
func (m *Model) TotalVertexCount() int {
	total := 0
	for i := range m.LODs {
		total += len(m.LODs[i].Positions)
	}
	return total
}

// TotalTriangleCount returns the face count summed across all LODs.
func (m *Model) TotalTriangleCount() int {
	total := 0
	for i := range m.LODs {
		total += m.LODs[i].TriangleCount()
	}
	return total
}

// LODByName returns the LOD with the given name, or nil if not present.
func (m *Model) LODByName(name string) *LOD {
	for i := range m.LODs {
		if m.LODs[i].Name == name {
			return &m.LODs[i]
		}
	}
	return nil
}

// TriangleCount returns the number of faces in the LOD.
func (l *LOD) TriangleCount() int {
	return len(l.Indices) / 3
}

// NormalXYZ returns the direction part of normal i with the leading
// binormal sign dropped.
func (l *LOD) NormalXYZ(i int) [3]float32 {
	n := l.Normals[i]
	return [3]float32{n[1], n[2], n[3]}
}

// HasWeights reports whether the LOD carries skinning data.
func (l *LOD) HasWeights() bool {
	return len(l.Weights) > 0
}
