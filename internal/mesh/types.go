// Package mesh builds renderable meshes from decoded model LODs.
package mesh

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// MaterialGroup groups consecutive triangles under one material slot.
type MaterialGroup struct {
	Name       string
	StartIndex int32 // offset into Mesh.Indices
	IndexCount int32
}

// Mesh holds the geometry of one LOD, scaled and ready for consumers.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Groups   []MaterialGroup
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// DefaultScale converts exporter centimeters into meters.
const DefaultScale = 0.01

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// Scale multiplies every vertex position. Zero means DefaultScale.
	Scale float32
	// FlipWinding reverses triangle winding order.
	FlipWinding bool
}

// FaceCount returns the number of triangles in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.Indices) / 3
}

// Size returns the bounding box extent on each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Center returns the bounding box midpoint.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}
