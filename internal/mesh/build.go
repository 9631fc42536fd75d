package mesh

import (
	"math"
	"sort"

	"github.com/arkavell/uefkit/pkg/uef"
)

// Build creates a mesh from one LOD. Returns nil when the LOD carries
// no vertex positions. Triangles whose indices point outside the vertex
// array are dropped rather than failing the whole mesh.
func Build(lod *uef.LOD, opts BuildOptions) *Mesh {
	if len(lod.Positions) == 0 {
		return nil
	}

	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	var uv0 [][2]float32
	if len(lod.TexCoords) > 0 {
		uv0 = lod.TexCoords[0]
	}

	vertices := make([]Vertex, len(lod.Positions))
	for i, p := range lod.Positions {
		pos := [3]float32{p[0] * scale, p[1] * scale, p[2] * scale}
		updateBounds(&bounds, pos)

		var normal [3]float32
		if i < len(lod.Normals) {
			// The stored vector is sign,X,Y,Z; only the direction part
			// feeds the mesh.
			normal = normalize(lod.NormalXYZ(i))
		}

		var uv [2]float32
		if i < len(uv0) {
			uv = uv0[i]
		}

		vertices[i] = Vertex{Position: pos, Normal: normal, TexCoord: uv}
	}

	ranges := materialRanges(lod.Materials)

	var indices []uint32
	var groups []MaterialGroup
	groupIdx := -1

	faceCount := lod.TriangleCount()
	for f := 0; f < faceCount; f++ {
		a, b, c := lod.Indices[f*3], lod.Indices[f*3+1], lod.Indices[f*3+2]
		if int(a) >= len(vertices) || int(b) >= len(vertices) || int(c) >= len(vertices) {
			continue
		}
		if opts.FlipWinding {
			a, c = c, a
		}

		name := materialNameForFace(ranges, f)
		if groupIdx < 0 || groups[groupIdx].Name != name {
			groups = append(groups, MaterialGroup{Name: name, StartIndex: int32(len(indices))})
			groupIdx++
		}
		indices = append(indices, a, b, c)
		groups[groupIdx].IndexCount += 3
	}

	return &Mesh{
		Name:     lod.Name,
		Vertices: vertices,
		Indices:  indices,
		Groups:   groups,
		Bounds:   bounds,
	}
}

// BuildAll builds one mesh per LOD. LODs without geometry produce no
// mesh. Mesh names are prefixed by the model's object name when set.
func BuildAll(model *uef.Model, opts BuildOptions) []*Mesh {
	var meshes []*Mesh
	for i := range model.LODs {
		m := Build(&model.LODs[i], opts)
		if m == nil {
			continue
		}
		if model.Header.ObjectName != "" {
			m.Name = model.Header.ObjectName + "_" + model.LODs[i].Name
		}
		meshes = append(meshes, m)
	}
	return meshes
}

// MaterialForFace returns the index of the material covering triangle
// face, or -1 when no range starts at or before it. A material covers
// the half open face range from its FirstIndex up to the next
// material's FirstIndex.
func MaterialForFace(materials []uef.Material, face int) int {
	best := -1
	bestFirst := int32(-1)
	for i, m := range materials {
		if m.FirstIndex <= int32(face) && m.FirstIndex >= bestFirst {
			best = i
			bestFirst = m.FirstIndex
		}
	}
	return best
}

// materialRange is a resolved half open triangle range.
type materialRange struct {
	name  string
	first int32
}

// materialRanges orders material slots by their starting face. Files
// write them ordered already; sorting keeps a malformed file from
// scrambling group assembly.
func materialRanges(materials []uef.Material) []materialRange {
	ranges := make([]materialRange, len(materials))
	for i, m := range materials {
		ranges[i] = materialRange{name: m.Name, first: m.FirstIndex}
	}
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].first < ranges[j].first })
	return ranges
}

func materialNameForFace(ranges []materialRange, face int) string {
	name := ""
	for _, r := range ranges {
		if r.first > int32(face) {
			break
		}
		name = r.name
	}
	return name
}

func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 1e-8 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

func updateBounds(b *Bounds, p [3]float32) {
	if p[0] < b.Min[0] {
		b.Min[0] = p[0]
	}
	if p[1] < b.Min[1] {
		b.Min[1] = p[1]
	}
	if p[2] < b.Min[2] {
		b.Min[2] = p[2]
	}
	if p[0] > b.Max[0] {
		b.Max[0] = p[0]
	}
	if p[1] > b.Max[1] {
		b.Max[1] = p[1]
	}
	if p[2] > b.Max[2] {
		b.Max[2] = p[2]
	}
}
