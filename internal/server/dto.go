package server

import (
	"time"

	"github.com/arkavell/uefkit/internal/mesh"
	"github.com/arkavell/uefkit/pkg/uef"
)

// ModelSummary describes one stored model.
type ModelSummary struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Identifier  string       `json:"identifier"`
	Version     uint8        `json:"version"`
	Compressed  bool         `json:"compressed"`
	Compression string       `json:"compression,omitempty"`
	SizeBytes   int          `json:"size_bytes"`
	UploadedAt  int64        `json:"uploaded_at"`
	LODs        []LODSummary `json:"lods"`
}

// LODSummary gives per-LOD element counts.
type LODSummary struct {
	Name          string `json:"name"`
	Vertices      int    `json:"vertices"`
	Indices       int    `json:"indices"`
	Triangles     int    `json:"triangles"`
	Normals       int    `json:"normals"`
	UVChannels    int    `json:"uv_channels"`
	ColorChannels int    `json:"color_channels"`
	Materials     int    `json:"materials"`
	Weights       int    `json:"weights"`
	MorphTargets  int    `json:"morph_targets"`
}

// LODGeometry is the render-ready payload for one LOD.
type LODGeometry struct {
	Name      string          `json:"name"`
	Scale     float32         `json:"scale"`
	Positions [][3]float32    `json:"positions"`
	Normals   [][3]float32    `json:"normals"`
	TexCoords [][2]float32    `json:"texcoords"`
	Indices   []uint32        `json:"indices"`
	Groups    []GeometryGroup `json:"groups,omitempty"`
	Bounds    GeometryBounds  `json:"bounds"`
}

// GeometryGroup is a material-assigned index range.
type GeometryGroup struct {
	Material   string `json:"material"`
	StartIndex int32  `json:"start_index"`
	IndexCount int32  `json:"index_count"`
}

// GeometryBounds is an axis-aligned bounding box.
type GeometryBounds struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

// DeleteModelResp confirms a deletion.
type DeleteModelResp struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type healthResp struct {
	Status string `json:"status"`
	Models int    `json:"models"`
}

func summarize(m *uef.Model, size int, now time.Time) ModelSummary {
	sum := ModelSummary{
		Name:        m.Header.ObjectName,
		Identifier:  m.Header.Identifier,
		Version:     m.Header.Version,
		Compressed:  m.Header.IsCompressed,
		Compression: m.Header.CompressionType,
		SizeBytes:   size,
		UploadedAt:  now.Unix(),
		LODs:        make([]LODSummary, 0, len(m.LODs)),
	}
	for i := range m.LODs {
		lod := &m.LODs[i]
		sum.LODs = append(sum.LODs, LODSummary{
			Name:          lod.Name,
			Vertices:      len(lod.Positions),
			Indices:       len(lod.Indices),
			Triangles:     lod.TriangleCount(),
			Normals:       len(lod.Normals),
			UVChannels:    len(lod.TexCoords),
			ColorChannels: len(lod.VertexColors),
			Materials:     len(lod.Materials),
			Weights:       len(lod.Weights),
			MorphTargets:  len(lod.Morphs),
		})
	}
	return sum
}

// geometryFor builds the JSON payload for one LOD at the given scale.
// Empty LODs yield a payload with empty arrays rather than an error.
func geometryFor(lod *uef.LOD, scale float32) LODGeometry {
	if scale == 0 {
		scale = mesh.DefaultScale
	}
	geo := LODGeometry{
		Name:      lod.Name,
		Scale:     scale,
		Positions: [][3]float32{},
		Normals:   [][3]float32{},
		TexCoords: [][2]float32{},
		Indices:   []uint32{},
	}

	m := mesh.Build(lod, mesh.BuildOptions{Scale: scale})
	if m == nil {
		return geo
	}

	geo.Positions = make([][3]float32, len(m.Vertices))
	geo.Normals = make([][3]float32, len(m.Vertices))
	geo.TexCoords = make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		geo.Positions[i] = v.Position
		geo.Normals[i] = v.Normal
		geo.TexCoords[i] = v.TexCoord
	}
	geo.Indices = m.Indices

	for _, g := range m.Groups {
		geo.Groups = append(geo.Groups, GeometryGroup{
			Material:   g.Name,
			StartIndex: g.StartIndex,
			IndexCount: g.IndexCount,
		})
	}
	geo.Bounds = GeometryBounds{Min: m.Bounds.Min, Max: m.Bounds.Max}
	return geo
}
