package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/arkavell/uefkit/pkg/uef"
)

type modelInfo struct {
	File             string    `json:"file"`
	SizeBytes        int64     `json:"size_bytes"`
	Identifier       string    `json:"identifier"`
	Version          uint8     `json:"version"`
	ObjectName       string    `json:"object_name"`
	Compressed       bool      `json:"compressed"`
	Compression      string    `json:"compression,omitempty"`
	CompressedSize   int32     `json:"compressed_size,omitempty"`
	UncompressedSize int32     `json:"uncompressed_size,omitempty"`
	IsMesh           bool      `json:"is_mesh"`
	TotalVertices    int       `json:"total_vertices"`
	TotalTriangles   int       `json:"total_triangles"`
	LODs             []lodInfo `json:"lods"`
}

type lodInfo struct {
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

func infoCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Show model header and content statistics",
		ArgsUsage: "<file.uemodel>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "emit machine-readable JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("error: model file argument required", 1)
			}

			stat, err := os.Stat(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			model, err := uef.ParseFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			info := buildModelInfo(path, stat.Size(), model)
			if asJSON {
				b, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				fmt.Println(string(b))
				return nil
			}

			printModelInfo(info)
			return nil
		},
	}
}

func buildModelInfo(path string, size int64, model *uef.Model) modelInfo {
	info := modelInfo{
		File:           path,
		SizeBytes:      size,
		Identifier:     model.Header.Identifier,
		Version:        model.Header.Version,
		ObjectName:     model.Header.ObjectName,
		Compressed:     model.Header.IsCompressed,
		IsMesh:         model.IsMesh(),
		TotalVertices:  model.TotalVertexCount(),
		TotalTriangles: model.TotalTriangleCount(),
	}
	if info.Compressed {
		info.Compression = model.Header.CompressionType
		info.CompressedSize = model.Header.CompressedSize
		info.UncompressedSize = model.Header.UncompressedSize
	}
	for i := range model.LODs {
		lod := &model.LODs[i]
		info.LODs = append(info.LODs, lodInfo{
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
	return info
}

func printModelInfo(info modelInfo) {
	fmt.Printf("UEFORMAT Model: %s (%s)\n", filepath.Base(info.File), formatBytes(uint64(info.SizeBytes)))

	section("Header")
	row("identifier", info.Identifier)
	row("version", fmt.Sprintf("%d", info.Version))
	row("object_name", info.ObjectName)
	if info.Compressed {
		row("compression", fmt.Sprintf("%s (%s compressed, %s raw)", info.Compression,
			formatBytes(uint64(info.CompressedSize)), formatBytes(uint64(info.UncompressedSize))))
	} else {
		row("compression", "none")
	}
	if !info.IsMesh {
		row("payload", "not a mesh, header only")
		return
	}

	section("Content")
	rowInt("lods", len(info.LODs))
	rowInt("total_vertices", info.TotalVertices)
	rowInt("total_triangles", info.TotalTriangles)

	for _, l := range info.LODs {
		section("LOD " + l.Name)
		rowInt("vertices", l.Vertices)
		rowInt("indices", l.Indices)
		rowInt("triangles", l.Triangles)
		rowInt("normals", l.Normals)
		rowInt("uv_channels", l.UVChannels)
		rowInt("color_channels", l.ColorChannels)
		rowInt("materials", l.Materials)
		rowInt("weights", l.Weights)
		rowInt("morph_targets", l.MorphTargets)
	}
}
