package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/arkavell/uefkit/pkg/uef"
)

func lodsCmd() *cli.Command {
	return &cli.Command{
		Name:      "lods",
		Usage:     "List per-LOD element counts as a table",
		ArgsUsage: "<file.uemodel>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("error: model file argument required", 1)
			}

			model, err := uef.ParseFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if !model.IsMesh() {
				return cli.Exit(fmt.Sprintf("error: %s: %v", path, uef.ErrUnsupportedFormat), 1)
			}

			fmt.Printf("%-16s %9s %9s %9s %5s %7s %5s %8s %7s\n",
				"LOD", "VERTS", "TRIS", "NORMALS", "UVS", "COLORS", "MATS", "WEIGHTS", "MORPHS")
			for i := range model.LODs {
				lod := &model.LODs[i]
				fmt.Printf("%-16s %9d %9d %9d %5d %7d %5d %8d %7d\n",
					lod.Name,
					len(lod.Positions),
					lod.TriangleCount(),
					len(lod.Normals),
					len(lod.TexCoords),
					len(lod.VertexColors),
					len(lod.Materials),
					len(lod.Weights),
					len(lod.Morphs))
			}
			return nil
		},
	}
}
