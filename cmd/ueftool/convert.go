package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/arkavell/uefkit/internal/config"
	"github.com/arkavell/uefkit/internal/importer"
	"github.com/arkavell/uefkit/internal/logger"
	"github.com/arkavell/uefkit/internal/mesh"
)

func convertCmd() *cli.Command {
	var (
		outPath    string
		scale      float64
		flip       bool
		configPath string
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert model files to Wavefront OBJ",
		ArgsUsage: "<file.uemodel> [more files...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (single input) or directory",
				Destination: &outPath,
			},
			&cli.Float64Flag{
				Name:        "scale",
				Usage:       "world scale override",
				Destination: &scale,
			},
			&cli.BoolFlag{
				Name:        "flip",
				Usage:       "reverse triangle winding",
				Destination: &flip,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file",
				Destination: &configPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("error: at least one model file argument required", 1)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if scale > 0 {
				cfg.Import.Scale = float32(scale)
			}
			if flip {
				cfg.Import.FlipWinding = true
			}
			if err := logger.Init(logger.Options{
				Level: cfg.Logging.Level,
				File:  cfg.Logging.LogFile,
			}); err != nil {
				return cli.Exit(fmt.Sprintf("error: init logger: %v", err), 1)
			}

			imp := importer.New(cfg, logger.Log)
			results, err := imp.ImportAll(ctx, paths)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(os.Stderr, "error: %s: %v\n", res.Path, res.Err)
					failed++
					continue
				}
				target := objTarget(res.Path, outPath, len(paths) > 1)
				if err := writeOBJFile(target, res.Meshes); err != nil {
					fmt.Fprintf(os.Stderr, "error: %s: %v\n", res.Path, err)
					failed++
					continue
				}
				fmt.Printf("%s -> %s (%d meshes, %d triangles)\n",
					filepath.Base(res.Path), target, len(res.Meshes), res.Stats.Triangles)
			}

			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, len(results)), 1)
			}
			return nil
		},
	}
}

// objTarget decides where one converted file lands. An --out ending in
// .obj names the exact output for a single input; anything else is
// treated as a directory.
func objTarget(inPath, outPath string, multi bool) string {
	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath)) + ".obj"
	switch {
	case outPath == "":
		return filepath.Join(filepath.Dir(inPath), base)
	case !multi && strings.HasSuffix(strings.ToLower(outPath), ".obj"):
		return outPath
	default:
		return filepath.Join(outPath, base)
	}
}

func writeOBJFile(path string, meshes []*mesh.Mesh) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := mesh.WriteOBJ(f, meshes); err != nil {
		f.Close()
		return err
	}
	logger.Debug("wrote obj", zap.String("path", path), zap.Int("meshes", len(meshes)))
	return f.Close()
}
