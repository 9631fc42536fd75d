package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/arkavell/uefkit/internal/config"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the ueftool configuration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowSubcommandHelp(cmd)
		},
		Commands: []*cli.Command{
			configInitCmd(),
			configShowCmd(),
		},
	}
}

func configInitCmd() *cli.Command {
	var (
		outPath string
		force   bool
	)

	return &cli.Command{
		Name:  "init",
		Usage: "Write the default configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Usage:       "target path (default: user config dir)",
				Destination: &outPath,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite an existing file",
				Destination: &force,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := outPath
			if path == "" {
				path = filepath.Join(config.ConfigDir(), "config.yaml")
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return cli.Exit(fmt.Sprintf("error: %s already exists, use --force to overwrite", path), 1)
				}
			}
			if err := config.Default().SaveTo(path); err != nil {
				return cli.Exit(fmt.Sprintf("error: write config: %v", err), 1)
			}
			fmt.Printf("Wrote default config to %s\n", path)
			return nil
		},
	}
}

func configShowCmd() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:  "show",
		Usage: "Print the effective configuration as YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file",
				Destination: &configPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			fmt.Print(string(data))
			return nil
		},
	}
}
