package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/arkavell/uefkit/internal/config"
	"github.com/arkavell/uefkit/internal/logger"
	"github.com/arkavell/uefkit/internal/server"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		configPath  string
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the model inspection REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file",
				Destination: &configPath,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := logger.Init(logger.Options{
				Level: cfg.Logging.Level,
				File:  cfg.Logging.LogFile,
			}); err != nil {
				return cli.Exit(fmt.Sprintf("error: init logger: %v", err), 1)
			}

			srv := server.NewServer(cfg, logger.Log, nil)
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			srv.Register(e)

			logger.Info("starting server", zap.String("address", cfg.Server.Addr))
			sc := echo.StartConfig{
				Address: cfg.Server.Addr,
				BeforeServeFunc: func(s *http.Server) error {
					s.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
