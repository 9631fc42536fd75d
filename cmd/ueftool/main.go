// ueftool is a CLI utility for inspecting and converting UEFORMAT
// model files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arkavell/uefkit/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:  "ueftool",
		Usage: "UEFORMAT model inspection and conversion CLI",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(),
			lodsCmd(),
			convertCmd(),
			serveCmd(),
			configCmd(),
		},
	}

	defer logger.Sync()
	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
