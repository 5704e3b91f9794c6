package main

import (
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/mfiguera/camion/internal/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve analysis results over an HTTP API",
		Description: `Starts an HTTP server exposing analysis results for repositories on
demand:

  GET /api/contributions?repo=<target>[&ref=<ref>]
  GET /api/simplified?repo=<target>[&ref=<ref>]
  GET /api/complexity?repo=<target>[&ref=<ref>]
  GET /api/authors?repo=<target>[&ref=<ref>]
  GET /healthz

Targets are resolved the same way as on the command line: local paths,
clone URLs, or owner/repo shorthands.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address (defaults to config)",
			},
		},
		Action: runServeCmd,
	}
}

func runServeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c)
	runner := newRunner(c, cfg, log)

	store, err := newCache(c, cfg)
	if err != nil {
		return err
	}

	addr := c.String("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(addr, runner,
		server.WithCache(store),
		server.WithLogger(log),
	)
	return srv.Run(ctx)
}
