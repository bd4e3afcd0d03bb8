package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"labyrinth-server/internal/config"
	"labyrinth-server/internal/engine"
	"labyrinth-server/internal/network"
	"labyrinth-server/internal/server"
	"labyrinth-server/internal/version"
	"labyrinth-server/pkg/logger"
)

const defaultConfigPath = "config/labyrinth.yaml"

func main() {
	if err := run(); err != nil {
		logger.Log.WithError(err).Fatal("Server stopped")
	}
}

func run() error {
	// 1. Парсинг конфигурации
	var (
		configPath  string
		seed        int64
		port        string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, "Path to YAML config")
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 keeps config value)")
	flag.StringVar(&port, "port", "", "Listen port (overrides config and LAB_PORT)")
	flag.BoolVar(&showVersion, "version", false, "Print build info and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.String())
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if seed != 0 {
		cfg.Maze.Seed = seed
	}
	if port != "" {
		cfg.Port = port
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Log.WithFields(version.Info().Fields()).Info("Starting labyrinth server")
	if cfg.Maze.Seed != 0 {
		logger.Log.WithField("seed", cfg.Maze.Seed).Info("Using explicit master seed")
	}

	// 2. Ядро и транспорт
	games := engine.NewService(cfg.ToSettings())
	hub := network.NewBroadcaster()
	srv := server.New(games, hub, cfg.Addr())

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Log.Info("Shutting down...")
		games.Shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Log.Info("Done.")
	return nil
}
