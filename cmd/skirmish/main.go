// Package main provides the skirmish binary that runs a headless combat
// simulation between weapon-carrying agents.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/server"
	"github.com/cory-johannsen/skirmish/internal/sim"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/skirmish.yaml", "path to configuration file")
	weaponsDir := flag.String("weapons-dir", "", "path to weapon YAML definitions directory; overrides the configured value")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting skirmish",
		zap.Int("agents", cfg.Simulation.Agents),
		zap.Duration("duration", cfg.Simulation.Duration),
	)

	// Load weapon definitions. A missing content directory falls back to
	// the built-in defaults so the binary runs out of the box.
	dir := cfg.Combat.WeaponsDir
	if *weaponsDir != "" {
		dir = *weaponsDir
	}
	registry := weapon.NewRegistry()
	defs := weapon.DefaultDefs()
	if dir != "" {
		if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
			loadStart := time.Now()
			loaded, err := weapon.LoadDefs(dir)
			if err != nil {
				logger.Fatal("loading weapon definitions", zap.String("dir", dir), zap.Error(err))
			}
			defs = loaded
			logger.Info("loaded weapon definitions",
				zap.Int("count", len(loaded)),
				zap.String("dir", dir),
				zap.Duration("elapsed", time.Since(loadStart)),
			)
		} else {
			logger.Warn("weapons directory not found, using built-in definitions",
				zap.String("dir", dir))
		}
	}
	for _, d := range defs {
		if err := registry.Register(d); err != nil {
			logger.Fatal("registering weapon", zap.String("type", d.Type), zap.Error(err))
		}
	}

	arena, err := sim.NewArena(cfg, registry, logger)
	if err != nil {
		logger.Fatal("creating arena", zap.Error(err))
	}

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("arena", arena)

	logger.Info("skirmish initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Int("weapon_types", registry.Len()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("skirmish error", zap.Error(err))
	}
}
