package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethanlu126/noa/internal/config"
	"github.com/ethanlu126/noa/internal/world"
	"github.com/ethanlu126/noa/internal/world/gen"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		configSrc = flag.String("config", "", "config file path or go-getter URL (.json, .toml, .yaml)")
		ticks     = flag.Int("ticks", 600, "number of ticks to simulate")
		speed     = flag.Float64("speed", 0.5, "observer speed along +X in blocks per tick")
		prefetch  = flag.Int("prefetch", 0, "chunks to generate concurrently after each tick (0 = off)")
		logLevel  = flag.String("log-level", "info", "log level: debug, info, warn or error")
	)
	flag.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "chunk side length in blocks")
	flag.IntVar(&cfg.AddDistance, "add-distance", cfg.AddDistance, "load radius in chunks")
	flag.IntVar(&cfg.RemoveDistance, "remove-distance", cfg.RemoveDistance, "eviction radius in chunks")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "terrain generator: default, seeded or flat")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the seeded generator")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "prefetch workers (0 = one per CPU)")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", *logLevel)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *configSrc != "" {
		if err := loadConfig(ctx, cfg, *configSrc, log); err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
	}

	conf, err := cfg.WorldConfig(log)
	if err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	w, err := world.New(conf)
	if err != nil {
		log.Error("create world", "error", err)
		os.Exit(1)
	}

	tracker := world.NewTracker()
	w.Handle(tracker)
	w.Handle(eventLogger(log))

	if err := run(ctx, w, *ticks, *speed, *prefetch, spawnHeight(conf.Generator)); err != nil {
		log.Error("simulation stopped", "error", err)
	}

	adds, removes := w.Pending()
	s := w.Stats()
	log.Info("simulation finished",
		"loaded", w.Store().Len(),
		"tracked", tracker.Len(),
		"added", s.Added,
		"removed", s.Removed,
		"failed", s.Failed,
		"rebuilds", s.Rebuilds,
		"pendingAdds", adds,
		"pendingRemoves", removes,
		"digest", fmt.Sprintf("%016x", w.Store().Digest()),
	)
}

// loadConfig reads the config at src and merges it under the explicitly set
// flags.
func loadConfig(ctx context.Context, cfg *config.Config, src string, log *slog.Logger) error {
	path, cleanup, err := config.Resolve(ctx, src)
	if err != nil {
		return err
	}
	defer cleanup()

	fromFile := config.DefaultConfig()
	if err := config.Load(path, fromFile); err != nil {
		return err
	}
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	config.Merge(cfg, fromFile, explicit)
	log.Info("loaded config", "source", src)
	return nil
}

// run walks the observer along +X for the given number of ticks.
func run(ctx context.Context, w *world.World, ticks int, speed float64, prefetch, y int) error {
	pos := mgl64.Vec3{0.5, float64(y), 0.5}
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Tick(pos); err != nil {
			var gerr *world.GenerateError
			if !errors.As(err, &gerr) {
				return err
			}
		}
		if prefetch > 0 {
			if _, err := w.Prefetch(ctx, prefetch); errors.Is(err, context.Canceled) {
				return err
			}
		}
		pos[0] += speed
	}
	return nil
}

// spawnHeight returns the y just above the generator's surface.
func spawnHeight(g gen.Generator) int {
	if hp, ok := g.(gen.HeightProvider); ok {
		return hp.HeightAt(0, 0) + 1
	}
	return 0
}

func eventLogger(log *slog.Logger) world.Listener {
	return world.ListenerFuncs{
		Added: func(c *gen.Chunk, pos world.ChunkPos, origin gen.Origin) {
			log.Debug("chunk added", "pos", pos, "origin", origin.Vec(), "empty", c.Empty())
		},
		Changed: func(_ *gen.Chunk, pos world.ChunkPos, _ gen.Origin) {
			log.Debug("chunk changed", "pos", pos)
		},
		Removed: func(pos world.ChunkPos) {
			log.Debug("chunk removed", "pos", pos)
		},
	}
}
