package config

import (
	"fmt"
	"log/slog"

	"github.com/ethanlu126/noa/internal/world"
	"github.com/ethanlu126/noa/internal/world/gen"
)

// Generator names accepted in Config.Generator.
const (
	GeneratorDefault = "default"
	GeneratorSeeded  = "seeded"
	GeneratorFlat    = "flat"
)

// Config holds the streaming configuration.
type Config struct {
	ChunkSize        int     `json:"chunk_size" toml:"chunk_size" yaml:"chunk_size"`
	AddDistance      int     `json:"add_distance" toml:"add_distance" yaml:"add_distance"`
	RemoveDistance   int     `json:"remove_distance" toml:"remove_distance" yaml:"remove_distance"`
	Generator        string  `json:"generator" toml:"generator" yaml:"generator"` // "default", "seeded" or "flat"
	Seed             int64   `json:"seed" toml:"seed" yaml:"seed"`
	DecorationChance float64 `json:"decoration_chance" toml:"decoration_chance" yaml:"decoration_chance"`
	FlatLayers       []int   `json:"flat_layers" toml:"flat_layers" yaml:"flat_layers"` // block IDs from y=0 up
	Workers          int     `json:"workers" toml:"workers" yaml:"workers"`             // 0 = one per CPU
	CancelStaleAdds  bool    `json:"cancel_stale_adds" toml:"cancel_stale_adds" yaml:"cancel_stale_adds"`
	RetryFailed      bool    `json:"retry_failed" toml:"retry_failed" yaml:"retry_failed"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:        16,
		AddDistance:      2,
		RemoveDistance:   3,
		Generator:        GeneratorDefault,
		DecorationChance: gen.DefaultDecorationChance,
		RetryFailed:      true,
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["chunk-size"] {
		cfg.ChunkSize = fromFile.ChunkSize
	}
	if !explicitFlags["add-distance"] {
		cfg.AddDistance = fromFile.AddDistance
	}
	if !explicitFlags["remove-distance"] {
		cfg.RemoveDistance = fromFile.RemoveDistance
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	cfg.DecorationChance = fromFile.DecorationChance
	cfg.FlatLayers = append([]int(nil), fromFile.FlatLayers...)
	cfg.CancelStaleAdds = fromFile.CancelStaleAdds
	cfg.RetryFailed = fromFile.RetryFailed
}

// Validate reports the first problem with cfg. Every error wraps
// world.ErrInvalidConfig.
func (cfg *Config) Validate() error {
	if err := cfg.streaming().Validate(); err != nil {
		return err
	}
	switch cfg.Generator {
	case GeneratorDefault, GeneratorSeeded, GeneratorFlat:
	default:
		return fmt.Errorf("unknown generator %q: %w", cfg.Generator, world.ErrInvalidConfig)
	}
	if cfg.DecorationChance < 0 || cfg.DecorationChance > 1 {
		return fmt.Errorf("decoration chance %v outside [0,1]: %w", cfg.DecorationChance, world.ErrInvalidConfig)
	}
	for i, id := range cfg.FlatLayers {
		if id < 0 || id > 255 {
			return fmt.Errorf("flat layer %d has block id %d outside [0,255]: %w", i, id, world.ErrInvalidConfig)
		}
	}
	return nil
}

// NewGenerator builds the generator named by cfg.Generator.
func (cfg *Config) NewGenerator() (gen.Generator, error) {
	switch cfg.Generator {
	case GeneratorDefault:
		return gen.NewDefault(cfg.DecorationChance), nil
	case GeneratorSeeded:
		return gen.NewSeeded(cfg.Seed, cfg.DecorationChance), nil
	case GeneratorFlat:
		var layers []uint8
		if len(cfg.FlatLayers) > 0 {
			layers = make([]uint8, len(cfg.FlatLayers))
			for i, id := range cfg.FlatLayers {
				layers[i] = uint8(id)
			}
		}
		return gen.NewFlat(layers), nil
	}
	return nil, fmt.Errorf("unknown generator %q: %w", cfg.Generator, world.ErrInvalidConfig)
}

// WorldConfig validates cfg and converts it to a world.Config.
func (cfg *Config) WorldConfig(log *slog.Logger) (world.Config, error) {
	if err := cfg.Validate(); err != nil {
		return world.Config{}, err
	}
	g, err := cfg.NewGenerator()
	if err != nil {
		return world.Config{}, err
	}
	conf := cfg.streaming()
	conf.Log = log
	conf.Generator = g
	return conf, nil
}

func (cfg *Config) streaming() world.Config {
	return world.Config{
		ChunkSize:       cfg.ChunkSize,
		AddDistance:     cfg.AddDistance,
		RemoveDistance:  cfg.RemoveDistance,
		Workers:         cfg.Workers,
		CancelStaleAdds: cfg.CancelStaleAdds,
		RetryFailed:     cfg.RetryFailed,
	}
}
