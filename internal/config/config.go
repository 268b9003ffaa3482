// Package config loads runner configuration for the headless simulation
// tools: defaults first, then an optional YAML file on top. Core simulation
// components never read configuration themselves; they receive plain values.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full runner configuration tree.
type Config struct {
	World      WorldConfig      `mapstructure:"world"`
	Fog        FogConfig        `mapstructure:"fog"`
	Production ProductionConfig `mapstructure:"production"`
	AI         AIConfig         `mapstructure:"ai"`
	Log        LogConfig        `mapstructure:"log"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// WorldConfig sets the arena extents, centred on the origin.
type WorldConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// FogConfig sets the visibility grid cell edge in world units.
type FogConfig struct {
	CellSize float64 `mapstructure:"cell_size"`
}

// ProductionConfig bounds per-base build queues.
type ProductionConfig struct {
	QueueCapacity int `mapstructure:"queue_capacity"`
}

// AIConfig tunes the enemy reinforcement controller.
type AIConfig struct {
	WaveInterval  float64 `mapstructure:"wave_interval"`  // seconds
	InitialDelay  float64 `mapstructure:"initial_delay"`  // seconds
	ShipCap       int     `mapstructure:"ship_cap"`
	StagingX      float64 `mapstructure:"staging_x"`
	StagingY      float64 `mapstructure:"staging_y"`
	StagingRadius float64 `mapstructure:"staging_radius"`
}

// LogConfig controls console logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TelemetryConfig points the optional run recorder at a SQLite file.
// An empty DSN disables recording.
type TelemetryConfig struct {
	DSN string `mapstructure:"dsn"`
}

// Load returns defaults merged with the YAML file at path. An empty path
// loads pure defaults; a missing explicit file is an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("world.width", 4800.0)
	v.SetDefault("world.height", 3200.0)
	v.SetDefault("fog.cell_size", 120.0)
	v.SetDefault("production.queue_capacity", 10)
	v.SetDefault("ai.wave_interval", 30.0)
	v.SetDefault("ai.initial_delay", 8.0)
	v.SetDefault("ai.ship_cap", 10)
	v.SetDefault("ai.staging_x", 2900.0)
	v.SetDefault("ai.staging_y", 0.0)
	v.SetDefault("ai.staging_radius", 160.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("telemetry.dsn", "")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return errors.New("config: world dimensions must be positive")
	}
	if c.AI.WaveInterval <= 0 {
		return errors.New("config: ai.wave_interval must be positive")
	}
	if c.Production.QueueCapacity <= 0 {
		return errors.New("config: production.queue_capacity must be positive")
	}
	return nil
}
