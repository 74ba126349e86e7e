package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Bounds: BoundsConfig{
			Min: Vec{-40, -20, -40},
			Max: Vec{40, 20, 10},
		},
		Player: PlayerConfig{
			Position:     &Vec{0, -5, 0},
			Size:         &Vec{1, 1, 1},
			Scale:        7,
			ShootDelayMs: 100,
			Color:        "cyan",
		},
		Projectiles: ProjectileConfig{
			Capacity: 100,
			Scale:    10,
			Size:     Vec{0.1, 0.5, 0.1},
			Speed:    1,
			Damage:   1,
			Collider: &ColliderConfig{Shape: "point"},
		},
		Timer: TimerConfig{
			TimeLeftIntervalMs: 500,
		},
		MaxObjects: 100,
	}
}

// GetDefaultYAML returns the embedded default engine YAML.
func GetDefaultYAML() []byte {
	return defaultEngineYAML
}
