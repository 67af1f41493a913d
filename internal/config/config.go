package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGravity     = -9.81
	DefaultScale       = 100.0
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultDt          = 1.0 / 60.0
	DefaultDuration    = 10.0
	DefaultMass        = 10.0
	DefaultRadius      = 20.0
	DefaultRestitution = 0.85
	DefaultSpeedScale  = 7.0
	DefaultSpeed       = 60.0
	DefaultRest        = 60.0
)

type Config struct {
	Mode     string        `yaml:"mode"`
	Gravity  float32       `yaml:"gravity"`
	Scale    float32       `yaml:"scale"`
	Bounds   BoundsConfig  `yaml:"bounds"`
	Dt       float32       `yaml:"dt"`
	Duration float32       `yaml:"duration"`
	Sticks   SticksConfig  `yaml:"sticks"`
	Spawn    SpawnConfig   `yaml:"spawn"`
	Metrics  []string      `yaml:"metrics"`
	Logging  LoggingConfig `yaml:"logging"`
}

type BoundsConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type SticksConfig struct {
	Enabled bool `yaml:"enabled"`
}

type SpawnConfig struct {
	Count       int     `yaml:"count"`
	Pattern     string  `yaml:"pattern"`
	Mass        float32 `yaml:"mass"`
	Radius      float32 `yaml:"radius"`
	Restitution float32 `yaml:"restitution"`
	SpeedScale  float32 `yaml:"speed_scale"`
	Speed       float32 `yaml:"speed"`
	Rest        float32 `yaml:"rest"`
	Seed        int64   `yaml:"seed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:     "euler",
		Gravity:  DefaultGravity,
		Scale:    DefaultScale,
		Bounds:   BoundsConfig{Width: DefaultWidth, Height: DefaultHeight},
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Spawn: SpawnConfig{
			Count:       1,
			Pattern:     "random",
			Mass:        DefaultMass,
			Radius:      DefaultRadius,
			Restitution: DefaultRestitution,
			SpeedScale:  DefaultSpeedScale,
			Speed:       DefaultSpeed,
			Rest:        DefaultRest,
		},
		Metrics: []string{"kinetic_energy", "containment"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
