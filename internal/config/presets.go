package config

var Presets = map[string]map[string]*Config{
	"bouncy": {
		"classic": {
			Mode: "euler", Gravity: -9.81, Scale: 300, Dt: 1.0 / 60, Duration: 10,
			Bounds: BoundsConfig{Width: 800, Height: 600},
			Spawn:  SpawnConfig{Count: 1, Pattern: "random", Mass: 10, Radius: 20, Restitution: 0.85, SpeedScale: 7},
		},
		"lively": {
			Mode: "euler", Gravity: -9.81, Scale: 300, Dt: 1.0 / 60, Duration: 15,
			Bounds: BoundsConfig{Width: 800, Height: 600},
			Spawn:  SpawnConfig{Count: 12, Pattern: "random", Mass: 10, Radius: 12, Restitution: 1.0, SpeedScale: 7},
		},
		"heavy": {
			Mode: "euler", Gravity: -9.81, Scale: 300, Dt: 1.0 / 60, Duration: 10,
			Bounds: BoundsConfig{Width: 800, Height: 600},
			Spawn:  SpawnConfig{Count: 6, Pattern: "random", Mass: 80, Radius: 35, Restitution: 0.4, SpeedScale: 7},
		},
	},
	"verlet": {
		"drift": {
			Mode: "verlet", Gravity: 0, Scale: 100, Dt: 1.0 / 60, Duration: 20,
			Bounds: BoundsConfig{Width: 800, Height: 600},
			Spawn:  SpawnConfig{Count: 20, Pattern: "ring", Mass: 5, Radius: 8, Restitution: 0.85, SpeedScale: 7, Speed: 45},
		},
		"rain": {
			Mode: "verlet", Gravity: -9.81, Scale: 100, Dt: 1.0 / 60, Duration: 20,
			Bounds: BoundsConfig{Width: 800, Height: 600},
			Spawn:  SpawnConfig{Count: 40, Pattern: "random", Mass: 5, Radius: 6, Restitution: 0.85, SpeedScale: 7},
		},
	},
	"chain": {
		"pair": {
			Mode: "verlet", Gravity: 0, Scale: 100, Dt: 1.0 / 60, Duration: 5,
			Bounds: BoundsConfig{Width: 800, Height: 600},
			Sticks: SticksConfig{Enabled: true},
			Spawn:  SpawnConfig{Count: 2, Pattern: "chain", Mass: 10, Radius: 10, Restitution: 0.85, SpeedScale: 7, Rest: 100},
		},
		"rope": {
			Mode: "verlet", Gravity: -9.81, Scale: 100, Dt: 1.0 / 60, Duration: 15,
			Bounds: BoundsConfig{Width: 800, Height: 600},
			Sticks: SticksConfig{Enabled: true},
			Spawn:  SpawnConfig{Count: 12, Pattern: "chain", Mass: 4, Radius: 6, Restitution: 0.85, SpeedScale: 7, Rest: 30},
		},
	},
	"stress": {
		"swarm": {
			Mode: "euler", Gravity: -9.81, Scale: 100, Dt: 1.0 / 120, Duration: 5,
			Bounds: BoundsConfig{Width: 800, Height: 600},
			Spawn:  SpawnConfig{Count: 500, Pattern: "random", Mass: 2, Radius: 4, Restitution: 0.9, SpeedScale: 7},
		},
	},
}

func GetPreset(category, preset string) *Config {
	categoryPresets, ok := Presets[category]
	if !ok {
		return nil
	}
	cfg, ok := categoryPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(category string) []string {
	categoryPresets, ok := Presets[category]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(categoryPresets))
	for name := range categoryPresets {
		names = append(names, name)
	}
	return names
}
