// Package config loads roguemind.yaml through viper and exposes the tuning
// values brains and the sandbox read.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Tuning is the typed view of the loaded configuration.
type Tuning struct {
	FOVRadius         int
	EnemyBox          int // half-width of the fast enemy scan box
	CloudMoveChance   float64
	WeatherPeriod     int
	SpawnChance       float64
	SpawnBudget       int
	CasterProbability float64
	Seed              string
	SnapshotPath      string
	PresetsFile       string
	LogLevel          string
}

var defaults = map[string]any{
	"logLevel": "info",

	"fov.radius":       8,
	"brain.enemyBox":   2,
	"cloud.moveChance": 0.2,
	"weather.period":   50,

	"spawner.chance":     0.05,
	"spawner.budget":     20,
	"caster.probability": 0.8,
	"sandbox.seed":       "roguemind",
	"snapshot.path":      "",
	"presets.file":       "",
}

func setDefaults(v *viper.Viper) {
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
}

// Load sets default values and reads roguemind.yaml from configDir.
// Defaults stay in effect when the file is missing; the error says so.
func Load(configDir string) error {
	setDefaults(viper.GetViper())

	viper.SetConfigName("roguemind")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Current returns the tuning values from viper's global state.
func Current() Tuning {
	return fromViper(viper.GetViper())
}

// Defaults returns the tuning values with no config file applied.
func Defaults() Tuning {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) Tuning {
	return Tuning{
		FOVRadius:         v.GetInt("fov.radius"),
		EnemyBox:          v.GetInt("brain.enemyBox"),
		CloudMoveChance:   v.GetFloat64("cloud.moveChance"),
		WeatherPeriod:     v.GetInt("weather.period"),
		SpawnChance:       v.GetFloat64("spawner.chance"),
		SpawnBudget:       v.GetInt("spawner.budget"),
		CasterProbability: v.GetFloat64("caster.probability"),
		Seed:              v.GetString("sandbox.seed"),
		SnapshotPath:      v.GetString("snapshot.path"),
		PresetsFile:       v.GetString("presets.file"),
		LogLevel:          v.GetString("logLevel"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}
