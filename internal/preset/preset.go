// Package preset loads brain presets and actor shapes from YAML. A default
// set is embedded; a file can override or extend it.
package preset

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"roguemind/internal/filter"
)

// ErrUnknownPreset is returned for a brain or shape name with no entry.
var ErrUnknownPreset = errors.New("preset: unknown preset")

//go:embed defaults.yaml
var defaultsYAML []byte

// Kind selects a brain's policy.
type Kind string

const (
	KindInert   Kind = "inert"
	KindGoal    Kind = "goal"
	KindFlame   Kind = "flame"
	KindCloud   Kind = "cloud"
	KindWeather Kind = "weather"
	KindSpawner Kind = "spawner"
	KindPlayer  Kind = "player"
)

// Sentient reports whether brains of this kind carry a memory.
func (k Kind) Sentient() bool { return k == KindGoal || k == KindPlayer }

// Brain configures one brain type.
type Brain struct {
	Kind               Kind               `yaml:"kind"`
	Evaluators         []string           `yaml:"evaluators,omitempty"`
	Bias               map[string]float64 `yaml:"bias,omitempty"`
	CastingProbability float64            `yaml:"castingProbability,omitempty"`
	Spawn              *Spawn             `yaml:"spawn,omitempty"`
}

// Spawn tunes a spawner. Zero chance or budget fall back to the config.
type Spawn struct {
	Chance    float64    `yaml:"chance,omitempty"`
	Budget    int        `yaml:"budget,omitempty"`
	Placement filter.Set `yaml:"placement,omitempty"`
	Creation  filter.Set `yaml:"creation,omitempty"`
}

// Shape describes an actor the factory can build.
type Shape struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Glyph       string    `yaml:"glyph"`
	Color       string    `yaml:"color,omitempty"`
	HP          int       `yaml:"hp,omitempty"`
	Attack      int       `yaml:"attack,omitempty"`
	Defense     int       `yaml:"defense,omitempty"`
	Range       int       `yaml:"range,omitempty"`
	Shield      int       `yaml:"shield,omitempty"`
	Sight       int       `yaml:"sight,omitempty"`
	Brain       string    `yaml:"brain"`
	Hostile     []string  `yaml:"hostile,omitempty"`
	Group       string    `yaml:"group,omitempty"`
	EnemyGroups []string  `yaml:"enemyGroups,omitempty"`
	Flying      bool      `yaml:"flying,omitempty"`
	Ethereal    bool      `yaml:"ethereal,omitempty"`
	Virtual     bool      `yaml:"virtual,omitempty"`
	Damaging    *Damaging `yaml:"damaging,omitempty"`
	Abilities   []string  `yaml:"abilities,omitempty"`
	Ranged      *Ranged   `yaml:"ranged,omitempty"`
	Items       []Item    `yaml:"items,omitempty"`
	Spawnable   bool      `yaml:"spawnable,omitempty"`
}

type Damaging struct {
	Amount int    `yaml:"amount"`
	Kind   string `yaml:"kind"`
}

type Ranged struct {
	Name   string `yaml:"name"`
	Range  int    `yaml:"range"`
	Damage int    `yaml:"damage"`
}

type Item struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Heal  int    `yaml:"heal,omitempty"`
	Value int    `yaml:"value,omitempty"`
}

// Set is a parsed preset file.
type Set struct {
	Brains map[string]Brain `yaml:"brains"`
	Shapes map[string]Shape `yaml:"shapes"`
}

// Parse decodes and validates a preset document.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if s.Brains == nil {
		s.Brains = make(map[string]Brain)
	}
	if s.Shapes == nil {
		s.Shapes = make(map[string]Shape)
	}
	for name, b := range s.Brains {
		switch b.Kind {
		case KindInert, KindGoal, KindFlame, KindCloud, KindWeather, KindSpawner, KindPlayer:
		default:
			return nil, fmt.Errorf("brain %q: unknown kind %q", name, b.Kind)
		}
	}
	return &s, nil
}

// Defaults returns the embedded preset set.
func Defaults() (*Set, error) {
	return Parse(defaultsYAML)
}

// Load returns the defaults overlaid with the presets in path. An empty
// path returns the defaults.
func Load(path string) (*Set, error) {
	base, err := Defaults()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	extra, err := Parse(data)
	if err != nil {
		return nil, err
	}
	maps.Copy(base.Brains, extra.Brains)
	maps.Copy(base.Shapes, extra.Shapes)
	if err := base.check(); err != nil {
		return nil, err
	}
	return base, nil
}

// check makes sure every shape names a known brain.
func (s *Set) check() error {
	for name, sh := range s.Shapes {
		if _, ok := s.Brains[sh.Brain]; !ok {
			return fmt.Errorf("shape %q brain %q: %w", name, sh.Brain, ErrUnknownPreset)
		}
	}
	return nil
}

func (s *Set) Brain(name string) (Brain, error) {
	b, ok := s.Brains[name]
	if !ok {
		return Brain{}, fmt.Errorf("brain %q: %w", name, ErrUnknownPreset)
	}
	return b, nil
}

func (s *Set) Shape(name string) (Shape, error) {
	sh, ok := s.Shapes[name]
	if !ok {
		return Shape{}, fmt.Errorf("shape %q: %w", name, ErrUnknownPreset)
	}
	return sh, nil
}

// ShapeNames returns every shape key, sorted.
func (s *Set) ShapeNames() []string {
	return slices.Sorted(maps.Keys(s.Shapes))
}
