package preset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roguemind/internal/filter"
)

func TestDefaultsParse(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)
	require.NoError(t, s.check())

	for _, name := range []string{"inert", "player", "goal-oriented", "spellcaster", "thief",
		"commander", "animal", "human", "flame", "cloud", "weather", "spawner"} {
		_, err := s.Brain(name)
		assert.NoError(t, err, name)
	}

	caster, err := s.Brain("spellcaster")
	require.NoError(t, err)
	assert.Equal(t, KindGoal, caster.Kind)
	assert.Equal(t, 1.5, caster.Bias["castspell"])
	assert.Equal(t, 0.8, caster.CastingProbability)
	assert.Equal(t, "castspell", caster.Evaluators[0])

	sp, err := s.Brain("spawner")
	require.NoError(t, err)
	require.NotNil(t, sp.Spawn)
	assert.Len(t, sp.Spawn.Placement, 2)
	assert.Equal(t, filter.Gte, sp.Spawn.Placement[0].Op)

	player, err := s.Shape("player")
	require.NoError(t, err)
	require.NotNil(t, player.Ranged)
	assert.Equal(t, 6, player.Ranged.Range)
	assert.Len(t, player.Items, 2)
}

func TestUnknownPreset(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)

	_, err = s.Brain("dragon")
	assert.True(t, errors.Is(err, ErrUnknownPreset))
	_, err = s.Shape("dragon")
	assert.True(t, errors.Is(err, ErrUnknownPreset))
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := Parse([]byte("brains:\n  odd:\n    kind: psychic\n"))
	assert.Error(t, err)
}

func TestKindSentient(t *testing.T) {
	assert.True(t, KindGoal.Sentient())
	assert.True(t, KindPlayer.Sentient())
	assert.False(t, KindFlame.Sentient())
	assert.False(t, KindSpawner.Sentient())
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	doc := `
brains:
  goal-oriented:
    kind: goal
    evaluators: [attack, flee, explore]
shapes:
  ogre:
    name: ogre
    type: giant
    glyph: "O"
    hp: 30
    brain: goal-oriented
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	b, err := s.Brain("goal-oriented")
	require.NoError(t, err)
	assert.Equal(t, []string{"attack", "flee", "explore"}, b.Evaluators)
	assert.Contains(t, s.ShapeNames(), "ogre")
	assert.Contains(t, s.ShapeNames(), "goblin", "defaults stay")
}

func TestLoadRejectsShapeWithUnknownBrain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shapes:\n  imp:\n    name: imp\n    brain: nope\n"), 0644))

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrUnknownPreset))
}

func TestLoadEmptyPathIsDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Contains(t, s.ShapeNames(), "goblin")
}
