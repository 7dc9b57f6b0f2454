package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
)

func TestFlameDamagesActorsOnItsCell(t *testing.T) {
	h := newHarness(t)
	flame := h.spawn(t, "flame", 5, 5)
	rat := h.spawn(t, "rat", 5, 5)
	bystander := h.spawn(t, "rat", 6, 5)

	d, err := flame.Decide(Input{})
	require.NoError(t, err)
	require.Equal(t, Act, d.Kind)
	d.Perform()

	dmg, ok := ecs.Get[component.Damage](h.env.World, rat.Owner)
	require.True(t, ok)
	require.Len(t, dmg.Pending, 1)
	assert.Equal(t, component.DamageEntry{Amount: 3, Kind: "fire", Source: flame.Owner}, dmg.Pending[0])
	assert.False(t, h.env.World.Has(bystander.Owner, component.CDamage))
	assert.False(t, h.env.World.Has(flame.Owner, component.CDamage))
}

func TestFlameAloneDoesNothing(t *testing.T) {
	h := newHarness(t)
	flame := h.spawn(t, "flame", 5, 5)
	d, err := flame.Decide(Input{})
	require.NoError(t, err)
	assert.Equal(t, NoAction, d.Kind)
}

func TestCloudDriftsBeforeBurning(t *testing.T) {
	h := newHarness(t)
	h.env.Tuning.CloudMoveChance = 1
	cloud := h.spawn(t, "cloud", 5, 5)

	d, err := cloud.Decide(Input{})
	require.NoError(t, err)
	require.Equal(t, Act, d.Kind)
	d.Perform()
	pos := h.pos(t, cloud)
	assert.Equal(t, 1, gamemap.Chebyshev(5, 5, pos.X, pos.Y))
}

func TestCloudPoisonsWhenStill(t *testing.T) {
	h := newHarness(t)
	h.env.Tuning.CloudMoveChance = 0
	cloud := h.spawn(t, "cloud", 5, 5)
	rat := h.spawn(t, "rat", 5, 5)

	d, err := cloud.Decide(Input{})
	require.NoError(t, err)
	d.Perform()
	assert.Equal(t, component.Position{X: 5, Y: 5}, h.pos(t, cloud))
	dmg, ok := ecs.Get[component.Damage](h.env.World, rat.Owner)
	require.True(t, ok)
	assert.Equal(t, "poison", dmg.Pending[0].Kind)
}

func TestWeatherFiresEveryPeriod(t *testing.T) {
	h := newHarness(t)
	h.env.Tuning.WeatherPeriod = 3
	h.gmap.Weather = gamemap.Weather{Active: true, Kind: "rain", Temperature: 12}
	storm := h.spawn(t, "storm", 0, 0)

	var kinds []Kind
	for range 6 {
		d, err := storm.Decide(Input{})
		require.NoError(t, err)
		kinds = append(kinds, d.Kind)
		d.Perform()
	}
	assert.Equal(t, []Kind{NoAction, NoAction, Act, NoAction, NoAction, Act}, kinds)
	eff, ok := ecs.Get[component.WeatherEffect](h.env.World, storm.Owner)
	require.True(t, ok)
	assert.Equal(t, component.WeatherEffect{Kind: "rain", Temperature: 12}, eff)
}

func TestWeatherIgnoresCalmLevel(t *testing.T) {
	h := newHarness(t)
	h.env.Tuning.WeatherPeriod = 1
	storm := h.spawn(t, "storm", 0, 0)
	d, err := storm.Decide(Input{})
	require.NoError(t, err)
	assert.Equal(t, NoAction, d.Kind)
	assert.False(t, h.env.World.Has(storm.Owner, component.CWeatherEffect))
}
