package brain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roguemind/internal/actor"
	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/memory"
	"roguemind/internal/preset"
)

func TestCreateSeedsMemoryFromShape(t *testing.T) {
	h := newHarness(t)
	captain := h.spawn(t, "captain", 3, 3)
	soldier := h.spawn(t, "soldier", 4, 3)
	gob := h.spawn(t, "goblin", 8, 3)

	mem := captain.Memory()
	assert.Equal(t, []string{"goblin", "player"}, mem.EnemyTypes())
	assert.True(t, mem.IsFriend(soldier.Actor()))
	assert.True(t, mem.IsEnemy(gob.Actor()))
	assert.Equal(t, preset.KindGoal, captain.Kind)
	assert.Equal(t, "commander", captain.Type)
}

func TestCreateRequiresAI(t *testing.T) {
	h := newHarness(t)
	_, err := h.reg.Create(h.env.World.CreateEntity())
	assert.Error(t, err)
}

func TestCreateUnknownType(t *testing.T) {
	h := newHarness(t)
	_, err := h.reg.CreateType(h.env.World.CreateEntity(), "nobody")
	assert.ErrorIs(t, err, preset.ErrUnknownPreset)
}

func TestPruneDropsDestroyedEntities(t *testing.T) {
	h := newHarness(t)
	g := h.spawn(t, "goblin", 3, 3)
	r := h.spawn(t, "rat", 5, 5)
	require.NoError(t, h.env.World.DestroyEntity(r.Owner))

	assert.Equal(t, []ecs.EntityID{r.Owner}, h.reg.Prune())
	_, ok := h.reg.Get(r.Owner)
	assert.False(t, ok)
	_, ok = h.reg.Get(g.Owner)
	assert.True(t, ok)
	assert.Equal(t, 1, h.reg.Len())
}

func TestIssueRules(t *testing.T) {
	h := newHarness(t)
	p := h.spawn(t, "player", 2, 2)
	s := h.spawn(t, "soldier", 3, 3)
	flame := h.spawn(t, "flame", 4, 4)

	assert.False(t, h.reg.Issue(p.Owner, Order{Kind: OrderWait}), "the player takes no orders")
	assert.False(t, h.reg.Issue(flame.Owner, Order{Kind: OrderWait}), "hazards take no orders")
	assert.False(t, h.reg.Issue(s.Owner, Order{Kind: OrderAttack, Target: s.Owner}))
	assert.True(t, h.reg.Issue(s.Owner, Order{Kind: OrderFollow, Target: p.Owner, Issuer: p.Owner}))
	o, ok := s.Order()
	require.True(t, ok)
	assert.Equal(t, OrderFollow, o.Kind)
	assert.Equal(t, "follow", o.Kind.String())
}

func TestAttackedMakesAttackerAnEnemy(t *testing.T) {
	h := newHarness(t)
	v := h.spawn(t, "villager", 3, 3)
	s := h.spawn(t, "soldier", 4, 3)
	h.reg.Attacked(v.Owner, s.Actor())
	assert.True(t, v.Memory().IsEnemy(s.Actor()))
	assert.Equal(t, "villager", actor.New(h.env.World, v.Owner).Name())
}

func TestPlayerLookup(t *testing.T) {
	h := newHarness(t)
	h.spawn(t, "goblin", 3, 3)
	_, ok := h.reg.Player()
	assert.False(t, ok)
	p := h.spawn(t, "player", 5, 5)
	got, ok := h.reg.Player()
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestBrainJSONRoundTrip(t *testing.T) {
	h := newHarness(t)
	p := h.spawn(t, "player", 5, 5)
	g := h.spawn(t, "goblin", 7, 7)
	p.Memory().AddEnemy(g.Actor())
	p.Memory().SetLastAttacked(g.Owner)
	p.Memory().AddSeen(g.Owner, memory.Location{X: 7, Y: 7, Level: 0})
	pp, _ := p.PlayerPolicy()
	pp.Marks().AddMark(0, 5, 5, "camp")

	data, err := json.Marshal(p)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"player"`, string(raw["type"]))
	assert.Contains(t, raw, "memory")
	assert.Contains(t, raw, "marks")

	other := h.spawn(t, "player", 1, 1)
	require.NoError(t, other.Restore(data))
	assert.Equal(t, p.Memory().Enemies(), other.Memory().Enemies())
	id, ok := other.Memory().LastAttackedID()
	require.True(t, ok)
	assert.Equal(t, g.Owner, id)
	op, _ := other.PlayerPolicy()
	assert.Equal(t, pp.Marks().Marks(0), op.Marks().Marks(0))
}

func TestRestoreRejectsOtherType(t *testing.T) {
	h := newHarness(t)
	g := h.spawn(t, "goblin", 3, 3)
	data, err := json.Marshal(g)
	require.NoError(t, err)
	rat := h.spawn(t, "rat", 5, 5)
	assert.Error(t, rat.Restore(data))
}

func TestSpawnerBudgetSurvivesSnapshot(t *testing.T) {
	h := newHarness(t)
	b := h.spawner(t, nil)
	b.Policy().(*Spawner).Budget = 3
	data, err := json.Marshal(b)
	require.NoError(t, err)

	fresh := h.spawner(t, nil)
	require.NoError(t, fresh.Restore(data))
	budget, ok := fresh.SpawnBudget()
	require.True(t, ok)
	assert.Equal(t, 3, budget)
	assert.False(t, fresh.Actor().Has(component.CPosition))
}
