package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTree(em *ecs.EntityManager, health int) ecs.EntityID {
	return entities.NewTreeEntity(em, entities.TreeSpec{
		Size:       "Large",
		X:          100,
		Y:          100,
		Width:      100,
		Height:     160,
		FruitSlots: []utils.Vec{{X: 10, Y: 10}, {X: 40, Y: 30}, {X: 60, Y: 50}},
		Health:     health,
	})
}

func TestTreeRegrowFruit(t *testing.T) {
	em := ecs.NewEntityManager()
	id := newTestTree(em, 5)
	tree, _ := ecs.GetComponent[*components.TreeComponent](em, id)

	NewTreeSystem(em, 0, "apple", "wood", nil, nil).RegrowFruit()
	assert.Empty(t, tree.OccupiedSlots(), "chance 0 grows nothing")

	ts := NewTreeSystem(em, 1, "apple", "wood", nil, nil)
	ts.RegrowFruit()
	require.Len(t, tree.OccupiedSlots(), 3)

	fruit := tree.Fruit[1]
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, fruit)
	assert.Equal(t, 140.0, pos.X)
	assert.Equal(t, 130.0, pos.Y)
	fc, _ := ecs.GetComponent[*components.FruitComponent](em, fruit)
	assert.Equal(t, id, fc.Tree)

	// 再次结果时旧果实被替换
	ts.RegrowFruit()
	assert.True(t, em.IsPendingDestroy(fruit))
	assert.NotEqual(t, fruit, tree.Fruit[1])
}

func TestTreeRegrowFruitProbability(t *testing.T) {
	em := ecs.NewEntityManager()
	slots := make([]utils.Vec, 1000)
	id := entities.NewTreeEntity(em, entities.TreeSpec{Width: 10, Height: 10, FruitSlots: slots, Health: 1})
	tree, _ := ecs.GetComponent[*components.TreeComponent](em, id)

	NewTreeSystem(em, 0.2, "apple", "wood", rand.New(rand.NewSource(11)), nil).RegrowFruit()
	n := len(tree.OccupiedSlots())
	assert.InDelta(t, 200, n, 60)
}

func TestTreeDamageAndFell(t *testing.T) {
	em := ecs.NewEntityManager()
	id := newTestTree(em, 2)
	sound := &recordingSound{}
	ts := NewTreeSystem(em, 1, "apple", "wood", nil, sound)
	ts.RegrowFruit()
	inv := components.NewInventory(nil, nil, 0)

	tree, _ := ecs.GetComponent[*components.TreeComponent](em, id)
	ts.Damage(id, inv)
	assert.Equal(t, 1, inv.Items["apple"])
	assert.Len(t, tree.OccupiedSlots(), 2)
	assert.True(t, tree.Alive)

	ts.Damage(id, inv)
	assert.False(t, tree.Alive)
	assert.Equal(t, 2, inv.Items["apple"])
	assert.Equal(t, 1, inv.Items["wood"])
	assert.Empty(t, tree.OccupiedSlots(), "stumps carry no fruit")
	assert.Equal(t, 1, sound.count(SoundSuccess))

	// 树桩底边不变，仍然阻挡移动
	rect, _ := VisualRect(em, id)
	assert.Equal(t, 260.0, rect.Bottom())
	assert.True(t, hasCapability(em, id, components.CapCollidable))
	_, found := ts.TreeAt(150, 250)
	assert.False(t, found, "stumps cannot be chopped again")

	// 树桩不再结果，再砍也没有收益
	ts.RegrowFruit()
	assert.Empty(t, tree.OccupiedSlots())
	ts.Damage(id, inv)
	assert.Equal(t, 1, inv.Items["wood"])
}

func TestTreeAt(t *testing.T) {
	em := ecs.NewEntityManager()
	id := newTestTree(em, 5)
	ts := NewTreeSystem(em, 0, "apple", "wood", nil, nil)

	got, ok := ts.TreeAt(150, 150)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = ts.TreeAt(10, 10)
	assert.False(t, ok)
}
