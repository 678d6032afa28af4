package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryCopiesInitialCounts(t *testing.T) {
	seeds := map[string]int{"corn": 5}
	inv := NewInventory(nil, seeds, 10)
	inv.ConsumeSeed("corn")
	assert.Equal(t, 5, seeds["corn"], "initial map must not be shared")
	assert.Equal(t, 4, inv.Seeds["corn"])
}

func TestInventoryConsumeSeed(t *testing.T) {
	inv := NewInventory(nil, map[string]int{"corn": 1}, 0)
	assert.True(t, inv.ConsumeSeed("corn"))
	assert.False(t, inv.ConsumeSeed("corn"))
	assert.False(t, inv.ConsumeSeed("tomato"))
	assert.Equal(t, 0, inv.Seeds["corn"])
}

func TestInventorySellAndBuy(t *testing.T) {
	inv := NewInventory(map[string]int{"wood": 1}, nil, 3)

	assert.True(t, inv.Sell("wood", 4))
	assert.Equal(t, 7, inv.Money)
	assert.False(t, inv.Sell("wood", 4), "nothing left to sell")

	assert.True(t, inv.Buy("tomato", 5))
	assert.Equal(t, 2, inv.Money)
	assert.Equal(t, 1, inv.Seeds["tomato"])
	assert.False(t, inv.Buy("tomato", 5), "not enough money")
	assert.Equal(t, 2, inv.Money)
}
