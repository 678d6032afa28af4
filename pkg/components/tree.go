package components

import (
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// TreeComponent 果树
// 耐久记录在 HealthComponent 里，归零后变成树桩
type TreeComponent struct {
	Size  string // "Small" / "Large"
	Alive bool
	// FruitSlots 果实相对树左上角的位置
	FruitSlots []utils.Vec
	// Fruit 每个槽位上的果实实体，0 表示空
	Fruit      []ecs.EntityID
	FruitImage *ebiten.Image
	StumpImage *ebiten.Image
}

// FruitComponent 挂在树上的果实
type FruitComponent struct {
	Tree ecs.EntityID
	Slot int
}

// OccupiedSlots 返回挂着果实的槽位
func (t *TreeComponent) OccupiedSlots() []int {
	slots := make([]int, 0, len(t.Fruit))
	for i, f := range t.Fruit {
		if f != 0 {
			slots = append(slots, i)
		}
	}
	return slots
}
