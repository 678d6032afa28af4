package components

import (
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlantComponent 作物
// 由 PLANTED 格子一对一拥有，每次日结时若格子已浇水则生长一个阶段
type PlantComponent struct {
	Species     string
	Stage       int
	MaxStage    int
	Harvestable bool
	Cell        utils.TileCoord

	// Frames 各阶段图片，数量不足时用缩放表现生长
	Frames []*ebiten.Image
	// YOffset 图片底部相对格子底边的偏移
	YOffset float64
}
