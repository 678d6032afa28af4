package components

import (
	"sort"

	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
)

// SoilFlag 土壤格子状态位
type SoilFlag uint8

const (
	SoilFarmable SoilFlag = 1 << iota // 加载时确定，之后不变
	SoilTilled
	SoilWatered
	SoilPlanted
)

// Has 是否包含全部指定状态位
func (f SoilFlag) Has(o SoilFlag) bool {
	return f&o == o
}

// SoilCell 一个可耕种格子的状态
// 不变式: WATERED 或 PLANTED 蕴含 TILLED，TILLED 蕴含 FARMABLE
// 状态位只能通过 Add/Clear 修改
type SoilCell struct {
	flags SoilFlag

	Patch ecs.EntityID // 耕地贴图实体
	Water ecs.EntityID // 浇水覆盖层实体
	Plant ecs.EntityID // 作物实体
}

// Flags 返回当前状态位
func (c *SoilCell) Flags() SoilFlag {
	return c.flags
}

// Has 是否包含指定状态位
func (c *SoilCell) Has(f SoilFlag) bool {
	return c.flags.Has(f)
}

// Add 设置状态位，违反不变式时不修改并返回 false
func (c *SoilCell) Add(f SoilFlag) bool {
	switch f {
	case SoilFarmable:
	case SoilTilled:
		if !c.flags.Has(SoilFarmable) {
			return false
		}
	case SoilWatered, SoilPlanted:
		if !c.flags.Has(SoilTilled) {
			return false
		}
	default:
		return false
	}
	c.flags |= f
	return true
}

// Clear 清除状态位
// FARMABLE 不可清除；清除 TILLED 会连带清除 WATERED 和 PLANTED
func (c *SoilCell) Clear(f SoilFlag) {
	switch f {
	case SoilFarmable:
		return
	case SoilTilled:
		c.flags &^= SoilTilled | SoilWatered | SoilPlanted
	default:
		c.flags &^= f
	}
}

// SoilGridComponent 关卡的土壤网格（稀疏，只包含可耕种格子）
type SoilGridComponent struct {
	Rows     int
	Cols     int
	TileSize int
	Cells    map[utils.TileCoord]*SoilCell
}

// NewSoilGridComponent 创建空网格
func NewSoilGridComponent(rows, cols, tileSize int) *SoilGridComponent {
	return &SoilGridComponent{
		Rows:     rows,
		Cols:     cols,
		TileSize: tileSize,
		Cells:    make(map[utils.TileCoord]*SoilCell),
	}
}

// MarkFarmable 把格子标记为可耕种（越界忽略）
func (g *SoilGridComponent) MarkFarmable(c utils.TileCoord) {
	if c.Row < 0 || c.Col < 0 || c.Row >= g.Rows || c.Col >= g.Cols {
		return
	}
	if _, ok := g.Cells[c]; ok {
		return
	}
	cell := &SoilCell{}
	cell.Add(SoilFarmable)
	g.Cells[c] = cell
}

// Cell 返回格子，不可耕种的格子返回 false
func (g *SoilGridComponent) Cell(c utils.TileCoord) (*SoilCell, bool) {
	cell, ok := g.Cells[c]
	return cell, ok
}

// CellAt 按世界坐标查找格子
func (g *SoilGridComponent) CellAt(x, y float64) (utils.TileCoord, *SoilCell, bool) {
	coord := utils.WorldToTile(x, y, g.TileSize)
	cell, ok := g.Cells[coord]
	return coord, cell, ok
}

// Coords 按行列顺序返回所有格子坐标，保证遍历顺序稳定
func (g *SoilGridComponent) Coords() []utils.TileCoord {
	coords := make([]utils.TileCoord, 0, len(g.Cells))
	for c := range g.Cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
	return coords
}
