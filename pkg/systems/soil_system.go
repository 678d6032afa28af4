package systems

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 邻居掩码位：上、右、下、左
const (
	neighborTop = 1 << iota
	neighborRight
	neighborBottom
	neighborLeft
)

// patchVariants 邻居掩码 -> 耕地贴图名称
// 名称与 soil 素材目录下的文件名一致
// 下标是邻居掩码（上=1 右=2 下=4 左=8）
var patchVariants = [16]string{
	"o", "b", "l", "bl", "t", "tb", "tl", "tbr",
	"r", "br", "lr", "lrb", "tr", "tbl", "lrt", "x",
}

// PatchNames 返回全部耕地贴图名称（按邻居掩码排列）
func PatchNames() []string {
	return append([]string(nil), patchVariants[:]...)
}

// PatchVariant 根据四个邻居的耕地状态返回贴图名称
func PatchVariant(top, right, bottom, left bool) string {
	mask := 0
	if top {
		mask |= neighborTop
	}
	if right {
		mask |= neighborRight
	}
	if bottom {
		mask |= neighborBottom
	}
	if left {
		mask |= neighborLeft
	}
	return patchVariants[mask]
}

// SoilAssets 土壤相关图片
type SoilAssets struct {
	Patches map[string]*ebiten.Image // 贴图名称 -> 图片
	Water   []*ebiten.Image          // 浇水覆盖层（随机选一张）
}

// SoilSystem 土壤网格引擎
//
// 所有操作都接受世界坐标，内部按格子大小整除换算成格子坐标。
// 状态位只通过 SoilCell.Add/Clear 修改，保证 WATERED/PLANTED ⇒ TILLED ⇒ FARMABLE。
// 种植失败、重复浇水等都是正常的游戏规则，返回 false 而不是错误。
type SoilSystem struct {
	entityManager *ecs.EntityManager
	grid          *components.SoilGridComponent
	assets        SoilAssets
	species       map[string]entities.PlantSpec
	raining       bool
	rng           *rand.Rand
	logger        *log.Logger
}

// NewSoilSystem 创建土壤系统
//
// 参数:
//   - em: 实体管理器
//   - grid: 已标记可耕种格子的网格
//   - assets: 耕地贴图和浇水覆盖层
//   - species: 品种名称 -> 作物参数
//   - rng: 随机源（选择浇水覆盖层图片），为 nil 时使用固定种子
func NewSoilSystem(em *ecs.EntityManager, grid *components.SoilGridComponent, assets SoilAssets, species map[string]entities.PlantSpec, rng *rand.Rand) *SoilSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &SoilSystem{
		entityManager: em,
		grid:          grid,
		assets:        assets,
		species:       species,
		rng:           rng,
		logger:        utils.NewLogger("soil"),
	}
}

// Grid 返回土壤网格
func (s *SoilSystem) Grid() *components.SoilGridComponent {
	return s.grid
}

// Raining 当前是否在下雨
func (s *SoilSystem) Raining() bool {
	return s.raining
}

// SetRaining 设置下雨状态（日结时重新掷骰）
func (s *SoilSystem) SetRaining(raining bool) {
	s.raining = raining
}

// Till 锄地
// 格子可耕种且没有作物时设置 TILLED，并刷新自身和四邻的耕地贴图
// 下雨时新耕的地立即浇水
func (s *SoilSystem) Till(x, y float64) bool {
	coord, cell, ok := s.grid.CellAt(x, y)
	if !ok {
		s.logger.Debug("till ignored: not farmable", "row", coord.Row, "col", coord.Col)
		return false
	}
	if cell.Has(components.SoilPlanted) {
		return false
	}
	if !cell.Add(components.SoilTilled) {
		return false
	}

	s.refreshPatch(coord)
	for _, n := range coord.Neighbors4() {
		s.refreshPatch(n)
	}

	if s.raining {
		s.waterCell(coord, cell)
	}
	s.logger.Debug("tilled", "row", coord.Row, "col", coord.Col)
	return true
}

// Water 浇水，只对已耕的格子生效；重复浇水不产生新的覆盖层
func (s *SoilSystem) Water(x, y float64) bool {
	coord, cell, ok := s.grid.CellAt(x, y)
	if !ok || !cell.Has(components.SoilTilled) {
		return false
	}
	s.waterCell(coord, cell)
	return true
}

// WaterAll 给所有已耕的格子浇水（下雨天开始时）
func (s *SoilSystem) WaterAll() {
	for _, coord := range s.grid.Coords() {
		cell := s.grid.Cells[coord]
		if cell.Has(components.SoilTilled) {
			s.waterCell(coord, cell)
		}
	}
}

// RemoveWater 清除所有格子的 WATERED 并删除覆盖层
func (s *SoilSystem) RemoveWater() {
	for _, coord := range s.grid.Coords() {
		cell := s.grid.Cells[coord]
		if cell.Water != 0 {
			s.entityManager.DestroyEntity(cell.Water)
			cell.Water = 0
		}
		cell.Clear(components.SoilWatered)
	}
}

// PlantSeed 种植
// 只在已耕且未种植的格子上成功；种子库存由调用方检查和扣减
func (s *SoilSystem) PlantSeed(x, y float64, species string) bool {
	spec, ok := s.species[species]
	if !ok {
		s.logger.Warn("unknown species", "species", species)
		return false
	}
	coord, cell, ok := s.grid.CellAt(x, y)
	if !ok || !cell.Has(components.SoilTilled) || cell.Has(components.SoilPlanted) {
		return false
	}

	cell.Plant = entities.NewPlantEntity(s.entityManager, spec, coord, s.grid.TileSize)
	cell.Add(components.SoilPlanted)
	s.logger.Debug("planted", "species", species, "row", coord.Row, "col", coord.Col)
	return true
}

// UpdatePlants 日结时调用：已浇水格子上的作物生长一个阶段（不超过最大阶段）
func (s *SoilSystem) UpdatePlants() {
	grown := 0
	for _, coord := range s.grid.Coords() {
		cell := s.grid.Cells[coord]
		if !cell.Has(components.SoilPlanted) || !cell.Has(components.SoilWatered) {
			continue
		}
		plant, ok := ecs.GetComponent[*components.PlantComponent](s.entityManager, cell.Plant)
		if !ok {
			continue
		}
		if plant.Stage < plant.MaxStage {
			plant.Stage++
			grown++
		}
		entities.ApplyPlantStage(s.entityManager, cell.Plant, s.grid.TileSize)
	}
	s.logger.Debug("plants updated", "grown", grown)
}

// ClearPlanted 作物被收获后清除 PLANTED，TILLED 保留以便直接补种
func (s *SoilSystem) ClearPlanted(coord utils.TileCoord) {
	cell, ok := s.grid.Cell(coord)
	if !ok {
		return
	}
	cell.Clear(components.SoilPlanted)
	cell.Plant = 0
}

// IsWatered 世界坐标所在格子是否已浇水
func (s *SoilSystem) IsWatered(x, y float64) bool {
	_, cell, ok := s.grid.CellAt(x, y)
	return ok && cell.Has(components.SoilWatered)
}

// Flags 返回格子状态位，不可耕种的格子返回 0
func (s *SoilSystem) Flags(coord utils.TileCoord) components.SoilFlag {
	cell, ok := s.grid.Cell(coord)
	if !ok {
		return 0
	}
	return cell.Flags()
}

// FarmableRects 所有可耕种格子的世界矩形（调试绘制用）
func (s *SoilSystem) FarmableRects() []utils.Rect {
	coords := s.grid.Coords()
	rects := make([]utils.Rect, 0, len(coords))
	for _, c := range coords {
		rects = append(rects, utils.TileRect(c, s.grid.TileSize))
	}
	return rects
}

func (s *SoilSystem) tilled(coord utils.TileCoord) bool {
	cell, ok := s.grid.Cell(coord)
	return ok && cell.Has(components.SoilTilled)
}

// refreshPatch 按四邻状态更新格子的耕地贴图，未耕的格子不处理
func (s *SoilSystem) refreshPatch(coord utils.TileCoord) {
	cell, ok := s.grid.Cell(coord)
	if !ok || !cell.Has(components.SoilTilled) {
		return
	}
	variant := PatchVariant(
		s.tilled(coord.Up()),
		s.tilled(coord.Right()),
		s.tilled(coord.Down()),
		s.tilled(coord.Left()),
	)
	img := s.assets.Patches[variant]

	if cell.Patch != 0 {
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, cell.Patch); ok {
			sprite.Image = img
		}
		return
	}
	cell.Patch = entities.NewSoilPatchEntity(s.entityManager, img, coord, s.grid.TileSize)
}

func (s *SoilSystem) waterCell(coord utils.TileCoord, cell *components.SoilCell) {
	if !cell.Add(components.SoilWatered) {
		return
	}
	if cell.Water != 0 {
		return
	}
	var img *ebiten.Image
	if n := len(s.assets.Water); n > 0 {
		img = s.assets.Water[s.rng.Intn(n)]
	}
	cell.Water = entities.NewWaterOverlayEntity(s.entityManager, img, coord, s.grid.TileSize)
}
