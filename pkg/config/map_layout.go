package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrLayerMissing 主图层和备用图层都不存在
	ErrLayerMissing = errors.New("map layer missing")
	// ErrSpawnMissing 出生点对象不存在
	ErrSpawnMissing = errors.New("spawn point missing")
)

// 地图图层名称
const (
	MapLayerHouseFloor      = "HouseFloor"
	MapLayerHouseFurnBottom = "HouseFurnitureBottom"
	MapLayerHouseWalls      = "HouseWalls"
	MapLayerHouseFurnTop    = "HouseFurnitureTop"
	MapLayerFence           = "Fence"
	MapLayerFenceAlt        = "Fences"
	MapLayerWater           = "Water"
	MapLayerCollision       = "Collision"
	MapLayerCollisionAlt    = "Collision2"
	MapLayerFarmable        = "Farmable"
	MapObjectsTrees         = "Trees"
	MapObjectsDecoration    = "Decoration"
	MapObjectsPlayer        = "Player"
	MapObjectStart          = "Start"
	MapObjectSpawn          = "Spawn"
	MapObjectBed            = "Bed"
	MapObjectTrader         = "Trader"
)

// MapLayout 一张地图的静态布局（data/maps/*.yaml）
// 只在关卡首次构建时读取，运行时的可变状态保存在关卡里
type MapLayout struct {
	ID     string `yaml:"id" validate:"required"`
	Width  int    `yaml:"width" validate:"gt=0"`  // 格子数
	Height int    `yaml:"height" validate:"gt=0"` // 格子数
	// Ground 整张地面图片（左上角对齐世界原点），可为空
	Ground       string        `yaml:"ground"`
	TileLayers   []TileLayer   `yaml:"tileLayers" validate:"dive"`
	ObjectLayers []ObjectLayer `yaml:"objectLayers" validate:"dive"`
}

// TileLayer 按格子放置图片的图层
type TileLayer struct {
	Name string `yaml:"name" validate:"required"`
	// Z 覆盖默认渲染层（如 "main"），为空时按图层名称推断
	Z     string          `yaml:"z" validate:"layer"`
	Tiles []TilePlacement `yaml:"tiles" validate:"dive"`
	Areas []TileArea      `yaml:"areas" validate:"dive"`
}

// TilePlacement 单个格子
type TilePlacement struct {
	Row   int    `yaml:"row" validate:"gte=0"`
	Col   int    `yaml:"col" validate:"gte=0"`
	Image string `yaml:"image"`
}

// TileArea 用同一张图片填满的矩形区域
type TileArea struct {
	Row   int    `yaml:"row" validate:"gte=0"`
	Col   int    `yaml:"col" validate:"gte=0"`
	Rows  int    `yaml:"rows" validate:"gt=0"`
	Cols  int    `yaml:"cols" validate:"gt=0"`
	Image string `yaml:"image"`
}

// ObjectLayer 自由放置对象的图层
type ObjectLayer struct {
	Name    string      `yaml:"name" validate:"required"`
	Objects []MapObject `yaml:"objects" validate:"dive"`
}

// MapObject 对象：像素位置、尺寸和名称
type MapObject struct {
	Name   string  `yaml:"name" validate:"required"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width" validate:"gte=0"`
	Height float64 `yaml:"height" validate:"gte=0"`
	Image  string  `yaml:"image"`
}

// LoadMapLayout 从文件加载地图布局
func LoadMapLayout(path string) (*MapLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map layout %s: %w", path, err)
	}
	layout, err := ParseMapLayout(data)
	if err != nil {
		return nil, fmt.Errorf("map layout %s: %w", path, err)
	}
	return layout, nil
}

// ParseMapLayout 解析并校验地图布局
func ParseMapLayout(data []byte) (*MapLayout, error) {
	var layout MapLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse map layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Validate 校验布局
// 除结构体标签外，还检查每个格子都落在地图范围内
func (m *MapLayout) Validate() error {
	if err := validateStruct(m); err != nil {
		return fmt.Errorf("invalid map layout: %w", err)
	}
	for _, tl := range m.TileLayers {
		for _, c := range tl.Cells() {
			if c.Row >= m.Height || c.Col >= m.Width {
				return fmt.Errorf("invalid map layout: layer %q tile (%d,%d) outside %dx%d",
					tl.Name, c.Row, c.Col, m.Width, m.Height)
			}
		}
	}
	return nil
}

// WorldSize 返回地图的像素尺寸
func (m *MapLayout) WorldSize(tileSize int) (float64, float64) {
	return float64(m.Width * tileSize), float64(m.Height * tileSize)
}

// TileLayer 按名称查找格子图层
func (m *MapLayout) TileLayer(name string) (*TileLayer, bool) {
	for i := range m.TileLayers {
		if m.TileLayers[i].Name == name {
			return &m.TileLayers[i], true
		}
	}
	return nil, false
}

// TileLayerWithFallback 查找图层，不存在时尝试备用名称
// 两者都不存在时返回 ErrLayerMissing
func (m *MapLayout) TileLayerWithFallback(primary, fallback string) (*TileLayer, error) {
	if tl, ok := m.TileLayer(primary); ok {
		return tl, nil
	}
	if tl, ok := m.TileLayer(fallback); ok {
		return tl, nil
	}
	return nil, fmt.Errorf("%w: %q (fallback %q) in map %q", ErrLayerMissing, primary, fallback, m.ID)
}

// ObjectLayer 按名称查找对象图层
func (m *MapLayout) ObjectLayer(name string) (*ObjectLayer, bool) {
	for i := range m.ObjectLayers {
		if m.ObjectLayers[i].Name == name {
			return &m.ObjectLayers[i], true
		}
	}
	return nil, false
}

// FindObject 在对象图层中按名称查找第一个匹配的对象
// names 按优先级排列（如 Start 优先于 Spawn）
func (m *MapLayout) FindObject(layer string, names ...string) (MapObject, error) {
	ol, ok := m.ObjectLayer(layer)
	if !ok {
		return MapObject{}, fmt.Errorf("%w: object layer %q in map %q", ErrLayerMissing, layer, m.ID)
	}
	for _, name := range names {
		for _, obj := range ol.Objects {
			if obj.Name == name {
				return obj, nil
			}
		}
	}
	return MapObject{}, fmt.Errorf("%w: %v in map %q", ErrSpawnMissing, names, m.ID)
}

// TileCell 展开后的单个格子
type TileCell struct {
	Row, Col int
	Image    string
}

// Cells 展开图层中的全部格子（单格 + 区域）
func (tl *TileLayer) Cells() []TileCell {
	cells := make([]TileCell, 0, len(tl.Tiles))
	for _, t := range tl.Tiles {
		cells = append(cells, TileCell{Row: t.Row, Col: t.Col, Image: t.Image})
	}
	for _, a := range tl.Areas {
		for r := a.Row; r < a.Row+a.Rows; r++ {
			for c := a.Col; c < a.Col+a.Cols; c++ {
				cells = append(cells, TileCell{Row: r, Col: c, Image: a.Image})
			}
		}
	}
	return cells
}
