package config

// Layer 渲染层（z 值）
// 渲染时先按层排序，同层内再按 Y 坐标排序
type Layer int

// 渲染层从底到顶
const (
	LayerWater Layer = iota
	LayerGround
	LayerSoil
	LayerSoilWater
	LayerRainFloor
	LayerHouseBottom
	LayerGroundPlant
	LayerMain
	LayerHouseTop
	LayerFruit
	LayerRainDrops
)

// Layers 按绘制顺序排列的全部渲染层
var Layers = []Layer{
	LayerWater,
	LayerGround,
	LayerSoil,
	LayerSoilWater,
	LayerRainFloor,
	LayerHouseBottom,
	LayerGroundPlant,
	LayerMain,
	LayerHouseTop,
	LayerFruit,
	LayerRainDrops,
}

var layerNames = map[Layer]string{
	LayerWater:       "water",
	LayerGround:      "ground",
	LayerSoil:        "soil",
	LayerSoilWater:   "soil_water",
	LayerRainFloor:   "rain_floor",
	LayerHouseBottom: "house_bottom",
	LayerGroundPlant: "ground_plant",
	LayerMain:        "main",
	LayerHouseTop:    "house_top",
	LayerFruit:       "fruit",
	LayerRainDrops:   "rain_drops",
}

// String 返回层名称
func (l Layer) String() string {
	if name, ok := layerNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLayer 根据名称查找渲染层
func ParseLayer(name string) (Layer, bool) {
	for l, n := range layerNames {
		if n == name {
			return l, true
		}
	}
	return 0, false
}
