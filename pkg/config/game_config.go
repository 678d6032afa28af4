package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 配置相关的哨兵错误
var (
	// ErrUnknownMap 请求的地图ID未在 game.yaml 中配置
	ErrUnknownMap = errors.New("unknown map")
)

// DefaultConfigPath 默认配置文件路径
const DefaultConfigPath = "data/game.yaml"

// GameConfig 游戏全局配置（data/game.yaml）
type GameConfig struct {
	Window   WindowConfig             `yaml:"window"`
	TileSize int                      `yaml:"tileSize" validate:"required,gt=0"`
	StartMap string                   `yaml:"startMap" validate:"required"`
	Maps     []MapEntry               `yaml:"maps" validate:"required,min=1,dive"`
	Player   PlayerConfig             `yaml:"player"`
	Species  map[string]SpeciesConfig `yaml:"species" validate:"required,min=1,dive"`
	Tree     TreeConfig               `yaml:"tree"`
	Shop     ShopConfig               `yaml:"shop"`
	Weather  WeatherConfig            `yaml:"weather"`
	Assets   AssetsConfig             `yaml:"assets"`
	Sounds   map[string]string        `yaml:"sounds"`
}

// WindowConfig 窗口与视口
type WindowConfig struct {
	Width  int    `yaml:"width" validate:"required,gt=0"`
	Height int    `yaml:"height" validate:"required,gt=0"`
	Title  string `yaml:"title"`
}

// MapEntry 一张地图的注册信息
// Next 是从地图顶部离开时前往的配对地图
type MapEntry struct {
	ID     string `yaml:"id" validate:"required"`
	Layout string `yaml:"layout" validate:"required"`
	Next   string `yaml:"next" validate:"required"`
}

// Point 像素偏移
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Color RGB 颜色
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	Speed            float64          `yaml:"speed" validate:"gt=0"`
	SprintSpeed      float64          `yaml:"sprintSpeed" validate:"gtefield=Speed"`
	StaminaMax       float64          `yaml:"staminaMax" validate:"gt=0"`
	StaminaDrain     float64          `yaml:"staminaDrain" validate:"gte=0"`    // 每秒消耗
	StaminaRegen     float64          `yaml:"staminaRegen" validate:"gte=0"`    // 每秒恢复
	StaminaCooldown  float64          `yaml:"staminaCooldown" validate:"gte=0"` // 耗尽后的冷却（秒）
	SpriteWidth      float64          `yaml:"spriteWidth" validate:"gt=0"`
	SpriteHeight     float64          `yaml:"spriteHeight" validate:"gt=0"`
	HitboxShrinkX    float64          `yaml:"hitboxShrinkX" validate:"gte=0"`
	HitboxShrinkY    float64          `yaml:"hitboxShrinkY" validate:"gte=0"`
	AnimationFPS     float64          `yaml:"animationFps" validate:"gt=0"`
	ToolUseTime      float64          `yaml:"toolUseTime" validate:"gt=0"`
	SeedUseTime      float64          `yaml:"seedUseTime" validate:"gt=0"`
	SwitchTime       float64          `yaml:"switchTime" validate:"gt=0"`
	InteractCooldown float64          `yaml:"interactCooldown" validate:"gte=0"`
	Tools            []string         `yaml:"tools" validate:"required,min=1,dive,oneof=hoe axe water"`
	Seeds            []string         `yaml:"seeds" validate:"required,min=1"`
	StartSeeds       map[string]int   `yaml:"startSeeds"`
	StartItems       map[string]int   `yaml:"startItems"`
	StartMoney       int              `yaml:"startMoney" validate:"gte=0"`
	ToolOffsets      map[string]Point `yaml:"toolOffsets" validate:"required"`
}

// SpeciesConfig 作物品种
type SpeciesConfig struct {
	MaxStage int     `yaml:"maxStage" validate:"gt=0"`
	YOffset  float64 `yaml:"yOffset"`
	Frames   string  `yaml:"frames"`
}

// TreeConfig 果树
type TreeConfig struct {
	Health      int                `yaml:"health" validate:"gt=0"`
	FruitChance float64            `yaml:"fruitChance" validate:"gte=0,lte=1"`
	FruitItem   string             `yaml:"fruitItem" validate:"required"`
	WoodItem    string             `yaml:"woodItem" validate:"required"`
	FruitSlots  map[string][]Point `yaml:"fruitSlots"`
}

// ShopConfig 商店价格
type ShopConfig struct {
	SalePrices     map[string]int `yaml:"salePrices" validate:"required,dive,gte=0"`
	PurchasePrices map[string]int `yaml:"purchasePrices" validate:"required,dive,gte=0"`
}

// WeatherConfig 天气与天空
type WeatherConfig struct {
	RainChance         float64 `yaml:"rainChance" validate:"gte=0,lte=1"`
	SkyEndColor        Color   `yaml:"skyEndColor"`
	SkyDarkenSpeed     float64 `yaml:"skyDarkenSpeed" validate:"gte=0"` // 每秒下降的颜色值
	FadeSpeed          float64 `yaml:"fadeSpeed" validate:"gt=0"`       // 睡眠过渡每秒变化的亮度
	RainDropsPerSecond float64 `yaml:"rainDropsPerSecond" validate:"gte=0"`
}

// AssetsConfig 资源目录（相对资源根目录）
type AssetsConfig struct {
	Character string `yaml:"character"`
	Soil      string `yaml:"soil"`
	SoilWater string `yaml:"soilWater"`
	Water     string `yaml:"water"`
	RainFloor string `yaml:"rainFloor"`
	RainDrops string `yaml:"rainDrops"`
	Fruit     string `yaml:"fruit"`
	Stumps    string `yaml:"stumps"`
	Overlay   string `yaml:"overlay"`
}

// DefaultGameConfig 返回内置默认配置
// 数值与原版保持一致（1280x720 视口，64px 格子，速度 200/500）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Window:   WindowConfig{Width: 1280, Height: 720, Title: "Spaza Valley"},
		TileSize: 64,
		StartMap: "map",
		Maps: []MapEntry{
			{ID: "map", Layout: "data/maps/map.yaml", Next: "map2"},
			{ID: "map2", Layout: "data/maps/map2.yaml", Next: "map"},
		},
		Player: PlayerConfig{
			Speed:            200,
			SprintSpeed:      500,
			StaminaMax:       100,
			StaminaDrain:     6,
			StaminaRegen:     6,
			StaminaCooldown:  5,
			SpriteWidth:      192,
			SpriteHeight:     192,
			HitboxShrinkX:    126,
			HitboxShrinkY:    70,
			AnimationFPS:     4,
			ToolUseTime:      0.35,
			SeedUseTime:      0.35,
			SwitchTime:       0.2,
			InteractCooldown: 0.3,
			Tools:            []string{"hoe", "axe", "water"},
			Seeds:            []string{"corn", "tomato"},
			StartSeeds:       map[string]int{"corn": 5, "tomato": 5},
			StartItems:       map[string]int{"wood": 0, "apple": 0, "corn": 0, "tomato": 0},
			StartMoney:       200,
			ToolOffsets: map[string]Point{
				"left":  {X: -50, Y: 40},
				"right": {X: 50, Y: 40},
				"up":    {X: 0, Y: -10},
				"down":  {X: 0, Y: 50},
			},
		},
		Species: map[string]SpeciesConfig{
			"corn":   {MaxStage: 4, YOffset: -16, Frames: "graphics/fruit/corn"},
			"tomato": {MaxStage: 4, YOffset: -8, Frames: "graphics/fruit/tomato"},
		},
		Tree: TreeConfig{
			Health:      5,
			FruitChance: 0.2,
			FruitItem:   "apple",
			WoodItem:    "wood",
			FruitSlots: map[string][]Point{
				"Small": {{18, 17}, {30, 37}, {12, 50}, {30, 45}, {20, 30}, {30, 10}},
				"Large": {{30, 24}, {60, 65}, {50, 50}, {16, 40}, {45, 50}, {42, 70}},
			},
		},
		Shop: ShopConfig{
			SalePrices:     map[string]int{"wood": 4, "apple": 2, "corn": 10, "tomato": 20},
			PurchasePrices: map[string]int{"corn": 4, "tomato": 5},
		},
		Weather: WeatherConfig{
			RainChance:         3.0 / 11.0,
			SkyEndColor:        Color{R: 38, G: 101, B: 189},
			SkyDarkenSpeed:     2,
			FadeSpeed:          120,
			RainDropsPerSecond: 60,
		},
		Assets: AssetsConfig{
			Character: "graphics/character",
			Soil:      "graphics/soil",
			SoilWater: "graphics/soil_water",
			Water:     "graphics/water",
			RainFloor: "graphics/rain/floor",
			RainDrops: "graphics/rain/drops",
			Fruit:     "graphics/fruit",
			Stumps:    "graphics/stumps",
			Overlay:   "graphics/overlay",
		},
		Sounds: map[string]string{
			"success": "audio/success.wav",
			"water":   "audio/water.mp3",
			"axe":     "audio/axe.mp3",
			"hoe":     "audio/hoe.wav",
			"plant":   "audio/plant.wav",
			"music":   "audio/bg.mp3",
		},
	}
}

// LoadGameConfig 加载游戏配置
// 查找顺序: customPath -> data/game.yaml -> 内置默认值
// customPath 指定但读取失败时返回错误（不静默回退）
func LoadGameConfig(customPath string) (*GameConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read game config %s: %w", customPath, err)
		}
		return ParseGameConfig(data)
	}

	if data, err := os.ReadFile(DefaultConfigPath); err == nil {
		return ParseGameConfig(data)
	}

	cfg := DefaultGameConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseGameConfig 解析 YAML 配置
// 未出现的字段保留默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验结构体标签以及跨字段约束
func (c *GameConfig) Validate() error {
	if err := validateStruct(c); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	if _, err := c.MapByID(c.StartMap); err != nil {
		return fmt.Errorf("invalid game config: startMap: %w", err)
	}
	for _, m := range c.Maps {
		if _, err := c.MapByID(m.Next); err != nil {
			return fmt.Errorf("invalid game config: map %q next: %w", m.ID, err)
		}
	}
	for _, seed := range c.Player.Seeds {
		if _, ok := c.Species[seed]; !ok {
			return fmt.Errorf("invalid game config: seed %q has no species entry", seed)
		}
	}
	for _, dir := range []string{"left", "right", "up", "down"} {
		if _, ok := c.Player.ToolOffsets[dir]; !ok {
			return fmt.Errorf("invalid game config: missing tool offset for %q", dir)
		}
	}
	return nil
}

// MapByID 查找地图注册信息
func (c *GameConfig) MapByID(id string) (MapEntry, error) {
	for _, m := range c.Maps {
		if m.ID == id {
			return m, nil
		}
	}
	return MapEntry{}, fmt.Errorf("%w: %q", ErrUnknownMap, id)
}
