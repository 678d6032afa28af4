package scenes

import (
	"errors"
	"fmt"
	"math/rand"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/modules"
	"github.com/gonewx/spaza-valley/pkg/systems"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// LevelOptions 构建关卡所需的依赖
type LevelOptions struct {
	Config *config.GameConfig
	Layout *config.MapLayout
	// NextMap 从顶部离开时前往的地图，为空时取 game.yaml 中的配对地图
	NextMap  string
	Assets   game.AssetProvider // 为 nil 时使用 NullAssets
	Sound    game.SoundPlayer   // 为 nil 时静音
	Input    utils.InputSource
	Rand     *rand.Rand // 为 nil 时使用固定种子
	Switcher game.MapSwitcher
	// ShowHUD 为 nil 时叠加层始终显示
	ShowHUD func() bool
}

// 默认图层对应的渲染层，未列出的图层按 main 处理
var defaultTileLayerZ = map[string]config.Layer{
	config.MapLayerHouseFloor:      config.LayerHouseBottom,
	config.MapLayerHouseFurnBottom: config.LayerHouseBottom,
	config.MapLayerHouseWalls:      config.LayerMain,
	config.MapLayerHouseFurnTop:    config.LayerMain,
}

// NewLevelScene 根据地图布局构建关卡
//
// 构建内容：地面、房屋、围栏（Fence 或 Fences）、水面、碰撞格（Collision 或 Collision2）、
// 可耕种格子、果树、野花、床和商人。玩家不在这里创建，由 AttachPlayer 放入。
//
// 返回错误：
//   - 围栏或碰撞图层的主名称和备用名称都不存在（config.ErrLayerMissing）
//   - 没有 Start/Spawn 出生点（config.ErrSpawnMissing）
func NewLevelScene(opts LevelOptions) (*LevelScene, error) {
	if opts.Config == nil || opts.Layout == nil {
		return nil, errors.New("level: config and layout are required")
	}
	if opts.Assets == nil {
		opts.Assets = game.NullAssets{}
	}
	if opts.Sound == nil {
		opts.Sound = game.NullSound{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}

	cfg, layout := opts.Config, opts.Layout
	next := opts.NextMap
	if next == "" {
		if entry, err := cfg.MapByID(layout.ID); err == nil {
			next = entry.Next
		}
	}

	spawn, err := layout.FindObject(config.MapObjectsPlayer, config.MapObjectStart, config.MapObjectSpawn)
	if err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	b := &levelBuilder{
		em:     em,
		cfg:    cfg,
		layout: layout,
		assets: opts.Assets,
		ts:     cfg.TileSize,
		logger: utils.NewLogger("level"),
	}

	worldW, worldH := layout.WorldSize(cfg.TileSize)
	world := utils.Vec{X: worldW, Y: worldH}
	viewport := utils.Vec{X: float64(cfg.Window.Width), Y: float64(cfg.Window.Height)}

	grid := components.NewSoilGridComponent(layout.Height, layout.Width, cfg.TileSize)
	if err := b.buildTiles(grid); err != nil {
		return nil, err
	}

	s := &LevelScene{
		mapID:         layout.ID,
		nextMap:       next,
		cfg:           cfg,
		entityManager: em,
		spawn:         utils.Vec{X: spawn.X, Y: spawn.Y},
		playerFrames:  entities.LoadPlayerFrames(opts.Assets, cfg.Assets.Character),
		switcher:      opts.Switcher,
		showHUD:       opts.ShowHUD,
		rng:           opts.Rand,
		logger:        b.logger,
	}

	s.soilSystem = systems.NewSoilSystem(em, grid, b.soilAssets(), b.plantSpecs(), opts.Rand)
	s.treeSystem = systems.NewTreeSystem(em, cfg.Tree.FruitChance, cfg.Tree.FruitItem, cfg.Tree.WoodItem, opts.Rand, opts.Sound)
	s.playerSystem = systems.NewPlayerSystem(em, opts.Input, cfg.Player, s.soilSystem, s.treeSystem, opts.Sound)
	s.playerSystem.SetInteractHandler(s.openShop)
	s.movementSystem = systems.NewMovementSystem(em)
	s.harvestSystem = systems.NewHarvestSystem(em, s.soilSystem, opts.Sound)
	s.animationSystem = systems.NewAnimationSystem(em)
	s.particleSystem = systems.NewParticleSystem(em)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)
	s.weatherSystem = systems.NewWeatherSystem(em, world,
		b.frames(cfg.Assets.RainFloor), b.frames(cfg.Assets.RainDrops),
		cfg.Weather.RainDropsPerSecond, opts.Rand)
	s.skySystem = systems.NewSkySystem(cfg.Weather.SkyEndColor, cfg.Weather.SkyDarkenSpeed)
	s.transitionSystem = systems.NewTransitionSystem(cfg.Weather.FadeSpeed, s.endDay, s.finishSleep)
	s.cameraSystem = systems.NewCameraSystem(em, world, viewport)
	s.renderSystem = systems.NewRenderSystem(em)
	s.shop = modules.NewShopModule(cfg.Shop, opts.Input, opts.Sound, s.closeShop)
	s.overlay = newOverlay(opts.Assets, cfg)

	b.buildTrees()
	b.buildDecoration()
	b.buildZones()

	// 第一天：结果、决定是否下雨
	s.treeSystem.RegrowFruit()
	s.raining = s.rng.Float64() < cfg.Weather.RainChance
	s.soilSystem.SetRaining(s.raining)

	s.logger.Info("level built",
		"map", s.mapID,
		"entities", em.EntityCount(),
		"farmable", len(grid.Coords()),
		"raining", s.raining)
	return s, nil
}

// levelBuilder 把地图布局转换成实体
type levelBuilder struct {
	em     *ecs.EntityManager
	cfg    *config.GameConfig
	layout *config.MapLayout
	assets game.AssetProvider
	ts     int
	logger *log.Logger
}

// image 加载图片，失败时只记录警告（实体照常创建，尺寸用回退值）
func (b *levelBuilder) image(p string) *ebiten.Image {
	if p == "" {
		return nil
	}
	img, err := b.assets.LoadImage(p)
	if err != nil {
		b.logger.Warn("failed to load image", "path", p, "error", err)
		return nil
	}
	return img
}

func (b *levelBuilder) frames(dir string) []*ebiten.Image {
	if dir == "" {
		return nil
	}
	frames, err := b.assets.LoadFrames(dir)
	if err != nil {
		b.logger.Warn("failed to load frames", "dir", dir, "error", err)
		return nil
	}
	return frames
}

// buildTiles 创建格子图层的实体，并标记可耕种格子
func (b *levelBuilder) buildTiles(grid *components.SoilGridComponent) error {
	fence, err := b.layout.TileLayerWithFallback(config.MapLayerFence, config.MapLayerFenceAlt)
	if err != nil {
		return err
	}
	collision, err := b.layout.TileLayerWithFallback(config.MapLayerCollision, config.MapLayerCollisionAlt)
	if err != nil {
		return err
	}

	if b.layout.Ground != "" {
		w, h := b.layout.WorldSize(b.ts)
		entities.NewDecorEntity(b.em, entities.DecorSpec{
			Width:  w,
			Height: h,
			Image:  b.image(b.layout.Ground),
			Z:      config.LayerGround,
		})
	}

	ts := float64(b.ts)
	for i := range b.layout.TileLayers {
		tl := &b.layout.TileLayers[i]
		switch {
		case tl == fence:
			for _, c := range tl.Cells() {
				x, y := utils.TileToWorld(utils.TileCoord{Row: c.Row, Col: c.Col}, b.ts)
				entities.NewDecorEntity(b.em, entities.DecorSpec{
					X:          x,
					Y:          y,
					Width:      ts,
					Height:     ts,
					Image:      b.image(c.Image),
					Z:          b.tileZ(tl),
					Collidable: true,
					ShrinkW:    ts * 0.2,
					ShrinkH:    ts * 0.75,
				})
			}
		case tl == collision:
			for _, c := range tl.Cells() {
				entities.NewCollisionTileEntity(b.em, utils.TileCoord{Row: c.Row, Col: c.Col}, b.ts)
			}
		case tl.Name == config.MapLayerWater:
			frames := b.frames(b.cfg.Assets.Water)
			for _, c := range tl.Cells() {
				entities.NewWaterEntity(b.em, frames, utils.TileCoord{Row: c.Row, Col: c.Col}, b.ts)
			}
		case tl.Name == config.MapLayerFarmable:
			for _, c := range tl.Cells() {
				grid.MarkFarmable(utils.TileCoord{Row: c.Row, Col: c.Col})
			}
		case tl.Name == config.MapLayerFenceAlt || tl.Name == config.MapLayerCollisionAlt:
			// 主名称已存在时忽略备用图层
			b.logger.Debug("ignoring fallback layer", "layer", tl.Name, "map", b.layout.ID)
		default:
			for _, c := range tl.Cells() {
				x, y := utils.TileToWorld(utils.TileCoord{Row: c.Row, Col: c.Col}, b.ts)
				entities.NewDecorEntity(b.em, entities.DecorSpec{
					X:      x,
					Y:      y,
					Width:  ts,
					Height: ts,
					Image:  b.image(c.Image),
					Z:      b.tileZ(tl),
				})
			}
		}
	}
	return nil
}

// tileZ 图层的渲染层：显式 z 优先，其次按名称推断
func (b *levelBuilder) tileZ(tl *config.TileLayer) config.Layer {
	if z, ok := config.ParseLayer(tl.Z); ok {
		return z
	}
	if z, ok := defaultTileLayerZ[tl.Name]; ok {
		return z
	}
	return config.LayerMain
}

// buildTrees 果树：对象名称是尺寸（Small/Large），决定果实槽位和树桩图片
func (b *levelBuilder) buildTrees() {
	layer, ok := b.layout.ObjectLayer(config.MapObjectsTrees)
	if !ok {
		return
	}
	fruit := b.image(path.Join(b.cfg.Assets.Fruit, b.cfg.Tree.FruitItem+".png"))
	for _, obj := range layer.Objects {
		slots := b.cfg.Tree.FruitSlots[obj.Name]
		offsets := make([]utils.Vec, 0, len(slots))
		for _, p := range slots {
			offsets = append(offsets, utils.Vec{X: p.X, Y: p.Y})
		}
		entities.NewTreeEntity(b.em, entities.TreeSpec{
			Size:       obj.Name,
			X:          obj.X,
			Y:          obj.Y,
			Width:      obj.Width,
			Height:     obj.Height,
			Image:      b.image(obj.Image),
			StumpImage: b.image(path.Join(b.cfg.Assets.Stumps, strings.ToLower(obj.Name)+".png")),
			FruitImage: fruit,
			FruitSlots: offsets,
			Health:     b.cfg.Tree.Health,
		})
	}
}

func (b *levelBuilder) buildDecoration() {
	layer, ok := b.layout.ObjectLayer(config.MapObjectsDecoration)
	if !ok {
		return
	}
	for _, obj := range layer.Objects {
		entities.NewWildFlowerEntity(b.em, b.image(obj.Image), obj.X, obj.Y, obj.Width, obj.Height)
	}
}

// buildZones 床和商人
func (b *levelBuilder) buildZones() {
	layer, ok := b.layout.ObjectLayer(config.MapObjectsPlayer)
	if !ok {
		return
	}
	for _, obj := range layer.Objects {
		switch obj.Name {
		case config.MapObjectBed:
			entities.NewInteractionZone(b.em, components.InteractionBed, obj.Name, obj.X, obj.Y, obj.Width, obj.Height)
		case config.MapObjectTrader:
			entities.NewInteractionZone(b.em, components.InteractionTrader, obj.Name, obj.X, obj.Y, obj.Width, obj.Height)
		}
	}
}

// soilAssets 耕地贴图按名称加载，缺失的贴图不绘制
func (b *levelBuilder) soilAssets() systems.SoilAssets {
	patches := make(map[string]*ebiten.Image)
	if b.cfg.Assets.Soil != "" {
		for _, name := range systems.PatchNames() {
			if img := b.image(path.Join(b.cfg.Assets.Soil, name+".png")); img != nil {
				patches[name] = img
			}
		}
	}
	return systems.SoilAssets{
		Patches: patches,
		Water:   b.frames(b.cfg.Assets.SoilWater),
	}
}

// plantSpecs 品种配置 + 生长帧
func (b *levelBuilder) plantSpecs() map[string]entities.PlantSpec {
	specs := make(map[string]entities.PlantSpec, len(b.cfg.Species))
	for name, sc := range b.cfg.Species {
		specs[name] = entities.PlantSpec{
			Species:  name,
			MaxStage: sc.MaxStage,
			YOffset:  sc.YOffset,
			Frames:   b.frames(sc.Frames),
		}
	}
	return specs
}

// LoadLevel 读取地图布局文件并构建关卡
func LoadLevel(mapID string, opts LevelOptions) (*LevelScene, error) {
	entry, err := opts.Config.MapByID(mapID)
	if err != nil {
		return nil, err
	}
	layout, err := config.LoadMapLayout(entry.Layout)
	if err != nil {
		return nil, err
	}
	if layout.ID != mapID {
		return nil, fmt.Errorf("map layout %s has id %q, expected %q", entry.Layout, layout.ID, mapID)
	}
	opts.Layout = layout
	opts.NextMap = entry.Next
	return NewLevelScene(opts)
}
