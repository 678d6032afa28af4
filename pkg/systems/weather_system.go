package systems

import (
	"math/rand"

	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 雨滴参数
const (
	rainDirX        = -2.0
	rainDirY        = 4.0
	rainMinSpeed    = 200
	rainMaxSpeed    = 250
	rainMinLifetime = 0.4
	rainMaxLifetime = 0.5
)

// WeatherSystem 下雨时在世界范围内随机生成地面水花和空中雨滴
type WeatherSystem struct {
	entityManager *ecs.EntityManager
	world         utils.Vec
	floor         []*ebiten.Image
	drops         []*ebiten.Image
	perSecond     float64
	pending       float64
	rng           *rand.Rand
}

// NewWeatherSystem 创建天气系统
//
// 参数:
//   - em: 实体管理器
//   - world: 世界尺寸（像素），雨滴在此范围内生成
//   - floor, drops: 水花和雨滴图片
//   - perSecond: 每秒生成的水花/雨滴数量（各自）
//   - rng: 随机源，为 nil 时使用固定种子
func NewWeatherSystem(em *ecs.EntityManager, world utils.Vec, floor, drops []*ebiten.Image, perSecond float64, rng *rand.Rand) *WeatherSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &WeatherSystem{
		entityManager: em,
		world:         world,
		floor:         floor,
		drops:         drops,
		perSecond:     perSecond,
		rng:           rng,
	}
}

// Update 下雨时按速率生成雨滴；不下雨时清空累计量
func (s *WeatherSystem) Update(deltaTime float64, raining bool) {
	if !raining {
		s.pending = 0
		return
	}
	s.pending += s.perSecond * deltaTime
	for s.pending >= 1 {
		s.pending--
		s.spawn(false)
		s.spawn(true)
	}
}

func (s *WeatherSystem) spawn(moving bool) {
	images := s.floor
	if moving {
		images = s.drops
	}
	var img *ebiten.Image
	if len(images) > 0 {
		img = images[s.rng.Intn(len(images))]
	}

	drop := entities.RainDrop{
		X:        s.rng.Float64() * s.world.X,
		Y:        s.rng.Float64() * s.world.Y,
		Image:    img,
		Lifetime: rainMinLifetime + s.rng.Float64()*(rainMaxLifetime-rainMinLifetime),
		Moving:   moving,
	}
	if moving {
		speed := rainMinSpeed + s.rng.Float64()*(rainMaxSpeed-rainMinSpeed)
		drop.VelX = rainDirX * speed
		drop.VelY = rainDirY * speed
	}
	entities.NewRainDropEntity(s.entityManager, drop)
}
