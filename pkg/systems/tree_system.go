package systems

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/utils"
)

// TreeSystem 果树：砍伐、掉果、变树桩、日结重新结果
type TreeSystem struct {
	entityManager *ecs.EntityManager
	fruitChance   float64
	fruitItem     string
	woodItem      string
	rng           *rand.Rand
	sound         game.SoundPlayer
	logger        *log.Logger
}

// NewTreeSystem 创建果树系统
//
// 参数:
//   - em: 实体管理器
//   - fruitChance: 每个果实槽位日结时结果的概率
//   - fruitItem, woodItem: 掉落物品名称（苹果、木头）
//   - rng: 随机源，为 nil 时使用固定种子
//   - sound: 音效
func NewTreeSystem(em *ecs.EntityManager, fruitChance float64, fruitItem, woodItem string, rng *rand.Rand, sound game.SoundPlayer) *TreeSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if sound == nil {
		sound = game.NullSound{}
	}
	return &TreeSystem{
		entityManager: em,
		fruitChance:   fruitChance,
		fruitItem:     fruitItem,
		woodItem:      woodItem,
		rng:           rng,
		sound:         sound,
		logger:        utils.NewLogger("tree"),
	}
}

// TreeAt 返回视觉矩形包含该点的果树
func (s *TreeSystem) TreeAt(x, y float64) (ecs.EntityID, bool) {
	for _, id := range entitiesWithCapability(s.entityManager, components.CapHarvestTree) {
		rect, ok := VisualRect(s.entityManager, id)
		if ok && rect.ContainsPoint(x, y) {
			return id, true
		}
	}
	return 0, false
}

// Damage 砍一下树
//
// 耐久 -1；树上有果实时随机打落一个（背包 +1，原地闪光）；
// 耐久归零时变成树桩（背包 +1 木头），树桩仍然阻挡移动。
// 树桩不会再掉落任何东西。
func (s *TreeSystem) Damage(id ecs.EntityID, inv *components.Inventory) {
	tree, ok := ecs.GetComponent[*components.TreeComponent](s.entityManager, id)
	if !ok || !tree.Alive {
		return
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return
	}

	health.CurrentHealth--

	if slots := tree.OccupiedSlots(); len(slots) > 0 {
		slot := slots[s.rng.Intn(len(slots))]
		s.removeFruit(tree, slot, true)
		if inv != nil {
			inv.AddItem(s.fruitItem, 1)
		}
	}

	if health.CurrentHealth <= 0 {
		s.fell(id, tree)
		if inv != nil {
			inv.AddItem(s.woodItem, 1)
		}
		s.sound.PlaySound(SoundSuccess)
	}
}

// RegrowFruit 日结时所有活着的树重新结果
func (s *TreeSystem) RegrowFruit() {
	for _, id := range ecs.GetEntitiesWith1[*components.TreeComponent](s.entityManager) {
		tree, _ := ecs.GetComponent[*components.TreeComponent](s.entityManager, id)
		for slot := range tree.Fruit {
			s.removeFruit(tree, slot, false)
		}
		if !tree.Alive {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		for slot, offset := range tree.FruitSlots {
			if s.rng.Float64() < s.fruitChance {
				tree.Fruit[slot] = entities.NewFruitEntity(s.entityManager, tree.FruitImage, id, slot, pos.X+offset.X, pos.Y+offset.Y)
			}
		}
	}
}

func (s *TreeSystem) removeFruit(tree *components.TreeComponent, slot int, flash bool) {
	fruit := tree.Fruit[slot]
	if fruit == 0 {
		return
	}
	if flash {
		if rect, ok := VisualRect(s.entityManager, fruit); ok {
			sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, fruit)
			layer, _ := ecs.GetComponent[*components.LayerComponent](s.entityManager, fruit)
			entities.NewFlashParticle(s.entityManager, sprite.Image, rect.X, rect.Y, rect.W, rect.H, layer.Z)
		}
	}
	s.entityManager.DestroyEntity(fruit)
	tree.Fruit[slot] = 0
}

// fell 把树变成树桩：底边中点不变，碰撞盒收缩到树桩大小
func (s *TreeSystem) fell(id ecs.EntityID, tree *components.TreeComponent) {
	tree.Alive = false
	for slot := range tree.Fruit {
		s.removeFruit(tree, slot, false)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	if pos == nil || sprite == nil {
		return
	}
	layer, _ := ecs.GetComponent[*components.LayerComponent](s.entityManager, id)
	entities.NewFlashParticle(s.entityManager, sprite.Image, pos.X, pos.Y, sprite.Width, sprite.Height, layer.Z)

	bottom := pos.Y + sprite.Height
	centerX := pos.X + sprite.Width/2
	stump := components.NewSpriteComponent(tree.StumpImage, sprite.Width*0.5, sprite.Height*0.3)
	*sprite = *stump
	pos.X = centerX - sprite.Width/2
	pos.Y = bottom - sprite.Height

	s.entityManager.AddComponent(id, components.NewInsetCollision(sprite.Width, sprite.Height, 10, sprite.Height*0.6))
	if caps, ok := ecs.GetComponent[*components.CapabilityComponent](s.entityManager, id); ok {
		caps.Remove(components.CapHarvestTree)
	}
	s.logger.Debug("tree felled", "size", tree.Size)
}
