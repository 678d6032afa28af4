package systems

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
)

// VisualRect 返回实体的视觉矩形（位置 + 精灵尺寸）
func VisualRect(em *ecs.EntityManager, id ecs.EntityID) (utils.Rect, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return utils.Rect{}, false
	}
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id)
	if !ok {
		return utils.Rect{}, false
	}
	return utils.Rect{X: pos.X, Y: pos.Y, W: sprite.Width, H: sprite.Height}, true
}

// HitboxRect 返回实体的碰撞盒（世界坐标）
func HitboxRect(em *ecs.EntityManager, id ecs.EntityID) (utils.Rect, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return utils.Rect{}, false
	}
	coll, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok {
		return utils.Rect{}, false
	}
	return utils.Rect{X: pos.X + coll.OffsetX, Y: pos.Y + coll.OffsetY, W: coll.Width, H: coll.Height}, true
}

// hasCapability 实体是否拥有指定能力
func hasCapability(em *ecs.EntityManager, id ecs.EntityID, tag components.Capability) bool {
	caps, ok := ecs.GetComponent[*components.CapabilityComponent](em, id)
	return ok && caps.Has(tag)
}

// entitiesWithCapability 按能力标签查询实体（结果是快照，可在遍历中删除实体）
func entitiesWithCapability(em *ecs.EntityManager, tag components.Capability) []ecs.EntityID {
	all := ecs.GetEntitiesWith1[*components.CapabilityComponent](em)
	out := all[:0]
	for _, id := range all {
		if hasCapability(em, id, tag) {
			out = append(out, id)
		}
	}
	return out
}
