package systems

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
)

// MoveAxisSeparated 沿方向移动碰撞盒并解决与障碍物的碰撞
//
// 先移动 X 轴再移动 Y 轴，每个轴单独处理：
// 在本次移动扫过的区间内遇到的最近障碍物把前沿截停在障碍物的对应边上。
// 扫掠判定保证大 dt 时也不会穿过薄障碍物；边缘恰好接触不算重叠。
// 起始时已经重叠的障碍物被忽略，实体可以自行走出。
//
// 参数:
//   - box: 当前碰撞盒
//   - dir: 方向（非零时归一化）
//   - speed: 速度（像素/秒）
//   - dt: 时间步长（秒）
//   - obstacles: 静态障碍物碰撞盒
//
// 返回:
//   - utils.Rect: 移动后的碰撞盒
func MoveAxisSeparated(box utils.Rect, dir utils.Vec, speed, dt float64, obstacles []utils.Rect) utils.Rect {
	dir = dir.Normalize()
	box = sweepX(box, dir.X*speed*dt, obstacles)
	box = sweepY(box, dir.Y*speed*dt, obstacles)
	return box
}

func sweepX(box utils.Rect, dx float64, obstacles []utils.Rect) utils.Rect {
	if dx == 0 {
		return box
	}
	newX := box.X + dx
	for _, o := range obstacles {
		// Y 方向不重叠的障碍物不会被扫到
		if box.Y >= o.Bottom() || o.Y >= box.Bottom() || box.Intersects(o) {
			continue
		}
		if dx > 0 && o.X >= box.Right() && o.X < newX+box.W {
			newX = o.X - box.W
		}
		if dx < 0 && o.Right() <= box.X && o.Right() > newX {
			newX = o.Right()
		}
	}
	box.X = newX
	return box
}

func sweepY(box utils.Rect, dy float64, obstacles []utils.Rect) utils.Rect {
	if dy == 0 {
		return box
	}
	newY := box.Y + dy
	for _, o := range obstacles {
		if box.X >= o.Right() || o.X >= box.Right() || box.Intersects(o) {
			continue
		}
		if dy > 0 && o.Y >= box.Bottom() && o.Y < newY+box.H {
			newY = o.Y - box.H
		}
		if dy < 0 && o.Bottom() <= box.Y && o.Bottom() > newY {
			newY = o.Bottom()
		}
	}
	box.Y = newY
	return box
}

// MovementSystem 按玩家输入移动玩家实体
type MovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager) *MovementSystem {
	return &MovementSystem{entityManager: em}
}

// Obstacles 收集所有可碰撞实体的碰撞盒（排除 self）
func (s *MovementSystem) Obstacles(self ecs.EntityID) []utils.Rect {
	ids := entitiesWithCapability(s.entityManager, components.CapCollidable)
	rects := make([]utils.Rect, 0, len(ids))
	for _, id := range ids {
		if id == self {
			continue
		}
		if r, ok := HitboxRect(s.entityManager, id); ok {
			rects = append(rects, r)
		}
	}
	return rects
}

// Update 移动所有玩家实体
// 位置是权威数据，碰撞盒由位置推导，移动后再反推位置
func (s *MovementSystem) Update(deltaTime float64) {
	players := ecs.GetEntitiesWith3[
		*components.PlayerComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](s.entityManager)

	for _, id := range players {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		if player.Input == (utils.Vec{}) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		coll, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)

		speed := player.Speed
		if player.Sprinting {
			speed = player.SprintSpeed
		}

		box, _ := HitboxRect(s.entityManager, id)
		moved := MoveAxisSeparated(box, player.Input, speed, deltaTime, s.Obstacles(id))
		pos.X = moved.X - coll.OffsetX
		pos.Y = moved.Y - coll.OffsetY
	}
}
