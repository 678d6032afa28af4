package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveAxisSeparatedFreeMovement(t *testing.T) {
	box := utils.Rect{X: 0, Y: 0, W: 10, H: 10}

	moved := MoveAxisSeparated(box, utils.Vec{X: 1}, 100, 0.5, nil)
	assert.Equal(t, 50.0, moved.X)
	assert.Equal(t, 0.0, moved.Y)

	// 斜向移动归一化
	moved = MoveAxisSeparated(box, utils.Vec{X: 3, Y: 4}, 10, 1, nil)
	assert.InDelta(t, 6, moved.X, 1e-9)
	assert.InDelta(t, 8, moved.Y, 1e-9)

	// 零方向不移动
	assert.Equal(t, box, MoveAxisSeparated(box, utils.Vec{}, 100, 1, nil))
}

func TestMoveAxisSeparatedClampsToObstacle(t *testing.T) {
	box := utils.Rect{X: 0, Y: 0, W: 10, H: 10}
	wall := utils.Rect{X: 20, Y: -100, W: 5, H: 200}

	tests := []struct {
		name  string
		box   utils.Rect
		dir   utils.Vec
		wall  utils.Rect
		wantX float64
		wantY float64
	}{
		{"right into wall", box, utils.Vec{X: 1}, wall, 10, 0},
		{"left into wall", utils.Rect{X: 40, Y: 0, W: 10, H: 10}, utils.Vec{X: -1}, wall, 25, 0},
		{"down into floor", box, utils.Vec{Y: 1}, utils.Rect{X: -50, Y: 30, W: 100, H: 5}, 0, 20},
		{"up into ceiling", utils.Rect{X: 0, Y: 50, W: 10, H: 10}, utils.Vec{Y: -1}, utils.Rect{X: -50, Y: 30, W: 100, H: 5}, 0, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved := MoveAxisSeparated(tt.box, tt.dir, 1000, 1, []utils.Rect{tt.wall})
			assert.Equal(t, tt.wantX, moved.X)
			assert.Equal(t, tt.wantY, moved.Y)
			assert.False(t, moved.Intersects(tt.wall))
		})
	}
}

// TestMoveAxisSeparatedSlidesAlongWall 撞墙后另一个轴继续移动
func TestMoveAxisSeparatedSlidesAlongWall(t *testing.T) {
	box := utils.Rect{X: 0, Y: 0, W: 10, H: 10}
	wall := utils.Rect{X: 20, Y: -100, W: 5, H: 200}

	moved := MoveAxisSeparated(box, utils.Vec{X: 1, Y: 1}, 100, 1, []utils.Rect{wall})
	assert.Equal(t, 10.0, moved.X)
	assert.Greater(t, moved.Y, 0.0)
}

// TestMoveAxisSeparatedNoTunnelling 大步长也不能穿过薄墙
func TestMoveAxisSeparatedNoTunnelling(t *testing.T) {
	box := utils.Rect{X: 0, Y: 0, W: 10, H: 10}
	thin := utils.Rect{X: 100, Y: 0, W: 1, H: 10}

	moved := MoveAxisSeparated(box, utils.Vec{X: 1}, 5000, 1, []utils.Rect{thin})
	assert.Equal(t, 90.0, moved.X)
}

// TestMoveAxisSeparatedNeverOverlaps 随机初始状态下移动结果不与任何障碍物重叠
func TestMoveAxisSeparatedNeverOverlaps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dirs := []utils.Vec{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
		{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1},
	}

	for i := 0; i < 500; i++ {
		obstacles := make([]utils.Rect, 0, 8)
		for j := 0; j < 8; j++ {
			obstacles = append(obstacles, utils.Rect{
				X: float64(rng.Intn(400)),
				Y: float64(rng.Intn(400)),
				W: float64(1 + rng.Intn(60)),
				H: float64(1 + rng.Intn(60)),
			})
		}
		box := utils.Rect{X: float64(rng.Intn(400)), Y: float64(rng.Intn(400)), W: 20, H: 30}
		overlapping := false
		for _, o := range obstacles {
			if box.Intersects(o) {
				overlapping = true
				break
			}
		}
		if overlapping {
			continue
		}

		dir := dirs[rng.Intn(len(dirs))]
		if rng.Intn(2) == 0 {
			dir = utils.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
		}
		speed := float64(rng.Intn(2000))
		dt := rng.Float64() * 0.5

		moved := MoveAxisSeparated(box, dir, speed, dt, obstacles)
		for _, o := range obstacles {
			require.False(t, moved.Intersects(o), "case %d: %+v overlaps %+v (from %+v dir %+v)", i, moved, o, box, dir)
		}
	}
}

func TestMovementSystemUpdate(t *testing.T) {
	em := ecs.NewEntityManager()

	player := em.CreateEntity()
	em.AddComponent(player, &components.PositionComponent{X: 0, Y: 0})
	em.AddComponent(player, &components.CollisionComponent{Width: 10, Height: 10, OffsetX: 5, OffsetY: 5})
	em.AddComponent(player, &components.PlayerComponent{Input: utils.Vec{X: 1}, Speed: 100, SprintSpeed: 300})

	wall := em.CreateEntity()
	em.AddComponent(wall, &components.PositionComponent{X: 100, Y: 0})
	em.AddComponent(wall, &components.CollisionComponent{Width: 10, Height: 50})
	em.AddComponent(wall, components.NewCapabilities(components.CapCollidable))

	// 不可碰撞的交互区域不阻挡
	zone := em.CreateEntity()
	em.AddComponent(zone, &components.PositionComponent{X: 30, Y: 0})
	em.AddComponent(zone, &components.CollisionComponent{Width: 10, Height: 50})
	em.AddComponent(zone, components.NewCapabilities(components.CapInteractable))

	ms := NewMovementSystem(em)
	ms.Update(0.5)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, player)
	assert.Equal(t, 50.0, pos.X)

	p, _ := ecs.GetComponent[*components.PlayerComponent](em, player)
	p.Sprinting = true
	ms.Update(1)
	hitbox, _ := HitboxRect(em, player)
	assert.Equal(t, 100.0, hitbox.Right(), "sprint stops at the wall")
	assert.Equal(t, 85.0, pos.X)
}
