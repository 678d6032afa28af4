package systems

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
)

// Follow 计算镜头偏移
// 偏移 = 锚点 - 视口/2，每个轴都限制在 [0, 世界尺寸 - 视口尺寸]；
// 世界比视口小时该轴偏移固定为 0
func Follow(anchor, world, viewport utils.Vec) utils.Vec {
	return utils.Vec{
		X: clampAxis(anchor.X-viewport.X/2, world.X, viewport.X),
		Y: clampAxis(anchor.Y-viewport.Y/2, world.Y, viewport.Y),
	}
}

func clampAxis(offset, world, viewport float64) float64 {
	maxOffset := world - viewport
	if maxOffset <= 0 {
		return 0
	}
	return utils.ClampF(offset, 0, maxOffset)
}

// CameraSystem 镜头跟随带 CameraTargetComponent 的实体
type CameraSystem struct {
	entityManager *ecs.EntityManager
	world         utils.Vec
	viewport      utils.Vec
	offset        utils.Vec
}

// NewCameraSystem 创建镜头系统
//
// 参数:
//   - em: 实体管理器
//   - world: 世界尺寸（像素）
//   - viewport: 视口尺寸（像素）
func NewCameraSystem(em *ecs.EntityManager, world, viewport utils.Vec) *CameraSystem {
	return &CameraSystem{
		entityManager: em,
		world:         world,
		viewport:      viewport,
	}
}

// Update 以目标实体视觉矩形中心为锚点更新偏移
// 没有目标时偏移保持不变
func (cs *CameraSystem) Update() {
	targets := ecs.GetEntitiesWith1[*components.CameraTargetComponent](cs.entityManager)
	if len(targets) == 0 {
		return
	}
	rect, ok := VisualRect(cs.entityManager, targets[0])
	if !ok {
		return
	}
	cx, cy := rect.Center()
	cs.offset = Follow(utils.Vec{X: cx, Y: cy}, cs.world, cs.viewport)
}

// Offset 当前镜头偏移
func (cs *CameraSystem) Offset() utils.Vec {
	return cs.offset
}

// Viewport 视口尺寸
func (cs *CameraSystem) Viewport() utils.Vec {
	return cs.viewport
}
