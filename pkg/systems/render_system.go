package systems

import (
	"sort"

	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
)

// RenderContext 一帧的绘制目标和镜头
// 由关卡显式传入，渲染系统不持有全局屏幕或镜头状态
type RenderContext struct {
	Screen   *ebiten.Image
	Offset   utils.Vec // 镜头偏移（世界坐标）
	Viewport utils.Vec // 视口尺寸，零值表示不裁剪
}

// RenderSystem 按 (层, 视觉矩形中心Y) 排序绘制所有可渲染实体
//
// 排序规则：
//   - 先按 config.Layers 的层顺序分桶，层低的先画
//   - 同一层内中心Y小的先画（越靠下越在上面）
//   - 两者都相同时按实体ID，保证帧间稳定
//
// 实体一定画在自己的层里，不会因为 Y 坐标被画到别的层上面。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	flash         colorm.ColorM
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	var flash colorm.ColorM
	flash.Scale(0, 0, 0, 1)
	flash.Translate(1, 1, 1, 0)
	return &RenderSystem{
		entityManager: em,
		flash:         flash,
	}
}

type drawItem struct {
	id      ecs.EntityID
	layer   int
	centerY float64
}

// DrawOrder 返回本帧的绘制顺序（实体ID快照）
func (s *RenderSystem) DrawOrder() []ecs.EntityID {
	ids := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.SpriteComponent,
		*components.LayerComponent,
	](s.entityManager)

	items := make([]drawItem, 0, len(ids))
	for _, id := range ids {
		if !hasCapability(s.entityManager, id, components.CapRenderable) {
			continue
		}
		layer, _ := ecs.GetComponent[*components.LayerComponent](s.entityManager, id)
		rect, _ := VisualRect(s.entityManager, id)
		items = append(items, drawItem{id: id, layer: int(layer.Z), centerY: rect.CenterY()})
	}

	// ids 已按ID升序，稳定排序保留ID顺序作为最后的比较键
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return items[i].centerY < items[j].centerY
	})

	order := make([]ecs.EntityID, len(items))
	for i, it := range items {
		order[i] = it.id
	}
	return order
}

// Draw 绘制所有可渲染实体
func (s *RenderSystem) Draw(ctx *RenderContext) {
	if ctx == nil || ctx.Screen == nil {
		return
	}
	view := utils.Rect{X: ctx.Offset.X, Y: ctx.Offset.Y, W: ctx.Viewport.X, H: ctx.Viewport.Y}
	cull := ctx.Viewport.X > 0 && ctx.Viewport.Y > 0

	for _, id := range s.DrawOrder() {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if sprite.Image == nil {
			continue
		}
		rect, _ := VisualRect(s.entityManager, id)
		if cull && !rect.Intersects(view) {
			continue
		}
		s.drawSprite(ctx, id, sprite, rect)
	}
}

func (s *RenderSystem) drawSprite(ctx *RenderContext, id ecs.EntityID, sprite *components.SpriteComponent, rect utils.Rect) {
	bounds := sprite.Image.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	var geo ebiten.GeoM
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
		geo.Scale(scale.ScaleX, scale.ScaleY)
	} else if rect.W != iw || rect.H != ih {
		geo.Scale(rect.W/iw, rect.H/ih)
	}
	geo.Translate(rect.X-ctx.Offset.X, rect.Y-ctx.Offset.Y)

	if sprite.Flash {
		op := &colorm.DrawImageOptions{GeoM: geo}
		colorm.DrawImage(ctx.Screen, sprite.Image, s.flash, op)
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: geo}
	ctx.Screen.DrawImage(sprite.Image, op)
}
