package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效ID
type EntityID uint64

// ComponentSet 是一个实体的全部组件（组件类型 -> 组件实例）
// 用于在两个 EntityManager 之间搬运实体（如玩家跨地图）
type ComponentSet map[reflect.Type]interface{}

// EntityManager 管理所有实体和组件
//
// 关卡内所有系统（土壤、移动、渲染、收获）都通过它查询实体，
// 每个关卡拥有自己的 EntityManager，切换地图时关卡被缓存，状态得以保留。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]ComponentSet
	// 待删除的实体ID列表（帧末统一删除）
	entitiesToDestroy []EntityID
	// 已标记删除的实体，防止同一帧内被再次处理
	pendingDestroy map[EntityID]bool
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]ComponentSet),
		entitiesToDestroy: make([]EntityID, 0),
		pendingDestroy:    make(map[EntityID]bool),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(ComponentSet)
	return id
}

// Exists 检查实体是否存在且未被标记删除
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok && !em.pendingDestroy[id]
}

// DestroyEntity 标记实体待删除(不立即删除)
// 重复标记是安全的
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.components[id]; !ok || em.pendingDestroy[id] {
		return
	}
	em.pendingDestroy[id] = true
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// IsPendingDestroy 检查实体是否已被标记删除
func (em *EntityManager) IsPendingDestroy(id EntityID) bool {
	return em.pendingDestroy[id]
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 每帧末尾由关卡调用一次
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
		delete(em.pendingDestroy, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// EntityCount 返回当前存活的实体数量（包含待删除的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表（按ID升序，已标记删除的实体被跳过）
//
// 返回的切片是快照，遍历期间销毁实体是安全的。
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		if em.pendingDestroy[id] {
			continue
		}
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	// map 遍历顺序随机，排序保证每帧处理顺序稳定
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// ExtractEntity 把实体的全部组件取出并立即从管理器中删除
// 返回 nil 表示实体不存在
func (em *EntityManager) ExtractEntity(id EntityID) ComponentSet {
	compMap, ok := em.components[id]
	if !ok {
		return nil
	}
	delete(em.components, id)
	delete(em.pendingDestroy, id)
	return compMap
}

// AdoptEntity 用一组已有组件创建新实体
func (em *EntityManager) AdoptEntity(set ComponentSet) EntityID {
	id := em.CreateEntity()
	for t, c := range set {
		em.components[id][t] = c
	}
	return id
}

// TransferEntity 把实体从 src 搬到 dst，组件实例（指针）保持不变
// 返回实体在 dst 中的新ID，实体不存在时返回 0
func TransferEntity(src, dst *EntityManager, id EntityID) EntityID {
	set := src.ExtractEntity(id)
	if set == nil {
		return 0
	}
	return dst.AdoptEntity(set)
}
