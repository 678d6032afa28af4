package components

import "github.com/gonewx/spaza-valley/pkg/config"

// LayerComponent 渲染层
// 渲染时先按层排序，同层再按视觉矩形中心Y排序
type LayerComponent struct {
	Z config.Layer
}
