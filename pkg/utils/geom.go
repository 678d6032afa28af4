package utils

import "math"

// Vec 二维向量（世界坐标或方向）
type Vec struct {
	X, Y float64
}

// Len 返回向量长度
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize 返回单位向量，零向量原样返回
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Rect 轴对齐矩形（世界坐标，左上角 + 宽高）
// 渲染矩形和碰撞盒都使用它
type Rect struct {
	X, Y float64 // 左上角
	W, H float64 // 宽高
}

// NewRectFromCenter 以中心点创建矩形
func NewRectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Left 左边界
func (r Rect) Left() float64 { return r.X }

// Right 右边界
func (r Rect) Right() float64 { return r.X + r.W }

// Top 上边界
func (r Rect) Top() float64 { return r.Y }

// Bottom 下边界
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center 中心点
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CenterY 中心点Y（用于深度排序）
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// Intersects 检查两个矩形是否重叠
// 边缘恰好接触不算重叠
func (r Rect) Intersects(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// ContainsPoint 检查点是否在矩形内（左闭右开）
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inflate 以中心为基准扩张/收缩矩形，dw/dh 为负时收缩
func (r Rect) Inflate(dw, dh float64) Rect {
	w := math.Max(0, r.W+dw)
	h := math.Max(0, r.H+dh)
	cx, cy := r.Center()
	return NewRectFromCenter(cx, cy, w, h)
}

// ClampF 把 val 限制在 [min, max] 范围内
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
