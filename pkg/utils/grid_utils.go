package utils

import "math"

// TileCoord 网格坐标 (行, 列)
type TileCoord struct {
	Row int
	Col int
}

// Up 上方邻居
func (c TileCoord) Up() TileCoord { return TileCoord{Row: c.Row - 1, Col: c.Col} }

// Down 下方邻居
func (c TileCoord) Down() TileCoord { return TileCoord{Row: c.Row + 1, Col: c.Col} }

// Left 左侧邻居
func (c TileCoord) Left() TileCoord { return TileCoord{Row: c.Row, Col: c.Col - 1} }

// Right 右侧邻居
func (c TileCoord) Right() TileCoord { return TileCoord{Row: c.Row, Col: c.Col + 1} }

// Neighbors4 返回上、右、下、左四个正交邻居
func (c TileCoord) Neighbors4() [4]TileCoord {
	return [4]TileCoord{c.Up(), c.Right(), c.Down(), c.Left()}
}

// WorldToTile 将世界坐标转换为网格坐标
// 参数:
//   - x, y: 世界坐标（像素）
//   - tileSize: 格子边长（像素）
//
// 返回:
//   - TileCoord: 所在格子（整除向下取整，负坐标落在负格子上）
func WorldToTile(x, y float64, tileSize int) TileCoord {
	ts := float64(tileSize)
	return TileCoord{
		Row: int(math.Floor(y / ts)),
		Col: int(math.Floor(x / ts)),
	}
}

// TileToWorld 返回格子左上角的世界坐标
func TileToWorld(c TileCoord, tileSize int) (x, y float64) {
	return float64(c.Col * tileSize), float64(c.Row * tileSize)
}

// TileRect 返回格子的世界矩形
func TileRect(c TileCoord, tileSize int) Rect {
	x, y := TileToWorld(c, tileSize)
	return Rect{X: x, Y: y, W: float64(tileSize), H: float64(tileSize)}
}
