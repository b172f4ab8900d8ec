// Package canvas 定义特效引擎的绘制能力接口
//
// 粒子系统与覆盖层只依赖这里的最小接口，宿主（Ebitengine 窗口、tcell 终端、
// 测试用的 Recorder）各自实现，物理逻辑因此与具体显示后端解耦。
//
// 所有坐标均为画布本地的逻辑像素（CSS 像素），实现负责乘以像素密度。
package canvas

import "image/color"

// Surface 是粒子系统需要的绘制能力
type Surface interface {
	// Clear 清空整个画布
	Clear()
	// DrawCircle 绘制实心圆
	DrawCircle(x, y, radius float64, c color.Color)
	// DrawRect 绘制以 (x, y) 为中心、旋转 rotation 弧度的实心矩形
	DrawRect(x, y, width, height, rotation float64, c color.Color)
	// DrawGlow 绘制柔和光晕（径向衰减）
	DrawGlow(x, y, radius float64, c color.Color)
}

// Align 文本水平对齐方式
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextSurface 在 Surface 基础上增加文本绘制，供覆盖层使用
type TextSurface interface {
	Surface
	// DrawText 以 (x, y) 为基准绘制文本，y 为文本顶部
	DrawText(s string, x, y, size float64, c color.Color, align Align)
}

// Rect 轴对齐矩形（屏幕坐标）
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside r (right/bottom edges excluded).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty 宽或高不为正时视为不可测量
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}
