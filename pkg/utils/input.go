// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态
// 统一处理鼠标和触摸输入
type PointerState struct {
	// X, Y 指针位置（触摸优先）
	X, Y int
	// Pressed 鼠标左键或任一触点处于按下状态
	Pressed bool
	// JustClicked 鼠标左键刚刚按下（桌面端立即响应）
	JustClicked bool
	// JustReleasedTouch 触摸刚刚抬起，位置为最后一次触摸位置
	JustReleasedTouch bool
	// IsTouching 当前有活动触点
	IsTouching bool
}

// 触摸释放时 ebiten 已无法查询触点位置，保存最后一次位置
var lastTouchX, lastTouchY int

// ReadPointer 读取当前帧的指针状态，每帧调用一次
func ReadPointer() PointerState {
	var state PointerState

	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(touchIDs[0])
		state.X, state.Y = lastTouchX, lastTouchY
		state.Pressed = true
		state.IsTouching = true
		return state
	}

	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		state.X, state.Y = lastTouchX, lastTouchY
		state.JustReleasedTouch = true
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustClicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return state
}

// DragScroller 把触摸拖动转换为垂直滚动量
//
// 移动距离超过 Threshold 后进入拖动状态，此后的抬起不再视为点击。
type DragScroller struct {
	Threshold int

	active  bool
	dragged bool
	startY  int
	lastY   int
}

// NewDragScroller 创建拖动滚动器
func NewDragScroller(threshold int) *DragScroller {
	return &DragScroller{Threshold: threshold}
}

// Feed 输入本帧的按下状态和 Y 坐标，返回本帧应滚动的距离（向上拖为正）
func (d *DragScroller) Feed(pressed bool, y int) float64 {
	if !pressed {
		d.active = false
		return 0
	}
	if !d.active {
		d.active = true
		d.dragged = false
		d.startY, d.lastY = y, y
		return 0
	}

	if !d.dragged {
		dy := y - d.startY
		if dy < 0 {
			dy = -dy
		}
		if dy <= d.Threshold {
			return 0
		}
		d.dragged = true
	}

	delta := float64(d.lastY - y)
	d.lastY = y
	return delta
}

// Dragged 最近一次按下是否发生了拖动
func (d *DragScroller) Dragged() bool {
	return d.dragged
}
