// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放），只持续一帧
	DragStateEnded
)

// PointerSample 一帧的指针采样（鼠标左键或一个触摸点）
type PointerSample struct {
	Pressed bool
	X, Y    int
	// TouchID 触摸点ID，鼠标为 -1
	TouchID ebiten.TouchID
}

// DragInfo 拖拽信息
type DragInfo struct {
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// PrevX, PrevY 上一帧位置
	PrevX, PrevY int
	// TouchID 当前跟踪的触摸ID（-1 表示鼠标）
	TouchID ebiten.TouchID
}

// DragManager 跟踪触摸/鼠标拖拽，落地页用它实现拖动滚动
type DragManager struct {
	info DragInfo
}

// NewDragManager 创建拖拽管理器
func NewDragManager() *DragManager {
	return &DragManager{info: DragInfo{TouchID: -1}}
}

// Update 读取本帧的指针输入并推进状态（每帧调用一次）
func (dm *DragManager) Update() {
	dm.Step(dm.sample())
}

// sample 读取指针：正在跟踪的触摸点优先，其次任意触摸点，最后鼠标
func (dm *DragManager) sample() PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	for _, id := range touchIDs {
		if id == dm.info.TouchID {
			x, y := ebiten.TouchPosition(id)
			return PointerSample{Pressed: true, X: x, Y: y, TouchID: id}
		}
	}
	if len(touchIDs) > 0 && dm.info.State != DragStateDragging {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerSample{Pressed: true, X: x, Y: y, TouchID: touchIDs[0]}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:       x,
		Y:       y,
		TouchID: -1,
	}
}

// Step 用一次采样推进拖拽状态
func (dm *DragManager) Step(p PointerSample) {
	if dm.info.State == DragStateEnded {
		dm.Reset()
	}

	switch dm.info.State {
	case DragStateNone:
		if p.Pressed {
			dm.info = DragInfo{
				State:    DragStateStarted,
				StartX:   p.X,
				StartY:   p.Y,
				CurrentX: p.X,
				CurrentY: p.Y,
				PrevX:    p.X,
				PrevY:    p.Y,
				TouchID:  p.TouchID,
			}
		}

	case DragStateStarted, DragStateDragging:
		dm.info.PrevX, dm.info.PrevY = dm.info.CurrentX, dm.info.CurrentY
		if !p.Pressed || p.TouchID != dm.info.TouchID {
			dm.info.State = DragStateEnded
			return
		}
		dm.info.State = DragStateDragging
		dm.info.CurrentX, dm.info.CurrentY = p.X, p.Y
	}
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{TouchID: -1}
}

// GetState 获取当前拖拽状态
func (dm *DragManager) GetState() DragState {
	return dm.info.State
}

// GetInfo 获取完整拖拽信息
func (dm *DragManager) GetInfo() DragInfo {
	return dm.info
}

// IsDragging 是否正在拖拽
func (dm *DragManager) IsDragging() bool {
	return dm.info.State == DragStateDragging
}

// GetDragDistance 从起点到当前位置的距离
func (dm *DragManager) GetDragDistance() (dx, dy int) {
	return dm.info.CurrentX - dm.info.StartX, dm.info.CurrentY - dm.info.StartY
}

// FrameDelta 本帧相对上一帧的移动量
func (dm *DragManager) FrameDelta() (dx, dy int) {
	return dm.info.CurrentX - dm.info.PrevX, dm.info.CurrentY - dm.info.PrevY
}

// IsTouchDrag 是否为触摸拖拽
func (dm *DragManager) IsTouchDrag() bool {
	return dm.info.TouchID >= 0
}
