package components

import "time"

// RevealState 条目的揭示状态
type RevealState int

const (
	// RevealHidden 初始状态：不可见，停在起始姿态
	RevealHidden RevealState = iota
	// RevealEntering 进入动画中
	RevealEntering
	// RevealVisible 静止在最终姿态
	RevealVisible
	// RevealExiting 退出动画中（仅重复分组）
	RevealExiting
)

// String 返回状态名
func (s RevealState) String() string {
	switch s {
	case RevealHidden:
		return "Hidden"
	case RevealEntering:
		return "Entering"
	case RevealVisible:
		return "Visible"
	case RevealExiting:
		return "Exiting"
	default:
		return "Unknown"
	}
}

// CanTransition 状态转换表
//
//	Hidden   → Entering
//	Entering → Visible
//	Visible  → Exiting   (repeat)
//	Exiting  → Hidden    (repeat)
func CanTransition(from, to RevealState, repeat bool) bool {
	switch {
	case from == RevealHidden && to == RevealEntering:
		return true
	case from == RevealEntering && to == RevealVisible:
		return true
	case from == RevealVisible && to == RevealExiting:
		return repeat
	case from == RevealExiting && to == RevealHidden:
		return repeat
	}
	return false
}

// RevealComponent 单个内容条目的揭示状态机数据
//
// 所有时间都是舞台时钟上的绝对时刻，而不是逐帧累加的计时器，
// 因此计时回调的抖动不会改变组内的揭示顺序。
type RevealComponent struct {
	// ItemID 内容条目ID
	ItemID string

	// GroupIndex 所属分组
	GroupIndex int

	// Order 组内排序键
	Order int

	// Repeat 是否允许 Visible → Exiting → Hidden
	Repeat bool

	// State 当前状态
	State RevealState

	// StateSince 进入当前状态的时刻
	StateSince time.Duration

	// FireAt 相对触发时刻的延迟（来自时间表）
	FireAt time.Duration

	// Duration 进入/退出动画时长
	Duration time.Duration

	// Fired 分组已触发，等待 FireAt 到期
	Fired bool

	// FiredAt 分组触发时刻
	FiredAt time.Duration

	// PendingEnter 退出动画期间收到的再次进入，回到 Hidden 后立即处理
	PendingEnter bool

	// PendingExit 进入动画期间收到的退出，到达 Visible 后立即处理
	PendingExit bool

	// ExitAt 退出请求时刻
	ExitAt time.Duration
}

// Elapsed 当前状态已持续的时间
func (c *RevealComponent) Elapsed(now time.Duration) time.Duration {
	if now < c.StateSince {
		return 0
	}
	return now - c.StateSince
}
