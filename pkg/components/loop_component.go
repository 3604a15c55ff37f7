package components

import "time"

// LoopComponent 持续循环的装饰元素（如扫描中的旋转图标）
//
// 可见性跟随所属分组的触发：分组触发前停在起始姿态（不可见），
// 触发后在 StartedAt = 触发时刻 + FireAt 开始淡入并持续旋转。
// 循环本身不参与揭示状态机。
type LoopComponent struct {
	ItemID     string
	GroupIndex int

	// Period 一个周期的时长
	Period time.Duration

	// Degrees 每个周期旋转的角度（360 = 一整圈）
	Degrees float64

	// FireAt 相对分组触发时刻的偏移
	FireAt time.Duration

	// FadeIn 出现时的淡入时长
	FadeIn time.Duration

	// Started 分组已触发，StartedAt 有效
	Started bool

	// StartedAt 循环开始的时刻
	StartedAt time.Duration

	// Running 当前时刻已越过 StartedAt（由 LoopSystem 更新）
	Running bool

	// Elapsed 已循环时间（由 LoopSystem 更新）
	Elapsed time.Duration
}
