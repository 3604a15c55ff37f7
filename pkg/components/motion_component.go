package components

// MotionComponent 条目的起始姿态（最终姿态固定为 opacity=1, offset=0, scale=1）
//
// 例如 "从下方 20px 淡入" 对应 {Opacity: 0, OffsetY: 20, Scale: 1}；
// 风险评分卡片的弹出对应 {Opacity: 0, Scale: 0.9}。
type MotionComponent struct {
	Opacity float64
	OffsetX float64
	OffsetY float64
	Scale   float64

	// Easing 缓动曲线名："linear", "easeOut", "easeInOut", "spring"
	Easing string
}

// DefaultMotion 默认动作：从下方 20px 淡入
func DefaultMotion() MotionComponent {
	return MotionComponent{
		Opacity: 0,
		OffsetY: 20,
		Scale:   1,
		Easing:  "easeOut",
	}
}
