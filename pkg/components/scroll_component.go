package components

// ScrollComponent 页面滚动位置和平滑滚动（锚点跳转）动画状态
type ScrollComponent struct {
	// OffsetY 当前滚动位置（页面坐标，视口顶部）
	OffsetY float64

	// MaxOffsetY 最大滚动位置（页面高度 - 视口高度）
	MaxOffsetY float64

	// TargetY 平滑滚动目标
	TargetY float64

	// StartY 动画起点（用于计算进度）
	StartY float64

	// Speed 平滑滚动速度（像素/秒）
	Speed float64

	// Progress 动画进度 [0,1]
	Progress float64

	// IsAnimating 是否正在平滑滚动
	IsAnimating bool

	// EasingType 缓动类型："linear", "easeOut", "easeInOut"
	EasingType string
}
