package components

// VisualDescriptor 交给展示层绘制的视觉描述
//
// 进入/退出/循环中的条目每帧重新计算；Visible/Hidden 条目使用静态终态。
type VisualDescriptor struct {
	ItemID string
	State  RevealState

	Opacity    float64
	TranslateX float64
	TranslateY float64
	Scale      float64
	// Rotation 旋转角度（度）
	Rotation float64

	// Animating 本帧是否处于插值中
	Animating bool
	// Looping 是否为循环装饰元素
	Looping bool
}

// VisualComponent 实体上缓存的最近一次视觉描述
type VisualComponent struct {
	Descriptor VisualDescriptor
	// Valid 缓存是否可用（状态变化后失效）
	Valid bool
	// CachedState 缓存对应的状态
	CachedState RevealState
}
