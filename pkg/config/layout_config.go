package config

// 布局配置常量
// 页面使用"页面坐标系"：原点在页面顶部，向下为正；视口在页面上滚动。

const (
	// WindowWidth, WindowHeight 逻辑窗口尺寸（ebiten Layout 返回值）
	WindowWidth  = 960
	WindowHeight = 640

	// PageMarginX 内容区左右边距
	PageMarginX = 48.0

	// NavHeight 固定导航栏高度（不随页面滚动）
	NavHeight = 56.0

	// ScrollStep 每格滚轮/方向键滚动的像素数
	ScrollStep = 48.0

	// PageStep PageUp/PageDown 滚动的像素数（视口高度减去导航栏）
	PageStep = WindowHeight - NavHeight

	// AnchorScrollSpeed 锚点跳转的平滑滚动速度（像素/秒）
	AnchorScrollSpeed = 2400.0
)

// ContentWidth 内容区宽度
func ContentWidth() float64 {
	return WindowWidth - 2*PageMarginX
}

// ViewportHeight 视口可见高度（扣除导航栏）
func ViewportHeight() float64 {
	return WindowHeight - NavHeight
}

// MaxScroll 根据页面高度计算最大滚动位置
func MaxScroll(pageHeight float64) float64 {
	if pageHeight <= ViewportHeight() {
		return 0
	}
	return pageHeight - ViewportHeight()
}
