package components

// GroupBoundsComponent 分组在页面坐标系中的区域
// TriggerSystem 用它和视口计算可见比例
type GroupBoundsComponent struct {
	GroupIndex int
	// Y 区域顶部（页面坐标，像素）
	Y float64
	// Height 区域高度（像素）
	Height float64
}

// VisibleFraction 计算区域在视口 [top, top+height) 中的可见比例
//
// 高度为 0 的区域视为一个点：点在视口内为 1，否则为 0。
func (b *GroupBoundsComponent) VisibleFraction(viewTop, viewHeight float64) float64 {
	viewBottom := viewTop + viewHeight
	if b.Height <= 0 {
		if b.Y >= viewTop && b.Y < viewBottom {
			return 1
		}
		return 0
	}

	top := max(b.Y, viewTop)
	bottom := min(b.Y+b.Height, viewBottom)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / b.Height
}
