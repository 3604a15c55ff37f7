package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受进度 t ∈ [0, 1]，返回缓动后的值；t=0 → 0，t=1 → 1。
// EaseSpring 会短暂越过 1（回弹），其余函数结果都在 [0, 1] 内。

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性（匀速）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出：开始快，结束慢
// f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseSpring 带回弹的缓出（近似弹簧效果，用于评分卡片和圆点弹出）
// f(t) = 1 + c3(t-1)³ + c1(t-1)²
func EaseSpring(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// EasingByName 按名称查找缓动函数，未知名称返回 EaseOutCubic
//
// 支持: "linear", "easeOut", "easeOutQuad", "easeInOut", "spring"
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "easeOutQuad":
		return EaseOutQuad
	case "easeInOut":
		return EaseInOutCubic
	case "spring":
		return EaseSpring
	default:
		return EaseOutCubic
	}
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Lerp 线性插值：t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
