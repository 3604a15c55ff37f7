package systems

import (
	"math"
	"time"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/ecs"
	"github.com/decker502/redflag/pkg/utils"
)

// ScrollSystem 管理页面滚动位置和锚点平滑滚动。
// 滚轮/方向键直接改变位置；锚点跳转从当前位置平滑移动到目标位置。
type ScrollSystem struct {
	entityManager *ecs.EntityManager
	scrollEntity  ecs.EntityID
	viewHeight    float64
}

// NewScrollSystem 创建滚动系统。
func NewScrollSystem(em *ecs.EntityManager, viewHeight, maxOffset float64) *ScrollSystem {
	ss := &ScrollSystem{
		entityManager: em,
		viewHeight:    viewHeight,
	}

	ss.scrollEntity = em.CreateEntity()
	ecs.AddComponent(em, ss.scrollEntity, &components.ScrollComponent{
		MaxOffsetY: math.Max(0, maxOffset),
		Speed:      2400,
		EasingType: "easeInOut",
	})

	return ss
}

func (ss *ScrollSystem) component() *components.ScrollComponent {
	sc, ok := ecs.GetComponent[*components.ScrollComponent](ss.entityManager, ss.scrollEntity)
	if !ok {
		// 卸载后实体已被清理，返回一个空组件避免调用方判空
		return &components.ScrollComponent{}
	}
	return sc
}

// Offset 当前滚动位置
func (ss *ScrollSystem) Offset() float64 {
	return ss.component().OffsetY
}

// Viewport 当前视口
func (ss *ScrollSystem) Viewport() Viewport {
	return Viewport{Top: ss.Offset(), Height: ss.viewHeight}
}

// SetMaxOffset 页面高度变化后更新滚动范围
func (ss *ScrollSystem) SetMaxOffset(maxOffset float64) {
	sc := ss.component()
	sc.MaxOffsetY = math.Max(0, maxOffset)
	sc.OffsetY = ss.clamp(sc, sc.OffsetY)
}

// ScrollBy 立即滚动 dy 像素，会中断正在进行的平滑滚动。
func (ss *ScrollSystem) ScrollBy(dy float64) {
	sc := ss.component()
	sc.IsAnimating = false
	sc.OffsetY = ss.clamp(sc, sc.OffsetY+dy)
}

// ScrollTo 立即跳转到 y。
func (ss *ScrollSystem) ScrollTo(y float64) {
	sc := ss.component()
	sc.IsAnimating = false
	sc.OffsetY = ss.clamp(sc, y)
}

// MoveTo 平滑滚动到目标位置。
// 参数:
//   - targetY: 目标位置（页面坐标）
//   - speed: 速度（像素/秒），<= 0 时立即跳转
func (ss *ScrollSystem) MoveTo(targetY, speed float64) {
	sc := ss.component()
	targetY = ss.clamp(sc, targetY)
	if speed <= 0 || targetY == sc.OffsetY {
		sc.IsAnimating = false
		sc.OffsetY = targetY
		return
	}

	sc.StartY = sc.OffsetY
	sc.TargetY = targetY
	sc.Speed = speed
	sc.Progress = 0
	sc.IsAnimating = true
}

// IsAnimating 返回是否正在平滑滚动。
func (ss *ScrollSystem) IsAnimating() bool {
	return ss.component().IsAnimating
}

// Update 推进平滑滚动动画。
func (ss *ScrollSystem) Update(dt time.Duration) {
	sc := ss.component()
	if !sc.IsAnimating {
		return
	}

	distance := math.Abs(sc.TargetY - sc.StartY)
	if distance == 0 {
		sc.OffsetY = sc.TargetY
		sc.IsAnimating = false
		return
	}

	sc.Progress = utils.Clamp01(sc.Progress + sc.Speed*dt.Seconds()/distance)
	t := utils.EasingByName(sc.EasingType)(sc.Progress)
	sc.OffsetY = ss.clamp(sc, utils.Lerp(sc.StartY, sc.TargetY, t))

	if sc.Progress >= 1 {
		sc.OffsetY = sc.TargetY
		sc.IsAnimating = false
	}
}

func (ss *ScrollSystem) clamp(sc *components.ScrollComponent, y float64) float64 {
	return math.Max(0, math.Min(sc.MaxOffsetY, y))
}
