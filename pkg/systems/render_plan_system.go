package systems

import (
	"math"
	"time"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/ecs"
	"github.com/decker502/redflag/pkg/schedule"
	"github.com/decker502/redflag/pkg/utils"
)

// Emit 计算条目在给定状态和状态内已用时间下的视觉描述
//
// 纯函数，对任何输入都有定义：
//   - Hidden：起始姿态
//   - Entering：起始姿态 → 最终姿态，按缓动曲线插值
//   - Visible：最终姿态（opacity=1, offset=0, scale=1）
//   - Exiting：最终姿态 → 起始姿态
//
// 动画时长为 0 时进度直接为 1。
func Emit(state components.RevealState, entry schedule.Entry, elapsed time.Duration, motion components.MotionComponent) components.VisualDescriptor {
	d := components.VisualDescriptor{
		ItemID: entry.ItemID,
		State:  state,
	}

	switch state {
	case components.RevealEntering:
		d.Animating = true
		applyPose(&d, motion, ease(motion, progress(elapsed, entry.AnimationDuration)))
	case components.RevealExiting:
		d.Animating = true
		applyPose(&d, motion, 1-ease(motion, progress(elapsed, entry.AnimationDuration)))
	case components.RevealVisible:
		applyPose(&d, motion, 1)
	default:
		applyPose(&d, motion, 0)
	}
	return d
}

// EmitLoop 计算循环装饰元素的视觉描述
//
// 分组触发前（或未到 StartedAt）停在起始姿态；之后按 FadeIn 淡入，
// rotation = Degrees * (elapsed mod Period) / Period
func EmitLoop(loop *components.LoopComponent, motion components.MotionComponent) components.VisualDescriptor {
	d := components.VisualDescriptor{
		ItemID:  loop.ItemID,
		State:   components.RevealHidden,
		Looping: true,
	}
	if !loop.Running {
		applyPose(&d, motion, 0)
		return d
	}

	d.State = components.RevealVisible
	if loop.Elapsed < loop.FadeIn {
		d.State = components.RevealEntering
		d.Animating = true
	}
	applyPose(&d, motion, ease(motion, progress(loop.Elapsed, loop.FadeIn)))
	if loop.Period > 0 && loop.Elapsed > 0 {
		phase := loop.Elapsed % loop.Period
		d.Rotation = loop.Degrees * float64(phase) / float64(loop.Period)
	}
	return d
}

func progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return utils.Clamp01(float64(elapsed) / float64(duration))
}

func ease(motion components.MotionComponent, p float64) float64 {
	return utils.EasingByName(motion.Easing)(p)
}

// applyPose t=0 为起始姿态，t=1 为最终姿态
// 弹性曲线允许 t 略超过 1（缩放回弹），不透明度始终限制在 [0,1]
func applyPose(d *components.VisualDescriptor, motion components.MotionComponent, t float64) {
	d.Opacity = utils.Clamp01(utils.Lerp(motion.Opacity, 1, t))
	d.TranslateX = utils.Lerp(motion.OffsetX, 0, t)
	d.TranslateY = utils.Lerp(motion.OffsetY, 0, t)
	d.Scale = math.Max(0, utils.Lerp(motion.Scale, 1, t))
}

// RenderPlanSystem 每帧为展示层生成视觉描述列表
//
// Hidden/Visible 条目的描述在状态不变时直接复用缓存，
// 只有动画中的条目和循环元素每帧重新计算。
type RenderPlanSystem struct {
	entityManager *ecs.EntityManager
	recomputed    int
}

// NewRenderPlanSystem 创建渲染计划系统
func NewRenderPlanSystem(em *ecs.EntityManager) *RenderPlanSystem {
	return &RenderPlanSystem{entityManager: em}
}

// Recomputed 累计重新计算的描述数量（缓存命中不计）
func (rp *RenderPlanSystem) Recomputed() int {
	return rp.recomputed
}

// Frame 生成当前帧的视觉描述，按实体创建顺序排列
func (rp *RenderPlanSystem) Frame(now time.Duration) []components.VisualDescriptor {
	em := rp.entityManager
	ids := ecs.GetEntitiesWith1[*components.VisualComponent](em)
	result := make([]components.VisualDescriptor, 0, len(ids))

	for _, id := range ids {
		visual, _ := ecs.GetComponent[*components.VisualComponent](em, id)

		if loop, ok := ecs.GetComponent[*components.LoopComponent](em, id); ok {
			motion := components.DefaultMotion()
			if m, ok := ecs.GetComponent[*components.MotionComponent](em, id); ok {
				motion = *m
			}
			rp.recomputed++
			visual.Descriptor = EmitLoop(loop, motion)
			visual.Valid = true
			visual.CachedState = visual.Descriptor.State
			result = append(result, visual.Descriptor)
			continue
		}

		reveal, ok := ecs.GetComponent[*components.RevealComponent](em, id)
		if !ok {
			continue
		}
		static := reveal.State == components.RevealHidden || reveal.State == components.RevealVisible
		if static && visual.Valid && visual.CachedState == reveal.State {
			result = append(result, visual.Descriptor)
			continue
		}

		motion := components.DefaultMotion()
		if m, ok := ecs.GetComponent[*components.MotionComponent](em, id); ok {
			motion = *m
		}
		entry := schedule.Entry{
			ItemID:            reveal.ItemID,
			GroupIndex:        reveal.GroupIndex,
			Order:             reveal.Order,
			FireAt:            reveal.FireAt,
			AnimationDuration: reveal.Duration,
		}

		rp.recomputed++
		visual.Descriptor = Emit(reveal.State, entry, reveal.Elapsed(now), motion)
		visual.Valid = static
		visual.CachedState = reveal.State
		result = append(result, visual.Descriptor)
	}
	return result
}
