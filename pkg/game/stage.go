package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/config"
	"github.com/decker502/redflag/pkg/content"
	"github.com/decker502/redflag/pkg/ecs"
	"github.com/decker502/redflag/pkg/entities"
	"github.com/decker502/redflag/pkg/logging"
	"github.com/decker502/redflag/pkg/schedule"
	"github.com/decker502/redflag/pkg/systems"
	"github.com/decker502/redflag/pkg/trigger"
)

// ErrStageMounted 舞台已挂载时再次 Mount
var ErrStageMounted = errors.New("reveal stage already mounted")

// StageOption 舞台选项
type StageOption func(*RevealStage)

// WithReducedMotion 减少动画：所有延迟、交错和动画时长都视为 0
// 条目仍然经过 Entering 状态，只是立即完成
func WithReducedMotion(on bool) StageOption {
	return func(s *RevealStage) {
		s.reducedMotion = on
	}
}

// WithTransitionHandler 订阅状态转换
func WithTransitionHandler(handler systems.TransitionHandler) StageOption {
	return func(s *RevealStage) {
		s.handler = handler
	}
}

// RevealStage 揭示引擎的挂载/更新/卸载生命周期
//
// 每帧的执行顺序：
//  1. 推进舞台时钟
//  2. TriggerSystem 观测视口，向 RevealSystem 分发触发事件
//  3. RevealSystem 按绝对时钟推进状态机
//  4. LoopSystem 推进循环元素
//  5. RenderPlanSystem 生成视觉描述
//
// 所有方法只能在帧线程上调用。
type RevealStage struct {
	policy        *config.RevealConfig
	reducedMotion bool
	handler       systems.TransitionHandler

	entityManager *ecs.EntityManager
	triggers      *systems.TriggerSystem
	reveals       *systems.RevealSystem
	loops         *systems.LoopSystem
	plan          *systems.RenderPlanSystem

	registry    *content.Registry
	now         time.Duration
	mounted     bool
	descriptors []components.VisualDescriptor
}

// NewRevealStage 创建未挂载的舞台；policy 为 nil 时使用内置默认配置
func NewRevealStage(policy *config.RevealConfig, opts ...StageOption) *RevealStage {
	if policy == nil {
		policy = config.DefaultRevealConfig()
	}
	s := &RevealStage{
		policy:        policy,
		entityManager: ecs.NewEntityManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount 注册条目、计算时间表、创建实体，并在 t=0 触发挂载触发的分组
//
// 时间表不合法时返回 *schedule.InvalidScheduleError（已包装），舞台保持未挂载。
func (s *RevealStage) Mount(reg *content.Registry) error {
	if s.mounted {
		return ErrStageMounted
	}
	if reg == nil {
		return fmt.Errorf("mount: %w: nil registry", content.ErrInvalidItem)
	}

	items := reg.List()
	entries, err := schedule.ScheduleGroups(items, s.timing)
	if err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	lookup := schedule.Lookup(entries)

	em := ecs.NewEntityManager()
	s.entityManager = em
	s.reveals = systems.NewRevealSystem(em, s.handler)
	s.loops = systems.NewLoopSystem(em)
	s.triggers = systems.NewTriggerSystem(em, func(ev trigger.FireEvent) {
		s.reveals.Fire(ev)
		s.loops.Fire(ev)
	})
	s.plan = systems.NewRenderPlanSystem(em)
	s.now = 0

	for _, group := range reg.Groups() {
		entities.NewGroupEntity(em, s.policy.Group(group))
	}

	loops := 0
	for _, item := range items {
		policy := s.policy.Group(item.GroupIndex)
		if policy.Loop != nil && entities.IsDecorative(item) {
			entities.NewLoopEntity(em, item, lookup[item.ID], policy)
			loops++
			continue
		}
		entities.NewRevealItemEntity(em, item, lookup[item.ID], policy)
	}

	s.registry = reg
	s.mounted = true
	logging.L().Infof("[RevealStage] mounted %d items in %d groups (%d loops, reducedMotion=%v)",
		len(items), len(reg.Groups()), loops, s.reducedMotion)

	s.triggers.Mount(s.now)
	s.reveals.Update(s.now)
	s.loops.Update(s.now)
	s.descriptors = s.plan.Frame(s.now)
	return nil
}

// timing 分组时间参数；减少动画模式下全部为 0
func (s *RevealStage) timing(group int) schedule.Timing {
	if s.reducedMotion {
		return schedule.Timing{}
	}
	return s.policy.Group(group).Timing
}

// Update 推进 dt 并处理一次视口观测
func (s *RevealStage) Update(dt time.Duration, vp systems.Viewport) {
	if !s.mounted {
		return
	}
	if dt > 0 {
		s.now += dt
	}

	s.triggers.Update(s.now, vp)
	s.reveals.Update(s.now)
	s.loops.Update(s.now)
	s.descriptors = s.plan.Frame(s.now)
}

// Descriptors 当前帧的视觉描述；卸载后为空
func (s *RevealStage) Descriptors() []components.VisualDescriptor {
	return s.descriptors
}

// Unmount 释放所有分组闩锁并销毁全部实体，可重复调用
func (s *RevealStage) Unmount() {
	if !s.mounted {
		return
	}
	s.triggers.Release()
	s.reveals.Release()
	s.entityManager.DestroyAll()
	s.descriptors = nil
	s.mounted = false
	logging.L().Infof("[RevealStage] unmounted at %v", s.now)
}

// Remount 用新的注册表替换当前内容（热重载），时钟从 0 重新开始
func (s *RevealStage) Remount(reg *content.Registry) error {
	s.Unmount()
	return s.Mount(reg)
}

// SetPolicy 替换揭示策略，下次 Mount/Remount 生效
func (s *RevealStage) SetPolicy(policy *config.RevealConfig) {
	if policy == nil {
		policy = config.DefaultRevealConfig()
	}
	s.policy = policy
}

// SetReducedMotion 切换减少动画模式，下次 Mount/Remount 生效
func (s *RevealStage) SetReducedMotion(on bool) {
	s.reducedMotion = on
}

// ReducedMotion 是否处于减少动画模式
func (s *RevealStage) ReducedMotion() bool {
	return s.reducedMotion
}

// Mounted 是否已挂载
func (s *RevealStage) Mounted() bool {
	return s.mounted
}

// Now 舞台时钟
func (s *RevealStage) Now() time.Duration {
	return s.now
}

// Registry 当前挂载的注册表
func (s *RevealStage) Registry() *content.Registry {
	return s.registry
}

// Policy 当前揭示策略
func (s *RevealStage) Policy() *config.RevealConfig {
	return s.policy
}

// State 查询条目状态；未挂载或条目不存在时返回 false
func (s *RevealStage) State(itemID string) (components.RevealState, bool) {
	if !s.mounted {
		return components.RevealHidden, false
	}
	return s.reveals.State(itemID)
}

// IgnoredEvents 被忽略的迟到/重复触发事件数量
func (s *RevealStage) IgnoredEvents() int {
	if s.reveals == nil {
		return 0
	}
	return s.reveals.IgnoredEvents()
}

// Descriptor 按条目ID查找当前帧的视觉描述
func (s *RevealStage) Descriptor(itemID string) (components.VisualDescriptor, bool) {
	for _, d := range s.descriptors {
		if d.ItemID == itemID {
			return d, true
		}
	}
	return components.VisualDescriptor{}, false
}
