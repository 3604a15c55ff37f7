package systems

import (
	"time"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/ecs"
	"github.com/decker502/redflag/pkg/logging"
	"github.com/decker502/redflag/pkg/trigger"
)

// Viewport 当前视口（页面坐标）
type Viewport struct {
	Top    float64
	Height float64
}

// FireDispatcher 触发事件的接收方（通常是 RevealSystem.Fire）
type FireDispatcher func(trigger.FireEvent)

// TriggerSystem 驱动每个分组的触发闩锁
//
// 挂载时向所有挂载触发的分组发送 MountSignal；之后每帧为视口触发的分组
// 计算可见比例并发送 IntersectionSignal。
type TriggerSystem struct {
	entityManager *ecs.EntityManager
	dispatch      FireDispatcher
	fired         int
}

// NewTriggerSystem 创建触发系统
func NewTriggerSystem(em *ecs.EntityManager, dispatch FireDispatcher) *TriggerSystem {
	return &TriggerSystem{
		entityManager: em,
		dispatch:      dispatch,
	}
}

// FiredEvents 已分发的触发事件数量
func (ts *TriggerSystem) FiredEvents() int {
	return ts.fired
}

// Mount 处理挂载信号
func (ts *TriggerSystem) Mount(now time.Duration) {
	for _, tc := range ts.groups() {
		ts.emit(tc.Resolver.Resolve(trigger.MountSignal{At: now}))
	}
}

// Update 处理一次视口观测
func (ts *TriggerSystem) Update(now time.Duration, vp Viewport) {
	ids := ecs.GetEntitiesWith2[*components.GroupTriggerComponent, *components.GroupBoundsComponent](ts.entityManager)
	for _, id := range ids {
		tc, _ := ecs.GetComponent[*components.GroupTriggerComponent](ts.entityManager, id)
		bounds, _ := ecs.GetComponent[*components.GroupBoundsComponent](ts.entityManager, id)
		if tc.Resolver.Spec().Mode != trigger.OnIntersect {
			continue
		}

		fraction := bounds.VisibleFraction(vp.Top, vp.Height)
		ts.emit(tc.Resolver.Resolve(trigger.IntersectionSignal{At: now, VisibleFraction: fraction}))
	}
}

// Release 解除所有分组的闩锁
func (ts *TriggerSystem) Release() {
	for _, tc := range ts.groups() {
		tc.Resolver.Release()
	}
}

func (ts *TriggerSystem) emit(ev trigger.FireEvent, ok bool) {
	if !ok {
		return
	}
	ts.fired++
	logging.L().Debugf("[TriggerSystem] group %d fired %s at %v", ev.Group, ev.Kind, ev.At)
	if ts.dispatch != nil {
		ts.dispatch(ev)
	}
}

func (ts *TriggerSystem) groups() []*components.GroupTriggerComponent {
	ids := ecs.GetEntitiesWith1[*components.GroupTriggerComponent](ts.entityManager)
	result := make([]*components.GroupTriggerComponent, 0, len(ids))
	for _, id := range ids {
		if tc, ok := ecs.GetComponent[*components.GroupTriggerComponent](ts.entityManager, id); ok {
			result = append(result, tc)
		}
	}
	return result
}
