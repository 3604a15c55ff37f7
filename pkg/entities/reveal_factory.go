package entities

import (
	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/config"
	"github.com/decker502/redflag/pkg/content"
	"github.com/decker502/redflag/pkg/ecs"
	"github.com/decker502/redflag/pkg/schedule"
	"github.com/decker502/redflag/pkg/trigger"
)

// NewRevealItemEntity 创建内容条目实体
//
// 参数:
//   - em: 实体管理器
//   - item: 已注册的内容条目
//   - entry: 条目的时间表
//   - policy: 条目所属分组的策略
//
// 返回:
//   - ecs.EntityID: 新实体ID（初始状态 Hidden，停在起始姿态）
func NewRevealItemEntity(em *ecs.EntityManager, item content.Item, entry schedule.Entry, policy config.GroupPolicy) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.ContentComponent{Item: item})
	ecs.AddComponent(em, id, &components.RevealComponent{
		ItemID:     item.ID,
		GroupIndex: item.GroupIndex,
		Order:      item.Order,
		Repeat:     policy.Trigger.Repeat,
		State:      components.RevealHidden,
		FireAt:     entry.FireAt,
		Duration:   entry.AnimationDuration,
	})
	motion := policy.Motion
	ecs.AddComponent(em, id, &motion)
	ecs.AddComponent(em, id, &components.VisualComponent{})

	return id
}

// NewLoopEntity 创建循环装饰元素实体（例如扫描行的旋转图标）
// 循环元素在所属分组触发前不可见，触发后按 entry.FireAt 出现并持续旋转
func NewLoopEntity(em *ecs.EntityManager, item content.Item, entry schedule.Entry, policy config.GroupPolicy) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.ContentComponent{Item: item})
	loop := &components.LoopComponent{
		ItemID:     item.ID,
		GroupIndex: item.GroupIndex,
		FireAt:     entry.FireAt,
		FadeIn:     entry.AnimationDuration,
	}
	if policy.Loop != nil {
		loop.Period = policy.Loop.Period
		loop.Degrees = policy.Loop.Degrees
	}
	ecs.AddComponent(em, id, loop)
	motion := policy.Motion
	ecs.AddComponent(em, id, &motion)
	ecs.AddComponent(em, id, &components.VisualComponent{})

	return id
}

// NewGroupEntity 创建分组实体，持有该分组独占的触发闩锁和页面区域
func NewGroupEntity(em *ecs.EntityManager, policy config.GroupPolicy) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.GroupTriggerComponent{
		GroupIndex: policy.Index,
		Name:       policy.Name,
		Resolver:   trigger.NewResolver(policy.Index, policy.Trigger),
	})
	ecs.AddComponent(em, id, &components.GroupBoundsComponent{
		GroupIndex: policy.Index,
		Y:          policy.Bounds.Y,
		Height:     policy.Bounds.Height,
	})

	return id
}

// IsDecorative 条目是否为装饰元素（只有所在分组配置了循环时才作为循环实体创建）
func IsDecorative(item content.Item) bool {
	payload, ok := item.Payload.(*content.Payload)
	return ok && payload.Decorative
}
