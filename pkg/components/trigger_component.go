package components

import "github.com/decker502/redflag/pkg/trigger"

// GroupTriggerComponent 分组独占的触发闩锁
// 每个分组实体持有一个 Resolver，分组之间不共享任何触发资源
type GroupTriggerComponent struct {
	GroupIndex int
	Name       string
	Resolver   *trigger.Resolver
}
