package systems

import (
	"time"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/ecs"
	"github.com/decker502/redflag/pkg/logging"
	"github.com/decker502/redflag/pkg/trigger"
)

// LoopSystem 推进循环装饰元素的时间
// 循环元素不参与揭示状态机，但出现时机跟随所属分组的触发
type LoopSystem struct {
	entityManager *ecs.EntityManager
}

// NewLoopSystem 创建循环系统
func NewLoopSystem(em *ecs.EntityManager) *LoopSystem {
	return &LoopSystem{entityManager: em}
}

// Fire 处理分组触发事件
//
// FireEnter 只在第一次生效，StartedAt = ev.At + FireAt；
// FireExit（可重复分组）让循环元素回到不可见，等待下一次进入。
func (ls *LoopSystem) Fire(ev trigger.FireEvent) {
	for _, loop := range ls.loops() {
		if loop.GroupIndex != ev.Group {
			continue
		}
		switch ev.Kind {
		case trigger.FireEnter:
			if loop.Started {
				continue
			}
			loop.Started = true
			loop.StartedAt = ev.At + loop.FireAt
			logging.L().Debugf("[LoopSystem] %s starts at %v", loop.ItemID, loop.StartedAt)
		case trigger.FireExit:
			loop.Started = false
			loop.Running = false
			loop.Elapsed = 0
		}
	}
}

// Update 更新所有循环元素的已循环时间
func (ls *LoopSystem) Update(now time.Duration) {
	for _, loop := range ls.loops() {
		if !loop.Started || now < loop.StartedAt {
			loop.Running = false
			loop.Elapsed = 0
			continue
		}
		loop.Running = true
		loop.Elapsed = now - loop.StartedAt
	}
}

func (ls *LoopSystem) loops() []*components.LoopComponent {
	ids := ecs.GetEntitiesWith1[*components.LoopComponent](ls.entityManager)
	result := make([]*components.LoopComponent, 0, len(ids))
	for _, id := range ids {
		if loop, ok := ecs.GetComponent[*components.LoopComponent](ls.entityManager, id); ok {
			result = append(result, loop)
		}
	}
	return result
}
