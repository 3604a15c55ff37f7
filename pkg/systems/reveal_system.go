package systems

import (
	"sort"
	"time"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/ecs"
	"github.com/decker502/redflag/pkg/logging"
	"github.com/decker502/redflag/pkg/trigger"
)

// maxStepsPerUpdate 单次 Update 中一个条目最多连续转换的次数
// 一个完整循环（Hidden→Entering→Visible→Exiting→Hidden）是 4 步
const maxStepsPerUpdate = 8

// Transition 一次状态转换
type Transition struct {
	ItemID string
	Group  int
	Order  int
	From   components.RevealState
	To     components.RevealState
	// At 转换发生的时刻（舞台时钟，按截止时间计算，不是观测到的帧时刻）
	At time.Duration
}

// TransitionHandler 状态转换回调
type TransitionHandler func(Transition)

// RevealSystem 条目揭示状态机
//
// 触发事件（Fire）只记录意图，真正的状态转换都发生在 Update 中：
// 每帧用绝对时钟判断各条目的截止时间是否已到，按 (分组, 顺序) 依次推进，
// 因此同组内 Entering 的观测顺序总是与 Order 一致。
type RevealSystem struct {
	entityManager *ecs.EntityManager
	handler       TransitionHandler
	ignored       int
	released      bool
}

// NewRevealSystem 创建揭示状态机系统
func NewRevealSystem(em *ecs.EntityManager, handler TransitionHandler) *RevealSystem {
	return &RevealSystem{
		entityManager: em,
		handler:       handler,
	}
}

// SetHandler 替换状态转换回调
func (rs *RevealSystem) SetHandler(handler TransitionHandler) {
	rs.handler = handler
}

// IgnoredEvents 返回被忽略的迟到/重复触发事件数量
func (rs *RevealSystem) IgnoredEvents() int {
	return rs.ignored
}

// Release 卸载：之后的 Fire/Update 全部无效
func (rs *RevealSystem) Release() {
	rs.released = true
}

// Fire 把分组触发事件分发给组内条目
//
// 迟到或重复的事件不会报错，只记录日志并计数。
func (rs *RevealSystem) Fire(ev trigger.FireEvent) {
	if rs.released {
		return
	}

	for _, c := range rs.items() {
		if c.GroupIndex != ev.Group {
			continue
		}
		switch ev.Kind {
		case trigger.FireEnter:
			rs.fireEnter(c, ev)
		case trigger.FireExit:
			rs.fireExit(c, ev)
		}
	}
}

func (rs *RevealSystem) fireEnter(c *components.RevealComponent, ev trigger.FireEvent) {
	switch {
	case c.State == components.RevealHidden && !c.Fired:
		c.Fired = true
		c.FiredAt = ev.At
		c.PendingEnter = false
	case c.State == components.RevealExiting && c.Repeat:
		// 退出动画结束回到 Hidden 后再进入
		c.PendingEnter = true
	case c.State == components.RevealEntering && c.PendingExit:
		// 进入动画还没结束就又回到视口：撤销挂起的退出
		c.PendingExit = false
	default:
		rs.ignore(c, ev)
	}
}

func (rs *RevealSystem) fireExit(c *components.RevealComponent, ev trigger.FireEvent) {
	if !c.Repeat {
		rs.ignore(c, ev)
		return
	}

	switch c.State {
	case components.RevealHidden:
		// 还没开始进入就离开了视口：取消等待中的揭示
		c.Fired = false
		c.PendingEnter = false
	case components.RevealEntering, components.RevealVisible:
		c.PendingExit = true
		c.ExitAt = ev.At
	case components.RevealExiting:
		c.PendingEnter = false
	}
}

func (rs *RevealSystem) ignore(c *components.RevealComponent, ev trigger.FireEvent) {
	rs.ignored++
	logging.L().Debugf("[RevealSystem] late %s event ignored: item=%s state=%v at=%v",
		ev.Kind, c.ItemID, c.State, ev.At)
}

// Update 按绝对时钟推进所有条目
func (rs *RevealSystem) Update(now time.Duration) {
	if rs.released {
		return
	}

	for _, c := range rs.items() {
		for i := 0; i < maxStepsPerUpdate; i++ {
			if !rs.step(c, now) {
				break
			}
		}
	}
}

// step 尝试推进一步，返回是否发生了转换
func (rs *RevealSystem) step(c *components.RevealComponent, now time.Duration) bool {
	switch c.State {
	case components.RevealHidden:
		if !c.Fired {
			return false
		}
		deadline := c.FiredAt + c.FireAt
		if now < deadline {
			return false
		}
		c.Fired = false
		return rs.transition(c, components.RevealEntering, deadline)

	case components.RevealEntering:
		deadline := c.StateSince + c.Duration
		if now < deadline {
			return false
		}
		return rs.transition(c, components.RevealVisible, deadline)

	case components.RevealVisible:
		if !c.PendingExit {
			return false
		}
		c.PendingExit = false
		return rs.transition(c, components.RevealExiting, max(c.ExitAt, c.StateSince))

	case components.RevealExiting:
		deadline := c.StateSince + c.Duration
		if now < deadline {
			return false
		}
		if !rs.transition(c, components.RevealHidden, deadline) {
			return false
		}
		if c.PendingEnter {
			c.PendingEnter = false
			c.Fired = true
			c.FiredAt = deadline
		}
		return true
	}
	return false
}

func (rs *RevealSystem) transition(c *components.RevealComponent, to components.RevealState, at time.Duration) bool {
	if !components.CanTransition(c.State, to, c.Repeat) {
		logging.L().Warnf("[RevealSystem] illegal transition rejected: item=%s %v → %v", c.ItemID, c.State, to)
		return false
	}

	tr := Transition{
		ItemID: c.ItemID,
		Group:  c.GroupIndex,
		Order:  c.Order,
		From:   c.State,
		To:     to,
		At:     at,
	}
	c.State = to
	c.StateSince = at

	logging.L().Debugf("[RevealSystem] %s: %v → %v at %v", c.ItemID, tr.From, tr.To, at)
	if rs.handler != nil {
		rs.handler(tr)
	}
	return true
}

// items 返回按 (分组, 顺序) 排序的揭示组件
func (rs *RevealSystem) items() []*components.RevealComponent {
	ids := ecs.GetEntitiesWith1[*components.RevealComponent](rs.entityManager)
	items := make([]*components.RevealComponent, 0, len(ids))
	for _, id := range ids {
		if c, ok := ecs.GetComponent[*components.RevealComponent](rs.entityManager, id); ok {
			items = append(items, c)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].GroupIndex != items[j].GroupIndex {
			return items[i].GroupIndex < items[j].GroupIndex
		}
		return items[i].Order < items[j].Order
	})
	return items
}

// State 查询条目当前状态
func (rs *RevealSystem) State(itemID string) (components.RevealState, bool) {
	for _, c := range rs.items() {
		if c.ItemID == itemID {
			return c.State, true
		}
	}
	return components.RevealHidden, false
}
