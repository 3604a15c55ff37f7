// Package schedule 计算交错（stagger）揭示的时间表。
//
// 所有函数都是纯函数：只根据条目顺序和时间参数计算相对于触发时刻的偏移，
// 不启动任何计时器。
package schedule

import (
	"fmt"
	"time"

	"github.com/decker502/redflag/pkg/content"
)

// InvalidScheduleError 时间参数不合法（负数的交错步长或基础延迟）
type InvalidScheduleError struct {
	Field string
	Value time.Duration
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule: %s must not be negative, got %v", e.Field, e.Value)
}

// Entry 单个条目的时间表
type Entry struct {
	ItemID     string
	GroupIndex int
	Order      int

	// FireAt 相对于分组触发时刻的延迟
	FireAt time.Duration

	// AnimationDuration 进入/退出动画时长
	AnimationDuration time.Duration
}

// Timing 一个分组的时间参数
type Timing struct {
	BaseDelay         time.Duration
	StaggerStep       time.Duration
	AnimationDuration time.Duration
}

// Validate 检查时间参数
func (t Timing) Validate() error {
	if t.StaggerStep < 0 {
		return &InvalidScheduleError{Field: "staggerStep", Value: t.StaggerStep}
	}
	if t.BaseDelay < 0 {
		return &InvalidScheduleError{Field: "baseDelay", Value: t.BaseDelay}
	}
	if t.AnimationDuration < 0 {
		return &InvalidScheduleError{Field: "animationDuration", Value: t.AnimationDuration}
	}
	return nil
}

// Schedule 计算 FireAt = baseDelay + order * staggerStep
//
// items 应按 Order 升序（registry.List() 的顺序），结果与输入一一对应。
// staggerStep 可以为 0（同时揭示），不能为负。
// AnimationDuration 留空，由调用方按分组策略填充，或改用 ScheduleGroups。
func Schedule(items []content.Item, baseDelay, staggerStep time.Duration) ([]Entry, error) {
	timing := Timing{BaseDelay: baseDelay, StaggerStep: staggerStep}
	if err := timing.Validate(); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = Entry{
			ItemID:     item.ID,
			GroupIndex: item.GroupIndex,
			Order:      item.Order,
			FireAt:     baseDelay + time.Duration(item.Order)*staggerStep,
		}
	}
	return entries, nil
}

// ScheduleGroups 按分组计算时间表
//
// 每个分组使用 policy 返回的时间参数，公式与 Schedule 相同，
// 同时填充 AnimationDuration。
func ScheduleGroups(items []content.Item, policy func(group int) Timing) ([]Entry, error) {
	entries := make([]Entry, len(items))
	for i, item := range items {
		timing := policy(item.GroupIndex)
		if err := timing.Validate(); err != nil {
			return nil, fmt.Errorf("group %d: %w", item.GroupIndex, err)
		}
		entries[i] = Entry{
			ItemID:            item.ID,
			GroupIndex:        item.GroupIndex,
			Order:             item.Order,
			FireAt:            timing.BaseDelay + time.Duration(item.Order)*timing.StaggerStep,
			AnimationDuration: timing.AnimationDuration,
		}
	}
	return entries, nil
}

// Lookup 按条目ID索引时间表
func Lookup(entries []Entry) map[string]Entry {
	out := make(map[string]Entry, len(entries))
	for _, e := range entries {
		out[e.ItemID] = e
	}
	return out
}
