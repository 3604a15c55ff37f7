// Package content 定义揭示引擎消费的内容条目以及只读注册表。
//
// 注册表在一次挂载（mount）期间不可变：需要更新内容时重新调用 Register，
// 新注册表整体替换旧注册表。
package content

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidItem 条目字段不合法（空ID、负数分组或负数顺序）
var ErrInvalidItem = errors.New("invalid content item")

// DuplicateIDError 两个条目使用了相同的 ID
type DuplicateIDError struct {
	ID string
	// First, Second 冲突条目在输入数组中的位置
	First, Second int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate content item id %q (positions %d and %d)", e.ID, e.First, e.Second)
}

// Item 一个待展示的内容条目
type Item struct {
	// ID 稳定唯一标识，跨渲染不变
	ID string
	// GroupIndex 分组索引，同组条目共享同一个触发器
	GroupIndex int
	// Order 交错（stagger）排序键，无需连续
	Order int
	// Payload 展示层使用的不透明数据
	Payload any
}

// Registry 只读、有序的内容条目集合
type Registry struct {
	items  []Item
	byID   map[string]int
	groups []int
}

// Register 校验并注册一组条目
//
// 返回的注册表按 Order 升序排列，Order 相同时保持输入顺序（稳定排序），
// 保证结果不依赖排序算法。
//
// 返回:
//   - *DuplicateIDError: 存在重复 ID
//   - ErrInvalidItem: 存在空 ID 或负数 GroupIndex/Order
func Register(items []Item) (*Registry, error) {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("%w: empty id at position %d", ErrInvalidItem, i)
		}
		if item.GroupIndex < 0 || item.Order < 0 {
			return nil, fmt.Errorf("%w: %q has group=%d order=%d", ErrInvalidItem, item.ID, item.GroupIndex, item.Order)
		}
		if first, dup := seen[item.ID]; dup {
			return nil, &DuplicateIDError{ID: item.ID, First: first, Second: i}
		}
		seen[item.ID] = i
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	r := &Registry{
		items: sorted,
		byID:  make(map[string]int, len(sorted)),
	}
	groupSet := make(map[int]bool)
	for i, item := range sorted {
		r.byID[item.ID] = i
		if !groupSet[item.GroupIndex] {
			groupSet[item.GroupIndex] = true
			r.groups = append(r.groups, item.GroupIndex)
		}
	}
	sort.Ints(r.groups)

	return r, nil
}

// List 返回按 Order 升序排列的条目副本
func (r *Registry) List() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Len 返回条目数量
func (r *Registry) Len() int {
	return len(r.items)
}

// Get 按 ID 查找条目
func (r *Registry) Get(id string) (Item, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Item{}, false
	}
	return r.items[i], true
}

// Groups 返回出现过的分组索引（升序）
func (r *Registry) Groups() []int {
	out := make([]int, len(r.groups))
	copy(out, r.groups)
	return out
}

// Group 返回指定分组内的条目，顺序与 List 一致
func (r *Registry) Group(index int) []Item {
	var out []Item
	for _, item := range r.items {
		if item.GroupIndex == index {
			out = append(out, item)
		}
	}
	return out
}
