// Package trigger 决定每个分组何时触发揭示。
//
// 每个分组拥有一个 Resolver（闩锁）：挂载触发在挂载时刻触发一次；
// 视口相交触发在可见比例第一次达到阈值时触发。非重复分组触发后永久解除武装，
// 重复分组在元素完全离开视口后重新武装。
package trigger

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Mode 触发模式
type Mode int

const (
	// OnMount 挂载时触发
	OnMount Mode = iota
	// OnIntersect 进入视口时触发
	OnIntersect
)

// String 返回配置文件中使用的名称
func (m Mode) String() string {
	switch m {
	case OnMount:
		return "on-mount"
	case OnIntersect:
		return "on-intersect"
	default:
		return "unknown"
	}
}

// ParseMode 解析模式名称
func ParseMode(s string) (Mode, error) {
	switch s {
	case "on-mount", "":
		return OnMount, nil
	case "on-intersect":
		return OnIntersect, nil
	default:
		return OnMount, fmt.Errorf("unknown trigger mode %q", s)
	}
}

// UnmarshalYAML 支持 mode: on-intersect 写法
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML 输出模式名称
func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// Spec 分组的触发规格
type Spec struct {
	Mode Mode `yaml:"mode"`
	// Repeat 为 true 时元素离开视口后重新武装
	Repeat bool `yaml:"repeat"`
	// IntersectionThreshold 可见比例阈值 [0,1]，仅 OnIntersect 使用；0 表示任意像素可见
	IntersectionThreshold float64 `yaml:"threshold"`
}

// Validate 检查阈值范围
func (s Spec) Validate() error {
	if s.IntersectionThreshold < 0 || s.IntersectionThreshold > 1 {
		return fmt.Errorf("intersection threshold must be in [0,1], got %v", s.IntersectionThreshold)
	}
	return nil
}

// Kind 触发事件类型
type Kind int

const (
	// FireEnter 开始揭示（Hidden → Entering）
	FireEnter Kind = iota
	// FireExit 元素完全离开视口（Visible → Exiting），只在重复分组出现
	FireExit
)

func (k Kind) String() string {
	if k == FireExit {
		return "exit"
	}
	return "enter"
}

// FireEvent 触发事件
type FireEvent struct {
	Group int
	Kind  Kind
	// At 触发时刻（舞台时钟）
	At time.Duration
}

// Signal 输入信号：MountSignal 或 IntersectionSignal
type Signal interface {
	signalTime() time.Duration
}

// MountSignal 组件挂载
type MountSignal struct {
	At time.Duration
}

func (s MountSignal) signalTime() time.Duration { return s.At }

// IntersectionSignal 一次视口观测
type IntersectionSignal struct {
	At time.Duration
	// VisibleFraction 分组区域的可见比例 [0,1]
	VisibleFraction float64
}

func (s IntersectionSignal) signalTime() time.Duration { return s.At }

// Resolver 单个分组的触发闩锁
type Resolver struct {
	group    int
	spec     Spec
	armed    bool
	fired    bool
	inside   bool
	released bool
}

// NewResolver 创建处于武装状态的闩锁
func NewResolver(group int, spec Spec) *Resolver {
	return &Resolver{
		group: group,
		spec:  spec,
		armed: true,
	}
}

// Group 返回分组索引
func (r *Resolver) Group() int { return r.group }

// Spec 返回触发规格
func (r *Resolver) Spec() Spec { return r.spec }

// Armed 是否仍可触发
func (r *Resolver) Armed() bool { return r.armed && !r.released }

// Fired 是否至少触发过一次
func (r *Resolver) Fired() bool { return r.fired }

// Release 永久解除武装（卸载时调用）
func (r *Resolver) Release() {
	r.released = true
	r.armed = false
}

// Resolve 处理一个信号，返回是否产生触发事件
//
// 与模式不匹配的信号被忽略（挂载触发的分组不响应视口观测，反之亦然）。
// 第一次视口观测时元素已经可见，会立即触发，不需要等待下一次穿越。
func (r *Resolver) Resolve(signal Signal) (FireEvent, bool) {
	if r.released {
		return FireEvent{}, false
	}

	switch s := signal.(type) {
	case MountSignal:
		if r.spec.Mode != OnMount || !r.armed {
			return FireEvent{}, false
		}
		r.armed = false
		r.fired = true
		return FireEvent{Group: r.group, Kind: FireEnter, At: s.At}, true

	case IntersectionSignal:
		if r.spec.Mode != OnIntersect {
			return FireEvent{}, false
		}
		return r.observe(s)
	}

	return FireEvent{}, false
}

func (r *Resolver) observe(s IntersectionSignal) (FireEvent, bool) {
	crossed := r.crossed(s.VisibleFraction)

	if r.armed && crossed {
		r.armed = false
		r.fired = true
		r.inside = true
		return FireEvent{Group: r.group, Kind: FireEnter, At: s.At}, true
	}

	// 重复分组：完全离开视口后重新武装
	if r.spec.Repeat && r.inside && s.VisibleFraction <= 0 {
		r.inside = false
		r.armed = true
		return FireEvent{Group: r.group, Kind: FireExit, At: s.At}, true
	}

	return FireEvent{}, false
}

func (r *Resolver) crossed(fraction float64) bool {
	if r.spec.IntersectionThreshold <= 0 {
		return fraction > 0
	}
	return fraction >= r.spec.IntersectionThreshold
}
