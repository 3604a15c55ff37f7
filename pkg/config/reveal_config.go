package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/schedule"
	"github.com/decker502/redflag/pkg/trigger"
)

// 默认值
const (
	// DefaultAnimationDuration 默认进入/退出动画时长
	DefaultAnimationDuration = 300 * time.Millisecond

	// DefaultIntersectionThreshold 默认可见比例阈值：露出一小部分时就开始揭示
	DefaultIntersectionThreshold = 0.2
)

// RevealConfig 揭示策略配置
//
// 配置文件位置: data/reveal.yaml
//
// 时长字段使用 Go 时长字符串（"300ms", "1.2s"）；纯数字不会被当作时长解析。
type RevealConfig struct {
	// Defaults 全局默认值，未在分组中覆盖的字段使用这里的值
	Defaults RevealDefaults `yaml:"defaults"`

	// Groups 分组策略
	Groups []GroupConfig `yaml:"groups"`

	// PageHeight 页面总高度（像素），用于计算滚动范围
	PageHeight float64 `yaml:"pageHeight"`
}

// RevealDefaults 全局默认揭示参数
type RevealDefaults struct {
	BaseDelay             time.Duration `yaml:"baseDelay"`
	StaggerStep           time.Duration `yaml:"staggerStep"`
	AnimationDuration     time.Duration `yaml:"animationDuration"`
	IntersectionThreshold float64       `yaml:"intersectionThreshold"`
	Repeat                bool          `yaml:"repeat"`
	Motion                MotionConfig  `yaml:"motion"`
}

// MotionConfig 起始姿态
// Scale 为空时为 1（不缩放）；显式写 0 表示从零开始放大
type MotionConfig struct {
	Opacity float64  `yaml:"opacity"`
	OffsetX float64  `yaml:"offsetX"`
	OffsetY float64  `yaml:"offsetY"`
	Scale   *float64 `yaml:"scale"`
	Easing  string   `yaml:"easing"`
}

// TriggerConfig 分组触发配置
type TriggerConfig struct {
	Mode      trigger.Mode `yaml:"mode"`
	Repeat    *bool        `yaml:"repeat"`
	Threshold *float64     `yaml:"threshold"`
}

// BoundsConfig 分组在页面上的区域
type BoundsConfig struct {
	Y      float64 `yaml:"y"`
	Height float64 `yaml:"height"`
}

// LoopConfig 循环装饰元素的参数
type LoopConfig struct {
	Period  time.Duration `yaml:"period"`
	Degrees float64       `yaml:"degrees"`
}

// GroupConfig 单个分组的策略，指针字段为空时使用默认值
type GroupConfig struct {
	Index int    `yaml:"index"`
	Name  string `yaml:"name"`

	Trigger TriggerConfig `yaml:"trigger"`

	BaseDelay         *time.Duration `yaml:"baseDelay"`
	StaggerStep       *time.Duration `yaml:"staggerStep"`
	AnimationDuration *time.Duration `yaml:"animationDuration"`

	Motion *MotionConfig `yaml:"motion"`
	Bounds BoundsConfig  `yaml:"bounds"`
	Loop   *LoopConfig   `yaml:"loop"`
}

// GroupPolicy 合并默认值后的分组策略
type GroupPolicy struct {
	Index   int
	Name    string
	Trigger trigger.Spec
	Timing  schedule.Timing
	Motion  components.MotionComponent
	Bounds  BoundsConfig
	// Loop 为 nil 表示该分组没有循环元素
	Loop *LoopConfig
}

// DefaultRevealConfig 返回内置默认配置（没有分组）
func DefaultRevealConfig() *RevealConfig {
	return &RevealConfig{
		Defaults: RevealDefaults{
			AnimationDuration:     DefaultAnimationDuration,
			IntersectionThreshold: DefaultIntersectionThreshold,
			Motion: MotionConfig{
				Opacity: 0,
				OffsetY: 20,
				Easing:  "easeOut",
			},
		},
	}
}

// LoadRevealConfig 从文件加载揭示策略
//
// 参数:
//   - path: 配置文件路径（如 "data/reveal.yaml"）
//
// 返回:
//   - *RevealConfig: 合并默认值并通过验证的配置
//   - error: 读取、解析或验证失败
func LoadRevealConfig(path string) (*RevealConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reveal config: %w", err)
	}
	cfg, err := ParseRevealConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseRevealConfig 解析揭示策略，未出现的字段保留默认值
func ParseRevealConfig(data []byte) (*RevealConfig, error) {
	cfg := DefaultRevealConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse reveal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reveal config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 所有时长不能为负
//   - 阈值在 [0,1] 内
//   - 分组索引非负且不重复
//   - 循环周期必须为正
//   - 区域高度不能为负
func (c *RevealConfig) Validate() error {
	d := c.Defaults
	if err := (schedule.Timing{BaseDelay: d.BaseDelay, StaggerStep: d.StaggerStep, AnimationDuration: d.AnimationDuration}).Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if d.IntersectionThreshold < 0 || d.IntersectionThreshold > 1 {
		return fmt.Errorf("defaults: intersectionThreshold must be in [0,1], got %v", d.IntersectionThreshold)
	}

	seen := make(map[int]string)
	for _, g := range c.Groups {
		label := g.Name
		if label == "" {
			label = fmt.Sprintf("#%d", g.Index)
		}
		if g.Index < 0 {
			return fmt.Errorf("group %s: index must not be negative, got %d", label, g.Index)
		}
		if other, dup := seen[g.Index]; dup {
			return fmt.Errorf("group %s: index %d already used by group %s", label, g.Index, other)
		}
		seen[g.Index] = label

		policy := c.Group(g.Index)
		if err := policy.Timing.Validate(); err != nil {
			return fmt.Errorf("group %s: %w", label, err)
		}
		if err := policy.Trigger.Validate(); err != nil {
			return fmt.Errorf("group %s: %w", label, err)
		}
		if g.Loop != nil && g.Loop.Period <= 0 {
			return fmt.Errorf("group %s: loop period must be positive, got %v", label, g.Loop.Period)
		}
		if g.Bounds.Height < 0 {
			return fmt.Errorf("group %s: bounds height must not be negative, got %v", label, g.Bounds.Height)
		}
	}

	return nil
}

// Group 返回合并默认值后的分组策略
//
// 未声明的分组使用默认值和挂载触发。
func (c *RevealConfig) Group(index int) GroupPolicy {
	d := c.Defaults
	policy := GroupPolicy{
		Index: index,
		Trigger: trigger.Spec{
			Mode:                  trigger.OnMount,
			Repeat:                d.Repeat,
			IntersectionThreshold: d.IntersectionThreshold,
		},
		Timing: schedule.Timing{
			BaseDelay:         d.BaseDelay,
			StaggerStep:       d.StaggerStep,
			AnimationDuration: d.AnimationDuration,
		},
		Motion: d.Motion.toComponent(),
	}

	g, ok := c.findGroup(index)
	if !ok {
		return policy
	}

	policy.Name = g.Name
	policy.Trigger.Mode = g.Trigger.Mode
	if g.Trigger.Repeat != nil {
		policy.Trigger.Repeat = *g.Trigger.Repeat
	}
	if g.Trigger.Threshold != nil {
		policy.Trigger.IntersectionThreshold = *g.Trigger.Threshold
	}
	if g.BaseDelay != nil {
		policy.Timing.BaseDelay = *g.BaseDelay
	}
	if g.StaggerStep != nil {
		policy.Timing.StaggerStep = *g.StaggerStep
	}
	if g.AnimationDuration != nil {
		policy.Timing.AnimationDuration = *g.AnimationDuration
	}
	if g.Motion != nil {
		policy.Motion = g.Motion.toComponent()
	}
	policy.Bounds = g.Bounds
	policy.Loop = g.Loop

	return policy
}

// GroupByName 按名称查找分组索引
func (c *RevealConfig) GroupByName(name string) (int, bool) {
	for _, g := range c.Groups {
		if g.Name == name {
			return g.Index, true
		}
	}
	return 0, false
}

func (c *RevealConfig) findGroup(index int) (GroupConfig, bool) {
	for _, g := range c.Groups {
		if g.Index == index {
			return g, true
		}
	}
	return GroupConfig{}, false
}

func (m MotionConfig) toComponent() components.MotionComponent {
	scale := 1.0
	if m.Scale != nil {
		scale = *m.Scale
	}
	return components.MotionComponent{
		Opacity: m.Opacity,
		OffsetX: m.OffsetX,
		OffsetY: m.OffsetY,
		Scale:   scale,
		Easing:  m.Easing,
	}
}
