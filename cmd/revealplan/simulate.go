package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/config"
	"github.com/decker502/redflag/pkg/content"
	"github.com/decker502/redflag/pkg/game"
	"github.com/decker502/redflag/pkg/systems"
)

// Plan 一份可挂载的揭示方案：落地页内容 + 揭示策略 + 排版
type Plan struct {
	Name     string
	Landing  *content.Landing
	Policy   *config.RevealConfig
	Registry *content.Registry
	Page     *config.PageLayout
}

// LoadPlan 读取内容和策略文件，排版并校验
func LoadPlan(landingPath, revealPath string) (*Plan, error) {
	landing, err := content.LoadLandingFile(landingPath)
	if err != nil {
		return nil, err
	}
	reg, err := landing.Registry()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", landingPath, err)
	}

	data, err := os.ReadFile(revealPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", revealPath, err)
	}
	policy, err := config.ParseRevealConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", revealPath, err)
	}

	page := config.LayoutLanding(landing)
	policy.ApplyLayout(page)
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", revealPath, err)
	}

	return &Plan{
		Name:     filepath.Base(revealPath),
		Landing:  landing,
		Policy:   policy,
		Registry: reg,
		Page:     page,
	}, nil
}

// SimulateOptions 无界面模拟参数
type SimulateOptions struct {
	// Duration 模拟总时长
	Duration time.Duration
	// Frame 帧长
	Frame time.Duration
	// Script 滚动脚本（页面坐标，超出范围时被截断）
	Script ScrollScript
	// ReducedMotion 减少动画模式
	ReducedMotion bool
}

// Result 一次模拟的结果
type Result struct {
	Plan        string
	Transitions []systems.Transition
	Ignored     int
	// Final 模拟结束时每个条目的状态（按注册顺序）
	Final []ItemState
}

// ItemState 条目最终状态
type ItemState struct {
	ItemID string
	Group  int
	State  components.RevealState
}

// Simulate 在固定帧长下推进舞台，记录所有状态转换
//
// 每次调用使用独立的舞台，可以并发模拟多份方案。
func Simulate(plan *Plan, opts SimulateOptions) (*Result, error) {
	if opts.Frame <= 0 {
		return nil, fmt.Errorf("frame must be positive, got %v", opts.Frame)
	}

	result := &Result{Plan: plan.Name}
	stage := game.NewRevealStage(plan.Policy,
		game.WithReducedMotion(opts.ReducedMotion),
		game.WithTransitionHandler(func(t systems.Transition) {
			result.Transitions = append(result.Transitions, t)
		}),
	)
	if err := stage.Mount(plan.Registry); err != nil {
		return nil, err
	}
	defer stage.Unmount()

	maxScroll := config.MaxScroll(plan.Policy.PageHeight)
	for now := time.Duration(0); now < opts.Duration; {
		dt := min(opts.Frame, opts.Duration-now)
		now += dt
		top := min(max(opts.Script.At(now), 0), maxScroll)
		stage.Update(dt, systems.Viewport{Top: top, Height: config.ViewportHeight()})
	}

	result.Ignored = stage.IgnoredEvents()
	for _, item := range plan.Registry.List() {
		state, ok := stage.State(item.ID)
		if !ok {
			// 循环装饰元素没有揭示状态
			continue
		}
		result.Final = append(result.Final, ItemState{ItemID: item.ID, Group: item.GroupIndex, State: state})
	}
	return result, nil
}

// simulateAll 并发模拟多份方案，结果保持参数顺序
func simulateAll(ctx context.Context, plans []*Plan, opts SimulateOptions) ([]*Result, error) {
	results := make([]*Result, len(plans))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, plan := range plans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Simulate(plan, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", plan.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
