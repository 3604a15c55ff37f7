// revealplan 无界面的揭示方案工具
//
// 在没有窗口的情况下挂载揭示舞台，按滚动脚本逐帧推进，输出每个条目的状态转换时间线。
// 用于调整 reveal.yaml 的时间参数，以及在 CI 中校验数据文件。
//
// 用法:
//
//	revealplan schedule data/reveal.yaml
//	revealplan simulate --scroll 0s:0,3s:1200,6s:3000 data/reveal.yaml experiments/*.yaml
//	revealplan validate data/*.yaml
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/redflag/pkg/logging"
	"github.com/decker502/redflag/pkg/schedule"
)

var (
	verbose     bool
	landingPath string

	simDuration      time.Duration
	simFrame         time.Duration
	simScroll        string
	simReducedMotion bool
)

var rootCmd = &cobra.Command{
	Use:           "revealplan",
	Short:         "Inspect and simulate landing page reveal plans",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(verbose)
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [reveal.yaml...]",
	Short: "Print the computed fire time of every item",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSchedule,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [reveal.yaml...]",
	Short: "Run reveal plans headlessly and print the transition timeline",
	Long: `Mounts a reveal stage for each plan, advances it frame by frame while the
viewport follows the --scroll script, and prints every state transition.
Plans are simulated concurrently; output keeps argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

var validateCmd = &cobra.Command{
	Use:   "validate [reveal.yaml...]",
	Short: "Check that reveal plans load, lay out and schedule",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&landingPath, "landing", "data/landing.yaml", "landing page content file")

	simulateCmd.Flags().DurationVar(&simDuration, "duration", 0, "simulated time (default: end of scroll script + 3s)")
	simulateCmd.Flags().DurationVar(&simFrame, "frame", time.Second/60, "frame length")
	simulateCmd.Flags().StringVar(&simScroll, "scroll", "", "scroll script, e.g. 0s:0,2s:600,4s:1800")
	simulateCmd.Flags().BoolVar(&simReducedMotion, "reduced-motion", false, "simulate with reduced motion")

	rootCmd.AddCommand(scheduleCmd, simulateCmd, validateCmd)
}

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}

// expandArgs 展开参数中的通配符（shell 未展开时）
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			files = append(files, pattern)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

// loadPlans 并发加载所有方案
func loadPlans(args []string) ([]*Plan, error) {
	files, err := expandArgs(args)
	if err != nil {
		return nil, err
	}

	plans := make([]*Plan, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			plan, err := LoadPlan(landingPath, file)
			if err != nil {
				return err
			}
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	plans, err := loadPlans(args)
	if err != nil {
		return err
	}

	for _, plan := range plans {
		entries, err := schedule.ScheduleGroups(plan.Registry.List(), func(group int) schedule.Timing {
			return plan.Policy.Group(group).Timing
		})
		if err != nil {
			return fmt.Errorf("%s: %w", plan.Name, err)
		}
		renderSchedule(cmd.OutOrStdout(), plan, entries)
	}
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	script, err := ParseScrollScript(simScroll)
	if err != nil {
		return err
	}
	duration := simDuration
	if duration <= 0 {
		duration = script.End() + 3*time.Second
	}

	plans, err := loadPlans(args)
	if err != nil {
		return err
	}

	opts := SimulateOptions{
		Duration:      duration,
		Frame:         simFrame,
		Script:        script,
		ReducedMotion: simReducedMotion,
	}
	results, err := simulateAll(cmd.Context(), plans, opts)
	if err != nil {
		return err
	}

	for _, r := range results {
		renderTimeline(cmd.OutOrStdout(), r)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := expandArgs(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, file := range files {
		plan, err := LoadPlan(landingPath, file)
		if err == nil {
			_, err = schedule.ScheduleGroups(plan.Registry.List(), func(group int) schedule.Timing {
				return plan.Policy.Group(group).Timing
			})
		}
		if err != nil {
			failed++
			fmt.Fprintln(out, errorStyle.Render("FAIL"), file, mutedStyle.Render(err.Error()))
			continue
		}
		fmt.Fprintln(out, okStyle.Render("OK  "), file,
			mutedStyle.Render(fmt.Sprintf("%d items, %d groups, page %.0fpx", plan.Registry.Len(), len(plan.Registry.Groups()), plan.Policy.PageHeight)))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d plans failed validation", failed, len(files))
	}
	return nil
}
