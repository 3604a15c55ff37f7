package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/config"
	"github.com/decker502/redflag/pkg/schedule"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10b981"))

	stateStyles = map[components.RevealState]lipgloss.Style{
		components.RevealHidden:   lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")),
		components.RevealEntering: lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
		components.RevealVisible:  lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981")),
		components.RevealExiting:  lipgloss.NewStyle().Foreground(lipgloss.Color("#0ea5e9")),
	}
)

func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

func stateCell(state components.RevealState, width int) string {
	return stateStyles[state].Width(width).Render(state.String())
}

func formatAt(d time.Duration) string {
	return fmt.Sprintf("%8.3fs", d.Seconds())
}

// renderTimeline 输出状态转换时间线和最终状态汇总
func renderTimeline(w io.Writer, r *Result) {
	fmt.Fprintln(w, titleStyle.Render("▌ "+r.Plan))
	fmt.Fprintln(w, headerStyle.Render(cell("time", 10)+cell("group", 7)+cell("order", 7)+cell("item", 38)+cell("from", 10)+"to"))
	for _, t := range r.Transitions {
		fmt.Fprintln(w, cell(formatAt(t.At), 10)+
			cell(fmt.Sprint(t.Group), 7)+
			cell(fmt.Sprint(t.Order), 7)+
			cell(t.ItemID, 38)+
			stateCell(t.From, 10)+
			stateCell(t.To, 10))
	}

	counts := make(map[components.RevealState]int)
	for _, item := range r.Final {
		counts[item.State]++
	}
	summary := []string{}
	for _, state := range []components.RevealState{components.RevealHidden, components.RevealEntering, components.RevealVisible, components.RevealExiting} {
		summary = append(summary, stateStyles[state].Render(fmt.Sprintf("%s=%d", state, counts[state])))
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d transitions, %d ignored events;", len(r.Transitions), r.Ignored)), strings.Join(summary, " "))
	fmt.Fprintln(w)
}

// renderSchedule 输出每个条目的计划时间
func renderSchedule(w io.Writer, plan *Plan, entries []schedule.Entry) {
	fmt.Fprintln(w, titleStyle.Render("▌ "+plan.Name))
	fmt.Fprintln(w, headerStyle.Render(cell("group", 7)+cell("name", 16)+cell("trigger", 14)+cell("order", 7)+cell("item", 38)+cell("fireAt", 10)+"duration"))
	for _, e := range entries {
		policy := plan.Policy.Group(e.GroupIndex)
		mode := policy.Trigger.Mode.String()
		if policy.Trigger.Repeat {
			mode += "*"
		}
		fmt.Fprintln(w, cell(fmt.Sprint(e.GroupIndex), 7)+
			cell(policy.Name, 16)+
			cell(mode, 14)+
			cell(fmt.Sprint(e.Order), 7)+
			cell(e.ItemID, 38)+
			cell(formatAt(e.FireAt), 10)+
			formatAt(e.AnimationDuration))
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("page height %.0f, max scroll %.0f; * repeat", plan.Policy.PageHeight, config.MaxScroll(plan.Policy.PageHeight))))
	fmt.Fprintln(w)
}
