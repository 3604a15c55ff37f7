package main

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Waypoint 滚动脚本中的一个关键点：At 时刻视口顶部位于页面 Y
type Waypoint struct {
	At time.Duration
	Y  float64
}

// ScrollScript 按时间排序的滚动关键点，关键点之间线性插值
type ScrollScript []Waypoint

// ParseScrollScript 解析 "0s:0,2s:600,4.5s:1800" 形式的滚动脚本
//
// 空字符串表示始终停留在页面顶部。
func ParseScrollScript(s string) (ScrollScript, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var script ScrollScript
	for _, part := range strings.Split(s, ",") {
		at, y, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("invalid waypoint %q: want <duration>:<y>", part)
		}
		d, err := time.ParseDuration(at)
		if err != nil {
			return nil, fmt.Errorf("invalid waypoint %q: %w", part, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid waypoint %q: negative time", part)
		}
		pos, err := strconv.ParseFloat(y, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid waypoint %q: %w", part, err)
		}
		script = append(script, Waypoint{At: d, Y: pos})
	}

	slices.SortStableFunc(script, func(a, b Waypoint) int {
		return cmp.Compare(a.At, b.At)
	})
	return script, nil
}

// At 返回 now 时刻的滚动位置
func (s ScrollScript) At(now time.Duration) float64 {
	if len(s) == 0 {
		return 0
	}
	if now <= s[0].At {
		return s[0].Y
	}
	for i := 1; i < len(s); i++ {
		if now < s[i].At {
			prev, next := s[i-1], s[i]
			t := float64(now-prev.At) / float64(next.At-prev.At)
			return prev.Y + (next.Y-prev.Y)*t
		}
	}
	return s[len(s)-1].Y
}

// End 最后一个关键点的时刻
func (s ScrollScript) End() time.Duration {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].At
}
