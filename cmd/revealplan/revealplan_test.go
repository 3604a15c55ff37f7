package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/redflag/pkg/components"
)

const (
	testLanding = "../../data/landing.yaml"
	testReveal  = "../../data/reveal.yaml"
)

func TestParseScrollScript(t *testing.T) {
	script, err := ParseScrollScript(" 2s:600, 0s:0 ,4s:1800")
	require.NoError(t, err)
	require.Len(t, script, 3)

	// 关键点按时间排序
	assert.Equal(t, time.Duration(0), script[0].At)
	assert.Equal(t, 4*time.Second, script.End())

	assert.InDelta(t, 0, script.At(0), 1e-9)
	assert.InDelta(t, 300, script.At(time.Second), 1e-9)
	assert.InDelta(t, 1200, script.At(3*time.Second), 1e-9)
	assert.InDelta(t, 1800, script.At(10*time.Second), 1e-9)

	empty, err := ParseScrollScript("")
	require.NoError(t, err)
	assert.InDelta(t, 0, empty.At(time.Second), 1e-9)
	assert.Equal(t, time.Duration(0), empty.End())

	for _, bad := range []string{"1s", "x:10", "1s:abc", "-1s:0"} {
		_, err := ParseScrollScript(bad)
		assert.Error(t, err, bad)
	}
}

func finalStates(r *Result) map[string]components.RevealState {
	states := make(map[string]components.RevealState, len(r.Final))
	for _, item := range r.Final {
		states[item.ItemID] = item.State
	}
	return states
}

func TestSimulateWithoutScrolling(t *testing.T) {
	plan, err := LoadPlan(testLanding, testReveal)
	require.NoError(t, err)

	r, err := Simulate(plan, SimulateOptions{Duration: 5 * time.Second, Frame: time.Second / 60})
	require.NoError(t, err)

	require.NotEmpty(t, r.Transitions)
	first := r.Transitions[0]
	assert.Equal(t, "hero-headline", first.ItemID)
	assert.Equal(t, components.RevealEntering, first.To)
	assert.Equal(t, time.Duration(0), first.At)

	states := finalStates(r)
	for _, id := range []string{"hero-headline", "report-header", "report-timestamp", "risk-score", "risk-score-value", "flag-financial", "dot-financial", "scanner-label"} {
		assert.Equal(t, components.RevealVisible, states[id], id)
	}
	// 页面底部从未进入视口
	assert.Equal(t, components.RevealHidden, states["cta"])

	// 装饰元素只循环，没有揭示状态
	_, ok := states["scanner-spinner"]
	assert.False(t, ok)

	// 转换时间单调不减
	for i := 1; i < len(r.Transitions); i++ {
		assert.LessOrEqual(t, r.Transitions[i-1].At, r.Transitions[i].At)
	}
}

func TestSimulateScrollToBottom(t *testing.T) {
	plan, err := LoadPlan(testLanding, testReveal)
	require.NoError(t, err)

	script, err := ParseScrollScript("0s:0,3s:100000")
	require.NoError(t, err)

	r, err := Simulate(plan, SimulateOptions{Duration: 8 * time.Second, Frame: time.Second / 60, Script: script})
	require.NoError(t, err)

	for _, item := range r.Final {
		assert.Equal(t, components.RevealVisible, item.State, item.ItemID)
	}
}

func TestSimulateReducedMotion(t *testing.T) {
	plan, err := LoadPlan(testLanding, testReveal)
	require.NoError(t, err)

	frame := time.Second / 60
	r, err := Simulate(plan, SimulateOptions{Duration: frame, Frame: frame, ReducedMotion: true})
	require.NoError(t, err)

	states := finalStates(r)
	assert.Equal(t, components.RevealVisible, states["hero-headline"])
	assert.Equal(t, components.RevealVisible, states["dot-financial"])
	// 挂载触发的分组在 t=0 一次完成
	for _, tr := range r.Transitions {
		if tr.Group <= 7 {
			assert.Equal(t, time.Duration(0), tr.At, tr.ItemID)
		}
	}
}

func TestSimulateRejectsZeroFrame(t *testing.T) {
	plan, err := LoadPlan(testLanding, testReveal)
	require.NoError(t, err)

	_, err = Simulate(plan, SimulateOptions{Duration: time.Second})
	assert.Error(t, err)
}

func TestSimulateAllMatchesSequential(t *testing.T) {
	a, err := LoadPlan(testLanding, testReveal)
	require.NoError(t, err)
	b, err := LoadPlan(testLanding, testReveal)
	require.NoError(t, err)

	script, err := ParseScrollScript("0s:0,2s:1500")
	require.NoError(t, err)
	opts := SimulateOptions{Duration: 4 * time.Second, Frame: time.Second / 60, Script: script}

	want, err := Simulate(a, opts)
	require.NoError(t, err)

	results, err := simulateAll(context.Background(), []*Plan{a, b}, opts)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("concurrent simulation differs (-want +got):\n%s", diff)
		}
	}
}

func TestLoadPlanErrors(t *testing.T) {
	_, err := LoadPlan("missing.yaml", testReveal)
	assert.Error(t, err)

	_, err = LoadPlan(testLanding, "missing.yaml")
	assert.Error(t, err)
}

func TestRenderTimeline(t *testing.T) {
	plan, err := LoadPlan(testLanding, testReveal)
	require.NoError(t, err)

	r, err := Simulate(plan, SimulateOptions{Duration: time.Second, Frame: time.Second / 60})
	require.NoError(t, err)

	var buf bytes.Buffer
	renderTimeline(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "reveal.yaml")
	assert.Contains(t, out, "hero-headline")
	assert.Contains(t, out, "Entering")
}
