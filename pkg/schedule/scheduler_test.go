package schedule

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/redflag/pkg/content"
)

func fireAts(entries []Entry) []time.Duration {
	out := make([]time.Duration, len(entries))
	for i, e := range entries {
		out[i] = e.FireAt
	}
	return out
}

// 报告卡片中的三条风险标记：delay = 1.2s + i*0.2s
func TestScheduleReportFlags(t *testing.T) {
	items := []content.Item{
		{ID: "legal", Order: 0},
		{ID: "insider", Order: 1},
		{ID: "financial", Order: 2},
	}

	entries, err := Schedule(items, 1200*time.Millisecond, 200*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{
		1200 * time.Millisecond,
		1400 * time.Millisecond,
		1600 * time.Millisecond,
	}, fireAts(entries))
	assert.Equal(t, "insider", entries[1].ItemID)
}

func TestScheduleZeroStepIsSimultaneous(t *testing.T) {
	items := []content.Item{{ID: "a", Order: 0}, {ID: "b", Order: 5}, {ID: "c", Order: 9}}

	entries, err := Schedule(items, 300*time.Millisecond, 0)
	require.NoError(t, err)

	for _, e := range entries {
		assert.Equal(t, 300*time.Millisecond, e.FireAt)
	}
}

func TestScheduleNegativeStep(t *testing.T) {
	_, err := Schedule([]content.Item{{ID: "a"}}, 0, -time.Millisecond)
	require.Error(t, err)

	var invalid *InvalidScheduleError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "staggerStep", invalid.Field)

	_, err = Schedule(nil, -time.Second, 0)
	assert.ErrorAs(t, err, &invalid)
}

func TestScheduleIsMonotonicInOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rng.Intn(20) + 1
		items := make([]content.Item, n)
		for i := range items {
			items[i] = content.Item{ID: string(rune('a' + i)), Order: rng.Intn(10)}
		}
		reg, err := content.Register(items)
		require.NoError(t, err)

		step := time.Duration(rng.Intn(500)) * time.Millisecond
		base := time.Duration(rng.Intn(2000)) * time.Millisecond

		entries, err := Schedule(reg.List(), base, step)
		require.NoError(t, err)

		assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
			return entries[i].FireAt < entries[j].FireAt
		}), "round %d: fireAt must be non-decreasing in order", round)
	}
}

func TestScheduleGroups(t *testing.T) {
	items := []content.Item{
		{ID: "hero", GroupIndex: 0, Order: 0},
		{ID: "step-1", GroupIndex: 3, Order: 0},
		{ID: "step-2", GroupIndex: 3, Order: 1},
		{ID: "step-3", GroupIndex: 3, Order: 2},
	}

	policy := func(group int) Timing {
		if group == 3 {
			return Timing{StaggerStep: 150 * time.Millisecond, AnimationDuration: 300 * time.Millisecond}
		}
		return Timing{BaseDelay: 0, AnimationDuration: 500 * time.Millisecond}
	}

	entries, err := ScheduleGroups(items, policy)
	require.NoError(t, err)

	byID := Lookup(entries)
	assert.Equal(t, 500*time.Millisecond, byID["hero"].AnimationDuration)
	assert.Equal(t, time.Duration(0), byID["step-1"].FireAt)
	assert.Equal(t, 150*time.Millisecond, byID["step-2"].FireAt)
	assert.Equal(t, 300*time.Millisecond, byID["step-3"].FireAt)
	assert.Equal(t, 300*time.Millisecond, byID["step-3"].AnimationDuration)
}

func TestScheduleGroupsRejectsInvalidPolicy(t *testing.T) {
	items := []content.Item{{ID: "a", GroupIndex: 2}}

	_, err := ScheduleGroups(items, func(int) Timing {
		return Timing{StaggerStep: -time.Second}
	})

	var invalid *InvalidScheduleError
	assert.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "group 2")
}
