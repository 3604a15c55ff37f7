package components

import (
	"math"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	states := []RevealState{RevealHidden, RevealEntering, RevealVisible, RevealExiting}

	legal := map[[2]RevealState]bool{
		{RevealHidden, RevealEntering}:  true,
		{RevealEntering, RevealVisible}: true,
	}
	legalRepeat := map[[2]RevealState]bool{
		{RevealHidden, RevealEntering}:  true,
		{RevealEntering, RevealVisible}: true,
		{RevealVisible, RevealExiting}:  true,
		{RevealExiting, RevealHidden}:   true,
	}

	for _, from := range states {
		for _, to := range states {
			key := [2]RevealState{from, to}
			if got := CanTransition(from, to, false); got != legal[key] {
				t.Errorf("CanTransition(%v, %v, false) = %v, 期望 %v", from, to, got, legal[key])
			}
			if got := CanTransition(from, to, true); got != legalRepeat[key] {
				t.Errorf("CanTransition(%v, %v, true) = %v, 期望 %v", from, to, got, legalRepeat[key])
			}
		}
	}
}

func TestRevealStateString(t *testing.T) {
	tests := map[RevealState]string{
		RevealHidden:    "Hidden",
		RevealEntering:  "Entering",
		RevealVisible:   "Visible",
		RevealExiting:   "Exiting",
		RevealState(99): "Unknown",
	}
	for state, want := range tests {
		if state.String() != want {
			t.Errorf("%d.String() = %q, 期望 %q", state, state.String(), want)
		}
	}
}

func TestRevealComponentElapsed(t *testing.T) {
	c := &RevealComponent{StateSince: 500 * time.Millisecond}

	if got := c.Elapsed(800 * time.Millisecond); got != 300*time.Millisecond {
		t.Errorf("Elapsed = %v, 期望 300ms", got)
	}
	// 时钟早于进入时刻时返回 0
	if got := c.Elapsed(100 * time.Millisecond); got != 0 {
		t.Errorf("Elapsed = %v, 期望 0", got)
	}
}

func TestVisibleFraction(t *testing.T) {
	tests := []struct {
		name       string
		bounds     GroupBoundsComponent
		viewTop    float64
		viewHeight float64
		expected   float64
	}{
		{"完全在视口内", GroupBoundsComponent{Y: 100, Height: 200}, 0, 600, 1},
		{"完全在视口下方", GroupBoundsComponent{Y: 700, Height: 200}, 0, 600, 0},
		{"完全在视口上方", GroupBoundsComponent{Y: 0, Height: 100}, 300, 600, 0},
		{"下半部分露出", GroupBoundsComponent{Y: 500, Height: 200}, 0, 600, 0.5},
		{"上半部分滚出", GroupBoundsComponent{Y: 100, Height: 400}, 400, 600, 0.25},
		{"区域比视口高", GroupBoundsComponent{Y: 0, Height: 1200}, 300, 600, 0.5},
		{"零高度区域在视口内", GroupBoundsComponent{Y: 300, Height: 0}, 0, 600, 1},
		{"零高度区域在视口外", GroupBoundsComponent{Y: 600, Height: 0}, 0, 600, 0},
		{"边缘相接", GroupBoundsComponent{Y: 600, Height: 100}, 0, 600, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.bounds.VisibleFraction(tt.viewTop, tt.viewHeight)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("VisibleFraction = %v, 期望 %v", got, tt.expected)
			}
		})
	}
}

func TestDefaultMotion(t *testing.T) {
	m := DefaultMotion()
	if m.Opacity != 0 || m.OffsetY != 20 || m.Scale != 1 {
		t.Errorf("默认动作应为从下方 20px 淡入，实际 %+v", m)
	}
}
