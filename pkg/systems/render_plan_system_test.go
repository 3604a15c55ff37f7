package systems

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/ecs"
	"github.com/decker502/redflag/pkg/schedule"
	"github.com/decker502/redflag/pkg/trigger"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func fadeUp() components.MotionComponent {
	return components.MotionComponent{Opacity: 0, OffsetY: 20, Scale: 1, Easing: "linear"}
}

func TestEmit(t *testing.T) {
	entry := schedule.Entry{ItemID: "hero", AnimationDuration: 400 * time.Millisecond}

	tests := []struct {
		name    string
		state   components.RevealState
		entry   schedule.Entry
		elapsed time.Duration
		motion  components.MotionComponent
		want    components.VisualDescriptor
	}{
		{
			name:   "Hidden停在起始姿态",
			state:  components.RevealHidden,
			entry:  entry,
			motion: fadeUp(),
			want:   components.VisualDescriptor{ItemID: "hero", State: components.RevealHidden, Opacity: 0, TranslateY: 20, Scale: 1},
		},
		{
			name:    "Entering起点",
			state:   components.RevealEntering,
			entry:   entry,
			elapsed: 0,
			motion:  fadeUp(),
			want:    components.VisualDescriptor{ItemID: "hero", State: components.RevealEntering, Opacity: 0, TranslateY: 20, Scale: 1, Animating: true},
		},
		{
			name:    "Entering中点（线性）",
			state:   components.RevealEntering,
			entry:   entry,
			elapsed: 200 * time.Millisecond,
			motion:  fadeUp(),
			want:    components.VisualDescriptor{ItemID: "hero", State: components.RevealEntering, Opacity: 0.5, TranslateY: 10, Scale: 1, Animating: true},
		},
		{
			name:    "Entering超出时长按终点计算",
			state:   components.RevealEntering,
			entry:   entry,
			elapsed: time.Second,
			motion:  fadeUp(),
			want:    components.VisualDescriptor{ItemID: "hero", State: components.RevealEntering, Opacity: 1, Scale: 1, Animating: true},
		},
		{
			name:    "零时长直接到达终点",
			state:   components.RevealEntering,
			entry:   schedule.Entry{ItemID: "hero"},
			elapsed: 0,
			motion:  fadeUp(),
			want:    components.VisualDescriptor{ItemID: "hero", State: components.RevealEntering, Opacity: 1, Scale: 1, Animating: true},
		},
		{
			name:   "Visible为最终姿态",
			state:  components.RevealVisible,
			entry:  entry,
			motion: components.MotionComponent{Opacity: 0, OffsetX: -20, Scale: 0.9},
			want:   components.VisualDescriptor{ItemID: "hero", State: components.RevealVisible, Opacity: 1, Scale: 1},
		},
		{
			name:    "Exiting起点为最终姿态",
			state:   components.RevealExiting,
			entry:   entry,
			elapsed: 0,
			motion:  fadeUp(),
			want:    components.VisualDescriptor{ItemID: "hero", State: components.RevealExiting, Opacity: 1, Scale: 1, Animating: true},
		},
		{
			name:    "Exiting终点回到起始姿态",
			state:   components.RevealExiting,
			entry:   entry,
			elapsed: 400 * time.Millisecond,
			motion:  fadeUp(),
			want:    components.VisualDescriptor{ItemID: "hero", State: components.RevealExiting, Opacity: 0, TranslateY: 20, Scale: 1, Animating: true},
		},
		{
			name:   "缩放为0的圆点",
			state:  components.RevealHidden,
			entry:  entry,
			motion: components.MotionComponent{Opacity: 1, Scale: 0},
			want:   components.VisualDescriptor{ItemID: "hero", State: components.RevealHidden, Opacity: 1, Scale: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Emit(tt.state, tt.entry, tt.elapsed, tt.motion)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Emit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestEmit_SpringKeepsOpacityInRange 弹性曲线回弹时不透明度不超过 1
func TestEmit_SpringKeepsOpacityInRange(t *testing.T) {
	entry := schedule.Entry{ItemID: "score", AnimationDuration: 600 * time.Millisecond}
	motion := components.MotionComponent{Opacity: 0, Scale: 0.9, Easing: "spring"}

	for ms := 0; ms <= 600; ms += 10 {
		d := Emit(components.RevealEntering, entry, time.Duration(ms)*time.Millisecond, motion)
		if d.Opacity < 0 || d.Opacity > 1 {
			t.Fatalf("opacity out of range at %dms: %v", ms, d.Opacity)
		}
		if d.Scale < 0 {
			t.Fatalf("negative scale at %dms: %v", ms, d.Scale)
		}
	}
}

func TestEmitLoop(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"起点", 0, 0},
		{"四分之一", 500 * time.Millisecond, 90},
		{"一圈之后回绕", 2500 * time.Millisecond, 90},
		{"整周期", 4 * time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := &components.LoopComponent{ItemID: "spinner", Period: 2 * time.Second, Degrees: 360, Started: true, Running: true, Elapsed: tt.elapsed}
			d := EmitLoop(loop, fadeUp())
			if !cmp.Equal(tt.want, d.Rotation, approx) {
				t.Errorf("Expected rotation %v, got %v", tt.want, d.Rotation)
			}
			if d.State != components.RevealVisible || !d.Looping || d.Opacity != 1 {
				t.Errorf("loop descriptor should be visible and looping: %+v", d)
			}
		})
	}
}

func TestEmitLoop_GatedOnStart(t *testing.T) {
	loop := &components.LoopComponent{ItemID: "spinner", Period: 2 * time.Second, Degrees: 360, FadeIn: 400 * time.Millisecond}

	d := EmitLoop(loop, fadeUp())
	want := components.VisualDescriptor{ItemID: "spinner", State: components.RevealHidden, Opacity: 0, TranslateY: 20, Scale: 1, Looping: true}
	if diff := cmp.Diff(want, d, approx); diff != "" {
		t.Errorf("not-started loop should hold the from-pose (-want +got):\n%s", diff)
	}

	loop.Started = true
	loop.Running = true
	loop.Elapsed = 200 * time.Millisecond
	d = EmitLoop(loop, fadeUp())
	if d.State != components.RevealEntering || !d.Animating {
		t.Errorf("Expected entering loop while fading in, got %+v", d)
	}
	if !cmp.Equal(0.5, d.Opacity, approx) || !cmp.Equal(36.0, d.Rotation, approx) {
		t.Errorf("Expected opacity 0.5 and rotation 36 halfway through fade, got %+v", d)
	}
}

func TestRenderPlanSystem_CachesStaticDescriptors(t *testing.T) {
	em := ecs.NewEntityManager()
	rp := NewRenderPlanSystem(em)

	id := em.CreateEntity()
	reveal := &components.RevealComponent{ItemID: "stat", State: components.RevealVisible, Duration: 300 * time.Millisecond}
	motion := fadeUp()
	ecs.AddComponent(em, id, reveal)
	ecs.AddComponent(em, id, &motion)
	ecs.AddComponent(em, id, &components.VisualComponent{})

	first := rp.Frame(time.Second)
	second := rp.Frame(2 * time.Second)

	if rp.Recomputed() != 1 {
		t.Errorf("Expected 1 recomputation for a static item, got %d", rp.Recomputed())
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached frame differs (-first +second):\n%s", diff)
	}

	// 状态变化后缓存失效
	reveal.State = components.RevealExiting
	reveal.StateSince = 2 * time.Second
	frame := rp.Frame(2150 * time.Millisecond)
	if rp.Recomputed() != 2 {
		t.Errorf("Expected recomputation after state change, got %d", rp.Recomputed())
	}
	if len(frame) != 1 || !frame[0].Animating {
		t.Fatalf("Expected one animating descriptor, got %+v", frame)
	}
	if !cmp.Equal(0.5, frame[0].Opacity, approx) {
		t.Errorf("Expected opacity 0.5 halfway through exit, got %v", frame[0].Opacity)
	}
}

func TestRenderPlanSystem_FrameOrderAndLoops(t *testing.T) {
	em := ecs.NewEntityManager()
	rp := NewRenderPlanSystem(em)
	ls := NewLoopSystem(em)

	for _, id := range []string{"a", "b"} {
		e := em.CreateEntity()
		ecs.AddComponent(em, e, &components.RevealComponent{ItemID: id})
		ecs.AddComponent(em, e, &components.VisualComponent{})
	}
	spinner := em.CreateEntity()
	ecs.AddComponent(em, spinner, &components.LoopComponent{ItemID: "spinner", Period: 2 * time.Second, Degrees: 360, Started: true, StartedAt: time.Second})
	ecs.AddComponent(em, spinner, &components.VisualComponent{})

	ls.Update(1500 * time.Millisecond)
	frame := rp.Frame(1500 * time.Millisecond)

	var ids []string
	for _, d := range frame {
		ids = append(ids, d.ItemID)
	}
	if diff := cmp.Diff([]string{"a", "b", "spinner"}, ids); diff != "" {
		t.Errorf("frame order mismatch (-want +got):\n%s", diff)
	}
	if !cmp.Equal(90.0, frame[2].Rotation, approx) {
		t.Errorf("Expected spinner rotation 90, got %v", frame[2].Rotation)
	}

	// 未设置 MotionComponent 的条目使用默认动作
	if frame[0].TranslateY != 20 || frame[0].Opacity != 0 {
		t.Errorf("Expected default motion pose, got %+v", frame[0])
	}
}

func TestLoopSystem_WaitsForGroupFire(t *testing.T) {
	em := ecs.NewEntityManager()
	ls := NewLoopSystem(em)
	e := em.CreateEntity()
	loop := &components.LoopComponent{ItemID: "spinner", GroupIndex: 5, Period: time.Second, Degrees: 360, FireAt: 500 * time.Millisecond}
	ecs.AddComponent(em, e, loop)

	ls.Update(3 * time.Second)
	if loop.Running || loop.Elapsed != 0 {
		t.Errorf("Expected idle loop before its group fires, got %+v", loop)
	}

	// 其他分组的事件不影响
	ls.Fire(trigger.FireEvent{Group: 4, Kind: trigger.FireEnter, At: time.Second})
	if loop.Started {
		t.Fatal("loop started by another group's event")
	}

	ls.Fire(trigger.FireEvent{Group: 5, Kind: trigger.FireEnter, At: 1500 * time.Millisecond})
	if loop.StartedAt != 2*time.Second {
		t.Errorf("Expected StartedAt 2s, got %v", loop.StartedAt)
	}
	ls.Update(1800 * time.Millisecond)
	if loop.Running {
		t.Error("loop should not run before StartedAt")
	}
	ls.Update(2500 * time.Millisecond)
	if !loop.Running || loop.Elapsed != 500*time.Millisecond {
		t.Errorf("Expected running loop with 500ms elapsed, got %+v", loop)
	}

	// 重复触发只生效一次
	ls.Fire(trigger.FireEvent{Group: 5, Kind: trigger.FireEnter, At: 4 * time.Second})
	if loop.StartedAt != 2*time.Second {
		t.Errorf("Expected StartedAt to stay 2s, got %v", loop.StartedAt)
	}

	ls.Fire(trigger.FireEvent{Group: 5, Kind: trigger.FireExit, At: 5 * time.Second})
	ls.Update(5 * time.Second)
	if loop.Started || loop.Running {
		t.Errorf("Expected loop hidden after exit, got %+v", loop)
	}
}
