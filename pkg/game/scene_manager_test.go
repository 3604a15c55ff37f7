package game

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene 记录调用情况的测试场景
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	left         bool
	dt           time.Duration
}

func (m *MockScene) Update(dt time.Duration) {
	m.updateCalled = true
	m.dt = dt
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) Leave() {
	m.left = true
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no current scene initially")
	}
	// 没有场景时不应 panic
	sm.Update(16 * time.Millisecond)
	sm.Draw(nil)
}

func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockScene{}
	sm.SwitchTo(scene)

	sm.Update(16 * time.Millisecond)
	sm.Draw(nil)

	if !scene.updateCalled || scene.dt != 16*time.Millisecond {
		t.Errorf("Update not forwarded correctly: called=%v dt=%v", scene.updateCalled, scene.dt)
	}
	if !scene.drawCalled {
		t.Error("Draw was not forwarded")
	}
}

// TestSceneManagerSwitchLeaves 切换场景时旧场景被通知离开
func TestSceneManagerSwitchLeaves(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.SwitchTo(scene1)
	if scene1.left {
		t.Error("switching to the same scene should not call Leave")
	}

	sm.SwitchTo(scene2)
	if !scene1.left {
		t.Error("Scene1 should have been left")
	}
	sm.Update(time.Millisecond)
	if scene1.updateCalled {
		t.Error("Scene1 should no longer be updated")
	}
}

func TestSceneManagerLoad(t *testing.T) {
	sm := NewSceneManager()
	if err := sm.Load("landing"); err == nil {
		t.Error("Load without factory should fail")
	}

	scene := &MockScene{}
	sm.SetSceneFactory(func(name string) (Scene, error) {
		if name != "landing" {
			return nil, errors.New("unknown scene")
		}
		return scene, nil
	})

	if err := sm.Load("pricing"); err == nil {
		t.Error("Expected error for unknown scene")
	}
	if err := sm.Load("landing"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sm.GetCurrentScene() != scene {
		t.Error("Load did not switch to the created scene")
	}
}
