package game

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/redflag/pkg/logging"
)

// SceneFactory 按名称创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(name string) (Scene, error)

// SceneManager 管理当前活动场景
// 任意时刻只有一个场景的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建没有活动场景的管理器；用 SwitchTo 或 Load 设置初始场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景；旧场景实现 Leaver 时先调用 Leave
func (sm *SceneManager) SwitchTo(scene Scene) {
	if leaver, ok := sm.currentScene.(Leaver); ok && sm.currentScene != scene {
		leaver.Leave()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Load 通过工厂创建并切换到指定场景
func (sm *SceneManager) Load(name string) error {
	logging.L().Infof("[SceneManager] loading scene: %s", name)

	if sm.sceneFactory == nil {
		return errNoSceneFactory
	}

	scene, err := sm.sceneFactory(name)
	if err != nil {
		logging.L().Errorf("[SceneManager] failed to create scene %s: %v", name, err)
		return err
	}
	sm.SwitchTo(scene)
	return nil
}

// Update 更新活动场景
func (sm *SceneManager) Update(dt time.Duration) {
	if sm.currentScene != nil {
		sm.currentScene.Update(dt)
	}
}

// Draw 绘制活动场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

var errNoSceneFactory = errors.New("scene factory not set")
