package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/redflag/pkg/logging"
)

// Preferences 访客偏好
type Preferences struct {
	// ReducedMotion 减少动画：所有揭示立即完成
	ReducedMotion bool `yaml:"reducedMotion"`

	// LastScrollY 上次退出时的滚动位置
	LastScrollY float64 `yaml:"lastScrollY"`
}

// DefaultPreferences 返回默认偏好
func DefaultPreferences() *Preferences {
	return &Preferences{}
}

// PreferencesManager 偏好管理器
// 负责偏好的加载、保存和内存管理
type PreferencesManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	prefs        *Preferences
}

// 存储路径常量
const (
	preferencesObject   = "preferences"
	preferencesProperty = "viewer"
)

// NewPreferencesManager 创建偏好管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存偏好）
//
// 加载失败不是致命错误，使用默认偏好。
func NewPreferencesManager(gdataManager *gdata.Manager) *PreferencesManager {
	pm := &PreferencesManager{
		gdataManager: gdataManager,
		prefs:        DefaultPreferences(),
	}

	if err := pm.Load(); err != nil {
		logging.L().Warnf("[PreferencesManager] failed to load preferences: %v (using defaults)", err)
	}

	return pm
}

// Load 从 gdata 加载偏好
func (pm *PreferencesManager) Load() error {
	if pm.gdataManager == nil {
		pm.prefs = DefaultPreferences()
		return nil
	}

	if !pm.gdataManager.ObjectPropExists(preferencesObject, preferencesProperty) {
		pm.prefs = DefaultPreferences()
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(preferencesObject, preferencesProperty)
	if err != nil {
		pm.prefs = DefaultPreferences()
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	loaded := DefaultPreferences()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		pm.prefs = DefaultPreferences()
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	pm.prefs = loaded
	logging.L().Debugf("[PreferencesManager] preferences loaded: %+v", *loaded)
	return nil
}

// Save 保存偏好到 gdata；降级模式下直接返回 nil
func (pm *PreferencesManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(preferencesObject, preferencesProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	logging.L().Debugf("[PreferencesManager] preferences saved")
	return nil
}

// Preferences 当前偏好
func (pm *PreferencesManager) Preferences() *Preferences {
	return pm.prefs
}

// SetReducedMotion 设置减少动画（需调用 Save 持久化）
func (pm *PreferencesManager) SetReducedMotion(on bool) {
	pm.prefs.ReducedMotion = on
}

// SetLastScrollY 记录滚动位置，负数按 0 处理
func (pm *PreferencesManager) SetLastScrollY(y float64) {
	pm.prefs.LastScrollY = max(0, y)
}

// Persistent 是否能持久化
func (pm *PreferencesManager) Persistent() bool {
	return pm.gdataManager != nil
}
