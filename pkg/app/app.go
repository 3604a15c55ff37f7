// Package app 提供落地页应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载数据、打开偏好存储、
// 创建场景管理器，并实现 ebiten.Game 接口。
package app

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/redflag/pkg/config"
	"github.com/decker502/redflag/pkg/content"
	"github.com/decker502/redflag/pkg/embedded"
	"github.com/decker502/redflag/pkg/game"
	"github.com/decker502/redflag/pkg/logging"
	"github.com/decker502/redflag/pkg/scenes"
	"github.com/decker502/redflag/pkg/utils"
)

// 数据文件
const (
	LandingFile = "landing.yaml"
	RevealFile  = "reveal.yaml"
)

// tick 固定逻辑帧长（ebiten 默认 60 TPS）
const tick = time.Second / 60

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// DataDir 磁盘数据目录，非空时优先于嵌入数据
	DataDir string
	// Watch 监听 DataDir 中的数据文件并热重载（需要 DataDir）
	Watch bool
	// AppName gdata 存储使用的应用名，为空时使用 "redflag"
	AppName string
}

// App 是落地页应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	cancel                   context.CancelFunc
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	if !embedded.IsInitialized() {
		return nil, embedded.ErrNotInitialized
	}
	embedded.SetOverrideDir(cfg.DataDir)

	appName := cfg.AppName
	if appName == "" {
		appName = "redflag"
	}

	// 偏好存储不可用时降级为仅内存
	if err := utils.EnsureStorageDir(); err != nil {
		logging.L().Warnf("[App] failed to prepare storage dir %q: %v", utils.GetStoragePath(), err)
	}
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logging.L().Warnf("[App] preferences storage unavailable: %v", err)
		store = nil
	}
	prefs := game.NewPreferencesManager(store)

	ctx, cancel := context.WithCancel(context.Background())
	var watcher *config.Watcher
	if cfg.Watch && cfg.DataDir != "" {
		watcher, err = config.NewWatcher(cfg.DataDir, LandingFile, RevealFile)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to watch %s: %w", cfg.DataDir, err)
		}
		if err = watcher.Start(ctx); err != nil {
			watcher.Stop()
			cancel()
			return nil, fmt.Errorf("failed to watch %s: %w", cfg.DataDir, err)
		}
		logging.L().Infof("[App] watching %s for changes", cfg.DataDir)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
		switch name {
		case "landing":
			return scenes.NewLandingScene(LoadContent, prefs, watcher)
		default:
			return nil, fmt.Errorf("unknown scene: %s", name)
		}
	})

	if err := sceneManager.Load("landing"); err != nil {
		cancel()
		if watcher != nil {
			watcher.Stop()
		}
		return nil, err
	}

	return &App{
		sceneManager: sceneManager,
		cancel:       cancel,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadContent 读取落地页内容和揭示策略（磁盘覆盖优先，其次嵌入数据）
func LoadContent() (*content.Landing, *config.RevealConfig, error) {
	landingData, err := embedded.ReadFile("data/" + LandingFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", LandingFile, err)
	}
	landing, err := content.LoadLanding(landingData)
	if err != nil {
		return nil, nil, err
	}

	revealData, err := embedded.ReadFile("data/" + RevealFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", RevealFile, err)
	}
	policy, err := config.ParseRevealConfig(revealData)
	if err != nil {
		return nil, nil, err
	}

	return landing, policy, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			logging.L().Debugf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(tick)
	return nil
}

// Close 保存当前场景状态，停止文件监听
// 可重复调用
func (a *App) Close() {
	if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		if !saveable.SaveOnExit() {
			logging.L().Warnf("[App] failed to save state on exit")
		}
	}
	// 切换到空场景会触发当前场景的 Leave
	a.sceneManager.SwitchTo(nil)
	a.cancel()
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
