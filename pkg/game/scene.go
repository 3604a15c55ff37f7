package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个页面场景（目前只有落地页）
type Scene interface {
	// Update 推进场景逻辑，dt 为距上一帧的时间
	Update(dt time.Duration)

	// Draw 绘制到 screen
	Draw(screen *ebiten.Image)
}

// Leaver 可选接口：场景被切换掉时调用
// 落地页在这里卸载揭示舞台，释放所有分组闩锁
type Leaver interface {
	Leave()
}

// Saveable 可选接口：程序退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 窗口关闭
//   - 通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
