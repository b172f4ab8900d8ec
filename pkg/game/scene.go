package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the application (roadmap, sandbox...).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by the wall-clock time since the last
	// update, in milliseconds.
	Update(elapsedMs float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 窗口关闭
//   - 切换到其他场景
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}

// Disposable 可选接口：场景被替换时释放资源（卸载粒子画布等）
type Disposable interface {
	Dispose()
}
