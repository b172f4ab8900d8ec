package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按ID创建场景（如路线图ID），避免循环依赖
type SceneFactory func(id string) Scene

// SceneManager controls which scene is active.
// Only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene. The outgoing scene is saved and
// disposed when it supports that.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		sm.leave(sm.currentScene)
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadScene 通过工厂创建并切换到指定ID的场景
func (sm *SceneManager) LoadScene(id string) bool {
	log.Printf("[SceneManager] 加载场景: %s", id)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory(id)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", id)
		return false
	}
	sm.SwitchTo(newScene)
	return true
}

// Shutdown 保存并释放当前场景（窗口关闭时调用）
func (sm *SceneManager) Shutdown() {
	if sm.currentScene != nil {
		sm.leave(sm.currentScene)
		sm.currentScene = nil
	}
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(elapsedMs float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(elapsedMs)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

func (sm *SceneManager) leave(scene Scene) {
	if s, ok := scene.(Saveable); ok && !s.SaveOnExit() {
		log.Printf("[SceneManager] Warning: scene failed to save on exit")
	}
	if d, ok := scene.(Disposable); ok {
		d.Dispose()
	}
}
