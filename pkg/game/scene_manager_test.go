package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	elapsedMs    float64
	saved        bool
	disposed     bool
	saveOK       bool
}

func (m *MockScene) Update(elapsedMs float64) {
	m.updateCalled = true
	m.elapsedMs = elapsedMs
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) SaveOnExit() bool {
	m.saved = true
	return m.saveOK
}

func (m *MockScene) Dispose() {
	m.disposed = true
}

// plainScene 不实现可选接口
type plainScene struct{ updates int }

func (p *plainScene) Update(float64)     { p.updates++ }
func (p *plainScene) Draw(*ebiten.Image) {}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no active scene initially")
	}
}

// TestSceneManagerUpdateAndDraw verifies Update and Draw reach the active scene.
func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Update(16.67)
	sm.Draw(nil)

	if !mockScene.updateCalled || !mockScene.drawCalled {
		t.Error("Scene's Update/Draw were not called")
	}
	if mockScene.elapsedMs != 16.67 {
		t.Errorf("Expected elapsedMs 16.67, got %.2f", mockScene.elapsedMs)
	}
}

// TestSceneManagerNoScene verifies nil scene is handled gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(16)
	sm.Draw(nil)
	sm.Shutdown()
}

// TestSceneManagerSwitchLeavesOldScene 切换场景时旧场景被保存并释放
func TestSceneManagerSwitchLeavesOldScene(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{saveOK: true}
	scene2 := &plainScene{}

	sm.SwitchTo(scene1)
	sm.SwitchTo(scene1) // 同一场景不触发退出
	if scene1.saved || scene1.disposed {
		t.Fatal("switching to the same scene should not leave it")
	}

	sm.SwitchTo(scene2)
	if !scene1.saved || !scene1.disposed {
		t.Errorf("old scene saved=%v disposed=%v, want both true", scene1.saved, scene1.disposed)
	}

	sm.Update(10)
	if scene2.updates != 1 {
		t.Errorf("new scene updates = %d, want 1", scene2.updates)
	}
}

// TestSceneManagerLoadScene 通过工厂加载场景
func TestSceneManagerLoadScene(t *testing.T) {
	sm := NewSceneManager()
	if sm.LoadScene("python-basics") {
		t.Error("LoadScene without factory should fail")
	}

	created := map[string]*MockScene{}
	sm.SetSceneFactory(func(id string) Scene {
		if id == "missing" {
			return nil
		}
		s := &MockScene{saveOK: true}
		created[id] = s
		return s
	})

	if !sm.LoadScene("python-basics") {
		t.Fatal("LoadScene(python-basics) failed")
	}
	if sm.LoadScene("missing") {
		t.Error("LoadScene(missing) should fail")
	}
	if sm.GetCurrentScene() != created["python-basics"] {
		t.Error("failed load should keep the current scene")
	}

	sm.Shutdown()
	if !created["python-basics"].disposed {
		t.Error("Shutdown did not dispose the active scene")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Shutdown should clear the active scene")
	}
}
