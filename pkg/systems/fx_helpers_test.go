package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/config"
)

// testContainer 测试用的容器矩形（屏幕坐标）
var testContainer = canvas.Rect{X: 100, Y: 50, Width: 800, Height: 600}

// fakeClock 可手动推进的时钟
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(ms int) { c.t = c.t.Add(time.Duration(ms) * time.Millisecond) }

// newTestParticleSystem 创建已挂载到 Recorder 的粒子系统，背景粒子默认关闭
func newTestParticleSystem(cfg config.ParticleConfig) (*ParticleSystem, *canvas.Recorder) {
	cfg.Ambient.Enabled = false
	ps := NewParticleSystem(cfg, rand.New(rand.NewSource(1)))
	rec := canvas.NewRecorder()
	ps.Mount(rec, testContainer, 1)
	return ps, rec
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
