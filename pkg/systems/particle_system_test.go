package systems

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/components"
	"github.com/gonewx/roadfx/pkg/config"
)

var testGreen = color.NRGBA{R: 29, G: 209, B: 161, A: 255}

// deterministicBurstConfig 单粒子、无抖动、固定速度和尺寸
func deterministicBurstConfig() config.ParticleConfig {
	cfg := config.DefaultFXConfig().Particle
	cfg.Burst.Count = 1
	cfg.Burst.AngleJitter = 0
	cfg.Burst.SpeedMin, cfg.Burst.SpeedMax = 4, 4
	cfg.Burst.SizeMin, cfg.Burst.SizeMax = 3, 3
	return cfg
}

func TestParticleSystem_SpawnCounts(t *testing.T) {
	ps, _ := newTestParticleSystem(config.DefaultFXConfig().Particle)

	ps.Burst(300, 200, testGreen)
	if got := ps.CountVariant(components.VariantBurst); got != 28 {
		t.Errorf("burst particles = %d, want 28", got)
	}

	ps.Confetti(300, 200)
	if got := ps.CountVariant(components.VariantConfetti); got != 80 {
		t.Errorf("confetti particles = %d, want 80", got)
	}
	if ps.Count() != 108 {
		t.Errorf("Count() = %d, want 108", ps.Count())
	}

	for _, p := range ps.Particles() {
		if p.Life != 1 {
			t.Fatalf("new particle life = %v, want 1", p.Life)
		}
		if p.X != 200 || p.Y != 150 {
			t.Fatalf("particle spawned at (%v, %v), want canvas-local (200, 150)", p.X, p.Y)
		}
	}
}

func TestParticleSystem_UnmountedIsNoop(t *testing.T) {
	ps := NewParticleSystem(config.DefaultFXConfig().Particle, rand.New(rand.NewSource(1)))
	rec := canvas.NewRecorder()

	ps.Burst(10, 10, testGreen)
	ps.Confetti(10, 10)
	ps.Update(16.67)
	ps.Draw()
	if ps.Count() != 0 {
		t.Errorf("unmounted system spawned %d particles", ps.Count())
	}
	if len(rec.Ops) != 0 {
		t.Errorf("unmounted system drew %d ops", len(rec.Ops))
	}

	ps.Mount(rec, testContainer, 1)
	ps.Burst(10, 10, testGreen)
	if ps.Count() == 0 {
		t.Fatal("mounted system should spawn")
	}
	ps.Unmount()
	if ps.Count() != 0 || ps.Mounted() {
		t.Errorf("Unmount should clear particles, got %d (mounted=%v)", ps.Count(), ps.Mounted())
	}
}

func TestParticleSystem_BurstPhysics(t *testing.T) {
	ps, _ := newTestParticleSystem(deterministicBurstConfig())

	ps.Burst(110, 60, testGreen)
	p := ps.Particles()[0]
	if p.VX != 4 || p.VY != -1.5 {
		t.Fatalf("initial velocity = (%v, %v), want (4, -1.5)", p.VX, p.VY)
	}

	ps.Update(16.67)
	p = ps.Particles()[0]

	tests := []struct {
		name      string
		got, want float64
	}{
		{"x", p.X, 14},
		{"y", p.Y, 8.5},
		{"vx", p.VX, 4 * 0.97},
		{"vy", p.VY, -1.5*0.97 + 0.04},
		{"life", p.Life, 0.975},
	}
	for _, tt := range tests {
		if !approxEqual(tt.got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestParticleSystem_DeltaClamp(t *testing.T) {
	ps, _ := newTestParticleSystem(deterministicBurstConfig())
	ps.Burst(110, 60, testGreen)

	// 1 秒的间隔按 3 帧计算
	ps.Update(1000)
	p := ps.Particles()[0]
	if !approxEqual(p.X, 10+4*3) {
		t.Errorf("x after clamped step = %v, want 22", p.X)
	}
	if !approxEqual(p.Life, 1-0.025*3) {
		t.Errorf("life after clamped step = %v, want 0.925", p.Life)
	}
}

func TestParticleSystem_NonPositiveElapsedIsNoop(t *testing.T) {
	ps, _ := newTestParticleSystem(deterministicBurstConfig())
	ps.Burst(110, 60, testGreen)
	before := ps.Particles()[0]

	for _, elapsed := range []float64{0, -5} {
		ps.Update(elapsed)
	}
	if after := ps.Particles()[0]; after != before {
		t.Errorf("particle changed on non-positive elapsed: %+v -> %+v", before, after)
	}
}

func TestParticleSystem_LifeDecreasesUntilRemoved(t *testing.T) {
	ps, _ := newTestParticleSystem(deterministicBurstConfig())
	ps.Burst(110, 60, testGreen)

	last := 1.0
	for i := 0; i < 39; i++ {
		ps.Update(16.67)
		if ps.Count() != 1 {
			t.Fatalf("particle removed early at tick %d", i+1)
		}
		life := ps.Particles()[0].Life
		if life >= last {
			t.Fatalf("life did not decrease at tick %d: %v -> %v", i+1, last, life)
		}
		last = life
	}

	ps.Update(16.67)
	ps.Update(16.67)
	if ps.Count() != 0 {
		t.Errorf("particle should be removed once life reaches zero, got %d alive", ps.Count())
	}
}

func TestParticleSystem_AmbientCap(t *testing.T) {
	cfg := config.DefaultFXConfig().Particle
	ps := NewParticleSystem(cfg, rand.New(rand.NewSource(7)))
	ps.Mount(canvas.NewRecorder(), testContainer, 2)

	ps.Update(400)
	if got := ps.CountVariant(components.VariantAmbient); got != 1 {
		t.Fatalf("ambient after one interval = %d, want 1", got)
	}

	for i := 0; i < 30; i++ {
		ps.Update(400)
	}
	if got := ps.CountVariant(components.VariantAmbient); got != cfg.Ambient.MaxAlive {
		t.Errorf("ambient alive = %d, want cap %d", got, cfg.Ambient.MaxAlive)
	}

	for _, p := range ps.Particles() {
		if p.X < 0 || p.X > testContainer.Width {
			t.Errorf("ambient spawned outside canvas width: x=%v", p.X)
		}
		if p.VY >= 0 {
			t.Errorf("ambient particle should rise, vy=%v", p.VY)
		}
	}

	ps.SetAmbientEnabled(false)
	n := ps.Count()
	ps.Update(400)
	if ps.Count() > n {
		t.Error("disabled ambient spawner should not create particles")
	}
}

func TestParticleSystem_Draw(t *testing.T) {
	ps, rec := newTestParticleSystem(config.DefaultFXConfig().Particle)

	ps.Burst(300, 200, testGreen)
	ps.Confetti(300, 200)
	ps.Draw()

	if rec.Count(canvas.OpClear) != 1 {
		t.Errorf("clears = %d, want 1", rec.Count(canvas.OpClear))
	}
	if rec.Count(canvas.OpGlow) != 28 || rec.Count(canvas.OpCircle) != 28 {
		t.Errorf("glow/circle = %d/%d, want 28/28", rec.Count(canvas.OpGlow), rec.Count(canvas.OpCircle))
	}
	if rec.Count(canvas.OpRect) != 80 {
		t.Errorf("rects = %d, want 80", rec.Count(canvas.OpRect))
	}

	// alpha 随生命衰减
	ps.Clear()
	ps.Burst(300, 200, testGreen)
	for i := 0; i < 20; i++ {
		ps.Update(16.67)
	}
	rec.Reset()
	ps.Draw()
	for _, op := range rec.Ops {
		if op.Kind == canvas.OpCircle && op.Color.A >= 255 {
			t.Fatalf("circle alpha = %d, want faded", op.Color.A)
		}
	}
}

func TestParticleSystem_PaletteFallback(t *testing.T) {
	cfg := config.DefaultFXConfig().Particle
	cfg.Confetti.Palette = []string{"not-a-color"}
	ps, _ := newTestParticleSystem(cfg)

	ps.Confetti(300, 200)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for _, p := range ps.Particles() {
		if p.Color != white {
			t.Fatalf("confetti color = %v, want fallback white", p.Color)
		}
	}
}

func TestParticleSystem_BackingSize(t *testing.T) {
	ps, _ := newTestParticleSystem(config.DefaultFXConfig().Particle)

	ps.Resize(canvas.Rect{Width: 401, Height: 300}, 1.5)
	w, h := ps.BackingSize()
	if w != 602 || h != 450 {
		t.Errorf("BackingSize() = %dx%d, want 602x450", w, h)
	}

	ps.Resize(canvas.Rect{Width: 100, Height: 50}, 0)
	if w, h := ps.BackingSize(); w != 100 || h != 50 {
		t.Errorf("non-positive ratio should fall back to 1, got %dx%d", w, h)
	}
}
