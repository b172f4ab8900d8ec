package systems

import (
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/components"
	"github.com/gonewx/roadfx/pkg/config"
)

// ambientBaseAlpha 背景粒子的基础透明度（再乘以 Life）
const ambientBaseAlpha = 0.6

// ParticleSystem owns and animates the pool of transient particles drawn
// on the effects canvas.
//
// The host drives it explicitly: Update advances the simulation by the
// elapsed wall-clock time and Draw repaints the surface from the live set.
// Burst and Confetti are fire-and-forget spawns; callers never receive
// particle identities.
//
// Every operation is a silent no-op until Mount attaches a surface, and
// again after Unmount.
type ParticleSystem struct {
	cfg     config.ParticleConfig
	rng     *rand.Rand
	palette []color.NRGBA

	surface    canvas.Surface
	bounds     canvas.Rect
	pixelRatio float64

	particles      []components.Particle
	ambientEnabled bool
	ambientElapsed float64
}

// NewParticleSystem creates a new ParticleSystem instance.
// rng may be nil, in which case a time-seeded source is used.
func NewParticleSystem(cfg config.ParticleConfig, rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	palette := make([]color.NRGBA, 0, len(cfg.Confetti.Palette))
	for _, hex := range cfg.Confetti.Palette {
		c, err := canvas.ParseHexColor(hex)
		if err != nil {
			log.Printf("[ParticleSystem] Warning: skipping palette entry: %v", err)
			continue
		}
		palette = append(palette, c)
	}
	if len(palette) == 0 {
		palette = append(palette, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	}

	return &ParticleSystem{
		cfg:            cfg,
		rng:            rng,
		palette:        palette,
		pixelRatio:     1,
		ambientEnabled: cfg.Ambient.Enabled,
	}
}

// Mount attaches the system to a surface whose top-left corner sits at
// (bounds.X, bounds.Y) in screen coordinates.
func (ps *ParticleSystem) Mount(surface canvas.Surface, bounds canvas.Rect, pixelRatio float64) {
	ps.surface = surface
	ps.ambientElapsed = 0
	ps.Resize(bounds, pixelRatio)
}

// Unmount 卸载：清空粒子、停止背景粒子生成并释放绘制表面
func (ps *ParticleSystem) Unmount() {
	ps.surface = nil
	ps.particles = nil
	ps.ambientElapsed = 0
}

// Mounted reports whether a surface is attached.
func (ps *ParticleSystem) Mounted() bool {
	return ps.surface != nil
}

// Resize 同步画布的显示尺寸与像素密度（相当于 ResizeObserver 回调）
func (ps *ParticleSystem) Resize(bounds canvas.Rect, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	ps.bounds = bounds
	ps.pixelRatio = pixelRatio
}

// Bounds 返回画布的屏幕矩形
func (ps *ParticleSystem) Bounds() canvas.Rect {
	return ps.bounds
}

// BackingSize 返回画布后备存储的物理像素尺寸
func (ps *ParticleSystem) BackingSize() (int, int) {
	w := int(math.Ceil(ps.bounds.Width * ps.pixelRatio))
	h := int(math.Ceil(ps.bounds.Height * ps.pixelRatio))
	return w, h
}

// SetAmbientEnabled 开关背景粒子生成；已存在的背景粒子自然消散
func (ps *ParticleSystem) SetAmbientEnabled(enabled bool) {
	ps.ambientEnabled = enabled
	ps.ambientElapsed = 0
}

// Burst spawns the step-completion burst at a screen coordinate.
func (ps *ParticleSystem) Burst(screenX, screenY float64, c color.Color) {
	if !ps.Mounted() {
		return
	}
	bc := ps.cfg.Burst
	x, y := ps.toLocal(screenX, screenY)
	base := canvas.ToNRGBA(c)

	for i := 0; i < bc.Count; i++ {
		angle := 2*math.Pi*float64(i)/float64(bc.Count) + (ps.rng.Float64()-0.5)*2*bc.AngleJitter
		speed := ps.between(bc.SpeedMin, bc.SpeedMax)
		ps.particles = append(ps.particles, components.Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle)*speed + bc.UpwardBias,
			Life:    1,
			Size:    ps.between(bc.SizeMin, bc.SizeMax),
			Color:   base,
			Variant: components.VariantBurst,
		})
	}
}

// Confetti spawns the section-completion confetti at a screen coordinate.
func (ps *ParticleSystem) Confetti(screenX, screenY float64) {
	if !ps.Mounted() {
		return
	}
	cc := ps.cfg.Confetti
	x, y := ps.toLocal(screenX, screenY)

	for i := 0; i < cc.Count; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.between(cc.SpeedMin, cc.SpeedMax)
		ps.particles = append(ps.particles, components.Particle{
			X:             x,
			Y:             y,
			VX:            math.Cos(angle) * speed,
			VY:            math.Sin(angle)*speed + cc.UpwardBias,
			Life:          1,
			Size:          ps.between(cc.SizeMin, cc.SizeMax),
			Color:         ps.palette[ps.rng.Intn(len(ps.palette))],
			Variant:       components.VariantConfetti,
			Rotation:      ps.rng.Float64() * 2 * math.Pi,
			RotationSpeed: ps.between(-cc.MaxSpin, cc.MaxSpin),
		})
	}
}

// Update advances the simulation by elapsedMs of wall-clock time.
//
// Motion is scaled by dt = elapsedMs / FrameMs, clamped to MaxDeltaFactor.
// Particles whose life reaches zero are dropped in the same pass.
func (ps *ParticleSystem) Update(elapsedMs float64) {
	if !ps.Mounted() || elapsedMs <= 0 {
		return
	}

	dt := elapsedMs / ps.cfg.FrameMs
	if dt > ps.cfg.MaxDeltaFactor {
		dt = ps.cfg.MaxDeltaFactor
	}

	ps.updateParticles(dt)
	ps.updateAmbientSpawner(elapsedMs)
}

func (ps *ParticleSystem) updateParticles(dt float64) {
	bc := ps.cfg.Burst
	cc := ps.cfg.Confetti

	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.X += p.VX * dt
		p.Y += p.VY * dt

		switch p.Variant {
		case components.VariantBurst:
			p.Life -= bc.Decay * dt
			damp := math.Pow(bc.Damping, dt)
			p.VX *= damp
			p.VY *= damp
			p.VY += bc.Gravity * dt
		case components.VariantConfetti:
			p.Life -= cc.Decay * dt
			p.VX *= math.Pow(cc.DampingX, dt)
			p.VY += cc.Gravity * dt
			p.Rotation += p.RotationSpeed * dt
		default:
			p.Life -= ps.cfg.Ambient.Decay * dt
		}

		if p.Life <= 0 {
			continue
		}
		alive = append(alive, p)
	}
	ps.particles = alive
}

// updateAmbientSpawner 每 IntervalMs 生成一个背景粒子，存活数达到上限时跳过
func (ps *ParticleSystem) updateAmbientSpawner(elapsedMs float64) {
	ac := ps.cfg.Ambient
	if !ps.ambientEnabled || ac.IntervalMs <= 0 {
		return
	}

	ps.ambientElapsed += elapsedMs
	if ps.ambientElapsed < ac.IntervalMs {
		return
	}

	alive := ps.CountVariant(components.VariantAmbient)
	for ps.ambientElapsed >= ac.IntervalMs {
		ps.ambientElapsed -= ac.IntervalMs
		if alive >= ac.MaxAlive {
			continue
		}
		ps.spawnAmbient()
		alive++
	}
}

func (ps *ParticleSystem) spawnAmbient() {
	ac := ps.cfg.Ambient
	size := ps.between(ac.SizeMin, ac.SizeMax)
	hue := ps.between(ac.HueMin, ac.HueMax)

	ps.particles = append(ps.particles, components.Particle{
		X:       ps.rng.Float64() * ps.bounds.Width,
		Y:       ps.bounds.Height + size,
		VX:      (ps.rng.Float64() - 0.5) * ac.Drift,
		VY:      -ps.between(ac.RiseMin, ac.RiseMax),
		Life:    1,
		Size:    size,
		Color:   canvas.HSLA(hue, 0.8, 0.8, ambientBaseAlpha),
		Variant: components.VariantAmbient,
	})
}

// Draw clears the surface and repaints every live particle with alpha
// proportional to its remaining life.
func (ps *ParticleSystem) Draw() {
	if !ps.Mounted() {
		return
	}
	ps.surface.Clear()

	bc := ps.cfg.Burst
	for _, p := range ps.particles {
		switch p.Variant {
		case components.VariantBurst:
			ps.surface.DrawGlow(p.X, p.Y, p.Size*bc.GlowScale, canvas.WithAlpha(p.Color, bc.GlowAlpha*p.Life))
			ps.surface.DrawCircle(p.X, p.Y, p.Size, canvas.WithAlpha(p.Color, p.Life))
		case components.VariantConfetti:
			ps.surface.DrawRect(p.X, p.Y, p.Size, p.Size*ps.cfg.Confetti.AspectRatio, p.Rotation,
				canvas.WithAlpha(p.Color, p.Life))
		default:
			ps.surface.DrawCircle(p.X, p.Y, p.Size, canvas.WithAlpha(p.Color, p.Life))
		}
	}
}

// Clear 移除所有粒子（不影响挂载状态）
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}

// Count 返回存活粒子总数
func (ps *ParticleSystem) Count() int {
	return len(ps.particles)
}

// CountVariant 返回指定类型的存活粒子数
func (ps *ParticleSystem) CountVariant(v components.ParticleVariant) int {
	n := 0
	for i := range ps.particles {
		if ps.particles[i].Variant == v {
			n++
		}
	}
	return n
}

// Particles 返回存活粒子的副本
func (ps *ParticleSystem) Particles() []components.Particle {
	out := make([]components.Particle, len(ps.particles))
	copy(out, ps.particles)
	return out
}

func (ps *ParticleSystem) toLocal(screenX, screenY float64) (float64, float64) {
	return screenX - ps.bounds.X, screenY - ps.bounds.Y
}

// between 返回 [lo, hi) 内的随机数
func (ps *ParticleSystem) between(lo, hi float64) float64 {
	return lo + ps.rng.Float64()*(hi-lo)
}
