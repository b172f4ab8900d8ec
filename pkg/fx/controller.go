// Package fx wires the completion effects together: a step toggle fans out
// to the particle simulator, the combo tracker and the sound player.
package fx

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/config"
	"github.com/gonewx/roadfx/pkg/systems"
)

// 爆发粒子颜色（按连击等级）
var (
	burstColorNormal = color.NRGBA{R: 29, G: 209, B: 161, A: 255}
	burstColorDouble = color.NRGBA{R: 72, G: 219, B: 251, A: 255}
	burstColorCombo  = color.NRGBA{R: 254, G: 202, B: 87, A: 255}
	burstColorInsane = color.NRGBA{R: 255, G: 107, B: 107, A: 255}
)

// SoundPlayer 反馈音效（game.AudioManager 实现）
type SoundPlayer interface {
	PlayCompleteSound() bool
	PlayUncompleteSound() bool
	PlayComboSound(combo int) bool
	PlaySectionCompleteSound() bool
}

// Options 可注入的依赖，零值使用真实时钟和随机源
type Options struct {
	Clock func() time.Time
	Rand  *rand.Rand
}

// Controller 完成特效的编排者
//
// 宿主循环在同一个 goroutine 中依次调用 Update 和 Draw；
// 所有计时都以过期时间戳的形式在 Update 中检查。
type Controller struct {
	particles *systems.ParticleSystem
	combo     *systems.ComboSystem
	overlay   *systems.OverlayRenderSystem
	sounds    SoundPlayer

	container  canvas.Rect
	measurable bool
}

// NewController creates the engine from an FX config. sounds may be nil.
func NewController(cfg *config.FXConfig, sounds SoundPlayer, opts Options) *Controller {
	if cfg == nil {
		cfg = config.DefaultFXConfig()
	}
	combo := systems.NewComboSystem(cfg.Combo, opts.Clock)
	return &Controller{
		particles: systems.NewParticleSystem(cfg.Particle, opts.Rand),
		combo:     combo,
		overlay:   systems.NewOverlayRenderSystem(combo, cfg.Overlay),
		sounds:    sounds,
	}
}

// Mount attaches the particle surface and resets the session's combo
// state. The overlay container defaults to the same rectangle.
func (c *Controller) Mount(surface canvas.Surface, bounds canvas.Rect, pixelRatio float64) {
	c.particles.Mount(surface, bounds, pixelRatio)
	c.combo.Reset()
	c.container = bounds
	c.measurable = true
}

// Resize 同步画布与覆盖层容器尺寸
func (c *Controller) Resize(bounds canvas.Rect, pixelRatio float64) {
	c.particles.Resize(bounds, pixelRatio)
	c.container = bounds
}

// SetContainer 设置覆盖层定位所用的滚动容器；measurable=false 时本帧跳过提示
func (c *Controller) SetContainer(container canvas.Rect, measurable bool) {
	c.container = container
	c.measurable = measurable
}

// StepCompleted handles a step becoming complete at a screen point and
// returns the new combo count.
func (c *Controller) StepCompleted(screenX, screenY float64) int {
	combo := c.combo.TriggerCompletion(screenX, screenY)
	c.particles.Burst(screenX, screenY, BurstColor(combo))

	if c.sounds != nil {
		if combo >= 2 {
			c.sounds.PlayComboSound(combo)
		} else {
			c.sounds.PlayCompleteSound()
		}
	}
	return combo
}

// StepUncompleted 取消完成：只播放音效，不影响连击
func (c *Controller) StepUncompleted() {
	if c.sounds != nil {
		c.sounds.PlayUncompleteSound()
	}
}

// SectionCompleted fires confetti at the point, shows the section banner
// and plays the section chord.
func (c *Controller) SectionCompleted(screenX, screenY float64, title string) {
	c.particles.Confetti(screenX, screenY)
	c.combo.TriggerSectionComplete(title)
	if c.sounds != nil {
		c.sounds.PlaySectionCompleteSound()
	}
}

// Update advances particles and expires toasts, banner and combo.
func (c *Controller) Update(elapsedMs float64) {
	c.particles.Update(elapsedMs)
	c.combo.Update()
}

// Draw repaints the particle surface, then the overlay onto the given
// screen-space surface (nil skips the overlay).
func (c *Controller) Draw(overlay canvas.TextSurface) {
	c.DrawParticles()
	c.DrawOverlay(overlay)
}

// DrawParticles 只重绘粒子层（宿主需要在两层之间合成时分开调用）
func (c *Controller) DrawParticles() {
	c.particles.Draw()
}

// DrawOverlay 只绘制提示、徽章和横幅
func (c *Controller) DrawOverlay(overlay canvas.TextSurface) {
	if overlay != nil {
		c.overlay.Draw(overlay, c.container, c.measurable)
	}
}

// Layout 返回当前覆盖层布局（不绘制）
func (c *Controller) Layout() systems.OverlayFrame {
	return c.overlay.Layout(c.container, c.measurable)
}

// SetAmbientEnabled 开关背景粒子
func (c *Controller) SetAmbientEnabled(enabled bool) {
	c.particles.SetAmbientEnabled(enabled)
}

// ClearParticles 立即移除所有粒子
func (c *Controller) ClearParticles() {
	c.particles.Clear()
}

// Particles 返回粒子模拟器（只读查询用）
func (c *Controller) Particles() *systems.ParticleSystem {
	return c.particles
}

// Combo 返回连击追踪器
func (c *Controller) Combo() *systems.ComboSystem {
	return c.combo
}

// Close tears the engine down: particles are dropped, the surface is
// released and the combo session is cleared.
func (c *Controller) Close() {
	c.particles.Unmount()
	c.combo.Reset()
	c.measurable = false
}

// BurstColor 按连击等级选择爆发颜色
func BurstColor(combo int) color.NRGBA {
	switch systems.ComboTierFor(combo) {
	case systems.TierInsane:
		return burstColorInsane
	case systems.TierCombo:
		return burstColorCombo
	case systems.TierDouble:
		return burstColorDouble
	default:
		return burstColorNormal
	}
}
