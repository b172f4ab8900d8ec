package components

import "image/color"

// ParticleVariant 粒子类型
type ParticleVariant int

const (
	// VariantAmbient 背景漂浮粒子（持续生成，与用户操作无关）
	VariantAmbient ParticleVariant = iota
	// VariantBurst 完成步骤时的径向爆发粒子
	VariantBurst
	// VariantConfetti 章节完成时的彩纸粒子（矩形，受重力影响）
	VariantConfetti
)

// String returns the variant tag used in logs and HUD text.
func (v ParticleVariant) String() string {
	switch v {
	case VariantAmbient:
		return "ambient"
	case VariantBurst:
		return "burst"
	case VariantConfetti:
		return "confetti"
	default:
		return "unknown"
	}
}

// Particle represents a single transient visual particle.
//
// Coordinates are canvas-local CSS pixels; velocities are pixels per
// normalized frame (16.67ms). Particles are created and destroyed only by
// the ParticleSystem, nothing else holds references to them.
//
// This is a pure data component - it contains no behaviour.
type Particle struct {
	// Position (画布坐标)
	X float64
	Y float64

	// Velocity (像素/帧)
	VX float64
	VY float64

	// Life 剩余生命 0-1，单调递减，<=0 时在同一帧内被移除
	Life float64

	// Size 半径（圆形）或宽度（彩纸矩形）
	Size float64

	// Color 基础颜色，绘制时 alpha 乘以 Life
	Color color.NRGBA

	Variant ParticleVariant

	// Confetti only (弧度, 弧度/帧)
	Rotation      float64
	RotationSpeed float64
}
