package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FXConfig 完成特效引擎的全部调参
//
// 配置文件位置: data/fx.yaml
// 所有速度、衰减、重力数值都以"归一化帧"（16.67ms）为单位。
type FXConfig struct {
	Particle ParticleConfig `yaml:"particle"`
	Combo    ComboConfig    `yaml:"combo"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Audio    AudioConfig    `yaml:"audio"`
}

// ParticleConfig 粒子模拟参数
type ParticleConfig struct {
	// FrameMs 归一化帧时长（毫秒），dt = elapsed / FrameMs
	FrameMs float64 `yaml:"frameMs"`
	// MaxDeltaFactor dt 上限，避免标签页切回后一次积分过大
	MaxDeltaFactor float64 `yaml:"maxDeltaFactor"`

	Burst    BurstConfig    `yaml:"burst"`
	Confetti ConfettiConfig `yaml:"confetti"`
	Ambient  AmbientConfig  `yaml:"ambient"`
}

// BurstConfig 步骤完成爆发参数
type BurstConfig struct {
	Count       int     `yaml:"count"`
	SpeedMin    float64 `yaml:"speedMin"`
	SpeedMax    float64 `yaml:"speedMax"`
	UpwardBias  float64 `yaml:"upwardBias"`
	AngleJitter float64 `yaml:"angleJitter"` // 弧度，±
	SizeMin     float64 `yaml:"sizeMin"`
	SizeMax     float64 `yaml:"sizeMax"`
	Decay       float64 `yaml:"decay"`
	Damping     float64 `yaml:"damping"`
	Gravity     float64 `yaml:"gravity"`
	GlowAlpha   float64 `yaml:"glowAlpha"`
	GlowScale   float64 `yaml:"glowScale"`
}

// ConfettiConfig 章节完成彩纸参数
type ConfettiConfig struct {
	Count       int      `yaml:"count"`
	SpeedMin    float64  `yaml:"speedMin"`
	SpeedMax    float64  `yaml:"speedMax"`
	UpwardBias  float64  `yaml:"upwardBias"`
	SizeMin     float64  `yaml:"sizeMin"`
	SizeMax     float64  `yaml:"sizeMax"`
	Decay       float64  `yaml:"decay"`
	DampingX    float64  `yaml:"dampingX"`
	Gravity     float64  `yaml:"gravity"`
	MaxSpin     float64  `yaml:"maxSpin"` // 弧度/帧，随机范围 [-MaxSpin, MaxSpin)
	AspectRatio float64  `yaml:"aspectRatio"`
	Palette     []string `yaml:"palette"`
}

// AmbientConfig 背景漂浮粒子参数
type AmbientConfig struct {
	Enabled    bool    `yaml:"enabled"`
	IntervalMs float64 `yaml:"intervalMs"`
	MaxAlive   int     `yaml:"maxAlive"`
	Decay      float64 `yaml:"decay"`
	HueMin     float64 `yaml:"hueMin"`
	HueMax     float64 `yaml:"hueMax"`
	SizeMin    float64 `yaml:"sizeMin"`
	SizeMax    float64 `yaml:"sizeMax"`
	RiseMin    float64 `yaml:"riseMin"`
	RiseMax    float64 `yaml:"riseMax"`
	Drift      float64 `yaml:"drift"`
}

// ComboConfig 连击窗口与奖励参数
type ComboConfig struct {
	WindowMs       int `yaml:"windowMs"`
	ResetMs        int `yaml:"resetMs"`
	PointsPerCombo int `yaml:"pointsPerCombo"`
	ToastMs        int `yaml:"toastMs"`
	BannerMs       int `yaml:"bannerMs"`
}

// Window 连击时间窗口
func (c ComboConfig) Window() time.Duration { return time.Duration(c.WindowMs) * time.Millisecond }

// Reset 无操作后连击清零的超时
func (c ComboConfig) Reset() time.Duration { return time.Duration(c.ResetMs) * time.Millisecond }

// ToastDuration 经验值提示显示时长
func (c ComboConfig) ToastDuration() time.Duration {
	return time.Duration(c.ToastMs) * time.Millisecond
}

// BannerDuration 章节横幅显示时长
func (c ComboConfig) BannerDuration() time.Duration {
	return time.Duration(c.BannerMs) * time.Millisecond
}

// OverlayConfig 覆盖层布局参数
type OverlayConfig struct {
	ToastBaseFont   float64 `yaml:"toastBaseFont"`
	ToastFontPer10  float64 `yaml:"toastFontPer10"`
	ToastMaxFont    float64 `yaml:"toastMaxFont"`
	ToastRise       float64 `yaml:"toastRise"`
	BadgeMargin     float64 `yaml:"badgeMargin"`
	BadgeFont       float64 `yaml:"badgeFont"`
	BannerFont      float64 `yaml:"bannerFont"`
	BannerFadeRatio float64 `yaml:"bannerFadeRatio"`
}

// AudioConfig 合成音效参数
type AudioConfig struct {
	SampleRate int     `yaml:"sampleRate"`
	Volume     float64 `yaml:"volume"`
}

// DefaultFXConfig 返回与 data/fx.yaml 一致的默认配置
func DefaultFXConfig() *FXConfig {
	return &FXConfig{
		Particle: ParticleConfig{
			FrameMs:        16.67,
			MaxDeltaFactor: 3,
			Burst: BurstConfig{
				Count:       28,
				SpeedMin:    1.5,
				SpeedMax:    5.5,
				UpwardBias:  -1.5,
				AngleJitter: 0.25,
				SizeMin:     2,
				SizeMax:     4.5,
				Decay:       0.025,
				Damping:     0.97,
				Gravity:     0.04,
				GlowAlpha:   0.2,
				GlowScale:   3,
			},
			Confetti: ConfettiConfig{
				Count:       80,
				SpeedMin:    2,
				SpeedMax:    9,
				UpwardBias:  -5,
				SizeMin:     5,
				SizeMax:     9,
				Decay:       0.012,
				DampingX:    0.985,
				Gravity:     0.07,
				MaxSpin:     0.15,
				AspectRatio: 0.6,
				Palette: []string{
					"#ff6b6b", "#feca57", "#48dbfb", "#ff9ff3",
					"#54a0ff", "#5f27cd", "#1dd1a1",
				},
			},
			Ambient: AmbientConfig{
				Enabled:    true,
				IntervalMs: 400,
				MaxAlive:   18,
				Decay:      0.004,
				HueMin:     195,
				HueMax:     225,
				SizeMin:    1,
				SizeMax:    2.5,
				RiseMin:    0.15,
				RiseMax:    0.5,
				Drift:      0.3,
			},
		},
		Combo: ComboConfig{
			WindowMs:       5000,
			ResetMs:        5000,
			PointsPerCombo: 10,
			ToastMs:        1500,
			BannerMs:       3000,
		},
		Overlay: OverlayConfig{
			ToastBaseFont:   14,
			ToastFontPer10:  1,
			ToastMaxFont:    24,
			ToastRise:       40,
			BadgeMargin:     16,
			BadgeFont:       18,
			BannerFont:      30,
			BannerFadeRatio: 0.15,
		},
		Audio: AudioConfig{
			SampleRate: 48000,
			Volume:     0.6,
		},
	}
}

// LoadFXConfig 从文件加载特效配置
//
// 参数:
//   - path: 配置文件路径（如 "data/fx.yaml"）
//
// 返回:
//   - *FXConfig: 加载成功后的配置（未出现的字段保留默认值）
//   - error: 读取、解析或验证失败时返回错误
func LoadFXConfig(path string) (*FXConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fx config: %w", err)
	}
	return ParseFXConfig(data)
}

// ParseFXConfig 解析 YAML 格式的特效配置，缺省字段使用默认值
func ParseFXConfig(data []byte) (*FXConfig, error) {
	cfg := DefaultFXConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse fx config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fx config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *FXConfig) Validate() error {
	p := c.Particle
	if p.FrameMs <= 0 {
		return fmt.Errorf("particle.frameMs must be > 0, got %.2f", p.FrameMs)
	}
	if p.MaxDeltaFactor < 1 {
		return fmt.Errorf("particle.maxDeltaFactor must be >= 1, got %.2f", p.MaxDeltaFactor)
	}
	if p.Burst.Count <= 0 {
		return fmt.Errorf("particle.burst.count must be > 0, got %d", p.Burst.Count)
	}
	if p.Burst.SpeedMin > p.Burst.SpeedMax {
		return fmt.Errorf("particle.burst speed range invalid: min(%.2f) > max(%.2f)",
			p.Burst.SpeedMin, p.Burst.SpeedMax)
	}
	if p.Burst.Decay <= 0 {
		return fmt.Errorf("particle.burst.decay must be > 0, got %.4f", p.Burst.Decay)
	}
	if p.Confetti.Count <= 0 {
		return fmt.Errorf("particle.confetti.count must be > 0, got %d", p.Confetti.Count)
	}
	if p.Confetti.SpeedMin > p.Confetti.SpeedMax {
		return fmt.Errorf("particle.confetti speed range invalid: min(%.2f) > max(%.2f)",
			p.Confetti.SpeedMin, p.Confetti.SpeedMax)
	}
	if p.Confetti.Decay <= 0 {
		return fmt.Errorf("particle.confetti.decay must be > 0, got %.4f", p.Confetti.Decay)
	}
	if len(p.Confetti.Palette) == 0 {
		return fmt.Errorf("particle.confetti.palette must not be empty")
	}
	if p.Ambient.Enabled {
		if p.Ambient.IntervalMs <= 0 {
			return fmt.Errorf("particle.ambient.intervalMs must be > 0, got %.2f", p.Ambient.IntervalMs)
		}
		if p.Ambient.MaxAlive < 0 {
			return fmt.Errorf("particle.ambient.maxAlive must be >= 0, got %d", p.Ambient.MaxAlive)
		}
		if p.Ambient.Decay <= 0 {
			return fmt.Errorf("particle.ambient.decay must be > 0, got %.4f", p.Ambient.Decay)
		}
	}

	if c.Combo.WindowMs <= 0 || c.Combo.ResetMs <= 0 {
		return fmt.Errorf("combo windowMs/resetMs must be > 0, got %d/%d", c.Combo.WindowMs, c.Combo.ResetMs)
	}
	if c.Combo.ToastMs <= 0 || c.Combo.BannerMs <= 0 {
		return fmt.Errorf("combo toastMs/bannerMs must be > 0, got %d/%d", c.Combo.ToastMs, c.Combo.BannerMs)
	}
	if c.Combo.PointsPerCombo < 0 {
		return fmt.Errorf("combo.pointsPerCombo must be >= 0, got %d", c.Combo.PointsPerCombo)
	}

	if c.Overlay.ToastMaxFont < c.Overlay.ToastBaseFont {
		return fmt.Errorf("overlay toast font range invalid: base(%.1f) > max(%.1f)",
			c.Overlay.ToastBaseFont, c.Overlay.ToastMaxFont)
	}

	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sampleRate must be > 0, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be within [0, 1], got %.2f", c.Audio.Volume)
	}
	return nil
}
