package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/config"
	"github.com/gonewx/roadfx/pkg/utils"
)

// 覆盖层配色
var (
	toastColor       = color.NRGBA{R: 254, G: 202, B: 87, A: 255}
	badgeDoubleColor = color.NRGBA{R: 72, G: 219, B: 251, A: 255}
	badgeComboColor  = color.NRGBA{R: 254, G: 202, B: 87, A: 255}
	badgeInsaneColor = color.NRGBA{R: 255, G: 107, B: 107, A: 255}
	badgeBackground  = color.NRGBA{R: 20, G: 24, B: 40, A: 200}
	bannerBackground = color.NRGBA{R: 20, G: 24, B: 40, A: 225}
	bannerTitleColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	bannerSubColor   = color.NRGBA{R: 29, G: 209, B: 161, A: 255}
)

const (
	bannerSubtitle     = "SECTION COMPLETE"
	bannerHeight       = 110.0
	bannerWidthRatio   = 0.7
	approxGlyphAdvance = 0.6 // 估算文本宽度：字号 × 字符数 × 系数
)

// ToastView 经验值提示的布局结果（容器相对坐标）
type ToastView struct {
	ID       uint64
	X, Y     float64
	Points   int
	Text     string
	FontSize float64
	Alpha    float64
}

// BadgeView 连击徽章的布局结果（右上角锚点，容器相对坐标）
type BadgeView struct {
	Combo    int
	Tier     ComboTier
	Label    string
	X, Y     float64
	FontSize float64
	Color    color.NRGBA
}

// BannerView 章节横幅的布局结果（中心点，容器相对坐标）
type BannerView struct {
	ID       uint64
	Title    string
	Subtitle string
	X, Y     float64
	Width    float64
	Height   float64
	FontSize float64
	Alpha    float64
}

// OverlayFrame 一次渲染的完整覆盖层
type OverlayFrame struct {
	Toasts []ToastView
	Badge  *BadgeView
	Banner *BannerView
}

// OverlayRenderSystem 特效覆盖层渲染系统
//
// 纯消费者：只读取 ComboSystem 的提示、连击数和横幅，不持有任何状态。
// 横幅的消失由 ComboSystem 的过期时间决定，本系统不管理计时。
type OverlayRenderSystem struct {
	combo *ComboSystem
	cfg   config.OverlayConfig
}

// NewOverlayRenderSystem 创建覆盖层渲染系统
func NewOverlayRenderSystem(combo *ComboSystem, cfg config.OverlayConfig) *OverlayRenderSystem {
	return &OverlayRenderSystem{
		combo: combo,
		cfg:   cfg,
	}
}

// Layout computes the overlay for the current instant relative to the
// container. When the container is not measurable, toasts are skipped for
// this frame; badge and banner are still laid out against its size.
func (s *OverlayRenderSystem) Layout(container canvas.Rect, measurable bool) OverlayFrame {
	now := s.combo.Now()
	var frame OverlayFrame

	if measurable && !container.Empty() {
		for _, t := range s.combo.Toasts() {
			p := t.Progress(now)
			frame.Toasts = append(frame.Toasts, ToastView{
				ID:       t.ID,
				X:        t.X - container.X,
				Y:        t.Y - container.Y - s.cfg.ToastRise*utils.EaseOutCubic(p),
				Points:   t.Points,
				Text:     fmt.Sprintf("+%d XP", t.Points),
				FontSize: s.ToastFontSize(t.Points),
				Alpha:    1 - utils.EaseInQuad(p),
			})
		}
	}

	if combo := s.combo.Combo(); combo >= 2 {
		tier := ComboTierFor(combo)
		frame.Badge = &BadgeView{
			Combo:    combo,
			Tier:     tier,
			Label:    badgeLabel(tier, combo),
			X:        container.Width - s.cfg.BadgeMargin,
			Y:        s.cfg.BadgeMargin,
			FontSize: s.cfg.BadgeFont * badgeScale(tier),
			Color:    badgeColor(tier),
		}
	}

	if b := s.combo.Banner(); b != nil {
		p := b.Progress(now)
		frame.Banner = &BannerView{
			ID:       b.ID,
			Title:    b.Title,
			Subtitle: bannerSubtitle,
			X:        container.Width / 2,
			Y:        container.Height / 2,
			Width:    container.Width * bannerWidthRatio,
			Height:   bannerHeight,
			FontSize: s.cfg.BannerFont,
			Alpha:    fadeInOut(p, s.cfg.BannerFadeRatio),
		}
	}

	return frame
}

// ToastFontSize 字号随经验值温和增长，不超过上限
func (s *OverlayRenderSystem) ToastFontSize(points int) float64 {
	size := s.cfg.ToastBaseFont + s.cfg.ToastFontPer10*float64(points)/10
	return math.Min(size, s.cfg.ToastMaxFont)
}

// Draw renders the current overlay onto a screen-space surface.
func (s *OverlayRenderSystem) Draw(surface canvas.TextSurface, container canvas.Rect, measurable bool) {
	if surface == nil {
		return
	}
	frame := s.Layout(container, measurable)
	ox, oy := container.X, container.Y

	for _, t := range frame.Toasts {
		surface.DrawText(t.Text, ox+t.X, oy+t.Y, t.FontSize, canvas.WithAlpha(toastColor, t.Alpha), canvas.AlignCenter)
	}

	if b := frame.Badge; b != nil {
		w := float64(len(b.Label))*b.FontSize*approxGlyphAdvance + 20
		h := b.FontSize + 14
		surface.DrawRect(ox+b.X-w/2, oy+b.Y+h/2, w, h, 0, badgeBackground)
		surface.DrawText(b.Label, ox+b.X-10, oy+b.Y+7, b.FontSize, b.Color, canvas.AlignRight)
	}

	if bn := frame.Banner; bn != nil {
		cx, cy := ox+bn.X, oy+bn.Y
		surface.DrawRect(cx, cy, bn.Width, bn.Height, 0, canvas.WithAlpha(bannerBackground, bn.Alpha))
		surface.DrawText(bn.Subtitle, cx, cy-bn.Height/2+16, bn.FontSize*0.5, canvas.WithAlpha(bannerSubColor, bn.Alpha), canvas.AlignCenter)
		surface.DrawText(bn.Title, cx, cy-bn.FontSize/2+10, bn.FontSize, canvas.WithAlpha(bannerTitleColor, bn.Alpha), canvas.AlignCenter)
	}
}

func badgeLabel(tier ComboTier, combo int) string {
	switch tier {
	case TierInsane:
		return fmt.Sprintf("x%d INSANE!!", combo)
	case TierCombo:
		return fmt.Sprintf("x%d COMBO!", combo)
	default:
		return fmt.Sprintf("x%d Combo", combo)
	}
}

func badgeScale(tier ComboTier) float64 {
	switch tier {
	case TierInsane:
		return 1.3
	case TierCombo:
		return 1.15
	default:
		return 1
	}
}

func badgeColor(tier ComboTier) color.NRGBA {
	switch tier {
	case TierInsane:
		return badgeInsaneColor
	case TierCombo:
		return badgeComboColor
	default:
		return badgeDoubleColor
	}
}

// fadeInOut 在生命周期首尾 ratio 区间内淡入淡出
func fadeInOut(p, ratio float64) float64 {
	if ratio <= 0 {
		return 1
	}
	if p < ratio {
		return utils.EaseOutCubic(p / ratio)
	}
	if p > 1-ratio {
		return utils.Clamp((1-p)/ratio, 0, 1)
	}
	return 1
}
