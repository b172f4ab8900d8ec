package systems

import (
	"time"

	"github.com/gonewx/roadfx/pkg/components"
	"github.com/gonewx/roadfx/pkg/config"
)

// ComboTier 连击等级，决定徽章样式、爆发颜色和音效
type ComboTier int

const (
	// TierNone 无连击（<2）
	TierNone ComboTier = iota
	// TierDouble 双连击（2）
	TierDouble
	// TierCombo 连击（3-4）
	TierCombo
	// TierInsane 疯狂连击（>=5）
	TierInsane
)

// ComboTierFor 根据连击数返回等级
func ComboTierFor(count int) ComboTier {
	switch {
	case count >= 5:
		return TierInsane
	case count >= 3:
		return TierCombo
	case count >= 2:
		return TierDouble
	default:
		return TierNone
	}
}

// String returns the tier name.
func (t ComboTier) String() string {
	switch t {
	case TierDouble:
		return "double"
	case TierCombo:
		return "combo"
	case TierInsane:
		return "insane"
	default:
		return "none"
	}
}

// ComboStats 本次会话的累计统计（仅内存）
type ComboStats struct {
	Completions int // 完成事件总数
	TotalPoints int // 累计经验值
	BestCombo   int // 最高连击
	Sections    int // 完成的章节数
}

// ComboSystem 连击追踪系统
//
// 把离散的完成事件流转换为连击数和每次事件的经验值：
//   - 连击数 = 最近 WindowMs 内（严格小于）的事件数，含当前事件
//   - 经验值 = PointsPerCombo × 连击数
//   - 最后一次事件 ResetMs 后连击自动清零，且只清零一次
//
// 提示与横幅使用过期时间戳按需清理，不依赖定时器，Update 中统一处理。
// 状态只在内存中，不跨进程保留。
type ComboSystem struct {
	cfg config.ComboConfig
	now func() time.Time

	events       []time.Time
	combo        int
	resetAt      time.Time
	resetPending bool
	resets       int

	toasts       []components.XPToast
	banner       *components.SectionBanner
	nextToastID  uint64
	nextBannerID uint64

	stats ComboStats

	// OnComboReset 连击因超时清零时调用（每次超时只调用一次）
	OnComboReset func()
}

// NewComboSystem 创建连击追踪系统
//
// now 为时钟函数，nil 时使用 time.Now；测试中注入可控时钟。
func NewComboSystem(cfg config.ComboConfig, now func() time.Time) *ComboSystem {
	if now == nil {
		now = time.Now
	}
	return &ComboSystem{
		cfg: cfg,
		now: now,
	}
}

// TriggerCompletion registers a completion event at a screen point and
// returns the resulting combo count.
func (cs *ComboSystem) TriggerCompletion(screenX, screenY float64) int {
	now := cs.now()
	window := cs.cfg.Window()

	recent := cs.events[:0]
	for _, t := range cs.events {
		if now.Sub(t) < window {
			recent = append(recent, t)
		}
	}
	cs.events = append(recent, now)
	cs.combo = len(cs.events)

	points := cs.cfg.PointsPerCombo * cs.combo
	cs.nextToastID++
	cs.toasts = append(cs.toasts, components.XPToast{
		ID:        cs.nextToastID,
		X:         screenX,
		Y:         screenY,
		Points:    points,
		CreatedAt: now,
		ExpiresAt: now.Add(cs.cfg.ToastDuration()),
	})

	cs.resetAt = now.Add(cs.cfg.Reset())
	cs.resetPending = true

	cs.stats.Completions++
	cs.stats.TotalPoints += points
	if cs.combo > cs.stats.BestCombo {
		cs.stats.BestCombo = cs.combo
	}

	return cs.combo
}

// TriggerSectionComplete 显示章节完成横幅，替换当前横幅（如有）
func (cs *ComboSystem) TriggerSectionComplete(title string) {
	now := cs.now()
	cs.nextBannerID++
	cs.banner = &components.SectionBanner{
		ID:        cs.nextBannerID,
		Title:     title,
		CreatedAt: now,
		ExpiresAt: now.Add(cs.cfg.BannerDuration()),
	}
	cs.stats.Sections++
}

// Update 处理到期事件：清理过期提示和横幅，超时后清零连击
func (cs *ComboSystem) Update() {
	now := cs.now()

	if cs.resetPending && !now.Before(cs.resetAt) {
		cs.resetPending = false
		cs.events = cs.events[:0]
		cs.combo = 0
		cs.resets++
		if cs.OnComboReset != nil {
			cs.OnComboReset()
		}
	}

	live := cs.toasts[:0]
	for _, t := range cs.toasts {
		if !t.Expired(now) {
			live = append(live, t)
		}
	}
	cs.toasts = live

	if cs.banner != nil && cs.banner.Expired(now) {
		cs.banner = nil
	}
}

// Combo 返回当前对外可见的连击数
func (cs *ComboSystem) Combo() int {
	return cs.combo
}

// Tier 返回当前连击等级
func (cs *ComboSystem) Tier() ComboTier {
	return ComboTierFor(cs.combo)
}

// Toasts 返回当前未过期的经验值提示副本
func (cs *ComboSystem) Toasts() []components.XPToast {
	now := cs.now()
	out := make([]components.XPToast, 0, len(cs.toasts))
	for _, t := range cs.toasts {
		if !t.Expired(now) {
			out = append(out, t)
		}
	}
	return out
}

// Banner 返回当前横幅，不存在或已过期时返回 nil
func (cs *ComboSystem) Banner() *components.SectionBanner {
	if cs.banner == nil || cs.banner.Expired(cs.now()) {
		return nil
	}
	b := *cs.banner
	return &b
}

// Resets 返回连击超时清零的次数
func (cs *ComboSystem) Resets() int {
	return cs.resets
}

// Stats 返回会话统计
func (cs *ComboSystem) Stats() ComboStats {
	return cs.stats
}

// Now 返回系统时钟的当前时间
func (cs *ComboSystem) Now() time.Time {
	return cs.now()
}

// Reset 清空全部状态（挂载时调用）
func (cs *ComboSystem) Reset() {
	cs.events = nil
	cs.combo = 0
	cs.resetPending = false
	cs.resets = 0
	cs.toasts = nil
	cs.banner = nil
	cs.stats = ComboStats{}
}
