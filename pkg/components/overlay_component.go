package components

import "time"

// XPToast 浮动的经验值提示
// 每次完成事件生成一个，ExpiresAt 之后不再显示（按需过滤，无定时器）
type XPToast struct {
	ID        uint64    // 单调递增标识
	X         float64   // 屏幕坐标 X
	Y         float64   // 屏幕坐标 Y
	Points    int       // 获得的经验值
	CreatedAt time.Time // 创建时间
	ExpiresAt time.Time // 过期时间
}

// Expired reports whether the toast is past its display window at now.
func (t XPToast) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Progress 返回显示进度 0-1
func (t XPToast) Progress(now time.Time) float64 {
	return lifeProgress(t.CreatedAt, t.ExpiresAt, now)
}

// SectionBanner 章节完成横幅
// 同一时刻最多存在一个，新横幅直接替换旧横幅
type SectionBanner struct {
	ID        uint64
	Title     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the banner is past its display window at now.
func (b SectionBanner) Expired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}

// Progress 返回显示进度 0-1
func (b SectionBanner) Progress(now time.Time) float64 {
	return lifeProgress(b.CreatedAt, b.ExpiresAt, now)
}

func lifeProgress(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 1
	}
	p := float64(now.Sub(start)) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
