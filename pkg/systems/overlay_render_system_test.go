package systems

import (
	"testing"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/config"
)

func newTestOverlay() (*OverlayRenderSystem, *ComboSystem, *fakeClock) {
	cfg := config.DefaultFXConfig()
	cs, clock := newTestComboSystem()
	return NewOverlayRenderSystem(cs, cfg.Overlay), cs, clock
}

func TestOverlayRenderSystem_ToastFontSize(t *testing.T) {
	ors, _, _ := newTestOverlay()

	tests := []struct {
		points int
		want   float64
	}{
		{0, 14},
		{10, 15},
		{50, 19},
		{100, 24},
		{200, 24},
	}
	for _, tt := range tests {
		if got := ors.ToastFontSize(tt.points); got != tt.want {
			t.Errorf("ToastFontSize(%d) = %v, want %v", tt.points, got, tt.want)
		}
	}
}

func TestOverlayRenderSystem_ToastLayout(t *testing.T) {
	ors, cs, clock := newTestOverlay()
	cs.TriggerCompletion(300, 200)

	frame := ors.Layout(testContainer, true)
	if len(frame.Toasts) != 1 {
		t.Fatalf("toasts = %d, want 1", len(frame.Toasts))
	}
	toast := frame.Toasts[0]
	if toast.X != 200 || toast.Y != 150 {
		t.Errorf("toast at (%v, %v), want container-relative (200, 150)", toast.X, toast.Y)
	}
	if toast.Text != "+10 XP" || toast.Alpha != 1 {
		t.Errorf("toast = %q alpha %v, want +10 XP alpha 1", toast.Text, toast.Alpha)
	}

	// 过半时上浮 40 × easeOutCubic(0.5)
	clock.Advance(750)
	toast = ors.Layout(testContainer, true).Toasts[0]
	if !approxEqual(toast.Y, 150-40*0.875) {
		t.Errorf("toast y at half life = %v, want %v", toast.Y, 150-40*0.875)
	}
	if !approxEqual(toast.Alpha, 0.75) {
		t.Errorf("toast alpha at half life = %v, want 0.75", toast.Alpha)
	}
}

func TestOverlayRenderSystem_UnmeasurableContainer(t *testing.T) {
	ors, cs, _ := newTestOverlay()
	cs.TriggerCompletion(300, 200)
	cs.TriggerCompletion(300, 200)
	cs.TriggerSectionComplete("Setup")

	frame := ors.Layout(testContainer, false)
	if len(frame.Toasts) != 0 {
		t.Errorf("toasts = %d, want none when container is not measurable", len(frame.Toasts))
	}
	if frame.Badge == nil || frame.Banner == nil {
		t.Errorf("badge/banner should still be laid out, got %v/%v", frame.Badge, frame.Banner)
	}
}

func TestOverlayRenderSystem_Badge(t *testing.T) {
	tests := []struct {
		combo int
		label string
		tier  ComboTier
		font  float64
	}{
		{2, "x2 Combo", TierDouble, 18},
		{3, "x3 COMBO!", TierCombo, 18 * 1.15},
		{4, "x4 COMBO!", TierCombo, 18 * 1.15},
		{5, "x5 INSANE!!", TierInsane, 18 * 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			ors, cs, _ := newTestOverlay()
			for i := 0; i < tt.combo; i++ {
				cs.TriggerCompletion(0, 0)
			}
			b := ors.Layout(testContainer, true).Badge
			if b == nil {
				t.Fatal("expected a badge")
			}
			if b.Label != tt.label || b.Tier != tt.tier || !approxEqual(b.FontSize, tt.font) {
				t.Errorf("badge = %q/%v/%v, want %q/%v/%v", b.Label, b.Tier, b.FontSize, tt.label, tt.tier, tt.font)
			}
			if b.Color != badgeColor(tt.tier) {
				t.Errorf("badge color = %v, want %v", b.Color, badgeColor(tt.tier))
			}
			if b.X != testContainer.Width-16 || b.Y != 16 {
				t.Errorf("badge anchor = (%v, %v), want (%v, 16)", b.X, b.Y, testContainer.Width-16)
			}
		})
	}

	ors, cs, _ := newTestOverlay()
	cs.TriggerCompletion(0, 0)
	if ors.Layout(testContainer, true).Badge != nil {
		t.Error("no badge expected below combo 2")
	}
}

func TestOverlayRenderSystem_BannerFade(t *testing.T) {
	ors, cs, clock := newTestOverlay()
	cs.TriggerSectionComplete("Fundamentals")

	b := ors.Layout(testContainer, true).Banner
	if b == nil {
		t.Fatal("expected a banner")
	}
	if b.X != 400 || b.Y != 300 || b.Width != 560 {
		t.Errorf("banner at (%v, %v) width %v, want centered (400, 300) width 560", b.X, b.Y, b.Width)
	}
	if b.Alpha != 0 {
		t.Errorf("banner alpha at start = %v, want 0", b.Alpha)
	}

	clock.Advance(1500)
	if a := ors.Layout(testContainer, true).Banner.Alpha; a != 1 {
		t.Errorf("banner alpha at midpoint = %v, want 1", a)
	}

	clock.Advance(1350) // p = 0.95
	if a := ors.Layout(testContainer, true).Banner.Alpha; !approxEqual(a, 0.05/0.15) {
		t.Errorf("banner alpha near end = %v, want %v", a, 0.05/0.15)
	}

	clock.Advance(150)
	if ors.Layout(testContainer, true).Banner != nil {
		t.Error("banner should be gone after 3000ms")
	}
}

func TestOverlayRenderSystem_Draw(t *testing.T) {
	ors, cs, clock := newTestOverlay()
	cs.TriggerCompletion(300, 200)
	cs.TriggerCompletion(320, 220)
	cs.TriggerSectionComplete("Setup")
	clock.Advance(500)

	rec := canvas.NewRecorder()
	ors.Draw(rec, testContainer, true)

	texts := map[string]bool{}
	for _, s := range rec.Texts() {
		texts[s] = true
	}
	for _, want := range []string{"+10 XP", "+20 XP", "x2 Combo", "Setup", bannerSubtitle} {
		if !texts[want] {
			t.Errorf("missing text %q in %v", want, rec.Texts())
		}
	}
	if rec.Count(canvas.OpRect) != 2 {
		t.Errorf("rects = %d, want badge and banner backgrounds", rec.Count(canvas.OpRect))
	}

	// 绘制使用屏幕坐标
	for _, op := range rec.Ops {
		if op.Kind == canvas.OpText && op.Text == "+10 XP" && op.X != 300 {
			t.Errorf("toast drawn at x=%v, want screen x 300", op.X)
		}
	}

	ors.Draw(nil, testContainer, true)
}
