package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/config"
	"github.com/gonewx/roadfx/pkg/fx"
	"github.com/gonewx/roadfx/pkg/game"
	"github.com/gonewx/roadfx/pkg/utils"
)

// 路线图配色
var (
	backgroundColor    = color.NRGBA{R: 15, G: 18, B: 32, A: 255}
	titleColor         = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	sectionColor       = color.NRGBA{R: 72, G: 219, B: 251, A: 255}
	sectionDoneColor   = color.NRGBA{R: 29, G: 209, B: 161, A: 255}
	stepColor          = color.NRGBA{R: 210, G: 214, B: 230, A: 255}
	stepDoneColor      = color.NRGBA{R: 130, G: 136, B: 160, A: 255}
	rowHoverColor      = color.NRGBA{R: 255, G: 255, B: 255, A: 14}
	checkboxColor      = color.NRGBA{R: 60, G: 66, B: 96, A: 255}
	checkboxCheckColor = color.NRGBA{R: 29, G: 209, B: 161, A: 255}
	progressTrackColor = color.NRGBA{R: 40, G: 44, B: 66, A: 255}
	progressFillColor  = color.NRGBA{R: 84, G: 160, B: 255, A: 255}
	hintColor          = color.NRGBA{R: 120, G: 126, B: 150, A: 255}
)

const (
	titleFontSize   = 26.0
	sectionFontSize = 18.0
	stepFontSize    = 15.0
	hintFontSize    = 12.0
	scrollSpeed     = 24.0
	dragThreshold   = 8
)

// RoadmapScene 路线图清单场景
//
// 点击步骤切换完成状态，完成时触发爆发粒子、连击和音效；
// 章节全部完成时触发彩纸和横幅。进度通过 ProgressManager 持久化。
//
// 快捷键：
//   - M   音效开关
//   - A   背景粒子开关
//   - R   清空进度
//   - 滚轮 滚动列表（触摸设备上拖动滚动，轻触切换）
type RoadmapScene struct {
	roadmap  *config.RoadmapConfig
	progress *game.ProgressManager
	settings *game.SettingsManager
	audio    *game.AudioManager
	fx       *fx.Controller

	// 粒子层绘制到离屏图像，UI 和覆盖层直接绘制到屏幕
	particleSurface *canvas.EbitenSurface
	uiSurface       *canvas.EbitenSurface
	fxLayer         *ebiten.Image

	width, height float64
	scrollY       float64
	hoverStepID   string
	drag          *utils.DragScroller
	measureStep   utils.TextMeasurer
}

// NewRoadmapScene 创建路线图场景
//
// audio、settings 可为 nil；fontSource 为 nil 时不绘制文字。
func NewRoadmapScene(
	roadmap *config.RoadmapConfig,
	fxCfg *config.FXConfig,
	progress *game.ProgressManager,
	settings *game.SettingsManager,
	audio *game.AudioManager,
	fontSource *text.GoTextFaceSource,
) *RoadmapScene {
	var sounds fx.SoundPlayer
	if audio != nil {
		sounds = audio
	}

	s := &RoadmapScene{
		roadmap:         roadmap,
		progress:        progress,
		settings:        settings,
		audio:           audio,
		fx:              fx.NewController(fxCfg, sounds, fx.Options{}),
		particleSurface: canvas.NewEbitenSurface(nil),
		uiSurface:       canvas.NewEbitenSurface(fontSource),
		width:           config.GameWindowWidth,
		height:          config.GameWindowHeight,
		drag:            utils.NewDragScroller(dragThreshold),
	}
	if fontSource != nil {
		s.measureStep = utils.FaceMeasurer(&text.GoTextFace{Source: fontSource, Size: stepFontSize})
	}

	s.fx.Mount(s.particleSurface, s.viewport(), 1)
	if settings != nil {
		s.fx.SetAmbientEnabled(settings.GetSettings().AmbientEnabled)
	}

	log.Printf("[Roadmap] Scene created: %s (%d steps, %d completed)",
		roadmap.ID, roadmap.StepCount(), progress.CompletedCount())
	return s
}

// Update 处理输入并推进特效
func (s *RoadmapScene) Update(elapsedMs float64) {
	pointer := utils.ReadPointer()
	_, wy := ebiten.Wheel()
	s.scrollBy(-wy*scrollSpeed + s.drag.Feed(pointer.IsTouching, pointer.Y))

	layout := s.Layout()
	s.hoverStepID = ""
	if row, ok := layout.HitTest(float64(pointer.X), float64(pointer.Y)); ok {
		if !pointer.IsTouching {
			s.hoverStepID = row.StepID
		}
		tapped := pointer.JustReleasedTouch && !s.drag.Dragged()
		if pointer.JustClicked || tapped {
			s.ToggleStep(row.StepID)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		s.ToggleSound()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		s.ToggleAmbient()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.ResetProgress()
	}

	s.fx.Update(elapsedMs)
}

// scrollBy 滚动列表，限制在 [0, MaxScroll]
func (s *RoadmapScene) scrollBy(delta float64) {
	if delta == 0 {
		return
	}
	maxScroll := LayoutRoadmap(s.roadmap, s.width, 0).MaxScroll(s.height)
	s.scrollY = math.Max(0, math.Min(maxScroll, s.scrollY+delta))
}

// Layout 返回当前滚动位置下的行布局
func (s *RoadmapScene) Layout() RoadmapLayout {
	return LayoutRoadmap(s.roadmap, s.width, s.scrollY)
}

// ToggleStep 切换步骤完成状态并触发对应特效，返回切换后的状态
func (s *RoadmapScene) ToggleStep(stepID string) bool {
	section, ok := s.roadmap.SectionOf(stepID)
	if !ok {
		log.Printf("[Roadmap] Warning: unknown step %q", stepID)
		return false
	}

	done := s.progress.Toggle(stepID)
	layout := s.Layout()

	if !done {
		s.fx.StepUncompleted()
		s.saveProgress()
		return false
	}

	x, y := s.width/2, s.height/2
	for _, row := range layout.Rows {
		if row.Kind == RowStep && row.StepID == stepID {
			x, y = row.Checkbox.Center()
			break
		}
	}
	combo := s.fx.StepCompleted(x, y)
	log.Printf("[Roadmap] Step %s completed (combo %d)", stepID, combo)

	if s.progress.AllCompleted(sectionStepIDs(section)) {
		cx, cy := s.width/2, s.height/3
		if row, ok := layout.SectionRow(section.ID); ok {
			cx, cy = row.Bounds.Center()
		}
		s.fx.SectionCompleted(cx, cy, section.Title)
		log.Printf("[Roadmap] Section %s completed", section.ID)
	}

	s.saveProgress()
	return true
}

// ToggleSound M 键：切换音效开关并保存
func (s *RoadmapScene) ToggleSound() {
	if s.audio == nil {
		return
	}
	s.audio.SetEnabled(!s.audio.Enabled())
	s.saveSettings()
}

// ToggleAmbient A 键：切换背景粒子并保存
func (s *RoadmapScene) ToggleAmbient() {
	enabled := true
	if s.settings != nil {
		enabled = !s.settings.GetSettings().AmbientEnabled
		s.settings.SetAmbientEnabled(enabled)
		s.saveSettings()
	}
	s.fx.SetAmbientEnabled(enabled)
}

// ResetProgress R 键：清空进度
func (s *RoadmapScene) ResetProgress() {
	s.progress.Reset()
	s.fx.ClearParticles()
	s.saveProgress()
	log.Printf("[Roadmap] Progress reset")
}

// Controller 返回特效控制器
func (s *RoadmapScene) Controller() *fx.Controller {
	return s.fx
}

func (s *RoadmapScene) saveProgress() {
	if err := s.progress.Save(); err != nil {
		log.Printf("[Progress] Warning: %v", err)
	}
}

func (s *RoadmapScene) saveSettings() {
	if s.settings == nil {
		return
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[Settings] Warning: %v", err)
	}
}

// SaveOnExit 退出时保存进度和设置
func (s *RoadmapScene) SaveOnExit() bool {
	ok := true
	if err := s.progress.Save(); err != nil {
		log.Printf("[Progress] Warning: failed to save on exit: %v", err)
		ok = false
	}
	if s.settings != nil {
		if err := s.settings.Save(); err != nil {
			log.Printf("[Settings] Warning: failed to save on exit: %v", err)
			ok = false
		}
	}
	return ok
}

// Dispose 卸载特效（停止背景粒子、清空粒子和连击状态）
func (s *RoadmapScene) Dispose() {
	s.fx.Close()
	if s.fxLayer != nil {
		s.fxLayer.Deallocate()
		s.fxLayer = nil
	}
}

// Draw 绘制清单、粒子层和覆盖层
func (s *RoadmapScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.uiSurface.SetTarget(screen, 1)

	s.drawHeader()
	s.drawRows()
	s.drawHints()

	s.ensureFXLayer(screen)
	s.particleSurface.SetTarget(s.fxLayer, 1)
	s.fx.DrawParticles()
	screen.DrawImage(s.fxLayer, nil)

	s.fx.DrawOverlay(s.uiSurface)
}

func (s *RoadmapScene) ensureFXLayer(screen *ebiten.Image) {
	b := screen.Bounds()
	if s.fxLayer != nil && s.fxLayer.Bounds().Eq(b) {
		return
	}
	if s.fxLayer != nil {
		s.fxLayer.Deallocate()
	}
	s.fxLayer = ebiten.NewImage(b.Dx(), b.Dy())

	s.width, s.height = float64(b.Dx()), float64(b.Dy())
	s.fx.Resize(s.viewport(), 1)
}

func (s *RoadmapScene) viewport() canvas.Rect {
	return canvas.Rect{Width: s.width, Height: s.height}
}

func (s *RoadmapScene) drawHeader() {
	ui := s.uiSurface
	ui.DrawText(s.roadmap.Title, config.RoadmapMarginX, 28, titleFontSize, titleColor, canvas.AlignLeft)

	total := s.roadmap.StepCount()
	done := 0
	for _, section := range s.roadmap.Sections {
		for _, step := range section.Steps {
			if s.progress.IsCompleted(step.ID) {
				done++
			}
		}
	}

	barW := s.width - 2*config.RoadmapMarginX
	barY := 72.0
	ui.DrawRect(s.width/2, barY, barW, 6, 0, progressTrackColor)
	if total > 0 && done > 0 {
		fillW := barW * float64(done) / float64(total)
		ui.DrawRect(config.RoadmapMarginX+fillW/2, barY, fillW, 6, 0, progressFillColor)
	}
	ui.DrawText(fmt.Sprintf("%d / %d", done, total), s.width-config.RoadmapMarginX, 38, stepFontSize, stepColor, canvas.AlignRight)
}

func (s *RoadmapScene) drawRows() {
	ui := s.uiSurface
	for _, row := range s.Layout().Rows {
		if row.Bounds.Y+row.Bounds.Height < config.RoadmapTop-8 || row.Bounds.Y > s.height {
			continue
		}

		switch row.Kind {
		case RowSection:
			c := sectionColor
			if section, ok := s.sectionByID(row.SectionID); ok && s.progress.AllCompleted(sectionStepIDs(section)) {
				c = sectionDoneColor
			}
			ui.DrawText(row.Title, row.Bounds.X, row.Bounds.Y+10, sectionFontSize, c, canvas.AlignLeft)

		case RowStep:
			if row.StepID == s.hoverStepID {
				cx, cy := row.Bounds.Center()
				ui.DrawRect(cx, cy, row.Bounds.Width, row.Bounds.Height, 0, rowHoverColor)
			}
			bx, by := row.Checkbox.Center()
			ui.DrawRect(bx, by, row.Checkbox.Width, row.Checkbox.Height, 0, checkboxColor)

			c := stepColor
			if s.progress.IsCompleted(row.StepID) {
				ui.DrawRect(bx, by, row.Checkbox.Width-6, row.Checkbox.Height-6, 0, checkboxCheckColor)
				c = stepDoneColor
			}
			tx := row.Checkbox.X + row.Checkbox.Width + 12
			title := utils.EllipsizeText(row.Title, row.Bounds.X+row.Bounds.Width-tx-8, s.measureStep)
			ui.DrawText(title, tx, row.Bounds.Y+8, stepFontSize, c, canvas.AlignLeft)
		}
	}
}

func (s *RoadmapScene) drawHints() {
	sound, ambient := "on", "on"
	if s.audio != nil && !s.audio.Enabled() {
		sound = "off"
	}
	if s.settings != nil && !s.settings.GetSettings().AmbientEnabled {
		ambient = "off"
	}
	stats := s.fx.Combo().Stats()
	hint := fmt.Sprintf("M sound: %s   A ambient: %s   R reset   |   XP %d   best combo x%d",
		sound, ambient, stats.TotalPoints, stats.BestCombo)
	s.uiSurface.DrawText(hint, config.RoadmapMarginX, s.height-24, hintFontSize, hintColor, canvas.AlignLeft)
}

func (s *RoadmapScene) sectionByID(id string) (*config.SectionConfig, bool) {
	for i := range s.roadmap.Sections {
		if s.roadmap.Sections[i].ID == id {
			return &s.roadmap.Sections[i], true
		}
	}
	return nil, false
}

func sectionStepIDs(section *config.SectionConfig) []string {
	ids := make([]string, 0, len(section.Steps))
	for _, step := range section.Steps {
		ids = append(ids, step.ID)
	}
	return ids
}
