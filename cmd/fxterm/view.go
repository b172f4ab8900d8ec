package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/config"
	"github.com/gonewx/roadfx/pkg/fx"
	"github.com/gonewx/roadfx/pkg/game"
)

var (
	headerColor  = color.NRGBA{R: 72, G: 219, B: 251, A: 255}
	doneColor    = color.NRGBA{R: 29, G: 209, B: 161, A: 255}
	pendingColor = color.NRGBA{R: 210, G: 214, B: 230, A: 255}
	cursorColor  = color.NRGBA{R: 254, G: 202, B: 87, A: 255}
	hintColor    = color.NRGBA{R: 120, G: 126, B: 150, A: 255}
)

// 列表在终端中的起始位置（字符格）
const (
	listLeft = 4
	listTop  = 3
)

// termLine 终端中的一行：章节标题或步骤
type termLine struct {
	section *config.SectionConfig
	step    *config.StepConfig // 标题行为 nil
}

// termView 终端版路线图
type termView struct {
	screen   tcell.Screen
	surface  *canvas.TermSurface
	roadmap  *config.RoadmapConfig
	progress *game.ProgressManager
	fx       *fx.Controller

	lines   []termLine
	cursor  int // lines 下标，总是指向步骤行
	ambient bool
}

func newTermView(screen tcell.Screen, roadmap *config.RoadmapConfig, progress *game.ProgressManager, controller *fx.Controller) *termView {
	v := &termView{
		screen:   screen,
		surface:  canvas.NewTermSurface(screen),
		roadmap:  roadmap,
		progress: progress,
		fx:       controller,
	}
	for i := range roadmap.Sections {
		section := &roadmap.Sections[i]
		v.lines = append(v.lines, termLine{section: section})
		for j := range section.Steps {
			v.lines = append(v.lines, termLine{section: section, step: &section.Steps[j]})
		}
	}
	v.cursor = v.nextStep(-1, 1)
	v.mount()
	return v
}

func (v *termView) mount() {
	w, h := v.surface.Bounds()
	v.fx.Mount(v.surface, canvas.Rect{Width: w, Height: h}, 1)
}

func (v *termView) close() {
	v.fx.Close()
	if err := v.progress.Save(); err != nil {
		log.Printf("[Progress] Warning: %v", err)
	}
}

// handleEvent 处理输入，返回 false 表示退出
func (v *termView) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.cursor = v.nextStep(v.cursor, -1)
		case tcell.KeyDown:
			v.cursor = v.nextStep(v.cursor, 1)
		case tcell.KeyEnter:
			v.toggleCursor()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.toggleCursor()
			case 's':
				x, y := v.cellCenter(listLeft+1, listTop+v.cursor)
				v.fx.Particles().Confetti(x, y)
			case 'a':
				v.ambient = !v.ambient
				v.fx.SetAmbientEnabled(v.ambient)
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
		w, h := v.surface.Bounds()
		v.fx.Resize(canvas.Rect{Width: w, Height: h}, 1)
	}
	return true
}

// nextStep 从 from 开始按方向寻找下一个步骤行，找不到时保持原位
func (v *termView) nextStep(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(v.lines); i += dir {
		if v.lines[i].step != nil {
			return i
		}
	}
	if from < 0 {
		return 0
	}
	return from
}

// toggleCursor 切换光标所在步骤，完成时触发特效
func (v *termView) toggleCursor() {
	if v.cursor >= len(v.lines) || v.lines[v.cursor].step == nil {
		return
	}
	line := v.lines[v.cursor]
	done := v.progress.Toggle(line.step.ID)
	if done {
		x, y := v.cellCenter(listLeft+1, listTop+v.cursor)
		v.fx.StepCompleted(x, y)

		ids := make([]string, 0, len(line.section.Steps))
		for _, s := range line.section.Steps {
			ids = append(ids, s.ID)
		}
		if v.progress.AllCompleted(ids) {
			w, h := v.surface.Bounds()
			v.fx.SectionCompleted(w/2, h/3, line.section.Title)
		}
	} else {
		v.fx.StepUncompleted()
	}

	if err := v.progress.Save(); err != nil {
		log.Printf("[Progress] Warning: %v", err)
	}
}

// cellCenter 字符格中心的逻辑像素坐标
func (v *termView) cellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * v.surface.CellWidth, (float64(row) + 0.5) * v.surface.CellHeight
}

func (v *termView) cellTop(col, row int) (float64, float64) {
	return float64(col) * v.surface.CellWidth, float64(row) * v.surface.CellHeight
}

func (v *termView) draw() {
	// 粒子层先清屏，文本和覆盖层叠加在上面
	v.fx.DrawParticles()

	x, y := v.cellTop(listLeft, 1)
	v.surface.DrawText(fmt.Sprintf("%s  %d/%d", v.roadmap.Title, v.progress.CompletedCount(), v.roadmap.StepCount()),
		x, y, 0, headerColor, canvas.AlignLeft)

	for i, line := range v.lines {
		x, y := v.cellTop(listLeft, listTop+i)
		if line.step == nil {
			v.surface.DrawText(line.section.Title, x, y, 0, headerColor, canvas.AlignLeft)
			continue
		}

		mark, c := "[ ]", pendingColor
		if v.progress.IsCompleted(line.step.ID) {
			mark, c = "[x]", doneColor
		}
		if i == v.cursor {
			c = cursorColor
		}
		v.surface.DrawText(mark+" "+line.step.Title, x+2*v.surface.CellWidth, y, 0, c, canvas.AlignLeft)
	}

	_, h := v.screen.Size()
	hx, hy := v.cellTop(listLeft, h-2)
	stats := v.fx.Combo().Stats()
	v.surface.DrawText(fmt.Sprintf("Up/Down move  Enter toggle  s confetti  a ambient  q quit  |  XP %d  best x%d",
		stats.TotalPoints, stats.BestCombo), hx, hy, 0, hintColor, canvas.AlignLeft)

	v.fx.DrawOverlay(v.surface)
}
