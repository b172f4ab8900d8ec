package scenes

import (
	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/config"
)

// RowKind 路线图行类型
type RowKind int

const (
	// RowSection 章节标题行
	RowSection RowKind = iota
	// RowStep 步骤行（可点击）
	RowStep
)

// RoadmapRow 一行的布局结果（屏幕坐标，已扣除滚动偏移）
type RoadmapRow struct {
	Kind      RowKind
	SectionID string
	StepID    string
	Title     string
	Bounds    canvas.Rect
	Checkbox  canvas.Rect // 仅步骤行
}

// RoadmapLayout 整个路线图的布局
type RoadmapLayout struct {
	Rows          []RoadmapRow
	ContentHeight float64 // 不含滚动偏移的总高度
}

// LayoutRoadmap 按章节顺序排列标题行和步骤行
func LayoutRoadmap(rm *config.RoadmapConfig, width, scrollY float64) RoadmapLayout {
	var layout RoadmapLayout
	if rm == nil {
		return layout
	}

	rowWidth := width - 2*config.RoadmapMarginX
	y := config.RoadmapTop
	for si, section := range rm.Sections {
		if si > 0 {
			y += config.SectionGap
		}
		layout.Rows = append(layout.Rows, RoadmapRow{
			Kind:      RowSection,
			SectionID: section.ID,
			Title:     section.Title,
			Bounds:    canvas.Rect{X: config.RoadmapMarginX, Y: y - scrollY, Width: rowWidth, Height: config.SectionHeaderHeight},
		})
		y += config.SectionHeaderHeight

		for _, step := range section.Steps {
			bounds := canvas.Rect{X: config.RoadmapMarginX, Y: y - scrollY, Width: rowWidth, Height: config.StepRowHeight}
			layout.Rows = append(layout.Rows, RoadmapRow{
				Kind:      RowStep,
				SectionID: section.ID,
				StepID:    step.ID,
				Title:     step.Title,
				Bounds:    bounds,
				Checkbox: canvas.Rect{
					X:      bounds.X + 12,
					Y:      bounds.Y + (config.StepRowHeight-config.CheckboxSize)/2,
					Width:  config.CheckboxSize,
					Height: config.CheckboxSize,
				},
			})
			y += config.StepRowHeight
		}
	}
	layout.ContentHeight = y
	return layout
}

// HitTest 返回坐标所在的步骤行；只有步骤行可点击
func (l RoadmapLayout) HitTest(x, y float64) (RoadmapRow, bool) {
	for _, row := range l.Rows {
		if row.Kind == RowStep && row.Bounds.Contains(x, y) {
			return row, true
		}
	}
	return RoadmapRow{}, false
}

// SectionRow 返回章节标题行
func (l RoadmapLayout) SectionRow(sectionID string) (RoadmapRow, bool) {
	for _, row := range l.Rows {
		if row.Kind == RowSection && row.SectionID == sectionID {
			return row, true
		}
	}
	return RoadmapRow{}, false
}

// MaxScroll 内容超出视口时允许的最大滚动量
func (l RoadmapLayout) MaxScroll(viewportHeight float64) float64 {
	over := l.ContentHeight + config.SectionGap - viewportHeight
	if over < 0 {
		return 0
	}
	return over
}
