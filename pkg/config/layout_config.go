package config

// 窗口与路线图布局常量（逻辑像素）
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 960
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 720

	// RoadmapMarginX 路线图列表左右边距
	RoadmapMarginX = 48.0
	// RoadmapTop 标题下方第一行的 Y 坐标
	RoadmapTop = 96.0
	// SectionHeaderHeight 章节标题行高
	SectionHeaderHeight = 40.0
	// StepRowHeight 步骤行高
	StepRowHeight = 32.0
	// SectionGap 章节之间的间距
	SectionGap = 12.0
	// CheckboxSize 复选框边长
	CheckboxSize = 18.0
)
