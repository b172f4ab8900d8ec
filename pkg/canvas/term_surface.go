package canvas

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// TermSurface 将画布坐标映射到终端字符格的 TextSurface 实现
//
// 每个字符格代表 CellWidth x CellHeight 个逻辑像素。alpha 通过与背景色混合模拟。
type TermSurface struct {
	screen     tcell.Screen
	CellWidth  float64
	CellHeight float64
	Background color.NRGBA
}

// NewTermSurface 创建终端表面，默认每格 8x16 逻辑像素
func NewTermSurface(screen tcell.Screen) *TermSurface {
	return &TermSurface{
		screen:     screen,
		CellWidth:  8,
		CellHeight: 16,
		Background: color.NRGBA{R: 12, G: 14, B: 24, A: 255},
	}
}

// Bounds 返回终端对应的逻辑像素尺寸
func (s *TermSurface) Bounds() (float64, float64) {
	w, h := s.screen.Size()
	return float64(w) * s.CellWidth, float64(h) * s.CellHeight
}

func (s *TermSurface) Clear() {
	bg := s.color(s.Background)
	s.screen.Fill(' ', tcell.StyleDefault.Background(bg))
}

func (s *TermSurface) DrawCircle(x, y, radius float64, c color.Color) {
	r := '·'
	if radius >= 3 {
		r = '●'
	} else if radius >= 1.5 {
		r = '•'
	}
	s.put(x, y, r, c)
}

func (s *TermSurface) DrawRect(x, y, width, height, rotation float64, c color.Color) {
	r := '▬'
	if height > width*0.8 {
		r = '■'
	}
	s.put(x, y, r, c)
}

func (s *TermSurface) DrawGlow(x, y, radius float64, c color.Color) {
	cx, cy, ok := s.cell(x, y)
	if !ok {
		return
	}
	mainc, combc, style, _ := s.screen.GetContent(cx, cy)
	style = style.Background(s.blend(c))
	s.screen.SetContent(cx, cy, mainc, combc, style)
}

func (s *TermSurface) DrawText(str string, x, y, size float64, c color.Color, align Align) {
	runes := []rune(str)
	startX := x
	switch align {
	case AlignCenter:
		startX = x - float64(len(runes))*s.CellWidth/2
	case AlignRight:
		startX = x - float64(len(runes))*s.CellWidth
	}
	for i, r := range runes {
		s.put(startX+float64(i)*s.CellWidth, y, r, c)
	}
}

func (s *TermSurface) put(x, y float64, r rune, c color.Color) {
	cx, cy, ok := s.cell(x, y)
	if !ok {
		return
	}
	_, _, style, _ := s.screen.GetContent(cx, cy)
	s.screen.SetContent(cx, cy, r, nil, style.Foreground(s.blend(c)))
}

func (s *TermSurface) cell(x, y float64) (int, int, bool) {
	w, h := s.screen.Size()
	cx := int(x / s.CellWidth)
	cy := int(y / s.CellHeight)
	if x < 0 || y < 0 || cx >= w || cy >= h {
		return 0, 0, false
	}
	return cx, cy, true
}

// blend 按 alpha 将颜色与背景混合
func (s *TermSurface) blend(c color.Color) tcell.Color {
	n := ToNRGBA(c)
	a := float64(n.A) / 255
	mix := func(fg, bg uint8) int32 {
		return int32(float64(fg)*a + float64(bg)*(1-a))
	}
	return tcell.NewRGBColor(mix(n.R, s.Background.R), mix(n.G, s.Background.G), mix(n.B, s.Background.B))
}

func (s *TermSurface) color(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
