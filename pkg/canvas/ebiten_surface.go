package canvas

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
)

// glowRings 光晕由若干同心圆叠加近似径向渐变
const glowRings = 4

// EbitenSurface 基于 Ebitengine 的 TextSurface 实现
//
// 目标图像通过 SetTarget 每帧指定：粒子层使用独立的离屏图像（Clear 只清空该层），
// 覆盖层直接绘制到屏幕上。scale 为像素密度，逻辑坐标乘以 scale 得到物理像素。
type EbitenSurface struct {
	target     *ebiten.Image
	scale      float64
	pixel      *ebiten.Image
	fontSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace
}

// NewEbitenSurface 创建 Ebitengine 绘制表面
//
// fontSource 可为 nil，此时 DrawText 为空操作。
// 不会立即分配 GPU 资源，第一次绘制矩形时才创建 1×1 像素图像。
func NewEbitenSurface(fontSource *text.GoTextFaceSource) *EbitenSurface {
	return &EbitenSurface{
		scale:      1,
		fontSource: fontSource,
		faces:      make(map[float64]*text.GoTextFace),
	}
}

// LoadDefaultFont 加载内嵌的 Go Bold 字体
func LoadDefaultFont() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load default font: %w", err)
	}
	return src, nil
}

// SetTarget 设置绘制目标和像素密度
func (s *EbitenSurface) SetTarget(target *ebiten.Image, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.target = target
	s.scale = scale
}

// Target 返回当前绘制目标
func (s *EbitenSurface) Target() *ebiten.Image {
	return s.target
}

func (s *EbitenSurface) Clear() {
	if s.target == nil {
		return
	}
	s.target.Clear()
}

func (s *EbitenSurface) DrawCircle(x, y, radius float64, c color.Color) {
	if s.target == nil || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.target,
		float32(x*s.scale), float32(y*s.scale), float32(radius*s.scale), c, true)
}

func (s *EbitenSurface) DrawRect(x, y, width, height, rotation float64, c color.Color) {
	if s.target == nil || width <= 0 || height <= 0 {
		return
	}
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}
	w := width * s.scale
	h := height * s.scale

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(x*s.scale, y*s.scale)
	op.ColorScale.ScaleWithColor(c)
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(s.pixel, op)
}

func (s *EbitenSurface) DrawGlow(x, y, radius float64, c color.Color) {
	if s.target == nil || radius <= 0 {
		return
	}
	base := ToNRGBA(c)
	ring := base
	ring.A = uint8(math.Round(float64(base.A) / glowRings))
	for i := 0; i < glowRings; i++ {
		r := radius * (1 - float64(i)/glowRings)
		vector.DrawFilledCircle(s.target,
			float32(x*s.scale), float32(y*s.scale), float32(r*s.scale), ring, true)
	}
}

func (s *EbitenSurface) DrawText(str string, x, y, size float64, c color.Color, align Align) {
	if s.target == nil || s.fontSource == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*s.scale, y*s.scale)
	op.ColorScale.ScaleWithColor(c)
	switch align {
	case AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case AlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}
	text.Draw(s.target, str, s.face(size*s.scale), op)
}

// MeasureText 返回文本的逻辑宽度
func (s *EbitenSurface) MeasureText(str string, size float64) float64 {
	if s.fontSource == nil {
		return 0
	}
	w, _ := text.Measure(str, s.face(size*s.scale), 0)
	return w / s.scale
}

func (s *EbitenSurface) face(size float64) *text.GoTextFace {
	size = math.Round(size)
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: s.fontSource, Size: size}
	s.faces[size] = f
	return f
}
