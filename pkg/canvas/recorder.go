package canvas

import "image/color"

// OpKind 记录的绘制操作类型
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpRect
	OpGlow
	OpText
)

// Op 一次绘制调用
type Op struct {
	Kind     OpKind
	X, Y     float64
	Width    float64 // 圆和光晕为半径
	Height   float64
	Rotation float64
	Size     float64 // 文本字号
	Text     string
	Align    Align
	Color    color.NRGBA
}

// Recorder is a headless TextSurface that records every draw call.
// It is used by tests and by hosts that want to inspect a frame.
type Recorder struct {
	Ops []Op
}

// NewRecorder 创建空的 Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) DrawCircle(x, y, radius float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X: x, Y: y, Width: radius, Color: ToNRGBA(c)})
}

func (r *Recorder) DrawRect(x, y, width, height, rotation float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, X: x, Y: y, Width: width, Height: height, Rotation: rotation, Color: ToNRGBA(c)})
}

func (r *Recorder) DrawGlow(x, y, radius float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpGlow, X: x, Y: y, Width: radius, Color: ToNRGBA(c)})
}

func (r *Recorder) DrawText(s string, x, y, size float64, c color.Color, align Align) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: x, Y: y, Size: size, Text: s, Align: align, Color: ToNRGBA(c)})
}

// Count 返回指定类型的操作数量
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts 返回所有绘制过的文本，按调用顺序
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
