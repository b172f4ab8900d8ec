package utils

import (
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ellipsis 截断后追加的省略号
const ellipsis = "…"

// TextMeasurer 返回文本的像素宽度
type TextMeasurer func(s string) float64

// FaceMeasurer 基于字体创建测量函数
func FaceMeasurer(face *text.GoTextFace) TextMeasurer {
	return func(s string) float64 {
		if s == "" || face == nil || face.Source == nil {
			return 0
		}
		width, _ := text.Measure(s, face, 0)
		return width
	}
}

// EllipsizeText 将文本截断到 maxWidth 以内，超出时以省略号结尾
// 支持中文和英文混合文本（按字符截断）
func EllipsizeText(textStr string, maxWidth float64, measure TextMeasurer) string {
	if textStr == "" || measure == nil || maxWidth <= 0 {
		return textStr
	}
	if measure(textStr) <= maxWidth {
		return textStr
	}

	// 逐字符回退，直到带省略号的文本放得下
	cut := textStr
	for len(cut) > 0 {
		_, size := utf8.DecodeLastRuneInString(cut)
		cut = cut[:len(cut)-size]
		if measure(cut+ellipsis) <= maxWidth {
			return cut + ellipsis
		}
	}
	return ellipsis
}
