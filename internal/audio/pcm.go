package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// maxRenderSamples 单个音效最多渲染 2 秒（48kHz），防止无限流
const maxRenderSamples = 48000 * 2

// PCMStream holds a rendered effect as 16-bit signed little-endian stereo
// PCM, the format Ebitengine's audio.Player consumes.
type PCMStream struct {
	data   []byte
	offset int64
}

// RenderPCM drains a streamer into a PCMStream.
// Samples are clamped to [-1, 1] before quantisation.
func RenderPCM(s beep.Streamer) *PCMStream {
	buf := make([][2]float64, 512)
	data := make([]byte, 0, 4096)
	total := 0

	for total < maxRenderSamples {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				v := int16(math.Round(clampSample(buf[i][ch]) * math.MaxInt16))
				data = append(data, byte(v), byte(v>>8))
			}
		}
		total += n
		if !ok {
			break
		}
	}

	return &PCMStream{data: data}
}

// Read implements io.Reader.
func (p *PCMStream) Read(b []byte) (n int, err error) {
	if p.offset >= int64(len(p.data)) {
		return 0, io.EOF
	}
	n = copy(b, p.data[p.offset:])
	p.offset += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (p *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = p.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(p.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	p.offset = newOffset
	return newOffset, nil
}

// Length returns the total length of the PCM data in bytes.
func (p *PCMStream) Length() int64 {
	return int64(len(p.data))
}

// Bytes 返回底层 PCM 数据
func (p *PCMStream) Bytes() []byte {
	return p.data
}

func clampSample(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
