package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(48000)

// drain 读取全部采样，返回样本数和最大振幅
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 256)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer did not terminate")
	return 0, 0
}

func TestOscillatorLengthAndRange(t *testing.T) {
	waves := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"triangle", WaveTriangle},
		{"saw", WaveSaw},
	}

	for _, w := range waves {
		t.Run(w.name, func(t *testing.T) {
			n, peak := drain(t, NewOscillator(440, 100*time.Millisecond, w.wave, testRate))
			if want := testRate.N(100 * time.Millisecond); n != want {
				t.Errorf("samples = %d, want %d", n, want)
			}
			if peak > 1.0001 || peak == 0 {
				t.Errorf("peak = %v, want within (0, 1]", peak)
			}
		})
	}
}

func TestEnvelopeFadesEdges(t *testing.T) {
	d := 50 * time.Millisecond
	env := NewEnvelope(NewOscillator(440, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d samples, want %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want 0 (attack starts silent)", buf[0][0])
	}
	if last := math.Abs(buf[n-1][0]); last > 0.01 {
		t.Errorf("last sample = %v, want near 0", last)
	}
}

func TestVoicesProduceSound(t *testing.T) {
	voices := []struct {
		name string
		s    beep.Streamer
	}{
		{"complete", CompleteSound(testRate, 1)},
		{"uncomplete", UncompleteSound(testRate, 1)},
		{"combo", ComboSound(4, testRate, 1)},
		{"section", SectionCompleteSound(testRate, 1)},
	}

	for _, v := range voices {
		t.Run(v.name, func(t *testing.T) {
			n, peak := drain(t, v.s)
			if n == 0 || peak == 0 {
				t.Errorf("samples = %d, peak = %v; want audible output", n, peak)
			}
			if n > testRate.N(time.Second) {
				t.Errorf("samples = %d, want a short effect", n)
			}
		})
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	n, peak := drain(t, CompleteSound(testRate, 0))
	if n == 0 {
		t.Error("silent sound should still have a length")
	}
	if peak != 0 {
		t.Errorf("peak = %v, want 0", peak)
	}
}

func TestComboPitch(t *testing.T) {
	tests := []struct {
		combo int
		want  float64
	}{
		{0, noteC5},
		{2, noteC5},
		{3, noteC5 * math.Pow(2, 2.0/12)},
		{10, noteC5 * math.Pow(2, 16.0/12)},
		{50, noteC5 * math.Pow(2, 16.0/12)}, // 封顶
	}
	for _, tt := range tests {
		if got := ComboPitch(tt.combo); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ComboPitch(%d) = %v, want %v", tt.combo, got, tt.want)
		}
	}
}

func TestRenderPCM(t *testing.T) {
	d := 20 * time.Millisecond
	pcm := RenderPCM(NewOscillator(440, d, WaveSine, testRate))

	// 16 位立体声：每个采样 4 字节
	want := int64(testRate.N(d) * 4)
	if pcm.Length() != want {
		t.Fatalf("Length = %d, want %d", pcm.Length(), want)
	}

	buf := make([]byte, 100)
	if n, err := pcm.Read(buf); n != 100 || err != nil {
		t.Fatalf("Read = (%d, %v)", n, err)
	}

	pos, err := pcm.Seek(-4, io.SeekEnd)
	if err != nil || pos != want-4 {
		t.Fatalf("Seek(-4, End) = (%d, %v)", pos, err)
	}
	n, _ := pcm.Read(buf)
	if n != 4 {
		t.Errorf("read after seek = %d bytes, want 4", n)
	}
	if _, err := pcm.Read(buf); err != io.EOF {
		t.Errorf("read at end err = %v, want EOF", err)
	}

	if _, err := pcm.Seek(-1, io.SeekStart); err == nil {
		t.Error("negative seek should fail")
	}
	if _, err := pcm.Seek(0, 42); err == nil {
		t.Error("invalid whence should fail")
	}
}

func TestRenderPCMClamps(t *testing.T) {
	loud := withVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, testRate), 4)
	pcm := RenderPCM(loud)
	data := pcm.Bytes()
	for i := 0; i+1 < len(data); i += 2 {
		v := int16(uint16(data[i]) | uint16(data[i+1])<<8)
		if v == math.MinInt16 {
			t.Fatalf("sample %d overflowed to MinInt16", i/2)
		}
	}
}
