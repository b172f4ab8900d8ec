package game

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"

	"github.com/gonewx/roadfx/pkg/config"
)

// recordingSink 记录播放请求并统计每个流的采样数
type recordingSink struct {
	samples []int
	err     error
	closed  bool
}

func (r *recordingSink) Play(s beep.Streamer) error {
	if r.err != nil {
		return r.err
	}
	buf := make([][2]float64, 512)
	total := 0
	for total < 48000*2 {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	r.samples = append(r.samples, total)
	return nil
}

func (r *recordingSink) Close() error {
	r.closed = true
	return nil
}

func testAudioConfig() config.AudioConfig {
	return config.DefaultFXConfig().Audio
}

// TestAudioManagerPlaysAllSounds 测试四种音效都产生非空音频
func TestAudioManagerPlaysAllSounds(t *testing.T) {
	sink := &recordingSink{}
	am := NewAudioManager(sink, nil, testAudioConfig())

	plays := []struct {
		name string
		play func() bool
	}{
		{"完成", am.PlayCompleteSound},
		{"取消", am.PlayUncompleteSound},
		{"连击", func() bool { return am.PlayComboSound(3) }},
		{"章节", am.PlaySectionCompleteSound},
	}

	for _, p := range plays {
		t.Run(p.name, func(t *testing.T) {
			if !p.play() {
				t.Fatalf("play returned false")
			}
		})
	}

	if len(sink.samples) != len(plays) {
		t.Fatalf("sink received %d sounds, want %d", len(sink.samples), len(plays))
	}
	for i, n := range sink.samples {
		if n == 0 {
			t.Errorf("sound %d rendered no samples", i)
		}
	}
}

// TestAudioManagerRespectsSettings 测试音效开关和音量
func TestAudioManagerRespectsSettings(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	sink := &recordingSink{}
	am := NewAudioManager(sink, sm, testAudioConfig())

	sm.SetSoundVolume(0.5)
	if got, want := am.Volume(), 0.6*0.5; got != want {
		t.Errorf("Volume() = %v, want %v", got, want)
	}

	am.SetEnabled(false)
	if am.PlayCompleteSound() {
		t.Error("PlayCompleteSound should be skipped when sound is disabled")
	}

	am.SetEnabled(true)
	sm.SetSoundVolume(0)
	if am.PlayComboSound(2) {
		t.Error("PlayComboSound should be skipped at zero volume")
	}

	if len(sink.samples) != 0 {
		t.Errorf("sink received %d sounds, want 0", len(sink.samples))
	}
}

// TestAudioManagerSinkErrorIsSwallowed 测试播放端失败不会向上传播
func TestAudioManagerSinkErrorIsSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("device busy")}
	am := NewAudioManager(sink, nil, testAudioConfig())

	if am.PlaySectionCompleteSound() {
		t.Error("expected false when sink fails")
	}

	am.Close()
	if !sink.closed {
		t.Error("Close() did not close the sink")
	}
}

// TestAudioManagerNilSink 测试 nil 播放端降级为静音
func TestAudioManagerNilSink(t *testing.T) {
	am := NewAudioManager(nil, nil, testAudioConfig())
	if !am.PlayUncompleteSound() {
		t.Error("nil sink should fall back to NopSink and report success")
	}
	am.Close()
}
