package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2/audio"

	sfx "github.com/gonewx/roadfx/internal/audio"
)

// Sink 音效播放端
type Sink interface {
	Play(s beep.Streamer) error
	Close() error
}

// NopSink 静音播放端（无音频设备或测试时使用）
type NopSink struct{}

// Play drains nothing and reports success.
func (NopSink) Play(beep.Streamer) error { return nil }

// Close is a no-op.
func (NopSink) Close() error { return nil }

// EbitenSink 通过 Ebitengine 音频上下文播放
//
// 合成结果先渲染成 16 位 PCM，再交给 audio.Player。
// 正在播放的 Player 需要保持引用，播完后在下次 Play 时清理。
type EbitenSink struct {
	ctx     *audio.Context
	players []*audio.Player
}

// NewEbitenSink 创建 Ebitengine 播放端，ctx 的采样率需与合成采样率一致
func NewEbitenSink(ctx *audio.Context) *EbitenSink {
	return &EbitenSink{ctx: ctx}
}

// Play renders the streamer and starts a new player for it.
func (s *EbitenSink) Play(st beep.Streamer) error {
	if s.ctx == nil {
		return fmt.Errorf("audio context is nil")
	}

	live := s.players[:0]
	for _, p := range s.players {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		p.Close()
	}
	s.players = live

	player, err := s.ctx.NewPlayer(sfx.RenderPCM(st))
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	player.Play()
	s.players = append(s.players, player)
	return nil
}

// Close stops every active player.
func (s *EbitenSink) Close() error {
	for _, p := range s.players {
		p.Close()
	}
	s.players = nil
	return nil
}

// SpeakerSink 通过 beep speaker 直接播放（终端宿主使用）
type SpeakerSink struct {
	mu     sync.Mutex
	closed bool
}

// NewSpeakerSink 初始化 speaker，缓冲 100ms
func NewSpeakerSink(rate beep.SampleRate) (*SpeakerSink, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	return &SpeakerSink{}, nil
}

// Play queues the streamer on the speaker mixer.
func (s *SpeakerSink) Play(st beep.Streamer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("speaker sink is closed")
	}
	speaker.Play(st)
	return nil
}

// Close clears pending sounds and shuts the speaker down.
func (s *SpeakerSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
	return nil
}
