package game

import (
	"log"

	"github.com/gopxl/beep"

	sfx "github.com/gonewx/roadfx/internal/audio"
	"github.com/gonewx/roadfx/pkg/config"
)

// AudioManager 音效管理器
// 职责：
//   - 统一管理完成、取消、连击和章节完成四种反馈音效
//   - 与 SettingsManager 联动（开关、音量）
//   - 音效实时合成，交给显式持有的 Sink 播放
//
// 播放失败只记录日志，绝不向调用方返回错误。
type AudioManager struct {
	sink            Sink
	settingsManager *SettingsManager // 可为 nil
	sampleRate      beep.SampleRate
	baseVolume      float64
}

// NewAudioManager 创建新的音效管理器
//
// 参数：
//   - sink: 播放端（nil 时所有播放为空操作）
//   - sm: SettingsManager 实例（可为 nil）
//   - cfg: 合成参数（采样率、基础音量）
func NewAudioManager(sink Sink, sm *SettingsManager, cfg config.AudioConfig) *AudioManager {
	if sink == nil {
		sink = NopSink{}
	}
	return &AudioManager{
		sink:            sink,
		settingsManager: sm,
		sampleRate:      beep.SampleRate(cfg.SampleRate),
		baseVolume:      cfg.Volume,
	}
}

// PlayCompleteSound 步骤完成音效
func (am *AudioManager) PlayCompleteSound() bool {
	return am.play("complete", func(vol float64) beep.Streamer {
		return sfx.CompleteSound(am.sampleRate, vol)
	})
}

// PlayUncompleteSound 取消完成音效
func (am *AudioManager) PlayUncompleteSound() bool {
	return am.play("uncomplete", func(vol float64) beep.Streamer {
		return sfx.UncompleteSound(am.sampleRate, vol)
	})
}

// PlayComboSound 连击音效，音高随连击数升高
func (am *AudioManager) PlayComboSound(combo int) bool {
	return am.play("combo", func(vol float64) beep.Streamer {
		return sfx.ComboSound(combo, am.sampleRate, vol)
	})
}

// PlaySectionCompleteSound 章节完成音效
func (am *AudioManager) PlaySectionCompleteSound() bool {
	return am.play("section", func(vol float64) beep.Streamer {
		return sfx.SectionCompleteSound(am.sampleRate, vol)
	})
}

// Volume 返回实际播放音量（基础音量 × 用户音量）
func (am *AudioManager) Volume() float64 {
	vol := am.baseVolume
	if am.settingsManager != nil {
		vol *= am.settingsManager.GetSettings().SoundVolume
	}
	return vol
}

// Enabled 音效是否启用
func (am *AudioManager) Enabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

// SetEnabled 切换音效开关（仅内存，持久化由调用方负责）
func (am *AudioManager) SetEnabled(enabled bool) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundEnabled(enabled)
	}
}

// Close 释放播放端
func (am *AudioManager) Close() {
	if err := am.sink.Close(); err != nil {
		log.Printf("[Audio] Warning: Failed to close sink: %v", err)
	}
}

func (am *AudioManager) play(name string, build func(vol float64) beep.Streamer) bool {
	if !am.Enabled() {
		return false
	}
	vol := am.Volume()
	if vol <= 0 {
		return false
	}

	if err := am.sink.Play(build(vol)); err != nil {
		log.Printf("[Audio] Warning: Failed to play %s sound: %v", name, err)
		return false
	}
	return true
}
