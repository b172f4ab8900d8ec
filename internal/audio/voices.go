package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// 音符频率（Hz）
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteA5 = 880.00
	noteC6 = 1046.50
	noteA4 = 440.00
)

const (
	defaultAttack = 5 * time.Millisecond

	completeNote1    = 60 * time.Millisecond
	completeNote2    = 110 * time.Millisecond
	uncompleteLength = 140 * time.Millisecond
	comboNoteLength  = 80 * time.Millisecond
	arpeggioNote     = 90 * time.Millisecond
	chordLength      = 450 * time.Millisecond

	// comboMaxSteps 连击音高最多升高的级数（每级两个半音）
	comboMaxSteps = 8
)

// CompleteSound 步骤完成：上行的两个正弦音
func CompleteSound(rate beep.SampleRate, volume float64) beep.Streamer {
	n1 := note(noteE5, completeNote1, WaveSine, rate)
	n2 := note(noteA5, completeNote2, WaveSine, rate)
	return withVolume(beep.Seq(n1, n2), volume)
}

// UncompleteSound 取消完成：下滑的三角波
func UncompleteSound(rate beep.SampleRate, volume float64) beep.Streamer {
	glide := NewGlide(noteA4, noteA4*0.6, uncompleteLength, WaveTriangle, rate)
	shaped := NewEnvelope(glide, uncompleteLength, defaultAttack, uncompleteLength/2, rate)
	return withVolume(shaped, volume*0.8)
}

// ComboSound 连击音：音高随连击数升高，根音 + 五度两个短音
func ComboSound(combo int, rate beep.SampleRate, volume float64) beep.Streamer {
	root := ComboPitch(combo)
	n1 := note(root, comboNoteLength, WaveSquare, rate)
	n2 := note(root*1.5, comboNoteLength, WaveSquare, rate)
	// 方波能量高，压低音量
	return withVolume(beep.Seq(n1, n2), volume*0.35)
}

// ComboPitch 返回连击音的根音频率
func ComboPitch(combo int) float64 {
	steps := combo - 2
	if steps < 0 {
		steps = 0
	}
	if steps > comboMaxSteps {
		steps = comboMaxSteps
	}
	return noteC5 * math.Pow(2, float64(steps*2)/12)
}

// SectionCompleteSound 章节完成：C 大三和弦琶音后接完整和弦
func SectionCompleteSound(rate beep.SampleRate, volume float64) beep.Streamer {
	arpeggio := beep.Seq(
		note(noteC5, arpeggioNote, WaveSine, rate),
		note(noteE5, arpeggioNote, WaveSine, rate),
		note(noteG5, arpeggioNote, WaveSine, rate),
	)

	chordNotes := []float64{noteC5, noteE5, noteG5, noteC6}
	voices := make([]beep.Streamer, 0, len(chordNotes))
	for _, f := range chordNotes {
		osc := NewOscillator(f, chordLength, WaveSine, rate)
		shaped := NewEnvelope(osc, chordLength, defaultAttack, chordLength*2/3, rate)
		voices = append(voices, withVolume(shaped, 1/float64(len(chordNotes))))
	}

	return withVolume(beep.Seq(arpeggio, beep.Mix(voices...)), volume)
}

func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, defaultAttack, d/2, rate)
}
