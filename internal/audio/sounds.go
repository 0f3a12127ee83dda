// Package audio plays short cues for line clears and game over
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = beep.SampleRate(44100)

// Sound is a cue the game can trigger
type Sound int

// Available cues
const (
	SoundSingle Sound = iota
	SoundDouble
	SoundTriple
	SoundTetris
	SoundGameOver
)

func (s Sound) String() string {
	switch s {
	case SoundSingle:
		return "single"
	case SoundDouble:
		return "double"
	case SoundTriple:
		return "triple"
	case SoundTetris:
		return "tetris"
	case SoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// SoundForLines maps a simultaneous clear count to its cue
func SoundForLines(count int) (Sound, bool) {
	switch count {
	case 1:
		return SoundSingle, true
	case 2:
		return SoundDouble, true
	case 3:
		return SoundTriple, true
	case 4:
		return SoundTetris, true
	default:
		return 0, false
	}
}

type note struct {
	freq     float64
	duration time.Duration
}

const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
	noteA3 = 220.00
	noteF3 = 174.61
	noteD3 = 146.83
)

// melodies climb with the number of rows; game over falls
var melodies = map[Sound][]note{
	SoundSingle:   {{noteC5, 80 * time.Millisecond}},
	SoundDouble:   {{noteC5, 70 * time.Millisecond}, {noteE5, 90 * time.Millisecond}},
	SoundTriple:   {{noteC5, 60 * time.Millisecond}, {noteE5, 60 * time.Millisecond}, {noteG5, 100 * time.Millisecond}},
	SoundTetris:   {{noteC5, 60 * time.Millisecond}, {noteE5, 60 * time.Millisecond}, {noteG5, 60 * time.Millisecond}, {noteC6, 180 * time.Millisecond}},
	SoundGameOver: {{noteA3, 180 * time.Millisecond}, {noteF3, 180 * time.Millisecond}, {noteD3, 400 * time.Millisecond}},
}

// streamerFor renders a cue as a finite beep stream
func streamerFor(s Sound, sr beep.SampleRate) beep.Streamer {
	notes := melodies[s]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, newTone(n.freq, n.duration, sr))
	}
	return beep.Seq(parts...)
}

// tone is a sine wave with a short linear fade at both ends to avoid clicks
type tone struct {
	freq     float64
	rate     beep.SampleRate
	total    int
	fade     int
	position int
	phase    float64
}

const toneAmplitude = 0.25

func newTone(freq float64, duration time.Duration, sr beep.SampleRate) *tone {
	total := sr.N(duration)
	fade := sr.N(5 * time.Millisecond)
	if fade*2 > total {
		fade = total / 2
	}
	return &tone{freq: freq, rate: sr, total: total, fade: fade}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		val := toneAmplitude * t.envelope() * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) envelope() float64 {
	if t.fade == 0 {
		return 1
	}
	if t.position < t.fade {
		return float64(t.position) / float64(t.fade)
	}
	if remaining := t.total - t.position; remaining < t.fade {
		return float64(remaining) / float64(t.fade)
	}
	return 1
}
