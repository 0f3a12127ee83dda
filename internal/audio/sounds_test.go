package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoundForLines(t *testing.T) {
	testCases := []struct {
		count    int
		expected Sound
		ok       bool
	}{
		{count: 0, ok: false},
		{count: 1, expected: SoundSingle, ok: true},
		{count: 2, expected: SoundDouble, ok: true},
		{count: 3, expected: SoundTriple, ok: true},
		{count: 4, expected: SoundTetris, ok: true},
		{count: 5, ok: false},
	}

	for _, tc := range testCases {
		sound, ok := SoundForLines(tc.count)
		assert.Equal(t, tc.ok, ok, "count %d", tc.count)
		if tc.ok {
			assert.Equal(t, tc.expected, sound)
		}
	}
}

func TestEveryCueHasAMelody(t *testing.T) {
	for _, s := range []Sound{SoundSingle, SoundDouble, SoundTriple, SoundTetris, SoundGameOver} {
		assert.NotEmpty(t, melodies[s], s.String())
	}
	assert.Len(t, melodies[SoundTetris], 4)
}

func drain(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			if sample[0] > peak {
				peak = sample[0]
			}
			require.Equal(t, sample[0], sample[1])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream never drained")
	return 0, 0
}

func TestToneLengthAndLevel(t *testing.T) {
	tn := newTone(440, 100*time.Millisecond, sampleRate)

	total, peak := drain(t, tn)
	assert.Equal(t, sampleRate.N(100*time.Millisecond), total)
	assert.LessOrEqual(t, peak, toneAmplitude)
	assert.Greater(t, peak, 0.0)
	assert.NoError(t, tn.Err())
}

func TestToneFadesIn(t *testing.T) {
	tn := newTone(440, 50*time.Millisecond, sampleRate)
	buf := make([][2]float64, 1)
	_, ok := tn.Stream(buf)
	require.True(t, ok)
	assert.Equal(t, 0.0, buf[0][0])
}

func TestStreamerForSequencesNotes(t *testing.T) {
	expected := 0
	for _, n := range melodies[SoundGameOver] {
		expected += sampleRate.N(n.duration)
	}

	total, _ := drain(t, streamerFor(SoundGameOver, sampleRate))
	assert.Equal(t, expected, total)
}
