package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Player plays cues without blocking the game loop
type Player interface {
	Play(s Sound)
	Close()
}

// Nop is a silent Player, used with --no-sound or when no device is available
type Nop struct{}

// Play does nothing
func (Nop) Play(Sound) {}

// Close does nothing
func (Nop) Close() {}

// Speaker plays cues on the default output device through a shared mixer
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	open   bool
}

// NewSpeaker opens the output device. Volume is in halvings: 0 is unchanged,
// -1 is half as loud.
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}

	s := &Speaker{
		mixer:  &beep.Mixer{},
		volume: volume,
		open:   true,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play queues a cue on the mixer
func (s *Speaker) Play(sound Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}

	stream := &effects.Volume{
		Streamer: streamerFor(sound, sampleRate),
		Base:     2,
		Volume:   s.volume,
	}

	speaker.Lock()
	s.mixer.Add(stream)
	speaker.Unlock()

	slog.Debug("Sound queued", "sound", sound.String())
}

// Close silences the mixer and releases the device
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}
	s.open = false

	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
