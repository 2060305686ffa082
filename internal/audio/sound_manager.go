// Package audio synthesizes the game's one-shot sound effects.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tankarena/tank-arena/internal/game"
)

const (
	sampleRate = beep.SampleRate(48000)

	shotDuration      = 140 * time.Millisecond
	explosionDuration = 450 * time.Millisecond
)

// SoundManager mixes fire-and-forget effects onto the speaker. Play never
// blocks the game loop; before Initialize, or after Cleanup, it is silent.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	seed        int64
}

// NewSoundManager creates a sound manager. seed drives the explosion noise.
func NewSoundManager(seed int64) *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		seed:  seed,
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops any sound still playing.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play queues one effect.
func (sm *SoundManager) Play(s game.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	st := sm.streamerFor(s)
	if st == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(st)
	speaker.Unlock()
}

func (sm *SoundManager) streamerFor(s game.Sound) beep.Streamer {
	switch s {
	case game.SoundShot:
		return beep.Take(sampleRate.N(shotDuration), NewLaserGenerator(sampleRate))
	case game.SoundExplosion:
		sm.seed++
		return beep.Take(sampleRate.N(explosionDuration), NewExplosionGenerator(sampleRate, sm.seed))
	default:
		return nil
	}
}
