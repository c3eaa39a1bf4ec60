// Package audio plays short synthesized cues for table events on the local
// speaker. Every method is safe to call when no audio device is available.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/pinball/internal/pinball"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager mixes event cues onto the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a sound manager. Nothing is audible until Initialize.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
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

// SetMuted toggles output without tearing down the device.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Play queues one cue per event type present in res. Several hits of the
// same kind in one tick are heard as one.
func (sm *SoundManager) Play(res pinball.TickResult) {
	if len(res.Events) == 0 {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	seen := make(map[pinball.EventType]bool, 4)
	speaker.Lock()
	defer speaker.Unlock()
	for _, e := range res.Events {
		if seen[e.Type] {
			continue
		}
		if s := Cue(e.Type); s != nil {
			seen[e.Type] = true
			sm.mixer.Add(s)
		}
	}
}

// Cue returns the streamer for an event type, or nil if it is silent.
func Cue(t pinball.EventType) beep.Streamer {
	switch t {
	case pinball.EventBumperHit:
		return bumperSound(sampleRate)
	case pinball.EventFlipperHit:
		return flipperSound(sampleRate)
	case pinball.EventWallHit:
		return wallSound(sampleRate)
	case pinball.EventNudge:
		return nudgeSound(sampleRate)
	case pinball.EventDrained:
		return drainSound(sampleRate)
	default:
		return nil
	}
}
