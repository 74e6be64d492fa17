// Package audio synthesizes the game's sound effects with beep and plays
// them through a single mixer on the speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/phanxgames/invaders"
	"github.com/rs/zerolog"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager owns the mixer. Every Play call is a no-op until
// Initialize succeeds, so a machine without an audio device still runs
// the game.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	log         zerolog.Logger
	enabled     bool
	initialized bool
	warned      bool
	marchStep   int
}

// NewSoundManager creates a manager. volume is a base-2 offset: 0 leaves
// levels unchanged, -1 halves them.
func NewSoundManager(log zerolog.Logger, enabled bool, volume float64) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:   mixer,
		master:  &effects.Volume{Streamer: mixer, Base: 2, Volume: volume},
		log:     log.With().Str("component", "audio").Logger(),
		enabled: enabled,
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.enabled {
		sm.warnOnce("audio disabled")
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		sm.warnOnce("speaker unavailable, continuing without sound")
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(sm.master)
	sm.initialized = true
	sm.log.Debug().Int("sampleRate", int(sampleRate)).Msg("speaker ready")
	return nil
}

// Initialized reports whether sounds will actually play.
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup silences everything and stops feeding the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.initialized = false
}

// Play queues one effect on the mixer.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	step := 0
	if s == SoundMarch {
		step = sm.marchStep
		sm.marchStep++
	}
	streamer := NewSound(s, step, sampleRate)
	if streamer == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

func (sm *SoundManager) PlayFire()      { sm.Play(SoundFire) }
func (sm *SoundManager) PlayExplosion() { sm.Play(SoundExplosion) }
func (sm *SoundManager) PlayMarch()     { sm.Play(SoundMarch) }
func (sm *SoundManager) PlayWin()       { sm.Play(SoundWin) }
func (sm *SoundManager) PlayLose()      { sm.Play(SoundLose) }

// ResetMarch restarts the march cycle for a new round.
func (sm *SoundManager) ResetMarch() {
	sm.mu.Lock()
	sm.marchStep = 0
	sm.mu.Unlock()
}

func (sm *SoundManager) warnOnce(msg string) {
	if sm.warned {
		return
	}
	sm.warned = true
	sm.log.Warn().Msg(msg)
}

// soundFor maps simulation events to effects.
var soundFor = map[invaders.EventType]Sound{
	invaders.EventFire:        SoundFire,
	invaders.EventEnemyKilled: SoundExplosion,
	invaders.EventShift:       SoundMarch,
	invaders.EventWin:         SoundWin,
	invaders.EventLose:        SoundLose,
}

// Attach plays effects for w's events. Remove the returned handles to
// detach.
func (sm *SoundManager) Attach(w *invaders.World) []invaders.CallbackHandle {
	handles := make([]invaders.CallbackHandle, 0, len(soundFor))
	for typ, s := range soundFor {
		handles = append(handles, w.On(typ, func(invaders.Event) { sm.Play(s) }))
	}
	return handles
}
