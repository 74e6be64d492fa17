package invaders

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadScript for a script without steps.
var ErrEmptyScript = errors.New("invaders: script has no steps")

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Ticks  int    `json:"ticks,omitempty"`
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a scripted input sequence one tick at a time. It
// drives deterministic headless runs and tests.
//
// Supported actions:
//
//	press  key N    queue a key press and hold the key for N ticks (default 1)
//	hold   key N    hold the key for N ticks (default 1) without a press event
//	wait   N        N ticks (default 1) with no input
//	close           queue a close request
type ScriptRunner struct {
	steps   []scriptStep
	keys    []Key
	cursor  int
	remain  int
	done    bool
	pending []InputEvent
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	keys := make([]Key, len(s.Steps))
	for i, st := range s.Steps {
		switch st.Action {
		case "press", "hold":
			k, ok := ParseKey(st.Key)
			if !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown key %q", i, st.Key)
			}
			keys[i] = k
		case "wait", "close":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
		if st.Ticks < 0 {
			return nil, fmt.Errorf("parse input script: step %d: negative ticks", i)
		}
	}
	return &ScriptRunner{steps: s.Steps, keys: keys}, nil
}

// ParseKey maps a script key name to a Key.
func ParseKey(name string) (Key, bool) {
	for k := KeyLeft; k <= KeyR; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Inject queues an extra event for the next tick, ahead of the script.
func (r *ScriptRunner) Inject(ev InputEvent) {
	r.pending = append(r.pending, ev)
}

// Done reports whether every step has been consumed.
func (r *ScriptRunner) Done() bool {
	return r.done && len(r.pending) == 0
}

// Next fills in with the input for the next tick. It returns false once the
// script is exhausted.
func (r *ScriptRunner) Next(in *Input) bool {
	in.Reset()
	if len(r.pending) > 0 {
		in.Events = append(in.Events, r.pending...)
		r.pending = r.pending[:0]
		if r.done {
			return true
		}
	}
	if r.done {
		return false
	}

	if r.remain == 0 {
		if r.cursor >= len(r.steps) {
			r.done = true
			return len(in.Events) > 0
		}
		st := r.steps[r.cursor]
		r.remain = max(st.Ticks, 1)
		if st.Action == "press" {
			in.PressKey(r.keys[r.cursor])
		}
		if st.Action == "close" {
			in.Close()
		}
	}

	st := r.steps[r.cursor]
	switch st.Action {
	case "press", "hold":
		in.Held = in.Held.With(r.keys[r.cursor])
	}
	r.remain--
	if r.remain == 0 {
		r.cursor++
		if r.cursor >= len(r.steps) {
			r.done = true
		}
	}
	return true
}

// RunHeadless advances w with scripted input at a fixed dt until the script
// is exhausted or the world quits. It returns the number of ticks run.
func RunHeadless(w *World, r *ScriptRunner, dt float64) int {
	var in Input
	ticks := 0
	for !w.Quit() && r.Next(&in) {
		w.Advance(dt, in)
		ticks++
	}
	return ticks
}
