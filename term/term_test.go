package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/invaders"
	"github.com/rs/zerolog"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func newFrontend(t *testing.T, cfg invaders.Config, opts Options) (*Frontend, *invaders.World, tcell.SimulationScreen) {
	t.Helper()
	w, err := invaders.NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	s := newScreen(t, 80, 25)
	opts.Logger = zerolog.Nop()
	return New(s, w, opts), w, s
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want invaders.Key
		ok   bool
	}{
		{"left", key(tcell.KeyLeft), invaders.KeyLeft, true},
		{"right", key(tcell.KeyRight), invaders.KeyRight, true},
		{"escape", key(tcell.KeyEscape), invaders.KeyEscape, true},
		{"ctrl-c", key(tcell.KeyCtrlC), invaders.KeyEscape, true},
		{"space", char(' '), invaders.KeySpace, true},
		{"a", char('a'), invaders.KeyA, true},
		{"D", char('D'), invaders.KeyD, true},
		{"r", char('r'), invaders.KeyR, true},
		{"x", char('x'), 0, false},
		{"enter", key(tcell.KeyEnter), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyFor(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("keyFor = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHeldWindow(t *testing.T) {
	f, _, _ := newFrontend(t, invaders.DefaultConfig(), Options{})
	t0 := time.Unix(1000, 0)
	f.HandleEvent(key(tcell.KeyLeft), t0)

	if !f.held(t0.Add(100 * time.Millisecond)).Has(invaders.KeyLeft) {
		t.Error("left should be held inside the window")
	}
	if f.held(t0.Add(DefaultHeldWindow)).Has(invaders.KeyLeft) {
		t.Error("left should be released once the window passes")
	}
	if f.held(t0).Has(invaders.KeyRight) {
		t.Error("right was never pressed")
	}
}

func TestStepMovesPlayer(t *testing.T) {
	f, w, _ := newFrontend(t, invaders.DefaultConfig(), Options{})
	t0 := time.Unix(1000, 0)
	f.HandleEvent(key(tcell.KeyRight), t0)
	f.Step(t0.Add(10 * time.Millisecond))

	if x := w.Player().X; x <= 0 {
		t.Errorf("player x = %v, want moved right", x)
	}

	// Without a repeat the key lapses.
	before := w.Player().X
	f.Step(t0.Add(time.Second))
	if w.Player().X != before {
		t.Errorf("player moved after the held window: %v -> %v", before, w.Player().X)
	}
}

func TestStepFiresAndQuits(t *testing.T) {
	f, w, _ := newFrontend(t, invaders.DefaultConfig(), Options{})
	now := time.Unix(1000, 0)

	f.HandleEvent(char(' '), now)
	f.Step(now)
	if len(w.Bullets()) != 1 {
		t.Fatalf("bullets = %d, want 1", len(w.Bullets()))
	}

	f.HandleEvent(key(tcell.KeyEscape), now)
	f.Step(now)
	if !w.Quit() {
		t.Error("escape should quit")
	}
}

func TestDrawGlyphs(t *testing.T) {
	f, _, s := newFrontend(t, invaders.DefaultConfig(), Options{
		Status: func() string { return "Score 0" },
	})
	f.Draw()

	// 80x24 playfield over 1280x720: 16 px per column, 30 px per row.
	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"first enemy", 2, 0, glyphEnemy},
		{"player", 0, 23, glyphPlayer},
		{"empty", 40, 15, ' '},
		{"status", 0, 24, 'S'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _, _ := s.GetContent(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("cell (%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRestartAfterWin(t *testing.T) {
	cfg := invaders.DefaultConfig()
	cfg.EnemyCount = 1
	cfg.EnemySpeed = 1
	resets := 0
	f, w, _ := newFrontend(t, cfg, Options{OnReset: func() { resets++ }})
	now := time.Unix(1000, 0)

	// The lone enemy sits above the player's starting column.
	f.HandleEvent(char(' '), now)
	for i := 0; i < 120 && !w.Won(); i++ {
		f.Step(now)
	}
	if !w.Won() {
		t.Fatal("round should be won")
	}

	f.HandleEvent(char('r'), now)
	f.Step(now)
	if w.Won() || len(w.Enemies()) != 1 {
		t.Errorf("won=%v enemies=%d after restart", w.Won(), len(w.Enemies()))
	}
	if resets != 1 {
		t.Errorf("OnReset calls = %d, want 1", resets)
	}
}

func TestRestartIgnoredMidRound(t *testing.T) {
	resets := 0
	f, w, _ := newFrontend(t, invaders.DefaultConfig(), Options{OnReset: func() { resets++ }})
	now := time.Unix(1000, 0)
	f.Step(now)
	f.HandleEvent(char('r'), now)
	f.Step(now)
	if resets != 0 || w.Tick() != 2 {
		t.Errorf("resets=%d tick=%d, want 0 and 2", resets, w.Tick())
	}
}

func TestRunQuitsOnEscape(t *testing.T) {
	f, w, s := newFrontend(t, invaders.DefaultConfig(), Options{Tick: time.Millisecond})
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !w.Quit() {
		t.Error("world should have quit")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	f, w, _ := newFrontend(t, invaders.DefaultConfig(), Options{Tick: time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := f.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run = %v, want deadline exceeded", err)
	}
	if w.Quit() {
		t.Error("world should not have quit")
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		name           string
		pos, size      float64
		wantLo, wantHi int
		wantOK         bool
	}{
		{"inside", 32, 32, 2, 3, true},
		{"thin", 5, 1, 0, 0, true},
		{"clipped left", -40, 64, 0, 1, true},
		{"clipped right", 1270, 64, 79, 79, true},
		{"off left", -100, 20, 0, -1, false},
		{"off right", 1300, 10, 81, 79, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := span(tt.pos, tt.size, 1.0/16, 80)
			if ok != tt.wantOK || (ok && (lo != tt.wantLo || hi != tt.wantHi)) {
				t.Errorf("span = %d, %d, %v; want %d, %d, %v", lo, hi, ok, tt.wantLo, tt.wantHi, tt.wantOK)
			}
		})
	}
}
