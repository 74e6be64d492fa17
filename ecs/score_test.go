package ecs

import (
	"testing"

	"github.com/phanxgames/invaders"

	"github.com/yohamta/donburi"
)

func emitAll(sink invaders.EventSink, types ...invaders.EventType) {
	for _, typ := range types {
		sink.EmitEvent(invaders.Event{Type: typ})
	}
}

func TestScoreboardTally(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	board := NewScoreboard(world)

	emitAll(sink,
		invaders.EventFire, invaders.EventFire, invaders.EventFire,
		invaders.EventEnemyKilled, invaders.EventEnemyKilled,
		invaders.EventShift,
	)
	if got := board.Score(); got.Shots != 0 {
		t.Fatalf("score before Process = %+v, want empty", got)
	}
	board.Process()

	got := board.Score()
	want := Score{Points: 20, Kills: 2, Shots: 3, Shifts: 1}
	if got != want {
		t.Errorf("Score = %+v, want %+v", got, want)
	}
	if acc := got.Accuracy(); acc < 0.66 || acc > 0.67 {
		t.Errorf("Accuracy = %v, want ~0.667", acc)
	}
}

func TestScoreboardResultSticks(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	board := NewScoreboard(world)

	emitAll(sink, invaders.EventLose, invaders.EventWin)
	board.Process()
	if r := board.Score().Result; r != ResultLost {
		t.Errorf("Result = %v, want lost", r)
	}
}

func TestScoreboardReset(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	board := NewScoreboard(world)

	emitAll(sink, invaders.EventEnemyKilled, invaders.EventWin)
	board.Process()
	emitAll(sink, invaders.EventEnemyKilled)
	board.Reset()

	if got := board.Score(); got != (Score{}) {
		t.Errorf("Score after Reset = %+v, want zero", got)
	}
	board.Process()
	if got := board.Score(); got.Kills != 0 {
		t.Errorf("queued kill leaked into the new round: %+v", got)
	}
}

func TestScoreboardClose(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	board := NewScoreboard(world)
	board.Close()

	emitAll(sink, invaders.EventEnemyKilled)
	GameEventType.ProcessEvents(world)
	if got := board.Score(); got != (Score{}) {
		t.Errorf("closed board Score = %+v, want zero", got)
	}
	if TotalPoints(world) != 0 {
		t.Errorf("TotalPoints = %d, want 0 after Close", TotalPoints(world))
	}
}

func TestTotalPoints(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	NewScoreboard(world)

	emitAll(sink, invaders.EventEnemyKilled, invaders.EventEnemyKilled, invaders.EventEnemyKilled)
	GameEventType.ProcessEvents(world)
	if got := TotalPoints(world); got != 30 {
		t.Errorf("TotalPoints = %d, want 30", got)
	}
}

func TestResultString(t *testing.T) {
	for r, want := range map[Result]string{ResultPlaying: "playing", ResultWon: "won", ResultLost: "lost"} {
		if r.String() != want {
			t.Errorf("%d.String() = %q, want %q", r, r.String(), want)
		}
	}
}

func TestScoreboardEndToEnd(t *testing.T) {
	cfg := invaders.DefaultConfig()
	cfg.EnemyCount = 1
	cfg.EnemySpeed = 1
	sim, err := invaders.NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	world := donburi.NewWorld()
	sim.SetEventSink(NewDonburiSink(world))
	board := NewScoreboard(world)

	// The lone enemy crawls near x=25; step the player under it and fire.
	var in invaders.Input
	in.Held = invaders.Keys(invaders.KeyRight)
	sim.Advance(0.05, in)
	in.Reset()
	in.PressKey(invaders.KeySpace)
	for i := 0; i < 120 && !sim.Won(); i++ {
		sim.Advance(1.0/60, in)
		in.Reset()
	}
	board.Process()

	got := board.Score()
	if !sim.Won() || got.Result != ResultWon || got.Points != PointsPerKill {
		t.Errorf("won=%v score=%+v", sim.Won(), got)
	}
}
