package ecs

import (
	"github.com/phanxgames/invaders"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// PointsPerKill is awarded for each destroyed enemy.
const PointsPerKill = 10

// Result is the outcome of a round.
type Result uint8

const (
	ResultPlaying Result = iota
	ResultWon
	ResultLost
)

func (r Result) String() string {
	switch r {
	case ResultWon:
		return "won"
	case ResultLost:
		return "lost"
	default:
		return "playing"
	}
}

// Score is the per-round tally.
type Score struct {
	Points int
	Kills  int
	Shots  int
	Shifts int
	Result Result
}

// Accuracy is kills per shot, 0 before the first shot.
func (s Score) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Kills) / float64(s.Shots)
}

// ScoreComponent stores a Score on the scoreboard entity.
var ScoreComponent = donburi.NewComponentType[Score]()

// scoreQuery matches every entity carrying a Score.
var scoreQuery = donburi.NewQuery(filter.Contains(ScoreComponent))

// Scoreboard tallies GameEventType events into a Score entity.
type Scoreboard struct {
	world  donburi.World
	entity donburi.Entity
}

// NewScoreboard creates the Score entity and subscribes to GameEventType.
func NewScoreboard(world donburi.World) *Scoreboard {
	b := &Scoreboard{
		world:  world,
		entity: world.Create(ScoreComponent),
	}
	GameEventType.Subscribe(world, b.onEvent)
	return b
}

func (b *Scoreboard) onEvent(w donburi.World, e invaders.Event) {
	if !w.Valid(b.entity) {
		return
	}
	s := ScoreComponent.Get(w.Entry(b.entity))
	switch e.Type {
	case invaders.EventFire:
		s.Shots++
	case invaders.EventEnemyKilled:
		s.Kills++
		s.Points += PointsPerKill
	case invaders.EventShift:
		s.Shifts++
	case invaders.EventWin:
		if s.Result == ResultPlaying {
			s.Result = ResultWon
		}
	case invaders.EventLose:
		if s.Result == ResultPlaying {
			s.Result = ResultLost
		}
	}
}

// Process delivers queued events to every subscriber, the scoreboard
// included.
func (b *Scoreboard) Process() {
	GameEventType.ProcessEvents(b.world)
}

// Score returns the current tally.
func (b *Scoreboard) Score() Score {
	if !b.world.Valid(b.entity) {
		return Score{}
	}
	return *ScoreComponent.Get(b.world.Entry(b.entity))
}

// Reset clears the tally for a new round. Queued events are flushed first
// so they cannot count toward the new round.
func (b *Scoreboard) Reset() {
	GameEventType.ProcessEvents(b.world)
	if b.world.Valid(b.entity) {
		ScoreComponent.SetValue(b.world.Entry(b.entity), Score{})
	}
}

// Close unsubscribes the scoreboard and removes its entity.
func (b *Scoreboard) Close() {
	GameEventType.Unsubscribe(b.world, b.onEvent)
	if b.world.Valid(b.entity) {
		b.world.Remove(b.entity)
	}
}

// TotalPoints sums Points over every Score entity in world.
func TotalPoints(world donburi.World) int {
	total := 0
	scoreQuery.Each(world, func(e *donburi.Entry) {
		total += ScoreComponent.Get(e).Points
	})
	return total
}
