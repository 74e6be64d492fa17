package ecs

import (
	"github.com/phanxgames/invaders"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameEventType is the Donburi event type carrying simulation events.
// Published events queue until ProcessEvents.
var GameEventType = events.NewEventType[invaders.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes to GameEventType.
func NewDonburiSink(world donburi.World) invaders.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event invaders.Event) {
	GameEventType.Publish(s.world, event)
}
