// Package ecs bridges simulation events into a [Donburi] world.
//
// [NewDonburiSink] implements invaders.EventSink and publishes every event
// to [GameEventType]. [NewScoreboard] keeps a [Score] component up to date
// from those events:
//
//	world := donburi.NewWorld()
//	sim.SetEventSink(ecs.NewDonburiSink(world))
//	board := ecs.NewScoreboard(world)
//
//	// once per tick, after sim.Advance:
//	board.Process()
//	fmt.Println(board.Score().Points)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
