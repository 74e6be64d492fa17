// Package invaders is the simulation core of a small Space Invaders style
// shooter. It has no graphics dependency: front ends (see packages game and
// term) translate native input into an [Input], call [World.Advance] once per
// tick and draw the read-only snapshot returned by [World.Player],
// [World.Bullets] and [World.Enemies].
//
// # Quick start
//
//	world, err := invaders.NewWorld(invaders.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	world.On(invaders.EventWin, func(invaders.Event) { fmt.Println("You win!") })
//
//	var in invaders.Input
//	for !world.Quit() {
//		in.Reset()
//		// ... fill in.Events and in.Held from the keyboard ...
//		world.Advance(dt, in)
//	}
//
// # Tick order
//
// Each [World.Advance] processes queued events (close, fire), moves the
// player from the held keys, moves bullets and drops those fully above the
// screen, resolves bullet/enemy collisions, then marches the grid and shifts
// it down a row when it reaches a margin. A win is reported the tick the last
// enemy dies; a loss the first time a shifted enemy crosses the bottom edge.
//
// # Events
//
// Register handlers with [World.On] or attach an [EventSink] (package ecs
// provides a Donburi bridge). Handlers run synchronously inside Advance.
//
// # Scripts
//
// [LoadScript] parses a JSON input script for deterministic replays:
//
//	{"steps": [
//		{"action": "hold", "key": "right", "ticks": 30},
//		{"action": "press", "key": "space"},
//		{"action": "wait", "ticks": 60},
//		{"action": "close"}
//	]}
package invaders
