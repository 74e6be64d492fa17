package invaders

// Fire creates a bullet centered above the player. It is a no-op returning
// false while the cooldown is running or after the round has been lost.
func (w *World) Fire() bool {
	if w.lost || !w.cooldown.Ready() {
		return false
	}
	w.cooldown.Restart()

	c := &w.cfg
	w.nextID++
	b := Bullet{
		ID:     w.nextID,
		X:      w.player.Center() - c.BulletWidth/2,
		Y:      c.ScreenHeight - w.player.Height - c.BulletHeight,
		Width:  c.BulletWidth,
		Height: c.BulletHeight,
	}
	w.bullets = append(w.bullets, b)
	w.log.Trace().Uint32("bullet", b.ID).Float64("x", b.X).Msg("fire")
	w.emit(Event{Type: EventFire, BulletID: b.ID, X: b.X, Y: b.Y})
	return true
}

// Advance runs one simulation tick of dt seconds against the given input.
// Negative dt is treated as zero.
func (w *World) Advance(dt float64, in Input) {
	if dt < 0 {
		dt = 0
	}
	w.tick++
	w.cooldown.Advance(dt)

	w.processEvents(in.Events)
	w.movePlayer(dt, in.Held)
	w.moveBullets(dt)
	w.dropOffscreenBullets()
	w.resolveCollisions()

	if w.lost && w.cfg.FreezeOnLoss {
		return
	}
	if w.moveEnemies(dt) {
		w.shiftGrid()
	}
}

func (w *World) processEvents(events []InputEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case InputClose:
			if !w.quit {
				w.quit = true
				w.emit(Event{Type: EventQuit})
			}
		case InputKeyPress:
			if ev.Key == KeySpace {
				w.Fire()
			}
		}
	}
}

// movePlayer honors exactly one direction per tick. Left wins a tie.
func (w *World) movePlayer(dt float64, held KeySet) {
	step := w.cfg.PlayerSpeed * dt
	x := w.player.X
	switch {
	case held.Has(KeyLeft) || held.Has(KeyA):
		x -= step
	case held.Has(KeyRight) || held.Has(KeyD):
		x += step
	default:
		return
	}
	w.player.X = clamp(x, 0, w.cfg.ScreenWidth-w.player.Width)
}

func (w *World) moveBullets(dt float64) {
	dy := w.cfg.BulletSpeed * dt
	for i := range w.bullets {
		w.bullets[i].Y -= dy
	}
}

// dropOffscreenBullets removes bullets that are entirely above the screen.
func (w *World) dropOffscreenBullets() {
	kept := w.bullets[:0]
	for _, b := range w.bullets {
		if b.Y < -b.Height {
			continue
		}
		kept = append(kept, b)
	}
	clear(w.bullets[len(kept):])
	w.bullets = kept
}

// resolveCollisions pairs every enemy with the first intersecting bullet not
// already consumed, then compacts both collections. Each bullet destroys at
// most one enemy.
func (w *World) resolveCollisions() {
	if len(w.enemies) == 0 || len(w.bullets) == 0 {
		return
	}
	w.enemyHit = resetMarks(w.enemyHit, len(w.enemies))
	w.bulletHit = resetMarks(w.bulletHit, len(w.bullets))

	hits := 0
	for i := range w.enemies {
		eb := w.enemies[i].Bounds()
		for j := range w.bullets {
			if w.bulletHit[j] || !eb.Intersects(w.bullets[j].Bounds()) {
				continue
			}
			w.enemyHit[i] = true
			w.bulletHit[j] = true
			hits++
			e, b := w.enemies[i], w.bullets[j]
			w.emit(Event{
				Type:     EventEnemyKilled,
				EnemyID:  e.ID,
				BulletID: b.ID,
				X:        e.X + e.Width/2,
				Y:        e.Y + e.Height/2,
			})
			break
		}
	}
	if hits == 0 {
		return
	}

	enemies := w.enemies[:0]
	for i, e := range w.enemies {
		if !w.enemyHit[i] {
			enemies = append(enemies, e)
		}
	}
	clear(w.enemies[len(enemies):])
	w.enemies = enemies

	bullets := w.bullets[:0]
	for j, b := range w.bullets {
		if !w.bulletHit[j] {
			bullets = append(bullets, b)
		}
	}
	clear(w.bullets[len(bullets):])
	w.bullets = bullets

	if len(w.enemies) == 0 && !w.won {
		w.won = true
		w.log.Info().Uint64("tick", w.tick).Msg("all enemies destroyed")
		w.emit(Event{Type: EventWin})
	}
}

// moveEnemies advances the grid horizontally and reports whether any enemy
// touched the margin on the side it is heading toward.
func (w *World) moveEnemies(dt float64) bool {
	c := &w.cfg
	dx := float64(w.direction) * c.EnemySpeed * dt
	shift := false
	for i := range w.enemies {
		e := &w.enemies[i]
		e.X += dx
		if w.direction == DirLeft && e.X <= c.Margin {
			shift = true
		}
		if w.direction == DirRight && e.X+e.Width > c.ScreenWidth-c.Margin {
			shift = true
		}
	}
	return shift
}

// shiftGrid flips the heading and drops every enemy by its own height.
func (w *World) shiftGrid() {
	w.direction = -w.direction
	crossed := false
	for i := range w.enemies {
		e := &w.enemies[i]
		e.Y += e.Height
		if e.Y+e.Height > w.cfg.ScreenHeight {
			crossed = true
		}
	}
	w.log.Debug().Int("direction", int(w.direction)).Int("enemies", len(w.enemies)).Msg("grid shift")
	w.emit(Event{Type: EventShift})

	if crossed && !w.lost {
		w.lost = true
		w.log.Info().Uint64("tick", w.tick).Msg("enemies reached the bottom")
		w.emit(Event{Type: EventLose})
	}
}

func resetMarks(marks []bool, n int) []bool {
	if cap(marks) < n {
		return make([]bool, n)
	}
	marks = marks[:n]
	clear(marks)
	return marks
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
