package invaders

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Player is the player's cannon. Y is fixed at the bottom of the screen.
type Player struct {
	X, Y          float64
	Width, Height float64
}

// Bounds returns the player's bounding box.
func (p Player) Bounds() Rect {
	return Rect{p.X, p.Y, p.Width, p.Height}
}

// Center returns the horizontal center of the player.
func (p Player) Center() float64 {
	return p.X + p.Width/2
}

// Bullet is a projectile travelling straight up.
type Bullet struct {
	ID            uint32
	X, Y          float64
	Width, Height float64
}

// Bounds returns the bullet's bounding box.
func (b Bullet) Bounds() Rect {
	return Rect{b.X, b.Y, b.Width, b.Height}
}

// Enemy is one member of the marching grid. Row and Col record its initial
// grid slot and never change.
type Enemy struct {
	ID            uint32
	Row, Col      int
	X, Y          float64
	Width, Height float64
}

// Bounds returns the enemy's bounding box.
func (e Enemy) Bounds() Rect {
	return Rect{e.X, e.Y, e.Width, e.Height}
}

// World is the complete simulation state. It is owned by a single game loop
// and is not safe for concurrent use.
type World struct {
	cfg Config
	log zerolog.Logger

	player  Player
	bullets []Bullet
	enemies []Enemy

	direction Direction
	lost      bool
	won       bool
	quit      bool

	cooldown Cooldown
	tick     uint64
	nextID   uint32

	handlers handlerRegistry
	sink     EventSink

	// scratch buffers for the collision sweep, reused across ticks
	enemyHit  []bool
	bulletHit []bool
}

// NewWorld validates cfg and returns a world with a fresh enemy grid.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	w := &World{
		cfg: cfg,
		log: zerolog.Nop(),
	}
	w.Reset()
	return w, nil
}

// SetLogger sets the logger used for round events. The default discards.
func (w *World) SetLogger(l zerolog.Logger) {
	w.log = l
}

// Reset starts a new round: rebuilds the grid, clears bullets and flags and
// places the player at the left edge. Handlers and the event sink are kept.
func (w *World) Reset() {
	c := &w.cfg
	w.player = Player{
		X:      0,
		Y:      c.ScreenHeight - c.PlayerHeight,
		Width:  c.PlayerWidth,
		Height: c.PlayerHeight,
	}
	w.bullets = w.bullets[:0]
	if cap(w.enemies) < c.EnemyCount {
		w.enemies = make([]Enemy, 0, c.EnemyCount)
	}
	w.enemies = w.enemies[:0]
	for i := range c.EnemyCount {
		row, col := i/c.EnemyColumns, i%c.EnemyColumns
		w.nextID++
		w.enemies = append(w.enemies, Enemy{
			ID:     w.nextID,
			Row:    row,
			Col:    col,
			X:      float64(col)*(c.EnemyWidth+c.Padding) + c.Margin,
			Y:      float64(row)*(c.EnemyHeight+c.Padding) + c.Margin,
			Width:  c.EnemyWidth,
			Height: c.EnemyHeight,
		})
	}
	w.direction = DirRight
	w.lost = false
	w.won = false
	w.quit = false
	w.cooldown = NewCooldown(c.FireCooldown)
	w.tick = 0
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Player returns a copy of the player.
func (w *World) Player() Player { return w.player }

// Bullets returns the live bullets. The returned slice MUST NOT be mutated
// and is only valid until the next Advance.
func (w *World) Bullets() []Bullet { return w.bullets }

// Enemies returns the live enemies. The returned slice MUST NOT be mutated
// and is only valid until the next Advance.
func (w *World) Enemies() []Enemy { return w.enemies }

// Direction returns the shared heading of the grid.
func (w *World) Direction() Direction { return w.direction }

// Lost reports whether an enemy has crossed the bottom of the screen. Once
// true it stays true until Reset.
func (w *World) Lost() bool { return w.lost }

// Won reports whether every enemy has been destroyed.
func (w *World) Won() bool { return w.won }

// Over reports whether the round has ended either way.
func (w *World) Over() bool { return w.won || w.lost }

// Quit reports whether a close request has been processed.
func (w *World) Quit() bool { return w.quit }

// Tick returns the number of Advance calls since the last Reset.
func (w *World) Tick() uint64 { return w.tick }
