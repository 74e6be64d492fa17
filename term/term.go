// Package term runs the game in a terminal through tcell. World
// coordinates are scaled onto the cell grid; the bottom row is a status
// line.
package term

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/invaders"
	"github.com/rs/zerolog"
)

// DefaultHeldWindow is how long an arrow key counts as held after its last
// key event. Terminals only report key repeats, never releases.
const DefaultHeldWindow = 150 * time.Millisecond

const (
	glyphEnemy  = 'W'
	glyphPlayer = 'A'
	glyphBullet = '|'
)

var (
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBullet = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// Options configures a Frontend.
type Options struct {
	// Tick is the fixed simulation step. Defaults to 1/60 s.
	Tick time.Duration
	// HeldWindow defaults to DefaultHeldWindow.
	HeldWindow time.Duration
	Logger     zerolog.Logger
	// Status, if set, supplies extra text for the status line.
	Status func() string
	// OnReset runs after R restarts a finished round.
	OnReset func()
}

// heldKeys are the keys that are inferred from repeats.
var heldKeys = [...]invaders.Key{invaders.KeyLeft, invaders.KeyRight, invaders.KeyA, invaders.KeyD}

// Frontend drives a World from a tcell screen.
type Frontend struct {
	screen     tcell.Screen
	world      *invaders.World
	log        zerolog.Logger
	tick       time.Duration
	heldWindow time.Duration
	status     func() string
	onReset    func()

	lastSeen [invaders.KeyR + 1]time.Time
	pending  []invaders.InputEvent
	in       invaders.Input
}

// New creates a Frontend. The caller owns the screen and must have
// initialized it.
func New(screen tcell.Screen, w *invaders.World, opts Options) *Frontend {
	if opts.Tick <= 0 {
		opts.Tick = time.Second / 60
	}
	if opts.HeldWindow <= 0 {
		opts.HeldWindow = DefaultHeldWindow
	}
	return &Frontend{
		screen:     screen,
		world:      w,
		log:        opts.Logger.With().Str("component", "term").Logger(),
		tick:       opts.Tick,
		heldWindow: opts.HeldWindow,
		status:     opts.Status,
		onReset:    opts.OnReset,
	}
}

// keyFor maps a tcell key event to a game key.
func keyFor(ev *tcell.EventKey) (invaders.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return invaders.KeyLeft, true
	case tcell.KeyRight:
		return invaders.KeyRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return invaders.KeyEscape, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return invaders.KeySpace, true
		case 'a', 'A':
			return invaders.KeyA, true
		case 'd', 'D':
			return invaders.KeyD, true
		case 'r', 'R':
			return invaders.KeyR, true
		}
	}
	return 0, false
}

// HandleEvent records a tcell event received at now.
func (f *Frontend) HandleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := keyFor(ev)
		if !ok {
			return
		}
		switch k {
		case invaders.KeyEscape:
			f.pending = append(f.pending, invaders.InputEvent{Kind: invaders.InputClose})
		case invaders.KeyLeft, invaders.KeyRight, invaders.KeyA, invaders.KeyD:
			f.lastSeen[k] = now
		default:
			f.pending = append(f.pending, invaders.InputEvent{Kind: invaders.InputKeyPress, Key: k})
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		f.log.Debug().Int("cols", w).Int("rows", h).Msg("resize")
		f.screen.Sync()
	}
}

// held returns the keys seen within the held window before now.
func (f *Frontend) held(now time.Time) invaders.KeySet {
	var s invaders.KeySet
	for _, k := range heldKeys {
		seen := f.lastSeen[k]
		if !seen.IsZero() && now.Sub(seen) < f.heldWindow {
			s = s.With(k)
		}
	}
	return s
}

// Step advances the world one tick with the input gathered so far and
// redraws.
func (f *Frontend) Step(now time.Time) {
	f.in.Reset()
	f.in.Events = append(f.in.Events, f.pending...)
	f.in.Held = f.held(now)
	f.pending = f.pending[:0]

	f.world.Advance(f.tick.Seconds(), f.in)

	if f.world.Over() {
		for _, ev := range f.in.Events {
			if ev.Kind == invaders.InputKeyPress && ev.Key == invaders.KeyR {
				f.world.Reset()
				f.log.Info().Msg("round restarted")
				if f.onReset != nil {
					f.onReset()
				}
				break
			}
		}
	}
	f.Draw()
}

// Run polls the screen and ticks the world until it quits or ctx ends.
func (f *Frontend) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go f.poll(ctx, events)

	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()

	f.Draw()
	for !f.world.Quit() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			f.HandleEvent(ev, time.Now())
		case now := <-ticker.C:
			f.Step(now)
		}
	}
	return nil
}

// poll forwards screen events until the screen is finalized or ctx ends.
func (f *Frontend) poll(ctx context.Context, out chan<- tcell.Event) {
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// span maps the world interval [pos, pos+size) onto cells [lo, hi] for a
// grid of n cells. ok is false when nothing is visible.
func span(pos, size, scale float64, n int) (lo, hi int, ok bool) {
	lo = int(math.Floor(pos * scale))
	hi = int(math.Ceil((pos+size)*scale)) - 1
	if hi < lo {
		hi = lo
	}
	lo = max(lo, 0)
	hi = min(hi, n-1)
	return lo, hi, lo <= hi
}

func (f *Frontend) fill(r invaders.Rect, sx, sy float64, cols, rows int, glyph rune, style tcell.Style) {
	x0, x1, ok := span(r.X, r.Width, sx, cols)
	if !ok {
		return
	}
	y0, y1, ok := span(r.Y, r.Height, sy, rows)
	if !ok {
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			f.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

// Draw renders the current world state.
func (f *Frontend) Draw() {
	f.screen.Clear()
	cols, rows := f.screen.Size()
	field := rows - 1
	if cols <= 0 || field <= 0 {
		f.screen.Show()
		return
	}
	cfg := f.world.Config()
	sx := float64(cols) / cfg.ScreenWidth
	sy := float64(field) / cfg.ScreenHeight

	for _, e := range f.world.Enemies() {
		f.fill(e.Bounds(), sx, sy, cols, field, glyphEnemy, styleEnemy)
	}
	for _, b := range f.world.Bullets() {
		f.fill(b.Bounds(), sx, sy, cols, field, glyphBullet, styleBullet)
	}
	f.fill(f.world.Player().Bounds(), sx, sy, cols, field, glyphPlayer, stylePlayer)

	f.drawStatus(cols, rows-1)
	f.screen.Show()
}

func (f *Frontend) drawStatus(cols, row int) {
	text := ""
	switch {
	case f.world.Won():
		text = "You win! R to restart, Esc to quit"
	case f.world.Lost():
		text = "You lose! R to restart, Esc to quit"
	default:
		text = "arrows move, space fires, Esc quits"
	}
	if f.status != nil {
		if s := f.status(); s != "" {
			text = s + "  " + text
		}
	}
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		f.screen.SetContent(x, row, r, nil, styleStatus)
		x++
	}
	for ; x < cols; x++ {
		f.screen.SetContent(x, row, ' ', nil, styleStatus)
	}
}
