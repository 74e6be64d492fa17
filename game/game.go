// Package game is the windowed front end. It polls ebiten input into the
// simulation, mirrors the world into a render scene and plays sounds.
package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/invaders"
	"github.com/phanxgames/invaders/assets"
	"github.com/phanxgames/invaders/audio"
	"github.com/phanxgames/invaders/ecs"
	"github.com/phanxgames/invaders/render"
	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"
)

// Render layers, back to front.
const (
	layerField     = 0
	layerParticles = 10
	layerHUD       = 200
	layerBanner    = 210
)

var (
	colorBackground = render.Color{R: 0.02, G: 0.02, B: 0.06, A: 1}
	colorBullet     = render.Color{R: 1, G: 0.9, B: 0.3, A: 1}
)

const (
	explosionParticles = 24
	bannerScale        = 4.0
)

// Scorer is the score source shown in the HUD.
type Scorer interface {
	Process()
	Score() ecs.Score
	Reset()
}

// Options configures a Game. Zero values are usable.
type Options struct {
	// TPS is the fixed tick rate. Defaults to 60.
	TPS           int
	ShowFPS       bool
	Debug         bool
	ScreenshotDir string
	Logger        zerolog.Logger
	// Sound, if set, is attached to the world's events.
	Sound *audio.SoundManager
	// Score, if set, feeds the HUD and is reset with the round.
	Score Scorer
}

// Game implements ebiten.Game around a World.
type Game struct {
	world  *invaders.World
	images *assets.Images
	scene  *render.Scene
	log    zerolog.Logger
	sound  *audio.SoundManager
	score  Scorer
	dt     float64

	player      *render.Node
	enemies     map[uint32]*render.Node
	bullets     map[uint32]*render.Node
	freeBullets []*render.Node
	explosion   *render.Node
	hud         *render.Label
	banner      *render.Label

	handles []invaders.CallbackHandle
	in      invaders.Input
	keys    []ebiten.Key
}

// New builds the scene for w. Call Close to detach from the world.
func New(w *invaders.World, images *assets.Images, opts Options) *Game {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	g := &Game{
		world:   w,
		images:  images,
		scene:   render.NewScene(),
		log:     opts.Logger.With().Str("component", "game").Logger(),
		sound:   opts.Sound,
		score:   opts.Score,
		dt:      1 / float64(opts.TPS),
		enemies: make(map[uint32]*render.Node),
		bullets: make(map[uint32]*render.Node),
	}
	g.scene.ClearColor = colorBackground
	g.scene.SetLogger(opts.Logger)
	g.scene.SetDebugMode(opts.Debug)
	if opts.ScreenshotDir != "" {
		g.scene.ScreenshotDir = opts.ScreenshotDir
	}

	root := g.scene.Root()
	cfg := w.Config()

	g.player = render.NewSprite("player", images.Player)
	fitSprite(g.player, cfg.PlayerWidth, cfg.PlayerHeight)
	root.AddChild(g.player)

	g.explosion = render.NewParticleEmitter("explosions", explosionConfig())
	g.explosion.Layer = layerParticles
	root.AddChild(g.explosion)

	g.hud = render.NewLabel("hud", "")
	g.hud.Node.X, g.hud.Node.Y = 8, 8
	g.hud.Node.SetScale(2, 2)
	g.hud.Node.Layer = layerHUD
	root.AddChild(g.hud.Node)

	g.banner = render.NewLabel("banner", "")
	g.banner.Node.Layer = layerBanner
	g.banner.Node.Visible = false
	root.AddChild(g.banner.Node)

	if opts.ShowFPS {
		fps := render.NewFPSWidget()
		fps.X = cfg.ScreenWidth - 108
		fps.Y = 8
		root.AddChild(fps)
	}

	g.handles = append(g.handles,
		w.On(invaders.EventEnemyKilled, g.onEnemyKilled),
		w.On(invaders.EventWin, func(invaders.Event) { g.showBanner("You win!") }),
		w.On(invaders.EventLose, func(invaders.Event) { g.showBanner("You lose!") }),
	)
	if g.sound != nil {
		g.handles = append(g.handles, g.sound.Attach(w)...)
	}

	g.sync()
	return g
}

func explosionConfig() render.EmitterConfig {
	return render.EmitterConfig{
		MaxParticles: 512,
		Lifetime:     render.Range{Min: 0.3, Max: 0.7},
		Speed:        render.Range{Min: 60, Max: 240},
		Angle:        render.Range{Min: 0, Max: 2 * math.Pi},
		StartScale:   render.Range{Min: 1, Max: 1.6},
		EndScale:     render.Range{Min: 0.2, Max: 0.4},
		StartAlpha:   render.Range{Min: 0.9, Max: 1},
		EndAlpha:     render.Range{Min: 0, Max: 0},
		Gravity:      render.Vec2{Y: 120},
		StartColor:   render.Color{R: 1, G: 0.85, B: 0.3, A: 1},
		EndColor:     render.Color{R: 0.9, G: 0.15, B: 0.05, A: 1},
		Size:         4,
		BlendMode:    render.BlendAdd,
	}
}

// fitSprite scales n so its image covers w x h pixels.
func fitSprite(n *render.Node, w, h float64) {
	if n.Width > 0 && n.Height > 0 {
		n.SetScale(w/n.Width, h/n.Height)
	}
}

// Close detaches the game's event handlers from the world.
func (g *Game) Close() {
	for _, h := range g.handles {
		h.Remove()
	}
	g.handles = nil
}

// Scene exposes the render scene.
func (g *Game) Scene() *render.Scene { return g.scene }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	buildInput(&g.in, g.keys, ebiten.IsKeyPressed, ebiten.IsWindowBeingClosed())
	return g.step(g.keys)
}

// step advances the world with g.in, handles the front-end keys found in
// justPressed and refreshes the scene.
func (g *Game) step(justPressed []ebiten.Key) error {
	g.world.Advance(g.dt, g.in)

	if g.world.Over() && pressedIn(justPressed, ebiten.KeyR) {
		g.restart()
	}
	if pressedIn(justPressed, ebiten.KeyF12) {
		g.scene.Screenshot("invaders")
	}

	g.sync()
	g.scene.Update(g.dt)

	if g.world.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) restart() {
	g.world.Reset()
	if g.score != nil {
		g.score.Reset()
	}
	if g.sound != nil {
		g.sound.ResetMarch()
	}
	g.banner.Node.Visible = false
	g.log.Info().Msg("round restarted")
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout implements ebiten.Game with a fixed logical screen.
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.world.Config()
	return int(cfg.ScreenWidth), int(cfg.ScreenHeight)
}

func (g *Game) onEnemyKilled(e invaders.Event) {
	g.explosion.Emitter.BurstAt(e.X, e.Y, explosionParticles)
}

// showBanner pops text in at the center of the screen.
func (g *Game) showBanner(text string) {
	cfg := g.world.Config()
	b := g.banner.Node
	g.banner.SetText(text)
	b.Visible = true
	b.PivotX, b.PivotY = b.Width/2, b.Height/2
	b.X, b.Y = cfg.ScreenWidth/2, cfg.ScreenHeight/2
	b.SetScale(bannerScale/2, bannerScale/2)
	b.SetAlpha(0)
	g.scene.AddTween(render.TweenScale(b, bannerScale, bannerScale, 0.6, ease.OutBack))
	g.scene.AddTween(render.TweenAlpha(b, 1, 0.4, ease.Linear))
}

// sync mirrors the world snapshot into scene nodes.
func (g *Game) sync() {
	p := g.world.Player()
	g.player.SetPosition(p.X, p.Y)

	seen := make(map[uint32]struct{}, len(g.enemies))
	cfg := g.world.Config()
	for _, e := range g.world.Enemies() {
		seen[e.ID] = struct{}{}
		n, ok := g.enemies[e.ID]
		if !ok {
			n = render.NewSprite("enemy", g.images.Enemy)
			fitSprite(n, cfg.EnemyWidth, cfg.EnemyHeight)
			g.scene.Root().AddChild(n)
			g.enemies[e.ID] = n
		}
		n.SetPosition(e.X, e.Y)
	}
	for id, n := range g.enemies {
		if _, ok := seen[id]; !ok {
			n.Dispose()
			delete(g.enemies, id)
		}
	}

	clear(seen)
	for _, b := range g.world.Bullets() {
		seen[b.ID] = struct{}{}
		n, ok := g.bullets[b.ID]
		if !ok {
			n = g.bulletNode(b.Width, b.Height)
			g.bullets[b.ID] = n
		}
		n.SetPosition(b.X, b.Y)
	}
	for id, n := range g.bullets {
		if _, ok := seen[id]; !ok {
			n.RemoveFromParent()
			g.freeBullets = append(g.freeBullets, n)
			delete(g.bullets, id)
		}
	}

	if g.score != nil {
		g.score.Process()
		s := g.score.Score()
		g.hud.SetText(fmt.Sprintf("SCORE %d  KILLS %d  ACC %.0f%%", s.Points, s.Kills, s.Accuracy()*100))
	}
}

// bulletNode takes a node from the free list or makes a new one.
func (g *Game) bulletNode(w, h float64) *render.Node {
	var n *render.Node
	if k := len(g.freeBullets); k > 0 {
		n = g.freeBullets[k-1]
		g.freeBullets = g.freeBullets[:k-1]
		n.Width, n.Height = w, h
	} else {
		n = render.NewRect("bullet", w, h, colorBullet)
	}
	g.scene.Root().AddChild(n)
	return n
}

// Run opens the window and blocks until the game quits.
func Run(g *Game, title string, tps int) error {
	cfg := g.world.Config()
	ebiten.SetWindowSize(int(cfg.ScreenWidth), int(cfg.ScreenHeight))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)
	if tps > 0 {
		ebiten.SetTPS(tps)
	}
	if icon, err := assets.Icon(); err == nil {
		ebiten.SetWindowIcon(icon)
	} else {
		g.log.Warn().Err(err).Msg("window icon unavailable")
	}

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
