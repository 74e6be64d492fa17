package render

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

const defaultCommandCap = 256

// Scene owns the node tree, scene-driven tweens and the render buffers.
type Scene struct {
	root *Node

	// ClearColor fills the target before drawing when its alpha is non-zero.
	ClearColor Color

	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string

	log   zerolog.Logger
	debug bool

	tweens      []*TweenGroup
	addedTweens []*TweenGroup

	commands []RenderCommand
	sortBuf  []RenderCommand

	screenshotQueue []string
	lastScreenshots []string
}

// NewScene creates a scene with an empty root container.
func NewScene() *Scene {
	return &Scene{
		root:          NewContainer("root"),
		ScreenshotDir: "screenshots",
		log:           zerolog.Nop(),
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
	}
}

func (s *Scene) Root() *Node {
	return s.root
}

// SetLogger sets the logger used for debug stats and screenshot errors.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.log = l.With().Str("component", "render").Logger()
}

// SetDebugMode toggles disposed-node panics, child count warnings and
// per-frame stats logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the last SetDebugMode call so node operations, which
// have no Scene pointer, can check it.
var globalDebug bool

// AddTween hands g to the scene, which advances it every Update until done.
func (s *Scene) AddTween(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	s.addedTweens = append(s.addedTweens, g)
}

// TweenCount reports scene-owned tweens still running, including ones added
// since the last Update.
func (s *Scene) TweenCount() int {
	return len(s.tweens) + len(s.addedTweens)
}

// Update runs node callbacks, advances particles and tweens, then refreshes
// world transforms so reads after Update see this frame's positions.
func (s *Scene) Update(dt float64) {
	updateNodes(s.root, dt)
	s.updateTweens(float32(dt))
	updateWorldTransform(s.root, identityTransform, 1.0, false)
}

// Draw traverses the tree, sorts the commands and draws them to screen.
// Queued screenshots are captured afterwards.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA())
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, identityTransform, 1.0, false, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitCommands(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.batchCount = countBatches(s.commands)
		stats.drawCallCount = countDrawCalls(s.commands)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}
