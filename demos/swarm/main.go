// swarm spawns 10,000 enemy sprites that rotate, scale, fade, and bounce
// around the screen simultaneously. A stress test for the render pipeline.
package main

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/invaders/assets"
	"github.com/phanxgames/invaders/render"
)

const (
	screenW = 1280
	screenH = 720
	count   = 10_000
)

type sprite struct {
	node       *render.Node
	dx, dy     float64
	rotSpeed   float64
	scaleSpeed float64
	scaleBase  float64
	scaleAmp   float64
	alphaSpeed float64
	phase      float64
}

type swarm struct {
	scene   *render.Scene
	sprites []sprite
	frame   float64
}

func main() {
	images, err := assets.Load()
	if err != nil {
		log.Fatalf("load assets: %v", err)
	}

	scene := render.NewScene()
	scene.ClearColor = render.Color{R: 0.06, G: 0.06, B: 0.09, A: 1}

	sprites := make([]sprite, count)
	root := scene.Root()

	for i := range sprites {
		sp := render.NewSprite("enemy", images.Enemy)

		sp.X = rand.Float64() * screenW
		sp.Y = rand.Float64() * screenH

		sp.PivotX = sp.Width / 2
		sp.PivotY = sp.Height / 2

		base := 1 + rand.Float64()*2
		sp.ScaleX = base
		sp.ScaleY = base

		sp.Color = render.Color{
			R: 0.5 + rand.Float64()*0.5,
			G: 0.5 + rand.Float64()*0.5,
			B: 0.5 + rand.Float64()*0.5,
			A: 1,
		}

		root.AddChild(sp)

		sprites[i] = sprite{
			node:       sp,
			dx:         (rand.Float64() - 0.5) * 4,
			dy:         (rand.Float64() - 0.5) * 4,
			rotSpeed:   (rand.Float64() - 0.5) * 0.08,
			scaleSpeed: 1 + rand.Float64()*2,
			scaleBase:  base,
			scaleAmp:   0.2 + rand.Float64()*0.4,
			alphaSpeed: 0.5 + rand.Float64()*2,
			phase:      rand.Float64() * math.Pi * 2,
		}
	}
	root.AddChild(render.NewFPSWidget())

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Invaders: 10k Swarm")
	if err := ebiten.RunGame(&swarm{scene: scene, sprites: sprites}); err != nil {
		log.Fatal(err)
	}
}

func (s *swarm) Update() error {
	s.frame++
	t := s.frame / 60.0

	if s.frame == 30 {
		s.scene.ScreenshotDir = "docs/demos/swarm"
		s.scene.Screenshot("thumbnail")
	}
	if s.frame == 32 {
		return ebiten.Termination
	}

	for i := range s.sprites {
		sp := &s.sprites[i]
		n := sp.node

		n.X += sp.dx
		n.Y += sp.dy

		if n.X < 0 || n.X > screenW {
			n.X = math.Max(0, math.Min(screenW, n.X))
			sp.dx = -sp.dx
		}
		if n.Y < 0 || n.Y > screenH {
			n.Y = math.Max(0, math.Min(screenH, n.Y))
			sp.dy = -sp.dy
		}

		n.Rotation += sp.rotSpeed

		sc := sp.scaleBase + sp.scaleAmp*math.Sin(t*sp.scaleSpeed+sp.phase)
		n.ScaleX = sc
		n.ScaleY = sc

		n.Alpha = 0.5 + 0.5*math.Sin(t*sp.alphaSpeed+sp.phase)

		n.MarkDirty()
	}
	s.scene.Update(1.0 / 60)
	return nil
}

func (s *swarm) Draw(screen *ebiten.Image) {
	s.scene.Draw(screen)
}

func (s *swarm) Layout(_, _ int) (int, int) {
	return screenW, screenH
}
