package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// batchKey groups commands a batching backend could submit in one call.
type batchKey struct {
	blend BlendMode
	image *ebiten.Image
}

func commandBatchKey(cmd *RenderCommand) batchKey {
	img := cmd.image
	if img == nil {
		img = WhitePixel
	}
	return batchKey{blend: cmd.BlendMode, image: img}
}

// submitCommands draws the sorted command list onto target.
func (s *Scene) submitCommands(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandSprite:
			submitSprite(target, cmd, &op)
		case CommandParticle:
			submitParticles(target, cmd, &op)
		}
	}
}

func submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	img := cmd.image
	if img == nil {
		img = WhitePixel
	}
	op.GeoM = commandGeoM(cmd)
	op.ColorScale.Reset()
	a := cmd.Color.A
	op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)
	op.Blend = cmd.BlendMode.EbitenBlend()
	target.DrawImage(img, op)
}

// submitParticles draws each alive particle as a square of WhitePixel,
// centered on the particle and tinted by its interpolated color and alpha.
func submitParticles(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	e := cmd.emitter
	size := e.config.Size
	if size <= 0 {
		size = 1
	}
	base := commandGeoM(cmd)
	op.Blend = cmd.BlendMode.EbitenBlend()

	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		side := size * float64(p.scale)
		op.GeoM.Reset()
		op.GeoM.Scale(side, side)
		op.GeoM.Translate(p.x-side/2, p.y-side/2)
		op.GeoM.Concat(base)

		a := p.alpha * cmd.Color.A
		op.ColorScale.Reset()
		op.ColorScale.Scale(p.colorR*cmd.Color.R*a, p.colorG*cmd.Color.G*a, p.colorB*cmd.Color.B*a, a)
		target.DrawImage(WhitePixel, op)
	}
}

// commandGeoM converts the command's affine matrix to an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, float64(cmd.Transform[0]))
	m.SetElement(1, 0, float64(cmd.Transform[1]))
	m.SetElement(0, 1, float64(cmd.Transform[2]))
	m.SetElement(1, 1, float64(cmd.Transform[3]))
	m.SetElement(0, 2, float64(cmd.Transform[4]))
	m.SetElement(1, 2, float64(cmd.Transform[5]))
	return m
}
