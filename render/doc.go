// Package render is a small retained-mode scene graph on top of Ebitengine.
//
// Every visual element is a [Node]: containers group children, sprites draw
// an image or a solid rectangle, and particle emitters simulate bursts on the
// CPU. Children inherit their parent's transform and alpha. [Scene.Update]
// runs per-node callbacks, particles and scene-owned tweens; [Scene.Draw]
// walks the tree, sorts the emitted commands by layer and tree order and
// submits them with DrawImage.
//
//	scene := render.NewScene()
//	ship := render.NewSprite("ship", img)
//	ship.SetPosition(100, 600)
//	scene.Root().AddChild(ship)
//
//	scene.AddTween(render.TweenAlpha(ship, 0, 0.5, ease.Linear))
//
// Text uses the ebitenutil debug font via [NewLabel]; [NewFPSWidget] shows
// frame rates. [Scene.Screenshot] captures the next drawn frame to PNG.
package render
