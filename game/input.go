package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/invaders"
)

// keyMap lists the ebiten keys the simulation understands.
var keyMap = map[ebiten.Key]invaders.Key{
	ebiten.KeyArrowLeft:  invaders.KeyLeft,
	ebiten.KeyArrowRight: invaders.KeyRight,
	ebiten.KeyA:          invaders.KeyA,
	ebiten.KeyD:          invaders.KeyD,
	ebiten.KeySpace:      invaders.KeySpace,
	ebiten.KeyEscape:     invaders.KeyEscape,
	ebiten.KeyR:          invaders.KeyR,
}

// heldKeys are polled every tick for the held set.
var heldKeys = [...]ebiten.Key{
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
	ebiten.KeyA,
	ebiten.KeyD,
	ebiten.KeySpace,
}

func keyFromEbiten(k ebiten.Key) (invaders.Key, bool) {
	gk, ok := keyMap[k]
	return gk, ok
}

// buildInput fills in from one tick of keyboard state. justPressed holds the
// keys pressed since the last tick in ebiten's order; pressed reports the
// current state of a key. Escape and a window close request both become a
// close event.
func buildInput(in *invaders.Input, justPressed []ebiten.Key, pressed func(ebiten.Key) bool, closing bool) {
	in.Reset()
	for _, k := range justPressed {
		gk, ok := keyFromEbiten(k)
		if !ok {
			continue
		}
		if gk == invaders.KeyEscape {
			in.Close()
			continue
		}
		in.PressKey(gk)
	}
	if closing {
		in.Close()
	}
	for _, k := range heldKeys {
		if pressed(k) {
			in.Held = in.Held.With(keyMap[k])
		}
	}
}

// pressedIn reports whether k is among keys.
func pressedIn(keys []ebiten.Key, k ebiten.Key) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}
