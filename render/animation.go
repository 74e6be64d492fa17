package render

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to four float64 fields of a Node together. Groups
// added with Scene.AddTween advance during Scene.Update; standalone groups
// are driven by calling Update. A group whose target is disposed finishes
// immediately without writing.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	// OnDone runs once, on the update that finishes the group.
	OnDone func()
}

// Update advances the group by dt seconds and writes the tweened values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.finish()
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if g.target != nil {
		g.target.MarkDirty()
	}
	if allDone {
		g.finish()
	}
}

func (g *TweenGroup) finish() {
	g.Done = true
	if g.OnDone != nil {
		fn := g.OnDone
		g.OnDone = nil
		fn()
	}
}

func newGroup(node *Node, duration float32, fn ease.TweenFunc, pairs ...*float64) *TweenGroup {
	g := &TweenGroup{target: node}
	return g.with(duration, fn, pairs...)
}

// with adds tweens from *field to the value after it, for each pair.
func (g *TweenGroup) with(duration float32, fn ease.TweenFunc, pairs ...*float64) *TweenGroup {
	for i := 0; i+1 < len(pairs) && g.count < len(g.tweens); i += 2 {
		field, to := pairs[i], pairs[i+1]
		g.tweens[g.count] = gween.New(float32(*field), float32(*to), duration, fn)
		g.fields[g.count] = field
		g.count++
	}
	return g
}

// TweenPosition animates node.X and node.Y to (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.X, &toX, &node.Y, &toY)
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.ScaleX, &toSX, &node.ScaleY, &toSY)
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn,
		&node.Color.R, &to.R, &node.Color.G, &to.G, &node.Color.B, &to.B, &node.Color.A, &to.A)
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.Alpha, &to)
}

// updateTweens advances scene-owned groups and drops finished ones. Groups
// added during the pass start on the next one.
func (s *Scene) updateTweens(dt float32) {
	s.tweens = append(s.tweens, s.addedTweens...)
	clear(s.addedTweens)
	s.addedTweens = s.addedTweens[:0]

	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}
