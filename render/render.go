package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite   CommandType = iota // one DrawImage
	CommandParticle                    // one DrawImage per alive particle
)

// color32 is a compact RGBA color for render commands.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during traversal.
type RenderCommand struct {
	Type        CommandType
	Transform   [6]float32
	Color       color32
	BlendMode   BlendMode
	Layer       uint8
	GlobalOrder int
	treeOrder   int

	// image is nil for solid sprites, which draw WhitePixel.
	image   *ebiten.Image
	emitter *ParticleEmitter
}

func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// spriteTransform folds the solid-rectangle size into the world matrix so a
// 1x1 WhitePixel covers Width x Height.
func spriteTransform(n *Node) [6]float64 {
	if n.Image != nil {
		return n.worldTransform
	}
	return multiplyAffine(n.worldTransform, [6]float64{n.Width, 0, 0, n.Height, 0, 0})
}

// traverse walks the tree depth-first, refreshing world transforms and
// appending commands for visible sprites and live emitters.
func (s *Scene) traverse(n *Node, parent [6]float64, parentAlpha float64, parentRecomputed bool, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parent, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	tint := color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)}

	switch n.Type {
	case NodeTypeSprite:
		if n.Image != nil || (n.Width > 0 && n.Height > 0) {
			*treeOrder++
			s.commands = append(s.commands, RenderCommand{
				Type:        CommandSprite,
				Transform:   affine32(spriteTransform(n)),
				Color:       tint,
				BlendMode:   n.BlendMode,
				Layer:       n.Layer,
				GlobalOrder: n.GlobalOrder,
				treeOrder:   *treeOrder,
				image:       n.Image,
			})
		}
	case NodeTypeParticleEmitter:
		if n.Emitter != nil && n.Emitter.alive > 0 {
			*treeOrder++
			s.commands = append(s.commands, RenderCommand{
				Type:        CommandParticle,
				Transform:   affine32(n.worldTransform),
				Color:       tint,
				BlendMode:   n.BlendMode,
				Layer:       n.Layer,
				GlobalOrder: n.GlobalOrder,
				treeOrder:   *treeOrder,
				emitter:     n.Emitter,
			})
		}
	}

	if len(n.children) == 0 {
		return
	}
	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute, treeOrder)
	}
}

// rebuildSortedChildren rebuilds the ZIndex traversal order with a stable
// insertion sort; children are few and nearly sorted.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// commandLessOrEqual orders by Layer, GlobalOrder, then tree order. The <= on
// treeOrder keeps the sort stable.
func commandLessOrEqual(a, b *RenderCommand) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	if a.GlobalOrder != b.GlobalOrder {
		return a.GlobalOrder < b.GlobalOrder
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in place, bottom-up, using s.sortBuf as
// scratch. No allocations once sortBuf reaches its high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a, b := s.commands, s.sortBuf
	swapped := false
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}
	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges the sorted runs [lo, mid) and [mid, hi) of src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:hi], src[i:mid])
	copy(dst[k:hi], src[j:hi])
}
