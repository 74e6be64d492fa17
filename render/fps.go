package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Glyph cell of the ebitenutil debug font.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// NewFPSWidget creates a top-layer node showing FPS and TPS, refreshed
// about twice a second.
func NewFPSWidget() *Node {
	img := ebiten.NewImage(100, 32)
	node := NewSprite("fps_widget", img)
	node.Layer = 255

	var since float64
	node.OnUpdate = func(dt float64) {
		since += dt
		if since < 0.5 {
			return
		}
		since = 0
		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}

// Label is a text sprite rendered with the debug font into its own image.
// Scale the node for larger text.
type Label struct {
	Node *Node
	text string
}

// NewLabel creates a label node showing text.
func NewLabel(name, text string) *Label {
	l := &Label{Node: NewSprite(name, nil)}
	l.SetText(text)
	return l
}

func (l *Label) Text() string {
	return l.text
}

// SetText re-renders the label. The image grows to fit and is reused when
// the new text fits the old size.
func (l *Label) SetText(text string) {
	if text == l.text && l.Node.Image != nil {
		return
	}
	l.text = text
	w, h := labelSize(text)

	img := l.Node.Image
	if img == nil || img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		if img != nil {
			img.Deallocate()
		}
		img = ebiten.NewImage(w, h)
		l.Node.Image = img
		l.Node.Width = float64(w)
		l.Node.Height = float64(h)
	} else {
		img.Clear()
	}
	ebitenutil.DebugPrint(img, text)
}

// labelSize returns the pixel size of text in the debug font. Empty text
// still gets a one-glyph image.
func labelSize(text string) (int, int) {
	lines := strings.Split(text, "\n")
	cols := 1
	for _, line := range lines {
		cols = max(cols, len(line))
	}
	return cols * debugGlyphW, len(lines) * debugGlyphH
}
