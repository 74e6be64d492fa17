package render

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPosition(t *testing.T) {
	n := NewContainer("banner")
	g := TweenPosition(n, 100, 50, 1, ease.Linear)
	g.Update(0.5)
	if math.Abs(n.X-50) > 0.01 || math.Abs(n.Y-25) > 0.01 {
		t.Errorf("mid = (%v,%v), want (50,25)", n.X, n.Y)
	}
	if !n.transformDirty {
		t.Error("tween should mark the node dirty")
	}
	g.Update(0.6)
	if !g.Done || n.X != 100 || n.Y != 50 {
		t.Errorf("end = (%v,%v) done=%v", n.X, n.Y, g.Done)
	}
}

func TestTweenAlphaAndColor(t *testing.T) {
	n := NewRect("flash", 1, 1, ColorWhite)
	a := TweenAlpha(n, 0, 1, ease.Linear)
	c := TweenColor(n, Color{1, 0, 0, 1}, 1, ease.Linear)
	a.Update(1)
	c.Update(1)
	if n.Alpha != 0 {
		t.Errorf("Alpha = %v, want 0", n.Alpha)
	}
	if n.Color.G != 0 || n.Color.R != 1 {
		t.Errorf("Color = %+v, want red", n.Color)
	}
}

func TestTweenOnDoneOnce(t *testing.T) {
	n := NewContainer("n")
	g := TweenScale(n, 2, 2, 0.1, ease.Linear)
	calls := 0
	g.OnDone = func() { calls++ }
	g.Update(0.2)
	g.Update(0.2)
	if calls != 1 {
		t.Errorf("OnDone calls = %d, want 1", calls)
	}
	if n.ScaleX != 2 {
		t.Errorf("ScaleX = %v, want 2", n.ScaleX)
	}
}

func TestTweenStopsOnDisposedTarget(t *testing.T) {
	n := NewContainer("n")
	g := TweenPosition(n, 100, 0, 1, ease.Linear)
	n.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("tween on disposed node should finish")
	}
	if n.X != 0 {
		t.Errorf("X = %v, want no write after dispose", n.X)
	}
}

func TestSceneOwnedTweens(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	s.Root().AddChild(n)

	first := TweenAlpha(n, 0, 0.5, ease.Linear)
	first.OnDone = func() {
		s.AddTween(TweenAlpha(n, 1, 0.5, ease.Linear))
	}
	s.AddTween(first)
	if s.TweenCount() != 1 {
		t.Fatalf("TweenCount = %d, want 1", s.TweenCount())
	}

	s.Update(0.6)
	if n.Alpha != 0 {
		t.Fatalf("Alpha = %v, want 0 after first tween", n.Alpha)
	}
	if s.TweenCount() != 1 {
		t.Fatalf("TweenCount = %d, want chained tween queued", s.TweenCount())
	}
	s.Update(0.6)
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1 after chained tween", n.Alpha)
	}
	if s.TweenCount() != 0 {
		t.Errorf("TweenCount = %d, want 0", s.TweenCount())
	}
}

func TestAddTweenIgnoresFinished(t *testing.T) {
	s := NewScene()
	s.AddTween(nil)
	s.AddTween(&TweenGroup{Done: true})
	if s.TweenCount() != 0 {
		t.Errorf("TweenCount = %d, want 0", s.TweenCount())
	}
}
