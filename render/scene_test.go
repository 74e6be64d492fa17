package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil || s.Root().Name != "root" || s.Root().Type != NodeTypeContainer {
		t.Fatalf("root = %+v", s.Root())
	}
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want screenshots", s.ScreenshotDir)
	}
}

func TestSceneUpdateRunsCallbacks(t *testing.T) {
	s := NewScene()
	n := NewContainer("ticker")
	var total float64
	n.OnUpdate = func(dt float64) { total += dt }
	s.Root().AddChild(n)

	hidden := NewContainer("hidden")
	hidden.Visible = false
	hidden.OnUpdate = func(float64) { t.Error("hidden node should not update") }
	s.Root().AddChild(hidden)

	s.Update(0.25)
	s.Update(0.25)
	if total != 0.5 {
		t.Errorf("total dt = %v, want 0.5", total)
	}
}

func TestSceneUpdateAdvancesParticles(t *testing.T) {
	s := NewScene()
	em := NewParticleEmitter("boom", fixedConfig())
	s.Root().AddChild(em)
	em.Emitter.Burst(4)
	s.Update(2)
	if em.Emitter.AliveCount() != 0 {
		t.Errorf("AliveCount = %d, want 0", em.Emitter.AliveCount())
	}
}

func TestSceneUpdateRefreshesTransforms(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	s.Root().AddChild(n)
	n.SetPosition(7, 9)
	s.Update(0)
	x, y := n.LocalToWorld(0, 0)
	if x != 7 || y != 9 {
		t.Errorf("world = (%v,%v), want (7,9)", x, y)
	}
}

func TestDebugLogUsesLogger(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene()
	s.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	s.debugLog(debugStats{commandCount: 3})
	if buf.Len() != 0 {
		t.Fatal("stats should only log in debug mode")
	}

	s.debug = true
	s.debugLog(debugStats{commandCount: 3, drawCallCount: 4})
	out := buf.String()
	for _, want := range []string{`"commands":3`, `"drawCalls":4`, `"component":"render"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %s", out, want)
		}
	}
}

func TestLabelSize(t *testing.T) {
	tests := []struct {
		text string
		w, h int
	}{
		{"", 6, 16},
		{"SCORE 0", 42, 16},
		{"You win!\nR to restart", 72, 32},
	}
	for _, tt := range tests {
		w, h := labelSize(tt.text)
		if w != tt.w || h != tt.h {
			t.Errorf("labelSize(%q) = %dx%d, want %dx%d", tt.text, w, h, tt.w, tt.h)
		}
	}
}
