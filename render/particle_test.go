package render

import (
	"math"
	"testing"
)

func fixedConfig() EmitterConfig {
	return EmitterConfig{
		MaxParticles: 8,
		Lifetime:     Range{1, 1},
		Speed:        Range{100, 100},
		Angle:        Range{0, 0},
		StartScale:   Range{1, 1},
		EndScale:     Range{0, 0},
		StartAlpha:   Range{1, 1},
		EndAlpha:     Range{0, 0},
		StartColor:   Color{1, 1, 0, 1},
		EndColor:     Color{1, 0, 0, 1},
		Size:         4,
	}
}

func TestBurstFillsPool(t *testing.T) {
	e := newParticleEmitter(fixedConfig())
	if got := e.Burst(5); got != 5 {
		t.Fatalf("Burst(5) = %d", got)
	}
	if got := e.Burst(5); got != 3 {
		t.Errorf("Burst into a nearly full pool = %d, want 3", got)
	}
	if e.AliveCount() != 8 {
		t.Errorf("AliveCount = %d, want 8", e.AliveCount())
	}
	if e.IsActive() {
		t.Error("Burst should not start continuous emission")
	}
}

func TestBurstAtPosition(t *testing.T) {
	e := newParticleEmitter(fixedConfig())
	e.BurstAt(300, 150, 1)
	p := e.particles[0]
	if p.x != 300 || p.y != 150 {
		t.Errorf("spawn = (%v,%v), want (300,150)", p.x, p.y)
	}
	e.update(0.5)
	p = e.particles[0]
	if math.Abs(p.x-350) > 1e-9 || p.y != 150 {
		t.Errorf("after 0.5s = (%v,%v), want (350,150)", p.x, p.y)
	}
	if math.Abs(float64(p.scale)-0.5) > 1e-6 || math.Abs(float64(p.alpha)-0.5) > 1e-6 {
		t.Errorf("scale/alpha = %v/%v, want 0.5/0.5", p.scale, p.alpha)
	}
	if math.Abs(float64(p.colorG)-0.5) > 1e-6 {
		t.Errorf("colorG = %v, want 0.5", p.colorG)
	}
}

func TestParticlesExpire(t *testing.T) {
	e := newParticleEmitter(fixedConfig())
	e.Burst(3)
	e.update(0.6)
	e.update(0.6)
	if e.AliveCount() != 0 {
		t.Errorf("AliveCount = %d, want 0 after lifetime", e.AliveCount())
	}
}

func TestParticleGravity(t *testing.T) {
	cfg := fixedConfig()
	cfg.Speed = Range{0, 0}
	cfg.Gravity = Vec2{0, 100}
	e := newParticleEmitter(cfg)
	e.Burst(1)
	e.update(0.1)
	if math.Abs(e.particles[0].vy-10) > 1e-9 {
		t.Errorf("vy = %v, want 10", e.particles[0].vy)
	}
}

func TestContinuousEmission(t *testing.T) {
	cfg := fixedConfig()
	cfg.EmitRate = 10
	cfg.Lifetime = Range{5, 5}
	e := newParticleEmitter(cfg)
	e.Start()
	e.update(0.5)
	if e.AliveCount() != 5 {
		t.Errorf("AliveCount = %d, want 5", e.AliveCount())
	}
	e.Reset()
	if e.AliveCount() != 0 || e.IsActive() {
		t.Error("Reset should kill particles and stop emission")
	}
}

func TestUpdateIgnoresNonPositiveDt(t *testing.T) {
	e := newParticleEmitter(fixedConfig())
	e.Burst(1)
	e.update(0)
	e.update(-1)
	if e.particles[0].life != 1 {
		t.Errorf("life = %v, want untouched 1", e.particles[0].life)
	}
}

func TestDefaultPoolSize(t *testing.T) {
	e := newParticleEmitter(EmitterConfig{})
	if len(e.particles) != 128 {
		t.Errorf("pool = %d, want 128", len(e.particles))
	}
}

func TestRangeRandom(t *testing.T) {
	r := Range{2, 4}
	for i := 0; i < 100; i++ {
		if v := r.Random(); v < 2 || v > 4 {
			t.Fatalf("Random = %v outside [2,4]", v)
		}
	}
	if v := (Range{3, 3}).Random(); v != 3 {
		t.Errorf("degenerate Random = %v", v)
	}
}
