package render

import (
	"math"
	"math/rand/v2"
)

type particle struct {
	x, y       float64
	vx, vy     float64
	life       float64 // remaining seconds
	maxLife    float64
	startScale float32
	endScale   float32
	scale      float32
	startAlpha float32
	endAlpha   float32
	alpha      float32
	startR     float32
	startG     float32
	startB     float32
	endR       float32
	endG       float32
	endB       float32
	colorR     float32
	colorG     float32
	colorB     float32
}

// EmitterConfig controls how particles spawn and evolve.
type EmitterConfig struct {
	// MaxParticles is the pool size; spawns beyond it are dropped.
	MaxParticles int
	// EmitRate is particles per second while the emitter is active.
	EmitRate float64
	Lifetime Range
	// Speed is in pixels per second.
	Speed Range
	// Angle is in radians.
	Angle      Range
	StartScale Range
	EndScale   Range
	StartAlpha Range
	EndAlpha   Range
	Gravity    Vec2
	StartColor Color
	EndColor   Color
	// Size is the side of a particle square in pixels at scale 1.
	Size      float64
	BlendMode BlendMode
}

// ParticleEmitter owns a fixed pool of CPU-simulated particles. Alive
// particles occupy the first alive slots of the pool.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float64
	active    bool
}

func newParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	n := cfg.MaxParticles
	if n <= 0 {
		n = 128
	}
	return &ParticleEmitter{
		config:    cfg,
		particles: make([]particle, n),
	}
}

// Start begins continuous emission at EmitRate.
func (e *ParticleEmitter) Start() {
	e.active = true
}

// Stop halts emission. Alive particles live out their lifetime.
func (e *ParticleEmitter) Stop() {
	e.active = false
}

// Reset stops emission and kills every particle.
func (e *ParticleEmitter) Reset() {
	e.active = false
	e.alive = 0
	e.emitAccum = 0
}

func (e *ParticleEmitter) IsActive() bool {
	return e.active
}

func (e *ParticleEmitter) AliveCount() int {
	return e.alive
}

// Config returns the live config for tuning.
func (e *ParticleEmitter) Config() *EmitterConfig {
	return &e.config
}

// Burst spawns up to n particles at the emitter origin immediately and
// returns how many fit in the pool.
func (e *ParticleEmitter) Burst(n int) int {
	return e.BurstAt(0, 0, n)
}

// BurstAt spawns up to n particles at (x, y) in the emitter's local space.
// A single emitter at the scene origin can serve every explosion on screen.
func (e *ParticleEmitter) BurstAt(x, y float64, n int) int {
	spawned := 0
	for spawned < n && e.alive < len(e.particles) {
		e.spawnParticle(x, y)
		spawned++
	}
	return spawned
}

// update advances the simulation by dt seconds.
func (e *ParticleEmitter) update(dt float64) {
	if dt <= 0 {
		return
	}
	gx := e.config.Gravity.X * dt
	gy := e.config.Gravity.Y * dt

	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vx += gx
		p.vy += gy
		p.x += p.vx * dt
		p.y += p.vy * dt

		t := float32(1.0 - p.life/p.maxLife)
		p.scale = lerp32(p.startScale, p.endScale, t)
		p.alpha = lerp32(p.startAlpha, p.endAlpha, t)
		p.colorR = lerp32(p.startR, p.endR, t)
		p.colorG = lerp32(p.startG, p.endG, t)
		p.colorB = lerp32(p.startB, p.endB, t)
		i++
	}

	if e.active && e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * dt
		for e.emitAccum >= 1.0 {
			e.emitAccum -= 1.0
			if e.alive < len(e.particles) {
				e.spawnParticle(0, 0)
			}
		}
	}
}

// spawnParticle initializes slot e.alive at (x, y) and increments alive.
func (e *ParticleEmitter) spawnParticle(x, y float64) {
	p := &e.particles[e.alive]
	cfg := &e.config

	angle := cfg.Angle.Random()
	speed := cfg.Speed.Random()
	p.vx = math.Cos(angle) * speed
	p.vy = math.Sin(angle) * speed
	p.x = x
	p.y = y

	p.life = cfg.Lifetime.Random()
	if p.life <= 0 {
		p.life = 1.0
	}
	p.maxLife = p.life

	p.startScale = float32(cfg.StartScale.Random())
	p.endScale = float32(cfg.EndScale.Random())
	p.scale = p.startScale
	p.startAlpha = float32(cfg.StartAlpha.Random())
	p.endAlpha = float32(cfg.EndAlpha.Random())
	p.alpha = p.startAlpha

	p.startR, p.startG, p.startB = float32(cfg.StartColor.R), float32(cfg.StartColor.G), float32(cfg.StartColor.B)
	p.endR, p.endG, p.endB = float32(cfg.EndColor.R), float32(cfg.EndColor.G), float32(cfg.EndColor.B)
	p.colorR, p.colorG, p.colorB = p.startR, p.startG, p.startB

	e.alive++
}

// updateNodes runs OnUpdate callbacks and particle simulation for every
// visible node.
func updateNodes(n *Node, dt float64) {
	if !n.Visible {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	if n.Emitter != nil {
		n.Emitter.update(dt)
	}
	for _, child := range n.children {
		updateNodes(child, dt)
	}
}

func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Random returns a uniform value in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
