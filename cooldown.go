package invaders

import "time"

// Cooldown rate-limits an action by accumulated simulation time. It is
// ready before the first Restart, so the first action is never blocked.
type Cooldown struct {
	interval time.Duration
	elapsed  time.Duration
	armed    bool
}

// NewCooldown returns a ready cooldown with the given interval.
func NewCooldown(interval time.Duration) Cooldown {
	return Cooldown{interval: interval}
}

// Advance adds dt seconds to the elapsed time. Negative values are ignored.
func (c *Cooldown) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	c.elapsed += time.Duration(dt * float64(time.Second))
}

// Ready reports whether strictly more than the interval has passed since the
// last Restart.
func (c *Cooldown) Ready() bool {
	return !c.armed || c.elapsed > c.interval
}

// Restart starts a new interval.
func (c *Cooldown) Restart() {
	c.armed = true
	c.elapsed = 0
}

// Elapsed returns the time since the last Restart.
func (c *Cooldown) Elapsed() time.Duration {
	return c.elapsed
}
