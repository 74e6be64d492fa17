package invaders

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invaders: invalid config")

// Config holds every tunable of the simulation. Sizes are in pixels, speeds
// in pixels per second.
type Config struct {
	ScreenWidth  float64
	ScreenHeight float64

	PlayerWidth  float64
	PlayerHeight float64
	PlayerSpeed  float64

	BulletWidth  float64
	BulletHeight float64
	BulletSpeed  float64

	EnemyWidth   float64
	EnemyHeight  float64
	EnemySpeed   float64
	EnemyCount   int
	EnemyColumns int

	// Margin is the distance from the screen edges to the grid, both for the
	// initial layout and for the reversal test.
	Margin float64
	// Padding is the gap between neighbouring enemies in the grid.
	Padding float64

	// FireCooldown is the minimum interval between two shots. A shot is
	// accepted only once strictly more than this has elapsed.
	FireCooldown time.Duration

	// FreezeOnLoss stops the enemy grid once the round is lost. By default
	// the grid keeps marching and only firing is disabled.
	FreezeOnLoss bool
}

// DefaultConfig returns the stock 1280x720 layout with a 10x4 enemy grid.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1280,
		ScreenHeight: 720,

		PlayerWidth:  64,
		PlayerHeight: 32,
		PlayerSpeed:  300,

		BulletWidth:  20,
		BulletHeight: 80,
		BulletSpeed:  700,

		EnemyWidth:   64,
		EnemyHeight:  32,
		EnemySpeed:   150,
		EnemyCount:   40,
		EnemyColumns: 10,

		Margin:  25,
		Padding: 25,

		FireCooldown: 100 * time.Millisecond,
	}
}

// Rows returns the number of grid rows needed for EnemyCount enemies.
func (c Config) Rows() int {
	if c.EnemyColumns <= 0 {
		return 0
	}
	return (c.EnemyCount + c.EnemyColumns - 1) / c.EnemyColumns
}

// Validate reports the first problem that would make the simulation
// degenerate: zero-sized sprites, non-positive speeds, or a grid that does
// not fit on screen.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"screen width", c.ScreenWidth},
		{"screen height", c.ScreenHeight},
		{"player width", c.PlayerWidth},
		{"player height", c.PlayerHeight},
		{"player speed", c.PlayerSpeed},
		{"bullet width", c.BulletWidth},
		{"bullet height", c.BulletHeight},
		{"bullet speed", c.BulletSpeed},
		{"enemy width", c.EnemyWidth},
		{"enemy height", c.EnemyHeight},
		{"enemy speed", c.EnemySpeed},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.Margin < 0 || c.Padding < 0 {
		return fmt.Errorf("%w: margin and padding must not be negative", ErrInvalidConfig)
	}
	if c.EnemyCount < 0 {
		return fmt.Errorf("%w: enemy count must not be negative, got %d", ErrInvalidConfig, c.EnemyCount)
	}
	if c.EnemyColumns <= 0 {
		return fmt.Errorf("%w: enemy columns must be positive, got %d", ErrInvalidConfig, c.EnemyColumns)
	}
	if c.FireCooldown < 0 {
		return fmt.Errorf("%w: fire cooldown must not be negative", ErrInvalidConfig)
	}
	if c.PlayerWidth > c.ScreenWidth || c.PlayerHeight > c.ScreenHeight {
		return fmt.Errorf("%w: player does not fit on screen", ErrInvalidConfig)
	}

	cols := min(c.EnemyColumns, max(c.EnemyCount, 1))
	gridW := float64(cols)*(c.EnemyWidth+c.Padding) - c.Padding
	if 2*c.Margin+gridW > c.ScreenWidth {
		return fmt.Errorf("%w: %d columns need %.0fpx, screen is %.0fpx wide",
			ErrInvalidConfig, cols, 2*c.Margin+gridW, c.ScreenWidth)
	}
	rows := c.Rows()
	gridH := float64(rows)*(c.EnemyHeight+c.Padding) - c.Padding
	if rows > 0 && c.Margin+gridH > c.ScreenHeight-c.PlayerHeight {
		return fmt.Errorf("%w: %d rows reach the player baseline", ErrInvalidConfig, rows)
	}
	return nil
}
